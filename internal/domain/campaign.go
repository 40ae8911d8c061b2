package domain

import (
	"strings"
	"time"
)

type CampaignStatus string

type BeatKind string

const (
	CampaignStatusDraft      CampaignStatus = "draft"
	CampaignStatusGenerating CampaignStatus = "generating"
	CampaignStatusAssembling CampaignStatus = "assembling"
	CampaignStatusCompleted  CampaignStatus = "completed"
	CampaignStatusFailed     CampaignStatus = "failed"
)

const (
	BeatHook      BeatKind = "hook"
	BeatProblem   BeatKind = "problem"
	BeatAgitation BeatKind = "agitation"
	BeatSolution  BeatKind = "solution"
	BeatProof     BeatKind = "proof"
	BeatCTA       BeatKind = "cta"
)

type Beat struct {
	Order int      `json:"order"`
	Kind  BeatKind `json:"kind"`
}

type Campaign struct {
	CampaignID           string         `json:"campaign_id"`
	OwnerID              string         `json:"owner_id"`
	Title                string         `json:"title"`
	Language             string         `json:"language"`
	ActorID              string         `json:"actor_id"`
	ActorImageURL        string         `json:"actor_image_url,omitempty"`
	ActorVoiceURL        string         `json:"actor_voice_url,omitempty"`
	PresetID             string         `json:"preset_id"`
	Status               CampaignStatus `json:"status"`
	Beats                []Beat         `json:"beats"`
	FinalVideoURL        string         `json:"final_video_url,omitempty"`
	FinalDurationSeconds float64        `json:"final_duration_seconds,omitempty"`
	LastError            string         `json:"last_error,omitempty"`
	AttemptedClipIDs     []string       `json:"attempted_clip_ids,omitempty"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
}

func IsBeatKind(raw string) bool {
	switch BeatKind(strings.ToLower(strings.TrimSpace(raw))) {
	case BeatHook, BeatProblem, BeatAgitation, BeatSolution, BeatProof, BeatCTA:
		return true
	default:
		return false
	}
}

// ValidCampaignTransition gates campaign status changes. A drained batch
// rests at draft until assembly; the terminal states completed and failed
// stay reachable back into generating because explicit user regeneration
// reopens a finished campaign.
func ValidCampaignTransition(from, to CampaignStatus) bool {
	switch from {
	case CampaignStatusDraft:
		return to == CampaignStatusGenerating || to == CampaignStatusAssembling
	case CampaignStatusGenerating:
		return to == CampaignStatusDraft || to == CampaignStatusGenerating || to == CampaignStatusAssembling || to == CampaignStatusFailed
	case CampaignStatusAssembling:
		return to == CampaignStatusCompleted || to == CampaignStatusFailed
	case CampaignStatusCompleted, CampaignStatusFailed:
		return to == CampaignStatusGenerating || to == CampaignStatusAssembling
	default:
		return false
	}
}

func (c Campaign) BeatByOrder(order int) (Beat, bool) {
	for _, b := range c.Beats {
		if b.Order == order {
			return b, true
		}
	}
	return Beat{}, false
}
