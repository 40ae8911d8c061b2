package postgres

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/viralforge/adforge/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func toCampaignModel(c domain.Campaign) (campaignModel, error) {
	beats, err := json.Marshal(c.Beats)
	if err != nil {
		return campaignModel{}, fmt.Errorf("marshal beats: %w", err)
	}
	attempted, err := json.Marshal(c.AttemptedClipIDs)
	if err != nil {
		return campaignModel{}, fmt.Errorf("marshal attempted clip ids: %w", err)
	}
	return campaignModel{
		CampaignID:           c.CampaignID,
		OwnerID:              c.OwnerID,
		Title:                c.Title,
		Language:             c.Language,
		ActorID:              c.ActorID,
		ActorImageURL:        c.ActorImageURL,
		ActorVoiceURL:        c.ActorVoiceURL,
		PresetID:             c.PresetID,
		Status:               string(c.Status),
		Beats:                datatypes.JSON(beats),
		FinalVideoURL:        c.FinalVideoURL,
		FinalDurationSeconds: c.FinalDurationSeconds,
		LastError:            c.LastError,
		AttemptedClipIDs:     datatypes.JSON(attempted),
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}, nil
}

func toDomainCampaign(row campaignModel) (domain.Campaign, error) {
	var beats []domain.Beat
	if len(row.Beats) > 0 {
		if err := json.Unmarshal(row.Beats, &beats); err != nil {
			return domain.Campaign{}, fmt.Errorf("unmarshal beats: %w", err)
		}
	}
	var attempted []string
	if len(row.AttemptedClipIDs) > 0 {
		if err := json.Unmarshal(row.AttemptedClipIDs, &attempted); err != nil {
			return domain.Campaign{}, fmt.Errorf("unmarshal attempted clip ids: %w", err)
		}
	}
	return domain.Campaign{
		CampaignID:           row.CampaignID,
		OwnerID:              row.OwnerID,
		Title:                row.Title,
		Language:             row.Language,
		ActorID:              row.ActorID,
		ActorImageURL:        row.ActorImageURL,
		ActorVoiceURL:        row.ActorVoiceURL,
		PresetID:             row.PresetID,
		Status:               domain.CampaignStatus(row.Status),
		Beats:                beats,
		FinalVideoURL:        row.FinalVideoURL,
		FinalDurationSeconds: row.FinalDurationSeconds,
		LastError:            row.LastError,
		AttemptedClipIDs:     attempted,
		CreatedAt:            row.CreatedAt,
		UpdatedAt:            row.UpdatedAt,
	}, nil
}

func toClipVersionModel(clip domain.ClipVersion) (clipVersionModel, error) {
	firstFrame, err := json.Marshal(clip.FirstFrame)
	if err != nil {
		return clipVersionModel{}, fmt.Errorf("marshal first frame: %w", err)
	}
	script, err := json.Marshal(clip.Script)
	if err != nil {
		return clipVersionModel{}, fmt.Errorf("marshal script: %w", err)
	}
	video, err := json.Marshal(clip.Video)
	if err != nil {
		return clipVersionModel{}, fmt.Errorf("marshal video: %w", err)
	}
	audio, err := json.Marshal(clip.Audio)
	if err != nil {
		return clipVersionModel{}, fmt.Errorf("marshal audio: %w", err)
	}
	adjustments, err := json.Marshal(clip.Adjustments)
	if err != nil {
		return clipVersionModel{}, fmt.Errorf("marshal adjustments: %w", err)
	}
	var transcription datatypes.JSON
	if clip.Transcription != nil {
		raw, err := json.Marshal(clip.Transcription)
		if err != nil {
			return clipVersionModel{}, fmt.Errorf("marshal transcription: %w", err)
		}
		transcription = datatypes.JSON(raw)
	}
	return clipVersionModel{
		ClipID:        clip.ClipID,
		CampaignID:    clip.CampaignID,
		BeatOrder:     clip.BeatOrder,
		VersionNumber: clip.VersionNumber,
		FirstFrame:    datatypes.JSON(firstFrame),
		Script:        datatypes.JSON(script),
		Video:         datatypes.JSON(video),
		Audio:         datatypes.JSON(audio),
		Transcription: transcription,
		Adjustments:   datatypes.JSON(adjustments),
		Selected:      clip.Selected,
		Status:        string(clip.Status),
		FailureReason: clip.FailureReason,
		CreatedAt:     clip.CreatedAt,
	}, nil
}

func toDomainClipVersion(row clipVersionModel) (domain.ClipVersion, error) {
	clip := domain.ClipVersion{
		ClipID:        row.ClipID,
		CampaignID:    row.CampaignID,
		BeatOrder:     row.BeatOrder,
		VersionNumber: row.VersionNumber,
		Selected:      row.Selected,
		Status:        domain.ClipStatus(row.Status),
		FailureReason: row.FailureReason,
		CreatedAt:     row.CreatedAt,
	}
	if err := json.Unmarshal(row.FirstFrame, &clip.FirstFrame); err != nil {
		return domain.ClipVersion{}, fmt.Errorf("unmarshal first frame: %w", err)
	}
	if err := json.Unmarshal(row.Script, &clip.Script); err != nil {
		return domain.ClipVersion{}, fmt.Errorf("unmarshal script: %w", err)
	}
	if err := json.Unmarshal(row.Video, &clip.Video); err != nil {
		return domain.ClipVersion{}, fmt.Errorf("unmarshal video: %w", err)
	}
	if err := json.Unmarshal(row.Audio, &clip.Audio); err != nil {
		return domain.ClipVersion{}, fmt.Errorf("unmarshal audio: %w", err)
	}
	if err := json.Unmarshal(row.Adjustments, &clip.Adjustments); err != nil {
		return domain.ClipVersion{}, fmt.Errorf("unmarshal adjustments: %w", err)
	}
	if len(row.Transcription) > 0 {
		var transcription domain.Transcription
		if err := json.Unmarshal(row.Transcription, &transcription); err != nil {
			return domain.ClipVersion{}, fmt.Errorf("unmarshal transcription: %w", err)
		}
		clip.Transcription = &transcription
	}
	return clip, nil
}

func toArchivedVersionModel(archived domain.ArchivedVersion) (archivedVersionModel, error) {
	snapshot, err := json.Marshal(archived.Snapshot)
	if err != nil {
		return archivedVersionModel{}, fmt.Errorf("marshal snapshot: %w", err)
	}
	return archivedVersionModel{
		ArchiveID:     archived.ArchiveID,
		CampaignID:    archived.CampaignID,
		BeatOrder:     archived.BeatOrder,
		ClipID:        archived.ClipID,
		VersionNumber: archived.VersionNumber,
		Action:        string(archived.Action),
		Snapshot:      datatypes.JSON(snapshot),
		ArchivedAt:    archived.ArchivedAt,
	}, nil
}

func toDomainArchivedVersion(row archivedVersionModel) (domain.ArchivedVersion, error) {
	archived := domain.ArchivedVersion{
		ArchiveID:     row.ArchiveID,
		CampaignID:    row.CampaignID,
		BeatOrder:     row.BeatOrder,
		ClipID:        row.ClipID,
		VersionNumber: row.VersionNumber,
		Action:        domain.RegenerateAction(row.Action),
		ArchivedAt:    row.ArchivedAt,
	}
	if err := json.Unmarshal(row.Snapshot, &archived.Snapshot); err != nil {
		return domain.ArchivedVersion{}, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return archived, nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
