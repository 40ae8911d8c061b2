package domain

import (
	"strings"
	"time"
)

type ClipStatus string

type Stage string

type RegenerateAction string

const (
	ClipStatusPending           ClipStatus = "pending"
	ClipStatusGeneratingVideo   ClipStatus = "generating_video"
	ClipStatusGeneratingVoice   ClipStatus = "generating_voice"
	ClipStatusGeneratingAmbient ClipStatus = "generating_ambient"
	ClipStatusCompleted         ClipStatus = "completed"
	ClipStatusFailed            ClipStatus = "failed"
)

const (
	StageFrame   Stage = "frame"
	StageVideo   Stage = "video"
	StageVoice   Stage = "voice"
	StageAmbient Stage = "ambient"
)

const (
	RegenerateVideo   RegenerateAction = "regenerate_video"
	RegenerateVoice   RegenerateAction = "regenerate_voice"
	RegenerateAmbient RegenerateAction = "regenerate_ambient"
	RegenerateFrame   RegenerateAction = "regenerate_frame"
	RegenerateAll     RegenerateAction = "regenerate_all"
)

const (
	DefaultVoiceVolume   = 1.0
	DefaultAmbientVolume = 0.25
)

type FirstFrame struct {
	ImagePrompt string `json:"image_prompt"`
	ImageURL    string `json:"image_url,omitempty"`
	Expression  string `json:"expression"`
	Gesture     string `json:"gesture"`
	Location    string `json:"location"`
}

type Script struct {
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
}

type Video struct {
	Engine           EngineKind `json:"engine"`
	DurationSeconds  float64    `json:"duration_seconds"`
	GenerationPrompt string     `json:"generation_prompt"`
	RawURL           string     `json:"raw_url,omitempty"`
	FinalURL         string     `json:"final_url,omitempty"`
}

type Audio struct {
	VoiceURL      string  `json:"voice_url,omitempty"`
	AmbientURL    string  `json:"ambient_url,omitempty"`
	VoiceVolume   float64 `json:"voice_volume"`
	AmbientVolume float64 `json:"ambient_volume"`
}

type WordTimestamp struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type Transcription struct {
	Text               string          `json:"text"`
	Words              []WordTimestamp `json:"words"`
	SpeechStart        float64         `json:"speech_start"`
	SpeechEnd          float64         `json:"speech_end"`
	SyllablesPerSecond float64         `json:"syllables_per_second"`
	SuggestedSpeed     float64         `json:"suggested_speed"`
}

type ClipVersion struct {
	ClipID        string         `json:"clip_id,omitempty"`
	CampaignID    string         `json:"campaign_id"`
	BeatOrder     int            `json:"beat_order"`
	VersionNumber int            `json:"version_number"`
	FirstFrame    FirstFrame     `json:"first_frame"`
	Script        Script         `json:"script"`
	Video         Video          `json:"video"`
	Audio         Audio          `json:"audio"`
	Transcription *Transcription `json:"transcription,omitempty"`
	Adjustments   Adjustments    `json:"adjustments"`
	Selected      bool           `json:"selected"`
	Status        ClipStatus     `json:"status"`
	FailureReason string         `json:"failure_reason,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ArchivedVersion captures the full pre-regeneration state of a clip,
// keyed by the live clip it superseded and tagged with the trigger action.
type ArchivedVersion struct {
	ArchiveID     string           `json:"archive_id"`
	CampaignID    string           `json:"campaign_id"`
	BeatOrder     int              `json:"beat_order"`
	ClipID        string           `json:"clip_id"`
	VersionNumber int              `json:"version_number"`
	Action        RegenerateAction `json:"action"`
	Snapshot      ClipVersion      `json:"snapshot"`
	ArchivedAt    time.Time        `json:"archived_at"`
}

func IsTerminalClipStatus(status ClipStatus) bool {
	return status == ClipStatusCompleted || status == ClipStatusFailed
}

func ParseRegenerateAction(raw string) (RegenerateAction, error) {
	action := RegenerateAction(strings.ToLower(strings.TrimSpace(raw)))
	switch action {
	case RegenerateVideo, RegenerateVoice, RegenerateAmbient, RegenerateFrame, RegenerateAll:
		return action, nil
	default:
		return "", ErrInvalidInput
	}
}

// StagesFor expands a regeneration action into the ordered stages it reruns.
// Regenerating the frame or the video invalidates everything downstream of it,
// since voice and ambient are mixed onto the rendered video.
func StagesFor(action RegenerateAction) []Stage {
	switch action {
	case RegenerateFrame:
		return []Stage{StageFrame, StageVideo, StageVoice, StageAmbient}
	case RegenerateVideo:
		return []Stage{StageVideo, StageVoice, StageAmbient}
	case RegenerateVoice:
		return []Stage{StageVoice, StageAmbient}
	case RegenerateAmbient:
		return []Stage{StageAmbient}
	case RegenerateAll:
		return []Stage{StageFrame, StageVideo, StageVoice, StageAmbient}
	default:
		return nil
	}
}

// DeriveForRegeneration copies a clip into an unpersisted draft with the
// regenerated stages' outputs cleared. The source clip is left untouched so it
// stays selected and visible if the regeneration fails.
func DeriveForRegeneration(src ClipVersion, action RegenerateAction) ClipVersion {
	draft := src
	draft.ClipID = ""
	draft.VersionNumber = 0
	draft.Selected = false
	draft.Status = ClipStatusPending
	draft.FailureReason = ""
	draft.Transcription = nil
	draft.Adjustments = Adjustments{User: src.Adjustments.User}

	for _, stage := range StagesFor(action) {
		switch stage {
		case StageFrame:
			draft.FirstFrame.ImageURL = ""
		case StageVideo:
			draft.Video.RawURL = ""
			draft.Video.FinalURL = ""
		case StageVoice:
			draft.Audio.VoiceURL = ""
			draft.Video.FinalURL = ""
		case StageAmbient:
			draft.Audio.AmbientURL = ""
			draft.Video.FinalURL = ""
		}
	}
	return draft
}

func stageStatus(stage Stage) ClipStatus {
	switch stage {
	case StageVoice:
		return ClipStatusGeneratingVoice
	case StageAmbient:
		return ClipStatusGeneratingAmbient
	default:
		return ClipStatusGeneratingVideo
	}
}

// StatusForStage reports the in-flight clip status while the given stage runs.
// Frame synthesis is part of the video stage for status purposes.
func StatusForStage(stage Stage) ClipStatus { return stageStatus(stage) }
