package contracts

import "time"

type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ErrorResponse struct {
	Status string       `json:"status"`
	Error  ErrorPayload `json:"error"`
}

type ErrorPayload struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

type CreatePlanRequest struct {
	Actor   ActorProfileDTO   `json:"actor"`
	Preset  StylePresetDTO    `json:"preset"`
	Brief   CampaignBriefDTO  `json:"brief"`
	Product ProductOptionsDTO `json:"product"`
}

type ActorProfileDTO struct {
	ActorID           string `json:"actor_id"`
	Name              string `json:"name"`
	Persona           string `json:"persona"`
	ReferenceImageURL string `json:"reference_image_url"`
	VoiceReferenceURL string `json:"voice_reference_url"`
}

type StylePresetDTO struct {
	PresetID           string         `json:"preset_id"`
	Tone               string         `json:"tone"`
	Structure          []string       `json:"structure"`
	SceneMode          string         `json:"scene_mode"`
	Location           string         `json:"location"`
	PerBeatLocations   map[int]string `json:"per_beat_locations,omitempty"`
	CameraStyle        string         `json:"camera_style"`
	DefaultEngine      string         `json:"default_engine"`
	DefaultClipSeconds float64        `json:"default_clip_seconds"`
	ClipCountHint      int            `json:"clip_count_hint"`
}

type CampaignBriefDTO struct {
	Product            string  `json:"product"`
	PainPoint          string  `json:"pain_point"`
	Audience           string  `json:"audience"`
	TargetTotalSeconds float64 `json:"target_total_seconds"`
	Language           string  `json:"language"`
}

type ProductOptionsDTO struct {
	Visible    bool   `json:"visible"`
	Descriptor string `json:"descriptor,omitempty"`
}

type CreatePlanResponse struct {
	CampaignID string        `json:"campaign_id"`
	Title      string        `json:"title"`
	Status     string        `json:"status"`
	Beats      []BeatSpecDTO `json:"beats"`
}

type BeatSpecDTO struct {
	Order           int     `json:"order"`
	Kind            string  `json:"kind"`
	ScriptText      string  `json:"script_text"`
	WordCount       int     `json:"word_count"`
	Engine          string  `json:"engine"`
	DurationSeconds float64 `json:"duration_seconds"`
	Location        string  `json:"location"`
}

type CampaignResponse struct {
	CampaignID           string           `json:"campaign_id"`
	Title                string           `json:"title"`
	Status               string           `json:"status"`
	Beats                []BeatDTO        `json:"beats"`
	Clips                []ClipVersionDTO `json:"clips,omitempty"`
	FinalVideoURL        string           `json:"final_video_url,omitempty"`
	FinalDurationSeconds float64          `json:"final_duration_seconds,omitempty"`
	LastError            string           `json:"last_error,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

type BeatDTO struct {
	Order int    `json:"order"`
	Kind  string `json:"kind"`
}

type ClipVersionDTO struct {
	ClipID          string            `json:"clip_id"`
	BeatOrder       int               `json:"beat_order"`
	VersionNumber   int               `json:"version_number"`
	Selected        bool              `json:"selected"`
	Status          string            `json:"status"`
	ScriptText      string            `json:"script_text"`
	Engine          string            `json:"engine"`
	DurationSeconds float64           `json:"duration_seconds"`
	FirstFrameURL   string            `json:"first_frame_url,omitempty"`
	RawURL          string            `json:"raw_url,omitempty"`
	FinalURL        string            `json:"final_url,omitempty"`
	VoiceURL        string            `json:"voice_url,omitempty"`
	AmbientURL      string            `json:"ambient_url,omitempty"`
	Adjustments     *AdjustmentsDTO   `json:"adjustments,omitempty"`
	FailureReason   string            `json:"failure_reason,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	Extra           map[string]string `json:"extra,omitempty"`
}

type AdjustmentsDTO struct {
	Auto      *AdjustmentDTO `json:"auto,omitempty"`
	User      *AdjustmentDTO `json:"user,omitempty"`
	Effective *AdjustmentDTO `json:"effective,omitempty"`
	Source    string         `json:"source,omitempty"`
}

type AdjustmentDTO struct {
	TrimStart float64 `json:"trim_start"`
	TrimEnd   float64 `json:"trim_end"`
	Speed     float64 `json:"speed"`
}

type StartGenerationResponse struct {
	CampaignID       string  `json:"campaign_id"`
	Status           string  `json:"status"`
	BeatsQueued      int     `json:"beats_queued"`
	CreditsReserved  float64 `json:"credits_reserved"`
	CreditsRemaining float64 `json:"credits_remaining"`
}

type RegenerateRequest struct {
	Action   string `json:"action"`
	Feedback string `json:"feedback,omitempty"`
}

type EditScriptRequest struct {
	Text string `json:"text"`
}

type SetAdjustmentsRequest struct {
	TrimStart float64 `json:"trim_start"`
	TrimEnd   float64 `json:"trim_end"`
	Speed     float64 `json:"speed"`
}

type SelectVersionRequest struct {
	ClipID string `json:"clip_id"`
}

type RestoreVersionRequest struct {
	ArchiveID string `json:"archive_id"`
}

type ArchivedVersionDTO struct {
	ArchiveID     string    `json:"archive_id"`
	ClipID        string    `json:"clip_id"`
	VersionNumber int       `json:"version_number"`
	Action        string    `json:"action"`
	ArchivedAt    time.Time `json:"archived_at"`
}

type AssembleResponse struct {
	CampaignID           string   `json:"campaign_id"`
	Status               string   `json:"status"`
	FinalVideoURL        string   `json:"final_video_url,omitempty"`
	FinalDurationSeconds float64  `json:"final_duration_seconds,omitempty"`
	DegradedBeats        []int    `json:"degraded_beats,omitempty"`
	ClipIDs              []string `json:"clip_ids"`
}

type EstimateResponse struct {
	CampaignID       string  `json:"campaign_id"`
	EstimatedCredits float64 `json:"estimated_credits"`
	AvailableCredits float64 `json:"available_credits"`
}
