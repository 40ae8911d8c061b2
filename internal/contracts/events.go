package contracts

import "time"

type EventEnvelope struct {
	EventID          string      `json:"event_id"`
	EventType        string      `json:"event_type"`
	OccurredAt       time.Time   `json:"occurred_at"`
	PartitionKeyPath string      `json:"partition_key_path"`
	PartitionKey     string      `json:"partition_key"`
	SourceService    string      `json:"source_service"`
	SchemaVersion    string      `json:"schema_version"`
	Data             interface{} `json:"data"`
}

const (
	EventTypeStageStarted      = "adgen.clip.stage_started"
	EventTypeStageCompleted    = "adgen.clip.stage_completed"
	EventTypeClipFailed        = "adgen.clip.failed"
	EventTypeClipCompleted     = "adgen.clip.completed"
	EventTypeAssemblyStarted   = "adgen.campaign.assembly_started"
	EventTypeAssemblyCompleted = "adgen.campaign.assembly_completed"
	EventTypeAssemblyFailed    = "adgen.campaign.assembly_failed"
)

type GenerationProgress struct {
	CampaignID    string `json:"campaign_id"`
	BeatOrder     int    `json:"beat_order"`
	ClipID        string `json:"clip_id,omitempty"`
	VersionNumber int    `json:"version_number,omitempty"`
	Stage         string `json:"stage,omitempty"`
	Status        string `json:"status"`
	Detail        string `json:"detail,omitempty"`
}
