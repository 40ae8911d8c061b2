package postgres

import (
	"time"

	"gorm.io/datatypes"
)

type campaignModel struct {
	CampaignID           string         `gorm:"column:campaign_id;type:uuid;primaryKey"`
	OwnerID              string         `gorm:"column:owner_id;type:uuid"`
	Title                string         `gorm:"column:title"`
	Language             string         `gorm:"column:language"`
	ActorID              string         `gorm:"column:actor_id"`
	ActorImageURL        string         `gorm:"column:actor_image_url"`
	ActorVoiceURL        string         `gorm:"column:actor_voice_url"`
	PresetID             string         `gorm:"column:preset_id"`
	Status               string         `gorm:"column:status"`
	Beats                datatypes.JSON `gorm:"column:beats;type:jsonb"`
	FinalVideoURL        string         `gorm:"column:final_video_url"`
	FinalDurationSeconds float64        `gorm:"column:final_duration_seconds"`
	LastError            string         `gorm:"column:last_error"`
	AttemptedClipIDs     datatypes.JSON `gorm:"column:attempted_clip_ids;type:jsonb"`
	CreatedAt            time.Time      `gorm:"column:created_at"`
	UpdatedAt            time.Time      `gorm:"column:updated_at"`
}

func (campaignModel) TableName() string { return "campaigns" }

type clipVersionModel struct {
	ClipID        string         `gorm:"column:clip_id;type:uuid;primaryKey"`
	CampaignID    string         `gorm:"column:campaign_id;type:uuid"`
	BeatOrder     int            `gorm:"column:beat_order"`
	VersionNumber int            `gorm:"column:version_number"`
	FirstFrame    datatypes.JSON `gorm:"column:first_frame;type:jsonb"`
	Script        datatypes.JSON `gorm:"column:script;type:jsonb"`
	Video         datatypes.JSON `gorm:"column:video;type:jsonb"`
	Audio         datatypes.JSON `gorm:"column:audio;type:jsonb"`
	Transcription datatypes.JSON `gorm:"column:transcription;type:jsonb"`
	Adjustments   datatypes.JSON `gorm:"column:adjustments;type:jsonb"`
	Selected      bool           `gorm:"column:selected"`
	Status        string         `gorm:"column:status"`
	FailureReason string         `gorm:"column:failure_reason"`
	CreatedAt     time.Time      `gorm:"column:created_at"`
}

func (clipVersionModel) TableName() string { return "clip_versions" }

type archivedVersionModel struct {
	ArchiveID     string         `gorm:"column:archive_id;type:uuid;primaryKey"`
	CampaignID    string         `gorm:"column:campaign_id;type:uuid"`
	BeatOrder     int            `gorm:"column:beat_order"`
	ClipID        string         `gorm:"column:clip_id;type:uuid"`
	VersionNumber int            `gorm:"column:version_number"`
	Action        string         `gorm:"column:action"`
	Snapshot      datatypes.JSON `gorm:"column:snapshot;type:jsonb"`
	ArchivedAt    time.Time      `gorm:"column:archived_at"`
}

func (archivedVersionModel) TableName() string { return "archived_versions" }
