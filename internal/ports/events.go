package ports

import (
	"context"
	"time"

	"github.com/viralforge/adforge/internal/contracts"
	"github.com/viralforge/adforge/internal/domain"
)

type GenerationJob struct {
	JobID      string
	CampaignID string
	OwnerID    string
	BeatOrder  int
	ClipID     string
	Action     domain.RegenerateAction
	Feedback   string
	EnqueuedAt time.Time
}

// GenerationQueue feeds the worker. Dequeue returns io.EOF when idle.
type GenerationQueue interface {
	Enqueue(ctx context.Context, job GenerationJob) error
	Dequeue(ctx context.Context) (GenerationJob, error)
}

type ProgressPublisher interface {
	Publish(ctx context.Context, envelope contracts.EventEnvelope) error
}
