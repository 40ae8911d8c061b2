package ports

import (
	"context"

	"github.com/viralforge/adforge/internal/domain"
)

type CampaignRepository interface {
	Create(ctx context.Context, campaign domain.Campaign) error
	GetByID(ctx context.Context, campaignID string) (domain.Campaign, error)
	Update(ctx context.Context, campaign domain.Campaign) error
}

// ClipVersionRepository owns the append-only version history per beat rank.
// CreateSelected and SelectVersion must flip sibling selection atomically;
// concurrent CreateSelected calls for the same (campaign, beat) must be
// serialized so version numbers stay gapless and strictly increasing.
type ClipVersionRepository interface {
	// CreateSelected appends the clip as the next version for its beat rank,
	// assigns ClipID and VersionNumber, marks it selected and deselects every
	// sibling of the same rank in one atomic step.
	CreateSelected(ctx context.Context, clip domain.ClipVersion) (domain.ClipVersion, error)
	GetByID(ctx context.Context, clipID string) (domain.ClipVersion, error)
	Update(ctx context.Context, clip domain.ClipVersion) error
	GetSelected(ctx context.Context, campaignID string, beatOrder int) (domain.ClipVersion, error)
	ListByBeat(ctx context.Context, campaignID string, beatOrder int) ([]domain.ClipVersion, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]domain.ClipVersion, error)
	// SelectVersion flips selection to the given clip without creating a new
	// version. The clip must belong to the given campaign and beat rank.
	SelectVersion(ctx context.Context, campaignID string, beatOrder int, clipID string) error
}

type ArchiveRepository interface {
	Save(ctx context.Context, archived domain.ArchivedVersion) error
	GetByID(ctx context.Context, archiveID string) (domain.ArchivedVersion, error)
	ListByBeat(ctx context.Context, campaignID string, beatOrder int) ([]domain.ArchivedVersion, error)
}
