package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/viralforge/adforge/internal/domain"
)

type Repositories struct {
	Campaigns *CampaignRepository
	Clips     *ClipVersionRepository
	Archives  *ArchiveRepository
}

func NewRepositories() *Repositories {
	return &Repositories{
		Campaigns: &CampaignRepository{records: map[string]domain.Campaign{}},
		Clips:     &ClipVersionRepository{records: map[string]domain.ClipVersion{}, byBeat: map[beatKey][]string{}},
		Archives:  &ArchiveRepository{records: map[string]domain.ArchivedVersion{}, byBeat: map[beatKey][]string{}},
	}
}

type beatKey struct {
	campaignID string
	beatOrder  int
}

type CampaignRepository struct {
	mu      sync.RWMutex
	records map[string]domain.Campaign
}

func (r *CampaignRepository) Create(_ context.Context, campaign domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[campaign.CampaignID]; exists {
		return domain.ErrConflict
	}
	r.records[campaign.CampaignID] = campaign
	return nil
}

func (r *CampaignRepository) GetByID(_ context.Context, campaignID string) (domain.Campaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	campaign, ok := r.records[campaignID]
	if !ok {
		return domain.Campaign{}, domain.ErrNotFound
	}
	return campaign, nil
}

func (r *CampaignRepository) Update(_ context.Context, campaign domain.Campaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[campaign.CampaignID]; !ok {
		return domain.ErrNotFound
	}
	r.records[campaign.CampaignID] = campaign
	return nil
}

// ClipVersionRepository keeps the append-only version history per beat rank.
// One mutex guards both the records and the per-beat index, which serializes
// concurrent CreateSelected calls for the same rank and keeps version numbers
// gapless.
type ClipVersionRepository struct {
	mu      sync.RWMutex
	records map[string]domain.ClipVersion
	byBeat  map[beatKey][]string
}

func (r *ClipVersionRepository) CreateSelected(_ context.Context, clip domain.ClipVersion) (domain.ClipVersion, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := beatKey{campaignID: clip.CampaignID, beatOrder: clip.BeatOrder}
	next := 1
	for _, id := range r.byBeat[key] {
		sibling := r.records[id]
		if sibling.VersionNumber >= next {
			next = sibling.VersionNumber + 1
		}
		sibling.Selected = false
		r.records[id] = sibling
	}

	clip.ClipID = uuid.NewString()
	clip.VersionNumber = next
	clip.Selected = true
	if clip.CreatedAt.IsZero() {
		clip.CreatedAt = nowUTC()
	}
	r.records[clip.ClipID] = clip
	r.byBeat[key] = append(r.byBeat[key], clip.ClipID)
	return clip, nil
}

func (r *ClipVersionRepository) GetByID(_ context.Context, clipID string) (domain.ClipVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clip, ok := r.records[clipID]
	if !ok {
		return domain.ClipVersion{}, domain.ErrNotFound
	}
	return clip, nil
}

func (r *ClipVersionRepository) Update(_ context.Context, clip domain.ClipVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[clip.ClipID]; !ok {
		return domain.ErrNotFound
	}
	r.records[clip.ClipID] = clip
	return nil
}

func (r *ClipVersionRepository) GetSelected(_ context.Context, campaignID string, beatOrder int) (domain.ClipVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range r.byBeat[beatKey{campaignID: campaignID, beatOrder: beatOrder}] {
		if clip := r.records[id]; clip.Selected {
			return clip, nil
		}
	}
	return domain.ClipVersion{}, domain.ErrNotFound
}

func (r *ClipVersionRepository) ListByBeat(_ context.Context, campaignID string, beatOrder int) ([]domain.ClipVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byBeat[beatKey{campaignID: campaignID, beatOrder: beatOrder}]
	out := make([]domain.ClipVersion, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.records[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].VersionNumber < out[j].VersionNumber })
	return out, nil
}

func (r *ClipVersionRepository) ListByCampaign(_ context.Context, campaignID string) ([]domain.ClipVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ClipVersion, 0)
	for key, ids := range r.byBeat {
		if key.campaignID != campaignID {
			continue
		}
		for _, id := range ids {
			out = append(out, r.records[id])
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BeatOrder == out[j].BeatOrder {
			return out[i].VersionNumber < out[j].VersionNumber
		}
		return out[i].BeatOrder < out[j].BeatOrder
	})
	return out, nil
}

func (r *ClipVersionRepository) SelectVersion(_ context.Context, campaignID string, beatOrder int, clipID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := beatKey{campaignID: campaignID, beatOrder: beatOrder}
	target, ok := r.records[clipID]
	if !ok || target.CampaignID != campaignID || target.BeatOrder != beatOrder {
		return domain.ErrNotFound
	}
	for _, id := range r.byBeat[key] {
		sibling := r.records[id]
		sibling.Selected = id == clipID
		r.records[id] = sibling
	}
	return nil
}

type ArchiveRepository struct {
	mu      sync.RWMutex
	records map[string]domain.ArchivedVersion
	byBeat  map[beatKey][]string
	failing bool
}

func (r *ArchiveRepository) Save(_ context.Context, archived domain.ArchivedVersion) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return &domain.ArchivalWriteError{BeatOrder: archived.BeatOrder, Err: errArchiveUnavailable}
	}
	key := beatKey{campaignID: archived.CampaignID, beatOrder: archived.BeatOrder}
	r.records[archived.ArchiveID] = archived
	r.byBeat[key] = append(r.byBeat[key], archived.ArchiveID)
	return nil
}

func (r *ArchiveRepository) GetByID(_ context.Context, archiveID string) (domain.ArchivedVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	archived, ok := r.records[archiveID]
	if !ok {
		return domain.ArchivedVersion{}, domain.ErrNotFound
	}
	return archived, nil
}

func (r *ArchiveRepository) ListByBeat(_ context.Context, campaignID string, beatOrder int) ([]domain.ArchivedVersion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byBeat[beatKey{campaignID: campaignID, beatOrder: beatOrder}]
	out := make([]domain.ArchivedVersion, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.records[id])
	}
	return out, nil
}

// SetFailing makes every Save fail; archival is best-effort by contract and
// tests use this to exercise the degraded path.
func (r *ArchiveRepository) SetFailing(failing bool) {
	r.mu.Lock()
	r.failing = failing
	r.mu.Unlock()
}
