package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/adforge/internal/domain"
	"github.com/viralforge/adforge/internal/ports"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repositories struct {
	Campaigns ports.CampaignRepository
	Clips     ports.ClipVersionRepository
	Archives  ports.ArchiveRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Campaigns: &campaignRepository{db: db},
		Clips:     &clipVersionRepository{db: db},
		Archives:  &archiveRepository{db: db},
	}
}

type campaignRepository struct {
	db *gorm.DB
}

func (r *campaignRepository) Create(ctx context.Context, campaign domain.Campaign) error {
	rec, err := toCampaignModel(campaign)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, campaignID string) (domain.Campaign, error) {
	var rec campaignModel
	if err := r.db.WithContext(ctx).Where("campaign_id = ?", campaignID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Campaign{}, domain.ErrNotFound
		}
		return domain.Campaign{}, err
	}
	return toDomainCampaign(rec)
}

func (r *campaignRepository) Update(ctx context.Context, campaign domain.Campaign) error {
	rec, err := toCampaignModel(campaign)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Where("campaign_id = ?", campaign.CampaignID).Select("*").Updates(&rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type clipVersionRepository struct {
	db *gorm.DB
}

// CreateSelected appends the next version for a beat and flips selection to it
// in one transaction. Sibling rows are locked first so concurrent appends for
// the same beat serialize and version numbers stay gapless; the unique index
// on (campaign_id, beat_order, version_number) backstops the empty-beat race.
func (r *clipVersionRepository) CreateSelected(ctx context.Context, clip domain.ClipVersion) (domain.ClipVersion, error) {
	var created domain.ClipVersion
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var siblings []clipVersionModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("campaign_id = ? AND beat_order = ?", clip.CampaignID, clip.BeatOrder).
			Find(&siblings).Error; err != nil {
			return err
		}
		next := 1
		for _, sibling := range siblings {
			if sibling.VersionNumber >= next {
				next = sibling.VersionNumber + 1
			}
		}
		if err := tx.Model(&clipVersionModel{}).
			Where("campaign_id = ? AND beat_order = ? AND selected", clip.CampaignID, clip.BeatOrder).
			Update("selected", false).Error; err != nil {
			return err
		}

		clip.ClipID = uuid.NewString()
		clip.VersionNumber = next
		clip.Selected = true
		if clip.CreatedAt.IsZero() {
			clip.CreatedAt = time.Now().UTC()
		}
		rec, err := toClipVersionModel(clip)
		if err != nil {
			return err
		}
		if err := tx.Create(&rec).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrConflict
			}
			return err
		}
		created = clip
		return nil
	})
	if err != nil {
		return domain.ClipVersion{}, err
	}
	return created, nil
}

func (r *clipVersionRepository) GetByID(ctx context.Context, clipID string) (domain.ClipVersion, error) {
	var rec clipVersionModel
	if err := r.db.WithContext(ctx).Where("clip_id = ?", clipID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ClipVersion{}, domain.ErrNotFound
		}
		return domain.ClipVersion{}, err
	}
	return toDomainClipVersion(rec)
}

func (r *clipVersionRepository) Update(ctx context.Context, clip domain.ClipVersion) error {
	rec, err := toClipVersionModel(clip)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Where("clip_id = ?", clip.ClipID).Select("*").Updates(&rec)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *clipVersionRepository) GetSelected(ctx context.Context, campaignID string, beatOrder int) (domain.ClipVersion, error) {
	var rec clipVersionModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND beat_order = ? AND selected", campaignID, beatOrder).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ClipVersion{}, domain.ErrNotFound
		}
		return domain.ClipVersion{}, err
	}
	return toDomainClipVersion(rec)
}

func (r *clipVersionRepository) ListByBeat(ctx context.Context, campaignID string, beatOrder int) ([]domain.ClipVersion, error) {
	var rows []clipVersionModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND beat_order = ?", campaignID, beatOrder).
		Order("version_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainClipVersions(rows)
}

func (r *clipVersionRepository) ListByCampaign(ctx context.Context, campaignID string) ([]domain.ClipVersion, error) {
	var rows []clipVersionModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("beat_order ASC, version_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainClipVersions(rows)
}

func (r *clipVersionRepository) SelectVersion(ctx context.Context, campaignID string, beatOrder int, clipID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target clipVersionModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("clip_id = ? AND campaign_id = ? AND beat_order = ?", clipID, campaignID, beatOrder).
			Take(&target).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if err := tx.Model(&clipVersionModel{}).
			Where("campaign_id = ? AND beat_order = ? AND selected", campaignID, beatOrder).
			Update("selected", false).Error; err != nil {
			return err
		}
		return tx.Model(&clipVersionModel{}).
			Where("clip_id = ?", clipID).
			Update("selected", true).Error
	})
}

func toDomainClipVersions(rows []clipVersionModel) ([]domain.ClipVersion, error) {
	out := make([]domain.ClipVersion, 0, len(rows))
	for _, row := range rows {
		clip, err := toDomainClipVersion(row)
		if err != nil {
			return nil, err
		}
		out = append(out, clip)
	}
	return out, nil
}

type archiveRepository struct {
	db *gorm.DB
}

func (r *archiveRepository) Save(ctx context.Context, archived domain.ArchivedVersion) error {
	rec, err := toArchivedVersionModel(archived)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return &domain.ArchivalWriteError{BeatOrder: archived.BeatOrder, Err: err}
	}
	return nil
}

func (r *archiveRepository) GetByID(ctx context.Context, archiveID string) (domain.ArchivedVersion, error) {
	var rec archivedVersionModel
	if err := r.db.WithContext(ctx).Where("archive_id = ?", archiveID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ArchivedVersion{}, domain.ErrNotFound
		}
		return domain.ArchivedVersion{}, err
	}
	return toDomainArchivedVersion(rec)
}

func (r *archiveRepository) ListByBeat(ctx context.Context, campaignID string, beatOrder int) ([]domain.ArchivedVersion, error) {
	var rows []archivedVersionModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ? AND beat_order = ?", campaignID, beatOrder).
		Order("archived_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.ArchivedVersion, 0, len(rows))
	for _, row := range rows {
		archived, err := toDomainArchivedVersion(row)
		if err != nil {
			return nil, err
		}
		out = append(out, archived)
	}
	return out, nil
}
