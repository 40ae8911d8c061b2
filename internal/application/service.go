package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/viralforge/adforge/internal/contracts"
	"github.com/viralforge/adforge/internal/domain"
)

// logArchiveWarning flags a history gap without failing the operation that
// triggered the archive.
func logArchiveWarning(ctx context.Context, err error) {
	slog.Default().WarnContext(ctx, "archival write failed", "error", err)
}

func (s *Service) requireActor(actor Actor) error {
	if strings.TrimSpace(actor.SubjectID) == "" {
		return domain.ErrUnauthorized
	}
	return nil
}

// transitionCampaign persists a status change after checking it against the
// campaign state machine. Callers set LastError and other fields first.
func (s *Service) transitionCampaign(ctx context.Context, campaign *domain.Campaign, to domain.CampaignStatus) error {
	if !domain.ValidCampaignTransition(campaign.Status, to) {
		return fmt.Errorf("%w: campaign cannot move from %s to %s", domain.ErrCampaignNotReady, campaign.Status, to)
	}
	campaign.Status = to
	campaign.UpdatedAt = s.nowFn()
	return s.campaigns.Update(ctx, *campaign)
}

// GetCampaign returns the campaign with its currently selected clip per beat.
func (s *Service) GetCampaign(ctx context.Context, actor Actor, campaignID string) (CampaignDetail, error) {
	if err := s.requireActor(actor); err != nil {
		return CampaignDetail{}, err
	}
	if strings.TrimSpace(campaignID) == "" {
		return CampaignDetail{}, domain.ErrInvalidInput
	}
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return CampaignDetail{}, err
	}
	versions, err := s.clips.ListByCampaign(ctx, campaignID)
	if err != nil {
		return CampaignDetail{}, err
	}
	selected := make([]domain.ClipVersion, 0, len(campaign.Beats))
	for _, v := range versions {
		if v.Selected {
			selected = append(selected, v)
		}
	}
	return CampaignDetail{Campaign: campaign, Clips: selected}, nil
}

func (s *Service) publishProgress(ctx context.Context, eventType string, data contracts.GenerationProgress) {
	if s.progress == nil {
		return
	}
	_ = s.progress.Publish(ctx, contracts.EventEnvelope{
		EventID:          uuid.NewString(),
		EventType:        eventType,
		OccurredAt:       s.nowFn(),
		PartitionKeyPath: "data.campaign_id",
		PartitionKey:     data.CampaignID,
		SourceService:    s.cfg.ServiceName,
		SchemaVersion:    "1.0",
		Data:             data,
	})
}

// Cancel stops issuing new stage requests for the campaign. In-flight vendor
// calls resolve normally; a half-finished clip is marked failed, not left
// dangling. A generating campaign moves to failed immediately so a fresh
// StartGeneration is accepted once the queue drains.
func (s *Service) Cancel(ctx context.Context, actor Actor, campaignID string) error {
	if err := s.requireActor(actor); err != nil {
		return err
	}
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return err
	}
	s.cancelMu.Lock()
	s.canceled[campaignID] = true
	s.cancelMu.Unlock()

	if campaign.Status == domain.CampaignStatusGenerating {
		campaign.LastError = "generation canceled"
		return s.transitionCampaign(ctx, &campaign, domain.CampaignStatusFailed)
	}
	return nil
}

func (s *Service) isCanceled(campaignID string) bool {
	s.cancelMu.Lock()
	defer s.cancelMu.Unlock()
	return s.canceled[campaignID]
}

func (s *Service) clearCanceled(campaignID string) {
	s.cancelMu.Lock()
	delete(s.canceled, campaignID)
	s.cancelMu.Unlock()
}
