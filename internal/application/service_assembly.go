package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/viralforge/adforge/internal/contracts"
	"github.com/viralforge/adforge/internal/domain"
	"github.com/viralforge/adforge/internal/ports"
)

// Assemble selects one clip per beat, normalizes each through the transform
// service, and requests the final concatenation. The campaign is moved to
// assembling before any network call and only finalized from the response;
// there is no optimistic completed transition.
func (s *Service) Assemble(ctx context.Context, actor Actor, campaignID string) (AssembleResult, error) {
	if err := s.requireActor(actor); err != nil {
		return AssembleResult{}, err
	}
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return AssembleResult{}, err
	}
	if campaign.Status == domain.CampaignStatusAssembling {
		return AssembleResult{}, domain.ErrGenerationActive
	}

	picks, err := s.pickAssemblyClips(ctx, campaign)
	if err != nil {
		return AssembleResult{}, err
	}

	campaign.LastError = ""
	campaign.AttemptedClipIDs = clipIDs(picks)
	if err := s.transitionCampaign(ctx, &campaign, domain.CampaignStatusAssembling); err != nil {
		return AssembleResult{}, err
	}
	s.publishProgress(ctx, contracts.EventTypeAssemblyStarted, contracts.GenerationProgress{
		CampaignID: campaign.CampaignID,
		Status:     string(campaign.Status),
	})

	ctx, cancel := context.WithTimeout(ctx, s.cfg.AssemblyTimeout)
	defer cancel()

	urls, degraded, failures := s.normalizeClips(ctx, picks)
	if float64(len(failures)) >= s.cfg.FailureTolerance*float64(len(picks)) {
		asmErr := &domain.AssemblyError{
			Reason:    fmt.Sprintf("%d of %d clips failed normalization", len(failures), len(picks)),
			Retryable: true,
			Failures:  failures,
		}
		s.failAssembly(ctx, campaign, asmErr)
		return AssembleResult{}, asmErr
	}

	concat, err := s.xform.Concatenate(ctx, urls)
	if err != nil {
		asmErr := &domain.AssemblyError{
			Reason:    fmt.Sprintf("concatenation failed: %v", err),
			Retryable: errors.Is(err, context.DeadlineExceeded),
			Failures:  failures,
		}
		s.failAssembly(ctx, campaign, asmErr)
		return AssembleResult{}, asmErr
	}

	campaign.FinalVideoURL = concat.FinalURL
	campaign.FinalDurationSeconds = concat.DurationSeconds
	if err := s.transitionCampaign(ctx, &campaign, domain.CampaignStatusCompleted); err != nil {
		return AssembleResult{}, err
	}
	s.publishProgress(ctx, contracts.EventTypeAssemblyCompleted, contracts.GenerationProgress{
		CampaignID: campaign.CampaignID,
		Status:     string(campaign.Status),
	})
	return AssembleResult{Campaign: campaign, ClipIDs: campaign.AttemptedClipIDs, DegradedBeats: degraded}, nil
}

// pickAssemblyClips resolves exactly one completed clip per beat rank:
// the selected version, else the most recently created one. More than one
// selected version for a rank is a data-integrity violation resolved as
// most-recent-wins, never by aborting mid-assembly.
func (s *Service) pickAssemblyClips(ctx context.Context, campaign domain.Campaign) ([]domain.ClipVersion, error) {
	orders := make([]int, 0, len(campaign.Beats))
	for _, beat := range campaign.Beats {
		orders = append(orders, beat.Order)
	}
	sort.Ints(orders)

	picks := make([]domain.ClipVersion, 0, len(orders))
	for _, order := range orders {
		versions, err := s.clips.ListByBeat(ctx, campaign.CampaignID, order)
		if err != nil {
			return nil, err
		}
		completed := make([]domain.ClipVersion, 0, len(versions))
		for _, v := range versions {
			if v.Status == domain.ClipStatusCompleted {
				completed = append(completed, v)
			}
		}
		if len(completed) == 0 {
			return nil, domain.ErrCampaignNotReady
		}
		sort.Slice(completed, func(i, j int) bool {
			if completed[i].CreatedAt.Equal(completed[j].CreatedAt) {
				return completed[i].VersionNumber > completed[j].VersionNumber
			}
			return completed[i].CreatedAt.After(completed[j].CreatedAt)
		})
		pick := completed[0]
		for _, v := range completed {
			if v.Selected {
				pick = v
				break
			}
		}
		picks = append(picks, pick)
	}
	return picks, nil
}

// normalizeClips re-encodes every pick with normalized timestamps and the
// resolved trim/speed. Normalization is unconditionally mandatory: the video
// engine emits clips with timestamp drift that loses frames under naive
// concatenation. A failed clip degrades to its raw URL.
func (s *Service) normalizeClips(ctx context.Context, picks []domain.ClipVersion) ([]string, []int, []*domain.NormalizationError) {
	urls := make([]string, 0, len(picks))
	degraded := make([]int, 0)
	failures := make([]*domain.NormalizationError, 0)

	for _, clip := range picks {
		source := clip.Video.FinalURL
		if source == "" {
			source = clip.Video.RawURL
		}
		eff := domain.ResolveAdjustments(clip.Adjustments, clip.Video.DurationSeconds)
		out, err := s.xform.NormalizeClip(ctx, ports.NormalizeRequest{
			URL:       source,
			TrimStart: eff.TrimStart,
			TrimEnd:   eff.TrimEnd,
			Speed:     eff.Speed,
		})
		if err != nil {
			failures = append(failures, &domain.NormalizationError{BeatOrder: clip.BeatOrder, ClipID: clip.ClipID, Err: err})
			degraded = append(degraded, clip.BeatOrder)
			urls = append(urls, source)
			continue
		}
		urls = append(urls, out.URL)
	}
	return urls, degraded, failures
}

func (s *Service) failAssembly(ctx context.Context, campaign domain.Campaign, asmErr *domain.AssemblyError) {
	campaign.LastError = asmErr.Error()
	_ = s.transitionCampaign(ctx, &campaign, domain.CampaignStatusFailed)
	s.publishProgress(ctx, contracts.EventTypeAssemblyFailed, contracts.GenerationProgress{
		CampaignID: campaign.CampaignID,
		Status:     string(campaign.Status),
		Detail:     strings.TrimSpace(asmErr.Reason),
	})
}

func clipIDs(picks []domain.ClipVersion) []string {
	ids := make([]string, 0, len(picks))
	for _, clip := range picks {
		ids = append(ids, clip.ClipID)
	}
	return ids
}
