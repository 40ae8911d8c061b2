package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/viralforge/adforge/internal/contracts"
	"github.com/viralforge/adforge/internal/domain"
	"github.com/viralforge/adforge/internal/ports"
)

// Estimate prices a full-generation batch without reserving anything.
func (s *Service) Estimate(ctx context.Context, actor Actor, campaignID string) (EstimateResult, error) {
	if err := s.requireActor(actor); err != nil {
		return EstimateResult{}, err
	}
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return EstimateResult{}, err
	}
	cost, err := s.batchCost(ctx, campaign)
	if err != nil {
		return EstimateResult{}, err
	}
	balance, err := s.ledger.Balance(ctx, campaign.OwnerID)
	if err != nil {
		return EstimateResult{}, err
	}
	return EstimateResult{EstimatedCredits: cost, AvailableCredits: balance}, nil
}

func (s *Service) batchCost(ctx context.Context, campaign domain.Campaign) (float64, error) {
	total := 0.0
	for _, beat := range campaign.Beats {
		clip, err := s.clips.GetSelected(ctx, campaign.CampaignID, beat.Order)
		if err != nil {
			return 0, err
		}
		total += s.cfg.Pricing.ClipCost(clip.Video.DurationSeconds, domain.StagesFor(domain.RegenerateAll))
	}
	return total, nil
}

// StartGeneration reserves the batch cost atomically and queues one job per
// beat. The reservation happens before any vendor call; a shortfall rejects
// the whole batch with the exact numbers and nothing is spent. The first two
// beats get their first frames synthesized eagerly so the worker has imagery
// to chain from.
func (s *Service) StartGeneration(ctx context.Context, actor Actor, campaignID string) (StartGenerationResult, error) {
	if err := s.requireActor(actor); err != nil {
		return StartGenerationResult{}, err
	}
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return StartGenerationResult{}, err
	}
	if campaign.Status == domain.CampaignStatusGenerating || campaign.Status == domain.CampaignStatusAssembling {
		return StartGenerationResult{}, domain.ErrGenerationActive
	}

	cost, err := s.batchCost(ctx, campaign)
	if err != nil {
		return StartGenerationResult{}, err
	}
	if err := s.ledger.CheckAndReserve(ctx, campaign.OwnerID, cost); err != nil {
		return StartGenerationResult{}, err
	}

	campaign.LastError = ""
	if err := s.transitionCampaign(ctx, &campaign, domain.CampaignStatusGenerating); err != nil {
		s.releaseCredits(ctx, campaign.OwnerID, cost)
		return StartGenerationResult{}, err
	}
	s.clearCanceled(campaign.CampaignID)

	orders := make([]int, 0, len(campaign.Beats))
	for _, beat := range campaign.Beats {
		orders = append(orders, beat.Order)
	}
	sort.Ints(orders)

	previousFrame := ""
	for i, order := range orders {
		if i >= s.cfg.EagerFrameBeats {
			break
		}
		clip, err := s.clips.GetSelected(ctx, campaign.CampaignID, order)
		if err != nil || clip.FirstFrame.ImageURL != "" {
			continue
		}
		url, frameErr := s.images.GenerateFirstFrame(ctx, ports.FirstFrameRequest{
			ReferenceImageURL: campaign.ActorImageURL,
			Prompt:            clip.FirstFrame.ImagePrompt,
			PreviousFrameURL:  previousFrame,
		})
		if frameErr != nil {
			// the beat job retries the frame; eager synthesis is a head start,
			// not a gate
			continue
		}
		clip.FirstFrame.ImageURL = url
		previousFrame = url
		_ = s.clips.Update(ctx, clip)
	}

	queued := 0
	for _, order := range orders {
		clip, err := s.clips.GetSelected(ctx, campaign.CampaignID, order)
		if err != nil {
			return StartGenerationResult{}, err
		}
		job := ports.GenerationJob{
			JobID:      uuid.NewString(),
			CampaignID: campaign.CampaignID,
			OwnerID:    campaign.OwnerID,
			BeatOrder:  order,
			ClipID:     clip.ClipID,
			Action:     domain.RegenerateAll,
			EnqueuedAt: s.nowFn(),
		}
		if err := s.queue.Enqueue(ctx, job); err != nil {
			return StartGenerationResult{}, err
		}
		queued++
	}

	remaining, err := s.ledger.Balance(ctx, campaign.OwnerID)
	if err != nil {
		remaining = 0
	}
	return StartGenerationResult{Campaign: campaign, BeatsQueued: queued, CreditsReserved: cost, CreditsRemaining: remaining}, nil
}

// Regenerate reruns one stage chain for a beat: archive the current take, run
// the requested stages on a derived draft, and commit the draft as the new
// selected version only on success. The reservation covers exactly the stages
// that will rerun.
func (s *Service) Regenerate(ctx context.Context, actor Actor, input RegenerateInput) (domain.ClipVersion, error) {
	if err := s.requireActor(actor); err != nil {
		return domain.ClipVersion{}, err
	}
	if len(domain.StagesFor(input.Action)) == 0 {
		return domain.ClipVersion{}, domain.ErrInvalidInput
	}
	campaign, err := s.campaigns.GetByID(ctx, input.CampaignID)
	if err != nil {
		return domain.ClipVersion{}, err
	}
	if _, ok := campaign.BeatByOrder(input.BeatOrder); !ok {
		return domain.ClipVersion{}, domain.ErrNotFound
	}
	current, err := s.clips.GetSelected(ctx, campaign.CampaignID, input.BeatOrder)
	if err != nil {
		return domain.ClipVersion{}, err
	}

	cost := s.cfg.Pricing.ClipCost(current.Video.DurationSeconds, domain.StagesFor(input.Action))
	if err := s.ledger.CheckAndReserve(ctx, campaign.OwnerID, cost); err != nil {
		return domain.ClipVersion{}, err
	}

	job := ports.GenerationJob{
		JobID:      uuid.NewString(),
		CampaignID: campaign.CampaignID,
		OwnerID:    campaign.OwnerID,
		BeatOrder:  input.BeatOrder,
		ClipID:     current.ClipID,
		Action:     input.Action,
		Feedback:   input.Feedback,
		EnqueuedAt: s.nowFn(),
	}
	if err := s.queue.Enqueue(ctx, job); err != nil {
		s.releaseCredits(ctx, campaign.OwnerID, cost)
		return domain.ClipVersion{}, err
	}
	return current, nil
}

// ProcessNextJob drains one generation job. Idle queues return io.EOF, which
// the worker loop treats as "nothing to do".
func (s *Service) ProcessNextJob(ctx context.Context) error {
	job, err := s.queue.Dequeue(ctx)
	if err != nil {
		return err
	}
	runErr := s.processJob(ctx, job)
	s.settleCampaign(ctx, job.CampaignID)
	return runErr
}

// settleCampaign moves a generating campaign to its resting status once every
// beat holds a terminal clip: failed when any beat failed, draft when the
// whole batch rendered and is ready to edit or assemble.
func (s *Service) settleCampaign(ctx context.Context, campaignID string) {
	campaign, err := s.campaigns.GetByID(ctx, campaignID)
	if err != nil || campaign.Status != domain.CampaignStatusGenerating {
		return
	}
	lastFailure := ""
	for _, beat := range campaign.Beats {
		clip, err := s.clips.GetSelected(ctx, campaign.CampaignID, beat.Order)
		if err != nil || !domain.IsTerminalClipStatus(clip.Status) {
			return
		}
		if clip.Status == domain.ClipStatusFailed && lastFailure == "" {
			lastFailure = clip.FailureReason
		}
	}
	to := domain.CampaignStatusDraft
	if lastFailure != "" {
		to = domain.CampaignStatusFailed
		campaign.LastError = lastFailure
	}
	_ = s.transitionCampaign(ctx, &campaign, to)
}

func (s *Service) processJob(ctx context.Context, job ports.GenerationJob) error {
	campaign, err := s.campaigns.GetByID(ctx, job.CampaignID)
	if err != nil {
		return err
	}
	clip, err := s.clips.GetByID(ctx, job.ClipID)
	if err != nil {
		clip, err = s.clips.GetSelected(ctx, job.CampaignID, job.BeatOrder)
		if err != nil {
			return err
		}
	}

	cost := s.cfg.Pricing.ClipCost(clip.Video.DurationSeconds, domain.StagesFor(job.Action))
	if s.isCanceled(campaign.CampaignID) {
		s.releaseCredits(ctx, job.OwnerID, cost)
		if !domain.IsTerminalClipStatus(clip.Status) {
			clip.Status = domain.ClipStatusFailed
			clip.FailureReason = "generation canceled"
			_ = s.clips.Update(ctx, clip)
			s.publishProgress(ctx, contracts.EventTypeClipFailed, s.progressFor(clip, "", "canceled"))
		}
		return nil
	}

	// A never-generated draft (fresh plan, script edit, canceled batch) runs
	// its stages in place and keeps its version number. Anything with media
	// behind it is a regeneration: the current take stays selected until a
	// derived draft succeeds.
	neverGenerated := clip.Status == domain.ClipStatusPending ||
		(clip.Status == domain.ClipStatusFailed && clip.Video.RawURL == "")
	if neverGenerated && clip.Video.RawURL == "" && job.Action == domain.RegenerateAll {
		return s.generateInPlace(ctx, campaign, clip)
	}
	return s.regenerateDerived(ctx, campaign, clip, job)
}

func (s *Service) generateInPlace(ctx context.Context, campaign domain.Campaign, clip domain.ClipVersion) error {
	runErr := s.runStages(ctx, campaign, &clip, domain.StagesFor(domain.RegenerateAll), func(c domain.ClipVersion) error {
		return s.clips.Update(ctx, c)
	})
	if runErr != nil {
		clip.Status = domain.ClipStatusFailed
		clip.FailureReason = runErr.Error()
		_ = s.clips.Update(ctx, clip)
		s.publishProgress(ctx, contracts.EventTypeClipFailed, s.progressFor(clip, "", runErr.Error()))
		return runErr
	}
	clip.Status = domain.ClipStatusCompleted
	clip.FailureReason = ""
	if err := s.clips.Update(ctx, clip); err != nil {
		return err
	}
	s.publishProgress(ctx, contracts.EventTypeClipCompleted, s.progressFor(clip, "", ""))
	return nil
}

func (s *Service) regenerateDerived(ctx context.Context, campaign domain.Campaign, current domain.ClipVersion, job ports.GenerationJob) error {
	// Best-effort archive before touching anything. A failure here is a
	// data-integrity warning, not a reason to skip the regeneration.
	archiveErr := s.archiveCurrent(ctx, current, job.Action)
	if archiveErr != nil {
		logArchiveWarning(ctx, archiveErr)
	}
	archived := archiveErr == nil

	draft := domain.DeriveForRegeneration(current, job.Action)
	runErr := s.runStages(ctx, campaign, &draft, domain.StagesFor(job.Action), nil)
	if runErr != nil {
		// the previously selected version stays selected and visible; a failed
		// regeneration never consumes a version number
		s.publishProgress(ctx, contracts.EventTypeClipFailed, s.progressFor(current, "", runErr.Error()))
		return runErr
	}

	// A regeneration that succeeded must be archived before it commits,
	// otherwise the history has an unrecoverable gap.
	if !archived {
		if err := s.archiveCurrent(ctx, current, job.Action); err != nil {
			return &domain.ArchivalWriteError{BeatOrder: current.BeatOrder, Err: err}
		}
	}

	draft.Status = domain.ClipStatusCompleted
	committed, err := s.clips.CreateSelected(ctx, draft)
	if err != nil {
		return err
	}
	s.publishProgress(ctx, contracts.EventTypeClipCompleted, s.progressFor(committed, "", ""))
	return nil
}

func (s *Service) archiveCurrent(ctx context.Context, current domain.ClipVersion, action domain.RegenerateAction) error {
	err := s.archives.Save(ctx, domain.ArchivedVersion{
		ArchiveID:     uuid.NewString(),
		CampaignID:    current.CampaignID,
		BeatOrder:     current.BeatOrder,
		ClipID:        current.ClipID,
		VersionNumber: current.VersionNumber,
		Action:        action,
		Snapshot:      current,
		ArchivedAt:    s.nowFn(),
	})
	if err != nil {
		return &domain.ArchivalWriteError{BeatOrder: current.BeatOrder, Err: err}
	}
	return nil
}

// runStages drives the fixed stage order for one clip. persist, when non-nil,
// flushes in-flight status to the store (in-place drafts only; derived drafts
// stay unpersisted until commit). Stages after a failed stage never run.
func (s *Service) runStages(ctx context.Context, campaign domain.Campaign, clip *domain.ClipVersion, stages []domain.Stage, persist func(domain.ClipVersion) error) error {
	for _, stage := range stages {
		if s.isCanceled(campaign.CampaignID) {
			return &domain.StageGenerationError{Stage: stage, BeatOrder: clip.BeatOrder, Err: errors.New("generation canceled")}
		}
		clip.Status = domain.StatusForStage(stage)
		if persist != nil {
			if err := persist(*clip); err != nil {
				return err
			}
		}
		s.publishProgress(ctx, contracts.EventTypeStageStarted, s.progressFor(*clip, string(stage), ""))

		if err := s.runStage(ctx, campaign, clip, stage); err != nil {
			return &domain.StageGenerationError{Stage: stage, BeatOrder: clip.BeatOrder, Err: err}
		}
		s.publishProgress(ctx, contracts.EventTypeStageCompleted, s.progressFor(*clip, string(stage), ""))
	}
	return nil
}

func (s *Service) runStage(ctx context.Context, campaign domain.Campaign, clip *domain.ClipVersion, stage domain.Stage) error {
	switch stage {
	case domain.StageFrame:
		if clip.FirstFrame.ImageURL != "" {
			return nil
		}
		url, err := s.images.GenerateFirstFrame(ctx, ports.FirstFrameRequest{
			ReferenceImageURL: campaign.ActorImageURL,
			Prompt:            clip.FirstFrame.ImagePrompt,
			PreviousFrameURL:  s.previousFrameURL(ctx, campaign.CampaignID, clip.BeatOrder),
		})
		if err != nil {
			return err
		}
		clip.FirstFrame.ImageURL = url
		return nil

	case domain.StageVideo:
		if clip.FirstFrame.ImageURL == "" {
			if err := s.runStage(ctx, campaign, clip, domain.StageFrame); err != nil {
				return err
			}
		}
		url, err := s.video.GenerateVideo(ctx, ports.VideoRequest{
			Engine:          clip.Video.Engine,
			FirstFrameURL:   clip.FirstFrame.ImageURL,
			Prompt:          clip.Video.GenerationPrompt,
			DurationSeconds: clip.Video.DurationSeconds,
		})
		if err != nil {
			return err
		}
		clip.Video.RawURL = url
		clip.Video.FinalURL = ""
		return nil

	case domain.StageVoice:
		url, err := s.voice.SynthesizeVoice(ctx, clip.Script.Text, campaign.ActorVoiceURL)
		if err != nil {
			return err
		}
		clip.Audio.VoiceURL = url
		return nil

	case domain.StageAmbient:
		if clip.Audio.AmbientURL == "" {
			url, err := s.ambient.SynthesizeAmbient(ctx, ambientPrompt(*clip))
			if err != nil {
				return err
			}
			clip.Audio.AmbientURL = url
		}
		final, err := s.mixer.Mix(ctx, ports.MixRequest{
			VideoURL:      clip.Video.RawURL,
			VoiceURL:      clip.Audio.VoiceURL,
			AmbientURL:    clip.Audio.AmbientURL,
			VoiceVolume:   clip.Audio.VoiceVolume,
			AmbientVolume: clip.Audio.AmbientVolume,
		})
		if err != nil {
			return err
		}
		clip.Video.FinalURL = final
		return nil

	default:
		return fmt.Errorf("%w: unknown stage %q", domain.ErrInvalidInput, stage)
	}
}

func (s *Service) previousFrameURL(ctx context.Context, campaignID string, beatOrder int) string {
	if beatOrder <= 1 {
		return ""
	}
	prev, err := s.clips.GetSelected(ctx, campaignID, beatOrder-1)
	if err != nil {
		return ""
	}
	return prev.FirstFrame.ImageURL
}

func (s *Service) releaseCredits(ctx context.Context, ownerID string, amount float64) {
	if amount <= 0 {
		return
	}
	_ = s.ledger.Release(ctx, ownerID, amount)
}

func (s *Service) progressFor(clip domain.ClipVersion, stage, detail string) contracts.GenerationProgress {
	return contracts.GenerationProgress{
		CampaignID:    clip.CampaignID,
		BeatOrder:     clip.BeatOrder,
		ClipID:        clip.ClipID,
		VersionNumber: clip.VersionNumber,
		Stage:         stage,
		Status:        string(clip.Status),
		Detail:        strings.TrimSpace(detail),
	}
}

func ambientPrompt(clip domain.ClipVersion) string {
	if clip.FirstFrame.Location != "" {
		return fmt.Sprintf("subtle ambient room tone of %s", clip.FirstFrame.Location)
	}
	return "subtle neutral ambient room tone"
}
