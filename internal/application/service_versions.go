package application

import (
	"context"
	"strings"

	"github.com/viralforge/adforge/internal/domain"
	"github.com/viralforge/adforge/internal/ports"
)

func (s *Service) ListVersions(ctx context.Context, actor Actor, campaignID string, beatOrder int) ([]domain.ClipVersion, error) {
	if err := s.requireActor(actor); err != nil {
		return nil, err
	}
	return s.clips.ListByBeat(ctx, campaignID, beatOrder)
}

func (s *Service) ListArchives(ctx context.Context, actor Actor, campaignID string, beatOrder int) ([]domain.ArchivedVersion, error) {
	if err := s.requireActor(actor); err != nil {
		return nil, err
	}
	return s.archives.ListByBeat(ctx, campaignID, beatOrder)
}

// SelectVersion is the explicit "pick an earlier take" override: it flips
// selection to an existing version without creating a new one.
func (s *Service) SelectVersion(ctx context.Context, actor Actor, campaignID string, beatOrder int, clipID string) (domain.ClipVersion, error) {
	if err := s.requireActor(actor); err != nil {
		return domain.ClipVersion{}, err
	}
	if strings.TrimSpace(clipID) == "" {
		return domain.ClipVersion{}, domain.ErrInvalidInput
	}
	if err := s.clips.SelectVersion(ctx, campaignID, beatOrder, clipID); err != nil {
		return domain.ClipVersion{}, err
	}
	return s.clips.GetByID(ctx, clipID)
}

// RestoreVersion rehydrates an archived take as a brand new version number.
// The old id never comes back to life; the history stays append-only.
func (s *Service) RestoreVersion(ctx context.Context, actor Actor, campaignID string, beatOrder int, archiveID string) (domain.ClipVersion, error) {
	if err := s.requireActor(actor); err != nil {
		return domain.ClipVersion{}, err
	}
	archived, err := s.archives.GetByID(ctx, archiveID)
	if err != nil {
		return domain.ClipVersion{}, err
	}
	if archived.CampaignID != campaignID || archived.BeatOrder != beatOrder {
		return domain.ClipVersion{}, domain.ErrNotFound
	}
	restored := archived.Snapshot
	restored.ClipID = ""
	restored.VersionNumber = 0
	restored.Selected = false
	return s.clips.CreateSelected(ctx, restored)
}

// EditScript commits the edited spoken line as a new draft version: the
// generation prompt is rewritten so the video engine instruction never
// diverges from the displayed script, and the stale renders are invalidated,
// which forces the beat back to pending.
func (s *Service) EditScript(ctx context.Context, actor Actor, input EditScriptInput) (domain.ClipVersion, error) {
	if err := s.requireActor(actor); err != nil {
		return domain.ClipVersion{}, err
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return domain.ClipVersion{}, domain.ErrInvalidInput
	}
	current, err := s.clips.GetSelected(ctx, input.CampaignID, input.BeatOrder)
	if err != nil {
		return domain.ClipVersion{}, err
	}
	if err := s.archiveCurrent(ctx, current, domain.RegenerateVideo); err != nil {
		// best-effort history; the edit itself must not be blocked
		logArchiveWarning(ctx, err)
	}

	draft := current
	draft.ClipID = ""
	draft.VersionNumber = 0
	draft.Selected = false
	draft.Script = domain.Script{Text: text, WordCount: domain.CountWords(text)}
	draft.Video.GenerationPrompt = domain.RewritePromptScript(current.Video.GenerationPrompt, text)
	draft.Video.RawURL = ""
	draft.Video.FinalURL = ""
	draft.Audio.VoiceURL = ""
	draft.Transcription = nil
	draft.Adjustments = domain.Adjustments{User: current.Adjustments.User}
	draft.Status = domain.ClipStatusPending
	draft.FailureReason = ""
	return s.clips.CreateSelected(ctx, draft)
}

// SetAdjustments records an explicit user trim/speed edit on the selected
// version. User adjustments shadow auto values until reset.
func (s *Service) SetAdjustments(ctx context.Context, actor Actor, input SetAdjustmentsInput) (domain.ClipVersion, error) {
	if err := s.requireActor(actor); err != nil {
		return domain.ClipVersion{}, err
	}
	clip, err := s.clips.GetSelected(ctx, input.CampaignID, input.BeatOrder)
	if err != nil {
		return domain.ClipVersion{}, err
	}
	edit := domain.ClipAdjustment{
		TrimStart: input.TrimStart,
		TrimEnd:   input.TrimEnd,
		Speed:     domain.ClampSpeed(input.Speed),
		UpdatedAt: s.nowFn(),
	}
	if err := domain.ValidateUserAdjustment(edit, clip.Video.DurationSeconds); err != nil {
		return domain.ClipVersion{}, err
	}
	clip.Adjustments.User = &edit
	if err := s.clips.Update(ctx, clip); err != nil {
		return domain.ClipVersion{}, err
	}
	return clip, nil
}

// ResetAdjustments clears the user edit entirely so future automatic
// recomputation is not shadowed. Auto values are left in place.
func (s *Service) ResetAdjustments(ctx context.Context, actor Actor, campaignID string, beatOrder int) (domain.ClipVersion, error) {
	if err := s.requireActor(actor); err != nil {
		return domain.ClipVersion{}, err
	}
	clip, err := s.clips.GetSelected(ctx, campaignID, beatOrder)
	if err != nil {
		return domain.ClipVersion{}, err
	}
	clip.Adjustments.User = nil
	if err := s.clips.Update(ctx, clip); err != nil {
		return domain.ClipVersion{}, err
	}
	return clip, nil
}

// AnalyzeClip transcribes the selected version and derives its automatic
// trim/speed from the speech boundaries. The script model does the analysis
// when reachable; the local window analysis is the fallback so a vendor
// outage never blocks auto adjustments.
func (s *Service) AnalyzeClip(ctx context.Context, actor Actor, campaignID string, beatOrder int) (domain.ClipVersion, error) {
	if err := s.requireActor(actor); err != nil {
		return domain.ClipVersion{}, err
	}
	clip, err := s.clips.GetSelected(ctx, campaignID, beatOrder)
	if err != nil {
		return domain.ClipVersion{}, err
	}
	mediaURL := clip.Video.FinalURL
	if mediaURL == "" {
		mediaURL = clip.Video.RawURL
	}
	if mediaURL == "" {
		return domain.ClipVersion{}, domain.ErrCampaignNotReady
	}

	tr, err := s.asr.Transcribe(ctx, mediaURL)
	if err != nil {
		return domain.ClipVersion{}, err
	}
	transcription := domain.Transcription{Text: tr.Text, Words: tr.Words}

	analysis, err := s.scripts.AnalyzeSpeechBoundaries(ctx, ports.BoundaryRequest{
		Transcription:   transcription,
		OriginalScript:  clip.Script.Text,
		DurationSeconds: clip.Video.DurationSeconds,
	})
	if err != nil {
		analysis = domain.AnalyzeSpeechWindow(tr.Words, clip.Script.Text, clip.Video.DurationSeconds)
	}

	transcription.SpeechStart = analysis.SpeechStart
	transcription.SpeechEnd = analysis.SpeechEnd
	transcription.SyllablesPerSecond = analysis.SyllablesPerSecond
	transcription.SuggestedSpeed = domain.ClampSpeed(analysis.SuggestedSpeed)

	clip.Transcription = &transcription
	clip.Adjustments.Auto = domain.AutoAdjustmentFrom(analysis, s.nowFn())
	if err := s.clips.Update(ctx, clip); err != nil {
		return domain.ClipVersion{}, err
	}
	return clip, nil
}
