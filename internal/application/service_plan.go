package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/viralforge/adforge/internal/domain"
	"github.com/viralforge/adforge/internal/ports"
)

var defaultStructure = []domain.BeatKind{domain.BeatHook, domain.BeatProblem, domain.BeatSolution, domain.BeatProof, domain.BeatCTA}

// CreatePlan asks the script model for a beat plan, reconciles every script to
// its (engine, duration) word bound, and persists the accepted plan as a draft
// campaign with one pending version-1 clip per beat. An out-of-bound script is
// never returned to the caller: it is rewritten up to the configured attempt
// limit and failing that the whole plan fails. There is no partial plan.
func (s *Service) CreatePlan(ctx context.Context, actor Actor, input CreatePlanInput) (PlanResult, error) {
	if err := s.requireActor(actor); err != nil {
		return PlanResult{}, err
	}
	if strings.TrimSpace(input.Brief.Product) == "" || strings.TrimSpace(input.Actor.ActorID) == "" {
		return PlanResult{}, domain.ErrInvalidInput
	}
	preset := input.Preset
	if len(preset.Structure) == 0 {
		preset.Structure = defaultStructure
	}
	for _, kind := range preset.Structure {
		if !domain.IsBeatKind(string(kind)) {
			return PlanResult{}, fmt.Errorf("%w: unknown beat kind %q", domain.ErrInvalidInput, kind)
		}
	}
	if preset.DefaultEngine == "" {
		preset.DefaultEngine = domain.EngineVeo
	}
	if preset.DefaultClipSeconds <= 0 {
		preset.DefaultClipSeconds = 6
	}

	plan, err := s.scripts.GeneratePlan(ctx, ports.PlanRequest{Actor: input.Actor, Preset: preset, Brief: input.Brief, Product: input.Product})
	if err != nil {
		var planErr *domain.PlanGenerationError
		if errors.As(err, &planErr) {
			return PlanResult{}, planErr
		}
		return PlanResult{}, &domain.PlanGenerationError{Reason: err.Error()}
	}

	for i := range plan.Beats {
		beat := &plan.Beats[i]
		beat.Order = i + 1
		if beat.Engine == "" {
			beat.Engine = preset.DefaultEngine
		}
		if beat.DurationSeconds <= 0 {
			beat.DurationSeconds = preset.DefaultClipSeconds
		}
		if preset.SceneMode == domain.SceneModePerBeat {
			if loc, ok := preset.PerBeatLocations[beat.Order]; ok {
				beat.Location = loc
			}
		} else if preset.Location != "" {
			beat.Location = preset.Location
		}
		if err := s.reconcileScriptBound(ctx, beat, preset, input.Brief); err != nil {
			return PlanResult{}, err
		}
		beat.WordCount = domain.CountWords(beat.ScriptText)
		beat.GenerationPrompt = domain.ComposeGenerationPrompt(*beat, preset.CameraStyle)
	}

	if err := domain.ValidatePlan(plan, preset); err != nil {
		return PlanResult{}, err
	}

	now := s.nowFn()
	campaign := domain.Campaign{
		CampaignID:    uuid.NewString(),
		OwnerID:       actor.SubjectID,
		Title:         plan.Title,
		Language:      input.Brief.Language,
		ActorID:       input.Actor.ActorID,
		ActorImageURL: input.Actor.ReferenceImageURL,
		ActorVoiceURL: input.Actor.VoiceReferenceURL,
		PresetID:      preset.PresetID,
		Status:        domain.CampaignStatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, beat := range plan.Beats {
		campaign.Beats = append(campaign.Beats, domain.Beat{Order: beat.Order, Kind: beat.Kind})
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		return PlanResult{}, err
	}

	for _, beat := range plan.Beats {
		draft := domain.ClipVersion{
			CampaignID: campaign.CampaignID,
			BeatOrder:  beat.Order,
			FirstFrame: domain.FirstFrame{
				ImagePrompt: beat.FirstFramePrompt,
				Expression:  beat.Expression,
				Gesture:     beat.Gesture,
				Location:    beat.Location,
			},
			Script: domain.Script{Text: beat.ScriptText, WordCount: beat.WordCount},
			Video: domain.Video{
				Engine:           beat.Engine,
				DurationSeconds:  beat.DurationSeconds,
				GenerationPrompt: beat.GenerationPrompt,
			},
			Audio:  domain.Audio{VoiceVolume: domain.DefaultVoiceVolume, AmbientVolume: domain.DefaultAmbientVolume},
			Status: domain.ClipStatusPending,
		}
		if _, err := s.clips.CreateSelected(ctx, draft); err != nil {
			return PlanResult{}, err
		}
	}

	return PlanResult{Campaign: campaign, Specs: plan.Beats}, nil
}

// reconcileScriptBound rewrites a beat script until its word count fits the
// engine/duration bound. The script model does the densifying or shortening;
// this loop only judges the result.
func (s *Service) reconcileScriptBound(ctx context.Context, beat *domain.BeatSpec, preset domain.StylePreset, brief domain.CampaignBrief) error {
	for attempt := 0; ; attempt++ {
		check, bound, err := domain.CheckScriptBound(beat.Engine, beat.DurationSeconds, beat.ScriptText)
		if err != nil {
			return &domain.PlanGenerationError{Reason: err.Error()}
		}
		if check == domain.BoundOK {
			return nil
		}
		if attempt >= s.cfg.MaxRewriteAttempts {
			return &domain.PlanGenerationError{
				Reason: fmt.Sprintf("beat %d script stayed out of bound [%d,%d] after %d rewrites", beat.Order, bound.Min, bound.Max, attempt),
			}
		}
		feedback := "shorten the script"
		if check == domain.BoundUnder {
			feedback = "densify the script with more substance"
		}
		script, err := s.scripts.RegenerateScript(ctx, ports.ScriptRewriteRequest{
			ScriptText:      beat.ScriptText,
			Kind:            beat.Kind,
			Engine:          beat.Engine,
			DurationSeconds: beat.DurationSeconds,
			Bound:           bound,
			Tone:            preset.Tone,
			Language:        brief.Language,
			Feedback:        feedback,
		})
		if err != nil {
			return &domain.PlanGenerationError{Reason: fmt.Sprintf("beat %d rewrite failed: %v", beat.Order, err)}
		}
		beat.ScriptText = script.Text
	}
}
