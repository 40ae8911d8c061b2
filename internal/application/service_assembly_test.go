package application_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/viralforge/adforge/internal/application"
	"github.com/viralforge/adforge/internal/domain"
)

func TestAssembleConcatenatesSelectedClips(t *testing.T) {
	env := newEnv()
	campaign := env.mustGenerate(t)

	result, err := env.service.Assemble(context.Background(), testActor(), campaign.CampaignID)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if result.Campaign.Status != domain.CampaignStatusCompleted {
		t.Fatalf("status = %s, want completed", result.Campaign.Status)
	}
	if result.Campaign.FinalVideoURL == "" || result.Campaign.FinalDurationSeconds == 0 {
		t.Fatalf("final output missing: %+v", result.Campaign)
	}
	if len(result.ClipIDs) != 3 || len(result.DegradedBeats) != 0 {
		t.Fatalf("clips=%d degraded=%v, want 3 clips none degraded", len(result.ClipIDs), result.DegradedBeats)
	}
	if env.xform.normalizeCalls != 3 || env.xform.concatCalls != 1 {
		t.Fatalf("normalize=%d concat=%d, want 3 and 1", env.xform.normalizeCalls, env.xform.concatCalls)
	}
	for i, url := range env.xform.concatInputs {
		if !strings.Contains(url, "normalized=1") {
			t.Fatalf("clip %d concatenated without normalization: %s", i, url)
		}
	}
}

func TestAssembleMovesToAssemblingBeforeNetworkCalls(t *testing.T) {
	env := newEnv()
	campaign := env.mustGenerate(t)

	var statusDuringNormalize domain.CampaignStatus
	env.xform.onNormalize = func() {
		c, _ := env.repos.Campaigns.GetByID(context.Background(), campaign.CampaignID)
		statusDuringNormalize = c.Status
	}
	if _, err := env.service.Assemble(context.Background(), testActor(), campaign.CampaignID); err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if statusDuringNormalize != domain.CampaignStatusAssembling {
		t.Fatalf("status during normalization = %s, want assembling", statusDuringNormalize)
	}
}

func TestAssembleDegradesFailedNormalizationWithinTolerance(t *testing.T) {
	env := newEnv()
	campaign := env.mustGenerate(t)

	victim, _ := env.repos.Clips.GetSelected(context.Background(), campaign.CampaignID, 2)
	env.xform.failSources = map[string]bool{victim.Video.FinalURL: true}

	result, err := env.service.Assemble(context.Background(), testActor(), campaign.CampaignID)
	if err != nil {
		t.Fatalf("one failure out of three should degrade, not abort: %v", err)
	}
	if len(result.DegradedBeats) != 1 || result.DegradedBeats[0] != 2 {
		t.Fatalf("degraded = %v, want [2]", result.DegradedBeats)
	}
	if result.Campaign.Status != domain.CampaignStatusCompleted {
		t.Fatalf("status = %s, want completed", result.Campaign.Status)
	}
	// The degraded beat joins the cut as its raw mixed URL.
	if env.xform.concatInputs[1] != victim.Video.FinalURL {
		t.Fatalf("degraded clip url = %s, want raw %s", env.xform.concatInputs[1], victim.Video.FinalURL)
	}
}

func TestAssembleAbortsBeyondFailureTolerance(t *testing.T) {
	env := newEnv()
	campaign := env.mustGenerate(t)

	first, _ := env.repos.Clips.GetSelected(context.Background(), campaign.CampaignID, 1)
	second, _ := env.repos.Clips.GetSelected(context.Background(), campaign.CampaignID, 2)
	env.xform.failSources = map[string]bool{first.Video.FinalURL: true, second.Video.FinalURL: true}

	_, err := env.service.Assemble(context.Background(), testActor(), campaign.CampaignID)
	var asmErr *domain.AssemblyError
	if !errors.As(err, &asmErr) {
		t.Fatalf("expected assembly failure, got %v", err)
	}
	if !asmErr.Retryable {
		t.Fatalf("normalization wipeout should be retryable")
	}
	if len(asmErr.Failures) != 2 {
		t.Fatalf("failures = %d, want 2", len(asmErr.Failures))
	}
	if env.xform.concatCalls != 0 {
		t.Fatalf("concatenation requested despite aborted assembly")
	}
	c, _ := env.repos.Campaigns.GetByID(context.Background(), campaign.CampaignID)
	if c.Status != domain.CampaignStatusFailed || c.LastError == "" {
		t.Fatalf("campaign = %s %q, want failed with reason", c.Status, c.LastError)
	}
}

func TestAssembleRequiresCompletedClips(t *testing.T) {
	env := newEnv()
	result := env.mustCreatePlan(t)

	_, err := env.service.Assemble(context.Background(), testActor(), result.Campaign.CampaignID)
	if err != domain.ErrCampaignNotReady {
		t.Fatalf("expected not ready, got %v", err)
	}
	if env.xform.normalizeCalls != 0 {
		t.Fatalf("transform called for an unready campaign")
	}
	c, _ := env.repos.Campaigns.GetByID(context.Background(), result.Campaign.CampaignID)
	if c.Status != domain.CampaignStatusDraft {
		t.Fatalf("status = %s, want untouched draft", c.Status)
	}
}

func TestAssemblePrefersSelectedVersionPerBeat(t *testing.T) {
	env := newEnv()
	campaign := env.mustGenerate(t)

	// Regenerate beat 1's voice, then flip selection back to the first take.
	if _, err := env.service.Regenerate(context.Background(), testActor(), application.RegenerateInput{
		CampaignID: campaign.CampaignID,
		BeatOrder:  1,
		Action:     domain.RegenerateVoice,
	}); err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	env.drainQueue(t)
	versions, _ := env.repos.Clips.ListByBeat(context.Background(), campaign.CampaignID, 1)
	if _, err := env.service.SelectVersion(context.Background(), testActor(), campaign.CampaignID, 1, versions[0].ClipID); err != nil {
		t.Fatalf("select version: %v", err)
	}

	result, err := env.service.Assemble(context.Background(), testActor(), campaign.CampaignID)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if result.ClipIDs[0] != versions[0].ClipID {
		t.Fatalf("assembled clip = %s, want the re-selected v1 %s", result.ClipIDs[0], versions[0].ClipID)
	}
}

func TestAssembleAppliesEffectiveAdjustments(t *testing.T) {
	env := newEnv()
	campaign := env.mustGenerate(t)
	if _, err := env.service.SetAdjustments(context.Background(), testActor(), application.SetAdjustmentsInput{
		CampaignID: campaign.CampaignID,
		BeatOrder:  1,
		TrimStart:  1.0,
		TrimEnd:    5.0,
		Speed:      1.2,
	}); err != nil {
		t.Fatalf("set adjustments: %v", err)
	}

	if _, err := env.service.Assemble(context.Background(), testActor(), campaign.CampaignID); err != nil {
		t.Fatalf("assemble: %v", err)
	}
	req := env.xform.normalizeReqs[0]
	if req.TrimStart != 1.0 || req.TrimEnd != 5.0 || req.Speed != 1.2 {
		t.Fatalf("normalization request = %+v, want the user trim and speed", req)
	}
	// Beats without edits normalize with the full-clip defaults.
	if req2 := env.xform.normalizeReqs[1]; req2.TrimStart != 0 || req2.TrimEnd != 6 || req2.Speed != 1.0 {
		t.Fatalf("unedited beat request = %+v, want full clip at normal speed", req2)
	}
}
