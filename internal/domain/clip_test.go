package domain

import (
	"testing"
)

func TestParseRegenerateAction(t *testing.T) {
	if action, err := ParseRegenerateAction("  Regenerate_Voice "); err != nil || action != RegenerateVoice {
		t.Fatalf("got %q, %v", action, err)
	}
	if _, err := ParseRegenerateAction("regenerate_everything"); err != ErrInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestStagesForCascade(t *testing.T) {
	cases := []struct {
		action RegenerateAction
		want   []Stage
	}{
		{RegenerateFrame, []Stage{StageFrame, StageVideo, StageVoice, StageAmbient}},
		{RegenerateVideo, []Stage{StageVideo, StageVoice, StageAmbient}},
		{RegenerateVoice, []Stage{StageVoice, StageAmbient}},
		{RegenerateAmbient, []Stage{StageAmbient}},
		{RegenerateAll, []Stage{StageFrame, StageVideo, StageVoice, StageAmbient}},
	}
	for _, c := range cases {
		got := StagesFor(c.action)
		if len(got) != len(c.want) {
			t.Fatalf("%s: got %v, want %v", c.action, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("%s: got %v, want %v", c.action, got, c.want)
			}
		}
	}
}

func TestDeriveForRegeneration(t *testing.T) {
	src := ClipVersion{
		ClipID:        "clip-1",
		CampaignID:    "camp-1",
		BeatOrder:     2,
		VersionNumber: 3,
		FirstFrame:    FirstFrame{ImagePrompt: "actor in kitchen", ImageURL: "https://cdn/frame.png"},
		Script:        Script{Text: "line", WordCount: 1},
		Video:         Video{Engine: EngineVeo, DurationSeconds: 6, RawURL: "https://cdn/raw.mp4", FinalURL: "https://cdn/final.mp4"},
		Audio:         Audio{VoiceURL: "https://cdn/voice.mp3", AmbientURL: "https://cdn/amb.mp3", VoiceVolume: 1, AmbientVolume: 0.25},
		Transcription: &Transcription{Text: "line"},
		Adjustments: Adjustments{
			Auto: &ClipAdjustment{TrimStart: 0.1, TrimEnd: 5.9, Speed: 1.1},
			User: &ClipAdjustment{TrimStart: 0.5, TrimEnd: 5.5, Speed: 1.0},
		},
		Selected: true,
		Status:   ClipStatusCompleted,
	}

	draft := DeriveForRegeneration(src, RegenerateVoice)
	if draft.ClipID != "" || draft.VersionNumber != 0 || draft.Selected || draft.Status != ClipStatusPending {
		t.Fatalf("draft identity not reset: %+v", draft)
	}
	if draft.Audio.VoiceURL != "" || draft.Video.FinalURL != "" || draft.Audio.AmbientURL != "" {
		t.Fatalf("voice regeneration should clear voice, ambient and mix: %+v", draft.Audio)
	}
	if draft.Video.RawURL != "https://cdn/raw.mp4" || draft.FirstFrame.ImageURL != "https://cdn/frame.png" {
		t.Fatalf("upstream outputs should be kept: %+v", draft)
	}
	if draft.Transcription != nil {
		t.Fatalf("transcription belongs to the old render")
	}
	if draft.Adjustments.Auto != nil {
		t.Fatalf("auto adjustment belongs to the old render")
	}
	if draft.Adjustments.User == nil || draft.Adjustments.User.TrimStart != 0.5 {
		t.Fatalf("user edit should carry over: %+v", draft.Adjustments)
	}

	// Source untouched.
	if !src.Selected || src.Video.FinalURL == "" {
		t.Fatalf("derivation mutated its source: %+v", src)
	}

	full := DeriveForRegeneration(src, RegenerateAll)
	if full.FirstFrame.ImageURL != "" || full.Video.RawURL != "" {
		t.Fatalf("full regeneration should clear every output: %+v", full)
	}
}

func TestPricingBatchCost(t *testing.T) {
	p := DefaultPricing()
	specs := []BeatSpec{
		{Engine: EngineVeo, DurationSeconds: 6},
		{Engine: EngineKling, DurationSeconds: 5},
	}
	// Per clip: frame 8 + video 10/s + voice 15 + ambient 5.
	want := (8 + 60 + 15 + 5) + (8 + 50 + 15 + 5.0)
	if got := p.BatchCost(specs); got != want {
		t.Fatalf("batch cost = %v, want %v", got, want)
	}
	if got := p.ClipCost(6, StagesFor(RegenerateVoice)); got != 20 {
		t.Fatalf("voice rerun cost = %v, want 20", got)
	}
}
