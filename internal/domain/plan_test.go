package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestWordBoundFor(t *testing.T) {
	bound, err := WordBoundFor(EngineVeo, 6)
	if err != nil {
		t.Fatalf("veo 6s bound: %v", err)
	}
	if bound.Min != 18 || bound.Max != 22 {
		t.Fatalf("veo 6s bound = [%d,%d], want [18,22]", bound.Min, bound.Max)
	}

	if _, err := WordBoundFor(EngineKling, 6); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("kling 6s should be unsupported, got %v", err)
	}
	if _, err := WordBoundFor(EngineVeo, 6.5); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("fractional duration should be unsupported, got %v", err)
	}
	if _, err := WordBoundFor("sora", 6); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown engine should be rejected, got %v", err)
	}
}

func TestCheckScriptBound(t *testing.T) {
	short := strings.Repeat("go ", 10)
	long := strings.Repeat("go ", 30)
	fit := strings.Repeat("go ", 20)

	if check, _, err := CheckScriptBound(EngineVeo, 6, short); err != nil || check != BoundUnder {
		t.Fatalf("10 words on veo 6s: check=%v err=%v, want under", check, err)
	}
	if check, _, err := CheckScriptBound(EngineVeo, 6, long); err != nil || check != BoundOver {
		t.Fatalf("30 words on veo 6s: check=%v err=%v, want over", check, err)
	}
	if check, _, err := CheckScriptBound(EngineVeo, 6, fit); err != nil || check != BoundOK {
		t.Fatalf("20 words on veo 6s: check=%v err=%v, want ok", check, err)
	}
}

func TestComposeAndRewriteGenerationPrompt(t *testing.T) {
	spec := BeatSpec{
		Order:      1,
		Kind:       BeatHook,
		ScriptText: "Stop scrolling for one second",
		Expression: "surprised",
		Gesture:    "leans toward the camera",
		Location:   "bright kitchen",
	}
	prompt := ComposeGenerationPrompt(spec, "handheld selfie framing")
	for _, want := range []string{"handheld selfie framing", "bright kitchen", "surprised", "leans toward the camera", `"Stop scrolling for one second"`} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q: %s", want, prompt)
		}
	}

	rewritten := RewritePromptScript(prompt, "Here is the new line")
	if !strings.Contains(rewritten, `"Here is the new line"`) {
		t.Fatalf("rewrite did not embed new script: %s", rewritten)
	}
	if strings.Contains(rewritten, "Stop scrolling") {
		t.Fatalf("rewrite kept old script: %s", rewritten)
	}
	if !strings.Contains(rewritten, "bright kitchen") {
		t.Fatalf("rewrite dropped scene directives: %s", rewritten)
	}
}

func TestRewritePromptScriptWithoutMarker(t *testing.T) {
	out := RewritePromptScript("a bare scene description", "spoken line")
	if !strings.Contains(out, `The actor says: "spoken line"`) {
		t.Fatalf("expected marker appended, got %s", out)
	}
}

func validPlan() (Plan, StylePreset) {
	preset := StylePreset{
		PresetID:      "ugc-energetic",
		Structure:     []BeatKind{BeatHook, BeatProblem, BeatCTA},
		SceneMode:     SceneModeConstant,
		DefaultEngine: EngineVeo,
	}
	script := strings.Repeat("word ", 20)
	beats := make([]BeatSpec, 0, 3)
	for i, kind := range preset.Structure {
		beats = append(beats, BeatSpec{
			Order:           i + 1,
			Kind:            kind,
			ScriptText:      script,
			Location:        "studio apartment",
			Engine:          EngineVeo,
			DurationSeconds: 6,
		})
	}
	return Plan{Title: "demo", Beats: beats}, preset
}

func TestValidatePlan(t *testing.T) {
	plan, preset := validPlan()
	if err := ValidatePlan(plan, preset); err != nil {
		t.Fatalf("valid plan rejected: %v", err)
	}

	var planErr *PlanGenerationError

	broken, _ := validPlan()
	broken.Beats[1].Order = 5
	if err := ValidatePlan(broken, preset); !errors.As(err, &planErr) {
		t.Fatalf("non-contiguous orders should fail, got %v", err)
	}

	broken, _ = validPlan()
	broken.Beats[2].Kind = BeatProof
	if err := ValidatePlan(broken, preset); !errors.As(err, &planErr) {
		t.Fatalf("structure mismatch should fail, got %v", err)
	}

	broken, _ = validPlan()
	broken.Beats[0].ScriptText = "too short"
	if err := ValidatePlan(broken, preset); !errors.As(err, &planErr) {
		t.Fatalf("out-of-bound script should fail, got %v", err)
	}

	broken, _ = validPlan()
	broken.Beats[2].Location = "rooftop"
	if err := ValidatePlan(broken, preset); !errors.As(err, &planErr) {
		t.Fatalf("location drift with constant scene should fail, got %v", err)
	}

	perBeat := preset
	perBeat.SceneMode = SceneModePerBeat
	if err := ValidatePlan(broken, perBeat); err != nil {
		t.Fatalf("per-beat scene should allow location drift: %v", err)
	}

	if err := ValidatePlan(Plan{}, preset); !errors.As(err, &planErr) {
		t.Fatalf("empty plan should fail, got %v", err)
	}
}
