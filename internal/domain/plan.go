package domain

import (
	"fmt"
	"strings"
)

type EngineKind string

const (
	EngineKling EngineKind = "kling"
	EngineVeo   EngineKind = "veo"
)

type SceneMode string

const (
	SceneModeConstant SceneMode = "constant"
	SceneModePerBeat  SceneMode = "per_beat"
)

type ActorProfile struct {
	ActorID           string `json:"actor_id"`
	Name              string `json:"name"`
	Persona           string `json:"persona"`
	ReferenceImageURL string `json:"reference_image_url"`
	VoiceReferenceURL string `json:"voice_reference_url"`
}

type StylePreset struct {
	PresetID           string         `json:"preset_id"`
	Tone               string         `json:"tone"`
	Structure          []BeatKind     `json:"structure"`
	SceneMode          SceneMode      `json:"scene_mode"`
	Location           string         `json:"location"`
	PerBeatLocations   map[int]string `json:"per_beat_locations,omitempty"`
	CameraStyle        string         `json:"camera_style"`
	DefaultEngine      EngineKind     `json:"default_engine"`
	DefaultClipSeconds float64        `json:"default_clip_seconds"`
	ClipCountHint      int            `json:"clip_count_hint"`
}

type CampaignBrief struct {
	Product            string  `json:"product"`
	PainPoint          string  `json:"pain_point"`
	Audience           string  `json:"audience"`
	TargetTotalSeconds float64 `json:"target_total_seconds"`
	Language           string  `json:"language"`
}

type ProductPlacement struct {
	Visible    bool   `json:"visible"`
	Descriptor string `json:"descriptor,omitempty"`
}

type BeatSpec struct {
	Order            int        `json:"order"`
	Kind             BeatKind   `json:"kind"`
	ScriptText       string     `json:"script_text"`
	WordCount        int        `json:"word_count"`
	FirstFramePrompt string     `json:"first_frame_prompt"`
	Expression       string     `json:"expression"`
	Gesture          string     `json:"gesture"`
	Location         string     `json:"location"`
	Engine           EngineKind `json:"engine"`
	DurationSeconds  float64    `json:"duration_seconds"`
	GenerationPrompt string     `json:"generation_prompt"`
}

type Plan struct {
	Title string     `json:"title"`
	Beats []BeatSpec `json:"beats"`
}

type WordBound struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type BoundCheck int

const (
	BoundOK BoundCheck = iota
	BoundUnder
	BoundOver
)

// wordBounds maps (engine, whole-second duration) to the word count a spoken
// script must land in so speech fills the clip without getting cut off.
var wordBounds = map[EngineKind]map[int]WordBound{
	EngineVeo: {
		4: {Min: 12, Max: 15},
		6: {Min: 18, Max: 22},
		8: {Min: 24, Max: 30},
	},
	EngineKling: {
		5:  {Min: 15, Max: 19},
		10: {Min: 30, Max: 38},
	},
}

func WordBoundFor(engine EngineKind, durationSeconds float64) (WordBound, error) {
	table, ok := wordBounds[engine]
	if !ok {
		return WordBound{}, fmt.Errorf("%w: unknown engine %q", ErrInvalidInput, engine)
	}
	bound, ok := table[int(durationSeconds)]
	if !ok || float64(int(durationSeconds)) != durationSeconds {
		return WordBound{}, fmt.Errorf("%w: engine %q does not support %.1fs clips", ErrInvalidInput, engine, durationSeconds)
	}
	return bound, nil
}

func CountWords(text string) int {
	return len(strings.Fields(text))
}

func CheckScriptBound(engine EngineKind, durationSeconds float64, script string) (BoundCheck, WordBound, error) {
	bound, err := WordBoundFor(engine, durationSeconds)
	if err != nil {
		return BoundOK, WordBound{}, err
	}
	words := CountWords(script)
	switch {
	case words < bound.Min:
		return BoundUnder, bound, nil
	case words > bound.Max:
		return BoundOver, bound, nil
	default:
		return BoundOK, bound, nil
	}
}

// ComposeGenerationPrompt builds the video-engine instruction for a beat. The
// spoken line is embedded verbatim between fixed markers so a later script
// edit can rewrite exactly that segment (see RewritePromptScript).
func ComposeGenerationPrompt(spec BeatSpec, camera string) string {
	var b strings.Builder
	if camera != "" {
		b.WriteString(camera)
		b.WriteString(". ")
	}
	if spec.Location != "" {
		fmt.Fprintf(&b, "Location: %s. ", spec.Location)
	}
	if spec.Expression != "" {
		fmt.Fprintf(&b, "The actor looks %s", spec.Expression)
		if spec.Gesture != "" {
			fmt.Fprintf(&b, " and %s", spec.Gesture)
		}
		b.WriteString(". ")
	}
	fmt.Fprintf(&b, "The actor says: %q", spec.ScriptText)
	return b.String()
}

// RewritePromptScript replaces the spoken segment of a generation prompt with
// newScript, leaving the scene and camera directives intact. The prompt sent
// to the video engine must never diverge from the displayed script.
func RewritePromptScript(prompt, newScript string) string {
	const marker = "The actor says: "
	idx := strings.LastIndex(prompt, marker)
	if idx < 0 {
		return fmt.Sprintf("%s %s%q", strings.TrimSpace(prompt), marker, newScript)
	}
	return prompt[:idx] + fmt.Sprintf("%s%q", marker, newScript)
}

// ValidatePlan checks a generated plan against the preset it was built from:
// contiguous orders from 1, kinds matching the preset structure, script word
// counts in bound, and a constant scene unless the preset is per-beat.
func ValidatePlan(plan Plan, preset StylePreset) error {
	if len(plan.Beats) == 0 {
		return &PlanGenerationError{Reason: "plan has no beats"}
	}
	if len(preset.Structure) > 0 && len(plan.Beats) != len(preset.Structure) {
		return &PlanGenerationError{Reason: fmt.Sprintf("plan has %d beats, preset structure wants %d", len(plan.Beats), len(preset.Structure))}
	}
	location := ""
	for i, beat := range plan.Beats {
		if beat.Order != i+1 {
			return &PlanGenerationError{Reason: fmt.Sprintf("beat order %d at position %d, want %d", beat.Order, i, i+1)}
		}
		if len(preset.Structure) > 0 && beat.Kind != preset.Structure[i] {
			return &PlanGenerationError{Reason: fmt.Sprintf("beat %d is %q, preset structure wants %q", beat.Order, beat.Kind, preset.Structure[i])}
		}
		check, bound, err := CheckScriptBound(beat.Engine, beat.DurationSeconds, beat.ScriptText)
		if err != nil {
			return &PlanGenerationError{Reason: err.Error()}
		}
		if check != BoundOK {
			return &PlanGenerationError{Reason: fmt.Sprintf("beat %d script has %d words, bound is [%d,%d]", beat.Order, CountWords(beat.ScriptText), bound.Min, bound.Max)}
		}
		if preset.SceneMode != SceneModePerBeat {
			if location == "" {
				location = beat.Location
			} else if beat.Location != location {
				return &PlanGenerationError{Reason: fmt.Sprintf("beat %d changes location to %q, preset scene is constant", beat.Order, beat.Location)}
			}
		}
	}
	return nil
}
