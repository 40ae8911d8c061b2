package vendors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"github.com/viralforge/adforge/internal/domain"
	"github.com/viralforge/adforge/internal/ports"
)

const defaultScriptModel = "gpt-4.1-mini"

// OpenAIScriptModel backs plan generation, script rewrites, and speech
// boundary analysis with a chat-completion model. All three calls request a
// strict JSON object response and reject anything that does not parse.
type OpenAIScriptModel struct {
	client openai.Client
	model  string
}

func NewOpenAIScriptModel(apiKey, baseURL, model string) *OpenAIScriptModel {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if strings.TrimSpace(baseURL) != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if strings.TrimSpace(model) == "" {
		model = defaultScriptModel
	}
	return &OpenAIScriptModel{client: openai.NewClient(opts...), model: model}
}

func (m *OpenAIScriptModel) GeneratePlan(ctx context.Context, req ports.PlanRequest) (domain.Plan, error) {
	payload, err := json.Marshal(map[string]any{
		"actor":   req.Actor,
		"preset":  req.Preset,
		"brief":   req.Brief,
		"product": req.Product,
	})
	if err != nil {
		return domain.Plan{}, fmt.Errorf("marshal plan request: %w", err)
	}

	systemPrompt := "You are a direct-response ad director. Plan a short-form video ad as a sequence of beats. Output JSON only."
	userPrompt := "Produce a campaign plan for the input below.\n" +
		"Rules:\n" +
		"1) One beat per entry in preset.structure, in order, with order starting at 1.\n" +
		"2) Each beat needs script_text, word_count, first_frame_prompt, expression, gesture, location, engine, duration_seconds.\n" +
		"3) Keep every script inside the word bound for its engine and duration.\n" +
		"4) Unless preset.scene_mode is per_beat, every beat uses the same location.\n" +
		"5) Write scripts in brief.language with the preset tone.\n\n" +
		"Output format:\n" +
		`{"title":"...","beats":[{"order":1,"kind":"hook","script_text":"...","word_count":0,"first_frame_prompt":"...","expression":"...","gesture":"...","location":"...","engine":"veo","duration_seconds":6}]}` + "\n\n" +
		"Input:\n" + string(payload)

	raw, err := m.complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return domain.Plan{}, &domain.PlanGenerationError{Reason: err.Error()}
	}

	var plan domain.Plan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return domain.Plan{}, &domain.PlanGenerationError{Reason: fmt.Sprintf("parse plan: %v", err), Raw: raw}
	}
	for i := range plan.Beats {
		plan.Beats[i].WordCount = domain.CountWords(plan.Beats[i].ScriptText)
	}
	return plan, nil
}

func (m *OpenAIScriptModel) RegenerateScript(ctx context.Context, req ports.ScriptRewriteRequest) (domain.Script, error) {
	systemPrompt := "You rewrite spoken ad scripts to an exact word-count window. Output JSON only."
	userPrompt := fmt.Sprintf(
		"Rewrite the script below so it has between %d and %d words, keeps the %s beat's intent, stays in %s, and matches a %s tone.\n",
		req.Bound.Min, req.Bound.Max, req.Kind, req.Language, req.Tone)
	if strings.TrimSpace(req.Feedback) != "" {
		userPrompt += "Direction: " + req.Feedback + "\n"
	}
	userPrompt += "\nOutput format:\n" + `{"text":"..."}` + "\n\nScript:\n" + req.ScriptText

	raw, err := m.complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return domain.Script{}, err
	}
	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return domain.Script{}, fmt.Errorf("parse rewritten script: %w", err)
	}
	text := strings.TrimSpace(out.Text)
	if text == "" {
		return domain.Script{}, errors.New("model returned an empty script")
	}
	return domain.Script{Text: text, WordCount: domain.CountWords(text)}, nil
}

func (m *OpenAIScriptModel) AnalyzeSpeechBoundaries(ctx context.Context, req ports.BoundaryRequest) (domain.BoundaryAnalysis, error) {
	payload, err := json.Marshal(map[string]any{
		"words":            req.Transcription.Words,
		"original_script":  req.OriginalScript,
		"duration_seconds": req.DurationSeconds,
	})
	if err != nil {
		return domain.BoundaryAnalysis{}, fmt.Errorf("marshal boundary request: %w", err)
	}

	systemPrompt := "You analyze word-level timestamps of a spoken ad clip. Output JSON only."
	userPrompt := "From the word timestamps below, find where speech truly starts and ends (seconds, with a small safety pad), " +
		"estimate syllables per second, and suggest a playback speed of 1.0, 1.1, or 1.2 (never slower than 1.0).\n\n" +
		"Output format:\n" +
		`{"speech_start":0.0,"speech_end":0.0,"syllables_per_second":0.0,"suggested_speed":1.0,"confidence":0.0}` + "\n\n" +
		"Input:\n" + string(payload)

	raw, err := m.complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return domain.BoundaryAnalysis{}, err
	}
	var analysis domain.BoundaryAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return domain.BoundaryAnalysis{}, fmt.Errorf("parse boundary analysis: %w", err)
	}
	analysis.SuggestedSpeed = domain.ClampSpeed(analysis.SuggestedSpeed)
	return analysis, nil
}

func (m *OpenAIScriptModel) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := m.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Model:       m.model,
		Temperature: openai.Float(0.4),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{Type: "json_object"},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	if raw == "" {
		return "", errors.New("model returned empty content")
	}
	if fixed := extractJSONObject(raw); fixed != "" {
		return fixed, nil
	}
	return raw, nil
}

func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}
