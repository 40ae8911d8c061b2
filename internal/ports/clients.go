package ports

import (
	"context"

	"github.com/viralforge/adforge/internal/domain"
)

type PlanRequest struct {
	Actor   domain.ActorProfile
	Preset  domain.StylePreset
	Brief   domain.CampaignBrief
	Product domain.ProductPlacement
}

type ScriptRewriteRequest struct {
	ScriptText      string
	Kind            domain.BeatKind
	Engine          domain.EngineKind
	DurationSeconds float64
	Bound           domain.WordBound
	Tone            string
	Language        string
	Feedback        string
}

type BoundaryRequest struct {
	Transcription   domain.Transcription
	OriginalScript  string
	DurationSeconds float64
}

// ScriptModel is the script-generation language model collaborator.
type ScriptModel interface {
	GeneratePlan(ctx context.Context, req PlanRequest) (domain.Plan, error)
	RegenerateScript(ctx context.Context, req ScriptRewriteRequest) (domain.Script, error)
	AnalyzeSpeechBoundaries(ctx context.Context, req BoundaryRequest) (domain.BoundaryAnalysis, error)
}

type FirstFrameRequest struct {
	ReferenceImageURL string
	Prompt            string
	PreviousFrameURL  string
}

type ImageSynthesizer interface {
	GenerateFirstFrame(ctx context.Context, req FirstFrameRequest) (string, error)
}

type VideoRequest struct {
	Engine          domain.EngineKind
	FirstFrameURL   string
	Prompt          string
	DurationSeconds float64
}

type VideoEngine interface {
	GenerateVideo(ctx context.Context, req VideoRequest) (string, error)
}

type VoiceSynthesizer interface {
	SynthesizeVoice(ctx context.Context, scriptText, voiceReferenceURL string) (string, error)
}

type AmbientSynthesizer interface {
	SynthesizeAmbient(ctx context.Context, prompt string) (string, error)
}

type MixRequest struct {
	VideoURL      string
	VoiceURL      string
	AmbientURL    string
	VoiceVolume   float64
	AmbientVolume float64
}

type AudioMixer interface {
	Mix(ctx context.Context, req MixRequest) (string, error)
}

type TranscriptionResult struct {
	Text  string
	Words []domain.WordTimestamp
}

type Transcriber interface {
	Transcribe(ctx context.Context, videoURL string) (TranscriptionResult, error)
}

type NormalizeRequest struct {
	URL       string
	TrimStart float64
	TrimEnd   float64
	Speed     float64
}

type NormalizeResult struct {
	URL             string
	DurationSeconds float64
}

type ConcatenateResult struct {
	FinalURL        string
	DurationSeconds float64
}

// Transformer is the video transform/concatenation collaborator. NormalizeClip
// re-encodes one clip with normalized timestamps and the resolved trim/speed;
// Concatenate stitches normalized clips in the given order.
type Transformer interface {
	NormalizeClip(ctx context.Context, req NormalizeRequest) (NormalizeResult, error)
	Concatenate(ctx context.Context, urls []string) (ConcatenateResult, error)
}

// CreditLedger is the billing collaborator. CheckAndReserve is a single atomic
// check-and-decrement; two concurrent reservations can never both pass on a
// balance that covers only one of them. A failed reservation returns
// *domain.InsufficientCreditsError.
type CreditLedger interface {
	Balance(ctx context.Context, ownerID string) (float64, error)
	CheckAndReserve(ctx context.Context, ownerID string, amount float64) error
	Release(ctx context.Context, ownerID string, amount float64) error
}
