package vendors

import (
	"context"
	"errors"
	"time"

	"github.com/viralforge/adforge/internal/domain"
	"github.com/viralforge/adforge/internal/ports"
)

// MediaConfig points the media adapters at their vendor endpoints. Image,
// voice, ambient, mixing, and transcription run behind one gateway in every
// environment; the video engines keep their own endpoint because generation
// runs minutes, not seconds.
type MediaConfig struct {
	GatewayURL  string
	GatewayKey  string
	VideoURL    string
	VideoKey    string
	CallTimeout time.Duration
}

type ImageClient struct {
	http httpClient
}

func NewImageClient(cfg MediaConfig) *ImageClient {
	return &ImageClient{http: newHTTPClient(cfg.GatewayURL, cfg.GatewayKey, cfg.CallTimeout)}
}

func (c *ImageClient) GenerateFirstFrame(ctx context.Context, req ports.FirstFrameRequest) (string, error) {
	var out struct {
		ImageURL string `json:"image_url"`
	}
	err := c.http.postJSON(ctx, "/v1/images/first-frame", map[string]string{
		"reference_image_url": req.ReferenceImageURL,
		"prompt":              req.Prompt,
		"previous_frame_url":  req.PreviousFrameURL,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.ImageURL == "" {
		return "", errors.New("image vendor returned no url")
	}
	return out.ImageURL, nil
}

type VideoClient struct {
	http httpClient
}

func NewVideoClient(cfg MediaConfig) *VideoClient {
	return &VideoClient{http: newHTTPClient(cfg.VideoURL, cfg.VideoKey, cfg.CallTimeout)}
}

func (c *VideoClient) GenerateVideo(ctx context.Context, req ports.VideoRequest) (string, error) {
	var out struct {
		VideoURL string `json:"video_url"`
	}
	err := c.http.postJSON(ctx, "/v1/videos/generate", map[string]any{
		"engine":           string(req.Engine),
		"first_frame_url":  req.FirstFrameURL,
		"prompt":           req.Prompt,
		"duration_seconds": req.DurationSeconds,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.VideoURL == "" {
		return "", errors.New("video vendor returned no url")
	}
	return out.VideoURL, nil
}

type VoiceClient struct {
	http httpClient
}

func NewVoiceClient(cfg MediaConfig) *VoiceClient {
	return &VoiceClient{http: newHTTPClient(cfg.GatewayURL, cfg.GatewayKey, cfg.CallTimeout)}
}

func (c *VoiceClient) SynthesizeVoice(ctx context.Context, scriptText, voiceReferenceURL string) (string, error) {
	var out struct {
		AudioURL string `json:"audio_url"`
	}
	err := c.http.postJSON(ctx, "/v1/voice/synthesize", map[string]string{
		"text":                scriptText,
		"voice_reference_url": voiceReferenceURL,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.AudioURL == "" {
		return "", errors.New("voice vendor returned no url")
	}
	return out.AudioURL, nil
}

type AmbientClient struct {
	http httpClient
}

func NewAmbientClient(cfg MediaConfig) *AmbientClient {
	return &AmbientClient{http: newHTTPClient(cfg.GatewayURL, cfg.GatewayKey, cfg.CallTimeout)}
}

func (c *AmbientClient) SynthesizeAmbient(ctx context.Context, prompt string) (string, error) {
	var out struct {
		AudioURL string `json:"audio_url"`
	}
	err := c.http.postJSON(ctx, "/v1/ambient/synthesize", map[string]string{
		"prompt": prompt,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.AudioURL == "" {
		return "", errors.New("ambient vendor returned no url")
	}
	return out.AudioURL, nil
}

type MixerClient struct {
	http httpClient
}

func NewMixerClient(cfg MediaConfig) *MixerClient {
	return &MixerClient{http: newHTTPClient(cfg.GatewayURL, cfg.GatewayKey, cfg.CallTimeout)}
}

func (c *MixerClient) Mix(ctx context.Context, req ports.MixRequest) (string, error) {
	var out struct {
		VideoURL string `json:"video_url"`
	}
	err := c.http.postJSON(ctx, "/v1/audio/mix", map[string]any{
		"video_url":      req.VideoURL,
		"voice_url":      req.VoiceURL,
		"ambient_url":    req.AmbientURL,
		"voice_volume":   req.VoiceVolume,
		"ambient_volume": req.AmbientVolume,
	}, &out)
	if err != nil {
		return "", err
	}
	if out.VideoURL == "" {
		return "", errors.New("mixer vendor returned no url")
	}
	return out.VideoURL, nil
}

type TranscriberClient struct {
	http httpClient
}

func NewTranscriberClient(cfg MediaConfig) *TranscriberClient {
	return &TranscriberClient{http: newHTTPClient(cfg.GatewayURL, cfg.GatewayKey, cfg.CallTimeout)}
}

func (c *TranscriberClient) Transcribe(ctx context.Context, videoURL string) (ports.TranscriptionResult, error) {
	var out struct {
		Text  string                 `json:"text"`
		Words []domain.WordTimestamp `json:"words"`
	}
	err := c.http.postJSON(ctx, "/v1/transcriptions", map[string]string{
		"video_url":       videoURL,
		"timestamp_level": "word",
	}, &out)
	if err != nil {
		return ports.TranscriptionResult{}, err
	}
	return ports.TranscriptionResult{Text: out.Text, Words: out.Words}, nil
}
