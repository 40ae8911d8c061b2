package vendors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viralforge/adforge/internal/ports"
)

// TransformClient drives the video transform service. NormalizeClip is a
// synchronous re-encode; Concatenate submits a stitch job and polls it,
// since the final render can take most of the assembly window.
type TransformClient struct {
	http         httpClient
	pollInterval time.Duration
}

func NewTransformClient(cfg MediaConfig, pollInterval time.Duration) *TransformClient {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &TransformClient{
		http:         newHTTPClient(cfg.GatewayURL, cfg.GatewayKey, cfg.CallTimeout),
		pollInterval: pollInterval,
	}
}

func (c *TransformClient) NormalizeClip(ctx context.Context, req ports.NormalizeRequest) (ports.NormalizeResult, error) {
	var out struct {
		URL             string  `json:"url"`
		DurationSeconds float64 `json:"duration_seconds"`
	}
	err := c.http.postJSON(ctx, "/v1/transform/normalize", map[string]any{
		"url":        req.URL,
		"trim_start": req.TrimStart,
		"trim_end":   req.TrimEnd,
		"speed":      req.Speed,
	}, &out)
	if err != nil {
		return ports.NormalizeResult{}, err
	}
	if out.URL == "" {
		return ports.NormalizeResult{}, errors.New("transform vendor returned no url")
	}
	return ports.NormalizeResult{URL: out.URL, DurationSeconds: out.DurationSeconds}, nil
}

func (c *TransformClient) Concatenate(ctx context.Context, urls []string) (ports.ConcatenateResult, error) {
	var submitted struct {
		JobID string `json:"job_id"`
	}
	err := c.http.postJSON(ctx, "/v1/transform/concatenate", map[string]any{
		"urls": urls,
	}, &submitted)
	if err != nil {
		return ports.ConcatenateResult{}, err
	}
	if submitted.JobID == "" {
		return ports.ConcatenateResult{}, errors.New("transform vendor returned no job id")
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ports.ConcatenateResult{}, ctx.Err()
		case <-ticker.C:
		}

		var status struct {
			Status          string  `json:"status"`
			URL             string  `json:"url"`
			DurationSeconds float64 `json:"duration_seconds"`
			Error           string  `json:"error"`
		}
		if err := c.http.getJSON(ctx, "/v1/transform/jobs/"+submitted.JobID, &status); err != nil {
			return ports.ConcatenateResult{}, err
		}
		switch status.Status {
		case "completed":
			if status.URL == "" {
				return ports.ConcatenateResult{}, errors.New("transform job completed without a url")
			}
			return ports.ConcatenateResult{FinalURL: status.URL, DurationSeconds: status.DurationSeconds}, nil
		case "failed":
			return ports.ConcatenateResult{}, fmt.Errorf("transform job failed: %s", status.Error)
		case "pending", "running":
		default:
			return ports.ConcatenateResult{}, fmt.Errorf("transform job in unknown state %q", status.Status)
		}
	}
}
