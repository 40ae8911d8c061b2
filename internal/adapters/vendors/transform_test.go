package vendors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/viralforge/adforge/internal/ports"
)

func TestNormalizeClipSendsResolvedTrim(t *testing.T) {
	var got map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/transform/normalize" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("auth = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]any{"url": "https://cdn.test/norm.mp4", "duration_seconds": 4.5})
	}))
	defer server.Close()

	client := NewTransformClient(MediaConfig{GatewayURL: server.URL, GatewayKey: "test-key"}, 10*time.Millisecond)
	out, err := client.NormalizeClip(context.Background(), ports.NormalizeRequest{
		URL:       "https://cdn.test/raw.mp4",
		TrimStart: 0.5,
		TrimEnd:   5.0,
		Speed:     1.1,
	})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if out.URL != "https://cdn.test/norm.mp4" || out.DurationSeconds != 4.5 {
		t.Fatalf("result = %+v", out)
	}
	if got["trim_start"] != 0.5 || got["trim_end"] != 5.0 || got["speed"] != 1.1 {
		t.Fatalf("request body = %v", got)
	}
}

func TestNormalizeClipRejectsEmptyURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"url": ""})
	}))
	defer server.Close()

	client := NewTransformClient(MediaConfig{GatewayURL: server.URL}, 10*time.Millisecond)
	if _, err := client.NormalizeClip(context.Background(), ports.NormalizeRequest{URL: "x"}); err == nil {
		t.Fatalf("expected error for empty vendor url")
	}
}

func TestConcatenatePollsUntilCompleted(t *testing.T) {
	var polls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v1/transform/concatenate":
			var body struct {
				URLs []string `json:"urls"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body.URLs) != 2 {
				t.Errorf("submit body: %v %v", body, err)
			}
			json.NewEncoder(w).Encode(map[string]string{"job_id": "job-42"})
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/v1/transform/jobs/"):
			if !strings.HasSuffix(r.URL.Path, "job-42") {
				t.Errorf("poll path = %s", r.URL.Path)
			}
			if atomic.AddInt32(&polls, 1) < 3 {
				json.NewEncoder(w).Encode(map[string]string{"status": "running"})
				return
			}
			json.NewEncoder(w).Encode(map[string]any{"status": "completed", "url": "https://cdn.test/final.mp4", "duration_seconds": 18.0})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewTransformClient(MediaConfig{GatewayURL: server.URL}, 5*time.Millisecond)
	out, err := client.Concatenate(context.Background(), []string{"a.mp4", "b.mp4"})
	if err != nil {
		t.Fatalf("concatenate: %v", err)
	}
	if out.FinalURL != "https://cdn.test/final.mp4" || out.DurationSeconds != 18 {
		t.Fatalf("result = %+v", out)
	}
	if atomic.LoadInt32(&polls) != 3 {
		t.Fatalf("polls = %d, want 3", polls)
	}
}

func TestConcatenateSurfacesJobFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]string{"job_id": "job-1"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "failed", "error": "codec mismatch"})
	}))
	defer server.Close()

	client := NewTransformClient(MediaConfig{GatewayURL: server.URL}, 5*time.Millisecond)
	_, err := client.Concatenate(context.Background(), []string{"a.mp4"})
	if err == nil || !strings.Contains(err.Error(), "codec mismatch") {
		t.Fatalf("expected job failure with vendor detail, got %v", err)
	}
}

func TestConcatenateStopsOnContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]string{"job_id": "job-1"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "running"})
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	client := NewTransformClient(MediaConfig{GatewayURL: server.URL}, 5*time.Millisecond)
	if _, err := client.Concatenate(ctx, []string{"a.mp4"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestPostJSONReportsVendorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exhausted for project", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewImageClient(MediaConfig{GatewayURL: server.URL})
	_, err := client.GenerateFirstFrame(context.Background(), ports.FirstFrameRequest{Prompt: "actor close up"})
	if err == nil || !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "quota exhausted") {
		t.Fatalf("expected status and body excerpt in error, got %v", err)
	}
}
