package bootstrap

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.ServiceID != "adforge" || cfg.HTTPPort != 8080 {
		t.Fatalf("service defaults = %s:%d", cfg.ServiceID, cfg.HTTPPort)
	}
	if cfg.VideoCreditsPerSecond != 10 || cfg.FrameCredits != 8 || cfg.VoiceCredits != 15 || cfg.AmbientCredits != 5 {
		t.Fatalf("pricing defaults = %+v", cfg)
	}
	if cfg.VendorTimeout() != 5*time.Minute || cfg.WorkerPollInterval() != 2*time.Second {
		t.Fatalf("duration defaults = %v %v", cfg.VendorTimeout(), cfg.WorkerPollInterval())
	}
}

func TestLoadConfigFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
service:
  id: adforge-staging
  http_port: 9090
storage:
  database_url: postgres://file-host/adforge
vendors:
  media_gateway_url: https://gateway.staging.test
  timeout_seconds: 60
pricing:
  video_credits_per_second: 12
generation:
  assembly_timeout_seconds: 240
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("DATABASE_URL", "postgres://env-host/adforge")
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("MEDIA_GATEWAY_API_KEY", "gw-secret")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceID != "adforge-staging" {
		t.Fatalf("service id = %s", cfg.ServiceID)
	}
	// Environment beats the file, the file beats the defaults.
	if cfg.HTTPPort != 7070 {
		t.Fatalf("http port = %d, want env 7070", cfg.HTTPPort)
	}
	if cfg.DatabaseURL != "postgres://env-host/adforge" {
		t.Fatalf("database url = %s, want env value", cfg.DatabaseURL)
	}
	if cfg.MediaGatewayURL != "https://gateway.staging.test" || cfg.MediaGatewayKey != "gw-secret" {
		t.Fatalf("gateway = %s key=%q", cfg.MediaGatewayURL, cfg.MediaGatewayKey)
	}
	if cfg.VideoCreditsPerSecond != 12 || cfg.VoiceCredits != 15 {
		t.Fatalf("pricing merge = %+v", cfg)
	}
	if cfg.VendorTimeout() != time.Minute || cfg.AssemblyTimeout() != 4*time.Minute {
		t.Fatalf("durations = %v %v", cfg.VendorTimeout(), cfg.AssemblyTimeout())
	}
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("service: [not: a map"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("malformed yaml accepted")
	}
}
