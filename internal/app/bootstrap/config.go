package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string
	HTTPPort  int

	DatabaseURL string
	RedisURL    string
	MaxDBConns  int32

	ScriptModelKey     string
	ScriptModelBaseURL string
	ScriptModelName    string

	MediaGatewayURL    string
	MediaGatewayKey    string
	VideoEngineURL     string
	VideoEngineKey     string
	VendorTimeoutSecs  int
	TransformPollSecs  int

	VideoCreditsPerSecond float64
	FrameCredits          float64
	VoiceCredits          float64
	AmbientCredits        float64

	MaxRewriteAttempts  int
	EagerFrameBeats     int
	AssemblyTimeoutSecs int
	WorkerPollSeconds   int
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"service"`
	Storage struct {
		DatabaseURL string `yaml:"database_url"`
		RedisURL    string `yaml:"redis_url"`
		MaxDBConns  int32  `yaml:"max_db_conns"`
	} `yaml:"storage"`
	Vendors struct {
		ScriptModelBaseURL string `yaml:"script_model_base_url"`
		ScriptModelName    string `yaml:"script_model_name"`
		MediaGatewayURL    string `yaml:"media_gateway_url"`
		VideoEngineURL     string `yaml:"video_engine_url"`
		TimeoutSeconds     int    `yaml:"timeout_seconds"`
		TransformPollSecs  int    `yaml:"transform_poll_seconds"`
	} `yaml:"vendors"`
	Pricing struct {
		VideoCreditsPerSecond float64 `yaml:"video_credits_per_second"`
		FrameCredits          float64 `yaml:"frame_credits"`
		VoiceCredits          float64 `yaml:"voice_credits"`
		AmbientCredits        float64 `yaml:"ambient_credits"`
	} `yaml:"pricing"`
	Generation struct {
		MaxRewriteAttempts  int `yaml:"max_rewrite_attempts"`
		EagerFrameBeats     int `yaml:"eager_frame_beats"`
		AssemblyTimeoutSecs int `yaml:"assembly_timeout_seconds"`
		WorkerPollSeconds   int `yaml:"worker_poll_seconds"`
	} `yaml:"generation"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:             "adforge",
		HTTPPort:              8080,
		MaxDBConns:            10,
		ScriptModelName:       "gpt-4.1-mini",
		VendorTimeoutSecs:     300,
		TransformPollSecs:     2,
		VideoCreditsPerSecond: 10,
		FrameCredits:          8,
		VoiceCredits:          15,
		AmbientCredits:        5,
		MaxRewriteAttempts:    2,
		EagerFrameBeats:       2,
		AssemblyTimeoutSecs:   120,
		WorkerPollSeconds:     2,
	}
	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Storage.DatabaseURL != "" {
			cfg.DatabaseURL = f.Storage.DatabaseURL
		}
		if f.Storage.RedisURL != "" {
			cfg.RedisURL = f.Storage.RedisURL
		}
		if f.Storage.MaxDBConns > 0 {
			cfg.MaxDBConns = f.Storage.MaxDBConns
		}
		if f.Vendors.ScriptModelBaseURL != "" {
			cfg.ScriptModelBaseURL = f.Vendors.ScriptModelBaseURL
		}
		if f.Vendors.ScriptModelName != "" {
			cfg.ScriptModelName = f.Vendors.ScriptModelName
		}
		if f.Vendors.MediaGatewayURL != "" {
			cfg.MediaGatewayURL = f.Vendors.MediaGatewayURL
		}
		if f.Vendors.VideoEngineURL != "" {
			cfg.VideoEngineURL = f.Vendors.VideoEngineURL
		}
		if f.Vendors.TimeoutSeconds > 0 {
			cfg.VendorTimeoutSecs = f.Vendors.TimeoutSeconds
		}
		if f.Vendors.TransformPollSecs > 0 {
			cfg.TransformPollSecs = f.Vendors.TransformPollSecs
		}
		if f.Pricing.VideoCreditsPerSecond > 0 {
			cfg.VideoCreditsPerSecond = f.Pricing.VideoCreditsPerSecond
		}
		if f.Pricing.FrameCredits > 0 {
			cfg.FrameCredits = f.Pricing.FrameCredits
		}
		if f.Pricing.VoiceCredits > 0 {
			cfg.VoiceCredits = f.Pricing.VoiceCredits
		}
		if f.Pricing.AmbientCredits > 0 {
			cfg.AmbientCredits = f.Pricing.AmbientCredits
		}
		if f.Generation.MaxRewriteAttempts > 0 {
			cfg.MaxRewriteAttempts = f.Generation.MaxRewriteAttempts
		}
		if f.Generation.EagerFrameBeats > 0 {
			cfg.EagerFrameBeats = f.Generation.EagerFrameBeats
		}
		if f.Generation.AssemblyTimeoutSecs > 0 {
			cfg.AssemblyTimeoutSecs = f.Generation.AssemblyTimeoutSecs
		}
		if f.Generation.WorkerPollSeconds > 0 {
			cfg.WorkerPollSeconds = f.Generation.WorkerPollSeconds
		}
	}
	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.DatabaseURL = envOrDefault("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.ScriptModelKey = envOrDefault("SCRIPT_MODEL_API_KEY", cfg.ScriptModelKey)
	cfg.ScriptModelBaseURL = envOrDefault("SCRIPT_MODEL_BASE_URL", cfg.ScriptModelBaseURL)
	cfg.ScriptModelName = envOrDefault("SCRIPT_MODEL_NAME", cfg.ScriptModelName)
	cfg.MediaGatewayURL = envOrDefault("MEDIA_GATEWAY_URL", cfg.MediaGatewayURL)
	cfg.MediaGatewayKey = envOrDefault("MEDIA_GATEWAY_API_KEY", cfg.MediaGatewayKey)
	cfg.VideoEngineURL = envOrDefault("VIDEO_ENGINE_URL", cfg.VideoEngineURL)
	cfg.VideoEngineKey = envOrDefault("VIDEO_ENGINE_API_KEY", cfg.VideoEngineKey)
	cfg.WorkerPollSeconds = envInt("WORKER_POLL_SECONDS", cfg.WorkerPollSeconds)
	cfg.AssemblyTimeoutSecs = envInt("ASSEMBLY_TIMEOUT_SECONDS", cfg.AssemblyTimeoutSecs)
	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func (c Config) VendorTimeout() time.Duration {
	return time.Duration(c.VendorTimeoutSecs) * time.Second
}

func (c Config) TransformPollInterval() time.Duration {
	return time.Duration(c.TransformPollSecs) * time.Second
}

func (c Config) AssemblyTimeout() time.Duration {
	return time.Duration(c.AssemblyTimeoutSecs) * time.Second
}

func (c Config) WorkerPollInterval() time.Duration {
	return time.Duration(c.WorkerPollSeconds) * time.Second
}
