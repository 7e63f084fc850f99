// Package config loads service configuration from the environment and
// validates it. Every knob has a conservative default so a bare environment
// still yields a runnable service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Provider names accepted for LLM_PROVIDER.
const (
	ProviderHuggingFace = "hf"
	ProviderOpenAI      = "openai"
	ProviderGemini      = "gemini"
)

// Config holds every runtime setting for the service.
type Config struct {
	// LLM providers
	Provider           string  `validate:"oneof=hf openai gemini"`
	HuggingFaceAPIKey  string
	HuggingFaceModel   string  `validate:"required"`
	OpenAIAPIKey       string
	OpenAIModel        string  `validate:"required"`
	GeminiAPIKey       string
	GeminiModel        string
	Temperature        float32 `validate:"gte=0,lte=2"`
	TimeoutSeconds     int     `validate:"gt=0"`

	// Generation budgets. The per-mode budget table overrides these for
	// classified queries; these are the ceilings.
	MaxTokens            int `validate:"gt=0"`
	MaxContinuations     int `validate:"gte=0"`
	MaxTokensFast        int `validate:"gt=0"`
	MaxContinuationsFast int `validate:"gte=0"`
	MaxTokensSalary      int `validate:"gt=0"`

	// Knowledge base
	KBDir string `validate:"required"`

	// HTTP server
	ListenAddr        string `validate:"required"`
	CORSOrigins       []string
	AllowNullOrigin   bool
	TrustForwardedFor bool
	MaxUploadBytes    int64 `validate:"gt=0"`
	MaxQueryBytes     int   `validate:"gt=0"`

	// Rate limiting
	RateLimitWindowSec      int `validate:"gt=0"`
	RateLimitQueryPerWindow int `validate:"gt=0"`
	RateLimitUploadPerWin   int `validate:"gt=0"`

	// Sessions
	SessionTTLSec int `validate:"gt=0"`
	MaxSessions   int `validate:"gt=0"`

	// Monitoring
	MonitoringAPIKey       string
	MonitoringKeyRequired  bool
	MonitoringMaxQueries   int `validate:"gt=0"`
	MonitoringMaxUploads   int `validate:"gt=0"`
	MonitoringMaxBuilds    int `validate:"gt=0"`
	MonitoringRetentionSec int `validate:"gt=0"`
	CaptureQueryText       bool

	// Identity
	AgentID   string `validate:"required"`
	AgentName string `validate:"required"`
	AgentEnv  string `validate:"required"`
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Provider:          strings.ToLower(envString("LLM_PROVIDER", ProviderHuggingFace)),
		HuggingFaceAPIKey: strings.TrimSpace(os.Getenv("HUGGINGFACE_API_KEY")),
		HuggingFaceModel:  envString("HF_MODEL_NAME", "mistralai/Mistral-7B-Instruct-v0.2"),
		OpenAIAPIKey:      strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:       envString("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiAPIKey:      strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiModel:       envString("GEMINI_MODEL", "gemini-1.5-flash"),
		Temperature:       float32(envFloat("LLM_TEMPERATURE", 0.25)),
		TimeoutSeconds:    envInt("LLM_TIMEOUT_SECONDS", 90),

		MaxTokens:            envInt("LLM_MAX_TOKENS", 900),
		MaxContinuations:     envInt("LLM_MAX_CONTINUATIONS", 3),
		MaxTokensFast:        envInt("LLM_MAX_TOKENS_FAST", 650),
		MaxContinuationsFast: envInt("LLM_MAX_CONTINUATIONS_FAST", 2),
		MaxTokensSalary:      envInt("LLM_MAX_TOKENS_SALARY", 550),

		KBDir: envString("KB_DIR", "knowledge_base"),

		ListenAddr:        envString("LISTEN_ADDR", ":8000"),
		CORSOrigins:       splitCSV(os.Getenv("CORS_ORIGINS")),
		AllowNullOrigin:   envBool("ALLOW_NULL_ORIGIN", true),
		TrustForwardedFor: envBool("TRUST_X_FORWARDED_FOR", false),
		MaxUploadBytes:    int64(envInt("MAX_UPLOAD_BYTES", 5242880)),
		MaxQueryBytes:     envInt("MAX_QUERY_BYTES", 20000),

		RateLimitWindowSec:      envInt("RATE_LIMIT_WINDOW_SEC", 60),
		RateLimitQueryPerWindow: envInt("RATE_LIMIT_QUERY_PER_WINDOW", 30),
		RateLimitUploadPerWin:   envInt("RATE_LIMIT_UPLOAD_PER_WINDOW", 10),

		SessionTTLSec: envInt("SESSION_TTL_SEC", 3600),
		MaxSessions:   envInt("MAX_SESSIONS", 500),

		MonitoringAPIKey:       strings.TrimSpace(os.Getenv("MONITORING_API_KEY")),
		MonitoringKeyRequired:  envBool("MONITORING_KEY_REQUIRED", true),
		MonitoringMaxQueries:   envInt("MONITORING_MAX_QUERY_EVENTS", 2000),
		MonitoringMaxUploads:   envInt("MONITORING_MAX_RESUME_UPLOADS", 800),
		MonitoringMaxBuilds:    envInt("MONITORING_MAX_RESUME_BUILDS", 800),
		MonitoringRetentionSec: envInt("MONITORING_RETENTION_SEC", 259200),
		CaptureQueryText:       envBool("MONITORING_CAPTURE_QUERY_TEXT", false),

		AgentID:   envString("AGENT_ID", "career-agent"),
		AgentName: envString("AGENT_NAME", "Lin.O"),
		AgentEnv:  envString("AGENT_ENV", "production"),
	}

	switch cfg.Provider {
	case ProviderHuggingFace, ProviderOpenAI, ProviderGemini:
	default:
		cfg.Provider = ProviderHuggingFace
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return def
	}
	return v == "1" || v == "true" || v == "yes"
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
