package config

import (
	"log"
	"os"
	"time"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type Config struct {
	Mode Mode

	Port string

	GCPProjectID string
	GCPLocation  string
	ModelName    string

	// InferenceTimeout bounds each model call. The upstream service sets no
	// limit of its own, so a hung call would otherwise hold the request forever.
	InferenceTimeout time.Duration

	UseMockLLM bool // true = use mock even on GCP

	BlobBackend    string // "local" or "supabase"
	UploadDir      string
	SupabaseURL    string
	SupabaseKey    string
	SupabaseBucket string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}

// Load reads all env vars and builds the config
func Load() *Config {
	modeStr := getEnv("QASSIST_MODE", "local")
	var mode Mode
	switch modeStr {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	cfg := &Config{
		Mode: mode,

		Port: getEnv("QASSIST_PORT", "8080"),

		GCPProjectID: getEnv("QASSIST_GCP_PROJECT", ""),
		GCPLocation:  getEnv("QASSIST_GCP_LOCATION", "us-central1"),
		ModelName:    getEnv("QASSIST_MODEL_NAME", "gemini-2.0-flash"),

		InferenceTimeout: getDurationEnv("QASSIST_INFERENCE_TIMEOUT", 2*time.Minute),

		UseMockLLM: getBoolEnv("QASSIST_USE_MOCK_LLM", mode == ModeLocal),

		BlobBackend:    getEnv("QASSIST_BLOB_BACKEND", "local"),
		UploadDir:      getEnv("QASSIST_UPLOAD_DIR", "uploads"),
		SupabaseURL:    getEnv("QASSIST_SUPABASE_URL", ""),
		SupabaseKey:    getEnv("QASSIST_SUPABASE_KEY", ""),
		SupabaseBucket: getEnv("QASSIST_SUPABASE_BUCKET", "uploads"),
	}

	// Minimal validation in GCP mode
	if cfg.Mode == ModeGCP && cfg.GCPProjectID == "" {
		log.Fatal("QASSIST_GCP_PROJECT must be set in gcp mode")
	}

	return cfg
}
