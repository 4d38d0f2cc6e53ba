package config

import (
	"os"
	"strconv"
)

// Config captures process-level configuration. Values come from the
// environment with development defaults so main stays lean.
type Config struct {
	Addr        string
	DatabaseURL string

	PubMedBaseURL string

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string
	// LLMRequestsPerMinute bounds calls to the generation service across
	// the whole process. Zero disables the limiter.
	LLMRequestsPerMinute int

	// BatchWorkers bounds concurrent batch rows. 1 processes rows in order,
	// matching spreadsheet expectations.
	BatchWorkers int
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Addr:                 envOr("GEOMED_ADDR", ":8080"),
		DatabaseURL:          os.Getenv("DATABASE_URL"),
		PubMedBaseURL:        envOr("PUBMED_BASE_URL", "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"),
		LLMBaseURL:           os.Getenv("LLM_BASE_URL"),
		LLMAPIKey:            os.Getenv("LLM_API_KEY"),
		LLMModel:             envOr("LLM_MODEL", "gpt-4o-mini"),
		LLMRequestsPerMinute: envIntOr("LLM_RPM", 60),
		BatchWorkers:         envIntOr("GEOMED_BATCH_WORKERS", 1),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
