package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Static data files
	BankPath    string // question bank export JSON (required)
	ContextPath string // generated contexts JSON; missing file degrades to no context

	// Context generation
	LLMURL        string // OpenAI-compatible endpoint, e.g. "http://localhost:1234"
	LLMModel      string // model name, e.g. "llama3.1:8b"
	ContextDBPath string // sqlite cache for generated contexts
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	return &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		BankPath:        mustGetenv("BANK_PATH"),
		ContextPath:     getenvDefault("CONTEXT_PATH", "question_contexts.json"),
		LLMURL:          getenvDefault("LLM_URL", "http://localhost:1234"),
		LLMModel:        getenvDefault("LLM_MODEL", "llama3.1:8b"),
		ContextDBPath:   getenvDefault("CONTEXT_DB_PATH", "contexts.db"),
	}
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}
