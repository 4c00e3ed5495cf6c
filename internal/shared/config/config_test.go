package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"PORT", "ENV", "LLM_PROVIDER", "LLM_MODEL", "JOB_ROWS", "APIFY_TOKEN", "OPENAI_TIMEOUT_SECONDS", "LINKEDIN_ACTOR_ID", "LINKEDIN_LOCATION", "NAUKRI_ACTOR_ID"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected env dev, got %s", cfg.Env)
	}
	if cfg.LLMProvider != "openai" {
		t.Fatalf("expected provider openai, got %s", cfg.LLMProvider)
	}
	if cfg.LLMModel != "gpt-4o-mini" {
		t.Fatalf("expected default openai model, got %s", cfg.LLMModel)
	}
	if cfg.JobRows != 60 {
		t.Fatalf("expected 60 job rows, got %d", cfg.JobRows)
	}
	if cfg.OpenAITimeout != 120*time.Second {
		t.Fatalf("unexpected openai timeout: %v", cfg.OpenAITimeout)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Fatalf("unexpected max upload bytes: %d", cfg.MaxUploadBytes)
	}
	if cfg.LinkedInActorID != "" || cfg.NaukriActorID != "" || cfg.LinkedInLocation != "" {
		t.Fatalf("job source settings should default empty, got %q %q %q", cfg.LinkedInActorID, cfg.NaukriActorID, cfg.LinkedInLocation)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ENV", "prod")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("JOB_ROWS", "25")
	t.Setenv("CORS_ALLOW_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Load()
	if cfg.Env != "production" {
		t.Fatalf("expected production, got %s", cfg.Env)
	}
	if cfg.LLMProvider != "gemini" {
		t.Fatalf("expected gemini, got %s", cfg.LLMProvider)
	}
	if cfg.LLMModel != "gemini-2.5-flash" {
		t.Fatalf("expected gemini default model, got %s", cfg.LLMModel)
	}
	if cfg.JobRows != 25 {
		t.Fatalf("expected 25 rows, got %d", cfg.JobRows)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadInvalidRowsFallsBack(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JOB_ROWS", "-3")

	cfg := Load()
	if cfg.JobRows != 60 {
		t.Fatalf("expected fallback to 60, got %d", cfg.JobRows)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("LINKEDIN_LOCATION", "")
	os.Unsetenv("LINKEDIN_LOCATION")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LINKEDIN_LOCATION=Remote\n"), 0o644); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("LINKEDIN_LOCATION") })

	cfg := Load()
	if cfg.LinkedInLocation != "Remote" {
		t.Fatalf("expected location from .env, got %q", cfg.LinkedInLocation)
	}
}
