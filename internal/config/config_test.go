package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("RESULTS_MODE", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.ResultsMode != ResultsModeStrict {
		t.Fatalf("expected strict mode by default, got %q", cfg.ResultsMode)
	}
	if cfg.SessionRateLimit != 20 || cfg.SessionRateWindow != 60 {
		t.Fatalf("unexpected rate limit defaults: %d/%d", cfg.SessionRateLimit, cfg.SessionRateWindow)
	}
}

func TestLoadConfigResultsMode(t *testing.T) {
	t.Setenv("RESULTS_MODE", " Partial ")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.ResultsMode != ResultsModePartial {
		t.Fatalf("expected partial mode, got %q", cfg.ResultsMode)
	}

	t.Setenv("RESULTS_MODE", "lenient")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for unknown results mode")
	}
}
