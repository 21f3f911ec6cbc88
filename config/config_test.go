package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultsMatchOriginalTuning(t *testing.T) {
	cfg := Default()

	if cfg.ListenAddr != ":8001" {
		t.Fatalf("expected default listen addr :8001, got %s", cfg.ListenAddr)
	}
	if cfg.CacheTTLSeconds != 300 {
		t.Fatalf("expected 300s cache TTL, got %d", cfg.CacheTTLSeconds)
	}
	if cfg.Thresholds.CriticalHighUrgent != 5 {
		t.Fatalf("expected critical/high threshold 5, got %d", cfg.Thresholds.CriticalHighUrgent)
	}
	if cfg.Thresholds.ChatConfidence != 0.3 {
		t.Fatalf("expected chat confidence 0.3, got %v", cfg.Thresholds.ChatConfidence)
	}
	if cfg.KafkaTopic != "dataset.refresh" {
		t.Fatalf("expected refresh topic dataset.refresh, got %s", cfg.KafkaTopic)
	}
	if cfg.KafkaRefreshedTopic != "dataset.refreshed" {
		t.Fatalf("expected refreshed topic dataset.refreshed, got %s", cfg.KafkaRefreshedTopic)
	}

	ref, err := cfg.Reference()
	if err != nil {
		t.Fatalf("default reference date must parse: %v", err)
	}
	if ref.Year() != 2025 || ref.Month() != 6 || ref.Day() != 17 {
		t.Fatalf("unexpected default reference date: %v", ref)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.ListenAddr != Default().ListenAddr {
		t.Fatalf("expected defaults, got %s", cfg.ListenAddr)
	}
}

func TestLoadYAMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("listen_addr: \":9000\"\ndataset_path: data.xlsx\nthresholds:\n  critical_high_urgent: 10\n")
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":9000" {
		t.Fatalf("expected listen addr from file, got %s", cfg.ListenAddr)
	}
	if cfg.DatasetPath != "data.xlsx" {
		t.Fatalf("expected dataset path from file, got %s", cfg.DatasetPath)
	}
	if cfg.Thresholds.CriticalHighUrgent != 10 {
		t.Fatalf("expected threshold from file, got %d", cfg.Thresholds.CriticalHighUrgent)
	}
	// Untouched fields keep defaults
	if cfg.CacheTTLSeconds != 300 {
		t.Fatalf("expected default TTL preserved, got %d", cfg.CacheTTLSeconds)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: \":9000\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("KPI_LISTEN_ADDR", ":7000")
	t.Setenv("EMBED_URL", "http://localhost:5000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":7000" {
		t.Fatalf("expected env to win over file, got %s", cfg.ListenAddr)
	}
	if cfg.EmbedURL != "http://localhost:5000" {
		t.Fatalf("expected embed url from env, got %s", cfg.EmbedURL)
	}
}

func TestLoadRejectsBadReferenceDate(t *testing.T) {
	t.Setenv("KPI_REFERENCE_DATE", "17/06/2025")

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for malformed reference date")
	}
}

func TestLoadRejectsBadTTL(t *testing.T) {
	t.Setenv("KPI_CACHE_TTL_SECONDS", "soon")

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for non-numeric TTL")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\n\t-broken"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
