// Package config loads service configuration from an optional YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/secdash/kpi-backend/util"
)

// Thresholds holds the numeric policy knobs used by the template bank and the
// chatbot. The defaults reproduce the original tuning values; none of them is
// derived from a stated policy, so they stay configurable.
type Thresholds struct {
	CriticalHighUrgent int     `yaml:"critical_high_urgent"`
	OldVulnsUrgent     int     `yaml:"old_vulns_urgent"`
	DeptAvgMarginDays  float64 `yaml:"dept_avg_margin_days"`
	HighRiskUrgent     int     `yaml:"high_risk_urgent"`
	AutomationAvgDays  float64 `yaml:"automation_avg_days"`
	RepeatTraining     float64 `yaml:"repeat_training"`
	GoodAvgDays        float64 `yaml:"good_avg_days"`
	ChatConfidence     float64 `yaml:"chat_confidence"`
}

// Config is the full service configuration.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	// DatasetSource selects where records come from: "file" (xlsx) or "arango".
	DatasetSource string `yaml:"dataset_source"`
	DatasetPath   string `yaml:"dataset_path"`

	// ReferenceDate replaces wall-clock "now" for open-issue age computation.
	ReferenceDate string `yaml:"reference_date"`

	CacheTTLSeconds      int `yaml:"cache_ttl_seconds"`
	SuggestionTTLSeconds int `yaml:"suggestion_cache_ttl_seconds"`

	EmbedURL            string `yaml:"embed_url"`
	ValkeyAddr          string `yaml:"valkey_addr"`
	KafkaBrokers        string `yaml:"kafka_brokers"`
	KafkaTopic          string `yaml:"kafka_topic"`
	KafkaRefreshedTopic string `yaml:"kafka_refreshed_topic"`

	Thresholds Thresholds `yaml:"thresholds"`
}

// Default returns the configuration matching the original deployment.
func Default() Config {
	return Config{
		ListenAddr:           ":8001",
		DatasetSource:        "file",
		DatasetPath:          "Cybersecurity_KPI_Minimal.xlsx",
		ReferenceDate:        "2025-06-17",
		CacheTTLSeconds:      300,
		SuggestionTTLSeconds: 300,
		KafkaTopic:           "dataset.refresh",
		KafkaRefreshedTopic:  "dataset.refreshed",
		Thresholds: Thresholds{
			CriticalHighUrgent: 5,
			OldVulnsUrgent:     3,
			DeptAvgMarginDays:  5,
			HighRiskUrgent:     1,
			AutomationAvgDays:  20,
			RepeatTraining:     1.5,
			GoodAvgDays:        15,
			ChatConfidence:     0.3,
		},
	}
}

// Load reads the YAML file at path when it exists, then applies environment
// overrides. A missing file is not an error; the defaults stand.
func Load(path string) (Config, error) {
	cfg := Default()

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.ListenAddr = util.GetEnvDefault("KPI_LISTEN_ADDR", cfg.ListenAddr)
	cfg.DatasetSource = util.GetEnvDefault("KPI_DATASET_SOURCE", cfg.DatasetSource)
	cfg.DatasetPath = util.GetEnvDefault("KPI_DATASET_PATH", cfg.DatasetPath)
	cfg.ReferenceDate = util.GetEnvDefault("KPI_REFERENCE_DATE", cfg.ReferenceDate)
	cfg.EmbedURL = util.GetEnvDefault("EMBED_URL", cfg.EmbedURL)
	cfg.ValkeyAddr = util.GetEnvDefault("VALKEY_ADDR", cfg.ValkeyAddr)
	cfg.KafkaBrokers = util.GetEnvDefault("KAFKA_BROKERS", cfg.KafkaBrokers)
	cfg.KafkaTopic = util.GetEnvDefault("KAFKA_TOPIC", cfg.KafkaTopic)
	cfg.KafkaRefreshedTopic = util.GetEnvDefault("KAFKA_REFRESHED_TOPIC", cfg.KafkaRefreshedTopic)

	if v := os.Getenv("KPI_CACHE_TTL_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid KPI_CACHE_TTL_SECONDS %q: %w", v, err)
		}
		cfg.CacheTTLSeconds = n
	}

	if _, err := cfg.Reference(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Reference parses the configured reference date.
func (c Config) Reference() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.ReferenceDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reference_date %q: %w", c.ReferenceDate, err)
	}
	return t, nil
}

// CacheTTL returns the dataset cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
