package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
environment: test
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Fatalf("port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Advisor.FreshnessWindow != 12*time.Hour {
		t.Fatalf("freshness window = %v", cfg.Advisor.FreshnessWindow)
	}
	if cfg.Advisor.RefreshInterval != 3*time.Hour {
		t.Fatalf("refresh interval = %v", cfg.Advisor.RefreshInterval)
	}
	if cfg.Advisor.DefaultHorizonDays != 7 {
		t.Fatalf("horizon = %d", cfg.Advisor.DefaultHorizonDays)
	}
	if cfg.Advisor.HistoryPeriod != "2y" {
		t.Fatalf("history period = %q", cfg.Advisor.HistoryPeriod)
	}
	if cfg.Providers.Cache.TTL != 15*time.Minute {
		t.Fatalf("cache ttl = %v", cfg.Providers.Cache.TTL)
	}
	if cfg.Providers.Chart.BaseURL == "" || cfg.Providers.Finnhub.BaseURL == "" {
		t.Fatalf("provider base urls must default")
	}
}

func TestLoadRejectsMissingEnvironment(t *testing.T) {
	_, err := Load(writeConfig(t, "server:\n  port: 8000\n"))
	if err == nil || !strings.Contains(err.Error(), "environment") {
		t.Fatalf("want environment error, got %v", err)
	}
}

func TestLoadRejectsInvertedThresholds(t *testing.T) {
	_, err := Load(writeConfig(t, `
environment: test
advisor:
  price_buy_threshold: -5
  price_sell_threshold: 5
`))
	if err == nil || !strings.Contains(err.Error(), "price_buy_threshold") {
		t.Fatalf("want threshold error, got %v", err)
	}
}

func TestLoadRejectsKafkaWithoutBrokers(t *testing.T) {
	_, err := Load(writeConfig(t, `
environment: test
kafka:
  enabled: true
  topic: transitions
`))
	if err == nil || !strings.Contains(err.Error(), "kafka.brokers") {
		t.Fatalf("want brokers error, got %v", err)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("FINNHUB_API_KEY", "k-123")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("KAFKA_BROKERS", "b1:9092,b2:9092")
	t.Setenv("KAFKA_TOPIC", "transitions")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadWithEnv(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Providers.Finnhub.APIKey != "k-123" {
		t.Fatalf("api key = %q", cfg.Providers.Finnhub.APIKey)
	}
	if !cfg.Providers.Cache.Redis.Enabled || cfg.Providers.Cache.Redis.Addr != "redis:6379" {
		t.Fatalf("redis override not applied: %+v", cfg.Providers.Cache.Redis)
	}
	if !cfg.Kafka.Enabled || len(cfg.Kafka.Brokers) != 2 {
		t.Fatalf("kafka override not applied: %+v", cfg.Kafka)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level = %q", cfg.Log.Level)
	}
}
