package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Database.Name != "practipulse_db" {
		t.Errorf("Database.Name = %q, want practipulse_db", cfg.Database.Name)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Redis.Addr = %q, want localhost:6379", cfg.Redis.Addr)
	}
	if cfg.Analytics.CostPerLead != 25 {
		t.Errorf("Analytics.CostPerLead = %v, want 25", cfg.Analytics.CostPerLead)
	}
	if cfg.Analytics.AppointmentValue != 300 {
		t.Errorf("Analytics.AppointmentValue = %v, want 300", cfg.Analytics.AppointmentValue)
	}
	if cfg.Kafka.SyncTopic != "record-sync" {
		t.Errorf("Kafka.SyncTopic = %q, want record-sync", cfg.Kafka.SyncTopic)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_NAME", "override_db")
	t.Setenv("ANALYTICS_COST_PER_LEAD", "42.5")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("RATE_LIMIT_WINDOW_DURATION", "30s")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.Database.Name != "override_db" {
		t.Errorf("Database.Name = %q, want override_db", cfg.Database.Name)
	}
	if cfg.Analytics.CostPerLead != 42.5 {
		t.Errorf("Analytics.CostPerLead = %v, want 42.5", cfg.Analytics.CostPerLead)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("Kafka.Brokers = %v, want [k1:9092 k2:9092]", cfg.Kafka.Brokers)
	}
	if cfg.RateLimit.WindowDuration != 30*time.Second {
		t.Errorf("RateLimit.WindowDuration = %v, want 30s", cfg.RateLimit.WindowDuration)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("ANALYTICS_COST_PER_LEAD", "not-a-number")
	t.Setenv("RATE_LIMIT_ENABLED", "maybe")

	cfg := Load()

	if cfg.Analytics.CostPerLead != 25 {
		t.Errorf("Analytics.CostPerLead = %v, want fallback 25", cfg.Analytics.CostPerLead)
	}
	if !cfg.RateLimit.Enabled {
		t.Error("RateLimit.Enabled should fall back to true")
	}
}

func TestDatabaseDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "pulse")

	cfg := Load()

	want := "host=db.internal port=5432 user=practipulse_user password=practipulse_password dbname=pulse sslmode=disable"
	if cfg.Database.DSN != want {
		t.Errorf("DSN = %q, want %q", cfg.Database.DSN, want)
	}
}

func TestGetAPIBasePath(t *testing.T) {
	cfg := Load()
	if got := cfg.GetAPIBasePath(); got != "/api/v1" {
		t.Errorf("GetAPIBasePath() = %q, want /api/v1", got)
	}
}
