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
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.Server.ListenAddr)
	}
	if cfg.Engine.CostMode != "pure_risk" {
		t.Errorf("CostMode = %q, want pure_risk", cfg.Engine.CostMode)
	}
	if cfg.Feed.Enabled {
		t.Error("feed should be disabled by default")
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.Engine.ZoneTTL != 2*time.Hour {
		t.Errorf("ZoneTTL = %v, want 2h", cfg.Engine.ZoneTTL)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  listen_addr: ":9090"
engine:
  cost_mode: distance_weighted
  risk_penalty_factor: 25.0
logging:
  level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want :9090", cfg.Server.ListenAddr)
	}
	if cfg.Engine.CostMode != "distance_weighted" {
		t.Errorf("CostMode = %q, want distance_weighted", cfg.Engine.CostMode)
	}
	if cfg.Engine.RiskPenaltyFactor != 25.0 {
		t.Errorf("RiskPenaltyFactor = %v, want 25.0", cfg.Engine.RiskPenaltyFactor)
	}
	// Unset fields keep their defaults.
	if cfg.Engine.QueryDeadline != 2*time.Second {
		t.Errorf("QueryDeadline = %v, want default 2s", cfg.Engine.QueryDeadline)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidCostMode(t *testing.T) {
	path := writeConfig(t, `
engine:
  cost_mode: teleport
`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("unknown cost mode should be rejected")
	}
	if !strings.Contains(err.Error(), "CostMode") {
		t.Errorf("error %q should name the offending field", err)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a mapping")
	if _, err := Load(path); err == nil {
		t.Fatal("malformed YAML should be rejected")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("missing file should be reported")
	}
}

func TestValidateFeedRequiresURLWhenEnabled(t *testing.T) {
	cfg := Default()
	cfg.Feed.Enabled = true
	cfg.Feed.URL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("enabled feed without a URL should fail validation")
	}
}
