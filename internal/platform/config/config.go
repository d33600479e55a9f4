package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	DataDir      string
	DBPath       string
	PersonaDir   string
	ExtractorDir string
	Tuning       Tuning
}

// Tuning collects the documented policy constants. Everything here has
// a default; a tuning.yaml in the data directory overrides per field.
type Tuning struct {
	// Synthesis-only estimate fractions for daily stats. The live
	// rollover path never applies these.
	AlertShownFraction   float64 `yaml:"alert_shown_fraction"`
	AlertProceedFraction float64 `yaml:"alert_proceed_fraction"`

	// A session is a quick reopen when it starts within this many
	// milliseconds of the previous session's end on the same day.
	QuickReopenThresholdMS int64 `yaml:"quick_reopen_threshold_ms"`

	// Streak recovery policy.
	RecoveryLengthDays    int `yaml:"recovery_length_days"`
	RecoveryRetentionDays int `yaml:"recovery_retention_days"`
	MinStreakForRecovery  int `yaml:"min_streak_for_recovery"`

	MonthlyFreezeAllowance int `yaml:"monthly_freeze_allowance"`

	DetectionCacheTTLMinutes int `yaml:"detection_cache_ttl_minutes"`

	// Extracted usage below this total is treated as insufficient and
	// the seeder falls back to a synthetic baseline.
	MinExtractedUsageMinutes int `yaml:"min_extracted_usage_minutes"`

	RolloverRetryBudget int `yaml:"rollover_retry_budget"`
}

func DefaultTuning() Tuning {
	return Tuning{
		AlertShownFraction:       0.6,
		AlertProceedFraction:     0.5,
		QuickReopenThresholdMS:   120_000,
		RecoveryLengthDays:       3,
		RecoveryRetentionDays:    30,
		MinStreakForRecovery:     3,
		MonthlyFreezeAllowance:   2,
		DetectionCacheTTLMinutes: 180,
		MinExtractedUsageMinutes: 30,
		RolloverRetryBudget:      3,
	}
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	base := filepath.Join(dataDir, ".unhook")
	cfg := Config{
		DataDir:      dataDir,
		DBPath:       filepath.Join(base, "unhook.db"),
		PersonaDir:   filepath.Join(base, "personas"),
		ExtractorDir: filepath.Join(base, "extractors"),
		Tuning:       DefaultTuning(),
	}
	tuning, err := loadTuning(filepath.Join(base, "tuning.yaml"), cfg.Tuning)
	if err != nil {
		return Config{}, err
	}
	cfg.Tuning = tuning
	return cfg, nil
}

func loadTuning(path string, defaults Tuning) (Tuning, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults, nil
		}
		return Tuning{}, fmt.Errorf("read tuning: %w", err)
	}
	tuning := defaults
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&tuning); err != nil {
		return Tuning{}, fmt.Errorf("decode tuning: %w", err)
	}
	return tuning, nil
}
