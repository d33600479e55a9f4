package out

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"unhook/internal/modules/persona/domain"
	personaout "unhook/internal/modules/persona/port/out"
	apperrors "unhook/internal/platform/errors"
)

// YAMLProfileStore reads one profile per yaml file from the persona
// pack directory. A missing directory means an empty pack.
type YAMLProfileStore struct {
	dir string
}

func NewYAMLProfileStore(dir string) personaout.ProfileStore {
	return &YAMLProfileStore{dir: dir}
}

type profileFile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	SessionsPerDay        []int `yaml:"sessions_per_day"`
	AverageSessionMinutes []int `yaml:"average_session_minutes"`
	LongestSessionMinutes []int `yaml:"longest_session_minutes"`
	DailyUsageMinutes     []int `yaml:"daily_usage_minutes"`
	StreakDays            []int `yaml:"streak_days"`

	QuickReopenRate        float64 `yaml:"quick_reopen_rate"`
	ExtendedSessionRate    float64 `yaml:"extended_session_rate"`
	GoalComplianceRate     float64 `yaml:"goal_compliance_rate"`
	WeekendUsageMultiplier float64 `yaml:"weekend_usage_multiplier"`

	TimeOfDay            []float64 `yaml:"time_of_day"`
	InterventionResponse []float64 `yaml:"intervention_response"`
	DecisionTime         []float64 `yaml:"decision_time"`

	HasGoals bool `yaml:"has_goals"`
}

func (s *YAMLProfileStore) List(ctx context.Context) ([]domain.Profile, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read persona pack dir: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext := filepath.Ext(entry.Name()); ext == ".yaml" || ext == ".yml" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	profiles := make([]domain.Profile, 0, len(names))
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		profile, err := s.load(filepath.Join(s.dir, name))
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (s *YAMLProfileStore) load(path string) (domain.Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("read profile %s: %w", path, err)
	}
	var file profileFile
	decoder := yaml.NewDecoder(bytes.NewReader(raw))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: decode %s: %v", apperrors.ErrInvalidProfile, filepath.Base(path), err)
	}
	profile, err := file.toDomain()
	if err != nil {
		return domain.Profile{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if err := profile.Validate(); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func (f profileFile) toDomain() (domain.Profile, error) {
	profile := domain.Profile{
		Name:                   f.Name,
		Description:            f.Description,
		QuickReopenRate:        f.QuickReopenRate,
		ExtendedSessionRate:    f.ExtendedSessionRate,
		GoalComplianceRate:     f.GoalComplianceRate,
		WeekendUsageMultiplier: f.WeekendUsageMultiplier,
		HasGoals:               f.HasGoals,
	}

	ranges := []struct {
		name string
		src  []int
		dst  *[2]int
	}{
		{"sessions_per_day", f.SessionsPerDay, &profile.SessionsPerDay},
		{"average_session_minutes", f.AverageSessionMinutes, &profile.AverageSessionMinutes},
		{"longest_session_minutes", f.LongestSessionMinutes, &profile.LongestSessionMinutes},
		{"daily_usage_minutes", f.DailyUsageMinutes, &profile.DailyUsageMinutes},
		{"streak_days", f.StreakDays, &profile.StreakDays},
	}
	for _, r := range ranges {
		if len(r.src) != 2 {
			return domain.Profile{}, fmt.Errorf("%w: %s needs exactly two values", apperrors.ErrInvalidProfile, r.name)
		}
		*r.dst = [2]int{r.src[0], r.src[1]}
	}

	if err := fill(profile.TimeOfDay[:], f.TimeOfDay, "time_of_day"); err != nil {
		return domain.Profile{}, err
	}
	if err := fill(profile.InterventionResponse[:], f.InterventionResponse, "intervention_response"); err != nil {
		return domain.Profile{}, err
	}
	if err := fill(profile.DecisionTime[:], f.DecisionTime, "decision_time"); err != nil {
		return domain.Profile{}, err
	}
	return profile, nil
}

func fill(dst []float64, src []float64, name string) error {
	if len(src) != len(dst) {
		return fmt.Errorf("%w: %s needs exactly %d weights", apperrors.ErrInvalidProfile, name, len(dst))
	}
	copy(dst, src)
	return nil
}
