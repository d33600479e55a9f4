package domain

import (
	"fmt"
	"regexp"

	apperrors "unhook/internal/platform/errors"
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest registers one out-of-process usage extractor.
type Manifest struct {
	Name    string `json:"name"`
	Binary  string `json:"binary"`
	SHA256  string `json:"sha256"`
	Enabled bool   `json:"enabled"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("extractor name is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("extractor binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("extractor sha256 must be lowercase 64-char hex")
	}
	return nil
}

type Metadata struct {
	Name    string
	Version string
	Source  string
}

// Record is one raw usage interval as reported by an extractor. The
// plugin applies its own minimum-duration and merge-gap policy; the
// host only validates shape.
type Record struct {
	App     string
	StartMS int64
	EndMS   int64
}

func (r Record) Validate() error {
	if r.App == "" {
		return fmt.Errorf("%w: record without app", apperrors.ErrInvalidInput)
	}
	if r.EndMS <= r.StartMS {
		return fmt.Errorf("%w: record for %s ends before it starts", apperrors.ErrInvalidInput, r.App)
	}
	return nil
}

// TotalMinutes sums record durations, rounding down per record.
func TotalMinutes(records []Record) int {
	total := 0
	for _, r := range records {
		total += int((r.EndMS - r.StartMS) / 60_000)
	}
	return total
}
