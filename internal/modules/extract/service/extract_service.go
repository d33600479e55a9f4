package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"unhook/internal/modules/extract/domain"
	extractout "unhook/internal/modules/extract/port/out"
	apperrors "unhook/internal/platform/errors"
)

// Policy carries the extraction tunables.
type Policy struct {
	MinUsageMinutes int
}

type ExtractService struct {
	store  extractout.ManifestStore
	host   extractout.Host
	policy Policy
}

func NewExtractService(store extractout.ManifestStore, host extractout.Host, policy Policy) *ExtractService {
	return &ExtractService{store: store, host: host, policy: policy}
}

// Register pins the binary's current checksum so later runs notice a
// swapped executable. Re-registering a name replaces its entry.
func (s *ExtractService) Register(ctx context.Context, name, binary string) (domain.Manifest, error) {
	if name == "" {
		return domain.Manifest{}, fmt.Errorf("%w: extractor name is required", apperrors.ErrInvalidInput)
	}
	abs, err := filepath.Abs(binary)
	if err != nil {
		return domain.Manifest{}, fmt.Errorf("%w: bad binary path %q", apperrors.ErrInvalidInput, binary)
	}
	sum, err := checksum(abs)
	if err != nil {
		return domain.Manifest{}, fmt.Errorf("checksum extractor binary: %w", err)
	}
	manifest := domain.Manifest{Name: name, Binary: abs, SHA256: sum, Enabled: true}
	if err := manifest.Validate(); err != nil {
		return domain.Manifest{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}

	manifests, err := s.store.Load(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	replaced := false
	for i, m := range manifests {
		if m.Name == name {
			manifests[i] = manifest
			replaced = true
			break
		}
	}
	if !replaced {
		manifests = append(manifests, manifest)
	}
	if err := s.store.Save(ctx, manifests); err != nil {
		return domain.Manifest{}, fmt.Errorf("save extractor manifests: %w", err)
	}
	return manifest, nil
}

func (s *ExtractService) List(ctx context.Context) ([]domain.Manifest, error) {
	return s.store.Load(ctx)
}

func (s *ExtractService) Resolve(ctx context.Context, name string) (domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	for _, m := range manifests {
		if m.Name != name {
			continue
		}
		if !m.Enabled {
			return domain.Manifest{}, fmt.Errorf("%w: extractor %s is disabled", apperrors.ErrInvalidInput, name)
		}
		if err := m.Validate(); err != nil {
			return domain.Manifest{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
		}
		if err := verifyChecksum(m.Binary, m.SHA256); err != nil {
			return domain.Manifest{}, err
		}
		return m, nil
	}
	return domain.Manifest{}, fmt.Errorf("%w: extractor %q", apperrors.ErrNotFound, name)
}

func (s *ExtractService) Metadata(ctx context.Context, name string) (domain.Metadata, error) {
	manifest, err := s.Resolve(ctx, name)
	if err != nil {
		return domain.Metadata{}, err
	}
	return s.host.GetMetadata(ctx, manifest)
}

// Pull fetches, validates and orders one window of records, enforcing
// the minimum-usage threshold.
func (s *ExtractService) Pull(ctx context.Context, name string, startMS, endMS int64) ([]domain.Record, int, error) {
	if endMS <= startMS {
		return nil, 0, fmt.Errorf("%w: empty extraction window", apperrors.ErrInvalidInput)
	}
	manifest, err := s.Resolve(ctx, name)
	if err != nil {
		return nil, 0, err
	}
	records, err := s.host.ExtractSessions(ctx, manifest, startMS, endMS)
	if err != nil {
		return nil, 0, fmt.Errorf("extract sessions from %s: %w", name, err)
	}
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, 0, err
		}
	}
	sort.SliceStable(records, func(i, j int) bool { return records[i].StartMS < records[j].StartMS })

	total := domain.TotalMinutes(records)
	if total < s.policy.MinUsageMinutes {
		return nil, 0, fmt.Errorf("%w: %d usage minutes extracted, need %d",
			apperrors.ErrInsufficientData, total, s.policy.MinUsageMinutes)
	}
	return records, total, nil
}

func checksum(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

func verifyChecksum(path, want string) error {
	got, err := checksum(path)
	if err != nil {
		return fmt.Errorf("checksum extractor binary: %w", err)
	}
	if got != want {
		return fmt.Errorf("%w: extractor binary changed since registration", apperrors.ErrInvalidInput)
	}
	return nil
}
