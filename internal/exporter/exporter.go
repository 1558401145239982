// Package exporter writes the remote deployment profiles to a local seed
// file, page by page.
package exporter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/autoprov/autoprov/pkg/models"
)

const defaultPageSize = 100

// ProfileLister is the slice of the management client the exporter needs.
type ProfileLister interface {
	ListProfiles(ctx context.Context, pageSize int) ([]models.Profile, error)
}

// Service collects deployment profiles and writes them as indented JSON.
type Service struct {
	api      ProfileLister
	pageSize int
}

// NewService creates a new exporter service.
func NewService(api ProfileLister) *Service {
	return &Service{api: api, pageSize: defaultPageSize}
}

// SetPageSize overrides the page size requested from the service.
func (s *Service) SetPageSize(size int) {
	if size > 0 {
		s.pageSize = size
	}
}

// ExportToPath fetches every profile and writes them to outputPath, creating
// parent directories as needed. Returns the number of profiles written.
func (s *Service) ExportToPath(ctx context.Context, outputPath string) (int, error) {
	if s.api == nil {
		return 0, fmt.Errorf("management client is not initialized")
	}

	profiles, err := s.api.ListProfiles(ctx, s.pageSize)
	if err != nil {
		return 0, err
	}

	if err := ensureDir(outputPath); err != nil {
		return 0, err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal profiles for export: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write export file %s: %w", outputPath, err)
	}
	return len(profiles), nil
}

func ensureDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}
