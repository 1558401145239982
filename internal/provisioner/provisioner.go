// Package provisioner drives batch provisioning: for each configuration row
// it builds a profile request, creates the remote resource, then resolves
// and submits the row's group assignments.
package provisioner

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/autoprov/autoprov/internal/assign"
	"github.com/autoprov/autoprov/internal/csvsource"
	"github.com/autoprov/autoprov/internal/profile"
	"github.com/autoprov/autoprov/pkg/models"
)

// API is the slice of the management client the provisioner needs.
type API interface {
	CreateProfile(ctx context.Context, req *models.ProfileRequest) (string, error)
	ProfileIDsByName(ctx context.Context, displayName string) ([]string, error)
	GroupIDByName(ctx context.Context, displayName string) (string, error)
	CreateAssignment(ctx context.Context, profileID string, target assign.Target) (string, error)
}

// RowError records one failed configuration row.
type RowError struct {
	Line        int
	DisplayName string
	Err         error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.DisplayName, e.Err)
}

// Summary is the outcome of one batch run.
type Summary struct {
	Created     []string
	Assignments int
	Failed      []RowError
}

// Service applies configuration rows against the management API. Rows are
// processed sequentially; each row is a fresh set of external calls with no
// caching between rows.
type Service struct {
	api             API
	builder         *profile.Builder
	log             *zap.Logger
	continueOnError bool
	dryRun          bool
}

// NewService creates a provisioner with sane defaults.
func NewService(api API, locales profile.LocaleCatalog) *Service {
	return &Service{
		api:     api,
		builder: profile.NewBuilder(locales),
		log:     zap.NewNop(),
	}
}

// SetLogger attaches a logger for per-row progress.
func (s *Service) SetLogger(log *zap.Logger) {
	if log != nil {
		s.log = log
	}
}

// SetContinueOnError toggles recording row failures and moving on instead of
// aborting the batch at the first one.
func (s *Service) SetContinueOnError(cont bool) {
	s.continueOnError = cont
}

// SetDryRun toggles validation-only mode: rows are built and checked but
// nothing is submitted or looked up remotely.
func (s *Service) SetDryRun(dry bool) {
	s.dryRun = dry
}

// ApplyFile reads a CSV configuration file and applies every row.
func (s *Service) ApplyFile(ctx context.Context, path string) (*Summary, error) {
	rows, err := csvsource.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.Apply(ctx, rows)
}

// Apply processes rows in order. A row failure is fatal to that row only;
// whether the batch continues is governed by SetContinueOnError. The summary
// is returned alongside the error so callers can report partial progress.
func (s *Service) Apply(ctx context.Context, rows []csvsource.Row) (*Summary, error) {
	summary := &Summary{}
	total := len(rows)

	for i, row := range rows {
		name := row.Definition.DisplayName
		s.log.Info("provisioning profile",
			zap.Int("row", i+1),
			zap.Int("total", total),
			zap.String("display_name", name))

		assigned, err := s.applyRow(ctx, row)
		if err != nil {
			rowErr := RowError{Line: row.Line, DisplayName: name, Err: err}
			summary.Failed = append(summary.Failed, rowErr)
			s.log.Error("row failed", zap.Int("line", row.Line), zap.String("display_name", name), zap.Error(err))
			if !s.continueOnError {
				return summary, rowErr
			}
			continue
		}
		summary.Created = append(summary.Created, name)
		summary.Assignments += assigned
	}

	if len(summary.Failed) > 0 {
		return summary, fmt.Errorf("failed to provision %d of %d profiles", len(summary.Failed), total)
	}
	return summary, nil
}

// applyRow handles one configuration row end to end and returns the number
// of assignments submitted. Assignment targets are resolved eagerly before
// the first submission, so a bad group name never leaves a profile partially
// assigned.
func (s *Service) applyRow(ctx context.Context, row csvsource.Row) (int, error) {
	cfg, err := profile.FromDefinition(row.Definition)
	if err != nil {
		return 0, err
	}
	req, err := s.builder.Build(cfg)
	if err != nil {
		return 0, err
	}

	if s.dryRun {
		data, _ := json.Marshal(req)
		s.log.Info("dry run, skipping submission", zap.String("display_name", cfg.DisplayName), zap.ByteString("request", data))
		return 0, nil
	}

	profileID, err := s.api.CreateProfile(ctx, req)
	if err != nil {
		return 0, err
	}
	s.log.Info("profile created", zap.String("display_name", cfg.DisplayName), zap.String("profile_id", profileID))

	include := row.Definition.IncludedGroups
	exclude := row.Definition.ExcludedGroups
	if len(include) == 0 && len(exclude) == 0 {
		return 0, nil
	}

	// Profiles are re-resolved by display name: creation and assignment
	// share only that convention.
	resolvedID, targets, err := assign.Resolve(ctx, cfg.DisplayName, include, exclude, s.api, s.api)
	if err != nil {
		return 0, err
	}

	submitted := 0
	for _, target := range targets {
		if _, err := s.api.CreateAssignment(ctx, resolvedID, target); err != nil {
			return submitted, err
		}
		submitted++
	}
	s.log.Info("assignments submitted", zap.String("profile_id", resolvedID), zap.Int("count", submitted))
	return submitted, nil
}
