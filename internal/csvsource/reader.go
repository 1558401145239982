// Package csvsource reads tabular provisioning configuration: one row per
// deployment profile plus its group assignments.
package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/stoewer/go-strcase"

	"github.com/autoprov/autoprov/pkg/models"
)

// Row is one parsed configuration row.
type Row struct {
	// Line is the 1-based line number in the source file, for error
	// reporting back to the administrator.
	Line       int
	Definition models.ProfileDefinition
}

// Column keys, normalized to snake_case. Headers are matched after the same
// normalization, so "DisplayName", "display-name" and "Display Name" all
// address the display_name column.
const (
	colDisplayName              = "display_name"
	colDescription              = "description"
	colProfileType              = "profile_type"
	colDeploymentMode           = "deployment_mode"
	colJoinMode                 = "join_to_entra_id_as"
	colLocale                   = "language_locale"
	colNameTemplate             = "apply_device_name_template"
	colPreprovisioning          = "allow_preprovisioned_deployment"
	colConvertTargetedDevices   = "convert_all_targeted_devices"
	colUserType                 = "user_account_type"
	colHideLicenseTerms         = "hide_license_terms"
	colHidePrivacySettings      = "hide_privacy_settings"
	colHideChangeAccountOptions = "hide_change_account_options"
	colSkipKeyboardSelection    = "skip_keyboard_selection"
	colIncludedGroups           = "included_groups"
	colExcludedGroups           = "excluded_groups"
)

// ReadFile reads and parses a CSV configuration file.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open configuration file: %w", err)
	}
	defer func() { _ = f.Close() }()
	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Read parses CSV configuration from r. The first record is the header; a
// display_name column is mandatory, everything else is optional.
func Read(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("configuration is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[normalizeHeader(h)] = i
	}
	if _, ok := index[colDisplayName]; !ok {
		return nil, fmt.Errorf("configuration is missing a DisplayName column")
	}

	var rows []Row
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row, err := parseRecord(index, record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row.Line = line
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(index map[string]int, record []string) (Row, error) {
	get := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	def := models.ProfileDefinition{
		DisplayName:        get(colDisplayName),
		Description:        get(colDescription),
		DeviceClass:        get(colProfileType),
		DeploymentMode:     get(colDeploymentMode),
		JoinMode:           get(colJoinMode),
		Locale:             get(colLocale),
		DeviceNameTemplate: get(colNameTemplate),
		UserType:           get(colUserType),
		IncludedGroups:     splitGroups(get(colIncludedGroups)),
		ExcludedGroups:     splitGroups(get(colExcludedGroups)),
	}
	if def.DisplayName == "" {
		return Row{}, fmt.Errorf("DisplayName is required")
	}

	var err error
	if def.PreprovisioningAllowed, err = parseBool(colPreprovisioning, get(colPreprovisioning)); err != nil {
		return Row{}, err
	}
	if def.ConvertTargetedDevices, err = parseBool(colConvertTargetedDevices, get(colConvertTargetedDevices)); err != nil {
		return Row{}, err
	}
	if def.HideLicenseTerms, err = parseOptionalBool(colHideLicenseTerms, get(colHideLicenseTerms)); err != nil {
		return Row{}, err
	}
	if def.HidePrivacySettings, err = parseOptionalBool(colHidePrivacySettings, get(colHidePrivacySettings)); err != nil {
		return Row{}, err
	}
	if def.HideChangeAccountOptions, err = parseOptionalBool(colHideChangeAccountOptions, get(colHideChangeAccountOptions)); err != nil {
		return Row{}, err
	}
	if def.SkipKeyboardSelection, err = parseOptionalBool(colSkipKeyboardSelection, get(colSkipKeyboardSelection)); err != nil {
		return Row{}, err
	}

	return Row{Definition: def}, nil
}

// normalizeHeader folds a header cell to the snake_case column key.
func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	h = strings.ReplaceAll(h, " ", "_")
	return strcase.SnakeCase(h)
}

// splitGroups splits a semicolon-separated group list, dropping empties but
// keeping duplicates: duplicate names intentionally produce duplicate
// assignment submissions.
func splitGroups(cell string) []string {
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, ";")
	groups := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			groups = append(groups, p)
		}
	}
	if len(groups) == 0 {
		return nil
	}
	return groups
}

func parseBool(col, cell string) (bool, error) {
	if cell == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(strings.ToLower(cell))
	if err != nil {
		return false, fmt.Errorf("column %s: %q is not a boolean", col, cell)
	}
	return v, nil
}

func parseOptionalBool(col, cell string) (*bool, error) {
	if cell == "" {
		return nil, nil
	}
	v, err := parseBool(col, cell)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
