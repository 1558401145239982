// Package profile validates requested deployment-profile configurations and
// turns them into normalized creation requests. Build is pure: no I/O, no
// side effects, deterministic for a given input and locale catalog.
package profile

import (
	"fmt"

	"github.com/autoprov/autoprov/internal/locale"
	"github.com/autoprov/autoprov/pkg/models"
)

// LocaleCatalog is the reference set of known culture names. It is supplied
// by the caller; the builder never computes it.
type LocaleCatalog interface {
	Contains(tag string) bool
	Canonical(tag string) (string, bool)
}

// Builder validates configurations against the deployment rule table and
// emits profile creation requests.
type Builder struct {
	locales LocaleCatalog
}

// NewBuilder creates a builder backed by the given locale catalog.
func NewBuilder(locales LocaleCatalog) *Builder {
	return &Builder{locales: locales}
}

// Build validates cfg and returns the normalized creation request.
//
// Evaluation order: join mode presence, the class/mode rule table, locale,
// device name template, then normalization. The first violation aborts with
// a typed error; a request that comes back always has a derived device usage
// type and a name template consistent with its resource kind.
func (b *Builder) Build(cfg Config) (*models.ProfileRequest, error) {
	switch cfg.JoinMode {
	case JoinHybrid, JoinAzureAD:
	default:
		return nil, fmt.Errorf("join mode %q is not valid (expected Hybrid or AzureAD)", cfg.JoinMode)
	}

	rule, ok := deploymentRules[classMode{cfg.DeviceClass, cfg.DeploymentMode}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnsupportedCombination, cfg.DeviceClass, cfg.DeploymentMode)
	}
	if err := rule.apply(&cfg); err != nil {
		return nil, err
	}

	localeTag, err := b.resolveLocale(cfg.Locale)
	if err != nil {
		return nil, err
	}

	if cfg.DeviceNameTemplate != "" {
		if err := validateTemplate(cfg.DeviceNameTemplate); err != nil {
			return nil, err
		}
	}

	req := &models.ProfileRequest{
		DisplayName:                   cfg.DisplayName,
		Description:                   cfg.Description,
		Locale:                        localeTag,
		PreprovisioningAllowed:        cfg.PreprovisioningAllowed,
		DeviceType:                    deviceTypeFor(cfg.DeviceClass),
		HardwareHashExtractionEnabled: cfg.ConvertTargetedDevices,
		RoleScopeTagIDs:               []string{},
		OutOfBoxExperienceSetting: models.OOBESetting{
			DeviceUsageType:              rule.usageType,
			EscapeLinkHidden:             cfg.HideChangeAccountOptions,
			PrivacySettingsHidden:        cfg.HidePrivacySettings,
			EULAHidden:                   cfg.HideLicenseTerms,
			UserType:                     userTypeFor(cfg.UserType),
			KeyboardSelectionPageSkipped: cfg.SkipKeyboardSelection,
		},
	}

	// Join-mode normalization decides the resource kind. Hybrid-joined
	// profiles never carry a name template; AzureAD-joined profiles never
	// skip the AD connectivity check.
	switch cfg.JoinMode {
	case JoinHybrid:
		req.ODataType = models.ProfileTypeHybrid
		req.DeviceNameTemplate = ""
		req.HybridAzureADJoinSkipConnectivityCheck = cfg.SkipADConnectivityCheck
	case JoinAzureAD:
		req.ODataType = models.ProfileTypeAzureAD
		req.DeviceNameTemplate = cfg.DeviceNameTemplate
		req.HybridAzureADJoinSkipConnectivityCheck = false
	}

	return req, nil
}

func (b *Builder) resolveLocale(tag string) (string, error) {
	if tag == locale.OSDefault {
		return tag, nil
	}
	canonical, ok := b.locales.Canonical(tag)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidLocale, tag)
	}
	return canonical, nil
}

func deviceTypeFor(class DeviceClass) string {
	if class == DeviceClassHoloLens {
		return models.DeviceTypeHoloLens
	}
	return models.DeviceTypeWindowsPC
}

func userTypeFor(t UserType) string {
	if t == UserTypeAdministrator {
		return models.UserTypeAdministrator
	}
	return models.UserTypeStandard
}
