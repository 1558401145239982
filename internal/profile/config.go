package profile

import (
	"fmt"
	"strings"

	"github.com/autoprov/autoprov/internal/locale"
	"github.com/autoprov/autoprov/pkg/models"
)

// DeviceClass selects the hardware family a profile targets.
type DeviceClass string

// DeploymentMode selects attended or unattended out-of-box setup.
type DeploymentMode string

// JoinMode selects how devices join the directory service.
type JoinMode string

// UserType selects the local account type created during setup.
type UserType string

const (
	DeviceClassWindowsPC DeviceClass = "WindowsPC"
	DeviceClassHoloLens  DeviceClass = "HoloLens"

	DeploymentUserDriven    DeploymentMode = "UserDriven"
	DeploymentSelfDeploying DeploymentMode = "SelfDeploying"

	JoinHybrid  JoinMode = "Hybrid"
	JoinAzureAD JoinMode = "AzureAD"

	UserTypeStandard      UserType = "Standard"
	UserTypeAdministrator UserType = "Administrator"
)

// Config is the fully specified input to Build. Every field carries an
// explicit value; supplying defaults for absent fields is the concern of
// FromDefinition, not of validation.
type Config struct {
	DisplayName              string
	Description              string
	DeviceClass              DeviceClass
	DeploymentMode           DeploymentMode
	JoinMode                 JoinMode
	Locale                   string
	DeviceNameTemplate       string
	PreprovisioningAllowed   bool
	SkipADConnectivityCheck  bool
	HideLicenseTerms         bool
	HidePrivacySettings      bool
	HideChangeAccountOptions bool
	SkipKeyboardSelection    bool
	UserType                 UserType
	ConvertTargetedDevices   bool
}

// ParseDeviceClass maps a raw string to a device class. Empty defaults to
// WindowsPC.
func ParseDeviceClass(s string) (DeviceClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "windowspc", "windows", "pc":
		return DeviceClassWindowsPC, nil
	case "hololens":
		return DeviceClassHoloLens, nil
	}
	return "", fmt.Errorf("unknown device class %q (expected WindowsPC or HoloLens)", s)
}

// ParseDeploymentMode maps a raw string to a deployment mode. Empty defaults
// to UserDriven.
func ParseDeploymentMode(s string) (DeploymentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "userdriven", "user-driven":
		return DeploymentUserDriven, nil
	case "selfdeploying", "self-deploying":
		return DeploymentSelfDeploying, nil
	}
	return "", fmt.Errorf("unknown deployment mode %q (expected UserDriven or SelfDeploying)", s)
}

// ParseJoinMode maps a raw string to a join mode. The join mode is required;
// empty is an error.
func ParseJoinMode(s string) (JoinMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hybrid":
		return JoinHybrid, nil
	case "azuread", "aad", "entra", "entraid":
		return JoinAzureAD, nil
	case "":
		return "", fmt.Errorf("join mode is required (expected Hybrid or AzureAD)")
	}
	return "", fmt.Errorf("unknown join mode %q (expected Hybrid or AzureAD)", s)
}

// ParseUserType maps a raw string to a user type. Empty defaults to Standard.
func ParseUserType(s string) (UserType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return UserTypeStandard, nil
	case "administrator", "admin":
		return UserTypeAdministrator, nil
	}
	return "", fmt.Errorf("unknown user type %q (expected Standard or Administrator)", s)
}

// oobeDefaults are the values used for out-of-box flags a definition leaves
// unset. Where the deployment rule fixes a flag the default matches it, so a
// definition that only fills the tabular columns always validates.
type oobeDefaults struct {
	hideLicenseTerms         bool
	hidePrivacySettings      bool
	hideChangeAccountOptions bool
	skipKeyboardSelection    bool
}

func defaultsFor(class DeviceClass, mode DeploymentMode) oobeDefaults {
	if class == DeviceClassHoloLens {
		return oobeDefaults{hideChangeAccountOptions: true, skipKeyboardSelection: true}
	}
	if mode == DeploymentSelfDeploying {
		return oobeDefaults{
			hideLicenseTerms:         true,
			hidePrivacySettings:      true,
			hideChangeAccountOptions: true,
			skipKeyboardSelection:    true,
		}
	}
	// User-driven Windows PC: hide the noisy OOBE pages but keep privacy
	// settings visible to the enrolling user.
	return oobeDefaults{
		hideLicenseTerms:         true,
		hideChangeAccountOptions: true,
		skipKeyboardSelection:    true,
	}
}

// FromDefinition converts a caller-facing definition into a fully specified
// Config, applying enum parsing and class/mode defaults for fields the
// definition leaves unset. Validation proper happens in Build.
func FromDefinition(def models.ProfileDefinition) (Config, error) {
	class, err := ParseDeviceClass(def.DeviceClass)
	if err != nil {
		return Config{}, err
	}
	mode, err := ParseDeploymentMode(def.DeploymentMode)
	if err != nil {
		return Config{}, err
	}
	join, err := ParseJoinMode(def.JoinMode)
	if err != nil {
		return Config{}, err
	}
	userType, err := ParseUserType(def.UserType)
	if err != nil {
		return Config{}, err
	}

	loc := strings.TrimSpace(def.Locale)
	if loc == "" {
		loc = locale.OSDefault
	}

	defaults := defaultsFor(class, mode)
	cfg := Config{
		DisplayName:              strings.TrimSpace(def.DisplayName),
		Description:              def.Description,
		DeviceClass:              class,
		DeploymentMode:           mode,
		JoinMode:                 join,
		Locale:                   loc,
		DeviceNameTemplate:       def.DeviceNameTemplate,
		PreprovisioningAllowed:   def.PreprovisioningAllowed,
		HideLicenseTerms:         boolOr(def.HideLicenseTerms, defaults.hideLicenseTerms),
		HidePrivacySettings:      boolOr(def.HidePrivacySettings, defaults.hidePrivacySettings),
		HideChangeAccountOptions: boolOr(def.HideChangeAccountOptions, defaults.hideChangeAccountOptions),
		SkipKeyboardSelection:    boolOr(def.SkipKeyboardSelection, defaults.skipKeyboardSelection),
		UserType:                 userType,
		ConvertTargetedDevices:   def.ConvertTargetedDevices,
	}
	return cfg, nil
}

func boolOr(v *bool, fallback bool) bool {
	if v != nil {
		return *v
	}
	return fallback
}
