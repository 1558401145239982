package profile

import (
	"strconv"

	"github.com/autoprov/autoprov/pkg/models"
)

// constraint pins one configuration field to a fixed value for a given
// device class / deployment mode pair.
type constraint struct {
	field    string
	required string
	actual   func(*Config) string
}

// deploymentRule holds the fixed-field constraints and the derived device
// usage type for one class/mode pair. Adding a class/mode combination is a
// table change, not new branching.
type deploymentRule struct {
	usageType   string
	constraints []constraint
}

type classMode struct {
	class DeviceClass
	mode  DeploymentMode
}

func boolField(name string, get func(*Config) bool, required bool) constraint {
	return constraint{
		field:    name,
		required: strconv.FormatBool(required),
		actual:   func(c *Config) string { return strconv.FormatBool(get(c)) },
	}
}

// holoLensRule applies to HoloLens in any requested mode: the mode itself is
// one of the constrained fields, so HoloLens/UserDriven fails on
// deploymentMode rather than falling through as an unsupported pair.
var holoLensRule = deploymentRule{
	usageType: models.DeviceUsageShared,
	constraints: []constraint{
		{
			field:    "deploymentMode",
			required: string(DeploymentSelfDeploying),
			actual:   func(c *Config) string { return string(c.DeploymentMode) },
		},
		{
			field:    "joinMode",
			required: string(JoinAzureAD),
			actual:   func(c *Config) string { return string(c.JoinMode) },
		},
		boolField("hideLicenseTerms", func(c *Config) bool { return c.HideLicenseTerms }, false),
		boolField("hidePrivacySettings", func(c *Config) bool { return c.HidePrivacySettings }, false),
		{
			field:    "userType",
			required: string(UserTypeStandard),
			actual:   func(c *Config) string { return string(c.UserType) },
		},
		boolField("preprovisioningAllowed", func(c *Config) bool { return c.PreprovisioningAllowed }, false),
		boolField("hideChangeAccountOptions", func(c *Config) bool { return c.HideChangeAccountOptions }, true),
	},
}

var selfDeployingPCRule = deploymentRule{
	usageType: models.DeviceUsageShared,
	constraints: []constraint{
		{
			field:    "joinMode",
			required: string(JoinAzureAD),
			actual:   func(c *Config) string { return string(c.JoinMode) },
		},
		boolField("hideLicenseTerms", func(c *Config) bool { return c.HideLicenseTerms }, true),
		boolField("hidePrivacySettings", func(c *Config) bool { return c.HidePrivacySettings }, true),
		{
			field:    "userType",
			required: string(UserTypeStandard),
			actual:   func(c *Config) string { return string(c.UserType) },
		},
	},
}

var userDrivenPCRule = deploymentRule{
	usageType: models.DeviceUsageSingleUser,
	constraints: []constraint{
		{
			// Hybrid-joined devices are named by the domain join
			// configuration, not the profile.
			field:    "deviceNameTemplate",
			required: `"" when joinMode is Hybrid`,
			actual: func(c *Config) string {
				if c.JoinMode == JoinHybrid && c.DeviceNameTemplate != "" {
					return strconv.Quote(c.DeviceNameTemplate)
				}
				return `"" when joinMode is Hybrid`
			},
		},
	},
}

var deploymentRules = map[classMode]*deploymentRule{
	{DeviceClassHoloLens, DeploymentUserDriven}:     &holoLensRule,
	{DeviceClassHoloLens, DeploymentSelfDeploying}:  &holoLensRule,
	{DeviceClassWindowsPC, DeploymentSelfDeploying}: &selfDeployingPCRule,
	{DeviceClassWindowsPC, DeploymentUserDriven}:    &userDrivenPCRule,
}

// apply checks every constraint in table order and returns the first
// violation as a ValidationError.
func (r *deploymentRule) apply(cfg *Config) error {
	for _, c := range r.constraints {
		if actual := c.actual(cfg); actual != c.required {
			return &ValidationError{
				Field:          c.field,
				Actual:         actual,
				Required:       c.required,
				DeviceClass:    cfg.DeviceClass,
				DeploymentMode: cfg.DeploymentMode,
			}
		}
	}
	return nil
}
