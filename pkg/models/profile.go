package models

// OData type discriminators for the two deployment-profile sub-types the
// management service knows about.
const (
	ProfileTypeHybrid  = "#microsoft.graph.activeDirectoryWindowsAutopilotDeploymentProfile"
	ProfileTypeAzureAD = "#microsoft.graph.azureADWindowsAutopilotDeploymentProfile"
)

// Device classes accepted by the deviceType field.
const (
	DeviceTypeWindowsPC = "windowsPc"
	DeviceTypeHoloLens  = "holoLens"
)

// Out-of-box-experience enum values.
const (
	DeviceUsageSingleUser = "singleUser"
	DeviceUsageShared     = "shared"

	UserTypeStandard      = "standard"
	UserTypeAdministrator = "administrator"
)

// OOBESetting is the nested out-of-box-experience block of a deployment
// profile.
type OOBESetting struct {
	DeviceUsageType              string `json:"deviceUsageType"`
	EscapeLinkHidden             bool   `json:"escapeLinkHidden"`
	PrivacySettingsHidden        bool   `json:"privacySettingsHidden"`
	EULAHidden                   bool   `json:"eulaHidden"`
	UserType                     string `json:"userType"`
	KeyboardSelectionPageSkipped bool   `json:"keyboardSelectionPageSkipped"`
}

// ProfileRequest is the normalized creation payload for a deployment profile.
// It is produced by the profile builder and submitted once; the service
// assigns the resource ID.
type ProfileRequest struct {
	ODataType                              string      `json:"@odata.type"`
	DisplayName                            string      `json:"displayName"`
	Description                            string      `json:"description"`
	DeviceNameTemplate                     string      `json:"deviceNameTemplate"`
	Locale                                 string      `json:"locale"`
	PreprovisioningAllowed                 bool        `json:"preprovisioningAllowed"`
	DeviceType                             string      `json:"deviceType"`
	HardwareHashExtractionEnabled          bool        `json:"hardwareHashExtractionEnabled"`
	RoleScopeTagIDs                        []string    `json:"roleScopeTagIds"`
	HybridAzureADJoinSkipConnectivityCheck bool        `json:"hybridAzureADJoinSkipConnectivityCheck"`
	OutOfBoxExperienceSetting              OOBESetting `json:"outOfBoxExperienceSetting"`
}

// Profile is the subset of a remote deployment profile the CLI reads back
// when listing or resolving by display name.
type Profile struct {
	ID                 string `json:"id"`
	ODataType          string `json:"@odata.type,omitempty"`
	DisplayName        string `json:"displayName"`
	Description        string `json:"description,omitempty"`
	DeviceNameTemplate string `json:"deviceNameTemplate,omitempty"`
	Locale             string `json:"locale,omitempty"`
}

// ProfileDefinition is the caller-facing description of one profile to
// provision, as read from a CSV row or a YAML definition file. String enums
// are raw and case-insensitive; pointer booleans distinguish "not supplied"
// (defaulted per device class and deployment mode) from an explicit value.
type ProfileDefinition struct {
	DisplayName              string   `json:"displayName" yaml:"displayName"`
	Description              string   `json:"description,omitempty" yaml:"description"`
	DeviceClass              string   `json:"deviceClass,omitempty" yaml:"deviceClass"`
	DeploymentMode           string   `json:"deploymentMode,omitempty" yaml:"deploymentMode"`
	JoinMode                 string   `json:"joinMode" yaml:"joinMode"`
	Locale                   string   `json:"locale,omitempty" yaml:"locale"`
	DeviceNameTemplate       string   `json:"deviceNameTemplate,omitempty" yaml:"deviceNameTemplate"`
	PreprovisioningAllowed   bool     `json:"preprovisioningAllowed,omitempty" yaml:"preprovisioningAllowed"`
	ConvertTargetedDevices   bool     `json:"convertTargetedDevices,omitempty" yaml:"convertTargetedDevices"`
	UserType                 string   `json:"userType,omitempty" yaml:"userType"`
	HideLicenseTerms         *bool    `json:"hideLicenseTerms,omitempty" yaml:"hideLicenseTerms"`
	HidePrivacySettings      *bool    `json:"hidePrivacySettings,omitempty" yaml:"hidePrivacySettings"`
	HideChangeAccountOptions *bool    `json:"hideChangeAccountOptions,omitempty" yaml:"hideChangeAccountOptions"`
	SkipKeyboardSelection    *bool    `json:"skipKeyboardSelection,omitempty" yaml:"skipKeyboardSelection"`
	IncludedGroups           []string `json:"includedGroups,omitempty" yaml:"includedGroups"`
	ExcludedGroups           []string `json:"excludedGroups,omitempty" yaml:"excludedGroups"`
}
