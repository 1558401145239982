package csvsource

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFullRow(t *testing.T) {
	input := strings.Join([]string{
		"DisplayName,Description,ProfileType,DeploymentMode,JoinToEntraIDAs,LanguageLocale,ApplyDeviceNameTemplate,AllowPreprovisionedDeployment,UserAccountType,HideLicenseTerms,IncludedGroups,ExcludedGroups",
		`EU Sales,Sales laptops,WindowsPC,UserDriven,AzureAD,en-US,NA-%SERIAL%,true,Standard,false,Sales Devices;Field Staff,Kiosks`,
	}, "\n")

	rows, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 2, row.Line)

	def := row.Definition
	assert.Equal(t, "EU Sales", def.DisplayName)
	assert.Equal(t, "Sales laptops", def.Description)
	assert.Equal(t, "WindowsPC", def.DeviceClass)
	assert.Equal(t, "UserDriven", def.DeploymentMode)
	assert.Equal(t, "AzureAD", def.JoinMode)
	assert.Equal(t, "en-US", def.Locale)
	assert.Equal(t, "NA-%SERIAL%", def.DeviceNameTemplate)
	assert.True(t, def.PreprovisioningAllowed)
	assert.Equal(t, "Standard", def.UserType)
	require.NotNil(t, def.HideLicenseTerms)
	assert.False(t, *def.HideLicenseTerms)
	assert.Equal(t, []string{"Sales Devices", "Field Staff"}, def.IncludedGroups)
	assert.Equal(t, []string{"Kiosks"}, def.ExcludedGroups)
}

func TestReadHeaderVariants(t *testing.T) {
	// Snake case, spaces and a BOM all address the same columns.
	input := "\ufeffdisplay_name,Join To Entra ID As\nLab,Hybrid\n"

	rows, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Lab", rows[0].Definition.DisplayName)
	assert.Equal(t, "Hybrid", rows[0].Definition.JoinMode)
}

func TestReadUnsetOptionalBooleansStayNil(t *testing.T) {
	input := "DisplayName,HideLicenseTerms\nLab,\n"

	rows, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Nil(t, rows[0].Definition.HideLicenseTerms)
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty input", "", "configuration is empty"},
		{"missing display name column", "Description\nsomething\n", "DisplayName column"},
		{"blank display name", "DisplayName,Description\n,oops\n", "line 2"},
		{"bad boolean", "DisplayName,AllowPreprovisionedDeployment\nLab,maybe\n", "line 2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestSplitGroups(t *testing.T) {
	assert.Nil(t, splitGroups(""))
	assert.Nil(t, splitGroups(" ; ; "))
	assert.Equal(t, []string{"A", "B"}, splitGroups("A; B"))
	assert.Equal(t, []string{"A", "A"}, splitGroups("A;A"), "duplicates are kept")
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile("does-not-exist.csv")
	require.Error(t, err)
}
