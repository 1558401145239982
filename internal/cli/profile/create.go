package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v3"

	"github.com/autoprov/autoprov/internal/locale"
	"github.com/autoprov/autoprov/internal/profile"
	"github.com/autoprov/autoprov/pkg/models"
	"github.com/autoprov/autoprov/pkg/printer"
)

var (
	createFile   string
	createDryRun bool
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a deployment profile from a YAML definition",
	Long: `Validates a YAML profile definition and creates the remote resource.
If the definition lists includedGroups or excludedGroups, the new profile is
assigned to them as well.

Examples:
  apctl profile create -f profile.yaml
  apctl profile create -f profile.yaml --dry-run`,
	RunE: runCreate,
}

func init() {
	CreateCmd.Flags().StringVarP(&createFile, "file", "f", "", "YAML profile definition (required)")
	CreateCmd.Flags().BoolVar(&createDryRun, "dry-run", false, "Show what would be created without actually doing it")
	_ = CreateCmd.MarkFlagRequired("file")
}

func runCreate(cmd *cobra.Command, args []string) error {
	if apiClient == nil {
		return fmt.Errorf("API client not initialized")
	}

	def, err := readDefinition(createFile)
	if err != nil {
		return err
	}

	cfg, err := profile.FromDefinition(*def)
	if err != nil {
		return err
	}
	builder := profile.NewBuilder(locale.NewCatalog())
	req, err := builder.Build(cfg)
	if err != nil {
		return err
	}

	if createDryRun {
		data, _ := json.MarshalIndent(req, "", "  ")
		printer.PrintInfo("[DRY RUN] Would create:\n" + string(data))
		return nil
	}

	profileID, err := apiClient.CreateProfile(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	printer.PrintSuccess(fmt.Sprintf("Profile %q created (%s)", req.DisplayName, profileID))

	if len(def.IncludedGroups) == 0 && len(def.ExcludedGroups) == 0 {
		return nil
	}
	return submitAssignments(cmd, req.DisplayName, def.IncludedGroups, def.ExcludedGroups)
}

func readDefinition(path string) (*models.ProfileDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition file: %w", err)
	}
	var def models.ProfileDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse YAML definition: %w", err)
	}
	if def.DisplayName == "" {
		return nil, fmt.Errorf("displayName is required")
	}
	return &def, nil
}
