package profile

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/autoprov/autoprov/internal/assign"
	"github.com/autoprov/autoprov/pkg/printer"
)

var (
	assignInclude    []string
	assignExclude    []string
	assignAllDevices bool
)

var AssignCmd = &cobra.Command{
	Use:   "assign <profile-name>",
	Short: "Assign an existing profile to device groups",
	Long: `Resolves the profile and the named groups, then submits one assignment per
group. Includes are submitted before excludes. --all-devices targets every
device and cannot be combined with group flags.

Examples:
  apctl profile assign "EU Sales" --include "Sales Devices" --exclude "Kiosks"
  apctl profile assign "Global Baseline" --all-devices`,
	Args: cobra.ExactArgs(1),
	RunE: runAssign,
}

func init() {
	AssignCmd.Flags().StringArrayVar(&assignInclude, "include", nil, "Group display name to include (repeatable)")
	AssignCmd.Flags().StringArrayVar(&assignExclude, "exclude", nil, "Group display name to exclude (repeatable)")
	AssignCmd.Flags().BoolVar(&assignAllDevices, "all-devices", false, "Target all devices instead of groups")
}

func runAssign(cmd *cobra.Command, args []string) error {
	if apiClient == nil {
		return fmt.Errorf("API client not initialized")
	}

	include := assignInclude
	if assignAllDevices {
		include = append([]string{assign.AllDevicesName}, include...)
	}
	if len(include) == 0 && len(assignExclude) == 0 {
		return fmt.Errorf("nothing to assign: pass --include, --exclude or --all-devices")
	}
	return submitAssignments(cmd, args[0], include, assignExclude)
}

// submitAssignments resolves every target eagerly, then submits them in
// order.
func submitAssignments(cmd *cobra.Command, profileName string, include, exclude []string) error {
	ctx := cmd.Context()
	profileID, targets, err := assign.Resolve(ctx, profileName, include, exclude, apiClient, apiClient)
	if err != nil {
		return err
	}

	for _, target := range targets {
		assignmentID, err := apiClient.CreateAssignment(ctx, profileID, target)
		if err != nil {
			return fmt.Errorf("failed to submit assignment: %w", err)
		}
		logger.Debug("assignment created",
			zap.String("profile_id", profileID),
			zap.String("assignment_id", assignmentID),
			zap.String("kind", string(target.Kind)))
	}
	printer.PrintSuccess(fmt.Sprintf("Submitted %d assignments for %q", len(targets), profileName))
	return nil
}
