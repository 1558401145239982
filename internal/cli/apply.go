package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autoprov/autoprov/internal/locale"
	"github.com/autoprov/autoprov/internal/provisioner"
	"github.com/autoprov/autoprov/pkg/printer"
)

var (
	applyFile            string
	applyDryRun          bool
	applyContinueOnError bool
	applyWatch           bool
)

var ApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Provision deployment profiles from a CSV configuration",
	Long: `Reads a CSV configuration file and provisions one deployment profile per
row, then assigns it to the row's included and excluded groups.

Columns: DisplayName, DeploymentMode, JoinToEntraIDAs, LanguageLocale,
ProfileType, ApplyDeviceNameTemplate, AllowPreprovisionedDeployment,
IncludedGroups, ExcludedGroups (groups separated by semicolons), plus
optional Description, ConvertAllTargetedDevices and out-of-box flag
overrides.

Examples:
  apctl apply -f profiles.csv
  apctl apply -f profiles.csv --dry-run
  apctl apply -f profiles.csv --continue-on-error
  apctl apply -f profiles.csv --watch`,
	RunE: runApply,
}

func init() {
	ApplyCmd.Flags().StringVarP(&applyFile, "file", "f", "", "CSV configuration file (required)")
	ApplyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Validate rows and show requests without submitting")
	ApplyCmd.Flags().BoolVar(&applyContinueOnError, "continue-on-error", false, "Record row failures and keep going instead of aborting")
	ApplyCmd.Flags().BoolVar(&applyWatch, "watch", false, "Re-apply whenever the configuration file changes")
	_ = ApplyCmd.MarkFlagRequired("file")
}

func runApply(cmd *cobra.Command, args []string) error {
	if apiClient == nil {
		return fmt.Errorf("API client not initialized")
	}

	service := provisioner.NewService(apiClient, locale.NewCatalog())
	service.SetLogger(logger.Named("provisioner"))
	service.SetContinueOnError(applyContinueOnError)
	service.SetDryRun(applyDryRun)

	if applyWatch {
		printer.PrintInfo(fmt.Sprintf("Watching %s; press Ctrl+C to stop", applyFile))
		return service.Watch(cmd.Context(), applyFile, reportSummary)
	}

	summary, err := service.ApplyFile(cmd.Context(), applyFile)
	reportSummary(summary, err)
	return err
}

func reportSummary(summary *provisioner.Summary, err error) {
	if summary == nil {
		if err != nil {
			printer.PrintError(err.Error())
		}
		return
	}
	for _, rowErr := range summary.Failed {
		printer.PrintError(rowErr.Error())
	}
	if err != nil {
		printer.PrintWarning(fmt.Sprintf("Provisioned %d profiles, %d rows failed", len(summary.Created), len(summary.Failed)))
		return
	}
	if applyDryRun {
		printer.PrintSuccess(fmt.Sprintf("Dry run: %d rows validated", len(summary.Created)))
		return
	}
	printer.PrintSuccess(fmt.Sprintf("Provisioned %d profiles with %d assignments", len(summary.Created), summary.Assignments))
}
