package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autoprov/autoprov/internal/exporter"
	"github.com/autoprov/autoprov/pkg/printer"
)

var (
	exportOutput   string
	exportPageSize int
)

var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export remote deployment profiles to a JSON file",
	Long: `Collects every deployment profile from the management service and writes
them to a local JSON file.

Examples:
  apctl export -o profiles.json`,
	RunE: runExport,
}

func init() {
	ExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "profiles.json", "Output file path")
	ExportCmd.Flags().IntVar(&exportPageSize, "page-size", 100, "Number of profiles requested per page")
}

func runExport(cmd *cobra.Command, args []string) error {
	if apiClient == nil {
		return fmt.Errorf("API client not initialized")
	}

	service := exporter.NewService(apiClient)
	service.SetPageSize(exportPageSize)

	count, err := service.ExportToPath(cmd.Context(), exportOutput)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	printer.PrintSuccess(fmt.Sprintf("Exported %d profiles to %s", count, exportOutput))
	return nil
}
