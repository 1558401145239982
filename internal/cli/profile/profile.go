// Package profile implements the profile subcommands: create, list, assign.
package profile

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/autoprov/autoprov/internal/graph"
)

var (
	apiClient *graph.Client
	logger    = zap.NewNop()
)

// SetAPIClient wires the management client used by the profile commands.
func SetAPIClient(client *graph.Client) {
	apiClient = client
}

// SetLogger wires the logger used by the profile commands.
func SetLogger(log *zap.Logger) {
	if log != nil {
		logger = log
	}
}

var ProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage individual deployment profiles",
}

func init() {
	ProfileCmd.AddCommand(CreateCmd)
	ProfileCmd.AddCommand(ListCmd)
	ProfileCmd.AddCommand(AssignCmd)
}
