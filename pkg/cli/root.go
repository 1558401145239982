// Package cli assembles the apctl command tree and wires the management
// client into the command packages.
package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	internalcli "github.com/autoprov/autoprov/internal/cli"
	profilecli "github.com/autoprov/autoprov/internal/cli/profile"
	"github.com/autoprov/autoprov/internal/graph"
	"github.com/autoprov/autoprov/internal/logging"
	"github.com/autoprov/autoprov/pkg/cli/config"
)

var verboseFlag bool

// Root builds the apctl root command.
func Root() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "apctl",
		Short: "Provision Autopilot deployment profiles",
		Long: `apctl provisions Windows Autopilot deployment profiles against a
device-management service: it validates profile configurations, creates the
remote resources and assigns them to device groups.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupClient,
	}

	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(internalcli.ApplyCmd)
	rootCmd.AddCommand(profilecli.ProfileCmd)
	rootCmd.AddCommand(internalcli.ExportCmd)
	rootCmd.AddCommand(internalcli.StatusCmd)
	rootCmd.AddCommand(internalcli.VersionCmd)
	return rootCmd
}

// setupClient loads configuration and hands a ready client to the command
// packages. Commands that work without one (version, status) override this
// hook.
func setupClient(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	var tokens graph.TokenSource
	if cfg.UsesClientCredentials() {
		src := graph.NewClientCredentialsSource(cfg.TenantID, cfg.ClientID, cfg.ClientSecret)
		src.SetAuthorityBaseURL(cfg.AuthorityBaseURL)
		src.SetHTTPClient(httpClient)
		tokens = src
	} else {
		tokens = graph.NewStaticTokenSource(cfg.AccessToken)
	}

	log := logging.NewCLILogger("apctl", cfg.Verbose || verboseFlag)

	client := graph.NewClient(cfg.GraphBaseURL, tokens)
	client.SetHTTPClient(httpClient)
	client.SetLogger(log.Named("graph"))

	internalcli.SetAPIClient(client)
	internalcli.SetLogger(log)
	profilecli.SetAPIClient(client)
	profilecli.SetLogger(log)
	return nil
}
