package cli

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/autoprov/autoprov/internal/graph"
	"github.com/autoprov/autoprov/internal/version"
	"github.com/autoprov/autoprov/pkg/cli/config"
)

var statusOutputFormat string

var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connectivity and session information",
	Long:  `Checks that the management API is reachable with the configured credentials and shows the session identity.`,
	// Override PersistentPreRunE: status reports configuration problems
	// instead of failing on them.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: runStatus,
}

func init() {
	StatusCmd.Flags().StringVarP(&statusOutputFormat, "output", "o", "table", "Output format (table, json)")
}

type statusInfo struct {
	API       string `json:"api"`
	Endpoint  string `json:"endpoint"`
	Auth      string `json:"auth"`
	TenantID  string `json:"tenant_id,omitempty"`
	AppID     string `json:"app_id,omitempty"`
	ExpiresAt string `json:"token_expires_at,omitempty"`
	Error     string `json:"error,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	info := statusInfo{API: "unreachable"}

	cfg, err := config.Load()
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		info.Auth = "unconfigured"
		info.Error = err.Error()
		return printStatus(info)
	}

	info.Endpoint = cfg.GraphBaseURL
	var tokens graph.TokenSource
	if cfg.UsesClientCredentials() {
		info.Auth = "client-credentials"
		src := graph.NewClientCredentialsSource(cfg.TenantID, cfg.ClientID, cfg.ClientSecret)
		src.SetAuthorityBaseURL(cfg.AuthorityBaseURL)
		tokens = src
	} else {
		info.Auth = "static-token"
		tokens = graph.NewStaticTokenSource(cfg.AccessToken)
	}

	client := graph.NewClient(cfg.GraphBaseURL, tokens)
	client.SetHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout})

	if err := client.Ping(cmd.Context()); err != nil {
		info.Error = err.Error()
		return printStatus(info)
	}
	info.API = "ok"

	if token, err := tokens.Token(cmd.Context()); err == nil {
		if session, err := graph.DecodeSessionInfo(token); err == nil {
			info.TenantID = session.TenantID
			info.AppID = session.AppID
			if !session.ExpiresAt.IsZero() {
				info.ExpiresAt = session.ExpiresAt.UTC().Format(time.RFC3339)
			}
		}
	}
	return printStatus(info)
}

func printStatus(info statusInfo) error {
	if statusOutputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	fmt.Printf("apctl version:   %s\n", version.Version)
	fmt.Printf("API:             %s\n", info.API)
	if info.Endpoint != "" {
		fmt.Printf("Endpoint:        %s\n", info.Endpoint)
	}
	fmt.Printf("Auth:            %s\n", info.Auth)
	if info.TenantID != "" {
		fmt.Printf("Tenant:          %s\n", info.TenantID)
	}
	if info.AppID != "" {
		fmt.Printf("App:             %s\n", info.AppID)
	}
	if info.ExpiresAt != "" {
		fmt.Printf("Token expires:   %s\n", info.ExpiresAt)
	}
	if info.Error != "" {
		fmt.Printf("Error:           %s\n", info.Error)
	}
	return nil
}
