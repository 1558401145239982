package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listOutputFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List deployment profiles",
	RunE:  runList,
}

func init() {
	ListCmd.Flags().StringVarP(&listOutputFormat, "output", "o", "table", "Output format (table, json)")
}

func runList(cmd *cobra.Command, args []string) error {
	if apiClient == nil {
		return fmt.Errorf("API client not initialized")
	}

	profiles, err := apiClient.ListProfiles(cmd.Context(), 0)
	if err != nil {
		return err
	}

	if listOutputFormat == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(profiles)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tLOCALE\tNAME TEMPLATE")
	for _, p := range profiles {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.DisplayName, p.Locale, p.DeviceNameTemplate)
	}
	return w.Flush()
}
