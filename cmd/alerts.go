package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"uvc-cli/pkg/models"
)

var (
	alertTimestamp int64
	alertType      string
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "List and delete NVR alerts",
}

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Dump the alert table",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		alerts, err := api.ListAlerts()
		if err != nil {
			fmt.Printf("Error fetching alerts: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(alerts); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tTIME\tTYPE\tSTATE")
		fmt.Fprintln(w, "--\t----\t----\t-----")
		for _, raw := range alerts {
			alert := models.AlertFromMap(raw)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				alert.ID,
				time.UnixMilli(alert.Timestamp).Format(time.RFC3339),
				alert.Type,
				alert.State,
			)
		}
		w.Flush()
	},
}

var alertsDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete alerts matching a timestamp or type",
	Example: `  uvc-cli alerts delete --timestamp 1468910482295
  uvc-cli alerts delete --type motion`,
	Run: func(cmd *cobra.Command, args []string) {
		if alertTimestamp == 0 && alertType == "" {
			fmt.Println("Error: --timestamp or --type is required.")
			os.Exit(1)
		}

		api := setupClient()
		alerts, err := api.ListAlerts()
		if err != nil {
			fmt.Printf("Error fetching alerts: %v\n", err)
			os.Exit(1)
		}

		failed := false
		for _, raw := range alerts {
			alert := models.AlertFromMap(raw)
			if alertTimestamp != 0 && alert.Timestamp != alertTimestamp {
				continue
			}
			if alertType != "" && alert.Type != alertType {
				continue
			}
			deleted, err := api.DeleteAlert(raw)
			if err != nil {
				fmt.Printf("Error deleting alert %s: %v\n", alert.ID, err)
				os.Exit(1)
			}
			if deleted {
				fmt.Printf("Alert %s deleted\n", alert.ID)
			} else {
				fmt.Printf("Failed to delete alert %s\n", alert.ID)
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
	},
}

var alertsDeleteAllCmd = &cobra.Command{
	Use:   "delete-all",
	Short: "Delete every alert in the table",
	Long: `Deletes each listed alert in turn. Deletion is not transactional:
if the batch fails part-way, re-run to catch the stragglers.`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		remaining, err := api.DeleteAllAlerts()
		if err != nil {
			fmt.Printf("Error deleting alerts: %v\n", err)
			os.Exit(1)
		}
		if remaining == 0 {
			fmt.Println("All alerts deleted")
			return
		}
		fmt.Printf("%d alerts remaining following deletion\n", remaining)
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(alertsCmd)
	alertsCmd.AddCommand(alertsListCmd)
	alertsCmd.AddCommand(alertsDeleteCmd)
	alertsCmd.AddCommand(alertsDeleteAllCmd)

	alertsDeleteCmd.Flags().Int64Var(&alertTimestamp, "timestamp", 0, "Millisecond timestamp identifying an alert")
	alertsDeleteCmd.Flags().StringVar(&alertType, "type", "", "Alert type to delete")
}
