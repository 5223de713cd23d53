package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var zonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Manage motion zones",
}

var zonesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a camera's motion zones",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()
		ident := resolveCamera(api, cameraID, cameraName)

		zones, err := api.ListZones(ident)
		if err != nil {
			fmt.Printf("Error listing zones: %v\n", err)
			os.Exit(1)
		}
		for _, zone := range zones {
			name, _ := zone["name"].(string)
			fmt.Println(name)
		}
	},
}

var zonesPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Prune all but the first motion zone",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()
		ident := resolveCamera(api, cameraID, cameraName)

		if err := api.PruneZones(ident); err != nil {
			fmt.Printf("Error pruning zones: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Zones pruned.")
	},
}

func init() {
	rootCmd.AddCommand(zonesCmd)
	zonesCmd.AddCommand(zonesListCmd)
	zonesCmd.AddCommand(zonesPruneCmd)

	zonesCmd.PersistentFlags().StringVar(&cameraID, "camera", "", "Camera identifier")
	zonesCmd.PersistentFlags().StringVar(&cameraName, "name", "", "Camera name")
}
