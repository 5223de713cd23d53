package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"uvc-cli/internal/config"
)

// Variables to hold flag values
var (
	cameraID   string
	cameraName string
	outputFile string
)

// Parent Command
var camerasCmd = &cobra.Command{
	Use:   "cameras",
	Short: "Manage cameras",
	Long:  `List cameras, dump raw camera records, or take snapshots.`,
}

// List Command
var camerasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cameras",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		cameras, err := api.Index()
		if err != nil {
			fmt.Printf("Error fetching cameras: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(cameras); err != nil {
				fmt.Printf("Error encoding JSON: %v\n", err)
				os.Exit(1)
			}
			return
		}

		key := api.CameraIdentifierKey()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tIP\tSTATUS\tRECORDING")
		fmt.Fprintln(w, "--\t----\t--\t------\t---------")

		for _, cam := range cameras {
			ident := cam.ID
			if key == "uuid" {
				ident = cam.UUID
			}
			ip, _ := api.GetField(ident, "ipaddress")
			recmode, _ := api.GetField(ident, "recordmode")
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cam.ID,
				cam.Name,
				ip,
				cam.Status(),
				recmode,
			)
		}
		w.Flush()
	},
}

// Dump Command
var camerasDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump the raw camera record as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()
		ident := resolveCamera(api, cameraID, cameraName)

		out, err := api.Dump(ident)
		if err != nil {
			fmt.Printf("Error dumping camera: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(out)
	},
}

// Snapshot Command
var camerasSnapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Take a JPEG snapshot from a camera",
	Long: `Fetches a snapshot through the NVR's camera proxy. When a camera
password was stored with 'uvc-cli camera-password set', the camera's
own endpoint is tried first and the NVR proxy is the fallback.`,
	Example: `  uvc-cli cameras snapshot --name "Front Door" --output front.jpg
  uvc-cli cameras snapshot --camera <id> > snapshot.jpg`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()
		ident := resolveCamera(api, cameraID, cameraName)

		var img []byte
		var err error
		if password := config.CameraPassword(ident); password != "" {
			camera, camErr := api.GetCamera(ident)
			if camErr != nil {
				fmt.Printf("Error fetching camera: %v\n", camErr)
				os.Exit(1)
			}
			img, err = api.SnapshotWithFallback(ident, camera, password)
		} else {
			img, err = api.GetSnapshot(ident)
		}
		if err != nil {
			fmt.Printf("Error getting snapshot: %v\n", err)
			os.Exit(1)
		}

		if outputFile == "" || outputFile == "-" {
			if _, err := os.Stdout.Write(img); err != nil {
				fmt.Printf("Error writing snapshot: %v\n", err)
				os.Exit(1)
			}
			return
		}
		if err := os.WriteFile(outputFile, img, 0644); err != nil {
			fmt.Printf("Error writing file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Snapshot saved to %s\n", outputFile)
	},
}

func init() {
	rootCmd.AddCommand(camerasCmd)

	camerasCmd.AddCommand(camerasListCmd)
	camerasCmd.AddCommand(camerasDumpCmd)
	camerasCmd.AddCommand(camerasSnapshotCmd)

	camerasCmd.PersistentFlags().StringVar(&cameraID, "camera", "", "Camera identifier (uuid/id depending on NVR version)")
	camerasCmd.PersistentFlags().StringVar(&cameraName, "name", "", "Camera name, resolved through the NVR index")

	camerasSnapshotCmd.Flags().StringVar(&outputFile, "output", "", "Output filename (default: stdout)")
}
