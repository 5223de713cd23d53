package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"uvc-cli/internal/camclient"
	"uvc-cli/internal/client"
	"uvc-cli/internal/config"
)

var recordChannel string

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Get and set camera settings",
	Long: `Read or write individual camera settings. Every field is a
read-modify-write of the full camera record; the NVR has no partial
update. Run 'uvc-cli settings fields' for the supported field names.`,
}

var settingsFieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the supported field names",
	Run: func(cmd *cobra.Command, args []string) {
		names := client.FieldNames()
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <field>",
	Short: "Read one camera setting",
	Args:  cobra.ExactArgs(1),
	Example: `  uvc-cli settings get irsensitivity --name "Front Door"
  uvc-cli settings get recordmode --camera <id>`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()
		ident := resolveCamera(api, cameraID, cameraName)

		value, err := api.GetField(ident, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(value)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Write one camera setting",
	Args:  cobra.ExactArgs(2),
	Example: `  uvc-cli settings set irsensitivity high --name "Front Door"
  uvc-cli settings set recordmode motion --channel medium --camera <id>`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()
		ident := resolveCamera(api, cameraID, cameraName)

		field, value := args[0], args[1]
		var applied bool
		var err error
		if strings.ToLower(field) == "recordmode" && recordChannel != "" {
			applied, err = api.SetRecordMode(ident, value, recordChannel)
		} else {
			applied, err = api.SetField(ident, field, value)
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if !applied {
			fmt.Println("NVR did not apply the requested value.")
			os.Exit(1)
		}
	},
}

var pictureCmd = &cobra.Command{
	Use:   "picture",
	Short: "Bulk get/set of image-processing settings",
}

var pictureGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the isp settings as a k=v string",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()
		ident := resolveCamera(api, cameraID, cameraName)

		settings, err := api.GetPictureSettings(ident)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, settings[k]))
		}
		fmt.Println(strings.Join(pairs, ","))
	},
}

var pictureSetCmd = &cobra.Command{
	Use:   "set <k=v,k=v,...>",
	Short: "Apply a k=v string like the one 'picture get' prints",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings := map[string]string{}
		for _, pair := range strings.Split(args[0], ",") {
			k, v, ok := strings.Cut(pair, "=")
			if !ok || k == "" {
				fmt.Println("Error: invalid picture setting string format.")
				os.Exit(1)
			}
			settings[k] = v
		}

		api := setupClient()
		ident := resolveCamera(api, cameraID, cameraName)

		updated, err := api.SetPictureSettings(ident, settings)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		for k, v := range settings {
			if fmt.Sprintf("%v", updated[k]) != v {
				fmt.Printf("Rejected: %s\n", k)
			}
		}
	},
}

var ledCmd = &cobra.Command{
	Use:   "led <on|off>",
	Short: "Toggle the front status LED (Micro cameras only)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mode := strings.ToLower(args[0])
		if mode != "on" && mode != "off" {
			fmt.Printf("Error: invalid led mode %q (on or off).\n", args[0])
			os.Exit(1)
		}

		api := setupClient()
		ident := resolveCamera(api, cameraID, cameraName)

		camera, err := api.GetCamera(ident)
		if err != nil {
			fmt.Printf("Error fetching camera: %v\n", err)
			os.Exit(1)
		}
		model, _ := camera["model"].(string)
		if !strings.Contains(model, "Micro") {
			fmt.Println("Only micro cameras support LED control.")
			os.Exit(2)
		}

		host, _ := camera["host"].(string)
		username, _ := camera["username"].(string)
		password := config.CameraPassword(ident)
		if password == "" {
			password = "ubnt"
		}

		var direct *camclient.Client
		if api.ServerVersion().AtLeast(3, 2, 0) {
			direct = camclient.NewV320(host, username, password)
		} else {
			direct = camclient.New(host, username, password)
		}
		if err := direct.SetLED(mode == "on"); err != nil {
			if errors.Is(err, camclient.ErrAuth) {
				fmt.Println("Error: camera rejected the stored password; set one with 'uvc-cli camera-password set'.")
			} else {
				fmt.Printf("Error setting led: %v\n", err)
			}
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(ledCmd)

	settingsCmd.AddCommand(settingsFieldsCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(pictureCmd)
	pictureCmd.AddCommand(pictureGetCmd)
	pictureCmd.AddCommand(pictureSetCmd)

	settingsCmd.PersistentFlags().StringVar(&cameraID, "camera", "", "Camera identifier")
	settingsCmd.PersistentFlags().StringVar(&cameraName, "name", "", "Camera name")
	settingsSetCmd.Flags().StringVar(&recordChannel, "channel", "", "Recording channel (high, medium, low), recordmode only")

	ledCmd.Flags().StringVar(&cameraID, "camera", "", "Camera identifier")
	ledCmd.Flags().StringVar(&cameraName, "name", "", "Camera name")
}
