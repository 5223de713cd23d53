package cmd

import (
	"fmt"
	"net/http"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"uvc-cli/internal/config"
)

var (
	loginUser string
	loginPass string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Credential checks against the NVR",
}

// login test reports the raw status of the NVR login endpoint without
// touching the apiKey session; useful for verifying a username and
// password independently of the key.
var loginTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Test whether a username/password can log into the NVR",
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()

		status, reason, err := api.TestLogin(loginUser, loginPass)
		if err != nil {
			fmt.Printf("Error contacting NVR: %v\n", err)
			os.Exit(1)
		}
		if status == http.StatusOK {
			fmt.Println("login successful")
			return
		}
		fmt.Printf("login failed status=%d error=%s\n", status, reason)
		os.Exit(1)
	},
}

var cameraPasswordCmd = &cobra.Command{
	Use:   "camera-password",
	Short: "Manage stored camera passwords",
}

var cameraPasswordSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the admin password for a camera",
	Long: `Stores the camera administrator password in the config file for
later camera-direct operations (snapshots, LED control). The password
is written to disk in plain YAML, NOT ENCRYPTED. Cancel now if that is
not okay.`,
	Run: func(cmd *cobra.Command, args []string) {
		api := setupClient()
		ident := resolveCamera(api, cameraID, cameraName)

		fmt.Print("Password: ")
		first, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			fmt.Printf("Error reading password: %v\n", err)
			os.Exit(1)
		}
		fmt.Print("Confirm: ")
		second, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			fmt.Printf("Error reading password: %v\n", err)
			os.Exit(1)
		}
		if string(first) != string(second) {
			fmt.Println("Passwords do not match")
			os.Exit(1)
		}

		if err := config.SaveCameraPassword(ident, string(first)); err != nil {
			fmt.Printf("Error saving password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Password set")
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(cameraPasswordCmd)

	loginCmd.AddCommand(loginTestCmd)
	cameraPasswordCmd.AddCommand(cameraPasswordSetCmd)

	loginTestCmd.Flags().StringVarP(&loginUser, "username", "u", "", "Username to attempt the login with")
	loginTestCmd.Flags().StringVarP(&loginPass, "password", "p", "", "Password to attempt the login with")
	_ = loginTestCmd.MarkFlagRequired("username")
	_ = loginTestCmd.MarkFlagRequired("password")

	cameraPasswordSetCmd.Flags().StringVar(&cameraID, "camera", "", "Camera identifier")
	cameraPasswordSetCmd.Flags().StringVar(&cameraName, "name", "", "Camera name")
}
