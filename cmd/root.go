package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"uvc-cli/internal/client"
	"uvc-cli/internal/config"
	"uvc-cli/internal/logger"
)

var (
	cfgFile    string
	jsonOutput bool
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "uvc-cli",
	Short: "A CLI for Ubiquiti UniFi Video NVRs",
	Long: `Manage cameras, settings, and alerts on a UniFi Video NVR
over its JSON HTTP API.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(func() {
		logger.Init(verbose)
		config.InitConfig(cfgFile)
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.uvc-cli.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log requests and responses")
}

// setupClient resolves the connection settings and bootstraps a
// session. Any failure ends the process with exit code 1.
func setupClient() *client.Client {
	cfg, err := config.Resolve()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	api, err := client.New(cfg)
	if err != nil {
		fmt.Printf("Error connecting to NVR: %v\n", err)
		os.Exit(1)
	}
	return api
}

// resolveCamera turns --name into an identifier when --camera was not
// given directly.
func resolveCamera(api *client.Client, identifier, name string) string {
	if identifier != "" {
		return identifier
	}
	if name == "" {
		fmt.Println("Error: a camera name or identifier is required.")
		os.Exit(1)
	}
	id, err := api.NameToIdentifier(name)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			fmt.Printf("Error: %q is not a valid camera name.\n", name)
		} else {
			fmt.Printf("Error resolving camera name: %v\n", err)
		}
		os.Exit(1)
	}
	return id
}
