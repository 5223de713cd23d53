package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"

	"uvc-cli/internal/client"
)

const defaultPort = 7080

// InitConfig reads in the config file and UVC_* environment variables.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".uvc-cli")
	}

	viper.SetEnvPrefix("uvc")
	viper.AutomaticEnv()
	_ = viper.BindEnv("host")
	_ = viper.BindEnv("port")
	_ = viper.BindEnv("apikey")

	// Missing config file is fine; env vars or flags may carry
	// everything.
	_ = viper.ReadInConfig()
}

// Resolve builds the NVR connection config. A combined UVC variable
// like "http://192.168.1.1:7080/?apiKey=XXXX" wins over the discrete
// host/port/apikey settings.
func Resolve() (client.Config, error) {
	if combined := os.Getenv("UVC"); combined != "" {
		return parseCombined(combined)
	}

	cfg := client.Config{
		Host:   viper.GetString("host"),
		Port:   viper.GetInt("port"),
		APIKey: viper.GetString("apikey"),
		TLS:    viper.GetBool("tls"),
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Host == "" || cfg.APIKey == "" {
		return client.Config{}, fmt.Errorf("host and apikey are required (flags, config file, or UVC_HOST/UVC_APIKEY)")
	}
	return cfg, nil
}

func parseCombined(combined string) (client.Config, error) {
	u, err := url.Parse(combined)
	if err != nil {
		return client.Config{}, fmt.Errorf("unparseable UVC url: %w", err)
	}
	port := defaultPort
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return client.Config{}, fmt.Errorf("unparseable UVC port: %w", err)
		}
	}
	apiKey := u.Query().Get("apiKey")
	if u.Hostname() == "" || apiKey == "" {
		return client.Config{}, fmt.Errorf("UVC url must carry a host and an apiKey parameter")
	}
	return client.Config{
		Host:   u.Hostname(),
		Port:   port,
		APIKey: apiKey,
		TLS:    u.Scheme == "https",
	}, nil
}

// CameraPassword returns the stored admin password for a camera, or
// empty when none was saved.
func CameraPassword(identifier string) string {
	return viper.GetString("camera_passwords." + identifier)
}

// SaveCameraPassword persists a camera admin password in the config
// file. Stored obscured by nothing: the config file is plain YAML.
func SaveCameraPassword(identifier, password string) error {
	viper.Set("camera_passwords."+identifier, password)

	if err := viper.WriteConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return viper.SafeWriteConfig()
		}
		home, _ := os.UserHomeDir()
		path := filepath.Join(home, ".uvc-cli.yaml")
		return viper.WriteConfigAs(path)
	}
	return nil
}
