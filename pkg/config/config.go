package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var configDir string
var configFilePath string
var credentialsPath string

// getConfigDir returns platform-specific config directory
func getConfigDir() (string, error) {
	if runtime.GOOS == "windows" {
		// Windows: %LOCALAPPDATA%\investorion\cli
		appData := os.Getenv("LOCALAPPDATA")
		if appData == "" {
			appData = os.Getenv("APPDATA")
		}
		if appData == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			appData = home
		}
		return filepath.Join(appData, "investorion", "cli"), nil
	}

	// Unix-like (macOS, Linux): ~/.config/investorion/cli
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "investorion", "cli"), nil
}

// getSystemConfigPaths returns platform-specific system config paths
func getSystemConfigPaths() []string {
	if runtime.GOOS == "windows" {
		return []string{filepath.Join(os.Getenv("ProgramFiles"), "Investorion", "cli", "config.toml")}
	}

	return []string{
		"/etc/investorion/cli/config.toml",
		"/usr/local/etc/investorion/cli/config.toml",
	}
}

// Init initializes the configuration
func Init(configPath string) error {
	// A .env in the working directory seeds INVESTORION_* process
	// environment variables for development setups.
	_ = godotenv.Load()

	// Determine config directory
	var err error
	if configPath != "" {
		configDir = filepath.Dir(configPath)
		configFilePath = configPath
	} else {
		configDir, err = getConfigDir()
		if err != nil {
			return err
		}
		configFilePath = filepath.Join(configDir, "config.toml")
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	credentialsPath = filepath.Join(configDir, "credentials")

	// Setup Viper
	viper.SetConfigType("toml")

	setDefaults()

	viper.SetEnvPrefix("investorion")
	viper.AutomaticEnv()

	// Load system config first (if exists) - serves as foundation
	for _, sysConfigPath := range getSystemConfigPaths() {
		if _, err := os.Stat(sysConfigPath); err == nil {
			viper.SetConfigFile(sysConfigPath)
			_ = viper.ReadInConfig()
			break // Use first system config found
		}
	}

	// Load user config second (overrides system config)
	viper.SetConfigFile(configFilePath)
	_ = viper.ReadInConfig()

	return nil
}

func setDefaults() {
	viper.SetDefault("api.base_url", "http://localhost:8000")
	viper.SetDefault("api.timeout", 30)
	viper.SetDefault("api.mock", false)
	viper.SetDefault("output.format", "text")

	// External quote providers
	viper.SetDefault("quotes.fx_base_url", "https://economia.awesomeapi.com.br")
	viper.SetDefault("quotes.stocks_base_url", "https://brapi.dev")
	viper.SetDefault("quotes.macro_base_url", "https://api.bcb.gov.br")
	viper.SetDefault("quotes.poll_interval", 10)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", filepath.Join(configDir, "investorion-cli.log"))
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetString returns a string configuration value
func GetString(key string) string {
	value := viper.GetString(key)
	if key == "log.file" {
		return expandPath(value)
	}
	return value
}

// GetInt returns an int configuration value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool configuration value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// SetString sets a string configuration value
func SetString(key string, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// Set sets a configuration value in memory without persisting it
func Set(key string, value interface{}) {
	viper.Set(key, value)
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	return configDir
}

// GetCredentialsPath returns the path to the credentials file
func GetCredentialsPath() string {
	return credentialsPath
}
