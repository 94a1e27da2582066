package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	DefaultBaseURL     = "http://localhost:8080"
	DefaultProfileName = "default"
	DefaultStoreDriver = "file"
	DefaultLogLevel    = "info"
	DefaultTimeout     = 120
)

type Profile struct {
	BaseURL        string `json:"base_url" mapstructure:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" mapstructure:"timeout_seconds"`
}

type Config struct {
	Profiles       map[string]Profile `json:"profiles" mapstructure:"profiles"`
	ActiveProfile  string             `json:"active_profile" mapstructure:"active_profile"`
	StoreDriver    string             `json:"store_driver" mapstructure:"store_driver"`
	LogLevel       string             `json:"log_level" mapstructure:"log_level"`
	currentProfile *Profile
	baseURLEnv     string
	dir            string
}

// LoadConfig reads config.json (creating a default one on first run) and
// applies MISSIONCHAT_* environment overrides.
func LoadConfig() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	if err := ensureConfigDir(configPath); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := saveConfig(defaultConfig(), configPath); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	config, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.dir = filepath.Dir(configPath)

	if err := config.setCurrentProfile(); err != nil {
		return nil, fmt.Errorf("failed to set current profile: %w", err)
	}

	return config, nil
}

func (c *Config) IsValid() bool {
	if c.currentProfile == nil {
		return false
	}
	u, err := url.Parse(c.GetBaseURL())
	return err == nil && u.Scheme != "" && u.Host != ""
}

// GetBaseURL returns the active profile's base URL; MISSIONCHAT_BASE_URL wins when set.
func (c *Config) GetBaseURL() string {
	if c.baseURLEnv != "" {
		return c.baseURLEnv
	}
	if c.currentProfile == nil || c.currentProfile.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.currentProfile.BaseURL
}

func (c *Config) GetTimeout() time.Duration {
	if c.currentProfile == nil || c.currentProfile.TimeoutSeconds <= 0 {
		return DefaultTimeout * time.Second
	}
	return time.Duration(c.currentProfile.TimeoutSeconds) * time.Second
}

// Dir is the directory holding config.json, the identity store and logs.
func (c *Config) Dir() string {
	return c.dir
}

// IdentityPath is the backing file of the identity store for the configured driver.
func (c *Config) IdentityPath() string {
	if c.StoreDriver == "sqlite" {
		return filepath.Join(c.dir, "identity.db")
	}
	return filepath.Join(c.dir, "identity.json")
}

func (c *Config) LogPath() string {
	return filepath.Join(c.dir, "logs", "missionchat.log")
}

func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	return saveConfig(c, configPath)
}

func getConfigPath() (string, error) {
	var configDir string

	// Use MISSIONCHAT_HOME if set, otherwise use user's home directory
	if home := os.Getenv("MISSIONCHAT_HOME"); home != "" {
		configDir = home
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = homeDir
	}

	return filepath.Join(configDir, ".missionchat", "config.json"), nil
}

func ensureConfigDir(configPath string) error {
	return os.MkdirAll(filepath.Dir(configPath), 0755)
}

func loadConfigFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")
	v.SetEnvPrefix("MISSIONCHAT")
	v.AutomaticEnv()

	v.SetDefault("active_profile", DefaultProfileName)
	v.SetDefault("store_driver", DefaultStoreDriver)
	v.SetDefault("log_level", DefaultLogLevel)
	_ = v.BindEnv("base_url")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	config.baseURLEnv = v.GetString("base_url")

	return &config, nil
}

func defaultConfig() *Config {
	return &Config{
		Profiles: map[string]Profile{
			DefaultProfileName: {
				BaseURL:        DefaultBaseURL,
				TimeoutSeconds: DefaultTimeout,
			},
		},
		ActiveProfile: DefaultProfileName,
		StoreDriver:   DefaultStoreDriver,
		LogLevel:      DefaultLogLevel,
	}
}

func saveConfig(config *Config, configPath string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

func (c *Config) setCurrentProfile() error {
	if len(c.Profiles) == 0 {
		return fmt.Errorf("no profiles defined")
	}

	profile, exists := c.Profiles[c.ActiveProfile]
	if !exists {
		// If active profile doesn't exist, try to use the first available profile
		for name, p := range c.Profiles {
			c.ActiveProfile = name
			profile = p
			exists = true
			break
		}
	}

	if !exists {
		return fmt.Errorf("no valid profiles found")
	}

	c.currentProfile = &profile
	return nil
}
