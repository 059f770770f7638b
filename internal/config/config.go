package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Database  DatabaseConfig  `mapstructure:"database"`
	Anthropic AnthropicConfig `mapstructure:"anthropic"`
	Scanner   ScannerConfig   `mapstructure:"scanner"`
	Inbox     InboxConfig     `mapstructure:"inbox"`
	Sync      SyncConfig      `mapstructure:"sync"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	LinkedIn  LinkedInConfig  `mapstructure:"linkedin"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// DatabaseConfig holds document store settings
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"` // sqlite connection string
}

// AnthropicConfig holds Claude API settings
type AnthropicConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
}

// ScannerConfig holds feed discovery settings
type ScannerConfig struct {
	Bound int `mapstructure:"bound"` // max stubs per scan
}

// InboxConfig holds article collection settings
type InboxConfig struct {
	Cap int `mapstructure:"cap"` // max inbox size, oldest evicted
}

// SyncConfig holds persistence bridge settings
type SyncConfig struct {
	Debounce time.Duration `mapstructure:"debounce"` // quiet period before a write
}

// SchedulerConfig holds daemon scheduling settings
type SchedulerConfig struct {
	ScanCron  string `mapstructure:"scan_cron"`
	UserEmail string `mapstructure:"user_email"` // account the daemon scans for
}

// LinkedInConfig holds optional native-posting OAuth settings
type LinkedInConfig struct {
	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret"`
	RedirectURI  string   `mapstructure:"redirect_uri"`
	Scopes       []string `mapstructure:"scopes"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
	Output string `mapstructure:"output"` // stdout or file path
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// Load .env file if present (ignore errors if not found)
	_ = godotenv.Load()
	_ = godotenv.Load(".env.local")

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".pundit"))
		}
	}

	v.SetEnvPrefix("PUNDIT")
	v.AutomaticEnv()

	// Explicit bindings for nested keys (Viper doesn't auto-bind underscored nested keys)
	v.BindEnv("anthropic.api_key", "PUNDIT_ANTHROPIC_API_KEY")
	v.BindEnv("anthropic.model", "PUNDIT_ANTHROPIC_MODEL")
	v.BindEnv("database.dsn", "PUNDIT_DATABASE_DSN")
	v.BindEnv("scheduler.scan_cron", "PUNDIT_SCHEDULER_SCAN_CRON")
	v.BindEnv("scheduler.user_email", "PUNDIT_SCHEDULER_USER_EMAIL")
	v.BindEnv("linkedin.client_id", "PUNDIT_LINKEDIN_CLIENT_ID")
	v.BindEnv("linkedin.client_secret", "PUNDIT_LINKEDIN_CLIENT_SECRET")
	v.BindEnv("logging.level", "PUNDIT_LOGGING_LEVEL")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.dsn", "./data/pundit.db")

	v.SetDefault("anthropic.model", "claude-sonnet-4-20250514")
	v.SetDefault("anthropic.max_tokens", 4096)

	v.SetDefault("scanner.bound", 30)
	v.SetDefault("inbox.cap", 100)

	// Matches the 3s autosave debounce of the original assistant
	v.SetDefault("sync.debounce", 3*time.Second)

	v.SetDefault("scheduler.scan_cron", "0 */2 * * *") // Every 2 hours

	v.SetDefault("linkedin.redirect_uri", "http://localhost:8080/callback")
	v.SetDefault("linkedin.scopes", []string{"w_member_social", "openid", "profile"})

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stdout")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Anthropic.APIKey == "" {
		return fmt.Errorf("anthropic.api_key is required")
	}
	if c.Inbox.Cap <= 0 {
		return fmt.Errorf("inbox.cap must be positive")
	}
	return nil
}
