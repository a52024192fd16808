package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config holds the API server settings.
type Config struct {
	Port     string
	Database DatabaseConfig
	Auth     AuthConfig
	HTTP     HTTPConfig
	Log      LogConfig
	Goals    GoalConfig
	Notify   NotifyConfig
}

type DatabaseConfig struct {
	Driver string // postgres, mysql or sqlite
	URL    string
}

type AuthConfig struct {
	JWTSecret string
	// TokenTTL of zero issues tokens without an exp claim.
	TokenTTL time.Duration
}

type HTTPConfig struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

type LogConfig struct {
	Level  string
	Format string
}

type GoalConfig struct {
	SweepSchedule string
}

type NotifyConfig struct {
	DiscordWebhook string
	SlackWebhook   string
}

// ClientConfig holds the terminal client settings.
type ClientConfig struct {
	APIURL      string
	SessionPath string
	LogLevel    string
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:3001",
	"http://localhost:5173",
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	v.SetDefault("port", "8085")
	v.SetDefault("db_driver", "postgres")
	v.SetDefault("database_url", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", time.Duration(0))
	v.SetDefault("allowed_origins", "")
	v.SetDefault("client_url", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("rate_limit_rps", 5.0)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("goal_sweep_schedule", "@every 1h")
	v.SetDefault("discord_webhook_url", "")
	v.SetDefault("slack_webhook_url", "")
	v.SetDefault("gradewise_api_url", "http://localhost:8085/api")
	v.SetDefault("gradewise_session", "")
	v.SetDefault("gradectl_log_level", "warn")

	v.AutomaticEnv()
	return v
}

// loadDotEnv loads .env when it exists and ignores it otherwise.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			return errors.Wrapf(err, "config.godotenv(%s)", path)
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "config.os.Stat(%s)", path)
	}
	return nil
}

// Load reads the server configuration from the environment and an optional .env file.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := newViper()

	cfg := &Config{
		Port: v.GetString("port"),
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("db_driver")),
			URL:    v.GetString("database_url"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("jwt_secret"),
			TokenTTL:  v.GetDuration("token_ttl"),
		},
		HTTP: HTTPConfig{
			AllowedOrigins: allowedOrigins(v.GetString("client_url"), v.GetString("allowed_origins")),
			RateLimitRPS:   v.GetFloat64("rate_limit_rps"),
			RateLimitBurst: v.GetInt("rate_limit_burst"),
		},
		Log: LogConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
		Goals: GoalConfig{
			SweepSchedule: v.GetString("goal_sweep_schedule"),
		},
		Notify: NotifyConfig{
			DiscordWebhook: v.GetString("discord_webhook_url"),
			SlackWebhook:   v.GetString("slack_webhook_url"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}

	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL environment variable is not set")
	}

	switch cfg.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return nil, errors.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}

	return cfg, nil
}

// LoadClient reads the terminal client configuration.
func LoadClient() (*ClientConfig, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}

	v := newViper()

	cfg := &ClientConfig{
		APIURL:      strings.TrimSuffix(v.GetString("gradewise_api_url"), "/"),
		SessionPath: v.GetString("gradewise_session"),
		LogLevel:    v.GetString("gradectl_log_level"),
	}

	if cfg.SessionPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "resolve home directory")
		}
		cfg.SessionPath = filepath.Join(home, ".gradewise", "session.json")
	}

	return cfg, nil
}

func allowedOrigins(clientURL, extra string) []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(extra, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}

// String returns the configuration with secrets masked.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %s, DB: %s (***), Auth: *** (masked), TokenTTL: %s, Origins: %v}",
		c.Port, c.Database.Driver, c.Auth.TokenTTL, c.HTTP.AllowedOrigins)
}
