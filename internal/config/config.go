package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration, shared by the server and the
// tracker binaries.
type Config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
		JWTSecret  string `yaml:"jwt_secret"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" or "postgres"
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		ResetCron   string `yaml:"reset_cron"`
		SummaryCron string `yaml:"summary_cron"`
	} `yaml:"schedule"`
	Tracker struct {
		ServerURL  string `yaml:"server_url"`
		Token      string `yaml:"token"`
		DailyLimit int    `yaml:"daily_limit"`
	} `yaml:"tracker"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.ListenAddr = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Server.JWTSecret = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("TRACKER_SERVER_URL"); v != "" {
		cfg.Tracker.ServerURL = v
	}
	if v := os.Getenv("TRACKER_TOKEN"); v != "" {
		cfg.Tracker.Token = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "data/caffeine_sentinel.db"
	}
	if cfg.Schedule.ResetCron == "" {
		cfg.Schedule.ResetCron = "0 * * * * *"
	}
	if cfg.Schedule.SummaryCron == "" {
		cfg.Schedule.SummaryCron = "0 0 21 * * *"
	}
	if cfg.Tracker.ServerURL == "" {
		cfg.Tracker.ServerURL = "http://localhost:8080"
	}
	if cfg.Tracker.DailyLimit == 0 {
		cfg.Tracker.DailyLimit = 400
	}

	return cfg, nil
}

// ValidateServer checks the fields the server binary needs.
func (c *Config) ValidateServer() error {
	if c.Server.JWTSecret == "" {
		return fmt.Errorf("server.jwt_secret is required")
	}
	if c.Database.Driver != "sqlite" && c.Database.Driver != "postgres" {
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	return nil
}

// ValidateTracker checks the fields the tracker binary needs.
func (c *Config) ValidateTracker() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.Tracker.DailyLimit <= 0 {
		return fmt.Errorf("tracker.daily_limit must be positive")
	}
	return nil
}
