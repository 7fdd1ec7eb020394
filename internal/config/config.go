package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"CryptoTracker/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	CoinGecko struct {
		BaseURL           string `yaml:"base_url"`
		APIKey            string `yaml:"api_key"`
		VsCurrency        string `yaml:"vs_currency"`
		RequestsPerMinute int    `yaml:"requests_per_minute"`
	} `yaml:"coingecko"`
	ChangeNOW struct {
		BaseURL           string `yaml:"base_url"`
		APIKey            string `yaml:"api_key"`
		RequestsPerMinute int    `yaml:"requests_per_minute"`
	} `yaml:"changenow"`
	Schedule struct {
		RefreshCron  string `yaml:"refresh_cron"`
		AnalysisCron string `yaml:"analysis_cron"`
		OverviewCron string `yaml:"overview_cron"`
	} `yaml:"schedule"`
	Cache struct {
		StateFile string `yaml:"state_file"`
	} `yaml:"cache"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Coins    []model.Coin `yaml:"coins"`
	Proxy    string       `yaml:"proxy"`
	LogLevel string       `yaml:"log_level"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
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
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.Telegram.ChatID = id
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.CoinGecko.APIKey = v
	}
	if v := os.Getenv("CHANGENOW_API_KEY"); v != "" {
		cfg.ChangeNOW.APIKey = v
	}
	if v := firstEnv("HTTPS_PROXY", "HTTP_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("CRON_ANALYSIS"); v != "" {
		cfg.Schedule.AnalysisCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		cfg.Cache.StateFile = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// Defaults
	if cfg.CoinGecko.VsCurrency == "" {
		cfg.CoinGecko.VsCurrency = "usd"
	}
	if cfg.CoinGecko.RequestsPerMinute == 0 {
		cfg.CoinGecko.RequestsPerMinute = 10
	}
	if cfg.ChangeNOW.RequestsPerMinute == 0 {
		cfg.ChangeNOW.RequestsPerMinute = 30
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 * * * * *"
	}
	if cfg.Schedule.AnalysisCron == "" {
		cfg.Schedule.AnalysisCron = "0 5 * * * *"
	}
	if cfg.Schedule.OverviewCron == "" {
		cfg.Schedule.OverviewCron = "0 0 9 * * *"
	}
	if cfg.Cache.StateFile == "" {
		cfg.Cache.StateFile = "data/market_state.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/crypto_tracker.db"
	}
	if len(cfg.Coins) == 0 {
		cfg.Coins = append([]model.Coin(nil), DefaultCoins...)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// TelegramEnabled reports whether a bot token is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != ""
}

var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Validate checks that all required fields are set and well formed.
func (c *Config) Validate() error {
	if c.TelegramEnabled() && c.Telegram.ChatID == 0 {
		return fmt.Errorf("telegram.chat_id is required when telegram.bot_token is set")
	}
	if c.CoinGecko.RequestsPerMinute < 0 || c.ChangeNOW.RequestsPerMinute < 0 {
		return fmt.Errorf("requests_per_minute must be positive")
	}
	for name, spec := range map[string]string{
		"schedule.refresh_cron":  c.Schedule.RefreshCron,
		"schedule.analysis_cron": c.Schedule.AnalysisCron,
		"schedule.overview_cron": c.Schedule.OverviewCron,
	} {
		if _, err := cronParser.Parse(spec); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	seen := make(map[string]bool, len(c.Coins))
	for i, coin := range c.Coins {
		if coin.ID == "" || coin.Symbol == "" {
			return fmt.Errorf("coins[%d]: id and symbol are required", i)
		}
		key := strings.ToLower(coin.ID)
		if seen[key] {
			return fmt.Errorf("coins[%d]: duplicate id %q", i, coin.ID)
		}
		seen[key] = true
	}
	return nil
}
