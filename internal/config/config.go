package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Addr   string // API bind address
	LogDir string // logs directory

	DatabaseURL  string // postgres DSN; empty means in-memory store
	DatabaseName string // optional override of the DSN's database

	TelegramToken  string // bot transport credential, required for cmd/bot
	SlackWebhook   string // optional ops notification channel for cmd/api
	OpsIntervalMin int    // ops schedule interval in minutes (0 disables)

	AllowedOrigins []string // CORS allow-list; empty means allow all

	DefaultSweepInterval time.Duration // background sweep period, fixed at start
	ProbeTimeout         time.Duration // per-probe HTTP timeout

	RateRPM   int // per-IP requests per minute (0 disables limiting)
	RateBurst int
}

// FromEnv reads the configuration from environment variables, with defaults
// that keep cmd/api runnable with zero infrastructure.
func FromEnv() Config {
	v := viper.New()
	v.SetDefault("addr", "127.0.0.1:8080")
	v.SetDefault("log_dir", "logs")
	v.SetDefault("database_url", "")
	v.SetDefault("database_name", "")
	v.SetDefault("telegram_token", "")
	v.SetDefault("slack_webhook", "")
	v.SetDefault("ops_interval_min", 0)
	v.SetDefault("allowed_origins", "")
	v.SetDefault("default_sweep_interval_s", 600)
	v.SetDefault("probe_timeout_s", 10)
	v.SetDefault("rate_rpm", 0)
	v.SetDefault("rate_burst", 30)
	v.AutomaticEnv()

	return Config{
		Addr:                 v.GetString("addr"),
		LogDir:               v.GetString("log_dir"),
		DatabaseURL:          v.GetString("database_url"),
		DatabaseName:         v.GetString("database_name"),
		TelegramToken:        v.GetString("telegram_token"),
		SlackWebhook:         v.GetString("slack_webhook"),
		OpsIntervalMin:       v.GetInt("ops_interval_min"),
		AllowedOrigins:       splitList(v.GetString("allowed_origins")),
		DefaultSweepInterval: time.Duration(v.GetInt("default_sweep_interval_s")) * time.Second,
		ProbeTimeout:         time.Duration(v.GetInt("probe_timeout_s")) * time.Second,
		RateRPM:              v.GetInt("rate_rpm"),
		RateBurst:            v.GetInt("rate_burst"),
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
