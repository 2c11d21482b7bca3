// Package config loads the agent configuration from environment variables.
// A .env file, when present, is loaded by main before Load runs.
package config

import (
	"time"

	"github.com/spf13/viper"
)

const (
	MethodEmail   = "email"
	MethodWebhook = "webhook"

	defaultMethod        = MethodEmail
	defaultSMTPServer    = "smtp.gmail.com"
	defaultSMTPPort      = 587
	defaultCheckInterval = 300
	defaultLogLevel      = "INFO"
	defaultLogFile       = "follower_agent.log"
	defaultFollowersFile = "followers.json"
)

type GitHub struct {
	Token    string
	Username string
}

type Email struct {
	SMTPServer string
	SMTPPort   int
	From       string
	Password   string
	To         string
}

type Notify struct {
	Method     string
	Email      Email
	WebhookURL string
}

type Config struct {
	GitHub        GitHub
	Notify        Notify
	CheckInterval time.Duration
	LogLevel      string
	LogFile       string
	FollowersFile string
}

// Load reads configuration from the environment and validates it.
// Invalid configuration is fatal at process start in every run mode.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("NOTIFICATION_METHOD", defaultMethod)
	v.SetDefault("EMAIL_SMTP_SERVER", defaultSMTPServer)
	v.SetDefault("EMAIL_SMTP_PORT", defaultSMTPPort)
	v.SetDefault("CHECK_INTERVAL", defaultCheckInterval)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("LOG_FILE", defaultLogFile)
	v.SetDefault("FOLLOWERS_FILE", defaultFollowersFile)

	cfg := &Config{
		GitHub: GitHub{
			Token:    v.GetString("GITHUB_TOKEN"),
			Username: v.GetString("GITHUB_USERNAME"),
		},
		Notify: Notify{
			Method: v.GetString("NOTIFICATION_METHOD"),
			Email: Email{
				SMTPServer: v.GetString("EMAIL_SMTP_SERVER"),
				SMTPPort:   v.GetInt("EMAIL_SMTP_PORT"),
				From:       v.GetString("EMAIL_FROM"),
				Password:   v.GetString("EMAIL_PASSWORD"),
				To:         v.GetString("EMAIL_TO"),
			},
			WebhookURL: v.GetString("WEBHOOK_URL"),
		},
		CheckInterval: time.Duration(v.GetInt("CHECK_INTERVAL")) * time.Second,
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogFile:       v.GetString("LOG_FILE"),
		FollowersFile: v.GetString("FOLLOWERS_FILE"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
