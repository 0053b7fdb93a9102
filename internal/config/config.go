// Package config loads the service settings from the environment, reading a
// local .env file first when one exists.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	LogLevel       string

	AdminEmail    string
	AdminPassword string

	SeedDemoLeads   bool
	RateLimit       int
	RateLimitWindow time.Duration
	StatsInterval   time.Duration

	RabbitMQURL string

	MailHost     string
	MailPort     int
	MailUser     string
	MailPassword string
	MailFrom     string
	NotifyTo     string
	DashboardURL string

	CRMToken   string
	CRMBaseURL string
}

// LoadDefaults fills in development settings. The admin credential is the
// dashboard's demo login and must be overridden outside local runs.
func (c *Config) LoadDefaults() {
	c.Port = "8080"
	c.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	c.LogLevel = "info"
	c.AdminEmail = "admin@test.com"
	c.AdminPassword = "admin"
	c.SeedDemoLeads = true
	c.RateLimit = 10
	c.RateLimitWindow = time.Minute
	c.StatsInterval = time.Minute
	c.MailPort = 587
	c.MailFrom = "no-reply@leads.local"
}

// Load applies defaults, then .env, then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.AllowedOrigins = getEnvList("ALLOWED_ORIGINS", c.AllowedOrigins)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.AdminEmail = getEnv("ADMIN_EMAIL", c.AdminEmail)
	c.AdminPassword = getEnv("ADMIN_PASSWORD", c.AdminPassword)

	c.SeedDemoLeads = getEnvBool("SEED_DEMO_LEADS", c.SeedDemoLeads)
	c.RateLimit = getEnvInt("RATE_LIMIT", c.RateLimit)
	c.RateLimitWindow = getEnvDuration("RATE_LIMIT_WINDOW", c.RateLimitWindow)
	c.StatsInterval = getEnvDuration("STATS_INTERVAL", c.StatsInterval)

	c.RabbitMQURL = getEnv("RABBITMQ_URL", c.RabbitMQURL)

	c.MailHost = getEnv("MAIL_HOST", c.MailHost)
	c.MailPort = getEnvInt("MAIL_PORT", c.MailPort)
	c.MailUser = getEnv("MAIL_USER", c.MailUser)
	c.MailPassword = getEnv("MAIL_PASS", c.MailPassword)
	c.MailFrom = getEnv("MAIL_FROM", c.MailFrom)
	c.NotifyTo = getEnv("LEADS_NOTIFY_TO", c.NotifyTo)
	c.DashboardURL = getEnv("DASHBOARD_URL", c.DashboardURL)

	c.CRMToken = getEnv("CRM_API_TOKEN", c.CRMToken)
	c.CRMBaseURL = getEnv("CRM_BASE_URL", c.CRMBaseURL)
}

func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c *Config) MailEnabled() bool {
	return c.MailHost != "" && c.NotifyTo != ""
}

func (c *Config) CRMEnabled() bool {
	return c.CRMToken != "" && c.CRMBaseURL != ""
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

// getEnvDuration accepts Go durations ("30s") or plain seconds ("30").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
