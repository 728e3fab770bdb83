package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // business time zone must resolve in slim containers

	"github.com/joho/godotenv"
	"github.com/xronetech/leads/logger"
)

// BookingVariant selects which booking flow a deployment serves. The two
// flows have different rules and payloads and are never mounted together.
type BookingVariant string

const (
	VariantSingle BookingVariant = "single"
	VariantWizard BookingVariant = "wizard"
)

// WebhookMode selects how a submission endpoint is called.
type WebhookMode string

const (
	// ModeCredentialed sends apikey/Bearer headers and requires a 2xx reply.
	ModeCredentialed WebhookMode = "credentialed"
	// ModeFireAndForget never looks at the reply.
	ModeFireAndForget WebhookMode = "fire_and_forget"
)

const (
	DefaultPort       = "8081"
	DefaultResetDelay = 3 * time.Second
	DefaultSessionTTL = 30 * time.Minute
	DefaultTimezone   = "Asia/Kolkata"
	DefaultSubmitRate = "5-1m"
	DefaultCreateRate = "30-1m"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type WebhookConfig struct {
	URL    string
	APIKey string
	Mode   WebhookMode
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// Enabled reports whether booking alerts can be mailed.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.Port > 0 && s.From != "" && s.To != ""
}

type Config struct {
	Port    string
	GinMode string
	Debug   bool

	Variant         BookingVariant
	BookingWebhook  WebhookConfig
	ContactWebhook  WebhookConfig
	LocationWebhook WebhookConfig

	RedisURL   string
	SessionTTL time.Duration
	ResetDelay time.Duration
	Location   *time.Location

	AllowedOrigins []string
	SubmitRate     string
	CreateRate     string

	SMTP         SMTPConfig
	BadWordsFile string
	LogFile      string
}

// LoadEnv loads a .env file into the process environment when one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.WarnLogger.Warnf("Could not load .env file: %v", err)
	}
}

// Load reads the service configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:    getEnv("PORT", DefaultPort),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),
		Debug:   getBool("DEBUG"),

		Variant: BookingVariant(strings.ToLower(getEnv("BOOKING_VARIANT", string(VariantSingle)))),
		BookingWebhook: WebhookConfig{
			URL:    strings.TrimSpace(os.Getenv("BOOKING_WEBHOOK_URL")),
			APIKey: strings.TrimSpace(os.Getenv("BOOKING_WEBHOOK_KEY")),
		},
		ContactWebhook: WebhookConfig{
			URL:  strings.TrimSpace(os.Getenv("CONTACT_WEBHOOK_URL")),
			Mode: ModeFireAndForget,
		},
		LocationWebhook: WebhookConfig{
			URL:    strings.TrimSpace(os.Getenv("LOCATION_WEBHOOK_URL")),
			APIKey: strings.TrimSpace(os.Getenv("BOOKING_WEBHOOK_KEY")),
		},

		RedisURL: strings.TrimSpace(os.Getenv("REDIS_URL")),

		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		SubmitRate:     getEnv("RATE_LIMIT_SUBMIT", DefaultSubmitRate),
		CreateRate:     getEnv("RATE_LIMIT_CREATE", DefaultCreateRate),

		SMTP: SMTPConfig{
			Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     strings.TrimSpace(os.Getenv("FROM_EMAIL")),
			To:       strings.TrimSpace(os.Getenv("OPS_EMAIL")),
		},
		BadWordsFile: strings.TrimSpace(os.Getenv("BADWORDS_FILE")),
		LogFile:      strings.TrimSpace(os.Getenv("LOG_FILE")),
	}

	switch cfg.Variant {
	case VariantSingle, VariantWizard:
	default:
		return Config{}, fmt.Errorf("%w: BOOKING_VARIANT must be %q or %q, got %q",
			ErrInvalidConfig, VariantSingle, VariantWizard, cfg.Variant)
	}

	mode, err := webhookMode(os.Getenv("BOOKING_WEBHOOK_MODE"), cfg.Variant)
	if err != nil {
		return Config{}, err
	}
	cfg.BookingWebhook.Mode = mode

	if cfg.SessionTTL, err = getDuration("SESSION_TTL", DefaultSessionTTL); err != nil {
		return Config{}, err
	}
	if cfg.ResetDelay, err = getDuration("RESET_DELAY", DefaultResetDelay); err != nil {
		return Config{}, err
	}

	tz := getEnv("BUSINESS_TIMEZONE", DefaultTimezone)
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return Config{}, fmt.Errorf("%w: BUSINESS_TIMEZONE %q: %v", ErrInvalidConfig, tz, err)
	}

	if raw := strings.TrimSpace(os.Getenv("SMTP_PORT")); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%w: SMTP_PORT %q is not a number", ErrInvalidConfig, raw)
		}
		cfg.SMTP.Port = port
	}

	return cfg, nil
}

// webhookMode defaults the booking endpoint shape by variant: the single-step
// form talks to a credentialed function, the wizard posts fire-and-forget.
func webhookMode(raw string, variant BookingVariant) (WebhookMode, error) {
	switch WebhookMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "":
		if variant == VariantWizard {
			return ModeFireAndForget, nil
		}
		return ModeCredentialed, nil
	case ModeCredentialed:
		return ModeCredentialed, nil
	case ModeFireAndForget:
		return ModeFireAndForget, nil
	default:
		return "", fmt.Errorf("%w: unknown BOOKING_WEBHOOK_MODE %q", ErrInvalidConfig, raw)
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s %q is not a positive duration", ErrInvalidConfig, key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
