// Package config reads the order API settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/jcmexdev/fitforge-orders/internal/pkg/telemetry"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"

	SenderResend = "resend"
	SenderAMQP   = "amqp"
	SenderLog    = "log"
)

type Config struct {
	HTTPPort string
	GRPCPort string

	StoreDriver     string
	MongoURI        string
	MongoDatabase   string
	PostgresDSN     string
	SQLitePath      string
	StatusLogPath   string // empty disables the status log
	RedisAddr       string // empty disables idempotency
	IdempotencyTTL  time.Duration
	AdminUser       string
	AdminPassword   string
	StrictTotals    bool
	StrictLifecycle bool
	Location        *time.Location

	Notify NotifyConfig

	OTelEnabled     bool
	OTelServiceName string
	OTelEndpoint    string
	LogLevel        slog.Level
}

type NotifyConfig struct {
	Primary       string
	Fallback      string
	ResendAPIKey  string
	ResendURL     string
	From          string
	FallbackFrom  string
	BusinessEmail string
	OnCreate      bool
	RabbitMQURL   string
}

// Load reads the process environment.
func Load() (Config, error) {
	return load(os.LookupEnv)
}

func load(lookupEnv func(string) (string, bool)) (Config, error) {
	getenv := func(key string) string {
		v, _ := lookupEnv(key)
		return v
	}
	env := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	var errs []error
	boolean := func(key string, fallback bool) bool {
		raw := getenv(key)
		if raw == "" {
			return fallback
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not a boolean", key, raw))
			return fallback
		}
		return v
	}

	cfg := Config{
		HTTPPort:        env("HTTP_PORT", "8080"),
		GRPCPort:        env("GRPC_PORT", "9090"),
		StoreDriver:     env("STORE_DRIVER", StoreSQLite),
		MongoURI:        getenv("MONGODB_URI"),
		MongoDatabase:   env("MONGODB_DATABASE", "fitforge"),
		PostgresDSN:     getenv("POSTGRES_DSN"),
		SQLitePath:      env("SQLITE_PATH", "./data/orders.db"),
		StatusLogPath:   "./data/status_log.db",
		RedisAddr:       getenv("REDIS_ADDR"),
		AdminUser:       getenv("ADMIN_USER"),
		AdminPassword:   getenv("ADMIN_PASSWORD"),
		StrictTotals:    boolean("ORDERS_STRICT_TOTALS", true),
		StrictLifecycle: boolean("ORDERS_STRICT_TRANSITIONS", false),
		Notify: NotifyConfig{
			Primary:       env("NOTIFY_PRIMARY", SenderLog),
			Fallback:      env("NOTIFY_FALLBACK", SenderLog),
			ResendAPIKey:  getenv("NOTIFY_RESEND_API_KEY"),
			ResendURL:     getenv("NOTIFY_RESEND_URL"),
			From:          env("NOTIFY_FROM", "FitForge <orders@fitforgepk.com>"),
			FallbackFrom:  getenv("NOTIFY_FALLBACK_FROM"),
			BusinessEmail: env("NOTIFY_BUSINESS_EMAIL", "fitforge.pk@gmail.com"),
			OnCreate:      boolean("NOTIFY_ON_CREATE", false),
			RabbitMQURL:   getenv("RABBITMQ_URL"),
		},
		OTelEnabled:     boolean("OTEL_ENABLED", false),
		OTelServiceName: env("OTEL_SERVICE_NAME", "order-api"),
		OTelEndpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	// An explicitly empty STATUS_LOG_PATH disables the log.
	if v, ok := lookupEnv("STATUS_LOG_PATH"); ok {
		cfg.StatusLogPath = v
	}

	ttl, err := time.ParseDuration(env("IDEMPOTENCY_TTL", "24h"))
	if err != nil || ttl <= 0 {
		errs = append(errs, fmt.Errorf("IDEMPOTENCY_TTL: %q is not a positive duration", getenv("IDEMPOTENCY_TTL")))
	}
	cfg.IdempotencyTTL = ttl

	loc, err := time.LoadLocation(env("ANALYTICS_TIMEZONE", "UTC"))
	if err != nil {
		errs = append(errs, fmt.Errorf("ANALYTICS_TIMEZONE: %w", err))
	}
	cfg.Location = loc

	level, err := telemetry.ParseLevel(getenv("LOG_LEVEL"))
	if err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	cfg.LogLevel = level

	errs = append(errs, cfg.validate()...)
	if len(errs) > 0 {
		return Config{}, fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func (c Config) validate() []error {
	var errs []error

	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGODB_URI is required when STORE_DRIVER=mongo"))
		}
	case StorePostgres:
		if c.PostgresDSN == "" {
			errs = append(errs, errors.New("POSTGRES_DSN is required when STORE_DRIVER=postgres"))
		}
	case StoreSQLite, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER: unknown driver %q", c.StoreDriver))
	}

	for key, sender := range map[string]string{"NOTIFY_PRIMARY": c.Notify.Primary, "NOTIFY_FALLBACK": c.Notify.Fallback} {
		switch sender {
		case SenderResend:
			if c.Notify.ResendAPIKey == "" {
				errs = append(errs, fmt.Errorf("NOTIFY_RESEND_API_KEY is required when %s=resend", key))
			}
		case SenderAMQP:
			if c.Notify.RabbitMQURL == "" {
				errs = append(errs, fmt.Errorf("RABBITMQ_URL is required when %s=amqp", key))
			}
		case SenderLog:
		default:
			errs = append(errs, fmt.Errorf("%s: unknown sender %q", key, sender))
		}
	}

	if (c.AdminUser == "") != (c.AdminPassword == "") {
		errs = append(errs, errors.New("ADMIN_USER and ADMIN_PASSWORD must be set together"))
	}
	return errs
}
