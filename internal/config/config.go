package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/settlement"
)

// ServerConfig captures all tunable parameters for the dashboard API
// process. Values are primarily loaded from environment variables with sane
// defaults so the binary can run locally without excessive setup.
type ServerConfig struct {
	HTTPAddr        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	PGDSN string

	KafkaBrokers []string
	KafkaTopic   string

	StripeAPIKey string

	// Company is the dispatch company's identity printed on settlement
	// documents.
	Company settlement.Company

	LogLevel      string
	RunMigrations bool
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{
		HTTPAddr:        ":8080",
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 15 * time.Second,
		KafkaTopic:      "load-events",
		Company: settlement.Company{
			Name: "Drive Now Logistics",
		},
		LogLevel: "info",
	}
}

func LoadServerConfig() (ServerConfig, error) {
	cfg := defaultServerConfig()
	var errs []error

	setStringFromEnv(&cfg.HTTPAddr, "HTTP_ADDR")
	setDurationFromEnv(&cfg.ReadTimeout, "HTTP_READ_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.WriteTimeout, "HTTP_WRITE_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.IdleTimeout, "HTTP_IDLE_TIMEOUT", &errs)
	setDurationFromEnv(&cfg.ShutdownTimeout, "HTTP_SHUTDOWN_TIMEOUT", &errs)

	cfg.PGDSN = os.Getenv("PG_DSN")

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}
	setStringFromEnv(&cfg.KafkaTopic, "KAFKA_TOPIC")

	cfg.StripeAPIKey = os.Getenv("STRIPE_API_KEY")

	setStringFromEnv(&cfg.Company.Name, "COMPANY_NAME")
	setStringFromEnv(&cfg.Company.Address, "COMPANY_ADDRESS")
	setStringFromEnv(&cfg.Company.Phone, "COMPANY_PHONE")
	setStringFromEnv(&cfg.Company.Email, "COMPANY_EMAIL")
	setStringFromEnv(&cfg.Company.BankName, "COMPANY_BANK_NAME")
	setStringFromEnv(&cfg.Company.AccountHolder, "COMPANY_ACCOUNT_HOLDER")
	setStringFromEnv(&cfg.Company.AccountNumber, "COMPANY_ACCOUNT_NUMBER")

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	cfg.RunMigrations = strings.EqualFold(os.Getenv("MIGRATE"), "true")

	if cfg.RunMigrations && cfg.PGDSN == "" {
		errs = append(errs, fmt.Errorf("MIGRATE=true requires PG_DSN"))
	}

	return cfg, errors.Join(errs...)
}

func setDurationFromEnv(target *time.Duration, key string, errs *[]error) {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
			return
		}
		*target = d
	}
}

func setStringFromEnv(target *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*target = v
	}
}

func splitAndTrim(v string) []string {
	raw := strings.Split(v, ",")
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
