package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string    `yaml:"env" env:"ENV" env-default:"local"`
	Postgres  Postgres  `yaml:"postgres"`
	Server    Server    `yaml:"server"`
	Matching  Matching  `yaml:"matching"`
	Scheduler Scheduler `yaml:"scheduler"`
	Events    Events    `yaml:"events"`
}

type Postgres struct {
	Username        string        `yaml:"username" env:"POSTGRES_USER" env-required:"true"`
	Password        string        `yaml:"password" env:"POSTGRES_PASSWORD" env-required:"true"`
	Host            string        `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port            string        `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	Database        string        `yaml:"database" env:"POSTGRES_DB" env-required:"true"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"50"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"10"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env-default:"1m"`
}

type Server struct {
	Host            string        `yaml:"host" env-default:"localhost"`
	Port            string        `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	Timeout         time.Duration `yaml:"timeout" env-default:"5s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

// Matching selects the blood type rule used for inventory issuance and for
// donor notification. Valid values are "exact" and "compatible".
type Matching struct {
	InventoryMode    string `yaml:"inventory_mode" env:"MATCHING_INVENTORY_MODE" env-default:"exact"`
	DonorMode        string `yaml:"donor_mode" env:"MATCHING_DONOR_MODE" env-default:"compatible"`
	NotifyLimit      int    `yaml:"notify_limit" env-default:"50"`
	DemandWindowDays int    `yaml:"demand_window_days" env-default:"30"`
}

type Scheduler struct {
	Enabled         bool          `yaml:"enabled" env:"SCHEDULER_ENABLED" env-default:"true"`
	RestorationSpec string        `yaml:"restoration_spec" env-default:"@hourly"`
	ExpirySpec      string        `yaml:"expiry_spec" env-default:"@midnight"`
	RelaySpec       string        `yaml:"relay_spec" env-default:"@every 5s"`
	ReminderSpec    string        `yaml:"reminder_spec" env-default:"0 9 * * *"`
	JobTimeout      time.Duration `yaml:"job_timeout" env-default:"2m"`
}

// Events configures where outbox events are delivered. Sink is one of
// "log", "redis" or "kafka".
type Events struct {
	Sink           string `yaml:"sink" env:"EVENTS_SINK" env-default:"log"`
	RelayBatchSize uint64 `yaml:"relay_batch_size" env-default:"100"`
	MaxAttempts    int    `yaml:"max_attempts" env:"EVENTS_MAX_ATTEMPTS" env-default:"10"`
	Redis          Redis  `yaml:"redis"`
	Kafka          Kafka  `yaml:"kafka"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
	Stream   string `yaml:"stream" env-default:"bloodbank.events"`
	MaxLen   int64  `yaml:"max_len" env-default:"100000"`
}

type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env-default:"bloodbank.events"`
}

func (c *Config) validate() error {
	for name, mode := range map[string]string{
		"matching.inventory_mode": c.Matching.InventoryMode,
		"matching.donor_mode":     c.Matching.DonorMode,
	} {
		if mode != "exact" && mode != "compatible" {
			return fmt.Errorf("%s must be 'exact' or 'compatible', got '%s'", name, mode)
		}
	}

	switch c.Events.Sink {
	case "log", "redis":
	case "kafka":
		if len(c.Events.Kafka.Brokers) == 0 {
			return errors.New("events.kafka.brokers is required for the kafka sink")
		}
	default:
		return fmt.Errorf("unknown events sink '%s'", c.Events.Sink)
	}

	return nil
}

func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return nil, errors.New("CONFIG_PATH is not set")
	}

	return LoadPath(configPath)
}

func LoadPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file does not exist: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}

// DSN builds a lib/pq connection URL.
func (p Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		p.Username, p.Password, p.Host, p.Port, p.Database,
	)
}
