package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type DB struct {
	URL             string        `env:"DATABASE_URL,required,notEmpty"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"16"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"8"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"15m"`
	MigrationsPath  string        `env:"MIGRATIONS_PATH" envDefault:"file://db/migrations"`
}

type HTTP struct {
	Port string `env:"PORT" envDefault:"8080"`
}

// Mail holds the outbound SMTP settings. EMAIL_USER doubles as the sender
// address and the SMTP username.
type Mail struct {
	User     string `env:"EMAIL_USER"`
	Password string `env:"EMAIL_PASS"`
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
}

// Enabled reports whether enough settings are present to send real mail.
func (m Mail) Enabled() bool {
	return m.User != "" && m.Password != ""
}

type Kafka struct {
	Brokers    string `env:"KAFKA_BROKERS"`
	AuditTopic string `env:"AUDIT_TOPIC" envDefault:"booking-audit"`
}

func (k Kafka) Enabled() bool {
	return strings.TrimSpace(k.Brokers) != ""
}

type Audit struct {
	SystemActorID string `env:"SYSTEM_ACTOR_ID" envDefault:"system"`
}

type Config struct {
	DB       DB
	HTTP     HTTP
	Mail     Mail
	Kafka    Kafka
	Audit    Audit
	LogLevel string `env:"LOG_LEVEL" envDefault:"debug"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
