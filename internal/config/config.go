package config

import (
	"errors"
	"io/fs"
	"net"
	"net/url"
	"os"
	"time"

	errorsUtils "github.com/jacostamo01/CalculadoraNoviembre01/pkg/errors"

	"github.com/ilyakaznacheev/cleanenv"
	log "github.com/sirupsen/logrus"

	"github.com/joho/godotenv"
)

type (
	Config struct {
		App        `yaml:"app"`
		HTTP       `yaml:"http"`
		Log        `yaml:"log"`
		PG         `yaml:"postgres"`
		Prometheus `yaml:"prometheus"`
		Kafka      `yaml:"kafka"`
		Redis      `yaml:"redis"`
		Telemetry  `yaml:"telemetry"`
		Migrations `yaml:"migrations"`
	}

	App struct {
		Name    string `yaml:"name" env:"APP_NAME" env-default:"opslogger"`
		Version string `yaml:"version" env:"APP_VERSION" env-default:"dev"`
	}

	HTTP struct {
		Port string `yaml:"port" env:"PORT" env-default:"3000"`
	}

	Log struct {
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		File  string `yaml:"file" env:"LOG_FILE"`
	}

	PG struct {
		Host        string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
		Port        string `yaml:"port" env:"DB_PORT" env-default:"5432"`
		User        string `yaml:"user" env:"DB_USER" env-default:"postgres"`
		Password    string `yaml:"password" env:"DB_PASSWORD"`
		Name        string `yaml:"name" env:"DB_NAME" env-default:"backend_ms"`
		SSL         bool   `yaml:"ssl" env:"DB_SSL" env-default:"false"`
		MaxPoolSize int    `yaml:"max_pool_size" env:"MAX_POOL_SIZE" env-default:"10"`
	}

	Prometheus struct {
		Port string `yaml:"port" env:"PROMETHEUS_PORT" env-default:"9090"`
	}

	Kafka struct {
		Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
		Topic   string   `yaml:"topic" env:"KAFKA_TOPIC" env-default:"operations-log"`
	}

	Redis struct {
		Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
		Password string        `yaml:"password" env:"REDIS_PASSWORD"`
		DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
		TTL      time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"10m"`
	}

	Telemetry struct {
		Enabled  bool   `yaml:"enabled" env:"OTEL_ENABLED" env-default:"false"`
		Endpoint string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	}

	Migrations struct {
		Enabled bool `yaml:"enabled" env:"MIGRATIONS_ENABLED" env-default:"true"`
	}
)

const (
	ENV_PATH          = ".env"
	defaultConfigPath = "config/config.yaml"
	sslModeRequire    = "require"
	sslModeDisable    = "disable"
	postgresURLScheme = "postgres"
)

func New() (*Config, error) {
	if err := godotenv.Load(ENV_PATH); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, errorsUtils.WrapPathErr(err)
		}
		log.WithField("path", ENV_PATH).Debug("No .env file, using process environment")
	}

	cfg := &Config{}

	pathToConfig, ok := os.LookupEnv("APP_CONFIG_PATH")
	if !ok || pathToConfig == "" {
		log.WithField("env_var", "APP_CONFIG_PATH").
			Info("Config path is not set, using default")
		pathToConfig = defaultConfigPath
	}

	if _, err := os.Stat(pathToConfig); err != nil {
		log.WithField("path", pathToConfig).Info("Config file not found, reading environment only")
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, errorsUtils.WrapPathErr(err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(pathToConfig, cfg); err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}

	return cfg, nil
}

// URL builds the pgx connection string. Credentials are escaped.
func (p PG) URL() string {
	sslMode := sslModeDisable
	if p.SSL {
		sslMode = sslModeRequire
	}

	u := url.URL{
		Scheme:   postgresURLScheme,
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     "/" + p.Name,
		RawQuery: url.Values{"sslmode": []string{sslMode}}.Encode(),
	}
	return u.String()
}
