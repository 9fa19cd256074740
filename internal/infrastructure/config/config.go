package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/farmcred/scoring/pkg/kafka"
	"github.com/farmcred/scoring/pkg/postgres"
)

const (
	EnvironmentProduction  = "production"
	EnvironmentDevelopment = "development"
)

type DatabaseConfig struct {
	// URL overrides the discrete fields when set.
	URL      string
	Host     string
	User     string
	Password string
	Name     string
	SSLMode  string
	Port     int
	MaxConns int
}

type KafkaConfig struct {
	Brokers           []string
	ConsumerGroup     string
	EventsTopic       string
	ApplicationsTopic string
	SASLMechanism     string
	SASLUsername      string
	SASLPassword      string
	TLS               bool
	SASLEnabled       bool
}

type RedisConfig struct {
	Addr     string
	Password string
	CAFile   string
	DB       int
	TTL      time.Duration
	TLS      bool
}

type AuthConfig struct {
	JWTSecret         string
	JWTPublicKeyPath  string
	JWTIssuer         string
	AllowUnauthorized bool
}

type TLSConfig struct {
	CertFile     string
	KeyFile      string
	ClientCAFile string
}

type IdentityProviderConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
	Retries int
}

type Config struct {
	DB               DatabaseConfig
	Kafka            KafkaConfig
	Redis            RedisConfig
	Auth             AuthConfig
	TLS              TLSConfig
	IdentityProvider IdentityProviderConfig
	ServiceName      string
	Environment      string
	LogLevel         string
	LogFormat        string
	OTLPEndpoint     string
	GRPCPort         int
	HTTPPort         int
	RateLimitRPS     float64
	RateLimitBurst   int
	ShutdownTimeout  time.Duration
}

// Load reads configuration from environment variables with defaults suited to
// local development.
func Load() Config {
	env := getEnv("ENVIRONMENT", EnvironmentDevelopment)
	defaultFormat := "text"
	if env != EnvironmentDevelopment {
		defaultFormat = "json"
	}

	return Config{
		ServiceName: getEnv("SERVICE_NAME", "scoring-service"),
		Environment: env,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", defaultFormat),
		GRPCPort:    getEnvInt("GRPC_PORT", 9090),
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		DB: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "farmcred"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "farmcred_scoring"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
		},
		Kafka: KafkaConfig{
			Brokers:           splitList(getEnv("KAFKA_BROKERS", "")),
			ConsumerGroup:     getEnv("KAFKA_CONSUMER_GROUP", "scoring-service"),
			EventsTopic:       getEnv("KAFKA_EVENTS_TOPIC", "farmcred.credit-events"),
			ApplicationsTopic: getEnv("KAFKA_APPLICATIONS_TOPIC", "farmcred.loan-applications"),
			TLS:               getEnvBool("KAFKA_TLS", false),
			SASLEnabled:       getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism:     getEnv("KAFKA_SASL_MECHANISM", "PLAIN"),
			SASLUsername:      getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:      getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("SCORE_CACHE_TTL", 15*time.Minute),
			TLS:      getEnvBool("REDIS_TLS", false),
			CAFile:   getEnv("REDIS_CA_FILE", ""),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", ""),
			JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", ""),
			JWTIssuer:         getEnv("JWT_ISSUER", ""),
			AllowUnauthorized: getEnvBool("AUTH_DISABLED", false),
		},
		TLS: TLSConfig{
			CertFile:     getEnv("TLS_CERT_FILE", ""),
			KeyFile:      getEnv("TLS_KEY_FILE", ""),
			ClientCAFile: getEnv("TLS_CLIENT_CA_FILE", ""),
		},
		IdentityProvider: IdentityProviderConfig{
			URL:     getEnv("IDENTITY_PROVIDER_URL", ""),
			APIKey:  getEnv("IDENTITY_PROVIDER_API_KEY", ""),
			Timeout: getEnvDuration("IDENTITY_PROVIDER_TIMEOUT", 5*time.Second),
			Retries: getEnvInt("IDENTITY_PROVIDER_RETRIES", 2),
		},
		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 50),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 100),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
	}
}

// Validate rejects configurations that would start an insecure or broken
// service.
func (c Config) Validate() error {
	var errs []error

	if c.GRPCPort <= 0 || c.HTTPPort <= 0 {
		errs = append(errs, errors.New("GRPC_PORT and HTTP_PORT must be positive"))
	}
	if c.GRPCPort == c.HTTPPort {
		errs = append(errs, errors.New("GRPC_PORT and HTTP_PORT must differ"))
	}
	if c.DB.URL == "" && c.DB.Password == "" && c.IsProduction() {
		errs = append(errs, errors.New("DB_PASSWORD or DATABASE_URL is required in production"))
	}
	if c.Auth.JWTSecret == "" && c.Auth.JWTPublicKeyPath == "" {
		if c.IsProduction() || !c.Auth.AllowUnauthorized {
			errs = append(errs, errors.New("JWT_SECRET or JWT_PUBLIC_KEY_PATH is required"))
		}
	}
	if c.IsProduction() && c.Auth.AllowUnauthorized {
		errs = append(errs, errors.New("AUTH_DISABLED is not permitted in production"))
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set together"))
	}
	if c.Redis.CAFile != "" && !c.Redis.TLS {
		errs = append(errs, errors.New("REDIS_CA_FILE requires REDIS_TLS"))
	}
	if c.Kafka.SASLEnabled && c.Kafka.SASLUsername == "" {
		errs = append(errs, errors.New("KAFKA_SASL_USERNAME is required when SASL is enabled"))
	}

	return errors.Join(errs...)
}

func (c Config) IsProduction() bool {
	return c.Environment == EnvironmentProduction
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// Postgres returns the pool configuration.
func (c Config) Postgres() postgres.Config {
	return postgres.Config{
		URL:      c.DB.URL,
		Host:     c.DB.Host,
		Port:     c.DB.Port,
		User:     c.DB.User,
		Password: c.DB.Password,
		Database: c.DB.Name,
		SSLMode:  c.DB.SSLMode,
		MaxConns: int32(c.DB.MaxConns),
	}
}

// DatabaseDSN prefers DATABASE_URL over the discrete DB_* settings.
func (c Config) DatabaseDSN() string {
	return c.Postgres().DSN()
}

// KafkaEnabled reports whether any brokers are configured.
func (c Config) KafkaEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

// KafkaClient returns the shared producer/consumer configuration.
func (c Config) KafkaClient() kafka.Config {
	return kafka.Config{
		Brokers:       c.Kafka.Brokers,
		ConsumerGroup: c.Kafka.ConsumerGroup,
		ClientID:      c.ServiceName,
		TLS:           c.Kafka.TLS,
		SASLEnabled:   c.Kafka.SASLEnabled,
		SASLMechanism: c.Kafka.SASLMechanism,
		SASLUsername:  c.Kafka.SASLUsername,
		SASLPassword:  c.Kafka.SASLPassword,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
