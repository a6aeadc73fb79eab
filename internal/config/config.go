package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	AI        AIConfig        `yaml:"ai"`
	Auth      AuthConfig      `yaml:"auth"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	Contact   ContactConfig   `yaml:"contact"`
	Database  DatabaseConfig  `yaml:"database"`
	Minio     MinioConfig     `yaml:"minio"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"10000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"15s"`
	// MaxBodyBytes caps request bodies; inline lab images travel as base64.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env:"SERVER_MAX_BODY_BYTES" env-default:"52428800"`
}

type AIConfig struct {
	Provider string `yaml:"provider" env:"AI_PROVIDER" env-default:"openai"`
	APIKey   string `yaml:"api_key"  env:"API_KEY"`
	// BaseURL empty means the provider default (Gemini for openai).
	BaseURL string        `yaml:"base_url" env:"AI_BASE_URL"`
	Model   string        `yaml:"model"    env:"AI_MODEL"`
	Timeout time.Duration `yaml:"timeout"  env:"AI_TIMEOUT"  env-default:"90s"`
	Seed    int           `yaml:"seed"     env:"AI_SEED"     env-default:"42"`
	NoSeed  bool          `yaml:"no_seed"  env:"AI_NO_SEED"  env-default:"false"`
}

type AuthConfig struct {
	RequireLogin bool          `yaml:"require_login" env:"AUTH_REQUIRE_LOGIN" env-default:"false"`
	JWTSecret    string        `yaml:"jwt_secret"    env:"AUTH_JWT_SECRET"`
	SessionTTL   time.Duration `yaml:"session_ttl"   env:"AUTH_SESSION_TTL"   env-default:"168h"`
	OTPCacheSize int           `yaml:"otp_cache_size" env:"AUTH_OTP_CACHE_SIZE" env-default:"10000"`
}

type SMTPConfig struct {
	Host     string        `yaml:"host"     env:"SMTP_HOST"`
	Port     int           `yaml:"port"     env:"SMTP_PORT"     env-default:"587"`
	Username string        `yaml:"username" env:"EMAIL_USER"`
	Password string        `yaml:"password" env:"EMAIL_PASS"`
	From     string        `yaml:"from"     env:"SMTP_FROM"`
	TLS      string        `yaml:"tls"      env:"SMTP_TLS"      env-default:"mandatory"`
	SSL      bool          `yaml:"ssl"      env:"SMTP_SSL"      env-default:"false"`
	Timeout  time.Duration `yaml:"timeout"  env:"SMTP_TIMEOUT"  env-default:"15s"`
}

// Enabled reports whether mail should go through SMTP rather than the log.
func (s SMTPConfig) Enabled() bool { return s.Host != "" }

type ContactConfig struct {
	ExpertInbox string `yaml:"expert_inbox" env:"CONTACT_EXPERT_INBOX"`
	WhatsApp    string `yaml:"whatsapp"     env:"WHATSAPP_NUMBER" env-default:"919999999999"`
}

type DatabaseConfig struct {
	// Driver is "mysql", "postgres" or empty to disable the lead log.
	Driver   string `yaml:"driver"   env:"DB_DRIVER"`
	DSN      string `yaml:"dsn"      env:"DB_DSN"`
	Host     string `yaml:"host"     env:"DB_HOST"     env-default:"127.0.0.1"`
	Port     int    `yaml:"port"     env:"DB_PORT"`
	User     string `yaml:"user"     env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name"     env:"DB_NAME"     env-default:"ayurconnect"`
	// SkipMigrate leaves the schema alone at startup (ayurctl migrate runs it).
	SkipMigrate bool `yaml:"skip_migrate" env:"DB_SKIP_MIGRATE"`
}

// Enabled reports whether a lead log database is configured.
func (d DatabaseConfig) Enabled() bool { return d.Driver != "" }

type MinioConfig struct {
	Endpoint   string `yaml:"endpoint"   env:"MINIO_ENDPOINT"`
	AccessKey  string `yaml:"accessKey"  env:"MINIO_ACCESS_KEY"`
	SecretKey  string `yaml:"secretKey"  env:"MINIO_SECRET_KEY"`
	BucketName string `yaml:"bucketName" env:"MINIO_BUCKET" env-default:"ayurconnect-shares"`
	Region     string `yaml:"region"     env:"MINIO_REGION"`
	UseSSL     bool   `yaml:"useSSL"     env:"MINIO_USE_SSL"`
}

// Enabled reports whether share links can be stored.
func (m MinioConfig) Enabled() bool { return m.Endpoint != "" }

type CORSConfig struct {
	AllowedOrigins string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	MaxAge         int    `yaml:"max_age"         env:"CORS_MAX_AGE"         env-default:"300"`
}

// Origins splits the comma separated origin list.
func (c CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

type RateLimitConfig struct {
	Disabled bool    `yaml:"disabled" env:"RATELIMIT_DISABLED"`
	Rate     float64 `yaml:"rate"     env:"RATELIMIT_RATE"     env-default:"1"`
	Burst    int     `yaml:"burst"    env:"RATELIMIT_BURST"    env-default:"10"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	port := c.Database.Port
	if port == 0 {
		port = 3306
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		port,
		c.Database.Name,
	)
}

// PostgresDSN builds a lib/pq connection URL.
func (c *Config) PostgresDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	port := c.Database.Port
	if port == 0 {
		port = 5432
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, port),
		Path:     c.Database.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.Database.Driver == "postgres" {
		return c.PostgresDSN()
	}
	return c.MySQLDSN()
}
