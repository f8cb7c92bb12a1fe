package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

type AuthConfig struct {
	APIKey        string        `yaml:"api_key"`        // bearer key for service-to-service calls
	SessionSecret string        `yaml:"session_secret"` // HMAC secret for admin session cookies
	SessionTTL    time.Duration `yaml:"session_ttl"`
	SecureCookie  bool          `yaml:"secure_cookie"`
	CookieDomain  string        `yaml:"cookie_domain"`
	AdminEmail    string        `yaml:"admin_email"` // identity stamped into admin session claims
}

type DatabaseConfig struct {
	URL            string `yaml:"url"`
	MaxConns       int    `yaml:"max_conns"`
	MigrationsPath string `yaml:"migrations_path"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	LockTTL  time.Duration `yaml:"lock_ttl"`
}

// LencoConfig configures the hosted checkout provider. Env selects the
// sandbox or live script and API base; the loader keeps at most one script
// environment resident at a time.
type LencoConfig struct {
	PublicKey string `yaml:"public_key"`
	SecretKey string `yaml:"secret_key"`
	Env       string `yaml:"env"` // sandbox | live
}

type PaymentConfig struct {
	Lenco           LencoConfig   `yaml:"lenco"`
	Currency        string        `yaml:"currency"`         // platform currency, e.g. ZMW
	AmountEpsilon   float64       `yaml:"amount_epsilon"`   // verification amount tolerance
	CheckoutTimeout time.Duration `yaml:"checkout_timeout"` // widget interaction budget
	VerifyTimeout   time.Duration `yaml:"verify_timeout"`
	PendingTTL      time.Duration `yaml:"pending_ttl"` // parked attempt lifetime before it expires
}

type ReconcilerConfig struct {
	Interval   time.Duration `yaml:"interval"`    // sweep period
	StaleAfter time.Duration `yaml:"stale_after"` // pending age before re-verify
	BatchSize  int           `yaml:"batch_size"`
}

type NotifyConfig struct {
	WebhookURL string        `yaml:"webhook_url"` // receipt sender endpoint; empty disables
	Timeout    time.Duration `yaml:"timeout"`
}

type Config struct {
	Log        LogConfig        `yaml:"log"`
	Server     ServerConfig     `yaml:"server"`
	Auth       AuthConfig       `yaml:"auth"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Payment    PaymentConfig    `yaml:"payment"`
	Reconciler ReconcilerConfig `yaml:"reconciler"`
	Notify     NotifyConfig     `yaml:"notify"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads and validates the YAML config at path, applying defaults
// for everything the file leaves out.
func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Runtime.Dev = dev
	applyDefaults(&cfg)

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("database.url is required")
	}
	if cfg.Payment.Lenco.Env != "sandbox" && cfg.Payment.Lenco.Env != "live" {
		return nil, fmt.Errorf("payment.lenco.env must be sandbox or live, got %q", cfg.Payment.Lenco.Env)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Auth.SessionTTL <= 0 {
		cfg.Auth.SessionTTL = 30 * time.Minute
	}
	if cfg.Auth.AdminEmail == "" {
		cfg.Auth.AdminEmail = "admin@localhost"
	}
	if cfg.Database.MaxConns <= 0 {
		cfg.Database.MaxConns = 10
	}
	if cfg.Database.MigrationsPath == "" {
		cfg.Database.MigrationsPath = "migrations"
	}
	if cfg.Redis.LockTTL <= 0 {
		cfg.Redis.LockTTL = 30 * time.Second
	}
	if cfg.Payment.Lenco.Env == "" {
		cfg.Payment.Lenco.Env = "sandbox"
	}
	if cfg.Payment.Currency == "" {
		cfg.Payment.Currency = "ZMW"
	}
	if cfg.Payment.AmountEpsilon <= 0 {
		cfg.Payment.AmountEpsilon = 0.01
	}
	if cfg.Payment.CheckoutTimeout <= 0 {
		cfg.Payment.CheckoutTimeout = 5 * time.Minute
	}
	if cfg.Payment.VerifyTimeout <= 0 {
		cfg.Payment.VerifyTimeout = 15 * time.Second
	}
	if cfg.Payment.PendingTTL <= 0 {
		cfg.Payment.PendingTTL = 24 * time.Hour
	}
	if cfg.Reconciler.Interval <= 0 {
		cfg.Reconciler.Interval = time.Minute
	}
	if cfg.Reconciler.StaleAfter <= 0 {
		cfg.Reconciler.StaleAfter = 10 * time.Minute
	}
	if cfg.Reconciler.BatchSize <= 0 {
		cfg.Reconciler.BatchSize = 200
	}
	if cfg.Notify.Timeout <= 0 {
		cfg.Notify.Timeout = 10 * time.Second
	}
}
