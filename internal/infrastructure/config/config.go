package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Transaction TransactionConfig `mapstructure:"transaction"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Referral    ReferralConfig    `mapstructure:"referral"`
	Cache       CacheConfig       `mapstructure:"cache"`
	RateLimit   RateLimitConfig   `mapstructure:"rateLimit"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler"`
	CORS        CORSConfig        `mapstructure:"cors"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`
	MetricsEnabled    bool          `mapstructure:"metricsEnabled"`
}

// Address returns host:port for http.Server
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"`
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`
	SlowQuery       time.Duration `mapstructure:"slowQuery"`
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"`
	AutoMigrate     bool          `mapstructure:"autoMigrate"`
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level string `mapstructure:"level"`
	// SQLLevel controls the GORM bridge: silent, error, warn or info
	SQLLevel string `mapstructure:"sqlLevel"`
}

// TransactionConfig contains transaction processing settings
type TransactionConfig struct {
	QueueSize   int           `mapstructure:"queueSize"`
	LockTimeout time.Duration `mapstructure:"lockTimeout"`
}

// AuthConfig contains token, password and bootstrap admin settings
type AuthConfig struct {
	JWTSecret     string        `mapstructure:"jwtSecret"`
	JWTIssuer     string        `mapstructure:"jwtIssuer"`
	TokenTTL      time.Duration `mapstructure:"tokenTTL"`
	BcryptCost    int           `mapstructure:"bcryptCost"`
	AdminEmail    string        `mapstructure:"adminEmail"`
	AdminPassword string        `mapstructure:"adminPassword"`
}

// ReferralConfig contains referral code settings
type ReferralConfig struct {
	CodeLength      int `mapstructure:"codeLength"`
	MaxCodeAttempts int `mapstructure:"maxCodeAttempts"`
}

// CacheConfig contains the redis connection for the referral code cache.
// An empty Addr disables the cache.
type CacheConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// Enabled reports whether a redis address is configured
func (c CacheConfig) Enabled() bool {
	return c.Addr != ""
}

// RateLimitConfig limits login and registration attempts per client IP
type RateLimitConfig struct {
	AuthPerMinute int `mapstructure:"authPerMinute"`
	AuthBurst     int `mapstructure:"authBurst"`
}

// SchedulerConfig holds cron specs and retention for background jobs.
// An empty spec disables the job.
type SchedulerConfig struct {
	LockCleanupSpec       string        `mapstructure:"lockCleanupSpec"`
	NotificationPurgeSpec string        `mapstructure:"notificationPurgeSpec"`
	NotificationRetention time.Duration `mapstructure:"notificationRetention"`
	DepositExpirySpec     string        `mapstructure:"depositExpirySpec"`
	DepositMaxAge         time.Duration `mapstructure:"depositMaxAge"`
}

// CORSConfig lists the browser origins allowed to call the API
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// IsProduction reports whether the production profile is active
func (c *Config) IsProduction() bool {
	return c.Environment == Production
}

// Validate checks the settings the application cannot start without
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Host == "" {
		return errors.New("database host is required")
	}
	if c.Database.Database == "" {
		return errors.New("database name is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwtSecret is required")
	}
	if c.IsProduction() && len(c.Auth.JWTSecret) < 32 {
		return errors.New("auth.jwtSecret must be at least 32 characters in production")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.tokenTTL must be positive")
	}
	if c.Transaction.QueueSize <= 0 {
		return fmt.Errorf("transaction.queueSize must be positive, got %d", c.Transaction.QueueSize)
	}
	if c.Transaction.LockTimeout <= 0 {
		return errors.New("transaction.lockTimeout must be positive")
	}
	if c.Referral.CodeLength < 6 {
		return fmt.Errorf("referral.codeLength must be at least 6, got %d", c.Referral.CodeLength)
	}
	if (c.Auth.AdminEmail == "") != (c.Auth.AdminPassword == "") {
		return errors.New("auth.adminEmail and auth.adminPassword must be set together")
	}
	return nil
}
