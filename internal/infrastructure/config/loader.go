package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment override, e.g. RP_SERVER_PORT
const EnvPrefix = "RP"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"./configs/.env",
	"../configs/.env",
}

// envAliases binds short, deployment friendly variable names to config keys.
// Every key is also reachable as RP_<SECTION>_<KEY>.
var envAliases = map[string]string{
	"database.host":      "RP_DB_HOST",
	"database.port":      "RP_DB_PORT",
	"database.username":  "RP_DB_USERNAME",
	"database.password":  "RP_DB_PASSWORD",
	"database.database":  "RP_DB_NAME",
	"database.sslMode":   "RP_DB_SSL_MODE",
	"auth.jwtSecret":     "RP_JWT_SECRET",
	"auth.adminEmail":    "RP_ADMIN_EMAIL",
	"auth.adminPassword": "RP_ADMIN_PASSWORD",
	"cache.addr":         "RP_REDIS_ADDR",
	"cache.password":     "RP_REDIS_PASSWORD",
	"logger.level":       "RP_LOG_LEVEL",
}

// LoadConfig loads .env files, then configs/<env>.yaml, then environment overrides
func LoadConfig() (*Config, error) {
	loadDotEnvFile()

	env := getEnvironment()
	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	return load(v, env)
}

func load(v *viper.Viper, env string) (*Config, error) {
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, name := range envAliases {
		if err := v.BindEnv(key, name, envKey(key)); err != nil {
			return nil, fmt.Errorf("binding %s: %w", name, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.Environment = env

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// envKey is the variable AutomaticEnv would look up for key
func envKey(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// loadDotEnvFile loads the first .env file found; existing variables win
func loadDotEnvFile() {
	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			return
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", "10s")
	v.SetDefault("server.writeTimeout", "15s")
	v.SetDefault("server.idleTimeout", "60s")
	v.SetDefault("server.readHeaderTimeout", "5s")
	v.SetDefault("server.shutdownTimeout", "20s")
	v.SetDefault("server.metricsEnabled", true)

	v.SetDefault("database.host", "")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 25)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", "30m")
	v.SetDefault("database.connMaxIdleTime", "5m")
	v.SetDefault("database.queryTimeout", "10s")
	v.SetDefault("database.slowQuery", "200ms")
	v.SetDefault("database.retryAttempts", 5)
	v.SetDefault("database.retryDelay", "2s")
	v.SetDefault("database.autoMigrate", true)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.sqlLevel", "warn")

	v.SetDefault("transaction.queueSize", 100)
	v.SetDefault("transaction.lockTimeout", "5s")

	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.jwtIssuer", "referral-platform")
	v.SetDefault("auth.tokenTTL", "24h")
	v.SetDefault("auth.bcryptCost", 12)
	v.SetDefault("auth.adminEmail", "")
	v.SetDefault("auth.adminPassword", "")

	v.SetDefault("referral.codeLength", 8)
	v.SetDefault("referral.maxCodeAttempts", 5)

	v.SetDefault("cache.addr", "")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", "1h")

	v.SetDefault("rateLimit.authPerMinute", 10)
	v.SetDefault("rateLimit.authBurst", 5)

	v.SetDefault("scheduler.lockCleanupSpec", "@every 1m")
	v.SetDefault("scheduler.notificationPurgeSpec", "@daily")
	v.SetDefault("scheduler.notificationRetention", "720h")
	v.SetDefault("scheduler.depositExpirySpec", "@hourly")
	v.SetDefault("scheduler.depositMaxAge", "168h")

	v.SetDefault("cors.allowedOrigins", []string{"http://localhost:3000"})
}

// getEnvironment reads RP_ENV, defaulting to development
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		return Development
	}
	return strings.ToLower(env)
}
