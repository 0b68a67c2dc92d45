package app

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/benjaminBJ/taller-api-rest/internal/vet/service"
)

const defaultConfigFile = "appsettings.json"

type Config struct {
	JWTKey      string        // Required: HS256 signing key, at least 32 bytes
	JWTIssuer   string        // Required: iss claim
	JWTAudience string        // Required: aud claim
	AccessTTL   time.Duration // Required: Jwt.ExpireMin / JWT_EXPIRE_MIN, in minutes
	RefreshTTL  time.Duration // Required: Jwt.ExpireRefreshMin / JWT_EXPIRE_REFRESH_MIN, in minutes

	DatabaseDriver string // sqlite or postgres (default: sqlite)
	DatabaseDSN    string // Connection string (default: vet.db)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// TokenConfig is the part of Config the token service needs.
func (c Config) TokenConfig() service.TokenConfig {
	return service.TokenConfig{
		Key:        c.JWTKey,
		Issuer:     c.JWTIssuer,
		Audience:   c.JWTAudience,
		AccessTTL:  c.AccessTTL,
		RefreshTTL: c.RefreshTTL,
	}
}

// fileSettings mirrors the layout of appsettings.json. Minute values may be
// written as numbers or strings.
type fileSettings struct {
	Jwt struct {
		Key              string      `json:"Key"`
		Issuer           string      `json:"Issuer"`
		Audience         string      `json:"Audience"`
		ExpireMin        looseString `json:"ExpireMin"`
		ExpireRefreshMin looseString `json:"ExpireRefreshMin"`
	} `json:"Jwt"`
	Database struct {
		Driver string `json:"Driver"`
	} `json:"Database"`
	ConnectionStrings struct {
		DefaultConnection string `json:"DefaultConnection"`
	} `json:"ConnectionStrings"`
}

type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	if string(b) == "null" {
		return nil
	}
	*s = looseString(b)
	return nil
}

// LoadConfig reads the optional settings file named by CONFIG_FILE (or
// appsettings.json in the working directory), overlays the environment and
// validates the result.
func LoadConfig() (Config, error) {
	var fs fileSettings
	if err := readSettingsFile(&fs); err != nil {
		return Config{}, err
	}

	key := overlay(fs.Jwt.Key, "JWT_KEY")
	expire := overlay(string(fs.Jwt.ExpireMin), "JWT_EXPIRE_MIN")
	expireRefresh := overlay(string(fs.Jwt.ExpireRefreshMin), "JWT_EXPIRE_REFRESH_MIN")

	cfg := Config{
		JWTKey:              key,
		JWTIssuer:           overlay(fs.Jwt.Issuer, "JWT_ISSUER"),
		JWTAudience:         overlay(fs.Jwt.Audience, "JWT_AUDIENCE"),
		DatabaseDriver:      strings.ToLower(overlay(orDefault(fs.Database.Driver, "sqlite"), "DB_DRIVER")),
		DatabaseDSN:         overlay(orDefault(fs.ConnectionStrings.DefaultConnection, "vet.db"), "DB_DSN"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	var errs []error
	if cfg.JWTKey == "" {
		errs = append(errs, errors.New("Jwt.Key (JWT_KEY) is required"))
	}
	if cfg.JWTIssuer == "" {
		errs = append(errs, errors.New("Jwt.Issuer (JWT_ISSUER) is required"))
	}
	if cfg.JWTAudience == "" {
		errs = append(errs, errors.New("Jwt.Audience (JWT_AUDIENCE) is required"))
	}

	var err error
	if cfg.AccessTTL, err = parseMinutes("Jwt.ExpireMin (JWT_EXPIRE_MIN)", expire); err != nil {
		errs = append(errs, err)
	}
	if cfg.RefreshTTL, err = parseMinutes("Jwt.ExpireRefreshMin (JWT_EXPIRE_REFRESH_MIN)", expireRefresh); err != nil {
		errs = append(errs, err)
	}

	switch cfg.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("Database.Driver (DB_DRIVER) %q is not one of sqlite, postgres", cfg.DatabaseDriver))
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// readSettingsFile fills fs from the settings file. The default file may be
// absent; a file named explicitly by CONFIG_FILE must exist.
func readSettingsFile(fs *fileSettings) error {
	path, explicit := os.LookupEnv("CONFIG_FILE")
	if !explicit || path == "" {
		path, explicit = defaultConfigFile, false
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("read settings file: %w", err)
	}
	if err := json.Unmarshal(b, fs); err != nil {
		return fmt.Errorf("parse settings file %s: %w", path, err)
	}
	return nil
}

func parseMinutes(name, v string) (time.Duration, error) {
	if v == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a whole number of minutes", name, v)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return time.Duration(n) * time.Minute, nil
}

// overlay returns the environment value of key when set, else fromFile.
func overlay(fromFile, key string) string {
	return getEnvOrDefault(key, fromFile)
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
