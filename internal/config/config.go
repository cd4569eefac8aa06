package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Signature storage backends.
const (
	SignatureBackendDisk       = "disk"
	SignatureBackendCloudinary = "cloudinary"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	DatabaseURL            string
	RedisURL               string
	NATSURL                string
	JWTSecret              string
	SignatureBackend       string
	SignatureDir           string
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	PairingTTL             time.Duration
	ReportCacheTTL         time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("STOREROOM")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Storeroom API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("database.url", "sqlite://storeroom.db")
	v.SetDefault("signature.backend", SignatureBackendDisk)
	v.SetDefault("signature.dir", "instance")
	v.SetDefault("cloudinary.folder", "storeroom/signatures")
	v.SetDefault("pairing.ttl", "10m")
	v.SetDefault("report.cache_ttl", "1m")

	pairingTTL, err := time.ParseDuration(v.GetString("pairing.ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid pairing ttl: %w", err)
	}

	reportTTL, err := time.ParseDuration(v.GetString("report.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid report cache ttl: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		NATSURL:                v.GetString("nats.url"),
		JWTSecret:              v.GetString("jwt.secret"),
		SignatureBackend:       strings.ToLower(v.GetString("signature.backend")),
		SignatureDir:           v.GetString("signature.dir"),
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		PairingTTL:             pairingTTL,
		ReportCacheTTL:         reportTTL,
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	switch cfg.SignatureBackend {
	case SignatureBackendDisk, SignatureBackendCloudinary:
	default:
		return Config{}, fmt.Errorf("unknown signature backend %q", cfg.SignatureBackend)
	}

	return cfg, nil
}
