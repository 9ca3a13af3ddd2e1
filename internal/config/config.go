package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort     = 2500
	defaultEnv      = "development"
	defaultMongoURI = "mongodb://127.0.0.1:27017"
	defaultMongoDB  = "lueur"
	defaultRedisURL = "redis://localhost:6379/0"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int         `yaml:"port"`
	Env            string      `yaml:"env"` // "development" | "production"
	Mongo          MongoConfig `yaml:"mongo"`
	RedisURL       string      `yaml:"redis_url"`
	AllowedOrigins []string    `yaml:"allowed_origins"`
	JWTSecret      string      `yaml:"jwt_secret"`
	AdminIDs       []string    `yaml:"admin_ids"`
	S3Options      S3Options   `yaml:"s3"`
	RateLimit      RateLimit   `yaml:"rate_limit"`
}

// MongoConfig locates the document database.
type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

// S3Options configures the blob-storage collaborator.
type S3Options struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Endpoint        string `yaml:"endpoint"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}

// RateLimit bounds unauthenticated request rates per client IP.
type RateLimit struct {
	Max      int `yaml:"max"`
	WindowMS int `yaml:"window_ms"`
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env != "production" }

// Load reads the YAML config file, then applies environment overrides
// and defaults. A missing file is fine: everything can come from env.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env + defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv("LUEUR_PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := strings.TrimSpace(os.Getenv("LUEUR_ENV")); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("LUEUR_MONGO_URI")); v != "" {
		cfg.Mongo.URI = v
	}
	if v := strings.TrimSpace(os.Getenv("LUEUR_MONGO_DB")); v != "" {
		cfg.Mongo.Database = v
	}
	if v := strings.TrimSpace(os.Getenv("LUEUR_REDIS_URL")); v != "" {
		cfg.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv("LUEUR_JWT_SECRET")); v != "" {
		cfg.JWTSecret = v
	}
	if v := strings.TrimSpace(os.Getenv("LUEUR_ADMIN_IDS")); v != "" {
		cfg.AdminIDs = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv("LUEUR_ALLOWED_ORIGINS")); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv("LUEUR_S3_BUCKET")); v != "" {
		cfg.S3Options.Bucket = v
	}
	if v := strings.TrimSpace(os.Getenv("LUEUR_S3_REGION")); v != "" {
		cfg.S3Options.Region = v
	}
	if v := strings.TrimSpace(os.Getenv("LUEUR_S3_ACCESS_KEY_ID")); v != "" {
		cfg.S3Options.AccessKeyID = v
	}
	if v := strings.TrimSpace(os.Getenv("LUEUR_S3_SECRET_ACCESS_KEY")); v != "" {
		cfg.S3Options.SecretAccessKey = v
	}
	if v := strings.TrimSpace(os.Getenv("LUEUR_S3_ENDPOINT")); v != "" {
		cfg.S3Options.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv("LUEUR_S3_CUSTOM_DOMAIN")); v != "" {
		cfg.S3Options.CustomDomain = v
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.Mongo.URI == "" {
		cfg.Mongo.URI = defaultMongoURI
	}
	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = defaultMongoDB
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = defaultRedisURL
	}
	if cfg.RateLimit.Max == 0 {
		cfg.RateLimit.Max = 50
	}
	if cfg.RateLimit.WindowMS == 0 {
		cfg.RateLimit.WindowMS = 1000
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
