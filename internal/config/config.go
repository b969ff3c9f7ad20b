package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		MonitoringPort     int      `mapstructure:"monitoring_port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	Redis struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`

	Session struct {
		Secret          string `mapstructure:"secret"`
		ExpirationHours int    `mapstructure:"expiration_hours"`
		Issuer          string `mapstructure:"issuer"`
	} `mapstructure:"session"`

	Auth struct {
		OwnerPIN string `mapstructure:"owner_pin"`
	} `mapstructure:"auth"`

	Archive struct {
		Endpoint  string `mapstructure:"endpoint"`
		AccessKey string `mapstructure:"access_key"`
		SecretKey string `mapstructure:"secret_key"`
		Bucket    string `mapstructure:"bucket"`
		Region    string `mapstructure:"region"`
	} `mapstructure:"archive"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.monitoring_port", 9090)
	v.SetDefault("session.expiration_hours", 12)
	v.SetDefault("session.issuer", "kegama-backend")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "kegama_db")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("archive.region", "auto")

	// Config file is optional
	if err := v.ReadInConfig(); err != nil {
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	// Redis overrides (K8s-style service env vars take priority)
	if host := os.Getenv("REDIS_SERVICE_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv("REDIS_SERVICE_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Redis.Port = n
		}
	}
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		cfg.Redis.Password = pass
	}

	// Session secret must come from the environment when not in the file
	if cfg.Session.Secret == "" || cfg.Session.Secret == "${SESSION_SECRET}" {
		cfg.Session.Secret = os.Getenv("SESSION_SECRET")
		if cfg.Session.Secret == "" {
			log.Fatal("SESSION_SECRET not found in config or environment")
		}
	}

	if ownerPIN := os.Getenv("OWNER_PIN"); ownerPIN != "" {
		cfg.Auth.OwnerPIN = ownerPIN
	}

	// Archive (S3-compatible) credentials from environment
	if endpoint := os.Getenv("ARCHIVE_ENDPOINT"); endpoint != "" {
		cfg.Archive.Endpoint = endpoint
	}
	if key := os.Getenv("ARCHIVE_ACCESS_KEY"); key != "" {
		cfg.Archive.AccessKey = key
	}
	if secret := os.Getenv("ARCHIVE_SECRET_KEY"); secret != "" {
		cfg.Archive.SecretKey = secret
	}
	if bucket := os.Getenv("ARCHIVE_BUCKET"); bucket != "" {
		cfg.Archive.Bucket = bucket
	}

	return &cfg
}
