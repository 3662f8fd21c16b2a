package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"p9e.in/ascomp/pkg/storage"
)

var DB *gorm.DB

// Config is every runtime setting. Environment variables are read first;
// a YAML file named by CONFIG_FILE overrides them.
type Config struct {
	Port      string         `yaml:"port"`
	DSN       string         `yaml:"db_dsn"`
	JWTSecret string         `yaml:"jwt_secret"`
	LogLevel  string         `yaml:"log_level"`
	LogFormat string         `yaml:"log_format"`
	Storage   storage.Config `yaml:"storage"`
	PDF       PDFConfig      `yaml:"pdf"`

	// EnvFileLoaded is false when no .env file was found. Callers log it
	// once the logger exists.
	EnvFileLoaded bool `yaml:"-"`
}

type PDFConfig struct {
	Renderer  string        `yaml:"renderer"`
	ChromeBin string        `yaml:"chrome_bin"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Load reads .env (optional), the environment, then CONFIG_FILE.
func Load() (*Config, error) {
	loaded := godotenv.Load() == nil

	cfg := &Config{
		Port:      env("PORT", "8080"),
		DSN:       os.Getenv("DB_DSN"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		LogLevel:  env("LOG_LEVEL", "info"),
		LogFormat: env("LOG_FORMAT", "json"),
		Storage: storage.Config{
			Driver:      env("STORAGE_DRIVER", storage.DriverLocal),
			Dir:         env("UPLOAD_DIR", "./uploads"),
			Bucket:      os.Getenv("STORAGE_BUCKET"),
			S3Endpoint:  os.Getenv("S3_ENDPOINT"),
			S3Region:    env("S3_REGION", "us-east-1"),
			S3AccessKey: os.Getenv("S3_ACCESS_KEY_ID"),
			S3SecretKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		},
		PDF: PDFConfig{
			Renderer:  env("PDF_RENDERER", "direct"),
			ChromeBin: os.Getenv("CHROME_BIN"),
			Timeout:   30 * time.Second,
		},
		EnvFileLoaded: loaded,
	}
	if v := os.Getenv("PDF_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PDF_TIMEOUT %q: %w", v, err)
		}
		cfg.PDF.Timeout = d
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.overlay(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func (c *Config) overlay(path string) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config file %s not found", path)
	}
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Connect opens the database, stores it in DB and runs migrations.
func Connect(cfg *Config) error {
	if cfg.DSN == "" {
		return errors.New("DB_DSN is not set")
	}
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := Migrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	DB = db
	return nil
}
