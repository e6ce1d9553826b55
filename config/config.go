package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Port          string   `env:"PORT" envDefault:"8080"`
	DBDriver      string   `env:"DB_DRIVER" envDefault:"postgres"` // postgres | memory
	DBURL         string   `env:"DB_URL"`
	CORSOrigins   []string `env:"CORS_ORIGIN" envSeparator:"," envDefault:"*"`
	PublicBaseURL string   `env:"PUBLIC_BASE_URL"`
	UploadHosts   []string `env:"UPLOAD_HOSTS" envSeparator:","`
	LogLevel      string   `env:"LOG_LEVEL" envDefault:"info"`
	Debug         bool     `env:"DEBUG" envDefault:"false"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"local"` // local | s3
	UploadsDir    string `env:"UPLOADS_DIR" envDefault:"uploads"`

	MaxFileSize  int64 `env:"MAX_FILE_SIZE" envDefault:"10485760"`
	MaxFiles     int   `env:"MAX_FILES" envDefault:"50"`
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"52428800"`

	S3 S3Config `envPrefix:"S3_"`
}

type S3Config struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"estate-cms"`
	Region    string `env:"REGION"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"true"`
}

// LoadEnv reads .env when present, then the process environment.
func LoadEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}
	return Parse()
}

// Parse builds the config from the process environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ImageHosts lists the hosts whose /uploads URLs this service may delete:
// the PUBLIC_BASE_URL host plus UPLOAD_HOSTS. Empty means any host.
func (c *Config) ImageHosts() []string {
	var hosts []string
	if u, err := url.Parse(c.PublicBaseURL); err == nil && u.Host != "" {
		hosts = append(hosts, u.Host)
	}
	for _, h := range c.UploadHosts {
		if h = strings.TrimSpace(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

func (c *Config) validate() error {
	switch strings.ToLower(c.DBDriver) {
	case "postgres":
		if c.DBURL == "" {
			return errors.New("DB_URL is required when DB_DRIVER=postgres")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}

	switch strings.ToLower(c.StorageDriver) {
	case "local":
	case "s3":
		if c.S3.Endpoint == "" || c.S3.AccessKey == "" || c.S3.SecretKey == "" {
			return errors.New("S3_ENDPOINT, S3_ACCESS_KEY and S3_SECRET_KEY are required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.MaxFileSize <= 0 || c.MaxFiles <= 0 || c.MaxBodyBytes <= 0 {
		return errors.New("MAX_FILE_SIZE, MAX_FILES and MAX_BODY_BYTES must be positive")
	}
	return nil
}
