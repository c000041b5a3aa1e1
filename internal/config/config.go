package config

import (
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Uploads UploadsConfig `yaml:"uploads"`
	Lock    LockConfig    `yaml:"lock"`
	S3      S3Config      `yaml:"s3"`
	Auth    AuthConfig    `yaml:"auth"`
	Cleanup CleanupConfig `yaml:"cleanup"`
	Logger  LoggerConfig  `yaml:"logger"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Mode            string        `yaml:"mode"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StoreConfig struct {
	BoardFile  string `yaml:"board_file"`
	PolicyFile string `yaml:"policy_file"`
}

type UploadsConfig struct {
	// Backend selects where uploaded binaries live: "local" or "s3"
	Backend        string        `yaml:"backend"`
	Dir            string        `yaml:"dir"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout"`
	MaxAttachments int           `yaml:"max_attachments"`
}

type LockConfig struct {
	Retries        int           `yaml:"retries"`
	MinBackoff     time.Duration `yaml:"min_backoff"`
	MaxBackoff     time.Duration `yaml:"max_backoff"`
	StaleThreshold time.Duration `yaml:"stale_threshold"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Endpoint        string `yaml:"endpoint"`
}

type AuthConfig struct {
	// JWTSecret enables bearer auth on the admin route group when non-empty
	JWTSecret string    `yaml:"jwt_secret"`
	User      DummyUser `yaml:"user"`
}

// DummyUser is the fixed identity served by /api/auth/current-user
type DummyUser struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	CompanyName string `yaml:"company_name" json:"companyName"`
	Email       string `yaml:"email" json:"email"`
}

type CleanupConfig struct {
	Schedule string        `yaml:"schedule"`
	MinAge   time.Duration `yaml:"min_age"`
}

type LoggerConfig struct {
	Level string `yaml:"level"`
}

// Load reads configuration from a yaml file (if present) and applies
// environment variable overrides on top of the built-in defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            "8300",
			Mode:            "debug",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			BoardFile:  "data/board-data.json",
			PolicyFile: "data/policy-list.json",
		},
		Uploads: UploadsConfig{
			Backend:        "local",
			Dir:            "uploads",
			FetchTimeout:   30 * time.Second,
			MaxAttachments: 10,
		},
		Lock: LockConfig{
			Retries:        10,
			MinBackoff:     100 * time.Millisecond,
			MaxBackoff:     time.Second,
			StaleThreshold: 10 * time.Second,
		},
		Auth: AuthConfig{
			User: DummyUser{
				ID:          "user123",
				Name:        "홍길동",
				CompanyName: "대웅제약",
				Email:       "hong@example.com",
			},
		},
		Cleanup: CleanupConfig{
			Schedule: "@hourly",
			MinAge:   24 * time.Hour,
		},
		Logger: LoggerConfig{
			Level: "info",
		},
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		cfg.Server.Mode = mode
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logger.Level = level
	}
	if boardFile := os.Getenv("BOARD_DATA_FILE"); boardFile != "" {
		cfg.Store.BoardFile = boardFile
	}
	if policyFile := os.Getenv("POLICY_DATA_FILE"); policyFile != "" {
		cfg.Store.PolicyFile = policyFile
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		cfg.Uploads.Dir = dir
	}
	if backend := os.Getenv("UPLOAD_BACKEND"); backend != "" {
		cfg.Uploads.Backend = backend
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if bucket := os.Getenv("S3_BUCKET"); bucket != "" {
		cfg.S3.Bucket = bucket
	}
	if region := os.Getenv("S3_REGION"); region != "" {
		cfg.S3.Region = region
	}
	if retries := os.Getenv("LOCK_RETRIES"); retries != "" {
		if n, err := strconv.Atoi(retries); err == nil {
			cfg.Lock.Retries = n
		}
	}

	return cfg, nil
}
