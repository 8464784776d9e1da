// Package config loads service configuration from a .env file, an optional
// YAML file and the process environment.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"guidedigest-backend/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderAzure  = "azure"
	ProviderGemini = "gemini"

	SupportModeLocal = "local"
	SupportModeTool  = "tool"

	StorageTypeLocal = "local"
	StorageTypeS3    = "s3"
)

// ErrMissingCredentials is returned when the model API key or endpoint is absent
var ErrMissingCredentials = errors.New("model API credentials not found")

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Model   ModelConfig   `yaml:"model"`
	Summary SummaryConfig `yaml:"summary"`
	QA      QAConfig      `yaml:"qa"`
	Support SupportConfig `yaml:"support"`
	Storage StorageConfig `yaml:"storage"`
	Paths   PathsConfig   `yaml:"paths"`
	Inbox   InboxConfig   `yaml:"inbox"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port           string        `yaml:"port"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	MaxUploadBytes int64         `yaml:"max_upload_bytes"`
}

type ModelConfig struct {
	Provider   string `yaml:"provider"`
	Default    string `yaml:"default"`
	APIVersion string `yaml:"api_version"`

	// Secrets come from the environment only.
	APIKey   string `yaml:"-"`
	Endpoint string `yaml:"-"`
}

type SummaryConfig struct {
	Style       string  `yaml:"style"`
	Language    string  `yaml:"language"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

type QAConfig struct {
	MaxTokens            int     `yaml:"max_tokens"`
	Temperature          float64 `yaml:"temperature"`
	DocumentContextChars int     `yaml:"document_context_chars"`
	AutoLanguage         bool    `yaml:"auto_language"`
	// LowConfidenceThreshold overrides the per-mode default when non-zero.
	LowConfidenceThreshold float64 `yaml:"low_confidence_threshold"`
}

type SupportConfig struct {
	Mode string `yaml:"mode"`
}

type StorageConfig struct {
	Type      string `yaml:"type"`
	LocalPath string `yaml:"local_path"`
	S3Bucket  string `yaml:"s3_bucket"`
	S3Region  string `yaml:"s3_region"`

	AWSAccessKey string `yaml:"-"`
	AWSSecretKey string `yaml:"-"`
}

type PathsConfig struct {
	SampleGuide string `yaml:"sample_guide"`
}

type InboxConfig struct {
	Dir           string `yaml:"dir"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           "8080",
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   120 * time.Second,
			MaxUploadBytes: 10 * 1024 * 1024, // 10MB
		},
		Model: ModelConfig{
			Provider:   ProviderAzure,
			Default:    "gpt-4o-mini",
			APIVersion: "2024-07-01-preview",
		},
		Summary: SummaryConfig{
			Style:       string(models.StyleConcise),
			Language:    models.BaseLanguage,
			MaxTokens:   300,
			Temperature: 0.3,
		},
		QA: QAConfig{
			MaxTokens:            400,
			Temperature:          0.1,
			DocumentContextChars: 2000,
			AutoLanguage:         true,
		},
		Support: SupportConfig{
			Mode: SupportModeLocal,
		},
		Storage: StorageConfig{
			Type:      StorageTypeLocal,
			LocalPath: "./storage/exports",
			S3Region:  "us-east-1",
		},
		Paths: PathsConfig{
			SampleGuide: "data/user_guide_sample.txt",
		},
		Inbox: InboxConfig{
			MaxConcurrent: 1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads an optional .env file, an optional YAML file at path (skipped
// when path is empty) and environment overrides, then validates the result.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: No .env file found, using environment variables")
	}

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables on top of file values
func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Model.Provider = getEnv("MODEL_PROVIDER", c.Model.Provider)
	c.Model.Default = getEnv("DEFAULT_MODEL", c.Model.Default)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Support.Mode = getEnv("SUPPORT_MODE", c.Support.Mode)
	c.Paths.SampleGuide = getEnv("SAMPLE_GUIDE_PATH", c.Paths.SampleGuide)
	c.Inbox.Dir = getEnv("INBOX_DIR", c.Inbox.Dir)
	c.Inbox.MaxConcurrent = getInt("INBOX_MAX_CONCURRENT", c.Inbox.MaxConcurrent)

	c.Storage.Type = getEnv("STORAGE_TYPE", c.Storage.Type)
	c.Storage.LocalPath = getEnv("STORAGE_LOCAL_PATH", c.Storage.LocalPath)
	c.Storage.S3Bucket = getEnv("AWS_S3_BUCKET", c.Storage.S3Bucket)
	c.Storage.S3Region = getEnv("AWS_REGION", c.Storage.S3Region)
	c.Storage.AWSAccessKey = os.Getenv("AWS_ACCESS_KEY_ID")
	c.Storage.AWSSecretKey = os.Getenv("AWS_SECRET_ACCESS_KEY")

	keyVar, endpointVar := c.Model.CredentialVars()
	c.Model.APIKey = os.Getenv(keyVar)
	c.Model.Endpoint = os.Getenv(endpointVar)
}

// CredentialVars names the environment variables holding the API key and
// endpoint for the configured provider.
func (m ModelConfig) CredentialVars() (keyVar, endpointVar string) {
	if m.Provider == ProviderGemini {
		return "GEMINI_API_KEY", "GEMINI_ENDPOINT"
	}
	return "AZURE_OPENAI_API_KEY", "AZURE_OPENAI_ENDPOINT"
}

// Validate checks required values and fills defaults for optional ones
func (c *Config) Validate() error {
	switch c.Model.Provider {
	case ProviderAzure, ProviderGemini:
	default:
		return fmt.Errorf("model.provider must be %q or %q, got %q", ProviderAzure, ProviderGemini, c.Model.Provider)
	}

	if c.Model.APIKey == "" || c.Model.Endpoint == "" {
		keyVar, endpointVar := c.Model.CredentialVars()
		return fmt.Errorf("%w: required environment variables: %s, %s", ErrMissingCredentials, keyVar, endpointVar)
	}

	if c.Model.Default == "" {
		return fmt.Errorf("model.default is required")
	}

	if !models.SummaryStyle(c.Summary.Style).IsValid() {
		return fmt.Errorf("summary.style %q is not supported", c.Summary.Style)
	}
	if _, ok := models.LookupLanguage(c.Summary.Language); !ok {
		return fmt.Errorf("summary.language %q is not supported", c.Summary.Language)
	}

	switch c.Support.Mode {
	case SupportModeLocal, SupportModeTool:
	default:
		return fmt.Errorf("support.mode must be %q or %q, got %q", SupportModeLocal, SupportModeTool, c.Support.Mode)
	}

	switch c.Storage.Type {
	case StorageTypeLocal:
		if c.Storage.LocalPath == "" {
			c.Storage.LocalPath = "./storage/exports"
		}
	case StorageTypeS3:
		if c.Storage.S3Bucket == "" {
			return errors.New("AWS_S3_BUCKET is required for S3 storage")
		}
	default:
		return fmt.Errorf("unknown storage type: %s", c.Storage.Type)
	}

	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.MaxUploadBytes <= 0 {
		c.Server.MaxUploadBytes = 10 * 1024 * 1024
	}
	if c.QA.MaxTokens <= 0 {
		c.QA.MaxTokens = 400
	}
	if c.QA.DocumentContextChars <= 0 {
		c.QA.DocumentContextChars = 2000
	}
	if c.Inbox.MaxConcurrent <= 0 {
		c.Inbox.MaxConcurrent = 1
	}

	return nil
}

// LowConfidenceThreshold returns the configured threshold or the default for
// the support mode: the tool-calling flow is stricter.
func (c *Config) LowConfidenceThreshold() float64 {
	if c.QA.LowConfidenceThreshold > 0 {
		return c.QA.LowConfidenceThreshold
	}
	if c.Support.Mode == SupportModeTool {
		return 0.7
	}
	return 0.5
}

// getEnv returns env[key] if set, otherwise defaultVal.
func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("invalid %s=%q; using default %d", key, v, defaultVal)
	}
	return defaultVal
}
