// Package config loads pipeline configuration from the embedded defaults,
// an optional YAML settings file, and environment variables, in that
// order of increasing precedence.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

//go:embed settings.yaml
var defaultSettingsYAML []byte

// Settings is the YAML-file shape of the configuration
type Settings struct {
	Database struct {
		Type           string `yaml:"type"`
		Path           string `yaml:"path"`
		URL            string `yaml:"url"`
		MigrationsPath string `yaml:"migrations_path"`
	} `yaml:"database"`
	Reports struct {
		Dir     string `yaml:"dir"`
		EmailTo string `yaml:"email_to"`
	} `yaml:"reports"`
	AWS struct {
		Region       string `yaml:"region"`
		SESFromEmail string `yaml:"ses_from_email"`
		SESFromName  string `yaml:"ses_from_name"`
	} `yaml:"aws"`
	Generation struct {
		AnthropicModel string  `yaml:"anthropic_model"`
		MaxTokens      int     `yaml:"max_tokens"`
		Temperature    float64 `yaml:"temperature"`
	} `yaml:"generation"`
	Audit struct {
		Profile string `yaml:"profile"`
	} `yaml:"audit"`
	Batch struct {
		Size int `yaml:"size"`
	} `yaml:"batch"`
}

// Config is the resolved runtime configuration
type Config struct {
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	ReportDir     string
	ReportEmailTo string

	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	AnthropicAPIKey string
	AnthropicModel  string
	MaxTokens       int
	Temperature     float64

	AuditProfile string
	BatchSize    int

	Debug bool
}

// Load resolves configuration. settingsPath may be empty, in which case only
// the embedded defaults and environment apply. A .env file in the working
// directory is loaded first when present.
func Load(settingsPath string) (*Config, error) {
	// Missing .env is fine; explicit settings files are not
	_ = godotenv.Load()

	var settings Settings
	if err := yaml.Unmarshal(defaultSettingsYAML, &settings); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if settingsPath != "" {
		data, err := os.ReadFile(settingsPath)
		if err != nil {
			return nil, fmt.Errorf("reading settings file: %w", err)
		}
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return nil, fmt.Errorf("parsing settings file %s: %w", settingsPath, err)
		}
	}

	cfg := &Config{
		DatabaseType:    getEnv("DB_TYPE", settings.Database.Type),
		DatabasePath:    getEnv("DB_PATH", settings.Database.Path),
		DatabaseURL:     getEnv("DATABASE_URL", settings.Database.URL),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", settings.Database.MigrationsPath),
		ReportDir:       getEnv("REPORT_DIR", settings.Reports.Dir),
		ReportEmailTo:   getEnv("REPORT_EMAIL_TO", settings.Reports.EmailTo),
		AWSRegion:       getEnv("AWS_REGION", settings.AWS.Region),
		SESFromEmail:    getEnv("SES_FROM_EMAIL", settings.AWS.SESFromEmail),
		SESFromName:     getEnv("SES_FROM_NAME", settings.AWS.SESFromName),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", settings.Generation.AnthropicModel),
		MaxTokens:       getEnvInt("GENERATION_MAX_TOKENS", settings.Generation.MaxTokens),
		Temperature:     settings.Generation.Temperature,
		AuditProfile:    getEnv("AUDIT_PROFILE", settings.Audit.Profile),
		BatchSize:       getEnvInt("BATCH_SIZE", settings.Batch.Size),
		Debug:           getEnvBool("DEBUG", false),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DatabaseType {
	case "sqlite", "postgres", "mysql":
	default:
		return fmt.Errorf("unsupported database type %q", c.DatabaseType)
	}
	if c.DatabaseType == "sqlite" && c.DatabasePath == "" {
		return fmt.Errorf("sqlite requires DB_PATH")
	}
	if c.DatabaseType != "sqlite" && c.DatabaseURL == "" {
		return fmt.Errorf("%s requires DATABASE_URL", c.DatabaseType)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	return nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
