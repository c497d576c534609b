package tsqlschema

import (
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/shibukawa/tsqlschema/tokenizer"
)

// DefaultConfigFile is the configuration file looked up by the CLI
const DefaultConfigFile = "tsqlschema.yaml"

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config represents the tsqlschema configuration
type Config struct {
	Output OutputConfig `yaml:"output"`
	Parse  ParseConfig  `yaml:"parse"`
}

// OutputConfig controls how extracted metadata is rendered
type OutputConfig struct {
	Format string `yaml:"format"`
	Color  *bool  `yaml:"color"` // Pointer to distinguish between unset and false
}

// ColorEnabled returns true unless color is explicitly disabled
func (o *OutputConfig) ColorEnabled() bool {
	return o.Color == nil || *o.Color
}

// ParseConfig controls the statement parsing pipeline
type ParseConfig struct {
	IsolateFailures bool    `yaml:"isolate_failures"`
	Workers         int     `yaml:"workers"`
	BatchSeparator  *string `yaml:"batch_separator"` // Pointer so that "" disables batch splitting
}

// Separator returns the batch separator. An empty string disables it.
func (p *ParseConfig) Separator() string {
	if p.BatchSeparator == nil {
		return tokenizer.DefaultBatchSeparator
	}

	return *p.BatchSeparator
}

// LoadConfig loads configuration from the specified file
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	// Return default configuration if file doesn't exist
	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML with strict mode to detect unknown fields
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&config)

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

// validateConfig validates the configuration for common errors and inconsistencies
func validateConfig(config *Config) error {
	validFormats := map[string]bool{
		FormatText: true,
		FormatJSON: true,
		FormatYAML: true,
	}
	if config.Output.Format != "" && !validFormats[config.Output.Format] {
		return fmt.Errorf("%w: invalid output format '%s': must be one of text, json, yaml", ErrConfigValidation, config.Output.Format)
	}

	if config.Parse.Workers < 0 {
		return fmt.Errorf("%w: parse.workers must not be negative: %d", ErrConfigValidation, config.Parse.Workers)
	}

	return nil
}

func getDefaultConfig() *Config {
	config := &Config{}
	applyDefaults(config)

	return config
}

// applyDefaults fills in values the configuration file left unset
func applyDefaults(config *Config) {
	if config.Output.Format == "" {
		config.Output.Format = FormatText
	}

	if config.Parse.Workers == 0 {
		config.Parse.Workers = 1
	}

	if config.Parse.BatchSeparator == nil {
		separator := tokenizer.DefaultBatchSeparator
		config.Parse.BatchSeparator = &separator
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

var (
	bracedEnvPattern = regexp.MustCompile(`\$\{([^}]+)\}`)
	plainEnvPattern  = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return plainEnvPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

func expandConfigEnvVars(config *Config) {
	config.Output.Format = expandEnvVars(config.Output.Format)
	if config.Parse.BatchSeparator != nil {
		separator := expandEnvVars(*config.Parse.BatchSeparator)
		config.Parse.BatchSeparator = &separator
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
