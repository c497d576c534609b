package tsqlschema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), DefaultConfigFile)
	err := os.WriteFile(configPath, []byte(content), 0o644)
	assert.NoError(t, err)

	return configPath
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.NoError(t, err)

	assert.Equal(t, FormatText, config.Output.Format)
	assert.True(t, config.Output.ColorEnabled())
	assert.False(t, config.Parse.IsolateFailures)
	assert.Equal(t, 1, config.Parse.Workers)
	assert.Equal(t, "GO", config.Parse.Separator())
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
output:
  format: yaml
  color: false
parse:
  isolate_failures: true
  workers: 4
`)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)

	assert.Equal(t, FormatYAML, config.Output.Format)
	assert.False(t, config.Output.ColorEnabled())
	assert.True(t, config.Parse.IsolateFailures)
	assert.Equal(t, 4, config.Parse.Workers)
	assert.Equal(t, "GO", config.Parse.Separator())
}

func TestLoadConfig_BatchSeparator(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{"unset", "parse:\n  workers: 2\n", "GO"},
		{"null", "parse:\n  batch_separator:\n", "GO"},
		{"empty disables", "parse:\n  batch_separator: \"\"\n", ""},
		{"custom", "parse:\n  batch_separator: RUN\n", "RUN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfig(writeConfig(t, tt.content))
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, config.Parse.Separator())
		})
	}
}

func TestLoadConfig_StrictMode_UnknownKeys(t *testing.T) {
	configPath := writeConfig(t, `
output:
  format: json
  unknown_key: "should cause error"
`)

	_, err := LoadConfig(configPath)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{
			name:    "invalid format",
			content: "output:\n  format: xml\n",
			message: "invalid output format 'xml'",
		},
		{
			name:    "negative workers",
			content: "parse:\n  workers: -2\n",
			message: "parse.workers must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfigValidation))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadConfig_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TSQLSCHEMA_FORMAT", "json")
	t.Setenv("TSQLSCHEMA_SEPARATOR", "GO")

	configPath := writeConfig(t, `
output:
  format: ${TSQLSCHEMA_FORMAT}
parse:
  batch_separator: $TSQLSCHEMA_SEPARATOR
`)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)
	assert.Equal(t, FormatJSON, config.Output.Format)
	assert.Equal(t, "GO", config.Parse.Separator())
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TSQL_A", "alpha")

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"braced", "${TSQL_A}", "alpha"},
		{"plain", "$TSQL_A", "alpha"},
		{"embedded", "x-${TSQL_A}-y", "x-alpha-y"},
		{"unset", "${TSQL_UNSET_VARIABLE}", ""},
		{"no variables", "text", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expandEnvVars(tt.input))
		})
	}
}
