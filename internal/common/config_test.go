package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "locus.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "en", config.PlacesAPI.LanguageCode)
	assert.Equal(t, 20, config.PlacesAPI.MaxResults)
	assert.Equal(t, 30*time.Second, config.PlacesAPI.RequestTimeout)
	assert.Equal(t, 3, config.Collector.MaxPages)
}

func TestLoadConfigFileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
[logging]
level = "debug"

[places_api]
language_code = "it"
max_results = 10

[collector]
schedule = "0 * * * *"
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "it", config.PlacesAPI.LanguageCode)
	assert.Equal(t, 10, config.PlacesAPI.MaxResults)
	assert.Equal(t, "0 * * * *", config.Collector.Schedule)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "AIzaFromEnv")
	t.Setenv("LOCUS_LOG_LEVEL", "warn")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "AIzaFromEnv", config.PlacesAPI.APIKey)
	assert.Equal(t, "warn", config.Logging.Level)
}

func TestLoadConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad log level", "[logging]\nlevel = \"verbose\"\n"},
		{"max results out of range", "[places_api]\nmax_results = 50\n"},
		{"bad schedule", "[collector]\nschedule = \"not a schedule\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("does-not-exist.toml")
	assert.Error(t, err)
}
