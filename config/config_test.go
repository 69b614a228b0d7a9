package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vi-racer.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, 30, cfg.RenderRate)
	assert.False(t, cfg.Debug)
	assert.True(t, cfg.Audio.Enabled)
	assert.Equal(t, "", cfg.Track.File)
	assert.Equal(t, 3, cfg.AI.Count)
	assert.Equal(t, 150*time.Millisecond, cfg.HoldTimeout())
	assert.Equal(t, "", cfg.Store.DSN)
	assert.Equal(t, 5*time.Second, cfg.ContentTimeout())
	assert.False(t, cfg.Influx.Enabled)
	assert.Equal(t, "http://localhost:8086", cfg.Influx.URL)
	assert.Equal(t, "race_data", cfg.Influx.Bucket)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, time.Second/30, cfg.RenderInterval())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	path := writeConfig(t, `{
		"tickRate": 120,
		"debug": true,
		"audio": { "enabled": false },
		"ai": { "count": 1 },
		"store": { "dsn": "saved.db" },
		"content": { "footballApiKey": "abc" },
		"influx": { "enabled": true, "org": "garage" },
		"log": { "gelfAddr": "localhost:12201", "level": "debug" }
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, 120, cfg.TickRate)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 1, cfg.AI.Count)
	assert.Equal(t, "saved.db", cfg.Store.DSN)
	assert.Equal(t, "abc", cfg.Content.FootballAPIKey)
	assert.True(t, cfg.Influx.Enabled)
	assert.Equal(t, "garage", cfg.Influx.Org)
	assert.Equal(t, "localhost:12201", cfg.Log.GelfAddr)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched keys keep defaults
	assert.Equal(t, 30, cfg.RenderRate)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.File)
	assert.Equal(t, 60, cfg.TickRate)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.AI.Count)
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, `{ "tickRate": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero tick rate", `{"tickRate": 0}`},
		{"negative ai", `{"ai": {"count": -1}}`},
		{"zero hold", `{"input": {"holdTimeoutMs": 0}}`},
		{"zero render", `{"renderRate": 0}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FOOTBALL_DATA_API_KEY", "from-env")
	t.Setenv("VIRACER_AI_COUNT", "2")

	cfg, err := Load(writeConfig(t, `{"ai": {"count": 3}}`))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Content.FootballAPIKey)
	assert.Equal(t, 2, cfg.AI.Count)
}
