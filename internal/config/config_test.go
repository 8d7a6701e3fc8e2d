package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "", cfg.DBPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.NotifyTTL)
	assert.Equal(t, 50, cfg.NotifyCap)
	assert.Equal(t, "", cfg.TourCatalog)
}

func TestOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"HASHBOARD_DB":           "/tmp/h.db",
		"HASHBOARD_LOG_LEVEL":    "debug",
		"HASHBOARD_NOTIFY_TTL":   "2s",
		"HASHBOARD_NOTIFY_CAP":   "10",
		"HASHBOARD_TOUR_CATALOG": "tour.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/h.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.NotifyTTL)
	assert.Equal(t, 10, cfg.NotifyCap)
	assert.Equal(t, "tour.yaml", cfg.TourCatalog)
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"bad duration", map[string]string{"HASHBOARD_NOTIFY_TTL": "soon"}},
		{"negative ttl", map[string]string{"HASHBOARD_NOTIFY_TTL": "-1s"}},
		{"zero cap", map[string]string{"HASHBOARD_NOTIFY_CAP": "0"}},
		{"non-numeric cap", map[string]string{"HASHBOARD_NOTIFY_CAP": "many"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.vars)
			assert.Error(t, err)
		})
	}
}
