package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCombinedURL(t *testing.T) {
	cfg, err := parseCombined("http://192.168.1.1:7080/?apiKey=XXXXXXXX")
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.1", cfg.Host)
	assert.Equal(t, 7080, cfg.Port)
	assert.Equal(t, "XXXXXXXX", cfg.APIKey)
	assert.False(t, cfg.TLS)
}

func TestParseCombinedURLDefaultPort(t *testing.T) {
	cfg, err := parseCombined("http://nvr.local/?apiKey=abc")
	require.NoError(t, err)
	assert.Equal(t, "nvr.local", cfg.Host)
	assert.Equal(t, 7080, cfg.Port)
}

func TestParseCombinedURLTLS(t *testing.T) {
	cfg, err := parseCombined("https://nvr.local:7443/?apiKey=abc")
	require.NoError(t, err)
	assert.True(t, cfg.TLS)
	assert.Equal(t, 7443, cfg.Port)
}

func TestParseCombinedURLMissingKey(t *testing.T) {
	_, err := parseCombined("http://nvr.local:7080/")
	require.Error(t, err)
}
