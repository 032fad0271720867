package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := ParseFlags([]string{"-f", "events.txt"})
	require.NoError(t, err)
	assert.Equal(t, "events.txt", cfg.EventsFile)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestParseFlagsOverrides(t *testing.T) {
	cfg, err := ParseFlags([]string{"-f", "events.txt", "-p", "9000", "-t", "30"})
	require.NoError(t, err)
	assert.Equal(t, uint16(9000), cfg.Port)
	assert.Equal(t, 30, cfg.Timeout)
}

func TestParseFlagsMissingEventsFile(t *testing.T) {
	_, err := ParseFlags([]string{})
	assert.Error(t, err)
}

func TestParseFlagsTimeoutOutOfRange(t *testing.T) {
	tests := [][]string{
		{"-f", "events.txt", "-t", "0"},
		{"-f", "events.txt", "-t", "86401"},
		{"-f", "events.txt", "-t", "-1"},
	}
	for _, args := range tests {
		_, err := ParseFlags(args)
		assert.Errorf(t, err, "ParseFlags(%v) expected error, got none", args)
	}
}

func TestParseFlagsPortAnyUint16(t *testing.T) {
	cfg, err := ParseFlags([]string{"-f", "events.txt", "-p", "0"})
	require.NoError(t, err)
	assert.Equal(t, uint16(0), cfg.Port)

	cfg, err = ParseFlags([]string{"-f", "events.txt", "-p", "65535"})
	require.NoError(t, err)
	assert.Equal(t, uint16(65535), cfg.Port)
}
