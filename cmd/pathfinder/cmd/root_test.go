package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel_DefaultsToInfo(t *testing.T) {
	level, err := parseLogLevel(nil)
	require.NoError(t, err)
	assert.Equal(t, "info", level)
}

func TestParseLogLevel_AcceptsInfoAndDebug(t *testing.T) {
	for _, want := range []string{"info", "debug"} {
		level, err := parseLogLevel([]string{want})
		require.NoError(t, err)
		assert.Equal(t, want, level)
	}
}

func TestParseLogLevel_RejectsUnknownValue(t *testing.T) {
	_, err := parseLogLevel([]string{"verbose"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbose")
}
