package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/civiceye/config"
	"github.com/techagentng/civiceye/services/plate"
)

func TestPrintPlate(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printPlate(&out, "TN 10 AB 1234"))
	assert.Equal(t, "TN10AB1234\n", out.String())
}

func TestPrintPlateLowConfidence(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printPlate(&out, "DL 3 C 123"))
	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	assert.Equal(t, "DL3C123", string(lines[0]))
	assert.Equal(t, plate.LowConfidenceHint, string(lines[1]))
}

func TestPrintPlateRejectsShortText(t *testing.T) {
	var out bytes.Buffer
	err := printPlate(&out, "AB 12")
	assert.ErrorIs(t, err, plate.ErrTooShort)
	assert.Empty(t, out.String())
}

func TestRootRegistersCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "seed", "plate"} {
		assert.True(t, names[want], want)
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("CIVICEYE_JWT_SECRET", "")

	conf, err := loadConfig()
	assert.ErrorIs(t, err, config.ErrMissingJWTSecret)
	assert.Nil(t, conf)
}
