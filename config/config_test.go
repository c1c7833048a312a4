package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("CIVICEYE_JWT_SECRET", "s3cret")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.False(t, c.UsesPostgres())
	assert.Equal(t, "civicEye_user", c.SessionSlot)
	assert.Equal(t, "https://api.ocr.space/parse/image", c.OCREndpoint)
	assert.Equal(t, 24*time.Hour, c.TokenTTL)
	assert.Equal(t, "s3cret", c.JWTSecret)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GIN_MODE", "release")
	t.Setenv("CIVICEYE_DB_DRIVER", "postgres")
	t.Setenv("CIVICEYE_OCR_TIMEOUT", "5s")
	t.Setenv("CIVICEYE_REPORTS_PER_HOUR", "3")
	t.Setenv("CIVICEYE_JWT_SECRET", "s3cret")

	c, err := Load()
	require.NoError(t, err)

	assert.True(t, c.UsesPostgres())
	assert.Equal(t, 5*time.Second, c.OCRTimeout)
	assert.Equal(t, 3, c.ReportsPerHour)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("GIN_MODE", "release")

	t.Setenv("CIVICEYE_JWT_SECRET", "")
	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)

	t.Setenv("CIVICEYE_JWT_SECRET", "   ")
	_, err = Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)
}
