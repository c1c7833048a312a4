package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	token, err := GenerateToken("asha@example.com", "s3cret", "ADMIN", 42, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateAndGetClaims(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", claims["email"])
	assert.Equal(t, "ADMIN", claims["role"])

	id, err := UserID(claims)
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)
}

func TestValidateRejects(t *testing.T) {
	token, err := GenerateToken("a@example.com", "s3cret", "CITIZEN", 1, time.Hour)
	require.NoError(t, err)
	_, err = ValidateAndGetClaims(token, "other")
	assert.Error(t, err)

	expired, err := GenerateToken("a@example.com", "s3cret", "CITIZEN", 1, -time.Minute)
	require.NoError(t, err)
	_, err = ValidateAndGetClaims(expired, "s3cret")
	assert.Error(t, err)

	_, err = GenerateToken("a@example.com", "", "CITIZEN", 1, time.Hour)
	assert.ErrorIs(t, err, ErrMissingKey)

	_, err = UserID(map[string]interface{}{"id": "1"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
