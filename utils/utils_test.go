package utils

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", hash)

	assert.NoError(t, ComparePassword(hash, "rahasia123"))
	assert.Error(t, ComparePassword(hash, "salah"))
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken("s3cret", 7, "admin", "admin")
	require.NoError(t, err)

	claims, err := ValidateToken("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken("s3cret", 1, "admin", "admin")
	require.NoError(t, err)

	_, err = ValidateToken("other", token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestToken_MissingSecret(t *testing.T) {
	_, err := GenerateToken("", 1, "admin", "admin")
	assert.ErrorIs(t, err, ErrJWTSecretMissing)

	_, err = ValidateToken("", "x.y.z")
	assert.ErrorIs(t, err, ErrJWTSecretMissing)
}

func TestNewLogger_JSONWithServiceField(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "safegrowth", "debug")

	log.WithField("report_id", 3).Info("laporan dibuat")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "safegrowth", entry["service"])
	assert.Equal(t, "laporan dibuat", entry["message"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 3, entry["report_id"])
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, "safegrowth", "warn")

	log.Info("tidak tampil")
	assert.Zero(t, buf.Len())
}
