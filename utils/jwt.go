package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrJWTSecretMissing dikembalikan jika JWT_SECRET belum dikonfigurasi.
var ErrJWTSecretMissing = errors.New("JWT_SECRET is not configured")

// AdminClaims adalah isi token sesi admin.
type AdminClaims struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// TokenTTL masa berlaku token admin.
const TokenTTL = 24 * time.Hour

// GenerateToken membuat JWT HS256 untuk admin yang berhasil login.
func GenerateToken(secret string, userID uint, username, role string) (string, error) {
	if secret == "" {
		return "", ErrJWTSecretMissing
	}

	now := time.Now()
	claims := AdminClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   strconv.FormatUint(uint64(userID), 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken mem-validasi JWT (signing method HMAC, signature, expired)
// dan mengembalikan claims-nya.
func ValidateToken(secret, tokenString string) (*AdminClaims, error) {
	if secret == "" {
		return nil, ErrJWTSecretMissing
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&AdminClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
