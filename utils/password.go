package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword meng-hash password admin dengan bcrypt (cost default).
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword membandingkan hash bcrypt dengan password mentah.
// Perbandingan di dalam bcrypt berjalan constant-time.
func ComparePassword(hashed, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}
