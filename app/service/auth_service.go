package service

import (
	"context"
	"errors"
	"fmt"

	"safegrowth-backend/app/model"
	"safegrowth-backend/app/repository"
	"safegrowth-backend/utils"
)

// LoginResult adalah data admin yang berhasil login beserta token sesinya.
type LoginResult struct {
	User  *model.User
	Token string
}

// AuthService menangani login admin.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}

type authService struct {
	userRepo  repository.UserRepository
	jwtSecret string
}

// NewAuthService menghubungkan Service dengan Repository.
// Jika jwtSecret kosong, login tetap berhasil tetapi tanpa token.
func NewAuthService(userRepo repository.UserRepository, jwtSecret string) AuthService {
	return &authService{userRepo: userRepo, jwtSecret: jwtSecret}
}

// Login mencari admin berdasarkan username lalu membandingkan hash bcrypt.
// User tidak ditemukan dan password salah sama-sama menghasilkan ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindAdminByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find admin: %w", err)
	}

	if user.PasswordHash == nil || utils.ComparePassword(*user.PasswordHash, password) != nil {
		return nil, ErrInvalidCredentials
	}

	result := &LoginResult{User: user}
	if s.jwtSecret == "" {
		return result, nil
	}

	name := ""
	if user.Username != nil {
		name = *user.Username
	}
	token, err := utils.GenerateToken(s.jwtSecret, user.ID, name, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	result.Token = token
	return result, nil
}
