package service

import "errors"

// Error validasi input. Handler memetakan error ini ke HTTP 400.
var (
	ErrInvalidStatus      = errors.New("status tidak valid")
	ErrInvalidCategory    = errors.New("kategori tidak valid")
	ErrInvalidCoordinates = errors.New("koordinat tidak valid")
	ErrDuplicateVote      = errors.New("anda sudah memberikan validasi ini")
)

// ErrInvalidCredentials dipetakan ke HTTP 401.
var ErrInvalidCredentials = errors.New("username atau password salah")
