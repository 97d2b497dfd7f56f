package repository

import (
	"context"
	"errors"

	"safegrowth-backend/app/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound dikembalikan jika baris yang dicari tidak ada.
var ErrNotFound = errors.New("record not found")

// UserRepository mendefinisikan kontrak operasi database untuk entity User.
type UserRepository interface {
	// FindByAnonymousID mencari user pelapor berdasarkan anonymous_id perangkat.
	FindByAnonymousID(ctx context.Context, anonymousID string) (*model.User, error)

	// CreateIfAbsent meng-insert user dengan ON CONFLICT (anonymous_id) DO NOTHING.
	// created = false berarti baris sudah dibuat oleh request lain.
	CreateIfAbsent(ctx context.Context, user *model.User) (created bool, err error)

	// FindAdminByUsername mencari akun role admin berdasarkan username.
	FindAdminByUsername(ctx context.Context, username string) (*model.User, error)
}

// userRepository adalah implementasi konkret UserRepository berbasis GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository membuat instance baru userRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db}
}

func (r *userRepository) FindByAnonymousID(ctx context.Context, anonymousID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("anonymous_id = ?", anonymousID).
		First(&user).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func (r *userRepository) CreateIfAbsent(ctx context.Context, user *model.User) (bool, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "anonymous_id"}},
			DoNothing: true,
		}).
		Create(user)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *userRepository) FindAdminByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("username = ? AND role = ?", username, model.RoleAdmin).
		First(&user).Error
	if err != nil {
		return nil, translateNotFound(err)
	}
	return &user, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
