package database

import (
	"safegrowth-backend/app/model"
	"safegrowth-backend/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedAdmin membuat akun admin awal dari ADMIN_USERNAME / ADMIN_PASSWORD
// jika belum ada satu pun user dengan role admin. Password disimpan sebagai hash bcrypt.
func SeedAdmin(db *gorm.DB, username, password string, log *logrus.Logger) error {
	if username == "" || password == "" {
		log.Info("[SEEDER] ADMIN_USERNAME/ADMIN_PASSWORD kosong, skip seeding admin")
		return nil
	}

	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("[SEEDER] Admin sudah ada, skip seeding admin")
		return nil
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		Role:         model.RoleAdmin,
		Username:     &username,
		PasswordHash: &hash,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.WithField("username", username).Info("[SEEDER] Berhasil seed akun admin")
	return nil
}
