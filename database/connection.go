package database

import (
	"context"
	"fmt"
	"time"

	"safegrowth-backend/app/model"
	"safegrowth-backend/config"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Database menampung koneksi yang dimiliki proses selama aplikasi hidup.
// Mongo bernilai nil jika MONGO_URI tidak diisi (log aktivitas dinonaktifkan).
type Database struct {
	Postgres *gorm.DB
	Mongo    *mongo.Database

	mongoClient *mongo.Client
}

// InitDB membuka pool Postgres, menjalankan migrasi, lalu (opsional) MongoDB.
func InitDB(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*Database, error) {
	pgDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
		Logger: gormLogger.New(log, gormLogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("gagal koneksi ke postgres: %w", err)
	}

	sqlDB, err := pgDB.DB()
	if err != nil {
		return nil, fmt.Errorf("gagal mengambil pool postgres: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Info("Menjalankan migrasi database PostgreSQL...")
	if err := Migrate(pgDB.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("gagal migrasi database: %w", err)
	}

	db := &Database{Postgres: pgDB}

	if cfg.MongoURI == "" {
		log.Info("MONGO_URI kosong, log aktivitas laporan dinonaktifkan")
		return db, nil
	}

	mctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(mctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("gagal koneksi ke mongo: %w", err)
	}
	if err := mongoClient.Ping(mctx, nil); err != nil {
		_ = mongoClient.Disconnect(context.Background())
		return nil, fmt.Errorf("gagal ping mongo: %w", err)
	}

	db.mongoClient = mongoClient
	db.Mongo = mongoClient.Database(cfg.MongoDBName)

	if err := createActivityIndexes(mctx, db.Mongo); err != nil {
		log.WithError(err).Warn("gagal membuat index report_activities")
	}

	log.Info("Berhasil terhubung ke PostgreSQL dan MongoDB")
	return db, nil
}

// Migrate menjalankan AutoMigrate untuk semua tabel.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Report{},
		&model.Validation{},
	)
}

func createActivityIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("report_activities").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "reportId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "action", Value: 1}}},
	})
	return err
}

// Close menutup pool Postgres dan client Mongo.
func (d *Database) Close(ctx context.Context) error {
	if d.mongoClient != nil {
		if err := d.mongoClient.Disconnect(ctx); err != nil {
			return fmt.Errorf("mongo disconnect: %w", err)
		}
	}
	sqlDB, err := d.Postgres.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
