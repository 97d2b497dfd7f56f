package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config menampung seluruh pengaturan aplikasi yang dibaca dari environment / .env.
type Config struct {
	AppPort string
	BaseURL string

	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBMaxOpenConns int
	DBMaxIdleConns int

	MongoURI    string
	MongoDBName string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	UploadDir   string
	MaxUploadMB int64

	JWTSecret         string
	RequireAdminToken bool
	AdminUsername     string
	AdminPassword     string

	LogLevel    string
	CORSOrigins []string
}

// Load membaca .env (jika ada) lalu environment variable melalui viper.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env tidak ditemukan, menggunakan environment default")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_PORT", "3000")
	v.SetDefault("BASE_URL", "http://localhost:3000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "safegrowth")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("MONGO_DB_NAME", "safegrowth")
	v.SetDefault("CACHE_TTL", "5s")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("MAX_UPLOAD_MB", 5)
	v.SetDefault("REQUIRE_ADMIN_TOKEN", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ORIGINS", "*")

	// DB_PASS dipakai oleh deployment lama, DB_PASSWORD oleh yang baru.
	dbPassword := v.GetString("DB_PASSWORD")
	if dbPassword == "" {
		dbPassword = v.GetString("DB_PASS")
	}

	return &Config{
		AppPort:           v.GetString("APP_PORT"),
		BaseURL:           strings.TrimRight(v.GetString("BASE_URL"), "/"),
		DBHost:            v.GetString("DB_HOST"),
		DBPort:            v.GetString("DB_PORT"),
		DBUser:            v.GetString("DB_USER"),
		DBPassword:        dbPassword,
		DBName:            v.GetString("DB_NAME"),
		DBSSLMode:         v.GetString("DB_SSLMODE"),
		DBMaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
		DBMaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
		MongoURI:          v.GetString("MONGO_URI"),
		MongoDBName:       v.GetString("MONGO_DB_NAME"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		CacheTTL:          v.GetDuration("CACHE_TTL"),
		UploadDir:         v.GetString("UPLOAD_DIR"),
		MaxUploadMB:       v.GetInt64("MAX_UPLOAD_MB"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		RequireAdminToken: v.GetBool("REQUIRE_ADMIN_TOKEN"),
		AdminUsername:     v.GetString("ADMIN_USERNAME"),
		AdminPassword:     v.GetString("ADMIN_PASSWORD"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		CORSOrigins:       splitList(v.GetString("CORS_ORIGINS")),
	}
}

// PostgresDSN membentuk DSN untuk driver postgres (format key=value).
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Asia/Jakarta",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

// MaxUploadBytes mengembalikan batas ukuran upload dalam byte.
func (c *Config) MaxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 5 << 20
	}
	return c.MaxUploadMB << 20
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
