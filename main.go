package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"safegrowth-backend/app/repository"
	"safegrowth-backend/app/service"
	"safegrowth-backend/cache"
	"safegrowth-backend/config"
	"safegrowth-backend/database"
	"safegrowth-backend/middleware"
	"safegrowth-backend/routes"
	"safegrowth-backend/storage"
	"safegrowth-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

func main() {

	// =================================================================
	// LOAD CONFIG + LOGGER
	// =================================================================
	cfg := config.Load()
	log := utils.NewLogger("safegrowth-api", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// =================================================================
	// INIT DB (POSTGRES + MONGODB opsional)
	// =================================================================
	initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	dbConn, err := database.InitDB(initCtx, cfg, log)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("Gagal koneksi database")
	}

	// =================================================================
	// SEED ADMIN
	// =================================================================
	if err := database.SeedAdmin(dbConn.Postgres, cfg.AdminUsername, cfg.AdminPassword, log); err != nil {
		log.WithError(err).Fatal("Gagal seed admin")
	}

	// =================================================================
	// REDIS (opsional)
	// =================================================================
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		redisClient, err = cache.NewRedisClient(pingCtx, cfg.RedisAddr, cfg.RedisPassword)
		cancel()
		if err != nil {
			log.WithError(err).Warn("Redis tidak tersedia, cache laporan dinonaktifkan")
			redisClient = nil
		}
	}
	reportCache := cache.NewReportCache(redisClient, cfg.CacheTTL)

	// =================================================================
	// MEDIA STORE
	// =================================================================
	media, err := storage.NewMediaStore(cfg.UploadDir, cfg.MaxUploadBytes())
	if err != nil {
		log.WithError(err).Fatal("Gagal menyiapkan folder upload")
	}

	// =================================================================
	// REPOSITORIES
	// =================================================================
	userRepo := repository.NewUserRepository(dbConn.Postgres)
	reportRepo := repository.NewReportRepository(dbConn.Postgres)
	validationRepo := repository.NewValidationRepository(dbConn.Postgres)
	activityRepo := repository.NewActivityRepository(dbConn.Mongo)

	// =================================================================
	// SERVICES
	// =================================================================
	identityService := service.NewIdentityService(userRepo)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	reportService := service.NewReportService(
		reportRepo,
		validationRepo,
		activityRepo,
		identityService,
		media,
		reportCache,
		cfg.BaseURL,
		log,
	)
	validationService := service.NewValidationService(validationRepo, activityRepo, reportCache, log)

	// =================================================================
	// METRICS
	// =================================================================
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if sqlDB, err := dbConn.Postgres.DB(); err == nil {
		reg.MustRegister(collectors.NewDBStatsCollector(sqlDB, "postgres"))
	}
	metrics := middleware.NewMetrics(reg)

	// =================================================================
	// ROUTER
	// =================================================================
	if err := middleware.RegisterValidators(); err != nil {
		log.WithError(err).Fatal("Gagal mendaftarkan validator")
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadBytes()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), metrics.Middleware(), middleware.CORS(cfg.CORSOrigins))

	r.Static("/"+media.Prefix(), media.Root())
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	var adminGuard []gin.HandlerFunc
	if cfg.RequireAdminToken {
		if cfg.JWTSecret == "" {
			log.Fatal("REQUIRE_ADMIN_TOKEN=true membutuhkan JWT_SECRET")
		}
		adminGuard = append(adminGuard, middleware.AdminOnly(cfg.JWTSecret))
	}

	routes.RegisterRoutes(r, routes.Handlers{
		Report:     routes.NewReportHandler(reportService, cfg.MaxUploadBytes()+1<<20, log),
		Validation: routes.NewValidationHandler(validationService, log),
		Auth:       routes.NewAuthHandler(authService, log),
	}, adminGuard...)

	// =================================================================
	// START SERVER
	// =================================================================
	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.AppPort).Info("Server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Gagal menjalankan server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown gagal")
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := dbConn.Close(shutdownCtx); err != nil {
		log.WithError(err).Error("Gagal menutup koneksi database")
	}
}
