package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/sharpside-app/sharpener-booking/internal/audit"
	"github.com/sharpside-app/sharpener-booking/internal/clock"
	"github.com/sharpside-app/sharpener-booking/internal/config"
	dbpkg "github.com/sharpside-app/sharpener-booking/internal/db"
	infraRepo "github.com/sharpside-app/sharpener-booking/internal/infra/repository"
	"github.com/sharpside-app/sharpener-booking/internal/logger"
	"github.com/sharpside-app/sharpener-booking/internal/middleware"
	"github.com/sharpside-app/sharpener-booking/internal/routes"
	"github.com/sharpside-app/sharpener-booking/internal/sweeper"
	ucBooking "github.com/sharpside-app/sharpener-booking/internal/usecase/booking"
)

func main() {

	l := logger.Init()
	defer l.Sync()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// background auto-completion of elapsed confirmed appointments
	sweepUC := ucBooking.NewSweep(
		infraRepo.NewBookingGormRepository(db),
		audit.NewDispatcher(audit.New(db)),
		clock.SystemClock{},
		time.Duration(cfg.SweepGraceHours)*time.Hour,
	)
	sw := sweeper.New(sweepUC, cfg.SweepSpec)
	if err := sw.Start(); err != nil {
		zap.L().Fatal("failed to start sweeper", zap.Error(err))
	}
	defer sw.Stop()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	zap.L().Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		zap.L().Fatal("failed to start server", zap.Error(err))
	}
}
