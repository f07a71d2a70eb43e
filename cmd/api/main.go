package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/config"
	dbpkg "github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/db"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/logging"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()

	logger := logging.New(cfg.Env)
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)
	rdb := dbpkg.NewRedis(cfg)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg, logger)

	logger.Info("server starting", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
