package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	db := dbpkg.NewDB(cfg)

	rdb := cache.NewClient(cfg.RedisAddr)
	slotCache := cache.New(rdb, log)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, slotCache, cfg, log)

	log.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Error("server exited", "err", err)
	}
}
