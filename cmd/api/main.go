package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/salaoflow/salon-scheduler/internal/clock"
	"github.com/salaoflow/salon-scheduler/internal/config"
	dbpkg "github.com/salaoflow/salon-scheduler/internal/db"
	"github.com/salaoflow/salon-scheduler/internal/logger"
	"github.com/salaoflow/salon-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	clock.Configure(cfg.Timezone)

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db := dbpkg.NewDB(cfg, log)

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	r := gin.Default()
	routes.RegisterRoutes(r, db, rdb, cfg, log)

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
