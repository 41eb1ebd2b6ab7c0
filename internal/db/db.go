package db

import (
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/salaoflow/salon-scheduler/internal/config"
	"github.com/salaoflow/salon-scheduler/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	sqlDB, err := sql.Open("pgx", cfg.DBUrl)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&models.Salon{},
		&models.User{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.BlockedTime{},
		&models.Product{},
		&models.Order{},
		&models.Plan{},
		&models.AuditLog{},
	); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	return db
}
