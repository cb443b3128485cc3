package config

import (
	"errors"
	"time"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDatabase opens the relational store and keeps it in DB.
func InitDatabase(s DatabaseSettings) error {
	db, err := OpenDatabase(s)
	if err != nil {
		return err
	}
	if s.AutoMigrate {
		if err := Migrate(db); err != nil {
			return err
		}
	}
	DB = db
	return nil
}

func OpenDatabase(s DatabaseSettings) (*gorm.DB, error) {
	if s.DSN == "" {
		return nil, errors.New("database DSN is not set")
	}

	var dialector gorm.Dialector
	switch s.Driver {
	case "", "postgres":
		dialector = postgres.Open(s.DSN)
	case "mysql":
		dialector = mysql.Open(s.DSN)
	case "sqlite":
		dialector = sqlite.Open(s.DSN)
	default:
		return nil, errors.New("unsupported database driver: " + s.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection Pooling settings
	maxIdle, maxOpen := s.MaxIdle, s.MaxOpen
	if maxIdle <= 0 {
		maxIdle = 10
	}
	if maxOpen <= 0 {
		maxOpen = 100
	}
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// Migrate creates or updates every table the portal uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Employer{},
		&models.Category{},
		&models.JobType{},
		&models.Job{},
		&models.Application{},
		&models.SavedJob{},
		&models.Notification{},
	)
}
