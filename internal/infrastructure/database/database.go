package database

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
	"github.com/tillbook/tillbook-api/internal/config"
	"github.com/tillbook/tillbook-api/internal/domain/entity"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the configured database. The embedded sqlite file is the
// default for counter installs; postgres is for multi-terminal setups.
func New(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "sqlite", "":
		db, err = gorm.Open(sqlite.Open(cfg.Path), gormCfg)
		if err == nil {
			// sqlite serializes writers; a single connection avoids
			// SQLITE_BUSY under concurrent settlement requests.
			if sqlDB, derr := db.DB(); derr == nil {
				sqlDB.SetMaxOpenConns(1)
			}
			db.Exec("PRAGMA foreign_keys = ON")
		}
	case "postgres":
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DSN(),
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		}), gormCfg)
		if err == nil {
			if sqlDB, derr := db.DB(); derr == nil {
				sqlDB.SetMaxIdleConns(10)
				sqlDB.SetMaxOpenConns(100)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Printf("Connected to %s database", cfg.Driver)
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},

		// Catalog
		&entity.MenuItem{},

		// Parties
		&entity.Customer{},

		// Order flow
		&entity.KOT{},
		&entity.KOTItem{},
		&entity.Bill{},

		// Money
		&entity.Expense{},
		&entity.Settlement{},

		// System entities
		&entity.IdempotencyKey{},
		&entity.BusinessSettings{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the admin user and the singleton settings row
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	var settings entity.BusinessSettings
	if err := db.First(&settings).Error; err != nil {
		if err := db.Create(&entity.BusinessSettings{}).Error; err != nil {
			return fmt.Errorf("failed to create default settings: %w", err)
		}
	}

	adminEmail := viper.GetString("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@tillbook.local"
	}
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}

	var admin entity.User
	if err := db.Where("email = ?", adminEmail).First(&admin).Error; err != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		admin = entity.User{
			Name:     "Administrator",
			Email:    adminEmail,
			Password: string(hashed),
			Role:     entity.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		log.Printf("Created default admin user %s", adminEmail)
	}

	log.Println("Default data seeding completed")
	return nil
}
