package sqlite

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"healthlog/internal/domain/entity"
	"healthlog/internal/pkg/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens the SQLite database at path and migrates the schema.
// The caller owns the returned handle and must release it with CloseDB.
func NewDB(path string, sqlLogLevel string, appLog logger.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Configure GORM logger
	newLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  parseSQLLogLevel(sqlLogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	dsn := fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	appLog.Info(fmt.Sprintf("Successfully connected to database: %s", path))

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	appLog.Info("Database schema migration completed.")
	return db, nil
}

func parseSQLLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// AutoMigrate automatically migrates the database schema for the defined entities.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Meal{},
		&entity.MealFood{},
		&entity.MealTag{},
		&entity.Symptom{},
		&entity.BowelMovement{},
		&entity.Medication{},
		&entity.OtherEntry{},
		&entity.BloodPressure{},
		&entity.Cholesterol{},
		&entity.Weight{},
		&entity.SpO2{},
		&entity.BloodGlucose{},
		&entity.MedicationSet{},
		&entity.MedicationSetItem{},
		&entity.MedicationSetLog{},
		&entity.MedicationSetReminder{},
	)
	if err != nil {
		return fmt.Errorf("schema migration failed: %w", err)
	}
	return nil
}

// CloseDB closes the database connection if it's open.
func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying *sql.DB: %w", err)
	}
	return sqlDB.Close()
}
