package database

import (
	"fmt"
	"log"

	"french_assessment_backend/internal/config"
	"french_assessment_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig, mode string) (*gorm.DB, error) {
	charset := cfg.Charset
	if charset == "" {
		charset = "utf8mb4"
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		charset,
		cfg.ParseTime,
	)

	logLevel := logger.Warn
	if mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")
	return db, nil
}

// Migrate creates the tables and seeds the statement and card catalogs from
// catalogPath when they are empty.
func Migrate(db *gorm.DB, catalogPath string) error {
	err := db.AutoMigrate(
		&model.ProficiencyStatement{},
		&model.ContentCard{},
		&model.Submission{},
	)
	if err != nil {
		return err
	}

	log.Println("Database migration completed")

	var count int64
	db.Model(&model.ProficiencyStatement{}).Count(&count)
	var cardCount int64
	db.Model(&model.ContentCard{}).Count(&cardCount)
	if count > 0 && cardCount > 0 {
		return nil
	}

	catalog, err := LoadCatalog(catalogPath)
	if err != nil {
		return err
	}

	if count == 0 {
		if err := db.CreateInBatches(catalog.AllStatements(), 100).Error; err != nil {
			return fmt.Errorf("seed statements: %w", err)
		}
	}
	if cardCount == 0 {
		if err := db.CreateInBatches(catalog.AllCards(), 100).Error; err != nil {
			return fmt.Errorf("seed cards: %w", err)
		}
	}

	log.Println("Catalog seeded from", catalogPath)
	return nil
}

// Reseed replaces the statement and card catalogs with the file's content.
// Stored submissions are left alone.
func Reseed(db *gorm.DB, catalogPath string) error {
	catalog, err := LoadCatalog(catalogPath)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("1 = 1").Delete(&model.ProficiencyStatement{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("1 = 1").Delete(&model.ContentCard{}).Error; err != nil {
			return err
		}
		if err := tx.CreateInBatches(catalog.AllStatements(), 100).Error; err != nil {
			return err
		}
		return tx.CreateInBatches(catalog.AllCards(), 100).Error
	})
}
