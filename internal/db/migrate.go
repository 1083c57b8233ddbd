package db

import (
	"fmt"

	"github.com/brandbridge/bridgeboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate creates or updates the schema and seeds reference data.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	if errMigrate := conn.AutoMigrate(
		&models.User{},
		&models.SectionType{},
		&models.Bridge{},
		&models.SectionGroup{},
		&models.Section{},
		&models.Color{},
		&models.Icon{},
		&models.IconConverted{},
		&models.Image{},
		&models.ImageConverted{},
		&models.FontFamily{},
		&models.FontVariant{},
		&models.Font{},
		&models.Setting{},
	); errMigrate != nil {
		return fmt.Errorf("db: auto migrate: %w", errMigrate)
	}
	return SeedSectionTypes(conn)
}

// SeedSectionTypes inserts the known section types, leaving existing rows untouched.
func SeedSectionTypes(conn *gorm.DB) error {
	rows := make([]models.SectionType, 0, len(models.SectionTypeNames))
	for _, name := range models.SectionTypeNames {
		rows = append(rows, models.SectionType{Name: name})
	}
	if errCreate := conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&rows).Error; errCreate != nil {
		return fmt.Errorf("db: seed section types: %w", errCreate)
	}
	return nil
}
