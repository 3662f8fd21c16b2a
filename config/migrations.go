package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"p9e.in/ascomp/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "02092024_create_asset_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Site{}, &models.Projector{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("projectors", "sites")
			},
		},
		{
			ID: "02092024_create_service_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.DTR{}, &models.RMA{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("rmas", "dtrs")
			},
		},
		{
			ID: "16092024_create_ascomp_reports",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ASCOMPReport{})
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable("ascomp_reports")
			},
		},
	})
	return m.Migrate()
}
