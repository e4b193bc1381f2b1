package sqlite

import (
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"adelanta/internal/domain/entity"
)

func Init(dbPath string) (*gorm.DB, error) {
	if dbPath == "" {
		dbPath = filepath.Join(".", "database.db")
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = Migrate(db)
	if err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate runs the schema migration. Split out of Init so tests can
// run it against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Company{},
		&entity.CompanyPoints{},
		&entity.Employee{},
		&entity.Bank{},
		&entity.BankAccount{},
		&entity.CryptoNetwork{},
		&entity.Wallet{},
		&entity.PointTransaction{},
		&entity.Advance{},
		&entity.AdvanceTax{},
		&entity.AdvanceHistory{},
		&entity.RequestReason{},
		&entity.Benefit{},
		&entity.Connection{},
	)
}
