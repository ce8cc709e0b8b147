package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"walkinplus-backend/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A second pool connection would get its own empty :memory: database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ContactProfile{},
		&models.Business{},
		&models.Visit{},
	))
	return db
}

func createBusiness(t *testing.T, db *gorm.DB, ownerID uuid.UUID, name string, active bool) models.Business {
	t.Helper()
	business := models.Business{
		OwnerID:  ownerID,
		Name:     name,
		Location: "Downtown",
		IsActive: active,
	}
	require.NoError(t, db.Create(&business).Error)
	return business
}

func createVisit(t *testing.T, db *gorm.DB, userID uuid.UUID, businessID uint, date, clockIn string) models.Visit {
	t.Helper()
	visit := models.Visit{
		UserID:        userID,
		BusinessID:    businessID,
		CustomerName:  "Jordan Cruz",
		ContactNumber: "5550001111",
		Purpose:       "Checkup",
		WalkinDate:    date,
		ClockIn:       clockIn,
	}
	require.NoError(t, db.Create(&visit).Error)
	return visit
}

func closeVisit(t *testing.T, db *gorm.DB, visitID uint, clockOut string) {
	t.Helper()
	require.NoError(t, db.Model(&models.Visit{}).
		Where("id = ?", visitID).Update("clock_out", clockOut).Error)
}
