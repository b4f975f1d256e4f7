// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"flexio/config"
	"flexio/internal/database"
	"flexio/internal/domain"
	"flexio/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a per-test in-memory sqlite database with all tables migrated.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewDB(&config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	u := &models.User{Email: email, Name: strings.Split(email, "@")[0], Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateGym(t *testing.T, db *gorm.DB, ownerID uint, lat, lng float64) *models.Gym {
	t.Helper()
	g := &models.Gym{OwnerID: ownerID, Name: "Flex Gym", Latitude: lat, Longitude: lng, GeofenceRadiusMeters: 100}
	require.NoError(t, db.Create(g).Error)
	return g
}

// CreateMembers enrolls n new members in the gym, one day apart starting at start.
func CreateMembers(t *testing.T, db *gorm.DB, gymID uint, n int, start time.Time) []models.Membership {
	t.Helper()
	out := make([]models.Membership, 0, n)
	for i := 0; i < n; i++ {
		u := CreateUser(t, db, fmt.Sprintf("member%d-gym%d@flexio.test", i, gymID), domain.RoleMember)
		m := models.Membership{GymID: gymID, UserID: u.ID, StartDate: start.AddDate(0, 0, i), Active: true}
		require.NoError(t, db.Create(&m).Error)
		out = append(out, m)
	}
	return out
}
