package database

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"salonbook/internal/domain"
)

func connect(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Connect(":memory:")
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(db))
	return db
}

// The gorm sqlite driver is configured with DriverName "sqlite", which only
// exists because the CGO-free modernc driver registers it. Connecting and
// pinging proves the registration is wired.
func TestConnectSQLite(t *testing.T) {
	db := connect(t)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}

func TestDoubleBookingIndex(t *testing.T) {
	db := connect(t)
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	appt := func(status domain.AppointmentStatus, client string) *domain.Appointment {
		return &domain.Appointment{
			SalonID:         1,
			StaffID:         1,
			Date:            day,
			StartTime:       "10:00",
			EndTime:         "10:30",
			DurationMinutes: 30,
			Status:          status,
			ClientName:      client,
		}
	}

	require.NoError(t, db.Create(appt(domain.AppointmentPending, "Dana")).Error)

	err := db.Create(appt(domain.AppointmentConfirmed, "Riley")).Error
	require.Error(t, err)
	assert.True(t,
		errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed"),
		"expected a unique violation, got %v", err)

	// Non-occupying statuses fall outside the partial index.
	assert.NoError(t, db.Create(appt(domain.AppointmentCancelled, "Sam")).Error)

	// A different start time on the same day is fine.
	later := appt(domain.AppointmentPending, "Kim")
	later.StartTime, later.EndTime = "11:00", "11:30"
	assert.NoError(t, db.Create(later).Error)
}
