package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the CGO-free "sqlite" database/sql driver

	"salonbook/internal/domain"
)

func Connect(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		cfg,
	)
}

// Migrate creates the schema and the partial unique index that backs up the
// per-staff booking lock. The index only covers occupying statuses, so a
// cancelled appointment frees its slot for rebooking at the same start time.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.Salon{},
		&domain.Staff{},
		&domain.Service{},
		&domain.Appointment{},
		&domain.Exclusion{},
	); err != nil {
		return err
	}

	return db.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_no_double_booking
ON appointments (staff_id, date, start_time)
WHERE status IN ('pending', 'confirmed', 'in_progress')
`).Error
}
