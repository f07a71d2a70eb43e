package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/config"
	"github.com/raviprk365/Medical-BookingAppandCheckInApp-sub000/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Clinic{},
		&models.User{},
		&models.Service{},
		&models.Patient{},
		&models.WeeklyWindow{},
		&models.RecurringBreak{},
		&models.DateException{},
		&models.Booking{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Last line of defense against double-booking: only one live booking
	// may occupy a given practitioner/date/start key, whatever the
	// application layer believes.
	if err := db.Exec(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_live_slot
        ON bookings (practitioner_id, date, start_minute)
        WHERE status IN ('confirmed', 'completed')
    `).Error; err != nil {
		log.Fatalf("failed to create booking slot index: %v", err)
	}

	return db
}
