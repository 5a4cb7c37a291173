package database

import (
	"log"

	"github.com/eventlify/booking-engine/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Event{},
		&models.Booking{},
		&models.Transaction{},
		&models.Payment{},
		&models.Ticket{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// One ticket per booking, ever. Concurrent issuance races resolve
	// against this index rather than creating a duplicate.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_ticket_booking
		ON tickets (booking_id)
	`)
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_ticket_number
		ON tickets (ticket_number)
	`)

	return db
}
