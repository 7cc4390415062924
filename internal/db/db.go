package db

import (
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Active appointments for one professional must never overlap. The
// columns are timestamptz (gorm's mapping for time.Time), so the range
// expression must be tstzrange.
const noOverlapConstraint = `
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            professional_id WITH =,
            tstzrange(start_time, end_time) WITH &&
        )
        WHERE (status <> 'cancelled')
    `

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
		&models.Tenant{},
		&models.Professional{},
		&models.Service{},
		&models.BusinessHours{},
		&models.AvailabilityRule{},
		&models.Appointment{},
		&models.RewardAccount{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE tenants
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, timezone.DefaultTimezone)

	// Postgres rejects overlapping active appointments even if a code
	// path bypasses the transactional validation.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}

	if err := db.Exec(noOverlapConstraint).Error; err != nil && !isDuplicateObject(err) {
		log.Fatalf("failed to create no-overlap constraint: %v", err)
	}

	return db
}

// isDuplicateObject reports SQLSTATE 42710, raised by the constraint
// DDL on every start after the first.
func isDuplicateObject(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42710"
}
