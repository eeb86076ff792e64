package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/saloncore/salon-scheduler/internal/config"
	"github.com/saloncore/salon-scheduler/internal/models"
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
		&models.Salon{},
		&models.User{},
		&models.Employee{},
		&models.Service{},
		&models.EmployeeService{},
		&models.WorkingHours{},
		&models.LeaveDay{},
		&models.Customer{},
		&models.Appointment{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE salons
        SET timezone = 'UTC'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// Commit-time backstop for concurrent bookings: no two non-cancelled
	// appointments of the same employee may hold overlapping intervals.
	// tstzrange is half-open by default, so back-to-back rows pass.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}
	if err := db.Exec(`
        DO $$ BEGIN
            ALTER TABLE appointments
                ADD CONSTRAINT appointments_no_overlap
                EXCLUDE USING gist (
                    employee_id WITH =,
                    tstzrange(start_time, end_time) WITH &&
                )
                WHERE (status <> 'cancelled' AND employee_id IS NOT NULL);
        EXCEPTION
            WHEN duplicate_table THEN NULL;
            WHEN duplicate_object THEN NULL;
        END $$;
    `).Error; err != nil {
		log.Fatalf("failed to create appointments_no_overlap constraint: %v", err)
	}

	return db
}
