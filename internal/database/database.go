// Package database owns the SQLite store lifecycle: opening the file,
// migrating the schema and seeding first-run data. Repositories in the
// subpackages are the only other code allowed to touch storage, and all of
// them are constructed from the handle opened here.
package database

import (
	"errors"
	"fmt"
	"log"

	"database/sql"

	sqlite3 "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/rentals/internal/entities"
)

// ErrNotInitialized is returned when a handle is used before NewDatabase
// completed successfully.
var ErrNotInitialized = errors.New("database not initialized: call NewDatabase first")

// defaultFleet is the sample inventory inserted on first run when the
// vehicles table is empty.
var defaultFleet = []entities.Vehicle{
	{Type: "SUV", Brand: "BMW", Model: "X5", Year: 2021, LicensePlate: "ABC123", DailyRate: 100, IsAvailable: true, ImageURL: "https://via.placeholder.com/150"},
	{Type: "Sedan", Brand: "Toyota", Model: "Camry", Year: 2020, LicensePlate: "XYZ456", DailyRate: 80, IsAvailable: true, ImageURL: "https://via.placeholder.com/150"},
	{Type: "SUV", Brand: "Toyota", Model: "Highlander", Year: 2021, LicensePlate: "DEF789", DailyRate: 90, IsAvailable: true, ImageURL: "https://via.placeholder.com/150"},
	{Type: "Sedan", Brand: "Honda", Model: "Accord", Year: 2020, LicensePlate: "GHI101", DailyRate: 75, IsAvailable: true, ImageURL: "https://via.placeholder.com/150"},
}

// DefaultFleet returns a copy of the seed inventory.
func DefaultFleet() []entities.Vehicle {
	fleet := make([]entities.Vehicle, len(defaultFleet))
	copy(fleet, defaultFleet)
	return fleet
}

type Database struct {
	DB *gorm.DB
}

// NewDatabase opens or creates the store and migrates the schema. Failure
// here is fatal to application startup: no partially-initialized store is
// usable.
func NewDatabase(dbPath string) (*Database, error) {
	// WAL keeps the single writer from blocking readers; the busy timeout
	// makes overlapping booking transactions queue instead of failing.
	// Transactions begin IMMEDIATE so a booking holds the write lock from its
	// first read and competing bookings queue rather than hitting a stale
	// snapshot on upgrade.
	db, err := gorm.Open(sqlite.Open(dbPath+"?_journal=WAL&_busy_timeout=5000&_txlock=immediate"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Vehicle{},
		&entities.Rental{},
		&entities.Review{},
		&entities.AuditEvent{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.SQLDB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SQLDB exposes the underlying *sql.DB, used by the session store.
func (d *Database) SQLDB() (*sql.DB, error) {
	if d == nil || d.DB == nil {
		return nil, ErrNotInitialized
	}
	return d.DB.DB()
}

// Seed inserts first-run data. It is idempotent: the admin account is created
// only when no admin user exists, and the sample fleet only when the vehicles
// table is empty. The admin password must already be hashed.
func (d *Database) Seed(adminUsername, adminPasswordHash string) error {
	if d == nil || d.DB == nil {
		return ErrNotInitialized
	}

	var adminCount int64
	if err := d.DB.Model(&entities.User{}).Where("is_admin = ?", true).Count(&adminCount).Error; err != nil {
		return fmt.Errorf("failed to count admin users: %w", err)
	}
	if adminCount == 0 {
		admin := entities.User{
			Username:     adminUsername,
			PasswordHash: adminPasswordHash,
			IsAdmin:      true,
		}
		if err := d.DB.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
		log.Printf("Seeded admin user %q", adminUsername)
	}

	var vehicleCount int64
	if err := d.DB.Model(&entities.Vehicle{}).Count(&vehicleCount).Error; err != nil {
		return fmt.Errorf("failed to count vehicles: %w", err)
	}
	if vehicleCount == 0 {
		fleet := DefaultFleet()
		if err := d.DB.Create(&fleet).Error; err != nil {
			return fmt.Errorf("failed to seed vehicles: %w", err)
		}
		log.Printf("Seeded %d sample vehicles", len(fleet))
	}

	return nil
}

// IsUniqueViolation reports whether err is a UNIQUE constraint failure.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
