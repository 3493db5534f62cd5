// Package rentals provides database operations for booking records and their
// status lifecycle.
//
// A rental starts as pending and ends as completed or cancelled; both
// terminal transitions hand the vehicle back to the available pool in the
// same transaction, so a rental row and its vehicle's flag never disagree.
package rentals

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/rentals/internal/entities"
)

var (
	ErrRentalNotFound    = errors.New("rental not found")
	ErrInvalidStatus     = errors.New("unknown rental status")
	ErrInvalidTransition = errors.New("rental status transition not allowed")
	ErrRentalStarted     = errors.New("rental has already started")
)

// HistoryEntry is a rental joined with the vehicle columns the history view
// needs.
type HistoryEntry struct {
	entities.Rental
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	LicensePlate string `json:"license_plate"`
}

// Repository handles all rental database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new rentals repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateRental inserts a rental row. The caller must have validated the date
// range and computed the total cost; this operation computes neither.
func (r *Repository) CreateRental(rental *entities.Rental) (*entities.Rental, error) {
	if rental.Status == "" {
		rental.Status = entities.RentalStatusPending
	}
	if err := rental.Validate(); err != nil {
		return nil, err
	}

	if err := r.db.Create(rental).Error; err != nil {
		return nil, fmt.Errorf("failed to create rental: %w", err)
	}
	return rental, nil
}

// GetRentalByID retrieves a single rental.
func (r *Repository) GetRentalByID(id uint) (*entities.Rental, error) {
	var rental entities.Rental
	err := r.db.First(&rental, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}
	return &rental, nil
}

// GetRentalsForUser returns the user's rentals joined with vehicle brand,
// model and license plate, newest first.
func (r *Repository) GetRentalsForUser(userID uint) ([]HistoryEntry, error) {
	var history []HistoryEntry
	err := r.db.Model(&entities.Rental{}).
		Select("rentals.*, vehicles.brand, vehicles.model, vehicles.license_plate").
		Joins("JOIN vehicles ON rentals.vehicle_id = vehicles.id").
		Where("rentals.user_id = ?", userID).
		Order("rentals.created_at DESC").
		Scan(&history).Error
	return history, err
}

// UpdateStatus transitions a rental to the given status. Only transitions in
// the closed status graph are allowed; cancellation is rejected once the
// rental period has begun, and moving to a terminal status makes the vehicle
// available again, atomically with the status write.
func (r *Repository) UpdateStatus(rentalID uint, status entities.RentalStatus) error {
	if !entities.ValidRentalStatus(status) {
		return ErrInvalidStatus
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var rental entities.Rental
		if err := tx.First(&rental, rentalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRentalNotFound
			}
			return err
		}

		if !entities.CanTransition(rental.Status, status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, rental.Status, status)
		}

		if status == entities.RentalStatusCancelled && !time.Now().Before(rental.StartDate) {
			return ErrRentalStarted
		}

		if err := tx.Model(&rental).Update("status", status).Error; err != nil {
			return err
		}

		if status.IsTerminal() {
			if err := tx.Model(&entities.Vehicle{}).
				Where("id = ?", rental.VehicleID).
				Update("is_available", true).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// CountExpired returns how many pending rentals have an end date before now.
func (r *Repository) CountExpired(now time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Rental{}).
		Where("status = ? AND end_date < ?", entities.RentalStatusPending, now).
		Count(&count).Error
	return count, err
}

// CompleteExpired finishes every pending rental whose end date has passed and
// returns the vehicles to the available pool. Returns the number of rentals
// completed. Each status flip and its availability restore commit together.
func (r *Repository) CompleteExpired(now time.Time) (int64, error) {
	var completed int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var expired []entities.Rental
		if err := tx.Where("status = ? AND end_date < ?", entities.RentalStatusPending, now).
			Find(&expired).Error; err != nil {
			return err
		}
		if len(expired) == 0 {
			return nil
		}

		ids := make([]uint, 0, len(expired))
		vehicleIDs := make([]uint, 0, len(expired))
		for _, rental := range expired {
			ids = append(ids, rental.ID)
			vehicleIDs = append(vehicleIDs, rental.VehicleID)
		}

		if err := tx.Model(&entities.Rental{}).
			Where("id IN ?", ids).
			Update("status", entities.RentalStatusCompleted).Error; err != nil {
			return err
		}

		if err := tx.Model(&entities.Vehicle{}).
			Where("id IN ?", vehicleIDs).
			Update("is_available", true).Error; err != nil {
			return err
		}

		completed = int64(len(ids))
		return nil
	})

	return completed, err
}
