// Package vehicles provides database operations for the rentable fleet.
//
// # Usage
//
//	repo := vehicles.NewRepository(db)
//	available, err := repo.GetAvailableVehicles()
package vehicles

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/rentals/internal/database"
	"github.com/mrlokans/rentals/internal/entities"
)

var (
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrLicensePlateExists  = errors.New("a vehicle with this license plate already exists")
	ErrInvalidDailyRate    = errors.New("daily rate must be positive")
	ErrMissingVehicleField = errors.New("type, brand and model are required")
)

// Repository handles all vehicle database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new vehicles repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllVehicles returns every vehicle, available or not.
func (r *Repository) GetAllVehicles() ([]entities.Vehicle, error) {
	var vehicles []entities.Vehicle
	err := r.db.Find(&vehicles).Error
	return vehicles, err
}

// GetAvailableVehicles returns vehicles that can currently be booked.
func (r *Repository) GetAvailableVehicles() ([]entities.Vehicle, error) {
	var vehicles []entities.Vehicle
	err := r.db.Where("is_available = ?", true).Find(&vehicles).Error
	return vehicles, err
}

// GetVehicleByID retrieves a vehicle, returning ErrVehicleNotFound when the
// id does not exist.
func (r *Repository) GetVehicleByID(id uint) (*entities.Vehicle, error) {
	var vehicle entities.Vehicle
	err := r.db.First(&vehicle, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return &vehicle, nil
}

// AddVehicle inserts a new vehicle and returns it with the assigned id.
// A license plate collision returns ErrLicensePlateExists and inserts nothing.
func (r *Repository) AddVehicle(vehicle *entities.Vehicle) (*entities.Vehicle, error) {
	if vehicle.Type == "" || vehicle.Brand == "" || vehicle.Model == "" {
		return nil, ErrMissingVehicleField
	}
	if vehicle.DailyRate <= 0 {
		return nil, ErrInvalidDailyRate
	}

	vehicle.IsAvailable = true

	if err := r.db.Create(vehicle).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrLicensePlateExists
		}
		return nil, fmt.Errorf("failed to add vehicle: %w", err)
	}

	return vehicle, nil
}

// SetAvailability updates the availability flag. A missing id returns
// ErrVehicleNotFound instead of silently doing nothing.
func (r *Repository) SetAvailability(vehicleID uint, available bool) error {
	result := r.db.Model(&entities.Vehicle{}).
		Where("id = ?", vehicleID).
		Update("is_available", available)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVehicleNotFound
	}
	return nil
}
