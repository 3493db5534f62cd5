// Package booking implements the cross-entity booking workflow: read a
// vehicle, price the date range, create the rental and take the vehicle off
// the available pool, all inside one transaction.
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/rentals/internal/entities"
	"github.com/mrlokans/rentals/internal/pricing"
)

var (
	ErrVehicleNotFound    = errors.New("vehicle not found")
	ErrVehicleUnavailable = errors.New("vehicle is not available for booking")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
)

// Result is what a successful booking returns: the created rental and the
// vehicle snapshot it was priced against, for confirmation display.
type Result struct {
	Rental  *entities.Rental
	Vehicle *entities.Vehicle
}

// Service runs the booking workflow.
type Service struct {
	db *gorm.DB
}

// NewService creates a new booking service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// BookVehicle books the vehicle for [start, end] on behalf of userID.
//
// The rental insert and the availability flip commit together or not at all.
// The flip is a conditional update guarded by its affected row count, so when
// two bookings race on the same vehicle exactly one wins and the other gets
// ErrVehicleUnavailable.
func (s *Service) BookVehicle(ctx context.Context, userID, vehicleID uint, start, end time.Time) (*Result, error) {
	if userID == 0 {
		return nil, fmt.Errorf("booking requires an authenticated user")
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}

	var result Result

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vehicle entities.Vehicle
		if err := tx.First(&vehicle, vehicleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVehicleNotFound
			}
			return err
		}
		if !vehicle.IsAvailable {
			return ErrVehicleUnavailable
		}

		totalCost := pricing.Cost(vehicle.DailyRate, start, end)

		// The availability check above is only advisory; this conditional
		// write is what actually serializes competing bookings.
		flip := tx.Model(&entities.Vehicle{}).
			Where("id = ? AND is_available = ?", vehicleID, true).
			Update("is_available", false)
		if flip.Error != nil {
			return flip.Error
		}
		if flip.RowsAffected == 0 {
			return ErrVehicleUnavailable
		}

		rental := entities.Rental{
			UserID:    userID,
			VehicleID: vehicleID,
			StartDate: start,
			EndDate:   end,
			TotalCost: totalCost,
			Status:    entities.RentalStatusPending,
		}
		if err := tx.Create(&rental).Error; err != nil {
			return fmt.Errorf("failed to create rental: %w", err)
		}

		vehicle.IsAvailable = false
		result.Rental = &rental
		result.Vehicle = &vehicle
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}
