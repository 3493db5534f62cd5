// Package reviews provides database operations for rental reviews.
//
// Reviews may only be attached to completed rentals.
package reviews

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/rentals/internal/entities"
)

var (
	ErrRentalNotFound    = errors.New("rental not found")
	ErrRentalNotFinished = errors.New("only completed rentals can be reviewed")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
)

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddReview attaches a review to a completed rental.
func (r *Repository) AddReview(rentalID uint, rating int, comment string) (*entities.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	var rental entities.Rental
	if err := r.db.First(&rental, rentalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}
	if rental.Status != entities.RentalStatusCompleted {
		return nil, ErrRentalNotFinished
	}

	review := &entities.Review{
		RentalID: rentalID,
		Rating:   rating,
		Comment:  comment,
	}
	if err := r.db.Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// GetReviewsForVehicle returns every review written for rentals of the given
// vehicle, newest first.
func (r *Repository) GetReviewsForVehicle(vehicleID uint) ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.db.
		Joins("JOIN rentals ON reviews.rental_id = rentals.id").
		Where("rentals.vehicle_id = ?", vehicleID).
		Order("reviews.created_at DESC").
		Find(&reviews).Error
	return reviews, err
}
