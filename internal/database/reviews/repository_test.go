package reviews

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/rentals/internal/database"
	"github.com/mrlokans/rentals/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository) {
	dbPath := filepath.Join(t.TempDir(), "test_reviews.db")

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db.DB, NewRepository(db.DB)
}

func createRental(t *testing.T, db *gorm.DB, status entities.RentalStatus) *entities.Rental {
	user := &entities.User{Username: "alice-" + string(status), PasswordHash: "h"}
	require.NoError(t, db.Create(user).Error)

	vehicle := &entities.Vehicle{Type: "SUV", Brand: "BMW", Model: "X5", LicensePlate: "PL-" + string(status), DailyRate: 100}
	require.NoError(t, db.Create(vehicle).Error)

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	rental := &entities.Rental{
		UserID:    user.ID,
		VehicleID: vehicle.ID,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 2),
		TotalCost: 200,
		Status:    status,
	}
	require.NoError(t, db.Create(rental).Error)
	return rental
}

func TestRepository_AddReview(t *testing.T) {
	db, repo := setupTestDB(t)
	rental := createRental(t, db, entities.RentalStatusCompleted)

	review, err := repo.AddReview(rental.ID, 4, "smooth ride")

	require.NoError(t, err)
	assert.NotZero(t, review.ID)
	assert.Equal(t, 4, review.Rating)
}

func TestRepository_AddReview_Guards(t *testing.T) {
	db, repo := setupTestDB(t)
	pending := createRental(t, db, entities.RentalStatusPending)

	_, err := repo.AddReview(pending.ID, 4, "")
	assert.ErrorIs(t, err, ErrRentalNotFinished)

	_, err = repo.AddReview(999, 4, "")
	assert.ErrorIs(t, err, ErrRentalNotFound)

	completed := createRental(t, db, entities.RentalStatusCompleted)
	_, err = repo.AddReview(completed.ID, 6, "")
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestRepository_GetReviewsForVehicle(t *testing.T) {
	db, repo := setupTestDB(t)
	rental := createRental(t, db, entities.RentalStatusCompleted)

	_, err := repo.AddReview(rental.ID, 5, "great")
	require.NoError(t, err)

	reviews, err := repo.GetReviewsForVehicle(rental.VehicleID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "great", reviews[0].Comment)

	reviews, err = repo.GetReviewsForVehicle(999)
	require.NoError(t, err)
	assert.Empty(t, reviews)
}
