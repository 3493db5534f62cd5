package vehicles

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/rentals/internal/database"
	"github.com/mrlokans/rentals/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository) {
	dbPath := filepath.Join(t.TempDir(), "test_vehicles.db")

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db.DB, NewRepository(db.DB)
}

func testVehicle(plate string) *entities.Vehicle {
	return &entities.Vehicle{
		Type:         "SUV",
		Brand:        "BMW",
		Model:        "X5",
		Year:         2021,
		LicensePlate: plate,
		DailyRate:    100,
	}
}

func TestRepository_AddVehicle(t *testing.T) {
	_, repo := setupTestDB(t)

	created, err := repo.AddVehicle(testVehicle("ABC123"))

	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsAvailable)
}

func TestRepository_AddVehicle_DuplicatePlate(t *testing.T) {
	db, repo := setupTestDB(t)

	_, err := repo.AddVehicle(testVehicle("ABC123"))
	require.NoError(t, err)

	dup := testVehicle("ABC123")
	dup.Brand = "Audi"
	_, err = repo.AddVehicle(dup)

	assert.ErrorIs(t, err, ErrLicensePlateExists)

	// The failed insert must not leave a row behind.
	var count int64
	require.NoError(t, db.Model(&entities.Vehicle{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_AddVehicle_Validation(t *testing.T) {
	_, repo := setupTestDB(t)

	v := testVehicle("ZZZ999")
	v.DailyRate = 0
	_, err := repo.AddVehicle(v)
	assert.ErrorIs(t, err, ErrInvalidDailyRate)

	v = testVehicle("ZZZ999")
	v.Brand = ""
	_, err = repo.AddVehicle(v)
	assert.ErrorIs(t, err, ErrMissingVehicleField)
}

func TestRepository_GetAvailableVehicles(t *testing.T) {
	_, repo := setupTestDB(t)

	v1, err := repo.AddVehicle(testVehicle("AAA111"))
	require.NoError(t, err)
	_, err = repo.AddVehicle(testVehicle("BBB222"))
	require.NoError(t, err)

	require.NoError(t, repo.SetAvailability(v1.ID, false))

	available, err := repo.GetAvailableVehicles()
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "BBB222", available[0].LicensePlate)

	all, err := repo.GetAllVehicles()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestRepository_SetAvailability_NotFound(t *testing.T) {
	_, repo := setupTestDB(t)

	err := repo.SetAvailability(999, false)

	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestRepository_GetVehicleByID(t *testing.T) {
	_, repo := setupTestDB(t)

	created, err := repo.AddVehicle(testVehicle("CCC333"))
	require.NoError(t, err)

	found, err := repo.GetVehicleByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "CCC333", found.LicensePlate)

	_, err = repo.GetVehicleByID(12345)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}
