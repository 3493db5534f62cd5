package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/rentals/internal/database/vehicles"
	"github.com/mrlokans/rentals/internal/entities"
)

// VehicleStore is the narrow interface the vehicles controller needs.
type VehicleStore interface {
	GetAllVehicles() ([]entities.Vehicle, error)
	GetAvailableVehicles() ([]entities.Vehicle, error)
	GetVehicleByID(id uint) (*entities.Vehicle, error)
	AddVehicle(vehicle *entities.Vehicle) (*entities.Vehicle, error)
	SetAvailability(vehicleID uint, available bool) error
}

// InventoryAuditor records fleet changes for the audit trail.
type InventoryAuditor interface {
	LogInventory(userID uint, action string, vehicleID uint, description string)
}

type VehiclesController struct {
	store   VehicleStore
	auditor InventoryAuditor
}

func NewVehiclesController(store VehicleStore, auditor InventoryAuditor) *VehiclesController {
	return &VehiclesController{store: store, auditor: auditor}
}

// GetAllVehicles returns the full fleet, including vehicles currently rented.
func (controller *VehiclesController) GetAllVehicles(c *gin.Context) {
	fleet, err := controller.store.GetAllVehicles()
	if err != nil {
		respondInternalError(c, err, "list vehicles")
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": fleet, "count": len(fleet)})
}

// GetAvailableVehicles returns only vehicles that can be booked right now.
func (controller *VehiclesController) GetAvailableVehicles(c *gin.Context) {
	fleet, err := controller.store.GetAvailableVehicles()
	if err != nil {
		respondInternalError(c, err, "list available vehicles")
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": fleet, "count": len(fleet)})
}

// GetVehicle returns a single vehicle by ID.
func (controller *VehiclesController) GetVehicle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	vehicle, err := controller.store.GetVehicleByID(id)
	if err != nil {
		if errors.Is(err, vehicles.ErrVehicleNotFound) {
			respondNotFound(c, "vehicle")
			return
		}
		respondInternalError(c, err, "get vehicle")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

type addVehicleRequest struct {
	Type         string  `json:"type" binding:"required"`
	Brand        string  `json:"brand" binding:"required"`
	Model        string  `json:"model" binding:"required"`
	Year         int     `json:"year"`
	LicensePlate string  `json:"license_plate" binding:"required"`
	DailyRate    float64 `json:"daily_rate" binding:"required"`
	ImageURL     string  `json:"image_url"`
}

// AddVehicle adds a vehicle to the fleet. Admin only; new vehicles always
// start available.
func (controller *VehiclesController) AddVehicle(c *gin.Context) {
	var req addVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "type, brand, model, license_plate and daily_rate are required")
		return
	}

	vehicle, err := controller.store.AddVehicle(&entities.Vehicle{
		Type:         req.Type,
		Brand:        req.Brand,
		Model:        req.Model,
		Year:         req.Year,
		LicensePlate: req.LicensePlate,
		DailyRate:    req.DailyRate,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, vehicles.ErrLicensePlateExists):
			respondConflict(c, "a vehicle with this license plate already exists")
		case errors.Is(err, vehicles.ErrInvalidDailyRate),
			errors.Is(err, vehicles.ErrMissingVehicleField):
			respondBadRequest(c, err.Error())
		default:
			respondInternalError(c, err, "add vehicle")
		}
		return
	}

	if controller.auditor != nil {
		controller.auditor.LogInventory(GetUserID(c), "add_vehicle", vehicle.ID,
			fmt.Sprintf("%s %s (%s)", vehicle.Brand, vehicle.Model, vehicle.LicensePlate))
	}

	respondCreated(c, vehicle)
}

type setAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" binding:"required"`
}

// SetAvailability force-sets a vehicle's availability. Admin only; the
// booking and return workflows manage the flag themselves, this is for
// maintenance (taking a vehicle out of service and back).
func (controller *VehiclesController) SetAvailability(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req setAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "is_available is required")
		return
	}

	if err := controller.store.SetAvailability(id, *req.IsAvailable); err != nil {
		if errors.Is(err, vehicles.ErrVehicleNotFound) {
			respondNotFound(c, "vehicle")
			return
		}
		respondInternalError(c, err, "set vehicle availability")
		return
	}

	if controller.auditor != nil {
		controller.auditor.LogInventory(GetUserID(c), "set_availability", id,
			fmt.Sprintf("is_available=%t", *req.IsAvailable))
	}

	respondSuccess(c, "vehicle availability updated")
}
