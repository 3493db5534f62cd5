package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/rentals/internal/auth"
	"github.com/mrlokans/rentals/internal/booking"
	"github.com/mrlokans/rentals/internal/database/rentals"
	"github.com/mrlokans/rentals/internal/database/reviews"
	"github.com/mrlokans/rentals/internal/entities"
)

// RentalStore is the narrow interface the rentals controller needs.
type RentalStore interface {
	GetRentalByID(id uint) (*entities.Rental, error)
	GetRentalsForUser(userID uint) ([]rentals.HistoryEntry, error)
	UpdateStatus(rentalID uint, status entities.RentalStatus) error
}

// ReviewStore is the narrow interface for rating finished rentals.
type ReviewStore interface {
	AddReview(rentalID uint, rating int, comment string) (*entities.Review, error)
	GetReviewsForVehicle(vehicleID uint) ([]entities.Review, error)
}

// BookingAuditor records booking lifecycle events for the audit trail.
type BookingAuditor interface {
	LogBooking(userID uint, action string, rentalID uint, description string, err error)
}

type RentalsController struct {
	booker  *booking.Service
	store   RentalStore
	reviews ReviewStore
	auditor BookingAuditor
}

func NewRentalsController(booker *booking.Service, store RentalStore, reviews ReviewStore, auditor BookingAuditor) *RentalsController {
	return &RentalsController{
		booker:  booker,
		store:   store,
		reviews: reviews,
		auditor: auditor,
	}
}

type bookRequest struct {
	VehicleID uint   `json:"vehicle_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// parseDate accepts either a bare date or a full RFC3339 timestamp.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// Book creates a rental for the authenticated user.
func (controller *RentalsController) Book(c *gin.Context) {
	userID := GetUserID(c)

	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "vehicle_id, start_date and end_date are required")
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		respondBadRequest(c, "start_date must be YYYY-MM-DD or RFC3339")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		respondBadRequest(c, "end_date must be YYYY-MM-DD or RFC3339")
		return
	}

	result, err := controller.booker.BookVehicle(c.Request.Context(), userID, req.VehicleID, start, end)
	if err != nil {
		if controller.auditor != nil {
			controller.auditor.LogBooking(userID, "book", 0,
				fmt.Sprintf("Booking vehicle %d rejected", req.VehicleID), err)
		}
		switch {
		case errors.Is(err, booking.ErrVehicleNotFound):
			respondNotFound(c, "vehicle")
		case errors.Is(err, booking.ErrVehicleUnavailable):
			respondConflict(c, "vehicle is not available for booking")
		case errors.Is(err, booking.ErrInvalidDateRange):
			respondBadRequest(c, "end date must not be before start date")
		default:
			respondInternalError(c, err, "book vehicle")
		}
		return
	}

	if controller.auditor != nil {
		controller.auditor.LogBooking(userID, "book", result.Rental.ID,
			fmt.Sprintf("Booked %s %s (%s)", result.Vehicle.Brand, result.Vehicle.Model, result.Vehicle.LicensePlate), nil)
	}

	respondCreated(c, gin.H{
		"rental":  result.Rental,
		"vehicle": result.Vehicle,
	})
}

// History returns the authenticated user's rentals, newest first, each joined
// with the vehicle it was for.
func (controller *RentalsController) History(c *gin.Context) {
	userID := GetUserID(c)

	history, err := controller.store.GetRentalsForUser(userID)
	if err != nil {
		respondInternalError(c, err, "rental history")
		return
	}

	c.JSON(http.StatusOK, gin.H{"rentals": history, "count": len(history)})
}

// Cancel moves the caller's pending rental to cancelled and frees the
// vehicle. Only rentals that have not started yet can be cancelled.
func (controller *RentalsController) Cancel(c *gin.Context) {
	controller.transition(c, entities.RentalStatusCancelled, "cancel", "rental cancelled")
}

// Return completes the caller's pending rental and frees the vehicle.
func (controller *RentalsController) Return(c *gin.Context) {
	controller.transition(c, entities.RentalStatusCompleted, "return", "rental completed")
}

// transition applies a terminal status change after checking the rental
// belongs to the caller. Admins may close any rental.
func (controller *RentalsController) transition(c *gin.Context, status entities.RentalStatus, action, message string) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rental, err := controller.store.GetRentalByID(id)
	if err != nil {
		if errors.Is(err, rentals.ErrRentalNotFound) {
			respondNotFound(c, "rental")
			return
		}
		respondInternalError(c, err, "get rental")
		return
	}

	if rental.UserID != GetUserID(c) && !auth.IsAdmin(c) {
		respondNotFound(c, "rental")
		return
	}

	if err := controller.store.UpdateStatus(id, status); err != nil {
		if controller.auditor != nil {
			controller.auditor.LogBooking(GetUserID(c), action, id, "", err)
		}
		switch {
		case errors.Is(err, rentals.ErrRentalNotFound):
			respondNotFound(c, "rental")
		case errors.Is(err, rentals.ErrRentalStarted):
			respondConflict(c, "rental has already started; return it instead")
		case errors.Is(err, rentals.ErrInvalidTransition):
			respondConflict(c, "rental is already closed")
		default:
			respondInternalError(c, err, "update rental status")
		}
		return
	}

	if controller.auditor != nil {
		controller.auditor.LogBooking(GetUserID(c), action, id, message, nil)
	}

	respondSuccess(c, message)
}

type reviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// Review rates a completed rental.
func (controller *RentalsController) Review(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rental, err := controller.store.GetRentalByID(id)
	if err != nil {
		if errors.Is(err, rentals.ErrRentalNotFound) {
			respondNotFound(c, "rental")
			return
		}
		respondInternalError(c, err, "get rental")
		return
	}
	if rental.UserID != GetUserID(c) && !auth.IsAdmin(c) {
		respondNotFound(c, "rental")
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "rating is required")
		return
	}

	review, err := controller.reviews.AddReview(id, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrInvalidRating):
			respondBadRequest(c, "rating must be between 1 and 5")
		case errors.Is(err, reviews.ErrRentalNotFinished):
			respondConflict(c, "only completed rentals can be reviewed")
		case errors.Is(err, reviews.ErrRentalNotFound):
			respondNotFound(c, "rental")
		default:
			respondInternalError(c, err, "add review")
		}
		return
	}

	respondCreated(c, review)
}

// VehicleReviews lists reviews left for a vehicle across all its rentals.
func (controller *RentalsController) VehicleReviews(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	vehicleReviews, err := controller.reviews.GetReviewsForVehicle(id)
	if err != nil {
		respondInternalError(c, err, "list vehicle reviews")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": vehicleReviews, "count": len(vehicleReviews)})
}
