package http

import (
	"github.com/mrlokans/rentals/internal/auth"
	"github.com/mrlokans/rentals/internal/booking"
	"github.com/mrlokans/rentals/internal/config"
	"github.com/mrlokans/rentals/internal/database"
)

// Auditor is the audit surface the HTTP layer writes to: authentication,
// booking lifecycle and fleet changes.
type Auditor interface {
	LogAuth(userID uint, action string, success bool)
	BookingAuditor
	InventoryAuditor
}

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router. This replaces a long parameter list
// in NewRouter for better maintainability.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database

	// Domain stores
	VehicleStore VehicleStore
	RentalStore  RentalStore
	ReviewStore  ReviewStore

	// Audit trail (optional)
	Auditor Auditor

	// Booking workflow
	Booker *booking.Service

	// Authentication
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	AuthConfig     config.Auth
	CSRFSecret     []byte

	// Application info
	Version string
}
