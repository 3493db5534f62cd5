package entities

import (
	"fmt"
	"time"
)

type RentalStatus string

const (
	RentalStatusPending   RentalStatus = "pending"
	RentalStatusCompleted RentalStatus = "completed"
	RentalStatusCancelled RentalStatus = "cancelled"
)

// allowedTransitions is the closed rental status graph. Terminal states have
// no outgoing edges.
var allowedTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusPending:   {RentalStatusCompleted, RentalStatusCancelled},
	RentalStatusCompleted: {},
	RentalStatusCancelled: {},
}

// ValidRentalStatus reports whether s is one of the defined status values.
func ValidRentalStatus(s RentalStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether from -> to is an allowed status change.
func CanTransition(from, to RentalStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a rental in this status accepts no further changes.
func (s RentalStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0 && ValidRentalStatus(s)
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`
	Email        string `gorm:"size:255" json:"email,omitempty"`
	Phone        string `gorm:"size:30" json:"phone,omitempty"`

	FailedLoginCount int        `gorm:"default:0" json:"-"`
	LockedUntil      *time.Time `json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

type Vehicle struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Type         string  `gorm:"size:50;not null" json:"type"` // free-text category, e.g. "SUV"
	Brand        string  `gorm:"size:100;not null" json:"brand"`
	Model        string  `gorm:"size:100;not null" json:"model"`
	Year         int     `json:"year"`
	LicensePlate string  `gorm:"uniqueIndex;size:20" json:"license_plate"`
	DailyRate    float64 `gorm:"not null" json:"daily_rate"`
	IsAvailable  bool    `gorm:"default:true" json:"is_available"`
	ImageURL     string  `gorm:"size:2048" json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

type Rental struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"index;not null" json:"user_id"`
	VehicleID uint         `gorm:"index;not null" json:"vehicle_id"`
	StartDate time.Time    `gorm:"not null" json:"start_date"`
	EndDate   time.Time    `gorm:"not null" json:"end_date"`
	TotalCost float64      `gorm:"not null" json:"total_cost"`
	Status    RentalStatus `gorm:"size:20;default:'pending';index" json:"status"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Vehicle Vehicle `gorm:"foreignKey:VehicleID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Rental) TableName() string {
	return "rentals"
}

// Validate checks the fields a rental row must carry before insertion.
// Date-range and cost validation belong to the booking workflow; this guards
// against rows that reference nothing.
func (r *Rental) Validate() error {
	if r.UserID == 0 {
		return fmt.Errorf("rental requires a user id")
	}
	if r.VehicleID == 0 {
		return fmt.Errorf("rental requires a vehicle id")
	}
	if !ValidRentalStatus(r.Status) {
		return fmt.Errorf("unknown rental status %q", r.Status)
	}
	return nil
}

type Review struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RentalID uint   `gorm:"index;not null" json:"rental_id"`
	Rating   int    `gorm:"not null" json:"rating"` // 1..5
	Comment  string `gorm:"type:text" json:"comment,omitempty"`

	Rental Rental `gorm:"foreignKey:RentalID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
