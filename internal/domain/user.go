package domain

import "time"

type User struct {
	ID             string
	Email          string // stored lowercase, unique
	PasswordHash   string // bcrypt; raw passwords are never persisted
	FirstName      string
	LastName       string
	Phone          string
	SavedHotels    []int64 // weak references into the catalog
	PaymentMethods []PaymentMethod
	Reservations   []Reservation
	CreatedAt      time.Time
}

type Profile struct {
	FirstName string
	LastName  string
	Phone     string
}

// PaymentMethod keeps only the card tail; full numbers never reach storage.
type PaymentMethod struct {
	ID      string
	Last4   string
	Holder  string
	Expiry  string // MM/YY
	Default bool
}

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation copies hotel/room fields at booking time so the record
// survives catalog changes.
type Reservation struct {
	ID            string
	HotelID       int64
	HotelName     string
	HotelLocation string
	RoomName      string
	Image         string
	CheckIn       time.Time
	CheckOut      time.Time
	Price         float64
	Status        ReservationStatus
	CreatedAt     time.Time
}

// EffectiveStatus is the status shown to clients: an active stay whose
// check-out is already past reads as completed. The persisted row is not
// touched; listings recompute this on every read.
func (r Reservation) EffectiveStatus(now time.Time) ReservationStatus {
	if r.Status == ReservationActive && r.CheckOut.Before(now) {
		return ReservationCompleted
	}
	return r.Status
}

// Card is transient checkout input; it is validated by the payment
// gateway and never stored whole.
type Card struct {
	Number string
	Holder string
	Expiry string // MM/YY
	CVV    string
}
