package domain

import (
	"context"
	"time"
)

type CatalogReader interface {
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	ListHotels(ctx context.Context) ([]Hotel, error)
}

type CatalogRepository interface {
	CatalogReader
	// Seed path
	UpsertHotel(ctx context.Context, h Hotel) error
}

type UserRepository interface {
	// Write paths
	CreateUser(ctx context.Context, u User) error // ErrEmailExists on duplicate email
	UpdateProfile(ctx context.Context, id string, p Profile) error
	SaveSavedHotels(ctx context.Context, id string, hotelIDs []int64) error
	SavePaymentMethods(ctx context.Context, id string, pms []PaymentMethod) error
	AddReservation(ctx context.Context, id string, r Reservation) error
	UpdateReservationStatus(ctx context.Context, id, reservationID string, st ReservationStatus) error

	// Read paths
	GetUser(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// SessionStore maps opaque bearer tokens to user ids.
type SessionStore interface {
	Create(ctx context.Context, userID string, ttl time.Duration) (string, error)
	Resolve(ctx context.Context, token string) (string, error) // ErrNoSession on unknown token
	Delete(ctx context.Context, token string) error
}

// PaymentGateway is the seam where a real processor would plug in; the
// bundled implementation only simulates an authorization.
type PaymentGateway interface {
	Authorize(ctx context.Context, c Card, amount float64) (ref string, err error)
}
