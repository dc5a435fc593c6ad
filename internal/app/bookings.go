package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"stayhub/internal/domain"
)

// BookingService drives the reservation lifecycle. The payment gateway is
// the sequencing gate between room selection and reservation creation:
// nothing is persisted until the authorization comes back.
type BookingService struct {
	users   domain.UserRepository
	catalog domain.CatalogReader
	gateway domain.PaymentGateway
	now     func() time.Time
}

func NewBookingService(u domain.UserRepository, c domain.CatalogReader, g domain.PaymentGateway) *BookingService {
	return &BookingService{users: u, catalog: c, gateway: g, now: time.Now}
}

type BookingRequest struct {
	HotelID  int64
	RoomID   int64
	CheckIn  time.Time
	CheckOut time.Time
	Card     domain.Card
}

// Checkout authorizes the card and, on approval, appends a new active
// reservation to the user's record, denormalizing the hotel and room
// fields it displays.
func (s *BookingService) Checkout(ctx context.Context, userID string, req BookingRequest) (domain.Reservation, error) {
	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return domain.Reservation{}, err
	}
	h, err := s.catalog.GetHotel(ctx, req.HotelID)
	if err != nil {
		return domain.Reservation{}, err
	}
	var room *domain.Room
	for i := range h.Rooms {
		if h.Rooms[i].ID == req.RoomID {
			room = &h.Rooms[i]
			break
		}
	}
	if room == nil {
		return domain.Reservation{}, domain.ErrNotFound
	}
	if !room.Available {
		return domain.Reservation{}, domain.ErrRoomUnavailable
	}

	price := room.Price * float64(nights(req.CheckIn, req.CheckOut))
	if _, err := s.gateway.Authorize(ctx, req.Card, price); err != nil {
		return domain.Reservation{}, err
	}

	r := domain.Reservation{
		ID:            uuid.NewString(),
		HotelID:       h.ID,
		HotelName:     h.Name,
		HotelLocation: h.Location,
		RoomName:      room.Name,
		Image:         room.Image,
		CheckIn:       req.CheckIn,
		CheckOut:      req.CheckOut,
		Price:         price,
		Status:        domain.ReservationActive,
		CreatedAt:     s.now().UTC(),
	}
	if r.Image == "" {
		r.Image = h.Image
	}
	if err := s.users.AddReservation(ctx, userID, r); err != nil {
		return domain.Reservation{}, err
	}
	return r, nil
}

// List returns the user's reservations with display status derived for
// past stays; persisted rows keep whatever status they already had.
func (s *BookingService) List(ctx context.Context, userID string) ([]domain.Reservation, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]domain.Reservation, len(u.Reservations))
	for i, r := range u.Reservations {
		r.Status = r.EffectiveStatus(now)
		out[i] = r
	}
	return out, nil
}

// Cancel moves an active reservation to cancelled. Cancelling an already
// cancelled reservation is a no-op; a stay that has effectively completed
// cannot be cancelled.
func (s *BookingService) Cancel(ctx context.Context, userID, reservationID string) (domain.Reservation, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return domain.Reservation{}, err
	}
	var res *domain.Reservation
	for i := range u.Reservations {
		if u.Reservations[i].ID == reservationID {
			res = &u.Reservations[i]
			break
		}
	}
	if res == nil {
		return domain.Reservation{}, domain.ErrNotFound
	}
	switch res.EffectiveStatus(s.now()) {
	case domain.ReservationCancelled:
		return *res, nil // idempotent
	case domain.ReservationCompleted:
		return domain.Reservation{}, domain.ErrReservationCompleted
	}
	if err := s.users.UpdateReservationStatus(ctx, userID, reservationID, domain.ReservationCancelled); err != nil {
		return domain.Reservation{}, err
	}
	res.Status = domain.ReservationCancelled
	return *res, nil
}

// nights rounds partial days up and books at least one night.
func nights(in, out time.Time) int {
	n := int(out.Sub(in).Hours() / 24)
	if out.Sub(in) > time.Duration(n)*24*time.Hour {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}
