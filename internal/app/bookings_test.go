package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"stayhub/internal/app"
	"stayhub/internal/domain"
)

type fakeGateway struct {
	calls int
	fail  error
}

func (f *fakeGateway) Authorize(ctx context.Context, c domain.Card, amount float64) (string, error) {
	f.calls++
	if f.fail != nil {
		return "", f.fail
	}
	return "ref-1", nil
}

func bookingFixture() (*fakeUserRepo, *fakeCatalogRepo, *fakeGateway, *app.BookingService, string) {
	users := newFakeUserRepo()
	catalog := &fakeCatalogRepo{hotels: []domain.Hotel{
		{
			ID: 1, Name: "Alpha", Location: "Paris, France", PricePerNight: 200,
			Rating: 4.9, Category: domain.CategoryLuxury,
			Image: "hotel.jpg",
			Rooms: []domain.Room{
				{ID: 11, HotelID: 1, Name: "Double", Price: 100, Capacity: 2, Available: true, Image: "room.jpg"},
				{ID: 12, HotelID: 1, Name: "Closed", Price: 90, Capacity: 2, Available: false},
			},
		},
	}}
	gw := &fakeGateway{}
	svc := app.NewBookingService(users, catalog, gw)

	u := domain.User{ID: "u1", Email: "a@b.com"}
	_ = users.CreateUser(context.Background(), u)
	return users, catalog, gw, svc, u.ID
}

func validCard() domain.Card {
	return domain.Card{Number: "4111111111111111", Holder: "A B", Expiry: "12/30", CVV: "123"}
}

func TestCheckout_CreatesActiveReservation(t *testing.T) {
	users, _, gw, svc, uid := bookingFixture()
	ctx := context.Background()

	in := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	res, err := svc.Checkout(ctx, uid, app.BookingRequest{
		HotelID: 1, RoomID: 11, CheckIn: in, CheckOut: in.AddDate(0, 0, 3), Card: validCard(),
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if res.Status != domain.ReservationActive {
		t.Fatalf("expected active, got %s", res.Status)
	}
	if res.HotelName != "Alpha" || res.HotelLocation != "Paris, France" || res.RoomName != "Double" {
		t.Fatalf("denormalized fields wrong: %+v", res)
	}
	if res.Price != 300 { // 3 nights * 100
		t.Fatalf("expected price 300, got %v", res.Price)
	}
	if gw.calls != 1 {
		t.Fatalf("gateway should be called once, got %d", gw.calls)
	}
	u, _ := users.GetUser(ctx, uid)
	if len(u.Reservations) != 1 || u.Reservations[0].ID != res.ID {
		t.Fatalf("reservation not persisted: %+v", u.Reservations)
	}
}

func TestCheckout_GatewayRejectionPersistsNothing(t *testing.T) {
	users, _, gw, svc, uid := bookingFixture()
	gw.fail = domain.ErrCardExpired
	ctx := context.Background()

	in := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Checkout(ctx, uid, app.BookingRequest{
		HotelID: 1, RoomID: 11, CheckIn: in, CheckOut: in.AddDate(0, 0, 1), Card: validCard(),
	})
	if !errors.Is(err, domain.ErrCardExpired) {
		t.Fatalf("expected CARD_EXPIRED, got %v", err)
	}
	u, _ := users.GetUser(ctx, uid)
	if len(u.Reservations) != 0 {
		t.Fatalf("nothing should be persisted on rejection: %+v", u.Reservations)
	}
}

func TestCheckout_UnavailableRoom(t *testing.T) {
	_, _, gw, svc, uid := bookingFixture()
	ctx := context.Background()

	in := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Checkout(ctx, uid, app.BookingRequest{
		HotelID: 1, RoomID: 12, CheckIn: in, CheckOut: in.AddDate(0, 0, 1), Card: validCard(),
	})
	if !errors.Is(err, domain.ErrRoomUnavailable) {
		t.Fatalf("expected ROOM_UNAVAILABLE, got %v", err)
	}
	if gw.calls != 0 {
		t.Fatalf("gateway must not be called for unavailable room")
	}
}

func TestCancel_Idempotent(t *testing.T) {
	users, _, _, svc, uid := bookingFixture()
	ctx := context.Background()

	in := time.Now().UTC().AddDate(0, 0, 7)
	res, err := svc.Checkout(ctx, uid, app.BookingRequest{
		HotelID: 1, RoomID: 11, CheckIn: in, CheckOut: in.AddDate(0, 0, 2), Card: validCard(),
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	got, err := svc.Cancel(ctx, uid, res.ID)
	if err != nil || got.Status != domain.ReservationCancelled {
		t.Fatalf("cancel: %v %+v", err, got)
	}
	// second cancel is a no-op, not an error
	got, err = svc.Cancel(ctx, uid, res.ID)
	if err != nil || got.Status != domain.ReservationCancelled {
		t.Fatalf("second cancel: %v %+v", err, got)
	}
	u, _ := users.GetUser(ctx, uid)
	if u.Reservations[0].Status != domain.ReservationCancelled {
		t.Fatalf("persisted status: %s", u.Reservations[0].Status)
	}
}

func TestList_DerivesCompletedWithoutPersisting(t *testing.T) {
	users, _, _, svc, uid := bookingFixture()
	ctx := context.Background()

	past := domain.Reservation{
		ID: "r-past", HotelID: 1, HotelName: "Alpha", RoomName: "Double",
		CheckIn:  time.Now().UTC().AddDate(0, 0, -10),
		CheckOut: time.Now().UTC().AddDate(0, 0, -7),
		Status:   domain.ReservationActive,
	}
	if err := users.AddReservation(ctx, uid, past); err != nil {
		t.Fatalf("seed: %v", err)
	}

	rs, err := svc.List(ctx, uid)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if rs[0].Status != domain.ReservationCompleted {
		t.Fatalf("expected displayed completed, got %s", rs[0].Status)
	}
	u, _ := users.GetUser(ctx, uid)
	if u.Reservations[0].Status != domain.ReservationActive {
		t.Fatalf("persisted status must stay active, got %s", u.Reservations[0].Status)
	}
}

func TestCancel_CompletedStayRejected(t *testing.T) {
	users, _, _, svc, uid := bookingFixture()
	ctx := context.Background()

	past := domain.Reservation{
		ID:       "r-past",
		CheckIn:  time.Now().UTC().AddDate(0, 0, -10),
		CheckOut: time.Now().UTC().AddDate(0, 0, -7),
		Status:   domain.ReservationActive,
	}
	_ = users.AddReservation(ctx, uid, past)

	if _, err := svc.Cancel(ctx, uid, "r-past"); !errors.Is(err, domain.ErrReservationCompleted) {
		t.Fatalf("expected RESERVATION_COMPLETED, got %v", err)
	}
}
