package shared

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"stayhub/internal/domain"
)

// Demo account credentials; the seeder creates this user once, in the
// same table regular registrations land in.
const (
	DemoEmail    = "test@test.com"
	DemoPassword = "123456"
)

// DemoSavedHotels are pre-populated on the demo account.
var DemoSavedHotels = []int64{1, 3, 5}

// SeedDemoUser creates the demo account with its saved hotels. Re-runs
// are no-ops: an existing account is left untouched and created=false is
// returned.
func SeedDemoUser(ctx context.Context, users domain.UserRepository, bcryptCost int) (created bool, err error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcryptCost)
	if err != nil {
		return false, err
	}
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        DemoEmail,
		PasswordHash: string(hash),
		FirstName:    "Test",
		LastName:     "User",
		CreatedAt:    time.Now().UTC(),
	}
	err = users.CreateUser(ctx, u)
	if errors.Is(err, domain.ErrEmailExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := users.SaveSavedHotels(ctx, u.ID, DemoSavedHotels); err != nil {
		return false, err
	}
	return true, nil
}

// Catalog is the static hotel reference set. It is seeded into MySQL by
// cmd/seeder and never mutated afterwards.
var Catalog = []domain.Hotel{
	{
		ID: 1, Name: "Grand Meridian Palace", Location: "Paris, France",
		PricePerNight: 320, Rating: 4.9, Category: domain.CategoryLuxury,
		Amenities: []string{"wifi", "pool", "spa", "gym", "restaurant"},
		Image:     "https://images.stayhub.dev/hotels/1.jpg",
		Description: "Belle Époque landmark a short walk from the Champs-Élysées.",
		Rooms: []domain.Room{
			{ID: 101, HotelID: 1, Name: "Classic Double", Price: 320, Capacity: 2, Amenities: []string{"wifi", "minibar"}, Available: true, Image: "https://images.stayhub.dev/rooms/101.jpg"},
			{ID: 102, HotelID: 1, Name: "Executive Suite", Price: 540, Capacity: 3, Amenities: []string{"wifi", "minibar", "balcony"}, Available: true, Image: "https://images.stayhub.dev/rooms/102.jpg"},
			{ID: 103, HotelID: 1, Name: "Royal Suite", Price: 890, Capacity: 4, Amenities: []string{"wifi", "minibar", "balcony", "jacuzzi"}, Available: false, Image: "https://images.stayhub.dev/rooms/103.jpg"},
		},
	},
	{
		ID: 2, Name: "Harbourline Business Hotel", Location: "Hamburg, Germany",
		PricePerNight: 140, Rating: 4.2, Category: domain.CategoryBusiness,
		Amenities: []string{"wifi", "gym", "parking", "restaurant"},
		Image:     "https://images.stayhub.dev/hotels/2.jpg",
		Description: "Glass-front tower on the Elbe with conference floors.",
		Rooms: []domain.Room{
			{ID: 201, HotelID: 2, Name: "Standard Queen", Price: 140, Capacity: 2, Amenities: []string{"wifi", "desk"}, Available: true, Image: "https://images.stayhub.dev/rooms/201.jpg"},
			{ID: 202, HotelID: 2, Name: "Business King", Price: 185, Capacity: 2, Amenities: []string{"wifi", "desk", "minibar"}, Available: true, Image: "https://images.stayhub.dev/rooms/202.jpg"},
		},
	},
	{
		ID: 3, Name: "Azure Bay Resort", Location: "Santorini, Greece",
		PricePerNight: 260, Rating: 4.7, Category: domain.CategoryResort,
		Amenities: []string{"wifi", "pool", "spa", "beach", "restaurant"},
		Image:     "https://images.stayhub.dev/hotels/3.jpg",
		Description: "Cliffside whitewashed resort overlooking the caldera.",
		Rooms: []domain.Room{
			{ID: 301, HotelID: 3, Name: "Garden View Double", Price: 260, Capacity: 2, Amenities: []string{"wifi", "terrace"}, Available: true, Image: "https://images.stayhub.dev/rooms/301.jpg"},
			{ID: 302, HotelID: 3, Name: "Caldera Suite", Price: 420, Capacity: 2, Amenities: []string{"wifi", "terrace", "private pool"}, Available: true, Image: "https://images.stayhub.dev/rooms/302.jpg"},
			{ID: 303, HotelID: 3, Name: "Family Villa", Price: 510, Capacity: 5, Amenities: []string{"wifi", "terrace", "kitchenette"}, Available: true, Image: "https://images.stayhub.dev/rooms/303.jpg"},
		},
	},
	{
		ID: 4, Name: "The Inkwell", Location: "London, United Kingdom",
		PricePerNight: 210, Rating: 4.5, Category: domain.CategoryBoutique,
		Amenities: []string{"wifi", "bar", "restaurant"},
		Image:     "https://images.stayhub.dev/hotels/4.jpg",
		Description: "Converted Victorian printworks in Shoreditch.",
		Rooms: []domain.Room{
			{ID: 401, HotelID: 4, Name: "Compact Double", Price: 210, Capacity: 2, Amenities: []string{"wifi"}, Available: true, Image: "https://images.stayhub.dev/rooms/401.jpg"},
			{ID: 402, HotelID: 4, Name: "Loft Room", Price: 290, Capacity: 2, Amenities: []string{"wifi", "skylight"}, Available: true, Image: "https://images.stayhub.dev/rooms/402.jpg"},
		},
	},
	{
		ID: 5, Name: "Sakura Garden Hotel", Location: "Kyoto, Japan",
		PricePerNight: 190, Rating: 4.6, Category: domain.CategoryBoutique,
		Amenities: []string{"wifi", "spa", "garden", "restaurant"},
		Image:     "https://images.stayhub.dev/hotels/5.jpg",
		Description: "Machiya-style rooms around a private moss garden.",
		Rooms: []domain.Room{
			{ID: 501, HotelID: 5, Name: "Tatami Twin", Price: 190, Capacity: 2, Amenities: []string{"wifi", "tea set"}, Available: true, Image: "https://images.stayhub.dev/rooms/501.jpg"},
			{ID: 502, HotelID: 5, Name: "Garden Suite", Price: 310, Capacity: 3, Amenities: []string{"wifi", "tea set", "private bath"}, Available: true, Image: "https://images.stayhub.dev/rooms/502.jpg"},
		},
	},
	{
		ID: 6, Name: "Copper Canyon Lodge", Location: "Sedona, United States",
		PricePerNight: 175, Rating: 4.0, Category: domain.CategoryResort,
		Amenities: []string{"wifi", "pool", "parking", "hiking"},
		Image:     "https://images.stayhub.dev/hotels/6.jpg",
		Description: "Red-rock views from every adobe terrace.",
		Rooms: []domain.Room{
			{ID: 601, HotelID: 6, Name: "Canyon Double", Price: 175, Capacity: 2, Amenities: []string{"wifi", "terrace"}, Available: true, Image: "https://images.stayhub.dev/rooms/601.jpg"},
			{ID: 602, HotelID: 6, Name: "Stargazer Cabin", Price: 240, Capacity: 4, Amenities: []string{"wifi", "terrace", "firepit"}, Available: true, Image: "https://images.stayhub.dev/rooms/602.jpg"},
		},
	},
	{
		ID: 7, Name: "Marina Vista Towers", Location: "Dubai, United Arab Emirates",
		PricePerNight: 380, Rating: 4.8, Category: domain.CategoryLuxury,
		Amenities: []string{"wifi", "pool", "spa", "gym", "beach", "restaurant"},
		Image:     "https://images.stayhub.dev/hotels/7.jpg",
		Description: "Fifty-ninth-floor infinity pool over the marina.",
		Rooms: []domain.Room{
			{ID: 701, HotelID: 7, Name: "Deluxe King", Price: 380, Capacity: 2, Amenities: []string{"wifi", "minibar"}, Available: true, Image: "https://images.stayhub.dev/rooms/701.jpg"},
			{ID: 702, HotelID: 7, Name: "Panorama Suite", Price: 650, Capacity: 3, Amenities: []string{"wifi", "minibar", "lounge access"}, Available: true, Image: "https://images.stayhub.dev/rooms/702.jpg"},
		},
	},
	{
		ID: 8, Name: "Altstadt Pension Eder", Location: "Vienna, Austria",
		PricePerNight: 95, Rating: 3.8, Category: domain.CategoryBusiness,
		Amenities: []string{"wifi", "parking"},
		Image:     "https://images.stayhub.dev/hotels/8.jpg",
		Description: "Family-run rooms two tram stops from the Ring.",
		Rooms: []domain.Room{
			{ID: 801, HotelID: 8, Name: "Single", Price: 95, Capacity: 1, Amenities: []string{"wifi"}, Available: true, Image: "https://images.stayhub.dev/rooms/801.jpg"},
			{ID: 802, HotelID: 8, Name: "Twin", Price: 120, Capacity: 2, Amenities: []string{"wifi"}, Available: true, Image: "https://images.stayhub.dev/rooms/802.jpg"},
		},
	},
}
