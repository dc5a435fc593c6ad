package domain

import "time"

type Category string

const (
	CategoryLuxury   Category = "luxury"
	CategoryBusiness Category = "business"
	CategoryResort   Category = "resort"
	CategoryBoutique Category = "boutique"
)

// Hotel is load-once reference data; nothing mutates it after seeding.
type Hotel struct {
	ID            int64
	Name          string
	Location      string
	PricePerNight float64
	Rating        float64 // 1..5, one decimal
	Category      Category
	Amenities     []string
	Image         string
	Description   string
	Rooms         []Room
}

type Room struct {
	ID        int64
	HotelID   int64
	Name      string
	Price     float64
	Capacity  int
	Amenities []string
	Available bool
	Image     string
}

// Criteria narrows a hotel list. Zero-valued fields are pass-through.
// Criteria combine with AND across fields; multi-valued fields are OR within.
type Criteria struct {
	Location   string   // case-insensitive substring of Hotel.Location
	Stars      []int    // OR over floor(Rating)
	PriceMin   *float64
	PriceMax   *float64
	Categories []Category
	Amenities  []string // hotel must carry every requested tag
	CheckIn    *time.Time
	CheckOut   *time.Time
	Guests     int
}

type SortOrder string

const (
	SortRecommended SortOrder = "recommended"
	SortPriceAsc    SortOrder = "price_asc"
	SortPriceDesc   SortOrder = "price_desc"
	SortRatingDesc  SortOrder = "rating_desc"
	SortNameAsc     SortOrder = "name_asc"
	SortNameDesc    SortOrder = "name_desc"
)
