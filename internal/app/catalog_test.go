package app_test

import (
	"context"
	"testing"
	"time"

	"stayhub/internal/app"
	"stayhub/internal/domain"
)

// ---- fakes ----

type fakeCatalogRepo struct {
	hotels []domain.Hotel
	lists  int
}

func (f *fakeCatalogRepo) UpsertHotel(ctx context.Context, h domain.Hotel) error { return nil }
func (f *fakeCatalogRepo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	for _, h := range f.hotels {
		if h.ID == id {
			return h, nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}
func (f *fakeCatalogRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	f.lists++
	return f.hotels, nil
}

type fakeCache struct {
	store map[string]any
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	if c.store == nil {
		return false, nil
	}
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	switch d := dst.(type) {
	case *domain.Hotel:
		*d = v.(domain.Hotel)
	case *[]domain.Hotel:
		*d = v.([]domain.Hotel)
	}
	return true, nil
}
func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string]any{}
	}
	c.store[key] = v
	return nil
}
func (c *fakeCache) Del(ctx context.Context, key string) error { return nil }

func hotel(id int64, name string, price, rating float64, cat domain.Category, loc string, amenities ...string) domain.Hotel {
	return domain.Hotel{
		ID: id, Name: name, Location: loc, PricePerNight: price, Rating: rating,
		Category: cat, Amenities: amenities,
	}
}

func testHotels() []domain.Hotel {
	return []domain.Hotel{
		hotel(1, "Alpha", 200, 4.9, domain.CategoryLuxury, "Paris, France", "wifi", "pool", "spa"),
		hotel(2, "Bravo", 150, 4.6, domain.CategoryResort, "Nice, France", "wifi", "pool"),
		hotel(3, "Charlie", 90, 4.0, domain.CategoryBusiness, "Berlin, Germany", "wifi"),
		hotel(4, "Delta", 310, 3.2, domain.CategoryBoutique, "Paris, France", "wifi", "bar"),
	}
}

func fpr(f float64) *float64 { return &f }

// ---- filter ----

func TestFilter_AllCriteriaAND(t *testing.T) {
	hs := testHotels()
	got := app.Filter(hs, domain.Criteria{
		Location:   "france",
		Stars:      []int{4},
		PriceMin:   fpr(100),
		PriceMax:   fpr(250),
		Categories: []domain.Category{domain.CategoryLuxury, domain.CategoryResort},
		Amenities:  []string{"wifi", "pool"},
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 hotels, got %d: %+v", len(got), got)
	}
	for _, h := range got {
		if h.ID != 1 && h.ID != 2 {
			t.Fatalf("unexpected hotel in result: %+v", h)
		}
	}
}

func TestFilter_OutputIsSubset(t *testing.T) {
	hs := testHotels()
	got := app.Filter(hs, domain.Criteria{Location: "paris"})
	if len(got) == 0 || len(got) > len(hs) {
		t.Fatalf("unexpected result size %d", len(got))
	}
	in := map[int64]bool{}
	for _, h := range hs {
		in[h.ID] = true
	}
	for _, h := range got {
		if !in[h.ID] {
			t.Fatalf("result contains hotel not in input: %+v", h)
		}
	}
}

func TestFilter_EmptyCriteriaPassThrough(t *testing.T) {
	hs := testHotels()
	got := app.Filter(hs, domain.Criteria{})
	if len(got) != len(hs) {
		t.Fatalf("empty criteria should pass everything: got %d of %d", len(got), len(hs))
	}
}

func TestFilter_GuestsAndDatesHaveNoEffect(t *testing.T) {
	hs := testHotels()
	in := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	out := in.AddDate(0, 0, 3)
	got := app.Filter(hs, domain.Criteria{Guests: 99, CheckIn: &in, CheckOut: &out})
	if len(got) != len(hs) {
		t.Fatalf("guests/dates should not narrow the list: got %d of %d", len(got), len(hs))
	}
}

func TestFilter_NoMatchYieldsEmptyNotError(t *testing.T) {
	got := app.Filter(testHotels(), domain.Criteria{Location: "atlantis"})
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}

// ---- sort ----

func TestSort_RecommendedPriceBreaksNearTie(t *testing.T) {
	// ratings 4.9 vs 4.6 differ by 0.3 <= 0.5: the cheaper hotel wins
	hs := []domain.Hotel{
		hotel(1, "Pricey", 200, 4.9, domain.CategoryLuxury, "X"),
		hotel(2, "Cheap", 150, 4.6, domain.CategoryLuxury, "X"),
	}
	app.Sort(hs, domain.SortRecommended)
	if hs[0].PricePerNight != 150 || hs[1].PricePerNight != 200 {
		t.Fatalf("expected price order [150 200], got [%v %v]", hs[0].PricePerNight, hs[1].PricePerNight)
	}
}

func TestSort_RecommendedRatingWinsOutsideTieBand(t *testing.T) {
	// ratings 4.9 vs 4.0 differ by 0.9 > 0.5: rating order regardless of price
	hs := []domain.Hotel{
		hotel(1, "Lower", 10, 4.0, domain.CategoryLuxury, "X"),
		hotel(2, "Higher", 999, 4.9, domain.CategoryLuxury, "X"),
	}
	app.Sort(hs, domain.SortRecommended)
	if hs[0].Rating != 4.9 {
		t.Fatalf("expected rating 4.9 first, got %v", hs[0].Rating)
	}
}

func TestSort_Orders(t *testing.T) {
	cases := []struct {
		order domain.SortOrder
		first int64
	}{
		{domain.SortPriceAsc, 3},
		{domain.SortPriceDesc, 4},
		{domain.SortRatingDesc, 1},
		{domain.SortNameAsc, 1},
		{domain.SortNameDesc, 4},
	}
	for _, tc := range cases {
		hs := testHotels()
		app.Sort(hs, tc.order)
		if hs[0].ID != tc.first {
			t.Fatalf("%s: expected hotel %d first, got %d", tc.order, tc.first, hs[0].ID)
		}
	}
}

// ---- service ----

func TestSearch_UsesCacheOnSecondCall(t *testing.T) {
	repo := &fakeCatalogRepo{hotels: testHotels()}
	svc := app.NewCatalogService(repo, &fakeCache{}, 10*time.Minute)

	if _, err := svc.Search(context.Background(), domain.Criteria{}, domain.SortRecommended); err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, err := svc.Search(context.Background(), domain.Criteria{Location: "paris"}, domain.SortRecommended); err != nil {
		t.Fatalf("err: %v", err)
	}
	if repo.lists != 1 {
		t.Fatalf("expected one repo list, got %d", repo.lists)
	}
}

func TestGetHotels_DropsUnknownIDs(t *testing.T) {
	svc := app.NewCatalogService(&fakeCatalogRepo{hotels: testHotels()}, &fakeCache{}, time.Minute)
	got, err := svc.GetHotels(context.Background(), []int64{2, 42, 1})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("unexpected: %+v", got)
	}
}
