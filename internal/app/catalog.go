package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"stayhub/internal/domain"
)

type CatalogService struct {
	repo     domain.CatalogRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCatalogService(r domain.CatalogRepository, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *CatalogService) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	key := fmt.Sprintf("hotel:%d", id)
	var h domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &h); ok {
		return h, nil
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	_ = s.cache.Set(ctx, key, h, int(s.cacheTTL.Seconds()))
	return h, nil
}

func (s *CatalogService) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	const key = "hotels:all"
	var hs []domain.Hotel
	if ok, _ := s.cache.Get(ctx, key, &hs); ok {
		return hs, nil
	}
	hs, err := s.repo.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	// copy before caching so callers can't mutate the cached value
	_ = s.cache.Set(ctx, key, deepCopyHotels(hs), int(s.cacheTTL.Seconds()))
	return hs, nil
}

// GetHotels resolves a saved-hotels id list. Ids that no longer exist in
// the catalog are silently dropped.
func (s *CatalogService) GetHotels(ctx context.Context, ids []int64) ([]domain.Hotel, error) {
	all, err := s.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]domain.Hotel, len(all))
	for _, h := range all {
		byID[h.ID] = h
	}
	out := make([]domain.Hotel, 0, len(ids))
	for _, id := range ids {
		if h, ok := byID[id]; ok {
			out = append(out, h)
		}
	}
	return out, nil
}

// Search filters the full catalog by c and orders the result. The empty
// result is a valid outcome, not an error.
func (s *CatalogService) Search(ctx context.Context, c domain.Criteria, order domain.SortOrder) ([]domain.Hotel, error) {
	all, err := s.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	out := Filter(all, c)
	Sort(out, order)
	return out, nil
}

// Filter returns the members of hs satisfying every non-empty field of c.
// Guests and dates are accepted but do not narrow the hotel list; rooms
// are not cross-checked against capacity or availability here.
func Filter(hs []domain.Hotel, c domain.Criteria) []domain.Hotel {
	out := make([]domain.Hotel, 0, len(hs))
	for _, h := range hs {
		if matches(h, c) {
			out = append(out, h)
		}
	}
	return out
}

func matches(h domain.Hotel, c domain.Criteria) bool {
	if c.Location != "" &&
		!strings.Contains(strings.ToLower(h.Location), strings.ToLower(c.Location)) {
		return false
	}
	if len(c.Stars) > 0 && !containsInt(c.Stars, int(math.Floor(h.Rating))) {
		return false
	}
	if c.PriceMin != nil && h.PricePerNight < *c.PriceMin {
		return false
	}
	if c.PriceMax != nil && h.PricePerNight > *c.PriceMax {
		return false
	}
	if len(c.Categories) > 0 && !containsCategory(c.Categories, h.Category) {
		return false
	}
	for _, want := range c.Amenities {
		if !containsFold(h.Amenities, want) {
			return false
		}
	}
	return true
}

// Sort orders hs in place. Recommended order ranks by rating descending,
// except that ratings within 0.5 of each other count as tied and the
// cheaper hotel wins; this is deliberately not a plain two-key sort.
func Sort(hs []domain.Hotel, order domain.SortOrder) {
	switch order {
	case domain.SortPriceAsc:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].PricePerNight < hs[j].PricePerNight })
	case domain.SortPriceDesc:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].PricePerNight > hs[j].PricePerNight })
	case domain.SortRatingDesc:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].Rating > hs[j].Rating })
	case domain.SortNameAsc:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].Name < hs[j].Name })
	case domain.SortNameDesc:
		sort.SliceStable(hs, func(i, j int) bool { return hs[i].Name > hs[j].Name })
	default: // recommended
		sort.SliceStable(hs, func(i, j int) bool {
			if math.Abs(hs[i].Rating-hs[j].Rating) <= 0.5 {
				return hs[i].PricePerNight < hs[j].PricePerNight
			}
			return hs[i].Rating > hs[j].Rating
		})
	}
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func containsCategory(xs []domain.Category, v domain.Category) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func containsFold(xs []string, v string) bool {
	for _, x := range xs {
		if strings.EqualFold(x, v) {
			return true
		}
	}
	return false
}

func deepCopyHotels(in []domain.Hotel) []domain.Hotel {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.Hotel, len(in))
	copy(out, in)
	return out
}
