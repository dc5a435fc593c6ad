package mysql

import (
	"context"
	"database/sql"
	"encoding/json"

	"stayhub/internal/domain"
)

type CatalogRepo struct{ db *sql.DB }

func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{db: db} }

func (r *CatalogRepo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	amen, _ := json.Marshal(h.Amenities)
	if _, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID, h.Name, h.Location, h.PricePerNight, h.Rating, string(h.Category),
		string(amen), h.Image, h.Description,
	); err != nil {
		return err
	}
	for _, rm := range h.Rooms {
		ra, _ := json.Marshal(rm.Amenities)
		if _, err := r.db.ExecContext(ctx, upsertRoomSQL,
			rm.ID, h.ID, rm.Name, rm.Price, rm.Capacity, string(ra), rm.Available, rm.Image,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *CatalogRepo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	row := r.db.QueryRowContext(ctx, getHotelSQL, id)
	h, err := scanHotel(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, err
	}
	rows, err := r.db.QueryContext(ctx, listRoomsForHotelSQL, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	defer rows.Close()
	for rows.Next() {
		rm, err := scanRoom(rows)
		if err != nil {
			return domain.Hotel{}, err
		}
		h.Rooms = append(h.Rooms, rm)
	}
	if err := rows.Err(); err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}

func (r *CatalogRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	index := map[int64]int{}
	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, err
		}
		index[h.ID] = len(out)
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rrows, err := r.db.QueryContext(ctx, listAllRoomsSQL)
	if err != nil {
		return nil, err
	}
	defer rrows.Close()
	for rrows.Next() {
		rm, err := scanRoom(rrows)
		if err != nil {
			return nil, err
		}
		if i, ok := index[rm.HotelID]; ok {
			out[i].Rooms = append(out[i].Rooms, rm)
		}
	}
	if err := rrows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type rowScanner interface{ Scan(dest ...any) error }

func scanHotel(row rowScanner) (domain.Hotel, error) {
	var h domain.Hotel
	var category string
	var amenJSON []byte
	if err := row.Scan(
		&h.ID, &h.Name, &h.Location, &h.PricePerNight, &h.Rating,
		&category, &amenJSON, &h.Image, &h.Description,
	); err != nil {
		return domain.Hotel{}, err
	}
	h.Category = domain.Category(category)
	_ = json.Unmarshal(amenJSON, &h.Amenities)
	return h, nil
}

func scanRoom(row rowScanner) (domain.Room, error) {
	var rm domain.Room
	var amenJSON []byte
	if err := row.Scan(
		&rm.ID, &rm.HotelID, &rm.Name, &rm.Price, &rm.Capacity,
		&amenJSON, &rm.Available, &rm.Image,
	); err != nil {
		return domain.Room{}, err
	}
	_ = json.Unmarshal(amenJSON, &rm.Amenities)
	return rm, nil
}
