package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"stayhub/internal/domain"
)

type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

const mysqlErrDupEntry = 1062

func (r *UserRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, insertUserSQL,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.CreatedAt,
	)
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlErrDupEntry {
		return domain.ErrEmailExists
	}
	return err
}

func (r *UserRepo) GetUser(ctx context.Context, id string) (domain.User, error) {
	return r.loadUser(ctx, getUserSQL, id)
}

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.loadUser(ctx, getUserByEmailSQL, email)
}

func (r *UserRepo) loadUser(ctx context.Context, query string, arg any) (domain.User, error) {
	var u domain.User
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}

	saved, err := r.db.QueryContext(ctx, listSavedHotelsSQL, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	defer saved.Close()
	for saved.Next() {
		var id int64
		if err := saved.Scan(&id); err != nil {
			return domain.User{}, err
		}
		u.SavedHotels = append(u.SavedHotels, id)
	}
	if err := saved.Err(); err != nil {
		return domain.User{}, err
	}

	pms, err := r.db.QueryContext(ctx, listPaymentMethodsSQL, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	defer pms.Close()
	for pms.Next() {
		var pm domain.PaymentMethod
		if err := pms.Scan(&pm.ID, &pm.Last4, &pm.Holder, &pm.Expiry, &pm.Default); err != nil {
			return domain.User{}, err
		}
		u.PaymentMethods = append(u.PaymentMethods, pm)
	}
	if err := pms.Err(); err != nil {
		return domain.User{}, err
	}

	rs, err := r.db.QueryContext(ctx, listReservationsSQL, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	defer rs.Close()
	for rs.Next() {
		var rv domain.Reservation
		var status string
		if err := rs.Scan(
			&rv.ID, &rv.HotelID, &rv.HotelName, &rv.HotelLocation, &rv.RoomName, &rv.Image,
			&rv.CheckIn, &rv.CheckOut, &rv.Price, &status, &rv.CreatedAt,
		); err != nil {
			return domain.User{}, err
		}
		rv.Status = domain.ReservationStatus(status)
		u.Reservations = append(u.Reservations, rv)
	}
	if err := rs.Err(); err != nil {
		return domain.User{}, err
	}

	return u, nil
}

func (r *UserRepo) UpdateProfile(ctx context.Context, id string, p domain.Profile) error {
	res, err := r.db.ExecContext(ctx, updateProfileSQL, p.FirstName, p.LastName, p.Phone, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is 0 both when the user is missing and when nothing
		// changed; tell them apart with a lookup.
		if _, err := r.GetUser(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// SaveSavedHotels rewrites the whole list; ordering is preserved via the
// position column.
func (r *UserRepo) SaveSavedHotels(ctx context.Context, id string, hotelIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, deleteSavedHotelsSQL, id); err != nil {
		return err
	}
	for i, hid := range hotelIDs {
		if _, err := tx.ExecContext(ctx, insertSavedHotelSQL, id, hid, i); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SavePaymentMethods rewrites the whole list in one transaction; the
// single-default invariant is whatever the caller handed in.
func (r *UserRepo) SavePaymentMethods(ctx context.Context, id string, pms []domain.PaymentMethod) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, deletePaymentMethodsSQL, id); err != nil {
		return err
	}
	for i, pm := range pms {
		if _, err := tx.ExecContext(ctx, insertPaymentMethodSQL,
			pm.ID, id, pm.Last4, pm.Holder, pm.Expiry, pm.Default, i,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *UserRepo) AddReservation(ctx context.Context, id string, rv domain.Reservation) error {
	_, err := r.db.ExecContext(ctx, insertReservationSQL,
		rv.ID, id, rv.HotelID, rv.HotelName, rv.HotelLocation, rv.RoomName, rv.Image,
		rv.CheckIn, rv.CheckOut, rv.Price, string(rv.Status), rv.CreatedAt,
	)
	return err
}

func (r *UserRepo) UpdateReservationStatus(ctx context.Context, id, reservationID string, st domain.ReservationStatus) error {
	res, err := r.db.ExecContext(ctx, updateReservationStatusSQL, string(st), reservationID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
