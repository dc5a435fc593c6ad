package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"stayhub/internal/domain"
)

// AccountService owns the session/auth state: registration, login/logout,
// and every mutation of the current user's record. Auth state changes fan
// out to subscribed listeners with just the logged-in boolean.
type AccountService struct {
	users      domain.UserRepository
	sessions   domain.SessionStore
	sessionTTL time.Duration
	bcryptCost int

	mu        sync.Mutex
	listeners []func(loggedIn bool)
}

func NewAccountService(u domain.UserRepository, s domain.SessionStore, ttl time.Duration, bcryptCost int) *AccountService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AccountService{users: u, sessions: s, sessionTTL: ttl, bcryptCost: bcryptCost}
}

// Subscribe registers a listener for auth state changes. Listeners are
// invoked synchronously, in subscription order.
func (s *AccountService) Subscribe(fn func(loggedIn bool)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *AccountService) notify(loggedIn bool) {
	s.mu.Lock()
	ls := make([]func(bool), len(s.listeners))
	copy(ls, s.listeners)
	s.mu.Unlock()
	for _, fn := range ls {
		fn(loggedIn)
	}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Register creates a new account and opens a session for it. A duplicate
// email fails with ErrEmailExists and leaves the stored users untouched.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return domain.User{}, "", err
	}
	u := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return domain.User{}, "", err
	}
	token, err := s.sessions.Create(ctx, u.ID, s.sessionTTL)
	if err != nil {
		return domain.User{}, "", err
	}
	s.notify(true)
	return u, token, nil
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, "", domain.ErrInvalidCredentials
		}
		return domain.User{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return domain.User{}, "", domain.ErrInvalidCredentials
	}
	token, err := s.sessions.Create(ctx, u.ID, s.sessionTTL)
	if err != nil {
		return domain.User{}, "", err
	}
	s.notify(true)
	return u, token, nil
}

// Logout drops the session token. Unknown tokens are ignored.
func (s *AccountService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		return err
	}
	s.notify(false)
	return nil
}

// Resolve maps a bearer token to its user. ErrNoSession when the token is
// unknown or expired.
func (s *AccountService) Resolve(ctx context.Context, token string) (domain.User, error) {
	id, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return domain.User{}, err
	}
	u, err := s.users.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

func (s *AccountService) UpdateProfile(ctx context.Context, userID string, p domain.Profile) (domain.User, error) {
	if err := s.users.UpdateProfile(ctx, userID, p); err != nil {
		return domain.User{}, err
	}
	s.notify(true)
	return s.users.GetUser(ctx, userID)
}

// ToggleSavedHotel adds hotelID to the user's saved list, or removes it
// when already present. Returns whether the hotel is saved afterwards.
func (s *AccountService) ToggleSavedHotel(ctx context.Context, userID string, hotelID int64) (bool, error) {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	next := make([]int64, 0, len(u.SavedHotels)+1)
	saved := true
	for _, id := range u.SavedHotels {
		if id == hotelID {
			saved = false
			continue
		}
		next = append(next, id)
	}
	if saved {
		next = append(next, hotelID)
	}
	if err := s.users.SaveSavedHotels(ctx, userID, next); err != nil {
		return false, err
	}
	s.notify(true)
	return saved, nil
}

type PaymentMethodInput struct {
	Number  string
	Holder  string
	Expiry  string // MM/YY
	Default bool
}

// AddPaymentMethod stores a new card record. Only the last four digits
// are kept. Setting the default flag resets it on every other card, so at
// most one record is default at any time.
func (s *AccountService) AddPaymentMethod(ctx context.Context, userID string, in PaymentMethodInput) (domain.PaymentMethod, error) {
	last4, err := cardLast4(in.Number)
	if err != nil {
		return domain.PaymentMethod{}, err
	}
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return domain.PaymentMethod{}, err
	}
	pm := domain.PaymentMethod{
		ID:      uuid.NewString(),
		Last4:   last4,
		Holder:  strings.TrimSpace(in.Holder),
		Expiry:  strings.TrimSpace(in.Expiry),
		Default: in.Default || len(u.PaymentMethods) == 0,
	}
	next := append(append([]domain.PaymentMethod(nil), u.PaymentMethods...), pm)
	if pm.Default {
		clearOtherDefaults(next, pm.ID)
	}
	if err := s.users.SavePaymentMethods(ctx, userID, next); err != nil {
		return domain.PaymentMethod{}, err
	}
	s.notify(true)
	return pm, nil
}

// SetDefaultPaymentMethod marks one card default and resets the rest.
func (s *AccountService) SetDefaultPaymentMethod(ctx context.Context, userID, pmID string) error {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	next := append([]domain.PaymentMethod(nil), u.PaymentMethods...)
	found := false
	for i := range next {
		if next[i].ID == pmID {
			next[i].Default = true
			found = true
		}
	}
	if !found {
		return domain.ErrNotFound
	}
	clearOtherDefaults(next, pmID)
	if err := s.users.SavePaymentMethods(ctx, userID, next); err != nil {
		return err
	}
	s.notify(true)
	return nil
}

func (s *AccountService) RemovePaymentMethod(ctx context.Context, userID, pmID string) error {
	u, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	next := make([]domain.PaymentMethod, 0, len(u.PaymentMethods))
	found := false
	for _, pm := range u.PaymentMethods {
		if pm.ID == pmID {
			found = true
			continue
		}
		next = append(next, pm)
	}
	if !found {
		return domain.ErrNotFound
	}
	if err := s.users.SavePaymentMethods(ctx, userID, next); err != nil {
		return err
	}
	s.notify(true)
	return nil
}

func clearOtherDefaults(pms []domain.PaymentMethod, keepID string) {
	for i := range pms {
		if pms[i].ID != keepID {
			pms[i].Default = false
		}
	}
}

func cardLast4(number string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if len(digits) != 16 {
		return "", domain.ErrCardInvalid
	}
	return digits[12:], nil
}
