// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"stayhub/internal/adapters/observability"
	"stayhub/internal/app"
	"stayhub/internal/domain"
)

type Handlers struct {
	Catalog  *app.CatalogService
	Accounts *app.AccountService
	Bookings *app.BookingService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Code   string `json:"code,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/hotels", h.searchHotels)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)

	s.mux.Post("/v1/auth/register", h.register)
	s.mux.Post("/v1/auth/login", h.login)
	s.mux.Post("/v1/auth/logout", h.logout)

	s.mux.Route("/v1/me", func(m chi.Router) {
		m.Use(h.requireSession)
		m.Get("/", h.me)
		m.Put("/", h.updateProfile)
		m.Get("/saved-hotels", h.listSavedHotels)
		m.Put("/saved-hotels/{hotelID}", h.toggleSavedHotel)
		m.Get("/payment-methods", h.listPaymentMethods)
		m.Post("/payment-methods", h.addPaymentMethod)
		m.Put("/payment-methods/{id}/default", h.setDefaultPaymentMethod)
		m.Delete("/payment-methods/{id}", h.removePaymentMethod)
		m.Get("/reservations", h.listReservations)
		m.Post("/reservations", h.checkout)
		m.Post("/reservations/{id}/cancel", h.cancelReservation)
	})
}

// ---- error mapping ----

func writeProblem(w http.ResponseWriter, status int, code, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Code: code, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeErr(w http.ResponseWriter, err error) {
	var de *domain.Error
	if !errors.As(err, &de) {
		log.Error().Err(err).Msg("internal error")
		writeProblem(w, http.StatusInternalServerError, "INTERNAL", "Internal Server Error", "")
		return
	}
	status := http.StatusInternalServerError
	switch de.Code {
	case "NO_SESSION", "INVALID_CREDENTIALS":
		status = http.StatusUnauthorized
	case "NOT_FOUND", "USER_NOT_FOUND":
		status = http.StatusNotFound
	case "EMAIL_EXISTS", "RESERVATION_COMPLETED", "ROOM_UNAVAILABLE":
		status = http.StatusConflict
	case "CARD_INVALID", "CARD_EXPIRED":
		status = http.StatusUnprocessableEntity
	}
	writeProblem(w, status, de.Code, http.StatusText(status), de.Message)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// ---- session middleware ----

type ctxKey int

const userKey ctxKey = 0

func (h *Handlers) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			observability.ObserveAuth("denied")
			writeErr(w, domain.ErrNoSession)
			return
		}
		u, err := h.Accounts.Resolve(r.Context(), token)
		if err != nil {
			observability.ObserveAuth("denied")
			writeErr(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

func bearerToken(r *http.Request) string {
	ah := r.Header.Get("Authorization")
	if strings.HasPrefix(ah, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(ah, "Bearer "))
	}
	return ""
}

func sessionUser(r *http.Request) domain.User {
	u, _ := r.Context().Value(userKey).(domain.User)
	return u
}

// ---- catalog ----

func (h *Handlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	c, order, err := parseCriteria(r)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "BAD_QUERY", "Invalid query", err.Error())
		return
	}
	hs, err := h.Catalog.Search(r.Context(), c, order)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Items []hotelView `json:"items"`
		Total int         `json:"total"`
	}{Items: hotelViews(hs), Total: len(hs)})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "BAD_ID", "Invalid ID", "id must be a number")
		return
	}
	hotel, err := h.Catalog.GetHotel(r.Context(), id)
	if err != nil {
		writeErr(w, err)
		return
	}

	etag, body := calcETagAndBody(newHotelView(hotel))
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getHotel body")
	}
}

func parseCriteria(r *http.Request) (domain.Criteria, domain.SortOrder, error) {
	q := r.URL.Query()
	var c domain.Criteria
	c.Location = strings.TrimSpace(q.Get("location"))
	for _, s := range splitCSV(q.Get("stars")) {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 5 {
			return c, "", errStars
		}
		c.Stars = append(c.Stars, n)
	}
	if v := q.Get("price_min"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, "", errPrice
		}
		c.PriceMin = &f
	}
	if v := q.Get("price_max"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, "", errPrice
		}
		c.PriceMax = &f
	}
	for _, s := range splitCSV(q.Get("categories")) {
		c.Categories = append(c.Categories, domain.Category(s))
	}
	c.Amenities = splitCSV(q.Get("amenities"))
	if v := q.Get("check_in"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c, "", errDate
		}
		c.CheckIn = &t
	}
	if v := q.Get("check_out"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c, "", errDate
		}
		c.CheckOut = &t
	}
	if v := q.Get("guests"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c, "", errGuests
		}
		c.Guests = n
	}
	order := domain.SortOrder(q.Get("sort"))
	switch order {
	case "", domain.SortRecommended:
		order = domain.SortRecommended
	case domain.SortPriceAsc, domain.SortPriceDesc, domain.SortRatingDesc, domain.SortNameAsc, domain.SortNameDesc:
	default:
		return c, "", errSort
	}
	return c, order, nil
}

var (
	errStars  = errors.New("stars must be integers between 1 and 5")
	errPrice  = errors.New("price bounds must be numbers")
	errDate   = errors.New("dates must be YYYY-MM-DD")
	errGuests = errors.New("guests must be a non-negative integer")
	errSort   = errors.New("unknown sort order")
)

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ---- auth ----

type credentialsReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type authResp struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "BAD_BODY", "Invalid body", "")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeProblem(w, http.StatusBadRequest, "BAD_BODY", "Invalid body", "email and password are required")
		return
	}
	u, token, err := h.Accounts.Register(r.Context(), app.RegisterInput{
		Email: req.Email, Password: req.Password,
		FirstName: req.FirstName, LastName: req.LastName, Phone: req.Phone,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	observability.ObserveAuth("register")
	writeJSON(w, http.StatusCreated, authResp{User: newUserView(u), Token: token})
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "BAD_BODY", "Invalid body", "")
		return
	}
	u, token, err := h.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	observability.ObserveAuth("login")
	writeJSON(w, http.StatusOK, authResp{User: newUserView(u), Token: token})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeErr(w, domain.ErrNoSession)
		return
	}
	if err := h.Accounts.Logout(r.Context(), token); err != nil {
		writeErr(w, err)
		return
	}
	observability.ObserveAuth("logout")
	w.WriteHeader(http.StatusNoContent)
}

// ---- account ----

func (h *Handlers) me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newUserView(sessionUser(r)))
}

func (h *Handlers) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "BAD_BODY", "Invalid body", "")
		return
	}
	u, err := h.Accounts.UpdateProfile(r.Context(), sessionUser(r).ID, domain.Profile{
		FirstName: req.FirstName, LastName: req.LastName, Phone: req.Phone,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newUserView(u))
}

func (h *Handlers) listSavedHotels(w http.ResponseWriter, r *http.Request) {
	hs, err := h.Catalog.GetHotels(r.Context(), sessionUser(r).SavedHotels)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Items []hotelView `json:"items"`
	}{Items: hotelViews(hs)})
}

func (h *Handlers) toggleSavedHotel(w http.ResponseWriter, r *http.Request) {
	hotelID, err := strconv.ParseInt(chi.URLParam(r, "hotelID"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "BAD_ID", "Invalid ID", "hotel id must be a number")
		return
	}
	saved, err := h.Accounts.ToggleSavedHotel(r.Context(), sessionUser(r).ID, hotelID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Saved bool `json:"saved"`
	}{Saved: saved})
}

func (h *Handlers) listPaymentMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Items []pmView `json:"items"`
	}{Items: pmViews(sessionUser(r).PaymentMethods)})
}

func (h *Handlers) addPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Number  string `json:"number"`
		Holder  string `json:"holder"`
		Expiry  string `json:"expiry"`
		Default bool   `json:"default"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "BAD_BODY", "Invalid body", "")
		return
	}
	pm, err := h.Accounts.AddPaymentMethod(r.Context(), sessionUser(r).ID, app.PaymentMethodInput{
		Number: req.Number, Holder: req.Holder, Expiry: req.Expiry, Default: req.Default,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, newPMView(pm))
}

func (h *Handlers) setDefaultPaymentMethod(w http.ResponseWriter, r *http.Request) {
	if err := h.Accounts.SetDefaultPaymentMethod(r.Context(), sessionUser(r).ID, chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) removePaymentMethod(w http.ResponseWriter, r *http.Request) {
	if err := h.Accounts.RemovePaymentMethod(r.Context(), sessionUser(r).ID, chi.URLParam(r, "id")); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- reservations ----

func (h *Handlers) listReservations(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Bookings.List(r.Context(), sessionUser(r).ID)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Items []reservationView `json:"items"`
	}{Items: reservationViews(rs)})
}

func (h *Handlers) checkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HotelID  int64  `json:"hotel_id"`
		RoomID   int64  `json:"room_id"`
		CheckIn  string `json:"check_in"`
		CheckOut string `json:"check_out"`
		Card     struct {
			Number string `json:"number"`
			Holder string `json:"holder"`
			Expiry string `json:"expiry"`
			CVV    string `json:"cvv"`
		} `json:"card"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "BAD_BODY", "Invalid body", "")
		return
	}
	in, err := time.Parse("2006-01-02", req.CheckIn)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "BAD_BODY", "Invalid body", "check_in must be YYYY-MM-DD")
		return
	}
	out, err := time.Parse("2006-01-02", req.CheckOut)
	if err != nil || !out.After(in) {
		writeProblem(w, http.StatusBadRequest, "BAD_BODY", "Invalid body", "check_out must be YYYY-MM-DD and after check_in")
		return
	}
	res, err := h.Bookings.Checkout(r.Context(), sessionUser(r).ID, app.BookingRequest{
		HotelID: req.HotelID, RoomID: req.RoomID, CheckIn: in, CheckOut: out,
		Card: domain.Card{Number: req.Card.Number, Holder: req.Card.Holder, Expiry: req.Card.Expiry, CVV: req.Card.CVV},
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	observability.ObserveBooking("created")
	writeJSON(w, http.StatusCreated, newResView(res))
}

func (h *Handlers) cancelReservation(w http.ResponseWriter, r *http.Request) {
	res, err := h.Bookings.Cancel(r.Context(), sessionUser(r).ID, chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, err)
		return
	}
	observability.ObserveBooking("cancelled")
	writeJSON(w, http.StatusOK, newResView(res))
}
