package httpserver

import "stayhub/internal/domain"

// Read models returned by the API. The password hash never leaves the
// service; cards surface only their tail.

type hotelView struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Location      string     `json:"location"`
	PricePerNight float64    `json:"price_per_night"`
	Rating        float64    `json:"rating"`
	Category      string     `json:"category"`
	Amenities     []string   `json:"amenities"`
	Image         string     `json:"image,omitempty"`
	Description   string     `json:"description,omitempty"`
	Rooms         []roomView `json:"rooms,omitempty"`
}

type roomView struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Capacity  int      `json:"capacity"`
	Amenities []string `json:"amenities"`
	Available bool     `json:"available"`
	Image     string   `json:"image,omitempty"`
}

func newHotelView(h domain.Hotel) hotelView {
	v := hotelView{
		ID: h.ID, Name: h.Name, Location: h.Location,
		PricePerNight: h.PricePerNight, Rating: h.Rating,
		Category: string(h.Category), Amenities: h.Amenities,
		Image: h.Image, Description: h.Description,
	}
	for _, rm := range h.Rooms {
		v.Rooms = append(v.Rooms, roomView{
			ID: rm.ID, Name: rm.Name, Price: rm.Price, Capacity: rm.Capacity,
			Amenities: rm.Amenities, Available: rm.Available, Image: rm.Image,
		})
	}
	return v
}

func hotelViews(hs []domain.Hotel) []hotelView {
	out := make([]hotelView, len(hs))
	for i, h := range hs {
		hv := newHotelView(h)
		hv.Rooms = nil // listings stay light; detail view carries rooms
		out[i] = hv
	}
	return out
}

type userView struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Phone       string   `json:"phone"`
	SavedHotels []int64  `json:"saved_hotels"`
	Payment     []pmView `json:"payment_methods"`
}

func newUserView(u domain.User) userView {
	v := userView{
		ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName,
		Phone: u.Phone, SavedHotels: u.SavedHotels,
	}
	if v.SavedHotels == nil {
		v.SavedHotels = []int64{}
	}
	v.Payment = pmViews(u.PaymentMethods)
	return v
}

type pmView struct {
	ID      string `json:"id"`
	Last4   string `json:"last4"`
	Holder  string `json:"holder"`
	Expiry  string `json:"expiry"`
	Default bool   `json:"default"`
}

func newPMView(pm domain.PaymentMethod) pmView {
	return pmView{ID: pm.ID, Last4: pm.Last4, Holder: pm.Holder, Expiry: pm.Expiry, Default: pm.Default}
}

func pmViews(pms []domain.PaymentMethod) []pmView {
	out := make([]pmView, len(pms))
	for i, pm := range pms {
		out[i] = newPMView(pm)
	}
	return out
}

type reservationView struct {
	ID            string  `json:"id"`
	HotelID       int64   `json:"hotel_id"`
	HotelName     string  `json:"hotel_name"`
	HotelLocation string  `json:"hotel_location"`
	RoomName      string  `json:"room_name"`
	Image         string  `json:"image,omitempty"`
	CheckIn       string  `json:"check_in"`
	CheckOut      string  `json:"check_out"`
	Price         float64 `json:"price"`
	Status        string  `json:"status"`
}

func newResView(r domain.Reservation) reservationView {
	return reservationView{
		ID: r.ID, HotelID: r.HotelID, HotelName: r.HotelName, HotelLocation: r.HotelLocation,
		RoomName: r.RoomName, Image: r.Image,
		CheckIn:  r.CheckIn.Format("2006-01-02"),
		CheckOut: r.CheckOut.Format("2006-01-02"),
		Price:    r.Price, Status: string(r.Status),
	}
}

func reservationViews(rs []domain.Reservation) []reservationView {
	out := make([]reservationView, len(rs))
	for i, r := range rs {
		out[i] = newResView(r)
	}
	return out
}
