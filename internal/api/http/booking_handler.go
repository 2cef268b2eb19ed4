package http

import (
	"net/http"

	"dhara-backend/internal/service"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingService service.BookingService
}

func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// bookingRequest accepts both the current field names and the older
// startDate/bookingTime names sent by existing clients.
type bookingRequest struct {
	AssetID     string `json:"assetId"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	StartDate   string `json:"startDate"`
	BookingTime string `json:"bookingTime"`
}

func (b bookingRequest) date() string {
	if b.Date != "" {
		return b.Date
	}
	return b.StartDate
}

func (b bookingRequest) time() string {
	if b.Time != "" {
		return b.Time
	}
	return b.BookingTime
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decode(w, r, &req); err != nil {
		fail(w, r, err)
		return
	}
	farmerID, _ := caller(r.Context())

	booking, err := h.bookingService.CreateBooking(r.Context(), farmerID, req.AssetID, req.date(), req.time())
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusCreated, booking)
}

func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, role := caller(r.Context())
	bookings, err := h.bookingService.ListMyBookings(r.Context(), userID, role)
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, bookings)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, role := caller(r.Context())
	booking, err := h.bookingService.GetBooking(r.Context(), userID, role, mux.Vars(r)["id"])
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, booking)
}

func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.bookingService.ListAllBookings(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	respond(w, http.StatusOK, bookings)
}
