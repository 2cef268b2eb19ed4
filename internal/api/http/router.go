package http

import (
	"net/http"

	"dhara-backend/internal/metrics"
	"dhara-backend/internal/security"
	"dhara-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services are the dependencies the router exposes over HTTP.
type Services struct {
	Auth         service.AuthService
	User         service.UserService
	Asset        service.AssetService
	Booking      service.BookingService
	Notification service.NotificationService
}

// NewRouter wires every route behind request id, access log and auth middleware.
func NewRouter(svc Services, tokens security.TokenManager, m *metrics.Metrics) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Use(RequestID, AccessLog(m), NewAuthMiddleware(tokens).Handler)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		respond(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	auth := NewAuthHandler(svc.Auth)
	r.HandleFunc("/auth/register", auth.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)

	users := NewUserHandler(svc.User)
	r.HandleFunc("/users/me", users.Me).Methods(http.MethodGet)

	pricing := NewPricingHandler(svc.Asset)
	r.HandleFunc("/pricing/quote", pricing.Quote).Methods(http.MethodGet)
	r.HandleFunc("/pricing/categories", pricing.Categories).Methods(http.MethodGet)

	assets := NewAssetHandler(svc.Asset)
	r.HandleFunc("/assets", assets.List).Methods(http.MethodGet)
	r.HandleFunc("/assets", assets.Create).Methods(http.MethodPost)
	r.HandleFunc("/assets/{id}", assets.Get).Methods(http.MethodGet)
	r.HandleFunc("/assets/{id}", assets.Update).Methods(http.MethodPatch)
	r.HandleFunc("/assets/{id}", assets.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/assets/{id}/maintenance", assets.ListMaintenance).Methods(http.MethodGet)
	r.HandleFunc("/assets/{id}/maintenance", assets.AddMaintenance).Methods(http.MethodPost)

	bookings := NewBookingHandler(svc.Booking)
	r.HandleFunc("/bookings", bookings.Create).Methods(http.MethodPost)
	r.HandleFunc("/bookings/my", bookings.ListMine).Methods(http.MethodGet)
	r.HandleFunc("/bookings/{id}", bookings.Get).Methods(http.MethodGet)

	notes := NewNotificationHandler(svc.Notification)
	r.HandleFunc("/notifications", notes.List).Methods(http.MethodGet)
	r.HandleFunc("/notifications/{id}/read", notes.MarkRead).Methods(http.MethodPatch)

	admin := r.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/bookings", bookings.ListAll).Methods(http.MethodGet)
	admin.HandleFunc("/assets", assets.ListAll).Methods(http.MethodGet)

	return r
}
