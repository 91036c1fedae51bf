package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventbooking/internal/delivery/http/controllers"
	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/domain"
)

// RouterDeps carries everything NewRouter wires into routes.
type RouterDeps struct {
	Logger             *slog.Logger
	Events             *controllers.EventController
	Bookings           *controllers.BookingController
	Verifier           domain.TokenVerifier
	CORSAllowedOrigins []string
}

// NewRouter initializes the HTTP router with all application routes, wrapped
// in CORS and request logging.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()
	organizer := middleware.RequireRole(deps.Verifier, domain.RoleOrganizer, deps.Logger)

	// Events
	mux.HandleFunc("GET /events", deps.Events.ListEvents)
	mux.HandleFunc("GET /events/{slug}", deps.Events.GetEventBySlug)
	mux.HandleFunc("POST /events", organizer(deps.Events.CreateEvent))
	mux.HandleFunc("PUT /events/{eventID}", organizer(deps.Events.UpdateEvent))

	// Bookings
	mux.HandleFunc("POST /events/{eventID}/bookings", deps.Bookings.CreateBooking)
	mux.HandleFunc("GET /events/{eventID}/bookings", organizer(deps.Bookings.ListBookings))
	mux.HandleFunc("PUT /bookings/{bookingID}", deps.Bookings.UpdateBooking)
	mux.HandleFunc("GET /bookings/{bookingID}", organizer(deps.Bookings.GetBooking))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.LoggingMiddleware(deps.Logger, middleware.CORS(deps.CORSAllowedOrigins, mux))
}
