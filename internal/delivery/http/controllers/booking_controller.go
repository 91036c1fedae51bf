package controllers

import (
	"log/slog"
	"net/http"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"
)

// CreateBookingRequest is the request body for POST /events/{eventID}/bookings.
// The event comes from the path.
type CreateBookingRequest struct {
	Email any `json:"email" swaggertype:"string"`
}

// BookingSuccessResponse is the success response envelope for a single booking.
type BookingSuccessResponse struct {
	Data  *domain.Booking   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListBookingsSuccessResponse is the success response envelope for GET /events/{eventID}/bookings (200).
type ListBookingsSuccessResponse struct {
	Data  []*domain.Booking `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateBooking godoc
// @Summary Book a seat at an event
// @Description Validates the email, checks the event exists and stores the booking. A confirmation email is sent afterwards; its failure does not fail the request. One booking per email per event.
// @Tags bookings
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (ObjectId)"
// @Param booking body CreateBookingRequest true "Attendee email"
// @Success 201 {object} controllers.BookingSuccessResponse "data contains the created booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already booked)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	booking, err := c.Service.CreateBooking(r.Context(), &domain.BookingInput{
		EventID: r.PathValue("eventID"),
		Email:   req.Email,
	})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "booking not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// UpdateBooking godoc
// @Summary Re-save a booking
// @Description Replaces the booking's email and event. The event existence check runs only when eventId changes.
// @Tags bookings
// @Accept json
// @Produce json
// @Param bookingID path string true "Booking ID (ObjectId)"
// @Param booking body domain.BookingInput true "Booking data"
// @Success 200 {object} controllers.BookingSuccessResponse "data contains the updated booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_error"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already booked)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{bookingID} [put]
func (c *BookingController) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("bookingID")
	if bookingID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing bookingID")
		return
	}
	var req domain.BookingInput
	if !helpers.DecodeJSON(w, r, &req) {
		return
	}
	booking, err := c.Service.UpdateBooking(r.Context(), bookingID, &req)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "booking not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, booking)
}

// GetBooking godoc
// @Summary Get a booking
// @Description Returns a single booking by id. Requires an organizer token.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param bookingID path string true "Booking ID (ObjectId)"
// @Success 200 {object} controllers.BookingSuccessResponse "data contains the booking"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{bookingID} [get]
func (c *BookingController) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := c.Service.GetBooking(r.Context(), r.PathValue("bookingID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "booking not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, booking)
}

// ListBookings godoc
// @Summary List bookings for an event
// @Description Returns every booking for the event, oldest first. Requires an organizer token.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (ObjectId)"
// @Success 200 {object} controllers.ListBookingsSuccessResponse "data contains the bookings"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_error"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/bookings [get]
func (c *BookingController) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := c.Service.ListBookingsForEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}
