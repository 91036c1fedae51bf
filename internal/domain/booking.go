package domain

import (
	"context"
	"time"
)

// Booking represents one reservation of an email address against an event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId" validate:"required"`
	Email     string    `json:"email" validate:"required,max=254"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingInput is the raw payload for creating or re-saving a booking.
// swagger:model BookingInput
type BookingInput struct {
	EventID any `json:"eventId" swaggertype:"string"`
	Email   any `json:"email" swaggertype:"string"`
}

// BookingRepository defines storage operations for bookings.
// The pair (EventID, Email) is unique; violations are reported as *UniqueConstraintError.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	Update(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Booking, error)
}

// BookingService defines attendee-facing booking operations.
type BookingService interface {
	CreateBooking(ctx context.Context, in *BookingInput) (*Booking, error)
	// UpdateBooking re-saves the booking. The referenced event is only looked up again when event_id changes.
	UpdateBooking(ctx context.Context, bookingID string, in *BookingInput) (*Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*Booking, error)
	ListBookingsForEvent(ctx context.Context, eventID string) ([]*Booking, error)
}
