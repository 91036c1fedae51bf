package domain

import (
	"context"
	"time"
)

// Event represents a published event that attendees can book.
// Every string field is stored trimmed; Date is YYYY-MM-DD and Time is 24-hour HH:MM.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title" validate:"required,max=180"`
	Slug        string    `json:"slug" validate:"max=200"`
	Description string    `json:"description" validate:"required,max=5000"`
	Overview    string    `json:"overview" validate:"required,max=2000"`
	Image       string    `json:"image" validate:"required,max=2048"`
	Venue       string    `json:"venue" validate:"required,max=500"`
	Location    string    `json:"location" validate:"required,max=500"`
	Date        string    `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string    `json:"time" validate:"required,datetime=15:04"`
	Mode        string    `json:"mode" validate:"required,max=50"`
	Audience    string    `json:"audience" validate:"required,max=500"`
	Organizer   string    `json:"organizer" validate:"required,max=500"`
	Agenda      []string  `json:"agenda" validate:"required,min=1,dive,required"`
	Tags        []string  `json:"tags" validate:"required,min=1,dive,required"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EventInput is the raw, not yet normalized payload for creating or re-saving an event.
// Fields are untyped so that non-string values can be rejected instead of silently coerced.
// swagger:model EventInput
type EventInput struct {
	Title       any `json:"title" swaggertype:"string"`
	Description any `json:"description" swaggertype:"string"`
	Overview    any `json:"overview" swaggertype:"string"`
	Image       any `json:"image" swaggertype:"string"`
	Venue       any `json:"venue" swaggertype:"string"`
	Location    any `json:"location" swaggertype:"string"`
	Date        any `json:"date" swaggertype:"string"`
	Time        any `json:"time" swaggertype:"string"`
	Mode        any `json:"mode" swaggertype:"string"`
	Audience    any `json:"audience" swaggertype:"string"`
	Organizer   any `json:"organizer" swaggertype:"string"`
	Agenda      any `json:"agenda" swaggertype:"array,string"`
	Tags        any `json:"tags" swaggertype:"array,string"`
}

// EventRepository defines the interface for event storage.
// Implementations enforce slug uniqueness and report violations as *UniqueConstraintError.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, int, error)
}

// EventService defines the business logic for events.
type EventService interface {
	CreateEvent(ctx context.Context, in *EventInput) (*Event, error)
	// UpdateEvent re-saves the full event; the slug is re-derived only when the title changes.
	UpdateEvent(ctx context.Context, eventID string, in *EventInput) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	ListEvents(ctx context.Context, params PaginationParams) ([]*Event, int, error)
}
