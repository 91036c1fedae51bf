package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eventbooking/internal/domain"
	"eventbooking/internal/normalize"
)

const msgEventMissing = "Referenced event does not exist"

type bookingService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService. emailService may be nil, in which
// case no confirmation is sent.
func NewBookingService(
	eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, in *domain.BookingInput) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booking, err := normalize.Booking(in)
	if err != nil {
		return nil, err
	}
	if err := s.ensureEventExists(ctx, booking.EventID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.sendConfirmation(ctx, booking)
	return booking, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, bookingID string, in *domain.BookingInput) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}

	booking, err := normalize.Booking(in)
	if err != nil {
		return nil, err
	}
	if booking.EventID != existing.EventID {
		if err := s.ensureEventExists(ctx, booking.EventID); err != nil {
			return nil, err
		}
	}

	booking.ID = existing.ID
	booking.CreatedAt = existing.CreatedAt
	booking.UpdatedAt = time.Now().UTC()
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) ListBookingsForEvent(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	id, err := normalize.ObjectID("eventId", eventID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.ListByEventID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if bookings == nil {
		bookings = []*domain.Booking{}
	}
	return bookings, nil
}

func (s *bookingService) ensureEventExists(ctx context.Context, eventID string) error {
	ok, err := s.eventRepo.ExistsByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("check event exists: %w", err)
	}
	if !ok {
		return domain.NewValidationError("eventId", msgEventMissing)
	}
	return nil
}

// sendConfirmation emails the attendee. The booking is already stored, so
// failures are logged and not returned.
func (s *bookingService) sendConfirmation(ctx context.Context, booking *domain.Booking) {
	if s.emailService == nil {
		return
	}
	event, err := s.eventRepo.GetByID(ctx, booking.EventID)
	if err != nil {
		s.logger.WarnContext(ctx, "booking confirmation skipped", "booking_id", booking.ID, "err", err)
		return
	}
	data := &domain.BookingConfirmationEmailData{
		Email:      booking.Email,
		BookingID:  booking.ID,
		EventTitle: event.Title,
		EventSlug:  event.Slug,
		Venue:      event.Venue,
		Location:   event.Location,
		Date:       event.Date,
		Time:       event.Time,
	}
	if err := s.emailService.SendBookingConfirmation(ctx, data); err != nil {
		s.logger.ErrorContext(ctx, "booking confirmation failed", "booking_id", booking.ID, "err", err)
	}
}
