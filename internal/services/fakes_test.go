package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventbooking/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeEventRepo is an in-memory EventRepository with a unique slug index.
type fakeEventRepo struct {
	mu          sync.Mutex
	byID        map[string]*domain.Event
	err         error // if set, every call returns this error
	existsCalls int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event)}
}

func (f *fakeEventRepo) slugTaken(slug, exceptID string) bool {
	for id, e := range f.byID {
		if id != exceptID && e.Slug == slug {
			return true
		}
	}
	return false
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.slugTaken(e.Slug, "") {
		return &domain.UniqueConstraintError{Collection: "events", Index: "slug"}
	}
	e.ID = primitive.NewObjectID().Hex()
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[e.ID]; !ok {
		return domain.ErrNotFound
	}
	if f.slugTaken(e.Slug, e.ID) {
		return &domain.UniqueConstraintError{Collection: "events", Index: "slug"}
	}
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.byID {
		if e.Slug == slug {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.existsCalls++
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.byID[id]
	return ok, nil
}

func (f *fakeEventRepo) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Event, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, 0, f.err
	}
	all := make([]*domain.Event, 0, len(f.byID))
	for _, e := range f.byID {
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	start := params.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + params.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

// put stores e directly, bypassing the pipeline.
func (f *fakeEventRepo) put(e *domain.Event) *domain.Event {
	if e.ID == "" {
		e.ID = primitive.NewObjectID().Hex()
	}
	f.byID[e.ID] = e
	return e
}

// fakeBookingRepo is an in-memory BookingRepository with a unique (eventId, email) index.
type fakeBookingRepo struct {
	byID map[string]*domain.Booking
	err  error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[string]*domain.Booking)}
}

func (f *fakeBookingRepo) pairTaken(b *domain.Booking) bool {
	for id, other := range f.byID {
		if id != b.ID && other.EventID == b.EventID && other.Email == b.Email {
			return true
		}
	}
	return false
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if f.err != nil {
		return f.err
	}
	if f.pairTaken(b) {
		return &domain.UniqueConstraintError{Collection: "bookings", Index: "eventId_email"}
	}
	b.ID = primitive.NewObjectID().Hex()
	cp := *b
	f.byID[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[b.ID]; !ok {
		return domain.ErrNotFound
	}
	if f.pairTaken(b) {
		return &domain.UniqueConstraintError{Collection: "bookings", Index: "eventId_email"}
	}
	cp := *b
	f.byID[b.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	if b, ok := f.byID[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBookingRepo) ListByEventID(ctx context.Context, eventID string) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Booking
	for _, b := range f.byID {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	return out, nil
}

// fakeEmailService records confirmations instead of sending them.
type fakeEmailService struct {
	sent []*domain.BookingConfirmationEmailData
	err  error
}

func (f *fakeEmailService) SendBookingConfirmation(ctx context.Context, data *domain.BookingConfirmationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}
