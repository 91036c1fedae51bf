package normalize

import "eventbooking/internal/domain"

// Event runs the event pipeline on in. prev is the currently stored version
// of the event, or nil on create; it decides whether the slug is re-derived.
// The returned record carries no ID or timestamps.
func Event(in *domain.EventInput, prev *domain.Event) (*domain.Event, error) {
	if in == nil {
		return nil, domain.NewValidationError("event", "event is required")
	}

	e := &domain.Event{}
	required := []struct {
		name string
		raw  any
		dst  *string
	}{
		{"title", in.Title, &e.Title},
		{"description", in.Description, &e.Description},
		{"overview", in.Overview, &e.Overview},
		{"image", in.Image, &e.Image},
		{"venue", in.Venue, &e.Venue},
		{"location", in.Location, &e.Location},
		{"date", in.Date, &e.Date},
		{"time", in.Time, &e.Time},
		{"mode", in.Mode, &e.Mode},
		{"audience", in.Audience, &e.Audience},
		{"organizer", in.Organizer, &e.Organizer},
	}
	for _, f := range required {
		s, err := RequiredString(f.name, f.raw)
		if err != nil {
			return nil, err
		}
		*f.dst = s
	}

	var err error
	if e.Agenda, err = List("agenda", in.Agenda); err != nil {
		return nil, err
	}
	if e.Tags, err = List("tags", in.Tags); err != nil {
		return nil, err
	}
	if e.Date, err = Date(e.Date); err != nil {
		return nil, err
	}
	if e.Time, err = Time(e.Time); err != nil {
		return nil, err
	}

	if prev == nil || prev.Slug == "" || prev.Title != e.Title {
		e.Slug = ToSlug(e.Title)
	} else {
		e.Slug = prev.Slug
	}

	if err := checkStruct(e); err != nil {
		return nil, err
	}
	return e, nil
}
