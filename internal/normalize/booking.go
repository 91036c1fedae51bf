package normalize

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"eventbooking/internal/domain"
)

var emailRegex = regexp.MustCompile(`^[^@` + spaceClass + `]+@[^@` + spaceClass + `]+\.[^@` + spaceClass + `]+$`)

// Email checks that v is a non-empty string shaped like local@domain.tld
// and returns it trimmed and lowercased.
func Email(v any) (string, error) {
	s, err := RequiredString("email", v)
	if err != nil {
		return "", err
	}
	if !emailRegex.MatchString(s) {
		return "", domain.NewValidationError("email", "Invalid email format")
	}
	return strings.ToLower(s), nil
}

// ObjectID checks that v is a 24-character hex ObjectId string.
func ObjectID(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok || !primitive.IsValidObjectID(strings.TrimSpace(s)) {
		return "", domain.NewValidationError(field, field+" must be a valid ObjectId")
	}
	return strings.ToLower(strings.TrimSpace(s)), nil
}

// Booking runs the synchronous part of the booking pipeline. The referenced
// event's existence and the (eventId, email) uniqueness are checked by the caller
// and the store respectively.
func Booking(in *domain.BookingInput) (*domain.Booking, error) {
	if in == nil {
		return nil, domain.NewValidationError("booking", "booking is required")
	}
	email, err := Email(in.Email)
	if err != nil {
		return nil, err
	}
	eventID, err := ObjectID("eventId", in.EventID)
	if err != nil {
		return nil, err
	}
	b := &domain.Booking{EventID: eventID, Email: email}
	if err := checkStruct(b); err != nil {
		return nil, err
	}
	return b, nil
}
