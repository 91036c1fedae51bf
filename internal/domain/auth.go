package domain

import "time"

// RoleOrganizer is the role required to create or edit events.
const RoleOrganizer = "organizer"

// Principal is the authenticated caller carried by a verified token.
type Principal struct {
	Subject string
	Email   string
	Roles   []string
}

// HasRole reports whether the principal was granted role.
func (p *Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// TokenIssuer issues tokens (e.g. JWT) for a principal.
type TokenIssuer interface {
	Issue(subject, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the principal it was issued to.
type TokenVerifier interface {
	Verify(token string) (*Principal, error)
}
