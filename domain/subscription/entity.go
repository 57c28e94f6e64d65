package subscription

import (
	"net/mail"
	"strings"

	"greencity/domain/shared"

	"github.com/google/uuid"
)

// NewsSubscription is an email subscribed to the eco news digest. The token
// authorizes unsubscribing without logging in.
type NewsSubscription struct {
	id    int64
	email string
	token string
}

// NewNewsSubscription normalizes the email to lower case and issues a fresh token.
func NewNewsSubscription(email string) (*NewsSubscription, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	return &NewsSubscription{email: normalized, token: uuid.NewString()}, nil
}

// NormalizeEmail trims and lower-cases the address and checks its syntax.
func NormalizeEmail(email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(normalized)
	if err != nil || addr.Address != normalized {
		return "", shared.NewValidationError("news subscription", "email", "invalid email: "+email)
	}
	return normalized, nil
}

func (s *NewsSubscription) AssignID(id int64) { s.id = id }

func (s *NewsSubscription) ID() int64     { return s.id }
func (s *NewsSubscription) Email() string { return s.email }
func (s *NewsSubscription) Token() string { return s.token }

func Rebuild(id int64, email, token string) *NewsSubscription {
	return &NewsSubscription{id: id, email: email, token: token}
}
