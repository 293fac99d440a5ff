package domain

import (
	"fmt"
	"strings"
	"time"
)

const maxIdentifierLength = 50

// Identity is a registered officer or member keyed by an identifier
// (student number or officer tag). The identifier never changes after creation.
type Identity struct {
	ID         uint      `json:"id"`
	Identifier string    `json:"identifier"`
	Name       string    `json:"name"`
	Position   string    `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Member is an entry of the secondary member registry (registered user
// accounts) that may back-fill the identity store on first scan.
type Member struct {
	Identifier string
	FullName   string
}

// IdentifierPolicy constrains the format of scanned identifiers.
// Length == 0 means free-form (non-empty, at most 50 characters).
type IdentifierPolicy struct {
	Length  int
	Numeric bool
}

// DefaultIdentifierPolicy matches 7-digit student numbers.
var DefaultIdentifierPolicy = IdentifierPolicy{Length: 7, Numeric: true}

// Normalize trims raw input and checks it against the policy.
func (p IdentifierPolicy) Normalize(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", fmt.Errorf("%w: identifier is required", ErrMalformedIdentifier)
	}
	if p.Length > 0 && len(id) != p.Length {
		return "", fmt.Errorf("%w: must be exactly %d characters", ErrMalformedIdentifier, p.Length)
	}
	if len(id) > maxIdentifierLength {
		return "", fmt.Errorf("%w: must be at most %d characters", ErrMalformedIdentifier, maxIdentifierLength)
	}
	if p.Numeric {
		for _, r := range id {
			if r < '0' || r > '9' {
				return "", fmt.Errorf("%w: must contain only digits", ErrMalformedIdentifier)
			}
		}
	}
	return id, nil
}
