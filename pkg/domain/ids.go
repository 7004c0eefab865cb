package domain

import (
	"strings"
	"unicode"

	dErrors "partybridge/pkg/domain-errors"
)

// MaxPartyIDLength bounds identifiers accepted at the trust boundary.
const MaxPartyIDLength = 64

// PartyID identifies a party in the backend. It is opaque to this service.
type PartyID string

// ParsePartyID trims and validates a party identifier. The value is interpolated
// into a URL path, so separators, dot segments and control characters are
// rejected.
func ParsePartyID(s string) (PartyID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "party id is required")
	}
	if len(s) > MaxPartyIDLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "party id is too long")
	}
	if s == "." || s == ".." {
		return "", dErrors.New(dErrors.CodeInvalidInput, "party id is not a valid path segment")
	}
	for _, r := range s {
		if r == '/' || r == '?' || r == '#' || unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "party id contains invalid characters")
		}
	}
	return PartyID(s), nil
}

func (id PartyID) String() string {
	return string(id)
}

// IsNil reports whether the id is empty.
func (id PartyID) IsNil() bool {
	return id == ""
}
