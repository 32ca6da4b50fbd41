package principal

import (
	"errors"
	"strings"
)

// Kind discriminates the two principal variants the service knows about.
type Kind string

const (
	KindRider  Kind = "rider"
	KindDriver Kind = "driver"
)

var ErrInvalidKind = errors.New("invalid principal kind")

// ParseKind normalizes (lowercases, trims) and validates a kind string.
func ParseKind(in string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(in)))
	if kind.Valid() {
		return kind, nil
	}
	return "", ErrInvalidKind
}

// Valid reports whether kind is one of the allowed kind constants.
func (kind Kind) Valid() bool {
	switch kind {
	case KindRider, KindDriver:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Kind.
func (kind Kind) String() string {
	return string(kind)
}
