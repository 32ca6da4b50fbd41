package ride

import (
	"errors"
	"strings"
)

// Status is a ride status as carried on the wire by the ZippGo service.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusAccepted  Status = "Accepted"
	StatusOngoing   Status = "Ongoing"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

var ErrInvalidStatus = errors.New("invalid ride status")

// ParseStatus normalizes (trims, fixes case) and validates a status string.
func ParseStatus(in string) (Status, error) {
	trimmed := strings.TrimSpace(in)
	if trimmed == "" {
		return "", ErrInvalidStatus
	}
	status := Status(strings.ToUpper(trimmed[:1]) + strings.ToLower(trimmed[1:]))
	if status.Valid() {
		return status, nil
	}
	return "", ErrInvalidStatus
}

// Valid reports whether status is one of the allowed ride status constants.
func (status Status) Valid() bool {
	switch status {
	case StatusPending, StatusAccepted, StatusOngoing, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// String returns the string representation of the Status.
func (status Status) String() string {
	return string(status)
}

// CanTransitionTo specifies if the status can transition to the next status.
func (status Status) CanTransitionTo(next Status) bool {
	switch status {
	case StatusPending:
		return next == StatusAccepted || next == StatusCancelled

	case StatusAccepted:
		return next == StatusOngoing || next == StatusCancelled

	case StatusOngoing:
		return next == StatusCompleted

	case StatusCompleted, StatusCancelled:
		return false

	default:
		return false
	}
}

// Terminal indicates if the status is in a terminal state.
func (status Status) Terminal() bool {
	return status == StatusCompleted || status == StatusCancelled
}
