package core

import "errors"

// Validation errors raised at the ingestion boundary. The HTTP layer maps
// all of these to a 400 response with the error's message.
var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidUserID      = errors.New("invalid user id")
	ErrEmptyDescription   = errors.New("empty description")
	ErrDescriptionTooLong = errors.New("description too long (max 200 characters)")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidYear        = errors.New("invalid year")
	ErrInvalidMonth       = errors.New("invalid month")
	ErrInvalidDay         = errors.New("invalid day")
	ErrInvalidDate        = errors.New("invalid date")
	ErrEmptyName          = errors.New("empty first or last name")
)

// Contract errors whose messages are part of the wire format: clients
// receive them verbatim in the {id, message} error body.
var (
	ErrUserUnknown    = errors.New("User does not exist")
	ErrUserExists     = errors.New("User already exists")
	ErrPastDate       = errors.New("Cost date cannot be in the past")
	ErrBadReportQuery = errors.New("Missing or invalid id/year/month")
	ErrUserNotFound   = errors.New("User not found")
)

// IsInvalidRequest reports whether err belongs to the invalid-request
// class (HTTP 400) rather than an internal failure (HTTP 500).
func IsInvalidRequest(err error) bool {
	for _, target := range []error{
		ErrMissingFields, ErrInvalidUserID, ErrEmptyDescription,
		ErrDescriptionTooLong, ErrInvalidCategory, ErrInvalidAmount,
		ErrInvalidYear, ErrInvalidMonth, ErrInvalidDay, ErrInvalidDate,
		ErrEmptyName, ErrUserUnknown, ErrUserExists, ErrPastDate, ErrBadReportQuery,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
