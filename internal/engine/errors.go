package engine

import "errors"

// Error kinds produced by the address book core.
// Callers match them with errors.Is; the wrapped message carries the offending value.
var (
	// ErrInvalidPhoneFormat reports a phone that is not exactly 10 ASCII digits.
	ErrInvalidPhoneFormat = errors.New("invalid phone number format, use 10 digits")

	// ErrInvalidDateFormat reports a birthday that is not a real DD.MM.YYYY date.
	ErrInvalidDateFormat = errors.New("invalid date format, use DD.MM.YYYY")

	// ErrPhoneNotFound reports an edit on a phone the record does not hold.
	ErrPhoneNotFound = errors.New("phone number not found")
)
