package engine

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// Name identifies a Record inside an AddressBook.
// Comparison is exact and case-sensitive.
type Name struct {
	value string
}

// NewName wraps a raw contact name. Names carry no format rule.
func NewName(raw string) Name {
	return Name{value: raw}
}

func (n Name) String() string {
	return n.value
}

// Phone is a validated phone number of exactly config.PhoneLength ASCII digits.
type Phone struct {
	value string
}

// NewPhone validates raw and returns ErrInvalidPhoneFormat when it is not
// exactly 10 characters in the range '0'..'9'.
func NewPhone(raw string) (Phone, error) {
	if len(raw) != config.PhoneLength {
		return Phone{}, fmt.Errorf("%w: %q", ErrInvalidPhoneFormat, raw)
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return Phone{}, fmt.Errorf("%w: %q", ErrInvalidPhoneFormat, raw)
		}
	}
	return Phone{value: raw}, nil
}

func (p Phone) String() string {
	return p.value
}

// Birthday is a real calendar date parsed from DD.MM.YYYY.
type Birthday struct {
	date time.Time
}

// NewBirthday parses raw with config.BirthdayLayout.
// time.Parse rejects single-digit fields, surrounding text and impossible
// dates such as 30.02.2024, which covers the whole validation rule.
func NewBirthday(raw string) (Birthday, error) {
	t, err := time.Parse(config.BirthdayLayout, raw)
	if err != nil {
		return Birthday{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, raw)
	}
	return Birthday{date: t}, nil
}

// BirthdayFromDate builds a Birthday from an already known calendar date.
// The time of day and location are dropped.
func BirthdayFromDate(t time.Time) Birthday {
	y, m, d := t.Date()
	return Birthday{date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Date returns the birthday at midnight UTC.
func (b Birthday) Date() time.Time {
	return b.date
}

// String renders the birthday as DD.MM.YYYY.
func (b Birthday) String() string {
	return b.date.Format(config.BirthdayLayout)
}

// CongratulationDay returns the weekend-adjusted congratulation date relative to today.
func (b Birthday) CongratulationDay(today time.Time) (time.Time, bool) {
	return CongratulationDay(b.date, today)
}
