package engine

import (
	"fmt"
	"strings"
	"time"
)

// Record is one contact: a fixed name, an ordered list of phones and an
// optional birthday.
type Record struct {
	name     Name
	phones   []Phone
	birthday *Birthday
}

// NewRecord creates a contact with no phones and no birthday.
func NewRecord(name string) *Record {
	return &Record{name: NewName(name)}
}

// Name returns the contact's name.
func (r *Record) Name() string {
	return r.name.String()
}

// Phones returns a copy of the phone list in insertion order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// Birthday returns the contact's birthday, if one is set.
func (r *Record) Birthday() (Birthday, bool) {
	if r.birthday == nil {
		return Birthday{}, false
	}
	return *r.birthday, true
}

// clone returns an independent copy of the record.
func (r *Record) clone() *Record {
	c := &Record{name: r.name, phones: r.Phones()}
	if r.birthday != nil {
		b := *r.birthday
		c.birthday = &b
	}
	return c
}

// AddPhone validates raw and appends it. Duplicates are allowed.
func (r *Record) AddPhone(raw string) error {
	p, err := NewPhone(raw)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops the first phone equal to raw. Missing phones are ignored.
func (r *Record) RemovePhone(raw string) {
	for i, p := range r.phones {
		if p.value == raw {
			r.phones = append(r.phones[:i], r.phones[i+1:]...)
			return
		}
	}
}

// EditPhone replaces old with newPhone.
// The new phone is added before the old one is removed, so an invalid new
// phone leaves the list untouched.
func (r *Record) EditPhone(old, newPhone string) error {
	if _, ok := r.FindPhone(old); !ok {
		return fmt.Errorf("%w: %q", ErrPhoneNotFound, old)
	}
	if err := r.AddPhone(newPhone); err != nil {
		return err
	}
	r.RemovePhone(old)
	return nil
}

// FindPhone returns the first phone equal to raw.
func (r *Record) FindPhone(raw string) (Phone, bool) {
	for _, p := range r.phones {
		if p.value == raw {
			return p, true
		}
	}
	return Phone{}, false
}

// AddBirthday parses raw as DD.MM.YYYY and sets it, replacing any previous birthday.
func (r *Record) AddBirthday(raw string) error {
	b, err := NewBirthday(raw)
	if err != nil {
		return err
	}
	r.birthday = &b
	return nil
}

// CheckBirthday returns the congratulation date (D.M.YYYY) due within the
// lookahead window, or false when no birthday is set or none is due.
func (r *Record) CheckBirthday(today time.Time) (string, bool) {
	day, ok := r.congratulationDay(today)
	if !ok {
		return "", false
	}
	return FormatCongratulation(day), true
}

func (r *Record) congratulationDay(today time.Time) (time.Time, bool) {
	if r.birthday == nil {
		return time.Time{}, false
	}
	return r.birthday.CongratulationDay(today)
}

// String renders the record for the "all" listing.
func (r *Record) String() string {
	numbers := make([]string, len(r.phones))
	for i, p := range r.phones {
		numbers[i] = p.value
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Contact name: %s, phones: %s", r.name, strings.Join(numbers, "; "))
	if r.birthday != nil {
		fmt.Fprintf(&sb, ", birthday: %s", r.birthday)
	}
	return sb.String()
}
