package engine

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/tartampluch/go-addressbook/internal/config"
)

// AddressBook owns all contacts, keyed by name.
// Insertion order is kept for display; the map is never exposed so every
// key always equals its record's name.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// NewAddressBook returns an empty address book.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord inserts record under its name.
// An existing record with the same name is replaced entirely (phones are not merged)
// and keeps its display position.
func (b *AddressBook) AddRecord(record *Record) {
	if record == nil {
		return
	}
	name := record.Name()
	if _, exists := b.records[name]; exists {
		slog.Debug(config.MsgRecordReplaced,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyName, name)
	} else {
		b.order = append(b.order, name)
	}
	b.records[name] = record
}

// Find returns the record stored under name.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes the record stored under name. Unknown names are ignored.
func (b *AddressBook) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	if i := slices.Index(b.order, name); i >= 0 {
		b.order = slices.Delete(b.order, i, i+1)
	}
}

// Len returns the number of contacts.
func (b *AddressBook) Len() int {
	return len(b.records)
}

// Records returns the contacts in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// UpcomingBirthdays lists every contact whose congratulation day falls in the
// lookahead window starting at today.
func (b *AddressBook) UpcomingBirthdays(today time.Time) []CongratulationEntry {
	var entries []CongratulationEntry
	for _, r := range b.Records() {
		day, ok := r.congratulationDay(today)
		if !ok {
			continue
		}
		slog.Debug(config.MsgReminderFound,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyName, r.Name(),
			config.LogKeyDate, day.Format(config.VCardDateDash))

		entries = append(entries, CongratulationEntry{
			Name:               r.Name(),
			CongratulationDate: FormatCongratulation(day),
			Date:               day,
		})
	}
	return entries
}

// String renders every contact on its own line.
func (b *AddressBook) String() string {
	lines := make([]string, 0, len(b.order))
	for _, r := range b.Records() {
		lines = append(lines, r.String())
	}
	return strings.Join(lines, "\n")
}
