// Package storage persists an AddressBook between sessions.
//
// Two backends share one snapshot model: a JSON document and a SQLite
// database. Both keep every record in display order, every phone in order and
// the optional birthday, and both treat a missing store as an empty book.
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
)

// Store loads and saves a whole AddressBook.
type Store interface {
	Load(ctx context.Context) (*engine.AddressBook, error)
	Save(ctx context.Context, book *engine.AddressBook) error
	Close() error
}

// Open picks the backend from the file extension:
// .db, .sqlite and .sqlite3 use SQLite, anything else uses JSON.
func Open(path string) Store {
	switch strings.ToLower(filepath.Ext(path)) {
	case config.ExtDB, config.ExtSQLite, config.ExtSQLite3:
		return NewSQLiteStore(path)
	default:
		return NewJSONStore(path)
	}
}

// Backend names the backend used by s, for logging.
func Backend(s Store) string {
	if _, ok := s.(*SQLiteStore); ok {
		return config.BackendSQLite
	}
	return config.BackendJSON
}

// contactSnapshot is the persisted form of one Record.
type contactSnapshot struct {
	Name     string   `json:"name"`
	Phones   []string `json:"phones"`
	Birthday string   `json:"birthday,omitempty"`
}

func snapshotOf(book *engine.AddressBook) []contactSnapshot {
	records := book.Records()
	out := make([]contactSnapshot, 0, len(records))
	for _, r := range records {
		c := contactSnapshot{Name: r.Name(), Phones: []string{}}
		for _, p := range r.Phones() {
			c.Phones = append(c.Phones, p.String())
		}
		if b, ok := r.Birthday(); ok {
			c.Birthday = b.String()
		}
		out = append(out, c)
	}
	return out
}

// restore rebuilds a book through the engine constructors so stored data is
// held to the same rules as user input.
func restore(contacts []contactSnapshot) (*engine.AddressBook, error) {
	book := engine.NewAddressBook()
	for _, c := range contacts {
		r := engine.NewRecord(c.Name)
		for _, p := range c.Phones {
			if err := r.AddPhone(p); err != nil {
				return nil, fmt.Errorf("%s %q: %w", config.ErrStoreContact, c.Name, err)
			}
		}
		if c.Birthday != "" {
			if err := r.AddBirthday(c.Birthday); err != nil {
				return nil, fmt.Errorf("%s %q: %w", config.ErrStoreContact, c.Name, err)
			}
		}
		book.AddRecord(r)
	}
	return book, nil
}
