package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
	_ "modernc.org/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS contacts (
		position INTEGER NOT NULL,
		name     TEXT    NOT NULL PRIMARY KEY,
		birthday TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS phones (
		contact  TEXT    NOT NULL REFERENCES contacts(name) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		number   TEXT    NOT NULL
	)`,
}

// SQLiteStore keeps the address book in a SQLite database.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Load reads every contact. A missing database yields an empty book and is
// not created until the first Save.
func (s *SQLiteStore) Load(ctx context.Context) (*engine.AddressBook, error) {
	if s.db == nil {
		if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
			slog.Info(config.MsgStoreMissing,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyFile, s.path)
			return engine.NewAddressBook(), nil
		}
	}
	if err := s.open(ctx); err != nil {
		return nil, err
	}

	contacts, err := s.readContacts(ctx)
	if err != nil {
		return nil, err
	}
	book, err := restore(contacts)
	if err != nil {
		return nil, err
	}

	slog.Info(config.MsgStoreLoaded,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyBackend, config.BackendSQLite,
		config.LogKeyCount, book.Len())
	return book, nil
}

func (s *SQLiteStore) readContacts(ctx context.Context) ([]contactSnapshot, error) {
	contacts, err := s.queryContacts(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(contacts))
	for i, c := range contacts {
		index[c.Name] = i
	}

	rows, err := s.db.QueryContext(ctx, `SELECT contact, number FROM phones ORDER BY contact, position`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var contact, number string
		if err := rows.Scan(&contact, &number); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
		}
		if i, ok := index[contact]; ok {
			contacts[i].Phones = append(contacts[i].Phones, number)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
	}
	return contacts, nil
}

// queryContacts must release its rows before the phone query runs: the pool
// holds a single connection.
func (s *SQLiteStore) queryContacts(ctx context.Context) ([]contactSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, birthday FROM contacts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
	}
	defer func() { _ = rows.Close() }()

	var contacts []contactSnapshot
	for rows.Next() {
		var name string
		var birthday sql.NullString
		if err := rows.Scan(&name, &birthday); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
		}
		contacts = append(contacts, contactSnapshot{Name: name, Birthday: birthday.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreQuery, err)
	}
	return contacts, nil
}

// Save rewrites both tables in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, book *engine.AddressBook) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	if err := s.open(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM phones`); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM contacts`); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	for pos, c := range snapshotOf(book) {
		var birthday sql.NullString
		if c.Birthday != "" {
			birthday = sql.NullString{String: c.Birthday, Valid: true}
		}
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO contacts (position, name, birthday) VALUES (?, ?, ?)`,
			pos, c.Name, birthday); err != nil {
			return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
		}
		for i, number := range c.Phones {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO phones (contact, position, number) VALUES (?, ?, ?)`,
				c.Name, i, number); err != nil {
				return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	slog.Info(config.MsgStoreSaved,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyBackend, config.BackendSQLite,
		config.LogKeyCount, book.Len())
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// open connects once and makes sure the schema exists.
func (s *SQLiteStore) open(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open(config.SQLiteDriver, s.path)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreOpen, err)
	}
	// PRAGMAs are per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		`PRAGMA foreign_keys = ON`,
		fmt.Sprintf(`PRAGMA busy_timeout = %d`, config.SQLiteBusyTimeout.Milliseconds()),
	}
	for _, p := range append(pragmas, schema...) {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return fmt.Errorf("%s: %w", config.ErrStoreMigrate, err)
		}
	}

	// The driver creates the file with the process umask.
	_ = os.Chmod(s.path, config.FilePermUserRW)

	s.db = db
	return nil
}
