package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
)

type document struct {
	Version  int               `json:"version"`
	Contacts []contactSnapshot `json:"contacts"`
}

// JSONStore keeps the address book in a single JSON file.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load reads the file. A missing file yields an empty book.
func (s *JSONStore) Load(ctx context.Context) (*engine.AddressBook, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info(config.MsgStoreMissing,
			config.LogKeyComponent, config.CompStorage,
			config.LogKeyFile, s.path)
		return engine.NewAddressBook(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreRead, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStoreParse, err)
	}
	if doc.Version > config.SchemaVersion {
		return nil, fmt.Errorf("%s: %d", config.ErrStoreVersion, doc.Version)
	}

	book, err := restore(doc.Contacts)
	if err != nil {
		return nil, err
	}

	slog.Info(config.MsgStoreLoaded,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyBackend, config.BackendJSON,
		config.LogKeyCount, book.Len())
	return book, nil
}

// Save replaces the file with the current state of book.
func (s *JSONStore) Save(ctx context.Context, book *engine.AddressBook) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := document{
		Version:  config.SchemaVersion,
		Contacts: snapshotOf(book),
	}
	data, err := json.MarshalIndent(doc, "", config.JSONIndent)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreEncode, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), config.DirPermUserRWX); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}
	if err := os.WriteFile(s.path, data, config.FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", config.ErrStoreWrite, err)
	}

	slog.Info(config.MsgStoreSaved,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyBackend, config.BackendJSON,
		config.LogKeyCount, book.Len())
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}
