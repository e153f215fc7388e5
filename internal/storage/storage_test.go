package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
	"github.com/tartampluch/go-addressbook/internal/storage"
)

// sampleBook covers every piece of state a store must keep: order, duplicate
// phones, a contact without phones and optional birthdays.
func sampleBook(t *testing.T) *engine.AddressBook {
	t.Helper()
	book := engine.NewAddressBook()

	zed := engine.NewRecord("Zed")
	require.NoError(t, zed.AddPhone("1111111111"))
	require.NoError(t, zed.AddPhone("1111111111"))
	require.NoError(t, zed.AddPhone("0222222222"))
	require.NoError(t, zed.AddBirthday("29.02.2000"))
	book.AddRecord(zed)

	book.AddRecord(engine.NewRecord("alice"))

	bob := engine.NewRecord("Bob")
	require.NoError(t, bob.AddPhone("3333333333"))
	book.AddRecord(bob)

	return book
}

func TestOpen_PicksBackend(t *testing.T) {
	tests := []struct {
		path    string
		backend string
	}{
		{"book.json", config.BackendJSON},
		{"book", config.BackendJSON},
		{"book.pkl", config.BackendJSON},
		{"book.db", config.BackendSQLite},
		{"book.sqlite", config.BackendSQLite},
		{"BOOK.SQLITE3", config.BackendSQLite},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			s := storage.Open(tt.path)
			defer func() { _ = s.Close() }()
			assert.Equal(t, tt.backend, storage.Backend(s))
		})
	}
}

func TestStores_RoundTrip(t *testing.T) {
	for _, name := range []string{"book.json", "book.db"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "nested", name)
			original := sampleBook(t)

			writer := storage.Open(path)
			require.NoError(t, writer.Save(ctx, original))
			require.NoError(t, writer.Close())

			reader := storage.Open(path)
			defer func() { _ = reader.Close() }()
			loaded, err := reader.Load(ctx)
			require.NoError(t, err)

			assert.Equal(t, original.String(), loaded.String(), "Records, phones, birthdays and order must survive")
		})
	}
}

func TestStores_SaveTwiceReplaces(t *testing.T) {
	for _, name := range []string{"book.json", "book.db"} {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), name)
			s := storage.Open(path)
			defer func() { _ = s.Close() }()

			book := sampleBook(t)
			require.NoError(t, s.Save(ctx, book))

			book.Delete("Zed")
			require.NoError(t, s.Save(ctx, book))

			loaded, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, 2, loaded.Len())
			_, ok := loaded.Find("Zed")
			assert.False(t, ok)
		})
	}
}

func TestStores_MissingYieldsEmptyBook(t *testing.T) {
	for _, name := range []string{"absent.json", "absent.db"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			s := storage.Open(path)
			defer func() { _ = s.Close() }()

			book, err := s.Load(context.Background())
			require.NoError(t, err)
			require.NotNil(t, book)
			assert.Equal(t, 0, book.Len())

			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr), "Loading must not create the store")
		})
	}
}

func TestJSONStore_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	s := storage.NewJSONStore(path)
	require.NoError(t, s.Save(context.Background(), sampleBook(t)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, config.FilePermUserRW, info.Mode().Perm())
}

func TestJSONStore_CorruptData(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Not JSON", "{"},
		{"Invalid phone", `{"version":1,"contacts":[{"name":"A","phones":["12"]}]}`},
		{"Invalid birthday", `{"version":1,"contacts":[{"name":"A","phones":[],"birthday":"2000-01-01"}]}`},
		{"Future version", `{"version":99,"contacts":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "book.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), config.FilePermUserRW))

			_, err := storage.NewJSONStore(path).Load(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestJSONStore_InvalidPhoneIsReported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	content := `{"version":1,"contacts":[{"name":"A","phones":["12"]}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), config.FilePermUserRW))

	_, err := storage.NewJSONStore(path).Load(context.Background())
	assert.ErrorIs(t, err, engine.ErrInvalidPhoneFormat)
	assert.Contains(t, err.Error(), `"A"`)
}

func TestStores_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := storage.NewJSONStore(filepath.Join(t.TempDir(), "book.json"))
	assert.ErrorIs(t, s.Save(ctx, engine.NewAddressBook()), context.Canceled)
	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
