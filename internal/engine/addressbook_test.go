package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/engine"
)

func newRecord(t *testing.T, name, birthday string, phones ...string) *engine.Record {
	t.Helper()
	r := engine.NewRecord(name)
	for _, p := range phones {
		require.NoError(t, r.AddPhone(p))
	}
	if birthday != "" {
		require.NoError(t, r.AddBirthday(birthday))
	}
	return r
}

func TestAddressBook_AddFindDelete(t *testing.T) {
	book := engine.NewAddressBook()
	john := newRecord(t, "John", "", "1111111111")
	book.AddRecord(john)

	found, ok := book.Find("John")
	require.True(t, ok)
	assert.Same(t, john, found)

	_, ok = book.Find("john")
	assert.False(t, ok, "Lookup is case-sensitive")

	book.Delete("Ghost")
	assert.Equal(t, 1, book.Len(), "Deleting an absent name is a no-op")

	book.Delete("John")
	_, ok = book.Find("John")
	assert.False(t, ok)
	_, ok = book.Find("Ghost")
	assert.False(t, ok)
	assert.Equal(t, 0, book.Len())
}

func TestAddressBook_AddRecord_Overwrites(t *testing.T) {
	book := engine.NewAddressBook()
	book.AddRecord(newRecord(t, "Alice", "", "1111111111"))
	book.AddRecord(newRecord(t, "Bob", "", "2222222222"))
	book.AddRecord(newRecord(t, "Alice", "", "3333333333"))

	alice, ok := book.Find("Alice")
	require.True(t, ok)
	assert.Equal(t, []string{"3333333333"}, phoneStrings(alice), "Last write wins, no merge")

	records := book.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "Alice", records[0].Name(), "Overwrite keeps display position")
	assert.Equal(t, "Bob", records[1].Name())
}

func TestAddressBook_AddRecord_Nil(t *testing.T) {
	book := engine.NewAddressBook()
	book.AddRecord(nil)
	assert.Equal(t, 0, book.Len())
}

func TestAddressBook_String(t *testing.T) {
	book := engine.NewAddressBook()
	assert.Empty(t, book.String())

	book.AddRecord(newRecord(t, "Alice", "01.02.1990", "1111111111"))
	book.AddRecord(newRecord(t, "Bob", "", "2222222222"))

	expected := "Contact name: Alice, phones: 1111111111, birthday: 01.02.1990\n" +
		"Contact name: Bob, phones: 2222222222"
	assert.Equal(t, expected, book.String())
}

func TestAddressBook_UpcomingBirthdays(t *testing.T) {
	monday := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	t.Run("No birthdays set", func(t *testing.T) {
		book := engine.NewAddressBook()
		book.AddRecord(newRecord(t, "Alice", "", "1111111111"))
		assert.Empty(t, book.UpcomingBirthdays(monday))
	})

	t.Run("Mixed contacts", func(t *testing.T) {
		book := engine.NewAddressBook()
		book.AddRecord(newRecord(t, "Wednesday", "12.06.1990"))
		book.AddRecord(newRecord(t, "Saturday", "15.06.1990"))
		book.AddRecord(newRecord(t, "Sunday", "16.06.1990"))
		book.AddRecord(newRecord(t, "Later", "30.06.1990"))
		book.AddRecord(newRecord(t, "NoBirthday", ""))

		entries := book.UpcomingBirthdays(monday)
		require.Len(t, entries, 1)
		assert.Equal(t, "Wednesday", entries[0].Name)
		assert.Equal(t, "12.6.2024", entries[0].CongratulationDate)
		assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), entries[0].Date)
	})
}
