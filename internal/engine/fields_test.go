package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/engine"
)

func TestNewPhone(t *testing.T) {
	invalid := []struct {
		name string
		raw  string
	}{
		{"Empty", ""},
		{"Too short", "123456789"},
		{"Too long", "12345678901"},
		{"Letter inside", "12345a7890"},
		{"Formatted", "123-456-78"},
		{"Leading plus", "+123456789"},
		{"Spaces", " 123456789"},
		{"Non-ASCII digits", "١٢٣٤٥٦٧٨٩٠"},
		{"Fullwidth digits", "１２３４５６７８９０"},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.NewPhone(tt.raw)
			assert.ErrorIs(t, err, engine.ErrInvalidPhoneFormat)
		})
	}

	t.Run("Valid round-trips", func(t *testing.T) {
		for _, raw := range []string{"0123456789", "5555555555", "0000000000"} {
			p, err := engine.NewPhone(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, p.String())
		}
	})
}

func TestNewBirthday(t *testing.T) {
	invalid := []string{
		"",
		"1.1.2000",
		"01.1.2000",
		"01.01.00",
		"2000-01-01",
		"01/01/2000",
		"30.02.2024",
		"29.02.2023",
		"32.01.2024",
		"00.01.2024",
		"15.13.2024",
		"15.06.2024 ",
		"x15.06.2024",
	}

	for _, raw := range invalid {
		t.Run("Invalid "+raw, func(t *testing.T) {
			_, err := engine.NewBirthday(raw)
			assert.ErrorIs(t, err, engine.ErrInvalidDateFormat)
		})
	}

	t.Run("Valid round-trips", func(t *testing.T) {
		for _, raw := range []string{"01.01.2000", "29.02.2024", "31.12.1999", "15.06.2024"} {
			b, err := engine.NewBirthday(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, b.String())
		}
	})
}

func TestNewName_IsExact(t *testing.T) {
	assert.Equal(t, "Bob", engine.NewName("Bob").String())
	assert.NotEqual(t, engine.NewName("bob"), engine.NewName("Bob"), "Names are case-sensitive")
}
