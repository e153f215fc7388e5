package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"DefaultStoreFile", config.DefaultStoreFile},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"ErrVCardDecode", config.ErrVCardDecode},
		{"NameWordSeparator", config.NameWordSeparator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestLayouts_RoundTrip checks that the date layouts render what the contact rules promise.
func TestLayouts_RoundTrip(t *testing.T) {
	d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "02.01.2024", d.Format(config.BirthdayLayout))
	assert.Equal(t, "2.1.2024", d.Format(config.CongratulationLayout))
	assert.Equal(t, "2024-01-02", d.Format(config.VCardDateDash))
}

// TestScheduling_Sanity guards the relationship between the window and the weekend limits.
func TestScheduling_Sanity(t *testing.T) {
	assert.Equal(t, 6, config.LookaheadDays, "The window covers offsets 0..6")
	assert.Less(t, config.SaturdayShiftLimit, config.SundayShiftLimit)
	assert.LessOrEqual(t, config.SundayShiftLimit, config.LookaheadDays)
	assert.Equal(t, 10, config.PhoneLength)
}

func TestDefaultLanguage_Supported(t *testing.T) {
	assert.Contains(t, config.SupportedLanguages, config.DefaultLanguage)
}
