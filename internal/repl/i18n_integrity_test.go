package repl_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/repl"
)

// TestI18nIntegrity ensures that every translation key defined in config.go
// exists in each locale file.
func TestI18nIntegrity(t *testing.T) {
	keysToCheck := []string{
		config.TKeyWelcome,
		config.TKeyPrompt,
		config.TKeyGoodbye,
		config.TKeyHello,
		config.TKeyInvalidCommand,
		config.TKeyHelp,
		config.TKeyContactAdded,
		config.TKeyContactUpdated,
		config.TKeyContactChanged,
		config.TKeyContactPhones,
		config.TKeyContactDeleted,
		config.TKeyPhoneRemoved,
		config.TKeyBookEmpty,
		config.TKeyBirthdayAdded,
		config.TKeyBirthdayShow,
		config.TKeyNoUpcoming,
		config.TKeyUpcomingLine,
		config.TKeyExported,
		config.TKeyImported,
		config.TKeyCalendarWritten,
		config.TKeyEventSummary,
		config.TKeyErrInvalidArgs,
		config.TKeyErrNotInContacts,
		config.TKeyErrMissingArgs,
		config.TKeyErrNotFound,
		config.TKeyErrFile,
	}

	definedKeys := make(map[string]bool, len(keysToCheck))
	for _, k := range keysToCheck {
		definedKeys[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
			require.NoError(t, err, "Must load locale file for %s", lang)

			var jsonMap map[string]interface{}
			require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

			for key := range definedKeys {
				_, exists := jsonMap[key]
				assert.Truef(t, exists, "Key '%s' defined in config.go is missing in active.%s.json", key, lang)
			}

			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				assert.Truef(t, definedKeys[jsonKey], "Key '%s' in active.%s.json has no constant", jsonKey, lang)
			}
		})
	}
}

func TestTranslator_Languages(t *testing.T) {
	tr := repl.NewTranslator("en")
	assert.ElementsMatch(t, config.SupportedLanguages, tr.Languages)
}

func TestTranslator_Fallbacks(t *testing.T) {
	assert.Equal(t, "How can I help you?", repl.NewTranslator("de").Msg(config.TKeyHello, nil), "Unknown language falls back to English")
	assert.Equal(t, "How can I help you?", repl.NewTranslator("").Msg(config.TKeyHello, nil))
	assert.Equal(t, "no_such_key", repl.NewTranslator("en").Msg("no_such_key", nil))

	var nilTranslator *repl.Translator
	assert.Equal(t, config.TKeyHello, nilTranslator.Msg(config.TKeyHello, nil))
}

func TestTranslator_Templates(t *testing.T) {
	tr := repl.NewTranslator("en")
	got := tr.Msg(config.TKeyContactChanged, map[string]any{"Name": "John", "Old": "1", "New": "2"})
	assert.Equal(t, "Contact John changed the number from 1 to 2", got)
}
