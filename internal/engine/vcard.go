package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// ImportStats summarizes a vCard import.
type ImportStats struct {
	Cards            int // cards decoded successfully
	Created          int // new records inserted
	Merged           int // cards merged into an existing record
	SkippedCards     int // malformed cards or cards without a name
	SkippedPhones    int // TEL values that are not 10 digits
	SkippedBirthdays int // BDAY values without a year or unparsable
}

// phoneSeparators are stripped from TEL values before validation.
var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// ExportVCards writes one vCard 4.0 per record, in insertion order.
// It returns the number of cards written.
func ExportVCards(w io.Writer, book *AddressBook) (int, error) {
	enc := vcard.NewEncoder(w)
	count := 0

	for _, r := range book.Records() {
		card := make(vcard.Card)
		card.SetValue(vcard.FieldVersion, config.VCardVersion)
		card.SetValue(vcard.FieldFormattedName, r.Name())
		// N is mandatory in vCard 3.0 readers; the whole name goes to GivenName.
		card.AddName(&vcard.Name{GivenName: r.Name()})
		for _, p := range r.Phones() {
			card.AddValue(vcard.FieldTelephone, p.String())
		}
		if b, ok := r.Birthday(); ok {
			card.SetValue(vcard.FieldBirthday, b.Date().Format(config.VCardDateDash))
		}

		if err := enc.Encode(card); err != nil {
			return count, fmt.Errorf("%s: %w", config.ErrVCardEncode, err)
		}
		count++
	}

	slog.Info(config.MsgExportDone,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyCount, count,
	)
	return count, nil
}

// ImportVCards decodes a vCard stream into book.
// A card naming an existing contact is merged: unknown phones are appended and
// a birthday replaces the current one. Values that do not satisfy the contact
// rules are skipped and counted rather than failing the import.
//
// Cards are staged and applied only once the whole stream is read, so a
// cancelled import leaves book untouched.
func ImportVCards(ctx context.Context, r io.Reader, book *AddressBook) (ImportStats, error) {
	start := time.Now()
	var stats ImportStats
	decoder := vcard.NewDecoder(r)

	staged := make(map[string]*Record)
	var order []string

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			stats.SkippedCards++
			break
		}
		if err != nil {
			// Log error but continue to next card to maximize data recovery
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, fmt.Errorf("%s: %w", config.ErrVCardDecode, err))
			stats.SkippedCards++
			continue
		}
		stats.Cards++

		name := cardName(card)
		if name == "" {
			slog.Debug(config.MsgSkippedNoName, config.LogKeyComponent, config.CompEngine)
			stats.SkippedCards++
			continue
		}

		record, exists := staged[name]
		if !exists {
			if current, ok := book.Find(name); ok {
				record, exists = current.clone(), true
			} else {
				record = NewRecord(name)
			}
			staged[name] = record
			order = append(order, name)
		}

		for _, tel := range card.Values(vcard.FieldTelephone) {
			number := phoneSeparators.Replace(tel)
			if _, dup := record.FindPhone(number); dup {
				continue
			}
			if err := record.AddPhone(number); err != nil {
				slog.Debug(config.MsgSkippedPhone,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyName, name,
					config.LogKeyValue, tel)
				stats.SkippedPhones++
			}
		}

		if bday := card.Value(vcard.FieldBirthday); bday != "" {
			if date, ok := parseVCardDate(bday); ok {
				b := BirthdayFromDate(date)
				record.birthday = &b
			} else {
				slog.Debug(config.MsgSkippedDate,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyName, name,
					config.LogKeyValue, bday)
				stats.SkippedBirthdays++
			}
		}

		if exists {
			stats.Merged++
		} else {
			stats.Created++
		}
	}

	// AddRecord keeps the position of replaced contacts.
	for _, name := range order {
		book.AddRecord(staged[name])
	}

	slog.Info(config.MsgImportDone,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.Cards),
			slog.Int(config.LogKeyCreated, stats.Created),
			slog.Int(config.LogKeyMerged, stats.Merged),
			slog.Int(config.LogKeySkipped, stats.SkippedCards+stats.SkippedPhones+stats.SkippedBirthdays),
		),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return stats, nil
}

// cardName applies the naming strategy: FN (Formatted) > N (Structured).
// Command arguments are split on whitespace, so the words of a name are
// joined with NameWordSeparator to keep the contact addressable.
func cardName(card vcard.Card) string {
	raw := card.Value(vcard.FieldFormattedName)
	if strings.TrimSpace(raw) == "" {
		if n := card.Name(); n != nil {
			raw = n.GivenName + " " + n.FamilyName
		}
	}
	return strings.Join(strings.Fields(raw), config.NameWordSeparator)
}

// parseVCardDate accepts the BDAY layouts that carry a year.
// Truncated dates (--MM-DD) cannot become a Birthday and are rejected.
func parseVCardDate(value string) (time.Time, bool) {
	layouts := []string{
		config.VCardDateDash,
		config.VCardDateBasic,
		config.VCardDateFullT,
		time.RFC3339,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
