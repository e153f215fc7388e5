package repl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
)

// unlimited marks a command that ignores surplus arguments.
const unlimited = -1

type command struct {
	minArgs int
	maxArgs int
	run     func(ctx context.Context, args []string) (string, error)
}

func (c command) checkArgs(args []string) error {
	if len(args) < c.minArgs {
		return errMissingArgs
	}
	if c.maxArgs != unlimited && len(args) > c.maxArgs {
		return errTooManyArgs
	}
	return nil
}

func (s *Shell) registerCommands() map[string]command {
	return map[string]command{
		"hello":         {0, unlimited, s.hello},
		"help":          {0, unlimited, s.help},
		"add":           {2, unlimited, s.addContact},
		"change":        {3, 3, s.changeContact},
		"remove-phone":  {2, 2, s.removePhone},
		"phone":         {1, 1, s.showPhones},
		"delete":        {1, 1, s.deleteContact},
		"all":           {0, unlimited, s.allContacts},
		"add-birthday":  {2, 2, s.addBirthday},
		"show-birthday": {1, 1, s.showBirthday},
		"birthdays":     {0, unlimited, s.birthdays},
		"export":        {1, 1, s.exportVCards},
		"import":        {1, 1, s.importVCards},
		"calendar":      {1, 1, s.writeCalendar},
	}
}

func (s *Shell) hello(context.Context, []string) (string, error) {
	return s.Translator.Msg(config.TKeyHello, nil), nil
}

func (s *Shell) help(context.Context, []string) (string, error) {
	return s.Translator.Msg(config.TKeyHelp, nil), nil
}

// find resolves a contact name or fails with errNotInContacts.
func (s *Shell) find(name string) (*engine.Record, error) {
	record, ok := s.Book.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", errNotInContacts, name)
	}
	return record, nil
}

// addContact creates the contact, or appends the phone to an existing one.
func (s *Shell) addContact(_ context.Context, args []string) (string, error) {
	name, phone := args[0], args[1]

	if record, ok := s.Book.Find(name); ok {
		if err := record.AddPhone(phone); err != nil {
			return "", err
		}
		return s.Translator.Msg(config.TKeyContactUpdated, nil), nil
	}

	record := engine.NewRecord(name)
	if err := record.AddPhone(phone); err != nil {
		return "", err
	}
	s.Book.AddRecord(record)
	return s.Translator.Msg(config.TKeyContactAdded, nil), nil
}

func (s *Shell) changeContact(_ context.Context, args []string) (string, error) {
	name, oldPhone, newPhone := args[0], args[1], args[2]
	record, err := s.find(name)
	if err != nil {
		return "", err
	}
	if err := record.EditPhone(oldPhone, newPhone); err != nil {
		return "", err
	}
	return s.Translator.Msg(config.TKeyContactChanged, map[string]any{
		"Name": name, "Old": oldPhone, "New": newPhone,
	}), nil
}

func (s *Shell) removePhone(_ context.Context, args []string) (string, error) {
	name, phone := args[0], args[1]
	record, err := s.find(name)
	if err != nil {
		return "", err
	}
	if _, ok := record.FindPhone(phone); !ok {
		return "", fmt.Errorf("%w: %q", engine.ErrPhoneNotFound, phone)
	}
	record.RemovePhone(phone)
	return s.Translator.Msg(config.TKeyPhoneRemoved, map[string]any{"Name": name, "Phone": phone}), nil
}

func (s *Shell) showPhones(_ context.Context, args []string) (string, error) {
	record, err := s.find(args[0])
	if err != nil {
		return "", err
	}
	phones := record.Phones()
	numbers := make([]string, len(phones))
	for i, p := range phones {
		numbers[i] = p.String()
	}
	return s.Translator.Msg(config.TKeyContactPhones, map[string]any{
		"Name": args[0], "Phones": strings.Join(numbers, ", "),
	}), nil
}

func (s *Shell) deleteContact(_ context.Context, args []string) (string, error) {
	if _, err := s.find(args[0]); err != nil {
		return "", err
	}
	s.Book.Delete(args[0])
	return s.Translator.Msg(config.TKeyContactDeleted, map[string]any{"Name": args[0]}), nil
}

func (s *Shell) allContacts(context.Context, []string) (string, error) {
	if s.Book.Len() == 0 {
		return s.Translator.Msg(config.TKeyBookEmpty, nil), nil
	}
	return s.Book.String(), nil
}

func (s *Shell) addBirthday(_ context.Context, args []string) (string, error) {
	name, birthday := args[0], args[1]
	record, err := s.find(name)
	if err != nil {
		return "", err
	}
	if err := record.AddBirthday(birthday); err != nil {
		return "", err
	}
	return s.Translator.Msg(config.TKeyBirthdayAdded, map[string]any{"Name": name, "Birthday": birthday}), nil
}

func (s *Shell) showBirthday(_ context.Context, args []string) (string, error) {
	record, err := s.find(args[0])
	if err != nil {
		return "", err
	}
	b, ok := record.Birthday()
	if !ok {
		return "", fmt.Errorf("%w: %q", errNoBirthday, args[0])
	}
	return s.Translator.Msg(config.TKeyBirthdayShow, map[string]any{"Name": args[0], "Birthday": b.String()}), nil
}

// birthdays reads the clock once so every contact is measured against the same day.
func (s *Shell) birthdays(context.Context, []string) (string, error) {
	entries := s.Book.UpcomingBirthdays(s.Clock.Now())
	if len(entries) == 0 {
		return s.Translator.Msg(config.TKeyNoUpcoming, nil), nil
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = s.Translator.Msg(config.TKeyUpcomingLine, map[string]any{
			"Name": e.Name, "Date": e.CongratulationDate,
		})
	}
	return strings.Join(lines, "\n"), nil
}

func (s *Shell) exportVCards(_ context.Context, args []string) (reply string, err error) {
	path := args[0]
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, config.FilePermUserRW)
	if err != nil {
		return "", &fileError{path: path, err: fmt.Errorf("%s: %w", config.ErrFileCreate, err)}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			reply, err = "", &fileError{path: path, err: fmt.Errorf("%s: %w", config.ErrFileClose, cerr)}
		}
	}()

	count, err := engine.ExportVCards(f, s.Book)
	if err != nil {
		return "", &fileError{path: path, err: err}
	}
	return s.Translator.Msg(config.TKeyExported, map[string]any{"Count": count, "Path": path}), nil
}

func (s *Shell) importVCards(ctx context.Context, args []string) (string, error) {
	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return "", &fileError{path: path, err: fmt.Errorf("%s: %w", config.ErrFileOpen, err)}
	}
	// Best effort close. Errors in Close() for read-only files are rarely actionable here.
	defer func() { _ = f.Close() }()

	stats, err := engine.ImportVCards(ctx, f, s.Book)
	if err != nil {
		return "", &fileError{path: path, err: err}
	}
	return s.Translator.Msg(config.TKeyImported, map[string]any{
		"Count":   stats.Created + stats.Merged,
		"Skipped": stats.SkippedCards + stats.SkippedPhones + stats.SkippedBirthdays,
		"Path":    path,
	}), nil
}

// writeCalendar exports the current congratulation report as an iCalendar file.
func (s *Shell) writeCalendar(_ context.Context, args []string) (string, error) {
	path := args[0]
	now := s.Clock.Now()
	entries := s.Book.UpcomingBirthdays(now)

	data, err := engine.BuildCalendar(entries, now, func(name string) string {
		return s.Translator.Msg(config.TKeyEventSummary, map[string]any{"Name": name})
	})
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, config.FilePermUserRW); err != nil {
		return "", &fileError{path: path, err: fmt.Errorf("%s: %w", config.ErrFileCreate, err)}
	}
	return s.Translator.Msg(config.TKeyCalendarWritten, map[string]any{"Count": len(entries), "Path": path}), nil
}
