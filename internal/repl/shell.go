// Package repl is the interactive command loop around the address book.
//
// It tokenizes each input line, dispatches it to a command handler and
// translates core errors into localized replies. The core itself never sees
// presentation strings.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
)

// Errors raised by the command layer on top of the engine's error kinds.
var (
	errMissingArgs   = errors.New("missing arguments")
	errTooManyArgs   = errors.New("too many arguments")
	errNotInContacts = errors.New("name not in contacts")
	errNoBirthday    = errors.New("birthday not set")
)

// fileError reports a file the user named that could not be read or written.
type fileError struct {
	path string
	err  error
}

func (e *fileError) Error() string { return e.path + ": " + e.err.Error() }
func (e *fileError) Unwrap() error { return e.err }

// Shell runs commands against one AddressBook for the lifetime of a session.
type Shell struct {
	Book       *engine.AddressBook
	Clock      engine.Clock
	Translator *Translator

	in       io.Reader
	out      io.Writer
	commands map[string]command
}

// NewShell wires a command loop reading from in and replying to out.
func NewShell(book *engine.AddressBook, clock engine.Clock, tr *Translator, in io.Reader, out io.Writer) *Shell {
	s := &Shell{
		Book:       book,
		Clock:      clock,
		Translator: tr,
		in:         in,
		out:        out,
	}
	s.commands = s.registerCommands()
	return s
}

// Run prints the welcome message and processes lines until close/exit, end
// of input or cancellation of ctx. Persisting the book is left to the caller.
func (s *Shell) Run(ctx context.Context) error {
	// Stops the reader goroutine once the loop returns.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			readErr <- err
		}
	}()

	if err := s.println(s.Translator.Msg(config.TKeyWelcome, nil)); err != nil {
		return err
	}

	for {
		if err := s.print(s.Translator.Msg(config.TKeyPrompt, nil)); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompREPL)
			return s.println("")
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					return fmt.Errorf("%s: %w", config.ErrInputRead, err)
				default:
					return s.println("")
				}
			}

			reply, quit := s.Execute(ctx, line)
			if reply != "" {
				if err := s.println(reply); err != nil {
					return err
				}
			}
			if quit {
				return nil
			}
		}
	}
}

// Execute runs one input line and returns the reply.
// quit is true for close and exit. Blank lines produce no reply.
func (s *Shell) Execute(ctx context.Context, line string) (reply string, quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	switch name {
	case "close", "exit":
		return "", true
	}

	cmd, ok := s.commands[name]
	if !ok {
		return s.Translator.Msg(config.TKeyInvalidCommand, nil), false
	}

	log := slog.With(
		config.LogKeyComponent, config.CompREPL,
		config.LogKeyCommand, name,
	)

	if err := cmd.checkArgs(args); err != nil {
		log.Debug(config.MsgCommandFailed, config.LogKeyArgs, len(args), config.LogKeyError, err)
		return s.translateError(err), false
	}

	reply, err := cmd.run(ctx, args)
	if err != nil {
		log.Warn(config.MsgCommandFailed, config.LogKeyError, err)
		return s.translateError(err), false
	}

	log.Debug(config.MsgCommand)
	return reply, false
}

// translateError maps error kinds to user-facing text.
func (s *Shell) translateError(err error) string {
	var fe *fileError
	switch {
	case errors.Is(err, errMissingArgs):
		return s.Translator.Msg(config.TKeyErrMissingArgs, nil)
	case errors.Is(err, errNotInContacts):
		return s.Translator.Msg(config.TKeyErrNotInContacts, nil)
	case errors.Is(err, errNoBirthday):
		return s.Translator.Msg(config.TKeyErrNotFound, nil)
	case errors.As(err, &fe):
		return s.Translator.Msg(config.TKeyErrFile, map[string]any{"Path": fe.path})
	default:
		// engine.ErrInvalidPhoneFormat, engine.ErrInvalidDateFormat,
		// engine.ErrPhoneNotFound and errTooManyArgs all land here.
		return s.Translator.Msg(config.TKeyErrInvalidArgs, nil)
	}
}

func (s *Shell) print(text string) error {
	if _, err := io.WriteString(s.out, text); err != nil {
		return fmt.Errorf("%s: %w", config.ErrOutputWrite, err)
	}
	return nil
}

func (s *Shell) println(text string) error {
	return s.print(text + "\n")
}
