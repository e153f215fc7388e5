package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/tartampluch/go-addressbook/internal/config"
	"github.com/tartampluch/go-addressbook/internal/engine"
	"github.com/tartampluch/go-addressbook/internal/repl"
	"github.com/tartampluch/go-addressbook/internal/storage"
)

// CLI holds the command-line options.
type CLI struct {
	File    string           `arg:"" optional:"" type:"path" default:"${store_file}" env:"ADDRESSBOOK_FILE" help:"${help_file}"`
	Lang    string           `default:"${lang}" env:"ADDRESSBOOK_LANG" help:"${help_lang}"`
	Debug   bool             `help:"${help_debug}"`
	Version kong.VersionFlag `help:"${help_version}"`
}

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// (like closing log files) are executed before the process terminates.
// os.Exit() does not run defers, so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	var cli CLI
	kong.Parse(&cli,
		kong.Name(config.AppBinary),
		kong.Description(config.AppDescription),
		kong.UsageOnError(),
		kong.Vars{
			"version":      fmt.Sprintf(config.MsgVersionOutput, config.AppName, config.Version, runtime.GOOS, runtime.GOARCH),
			"store_file":   config.DefaultStoreFile,
			"lang":         config.DefaultLanguage,
			"help_file":    config.FlagDescFile,
			"help_lang":    config.FlagDescLang,
			"help_debug":   config.FlagDescDebug,
			"help_version": config.FlagDescVersion,
		},
	)

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	logCloser := setupLogging(cli.Debug)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close() // Best effort close
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// -------------------------------------------------------------------------
	// 4. Storage
	// -------------------------------------------------------------------------
	store := storage.Open(cli.File)
	defer func() { _ = store.Close() }()

	logStartupInfo(cli, storage.Backend(store))

	// -------------------------------------------------------------------------
	// 5. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, cli, store); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run loads the address book, hands it to the command loop and saves it on the way out.
func run(ctx context.Context, cli CLI, store storage.Store) error {
	book, err := store.Load(ctx)
	if err != nil {
		return err
	}

	tr := repl.NewTranslator(cli.Lang)
	shell := repl.NewShell(book, engine.RealClock{}, tr, os.Stdin, os.Stdout)
	runErr := shell.Run(ctx)

	// ctx is already cancelled after Ctrl+C; the book must be saved regardless.
	if err := store.Save(context.WithoutCancel(ctx), book); err != nil {
		return errors.Join(runErr, err)
	}

	fmt.Println(tr.Msg(config.TKeyGoodbye, nil))
	return runErr
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo(cli CLI, backend string) {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		config.LogKeyFile, cli.File,
		config.LogKeyBackend, backend,
		config.LogKeyLang, cli.Lang,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
// Stdout belongs to the prompt, so logs go to a file and, in debug mode, to stderr.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
		writers = append(writers, os.Stderr)
	}
	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)

	// Ensure the directory exists with restricted permissions (700).
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
