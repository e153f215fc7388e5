package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName          = "Go Address Book"
	AppBinary        = "go-addressbook"
	AppDescription   = "Interactive contact manager with birthday reminders"
	AppID            = "com.github.tartampluch.go-addressbook"
	LogFileName      = "app.log"
	DefaultStoreFile = "addressbook.json"
	DefaultLanguage  = "en"
)

// SupportedLanguages defines the list of available reply languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for the address book and logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDescFile     = "Address book file (.json, or .db/.sqlite/.sqlite3 for SQLite)."
	FlagDescLang     = "Language of the replies (en, fr)."
	FlagDescDebug    = "Enable debug logging to stderr."
	FlagDescVersion  = "Show application version and exit."
	MsgVersionOutput = "%s version %s (%s/%s)"
)

// -----------------------------------------------------------------------------
// Contact Rules
// -----------------------------------------------------------------------------

const (
	// NameWordSeparator joins the words of imported multi-word names, since
	// command arguments never contain whitespace.
	NameWordSeparator = "_"

	// PhoneLength is the exact number of ASCII digits in a phone number.
	PhoneLength = 10

	// BirthdayLayout is the only accepted textual form of a birthday (DD.MM.YYYY).
	BirthdayLayout = "02.01.2006"

	// CongratulationLayout renders congratulation dates without zero padding (D.M.YYYY).
	CongratulationLayout = "2.1.2006"
)

// -----------------------------------------------------------------------------
// Birthday Scheduling
// -----------------------------------------------------------------------------

const (
	// LookaheadDays is the last day offset (inclusive) of the reminder window.
	// Offsets 0..6 form one weekly batch.
	LookaheadDays = 6

	// SaturdayShiftLimit: a Saturday birthday is moved to Monday only when its
	// offset is strictly below this value.
	SaturdayShiftLimit = 5

	// SundayShiftLimit: a Sunday birthday is moved to Monday only when its
	// offset is strictly below this value.
	SundayShiftLimit = 6

	HoursPerDay = 24
)

// -----------------------------------------------------------------------------
// Storage
// -----------------------------------------------------------------------------

const (
	ExtDB      = ".db"
	ExtSQLite  = ".sqlite"
	ExtSQLite3 = ".sqlite3"

	SQLiteDriver  = "sqlite"
	SchemaVersion = 1
	JSONIndent    = "  "
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Go Address Book//Reminders//EN"
	ICalCalName   = "Congratulations"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "goaddressbook"

	// ICalReminderTrigger fires the alarm at 09:00 on the congratulation day.
	ICalReminderTrigger = "PT9H"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardVersion = "4.0"

	// Date layouts used for the vCard BDAY field
	VCardDateDash  = "2006-01-02"
	VCardDateBasic = "20060102"
	VCardDateFullT = "2006-01-02T15:04:05Z"

	// UID Generation
	FormatHashInput = "%s|%s"
	FormatUID       = "%s@%s"

	// StubVCalendar is the minimal valid iCalendar object used when no reminders are due.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	FallbackSummary = "Congratulate %s"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrStoreRead      = "failed to read address book"
	ErrStoreParse     = "failed to parse address book"
	ErrStoreEncode    = "failed to serialize address book"
	ErrStoreWrite     = "failed to write address book"
	ErrStoreOpen      = "failed to open database"
	ErrStoreMigrate   = "failed to prepare database schema"
	ErrStoreQuery     = "database query failed"
	ErrStoreVersion   = "unsupported address book version"
	ErrStoreContact   = "invalid stored contact"
	ErrVCardEncode    = "failed to encode vCard"
	ErrVCardDecode    = "failed to decode vCard stream"
	ErrICalEncode     = "failed to encode iCalendar data"
	ErrCreateDir      = "could not create directory"
	ErrCacheDir       = "could not determine user cache dir"
	ErrLogFile        = "failed to open log file"
	ErrAppFailed      = "application failed unexpectedly"
	ErrLocalesAccess  = "failed to access embedded locales"
	ErrLocaleLoad     = "failed to load locale file"
	ErrInputRead      = "failed to read command input"
	ErrOutputWrite    = "failed to write reply"
	ErrFileCreate     = "could not create file"
	ErrFileOpen       = "could not open file"
	ErrFileClose      = "could not close file"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, leaving command loop"
	MsgStoreLoaded    = "Address book loaded"
	MsgStoreSaved     = "Address book saved"
	MsgStoreMissing   = "Address book not found, starting empty"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedNoName  = "Skipping vCard without a name"
	MsgSkippedPhone   = "Skipping invalid phone number"
	MsgSkippedDate    = "Skipping unusable birthday"
	MsgImportDone     = "vCard import finished"
	MsgExportDone     = "vCard export finished"
	MsgCalendarDone   = "Calendar generation successful"
	MsgCommand        = "Command executed"
	MsgCommandFailed  = "Command failed"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgReminderFound  = "Congratulation due"
	MsgRecordReplaced = "Record replaced"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWelcome          = "welcome"
	TKeyPrompt           = "prompt"
	TKeyGoodbye          = "goodbye"
	TKeyHello            = "hello"
	TKeyInvalidCommand   = "invalid_command"
	TKeyHelp             = "help"
	TKeyContactAdded     = "contact_added"
	TKeyContactUpdated   = "contact_updated"
	TKeyContactChanged   = "contact_changed" // Requires Name, Old, New
	TKeyContactPhones    = "contact_phones"  // Requires Name, Phones
	TKeyContactDeleted   = "contact_deleted" // Requires Name
	TKeyPhoneRemoved     = "phone_removed"   // Requires Name, Phone
	TKeyBookEmpty        = "book_empty"
	TKeyBirthdayAdded    = "birthday_added" // Requires Name, Birthday
	TKeyBirthdayShow     = "birthday_show"  // Requires Name, Birthday
	TKeyNoUpcoming       = "no_upcoming"
	TKeyUpcomingLine     = "upcoming_line"    // Requires Name, Date
	TKeyExported         = "exported"         // Requires Count, Path
	TKeyImported         = "imported"         // Requires Count, Skipped, Path
	TKeyCalendarWritten  = "calendar_written" // Requires Count, Path
	TKeyEventSummary     = "event_summary"    // Requires Name
	TKeyErrInvalidArgs   = "err_invalid_args"
	TKeyErrNotInContacts = "err_not_in_contacts"
	TKeyErrMissingArgs   = "err_missing_args"
	TKeyErrNotFound      = "err_entity_not_found"
	TKeyErrFile          = "err_file" // Requires Path
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyBackend   = "backend"
	LogKeyCommand   = "command"
	LogKeyArgs      = "args"
	LogKeyName      = "name"
	LogKeyValue     = "value"
	LogKeyDate      = "date"
	LogKeyCount     = "count"
	LogKeySkipped   = "skipped"
	LogKeyStats     = "stats"
	LogKeyTotal     = "total_cards"
	LogKeyCreated   = "created"
	LogKeyMerged    = "merged"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain    = "main"
	CompEngine  = "engine"
	CompStorage = "storage"
	CompREPL    = "repl"
	CompI18n    = "i18n"
)

// -----------------------------------------------------------------------------
// Backends
// -----------------------------------------------------------------------------

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// SQLiteBusyTimeout bounds how long a write waits for a locked database.
const SQLiteBusyTimeout = 5 * time.Second
