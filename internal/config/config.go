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
	AppName           = "Go Hijri"
	AppID             = "com.github.tartampluch.go-hijri"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
)

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
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	// Used for creating secure cache directories.
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion = "version"
	FlagDebug   = "debug"
	FlagConvert = "convert"
	FlagFrom    = "from"
	FlagTo      = "to"
	FlagToday   = "today"
	FlagMonth   = "month"
	FlagServe   = "serve"
	FlagPort    = "port"
	FlagLang    = "lang"
	FlagTable   = "table"

	FlagDescVersion = "Show application version and exit"
	FlagDescDebug   = "Enable debug logging to stdout"
	FlagDescConvert = "Date to convert, formatted YYYY/MM/DD (also accepts - and . separators)"
	FlagDescFrom    = "Source calendar: jalaali, gregorian or hijri"
	FlagDescTo      = "Target calendar: jalaali, gregorian or hijri"
	FlagDescToday   = "Print today's date in all three calendars and exit"
	FlagDescMonth   = "Month to render as a grid, formatted YYYY/MM (calendar taken from -from)"
	FlagDescServe   = "Start the local HTTP server (JSON API and ICS feed)"
	FlagDescPort    = "TCP port for the HTTP server"
	FlagDescLang    = "Output language for CLI labels (en, fa, ar)"
	FlagDescTable   = "Path to a JSON file overriding the embedded official month-length table"

	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// Calendar Identifiers & Source Tiers
// -----------------------------------------------------------------------------

const (
	CalJalaali   = "jalaali"
	CalGregorian = "gregorian"
	CalHijri     = "hijri"

	// SourceOfficial marks a result governed by the authoritative table of
	// observed month lengths; SourceTabular marks the 30-year-cycle estimate.
	SourceOfficial = "official"
	SourceTabular  = "tabular"
)

// -----------------------------------------------------------------------------
// Calendar Limits & Defaults
// -----------------------------------------------------------------------------

const (
	// MinHijriYear / MaxHijriYear bound the tabular engine's valid domain.
	// Outside it the engine refuses rather than drifting silently.
	MinHijriYear = 1
	MaxHijriYear = 5000

	DefaultLanguage = "en"
	DefaultPort     = "18081"

	MinPort = 1
	MaxPort = 65535
)

// SupportedLanguages defines the list of available CLI output languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fa", "ar"}

// -----------------------------------------------------------------------------
// Display Formats & UID Generation
// -----------------------------------------------------------------------------

const (
	FormatDateSlash = "%04d/%02d/%02d"
	FormatYearMonth = "%04d/%02d"
	FormatRangeSpan = "%d-%d"

	// Month-grid cells are 4 columns wide; unoccupied leading cells render
	// as GridEmptyCell so the first day lands under its weekday header.
	FormatGridCell = "%4s"
	FormatGridDay  = "%2d"
	GridEmptyCell  = "    "
	GridWeekDays   = 7

	// UID scheme for the ICS occasions feed. Deterministic so that calendar
	// clients keep event identity stable across refreshes.
	UIDSalt         = "go-hijri-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%d|%d|%s"
	FormatUID       = "%s-%d-%d@%s"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyLblInput    = "lbl_input"
	TKeyLblOutput   = "lbl_output"
	TKeyLblSource   = "lbl_source"
	TKeyLblWeekday  = "lbl_weekday"
	TKeyLblCoverage = "lbl_coverage"
	TKeyLblToday    = "lbl_today"
	TKeySrcOfficial = "src_official"
	TKeySrcTabular  = "src_tabular"
	TKeyCalJalaali  = "cal_jalaali"
	TKeyCalGreg     = "cal_gregorian"
	TKeyCalHijri    = "cal_hijri"
	TKeyNoCoverage  = "no_coverage"
	TKeyWdHeader    = "wd_header" // Pre-formatted row of abbreviated weekday names, Monday first
	TKeyEvtSummary  = "event_summary" // Requires Month name and Year
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Hijri//Engine//EN"
	ICalCalName = "Hijri Months"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "gohijri"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	DefaultICalRefresh = 24 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when no events
	// can be generated. This prevents clients from flagging the feed as invalid.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	AddrSeparator      = ":"

	RouteCalendar   = "/calendar.ics"
	RouteConvert    = "/api/convert"
	RouteSourceInfo = "/api/source-info"

	QueryParamFrom  = "from"
	QueryParamTo    = "to"
	QueryParamDate  = "date"
	QueryParamYear  = "year"
	QueryParamMonth = "month"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"
	CacheControlNoStore = "no-store"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidDate     = "invalid date for the given calendar"
	ErrYearOutOfRange  = "hijri year outside the supported range"
	ErrJalaaliRange    = "jalaali year outside the intercalation table domain"
	ErrUnknownCalendar = "unknown calendar identifier"
	ErrSameCalendar    = "source and target calendars are identical"
	ErrDateParse       = "unable to parse date"
	ErrTableLoad       = "failed to load official month-length table"
	ErrTableSyntax     = "malformed official table entry"
	ErrTableEmpty      = "official table contains no usable years"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrPortRange       = "server port must be between 1 and 65535"
	ErrWriteResp       = "failed to write response body"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrLocNotInit      = "localizer not initialized"
	ErrMissingQuery    = "missing required query parameter"
	ErrNothingToDo     = "nothing to do: pass -convert, -today, -month or -serve (see -help)"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Calendar initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	// FallbackEvtSummary expects a month name and a Hijri year.
	FallbackEvtSummary = "%s %d AH"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting   = "Starting application"
	MsgAppStop       = "Application stopped gracefully"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgTableLoaded   = "Official table loaded"
	MsgTableOverride = "Using official table override from file"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Calendar cache updated"
	MsgFeedBuilt     = "Occasions feed generated"
	MsgConvDone      = "Conversion completed"
	MsgGridDone      = "Month grid rendered"
	MsgProbeMiss     = "Official window probe exhausted, using tabular estimate"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
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
	LogKeyPort      = "port"
	LogKeyFrom      = "from"
	LogKeyTo        = "to"
	LogKeyDate      = "date"
	LogKeySource    = "source"
	LogKeyYear      = "year"
	LogKeyMonth     = "month"
	LogKeyJDN       = "jdn"
	LogKeyMinYear   = "min_year"
	LogKeyMaxYear   = "max_year"
	LogKeyYears     = "years"
	LogKeyEvents    = "events"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
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
	CompMain     = "main"
	CompEngine   = "engine"
	CompOfficial = "official"
	CompServer   = "server"
	CompCLI      = "cli"
	CompI18n     = "i18n"
)
