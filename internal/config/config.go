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

// UserAgent identifies the HTTP client used for CardDAV imports.
var UserAgent = "Circle-Squared/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Circle Squared"
	AppID             = "com.github.tartampluch.circle-squared"
	KeyringService    = "com.github.tartampluch.circle-squared"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	DBFileName        = "circle.db"
	IconFile          = "Icon.png"
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
	// Used for logs and backups, which contain personal notes.
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Commands & Flags
// -----------------------------------------------------------------------------

const (
	CmdRoot    = "circle-squared"
	CmdVersion = "version"
	CmdStatus  = "status"
	CmdExport  = "export FILE"
	CmdImport  = "import FILE"
	CmdLog     = "log NAME|ID"
	CmdReset   = "reset"
	CmdServe   = "serve"

	CmdDescRoot    = "Track the people who matter and notice when you drift apart"
	CmdDescVersion = "Print version information"
	CmdDescStatus  = "Print the social health score, tiers and upcoming milestones"
	CmdDescExport  = "Write a JSON backup of the friend collection"
	CmdDescImport  = "Replace the collection from a JSON backup, or add friends from a vCard file"
	CmdDescLog     = "Log an interaction with a friend (matched by id or name)"
	CmdDescReset   = "Erase every friend, note and milestone"
	CmdDescServe   = "Serve the dashboard and milestone calendar without the desktop UI"

	FlagDebug   = "debug"
	FlagDB      = "db"
	FlagRolling = "rolling"
	FlagTop     = "top"
	FlagJSON    = "json"
	FlagYes     = "yes"
	FlagPort    = "port"
	FlagRefresh = "refresh"

	FlagDescDebug   = "Enable debug logging to stdout"
	FlagDescDB      = "Path to the SQLite database (defaults to the user config dir)"
	FlagDescRolling = "Order milestones by their next occurrence instead of calendar month/day"
	FlagDescTop     = "Number of milestones to show (0 shows all)"
	FlagDescJSON    = "Print the dashboard as JSON"
	FlagDescYes     = "Confirm the factory reset"
	FlagDescPort    = "Port of the local HTTP server"
	FlagDescRefresh = "Refresh interval in minutes (0 disables, midnight refresh is always on)"

	// Status output
	StatusHeader      = "Social health %d%% · %d drifting · %d friends\n"
	StatusEmpty       = "Your circle is empty. Add a friend to get started.\n"
	StatusTierHeader  = "\n%s\n"
	StatusFriendRow   = "  %s\t%s\t%.0f%%\t%s\t%s\n"
	StatusUpcoming    = "\nUpcoming milestones\n"
	StatusEventRow    = "  %s\t%s\n"
	StatusEventRowIn  = "  %s\t%s\tin %d days\n"
	StatusNoEvents    = "  none\n"

	StatusDateUnavailable = "  %s\t%s date unavailable (%q)\n"

	StatusDaysFormat  = "%dd"
	StatusNever       = "never"
	StatusDriftingTag = "drifting"
	StatusRelAgo      = "ago"
	StatusRelFromNow  = "from now"
	TabPadding        = 2

	MsgVersionOutput = "%s version %s (commit %s, built %s, %s/%s)\n"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	SettingsWindowWidth = 600
	DashboardWinWidth   = 900
	DashboardWinHeight  = 640
	FriendFormWidth     = 420
	FriendFormHeight    = 640
	ProfileWinWidth     = 460
	ProfileWinHeight    = 620

	// Preference Keys
	PrefCardDAVURL = "carddav_url"
	PrefUsername   = "username"
	PrefLanguage   = "language"
	PrefInterval   = "refresh_interval_min"
	PrefServerPort = "server_port"
	PrefSourceMode = "source_mode"
	PrefLocalPath  = "local_path"
	PrefLastRun    = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Circle Visualization
// -----------------------------------------------------------------------------

const (
	// Ring radii in view units. The view is a square of side 2*VizHalfExtent.
	RadiusPrimary    = 80
	RadiusSecondary  = 140
	RadiusPeripheral = 200
	VizHalfExtent    = 250

	NodeRadius      = 16
	NodeStrokeWidth = 3
	RingStrokeWidth = 1
	NodeLabelSize   = 10
	RingLabelSize   = 8
	CenterLabelSize = 14
	CenterLabel     = "YOU"

	// Node placement jitter, derived from a hash of the friend id.
	AngleJitterDegrees  = 20
	RadiusJitterUnits   = 15
	MaxInitials         = 2
	ColorPrimary        = "#FFBF00"
	ColorSecondary      = "#008080"
	ColorPeripheral     = "#333333"
	ColorDrifting       = "#FF4D4D"
	ColorNodeFill       = "#FFFFFF"
	ColorRingLabel      = "#AAAAAA"
	ColorHealthGood     = "#008080"
	ColorHealthWarning  = "#FFBF00"
	HealthGoodThreshold = 70

	LabelPrimary    = "PRIMARY (0-30d)"
	LabelSecondary  = "SECONDARY (31-90d)"
	LabelPeripheral = "PERIPHERAL (>90d)"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinDashboard    = "win_dashboard_title"
	TKeyWinSettings     = "win_settings_title"
	TKeyWinAddFriend    = "win_add_friend_title"
	TKeyMenuDashboard   = "menu_dashboard"
	TKeyMenuRefresh     = "menu_refresh"
	TKeyMenuSettings    = "menu_settings"
	TKeyTrayStatus      = "tray_status"       // Requires Score, Count
	TKeyTrayStatusEmpty = "tray_status_empty" // Empty circle
	TKeyHealthBadge     = "health_badge"      // Requires Score
	TKeyLblYourCircle   = "lbl_your_circle"
	TKeyLblUpcoming     = "lbl_upcoming"
	TKeyLblNoEvents     = "lbl_no_events"
	TKeyLblEmptyTitle   = "lbl_empty_title"
	TKeyLblEmptyHint    = "lbl_empty_hint"
	TKeyLblWelcome      = "lbl_welcome"
	TKeyLblTagline      = "lbl_tagline"
	TKeyBtnGetStarted   = "btn_get_started"
	TKeyBtnAdd          = "btn_add"
	TKeyBtnLog          = "btn_log"
	TKeyLblDaysSince    = "lbl_days_since" // Requires Days
	TKeyLblNeverSeen    = "lbl_never_seen"
	TKeyLblDrifting     = "lbl_drifting"
	TKeyLblNoDate       = "lbl_date_unavailable" // Requires Name, Value

	// Friend form
	TKeyLblName        = "lbl_name"
	TKeyLblLevel       = "lbl_level"
	TKeyLblCadence     = "lbl_cadence"
	TKeyLblCategory    = "lbl_category"
	TKeyLblBirthday    = "lbl_birthday"
	TKeyLblPartner     = "lbl_partner"
	TKeyLblPartnerBday = "lbl_partner_birthday"
	TKeyLblAnniversary = "lbl_anniversary"
	TKeyLblNotes       = "lbl_notes"
	TKeyHelpDate       = "help_date"
	TKeyLevelInner     = "level_inner"
	TKeyLevelMiddle    = "level_middle"
	TKeyLevelOuter     = "level_outer"
	TKeyCadenceWeekly  = "cadence_weekly"
	TKeyCadenceBiweek  = "cadence_biweekly"
	TKeyCadenceMonthly = "cadence_monthly"
	TKeyCadenceQuarter = "cadence_quarterly"
	TKeyLblNickname    = "lbl_nickname"
	TKeyLblHowMet      = "lbl_how_met"
	TKeyLblKids        = "lbl_kids"
	TKeyLblKidName     = "lbl_kid_name"
	TKeyLblPets        = "lbl_pets"
	TKeyLblPetName     = "lbl_pet_name"
	TKeyLblPetType     = "lbl_pet_type"
	TKeyLblFood        = "lbl_food"
	TKeyLblDrinks      = "lbl_drinks"
	TKeyLblBudget      = "lbl_budget"
	TKeyLblActivities  = "lbl_activities"
	TKeyLblTags        = "lbl_tags"
	TKeyHelpList       = "help_comma_list"
	TKeyBtnAddKid      = "btn_add_kid"
	TKeyBtnAddPet      = "btn_add_pet"
	TKeyBtnRemove      = "btn_remove"

	// Friend profile
	TKeyWinProfile     = "win_profile_title" // Requires Name
	TKeyBtnProfile     = "btn_profile"
	TKeyLblContext     = "lbl_context"
	TKeyLblFamily      = "lbl_family"
	TKeyLblLifestyle   = "lbl_lifestyle"
	TKeyLblKeyDates    = "lbl_key_dates"
	TKeyLblNotSet      = "lbl_not_set"
	TKeyLblNone        = "lbl_none"
	TKeyLblNotRecorded = "lbl_not_recorded"
	TKeyLblNoDiet      = "lbl_no_dietary_notes"

	// Circle view
	TKeyTierPrimary    = "tier_primary"
	TKeyTierSecondary  = "tier_secondary"
	TKeyTierPeripheral = "tier_peripheral"
	TKeyLblYou         = "lbl_you"

	// Settings
	TKeyModeCardDAV  = "mode_carddav"
	TKeyModeLocal    = "mode_local"
	TKeyLblLanguage  = "lbl_language"
	TKeyHelpLanguage = "help_language"
	TKeyLblMinutes   = "lbl_minutes_suffix"
	TKeyLblRefresh   = "lbl_refresh_interval"
	TKeyHelpInterval = "help_interval"
	TKeyLblPort      = "lbl_server_port"
	TKeyHelpPort     = "help_port"
	TKeyLblGeneral   = "lbl_general"
	TKeyLblData      = "lbl_data"
	TKeyLblDanger    = "lbl_danger_zone"
	TKeyBtnSave      = "btn_save"
	TKeyBtnCancel    = "btn_cancel"
	TKeyBtnExport    = "btn_export"
	TKeyBtnImport    = "btn_import"
	TKeyBtnImportVCF = "btn_import_vcard"
	TKeyBtnReset     = "btn_reset"
	TKeyLblFooter    = "lbl_footer"
	TKeyBtnBrowse    = "btn_browse"
	TKeyLblURL       = "lbl_url"
	TKeyHelpURL      = "help_carddav_url"
	TKeyLblUser      = "lbl_user"
	TKeyLblPass      = "lbl_pass"
	TKeyLblSource    = "lbl_source"
	TKeyConfirmReset = "confirm_reset"
	TKeyConfirmLoad  = "confirm_import" // Requires Count
	TKeyMsgImported  = "msg_imported"   // Requires Count

	// Milestone labels
	TKeyEvtBirthday        = "event_birthday"         // Requires Name
	TKeyEvtPartnerBirthday = "event_partner_birthday" // Requires Name
	TKeyEvtPartnerUnnamed  = "event_partner_unnamed"  // Requires Name (friend)
	TKeyEvtAnniversary     = "event_anniversary"      // Requires Name
	TKeyEvtKidBirthday     = "event_kid_birthday"     // Requires Name
	TKeyEvtKidUnnamed      = "event_kid_unnamed"      // Requires Name (friend)
	TKeyEvtSummaryAge      = "event_summary_age"      // Requires Label, Age
	TKeyFormatDate         = "format_date_short"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	// DefaultCadence is used when a friend has no cadence configured.
	DefaultCadence = 30
	// MinCadence is the smallest cadence the drift calculator divides by.
	MinCadence = 1

	CadenceWeekly    = 7
	CadenceBiweekly  = 14
	CadenceMonthly   = 30
	CadenceQuarterly = 90

	// Tier thresholds, in days since the last interaction (inclusive upper bounds).
	TierPrimaryMaxDays   = 30
	TierSecondaryMaxDays = 90

	MaxPercent       = 100
	DefaultTopEvents = 3
	DefaultLevel     = "middle"

	SourceModeWeb     = "web"
	SourceModeLocal   = "local"
	DefaultPort       = "18090"
	DefaultRefreshMin = 60
	DefaultLanguage   = "en"
	DefaultLeapYear   = 2000 // Leap year fallback for dates like --02-29
	UIDSalt           = "circle-squared-v1-"
	DisabledInterval  = 0
	CronMidnight      = "@midnight"
	CronEveryFormat   = "@every %s"

	// MaxVCardFailures bounds consecutive decode errors before an import gives up.
	MaxVCardFailures = 50

	BackupVersion    = "1.2"
	BackupFilePrefix = "circle-squared-backup-"
	BackupJSONIndent = "  "
)

// Friend field names, used to point at the offending field in date errors.
const (
	FieldBirthday        = "birthday"
	FieldPartnerBirthday = "partnerBirthday"
	FieldAnniversary     = "anniversary"
	FieldKidBirthday     = "kids[%d].birthday"
)

// Store keys, matching the slots used by the original browser storage.
const (
	StoreKeyFriends   = "cs_friends"
	StoreKeyOnboarded = "cs_onboarded"
)

// ISO8601 Duration Components for Reminders
const (
	ISOPeriodPrefix   = "P"
	ISONegativePrefix = "-P"
	ISODay            = "D"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion   = "2.0"
	ICalProdid    = "-//Circle Squared//Milestones//EN"
	ICalCalName   = "Milestones"
	ICalMethod    = "PUBLISH"
	ICalScale     = "GREGORIAN"
	ICalComponent = "VALARM"
	ICalAction    = "DISPLAY"
	ICalDomain    = "circlesquared"

	// iCal/vCard Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropTrigger     = "TRIGGER"
	PropCategories  = "CATEGORIES"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	VCardBDAY        = "BDAY"
	VCardFN          = "FN"
	VCardN           = "N"
	VCardNickname    = "NICKNAME"
	VCardNote        = "NOTE"
	VCardCategories  = "CATEGORIES"
	VCardAnniversary = "ANNIVERSARY"

	DefaultICalRefresh = 12 * time.Hour
	// DefaultReminderTrigger fires the calendar alarm one day before a milestone.
	DefaultReminderTrigger = "-P1D"
)

// -----------------------------------------------------------------------------
// Data Formats, Limits & File Extensions
// -----------------------------------------------------------------------------

const (
	// Date layouts accepted for milestone fields
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05"
	DateFormatNoYearD   = "--01-02"
	DateFormatNoYearB   = "--0102"
	DateFormatDisplay   = "Jan 2"
	DateFormatStatus    = "2006-01-02"

	// Limits
	MinPort = 1
	MaxPort = 65535

	// UID Generation
	UIDHashLength   = 16
	FormatHashInput = "%s|%s|%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	// File Extensions
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
	ExtJSON  = ".json"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 64 * 1024 * 1024 // 64MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"

	RouteCalendar  = "/calendar.ics"
	RouteAPI       = "/api"
	RouteDashboard = "/dashboard"
	RouteHealth    = "/health"
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
	HeaderUserAgent       = "User-Agent"
	HeaderAccept          = "Accept"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeVCard           = "text/vcard, text/x-vcard;q=0.9, */*;q=0.1"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty   = "configuration error: local path is empty"
	ErrWebURLEmpty      = "configuration error: web URL is empty"
	ErrFetcherMissing   = "internal error: network fetcher is not initialized"
	ErrModeUnsupport    = "configuration error: unsupported source mode"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrInvalidURL       = "invalid URL structure"
	ErrBuildRequest     = "failed to create request"
	ErrNetwork          = "network error during fetch"
	ErrHTTPStatus       = "server returned unexpected status"
	ErrProtocol         = "unsupported protocol scheme (http/https only)"
	ErrVCardParse       = "failed to read vCard stream"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrDateParse        = "invalid date"
	ErrNameRequired     = "friend name is required"
	ErrInvalidCadence   = "cadence must be a positive number of days"
	ErrInvalidLevel     = "unknown relationship level"
	ErrFriendNotFound   = "friend not found"
	ErrDuplicateID      = "duplicate friend id"
	ErrMissingID        = "friend id is missing"
	ErrInvalidBackup    = "invalid backup file format"
	ErrParseBackup      = "error parsing backup file"
	ErrEncodeBackup     = "failed to encode backup"
	ErrOpenDB           = "open database"
	ErrMigrate          = "migrate database"
	ErrStoreLoad        = "failed to load friends"
	ErrStoreSave        = "failed to save friends"
	ErrStoreClear       = "failed to clear data"
	ErrEnvParse         = "parse env"
	ErrDotEnv           = "load .env"
	ErrRefresh          = "failed to refresh dashboard"
	ErrSchedule         = "failed to schedule refresh"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrConfigDir        = "could not determine user config dir"
	ErrCreateDir        = "could not create app dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrTrayNotSupported = "system tray not supported on this platform/driver"
	ErrLocNotInit       = "localizer not initialized"
	ErrResetNotConfirm  = "refusing to reset without --yes"
	ErrAmbiguousFriend  = "more than one friend matches"
	ErrUnknownExt       = "unsupported import file type"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Dashboard initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPStatusOK        = "ok"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackLabelBirthday       = "%s's Birthday"
	FallbackLabelPartnerUnnamed = "%s's Partner's Birthday"
	FallbackLabelAnniversary    = "%s's Anniversary"
	FallbackLabelKidUnnamed     = "%s's Kid's Birthday"
	FallbackSummaryAge          = "%s (%d)"
	FallbackTrayError           = "Circle Squared: Error"
	FallbackTrayDefault         = "Social health %d%% · %d drifting"
	FallbackTrayEmpty           = "Your circle is empty"
	FallbackTrayLabel           = "Circle Squared"
	FallbackName                = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	TitleStartupError = "Startup Error"
	TitleError        = "Error"

	MsgPortBusy       = "Port %s is busy or unavailable."
	MsgRefreshReq     = "Refresh requested"
	MsgRefreshDone    = "Dashboard derived"
	MsgDateInvalid    = "Milestone date unavailable"
	MsgWorkerStart    = "Background worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgUpdateInterval = "Updating refresh interval"
	MsgAppStop        = "Application stopped gracefully"
	MsgCtxCancel      = "Context cancelled, shutting down UI"
	MsgSkippedCard    = "Skipping malformed vCard"
	MsgSkippedDate    = "Skipping invalid vCard date"
	MsgImportStarted  = "vCard import started"
	MsgFetchStart     = "Requesting address book"
	MsgFetchStatus    = "Address book server returned error status"
	MsgFetchOK        = "Address book downloading"
	MsgImportDone     = "vCard import finished"
	MsgGenSuccess     = "Calendar generation successful"
	MsgAppStarting    = "Starting application"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Cache updated"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgPassFail       = "Password retrieval failed (might be empty)"
	MsgLogWarning     = "Warning: %s at %s: %v\n"
	MsgFriendAdded    = "Friend added"
	MsgInteraction    = "Interaction logged"
	MsgCollectionSet  = "Friend collection replaced"
	MsgDataCleared    = "All data cleared"
	MsgStoreOpened    = "Database opened"
	MsgDotEnvMissing  = "No .env file found, using process environment"
	MsgSchedulerStart = "Scheduler started"
	MsgSchedulerStop  = "Scheduler stopped"
	MsgScheduledRun   = "Scheduled refresh triggered"
	MsgDateUnavail    = "date unavailable"
	MsgExportDone     = "Backup exported"
	MsgImportBackup   = "Backup imported"
	MsgExported       = "Exported %d friends to %s\n"
	MsgImportedJSON   = "Imported %d friends from %s (collection replaced)\n"
	MsgImportedVCard  = "Imported %d friends from %s\n"
	MsgLogged         = "Logged an interaction with %s\n"
	MsgReset          = "All data erased\n"

	PlaceholderURL  = "https://..."
	PlaceholderDate = "YYYY-MM-DD"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyLength    = "content_length"
	LogKeyFile      = "file"
	LogKeyPath      = "path"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyOld       = "old"
	LogKeyNew       = "new"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyImported  = "imported"
	LogKeyEvents    = "events"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyManual    = "manual"
	LogKeyValue     = "value"
	LogKeyField     = "field"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyFriendID  = "friend_id"
	LogKeyScore     = "health_score"
	LogKeyDrifting  = "drifting"
	LogKeyDuration  = "duration_ms"
	LogKeyResource  = "resource"
	LogKeySchema    = "schema_version"

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
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompEngine    = "engine"
	CompImport    = "import"
	CompServer    = "server"
	CompFetcher   = "fetcher"
	CompWorker    = "worker"
	CompScheduler = "scheduler"
	CompStore     = "store"
	CompBackup    = "backup"
	CompCLI       = "cli"
	CompConfig    = "config"
	CompI18n      = "i18n"
)

// -----------------------------------------------------------------------------
// UI Layout Constants
// -----------------------------------------------------------------------------

const (
	LayoutColumnsDouble = 2

	// ListSeparator splits comma-separated form entries into list items.
	ListSeparator = ","

	// FriendListHeight keeps the friend list scrollable next to the circle view.
	FriendListHeight = 360
	CircleViewSize   = 2 * VizHalfExtent
	BadgeTextSize    = 28
	DegreesPerTurn   = 360
)

// UI log messages and fallbacks used when a translation is missing.
const (
	MsgOpenWindow      = "Opening window"
	MsgFocusWindow     = "Window already open, requesting focus"
	MsgSavingPrefs     = "Saving preferences"
	MsgKeyringSaveFail = "Failed to save credentials to keyring"
	MsgIntervalOff     = "Auto-refresh disabled via settings"
	MsgOnboarded       = "Onboarding completed"
	MsgDialogFailed    = "Dialog action failed"
	MsgFriendMissing   = "Friend not in the current dashboard"
	LogKeyWindow       = "window"

	WinDashboard = "dashboard"
	WinSettings  = "settings"
	WinAddFriend = "add_friend"
	WinProfile   = "profile"

	FallbackBadge       = "%d%%"
	FallbackDaysSince   = "%dd ago"
	FallbackNeverSeen   = "Never"
	FallbackDateFormat  = "Jan 2"
	FallbackNoDate      = "%s: date unavailable (%q)"
	FallbackImported    = "Imported %d friends"
	FallbackConfirmLoad = "Replace your circle with the %d friends of this backup?"
	ProfileDetail       = "%s (%s)"
)
