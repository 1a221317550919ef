package main

// CLI identity
const (
	CLIName         = "mxp"
	CLIShort        = "Parse MXP tags and render SEND links"
	VersionUnknown  = "unknown"
	VersionTemplate = "mxp version {{.Version}}\n"
)

// Command names
const (
	CmdNameParse   = "parse"
	CmdNameRender  = "render"
	CmdNameVersion = "version"
)

// Flag names - long form
const (
	FlagConfig   = "config"
	FlagOutput   = "output"
	FlagNoColor  = "no-color"
	FlagVerbose  = "verbose"
	FlagFile     = "file"
	FlagEntity   = "entity"
	FlagStoreDSN = "store-dsn"
)

// Flag names - short form
const (
	FlagConfigShort  = "c"
	FlagOutputShort  = "o"
	FlagVerboseShort = "v"
	FlagFileShort    = "f"
	FlagEntityShort  = "e"
)

// Flag usage strings
const (
	FlagUsageConfig   = "config file (.yaml, .yml or .toml)"
	FlagUsageOutput   = "output format: text, json, yaml"
	FlagUsageNoColor  = "disable colored output"
	FlagUsageVerbose  = "log protocol events to stderr"
	FlagUsageFile     = "document to render, - for stdin"
	FlagUsageEntity   = "entity definition name=value (repeatable)"
	FlagUsageStoreDSN = "PostgreSQL DSN to record links into"
)

// Flag default values
const (
	FlagDefaultOutput = OutputFormatText
	FlagDefaultFile   = InputSourceStdin
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Exit codes
const (
	ExitCodeSuccess    = 0
	ExitCodeError      = 1
	ExitCodeUsageError = 2
	ExitCodeInputError = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Entity flag separator
const (
	EntitySeparator = "="
)

// Error messages - ALL must be constants
const (
	ErrMsgInvalidFormat     = "invalid output format"
	ErrMsgInvalidEntityFlag = "entity must be name=value"
	ErrMsgReadFileFailed    = "failed to read input"
	ErrMsgLoadConfigFailed  = "failed to load config"
	ErrMsgParseFailed       = "failed to parse tag"
	ErrMsgSessionFailed     = "failed to create session"
	ErrMsgStoreFailed       = "failed to open link store"
	ErrMsgRenderFailed      = "failed to render document"
	ErrMsgWriteOutputFailed = "failed to write output"
	ErrMsgLoggerFailed      = "failed to create logger"
)

// Output format strings
const (
	FmtErrorWithCause = "Error: %s: %v\n"
	FmtError          = "Error: %v\n"
	FmtWarning        = "Warning: %v\n"
	FmtLinkText       = "%s  %s\n"
	FmtStatsText      = "%d links, %d parse failures, %d sequence errors, %d unknown tags, %d unterminated\n"
	FmtAttrPositional = "  [%d] %q\n"
	FmtAttrNamed      = "  %s = %q\n"
	FmtAttrFlag       = "  %s\n"
	FmtVersionText    = "mxp %s\n  commit:  %s\n  built:   %s\n  go:      %s\n"
	YAMLIndent        = 2
	JSONIndent        = "  "
)
