package mxp

import "time"

// Tag names handled by this package. Comparison is case-insensitive.
const (
	TagNameSend = "SEND"
)

// Attribute names
const (
	AttrHref   = "href"
	AttrPrompt = "PROMPT"
)

// Pseudo-entity resolved from the body of the open tag, never from the entity table
const (
	EntityText = "&text;"
)

// Action wrappers understood by the downstream command interpreter
const (
	ActionFormatSend   = "send([[%s]])"
	ActionFormatPrompt = "printCmdLine([[%s]])"
	ActionPrefixPrompt = "printCmdLine([["
)

// Nested start tag policies for the SEND handler
const (
	NestedPolicyReplace NestedPolicy = "replace"
	NestedPolicyReject  NestedPolicy = "reject"
)

// Send handler state names
const (
	SendStateNameIdle = "IDLE"
	SendStateNameOpen = "OPEN"
)

// Session defaults
const (
	SessionIDPrefix   = "sess_"
	SessionIDByteSize = 12
)

// Config file extensions
const (
	ConfigExtYAML = ".yaml"
	ConfigExtYML  = ".yml"
	ConfigExtTOML = ".toml"
)

// Config keys (TOML overlay and YAML tags share these names)
const (
	ConfigKeySessionID    = "session_id"
	ConfigKeyNestedPolicy = "nested_policy"
	ConfigKeyLogLevel     = "log_level"
	ConfigKeyEntities     = "entities"
)

// Config defaults
const (
	DefaultLogLevel = "info"
)

// Link store constants
const (
	LinkIDPrefix                   = "link_"
	LinkIDByteSize                 = 12
	PostgresDriverName             = "postgres"
	PostgresTablePrefix            = "mxp_"
	PostgresDefaultMaxOpenConns    = 10
	PostgresDefaultMaxIdleConns    = 2
	PostgresDefaultConnMaxLifetime = 5 * time.Minute
	PostgresDefaultConnMaxIdleTime = 5 * time.Minute
	PostgresDefaultQueryTimeout    = 10 * time.Second
	StoreSinkDefaultTimeout        = 5 * time.Second
)

// Metadata keys for cuserr.WithMetadata
const (
	MetaKeyLine      = "line"
	MetaKeyColumn    = "column"
	MetaKeyOffset    = "offset"
	MetaKeyTag       = "tag"
	MetaKeyRaw       = "raw"
	MetaKeyState     = "state"
	MetaKeyExpected  = "expected"
	MetaKeyEntity    = "entity"
	MetaKeyPath      = "path"
	MetaKeyValue     = "value"
	MetaKeyCount     = "count"
	MetaKeySessionID = "session_id"
	MetaKeyReason    = "reason"
)

// Log message constants
const (
	LogMsgParserCreated      = "parser created"
	LogMsgParseFailed        = "tag parse failed, skipping"
	LogMsgHandlerRegistered  = "tag handler registered"
	LogMsgHandlerCollision   = "tag handler already registered"
	LogMsgSessionCreated     = "session created"
	LogMsgSessionClosed      = "session closed"
	LogMsgUnknownTag         = "no handler for tag, ignoring"
	LogMsgSequenceError      = "tag out of sequence, ignoring"
	LogMsgUnterminated       = "unterminated tag discarded at end of stream"
	LogMsgSendOpened         = "send span opened"
	LogMsgSendClosed         = "send link emitted"
	LogMsgSendReplaced       = "send span replaced by nested start tag"
	LogMsgSendDiscarded      = "send span discarded"
	LogMsgContentDropped     = "content outside send span dropped"
	LogMsgNoSink             = "no sink configured, link dropped"
	LogMsgEntityRegistered   = "entity registered"
	LogMsgLinkStoreFailed    = "link store save failed"
	LogMsgPostgresMigrated   = "postgres link store migrated"
	LogMsgConfigLoaded       = "config loaded"
	LogMsgUnitSkipped        = "document unit skipped"
)

// Log field constants
const (
	LogFieldTag       = "tag"
	LogFieldRaw       = "raw"
	LogFieldState     = "state"
	LogFieldAction    = "action"
	LogFieldHint      = "hint"
	LogFieldPrompt    = "prompt"
	LogFieldTemplate  = "href_template"
	LogFieldSessionID = "session_id"
	LogFieldEntity    = "entity"
	LogFieldCount     = "count"
	LogFieldBytes     = "bytes"
	LogFieldPath      = "path"
	LogFieldLinks     = "links"
	LogFieldPolicy    = "nested_policy"
)
