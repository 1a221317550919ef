package internal

// Character constants
const (
	CharOpenAngle   = '<'
	CharCloseAngle  = '>'
	CharEquals      = '='
	CharDoubleQuote = '"'
	CharSingleQuote = '\''
	CharSlash       = '/'
	CharBang        = '!'
	CharAmpersand   = '&'
	CharSemicolon   = ';'
	CharUnderscore  = '_'
	CharHyphen      = '-'
	CharDot         = '.'
	CharHash        = '#'
	CharNewline     = '\n'
	CharSpace       = ' '
	CharTab         = '\t'
	CharCarriageRet = '\r'
)

// Entity delimiters
const (
	EntityPrefix = "&"
	EntitySuffix = ";"
)

// ReservedEntityText is bound per span by the tag handler and never stored
const ReservedEntityText = "&text;"

// Display limits for String() helpers
const (
	MaxStringDisplayLength = 60
	TruncatedStringLength  = 57
	TruncationSuffix       = "..."
)

// Scanner error messages
const (
	ErrMsgMissingOpenAngle   = "tag must start with '<'"
	ErrMsgUnterminatedTag    = "unterminated tag"
	ErrMsgUnterminatedStr    = "unterminated quoted value"
	ErrMsgInvalidTagName     = "invalid tag name"
	ErrMsgUnexpectedChar     = "unexpected character"
	ErrMsgUnexpectedEndTag   = "expected start tag, found end tag"
	ErrMsgExpectedEndTag     = "expected end tag"
	ErrMsgPositionalNotFirst = "positional value must be the first attribute"
	ErrMsgMissingAttrValue   = "attribute value missing after '='"
	ErrMsgEndTagAttributes   = "end tag cannot carry attributes"
	ErrMsgTrailingInput      = "unexpected input after tag"
)

// Entity table error messages
const (
	ErrMsgEmptyEntityName   = "entity name cannot be empty"
	ErrMsgInvalidEntityName = "invalid entity name"
	ErrMsgReservedEntity    = "entity name is reserved"
)

// Log message constants
const (
	LogMsgScannerCreated  = "scanner created"
	LogMsgTagScanned      = "tag scanned"
	LogMsgTagScanFailed   = "tag scan failed"
	LogMsgEntitySet       = "entity registered"
	LogMsgEntityOverwrite = "entity overwritten"
	LogMsgEntityDeleted   = "entity removed"
	LogMsgDocumentSplit   = "document split"
)

// Log field constants
const (
	LogFieldSource = "source_length"
	LogFieldTag    = "tag"
	LogFieldEnd    = "end_tag"
	LogFieldAttrs  = "attributes"
	LogFieldError  = "error"
	LogFieldEntity = "entity"
	LogFieldUnits  = "units"
)
