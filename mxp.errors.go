package mxp

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"
)

// Error message constants - all error messages are constants
const (
	ErrMsgParseFailure       = "tag parse failure"
	ErrMsgProtocolSequence   = "tag out of sequence"
	ErrMsgUnterminatedTag    = "tag left open at end of stream"
	ErrMsgInvalidEntity      = "invalid entity"
	ErrMsgHandlerExists      = "tag handler already registered"
	ErrMsgNilHandler         = "tag handler cannot be nil"
	ErrMsgEmptyTagName       = "tag name cannot be empty"
	ErrMsgConfigInvalid      = "invalid configuration"
	ErrMsgConfigRead         = "failed to read config file"
	ErrMsgConfigFormat       = "unsupported config file extension"
	ErrMsgUnknownPolicy      = "unknown nested policy"
	ErrMsgUnknownLogLevel    = "unknown log level"
	ErrMsgSessionClosed      = "session is closed"
	ErrMsgEndWhileIdle       = "end tag without open span"
	ErrMsgStartWhileOpen     = "start tag while span is open"
	ErrMsgWrongTag           = "tag not handled by this handler"
	ErrMsgNilTag             = "tag cannot be nil"
	ErrMsgStoreFailed        = "link store operation failed"
	ErrMsgStoreClosed        = "link store is closed"
	ErrMsgStoreEmptyConnStr  = "postgres connection string is empty"
	ErrMsgStoreConnectFailed = "failed to connect to postgres"
	ErrMsgStoreMigrateFailed = "postgres migration failed"
	ErrMsgStoreQueryFailed   = "postgres query failed"
	ErrMsgStoreNilLink       = "link cannot be nil"
)

// Error code constants for categorization
const (
	ErrCodeParse    = "MXP_PARSE"
	ErrCodeSequence = "MXP_SEQUENCE"
	ErrCodeEntity   = "MXP_ENTITY"
	ErrCodeRegistry = "MXP_REGISTRY"
	ErrCodeConfig   = "MXP_CONFIG"
	ErrCodeStore    = "MXP_STORE"
)

// Sentinel errors. Every error built in this package wraps one of these.
var (
	ErrParseFailure     = errors.New(ErrMsgParseFailure)
	ErrProtocolSequence = errors.New(ErrMsgProtocolSequence)
	ErrUnterminatedTag  = errors.New(ErrMsgUnterminatedTag)
	ErrInvalidEntity    = errors.New(ErrMsgInvalidEntity)
	ErrHandlerExists    = errors.New(ErrMsgHandlerExists)
	ErrConfig           = errors.New(ErrMsgConfigInvalid)
	ErrSessionClosed    = errors.New(ErrMsgSessionClosed)
	ErrStore            = errors.New(ErrMsgStoreFailed)
)

// Position represents a location inside a raw tag string
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// NewParseError creates a ParseFailure for a raw tag. cause carries the scanner detail.
func NewParseError(raw string, pos Position, cause error) error {
	wrapped := ErrParseFailure
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", ErrParseFailure, cause)
	}
	return cuserr.WrapStdError(wrapped, ErrCodeParse, ErrMsgParseFailure).
		WithMetadata(MetaKeyRaw, raw).
		WithMetadata(MetaKeyLine, strconv.Itoa(pos.Line)).
		WithMetadata(MetaKeyColumn, strconv.Itoa(pos.Column)).
		WithMetadata(MetaKeyOffset, strconv.Itoa(pos.Offset))
}

// NewSequenceError creates a ProtocolSequenceError: a tag that does not fit the
// handler's current state.
func NewSequenceError(reason, tagName string, state fmt.Stringer) error {
	err := cuserr.WrapStdError(fmt.Errorf("%w: %s", ErrProtocolSequence, reason), ErrCodeSequence, ErrMsgProtocolSequence).
		WithMetadata(MetaKeyTag, tagName).
		WithMetadata(MetaKeyReason, reason)
	if state != nil {
		err = err.WithMetadata(MetaKeyState, state.String())
	}
	return err
}

// NewUnterminatedTagError reports spans discarded at end of stream
func NewUnterminatedTagError(sessionID string, count int) error {
	return cuserr.WrapStdError(ErrUnterminatedTag, ErrCodeSequence, ErrMsgUnterminatedTag).
		WithMetadata(MetaKeySessionID, sessionID).
		WithMetadata(MetaKeyCount, strconv.Itoa(count))
}

// NewEntityError creates an error for a rejected entity registration
func NewEntityError(name string, cause error) error {
	wrapped := ErrInvalidEntity
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", ErrInvalidEntity, cause)
	}
	return cuserr.WrapStdError(wrapped, ErrCodeEntity, ErrMsgInvalidEntity).
		WithMetadata(MetaKeyEntity, name)
}

// NewHandlerExistsError creates a handler collision error
func NewHandlerExistsError(tagName string) error {
	return cuserr.WrapStdError(ErrHandlerExists, ErrCodeRegistry, ErrMsgHandlerExists).
		WithMetadata(MetaKeyTag, tagName)
}

// NewRegistryError creates a registry validation error
func NewRegistryError(msg, tagName string) error {
	return cuserr.NewValidationError(ErrCodeRegistry, msg).
		WithMetadata(MetaKeyTag, tagName)
}

// NewConfigError creates a configuration error
func NewConfigError(msg, path string, cause error) error {
	wrapped := ErrConfig
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", ErrConfig, cause)
	}
	return cuserr.WrapStdError(wrapped, ErrCodeConfig, msg).
		WithMetadata(MetaKeyPath, path)
}

// NewConfigValueError creates an error for a config value outside its domain
func NewConfigValueError(msg, key, value string) error {
	return cuserr.WrapStdError(ErrConfig, ErrCodeConfig, msg).
		WithMetadata(MetaKeyExpected, key).
		WithMetadata(MetaKeyValue, value)
}

// NewStoreError creates a link store error
func NewStoreError(msg string, cause error) error {
	wrapped := ErrStore
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", ErrStore, cause)
	}
	return cuserr.WrapStdError(wrapped, ErrCodeStore, msg)
}

// NewSessionClosedError reports use of a closed session
func NewSessionClosedError(sessionID string) error {
	return cuserr.WrapStdError(ErrSessionClosed, ErrCodeSequence, ErrMsgSessionClosed).
		WithMetadata(MetaKeySessionID, sessionID)
}
