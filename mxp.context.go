package mxp

import (
	"crypto/rand"
	"encoding/base64"

	"go.uber.org/zap"
)

// Context is the session-scoped protocol state handed to every handler call.
// One Context belongs to exactly one document or connection and is not shared.
type Context struct {
	sessionID string
	entities  *EntityResolver
	logger    *zap.Logger
}

// NewContext creates a context with a generated session ID and an empty entity table.
func NewContext(logger *zap.Logger) *Context {
	return NewContextWithSession(NewSessionID(), logger)
}

// NewContextWithSession creates a context for a known session ID.
func NewContextWithSession(sessionID string, logger *zap.Logger) *Context {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sessionID == "" {
		sessionID = NewSessionID()
	}
	logger = logger.With(zap.String(LogFieldSessionID, sessionID))
	return &Context{
		sessionID: sessionID,
		entities:  NewEntityResolver(logger),
		logger:    logger,
	}
}

// SessionID returns the session identifier.
func (c *Context) SessionID() string {
	return c.sessionID
}

// Entities returns the session entity resolver. Other tag families register
// definitions here; the SEND handler reads them.
func (c *Context) Entities() *EntityResolver {
	return c.entities
}

// Logger returns the session logger.
func (c *Context) Logger() *zap.Logger {
	return c.logger
}

// NewSessionID returns a random session identifier.
func NewSessionID() string {
	b := make([]byte, SessionIDByteSize)
	_, _ = rand.Read(b)
	return SessionIDPrefix + base64.RawURLEncoding.EncodeToString(b)
}
