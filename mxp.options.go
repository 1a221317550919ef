package mxp

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring a Session.
type Option func(*sessionConfig)

type namedHandler struct {
	name    string
	handler TagHandler
}

// sessionConfig holds the internal configuration for a Session.
type sessionConfig struct {
	sessionID    string
	logger       *zap.Logger
	nestedPolicy NestedPolicy
	entities     map[string]string
	sink         Sink
	handlers     []namedHandler
}

func defaultSessionConfig() *sessionConfig {
	return &sessionConfig{
		nestedPolicy: NestedPolicyReplace,
		entities:     make(map[string]string),
	}
}

// WithLogger sets the logger.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *sessionConfig) {
		c.logger = logger
	}
}

// WithSessionID fixes the session ID instead of generating one.
func WithSessionID(id string) Option {
	return func(c *sessionConfig) {
		if id != "" {
			c.sessionID = id
		}
	}
}

// WithNestedPolicy sets how the built-in SEND handler treats a start tag
// while a span is already open.
// Default: NestedPolicyReplace
func WithNestedPolicy(policy NestedPolicy) Option {
	return func(c *sessionConfig) {
		if policy != "" {
			c.nestedPolicy = policy
		}
	}
}

// WithEntities pre-registers entities. Later calls add to earlier ones.
func WithEntities(entities map[string]string) Option {
	return func(c *sessionConfig) {
		for k, v := range entities {
			c.entities[k] = v
		}
	}
}

// WithSink sets where completed links go.
// Default: a RecordingSink, available through Session.Recorded.
func WithSink(sink Sink) Option {
	return func(c *sessionConfig) {
		c.sink = sink
	}
}

// WithHandler registers an additional tag family. Registering SEND replaces the
// built-in handler.
func WithHandler(name string, handler TagHandler) Option {
	return func(c *sessionConfig) {
		c.handlers = append(c.handlers, namedHandler{name: name, handler: handler})
	}
}
