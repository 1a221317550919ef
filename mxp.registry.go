package mxp

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Registry maps tag names to handlers with first-come-wins semantics.
// Names are matched case-insensitively. A registry belongs to one session
// and needs no locking.
type Registry struct {
	handlers map[string]TagHandler
	logger   *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		handlers: make(map[string]TagHandler),
		logger:   logger,
	}
}

func registryKey(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Register adds a handler for a tag name.
// If the name is already taken the existing handler stays and an error is returned.
func (r *Registry) Register(name string, handler TagHandler) error {
	if handler == nil {
		return NewRegistryError(ErrMsgNilHandler, name)
	}
	key := registryKey(name)
	if key == "" {
		return NewRegistryError(ErrMsgEmptyTagName, name)
	}

	if _, exists := r.handlers[key]; exists {
		r.logger.Warn(LogMsgHandlerCollision, zap.String(LogFieldTag, key))
		return NewHandlerExistsError(key)
	}

	r.handlers[key] = handler
	r.logger.Debug(LogMsgHandlerRegistered, zap.String(LogFieldTag, key))
	return nil
}

// MustRegister adds a handler and panics if registration fails.
func (r *Registry) MustRegister(name string, handler TagHandler) {
	if err := r.Register(name, handler); err != nil {
		panic(err)
	}
}

// Get retrieves the handler for a tag name.
func (r *Registry) Get(name string) (TagHandler, bool) {
	h, ok := r.handlers[registryKey(name)]
	return h, ok
}

// Has reports whether a handler is registered for the tag name.
func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[registryKey(name)]
	return ok
}

// List returns all registered tag names, upper-cased and sorted.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered handlers.
func (r *Registry) Count() int {
	return len(r.handlers)
}
