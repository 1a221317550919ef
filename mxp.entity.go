package mxp

import (
	"github.com/itsatony/go-mxp/internal"
	"go.uber.org/zap"
)

// EntityResolver is a per-session table of named substitutions (&name;).
//
// Resolution is lenient: references with no registered value stay in the text
// verbatim. It is a single pass, so replacement values are never expanded again.
// The &text; pseudo-entity cannot be registered; handlers bind it per span
// through ResolveWith.
type EntityResolver struct {
	table  *internal.EntityTable
	logger *zap.Logger
}

// NewEntityResolver creates an empty resolver.
func NewEntityResolver(logger *zap.Logger) *EntityResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntityResolver{
		table:  internal.NewEntityTable(logger),
		logger: logger,
	}
}

// RegisterEntity sets name to value, replacing any earlier value.
// name may be given as "&charName;" or "charName". Registering &text; fails
// with ErrInvalidEntity.
func (r *EntityResolver) RegisterEntity(name, value string) error {
	if err := r.table.Set(name, value); err != nil {
		return NewEntityError(name, err)
	}
	r.logger.Debug(LogMsgEntityRegistered, zap.String(LogFieldEntity, name))
	return nil
}

// RegisterEntities registers every entry of a map.
func (r *EntityResolver) RegisterEntities(entities map[string]string) error {
	for name, value := range entities {
		if err := r.RegisterEntity(name, value); err != nil {
			return err
		}
	}
	return nil
}

// UnregisterEntity removes an entity and reports whether it was present.
func (r *EntityResolver) UnregisterEntity(name string) bool {
	return r.table.Delete(name)
}

// Lookup returns the value registered for name.
func (r *EntityResolver) Lookup(name string) (string, bool) {
	return r.table.Get(name)
}

// Names returns the registered entity names, delimited and sorted.
func (r *EntityResolver) Names() []string {
	return r.table.Names()
}

// Len returns the number of registered entities.
func (r *EntityResolver) Len() int {
	return r.table.Len()
}

// Resolve replaces every registered &name; in text.
func (r *EntityResolver) Resolve(text string) string {
	return r.table.Expand(text, nil)
}

// ResolveWith resolves text with an overlay consulted before the registered table.
// Overlay keys are full tokens such as "&text;".
func (r *EntityResolver) ResolveWith(text string, overlay map[string]string) string {
	return r.table.Expand(text, overlay)
}
