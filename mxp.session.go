package mxp

import (
	"errors"

	"github.com/itsatony/go-mxp/internal"
	"go.uber.org/zap"
)

// Stats counts what a session has seen. Recoverable problems show up here
// instead of stopping the stream.
type Stats struct {
	StartTags      int `json:"start_tags" yaml:"start_tags"`
	EndTags        int `json:"end_tags" yaml:"end_tags"`
	TextRuns       int `json:"text_runs" yaml:"text_runs"`
	Links          int `json:"links" yaml:"links"`
	ParseFailures  int `json:"parse_failures" yaml:"parse_failures"`
	SequenceErrors int `json:"sequence_errors" yaml:"sequence_errors"`
	UnknownTags    int `json:"unknown_tags" yaml:"unknown_tags"`
	Unterminated   int `json:"unterminated" yaml:"unterminated"`
}

// Session processes one document or connection: it parses raw tags, routes
// them to the registered tag handlers and streams content to open spans.
// A Session is single-threaded; each connection owns its own.
type Session struct {
	ctx      *Context
	parser   *Parser
	registry *Registry
	sink     Sink
	recorder *RecordingSink
	open     []string // upper-cased names of handlers with an open span, oldest first
	stats    Stats
	closed   bool
	logger   *zap.Logger
}

// NewSession creates a session with the SEND handler registered.
func NewSession(opts ...Option) (*Session, error) {
	config := defaultSessionConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx := NewContextWithSession(config.sessionID, logger)
	logger = ctx.Logger()

	if err := ctx.Entities().RegisterEntities(config.entities); err != nil {
		return nil, err
	}

	registry := NewRegistry(logger)
	for _, nh := range config.handlers {
		if err := registry.Register(nh.name, nh.handler); err != nil {
			return nil, err
		}
	}
	if !registry.Has(TagNameSend) {
		send := NewSendTagHandlerWithConfig(SendHandlerConfig{NestedPolicy: config.nestedPolicy}, logger)
		registry.MustRegister(TagNameSend, send)
	}

	s := &Session{
		ctx:      ctx,
		parser:   NewParser(logger),
		registry: registry,
		logger:   logger,
	}
	if config.sink != nil {
		s.sink = config.sink
	} else {
		s.recorder = NewRecordingSink()
		s.sink = s.recorder
	}

	logger.Debug(LogMsgSessionCreated,
		zap.Strings(LogFieldTag, registry.List()),
		zap.String(LogFieldPolicy, string(config.nestedPolicy)),
	)
	return s, nil
}

// MustNewSession creates a session and panics on error.
func MustNewSession(opts ...Option) *Session {
	s, err := NewSession(opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Context returns the session context.
func (s *Session) Context() *Context {
	return s.ctx
}

// Registry returns the session handler registry.
func (s *Session) Registry() *Registry {
	return s.registry
}

// Recorded returns the default recording sink, or nil when WithSink was used.
func (s *Session) Recorded() *RecordingSink {
	return s.recorder
}

// Stats returns a snapshot of the session counters.
func (s *Session) Stats() Stats {
	return s.stats
}

// RegisterEntity registers an entity on the session resolver.
func (s *Session) RegisterEntity(name, value string) error {
	return s.ctx.Entities().RegisterEntity(name, value)
}

// StartTag parses and dispatches a raw start tag.
// The returned error is informational; the session stays usable.
func (s *Session) StartTag(raw string) error {
	if s.closed {
		return NewSessionClosedError(s.ctx.SessionID())
	}
	tag, err := s.parser.ParseStartTag(raw)
	if err != nil {
		s.stats.ParseFailures++
		s.logger.Warn(LogMsgParseFailed, zap.String(LogFieldRaw, raw), zap.Error(err))
		return err
	}
	return s.Dispatch(tag)
}

// EndTag parses and dispatches a raw end tag.
func (s *Session) EndTag(raw string) error {
	if s.closed {
		return NewSessionClosedError(s.ctx.SessionID())
	}
	tag, err := s.parser.ParseEndTag(raw)
	if err != nil {
		s.stats.ParseFailures++
		s.logger.Warn(LogMsgParseFailed, zap.String(LogFieldRaw, raw), zap.Error(err))
		return err
	}
	return s.Dispatch(tag)
}

// Text streams a content run to every handler with an open span.
func (s *Session) Text(text string) error {
	if s.closed {
		return NewSessionClosedError(s.ctx.SessionID())
	}
	s.stats.TextRuns++
	for _, name := range s.open {
		if h, ok := s.registry.Get(name); ok {
			h.HandleContent(text)
		}
	}
	return nil
}

// Dispatch routes an already parsed tag to its handler. Tags without a handler
// are ignored.
func (s *Session) Dispatch(tag Tag) error {
	if s.closed {
		return NewSessionClosedError(s.ctx.SessionID())
	}
	if isNilTag(tag) {
		return NewSequenceError(ErrMsgNilTag, "", nil)
	}

	if tag.IsEnd() {
		s.stats.EndTags++
	} else {
		s.stats.StartTags++
	}

	key := registryKey(tag.TagName())
	h, ok := s.registry.Get(key)
	if !ok {
		s.stats.UnknownTags++
		s.logger.Debug(LogMsgUnknownTag, zap.String(LogFieldTag, tag.TagName()))
		return nil
	}

	err := h.HandleTag(s.ctx, sinkCounter{s}, tag)
	if tag.IsEnd() {
		s.markClosed(key)
	} else if err == nil {
		s.markOpen(key)
	}
	if err != nil {
		s.stats.SequenceErrors++
		s.logger.Warn(LogMsgSequenceError, zap.String(LogFieldTag, tag.String()), zap.Error(err))
		return err
	}
	return nil
}

// Feed splits a whole document into tags and content and processes them in
// order. Malformed or out-of-sequence tags are skipped; only a closed session
// makes Feed fail.
func (s *Session) Feed(doc string) error {
	if s.closed {
		return NewSessionClosedError(s.ctx.SessionID())
	}
	for _, unit := range internal.SplitDocument(doc, s.logger) {
		var err error
		switch unit.Kind {
		case internal.UnitStartTag:
			err = s.StartTag(unit.Value)
		case internal.UnitEndTag:
			err = s.EndTag(unit.Value)
		default:
			err = s.Text(unit.Value)
		}
		if err != nil {
			if errors.Is(err, ErrSessionClosed) {
				return err
			}
			s.logger.Debug(LogMsgUnitSkipped, zap.Stringer(LogFieldRaw, unit))
		}
	}
	return nil
}

// Close ends the stream. Open spans are discarded without emitting anything;
// if there were any, the returned error wraps ErrUnterminatedTag. Closing twice
// is a no-op.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	discarded := 0
	for _, name := range s.open {
		h, ok := s.registry.Get(name)
		if !ok {
			continue
		}
		if r, ok := h.(Resetter); ok && r.Reset() {
			discarded++
			s.logger.Warn(LogMsgUnterminated, zap.String(LogFieldTag, name))
		}
	}
	s.open = nil
	s.stats.Unterminated += discarded

	s.logger.Debug(LogMsgSessionClosed, zap.Int(LogFieldLinks, s.stats.Links))
	if discarded > 0 {
		return NewUnterminatedTagError(s.ctx.SessionID(), discarded)
	}
	return nil
}

func (s *Session) markOpen(key string) {
	for _, name := range s.open {
		if name == key {
			return
		}
	}
	s.open = append(s.open, key)
}

func (s *Session) markClosed(key string) {
	for i, name := range s.open {
		if name == key {
			s.open = append(s.open[:i], s.open[i+1:]...)
			return
		}
	}
}

// sinkCounter counts links on their way to the session sink.
type sinkCounter struct {
	s *Session
}

func (c sinkCounter) SetLink(action, hint string) {
	c.s.stats.Links++
	c.s.sink.SetLink(action, hint)
}

// isNilTag reports whether tag is nil or a typed nil pointer.
func isNilTag(tag Tag) bool {
	switch t := tag.(type) {
	case *StartTag:
		return t == nil
	case *EndTag:
		return t == nil
	default:
		return tag == nil
	}
}
