package mxp

// TagHandler is implemented by every tag family.
//
// HandleTag receives the start tag, then the matching end tag, of one span.
// HandleContent receives the plain text between them, in arrival order.
// Errors returned by HandleTag are recoverable: the caller logs them and keeps
// processing the document.
type TagHandler interface {
	HandleTag(ctx *Context, sink Sink, tag Tag) error
	HandleContent(text string)
}

// Resetter is implemented by handlers that buffer state across a span.
// Reset discards an open span without emitting anything and reports whether
// there was one.
type Resetter interface {
	Reset() bool
}

// Sink receives the output of a completed tag span.
type Sink interface {
	SetLink(action, hint string)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(action, hint string)

// SetLink calls f.
func (f SinkFunc) SetLink(action, hint string) {
	f(action, hint)
}

// LinkRecord is one (action, hint) pair captured by a RecordingSink.
type LinkRecord struct {
	Action string `json:"action" yaml:"action"`
	Hint   string `json:"hint" yaml:"hint"`
}

// RecordingSink keeps every emitted link in order.
type RecordingSink struct {
	Actions []string
	Hints   []string
}

// NewRecordingSink creates an empty recording sink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

// SetLink records the pair.
func (s *RecordingSink) SetLink(action, hint string) {
	s.Actions = append(s.Actions, action)
	s.Hints = append(s.Hints, hint)
}

// Links returns the recorded pairs.
func (s *RecordingSink) Links() []LinkRecord {
	out := make([]LinkRecord, len(s.Actions))
	for i := range s.Actions {
		out[i] = LinkRecord{Action: s.Actions[i], Hint: s.Hints[i]}
	}
	return out
}

// Len returns the number of recorded links.
func (s *RecordingSink) Len() int {
	return len(s.Actions)
}

// multiSink fans one link out to several sinks.
type multiSink []Sink

func (m multiSink) SetLink(action, hint string) {
	for _, s := range m {
		s.SetLink(action, hint)
	}
}

// MultiSink returns a Sink that forwards to every non-nil sink given.
func MultiSink(sinks ...Sink) Sink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}
