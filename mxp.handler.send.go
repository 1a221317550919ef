package mxp

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// SendState is the state of a SendTagHandler
type SendState int

// Send handler states
const (
	SendStateIdle SendState = iota
	SendStateOpen
)

// String returns the state name
func (s SendState) String() string {
	if s == SendStateOpen {
		return SendStateNameOpen
	}
	return SendStateNameIdle
}

// NestedPolicy decides what a SEND start tag does while another span is open.
type NestedPolicy string

// ParseNestedPolicy validates a policy name. Empty selects the default.
func ParseNestedPolicy(s string) (NestedPolicy, error) {
	switch NestedPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", NestedPolicyReplace:
		return NestedPolicyReplace, nil
	case NestedPolicyReject:
		return NestedPolicyReject, nil
	default:
		return "", NewConfigValueError(ErrMsgUnknownPolicy, ConfigKeyNestedPolicy, s)
	}
}

// SendHandlerConfig configures a SendTagHandler
type SendHandlerConfig struct {
	// NestedPolicy applies when a start tag arrives while a span is open.
	// Default: NestedPolicyReplace
	NestedPolicy NestedPolicy
}

// DefaultSendHandlerConfig returns the default configuration
func DefaultSendHandlerConfig() SendHandlerConfig {
	return SendHandlerConfig{NestedPolicy: NestedPolicyReplace}
}

// SendTagHandler implements the SEND tag family.
//
// A start tag opens a span and fixes the href template and prompt flag; content
// is buffered; the end tag resolves the template and emits one link. The href
// defaults to &text;, which resolves to the buffered content.
type SendTagHandler struct {
	state        SendState
	hrefTemplate string
	prompt       bool
	content      strings.Builder
	config       SendHandlerConfig
	logger       *zap.Logger
}

// NewSendTagHandler creates a handler with the default configuration
func NewSendTagHandler(logger *zap.Logger) *SendTagHandler {
	return NewSendTagHandlerWithConfig(DefaultSendHandlerConfig(), logger)
}

// NewSendTagHandlerWithConfig creates a handler with a custom configuration
func NewSendTagHandlerWithConfig(config SendHandlerConfig, logger *zap.Logger) *SendTagHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.NestedPolicy == "" {
		config.NestedPolicy = NestedPolicyReplace
	}
	return &SendTagHandler{
		config: config,
		logger: logger,
	}
}

// State returns the current state
func (h *SendTagHandler) State() SendState {
	return h.state
}

// HandleTag processes a SEND start or end tag
func (h *SendTagHandler) HandleTag(ctx *Context, sink Sink, tag Tag) error {
	switch t := tag.(type) {
	case *StartTag:
		if t == nil {
			return NewSequenceError(ErrMsgNilTag, "", h.state)
		}
		if !t.Is(TagNameSend) {
			return NewSequenceError(ErrMsgWrongTag, t.Name, h.state)
		}
		return h.open(t)
	case *EndTag:
		if t == nil {
			return NewSequenceError(ErrMsgNilTag, "", h.state)
		}
		if !t.Is(TagNameSend) {
			return NewSequenceError(ErrMsgWrongTag, t.Name, h.state)
		}
		return h.close(ctx, sink, t)
	default:
		return NewSequenceError(ErrMsgNilTag, "", h.state)
	}
}

// HandleContent appends text to the open span. Text outside a span is dropped.
func (h *SendTagHandler) HandleContent(text string) {
	if h.state != SendStateOpen {
		h.logger.Debug(LogMsgContentDropped, zap.Int(LogFieldBytes, len(text)))
		return
	}
	h.content.WriteString(text)
}

// Reset discards an open span without emitting it.
func (h *SendTagHandler) Reset() bool {
	if h.state != SendStateOpen {
		return false
	}
	h.logger.Debug(LogMsgSendDiscarded, zap.String(LogFieldTemplate, h.hrefTemplate))
	h.clear()
	return true
}

func (h *SendTagHandler) open(tag *StartTag) error {
	if h.state == SendStateOpen {
		if h.config.NestedPolicy == NestedPolicyReject {
			return NewSequenceError(ErrMsgStartWhileOpen, tag.Name, h.state)
		}
		h.logger.Debug(LogMsgSendReplaced, zap.String(LogFieldTemplate, h.hrefTemplate))
	}

	href, ok := tag.Value(AttrHref, 0)
	if !ok {
		href = EntityText
	}

	h.hrefTemplate = href
	h.prompt = tag.HasFlag(AttrPrompt)
	h.content.Reset()
	h.state = SendStateOpen

	h.logger.Debug(LogMsgSendOpened,
		zap.String(LogFieldTemplate, h.hrefTemplate),
		zap.Bool(LogFieldPrompt, h.prompt),
	)
	return nil
}

func (h *SendTagHandler) close(ctx *Context, sink Sink, tag *EndTag) error {
	if h.state != SendStateOpen {
		return NewSequenceError(ErrMsgEndWhileIdle, tag.Name, h.state)
	}

	resolved := h.resolve(ctx)
	action := FormatAction(resolved, h.prompt)
	h.clear()

	if sink == nil {
		h.logger.Warn(LogMsgNoSink, zap.String(LogFieldAction, action))
		return nil
	}
	sink.SetLink(action, resolved)
	h.logger.Debug(LogMsgSendClosed,
		zap.String(LogFieldAction, action),
		zap.String(LogFieldHint, resolved),
	)
	return nil
}

// resolve expands the href template. &text; is bound to the buffered content in
// the same pass as the session entities, so neither source is expanded twice.
func (h *SendTagHandler) resolve(ctx *Context) string {
	overlay := map[string]string{EntityText: h.content.String()}
	if ctx == nil {
		return NewEntityResolver(nil).ResolveWith(h.hrefTemplate, overlay)
	}
	return ctx.Entities().ResolveWith(h.hrefTemplate, overlay)
}

func (h *SendTagHandler) clear() {
	h.hrefTemplate = ""
	h.prompt = false
	h.content.Reset()
	h.state = SendStateIdle
}

// FormatAction wraps resolved text in the interpreter call for the prompt policy.
func FormatAction(resolved string, prompt bool) string {
	if prompt {
		return fmt.Sprintf(ActionFormatPrompt, resolved)
	}
	return fmt.Sprintf(ActionFormatSend, resolved)
}
