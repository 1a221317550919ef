package mxp

import (
	"errors"
	"strings"

	"github.com/itsatony/go-mxp/internal"
	"go.uber.org/zap"
)

// Parser turns raw tag strings into Tag values. It keeps no state between
// calls, so one Parser can serve a whole session.
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a parser. A nil logger disables logging.
func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgParserCreated)
	return &Parser{logger: logger}
}

// ParseStartTag parses `<NAME attr...>`.
// Any syntax problem yields an error wrapping ErrParseFailure.
func (p *Parser) ParseStartTag(raw string) (*StartTag, error) {
	rt, err := internal.NewScanner(raw, p.logger).ScanStartTag()
	if err != nil {
		return nil, toParseError(raw, err)
	}

	tag := &StartTag{Name: rt.Name}
	if len(rt.Attrs) > 0 {
		tag.Attributes = make([]Attribute, len(rt.Attrs))
		for i, a := range rt.Attrs {
			tag.Attributes[i] = Attribute{Name: a.Name, Value: a.Value, Flag: a.Flag}
		}
	}
	return tag, nil
}

// ParseEndTag parses `</NAME>`.
func (p *Parser) ParseEndTag(raw string) (*EndTag, error) {
	rt, err := internal.NewScanner(raw, p.logger).ScanEndTag()
	if err != nil {
		return nil, toParseError(raw, err)
	}
	return &EndTag{Name: rt.Name}, nil
}

// Parse dispatches on the `</` prefix.
func (p *Parser) Parse(raw string) (Tag, error) {
	if isEndTag(raw) {
		return p.ParseEndTag(raw)
	}
	return p.ParseStartTag(raw)
}

func isEndTag(raw string) bool {
	return strings.HasPrefix(strings.TrimLeft(raw, " \t\r\n"), "</")
}

func toParseError(raw string, err error) error {
	var scanErr *internal.ScanError
	if errors.As(err, &scanErr) {
		pos := Position{
			Offset: scanErr.Position.Offset,
			Line:   scanErr.Position.Line,
			Column: scanErr.Position.Column,
		}
		return NewParseError(raw, pos, err)
	}
	return NewParseError(raw, Position{}, err)
}
