package internal

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Position represents a location in the raw tag text
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// RawAttr is one attribute as written in the tag.
// Name is empty for a positional value; Flag is set for a bare keyword.
type RawAttr struct {
	Name     string
	Value    string
	Flag     bool
	Position Position
}

// RawTag is the scanner's output for a single start or end tag
type RawTag struct {
	Name     string
	End      bool
	Attrs    []RawAttr
	Position Position
}

// Scanner reads exactly one tag from a raw tag string
type Scanner struct {
	source string
	pos    int // Current byte position
	line   int // Current line (1-indexed)
	column int // Current column (1-indexed)
	logger *zap.Logger
}

// NewScanner creates a scanner over a raw tag string
func NewScanner(source string, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgScannerCreated, zap.Int(LogFieldSource, len(source)))
	return &Scanner{
		source: source,
		line:   1,
		column: 1,
		logger: logger,
	}
}

// ScanStartTag scans `<NAME attr...>`.
func (s *Scanner) ScanStartTag() (*RawTag, error) {
	tag, err := s.scanStartTag()
	if err != nil {
		s.logger.Debug(LogMsgTagScanFailed, zap.Error(err))
		return nil, err
	}
	s.logger.Debug(LogMsgTagScanned,
		zap.String(LogFieldTag, tag.Name),
		zap.Int(LogFieldAttrs, len(tag.Attrs)),
	)
	return tag, nil
}

// ScanEndTag scans `</NAME>`.
func (s *Scanner) ScanEndTag() (*RawTag, error) {
	tag, err := s.scanEndTag()
	if err != nil {
		s.logger.Debug(LogMsgTagScanFailed, zap.Error(err))
		return nil, err
	}
	s.logger.Debug(LogMsgTagScanned,
		zap.String(LogFieldTag, tag.Name),
		zap.Bool(LogFieldEnd, true),
	)
	return tag, nil
}

func (s *Scanner) scanStartTag() (*RawTag, error) {
	s.skipWhitespace()
	start := s.currentPosition()
	if s.peek() != CharOpenAngle {
		return nil, s.newError(ErrMsgMissingOpenAngle)
	}
	s.advance()
	if s.peek() == CharSlash {
		return nil, s.newError(ErrMsgUnexpectedEndTag)
	}

	s.skipWhitespace()
	name, err := s.scanTagName()
	if err != nil {
		return nil, err
	}
	tag := &RawTag{Name: name, Position: start}

	for {
		s.skipWhitespace()
		if s.isAtEnd() {
			return nil, s.newError(ErrMsgUnterminatedTag)
		}

		ch := s.peek()
		switch {
		case ch == CharCloseAngle:
			s.advance()
			if err := s.expectEnd(); err != nil {
				return nil, err
			}
			return tag, nil

		case ch == CharDoubleQuote || ch == CharSingleQuote:
			if len(tag.Attrs) > 0 {
				return nil, s.newError(ErrMsgPositionalNotFirst)
			}
			pos := s.currentPosition()
			value, err := s.scanQuoted()
			if err != nil {
				return nil, err
			}
			if err := s.expectSeparator(); err != nil {
				return nil, err
			}
			tag.Attrs = append(tag.Attrs, RawAttr{Value: value, Position: pos})

		case isNameStart(ch):
			attr, err := s.scanAttribute()
			if err != nil {
				return nil, err
			}
			tag.Attrs = append(tag.Attrs, attr)

		default:
			return nil, s.newError(ErrMsgUnexpectedChar)
		}
	}
}

func (s *Scanner) scanEndTag() (*RawTag, error) {
	s.skipWhitespace()
	start := s.currentPosition()
	if s.peek() != CharOpenAngle {
		return nil, s.newError(ErrMsgMissingOpenAngle)
	}
	s.advance()
	if s.peek() != CharSlash {
		return nil, s.newError(ErrMsgExpectedEndTag)
	}
	s.advance()

	s.skipWhitespace()
	name, err := s.scanTagName()
	if err != nil {
		return nil, err
	}
	s.skipWhitespace()

	if s.isAtEnd() {
		return nil, s.newError(ErrMsgUnterminatedTag)
	}
	if s.peek() != CharCloseAngle {
		return nil, s.newError(ErrMsgEndTagAttributes)
	}
	s.advance()
	if err := s.expectEnd(); err != nil {
		return nil, err
	}
	return &RawTag{Name: name, End: true, Position: start}, nil
}

// scanTagName scans an identifier for a tag name.
// A leading '!' is allowed for definition tags such as !ENTITY.
func (s *Scanner) scanTagName() (string, error) {
	var sb strings.Builder

	if !s.isAtEnd() && (isNameStart(s.peek()) || s.peek() == CharBang) {
		sb.WriteByte(s.advance())
	} else {
		return "", s.newError(ErrMsgInvalidTagName)
	}

	for !s.isAtEnd() && isTagNameChar(s.peek()) {
		sb.WriteByte(s.advance())
	}
	return sb.String(), nil
}

// scanAttribute scans `name=value` or a bare flag keyword
func (s *Scanner) scanAttribute() (RawAttr, error) {
	pos := s.currentPosition()
	var sb strings.Builder
	sb.WriteByte(s.advance())
	for !s.isAtEnd() && isAttrNameChar(s.peek()) {
		sb.WriteByte(s.advance())
	}
	name := sb.String()

	// Look past whitespace for '=' without consuming it if absent
	mark := s.save()
	s.skipWhitespace()
	if s.peek() != CharEquals {
		s.restore(mark)
		if err := s.expectSeparator(); err != nil {
			return RawAttr{}, err
		}
		return RawAttr{Name: name, Flag: true, Position: pos}, nil
	}
	s.advance()
	s.skipWhitespace()

	if s.isAtEnd() {
		return RawAttr{}, s.newError(ErrMsgUnterminatedTag)
	}

	var value string
	var err error
	if ch := s.peek(); ch == CharDoubleQuote || ch == CharSingleQuote {
		value, err = s.scanQuoted()
	} else {
		value, err = s.scanUnquoted()
	}
	if err != nil {
		return RawAttr{}, err
	}
	if err := s.expectSeparator(); err != nil {
		return RawAttr{}, err
	}
	return RawAttr{Name: name, Value: value, Position: pos}, nil
}

// scanQuoted scans a quoted value; embedded whitespace is kept verbatim
func (s *Scanner) scanQuoted() (string, error) {
	quote := s.advance()
	var sb strings.Builder
	for !s.isAtEnd() {
		ch := s.advance()
		if ch == quote {
			return sb.String(), nil
		}
		sb.WriteByte(ch)
	}
	return "", s.newError(ErrMsgUnterminatedStr)
}

// scanUnquoted scans up to whitespace or '>'
func (s *Scanner) scanUnquoted() (string, error) {
	var sb strings.Builder
	for !s.isAtEnd() {
		ch := s.peek()
		if isWhitespace(ch) || ch == CharCloseAngle {
			break
		}
		if ch == CharDoubleQuote || ch == CharSingleQuote || ch == CharEquals || ch == CharOpenAngle {
			return "", s.newError(ErrMsgUnexpectedChar)
		}
		sb.WriteByte(s.advance())
	}
	if sb.Len() == 0 {
		return "", s.newError(ErrMsgMissingAttrValue)
	}
	return sb.String(), nil
}

// expectSeparator requires whitespace, '>' or end of input after an attribute
func (s *Scanner) expectSeparator() error {
	if s.isAtEnd() || isWhitespace(s.peek()) || s.peek() == CharCloseAngle {
		return nil
	}
	return s.newError(ErrMsgUnexpectedChar)
}

// expectEnd allows only trailing whitespace after the closing '>'
func (s *Scanner) expectEnd() error {
	s.skipWhitespace()
	if !s.isAtEnd() {
		return s.newError(ErrMsgTrailingInput)
	}
	return nil
}

// Helper methods

type scannerMark struct {
	pos, line, column int
}

func (s *Scanner) save() scannerMark {
	return scannerMark{pos: s.pos, line: s.line, column: s.column}
}

func (s *Scanner) restore(m scannerMark) {
	s.pos, s.line, s.column = m.pos, m.line, m.column
}

func (s *Scanner) currentPosition() Position {
	return Position{
		Offset: s.pos,
		Line:   s.line,
		Column: s.column,
	}
}

func (s *Scanner) isAtEnd() bool {
	return s.pos >= len(s.source)
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.pos]
}

func (s *Scanner) advance() byte {
	if s.isAtEnd() {
		return 0
	}
	ch := s.source[s.pos]
	s.pos++
	if ch == CharNewline {
		s.line++
		s.column = 1
	} else {
		s.column++
	}
	return ch
}

func (s *Scanner) skipWhitespace() {
	for !s.isAtEnd() && isWhitespace(s.peek()) {
		s.advance()
	}
}

// Character classification helpers

func isWhitespace(ch byte) bool {
	return ch == CharSpace || ch == CharTab || ch == CharNewline || ch == CharCarriageRet
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isNameStart(ch byte) bool {
	return isLetter(ch) || ch == CharUnderscore
}

func isTagNameChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == CharUnderscore || ch == CharHyphen || ch == CharDot
}

func isAttrNameChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == CharUnderscore || ch == CharHyphen
}

// ScanError represents a scanner error with position
type ScanError struct {
	Message  string
	Position Position
}

func (s *Scanner) newError(msg string) error {
	return &ScanError{
		Message:  msg,
		Position: s.currentPosition(),
	}
}

func (e *ScanError) Error() string {
	return e.Message + " at " + e.Position.String()
}
