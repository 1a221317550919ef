package internal

import (
	"fmt"

	"go.uber.org/zap"
)

// UnitKind identifies a piece of a split document
type UnitKind int

// Unit kind constants
const (
	UnitText UnitKind = iota
	UnitStartTag
	UnitEndTag
)

// Unit kind string names for debugging
const (
	UnitKindNameText     = "TEXT"
	UnitKindNameStartTag = "START_TAG"
	UnitKindNameEndTag   = "END_TAG"
)

// String returns the string representation of the unit kind
func (k UnitKind) String() string {
	switch k {
	case UnitStartTag:
		return UnitKindNameStartTag
	case UnitEndTag:
		return UnitKindNameEndTag
	default:
		return UnitKindNameText
	}
}

// Unit is a raw tag or a literal content run extracted from a document
type Unit struct {
	Kind     UnitKind
	Value    string
	Position Position
}

// String returns a human-readable representation of the unit
func (u Unit) String() string {
	value := u.Value
	if len(value) > MaxStringDisplayLength {
		value = value[:TruncatedStringLength] + TruncationSuffix
	}
	return fmt.Sprintf("Unit{%s: %q @ %s}", u.Kind, value, u.Position)
}

// SplitDocument cuts a document into content runs and raw tags.
// A '<' only opens a tag when followed by a letter, '_', '!' or '/'; otherwise it is
// content. Quotes inside a tag hide '>' characters. A tag left open at the end of
// the document is returned as-is so the tag parser can reject it.
func SplitDocument(doc string, logger *zap.Logger) []Unit {
	if logger == nil {
		logger = zap.NewNop()
	}

	var units []Unit
	line, column := 1, 1
	textStart := 0
	textPos := Position{Offset: 0, Line: 1, Column: 1}

	flushText := func(end int) {
		if end > textStart {
			units = append(units, Unit{Kind: UnitText, Value: doc[textStart:end], Position: textPos})
		}
	}
	step := func(ch byte) {
		if ch == CharNewline {
			line++
			column = 1
		} else {
			column++
		}
	}

	i := 0
	for i < len(doc) {
		if doc[i] != CharOpenAngle || !opensTag(doc, i) {
			step(doc[i])
			i++
			continue
		}

		flushText(i)
		tagPos := Position{Offset: i, Line: line, Column: column}
		end := findTagEnd(doc, i)
		kind := UnitStartTag
		if doc[i+1] == CharSlash {
			kind = UnitEndTag
		}
		units = append(units, Unit{Kind: kind, Value: doc[i:end], Position: tagPos})

		for ; i < end; i++ {
			step(doc[i])
		}
		textStart = end
		textPos = Position{Offset: end, Line: line, Column: column}
	}
	flushText(len(doc))

	logger.Debug(LogMsgDocumentSplit, zap.Int(LogFieldUnits, len(units)))
	return units
}

func opensTag(doc string, i int) bool {
	if i+1 >= len(doc) {
		return false
	}
	ch := doc[i+1]
	return isNameStart(ch) || ch == CharBang || ch == CharSlash
}

// findTagEnd returns the offset just past the '>' closing the tag at start.
// If a quote is never closed the first '>' wins, so one broken tag cannot
// swallow the rest of the document. Returns len(doc) when there is no '>'.
func findTagEnd(doc string, start int) int {
	var quote byte
	firstClose := -1
	for i := start + 1; i < len(doc); i++ {
		ch := doc[i]
		if ch == CharCloseAngle && firstClose < 0 {
			firstClose = i
		}
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == CharDoubleQuote || ch == CharSingleQuote:
			quote = ch
		case ch == CharCloseAngle:
			return i + 1
		}
	}
	if firstClose >= 0 {
		return firstClose + 1
	}
	return len(doc)
}
