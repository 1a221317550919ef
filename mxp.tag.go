package mxp

import (
	"strings"
)

// Tag is either a *StartTag or an *EndTag.
type Tag interface {
	// TagName returns the tag name as written (e.g. "SEND" or "send").
	TagName() string
	// IsEnd reports whether this is an end tag.
	IsEnd() bool
	// String renders the tag back to MXP syntax.
	String() string
}

// Attribute is one attribute of a start tag.
//
// A positional value has an empty Name. A bare keyword such as PROMPT has
// Flag set, its keyword in Name, and an empty Value.
type Attribute struct {
	Name  string
	Value string
	Flag  bool
}

// IsPositional reports whether the attribute is an unnamed value.
func (a Attribute) IsPositional() bool {
	return a.Name == "" && !a.Flag
}

// NamedAttr builds a name=value attribute.
func NamedAttr(name, value string) Attribute {
	return Attribute{Name: name, Value: value}
}

// PositionalAttr builds an unnamed attribute.
func PositionalAttr(value string) Attribute {
	return Attribute{Value: value}
}

// FlagAttr builds a bare keyword attribute.
func FlagAttr(name string) Attribute {
	return Attribute{Name: name, Flag: true}
}

// StartTag is a parsed `<NAME attr...>`. Attribute order is preserved.
type StartTag struct {
	Name       string
	Attributes []Attribute
}

// NewStartTag creates a start tag.
func NewStartTag(name string, attrs ...Attribute) *StartTag {
	return &StartTag{Name: name, Attributes: attrs}
}

// TagName returns the tag name.
func (t *StartTag) TagName() string { return t.Name }

// IsEnd returns false.
func (t *StartTag) IsEnd() bool { return false }

// Is reports whether the tag has the given name, ignoring case.
func (t *StartTag) Is(name string) bool {
	return strings.EqualFold(t.Name, name)
}

// Get returns the value of a named (non-flag) attribute. Names match case-insensitively;
// the first match wins.
func (t *StartTag) Get(name string) (string, bool) {
	for _, a := range t.Attributes {
		if !a.Flag && a.Name != "" && strings.EqualFold(a.Name, name) {
			return a.Value, true
		}
	}
	return "", false
}

// HasFlag reports whether a bare keyword attribute is present.
func (t *StartTag) HasFlag(name string) bool {
	for _, a := range t.Attributes {
		if a.Flag && strings.EqualFold(a.Name, name) {
			return true
		}
	}
	return false
}

// Positional returns the n-th unnamed attribute value (0-based).
func (t *StartTag) Positional(n int) (string, bool) {
	i := 0
	for _, a := range t.Attributes {
		if !a.IsPositional() {
			continue
		}
		if i == n {
			return a.Value, true
		}
		i++
	}
	return "", false
}

// Value looks up an attribute by its canonical name, falling back to the
// positional slot the tag schema maps to that name.
func (t *StartTag) Value(name string, position int) (string, bool) {
	if v, ok := t.Get(name); ok {
		return v, true
	}
	if position < 0 {
		return "", false
	}
	return t.Positional(position)
}

// String renders the tag in MXP syntax.
func (t *StartTag) String() string {
	var sb strings.Builder
	sb.WriteByte('<')
	sb.WriteString(t.Name)
	for _, a := range t.Attributes {
		sb.WriteByte(' ')
		switch {
		case a.Flag:
			sb.WriteString(a.Name)
		case a.Name == "":
			sb.WriteString(quoteValue(a.Value))
		default:
			sb.WriteString(a.Name)
			sb.WriteByte('=')
			sb.WriteString(quoteValue(a.Value))
		}
	}
	sb.WriteByte('>')
	return sb.String()
}

// EndTag is a parsed `</NAME>`.
type EndTag struct {
	Name string
}

// NewEndTag creates an end tag.
func NewEndTag(name string) *EndTag {
	return &EndTag{Name: name}
}

// TagName returns the tag name.
func (t *EndTag) TagName() string { return t.Name }

// IsEnd returns true.
func (t *EndTag) IsEnd() bool { return true }

// Is reports whether the tag has the given name, ignoring case.
func (t *EndTag) Is(name string) bool {
	return strings.EqualFold(t.Name, name)
}

// String renders the tag in MXP syntax.
func (t *EndTag) String() string {
	return "</" + t.Name + ">"
}

// quoteValue picks double quotes unless the value itself contains one.
func quoteValue(v string) string {
	if strings.Contains(v, `"`) {
		return "'" + v + "'"
	}
	return `"` + v + `"`
}
