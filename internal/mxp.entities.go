package internal

import (
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// EntityTable maps delimited entity names (&name;) to replacement text.
// It is owned by a single session and is not safe for concurrent use.
type EntityTable struct {
	entries map[string]string
	logger  *zap.Logger
}

// NewEntityTable creates an empty entity table.
func NewEntityTable(logger *zap.Logger) *EntityTable {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntityTable{
		entries: make(map[string]string),
		logger:  logger,
	}
}

// NormalizeEntityName wraps a bare name in entity delimiters and validates it.
// "charName" and "&charName;" both normalize to "&charName;". The &text;
// pseudo-entity is rejected.
func NormalizeEntityName(name string) (string, error) {
	bare := strings.TrimSuffix(strings.TrimPrefix(name, EntityPrefix), EntitySuffix)
	if bare == "" {
		return "", errors.New(ErrMsgEmptyEntityName)
	}
	for i := 0; i < len(bare); i++ {
		if !isEntityChar(bare[i]) {
			return "", errors.New(ErrMsgInvalidEntityName)
		}
	}
	key := EntityPrefix + bare + EntitySuffix
	if key == ReservedEntityText {
		return "", errors.New(ErrMsgReservedEntity)
	}
	return key, nil
}

// Set registers or overwrites an entity. Last registration wins.
func (t *EntityTable) Set(name, value string) error {
	key, err := NormalizeEntityName(name)
	if err != nil {
		return err
	}
	if _, exists := t.entries[key]; exists {
		t.logger.Debug(LogMsgEntityOverwrite, zap.String(LogFieldEntity, key))
	} else {
		t.logger.Debug(LogMsgEntitySet, zap.String(LogFieldEntity, key))
	}
	t.entries[key] = value
	return nil
}

// Get returns the value registered for name.
func (t *EntityTable) Get(name string) (string, bool) {
	key, err := NormalizeEntityName(name)
	if err != nil {
		return "", false
	}
	v, ok := t.entries[key]
	return v, ok
}

// Delete removes an entity and reports whether it existed.
func (t *EntityTable) Delete(name string) bool {
	key, err := NormalizeEntityName(name)
	if err != nil {
		return false
	}
	if _, ok := t.entries[key]; !ok {
		return false
	}
	delete(t.entries, key)
	t.logger.Debug(LogMsgEntityDeleted, zap.String(LogFieldEntity, key))
	return true
}

// Names returns all registered entity names in sorted order.
func (t *EntityTable) Names() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered entities.
func (t *EntityTable) Len() int {
	return len(t.entries)
}

// Expand replaces every &name; token in text in a single left-to-right pass.
// The overlay is consulted before the table. Unknown tokens are copied verbatim
// and substituted values are never scanned again.
func (t *EntityTable) Expand(text string, overlay map[string]string) string {
	if !strings.Contains(text, EntityPrefix) {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))

	i := 0
	for i < len(text) {
		if text[i] != CharAmpersand {
			sb.WriteByte(text[i])
			i++
			continue
		}

		j := i + 1
		for j < len(text) && isEntityChar(text[j]) {
			j++
		}
		if j == i+1 || j >= len(text) || text[j] != CharSemicolon {
			sb.WriteByte(CharAmpersand)
			i++
			continue
		}

		token := text[i : j+1]
		if v, ok := overlay[token]; ok {
			sb.WriteString(v)
		} else if v, ok := t.entries[token]; ok {
			sb.WriteString(v)
		} else {
			sb.WriteString(token)
		}
		i = j + 1
	}
	return sb.String()
}

func isEntityChar(ch byte) bool {
	return isLetter(ch) || isDigit(ch) || ch == CharUnderscore || ch == CharHyphen || ch == CharDot || ch == CharHash
}
