package mxp

import (
	"errors"
	"testing"

	"github.com/itsatony/go-cuserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityResolver_Resolve(t *testing.T) {
	r := NewEntityResolver(nil)
	require.NoError(t, r.RegisterEntity("&charName;", "Gandalf"))
	require.NoError(t, r.RegisterEntity("dir", "north"))
	require.NoError(t, r.RegisterEntity("loop", "&loop;"))

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "no entities", input: "say hello", expected: "say hello"},
		{name: "registered", input: "say I am &charName;", expected: "say I am Gandalf"},
		{name: "bare registration", input: "go &dir;", expected: "go north"},
		{name: "several", input: "&charName; goes &dir;", expected: "Gandalf goes north"},
		{name: "unknown kept", input: "cast &spell;", expected: "cast &spell;"},
		{name: "text kept without overlay", input: "&text;", expected: "&text;"},
		{name: "lone ampersand", input: "salt & pepper", expected: "salt & pepper"},
		{name: "unterminated", input: "&charName", expected: "&charName"},
		{name: "value not rescanned", input: "&loop;", expected: "&loop;"},
		{name: "case sensitive", input: "&CHARNAME;", expected: "&CHARNAME;"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Resolve(tt.input))
		})
	}
}

func TestEntityResolver_ResolveWith(t *testing.T) {
	r := NewEntityResolver(nil)
	require.NoError(t, r.RegisterEntity("&charName;", "Gandalf"))

	overlay := map[string]string{"&text;": "&charName;"}

	assert.Equal(t, "&charName; Gandalf", r.ResolveWith("&text; &charName;", overlay))
	assert.Equal(t, "&text;", r.ResolveWith("&text;", nil))
}

func TestEntityResolver_RejectsTextPseudoEntity(t *testing.T) {
	r := NewEntityResolver(nil)

	for _, name := range []string{EntityText, "text"} {
		err := r.RegisterEntity(name, "from table")
		require.Error(t, err, name)
		assert.ErrorIs(t, err, ErrInvalidEntity)
		var customErr *cuserr.CustomError
		require.True(t, errors.As(err, &customErr))
		v, ok := customErr.GetMetadata(MetaKeyEntity)
		assert.True(t, ok)
		assert.Equal(t, name, v)
	}

	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Names())
	_, ok := r.Lookup(EntityText)
	assert.False(t, ok)
	assert.Equal(t, "go &text;", r.Resolve("go &text;"))

	assert.Error(t, r.RegisterEntities(map[string]string{"text": "x"}))
	assert.Equal(t, 0, r.Len())
}

func TestEntityResolver_Registration(t *testing.T) {
	r := NewEntityResolver(nil)

	require.NoError(t, r.RegisterEntity("charName", "Gandalf"))
	v, ok := r.Lookup("&charName;")
	assert.True(t, ok)
	assert.Equal(t, "Gandalf", v)

	require.NoError(t, r.RegisterEntity("&charName;", "Frodo"))
	v, _ = r.Lookup("charName")
	assert.Equal(t, "Frodo", v, "last registration wins")
	assert.Equal(t, 1, r.Len())

	require.NoError(t, r.RegisterEntities(map[string]string{"hp": "10", "&mp;": "5"}))
	assert.Equal(t, []string{"&charName;", "&hp;", "&mp;"}, r.Names())

	assert.True(t, r.UnregisterEntity("hp"))
	assert.False(t, r.UnregisterEntity("hp"))
	assert.Equal(t, 2, r.Len())
}

func TestEntityResolver_InvalidNames(t *testing.T) {
	r := NewEntityResolver(nil)

	for _, name := range []string{"", "&;", "has space", "semi;colon&x"} {
		t.Run(name, func(t *testing.T) {
			err := r.RegisterEntity(name, "x")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidEntity))
		})
	}
	assert.Equal(t, 0, r.Len())

	err := r.RegisterEntities(map[string]string{"bad name": "x"})
	assert.True(t, errors.Is(err, ErrInvalidEntity))
}
