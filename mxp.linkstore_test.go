package mxp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMemoryLinkStore_SaveAndList(t *testing.T) {
	store := NewMemoryLinkStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &Link{SessionID: "a", Action: "send([[north]])", Hint: "north"}))
	require.NoError(t, store.Save(ctx, &Link{SessionID: "b", Action: "send([[up]])", Hint: "up"}))
	require.NoError(t, store.Save(ctx, &Link{SessionID: "a", Action: "printCmdLine([[say ]])", Hint: "say ", Prompt: true}))

	links, err := store.List(ctx, "a")
	require.NoError(t, err)
	require.Len(t, links, 2)

	assert.Equal(t, "north", links[0].Hint)
	assert.Equal(t, "say ", links[1].Hint)
	assert.True(t, links[1].Prompt)
	for _, l := range links {
		assert.True(t, strings.HasPrefix(l.ID, LinkIDPrefix))
		assert.False(t, l.CreatedAt.IsZero())
	}
	assert.NotEqual(t, links[0].ID, links[1].ID)

	links[0].Hint = "mutated"
	again, err := store.List(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "north", again[0].Hint, "List returns copies")

	empty, err := store.List(ctx, "none")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryLinkStore_KeepsGivenIDAndTime(t *testing.T) {
	store := NewMemoryLinkStore()
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, store.Save(context.Background(), &Link{ID: "link_fixed", SessionID: "s", CreatedAt: at}))
	links, err := store.List(context.Background(), "s")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "link_fixed", links[0].ID)
	assert.Equal(t, at, links[0].CreatedAt)
}

func TestMemoryLinkStore_Errors(t *testing.T) {
	store := NewMemoryLinkStore()

	err := store.Save(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrStore))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, store.Save(cancelled, &Link{}), context.Canceled)
	_, err = store.List(cancelled, "s")
	assert.ErrorIs(t, err, context.Canceled)

	require.NoError(t, store.Close())
	assert.True(t, errors.Is(store.Save(context.Background(), &Link{}), ErrStore))
	_, err = store.List(context.Background(), "s")
	assert.True(t, errors.Is(err, ErrStore))
}

func TestStoreSink(t *testing.T) {
	store := NewMemoryLinkStore()
	sess := MustNewSession(
		WithSessionID("conn-1"),
		WithSink(NewStoreSink(store, "conn-1", nil)),
	)

	require.NoError(t, sess.Feed(`<SEND>north</SEND><SEND "tell Zugg " PROMPT>Zugg</SEND>`))
	require.NoError(t, sess.Close())

	links, err := store.List(context.Background(), "conn-1")
	require.NoError(t, err)
	require.Len(t, links, 2)

	assert.Equal(t, "send([[north]])", links[0].Action)
	assert.False(t, links[0].Prompt)
	assert.Equal(t, "printCmdLine([[tell Zugg ]])", links[1].Action)
	assert.Equal(t, "tell Zugg ", links[1].Hint)
	assert.True(t, links[1].Prompt)
	assert.Equal(t, "conn-1", links[1].SessionID)
}

func TestStoreSink_FailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	store := NewMemoryLinkStore()
	require.NoError(t, store.Close())

	sink := NewStoreSink(store, "s", zap.New(core))
	sink.SetLink("send([[x]])", "x")

	entries := logs.FilterMessage(LogMsgLinkStoreFailed).All()
	require.Len(t, entries, 1)
	assert.Equal(t, "send([[x]])", entries[0].ContextMap()[LogFieldAction])
}

func TestMultiSink(t *testing.T) {
	a := NewRecordingSink()
	b := NewRecordingSink()
	sink := MultiSink(a, nil, b)

	sink.SetLink("send([[x]])", "x")
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, []LinkRecord{{Action: "send([[x]])", Hint: "x"}}, b.Links())
}

func TestPostgresLinkStore_EmptyConnectionString(t *testing.T) {
	store, err := NewPostgresLinkStore(PostgresConfig{})
	require.Error(t, err)
	assert.Nil(t, store)
	assert.True(t, errors.Is(err, ErrStore))
	assert.Contains(t, err.Error(), ErrMsgStoreEmptyConnStr)
}

func TestDefaultPostgresConfig(t *testing.T) {
	cfg := PostgresConfig{ConnectionString: "postgres://x"}
	cfg.applyDefaults()

	def := DefaultPostgresConfig()
	assert.Equal(t, def.MaxOpenConns, cfg.MaxOpenConns)
	assert.Equal(t, def.QueryTimeout, cfg.QueryTimeout)
	assert.Equal(t, PostgresTablePrefix, cfg.TablePrefix)
	assert.NotNil(t, cfg.Logger)
}
