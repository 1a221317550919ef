package mxp

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Link is one emitted SEND link as kept by a LinkStore.
type Link struct {
	ID        string    `json:"id" yaml:"id"`
	SessionID string    `json:"session_id" yaml:"session_id"`
	Action    string    `json:"action" yaml:"action"`
	Hint      string    `json:"hint" yaml:"hint"`
	Prompt    bool      `json:"prompt" yaml:"prompt"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// LinkStore keeps a history of emitted links, grouped by session.
type LinkStore interface {
	// Save stores a link. Empty ID and zero CreatedAt are filled in.
	Save(ctx context.Context, link *Link) error
	// List returns a session's links in emission order.
	List(ctx context.Context, sessionID string) ([]*Link, error)
	// Close releases resources.
	Close() error
}

// StoreSink is a Sink that records every link into a LinkStore.
// Save failures are logged; a broken store never stops the document.
type StoreSink struct {
	store     LinkStore
	sessionID string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewStoreSink creates a sink that saves links for one session.
func NewStoreSink(store LinkStore, sessionID string, logger *zap.Logger) *StoreSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StoreSink{
		store:     store,
		sessionID: sessionID,
		timeout:   StoreSinkDefaultTimeout,
		logger:    logger,
	}
}

// SetLink saves the link.
func (s *StoreSink) SetLink(action, hint string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	link := &Link{
		SessionID: s.sessionID,
		Action:    action,
		Hint:      hint,
		Prompt:    strings.HasPrefix(action, ActionPrefixPrompt),
	}
	if err := s.store.Save(ctx, link); err != nil {
		s.logger.Warn(LogMsgLinkStoreFailed,
			zap.String(LogFieldAction, action),
			zap.Error(err),
		)
	}
}

// prepareLink fills in ID and timestamp.
func prepareLink(link *Link) {
	if link.ID == "" {
		link.ID = generateLinkID()
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}
}

func generateLinkID() string {
	b := make([]byte, LinkIDByteSize)
	_, _ = rand.Read(b)
	return LinkIDPrefix + base64.RawURLEncoding.EncodeToString(b)
}
