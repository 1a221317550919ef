package mxp

import (
	"context"
	"sync"
)

// MemoryLinkStore is an in-memory LinkStore for tests and short-lived tools.
// Unlike sessions, a store may be shared across connections, so it locks.
type MemoryLinkStore struct {
	mu        sync.RWMutex
	bySession map[string][]*Link
	closed    bool
}

// NewMemoryLinkStore creates an empty store.
func NewMemoryLinkStore() *MemoryLinkStore {
	return &MemoryLinkStore{
		bySession: make(map[string][]*Link),
	}
}

// Save stores a copy of the link.
func (s *MemoryLinkStore) Save(ctx context.Context, link *Link) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if link == nil {
		return NewStoreError(ErrMsgStoreNilLink, nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewStoreError(ErrMsgStoreClosed, nil)
	}

	prepareLink(link)
	cp := *link
	s.bySession[link.SessionID] = append(s.bySession[link.SessionID], &cp)
	return nil
}

// List returns copies of a session's links in save order.
func (s *MemoryLinkStore) List(ctx context.Context, sessionID string) ([]*Link, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, NewStoreError(ErrMsgStoreClosed, nil)
	}

	links := s.bySession[sessionID]
	out := make([]*Link, len(links))
	for i, l := range links {
		cp := *l
		out[i] = &cp
	}
	return out, nil
}

// Close marks the store closed.
func (s *MemoryLinkStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.bySession = nil
	return nil
}
