package session

import (
	"context"
	"sync"
)

// WarnFunc is a function that logs warnings.
type WarnFunc func(format string, args ...any)

// LoggingStore wraps a Store and logs persistence errors instead of
// failing the caller. The chat loop treats saves as best-effort; a broken
// database should not take down a live conversation.
type LoggingStore struct {
	Store
	warnFunc WarnFunc
	mu       sync.Mutex
	warned   map[string]bool // Rate-limit warnings by operation type
}

// NewLoggingStore creates a new LoggingStore wrapper.
func NewLoggingStore(store Store, warnFunc WarnFunc) *LoggingStore {
	return &LoggingStore{
		Store:    store,
		warnFunc: warnFunc,
		warned:   make(map[string]bool),
	}
}

// logOnce logs a warning only once per operation type to avoid spamming.
func (s *LoggingStore) logOnce(op string, err error) {
	if err == nil || s.warnFunc == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.warned[op] {
		return
	}
	s.warned[op] = true
	s.warnFunc("session %s failed (further failures suppressed): %v", op, err)
}

func (s *LoggingStore) Create(ctx context.Context, sess *Session) error {
	err := s.Store.Create(ctx, sess)
	s.logOnce("create", err)
	return nil
}

func (s *LoggingStore) Update(ctx context.Context, sess *Session) error {
	err := s.Store.Update(ctx, sess)
	s.logOnce("update", err)
	return nil
}

func (s *LoggingStore) AddMessage(ctx context.Context, sessionID string, msg *Message) error {
	err := s.Store.AddMessage(ctx, sessionID, msg)
	s.logOnce("add_message", err)
	return nil
}

func (s *LoggingStore) AddTokens(ctx context.Context, id string, inputTokens, outputTokens int) error {
	err := s.Store.AddTokens(ctx, id, inputTokens, outputTokens)
	s.logOnce("add_tokens", err)
	return nil
}

func (s *LoggingStore) UpdateStatus(ctx context.Context, id string, status SessionStatus) error {
	err := s.Store.UpdateStatus(ctx, id, status)
	s.logOnce("update_status", err)
	return nil
}
