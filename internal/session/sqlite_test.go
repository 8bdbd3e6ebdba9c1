package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/termchat/termchat/internal/llm"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(Config{Path: filepath.Join(t.TempDir(), "sessions.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func createTestSession(t *testing.T, store *SQLiteStore) *Session {
	t.Helper()
	sess := &Session{Provider: "replay", Model: "sample", Summary: "hello there"}
	if err := store.Create(context.Background(), sess); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return sess
}

func TestSessionCreateAndGet(t *testing.T) {
	store := newTestStore(t)
	sess := createTestSession(t, store)

	if sess.ID == "" {
		t.Fatal("Create should assign an ID")
	}
	got, err := store.Get(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || got.Summary != "hello there" || got.Status != StatusActive {
		t.Errorf("Get = %+v", got)
	}
}

func TestSessionGetMissing(t *testing.T) {
	store := newTestStore(t)
	got, err := store.Get(context.Background(), "nope")
	if err != nil || got != nil {
		t.Errorf("Get(missing) = %v, %v; want nil, nil", got, err)
	}
}

func TestMessageRoundTrip(t *testing.T) {
	store := newTestStore(t)
	sess := createTestSession(t, store)
	ctx := context.Background()

	user := NewMessage(sess.ID, llm.UserText("what is go"), -1)
	if err := store.AddMessage(ctx, sess.ID, user); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	asst := NewMessage(sess.ID, llm.AssistantText("a programming language"), -1)
	asst.StreamError = "stream interrupted"
	if err := store.AddMessage(ctx, sess.ID, asst); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}

	msgs, err := store.GetMessages(ctx, sess.ID, 0, 0)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want 2", len(msgs))
	}
	if msgs[0].Sequence != 0 || msgs[1].Sequence != 1 {
		t.Errorf("sequences = %d, %d", msgs[0].Sequence, msgs[1].Sequence)
	}
	if msgs[1].Role != llm.RoleAssistant || msgs[1].Content != "a programming language" {
		t.Errorf("assistant message = %+v", msgs[1])
	}
	if msgs[1].StreamError != "stream interrupted" {
		t.Errorf("stream error = %q", msgs[1].StreamError)
	}
}

func TestSearch(t *testing.T) {
	store := newTestStore(t)
	sess := createTestSession(t, store)
	ctx := context.Background()

	msg := NewMessage(sess.ID, llm.AssistantText("goroutines are lightweight threads"), -1)
	if err := store.AddMessage(ctx, sess.ID, msg); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}

	results, err := store.Search(ctx, "goroutines", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].SessionID != sess.ID {
		t.Fatalf("results = %+v", results)
	}

	results, err = store.Search(ctx, "unrelated", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %+v", results)
	}
}

func TestListAndDelete(t *testing.T) {
	store := newTestStore(t)
	first := createTestSession(t, store)
	second := createTestSession(t, store)
	ctx := context.Background()

	sums, err := store.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sums) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sums))
	}

	if err := store.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	sums, err = store.List(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sums) != 1 || sums[0].ID != second.ID {
		t.Errorf("sessions after delete = %+v", sums)
	}

	if err := store.Delete(ctx, first.ID); err == nil {
		t.Error("deleting a missing session should fail")
	}
}

func TestAddTokensAndStatus(t *testing.T) {
	store := newTestStore(t)
	sess := createTestSession(t, store)
	ctx := context.Background()

	if err := store.AddTokens(ctx, sess.ID, 100, 20); err != nil {
		t.Fatalf("AddTokens: %v", err)
	}
	if err := store.AddTokens(ctx, sess.ID, 50, 5); err != nil {
		t.Fatalf("AddTokens: %v", err)
	}
	if err := store.UpdateStatus(ctx, sess.ID, StatusComplete); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.InputTokens != 150 || got.OutputTokens != 25 {
		t.Errorf("tokens = %d/%d, want 150/25", got.InputTokens, got.OutputTokens)
	}
	if got.Status != StatusComplete {
		t.Errorf("status = %q", got.Status)
	}
}

func TestLoggingStoreSwallowsErrors(t *testing.T) {
	var warned int
	inner := &failingStore{}
	store := NewLoggingStore(inner, func(format string, args ...any) { warned++ })

	for i := 0; i < 3; i++ {
		if err := store.AddMessage(context.Background(), "s", &Message{}); err != nil {
			t.Fatalf("AddMessage should not surface errors, got %v", err)
		}
	}
	if warned != 1 {
		t.Errorf("warned %d times, want 1", warned)
	}
}

// failingStore errors on every write.
type failingStore struct {
	NoopStore
}

func (f *failingStore) AddMessage(ctx context.Context, sessionID string, msg *Message) error {
	return errors.New("disk full")
}
