package llm

import (
	"context"
	"io"
)

// eventStream adapts a producer function to the Stream interface. The
// producer runs in its own goroutine and owns the channel; Recv returns
// io.EOF once the producer finishes and the channel drains.
type eventStream struct {
	events chan Event
	cancel context.CancelFunc
}

func newEventStream(ctx context.Context, run func(ctx context.Context, events chan<- Event) error) Stream {
	ctx, cancel := context.WithCancel(ctx)
	s := &eventStream{
		events: make(chan Event, 16),
		cancel: cancel,
	}
	go func() {
		defer close(s.events)
		if err := run(ctx, s.events); err != nil {
			select {
			case s.events <- Event{Type: EventError, Err: err}:
			case <-ctx.Done():
			}
		}
	}()
	return s
}

func (s *eventStream) Recv() (Event, error) {
	ev, ok := <-s.events
	if !ok {
		return Event{}, io.EOF
	}
	return ev, nil
}

// Close cancels the producer. Pending buffered events are discarded by
// the caller simply not calling Recv again.
func (s *eventStream) Close() error {
	s.cancel()
	return nil
}
