package core

import (
	"context"
	"testing"
	"time"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev, ok := <-ch:
			if !ok {
				t.Fatalf("event channel closed while waiting for kind %v", kind)
			}
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func noEvent(t *testing.T, ch <-chan *Event, kind EventKind, wait time.Duration) {
	t.Helper()

	deadline := time.Now().Add(wait)
	for time.Now().Before(deadline) {
		select {
		case ev, ok := <-ch:
			if ok && ev != nil && ev.Kind == kind {
				t.Fatalf("unexpected event kind %v: %+v", kind, ev)
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
}

func startHub(t *testing.T, opts ...Option) *Hub {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	opts = append([]Option{WithClock(fixedClock())}, opts...)
	hub := NewHub(opts...)
	go hub.Run(ctx)
	return hub
}

func fixedClock() Clock {
	return ClockFunc(func() time.Time {
		return time.Date(2024, time.March, 7, 14, 5, 0, 0, time.UTC)
	})
}

// joined registers a client and waits until it holds name in room.
func joined(t *testing.T, hub *Hub, id, room, name string) *Client {
	t.Helper()

	c := NewClient(id, 0)
	hub.RegisterClient(c)
	c.Commands <- &Command{Kind: CommandJoin, Room: room, Name: name}
	ev := mustEvent(t, c.Events, EventJoinResult)
	if ev.Error != nil {
		t.Fatalf("join %s/%s failed: %v", room, name, ev.Error)
	}
	return c
}

// cycle returns a picker that walks the palette in order.
func cycle() Picker {
	next := 0
	return func(n int) int {
		i := next % n
		next++
		return i
	}
}
