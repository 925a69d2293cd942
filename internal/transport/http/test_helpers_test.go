package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/roomchat-server/internal/config"
	"github.com/vovakirdan/roomchat-server/internal/core"
	"github.com/vovakirdan/roomchat-server/internal/proto"
)

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func startTestServer(t *testing.T, mutate ...func(*config.Config)) *httptest.Server {
	t.Helper()

	disabledLogger := zerolog.Nop()

	hub := core.NewHub(core.WithLogger(&disabledLogger))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	cfg := config.Default()
	cfg.ReadHeaderTimeout = time.Second
	cfg.EventsPerSecond = 0
	for _, m := range mutate {
		m(&cfg)
	}

	server := NewServer(hub, &cfg, &disabledLogger)
	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func dial(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, event string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s: %v", event, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Event: event, Data: payload}); err != nil {
		t.Fatalf("send %s: %v", event, err)
	}
}

// nextFrame returns the very next frame on conn.
func nextFrame(t *testing.T, ctx context.Context, conn *websocket.Conn) frame {
	t.Helper()

	var f frame
	if err := wsjson.Read(ctx, conn, &f); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return f
}

// readEvent skips frames until one with the given event name arrives.
func readEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string) frame {
	t.Helper()

	for {
		f := nextFrame(t, ctx, conn)
		if f.Event == event {
			return f
		}
	}
}

func decodeData[T any](t *testing.T, f frame) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(f.Data, &v); err != nil {
		t.Fatalf("decode %s data: %v", f.Event, err)
	}
	return v
}

// join claims name in room and fails the test unless it succeeds.
func join(t *testing.T, ctx context.Context, conn *websocket.Conn, room, name string) {
	t.Helper()

	send(t, ctx, conn, proto.EventUserJoin, proto.JoinData{RoomName: room, ChatName: name})
	res := decodeData[proto.JoinResult](t, readEvent(t, ctx, conn, proto.EventUserJoin))
	if !res.Success {
		t.Fatalf("join %s as %s failed: %s", room, name, res.Error)
	}
}
