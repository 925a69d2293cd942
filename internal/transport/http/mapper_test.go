package http

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/vovakirdan/roomchat-server/internal/core"
	"github.com/vovakirdan/roomchat-server/internal/proto"
)

func TestInboundToCommand(t *testing.T) {
	tests := []struct {
		name    string
		event   string
		data    string
		want    core.Command
		wantErr bool
	}{
		{name: "join", event: proto.EventUserJoin, data: `{"roomName":"main","chatName":"alice"}`,
			want: core.Command{Kind: core.CommandJoin, Room: "main", Name: "alice"}},
		{name: "join keeps whitespace", event: proto.EventUserJoin, data: `{"roomName":"main","chatName":" alice "}`,
			want: core.Command{Kind: core.CommandJoin, Room: "main", Name: " alice "}},
		{name: "join without name", event: proto.EventUserJoin, data: `{"roomName":"main"}`, wantErr: true},
		{name: "announce", event: proto.EventRoomJoin, data: `{"roomName":"main","chatName":"alice"}`,
			want: core.Command{Kind: core.CommandAnnounceJoin, Room: "main", Name: "alice"}},
		{name: "message", event: proto.EventMessage, data: `{"roomName":"main","chatName":"alice","message":"hi"}`,
			want: core.Command{Kind: core.CommandSendMessage, Room: "main", Name: "alice", Text: "hi"}},
		{name: "empty message", event: proto.EventMessage, data: `{"roomName":"main","message":""}`,
			want: core.Command{Kind: core.CommandSendMessage, Room: "main"}},
		{name: "typing start", event: proto.EventTypeStart, data: `{"roomName":"main"}`,
			want: core.Command{Kind: core.CommandTypingStart, Room: "main"}},
		{name: "typing stop", event: proto.EventTypeStop, data: `{"roomName":"main"}`,
			want: core.Command{Kind: core.CommandTypingStop, Room: "main"}},
		{name: "leave", event: proto.EventRoomLeft, data: `{"roomName":"main","chatName":"bob"}`,
			want: core.Command{Kind: core.CommandLeaveRoom, Room: "main", Name: "bob"}},
		{name: "users", event: proto.EventRoomUsers, data: `{"roomName":"main"}`,
			want: core.Command{Kind: core.CommandListMembers, Room: "main"}},
		{name: "users without room", event: proto.EventRoomUsers, data: `{}`, wantErr: true},
		{name: "missing data", event: proto.EventRoomUsers, wantErr: true},
		{name: "bad json", event: proto.EventMessage, data: `{"roomName":`, wantErr: true},
		{name: "unknown", event: "dance", data: `{}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := proto.Inbound{Event: tt.event}
			if tt.data != "" {
				in.Data = json.RawMessage(tt.data)
			}

			cmd, err := inboundToCommand(in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", cmd)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if *cmd != tt.want {
				t.Fatalf("got %+v, want %+v", *cmd, tt.want)
			}
		})
	}
}

func TestInboundUnknownEventError(t *testing.T) {
	_, err := inboundToCommand(proto.Inbound{Event: "dance"})
	if !errors.Is(err, errUnknownEvent) {
		t.Fatalf("expected errUnknownEvent, got %v", err)
	}
}

func TestOutboundFromEvent(t *testing.T) {
	ok := outboundFromEvent(&core.Event{Kind: core.EventJoinResult, Room: "main"})
	if ok.Event != proto.EventUserJoin || ok.Data != (proto.JoinResult{Success: true}) {
		t.Fatalf("unexpected join ack %+v", ok)
	}

	taken := outboundFromEvent(&core.Event{Kind: core.EventJoinResult, Error: core.ErrNameTaken})
	if taken.Data != (proto.JoinResult{Success: false, Error: "This name has been taken"}) {
		t.Fatalf("unexpected join failure %+v", taken)
	}

	env := core.Envelope{From: "admin", Message: "", Date: "Jan 01, 00:00 am", Color: "#fff", ChatName: "bob", RoomName: "main"}
	typing := outboundFromEvent(&core.Event{Kind: core.EventTyping, Envelope: env})
	if typing.Event != proto.EventTyping {
		t.Fatalf("unexpected typing event name %q", typing.Event)
	}
	raw, err := json.Marshal(typing)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"event":"typing","data":{"from":"admin","message":"","date":"Jan 01, 00:00 am","color":"#fff","chatName":"bob","roomName":"main"}}`
	if string(raw) != want {
		t.Fatalf("unexpected wire form\n got %s\nwant %s", raw, want)
	}

	users := outboundFromEvent(&core.Event{Kind: core.EventMembers})
	raw, _ = json.Marshal(users)
	if string(raw) != `{"event":"room:users","data":{"users":[]}}` {
		t.Fatalf("unexpected users wire form %s", raw)
	}
}

func TestRateLimiter(t *testing.T) {
	unlimited := newRateLimiter(0, 0)
	for range 100 {
		if !unlimited.allow() {
			t.Fatal("zero rate should not throttle")
		}
	}

	limited := newRateLimiter(1, 2)
	if !limited.allow() || !limited.allow() {
		t.Fatal("burst should be allowed")
	}
	if limited.allow() {
		t.Fatal("expected third event in the same instant to be throttled")
	}
}

func TestThrottledEvents(t *testing.T) {
	for _, event := range []string{proto.EventMessage, proto.EventTypeStart, proto.EventTypeStop} {
		if !throttled(event) {
			t.Fatalf("%s should count against the limiter", event)
		}
	}
	for _, event := range []string{proto.EventUserJoin, proto.EventRoomJoin, proto.EventRoomLeft, proto.EventRoomUsers} {
		if throttled(event) {
			t.Fatalf("%s should bypass the limiter", event)
		}
	}
}
