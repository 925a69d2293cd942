package http

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/vovakirdan/roomchat-server/internal/core"
	"github.com/vovakirdan/roomchat-server/internal/proto"
)

var (
	errUnknownEvent = errors.New("unknown event")

	validate = validator.New(validator.WithRequiredStructEnabled())
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, error) {
	switch inbound.Event {
	case proto.EventUserJoin:
		join, err := decode[proto.JoinData](inbound.Data)
		if err != nil {
			return nil, err
		}
		return &core.Command{Kind: core.CommandJoin, Room: join.RoomName, Name: join.ChatName}, nil
	case proto.EventMessage:
		msg, err := decode[proto.MessageData](inbound.Data)
		if err != nil {
			return nil, err
		}
		return &core.Command{
			Kind: core.CommandSendMessage,
			Room: msg.RoomName,
			Name: msg.ChatName,
			Text: msg.Message,
		}, nil
	case proto.EventRoomJoin:
		return roomCommand(core.CommandAnnounceJoin, inbound.Data)
	case proto.EventTypeStart:
		return roomCommand(core.CommandTypingStart, inbound.Data)
	case proto.EventTypeStop:
		return roomCommand(core.CommandTypingStop, inbound.Data)
	case proto.EventRoomLeft:
		return roomCommand(core.CommandLeaveRoom, inbound.Data)
	case proto.EventRoomUsers:
		return roomCommand(core.CommandListMembers, inbound.Data)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownEvent, inbound.Event)
	}
}

func roomCommand(kind core.CommandKind, raw json.RawMessage) (*core.Command, error) {
	data, err := decode[proto.RoomData](raw)
	if err != nil {
		return nil, err
	}
	return &core.Command{Kind: kind, Room: data.RoomName, Name: data.ChatName}, nil
}

func decode[T any](raw json.RawMessage) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, errors.New("missing data")
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode data: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return v, fmt.Errorf("validate data: %w", err)
	}
	return v, nil
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventJoinResult:
		if event.Error != nil {
			return proto.Outbound{
				Event: proto.EventUserJoin,
				Data:  proto.JoinResult{Success: false, Error: event.Error.Message},
			}
		}
		return proto.Outbound{Event: proto.EventUserJoin, Data: proto.JoinResult{Success: true}}
	case core.EventMessage:
		return proto.Outbound{Event: proto.EventMessage, Data: messageEvent(event.Envelope)}
	case core.EventTyping:
		return proto.Outbound{Event: proto.EventTyping, Data: messageEvent(event.Envelope)}
	case core.EventMembers:
		users := event.Users
		if users == nil {
			users = []string{}
		}
		return proto.Outbound{Event: proto.EventRoomUsers, Data: proto.UsersResult{Users: users}}
	default:
		return proto.Outbound{}
	}
}

func messageEvent(env core.Envelope) proto.MessageEvent {
	return proto.MessageEvent{
		From:     env.From,
		Message:  env.Message,
		Date:     env.Date,
		Color:    string(env.Color),
		ChatName: env.ChatName,
		RoomName: env.RoomName,
	}
}
