package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/roomchat-server/internal/proto"
)

type options struct {
	addr string
	user string
	room string
}

type frame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func main() {
	var opts options

	cmd := &cobra.Command{
		Use:          "ws_chat",
		Short:        "Terminal client for roomchat-server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "ws://localhost:3001/ws", "WebSocket address")
	cmd.Flags().StringVar(&opts.user, "user", "cli-user", "display name")
	cmd.Flags().StringVar(&opts.room, "room", "general", "room to join")

	if err := cmd.Execute(); err != nil {
		log.Printf("ws_chat: %v", err)
		os.Exit(1)
	}
}

func run(parent context.Context, opts options) error {
	baseCtx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, opts.addr, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	c := &chat{conn: conn, opts: opts}
	if err := c.send(ctx, proto.EventUserJoin, proto.JoinData{RoomName: opts.room, ChatName: opts.user}); err != nil {
		return err
	}

	fmt.Printf("Connecting to %s as %s in room %s\n", opts.addr, opts.user, opts.room)
	fmt.Println("Type messages and press Enter to send. /users lists members, /leave exits.")

	go func() {
		defer cancel()
		c.readLoop(ctx)
	}()

	c.writeLoop(ctx)
	return nil
}

type chat struct {
	conn *websocket.Conn
	opts options
}

func (c *chat) send(ctx context.Context, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", event, err)
	}
	if err := wsjson.Write(ctx, c.conn, proto.Inbound{Event: event, Data: payload}); err != nil {
		return fmt.Errorf("send %s: %w", event, err)
	}
	return nil
}

func (c *chat) readLoop(ctx context.Context) {
	for {
		var f frame
		if err := wsjson.Read(ctx, c.conn, &f); err != nil {
			// Treat expected shutdowns quietly.
			if errors.Is(err, context.Canceled) {
				return
			}
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return
			}
			log.Printf("read error: %v", err)
			return
		}

		switch f.Event {
		case proto.EventUserJoin:
			var res proto.JoinResult
			if err := json.Unmarshal(f.Data, &res); err != nil {
				log.Printf("unmarshal join result: %v", err)
				continue
			}
			if !res.Success {
				fmt.Printf("cannot join %s: %s\n", c.opts.room, res.Error)
				return
			}
			if err := c.send(ctx, proto.EventRoomJoin, proto.RoomData{RoomName: c.opts.room, ChatName: c.opts.user}); err != nil {
				log.Print(err)
				return
			}
		case proto.EventMessage:
			var msg proto.MessageEvent
			if err := json.Unmarshal(f.Data, &msg); err != nil {
				log.Printf("unmarshal message: %v", err)
				continue
			}
			if msg.From != msg.ChatName {
				fmt.Printf("[%s] * %s\n", msg.Date, msg.Message)
				continue
			}
			fmt.Printf("[%s] %s: %s\n", msg.Date, msg.From, msg.Message)
		case proto.EventTyping:
			var msg proto.MessageEvent
			if err := json.Unmarshal(f.Data, &msg); err == nil && msg.Message != "" {
				fmt.Printf("(%s)\n", msg.Message)
			}
		case proto.EventRoomUsers:
			var res proto.UsersResult
			if err := json.Unmarshal(f.Data, &res); err != nil {
				log.Printf("unmarshal users: %v", err)
				continue
			}
			fmt.Printf("in %s: %s\n", c.opts.room, strings.Join(res.Users, ", "))
		default:
			fmt.Printf("event=%s data=%s\n", f.Event, f.Data)
		}
	}
}

func (c *chat) writeLoop(ctx context.Context) {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	room := proto.RoomData{RoomName: c.opts.room, ChatName: c.opts.user}
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			text := strings.TrimSpace(line)
			if text == "" {
				continue
			}

			var err error
			switch text {
			case "/users":
				err = c.send(ctx, proto.EventRoomUsers, room)
			case "/leave":
				if err := c.send(ctx, proto.EventRoomLeft, room); err != nil {
					log.Print(err)
				}
				return
			default:
				err = c.send(ctx, proto.EventMessage, proto.MessageData{
					RoomName: c.opts.room,
					ChatName: c.opts.user,
					Message:  text,
				})
			}
			if err != nil {
				log.Print(err)
				return
			}
		}
	}
}
