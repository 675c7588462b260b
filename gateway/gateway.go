// Package gateway is the socket.io transport glue: it authenticates the
// handshake, wraps each socket as a contract.Conn and translates wire
// events into realtime core calls. No realtime state lives here.
package gateway

import (
	"context"
	"log/slog"

	"github.com/zishang520/engine.io/v2/types"
	socketio "github.com/zishang520/socket.io/v2/socket"

	"github.com/arunpravin125/ConnectHub-sub001/auth"
	"github.com/arunpravin125/ConnectHub-sub001/domain/event"
	"github.com/arunpravin125/ConnectHub-sub001/realtime"
)

type Gateway struct {
	log      *slog.Logger
	orch     *realtime.Orchestrator
	verifier auth.Verifier
}

func New(log *slog.Logger, orch *realtime.Orchestrator, verifier auth.Verifier) *Gateway {
	return &Gateway{log: log, orch: orch, verifier: verifier}
}

// Server builds the socket.io server and wires every wire event of the
// realtime protocol.
func (g *Gateway) Server() *socketio.Server {
	opts := socketio.DefaultServerOptions()
	opts.SetPath("/socket.io")
	opts.SetAllowEIO3(true)
	opts.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})
	srv := socketio.NewServer(nil, opts)

	srv.On("connection", func(clients ...any) {
		socket, ok := clients[0].(*socketio.Socket)
		if !ok {
			return
		}
		g.handleConnection(socket)
	})
	return srv
}

func (g *Gateway) handleConnection(socket *socketio.Socket) {
	userID := g.identify(socket)
	conn := newSocketConn(socket, userID)
	g.orch.Connect(conn)
	g.log.Info("connection established",
		"conn_id", conn.ID(), "user_id", userID, "anonymous", userID == "")

	socket.On("chat:join", func(datas ...any) {
		var p chatPayload
		if err := decodePayload(datas, &p); err != nil {
			g.reject(conn, err)
			return
		}
		if err := g.orch.JoinChat(context.Background(), conn, p.ChatID); err != nil {
			g.reject(conn, err)
		}
	})

	socket.On("chat:leave", func(datas ...any) {
		var p chatPayload
		if err := decodePayload(datas, &p); err != nil {
			g.reject(conn, err)
			return
		}
		g.orch.LeaveChat(conn, p.ChatID)
	})

	socket.On("chat:typing_start", func(datas ...any) {
		var p chatPayload
		if err := decodePayload(datas, &p); err != nil {
			g.reject(conn, err)
			return
		}
		if err := g.orch.TypingStart(context.Background(), conn, p.ChatID); err != nil {
			g.reject(conn, err)
		}
	})

	socket.On("chat:typing_stop", func(datas ...any) {
		var p chatPayload
		if err := decodePayload(datas, &p); err != nil {
			g.reject(conn, err)
			return
		}
		g.orch.TypingStop(conn, p.ChatID)
	})

	socket.On("space:join", func(datas ...any) {
		var p spacePayload
		if err := decodePayload(datas, &p); err != nil {
			g.reject(conn, err)
			return
		}
		if err := g.orch.JoinSpace(context.Background(), conn, p.SpaceID); err != nil {
			g.reject(conn, err)
		}
	})

	socket.On("space:leave", func(datas ...any) {
		var p spacePayload
		if err := decodePayload(datas, &p); err != nil {
			g.reject(conn, err)
			return
		}
		g.orch.LeaveSpace(conn, p.SpaceID)
	})

	socket.On("space:recordStart", func(datas ...any) {
		var p spacePayload
		if err := decodePayload(datas, &p); err != nil {
			g.reject(conn, err)
			return
		}
		if _, err := g.orch.RecordingStart(context.Background(), conn, p.SpaceID); err != nil {
			g.reject(conn, err)
		}
	})

	socket.On("space:recordStop", func(datas ...any) {
		var p spacePayload
		if err := decodePayload(datas, &p); err != nil {
			g.reject(conn, err)
			return
		}
		if _, err := g.orch.RecordingStop(context.Background(), conn, p.SpaceID); err != nil {
			g.reject(conn, err)
		}
	})

	type relayFn func(ctx context.Context, conn *socketConn, spaceID, toUserID string, payload any) error
	relay := func(fn relayFn) func(datas ...any) {
		return func(datas ...any) {
			var p signalPayload
			if err := decodePayload(datas, &p); err != nil {
				g.reject(conn, err)
				return
			}
			if err := p.validateTarget(); err != nil {
				g.reject(conn, err)
				return
			}
			if err := fn(context.Background(), conn, p.SpaceID, p.Target(), p.Payload); err != nil {
				g.reject(conn, err)
			}
		}
	}

	socket.On("space:webrtc:offer", relay(func(ctx context.Context, c *socketConn, spaceID, to string, payload any) error {
		return g.orch.RelayOffer(ctx, c, spaceID, to, payload)
	}))
	socket.On("space:webrtc:answer", relay(func(ctx context.Context, c *socketConn, spaceID, to string, payload any) error {
		return g.orch.RelayAnswer(ctx, c, spaceID, to, payload)
	}))
	socket.On("space:webrtc:ice", relay(func(ctx context.Context, c *socketConn, spaceID, to string, payload any) error {
		return g.orch.RelayIce(ctx, c, spaceID, to, payload)
	}))
	socket.On("space:webrtc:ready", relay(func(ctx context.Context, c *socketConn, spaceID, to string, payload any) error {
		return g.orch.RelayReady(ctx, c, spaceID, to, payload)
	}))

	socket.On("disconnect", func(...any) {
		g.log.Info("connection closed", "conn_id", conn.ID(), "user_id", userID)
		g.orch.Disconnect(conn)
	})
}

// identify resolves the verified identity attached at handshake time.
// Connections without a valid token are tracked as anonymous: they can
// receive broadcasts but are excluded from presence and fail every
// membership check.
func (g *Gateway) identify(socket *socketio.Socket) string {
	token := tokenFromHandshake(socket)
	if token == "" {
		return ""
	}
	claims, err := g.verifier.Verify(token)
	if err != nil {
		g.log.Warn("handshake token rejected", "conn_id", socket.Id(), "error", err)
		return ""
	}
	return claims.UserID
}

// tokenFromHandshake reads the JWT from the handshake query, falling
// back to the socket.io auth object for clients that send it there.
func tokenFromHandshake(socket *socketio.Socket) string {
	handshake := socket.Handshake()
	if handshake == nil {
		return ""
	}
	if values, ok := handshake.Query["token"]; ok && len(values) > 0 && values[0] != "" {
		return values[0]
	}
	if authData, ok := handshake.Auth.(map[string]any); ok {
		if token, ok := authData["token"].(string); ok {
			return token
		}
	}
	return ""
}

// reject surfaces a handler failure to the offending sender only. It is
// never broadcast; other members of the room see nothing.
func (g *Gateway) reject(conn *socketConn, err error) {
	g.log.Debug("event rejected", "conn_id", conn.ID(), "user_id", conn.UserID(), "error", err)
	if emitErr := conn.Emit(event.SpaceError, event.WireError{Error: err.Error()}); emitErr != nil {
		g.log.Debug("error delivery dropped", "conn_id", conn.ID(), "error", emitErr)
	}
}
