// Package realtime handles presence, room fan-out, typing state,
// signaling relay and recording coordination. It orchestrates the
// realtime core without owning persistence or transport.
package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arunpravin125/ConnectHub-sub001/contract"
	"github.com/arunpravin125/ConnectHub-sub001/domain"
	"github.com/arunpravin125/ConnectHub-sub001/domain/event"
	"github.com/arunpravin125/ConnectHub-sub001/errors"
	"github.com/arunpravin125/ConnectHub-sub001/repositories"
)

// Orchestrator composes the realtime components and exposes the
// operations the gateway and the CRUD layer call. It owns the cascading
// side effects: the online-user broadcast on every connect/disconnect
// and the room/typing cleanup when a connection goes away.
type Orchestrator struct {
	log           *slog.Logger
	presence      *Presence
	rooms         *Rooms
	typing        *Typing
	cache         *SpaceAuthCache
	signaling     *Signaling
	recording     *Recording
	conversations repositories.IConversationRepository
}

func NewOrchestrator(
	log *slog.Logger,
	spaces repositories.ISpaceRepository,
	conversations repositories.IConversationRepository,
	authCacheSize int,
) (*Orchestrator, error) {
	presence := NewPresence(log)
	rooms := NewRooms(log, presence)
	cache, err := NewSpaceAuthCache(log, spaces, authCacheSize)
	if err != nil {
		return nil, err
	}
	return &Orchestrator{
		log:           log,
		presence:      presence,
		rooms:         rooms,
		typing:        NewTyping(log, rooms),
		cache:         cache,
		signaling:     NewSignaling(log, presence, cache),
		recording:     NewRecording(log, rooms, spaces),
		conversations: conversations,
	}, nil
}

// TypingSweeper builds the single process-wide sweep worker. The caller
// hands it to the supervisor; the orchestrator never starts goroutines
// itself.
func (o *Orchestrator) TypingSweeper(interval, threshold time.Duration) contract.Worker {
	return NewTypingSweeper(o.log, o.typing, interval, threshold)
}

// Connect registers an inbound connection and broadcasts the updated
// online-user snapshot to every connection.
func (o *Orchestrator) Connect(conn contract.Conn) {
	o.presence.Register(conn)
	o.broadcastOnlineUsers()
}

// Disconnect unregisters the connection and cascades: the connection
// leaves every room, and when the user's last connection is gone the
// typing entries for that user are cleared with stop broadcasts. All
// cleanup paths are idempotent, so racing a late typing:start handler
// is safe.
func (o *Orchestrator) Disconnect(conn contract.Conn) {
	userID, wentOffline := o.presence.Unregister(conn)
	o.rooms.LeaveAll(conn)
	if wentOffline {
		o.typing.ClearUser(userID)
	}
	o.broadcastOnlineUsers()
}

// JoinChat authorizes the connection's identity against conversation
// membership and joins the chat room. A membership lookup failure fails
// closed.
func (o *Orchestrator) JoinChat(ctx context.Context, conn contract.Conn, chatID string) error {
	member, err := o.conversations.IsParticipant(ctx, chatID, conn.UserID())
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrUnauthorized, err)
	}
	if !member {
		return fmt.Errorf("%w: %s is not a participant of conversation %s",
			errors.ErrUnauthorized, conn.UserID(), chatID)
	}
	// The membership check may have suspended; the connection can be
	// gone by the time it resumes.
	if !o.presence.IsRegistered(conn) {
		return nil
	}
	o.rooms.Join(domain.ChatRoom(chatID), conn)
	return nil
}

// LeaveChat leaves the chat room and implicitly stops typing there.
func (o *Orchestrator) LeaveChat(conn contract.Conn, chatID string) {
	room := domain.ChatRoom(chatID)
	o.rooms.Leave(room, conn)
	o.typing.Stop(room, conn.UserID())
}

// JoinSpace authorizes the identity against the space membership (via
// the cache, falling back to the source of truth) and joins the space
// room.
func (o *Orchestrator) JoinSpace(ctx context.Context, conn contract.Conn, spaceID string) error {
	authorized, err := o.cache.IsAuthorized(ctx, spaceID, conn.UserID())
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrUnauthorized, err)
	}
	if !authorized {
		return fmt.Errorf("%w: %s is not a participant of space %s",
			errors.ErrUnauthorized, conn.UserID(), spaceID)
	}
	if !o.presence.IsRegistered(conn) {
		return nil
	}
	o.rooms.Join(domain.SpaceRoom(spaceID), conn)
	return nil
}

func (o *Orchestrator) LeaveSpace(conn contract.Conn, spaceID string) {
	o.rooms.Leave(domain.SpaceRoom(spaceID), conn)
}

// InvalidateSpace drops the cached authorization set for the space. The
// CRUD layer calls it after every durable membership mutation.
func (o *Orchestrator) InvalidateSpace(spaceID string) {
	o.cache.Invalidate(spaceID)
}

// TypingStart authorizes against conversation membership, then records
// the typing state and broadcasts isTyping:true excluding the origin.
// An unverified member produces no broadcast at all.
func (o *Orchestrator) TypingStart(ctx context.Context, conn contract.Conn, chatID string) error {
	member, err := o.conversations.IsParticipant(ctx, chatID, conn.UserID())
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrUnauthorized, err)
	}
	if !member {
		return fmt.Errorf("%w: %s is not a participant of conversation %s",
			errors.ErrUnauthorized, conn.UserID(), chatID)
	}
	// Re-validate after the lookup: the user may have disconnected while
	// the membership check was in flight, and its cleanup already ran.
	if !o.presence.IsRegistered(conn) {
		return nil
	}
	o.typing.Start(domain.ChatRoom(chatID), conn.UserID(), conn)
	return nil
}

// TypingStop clears the typing state. Idempotent and auth-free: it only
// removes state that a verified start created, and a duplicate stop
// broadcasts nothing.
func (o *Orchestrator) TypingStop(conn contract.Conn, chatID string) {
	o.typing.Stop(domain.ChatRoom(chatID), conn.UserID())
}

func (o *Orchestrator) RelayOffer(ctx context.Context, conn contract.Conn, spaceID, toUserID string, payload any) error {
	return o.signaling.RelayOffer(ctx, spaceID, conn.UserID(), toUserID, payload)
}

func (o *Orchestrator) RelayAnswer(ctx context.Context, conn contract.Conn, spaceID, toUserID string, payload any) error {
	return o.signaling.RelayAnswer(ctx, spaceID, conn.UserID(), toUserID, payload)
}

func (o *Orchestrator) RelayIce(ctx context.Context, conn contract.Conn, spaceID, toUserID string, payload any) error {
	return o.signaling.RelayIce(ctx, spaceID, conn.UserID(), toUserID, payload)
}

func (o *Orchestrator) RelayReady(ctx context.Context, conn contract.Conn, spaceID, toUserID string, payload any) error {
	return o.signaling.RelayReady(ctx, spaceID, conn.UserID(), toUserID, payload)
}

func (o *Orchestrator) RecordingStart(ctx context.Context, conn contract.Conn, spaceID string) (domain.RecordingSession, error) {
	return o.recording.Start(ctx, spaceID, conn.UserID())
}

func (o *Orchestrator) RecordingStop(ctx context.Context, conn contract.Conn, spaceID string) (domain.RecordingSession, error) {
	return o.recording.Stop(ctx, spaceID, conn.UserID())
}

// FinalizeRecording is invoked by the media upload collaborator once the
// recorded media is stored (or the upload failed).
func (o *Orchestrator) FinalizeRecording(ctx context.Context, sessionID string, ok bool, playbackURL string) (domain.RecordingSession, error) {
	return o.recording.Finalize(ctx, sessionID, ok, playbackURL)
}

// SendToUser is exposed to the CRUD layer for user-addressed events.
// Fire-and-forget; a silent no-op when the user is offline.
func (o *Orchestrator) SendToUser(userID, name string, payload any) {
	o.rooms.SendToUser(userID, name, payload)
}

// Broadcast is exposed to the CRUD layer for room-addressed events. The
// CRUD layer performs its own authorization before calling.
func (o *Orchestrator) Broadcast(roomID domain.RoomID, name string, payload any) {
	o.rooms.Broadcast(roomID, name, payload, nil)
}

// OnlineUsers returns the current sorted presence snapshot.
func (o *Orchestrator) OnlineUsers() []string {
	return o.presence.OnlineUsers()
}

func (o *Orchestrator) broadcastOnlineUsers() {
	snapshot := o.presence.OnlineUsers()
	for _, conn := range o.presence.Connections() {
		if err := conn.Emit(event.OnlineUsers, snapshot); err != nil {
			o.log.Debug("online user broadcast dropped", "conn_id", conn.ID(), "error", err)
		}
	}
}
