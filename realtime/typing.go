package realtime

import (
	"log/slog"
	"sync"
	"time"

	"github.com/arunpravin125/ConnectHub-sub001/contract"
	"github.com/arunpravin125/ConnectHub-sub001/domain"
	"github.com/arunpravin125/ConnectHub-sub001/domain/event"
)

type typingKey struct {
	room domain.RoomID
	user string
}

// Typing tracks who is composing in which room. One entry per
// (room, user), refreshed on every start and removed on explicit stop,
// room leave, disconnect or inactivity expiry. Every removal path emits
// exactly one isTyping:false broadcast, so a delivered start can never
// leave a member stuck on isTyping:true.
type Typing struct {
	mu      sync.Mutex
	log     *slog.Logger
	rooms   *Rooms
	entries map[typingKey]time.Time
	now     func() time.Time
}

func NewTyping(log *slog.Logger, rooms *Rooms) *Typing {
	return &Typing{
		log:     log,
		rooms:   rooms,
		entries: make(map[typingKey]time.Time),
		now:     time.Now,
	}
}

// Start records or refreshes the user's typing entry and broadcasts
// isTyping:true to the room, excluding the originating connection.
// Callers must have verified room membership beforehand. The broadcast
// happens under the mutex so a racing removal (disconnect cleanup,
// explicit stop) always emits its false after this true; members can
// never be left stuck on true.
func (t *Typing) Start(roomID domain.RoomID, userID string, origin contract.Conn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[typingKey{room: roomID, user: userID}] = t.now()

	t.rooms.Broadcast(roomID, event.Typing, typingPayload(roomID, userID, true), origin)
}

// Stop clears the entry and broadcasts isTyping:false. Idempotent: when
// no entry exists (already stopped, expired, or racing with a disconnect
// cleanup) nothing is broadcast.
func (t *Typing) Stop(roomID domain.RoomID, userID string) {
	t.mu.Lock()
	key := typingKey{room: roomID, user: userID}
	_, active := t.entries[key]
	delete(t.entries, key)
	t.mu.Unlock()

	if !active {
		return
	}
	t.rooms.Broadcast(roomID, event.Typing, typingPayload(roomID, userID, false), nil)
}

// ClearUser implicitly stops the user in every room. Called when the
// user's last connection disappears.
func (t *Typing) ClearUser(userID string) {
	t.mu.Lock()
	var stale []typingKey
	for key := range t.entries {
		if key.user == userID {
			stale = append(stale, key)
		}
	}
	for _, key := range stale {
		delete(t.entries, key)
	}
	t.mu.Unlock()

	for _, key := range stale {
		t.rooms.Broadcast(key.room, event.Typing, typingPayload(key.room, userID, false), nil)
	}
}

// Expire implicitly stops every entry whose last activity is older than
// the threshold. Returns the number of expired entries. Called by the
// single process-wide sweep worker.
func (t *Typing) Expire(threshold time.Duration) int {
	deadline := t.now().Add(-threshold)

	t.mu.Lock()
	var stale []typingKey
	for key, lastActivity := range t.entries {
		if lastActivity.Before(deadline) {
			stale = append(stale, key)
		}
	}
	for _, key := range stale {
		delete(t.entries, key)
	}
	t.mu.Unlock()

	for _, key := range stale {
		t.log.Debug("typing entry expired", "room_id", key.room, "user_id", key.user)
		t.rooms.Broadcast(key.room, event.Typing, typingPayload(key.room, key.user, false), nil)
	}
	return len(stale)
}

// Active reports whether the user currently has a typing entry in the
// room.
func (t *Typing) Active(roomID domain.RoomID, userID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.entries[typingKey{room: roomID, user: userID}]
	return ok
}

func typingPayload(roomID domain.RoomID, userID string, isTyping bool) event.TypingChanged {
	chatID, ok := roomID.ChatID()
	if !ok {
		chatID = string(roomID)
	}
	return event.TypingChanged{ChatID: chatID, UserID: userID, IsTyping: isTyping}
}
