package realtime

import (
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"github.com/arunpravin125/ConnectHub-sub001/contract"
	"github.com/arunpravin125/ConnectHub-sub001/domain"
)

// Rooms manages membership of connections in named broadcast groups and
// fans events out to members. Broadcast and SendToUser are deliberately
// fire-and-forget: they return nothing, a member whose transport failed
// is silently dropped, and no retry or acknowledgment is attempted.
//
// Rooms never authorizes a join. Callers (typing tracker, signaling
// relay, gateway) must check membership against the authorization cache
// or the persistence collaborator before calling Join.
type Rooms struct {
	mu       sync.RWMutex
	log      *slog.Logger
	presence *Presence
	members  map[domain.RoomID]map[string]contract.Conn
}

func NewRooms(log *slog.Logger, presence *Presence) *Rooms {
	return &Rooms{
		log:      log,
		presence: presence,
		members:  make(map[domain.RoomID]map[string]contract.Conn),
	}
}

// Join adds the connection to the room, creating the room lazily.
// Idempotent: joining twice is a no-op.
func (r *Rooms) Join(roomID domain.RoomID, conn contract.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.members[roomID]
	if !ok {
		room = make(map[string]contract.Conn)
		r.members[roomID] = room
	}
	room[conn.ID()] = conn
}

// Leave removes the connection from the room. Idempotent. The room entry
// is discarded once its membership is empty.
func (r *Rooms) Leave(roomID domain.RoomID, conn contract.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.leaveLocked(roomID, conn)
}

func (r *Rooms) leaveLocked(roomID domain.RoomID, conn contract.Conn) {
	room, ok := r.members[roomID]
	if !ok {
		return
	}
	delete(room, conn.ID())
	if len(room) == 0 {
		delete(r.members, roomID)
	}
}

// LeaveAll removes the connection from every room it is a member of and
// returns those rooms, so the caller can issue per-room cleanup such as
// typing stop broadcasts. Used on disconnect.
func (r *Rooms) LeaveAll(conn contract.Conn) []domain.RoomID {
	r.mu.Lock()
	defer r.mu.Unlock()

	var left []domain.RoomID
	for roomID, room := range r.members {
		if _, ok := room[conn.ID()]; ok {
			left = append(left, roomID)
		}
	}
	for _, roomID := range left {
		r.leaveLocked(roomID, conn)
	}
	return left
}

// Members returns a snapshot of the room's current connections.
func (r *Rooms) Members(roomID domain.RoomID) []contract.Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.members[roomID]
	if !ok {
		return nil
	}
	return lo.Values(room)
}

// Broadcast delivers the payload to every current member except the
// optionally excluded connection. Emission happens outside the lock so a
// slow transport cannot stall membership changes.
func (r *Rooms) Broadcast(roomID domain.RoomID, event string, payload any, exclude contract.Conn) {
	for _, conn := range r.Members(roomID) {
		if exclude != nil && conn.ID() == exclude.ID() {
			continue
		}
		if err := conn.Emit(event, payload); err != nil {
			r.log.Debug("broadcast delivery dropped",
				"room_id", roomID, "conn_id", conn.ID(), "event", event, "error", err)
		}
	}
}

// SendToUser delivers the payload to every live connection of the user.
// A silent no-op when the user is offline.
func (r *Rooms) SendToUser(userID string, event string, payload any) {
	for _, conn := range r.presence.Lookup(userID) {
		if err := conn.Emit(event, payload); err != nil {
			r.log.Debug("direct delivery dropped",
				"user_id", userID, "conn_id", conn.ID(), "event", event, "error", err)
		}
	}
}
