// Package realtime is the presence, room-broadcast and signaling core.
// It owns every in-memory table behind component methods; raw maps are
// never exposed and every component guards its own state with a mutex.
package realtime

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/samber/lo"

	"github.com/arunpravin125/ConnectHub-sub001/contract"
)

// Presence is the single source of truth for "is user X reachable right
// now". One identity may own several live connections (multi-device):
// Register is additive and Lookup returns every connection, so delivery
// fans out to all devices. Anonymous connections (no verified identity at
// handshake) are tracked for delivery but excluded from the online list.
type Presence struct {
	mu    sync.RWMutex
	log   *slog.Logger
	conns map[string]contract.Conn
	users map[string]map[string]contract.Conn
}

func NewPresence(log *slog.Logger) *Presence {
	return &Presence{
		log:   log,
		conns: make(map[string]contract.Conn),
		users: make(map[string]map[string]contract.Conn),
	}
}

// Register records the connection. It returns true when this is the
// user's first live connection, i.e. the user just came online.
func (p *Presence) Register(conn contract.Conn) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.conns[conn.ID()] = conn

	userID := conn.UserID()
	if userID == "" {
		p.log.Debug("anonymous connection registered", "conn_id", conn.ID())
		return false
	}

	existing, ok := p.users[userID]
	if !ok {
		existing = make(map[string]contract.Conn)
		p.users[userID] = existing
	}
	existing[conn.ID()] = conn
	p.log.Debug("connection registered", "conn_id", conn.ID(), "user_id", userID)
	return len(existing) == 1
}

// Unregister removes a disconnecting connection and reports whether the
// owning user went fully offline (no remaining connections). The caller
// is responsible for the cascading room-leave and typing cleanup.
func (p *Presence) Unregister(conn contract.Conn) (userID string, wentOffline bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.conns, conn.ID())

	userID = conn.UserID()
	if userID == "" {
		return "", false
	}

	existing, ok := p.users[userID]
	if !ok {
		// Already cleaned up; duplicate disconnects are a safe no-op.
		return userID, false
	}
	delete(existing, conn.ID())
	if len(existing) == 0 {
		delete(p.users, userID)
		return userID, true
	}
	return userID, false
}

// Lookup returns every live connection of the user. An empty result means
// the user is currently unreachable; callers must treat delivery as
// best-effort and drop silently.
func (p *Presence) Lookup(userID string) []contract.Conn {
	p.mu.RLock()
	defer p.mu.RUnlock()

	existing, ok := p.users[userID]
	if !ok {
		return nil
	}
	return lo.Values(existing)
}

// IsRegistered reports whether the connection is still tracked. Handlers
// that resumed after an asynchronous membership check use it to
// re-validate their precondition before mutating state.
func (p *Presence) IsRegistered(conn contract.Conn) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.conns[conn.ID()]
	return ok
}

// OnlineUsers returns a sorted snapshot of every identity with at least
// one live connection. It is a snapshot, not a live view.
func (p *Presence) OnlineUsers() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	users := lo.Keys(p.users)
	sort.Strings(users)
	return users
}

// Connections returns a snapshot of every live connection, anonymous
// ones included. Used for whole-process broadcasts such as the online
// user list.
func (p *Presence) Connections() []contract.Conn {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return lo.Values(p.conns)
}
