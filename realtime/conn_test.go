package realtime

import (
	"fmt"
	"sync"
)

// fakeConn records every emission so tests can assert on delivery
// without a real transport. Safe for concurrent use because broadcasts
// may race with the sweep worker in some tests.
type fakeConn struct {
	id     string
	userID string
	fail   bool

	mu     sync.Mutex
	events []emitted
}

type emitted struct {
	name    string
	payload any
}

func newFakeConn(id, userID string) *fakeConn {
	return &fakeConn{id: id, userID: userID}
}

func (c *fakeConn) ID() string     { return c.id }
func (c *fakeConn) UserID() string { return c.userID }

func (c *fakeConn) Emit(name string, payload any) error {
	if c.fail {
		return fmt.Errorf("transport closed")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, emitted{name: name, payload: payload})
	return nil
}

func (c *fakeConn) emissions() []emitted {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := make([]emitted, len(c.events))
	copy(snapshot, c.events)
	return snapshot
}

func (c *fakeConn) emissionsOf(name string) []emitted {
	var matching []emitted
	for _, e := range c.emissions() {
		if e.name == name {
			matching = append(matching, e)
		}
	}
	return matching
}
