package realtime

import (
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/arunpravin125/ConnectHub-sub001/domain"
)

func newTestRooms() (*Rooms, *Presence) {
	presence := NewPresence(slog.Default())
	return NewRooms(slog.Default(), presence), presence
}

func TestRooms_Join_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	rooms, _ := newTestRooms()
	room := domain.ChatRoom(uuid.NewString())
	conn := newFakeConn("c1", "alice")

	// When the same connection joins twice
	rooms.Join(room, conn)
	rooms.Join(room, conn)

	// Then it is a member exactly once
	req.Len(rooms.Members(room), 1)
}

func TestRooms_Leave_Discards_Empty_Room(t *testing.T) {
	req := require.New(t)
	rooms, _ := newTestRooms()
	room := domain.ChatRoom(uuid.NewString())
	conn := newFakeConn("c1", "alice")

	rooms.Join(room, conn)
	rooms.Leave(room, conn)

	// The empty room leaves no membership behind
	req.Empty(rooms.Members(room))

	// Leaving a room one is not in is a no-op
	rooms.Leave(room, conn)
	req.Empty(rooms.Members(room))
}

func TestRooms_Membership_Reflects_Join_Leave_Sequence(t *testing.T) {
	req := require.New(t)
	rooms, _ := newTestRooms()
	room := domain.ChatRoom(uuid.NewString())
	alice := newFakeConn("c1", "alice")
	bob := newFakeConn("c2", "bob")
	carol := newFakeConn("c3", "carol")

	rooms.Join(room, alice)
	rooms.Join(room, bob)
	rooms.Join(room, carol)
	rooms.Leave(room, bob)
	rooms.Join(room, bob)
	rooms.Leave(room, alice)

	members := rooms.Members(room)
	req.Len(members, 2)
	ids := []string{members[0].ID(), members[1].ID()}
	req.ElementsMatch([]string{"c2", "c3"}, ids)
}

func TestRooms_Broadcast_Excludes_Origin(t *testing.T) {
	req := require.New(t)
	rooms, _ := newTestRooms()
	room := domain.ChatRoom(uuid.NewString())
	origin := newFakeConn("c1", "alice")
	other := newFakeConn("c2", "bob")

	rooms.Join(room, origin)
	rooms.Join(room, other)

	// When broadcasting with the origin excluded
	rooms.Broadcast(room, "chat:newMessage", "hello", origin)

	// Then only the other member receives it
	req.Empty(origin.emissions())
	req.Len(other.emissions(), 1)
	req.Equal("chat:newMessage", other.emissions()[0].name)
}

func TestRooms_Broadcast_Survives_Failing_Member(t *testing.T) {
	req := require.New(t)
	rooms, _ := newTestRooms()
	room := domain.SpaceRoom(uuid.NewString())
	broken := newFakeConn("c1", "alice")
	broken.fail = true
	healthy := newFakeConn("c2", "bob")

	rooms.Join(room, broken)
	rooms.Join(room, healthy)

	// A member whose transport fails must not block the others
	rooms.Broadcast(room, "space:recordingStatus", "payload", nil)

	req.Len(healthy.emissions(), 1)
}

func TestRooms_LeaveAll_Returns_Left_Rooms(t *testing.T) {
	req := require.New(t)
	rooms, _ := newTestRooms()
	chat := domain.ChatRoom(uuid.NewString())
	space := domain.SpaceRoom(uuid.NewString())
	conn := newFakeConn("c1", "alice")
	other := newFakeConn("c2", "bob")

	rooms.Join(chat, conn)
	rooms.Join(space, conn)
	rooms.Join(space, other)

	left := rooms.LeaveAll(conn)

	req.ElementsMatch([]domain.RoomID{chat, space}, left)
	req.Empty(rooms.Members(chat))
	req.Len(rooms.Members(space), 1)
}

func TestRooms_SendToUser_Reaches_Every_Device(t *testing.T) {
	req := require.New(t)
	rooms, presence := newTestRooms()
	phone := newFakeConn("phone", "alice")
	laptop := newFakeConn("laptop", "alice")
	presence.Register(phone)
	presence.Register(laptop)

	rooms.SendToUser("alice", "notification:new", "payload")

	req.Len(phone.emissions(), 1)
	req.Len(laptop.emissions(), 1)
}

func TestRooms_SendToUser_Offline_Is_Silent(t *testing.T) {
	rooms, _ := newTestRooms()

	// Must not panic or error for an unknown user
	rooms.SendToUser(uuid.NewString(), "notification:new", "payload")
}
