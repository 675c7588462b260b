package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRoomID_Chat_And_Space_Namespaces(t *testing.T) {
	req := require.New(t)
	id := uuid.NewString()

	chat := ChatRoom(id)
	space := SpaceRoom(id)

	// Same underlying identifier, distinct rooms
	req.NotEqual(chat, space)

	chatID, ok := chat.ChatID()
	req.True(ok)
	req.Equal(id, chatID)
	_, ok = chat.SpaceID()
	req.False(ok)

	spaceID, ok := space.SpaceID()
	req.True(ok)
	req.Equal(id, spaceID)
	_, ok = space.ChatID()
	req.False(ok)
}

func TestSpace_Participants(t *testing.T) {
	req := require.New(t)
	space := Space{
		ID:        uuid.NewString(),
		HostID:    "host",
		Speakers:  []string{"speaker-1", "speaker-2"},
		Listeners: []string{"listener-1"},
	}

	req.ElementsMatch([]string{"host", "speaker-1", "speaker-2", "listener-1"}, space.Participants())
	req.True(space.IsParticipant("host"))
	req.True(space.IsParticipant("listener-1"))
	req.False(space.IsParticipant("stranger"))
}
