// Package domain contains core concepts of the realtime system.
// No runtime, network, or UI logic should be added here.
package domain

import "strings"

// RoomID identifies a named broadcast group of live connections.
// Two families exist: one room per conversation and one per live space.
type RoomID string

const (
	chatRoomPrefix  = "chat:"
	spaceRoomPrefix = "space:"
)

// ChatRoom builds the room identifier for a conversation.
func ChatRoom(chatID string) RoomID {
	return RoomID(chatRoomPrefix + chatID)
}

// SpaceRoom builds the room identifier for a live audio space.
func SpaceRoom(spaceID string) RoomID {
	return RoomID(spaceRoomPrefix + spaceID)
}

// ChatID returns the conversation behind a chat room, or false for
// space rooms.
func (r RoomID) ChatID() (string, bool) {
	if strings.HasPrefix(string(r), chatRoomPrefix) {
		return strings.TrimPrefix(string(r), chatRoomPrefix), true
	}
	return "", false
}

// SpaceID returns the space behind a space room, or false for chat rooms.
func (r RoomID) SpaceID() (string, bool) {
	if strings.HasPrefix(string(r), spaceRoomPrefix) {
		return strings.TrimPrefix(string(r), spaceRoomPrefix), true
	}
	return "", false
}
