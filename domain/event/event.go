// Package event defines the outbound realtime event payloads pushed to
// connected clients. Inbound payloads live in the gateway package since
// they carry validation tags tied to the wire protocol.
package event

// Event names shared between the realtime core and the gateway.
const (
	Typing          = "chat:typing"
	RecordingStatus = "space:recordingStatus"
	SpaceError      = "space:error"
	OnlineUsers     = "getOnlineUsers"

	WebRTCOffer  = "space:webrtc:offer"
	WebRTCAnswer = "space:webrtc:answer"
	WebRTCIce    = "space:webrtc:ice"
	WebRTCReady  = "space:webrtc:ready"
)

// TypingChanged is broadcast to a conversation room whenever a member
// starts or stops composing, excluding the originating connection.
type TypingChanged struct {
	ChatID   string `json:"chatId"`
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

// RecordingChanged is broadcast to a space room on recording start/stop.
type RecordingChanged struct {
	SpaceID     string `json:"spaceId"`
	IsRecording bool   `json:"isRecording"`
	RecordingID string `json:"recordingId,omitempty"`
}

// Signal is an opaque WebRTC negotiation payload forwarded between two
// peers. The relay never inspects Payload.
type Signal struct {
	SpaceID    string `json:"spaceId"`
	FromUserID string `json:"fromUserId"`
	Payload    any    `json:"payload"`
}

// WireError is pushed to a single sender when one of its events was
// rejected. It is never broadcast.
type WireError struct {
	Error string `json:"error"`
}
