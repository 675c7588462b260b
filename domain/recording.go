package domain

import "time"

// SessionStatus is the recording sub-state machine, only meaningful while
// the owning space is live: recording -> processing -> (ready | failed).
type SessionStatus string

const (
	SessionRecording  SessionStatus = "recording"
	SessionProcessing SessionStatus = "processing"
	SessionReady      SessionStatus = "ready"
	SessionFailed     SessionStatus = "failed"
)

// RecordingSession is a durable recording of a space. A space has at most
// one session in the recording state; space.IsRecording is true iff such
// a session exists.
type RecordingSession struct {
	ID          string        `json:"id"`
	SpaceID     string        `json:"space_id"`
	StartedBy   string        `json:"started_by"`
	Status      SessionStatus `json:"status"`
	PlaybackURL string        `json:"playback_url,omitempty"`
	StartedAt   time.Time     `json:"started_at"`
	EndedAt     *time.Time    `json:"ended_at,omitempty"`
}
