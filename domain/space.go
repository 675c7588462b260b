package domain

// SpaceStatus is the lifecycle of a live audio space.
// The space itself moves scheduled -> live -> ended; ended is terminal.
type SpaceStatus string

const (
	SpaceScheduled SpaceStatus = "scheduled"
	SpaceLive      SpaceStatus = "live"
	SpaceEnded     SpaceStatus = "ended"
)

// Space is the persisted view of a live audio space that the realtime
// core consumes. The CRUD layer owns creation and the scheduled/live/ended
// transitions; the recording coordinator owns the recording flags.
type Space struct {
	ID                string      `json:"id"`
	HostID            string      `json:"host_id"`
	Speakers          []string    `json:"speakers"`
	Listeners         []string    `json:"listeners"`
	Status            SpaceStatus `json:"status"`
	IsRecording       bool        `json:"is_recording"`
	ActiveRecordingID string      `json:"active_recording_id,omitempty"`
}

// Participants returns every identity authorized to interact within the
// space: host, speakers and listeners.
func (s Space) Participants() []string {
	members := make([]string, 0, 1+len(s.Speakers)+len(s.Listeners))
	members = append(members, s.HostID)
	members = append(members, s.Speakers...)
	members = append(members, s.Listeners...)
	return members
}

// IsParticipant reports whether the identity is authorized in the space.
func (s Space) IsParticipant(userID string) bool {
	if userID == s.HostID {
		return true
	}
	for _, id := range s.Speakers {
		if id == userID {
			return true
		}
	}
	for _, id := range s.Listeners {
		if id == userID {
			return true
		}
	}
	return false
}
