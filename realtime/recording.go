package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arunpravin125/ConnectHub-sub001/domain"
	"github.com/arunpravin125/ConnectHub-sub001/domain/event"
	"github.com/arunpravin125/ConnectHub-sub001/errors"
	"github.com/arunpravin125/ConnectHub-sub001/repositories"
)

// Recording coordinates the at-most-one-per-space recording session and
// emits lifecycle broadcasts to the space room. Durable state lives in
// the space repository; finalization (the media upload) is an external
// collaborator step that reports back through Finalize.
//
// Only the space host may start or stop a recording; any other identity
// is rejected with an authorization error and no state change.
type Recording struct {
	mu     sync.Mutex
	log    *slog.Logger
	rooms  *Rooms
	spaces repositories.ISpaceRepository
	newID  func() string
	now    func() time.Time
}

func NewRecording(log *slog.Logger, rooms *Rooms, spaces repositories.ISpaceRepository) *Recording {
	return &Recording{
		log:    log,
		rooms:  rooms,
		spaces: spaces,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Start creates a durable session in the recording state, marks the
// space's isRecording flag and broadcasts recordingStatus{true}. It
// fails with invalid-state when the space is not live or a recording is
// already active, without mutating anything.
func (r *Recording) Start(ctx context.Context, spaceID, hostUserID string) (domain.RecordingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	space, err := r.spaces.GetSpace(ctx, spaceID)
	if err != nil {
		return domain.RecordingSession{}, err
	}
	if space.HostID != hostUserID {
		return domain.RecordingSession{}, fmt.Errorf(
			"%w: only the host can start a recording of space %s", errors.ErrUnauthorized, spaceID)
	}
	if space.Status != domain.SpaceLive {
		return domain.RecordingSession{}, errors.InvalidStatef(
			"space %s is %s, recording requires a live space", spaceID, space.Status)
	}

	active, err := r.spaces.ActiveSession(ctx, spaceID)
	if err != nil {
		return domain.RecordingSession{}, err
	}
	if active != nil {
		return domain.RecordingSession{}, errors.InvalidStatef(
			"space %s already has an active recording %s", spaceID, active.ID)
	}

	session := domain.RecordingSession{
		ID:        r.newID(),
		SpaceID:   spaceID,
		StartedBy: hostUserID,
		Status:    domain.SessionRecording,
		StartedAt: r.now().UTC(),
	}
	if err := r.spaces.CreateSession(ctx, session); err != nil {
		return domain.RecordingSession{}, err
	}
	if err := r.spaces.SetRecording(ctx, spaceID, session.ID, true); err != nil {
		// The session was created but the space flag was not set. Park
		// the session in failed so it can never count as active and a
		// retry can start cleanly.
		session.Status = domain.SessionFailed
		if rollbackErr := r.spaces.UpdateSession(ctx, session); rollbackErr != nil {
			r.log.Error("recording rollback failed",
				"space_id", spaceID, "session_id", session.ID, "error", rollbackErr)
		}
		return domain.RecordingSession{}, err
	}

	r.log.Info("recording started", "space_id", spaceID, "session_id", session.ID)
	r.rooms.Broadcast(domain.SpaceRoom(spaceID), event.RecordingStatus,
		event.RecordingChanged{SpaceID: spaceID, IsRecording: true, RecordingID: session.ID}, nil)
	return session, nil
}

// Stop transitions the active session to processing, clears the space's
// isRecording flag and broadcasts recordingStatus{false}. It fails with
// invalid-state when no recording is active.
func (r *Recording) Stop(ctx context.Context, spaceID, hostUserID string) (domain.RecordingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	space, err := r.spaces.GetSpace(ctx, spaceID)
	if err != nil {
		return domain.RecordingSession{}, err
	}
	if space.HostID != hostUserID {
		return domain.RecordingSession{}, fmt.Errorf(
			"%w: only the host can stop a recording of space %s", errors.ErrUnauthorized, spaceID)
	}

	active, err := r.spaces.ActiveSession(ctx, spaceID)
	if err != nil {
		return domain.RecordingSession{}, err
	}
	if active == nil {
		return domain.RecordingSession{}, errors.InvalidStatef(
			"space %s has no active recording", spaceID)
	}

	session := *active
	session.Status = domain.SessionProcessing
	endedAt := r.now().UTC()
	session.EndedAt = &endedAt
	if err := r.spaces.UpdateSession(ctx, session); err != nil {
		return domain.RecordingSession{}, err
	}
	if err := r.spaces.SetRecording(ctx, spaceID, "", false); err != nil {
		return domain.RecordingSession{}, err
	}

	r.log.Info("recording stopped", "space_id", spaceID, "session_id", session.ID)
	r.rooms.Broadcast(domain.SpaceRoom(spaceID), event.RecordingStatus,
		event.RecordingChanged{SpaceID: spaceID, IsRecording: false, RecordingID: session.ID}, nil)
	return session, nil
}

// Finalize accepts the terminal transition reported by the media upload
// collaborator: processing -> ready with a playback URL, or
// processing -> failed. The coordinator performs no storage I/O itself.
func (r *Recording) Finalize(ctx context.Context, sessionID string, ok bool, playbackURL string) (domain.RecordingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, err := r.spaces.GetSession(ctx, sessionID)
	if err != nil {
		return domain.RecordingSession{}, err
	}
	if session.Status != domain.SessionProcessing {
		return domain.RecordingSession{}, errors.InvalidStatef(
			"recording session %s is %s, finalize requires processing", sessionID, session.Status)
	}

	if ok {
		session.Status = domain.SessionReady
		session.PlaybackURL = playbackURL
	} else {
		session.Status = domain.SessionFailed
	}
	if err := r.spaces.UpdateSession(ctx, session); err != nil {
		return domain.RecordingSession{}, err
	}

	r.log.Info("recording finalized", "session_id", sessionID, "status", session.Status)
	return session, nil
}
