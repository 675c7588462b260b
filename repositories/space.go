//go:generate go run go.uber.org/mock/mockgen -source=space.go -destination=../mocks/mock_space_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/arunpravin125/ConnectHub-sub001/domain"
	"github.com/arunpravin125/ConnectHub-sub001/errors"
)

// ISpaceRepository is the persistence collaborator for live audio
// spaces and their recording sessions. The realtime core treats it as
// the source of truth; the authorization cache is only an optimization
// layered on top of GetSpace.
type ISpaceRepository interface {
	GetSpace(ctx context.Context, spaceID string) (domain.Space, error)
	SaveSpace(ctx context.Context, space domain.Space) error
	// SetRecording flips the space's isRecording flag and active session
	// pointer in a single durable mutation.
	SetRecording(ctx context.Context, spaceID, recordingID string, recording bool) error
	CreateSession(ctx context.Context, session domain.RecordingSession) error
	UpdateSession(ctx context.Context, session domain.RecordingSession) error
	GetSession(ctx context.Context, sessionID string) (domain.RecordingSession, error)
	// ActiveSession returns the session currently in the recording state
	// for the space, or nil when none is active.
	ActiveSession(ctx context.Context, spaceID string) (*domain.RecordingSession, error)
}

type SpaceRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewSpaceRepository(db *badger.DB, log *slog.Logger) SpaceRepository {
	return SpaceRepository{db: db, log: log}
}

func spaceKey(spaceID string) []byte {
	return []byte("space:" + spaceID)
}

func sessionKey(sessionID string) []byte {
	return []byte("recsession:" + sessionID)
}

func (r SpaceRepository) GetSpace(_ context.Context, spaceID string) (domain.Space, error) {
	var space domain.Space
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(spaceKey(spaceID))
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			return json.Unmarshal(value, &space)
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.Space{}, fmt.Errorf("%w: space %s", errors.ErrNotFound, spaceID)
	}
	if err != nil {
		return domain.Space{}, fmt.Errorf("load space %s: %w", spaceID, err)
	}
	return space, nil
}

func (r SpaceRepository) SaveSpace(_ context.Context, space domain.Space) error {
	data, err := json.Marshal(space)
	if err != nil {
		return fmt.Errorf("marshal space %s: %w", space.ID, err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(spaceKey(space.ID), data)
	})
}

// SetRecording is a read-modify-write inside one transaction so the flag
// and the active session pointer can never diverge.
func (r SpaceRepository) SetRecording(_ context.Context, spaceID, recordingID string, recording bool) error {
	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(spaceKey(spaceID))
		if err != nil {
			return err
		}
		var space domain.Space
		if err := item.Value(func(value []byte) error {
			return json.Unmarshal(value, &space)
		}); err != nil {
			return err
		}

		space.IsRecording = recording
		space.ActiveRecordingID = ""
		if recording {
			space.ActiveRecordingID = recordingID
		}

		data, err := json.Marshal(space)
		if err != nil {
			return err
		}
		return txn.Set(spaceKey(spaceID), data)
	})
	if err == badger.ErrKeyNotFound {
		return fmt.Errorf("%w: space %s", errors.ErrNotFound, spaceID)
	}
	return err
}

func (r SpaceRepository) CreateSession(_ context.Context, session domain.RecordingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(sessionKey(session.ID), data)
	})
}

func (r SpaceRepository) UpdateSession(ctx context.Context, session domain.RecordingSession) error {
	return r.CreateSession(ctx, session)
}

func (r SpaceRepository) GetSession(_ context.Context, sessionID string) (domain.RecordingSession, error) {
	var session domain.RecordingSession
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(sessionID))
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			return json.Unmarshal(value, &session)
		})
	})
	if err == badger.ErrKeyNotFound {
		return domain.RecordingSession{}, fmt.Errorf("%w: recording session %s", errors.ErrNotFound, sessionID)
	}
	if err != nil {
		return domain.RecordingSession{}, fmt.Errorf("load session %s: %w", sessionID, err)
	}
	return session, nil
}

func (r SpaceRepository) ActiveSession(ctx context.Context, spaceID string) (*domain.RecordingSession, error) {
	space, err := r.GetSpace(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if space.ActiveRecordingID == "" {
		return nil, nil
	}
	session, err := r.GetSession(ctx, space.ActiveRecordingID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionRecording {
		// Stale pointer: the flag says recording but the session moved
		// on. Treated as no active session; the coordinator repairs the
		// flag on the next stop/start.
		r.log.Warn("active recording pointer is stale",
			"space_id", spaceID, "session_id", session.ID, "status", session.Status)
		return nil, nil
	}
	return &session, nil
}
