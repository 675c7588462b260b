package realtime

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/arunpravin125/ConnectHub-sub001/domain"
	"github.com/arunpravin125/ConnectHub-sub001/domain/event"
)

func TestTypingSweeper_Expires_Idle_Entries(t *testing.T) {
	req := require.New(t)
	typing, rooms := newTestTyping()
	room := domain.ChatRoom(uuid.NewString())
	origin := newFakeConn("c1", "alice")
	watcher := newFakeConn("c2", "bob")
	rooms.Join(room, origin)
	rooms.Join(room, watcher)

	typing.Start(room, "alice", origin)

	sweeper := NewTypingSweeper(slog.Default(), typing, 10*time.Millisecond, 30*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- sweeper.Run(ctx) }()

	// The stale entry is swept and the room sees isTyping:false
	req.Eventually(func() bool {
		return !typing.Active(room, "alice")
	}, 2*time.Second, 10*time.Millisecond)
	req.Eventually(func() bool {
		return len(watcher.emissionsOf(event.Typing)) == 2
	}, 2*time.Second, 10*time.Millisecond)
	req.False(watcher.emissionsOf(event.Typing)[1].payload.(event.TypingChanged).IsTyping)

	cancel()
	select {
	case err := <-done:
		req.ErrorIs(err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop on cancellation")
	}
}

func TestTypingSweeper_Defaults_Applied(t *testing.T) {
	req := require.New(t)
	typing, _ := newTestTyping()

	sweeper := NewTypingSweeper(slog.Default(), typing, 0, -1)

	req.Equal(DefaultSweepInterval, sweeper.interval)
	req.Equal(DefaultTypingThreshold, sweeper.threshold)
}
