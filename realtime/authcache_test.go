package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arunpravin125/ConnectHub-sub001/domain"
	"github.com/arunpravin125/ConnectHub-sub001/errors"
	"github.com/arunpravin125/ConnectHub-sub001/mocks"
)

func newTestAuthCache(t *testing.T) (*SpaceAuthCache, *mocks.MockISpaceRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	spaces := mocks.NewMockISpaceRepository(ctrl)
	cache, err := NewSpaceAuthCache(logs.GetLoggerFromLevel(slog.LevelDebug), spaces, 16)
	require.NoError(t, err)
	return cache, spaces
}

func TestSpaceAuthCache_Miss_Fetches_Once_Then_Hits(t *testing.T) {
	req := require.New(t)
	cache, spaces := newTestAuthCache(t)
	ctx := context.Background()
	spaceID := uuid.NewString()
	space := domain.Space{
		ID:       spaceID,
		HostID:   "host",
		Speakers: []string{"speaker"},
		Status:   domain.SpaceLive,
	}

	// Given a single authoritative fetch
	spaces.EXPECT().GetSpace(ctx, spaceID).Return(space, nil).Times(1)

	// When checking twice
	authorized, err := cache.IsAuthorized(ctx, spaceID, "speaker")
	req.NoError(err)
	req.True(authorized)

	// Then the second check is served from the cache
	authorized, err = cache.IsAuthorized(ctx, spaceID, "speaker")
	req.NoError(err)
	req.True(authorized)
}

func TestSpaceAuthCache_NonMember_Is_Unauthorized(t *testing.T) {
	req := require.New(t)
	cache, spaces := newTestAuthCache(t)
	ctx := context.Background()
	spaceID := uuid.NewString()

	spaces.EXPECT().GetSpace(ctx, spaceID).
		Return(domain.Space{ID: spaceID, HostID: "host", Status: domain.SpaceLive}, nil)

	authorized, err := cache.IsAuthorized(ctx, spaceID, "stranger")
	req.NoError(err)
	req.False(authorized)
}

func TestSpaceAuthCache_Fetch_Failure_Fails_Closed(t *testing.T) {
	req := require.New(t)
	cache, spaces := newTestAuthCache(t)
	ctx := context.Background()
	spaceID := uuid.NewString()

	spaces.EXPECT().GetSpace(ctx, spaceID).
		Return(domain.Space{}, fmt.Errorf("store unavailable"))

	authorized, err := cache.IsAuthorized(ctx, spaceID, "host")
	req.ErrorIs(err, errors.ErrLookupFailed)
	req.False(authorized)
}

func TestSpaceAuthCache_Invalidate_Forces_Fresh_Read(t *testing.T) {
	req := require.New(t)
	cache, spaces := newTestAuthCache(t)
	ctx := context.Background()
	spaceID := uuid.NewString()

	// Given alice was a listener at first
	spaces.EXPECT().GetSpace(ctx, spaceID).
		Return(domain.Space{ID: spaceID, HostID: "host", Listeners: []string{"alice"}, Status: domain.SpaceLive}, nil)
	authorized, err := cache.IsAuthorized(ctx, spaceID, "alice")
	req.NoError(err)
	req.True(authorized)

	// When alice is removed durably and the entry is invalidated
	spaces.EXPECT().GetSpace(ctx, spaceID).
		Return(domain.Space{ID: spaceID, HostID: "host", Status: domain.SpaceLive}, nil)
	cache.Invalidate(spaceID)

	// Then the next check reflects the removal
	authorized, err = cache.IsAuthorized(ctx, spaceID, "alice")
	req.NoError(err)
	req.False(authorized)
}

func TestSpaceAuthCache_Populate_Avoids_Fetch(t *testing.T) {
	req := require.New(t)
	cache, _ := newTestAuthCache(t)
	spaceID := uuid.NewString()

	// No GetSpace expectation: a populated entry must serve the check
	cache.Populate(spaceID, []string{"host", "alice"})

	authorized, err := cache.IsAuthorized(context.Background(), spaceID, "alice")
	req.NoError(err)
	req.True(authorized)
}

func TestSpaceAuthCache_Lenient_Allows_On_Miss_And_Refreshes(t *testing.T) {
	req := require.New(t)
	cache, spaces := newTestAuthCache(t)
	spaceID := uuid.NewString()

	var once sync.Once
	fetched := make(chan struct{})
	// The eventual cache hit may race further misses, so more than one
	// refresh is acceptable.
	spaces.EXPECT().GetSpace(gomock.Any(), spaceID).
		DoAndReturn(func(context.Context, string) (domain.Space, error) {
			once.Do(func() { close(fetched) })
			return domain.Space{ID: spaceID, HostID: "host", Status: domain.SpaceLive}, nil
		}).AnyTimes()

	// A miss allows immediately
	req.True(cache.IsAuthorizedLenient(context.Background(), spaceID, "stranger"))

	// And triggers a background repopulation
	select {
	case <-fetched:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a background membership refresh")
	}

	// Once the entry is present the lenient path evaluates it
	req.Eventually(func() bool {
		return !cache.IsAuthorizedLenient(context.Background(), spaceID, "stranger")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSpaceAuthCache_Lenient_Hit_Still_Rejects(t *testing.T) {
	req := require.New(t)
	cache, _ := newTestAuthCache(t)
	spaceID := uuid.NewString()

	cache.Populate(spaceID, []string{"host"})

	// A cached entry is authoritative for the lenient path too
	req.False(cache.IsAuthorizedLenient(context.Background(), spaceID, "stranger"))
	req.True(cache.IsAuthorizedLenient(context.Background(), spaceID, "host"))
}
