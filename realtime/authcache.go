package realtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/samber/lo"

	"github.com/arunpravin125/ConnectHub-sub001/errors"
	"github.com/arunpravin125/ConnectHub-sub001/repositories"
)

const backgroundRefreshTimeout = 5 * time.Second

// SpaceAuthCache caches the set of identities authorized to interact
// within a space (host + speakers + listeners) so that high-frequency
// signaling traffic does not pay an authoritative lookup per message.
//
// It is a performance optimization, never a source of truth: a miss
// falls back to the space repository and repopulates. Entries are never
// expired by time. Only explicit invalidation (membership-changing
// durable mutations), capacity pressure on the LRU, or process restart
// clears them. An eviction is indistinguishable from a miss.
type SpaceAuthCache struct {
	log    *slog.Logger
	spaces repositories.ISpaceRepository
	cache  *lru.Cache[string, map[string]struct{}]

	mu         sync.Mutex
	refreshing map[string]struct{}
}

func NewSpaceAuthCache(log *slog.Logger, spaces repositories.ISpaceRepository, size int) (*SpaceAuthCache, error) {
	cache, err := lru.New[string, map[string]struct{}](size)
	if err != nil {
		return nil, fmt.Errorf("auth cache init: %w", err)
	}
	return &SpaceAuthCache{
		log:        log,
		spaces:     spaces,
		cache:      cache,
		refreshing: make(map[string]struct{}),
	}, nil
}

// IsAuthorized checks the cached membership set. On a miss it fetches
// authoritative membership synchronously, populates the cache and
// evaluates. A fetch failure fails closed: the caller must treat the
// sender as unauthorized rather than guess.
func (c *SpaceAuthCache) IsAuthorized(ctx context.Context, spaceID, userID string) (bool, error) {
	if members, ok := c.cache.Get(spaceID); ok {
		_, authorized := members[userID]
		return authorized, nil
	}

	members, err := c.fetch(ctx, spaceID)
	if err != nil {
		return false, err
	}
	_, authorized := members[userID]
	return authorized, nil
}

// IsAuthorizedLenient is the documented exception for the lowest-stakes
// relay type (ICE candidates): on a cache miss it allows the relay
// without blocking on a fresh authoritative check and refreshes the
// entry in the background. A cache hit still evaluates normally.
func (c *SpaceAuthCache) IsAuthorizedLenient(ctx context.Context, spaceID, userID string) bool {
	if members, ok := c.cache.Get(spaceID); ok {
		_, authorized := members[userID]
		return authorized
	}

	c.refreshAsync(spaceID)
	return true
}

// Populate is an explicit cache fill after a successful membership
// fetch performed elsewhere.
func (c *SpaceAuthCache) Populate(spaceID string, memberIDs []string) {
	c.cache.Add(spaceID, lo.SliceToMap(memberIDs, func(id string) (string, struct{}) {
		return id, struct{}{}
	}))
}

// Invalidate removes the cached entry; the next IsAuthorized call
// repopulates from the source of truth. Called after every durable
// membership mutation for the space.
func (c *SpaceAuthCache) Invalidate(spaceID string) {
	c.cache.Remove(spaceID)
}

func (c *SpaceAuthCache) fetch(ctx context.Context, spaceID string) (map[string]struct{}, error) {
	space, err := c.spaces.GetSpace(ctx, spaceID)
	if err != nil {
		// Both sentinels stay unwrappable: callers distinguish a missing
		// space from an unreachable store.
		return nil, fmt.Errorf("%w: %w", errors.ErrLookupFailed, err)
	}

	members := make(map[string]struct{})
	for _, id := range space.Participants() {
		members[id] = struct{}{}
	}
	c.cache.Add(spaceID, members)
	return members, nil
}

// refreshAsync repopulates one space off the caller's path. Concurrent
// misses for the same space trigger a single refresh.
func (c *SpaceAuthCache) refreshAsync(spaceID string) {
	c.mu.Lock()
	if _, busy := c.refreshing[spaceID]; busy {
		c.mu.Unlock()
		return
	}
	c.refreshing[spaceID] = struct{}{}
	c.mu.Unlock()

	go func() {
		defer func() {
			c.mu.Lock()
			delete(c.refreshing, spaceID)
			c.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), backgroundRefreshTimeout)
		defer cancel()
		if _, err := c.fetch(ctx, spaceID); err != nil {
			c.log.Warn("background membership refresh failed", "space_id", spaceID, "error", err)
		}
	}()
}
