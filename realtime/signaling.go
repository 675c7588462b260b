package realtime

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"github.com/arunpravin125/ConnectHub-sub001/domain/event"
	"github.com/arunpravin125/ConnectHub-sub001/errors"
)

// Signaling relays opaque WebRTC negotiation payloads (offer, answer,
// ICE candidate, ready) between two identities inside a space. Payload
// contents are never inspected or validated; correctness of SDP/ICE is
// the negotiating peers' problem.
//
// Every relay authorizes the sender through the space authorization
// cache before forwarding. Offer, answer and ready are high-commitment
// messages: a cache miss forces a fresh authoritative fetch and a fetch
// failure fails closed. ICE candidates can arrive many times per second,
// so they use the lenient path. An offline target is a silent drop, not
// an error. Relays emit synchronously in call order, so per-pair
// per-type delivery preserves the order messages were received in.
type Signaling struct {
	log      *slog.Logger
	presence *Presence
	cache    *SpaceAuthCache
}

func NewSignaling(log *slog.Logger, presence *Presence, cache *SpaceAuthCache) *Signaling {
	return &Signaling{log: log, presence: presence, cache: cache}
}

func (s *Signaling) RelayOffer(ctx context.Context, spaceID, fromUserID, toUserID string, payload any) error {
	return s.relayStrict(ctx, event.WebRTCOffer, spaceID, fromUserID, toUserID, payload)
}

func (s *Signaling) RelayAnswer(ctx context.Context, spaceID, fromUserID, toUserID string, payload any) error {
	return s.relayStrict(ctx, event.WebRTCAnswer, spaceID, fromUserID, toUserID, payload)
}

func (s *Signaling) RelayReady(ctx context.Context, spaceID, fromUserID, toUserID string, payload any) error {
	return s.relayStrict(ctx, event.WebRTCReady, spaceID, fromUserID, toUserID, payload)
}

// RelayIce tolerates a cache miss without blocking on a fresh
// authoritative check, favoring availability for the lowest-stakes
// message type.
func (s *Signaling) RelayIce(ctx context.Context, spaceID, fromUserID, toUserID string, payload any) error {
	if !s.cache.IsAuthorizedLenient(ctx, spaceID, fromUserID) {
		return fmt.Errorf("%w: %s is not a participant of space %s", errors.ErrUnauthorized, fromUserID, spaceID)
	}
	s.deliver(event.WebRTCIce, spaceID, fromUserID, toUserID, payload)
	return nil
}

func (s *Signaling) relayStrict(ctx context.Context, name, spaceID, fromUserID, toUserID string, payload any) error {
	authorized, err := s.cache.IsAuthorized(ctx, spaceID, fromUserID)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			// The space does not exist. Like an offline target, a silent
			// drop rather than an error back to the sender.
			s.log.Debug("signal dropped, space not found",
				"event", name, "space_id", spaceID, "from_user_id", fromUserID)
			return nil
		}
		// Transient lookup failure fails closed.
		return fmt.Errorf("%w: %v", errors.ErrUnauthorized, err)
	}
	if !authorized {
		return fmt.Errorf("%w: %s is not a participant of space %s", errors.ErrUnauthorized, fromUserID, spaceID)
	}
	s.deliver(name, spaceID, fromUserID, toUserID, payload)
	return nil
}

func (s *Signaling) deliver(name, spaceID, fromUserID, toUserID string, payload any) {
	targets := s.presence.Lookup(toUserID)
	if len(targets) == 0 {
		// Peer not connected. Unreachable, not an error.
		s.log.Debug("signal dropped, target offline",
			"event", name, "space_id", spaceID, "to_user_id", toUserID)
		return
	}

	signal := event.Signal{SpaceID: spaceID, FromUserID: fromUserID, Payload: payload}
	for _, conn := range targets {
		if err := conn.Emit(name, signal); err != nil {
			s.log.Debug("signal delivery dropped",
				"event", name, "conn_id", conn.ID(), "error", err)
		}
	}
}
