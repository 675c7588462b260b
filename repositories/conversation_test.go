package repositories

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestConversationRepository_Membership_Roundtrip(t *testing.T) {
	req := require.New(t)
	repo := NewConversationRepository(newTestDB(t), slog.Default())
	ctx := context.Background()
	conversationID := uuid.NewString()

	member, err := repo.IsParticipant(ctx, conversationID, "alice")
	req.NoError(err)
	req.False(member)

	req.NoError(repo.AddParticipant(ctx, conversationID, "alice"))

	member, err = repo.IsParticipant(ctx, conversationID, "alice")
	req.NoError(err)
	req.True(member)

	req.NoError(repo.RemoveParticipant(ctx, conversationID, "alice"))

	member, err = repo.IsParticipant(ctx, conversationID, "alice")
	req.NoError(err)
	req.False(member)
}

func TestConversationRepository_Remove_Unknown_Is_Noop(t *testing.T) {
	req := require.New(t)
	repo := NewConversationRepository(newTestDB(t), slog.Default())

	req.NoError(repo.RemoveParticipant(context.Background(), uuid.NewString(), "ghost"))
}

func TestConversationRepository_Participants_Prefix_Scan(t *testing.T) {
	req := require.New(t)
	repo := NewConversationRepository(newTestDB(t), slog.Default())
	ctx := context.Background()
	conversationID := uuid.NewString()
	otherConversation := uuid.NewString()

	req.NoError(repo.AddParticipant(ctx, conversationID, "carol"))
	req.NoError(repo.AddParticipant(ctx, conversationID, "alice"))
	req.NoError(repo.AddParticipant(ctx, conversationID, "bob"))
	// A member of another conversation must not leak into the scan
	req.NoError(repo.AddParticipant(ctx, otherConversation, "mallory"))

	members, err := repo.Participants(ctx, conversationID)
	req.NoError(err)
	req.Equal([]string{"alice", "bob", "carol"}, members)
}

func TestConversationRepository_Participants_Empty(t *testing.T) {
	req := require.New(t)
	repo := NewConversationRepository(newTestDB(t), slog.Default())

	members, err := repo.Participants(context.Background(), uuid.NewString())
	req.NoError(err)
	req.Empty(members)
}
