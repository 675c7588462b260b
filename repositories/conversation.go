//go:generate go run go.uber.org/mock/mockgen -source=conversation.go -destination=../mocks/mock_conversation_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// IConversationRepository is the persistence collaborator for
// conversation (chat/group) membership. The typing tracker and chat room
// joins authorize against it directly; it is slow-changing state mutated
// by the CRUD layer.
type IConversationRepository interface {
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)
	AddParticipant(ctx context.Context, conversationID, userID string) error
	RemoveParticipant(ctx context.Context, conversationID, userID string) error
	Participants(ctx context.Context, conversationID string) ([]string, error)
}

type ConversationRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewConversationRepository(db *badger.DB, log *slog.Logger) ConversationRepository {
	return ConversationRepository{db: db, log: log}
}

type membership struct {
	JoinedAt time.Time `json:"joined_at"`
}

// memberKey is formatted as "conv:{conversation}:member:{user}" so a
// prefix scan over "conv:{conversation}:member:" lists the membership.
func memberKey(conversationID, userID string) []byte {
	return []byte(fmt.Sprintf("conv:%s:member:%s", conversationID, userID))
}

func (r ConversationRepository) IsParticipant(_ context.Context, conversationID, userID string) (bool, error) {
	err := r.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(memberKey(conversationID, userID))
		return err
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("membership check %s/%s: %w", conversationID, userID, err)
	}
	return true, nil
}

func (r ConversationRepository) AddParticipant(_ context.Context, conversationID, userID string) error {
	data, err := json.Marshal(membership{JoinedAt: time.Now().UTC()})
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(memberKey(conversationID, userID), data)
	})
}

func (r ConversationRepository) RemoveParticipant(_ context.Context, conversationID, userID string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(memberKey(conversationID, userID))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

// Participants lists every member of the conversation using a prefix
// scan; keys are naturally sorted so the result is deterministic.
func (r ConversationRepository) Participants(_ context.Context, conversationID string) ([]string, error) {
	prefixStr := fmt.Sprintf("conv:%s:member:", conversationID)
	prefix := []byte(prefixStr)

	var members []string
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			members = append(members, string(key[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list participants %s: %w", conversationID, err)
	}
	return members, nil
}
