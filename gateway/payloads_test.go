package gateway

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload_Chat(t *testing.T) {
	req := require.New(t)
	chatID := uuid.NewString()

	var payload chatPayload
	err := decodePayload([]any{map[string]any{"chatId": chatID}}, &payload)

	req.NoError(err)
	req.Equal(chatID, payload.ChatID)
}

func TestDecodePayload_Missing_Required_Field(t *testing.T) {
	req := require.New(t)

	var payload chatPayload
	err := decodePayload([]any{map[string]any{"other": "x"}}, &payload)

	req.Error(err)
}

func TestDecodePayload_No_Arguments(t *testing.T) {
	req := require.New(t)

	var payload spacePayload
	err := decodePayload(nil, &payload)

	req.Error(err)
}

func TestSignalPayload_Target_Accepts_Both_Spellings(t *testing.T) {
	req := require.New(t)
	spaceID := uuid.NewString()

	var viaTarget signalPayload
	err := decodePayload([]any{map[string]any{
		"spaceId":      spaceID,
		"targetUserId": "bob",
		"payload":      map[string]any{"sdp": "v=0"},
	}}, &viaTarget)
	req.NoError(err)
	req.NoError(viaTarget.validateTarget())
	req.Equal("bob", viaTarget.Target())

	var viaTo signalPayload
	err = decodePayload([]any{map[string]any{
		"spaceId":  spaceID,
		"toUserId": "carol",
	}}, &viaTo)
	req.NoError(err)
	req.NoError(viaTo.validateTarget())
	req.Equal("carol", viaTo.Target())

	// targetUserId wins when both are present
	both := signalPayload{TargetUserID: "bob", ToUserID: "carol"}
	req.Equal("bob", both.Target())
}

func TestSignalPayload_Missing_Target_Rejected(t *testing.T) {
	req := require.New(t)

	var payload signalPayload
	err := decodePayload([]any{map[string]any{"spaceId": uuid.NewString()}}, &payload)
	req.NoError(err)
	req.Error(payload.validateTarget())
}
