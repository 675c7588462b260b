package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Inbound wire payloads. socket.io hands arguments over as decoded JSON
// (map[string]any); decodePayload round-trips them into typed structs
// and applies the validation tags.

type chatPayload struct {
	ChatID string `json:"chatId" validate:"required"`
}

type spacePayload struct {
	SpaceID string `json:"spaceId" validate:"required"`
}

type signalPayload struct {
	SpaceID string `json:"spaceId" validate:"required"`
	// The original clients are inconsistent about the field name for
	// the relay target; both spellings are accepted.
	TargetUserID string `json:"targetUserId"`
	ToUserID     string `json:"toUserId"`
	Payload      any    `json:"payload"`
}

// Target returns the addressed peer identity, whichever field carried it.
func (p signalPayload) Target() string {
	if p.TargetUserID != "" {
		return p.TargetUserID
	}
	return p.ToUserID
}

func (p signalPayload) validateTarget() error {
	if p.Target() == "" {
		return fmt.Errorf("targetUserId is required")
	}
	return nil
}

func decodePayload(datas []any, out any) error {
	if len(datas) == 0 {
		return fmt.Errorf("payload is required")
	}
	raw, err := json.Marshal(datas[0])
	if err != nil {
		return fmt.Errorf("malformed payload: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("malformed payload: %w", err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	return nil
}
