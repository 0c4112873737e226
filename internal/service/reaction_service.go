package service

import (
	"context"
	"errors"
	"fmt"

	app_errors "blinkchat/backend/internal/errors"
	"blinkchat/backend/internal/gateway"
)

// ReactionService toggles per-message reaction membership. The toggle is an
// atomic set add/remove at the storage layer, so two users hitting the same
// message concurrently cannot lose one another's update.
type ReactionService struct {
	gw gateway.Gateway
}

func NewReactionService(gw gateway.Gateway) *ReactionService {
	return &ReactionService{gw: gw}
}

// Toggle adds userID to the reaction set for kind if absent and removes it
// otherwise. Toggling twice in succession restores the original set.
func (s *ReactionService) Toggle(ctx context.Context, conversationID, messageID, kind, userID string) error {
	if conversationID == "" || messageID == "" || kind == "" || userID == "" {
		return fmt.Errorf("%w: conversation, message, kind and user are all required", app_errors.ErrValidation)
	}
	if err := s.gw.ToggleReaction(ctx, conversationID, messageID, kind, userID); err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			return fmt.Errorf("%w: message", app_errors.ErrNotFound)
		}
		return fmt.Errorf("%w: %v", app_errors.ErrPersistence, err)
	}
	return nil
}
