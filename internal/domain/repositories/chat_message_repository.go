package repositories

import (
	"context"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
)

// ChatMessageRepository defines read access to chat history.
type ChatMessageRepository interface {
	// ListBySender retrieves all messages authored by the given account
	ListBySender(ctx context.Context, senderID string) ([]*entities.ChatMessage, error)
}
