package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/Rohanmore123/mental-health-backend/internal/domain/entities"
	"github.com/Rohanmore123/mental-health-backend/internal/domain/repositories"
	"github.com/Rohanmore123/mental-health-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/Rohanmore123/mental-health-backend/pkg/errors"
)

// ChatMessageAdapter implements the ChatMessageRepository interface
type ChatMessageAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewChatMessageAdapter creates a new chat message adapter
func NewChatMessageAdapter(client *postgres.Client) repositories.ChatMessageRepository {
	return &ChatMessageAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListBySender retrieves all messages authored by the given account
func (a *ChatMessageAdapter) ListBySender(ctx context.Context, senderID string) ([]*entities.ChatMessage, error) {
	query, args, err := a.db.From("chat_messages").
		Select("message_id", "sender_id", "receiver_id", "message_text", "created_at").
		Where(goqu.C("sender_id").Eq(senderID)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build chat message query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list chat messages", err)
	}
	defer rows.Close()

	messages := []*entities.ChatMessage{}
	for rows.Next() {
		var message entities.ChatMessage
		if err := rows.Scan(&message.ID, &message.SenderID, &message.ReceiverID, &message.MessageText, &message.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan chat message", err)
		}
		messages = append(messages, &message)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate chat messages", err)
	}

	return messages, nil
}
