package entities

import "time"

// ChatMessage is a historical free-text message. The engine treats a
// patient's messages as an unordered bag of text for keyword matching.
type ChatMessage struct {
	ID          string    `json:"message_id" db:"message_id"`
	SenderID    string    `json:"sender_id" db:"sender_id"`
	ReceiverID  string    `json:"receiver_id" db:"receiver_id"`
	MessageText string    `json:"message_text" db:"message_text"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
