package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/pastime-app/backend/internal/db"
)

// MessageRepository provides data access methods for direct messages.
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new repository bound to the given DB connection.
func NewMessageRepository(database *gorm.DB) *MessageRepository {
	return &MessageRepository{db: database}
}

// Send appends a message from one user to another and returns the stored row.
func (r *MessageRepository) Send(ctx context.Context, fromID, toID uint64, body string) (*db.Message, error) {
	msg := db.Message{FromID: fromID, ToID: toID, Body: body}
	if err := r.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// Conversation returns every message exchanged between a and b in either
// direction, ordered by insertion id. The filter is a strict pair match,
// so a third party sharing one of the ids never leaks in.
func (r *MessageRepository) Conversation(ctx context.Context, a, b uint64) ([]db.Message, error) {
	var msgs []db.Message
	err := r.db.WithContext(ctx).
		Where("(from_id = ? AND to_id = ?) OR (from_id = ? AND to_id = ?)", a, b, b, a).
		Order("id").
		Find(&msgs).Error
	return msgs, err
}
