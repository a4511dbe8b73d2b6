// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Message model.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/avoulgari/go-social-backend/internal/domain"
)

// CreateMessage inserts a new message row and returns it with its
// generated ID.
func CreateMessage(ctx context.Context, db *gorm.DB, postedBy int64, text string, epoch int64) (*domain.Message, error) {
	m := &domain.Message{
		PostedBy:        postedBy,
		MessageText:     text,
		TimePostedEpoch: epoch,
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// ListMessages returns every stored message ordered deterministically by
// message_id ascending (insertion order).
func ListMessages(ctx context.Context, db *gorm.DB) ([]domain.Message, error) {
	var out []domain.Message
	err := db.WithContext(ctx).
		Order("message_id ASC").
		Find(&out).Error
	return out, err
}

// ListMessagesByAccount returns all messages posted by the given account,
// ordered by message_id ascending. An unknown account yields an empty slice.
func ListMessagesByAccount(ctx context.Context, db *gorm.DB, accountID int64) ([]domain.Message, error) {
	var out []domain.Message
	err := db.WithContext(ctx).
		Where("posted_by = ?", accountID).
		Order("message_id ASC").
		Find(&out).Error
	return out, err
}

// GetMessage fetches a message by ID, or ErrNotFound if absent.
func GetMessage(ctx context.Context, db *gorm.DB, id int64) (*domain.Message, error) {
	var m domain.Message
	err := db.WithContext(ctx).
		Where("message_id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteMessage removes the message with the given ID. If no row was
// deleted, it returns ErrNotFound.
func DeleteMessage(ctx context.Context, db *gorm.DB, id int64) error {
	res := db.WithContext(ctx).
		Where("message_id = ?", id).
		Delete(&domain.Message{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateMessageText replaces the text of the message with the given ID,
// leaving posted_by and time_posted_epoch untouched. If no rows are
// affected (message missing), it returns ErrNotFound.
func UpdateMessageText(ctx context.Context, db *gorm.DB, id int64, text string) error {
	res := db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("message_id = ?", id).
		Update("message_text", text)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
