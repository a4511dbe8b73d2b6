// Package services – MessageService
//
// This file implements the MessageService, which manages the lifecycle of
// text posts: creation, retrieval, editing, and deletion. Validation order
// matters for error semantics: text length checks run before existence
// checks, so only one failure reason is ever observable per call even when
// several conditions are violated at once.
//
// Service-level errors (e.g. ErrMessageNotFound, ErrMessageTooLong) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/avoulgari/go-social-backend/internal/domain"
)

// MessageRepo defines the repository contract required by MessageService.
type MessageRepo interface {
	// CreateMessage inserts a new message row and returns it with its generated ID.
	CreateMessage(ctx context.Context, db *gorm.DB, postedBy int64, text string, epoch int64) (*domain.Message, error)

	// ListMessages returns every stored message in insertion order.
	ListMessages(ctx context.Context, db *gorm.DB) ([]domain.Message, error)

	// ListMessagesByAccount returns all messages posted by one account.
	ListMessagesByAccount(ctx context.Context, db *gorm.DB, accountID int64) ([]domain.Message, error)

	// GetMessage fetches a message by ID.
	GetMessage(ctx context.Context, db *gorm.DB, id int64) (*domain.Message, error)

	// DeleteMessage removes a message by ID.
	DeleteMessage(ctx context.Context, db *gorm.DB, id int64) error

	// UpdateMessageText replaces the text of a message by ID.
	UpdateMessageText(ctx context.Context, db *gorm.DB, id int64, text string) error
}

// MessageService provides the use-cases around text posts. Read-then-write
// sequences (edit, delete) run inside transactions so a racing delete cannot
// produce a "found and modified" result for a row that was already gone.
type MessageService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Accounts resolves authors when validating new posts.
	Accounts AccountRepo
	// Messages is the message repository used by this service.
	Messages MessageRepo

	// MaxMessageRunes caps message bodies by rune length.
	MaxMessageRunes int
}

// NewMessageService constructs a MessageService with the default 255-rune
// message cap.
func NewMessageService(db *gorm.DB, accounts AccountRepo, messages MessageRepo) *MessageService {
	return &MessageService{
		DB:              db,
		Accounts:        accounts,
		Messages:        messages,
		MaxMessageRunes: 255,
	}
}

// validateText applies the shared body checks: non-empty and at most
// MaxMessageRunes runes. Checks short-circuit in that order.
func (s *MessageService) validateText(text string) error {
	if text == "" {
		return ErrEmptyMessage
	}
	if s.MaxMessageRunes > 0 && utf8.RuneCountInString(text) > s.MaxMessageRunes {
		return ErrMessageTooLong
	}
	return nil
}

// Create stores a new message.
//
// Semantics and validation (in order):
//   - text must be 1–MaxMessageRunes runes; otherwise ErrEmptyMessage or
//     ErrMessageTooLong.
//   - postedBy must reference an existing account; otherwise ErrUnknownAuthor.
//
// On success the returned message carries its generated ID.
func (s *MessageService) Create(ctx context.Context, postedBy int64, text string, epoch int64) (*domain.Message, error) {
	if err := s.validateText(text); err != nil {
		return nil, err
	}
	if _, err := s.Accounts.GetAccount(ctx, s.DB, postedBy); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownAuthor
		}
		return nil, err
	}
	return s.Messages.CreateMessage(ctx, s.DB, postedBy, text, epoch)
}

// ListAll returns every stored message in insertion order.
func (s *MessageService) ListAll(ctx context.Context) ([]domain.Message, error) {
	return s.Messages.ListMessages(ctx, s.DB)
}

// Get returns the message with the given ID, or ErrMessageNotFound.
func (s *MessageService) Get(ctx context.Context, id int64) (*domain.Message, error) {
	m, err := s.Messages.GetMessage(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return m, nil
}

// Delete removes the message with the given ID and returns it as it existed
// immediately before deletion. If no such message exists, it returns
// ErrMessageNotFound without mutating anything. The read and the delete run
// in one transaction.
func (s *MessageService) Delete(ctx context.Context, id int64) (*domain.Message, error) {
	var deleted *domain.Message
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.Messages.GetMessage(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMessageNotFound
			}
			return err
		}
		if err := s.Messages.DeleteMessage(ctx, tx, id); err != nil {
			return err
		}
		deleted = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// Edit replaces the text of the message with the given ID, preserving its
// author and original timestamp, and returns the updated message.
//
// Validation order: text checks run before the existence check, so an
// oversized edit of a missing message reports ErrMessageTooLong, not
// ErrMessageNotFound. The read and the update run in one transaction;
// nothing is mutated on failure.
func (s *MessageService) Edit(ctx context.Context, id int64, text string) (*domain.Message, error) {
	if err := s.validateText(text); err != nil {
		return nil, err
	}

	var edited *domain.Message
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.Messages.GetMessage(ctx, tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMessageNotFound
			}
			return err
		}
		if err := s.Messages.UpdateMessageText(ctx, tx, id, text); err != nil {
			return err
		}
		edited = &domain.Message{
			MessageID:       m.MessageID,
			PostedBy:        m.PostedBy,
			MessageText:     text,
			TimePostedEpoch: m.TimePostedEpoch,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edited, nil
}

// ListByAccount returns all messages posted by the given account in
// insertion order. An unknown account yields an empty list.
func (s *MessageService) ListByAccount(ctx context.Context, accountID int64) ([]domain.Message, error) {
	return s.Messages.ListMessagesByAccount(ctx, s.DB, accountID)
}
