// Package services – AccountService
//
// This file implements the AccountService, which governs account
// registration and login. It enforces the business rules (non-empty
// username, minimum password length, username uniqueness) and persists
// accounts through the repository contract. Service-level errors
// (e.g. ErrUsernameTaken, ErrInvalidCredentials) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/avoulgari/go-social-backend/internal/domain"
)

// AccountRepo defines the repository contract required by AccountService.
// Implementations are responsible for persistence of account rows.
type AccountRepo interface {
	// CreateAccount inserts a new account row and returns it with its generated ID.
	CreateAccount(ctx context.Context, db *gorm.DB, username, password string) (*domain.Account, error)

	// GetAccount fetches an account by its generated ID.
	GetAccount(ctx context.Context, db *gorm.DB, id int64) (*domain.Account, error)

	// GetAccountByUsername fetches an account by exact username.
	GetAccountByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.Account, error)

	// GetAccountByCredentials fetches the account matching both username and password.
	GetAccountByCredentials(ctx context.Context, db *gorm.DB, username, password string) (*domain.Account, error)
}

// AccountService provides registration and login on top of the account
// repository. It holds no state beyond its dependencies.
type AccountService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the account repository used by this service.
	Repo AccountRepo

	// MinPasswordLen is the minimum accepted password length in runes.
	MinPasswordLen int
}

// NewAccountService constructs an AccountService with the default
// minimum password length of 4.
func NewAccountService(db *gorm.DB, r AccountRepo) *AccountService {
	return &AccountService{DB: db, Repo: r, MinPasswordLen: 4}
}

// Register creates a new account.
//
// Semantics and validation:
//   - username must be non-empty; otherwise ErrUsernameRequired.
//   - password must be at least MinPasswordLen runes; otherwise ErrPasswordTooShort.
//   - username must not already be registered; otherwise ErrUsernameTaken.
//
// Concurrency & atomicity:
//   - The availability check and the insert run inside a transaction, and the
//     username column carries a unique index, so two concurrent registrations
//     with the same name cannot both succeed. A constraint violation on
//     insert is reported as ErrUsernameTaken like any other duplicate.
//
// On success the returned account carries its generated ID. No partial state
// change is left behind on failure.
func (s *AccountService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if utf8.RuneCountInString(password) < s.MinPasswordLen {
		return nil, ErrPasswordTooShort
	}

	var created *domain.Account
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Repo.GetAccountByUsername(ctx, tx, username); err == nil {
			return ErrUsernameTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		a, err := s.Repo.CreateAccount(ctx, tx, username, password)
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
				return ErrUsernameTaken
			}
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login verifies a username/password pair against stored accounts. The
// comparison is exact and case-sensitive; there is no session state, the
// matched account (including its ID) is simply returned.
//
// Returns ErrInvalidCredentials when no account matches.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	a, err := s.Repo.GetAccountByCredentials(ctx, s.DB, username, password)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return a, nil
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
