// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Account model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When an account is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/avoulgari/go-social-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateAccount inserts a new account row with the given credentials.
// The account ID is generated by the database. A duplicate username
// surfaces as the driver's unique-constraint error.
//
// On success, it returns the persisted Account. On failure, it returns a DB error.
func CreateAccount(ctx context.Context, db *gorm.DB, username, password string) (*domain.Account, error) {
	a := &domain.Account{
		Username: username,
		Password: password,
	}
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// GetAccount fetches a single account by its generated ID. If the record
// does not exist, it returns ErrNotFound.
func GetAccount(ctx context.Context, db *gorm.DB, id int64) (*domain.Account, error) {
	var a domain.Account
	err := db.WithContext(ctx).
		Where("account_id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAccountByUsername fetches an account by exact username match, or
// ErrNotFound if no account is registered under that name.
func GetAccountByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.Account, error) {
	var a domain.Account
	err := db.WithContext(ctx).
		Where("username = ?", username).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// GetAccountByCredentials fetches the account whose username and password
// both match exactly (case-sensitive). Returns ErrNotFound when no such
// pair exists, which callers treat as a failed login.
func GetAccountByCredentials(ctx context.Context, db *gorm.DB, username, password string) (*domain.Account, error) {
	var a domain.Account
	err := db.WithContext(ctx).
		Where("username = ? AND password = ?", username, password).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}
