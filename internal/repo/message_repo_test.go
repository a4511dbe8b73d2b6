package repo

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/avoulgari/go-social-backend/internal/domain"
)

func newMessageRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("message_repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := db.AutoMigrate(&domain.Account{}, &domain.Message{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, username string) *domain.Account {
	t.Helper()
	a, err := CreateAccount(context.Background(), db, username, "secret")
	if err != nil {
		t.Fatalf("seed account %s: %v", username, err)
	}
	return a
}

func TestCreateMessage_Success_GeneratesID(t *testing.T) {
	db := newMessageRepoDB(t)
	a := seedAccount(t, db, "bob")

	m, err := CreateMessage(context.Background(), db, a.AccountID, "hello", 1000)
	if err != nil {
		t.Fatalf("CreateMessage: %v", err)
	}
	if m.MessageID == 0 || m.PostedBy != a.AccountID || m.MessageText != "hello" || m.TimePostedEpoch != 1000 {
		t.Fatalf("unexpected Message fields: %+v", m)
	}
}

func TestListMessages_OrderedByID(t *testing.T) {
	db := newMessageRepoDB(t)
	a := seedAccount(t, db, "bob")

	for _, txt := range []string{"first", "second", "third"} {
		if _, err := CreateMessage(context.Background(), db, a.AccountID, txt, 1000); err != nil {
			t.Fatalf("seed %q: %v", txt, err)
		}
	}

	list, err := ListMessages(context.Background(), db)
	if err != nil {
		t.Fatalf("ListMessages: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(list))
	}
	// Ascending by message_id: insertion order.
	if list[0].MessageText != "first" || list[1].MessageText != "second" || list[2].MessageText != "third" {
		t.Fatalf("unexpected order: %#v", list)
	}
}

func TestListMessagesByAccount_FilterAndEmpty(t *testing.T) {
	db := newMessageRepoDB(t)
	bob := seedAccount(t, db, "bob")
	alice := seedAccount(t, db, "alice")

	if _, err := CreateMessage(context.Background(), db, bob.AccountID, "from bob", 1); err != nil {
		t.Fatalf("seed bob msg: %v", err)
	}
	if _, err := CreateMessage(context.Background(), db, alice.AccountID, "from alice", 2); err != nil {
		t.Fatalf("seed alice msg: %v", err)
	}

	list, err := ListMessagesByAccount(context.Background(), db, bob.AccountID)
	if err != nil {
		t.Fatalf("ListMessagesByAccount: %v", err)
	}
	if len(list) != 1 || list[0].MessageText != "from bob" {
		t.Fatalf("unexpected list for bob: %#v", list)
	}

	// Unknown account -> empty slice, not an error.
	empty, err := ListMessagesByAccount(context.Background(), db, 9999)
	if err != nil {
		t.Fatalf("ListMessagesByAccount(unknown): %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty list for unknown account, got %#v", empty)
	}
}

func TestGetMessage_FoundAndNotFound(t *testing.T) {
	db := newMessageRepoDB(t)
	a := seedAccount(t, db, "bob")

	if _, err := GetMessage(context.Background(), db, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	m, err := CreateMessage(context.Background(), db, a.AccountID, "hi", 1000)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := GetMessage(context.Background(), db, m.MessageID)
	if err != nil {
		t.Fatalf("GetMessage: %v", err)
	}
	if got.MessageID != m.MessageID || got.MessageText != "hi" {
		t.Fatalf("unexpected message: %+v", got)
	}
}

func TestDeleteMessage_RemovesRowOrNotFound(t *testing.T) {
	db := newMessageRepoDB(t)
	a := seedAccount(t, db, "bob")

	if err := DeleteMessage(context.Background(), db, 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting missing row, got %v", err)
	}

	m, err := CreateMessage(context.Background(), db, a.AccountID, "bye", 1000)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := DeleteMessage(context.Background(), db, m.MessageID); err != nil {
		t.Fatalf("DeleteMessage: %v", err)
	}
	if _, err := GetMessage(context.Background(), db, m.MessageID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected row gone after delete, got %v", err)
	}
}

func TestUpdateMessageText_PreservesOtherColumns(t *testing.T) {
	db := newMessageRepoDB(t)
	a := seedAccount(t, db, "bob")

	if err := UpdateMessageText(context.Background(), db, 404, "new"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound updating missing row, got %v", err)
	}

	m, err := CreateMessage(context.Background(), db, a.AccountID, "old", 1234)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := UpdateMessageText(context.Background(), db, m.MessageID, "new"); err != nil {
		t.Fatalf("UpdateMessageText: %v", err)
	}

	got, err := GetMessage(context.Background(), db, m.MessageID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.MessageText != "new" {
		t.Fatalf("expected updated text, got %q", got.MessageText)
	}
	if got.PostedBy != a.AccountID || got.TimePostedEpoch != 1234 {
		t.Fatalf("author/timestamp must be preserved: %+v", got)
	}
}
