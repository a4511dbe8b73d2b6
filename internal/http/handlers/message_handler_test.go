package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/avoulgari/go-social-backend/internal/domain"
	"github.com/avoulgari/go-social-backend/internal/services"
)

func newMessageRouter(t *testing.T, svc stubMsgSvc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := New(stubAcctSvc{}, svc)
	r := gin.New()
	r.POST("/messages", h.CreateMessage)
	r.GET("/messages", h.ListMessages)
	r.GET("/messages/:message_id", h.GetMessage)
	r.DELETE("/messages/:message_id", h.DeleteMessage)
	r.PATCH("/messages/:message_id", h.UpdateMessage)
	r.GET("/accounts/:account_id/messages", h.ListAccountMessages)
	return r
}

func TestCreateMessage_Success(t *testing.T) {
	svc := stubMsgSvc{create: func(ctx context.Context, postedBy int64, text string, epoch int64) (*domain.Message, error) {
		return &domain.Message{MessageID: 1, PostedBy: postedBy, MessageText: text, TimePostedEpoch: epoch}, nil
	}}
	r := newMessageRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/messages",
		bytes.NewBufferString(`{"posted_by":1,"message_text":"hi","time_posted_epoch":1000}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got domain.Message
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got.MessageID != 1 || got.PostedBy != 1 || got.MessageText != "hi" || got.TimePostedEpoch != 1000 {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestCreateMessage_ValidationErrors400(t *testing.T) {
	for _, sentinel := range []error{
		services.ErrEmptyMessage,
		services.ErrMessageTooLong,
		services.ErrUnknownAuthor,
	} {
		svc := stubMsgSvc{create: func(context.Context, int64, string, int64) (*domain.Message, error) {
			return nil, sentinel
		}}
		r := newMessageRouter(t, svc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/messages",
			bytes.NewBufferString(`{"posted_by":1,"message_text":"x","time_posted_epoch":0}`))
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("%v: expected 400, got %d", sentinel, w.Code)
		}
	}
}

func TestCreateMessage_StorageError500(t *testing.T) {
	svc := stubMsgSvc{create: func(context.Context, int64, string, int64) (*domain.Message, error) {
		return nil, errors.New("disk on fire")
	}}
	r := newMessageRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/messages",
		bytes.NewBufferString(`{"posted_by":1,"message_text":"x","time_posted_epoch":0}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("json: %v", err)
	}
	if er.Code != ErrCodeCreateFailed {
		t.Fatalf("expected code %q, got %q", ErrCodeCreateFailed, er.Code)
	}
}

func TestListMessages_ReturnsArray(t *testing.T) {
	svc := stubMsgSvc{listAll: func(context.Context) ([]domain.Message, error) {
		return []domain.Message{
			{MessageID: 1, PostedBy: 1, MessageText: "a"},
			{MessageID: 2, PostedBy: 1, MessageText: "b"},
		}, nil
	}}
	r := newMessageRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/messages", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []domain.Message
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(got) != 2 || got[0].MessageID != 1 || got[1].MessageID != 2 {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestGetMessage_MissingYieldsEmpty200(t *testing.T) {
	svc := stubMsgSvc{get: func(context.Context, int64) (*domain.Message, error) {
		return nil, services.ErrMessageNotFound
	}}
	r := newMessageRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/messages/99", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", w.Body.String())
	}
}

func TestGetMessage_BadID400(t *testing.T) {
	called := false
	svc := stubMsgSvc{get: func(context.Context, int64) (*domain.Message, error) {
		called = true
		return nil, nil
	}}
	r := newMessageRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/messages/abc", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if called {
		t.Fatalf("service should not be called for a non-numeric id")
	}
}

func TestDeleteMessage_ReturnsDeletedRow(t *testing.T) {
	svc := stubMsgSvc{delete: func(ctx context.Context, id int64) (*domain.Message, error) {
		return &domain.Message{MessageID: id, PostedBy: 1, MessageText: "bye", TimePostedEpoch: 5}, nil
	}}
	r := newMessageRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/messages/3", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got domain.Message
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got.MessageID != 3 || got.MessageText != "bye" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestDeleteMessage_MissingYieldsEmpty200(t *testing.T) {
	svc := stubMsgSvc{delete: func(context.Context, int64) (*domain.Message, error) {
		return nil, services.ErrMessageNotFound
	}}
	r := newMessageRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/messages/99", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", w.Body.String())
	}
}

func TestUpdateMessage_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"empty_text", services.ErrEmptyMessage, http.StatusBadRequest},
		{"too_long", services.ErrMessageTooLong, http.StatusBadRequest},
		{"unknown_id", services.ErrMessageNotFound, http.StatusBadRequest},
		{"storage", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			svc := stubMsgSvc{edit: func(context.Context, int64, string) (*domain.Message, error) {
				return nil, tc.err
			}}
			r := newMessageRouter(t, svc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPatch, "/messages/1",
				bytes.NewBufferString(`{"message_text":"anything"}`))
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("status=%d, want %d. body=%s", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

func TestUpdateMessage_SuccessReturnsFullRow(t *testing.T) {
	svc := stubMsgSvc{edit: func(ctx context.Context, id int64, text string) (*domain.Message, error) {
		return &domain.Message{MessageID: id, PostedBy: 2, MessageText: text, TimePostedEpoch: 42}, nil
	}}
	r := newMessageRouter(t, svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/messages/5",
		bytes.NewBufferString(`{"message_text":"new text"}`))
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var got domain.Message
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got.MessageID != 5 || got.PostedBy != 2 || got.MessageText != "new text" || got.TimePostedEpoch != 42 {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestListAccountMessages_FiltersByAccount(t *testing.T) {
	svc := stubMsgSvc{listByAccount: func(ctx context.Context, accountID int64) ([]domain.Message, error) {
		if accountID != 2 {
			t.Fatalf("expected account 2, got %d", accountID)
		}
		return []domain.Message{{MessageID: 4, PostedBy: 2, MessageText: "only mine"}}, nil
	}}
	r := newMessageRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/accounts/2/messages", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got []domain.Message
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(got) != 1 || got[0].PostedBy != 2 {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestListAccountMessages_EmptyList(t *testing.T) {
	svc := stubMsgSvc{listByAccount: func(context.Context, int64) ([]domain.Message, error) {
		return []domain.Message{}, nil
	}}
	r := newMessageRouter(t, svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/accounts/99/messages", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != "[]" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}
