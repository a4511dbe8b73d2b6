// Message HTTP handlers.
//
// This file exposes REST endpoints for message resources:
//   - POST   /messages                        (create)
//   - GET    /messages                        (list all)
//   - GET    /messages/{message_id}           (fetch one)
//   - DELETE /messages/{message_id}           (delete, returning the row)
//   - PATCH  /messages/{message_id}           (replace text)
//   - GET    /accounts/{account_id}/messages  (list by author)
//
// Handlers are transport-thin: they decode input, call application services,
// and translate service errors into HTTP responses. A missing message on the
// read and delete endpoints is reported as 200 with an empty body, which is
// the documented public contract of this API.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avoulgari/go-social-backend/internal/services"
)

//
// DTOs
//

// CreateMessageRequest is the JSON payload for posting a message:
// a message without its generated id.
type CreateMessageRequest struct {
	// PostedBy is the authoring account id; it must reference an existing account.
	PostedBy int64 `json:"posted_by" example:"1"`
	// MessageText is the post body (1–255 characters).
	MessageText string `json:"message_text" example:"hi"`
	// TimePostedEpoch is the client-supplied posting timestamp.
	TimePostedEpoch int64 `json:"time_posted_epoch" example:"1000"`
}

// UpdateMessageRequest is the JSON payload for editing a message's text.
type UpdateMessageRequest struct {
	// MessageText is the replacement body (1–255 characters).
	MessageText string `json:"message_text" example:"updated text"`
}

//
// Helpers
//

// pathID parses an integer path parameter. The second return is false when
// the value is not a valid integer.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

//
// Handlers
//

// CreateMessage godoc
// @ID          createMessage
// @Summary     Post a new message
// @Description Stores a message after validating its text (1–255 chars) and that the author exists.
// @Tags        Messages
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateMessageRequest  true  "Candidate message"
//
// @Success     200  {object}  domain.Message
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failure"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /messages [post]
func (h *Handlers) CreateMessage(c *gin.Context) {
	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	m, err := h.msgSvc.Create(c.Request.Context(), req.PostedBy, req.MessageText, req.TimePostedEpoch)
	if err != nil {
		switch err {
		case services.ErrEmptyMessage, services.ErrMessageTooLong, services.ErrUnknownAuthor:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, m)
}

// ListMessages godoc
// @ID          listMessages
// @Summary     List all messages
// @Description Returns every stored message in insertion order.
// @Tags        Messages
// @Produce     json
//
// @Success     200  {array}   domain.Message
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /messages [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	msgs, err := h.msgSvc.ListAll(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, msgs)
}

// GetMessage godoc
// @ID          getMessage
// @Summary     Fetch a message by id
// @Description Returns the message, or 200 with an empty body when no message has that id.
// @Tags        Messages
// @Produce     json
//
// @Param       message_id  path  int  true  "Message ID"
//
// @Success     200  {object}  domain.Message
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /messages/{message_id} [get]
func (h *Handlers) GetMessage(c *gin.Context) {
	id, okID := pathID(c, "message_id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message id must be an integer")
		return
	}

	m, err := h.msgSvc.Get(c.Request.Context(), id)
	if err != nil {
		switch err {
		case services.ErrMessageNotFound:
			emptyOK(c)
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, m)
}

// DeleteMessage godoc
// @ID          deleteMessage
// @Summary     Delete a message by id
// @Description Removes the message and returns it as it existed before deletion.
// @Description Returns 200 with an empty body when no message has that id.
// @Tags        Messages
// @Produce     json
//
// @Param       message_id  path  int  true  "Message ID"
//
// @Success     200  {object}  domain.Message
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /messages/{message_id} [delete]
func (h *Handlers) DeleteMessage(c *gin.Context) {
	id, okID := pathID(c, "message_id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message id must be an integer")
		return
	}

	m, err := h.msgSvc.Delete(c.Request.Context(), id)
	if err != nil {
		switch err {
		case services.ErrMessageNotFound:
			emptyOK(c)
		default:
			fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, m)
}

// UpdateMessage godoc
// @ID          updateMessage
// @Summary     Edit a message's text
// @Description Replaces the text of an existing message, preserving its author and timestamp.
// @Tags        Messages
// @Accept      json
// @Produce     json
//
// @Param       message_id  path  int                             true  "Message ID"
// @Param       body        body  handlers.UpdateMessageRequest  true  "Replacement text"
//
// @Success     200  {object}  domain.Message
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failure or unknown id"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /messages/{message_id} [patch]
func (h *Handlers) UpdateMessage(c *gin.Context) {
	id, okID := pathID(c, "message_id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message id must be an integer")
		return
	}

	var req UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	m, err := h.msgSvc.Edit(c.Request.Context(), id, req.MessageText)
	if err != nil {
		switch err {
		// The edit contract folds "unknown id" into the same 400 as the
		// text validation failures.
		case services.ErrEmptyMessage, services.ErrMessageTooLong, services.ErrMessageNotFound:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeUpdateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, m)
}

// ListAccountMessages godoc
// @ID          listAccountMessages
// @Summary     List messages posted by an account
// @Description Returns all messages authored by the given account in insertion order.
// @Description An unknown account yields an empty list.
// @Tags        Messages
// @Produce     json
//
// @Param       account_id  path  int  true  "Account ID"
//
// @Success     200  {array}   domain.Message
// @Failure     400  {object}  handlers.ErrorResponse  "Bad id"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /accounts/{account_id}/messages [get]
func (h *Handlers) ListAccountMessages(c *gin.Context) {
	id, okID := pathID(c, "account_id")
	if !okID {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "account id must be an integer")
		return
	}

	msgs, err := h.msgSvc.ListByAccount(c.Request.Context(), id)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, msgs)
}
