// Account HTTP handlers.
//
// This file exposes REST endpoints for account resources:
//   - POST /register   (create an account)
//   - POST /login      (verify credentials)
//
// Handlers are transport-thin: they decode input, call application services,
// and translate service errors into HTTP responses.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avoulgari/go-social-backend/internal/domain"
	"github.com/avoulgari/go-social-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AccountService defines account lifecycle operations consumed by HTTP
// handlers. Implementations should be safe for concurrent use and must honor
// the provided context for cancellation and timeouts.
type AccountService interface {
	// Register creates a new account from the candidate credentials.
	Register(ctx context.Context, username, password string) (*domain.Account, error)
	// Login returns the stored account matching the credentials exactly.
	Login(ctx context.Context, username, password string) (*domain.Account, error)
}

// MessageService defines message operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type MessageService interface {
	// Create stores a new message after validating text and author.
	Create(ctx context.Context, postedBy int64, text string, epoch int64) (*domain.Message, error)
	// ListAll returns every stored message in insertion order.
	ListAll(ctx context.Context) ([]domain.Message, error)
	// Get returns a message by ID.
	Get(ctx context.Context, id int64) (*domain.Message, error)
	// Delete removes a message by ID and returns the pre-delete row.
	Delete(ctx context.Context, id int64) (*domain.Message, error)
	// Edit replaces a message's text, preserving author and timestamp.
	Edit(ctx context.Context, id int64, text string) (*domain.Message, error)
	// ListByAccount returns all messages posted by one account.
	ListByAccount(ctx context.Context, accountID int64) ([]domain.Message, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for accounts and messages. It depends on
// abstract service interfaces to keep transport concerns separate from
// business logic.
type Handlers struct {
	acctSvc AccountService
	msgSvc  MessageService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(acctSvc AccountService, msgSvc MessageService) *Handlers {
	return &Handlers{acctSvc: acctSvc, msgSvc: msgSvc}
}

//
// DTOs
//

// CredentialsRequest is the JSON payload for registration and login:
// an account without its generated id.
type CredentialsRequest struct {
	// Username is the requested login name.
	Username string `json:"username" example:"bob"`
	// Password is the plaintext credential.
	Password string `json:"password" example:"secret"`
}

//
// Handlers
//

// Register godoc
// @ID          register
// @Summary     Register a new account
// @Description Creates an account from the supplied credentials and returns it with its generated id.
// @Tags        Accounts
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CredentialsRequest  true  "Candidate account"
//
// @Success     200  {object}  domain.Account
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failure"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /register [post]
func (h *Handlers) Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	a, err := h.acctSvc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch err {
		case services.ErrUsernameRequired, services.ErrPasswordTooShort, services.ErrUsernameTaken:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, a)
}

// Login godoc
// @ID          login
// @Summary     Verify login credentials
// @Description Returns the stored account (including id) when username and password match exactly.
// @Description No session or token is issued; this is a one-shot credential check.
// @Tags        Accounts
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CredentialsRequest  true  "Credentials"
//
// @Success     200  {object}  domain.Account
// @Failure     401  {object}  handlers.ErrorResponse  "Invalid credentials"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid JSON body")
		return
	}

	a, err := h.acctSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch err {
		case services.ErrInvalidCredentials:
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, a)
}
