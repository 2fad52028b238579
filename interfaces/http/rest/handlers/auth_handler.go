package handlers

import (
	"net/http"
	"time"

	"advicehub-backend/application/ports"
	"advicehub-backend/domain/events"
	"advicehub-backend/domain/user"
	"advicehub-backend/interfaces/http/rest/middleware"
	"advicehub-backend/pkg/auth"
	"advicehub-backend/pkg/common"
	"advicehub-backend/pkg/errors"
	"advicehub-backend/pkg/utils"

	"go.uber.org/zap"
)

// AuthHandler handles registration, login and session introspection
type AuthHandler struct {
	users        ports.UserRepository
	eventBus     ports.EventPublisher
	generator    *auth.JWTGenerator
	errs         *errors.Handler
	logger       *zap.Logger
	cookieSecure bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	users ports.UserRepository,
	eventBus ports.EventPublisher,
	generator *auth.JWTGenerator,
	errs *errors.Handler,
	logger *zap.Logger,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		users:        users,
		eventBus:     eventBus,
		generator:    generator,
		errs:         errs,
		logger:       logger,
		cookieSecure: cookieSecure,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// userResponse is the wire shape of an account
type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func newUserResponse(u *user.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		h.errs.Respond(w, r, errors.NewValidationError("Invalid request body"))
		return
	}
	if violations := utils.ValidateStruct(req); len(violations) > 0 {
		h.errs.Respond(w, r, errors.NewValidationError("Validation error", violations...))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.errs.Respond(w, r, errors.NewInternalError("failed to process credentials"))
		return
	}

	account, err := user.New(req.Username, req.Email, hash)
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}
	if err := h.users.Create(r.Context(), account); err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	if err := h.eventBus.Publish(r.Context(), events.NewUserRegistered(account.ID, account.Email)); err != nil {
		h.logger.Warn("Failed to publish registration event",
			zap.Error(err),
			zap.String("userID", account.ID),
		)
	}

	h.respondSession(w, r, account, http.StatusCreated)
}

// Login handles POST /auth/login. Unknown email and wrong password are
// indistinguishable to the caller.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		h.errs.Respond(w, r, errors.NewValidationError("Invalid request body"))
		return
	}
	if violations := utils.ValidateStruct(req); len(violations) > 0 {
		h.errs.Respond(w, r, errors.NewValidationError("Validation error", violations...))
		return
	}

	account, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.IsNotFound(err) {
			h.errs.Respond(w, r, errors.NewUnauthorizedError("invalid email or password"))
			return
		}
		h.errs.Respond(w, r, err)
		return
	}
	if !auth.ComparePassword(req.Password, account.PasswordHash) {
		h.errs.Respond(w, r, errors.NewUnauthorizedError("invalid email or password"))
		return
	}

	h.respondSession(w, r, account, http.StatusOK)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	common.RespondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Respond(w, r, errors.NewUnauthorizedError("authentication required"))
		return
	}

	account, err := h.users.GetByID(r.Context(), userCtx.UserID)
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, newUserResponse(account))
}

// respondSession issues a token, sets the session cookie and writes the
// session body. The token rides in both places so browser clients can use
// the cookie while API clients read the body.
func (h *AuthHandler) respondSession(w http.ResponseWriter, r *http.Request, account *user.User, status int) {
	token, err := h.generator.GenerateToken(account.ID, account.Email)
	if err != nil {
		h.logger.Error("Failed to issue token",
			zap.Error(err),
			zap.String("userID", account.ID),
		)
		h.errs.Respond(w, r, errors.NewInternalError("failed to issue token"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.generator.Expiry() / time.Second),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	common.RespondJSON(w, status, sessionResponse{
		Token: token,
		User:  newUserResponse(account),
	})
}
