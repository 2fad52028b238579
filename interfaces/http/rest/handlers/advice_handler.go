package handlers

import (
	"net/http"
	"time"

	"advicehub-backend/application/commands"
	"advicehub-backend/application/commands/bus"
	commands_handlers "advicehub-backend/application/commands/handlers"
	"advicehub-backend/application/queries"
	querybus "advicehub-backend/application/queries/bus"
	"advicehub-backend/domain/advice"
	"advicehub-backend/pkg/auth"
	"advicehub-backend/pkg/common"
	"advicehub-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Sort fields accepted by the public listing and the own-advice listing
var (
	publicSortFields = []advice.SortField{advice.SortByCreatedAt, advice.SortByLikes, advice.SortByTitle}
	ownSortFields    = []advice.SortField{advice.SortByCreatedAt, advice.SortByLikes, advice.SortByTitle, advice.SortByPublishedDate}
)

// AdviceHandler handles advice HTTP requests
type AdviceHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	toggler    *commands_handlers.ToggleLikeHandler
	errs       *errors.Handler
	logger     *zap.Logger
}

// NewAdviceHandler creates a new advice handler
func NewAdviceHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	toggler *commands_handlers.ToggleLikeHandler,
	errs *errors.Handler,
	logger *zap.Logger,
) *AdviceHandler {
	return &AdviceHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		toggler:    toggler,
		errs:       errs,
		logger:     logger,
	}
}

// createAdviceRequest is the request body for creating advice
type createAdviceRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Categories    []string `json:"categories"`
	PublishedDate *string  `json:"publishedDate,omitempty"`
}

// updateAdviceRequest is the request body for editing advice. Absent
// fields stay untouched.
type updateAdviceRequest struct {
	Title      *string  `json:"title,omitempty"`
	Content    *string  `json:"content,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// CreateAdvice handles POST /advices
func (h *AdviceHandler) CreateAdvice(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Respond(w, r, errors.NewUnauthorizedError("authentication required"))
		return
	}

	var req createAdviceRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		h.errs.Respond(w, r, errors.NewValidationError("Invalid request body"))
		return
	}

	var publishedDate *time.Time
	if req.PublishedDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.PublishedDate)
		if err != nil {
			h.errs.Respond(w, r, errors.NewValidationError("Validation error", "publishedDate must be an RFC 3339 timestamp"))
			return
		}
		publishedDate = &parsed
	}

	// The ID is generated here so the created record can be read back
	// for the response after the command completes
	adviceID := uuid.New().String()
	cmd := commands.CreateAdviceCommand{
		AdviceID:      adviceID,
		AuthorID:      user.UserID,
		Title:         req.Title,
		Content:       req.Content,
		Categories:    req.Categories,
		PublishedDate: publishedDate,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	record, err := h.fetchAdvice(r, adviceID)
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusCreated, NewAdviceResponse(record))
}

// GetAdvice handles GET /advices/{adviceID}
func (h *AdviceHandler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	record, err := h.fetchAdvice(r, chi.URLParam(r, "adviceID"))
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, NewAdviceResponse(record))
}

// ListAdvices handles GET /advices
func (h *AdviceHandler) ListAdvices(w http.ResponseWriter, r *http.Request) {
	params, err := parseListingParams(r, publicSortFields)
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}
	h.respondListing(w, r, queries.ListAdvicesQuery{
		Categories: params.Categories,
		Page:       params.Page,
		Limit:      params.Limit,
		SortBy:     params.SortBy,
		Order:      params.Order,
	})
}

// ListMyAdvices handles GET /users/me/advices
func (h *AdviceHandler) ListMyAdvices(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Respond(w, r, errors.NewUnauthorizedError("authentication required"))
		return
	}

	params, err := parseListingParams(r, ownSortFields)
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}
	h.respondListing(w, r, queries.ListAdvicesQuery{
		Categories: params.Categories,
		AuthorID:   user.UserID,
		Page:       params.Page,
		Limit:      params.Limit,
		SortBy:     params.SortBy,
		Order:      params.Order,
	})
}

// UpdateAdvice handles PATCH /advices/{adviceID}
func (h *AdviceHandler) UpdateAdvice(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Respond(w, r, errors.NewUnauthorizedError("authentication required"))
		return
	}

	adviceID := chi.URLParam(r, "adviceID")

	var req updateAdviceRequest
	if err := common.ParseJSONBody(w, r, &req, maxBodyBytes); err != nil {
		h.errs.Respond(w, r, errors.NewValidationError("Invalid request body"))
		return
	}

	cmd := commands.UpdateAdviceCommand{
		AdviceID:    adviceID,
		RequesterID: user.UserID,
		Title:       req.Title,
		Content:     req.Content,
		Categories:  req.Categories,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	record, err := h.fetchAdvice(r, adviceID)
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, NewAdviceResponse(record))
}

// DeleteAdvice handles DELETE /advices/{adviceID}
func (h *AdviceHandler) DeleteAdvice(w http.ResponseWriter, r *http.Request) {
	user, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errs.Respond(w, r, errors.NewUnauthorizedError("authentication required"))
		return
	}

	adviceID := chi.URLParam(r, "adviceID")
	cmd := commands.DeleteAdviceCommand{
		AdviceID:    adviceID,
		RequesterID: user.UserID,
	}
	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"id": adviceID})
}

// ToggleLike handles POST /advices/likes/{adviceID}. The toggle handler
// is invoked directly because the response carries both the updated
// record and the action that was applied.
func (h *AdviceHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	var userID string
	if user, err := auth.GetUserFromContext(r.Context()); err == nil {
		userID = user.UserID
	}

	record, action, err := h.toggler.Handle(r.Context(), commands.ToggleLikeCommand{
		AdviceID: chi.URLParam(r, "adviceID"),
		UserID:   userID,
	})
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}

	common.RespondAction(w, http.StatusOK, NewAdviceResponse(record), string(action))
}

func (h *AdviceHandler) fetchAdvice(r *http.Request, adviceID string) (*advice.Advice, error) {
	result, err := h.queryBus.Ask(r.Context(), queries.GetAdviceQuery{AdviceID: adviceID})
	if err != nil {
		return nil, err
	}
	record, ok := result.(*advice.Advice)
	if !ok {
		return nil, errors.NewInternalError("unexpected query result")
	}
	return record, nil
}

func (h *AdviceHandler) respondListing(w http.ResponseWriter, r *http.Request, query queries.ListAdvicesQuery) {
	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errs.Respond(w, r, err)
		return
	}
	listing, ok := result.(*queries.ListAdvicesResult)
	if !ok {
		h.errs.Respond(w, r, errors.NewInternalError("unexpected query result"))
		return
	}

	common.RespondList(w, http.StatusOK, NewAdviceListResponse(listing.Advices), listing.Pagination)
}
