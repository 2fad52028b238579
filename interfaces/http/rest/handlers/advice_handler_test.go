package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"advicehub-backend/application/commands"
	"advicehub-backend/application/commands/bus"
	commands_handlers "advicehub-backend/application/commands/handlers"
	"advicehub-backend/application/queries"
	querybus "advicehub-backend/application/queries/bus"
	queries_handlers "advicehub-backend/application/queries/handlers"
	"advicehub-backend/domain/advice"
	"advicehub-backend/infrastructure/messaging/noop"
	"advicehub-backend/infrastructure/persistence/memory"
	"advicehub-backend/pkg/auth"
	"advicehub-backend/pkg/errors"
	"advicehub-backend/pkg/observability"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// envelope mirrors the response wire format for assertions
type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Action     string          `json:"action"`
	Pagination *struct {
		Total int `json:"total"`
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Pages int `json:"pages"`
	} `json:"pagination"`
	Error   string   `json:"error"`
	Details []string `json:"details"`
}

type adviceFixture struct {
	router http.Handler
	repo   *memory.AdviceRepository
}

func newAdviceFixture(t *testing.T) *adviceFixture {
	t.Helper()

	repo := memory.NewAdviceRepository()
	publisher := noop.NewPublisher()
	metrics := observability.NewMetrics(nil, "Test", zap.NewNop(), false)
	logger := zap.NewNop()

	commandBus := bus.NewCommandBus()
	require.NoError(t, commandBus.Register(commands.CreateAdviceCommand{},
		commands_handlers.NewCreateAdviceHandler(repo, publisher, metrics, logger)))
	require.NoError(t, commandBus.Register(commands.UpdateAdviceCommand{},
		commands_handlers.NewUpdateAdviceHandler(repo, publisher, logger)))
	require.NoError(t, commandBus.Register(commands.DeleteAdviceCommand{},
		commands_handlers.NewDeleteAdviceHandler(repo, publisher, logger)))

	queryBus := querybus.NewQueryBus()
	require.NoError(t, queryBus.Register(queries.ListAdvicesQuery{},
		queries_handlers.NewListAdvicesHandler(repo, logger)))
	require.NoError(t, queryBus.Register(queries.GetAdviceQuery{},
		queries_handlers.NewGetAdviceHandler(repo, logger)))

	toggler := commands_handlers.NewToggleLikeHandler(repo, publisher, metrics, logger)
	handler := NewAdviceHandler(commandBus, queryBus, toggler, errors.NewHandler(logger, false), logger)

	router := chi.NewRouter()
	router.Get("/advices", handler.ListAdvices)
	router.Get("/advices/{adviceID}", handler.GetAdvice)
	router.Post("/advices", handler.CreateAdvice)
	router.Patch("/advices/{adviceID}", handler.UpdateAdvice)
	router.Delete("/advices/{adviceID}", handler.DeleteAdvice)
	router.Post("/advices/likes/{adviceID}", handler.ToggleLike)
	router.Get("/users/me/advices", handler.ListMyAdvices)

	return &adviceFixture{router: router, repo: repo}
}

// do executes a request, optionally authenticated as userID
func (f *adviceFixture) do(t *testing.T, method, target, userID string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if userID != "" {
		ctx := auth.SetUserInContext(req.Context(), &auth.UserContext{
			UserID: userID,
			Email:  userID + "@example.com",
		})
		req = req.WithContext(ctx)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func (f *adviceFixture) seed(t *testing.T, authorID, title string) *advice.Advice {
	t.Helper()
	record, err := advice.New(title, "Content long enough to satisfy the minimum length rule.", authorID, []string{"career"}, nil)
	require.NoError(t, err)
	require.NoError(t, f.repo.Create(context.Background(), record))
	return record
}

func TestCreateAdvice(t *testing.T) {
	f := newAdviceFixture(t)

	rec, env := f.do(t, "POST", "/advices", "user-1", map[string]interface{}{
		"title":      "Review your week on Fridays",
		"content":    "Fifteen minutes of looking back saves hours of repeating mistakes.",
		"categories": []string{"productivity", "career"},
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	var created AdviceResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "user-1", created.Author)
	assert.Equal(t, 0, created.Likes)
	assert.Empty(t, created.LikedBy)
}

func TestCreateAdvice_Unauthenticated(t *testing.T) {
	f := newAdviceFixture(t)

	rec, env := f.do(t, "POST", "/advices", "", map[string]interface{}{
		"title":      "Review your week on Fridays",
		"content":    "Fifteen minutes of looking back saves hours of repeating mistakes.",
		"categories": []string{"productivity"},
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
}

func TestCreateAdvice_AggregatedValidation(t *testing.T) {
	f := newAdviceFixture(t)

	rec, env := f.do(t, "POST", "/advices", "user-1", map[string]interface{}{
		"title":      "ab",
		"content":    "too short",
		"categories": []string{"cooking"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Len(t, env.Details, 3)
}

func TestGetAdvice(t *testing.T) {
	f := newAdviceFixture(t)
	record := f.seed(t, "author-1", "Seeded advice")

	rec, env := f.do(t, "GET", "/advices/"+record.ID, "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var got AdviceResponse
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, "Seeded advice", got.Title)
}

func TestGetAdvice_MalformedID(t *testing.T) {
	f := newAdviceFixture(t)

	rec, env := f.do(t, "GET", "/advices/not-a-uuid", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
}

func TestGetAdvice_NotFound(t *testing.T) {
	f := newAdviceFixture(t)

	rec, _ := f.do(t, "GET", "/advices/70b1c200-05a0-4f4f-9be3-7d0017a52c39", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAdvices_EmptyIsOK(t *testing.T) {
	f := newAdviceFixture(t)

	rec, env := f.do(t, "GET", "/advices", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "[]", string(env.Data))
	assert.Nil(t, env.Pagination)
}

func TestListAdvices_UnknownParamRejected(t *testing.T) {
	f := newAdviceFixture(t)

	rec, env := f.do(t, "GET", "/advices?search=tips", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, env.Details, 1)
	assert.Contains(t, env.Details[0], "search")
}

func TestListAdvices_InvalidPageRejected(t *testing.T) {
	f := newAdviceFixture(t)

	rec, env := f.do(t, "GET", "/advices?page=abc", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, env.Details, 1)
	assert.Contains(t, env.Details[0], "page must be a positive integer")
}

func TestListAdvices_PaginationMetadata(t *testing.T) {
	f := newAdviceFixture(t)
	for _, title := range []string{"One tip", "Two tips", "Three tips"} {
		f.seed(t, "author-1", title)
	}

	rec, env := f.do(t, "GET", "/advices?page=1&limit=2", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 3, env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.Pages)

	var listing []AdviceResponse
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	assert.Len(t, listing, 2)
}

func TestListMyAdvices_ScopedToRequester(t *testing.T) {
	f := newAdviceFixture(t)
	f.seed(t, "user-1", "Mine")
	f.seed(t, "user-2", "Theirs")

	rec, env := f.do(t, "GET", "/users/me/advices", "user-1", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var listing []AdviceResponse
	require.NoError(t, json.Unmarshal(env.Data, &listing))
	require.Len(t, listing, 1)
	assert.Equal(t, "Mine", listing[0].Title)
}

func TestUpdateAdvice_AuthorOnly(t *testing.T) {
	f := newAdviceFixture(t)
	record := f.seed(t, "user-1", "Original title")
	body := map[string]interface{}{"title": "Renamed title"}

	rec, _ := f.do(t, "PATCH", "/advices/"+record.ID, "user-2", body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := f.do(t, "PATCH", "/advices/"+record.ID, "user-1", body)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated AdviceResponse
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Renamed title", updated.Title)
}

func TestDeleteAdvice(t *testing.T) {
	f := newAdviceFixture(t)
	record := f.seed(t, "user-1", "Disposable")

	rec, _ := f.do(t, "DELETE", "/advices/"+record.ID, "user-2", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = f.do(t, "DELETE", "/advices/"+record.ID, "user-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, "GET", "/advices/"+record.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestToggleLike_LikeThenUnlike(t *testing.T) {
	f := newAdviceFixture(t)
	record := f.seed(t, "author-1", "Likeable")

	rec, env := f.do(t, "POST", "/advices/likes/"+record.ID, "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "liked", env.Action)

	var liked AdviceResponse
	require.NoError(t, json.Unmarshal(env.Data, &liked))
	assert.Equal(t, 1, liked.Likes)
	assert.Equal(t, []string{"user-1"}, liked.LikedBy)

	rec, env = f.do(t, "POST", "/advices/likes/"+record.ID, "user-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unliked", env.Action)

	var unliked AdviceResponse
	require.NoError(t, json.Unmarshal(env.Data, &unliked))
	assert.Equal(t, 0, unliked.Likes)
	assert.Empty(t, unliked.LikedBy)
}

func TestToggleLike_ErrorTaxonomy(t *testing.T) {
	f := newAdviceFixture(t)
	record := f.seed(t, "author-1", "Likeable")

	// unauthenticated before anything else
	rec, _ := f.do(t, "POST", "/advices/likes/"+record.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// malformed id before store access
	rec, _ = f.do(t, "POST", "/advices/likes/not-a-uuid", "user-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// well-formed but absent
	rec, _ = f.do(t, "POST", "/advices/likes/70b1c200-05a0-4f4f-9be3-7d0017a52c39", "user-1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// none of the failures touched the seeded record
	current, err := f.repo.GetByID(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Likes)
	assert.Empty(t, current.LikedBy)
}
