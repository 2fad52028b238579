package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"advicehub-backend/infrastructure/messaging/noop"
	"advicehub-backend/infrastructure/persistence/memory"
	"advicehub-backend/pkg/auth"
	"advicehub-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type authFixture struct {
	handler *AuthHandler
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	generator, err := auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SecretKey:  "test-secret",
		Issuer:     "advicehub",
		ExpiryTime: time.Hour,
	})
	require.NoError(t, err)

	logger := zap.NewNop()
	handler := NewAuthHandler(memory.NewUserRepository(), noop.NewPublisher(), generator,
		errors.NewHandler(logger, false), logger, false)
	return &authFixture{handler: handler}
}

func (f *authFixture) post(t *testing.T, fn http.HandlerFunc, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	fn(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func registerBody(email string) map[string]string {
	return map[string]string{
		"username": "someone",
		"email":    email,
		"password": "hunter22",
	}
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	f := newAuthFixture(t)

	rec, env := f.post(t, f.handler.Register, registerBody("new@example.com"))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)

	var session sessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "new@example.com", session.User.Email)

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, session.Token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int(time.Hour/time.Second), cookie.MaxAge)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)

	rec, _ := f.post(t, f.handler.Register, registerBody("dup@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := f.post(t, f.handler.Register, registerBody("Dup@Example.com"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)
}

func TestRegister_ValidationErrors(t *testing.T) {
	f := newAuthFixture(t)

	rec, env := f.post(t, f.handler.Register, map[string]string{
		"username": "ab",
		"email":    "not-an-email",
		"password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, env.Details, 3)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	rec, _ := f.post(t, f.handler.Register, registerBody("login@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := f.post(t, f.handler.Login, map[string]string{
		"email":    "login@example.com",
		"password": "hunter22",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var session sessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.NotEmpty(t, session.Token)
	require.NotNil(t, sessionCookie(rec))
}

func TestLogin_BadCredentialsIndistinguishable(t *testing.T) {
	f := newAuthFixture(t)
	rec, _ := f.post(t, f.handler.Register, registerBody("known@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, wrongPassword := f.post(t, f.handler.Login, map[string]string{
		"email":    "known@example.com",
		"password": "not-the-password",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, unknownEmail := f.post(t, f.handler.Login, map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever1",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Equal(t, wrongPassword.Error, unknownEmail.Error)
}

func TestLogout_ClearsCookie(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest("POST", "/", nil)
	rec := httptest.NewRecorder()
	f.handler.Logout(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestMe(t *testing.T) {
	f := newAuthFixture(t)
	rec, env := f.post(t, f.handler.Register, registerBody("me@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var session sessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &session))

	req := httptest.NewRequest("GET", "/", nil)
	req = req.WithContext(auth.SetUserInContext(req.Context(), &auth.UserContext{
		UserID: session.User.ID,
		Email:  session.User.Email,
	}))
	rec = httptest.NewRecorder()
	f.handler.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var me envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	var account userResponse
	require.NoError(t, json.Unmarshal(me.Data, &account))
	assert.Equal(t, "me@example.com", account.Email)
}

func TestMe_Unauthenticated(t *testing.T) {
	f := newAuthFixture(t)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	f.handler.Me(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
