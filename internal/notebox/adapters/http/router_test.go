package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "notebox/internal/notebox/adapters/http"
	"notebox/internal/notebox/adapters/http/auth"
	"notebox/internal/notebox/adapters/http/dto"
	"notebox/internal/notebox/adapters/revocation"
	adaptersvc "notebox/internal/notebox/adapters/services"
	"notebox/internal/notebox/adapters/storage"
	"notebox/internal/notebox/app"
	"notebox/internal/notebox/domain/entities"
	"notebox/internal/notebox/ports/api"
)

const sessionCookie = "authToken"

type panicNoteUseCase struct {
	api.NoteUseCase
}

func (panicNoteUseCase) ListNotes(context.Context, string, entities.NoteFilter) ([]entities.Note, error) {
	panic("boom")
}

type server struct {
	app *fiber.App
}

func newServer(t *testing.T, wrap func(api.NoteUseCase) api.NoteUseCase) *server {
	t.Helper()

	gw := storage.NewGateway(storage.NewMemoryStore(nil))
	tokens := adaptersvc.NewJWT("test-secret", time.Hour, revocation.NewMemoryStore(nil))
	authUC := app.NewAuthUseCase(gw, adaptersvc.NewBcrypt(4), tokens)
	var noteUC api.NoteUseCase = app.NewNoteUseCase(gw, tokens, app.NewIDGenerator(nil))
	if wrap != nil {
		noteUC = wrap(noteUC)
	}

	fiberApp := fiber.New()
	httpadapter.SetupRouter(fiberApp, authUC, noteUC, auth.CookieConfig{Secure: false, MaxAge: time.Hour})
	return &server{app: fiberApp}
}

func (s *server) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			reader = strings.NewReader(string(data))
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func sessionFrom(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookie {
			return c
		}
	}
	require.FailNow(t, "session cookie not set")
	return nil
}

func (s *server) signup(t *testing.T, email string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{"email": email, "password": "p"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return sessionFrom(t, resp).Value
}

func TestScenario(t *testing.T) {
	s := newServer(t, nil)

	resp := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{"email": "a@x.com", "password": "p"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, dto.SuccessResponse{Success: true}, decode[dto.SuccessResponse](t, resp))
	cookie := sessionFrom(t, resp)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.False(t, cookie.Secure)
	token := cookie.Value

	resp = s.do(t, http.MethodGet, "/api/notes", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[dto.ListNotesResponse](t, resp).Notes)

	resp = s.do(t, http.MethodPost, "/api/notes", token, map[string]string{"title": "T", "content": "C", "category": "Work"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	created := decode[dto.NoteMessageResponse](t, resp)
	assert.Equal(t, "Note added successfully", created.Message)
	assert.NotZero(t, created.Note.ID, 10)
	assert.Equal(t, "T", created.Note.Title)

	resp = s.do(t, http.MethodGet, "/api/notes", token, nil)
	listed := decode[dto.ListNotesResponse](t, resp)
	require.Len(t, listed.Notes, 1)
	assert.Equal(t, created.Note, listed.Notes[0])

	path := "/api/notes/" + strconv.FormatInt(created.Note.ID, 10)
	resp = s.do(t, http.MethodPut, path, token, map[string]string{"title": "T2", "content": "C", "category": "Work"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.NoteMessageResponse](t, resp)
	assert.Equal(t, "Note updated successfully", updated.Message)
	assert.Equal(t, "T2", updated.Note.Title)

	resp = s.do(t, http.MethodGet, "/api/notes", token, nil)
	listed = decode[dto.ListNotesResponse](t, resp)
	require.Len(t, listed.Notes, 1)
	assert.Equal(t, "T2", listed.Notes[0].Title)

	resp = s.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Note deleted successfully", decode[dto.MessageResponse](t, resp).Message)

	resp = s.do(t, http.MethodGet, "/api/notes", token, nil)
	assert.Empty(t, decode[dto.ListNotesResponse](t, resp).Notes)

	resp = s.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cleared := sessionFrom(t, resp)
	assert.Empty(t, cleared.Value)
	assert.True(t, cleared.Expires.Before(time.Now()))

	// Клиент, сохранивший старую cookie, больше не авторизован.
	resp = s.do(t, http.MethodGet, "/api/notes", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthEndpoints(t *testing.T) {
	s := newServer(t, nil)
	s.signup(t, "a@x.com")

	t.Run("duplicate signup", func(t *testing.T) {
		resp := s.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{"email": "a@x.com", "password": "q"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "User already exists", decode[dto.ErrorResponse](t, resp).Error)
	})

	t.Run("signup with malformed body", func(t *testing.T) {
		resp := s.do(t, http.MethodPost, "/api/auth/signup", "", "{")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("login success", func(t *testing.T) {
		resp := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@x.com", "password": "p"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, dto.LoginResponse{Success: true, Message: "Login successful"}, decode[dto.LoginResponse](t, resp))
		assert.NotEmpty(t, sessionFrom(t, resp).Value)
	})

	t.Run("login with username field", func(t *testing.T) {
		s.signup(t, "bob")
		resp := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "bob", "password": "p"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		resp := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@x.com", "password": "x"})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, dto.LoginResponse{Success: false, Message: "Invalid credentials"}, decode[dto.LoginResponse](t, resp))
	})

	t.Run("login with malformed body", func(t *testing.T) {
		resp := s.do(t, http.MethodPost, "/api/auth/login", "", "not json")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("check", func(t *testing.T) {
		token := s.signup(t, "c@x.com")

		resp := s.do(t, http.MethodGet, "/api/auth/check", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, decode[dto.CheckResponse](t, resp).Authenticated)

		resp = s.do(t, http.MethodGet, "/api/auth/check", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		resp = s.do(t, http.MethodGet, "/api/auth/check", "forged", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid token", decode[dto.ErrorResponse](t, resp).Error)
	})

	t.Run("logout without session", func(t *testing.T) {
		resp := s.do(t, http.MethodPost, "/api/auth/logout", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, decode[dto.SuccessResponse](t, resp).Success)
	})
}

func TestNotesEndpoints(t *testing.T) {
	s := newServer(t, nil)
	alice := s.signup(t, "a@x.com")
	bob := s.signup(t, "b@x.com")

	resp := s.do(t, http.MethodPost, "/api/notes", alice, map[string]string{
		"title": "Talk", "content": "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "category": "Videos",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	video := decode[dto.NoteMessageResponse](t, resp).Note
	assert.Equal(t, "https://www.youtube.com/embed/dQw4w9WgXcQ", video.VideoEmbedURL)

	resp = s.do(t, http.MethodPost, "/api/notes", alice, map[string]string{"title": "Plan", "content": "q3", "category": "Work"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("invalid token", func(t *testing.T) {
		resp := s.do(t, http.MethodGet, "/api/notes", "forged", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid token", decode[dto.ErrorResponse](t, resp).Error)
	})

	t.Run("signed token without user", func(t *testing.T) {
		tokens := adaptersvc.NewJWT("test-secret", time.Hour, nil)
		stray, _, err := tokens.GenerateAccessToken(context.Background(), "ghost@x.com")
		require.NoError(t, err)

		resp := s.do(t, http.MethodPost, "/api/notes", stray, map[string]string{"title": "x"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid token", decode[dto.ErrorResponse](t, resp).Error)
	})

	t.Run("filter by category and query", func(t *testing.T) {
		resp := s.do(t, http.MethodGet, "/api/notes?category=Work", alice, nil)
		notes := decode[dto.ListNotesResponse](t, resp).Notes
		require.Len(t, notes, 1)
		assert.Equal(t, "Plan", notes[0].Title)

		resp = s.do(t, http.MethodGet, "/api/notes?q=TALK", alice, nil)
		notes = decode[dto.ListNotesResponse](t, resp).Notes
		require.Len(t, notes, 1)
		assert.Equal(t, "Talk", notes[0].Title)
	})

	t.Run("categories", func(t *testing.T) {
		resp := s.do(t, http.MethodGet, "/api/notes/categories", alice, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		categories := decode[dto.CategoriesResponse](t, resp).Categories
		require.NotEmpty(t, categories)
		assert.Equal(t, dto.CategoryCountResponse{Name: "All", Count: 2}, categories[0])
	})

	t.Run("other user cannot see or touch notes", func(t *testing.T) {
		resp := s.do(t, http.MethodGet, "/api/notes", bob, nil)
		assert.Empty(t, decode[dto.ListNotesResponse](t, resp).Notes)

		path := "/api/notes/" + strconv.FormatInt(video.ID, 10)
		resp = s.do(t, http.MethodPut, path, bob, map[string]string{"title": "x"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "Note not found", decode[dto.ErrorResponse](t, resp).Error)

		resp = s.do(t, http.MethodDelete, path, bob, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("non numeric id", func(t *testing.T) {
		resp := s.do(t, http.MethodDelete, "/api/notes/abc", alice, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("delete twice", func(t *testing.T) {
		path := "/api/notes/" + strconv.FormatInt(video.ID, 10)
		resp := s.do(t, http.MethodDelete, path, alice, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp = s.do(t, http.MethodDelete, path, alice, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("malformed body", func(t *testing.T) {
		resp := s.do(t, http.MethodPost, "/api/notes", alice, "{")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAccessGate(t *testing.T) {
	s := newServer(t, nil)
	token := s.signup(t, "a@x.com")

	tests := []struct {
		name         string
		path         string
		token        string
		wantStatus   int
		wantLocation string
	}{
		{name: "dashboard without cookie", path: "/dashboard", wantStatus: http.StatusFound, wantLocation: "/"},
		{name: "notes api without cookie", path: "/api/notes", wantStatus: http.StatusFound, wantLocation: "/"},
		{name: "unknown page without cookie", path: "/settings", wantStatus: http.StatusFound, wantLocation: "/"},
		{name: "login page without cookie", path: "/", wantStatus: http.StatusOK},
		{name: "auth api without cookie", path: "/api/auth/check", wantStatus: http.StatusUnauthorized},
		{name: "login page with cookie", path: "/", token: token, wantStatus: http.StatusFound, wantLocation: "/dashboard"},
		{name: "dashboard with cookie", path: "/dashboard", token: token, wantStatus: http.StatusOK},
		{name: "expired or forged cookie passes the gate", path: "/dashboard", token: "forged", wantStatus: http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := s.do(t, http.MethodGet, tc.path, tc.token, nil)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			if tc.wantLocation != "" {
				assert.Equal(t, tc.wantLocation, resp.Header.Get("Location"))
			}
		})
	}
}

func TestBearerHeaderIsAccepted(t *testing.T) {
	s := newServer(t, nil)
	token := s.signup(t, "a@x.com")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResponseHeaders(t *testing.T) {
	s := newServer(t, nil)

	resp := s.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", resp.Header.Get("Referrer-Policy"))
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	echoed, err := s.app.Test(req)
	require.NoError(t, err)
	defer echoed.Body.Close()
	assert.Equal(t, "req-42", echoed.Header.Get("X-Request-ID"))
}

func TestPanicRecovery(t *testing.T) {
	s := newServer(t, func(uc api.NoteUseCase) api.NoteUseCase { return panicNoteUseCase{NoteUseCase: uc} })
	token := s.signup(t, "a@x.com")

	resp := s.do(t, http.MethodGet, "/api/notes", token, nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal Server Error", decode[dto.ErrorResponse](t, resp).Error)
}
