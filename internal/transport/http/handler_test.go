package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Tomoki-K-0409/line-like-chat-app/internal/chat"
	"github.com/Tomoki-K-0409/line-like-chat-app/internal/domain"
	"github.com/Tomoki-K-0409/line-like-chat-app/internal/store"
)

type nopBroadcaster struct{}

func (nopBroadcaster) BroadcastJSON(v interface{}) error { return nil }

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewHandler(chat.New(st, nopBroadcaster{}))
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterSuccess(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t)

	c, rec := newJSONContext(e, http.MethodPost, "/register", `{"username":"alice"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["username"] != "alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t)

	c, _ := newJSONContext(e, http.MethodPost, "/register", `{"username":"alice"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	c, rec := newJSONContext(e, http.MethodPost, "/register", `{"username":"alice"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "Username already registered" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRegisterEmptyUsername(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t)

	c, rec := newJSONContext(e, http.MethodPost, "/register", `{"username":""}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLoginSuccess(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t)

	c, _ := newJSONContext(e, http.MethodPost, "/register", `{"username":"alice"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	c, rec := newJSONContext(e, http.MethodPost, "/login", `{"username":"alice"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["message"] != "Login successful" || resp["username"] != "alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t)

	c, rec := newJSONContext(e, http.MethodPost, "/login", `{"username":"ghost"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["error"] != "User not found" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestPostAndGetMessages(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t)

	c, rec := newJSONContext(e, http.MethodPost, "/messages", `{"username":"alice","message":"hi"}`)
	if err := h.PostMessage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var created domain.Message
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID != 1 || created.Username != "alice" || created.Body != "hi" {
		t.Fatalf("unexpected message: %+v", created)
	}
	if created.Timestamp.IsZero() {
		t.Fatal("expected server-assigned timestamp")
	}

	c, rec = newJSONContext(e, http.MethodGet, "/messages", "")
	if err := h.GetMessages(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var messages []domain.Message
	if err := json.Unmarshal(rec.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(messages) != 1 || messages[0].ID != created.ID {
		t.Fatalf("unexpected history: %+v", messages)
	}
}

func TestGetMessagesEmpty(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t)

	c, rec := newJSONContext(e, http.MethodGet, "/messages", "")
	if err := h.GetMessages(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestPostMessageMissingFields(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t)

	for _, body := range []string{
		`{"username":"alice"}`,
		`{"message":"hi"}`,
		`{"username":"","message":""}`,
	} {
		c, rec := newJSONContext(e, http.MethodPost, "/messages", body)
		if err := h.PostMessage(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}

	// Nothing may be persisted by the rejected requests.
	c, rec := newJSONContext(e, http.MethodGet, "/messages", "")
	if err := h.GetMessages(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}

func TestHealth(t *testing.T) {
	e := echo.New()
	h := newTestHandler(t)

	c, rec := newJSONContext(e, http.MethodGet, "/health", "")
	if err := h.Health(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
