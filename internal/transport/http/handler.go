package http

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/Tomoki-K-0409/line-like-chat-app/internal/chat"
	"github.com/Tomoki-K-0409/line-like-chat-app/internal/domain"
)

var validate = validator.New()

// Handler handles HTTP requests.
type Handler struct {
	service *chat.Service
}

// NewHandler creates a new handler.
func NewHandler(service *chat.Service) *Handler {
	return &Handler{
		service: service,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/register", h.Register)
	e.POST("/login", h.Login)
	e.GET("/messages", h.GetMessages)
	e.POST("/messages", h.PostMessage)

	e.GET("/health", h.Health)
}

// UserRequest is the request body for registration and login.
type UserRequest struct {
	Username string `json:"username" validate:"required"`
}

// MessageRequest is the request body for POST /messages.
type MessageRequest struct {
	Username string `json:"username" validate:"required"`
	Body     string `json:"message" validate:"required"`
}

// Register creates a new user.
// POST /register
func (h *Handler) Register(c echo.Context) error {
	var req UserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "username is required"})
	}

	ctx := c.Request().Context()

	user, err := h.service.Register(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Username already registered"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, map[string]string{
		"username": user.Username,
	})
}

// Login checks that a username is registered.
// POST /login
func (h *Handler) Login(c echo.Context) error {
	var req UserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "username is required"})
	}

	ctx := c.Request().Context()

	user, err := h.service.Login(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message":  "Login successful",
		"username": user.Username,
	})
}

// GetMessages retrieves the full message history in send order.
// GET /messages
func (h *Handler) GetMessages(c echo.Context) error {
	ctx := c.Request().Context()

	messages, err := h.service.History(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, messages)
}

// PostMessage persists a message without broadcasting it. This path stores
// the message but deliberately does not reach live WebSocket clients; only
// the realtime sendMessage path fans out.
// POST /messages
func (h *Handler) PostMessage(c echo.Context) error {
	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "username and message are required"})
	}

	ctx := c.Request().Context()

	msg, err := h.service.SubmitMessage(ctx, req.Username, req.Body, false)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyField) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "username and message are required"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusCreated, msg)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
