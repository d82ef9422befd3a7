// Package http provides the HTTP server for the chat service.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Tomoki-K-0409/line-like-chat-app/internal/chat"
	"github.com/Tomoki-K-0409/line-like-chat-app/internal/config"
	"github.com/Tomoki-K-0409/line-like-chat-app/internal/ws"
)

// NewServer creates and configures the HTTP server. It serves the REST API
// and the WebSocket endpoint on the same port.
func NewServer(cfg *config.Config, svc *chat.Service, wsServer *ws.Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
	}))

	// Handlers
	h := NewHandler(svc)
	h.RegisterRoutes(e)
	e.GET("/ws", wsServer.HandleWebSocket)

	return e
}
