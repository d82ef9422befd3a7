// Package store defines the storage interface and implementations.
package store

import (
	"context"

	"github.com/Tomoki-K-0409/line-like-chat-app/internal/domain"
)

// Store defines the interface for data persistence.
type Store interface {
	// User operations
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	GetUser(ctx context.Context, username string) (*domain.User, error)

	// Message operations
	CreateMessage(ctx context.Context, username, body string) (*domain.Message, error)
	ListMessages(ctx context.Context) ([]domain.Message, error)

	// Lifecycle
	Close() error
}
