// Package chat implements the chat operations: registration, login, message
// submission with fan-out, and history retrieval.
package chat

import (
	"context"
	"log"
	"sync"

	"github.com/Tomoki-K-0409/line-like-chat-app/internal/domain"
	"github.com/Tomoki-K-0409/line-like-chat-app/internal/store"
)

// Broadcaster delivers a canonical message to every live connection. The hub
// implements it; tests substitute a fake.
type Broadcaster interface {
	BroadcastJSON(v interface{}) error
}

// Service coordinates the store and the broadcast fan-out.
type Service struct {
	store       store.Store
	broadcaster Broadcaster

	// mu serializes persist+fan-out so that broadcast order always matches
	// the store's id order, even with concurrent senders.
	mu sync.Mutex
}

// New creates a new Service.
func New(st store.Store, b Broadcaster) *Service {
	return &Service{
		store:       st,
		broadcaster: b,
	}
}

// Register creates a new user. It returns domain.ErrDuplicateUsername if the
// username is already taken.
func (s *Service) Register(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, domain.ErrEmptyField
	}
	return s.store.CreateUser(ctx, username)
}

// Login checks that a username is registered. There are no credentials; this
// is a presence check only.
func (s *Service) Login(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.store.GetUser(ctx, username)
}

// SubmitMessage validates and persists a chat message, and when broadcast is
// set pushes the canonical (id and timestamp assigned) message to every live
// connection. The WebSocket path broadcasts; the POST /messages path does not.
//
// Fan-out happens only after a successful persist, and there is no retry: a
// message is never broadcast without being stored first, but it may be stored
// without reaching every client.
func (s *Service) SubmitMessage(ctx context.Context, username, body string, broadcast bool) (*domain.Message, error) {
	if username == "" || body == "" {
		return nil, domain.ErrEmptyField
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg, err := s.store.CreateMessage(ctx, username, body)
	if err != nil {
		return nil, err
	}

	if broadcast {
		if err := s.broadcaster.BroadcastJSON(toWire(msg)); err != nil {
			// The message is already durable; the sender still sees success.
			log.Printf("Broadcast failed for message %d: %v", msg.ID, err)
		}
	}

	return msg, nil
}

// History returns all persisted messages in send order.
func (s *Service) History(ctx context.Context) ([]domain.Message, error) {
	return s.store.ListMessages(ctx)
}
