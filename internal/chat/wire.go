package chat

import (
	"github.com/Tomoki-K-0409/line-like-chat-app/internal/domain"
	"github.com/Tomoki-K-0409/line-like-chat-app/internal/protocol"
)

// toWire converts a persisted message into its broadcast frame.
func toWire(m *domain.Message) protocol.ChatMessage {
	ts := m.Timestamp
	return protocol.ChatMessage{
		BaseMessage: protocol.BaseMessage{Type: protocol.TypeMessage},
		ID:          m.ID,
		Username:    m.Username,
		Body:        m.Body,
		Timestamp:   &ts,
	}
}
