// Package protocol defines the WebSocket message protocol between clients
// and the chat service.
package protocol

import "time"

// Message types from client to server
const (
	TypeSendMessage = "sendMessage"
)

// Message types from server to client
const (
	TypeMessage = "message"
	TypeError   = "error"
)

// BaseMessage contains the fields common to all frames.
type BaseMessage struct {
	Type string `json:"type"`
}

// SendMessage is sent by a client to submit a chat message.
type SendMessage struct {
	BaseMessage
	Username string `json:"username"`
	Body     string `json:"message"`
}

// ChatMessage is broadcast by the server to every connected client. ID and
// Timestamp are the server-assigned canonical values, never the client's.
type ChatMessage struct {
	BaseMessage
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Body      string     `json:"message"`
	Timestamp *time.Time `json:"timestamp"`
}

// ErrorMessage is sent to a single client when its frame cannot be handled.
type ErrorMessage struct {
	BaseMessage
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes
const (
	ErrorCodeInvalidMessage = "invalid_message"
	ErrorCodeInternalError  = "internal_error"
)
