// Package domain defines the core data models for the chat service.
package domain

import "time"

// User is a registered chat participant. Users are created on registration
// and never mutated or deleted.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Message is a persisted chat message. ID and Timestamp are assigned by the
// store at insert time; a Message is immutable once persisted.
type Message struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Body      string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
