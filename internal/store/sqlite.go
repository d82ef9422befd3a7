package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/Tomoki-K-0409/line-like-chat-app/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store and ensures the schema exists.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)`,
		`CREATE TABLE IF NOT EXISTS messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL,
			message TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_timestamp ON messages(timestamp, id)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateUser registers a new username. It returns domain.ErrDuplicateUsername
// if the username is already taken.
func (s *SQLiteStore) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username) VALUES (?)`, username)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, &domain.StorageError{Op: "create user", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, &domain.StorageError{Op: "create user", Err: err}
	}
	return &domain.User{ID: id, Username: username}, nil
}

// GetUser looks up a user by exact username. It returns domain.ErrUserNotFound
// if the username is not registered.
func (s *SQLiteStore) GetUser(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username FROM users WHERE username = ?`,
		username).Scan(&user.ID, &user.Username)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, &domain.StorageError{Op: "get user", Err: err}
	}
	return &user, nil
}

// CreateMessage inserts a new message row. The id and timestamp are assigned
// here, in the same insert, so the returned Message is always fully populated.
func (s *SQLiteStore) CreateMessage(ctx context.Context, username, body string) (*domain.Message, error) {
	ts := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (username, message, timestamp) VALUES (?, ?, ?)`,
		username, body, ts)
	if err != nil {
		return nil, &domain.StorageError{Op: "create message", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, &domain.StorageError{Op: "create message", Err: err}
	}

	return &domain.Message{
		ID:        id,
		Username:  username,
		Body:      body,
		Timestamp: ts,
	}, nil
}

// ListMessages returns a snapshot of all messages ordered by timestamp
// ascending, ties broken by id.
func (s *SQLiteStore) ListMessages(ctx context.Context) ([]domain.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, message, timestamp FROM messages ORDER BY timestamp ASC, id ASC`)
	if err != nil {
		return nil, &domain.StorageError{Op: "list messages", Err: err}
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.Username, &m.Body, &m.Timestamp); err != nil {
			return nil, &domain.StorageError{Op: "list messages", Err: err}
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Op: "list messages", Err: err}
	}

	return messages, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
