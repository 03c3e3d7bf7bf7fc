// Package history persists chat transcripts to SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Conversation groups the exchanges of one chat session.
type Conversation struct {
	ID        string
	StartedAt time.Time
	Model     string
}

// Exchange records one prompt/reply round trip.
type Exchange struct {
	ID             int64
	ConversationID string
	Prompt         string
	Reply          string
	StatusCode     int
	ModelVersion   string
	TokensIn       int
	TokensOut      int
	CreatedAt      time.Time
}

// Store persists conversations and exchanges using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates a store at the given path. Use ":memory:" for an
// in-memory database (useful for testing).
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return s, nil
}

func (s *Store) createSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS conversations (
		conversation_id TEXT PRIMARY KEY,
		started_at INTEGER NOT NULL,
		model TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS exchanges (
		exchange_id INTEGER PRIMARY KEY AUTOINCREMENT,
		conversation_id TEXT NOT NULL,
		prompt TEXT NOT NULL,
		reply TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		model_version TEXT NOT NULL,
		tokens_in INTEGER DEFAULT 0,
		tokens_out INTEGER DEFAULT 0,
		created_at INTEGER NOT NULL,
		FOREIGN KEY (conversation_id) REFERENCES conversations(conversation_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_exchanges_conversation ON exchanges(conversation_id);
	CREATE INDEX IF NOT EXISTS idx_conversations_started ON conversations(started_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateConversation stores a new conversation.
func (s *Store) CreateConversation(ctx context.Context, conversation Conversation) error {
	query := `INSERT INTO conversations (conversation_id, started_at, model) VALUES (?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		conversation.ID,
		conversation.StartedAt.Unix(),
		conversation.Model,
	)
	if err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}
	return nil
}

// AppendExchange stores one round trip and returns its generated id.
func (s *Store) AppendExchange(ctx context.Context, exchange Exchange) (int64, error) {
	query := `
		INSERT INTO exchanges (conversation_id, prompt, reply, status_code, model_version, tokens_in, tokens_out, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		exchange.ConversationID,
		exchange.Prompt,
		exchange.Reply,
		exchange.StatusCode,
		exchange.ModelVersion,
		exchange.TokensIn,
		exchange.TokensOut,
		exchange.CreatedAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to append exchange: %w", err)
	}
	return result.LastInsertId()
}

// ListConversations returns the most recent conversations, newest first.
func (s *Store) ListConversations(ctx context.Context, limit int) ([]Conversation, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT conversation_id, started_at, model FROM conversations ORDER BY started_at DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []Conversation
	for rows.Next() {
		var c Conversation
		var startedAt int64
		if err := rows.Scan(&c.ID, &startedAt, &c.Model); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		c.StartedAt = time.Unix(startedAt, 0).UTC()
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

// Exchanges returns a conversation's exchanges in insertion order.
func (s *Store) Exchanges(ctx context.Context, conversationID string) ([]Exchange, error) {
	query := `
		SELECT exchange_id, conversation_id, prompt, reply, status_code, model_version, tokens_in, tokens_out, created_at
		FROM exchanges
		WHERE conversation_id = ?
		ORDER BY exchange_id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []Exchange
	for rows.Next() {
		var e Exchange
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.ConversationID, &e.Prompt, &e.Reply, &e.StatusCode, &e.ModelVersion, &e.TokensIn, &e.TokensOut, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan exchange: %w", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0).UTC()
		exchanges = append(exchanges, e)
	}
	return exchanges, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
