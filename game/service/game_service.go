package service

import (
	"context"
	"time"

	"relicquest/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, packName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID, direction string) (*MoveResult, error)
	SubmitAnswer(ctx context.Context, sessionID, answer string) (*AnswerResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Content packs
	ListPacks(ctx context.Context) ([]*PackInfo, error)
	LoadPack(ctx context.Context, packName string) (*engine.ContentPack, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, pack *engine.ContentPack) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Count() int
}

// PackManager handles content pack loading
type PackManager interface {
	LoadPack(name string) (*engine.ContentPack, error)
	ListPacks() ([]*PackInfo, error)
	GetDefault() *engine.ContentPack
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Pack           *engine.ContentPack
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
