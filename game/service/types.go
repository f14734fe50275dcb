package service

import (
	"time"

	"relicquest/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	PackName       string            `json:"pack_name"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
}

// MoveResult contains the result of a move operation
type MoveResult struct {
	Success   bool              `json:"success"`
	GameState *engine.GameState `json:"game_state"`
	Narrative string            `json:"narrative"`
	Events    []GameEvent       `json:"events,omitempty"`
	Step      *StepInfo         `json:"step,omitempty"`

	// Decision aids
	PossibleMoves []string `json:"possible_moves,omitempty"`
	HealthRisk    string   `json:"health_risk,omitempty"`
}

// AnswerResult contains the result of an answer submission
type AnswerResult struct {
	Correct   bool              `json:"correct"`
	GameState *engine.GameState `json:"game_state"`
	Narrative string            `json:"narrative"`
	Events    []GameEvent       `json:"events,omitempty"`

	// The puzzle still blocking input after this submission, if any. A
	// wrong answer keeps the same puzzle open; solving the vault puzzle
	// swaps in the bonus one.
	ActivePuzzle *engine.ActivePuzzle `json:"active_puzzle,omitempty"`
	HealthRisk   string               `json:"health_risk,omitempty"`
}

// StepInfo is a compact record of an executed move
type StepInfo struct {
	Dir          string          `json:"dir"`
	From         engine.Position `json:"from"`
	To           engine.Position `json:"to"`
	RoomKind     string          `json:"room_kind"`
	HealthBefore int             `json:"health_before"`
	HealthAfter  int             `json:"health_after"`
	Success      bool            `json:"success"`
	PuzzleOpened bool            `json:"puzzle_opened,omitempty"`
	Victory      bool            `json:"victory,omitempty"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string          `json:"type"` // "move", "puzzle_opened", "trap", "heal", "damage", "relic_claimed", "game_over", "victory", "reset", "wrong_answer"
	Message   string          `json:"message"`
	Timestamp time.Time       `json:"timestamp"`
	Position  engine.Position `json:"position,omitempty"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// PackInfo provides information about a content pack
type PackInfo struct {
	Filename    string `json:"filename"`
	PackID      string `json:"pack_id"` // The identifier to use for session creation
	Name        string `json:"name"`    // Display name
	Description string `json:"description"`
	PuzzleCount int    `json:"puzzle_count"`
}
