package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state management
	GetState() *GameState
	Snapshot() *GameState
	Reset() *GameState
	IsGameOver() bool
	IsVictory() bool
	GetMode() Mode
	GetHealth() int
	GetGold() int
	GetExperience() int
	GetRelicsCollected() int
	GetPlayerPosition() Position

	// Entry points
	Move(direction string) bool
	SubmitAnswer(text string) bool

	// Movement helpers
	CanMove(direction string) bool
	GetPossibleMoves() []string

	// Content
	GetPack() *ContentPack

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// GameEngine implements the Engine interface. All entry points run to
// completion synchronously; the engine itself does no locking.
type GameEngine struct {
	state *GameState
	pack  *ContentPack
	rng   *rand.Rand
}

// NewEngine creates a new game engine with the provided content pack and
// random source. A nil rng gets a time-seeded source; tests pass a seeded
// one for deterministic layouts.
func NewEngine(pack *ContentPack, rng *rand.Rand) (*GameEngine, error) {
	if pack == nil {
		return nil, fmt.Errorf("content pack cannot be nil")
	}
	if err := ValidateContentPack(pack); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e := &GameEngine{pack: pack, rng: rng}
	e.state = NewGameState(pack, rng)
	return e, nil
}

// NewEngineWithDefaults creates a new game engine with the built-in
// content pack and a time-seeded random source.
func NewEngineWithDefaults() *GameEngine {
	e, _ := NewEngine(DefaultContentPack(), nil)
	return e
}

// NewGameState builds a fresh session: a newly generated grid and a
// player at the start room with full health.
func NewGameState(pack *ContentPack, rng *rand.Rand) *GameState {
	return &GameState{
		Grid:            GenerateGrid(rng, pack),
		PlayerPos:       StartPosition,
		Health:          MaxHealth,
		MaxHealth:       MaxHealth,
		RelicsCollected: 0,
		Mode:            ModeExploring,
		SolvedRelics:    make(map[int]bool),
		Narrative:       pack.Messages.Welcome,
		PackName:        pack.Name,
		MoveHistory:     []MoveHistoryEntry{},
	}
}

// GetState returns the engine's live state. It is intended for the engine's
// own package and tests; collaborators should use Snapshot.
func (e *GameEngine) GetState() *GameState {
	return e.state
}

// Snapshot returns a deep copy of the current state for rendering.
// Mutating the copy has no effect on the game.
func (e *GameEngine) Snapshot() *GameState {
	return e.state.Clone()
}

// Reset discards the grid and player state entirely and rebuilds both
// with fresh randomness. No field survives a reset.
func (e *GameEngine) Reset() *GameState {
	e.state = NewGameState(e.pack, e.rng)
	return e.state
}

// Move attempts to move the player and, on a position change, resolves
// the destination room as part of the same call.
func (e *GameEngine) Move(direction string) bool {
	return e.state.MovePlayer(direction, e.pack, e.rng)
}

// SubmitAnswer applies an answer to the active puzzle, if any.
func (e *GameEngine) SubmitAnswer(text string) bool {
	return e.state.ResolveAnswer(text, e.pack)
}

// IsGameOver returns whether the session is in a terminal mode
func (e *GameEngine) IsGameOver() bool {
	return e.state.IsGameOver()
}

// IsVictory returns whether the player has won
func (e *GameEngine) IsVictory() bool {
	return e.state.Mode == ModeWon
}

// GetMode returns the current session mode
func (e *GameEngine) GetMode() Mode {
	return e.state.Mode
}

// GetHealth returns the player's current health
func (e *GameEngine) GetHealth() int {
	return e.state.Health
}

// GetGold returns the player's accumulated gold
func (e *GameEngine) GetGold() int {
	return e.state.Gold
}

// GetExperience returns the player's accumulated experience
func (e *GameEngine) GetExperience() int {
	return e.state.Experience
}

// GetRelicsCollected returns how many relics have been claimed
func (e *GameEngine) GetRelicsCollected() int {
	return e.state.RelicsCollected
}

// GetPlayerPosition returns the current player position
func (e *GameEngine) GetPlayerPosition() Position {
	return e.state.PlayerPos
}

// CanMove checks if a move in the given direction would change position
func (e *GameEngine) CanMove(direction string) bool {
	return e.state.CanMove(direction)
}

// GetPossibleMoves returns all directions that would change position
func (e *GameEngine) GetPossibleMoves() []string {
	directions := []string{DirUp, DirDown, DirLeft, DirRight}
	var possible []string

	for _, dir := range directions {
		if e.CanMove(dir) {
			possible = append(possible, dir)
		}
	}

	return possible
}

// GetPack returns the engine's content pack
func (e *GameEngine) GetPack() *ContentPack {
	return e.pack
}

// GetMoveHistory returns the session's move history
func (e *GameEngine) GetMoveHistory() []MoveHistoryEntry {
	return e.state.MoveHistory
}

// GetLastMove returns the last move made, or nil if no moves
func (e *GameEngine) GetLastMove() *MoveHistoryEntry {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}
