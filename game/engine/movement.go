package engine

import (
	"math/rand"
	"time"
)

// Directions accepted by MovePlayer.
const (
	DirUp    = "up"
	DirDown  = "down"
	DirLeft  = "left"
	DirRight = "right"
)

// MovePlayer attempts to move the player in the specified direction.
// Moves are ignored in a terminal mode or while a puzzle is active.
// Each axis is clamped to the grid independently, so pushing against a
// boundary is a no-op rather than a failure. A successful position change
// immediately resolves the destination room; the resolution is not a
// separately invocable step.
func (gs *GameState) MovePlayer(direction string, pack *ContentPack, rng *rand.Rand) bool {
	if gs.Mode != ModeExploring {
		return false
	}

	newX, newY := gs.PlayerPos.X, gs.PlayerPos.Y

	switch direction {
	case DirUp:
		newY--
	case DirDown:
		newY++
	case DirLeft:
		newX--
	case DirRight:
		newX++
	default:
		return false
	}

	newX = clamp(newX, 0, GridSize-1)
	newY = clamp(newY, 0, GridSize-1)

	prevPos := gs.PlayerPos
	moved := newX != prevPos.X || newY != prevPos.Y

	if moved {
		gs.PlayerPos = Position{X: newX, Y: newY}
		gs.enterRoom(pack, rng)
	}

	gs.addMoveToHistory(direction, prevPos, gs.PlayerPos, moved)
	return moved
}

// CanMove checks whether a move in the given direction would change the
// player's position.
func (gs *GameState) CanMove(direction string) bool {
	if gs.Mode != ModeExploring {
		return false
	}

	switch direction {
	case DirUp:
		return gs.PlayerPos.Y > 0
	case DirDown:
		return gs.PlayerPos.Y < GridSize-1
	case DirLeft:
		return gs.PlayerPos.X > 0
	case DirRight:
		return gs.PlayerPos.X < GridSize-1
	default:
		return false
	}
}

// addMoveToHistory appends a move record to the session history.
func (gs *GameState) addMoveToHistory(action string, fromPos, toPos Position, success bool) {
	gs.TotalMoves++
	gs.MoveHistory = append(gs.MoveHistory, MoveHistoryEntry{
		Action:       action,
		FromPosition: fromPos,
		ToPosition:   toPos,
		Health:       gs.Health,
		Timestamp:    time.Now().Unix(),
		Success:      success,
		MoveNumber:   gs.TotalMoves,
	})
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
