package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"relicquest/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	packs    PackManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, packs PackManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		packs:    packs,
	}
}

// getPackID returns the pack_id for a given pack name, used for consistent API responses
func (s *gameServiceImpl) getPackID(packName string) string {
	availablePacks, err := s.packs.ListPacks()
	if err == nil {
		for _, p := range availablePacks {
			if p.Name == packName {
				return p.PackID
			}
		}
	}
	if packName == "" {
		return "default"
	}
	return packName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, packName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pack *engine.ContentPack
	var err error
	if packName != "" {
		pack, err = s.packs.LoadPack(packName)
		if err != nil {
			if strings.Contains(err.Error(), "not found") {
				availablePacks, listErr := s.packs.ListPacks()
				if listErr == nil && len(availablePacks) > 0 {
					var packIDs []string
					for _, p := range availablePacks {
						packIDs = append(packIDs, p.PackID)
					}
					return nil, fmt.Errorf("pack '%s' not found. Available packs: %v", packName, packIDs)
				}
				return nil, fmt.Errorf("pack '%s' not found. Use /api/packs to list available content packs", packName)
			}
			return nil, fmt.Errorf("failed to load pack %s: %w", packName, err)
		}
	} else {
		pack = s.packs.GetDefault()
	}

	// Let the session manager generate a short ID
	session, err := s.sessions.Create("", pack)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	packID := packName
	if packID == "" {
		packID = s.getPackID(pack.Name)
	}

	return &SessionInfo{
		ID:             session.ID,
		PackName:       packID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      s.snapshotWithAids(session),
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return &SessionInfo{
		ID:             session.ID,
		PackName:       s.getPackID(session.Pack.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      s.snapshotWithAids(session),
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			PackName:       s.getPackID(sess.Pack.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      s.snapshotWithAids(sess),
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID, direction string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	prevPos := sess.Engine.GetPlayerPosition()
	prevHealth := sess.Engine.GetHealth()
	prevMode := sess.Engine.GetMode()

	success := sess.Engine.Move(direction)
	newPos := sess.Engine.GetPlayerPosition()
	state := s.snapshotWithAids(sess)

	result := &MoveResult{
		Success:       success,
		GameState:     state,
		Narrative:     state.Narrative,
		Events:        s.extractMoveEvents(sess, prevPos, newPos, prevHealth, prevMode, direction),
		PossibleMoves: sess.Engine.GetPossibleMoves(),
		HealthRisk:    state.HealthRisk,
	}

	if success {
		roomKind := ""
		if newPos.Y >= 0 && newPos.Y < len(state.Grid) && newPos.X >= 0 && newPos.X < len(state.Grid[0]) {
			roomKind = string(state.Grid[newPos.Y][newPos.X].Kind)
		}
		result.Step = &StepInfo{
			Dir:          direction,
			From:         prevPos,
			To:           newPos,
			RoomKind:     roomKind,
			HealthBefore: prevHealth,
			HealthAfter:  state.Health,
			Success:      true,
			PuzzleOpened: state.Mode == engine.ModePuzzle,
			Victory:      state.Mode == engine.ModeWon,
		}
	}

	return result, nil
}

// SubmitAnswer applies an answer to the session's active puzzle
func (s *gameServiceImpl) SubmitAnswer(ctx context.Context, sessionID, answer string) (*AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	live := sess.Engine.GetState()
	if live.ActivePuzzle == nil {
		return nil, fmt.Errorf("no active puzzle: move into a relic room or the vault first")
	}

	prevHealth := sess.Engine.GetHealth()
	prevRelics := sess.Engine.GetRelicsCollected()
	prevTag := live.ActivePuzzle.Tag

	correct := sess.Engine.SubmitAnswer(answer)
	state := s.snapshotWithAids(sess)

	result := &AnswerResult{
		Correct:      correct,
		GameState:    state,
		Narrative:    state.Narrative,
		Events:       s.extractAnswerEvents(sess, correct, prevHealth, prevRelics, prevTag),
		ActivePuzzle: state.ActivePuzzle,
		HealthRisk:   state.HealthRisk,
	}

	return result, nil
}

// Reset resets a game session to initial state
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	sess.Engine.Reset()

	return s.snapshotWithAids(sess), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return s.snapshotWithAids(sess), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var moves []engine.MoveHistoryEntry
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else {
		if start < total {
			moves = history[start:end]
		}
	}

	if moves == nil {
		moves = []engine.MoveHistoryEntry{}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListPacks returns available content packs
func (s *gameServiceImpl) ListPacks(ctx context.Context) ([]*PackInfo, error) {
	return s.packs.ListPacks()
}

// LoadPack loads a specific content pack
func (s *gameServiceImpl) LoadPack(ctx context.Context, packName string) (*engine.ContentPack, error) {
	return s.packs.LoadPack(packName)
}

// snapshotWithAids returns a detached copy of the session's state with
// the computed health risk filled in.
func (s *gameServiceImpl) snapshotWithAids(sess *Session) *engine.GameState {
	state := sess.Engine.Snapshot()
	state.HealthRisk = riskCode(engine.AnalyzeHealthRisk(state))
	return state
}

// extractMoveEvents generates events from a move
func (s *gameServiceImpl) extractMoveEvents(sess *Session, prevPos, newPos engine.Position, prevHealth int, prevMode engine.Mode, direction string) []GameEvent {
	events := []GameEvent{}
	state := sess.Engine.GetState()
	now := time.Now()

	events = append(events, GameEvent{
		Type:      "move",
		Message:   fmt.Sprintf("Moved %s to (%d,%d)", direction, newPos.X, newPos.Y),
		Timestamp: now,
		Position:  newPos,
	})

	if prevPos == newPos {
		return events // blocked at a wall or input frozen, nothing happened
	}

	if state.Health < prevHealth {
		events = append(events, GameEvent{
			Type:      "damage",
			Message:   fmt.Sprintf("Lost %d health (%d/%d remaining)", prevHealth-state.Health, state.Health, state.MaxHealth),
			Timestamp: now,
			Position:  newPos,
		})
	} else if state.Health > prevHealth {
		events = append(events, GameEvent{
			Type:      "heal",
			Message:   fmt.Sprintf("Recovered %d health (%d/%d)", state.Health-prevHealth, state.Health, state.MaxHealth),
			Timestamp: now,
			Position:  newPos,
		})
	}

	if prevMode == engine.ModeExploring && state.Mode == engine.ModePuzzle {
		events = append(events, GameEvent{
			Type:      "puzzle_opened",
			Message:   state.ActivePuzzle.Puzzle.Question,
			Timestamp: now,
			Position:  newPos,
		})
	}

	if state.IsGameOver() {
		if state.Mode == engine.ModeWon {
			events = append(events, GameEvent{
				Type:      "victory",
				Message:   state.Narrative,
				Timestamp: now,
			})
		} else {
			events = append(events, GameEvent{
				Type:      "game_over",
				Message:   state.Narrative,
				Timestamp: now,
			})
		}
	}

	return events
}

// extractAnswerEvents generates events from an answer submission
func (s *gameServiceImpl) extractAnswerEvents(sess *Session, correct bool, prevHealth, prevRelics int, prevTag engine.PuzzleTag) []GameEvent {
	events := []GameEvent{}
	state := sess.Engine.GetState()
	now := time.Now()

	if !correct {
		events = append(events, GameEvent{
			Type:      "wrong_answer",
			Message:   fmt.Sprintf("Wrong answer: lost %d health (%d/%d remaining)", prevHealth-state.Health, state.Health, state.MaxHealth),
			Timestamp: now,
		})
		if state.Mode == engine.ModeLost {
			events = append(events, GameEvent{
				Type:      "game_over",
				Message:   state.Narrative,
				Timestamp: now,
			})
		}
		return events
	}

	if state.RelicsCollected > prevRelics {
		events = append(events, GameEvent{
			Type:      "relic_claimed",
			Message:   fmt.Sprintf("Relic claimed! %d/%d collected, gold %d, experience %d", state.RelicsCollected, engine.RelicCount, state.Gold, state.Experience),
			Timestamp: now,
			Position:  state.PlayerPos,
		})
	}

	if prevTag == engine.TagFinal && state.ActivePuzzle != nil && state.ActivePuzzle.Tag == engine.TagBonus {
		events = append(events, GameEvent{
			Type:      "bonus_offered",
			Message:   state.ActivePuzzle.Puzzle.Question,
			Timestamp: now,
		})
	}

	if state.Mode == engine.ModeWon {
		events = append(events, GameEvent{
			Type:      "victory",
			Message:   state.Narrative,
			Timestamp: now,
		})
	}

	return events
}

func riskCode(text string) string {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "critical"):
		return "CRITICAL"
	case strings.Contains(t, "danger"):
		return "DANGER"
	case strings.Contains(t, "caution"):
		return "CAUTION"
	case strings.Contains(t, "low"):
		return "LOW"
	case strings.Contains(t, "safe"):
		return "SAFE"
	default:
		return "UNKNOWN"
	}
}
