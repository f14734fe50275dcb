package engine

import (
	"math/rand"
	"testing"
)

func newTestEngine(t *testing.T, seed int64) *GameEngine {
	t.Helper()
	eng, err := NewEngine(DefaultContentPack(), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return eng
}

// craftedGrid builds a fully known layout: relic types fixed by position,
// no traps, no ambient events. Used for end-to-end walks where random
// rooms on the path would make the test flaky.
func craftedGrid() [][]Room {
	grid := make([][]Room, GridSize)
	for y := range grid {
		grid[y] = make([]Room, GridSize)
		for x := range grid[y] {
			grid[y][x] = Room{Kind: RoomEmpty}
		}
	}
	grid[StartPosition.Y][StartPosition.X] = Room{Kind: RoomStart, Discovered: true}
	grid[FinalPosition.Y][FinalPosition.X] = Room{Kind: RoomFinal}
	types := []PuzzleType{PuzzleRiddle, PuzzleScramble, PuzzleQuiz}
	for i, pos := range RelicPositions {
		grid[pos.Y][pos.X] = Room{Kind: RoomRelic, PuzzleType: types[i], RelicID: i + 1}
	}
	return grid
}

func mustAnswer(t *testing.T, eng *GameEngine, answer string) {
	t.Helper()
	if !eng.SubmitAnswer(answer) {
		t.Fatalf("answer %q rejected; narrative: %q", answer, eng.GetState().Narrative)
	}
}

func walk(eng *GameEngine, moves ...string) {
	for _, dir := range moves {
		eng.Move(dir)
	}
}

func TestNewEngine(t *testing.T) {
	eng := newTestEngine(t, 1)

	if eng.GetHealth() != MaxHealth {
		t.Errorf("expected starting health %d, got %d", MaxHealth, eng.GetHealth())
	}
	if eng.GetRelicsCollected() != 0 {
		t.Errorf("expected 0 relics collected, got %d", eng.GetRelicsCollected())
	}
	if eng.GetPlayerPosition() != StartPosition {
		t.Errorf("expected player at %v, got %v", StartPosition, eng.GetPlayerPosition())
	}
	if eng.GetMode() != ModeExploring {
		t.Errorf("expected mode %s, got %s", ModeExploring, eng.GetMode())
	}
	if eng.IsGameOver() || eng.IsVictory() {
		t.Error("expected a fresh game to be neither over nor won")
	}
}

func TestNewEngine_NilPack(t *testing.T) {
	if _, err := NewEngine(nil, nil); err == nil {
		t.Error("expected error for nil content pack")
	}
}

func TestNewEngine_InvalidPack(t *testing.T) {
	pack := DefaultContentPack()
	pack.Catalog = pack.Catalog[:2]
	if _, err := NewEngine(pack, nil); err == nil {
		t.Error("expected error for invalid content pack")
	}
}

func TestNewEngineWithDefaults(t *testing.T) {
	eng := NewEngineWithDefaults()
	if eng == nil {
		t.Fatal("expected engine to be non-nil")
	}
	if eng.GetHealth() != MaxHealth {
		t.Errorf("expected full health, got %d", eng.GetHealth())
	}
}

func TestEngine_BasicMovement(t *testing.T) {
	eng := newTestEngine(t, 1)
	eng.GetState().Grid = craftedGrid()

	initial := eng.GetPlayerPosition()
	if !eng.Move(DirRight) {
		t.Fatal("expected successful move")
	}

	pos := eng.GetPlayerPosition()
	if pos.X != initial.X+1 || pos.Y != initial.Y {
		t.Errorf("expected player at (%d,%d), got %v", initial.X+1, initial.Y, pos)
	}

	history := eng.GetMoveHistory()
	if len(history) != 1 {
		t.Fatalf("expected 1 move in history, got %d", len(history))
	}
	last := eng.GetLastMove()
	if last.Action != DirRight || !last.Success {
		t.Errorf("unexpected history entry: %+v", last)
	}
}

func TestEngine_BoundaryMovesAreClamped(t *testing.T) {
	eng := newTestEngine(t, 1)
	eng.GetState().Grid = craftedGrid()
	eng.GetState().PlayerPos = Position{X: 0, Y: 2}

	if eng.Move(DirLeft) {
		t.Error("expected a pure boundary push to report no position change")
	}
	if got := eng.GetPlayerPosition(); got != (Position{X: 0, Y: 2}) {
		t.Errorf("expected position unchanged, got %v", got)
	}
	if eng.IsGameOver() {
		t.Error("a boundary push must not be an error or end the game")
	}

	// The failed attempt is still recorded.
	if last := eng.GetLastMove(); last == nil || last.Success {
		t.Errorf("expected unsuccessful history entry, got %+v", last)
	}
}

func TestEngine_InvalidDirection(t *testing.T) {
	eng := newTestEngine(t, 1)

	if eng.Move("sideways") {
		t.Error("expected move to fail with unknown direction")
	}
	if eng.Move("") {
		t.Error("expected move to fail with empty direction")
	}
}

func TestEngine_MoveIgnoredWhilePuzzleActive(t *testing.T) {
	eng := newTestEngine(t, 1)
	eng.GetState().Grid = craftedGrid()

	walk(eng, DirLeft, DirLeft, DirUp, DirUp) // relic at (0,0)
	if eng.GetMode() != ModePuzzle {
		t.Fatalf("expected an open puzzle, mode is %s", eng.GetMode())
	}

	pos := eng.GetPlayerPosition()
	if eng.Move(DirDown) {
		t.Error("expected move to be ignored while a puzzle is active")
	}
	if eng.GetPlayerPosition() != pos {
		t.Error("position changed while a puzzle was active")
	}
}

func TestEngine_MoveIgnoredInTerminalState(t *testing.T) {
	eng := newTestEngine(t, 1)
	eng.GetState().Mode = ModeLost

	if eng.Move(DirUp) {
		t.Error("expected move to be ignored in a terminal state")
	}
}

func TestEngine_CornerRelicScenario(t *testing.T) {
	eng := newTestEngine(t, 1)
	eng.GetState().Grid = craftedGrid()
	eng.GetState().Health = 80

	// From the center (2,2) to the riddle relic at (0,0).
	walk(eng, DirLeft, DirLeft, DirUp, DirUp)

	state := eng.GetState()
	if state.ActivePuzzle == nil || state.ActivePuzzle.RelicID != 1 {
		t.Fatalf("expected relic 1's puzzle open, got %+v", state.ActivePuzzle)
	}

	mustAnswer(t, eng, "  Echo ")

	if eng.GetRelicsCollected() != 1 {
		t.Errorf("expected relicsCollected 1, got %d", eng.GetRelicsCollected())
	}
	wantGold := RelicGoldBase + RelicGoldPerID*1
	if eng.GetGold() != wantGold {
		t.Errorf("expected gold %d, got %d", wantGold, eng.GetGold())
	}
	if eng.GetHealth() != 80+SolveHeal {
		t.Errorf("expected health %d, got %d", 80+SolveHeal, eng.GetHealth())
	}
}

func TestEngine_FullWinPath(t *testing.T) {
	eng := newTestEngine(t, 1)
	eng.GetState().Grid = craftedGrid()
	pack := eng.GetPack()

	// Relic 1: riddle at (0,0)
	walk(eng, DirLeft, DirLeft, DirUp, DirUp)
	mustAnswer(t, eng, "echo")

	// Relic 2: scramble at (4,0)
	walk(eng, DirRight, DirRight, DirRight, DirRight)
	mustAnswer(t, eng, "lantern")

	// Relic 3: quiz at (0,4)
	walk(eng, DirLeft, DirLeft, DirLeft, DirLeft, DirDown, DirDown, DirDown, DirDown)
	mustAnswer(t, eng, "mercury")

	if eng.GetRelicsCollected() != RelicCount {
		t.Fatalf("expected all %d relics, got %d", RelicCount, eng.GetRelicsCollected())
	}

	// Vault at (4,4)
	walk(eng, DirRight, DirRight, DirRight, DirRight)
	if eng.GetMode() != ModePuzzle {
		t.Fatalf("expected the final puzzle open, mode is %s", eng.GetMode())
	}

	mustAnswer(t, eng, pack.FinalPuzzle.Answer)
	if eng.IsVictory() {
		t.Fatal("solving the final puzzle alone must not win the game")
	}

	mustAnswer(t, eng, pack.BonusPuzzle.Answer)
	if !eng.IsVictory() {
		t.Fatal("expected victory after the bonus puzzle")
	}
	if !eng.GetState().RewardsPending {
		t.Error("expected rewards summary pending after victory")
	}
	if eng.GetState().Title != pack.FinalReward.Title {
		t.Errorf("expected title %q, got %q", pack.FinalReward.Title, eng.GetState().Title)
	}
}

func TestEngine_VaultLockedWithoutRelics(t *testing.T) {
	eng := newTestEngine(t, 1)
	eng.GetState().Grid = craftedGrid()

	walk(eng, DirRight, DirRight, DirDown, DirDown) // vault at (4,4)

	if eng.GetMode() != ModeExploring {
		t.Errorf("vault must stay locked without relics, mode is %s", eng.GetMode())
	}
	if eng.GetState().ActivePuzzle != nil {
		t.Error("locked vault opened a puzzle")
	}
}

func TestEngine_Reset(t *testing.T) {
	eng := newTestEngine(t, 1)
	eng.GetState().Grid = craftedGrid()

	// Change a good amount of state, leave a puzzle open.
	walk(eng, DirLeft, DirLeft, DirUp, DirUp)
	mustAnswer(t, eng, "echo")
	walk(eng, DirRight, DirRight, DirRight, DirRight)
	if eng.GetMode() != ModePuzzle {
		t.Fatal("setup: expected an open puzzle before reset")
	}
	eng.GetState().Health = 40

	state := eng.Reset()

	if state.RelicsCollected != 0 {
		t.Errorf("expected relicsCollected 0 after reset, got %d", state.RelicsCollected)
	}
	if state.Mode != ModeExploring || state.ActivePuzzle != nil {
		t.Error("expected no active puzzle after reset")
	}
	if state.Health != MaxHealth {
		t.Errorf("expected full health after reset, got %d", state.Health)
	}
	if state.Gold != 0 || state.Experience != 0 || state.Title != "" {
		t.Error("expected rewards cleared after reset")
	}
	if len(state.MoveHistory) != 0 || state.TotalMoves != 0 {
		t.Error("expected move history cleared after reset")
	}
	if state.PlayerPos != StartPosition {
		t.Errorf("expected player back at %v, got %v", StartPosition, state.PlayerPos)
	}
	if len(state.SolvedRelics) != 0 {
		t.Error("expected solved relic record cleared after reset")
	}
	if CountRoomKind(state.Grid, RoomTrap) != TrapCount {
		t.Error("expected a freshly generated grid after reset")
	}
}

func TestEngine_SnapshotIsDetached(t *testing.T) {
	eng := newTestEngine(t, 1)

	snap := eng.Snapshot()
	snap.Health = 1
	snap.Grid[0][0] = Room{Kind: RoomTrap}
	snap.SolvedRelics[9] = true

	if eng.GetHealth() == 1 {
		t.Error("mutating a snapshot changed engine health")
	}
	if eng.GetState().SolvedRelics[9] {
		t.Error("mutating a snapshot changed the solved relic record")
	}
}

func TestEngine_RelicCountMonotonic(t *testing.T) {
	eng := newTestEngine(t, 3)
	eng.GetState().Grid = craftedGrid()

	prev := 0
	rng := rand.New(rand.NewSource(99))
	dirs := []string{DirUp, DirDown, DirLeft, DirRight}
	answers := []string{"echo", "lantern", "mercury", "wrong"}

	for i := 0; i < 300 && !eng.IsGameOver(); i++ {
		if eng.GetMode() == ModePuzzle {
			eng.SubmitAnswer(answers[rng.Intn(len(answers))])
		} else {
			eng.Move(dirs[rng.Intn(len(dirs))])
		}
		if got := eng.GetRelicsCollected(); got < prev {
			t.Fatalf("relicsCollected decreased from %d to %d", prev, got)
		} else {
			prev = got
		}
		if h := eng.GetHealth(); h < 0 || h > MaxHealth {
			t.Fatalf("health %d out of bounds", h)
		}
	}
}

func TestEngine_GetPossibleMoves(t *testing.T) {
	eng := newTestEngine(t, 1)
	eng.GetState().Grid = craftedGrid()
	eng.GetState().PlayerPos = Position{X: 0, Y: 0}

	moves := eng.GetPossibleMoves()
	if len(moves) != 2 {
		t.Fatalf("expected 2 possible moves from a corner, got %v", moves)
	}
	for _, m := range moves {
		if m != DirDown && m != DirRight {
			t.Errorf("unexpected possible move %q from (0,0)", m)
		}
	}
}
