package engine

// RoomKind represents the fixed type of a grid room
type RoomKind string

const (
	RoomEmpty RoomKind = "empty"
	RoomRelic RoomKind = "relic"
	RoomTrap  RoomKind = "trap"
	RoomFinal RoomKind = "final"
	RoomStart RoomKind = "start"
)

// PuzzleType identifies one of the three catalog puzzle families
type PuzzleType string

const (
	PuzzleRiddle   PuzzleType = "riddle"
	PuzzleScramble PuzzleType = "scramble"
	PuzzleQuiz     PuzzleType = "quiz"
)

// PuzzleTag distinguishes how a puzzle entered play. Resolution logic
// branches on the tag, never on object identity.
type PuzzleTag string

const (
	TagCatalog PuzzleTag = "catalog"
	TagFinal   PuzzleTag = "final"
	TagBonus   PuzzleTag = "bonus"
)

// EventKind classifies an ambient room event
type EventKind string

const (
	EventHeal   EventKind = "heal"
	EventDamage EventKind = "damage"
	EventHint   EventKind = "hint"
	EventFlavor EventKind = "flavor"
)

// Mode is the explicit session state machine. Exactly one mode is active
// at any time; ModeWon and ModeLost are terminal and only Reset exits them.
type Mode string

const (
	ModeExploring Mode = "exploring"
	ModePuzzle    Mode = "puzzle"
	ModeWon       Mode = "won"
	ModeLost      Mode = "lost"
)

// Game rule constants. Grid geometry and difficulty are deliberately not
// configurable; content packs only carry text and the event table.
const (
	GridSize   = 5
	RelicCount = 3
	TrapCount  = 4
	MaxHealth  = 100

	TrapBaseDamage   = 20
	TrapDamageSpread = 10

	WrongAnswerPenalty   = 10
	InstantLossThreshold = 10
	SolveHeal            = 15

	RelicGoldBase  = 100
	RelicGoldPerID = 50
	RelicXPBase    = 50
	RelicXPPerID   = 25

	// Probability that a leftover empty room receives an ambient event.
	EventChance = 0.30
)

// Structural placement is fixed; only trap positions, ambient events, and
// the puzzle-type permutation over the relic rooms are randomized.
var (
	StartPosition  = Position{X: 2, Y: 2}
	FinalPosition  = Position{X: 4, Y: 4}
	RelicPositions = [RelicCount]Position{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}
)

// Position represents x,y coordinates on the grid
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Puzzle is a single question with a canonical answer. Answers are
// compared trimmed and case-folded.
type Puzzle struct {
	Type     PuzzleType `json:"type"`
	Question string     `json:"question"`
	Answer   string     `json:"answer"`
	Options  []string   `json:"options,omitempty"`
	Hint     string     `json:"hint,omitempty"`
}

// AmbientEvent is a non-puzzle effect attached to some empty rooms at
// generation time. Magnitude applies only to heal and damage kinds.
type AmbientEvent struct {
	Kind      EventKind `json:"kind"`
	Magnitude int       `json:"magnitude,omitempty"`
	Message   string    `json:"message"`
}

// Room represents a single grid cell. Kind, PuzzleType, RelicID, and Event
// are immutable once generated; only Discovered changes, and only from
// false to true.
type Room struct {
	Kind       RoomKind      `json:"kind"`
	Discovered bool          `json:"discovered"`
	PuzzleType PuzzleType    `json:"puzzle_type,omitempty"` // relic rooms only
	RelicID    int           `json:"relic_id,omitempty"`    // relic rooms only, 1-based
	Event      *AmbientEvent `json:"event,omitempty"`       // empty rooms only
}

// ActivePuzzle is the puzzle currently blocking input, if any.
type ActivePuzzle struct {
	Tag     PuzzleTag `json:"tag"`
	Puzzle  Puzzle    `json:"puzzle"`
	RelicID int       `json:"relic_id,omitempty"` // set when Tag == TagCatalog
}

// GameState represents the complete session state. The grid is owned by
// the engine; collaborators must use Snapshot for a read-only copy.
type GameState struct {
	Grid            [][]Room           `json:"grid"`
	PlayerPos       Position           `json:"player_pos"`
	Health          int                `json:"health"`
	MaxHealth       int                `json:"max_health"`
	RelicsCollected int                `json:"relics_collected"`
	Gold            int                `json:"gold"`
	Experience      int                `json:"experience"`
	Title           string             `json:"title"`
	Narrative       string             `json:"narrative"`
	Mode            Mode               `json:"mode"`
	ActivePuzzle    *ActivePuzzle      `json:"active_puzzle,omitempty"`
	RewardsPending  bool               `json:"rewards_pending"`
	SolvedRelics    map[int]bool       `json:"solved_relics"`
	PackName        string             `json:"pack_name"`
	MoveHistory     []MoveHistoryEntry `json:"move_history"`
	TotalMoves      int                `json:"total_moves"`

	// Computed helper view (not required for core game logic)
	HealthRisk string `json:"health_risk,omitempty"`
}

// MoveHistoryEntry records a single move attempt within the session.
// The history does not survive Reset.
type MoveHistoryEntry struct {
	Action       string   `json:"action"`
	FromPosition Position `json:"from_position"`
	ToPosition   Position `json:"to_position"`
	Health       int      `json:"health"`
	Timestamp    int64    `json:"timestamp"`
	Success      bool     `json:"success"`
	MoveNumber   int      `json:"move_number"`
}

// IsGameOver reports whether the session is in a terminal mode.
func (gs *GameState) IsGameOver() bool {
	return gs.Mode == ModeWon || gs.Mode == ModeLost
}

// roomAt returns the room under the given position. Callers must pass
// in-bounds coordinates.
func (gs *GameState) roomAt(pos Position) *Room {
	return &gs.Grid[pos.Y][pos.X]
}
