package engine

// Clone returns a deep copy of the state. Renderers and transports work
// against clones so the engine's grid is never exposed for mutation.
func (gs *GameState) Clone() *GameState {
	out := *gs

	out.Grid = make([][]Room, len(gs.Grid))
	for y, row := range gs.Grid {
		out.Grid[y] = make([]Room, len(row))
		copy(out.Grid[y], row)
		for x, room := range row {
			if room.Event != nil {
				ev := *room.Event
				out.Grid[y][x].Event = &ev
			}
		}
	}

	if gs.ActivePuzzle != nil {
		ap := *gs.ActivePuzzle
		ap.Puzzle.Options = append([]string(nil), gs.ActivePuzzle.Puzzle.Options...)
		out.ActivePuzzle = &ap
	}

	out.SolvedRelics = make(map[int]bool, len(gs.SolvedRelics))
	for id, solved := range gs.SolvedRelics {
		out.SolvedRelics[id] = solved
	}

	out.MoveHistory = append([]MoveHistoryEntry(nil), gs.MoveHistory...)

	return &out
}
