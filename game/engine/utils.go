package engine

// CountRoomKind counts the rooms of a specific kind in the grid
func CountRoomKind(grid [][]Room, kind RoomKind) int {
	count := 0
	for _, row := range grid {
		for _, room := range row {
			if room.Kind == kind {
				count++
			}
		}
	}
	return count
}

// CountDiscovered counts the rooms the player has entered so far
func CountDiscovered(grid [][]Room) int {
	count := 0
	for _, row := range grid {
		for _, room := range row {
			if room.Discovered {
				count++
			}
		}
	}
	return count
}

// ManhattanDistance calculates the Manhattan distance between two positions
func ManhattanDistance(from, to Position) int {
	dx := from.X - to.X
	if dx < 0 {
		dx = -dx
	}
	dy := from.Y - to.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// FindNearestUnclaimedRelic finds the closest relic room whose puzzle has
// not been solved and returns its position and distance.
func FindNearestUnclaimedRelic(state *GameState) (Position, int, bool) {
	minDistance := -1
	var nearestPos Position
	found := false

	for y := range state.Grid {
		for x := range state.Grid[y] {
			room := state.Grid[y][x]
			if room.Kind != RoomRelic || state.SolvedRelics[room.RelicID] {
				continue
			}
			pos := Position{X: x, Y: y}
			distance := ManhattanDistance(state.PlayerPos, pos)
			if minDistance == -1 || distance < minDistance {
				minDistance = distance
				nearestPos = pos
				found = true
			}
		}
	}

	return nearestPos, minDistance, found
}

// AnalyzeHealthRisk assesses how close the player is to defeat. The
// thresholds reflect the game's damage rules: a single wrong answer costs
// 10 health and ends the game if health lands at 10 or below, and a trap
// can deal up to 29.
func AnalyzeHealthRisk(state *GameState) string {
	switch {
	case state.Health <= 0:
		return "CRITICAL: You have fallen!"
	case state.Health <= InstantLossThreshold+WrongAnswerPenalty:
		return "DANGER: One wrong answer ends the run!"
	case state.Health <= TrapBaseDamage+TrapDamageSpread:
		return "CAUTION: A single trap could finish you"
	case state.Health <= state.MaxHealth/2:
		return "LOW: Seek out a healing spring"
	}
	return "SAFE: Health sufficient"
}
