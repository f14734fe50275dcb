package engine

import "math/rand"

// GenerateGrid builds a fresh room layout. Structural placement (start,
// relics, vault) is deterministic; the rng drives only the puzzle-type
// permutation over the relic rooms, trap positions, and ambient events.
//
// The rng is consumed in a fixed order (puzzle types, then traps, then
// events) so tests can seed it and assert exact layouts.
func GenerateGrid(rng *rand.Rand, pack *ContentPack) [][]Room {
	grid := make([][]Room, GridSize)
	for y := range grid {
		grid[y] = make([]Room, GridSize)
		for x := range grid[y] {
			grid[y][x] = Room{Kind: RoomEmpty}
		}
	}

	grid[StartPosition.Y][StartPosition.X] = Room{Kind: RoomStart, Discovered: true}
	grid[FinalPosition.Y][FinalPosition.X] = Room{Kind: RoomFinal}

	// Each puzzle type gates exactly one relic.
	types := []PuzzleType{PuzzleRiddle, PuzzleScramble, PuzzleQuiz}
	perm := rng.Perm(len(types))
	for i, pos := range RelicPositions {
		grid[pos.Y][pos.X] = Room{
			Kind:       RoomRelic,
			PuzzleType: types[perm[i]],
			RelicID:    i + 1,
		}
	}

	placeTraps(rng, grid)
	assignEvents(rng, grid, pack)

	return grid
}

// placeTraps rejection-samples trap positions onto empty rooms. It never
// overwrites a non-empty room. Termination is guaranteed: the grid has 25
// cells, of which only 5 fixed cells plus at most TrapCount traps are
// occupied, leaving eligible empty cells at every step.
func placeTraps(rng *rand.Rand, grid [][]Room) {
	placed := 0
	for placed < TrapCount {
		x := rng.Intn(GridSize)
		y := rng.Intn(GridSize)
		if grid[y][x].Kind != RoomEmpty {
			continue
		}
		grid[y][x] = Room{Kind: RoomTrap}
		placed++
	}
}

// assignEvents gives each room that remained empty after trap placement an
// independent EventChance roll for an ambient event from the pack's table.
func assignEvents(rng *rand.Rand, grid [][]Room, pack *ContentPack) {
	for y := range grid {
		for x := range grid[y] {
			if grid[y][x].Kind != RoomEmpty {
				continue
			}
			if rng.Float64() < EventChance {
				ev := pack.Events[rng.Intn(len(pack.Events))]
				grid[y][x].Event = &ev
			}
		}
	}
}
