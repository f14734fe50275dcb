package engine

import (
	"math/rand"
	"testing"
)

func TestGenerateGrid_Invariants(t *testing.T) {
	pack := DefaultContentPack()

	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		grid := GenerateGrid(rng, pack)

		if got := CountRoomKind(grid, RoomStart); got != 1 {
			t.Fatalf("seed %d: expected 1 start room, got %d", seed, got)
		}
		if got := CountRoomKind(grid, RoomRelic); got != RelicCount {
			t.Fatalf("seed %d: expected %d relic rooms, got %d", seed, RelicCount, got)
		}
		if got := CountRoomKind(grid, RoomFinal); got != 1 {
			t.Fatalf("seed %d: expected 1 final room, got %d", seed, got)
		}
		if got := CountRoomKind(grid, RoomTrap); got != TrapCount {
			t.Fatalf("seed %d: expected %d trap rooms, got %d", seed, TrapCount, got)
		}

		// Fixed structural placement
		if grid[StartPosition.Y][StartPosition.X].Kind != RoomStart {
			t.Fatalf("seed %d: start room not at %v", seed, StartPosition)
		}
		if !grid[StartPosition.Y][StartPosition.X].Discovered {
			t.Fatalf("seed %d: start room should begin discovered", seed)
		}
		if grid[FinalPosition.Y][FinalPosition.X].Kind != RoomFinal {
			t.Fatalf("seed %d: final room not at %v", seed, FinalPosition)
		}

		// Each puzzle type gates exactly one relic, ids are 1..3
		types := map[PuzzleType]int{}
		for i, pos := range RelicPositions {
			room := grid[pos.Y][pos.X]
			if room.Kind != RoomRelic {
				t.Fatalf("seed %d: expected relic at %v, got %s", seed, pos, room.Kind)
			}
			if room.RelicID != i+1 {
				t.Fatalf("seed %d: relic at %v has id %d, want %d", seed, pos, room.RelicID, i+1)
			}
			types[room.PuzzleType]++
		}
		for _, pt := range []PuzzleType{PuzzleRiddle, PuzzleScramble, PuzzleQuiz} {
			if types[pt] != 1 {
				t.Fatalf("seed %d: puzzle type %s used %d times, want 1", seed, pt, types[pt])
			}
		}
	}
}

func TestGenerateGrid_EventsOnlyOnEmptyRooms(t *testing.T) {
	pack := DefaultContentPack()

	for seed := int64(0); seed < 100; seed++ {
		rng := rand.New(rand.NewSource(seed))
		grid := GenerateGrid(rng, pack)

		for y := range grid {
			for x := range grid[y] {
				room := grid[y][x]
				if room.Event != nil && room.Kind != RoomEmpty {
					t.Fatalf("seed %d: %s room at (%d,%d) carries an ambient event", seed, room.Kind, x, y)
				}
			}
		}
	}
}

func TestGenerateGrid_Deterministic(t *testing.T) {
	pack := DefaultContentPack()

	a := GenerateGrid(rand.New(rand.NewSource(42)), pack)
	b := GenerateGrid(rand.New(rand.NewSource(42)), pack)

	for y := range a {
		for x := range a[y] {
			ra, rb := a[y][x], b[y][x]
			if ra.Kind != rb.Kind || ra.PuzzleType != rb.PuzzleType || ra.RelicID != rb.RelicID {
				t.Fatalf("same seed produced different rooms at (%d,%d): %+v vs %+v", x, y, ra, rb)
			}
			if (ra.Event == nil) != (rb.Event == nil) {
				t.Fatalf("same seed produced different events at (%d,%d)", x, y)
			}
			if ra.Event != nil && ra.Event.Message != rb.Event.Message {
				t.Fatalf("same seed produced different event content at (%d,%d)", x, y)
			}
		}
	}
}

func TestGenerateGrid_FreshSeedsDiffer(t *testing.T) {
	pack := DefaultContentPack()

	// With 4 traps over 20 candidate cells, two seeds out of fifty
	// producing identical trap layouts every time would indicate the rng
	// is not actually being consumed.
	base := GenerateGrid(rand.New(rand.NewSource(1)), pack)
	differs := false
	for seed := int64(2); seed < 50 && !differs; seed++ {
		other := GenerateGrid(rand.New(rand.NewSource(seed)), pack)
		for y := range base {
			for x := range base[y] {
				if base[y][x].Kind != other[y][x].Kind {
					differs = true
				}
			}
		}
	}
	if !differs {
		t.Error("expected trap placement to vary across seeds")
	}
}
