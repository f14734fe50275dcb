// Command simulate runs batches of automated Relic Quest games and prints
// win/loss statistics. The bot walks greedily toward the nearest unclaimed
// relic (then the vault) and answers puzzles correctly with a configurable
// accuracy, which gives a quick difficulty read on a content pack.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"relicquest/game/engine"
)

var (
	runs     = flag.Int("runs", 1000, "Number of games per accuracy level")
	seed     = flag.Int64("seed", 1, "Base random seed")
	packFile = flag.String("pack", "", "Content pack JSON file (default: built-in classic pack)")
	moveCap  = flag.Int("move-cap", 400, "Abort a run after this many moves")
)

// RunStats aggregates the outcomes of a simulation batch.
type RunStats struct {
	Accuracy    float64
	Runs        int
	Wins        int
	Losses      int
	Stalled     int
	TotalMoves int
	WinHealth  int // summed final health of winning runs
	WrongTotal int
}

func (s RunStats) WinRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Runs)
}

func (s RunStats) AvgMoves() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.TotalMoves) / float64(s.Runs)
}

func (s RunStats) AvgWinHealth() float64 {
	if s.Wins == 0 {
		return 0
	}
	return float64(s.WinHealth) / float64(s.Wins)
}

func main() {
	flag.Parse()

	pack, err := loadPack(*packFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load pack: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("=== Simulating pack %q (%d runs per accuracy) ===\n", pack.Name, *runs)

	accuracies := []float64{1.0, 0.9, 0.75, 0.5}
	for _, accuracy := range accuracies {
		stats := simulateBatch(pack, accuracy, *runs, *seed, *moveCap)
		printStats(stats)
	}
}

func loadPack(path string) (*engine.ContentPack, error) {
	if path == "" {
		return engine.DefaultContentPack(), nil
	}
	return engine.LoadContentPack(path)
}

// simulateBatch plays n games at the given answer accuracy and aggregates
// the outcomes. Each run gets its own derived seed so batches are
// reproducible.
func simulateBatch(pack *engine.ContentPack, accuracy float64, n int, baseSeed int64, limit int) RunStats {
	stats := RunStats{Accuracy: accuracy, Runs: n}

	for i := 0; i < n; i++ {
		rng := rand.New(rand.NewSource(baseSeed + int64(i)))
		outcome := playOne(pack, rng, accuracy, limit)

		stats.TotalMoves += outcome.moves
		stats.WrongTotal += outcome.wrongAnswers
		switch {
		case outcome.won:
			stats.Wins++
			stats.WinHealth += outcome.health
		case outcome.stalled:
			stats.Stalled++
		default:
			stats.Losses++
		}
	}

	return stats
}

type runOutcome struct {
	won          bool
	stalled      bool
	moves        int
	health       int
	wrongAnswers int
}

// playOne plays a single game to completion with the greedy bot.
func playOne(pack *engine.ContentPack, rng *rand.Rand, accuracy float64, limit int) runOutcome {
	eng, err := engine.NewEngine(pack, rng)
	if err != nil {
		return runOutcome{stalled: true}
	}

	var out runOutcome
	for !eng.IsGameOver() {
		state := eng.GetState()

		if state.Mode == engine.ModePuzzle {
			if !eng.SubmitAnswer(pickAnswer(state, rng, accuracy)) {
				out.wrongAnswers++
			}
			continue
		}

		if out.moves >= limit {
			out.stalled = true
			break
		}

		eng.Move(pickDirection(state, rng))
		out.moves++
	}

	out.won = eng.IsVictory()
	out.health = eng.GetHealth()
	return out
}

// pickAnswer returns the correct answer with probability accuracy,
// otherwise a deliberately wrong one.
func pickAnswer(state *engine.GameState, rng *rand.Rand, accuracy float64) string {
	correct := state.ActivePuzzle.Puzzle.Answer
	if rng.Float64() < accuracy {
		return correct
	}

	// Wrong on purpose: a quiz picks a wrong option, others mangle the answer
	if opts := state.ActivePuzzle.Puzzle.Options; len(opts) > 1 {
		for {
			opt := opts[rng.Intn(len(opts))]
			if !strings.EqualFold(opt, correct) {
				return opt
			}
		}
	}
	return correct + "x"
}

// pickDirection moves greedily toward the nearest unclaimed relic, or
// toward the vault once all relics are claimed. Ties break randomly.
func pickDirection(state *engine.GameState, rng *rand.Rand) string {
	target := engine.FinalPosition
	if pos, _, ok := engine.FindNearestUnclaimedRelic(state); ok {
		target = pos
	}

	var preferred []string
	if target.X < state.PlayerPos.X {
		preferred = append(preferred, "left")
	}
	if target.X > state.PlayerPos.X {
		preferred = append(preferred, "right")
	}
	if target.Y < state.PlayerPos.Y {
		preferred = append(preferred, "up")
	}
	if target.Y > state.PlayerPos.Y {
		preferred = append(preferred, "down")
	}

	if len(preferred) == 0 {
		// Standing on a locked vault or a claimed relic room: wander
		all := []string{"up", "down", "left", "right"}
		return all[rng.Intn(len(all))]
	}

	return preferred[rng.Intn(len(preferred))]
}

func printStats(s RunStats) {
	fmt.Printf("\n--- Answer accuracy %.0f%% ---\n", s.Accuracy*100)
	fmt.Printf("Wins:           %d/%d (%.1f%%)\n", s.Wins, s.Runs, s.WinRate()*100)
	fmt.Printf("Losses:         %d\n", s.Losses)
	if s.Stalled > 0 {
		fmt.Printf("Stalled:        %d (hit move cap)\n", s.Stalled)
	}
	fmt.Printf("Avg moves:      %.1f\n", s.AvgMoves())
	if s.Wins > 0 {
		fmt.Printf("Avg win health: %.1f\n", s.AvgWinHealth())
	}
	fmt.Printf("Wrong answers:  %d total\n", s.WrongTotal)
}
