// Command play runs Relic Quest as a local terminal game, driving the
// engine directly without the HTTP server.
//
// Commands: up/down/left/right (or u/d/l/r), answer <text>, map, status,
// hint, reset, quit.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/gookit/color"

	"relicquest/game/engine"
)

var (
	packFile = flag.String("pack", "", "Content pack JSON file (default: built-in classic pack)")
	seed     = flag.Int64("seed", 0, "Random seed (0 = time-seeded)")
)

// styles for the map and status output
var (
	stylePlayer    = color.Style{color.FgGreen, color.OpBold}
	styleRelic     = color.Style{color.FgYellow, color.OpBold}
	styleClaimed   = color.Style{color.FgYellow}
	styleTrap      = color.Style{color.FgRed}
	styleVault     = color.Style{color.FgMagenta, color.OpBold}
	styleHidden    = color.Style{color.FgGray}
	styleNarrative = color.Style{color.FgCyan}
	styleDanger    = color.Style{color.FgRed, color.OpBold}
	styleGood      = color.Style{color.FgGreen}
	styleSubtle    = color.Style{color.FgGray}
)

func main() {
	flag.Parse()

	pack, err := loadPack(*packFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load pack: %v\n", err)
		os.Exit(1)
	}

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}

	eng, err := engine.NewEngine(pack, rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start game: %v\n", err)
		os.Exit(1)
	}

	styleVault.Println("=== RELIC QUEST ===")
	fmt.Println()
	render(eng)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		cmd, arg := splitCommand(line)

		switch cmd {
		case "quit", "exit", "q":
			fmt.Println("Farewell, delver.")
			return

		case "up", "u":
			doMove(eng, "up")
		case "down", "d":
			doMove(eng, "down")
		case "left", "l":
			doMove(eng, "left")
		case "right", "r":
			doMove(eng, "right")

		case "answer", "a":
			if arg == "" {
				styleSubtle.Println("Usage: answer <text>")
				continue
			}
			doAnswer(eng, arg)

		case "map", "m", "status", "s":
			render(eng)

		case "hint", "h":
			showHint(eng)

		case "reset":
			eng.Reset()
			styleSubtle.Println("The vault reshuffles itself around you.")
			render(eng)

		case "help", "?":
			printHelp()

		default:
			styleSubtle.Printf("Unknown command %q. Type 'help' for commands.\n", cmd)
		}
	}
}

func splitCommand(line string) (cmd, arg string) {
	parts := strings.SplitN(line, " ", 2)
	cmd = strings.ToLower(parts[0])
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}

func loadPack(path string) (*engine.ContentPack, error) {
	if path == "" {
		return engine.DefaultContentPack(), nil
	}
	return engine.LoadContentPack(path)
}

func doMove(eng *engine.GameEngine, direction string) {
	state := eng.Snapshot()
	if state.Mode == engine.ModePuzzle {
		styleDanger.Println("A puzzle blocks your way. Use 'answer <text>'.")
		return
	}

	if !eng.Move(direction) {
		if eng.IsGameOver() {
			render(eng)
			return
		}
		styleSubtle.Println("A wall. You go nowhere.")
		return
	}

	render(eng)
}

func doAnswer(eng *engine.GameEngine, text string) {
	state := eng.Snapshot()
	if state.ActivePuzzle == nil {
		styleSubtle.Println("Nothing is asking you a question right now.")
		return
	}

	if eng.SubmitAnswer(text) {
		styleGood.Println("Correct!")
	} else if !eng.IsGameOver() {
		styleDanger.Println("Wrong!")
	}

	render(eng)
}

func showHint(eng *engine.GameEngine) {
	state := eng.Snapshot()

	if state.ActivePuzzle != nil {
		if state.ActivePuzzle.Puzzle.Hint != "" {
			styleNarrative.Printf("Hint: %s\n", state.ActivePuzzle.Puzzle.Hint)
		} else {
			styleSubtle.Println("This puzzle offers no hint.")
		}
		return
	}

	if pos, dist, ok := engine.FindNearestUnclaimedRelic(state); ok {
		styleNarrative.Printf("The nearest unclaimed relic lies at (%d,%d), %d rooms away.\n", pos.X, pos.Y, dist)
		return
	}

	styleNarrative.Printf("All relics are claimed. The vault waits at (%d,%d).\n",
		engine.FinalPosition.X, engine.FinalPosition.Y)
}

// render draws the map, status line, and any pending puzzle or narrative.
func render(eng *engine.GameEngine) {
	state := eng.Snapshot()

	fmt.Println()
	for y := range state.Grid {
		var row strings.Builder
		for x := range state.Grid[y] {
			row.WriteString(cellString(state, x, y))
			row.WriteString(" ")
		}
		fmt.Println(" " + row.String())
	}
	fmt.Println()

	healthStyle := styleGood
	if state.Health <= 30 {
		healthStyle = styleDanger
	}
	fmt.Printf(" Health: %s  Relics: %s  Gold: %d  XP: %d  Moves: %d\n",
		healthStyle.Sprintf("%d/%d", state.Health, state.MaxHealth),
		styleRelic.Sprintf("%d/%d", state.RelicsCollected, engine.RelicCount),
		state.Gold, state.Experience, state.TotalMoves)

	risk := engine.AnalyzeHealthRisk(state)
	if strings.HasPrefix(risk, "CRITICAL") || strings.HasPrefix(risk, "DANGER") {
		fmt.Printf(" %s\n", styleDanger.Sprint(risk))
	}

	if state.Narrative != "" {
		fmt.Println()
		styleNarrative.Println(" " + state.Narrative)
	}

	if state.ActivePuzzle != nil {
		p := state.ActivePuzzle
		fmt.Println()
		styleVault.Printf(" PUZZLE (%s):\n", p.Puzzle.Type)
		fmt.Printf(" %s\n", p.Puzzle.Question)
		if len(p.Puzzle.Options) > 0 {
			fmt.Printf(" Options: %s\n", strings.Join(p.Puzzle.Options, ", "))
		}
	}

	switch state.Mode {
	case engine.ModeWon:
		fmt.Println()
		styleGood.Printf(" VICTORY! You claim the title: %s\n", state.Title)
		styleSubtle.Println(" Type 'reset' to delve again or 'quit' to leave.")
	case engine.ModeLost:
		fmt.Println()
		styleDanger.Println(" GAME OVER")
		styleSubtle.Println(" Type 'reset' to try again or 'quit' to leave.")
	}
}

func cellString(state *engine.GameState, x, y int) string {
	if x == state.PlayerPos.X && y == state.PlayerPos.Y {
		return stylePlayer.Sprint("@")
	}

	room := state.Grid[y][x]
	if !room.Discovered {
		return styleHidden.Sprint("?")
	}

	switch room.Kind {
	case engine.RoomStart:
		return styleSubtle.Sprint("S")
	case engine.RoomRelic:
		if state.SolvedRelics[room.RelicID] {
			return styleClaimed.Sprint("r")
		}
		return styleRelic.Sprint("R")
	case engine.RoomTrap:
		return styleTrap.Sprint("X")
	case engine.RoomFinal:
		return styleVault.Sprint("V")
	default:
		return styleSubtle.Sprint(".")
	}
}

func printHelp() {
	fmt.Println("Commands:")
	fmt.Println("  up/down/left/right (u/d/l/r)  Move one room")
	fmt.Println("  answer <text> (a)             Answer the active puzzle")
	fmt.Println("  map (m)                       Redraw the map and status")
	fmt.Println("  hint (h)                      Puzzle hint, or nearest relic")
	fmt.Println("  reset                         Start a fresh run")
	fmt.Println("  quit (q)                      Leave the game")
}
