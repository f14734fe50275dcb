// Package engine provides the core game logic for Relic Quest.
//
// The engine package implements the game mechanics including:
//   - Randomized 5x5 dungeon grid generation
//   - Room discovery and one-shot resolution of traps and ambient events
//   - Puzzle-gated relic collection with scaled rewards
//   - The final vault gate and the scripted final/bonus puzzle chain
//   - An explicit exploring/puzzle/won/lost mode state machine
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. GameState holds the mutable session state,
// while ContentPack carries the static puzzle catalog, ambient event
// table, and narrative text loaded from JSON files.
//
// Usage:
//
//	pack, err := engine.LoadContentPackByName("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine, err := engine.NewEngine(pack, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameEngine.Move("up")
//	gameEngine.SubmitAnswer("echo")
//	snapshot := gameEngine.Snapshot()
//
// Game Rules:
//
// The player starts at the center of a 5x5 grid of hidden rooms. Three
// corner rooms hold relics, each gated by a puzzle; one corner holds the
// sealed treasure vault. Traps and ambient events damage or heal the
// player as rooms are first discovered. Collecting all three relics
// unlocks the vault, where solving the final puzzle and then the bonus
// puzzle wins the game. Health reaching zero, or a wrong answer that
// leaves health at ten or below, ends the game in defeat. Only Reset
// leaves a terminal state.
package engine
