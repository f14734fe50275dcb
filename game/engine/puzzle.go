package engine

import (
	"fmt"
	"strings"
)

// NormalizeAnswer trims surrounding whitespace; comparison is case-folded
// on top of this.
func NormalizeAnswer(text string) string {
	return strings.TrimSpace(text)
}

// answerMatches compares a submitted answer to a puzzle's canonical
// answer, trimmed and case-insensitively.
func answerMatches(submitted, canonical string) bool {
	return strings.EqualFold(NormalizeAnswer(submitted), NormalizeAnswer(canonical))
}

// ResolveAnswer applies a submitted answer to the active puzzle. It is a
// no-op when no puzzle is active; blank submissions count as wrong
// answers. The return value reports whether the answer was correct.
func (gs *GameState) ResolveAnswer(text string, pack *ContentPack) bool {
	if gs.Mode != ModePuzzle || gs.ActivePuzzle == nil {
		return false
	}

	if !answerMatches(text, gs.ActivePuzzle.Puzzle.Answer) {
		gs.failAnswer(pack)
		return false
	}

	switch gs.ActivePuzzle.Tag {
	case TagCatalog:
		gs.claimRelic(pack)
	case TagFinal:
		// The final answer does not end the game; the bonus puzzle takes
		// the final puzzle's place in the same prompt.
		gs.ActivePuzzle = &ActivePuzzle{Tag: TagBonus, Puzzle: pack.BonusPuzzle}
		gs.Narrative = pack.Messages.BonusPrompt
	case TagBonus:
		gs.winGame(pack)
	}
	return true
}

// claimRelic grants the relic's scaled reward and closes the puzzle.
// Rewards scale by relic identity, not by the order relics are solved.
func (gs *GameState) claimRelic(pack *ContentPack) {
	id := gs.ActivePuzzle.RelicID

	gold := RelicGoldBase + RelicGoldPerID*id
	xp := RelicXPBase + RelicXPPerID*id
	gs.Gold += gold
	gs.Experience += xp

	gs.RelicsCollected++
	gs.SolvedRelics[id] = true

	gs.Health += SolveHeal
	if gs.Health > gs.MaxHealth {
		gs.Health = gs.MaxHealth
	}

	gs.ActivePuzzle = nil
	gs.Mode = ModeExploring
	gs.Narrative = fmt.Sprintf(pack.Messages.RelicClaimed, gold, xp)
}

// winGame enters the won terminal state and pays out the final reward.
func (gs *GameState) winGame(pack *ContentPack) {
	gs.Gold += pack.FinalReward.Gold
	gs.Experience += pack.FinalReward.Experience
	gs.Title = pack.FinalReward.Title

	gs.ActivePuzzle = nil
	gs.Mode = ModeWon
	gs.RewardsPending = true
	gs.Narrative = pack.Messages.Victory
}

// failAnswer deducts the wrong-answer penalty. A wrong answer that leaves
// health at or below the instant-loss threshold ends the game outright,
// a harsher rule than trap damage, which only kills at exactly zero.
func (gs *GameState) failAnswer(pack *ContentPack) {
	gs.Health -= WrongAnswerPenalty
	if gs.Health < 0 {
		gs.Health = 0
	}

	if gs.Health <= InstantLossThreshold {
		gs.ActivePuzzle = nil
		gs.Mode = ModeLost
		gs.Narrative = pack.Messages.WrongAnswerDeath
		return
	}
	gs.Narrative = fmt.Sprintf(pack.Messages.WrongAnswer, WrongAnswerPenalty)
}
