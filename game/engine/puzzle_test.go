package engine

import (
	"testing"
)

func openCatalogPuzzle(gs *GameState, pack *ContentPack, relicID int) {
	puzzle, _ := pack.CatalogPuzzle(PuzzleRiddle)
	gs.Mode = ModePuzzle
	gs.ActivePuzzle = &ActivePuzzle{Tag: TagCatalog, Puzzle: puzzle, RelicID: relicID}
}

func TestSubmitAnswer_NoActivePuzzleIsNoOp(t *testing.T) {
	pack := DefaultContentPack()
	gs := blankState(pack)
	before := *gs

	if gs.ResolveAnswer("echo", pack) {
		t.Error("expected no-op result without an active puzzle")
	}
	if gs.Health != before.Health || gs.Mode != before.Mode {
		t.Error("submit without active puzzle mutated state")
	}
}

func TestSubmitAnswer_CorrectCatalogClaimsRelic(t *testing.T) {
	pack := DefaultContentPack()
	gs := blankState(pack)
	gs.Health = 50
	openCatalogPuzzle(gs, pack, 2)

	if !gs.ResolveAnswer("echo", pack) {
		t.Fatal("expected correct answer to be accepted")
	}

	if gs.RelicsCollected != 1 {
		t.Errorf("expected 1 relic collected, got %d", gs.RelicsCollected)
	}
	if !gs.SolvedRelics[2] {
		t.Error("expected relic 2 recorded as solved")
	}
	wantGold := RelicGoldBase + RelicGoldPerID*2
	if gs.Gold != wantGold {
		t.Errorf("expected %d gold, got %d", wantGold, gs.Gold)
	}
	wantXP := RelicXPBase + RelicXPPerID*2
	if gs.Experience != wantXP {
		t.Errorf("expected %d experience, got %d", wantXP, gs.Experience)
	}
	if gs.Health != 50+SolveHeal {
		t.Errorf("expected health %d after solve heal, got %d", 50+SolveHeal, gs.Health)
	}
	if gs.Mode != ModeExploring || gs.ActivePuzzle != nil {
		t.Error("expected puzzle closed and mode back to exploring")
	}
}

func TestSubmitAnswer_SolveHealCapsAtMax(t *testing.T) {
	pack := DefaultContentPack()
	gs := blankState(pack)
	gs.Health = MaxHealth - 5
	openCatalogPuzzle(gs, pack, 1)

	gs.ResolveAnswer("echo", pack)

	if gs.Health != MaxHealth {
		t.Errorf("expected health capped at %d, got %d", MaxHealth, gs.Health)
	}
}

func TestSubmitAnswer_Normalization(t *testing.T) {
	pack := DefaultContentPack()

	cases := []struct {
		name    string
		input   string
		correct bool
	}{
		{"exact", "echo", true},
		{"upper", "ECHO", true},
		{"mixed with spaces", "  EcHo \t", true},
		{"wrong", "wind", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gs := blankState(pack)
			openCatalogPuzzle(gs, pack, 1)

			if got := gs.ResolveAnswer(tc.input, pack); got != tc.correct {
				t.Errorf("ResolveAnswer(%q) = %v, want %v", tc.input, got, tc.correct)
			}
		})
	}
}

func TestSubmitAnswer_WrongAnswerDeductsHealth(t *testing.T) {
	pack := DefaultContentPack()
	gs := blankState(pack)
	gs.Health = 50
	openCatalogPuzzle(gs, pack, 1)

	gs.ResolveAnswer("wrong", pack)

	if gs.Health != 50-WrongAnswerPenalty {
		t.Errorf("expected health %d, got %d", 50-WrongAnswerPenalty, gs.Health)
	}
	if gs.Mode != ModePuzzle || gs.ActivePuzzle == nil {
		t.Error("expected puzzle to remain open above the instant-loss threshold")
	}
}

func TestSubmitAnswer_WrongAnswerInstantLoss(t *testing.T) {
	pack := DefaultContentPack()
	gs := blankState(pack)
	gs.Health = 20
	openCatalogPuzzle(gs, pack, 1)

	gs.ResolveAnswer("wrong", pack)

	// 20 - 10 = 10, which is <= the threshold even though it is not zero.
	if gs.Health != 10 {
		t.Errorf("expected health 10, got %d", gs.Health)
	}
	if gs.Mode != ModeLost {
		t.Errorf("expected mode %s, got %s", ModeLost, gs.Mode)
	}
	if gs.ActivePuzzle != nil {
		t.Error("expected puzzle force-closed on instant loss")
	}
	if gs.Narrative != pack.Messages.WrongAnswerDeath {
		t.Errorf("expected death narrative, got %q", gs.Narrative)
	}
}

func TestSubmitAnswer_FinalChainsIntoBonus(t *testing.T) {
	pack := DefaultContentPack()
	gs := blankState(pack)
	gs.RelicsCollected = RelicCount
	gs.Mode = ModePuzzle
	gs.ActivePuzzle = &ActivePuzzle{Tag: TagFinal, Puzzle: pack.FinalPuzzle}

	if !gs.ResolveAnswer(pack.FinalPuzzle.Answer, pack) {
		t.Fatal("expected final answer accepted")
	}

	if gs.Mode != ModePuzzle {
		t.Errorf("solving the final puzzle must not end the game, mode is %s", gs.Mode)
	}
	if gs.ActivePuzzle == nil || gs.ActivePuzzle.Tag != TagBonus {
		t.Fatalf("expected the bonus puzzle to take over, got %+v", gs.ActivePuzzle)
	}
	if gs.Narrative != pack.Messages.BonusPrompt {
		t.Errorf("expected bonus prompt narrative, got %q", gs.Narrative)
	}
}

func TestSubmitAnswer_BonusWinsTheGame(t *testing.T) {
	pack := DefaultContentPack()
	gs := blankState(pack)
	gs.RelicsCollected = RelicCount
	gs.Gold = 450
	gs.Experience = 225
	gs.Mode = ModePuzzle
	gs.ActivePuzzle = &ActivePuzzle{Tag: TagBonus, Puzzle: pack.BonusPuzzle}

	if !gs.ResolveAnswer(pack.BonusPuzzle.Answer, pack) {
		t.Fatal("expected bonus answer accepted")
	}

	if gs.Mode != ModeWon {
		t.Errorf("expected mode %s, got %s", ModeWon, gs.Mode)
	}
	if gs.Gold != 450+pack.FinalReward.Gold {
		t.Errorf("expected gold %d, got %d", 450+pack.FinalReward.Gold, gs.Gold)
	}
	if gs.Experience != 225+pack.FinalReward.Experience {
		t.Errorf("expected experience %d, got %d", 225+pack.FinalReward.Experience, gs.Experience)
	}
	if gs.Title != pack.FinalReward.Title {
		t.Errorf("expected title %q, got %q", pack.FinalReward.Title, gs.Title)
	}
	if !gs.RewardsPending {
		t.Error("expected rewards summary flag raised")
	}
	if gs.ActivePuzzle != nil {
		t.Error("expected puzzle closed after victory")
	}
}
