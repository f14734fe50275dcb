package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ContentPack carries the static content of a game: the puzzle catalog,
// the scripted final and bonus puzzles, the ambient event table, flavor
// text, narrative messages, and the final reward payout. Packs are loaded
// once at startup and never mutated by gameplay.
type ContentPack struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Catalog     []Puzzle       `json:"catalog"` // exactly one puzzle per type
	FinalPuzzle Puzzle         `json:"final_puzzle"`
	BonusPuzzle Puzzle         `json:"bonus_puzzle"`
	Events      []AmbientEvent `json:"events"`
	Flavor      []string       `json:"flavor"` // empty-room narrative lines
	Messages    struct {
		Welcome          string `json:"welcome"`
		RelicFound       string `json:"relic_found"`
		RelicClaimed     string `json:"relic_claimed"`
		TrapHit          string `json:"trap_hit"`
		TrapDeath        string `json:"trap_death"`
		FinalLocked      string `json:"final_locked"`
		FinalOpen        string `json:"final_open"`
		BonusPrompt      string `json:"bonus_prompt"`
		WrongAnswer      string `json:"wrong_answer"`
		WrongAnswerDeath string `json:"wrong_answer_death"`
		Victory          string `json:"victory"`
	} `json:"messages"`
	FinalReward struct {
		Gold       int    `json:"gold"`
		Experience int    `json:"experience"`
		Title      string `json:"title"`
	} `json:"final_reward"`
}

// CatalogPuzzle returns the catalog puzzle of the given type.
func (p *ContentPack) CatalogPuzzle(t PuzzleType) (Puzzle, bool) {
	for _, pz := range p.Catalog {
		if pz.Type == t {
			return pz, true
		}
	}
	return Puzzle{}, false
}

// ValidateContentPack validates a content pack for correctness and playability
func ValidateContentPack(pack *ContentPack) error {
	if pack.Name == "" {
		return fmt.Errorf("pack validation: name is required")
	}
	if pack.Description == "" {
		return fmt.Errorf("pack validation: description is required")
	}

	// Validate catalog: exactly one puzzle per type
	if len(pack.Catalog) != RelicCount {
		return fmt.Errorf("pack validation: catalog must contain exactly %d puzzles, got %d", RelicCount, len(pack.Catalog))
	}
	seen := map[PuzzleType]bool{}
	for i, pz := range pack.Catalog {
		if err := validatePuzzle(pz, fmt.Sprintf("catalog[%d]", i)); err != nil {
			return err
		}
		if pz.Type != PuzzleRiddle && pz.Type != PuzzleScramble && pz.Type != PuzzleQuiz {
			return fmt.Errorf("pack validation: catalog[%d] has unknown type '%s'", i, pz.Type)
		}
		if seen[pz.Type] {
			return fmt.Errorf("pack validation: duplicate catalog puzzle type '%s'", pz.Type)
		}
		seen[pz.Type] = true
	}

	// Validate scripted puzzles
	if err := validatePuzzle(pack.FinalPuzzle, "final_puzzle"); err != nil {
		return err
	}
	if err := validatePuzzle(pack.BonusPuzzle, "bonus_puzzle"); err != nil {
		return err
	}

	// Validate event table
	if len(pack.Events) == 0 {
		return fmt.Errorf("pack validation: events table must not be empty")
	}
	for i, ev := range pack.Events {
		switch ev.Kind {
		case EventHeal, EventDamage:
			if ev.Magnitude <= 0 {
				return fmt.Errorf("pack validation: events[%d] (%s) requires a positive magnitude", i, ev.Kind)
			}
		case EventHint, EventFlavor:
			// narrative only
		default:
			return fmt.Errorf("pack validation: events[%d] has unknown kind '%s'", i, ev.Kind)
		}
		if ev.Message == "" {
			return fmt.Errorf("pack validation: events[%d] requires a message", i)
		}
	}

	if len(pack.Flavor) == 0 {
		return fmt.Errorf("pack validation: at least one flavor line is required")
	}

	// Validate messages
	if pack.Messages.Welcome == "" {
		return fmt.Errorf("pack validation: messages.welcome is required")
	}
	if pack.Messages.Victory == "" {
		return fmt.Errorf("pack validation: messages.victory is required")
	}
	if pack.Messages.TrapDeath == "" {
		return fmt.Errorf("pack validation: messages.trap_death is required")
	}
	if pack.Messages.WrongAnswerDeath == "" {
		return fmt.Errorf("pack validation: messages.wrong_answer_death is required")
	}
	if pack.Messages.FinalOpen == "" {
		return fmt.Errorf("pack validation: messages.final_open is required")
	}
	if pack.Messages.BonusPrompt == "" {
		return fmt.Errorf("pack validation: messages.bonus_prompt is required")
	}

	// Validate format strings
	if !strings.Contains(pack.Messages.RelicFound, "%s") {
		return fmt.Errorf("pack validation: messages.relic_found must contain %%s for the puzzle type")
	}
	if strings.Count(pack.Messages.RelicClaimed, "%d") < 2 {
		return fmt.Errorf("pack validation: messages.relic_claimed must contain %%d twice for gold and experience")
	}
	if !strings.Contains(pack.Messages.TrapHit, "%d") {
		return fmt.Errorf("pack validation: messages.trap_hit must contain %%d for damage")
	}
	if !strings.Contains(pack.Messages.FinalLocked, "%d") {
		return fmt.Errorf("pack validation: messages.final_locked must contain %%d for the relic count")
	}
	if !strings.Contains(pack.Messages.WrongAnswer, "%d") {
		return fmt.Errorf("pack validation: messages.wrong_answer must contain %%d for the penalty")
	}

	// Validate final reward
	if pack.FinalReward.Gold <= 0 || pack.FinalReward.Experience <= 0 {
		return fmt.Errorf("pack validation: final_reward gold and experience must be positive")
	}
	if pack.FinalReward.Title == "" {
		return fmt.Errorf("pack validation: final_reward.title is required")
	}

	return nil
}

func validatePuzzle(pz Puzzle, where string) error {
	if pz.Question == "" {
		return fmt.Errorf("pack validation: %s requires a question", where)
	}
	if strings.TrimSpace(pz.Answer) == "" {
		return fmt.Errorf("pack validation: %s requires a non-blank answer", where)
	}
	return nil
}

// LoadContentPack loads a content pack from a JSON file
func LoadContentPack(filename string) (*ContentPack, error) {
	// Support PACK_DIR environment variable for alternative pack directory
	packPath := filename
	if packDir := os.Getenv("PACK_DIR"); packDir != "" {
		if strings.HasPrefix(filename, "packs/") {
			packPath = filepath.Join(packDir, strings.TrimPrefix(filename, "packs/"))
		}
	}

	data, err := os.ReadFile(packPath)
	if err != nil {
		return nil, err
	}

	var pack ContentPack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, err
	}

	if err := ValidateContentPack(&pack); err != nil {
		return nil, err
	}

	return &pack, nil
}

// LoadContentPackByName loads a content pack by name from the packs directory
func LoadContentPackByName(packName string) (*ContentPack, error) {
	if !strings.HasSuffix(packName, ".json") {
		packName = packName + ".json"
	}

	packPath := filepath.Join("packs", packName)

	if _, err := os.Stat(packPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("content pack '%s' not found", packName)
	}

	return LoadContentPack(packPath)
}

// DefaultContentPack returns the built-in content pack used when no pack
// directory is available.
func DefaultContentPack() *ContentPack {
	pack := &ContentPack{
		Name:        "classic",
		Description: "The classic Relic Quest dungeon",
		Catalog: []Puzzle{
			{
				Type:     PuzzleRiddle,
				Question: "I speak without a mouth and hear without ears. I have no body, but I come alive with wind. What am I?",
				Answer:   "echo",
				Hint:     "You might meet one in a canyon.",
			},
			{
				Type:     PuzzleScramble,
				Question: "Unscramble the letters to name a dungeon-delver's light: TNANREL",
				Answer:   "lantern",
				Hint:     "It burns oil and hangs from a hook.",
			},
			{
				Type:     PuzzleQuiz,
				Question: "Which metal is liquid at room temperature?",
				Answer:   "mercury",
				Options:  []string{"gold", "mercury", "iron", "silver"},
				Hint:     "Alchemists called it quicksilver.",
			},
		},
		FinalPuzzle: Puzzle{
			Type:     PuzzleRiddle,
			Question: "The more of me you take, the more you leave behind. What am I?",
			Answer:   "footsteps",
			Hint:     "Look at the dust on the vault floor.",
		},
		BonusPuzzle: Puzzle{
			Type:     PuzzleRiddle,
			Question: "What can fill a room but takes up no space?",
			Answer:   "light",
			Hint:     "The vault has been dark a long time.",
		},
		Events: []AmbientEvent{
			{Kind: EventHeal, Magnitude: 15, Message: "A clear spring bubbles from the wall. You drink and feel restored."},
			{Kind: EventDamage, Magnitude: 12, Message: "Toxic spores burst from the ceiling! You choke on the cloud."},
			{Kind: EventHint, Message: "A scrawled map on the wall hints that the vault lies in the far corner."},
			{Kind: EventFlavor, Message: "A cold draft passes through the room. Something moved here, once."},
		},
		Flavor: []string{
			"Dust and silence. Nothing of note here.",
			"Your torchlight flickers across bare stone walls.",
			"An empty chamber. Your footsteps echo.",
			"Cobwebs drape the corners of this abandoned room.",
		},
	}
	pack.Messages.Welcome = "You descend into the ruin. Three relics unlock the treasure vault."
	pack.Messages.RelicFound = "A relic rests on a pedestal, sealed by a %s. Solve it to claim the relic."
	pack.Messages.RelicClaimed = "The relic is yours! +%d gold, +%d experience. You feel restored."
	pack.Messages.TrapHit = "A trap springs from the floor! You take %d damage."
	pack.Messages.TrapDeath = "The trap's toll was too great. You collapse in the dark."
	pack.Messages.FinalLocked = "The vault door is sealed by three relic locks. Relics: %d/3."
	pack.Messages.FinalOpen = "The three relics turn in their locks. One final riddle bars the treasure."
	pack.Messages.BonusPrompt = "Behind the treasure, a hidden compartment! One more puzzle for a bonus."
	pack.Messages.WrongAnswer = "Wrong! The chamber saps %d health."
	pack.Messages.WrongAnswerDeath = "The failed answer drains the last of your strength."
	pack.Messages.Victory = "The vault yields its treasure. You are victorious!"
	pack.FinalReward.Gold = 1000
	pack.FinalReward.Experience = 500
	pack.FinalReward.Title = "Master of the Vault"
	return pack
}
