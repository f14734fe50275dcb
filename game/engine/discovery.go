package engine

import (
	"fmt"
	"math/rand"
)

// enterRoom resolves the room the player just moved into. Discovery is
// monotonic: a room's first entry applies its effect exactly once, and
// later entries are inert. The vault is the one exception: its relic
// gate is re-evaluated on every entry, so a player who arrives short of
// three relics still gets the progress message (and eventually the final
// puzzle) on a return visit.
func (gs *GameState) enterRoom(pack *ContentPack, rng *rand.Rand) {
	room := gs.roomAt(gs.PlayerPos)

	if room.Kind == RoomFinal {
		room.Discovered = true
		gs.resolveVault(pack)
		return
	}

	if room.Discovered {
		return
	}
	room.Discovered = true

	switch room.Kind {
	case RoomRelic:
		gs.resolveRelic(room, pack)
	case RoomTrap:
		gs.resolveTrap(pack, rng)
	case RoomEmpty:
		if room.Event != nil {
			gs.applyAmbientEvent(room.Event, pack)
		} else {
			gs.Narrative = pack.Flavor[rng.Intn(len(pack.Flavor))]
		}
	}
}

// resolveRelic opens the catalog puzzle gating this relic. The reward is
// granted on a correct answer, not on entry.
func (gs *GameState) resolveRelic(room *Room, pack *ContentPack) {
	if gs.SolvedRelics[room.RelicID] {
		return
	}

	puzzle, ok := pack.CatalogPuzzle(room.PuzzleType)
	if !ok {
		// Validated packs always carry one puzzle per type.
		return
	}

	gs.Mode = ModePuzzle
	gs.ActivePuzzle = &ActivePuzzle{
		Tag:     TagCatalog,
		Puzzle:  puzzle,
		RelicID: room.RelicID,
	}
	gs.Narrative = fmt.Sprintf(pack.Messages.RelicFound, room.PuzzleType)
}

// resolveTrap applies randomized trap damage. Traps never prompt a puzzle.
func (gs *GameState) resolveTrap(pack *ContentPack, rng *rand.Rand) {
	damage := TrapBaseDamage + rng.Intn(TrapDamageSpread)
	gs.Health -= damage
	if gs.Health < 0 {
		gs.Health = 0
	}

	if gs.Health == 0 {
		gs.Mode = ModeLost
		gs.Narrative = pack.Messages.TrapDeath
		return
	}
	gs.Narrative = fmt.Sprintf(pack.Messages.TrapHit, damage)
}

// resolveVault re-checks the relic gate. With all relics collected it
// opens the scripted final puzzle; otherwise it reports progress.
func (gs *GameState) resolveVault(pack *ContentPack) {
	if gs.RelicsCollected < RelicCount {
		gs.Narrative = fmt.Sprintf(pack.Messages.FinalLocked, gs.RelicsCollected)
		return
	}

	gs.Mode = ModePuzzle
	gs.ActivePuzzle = &ActivePuzzle{
		Tag:    TagFinal,
		Puzzle: pack.FinalPuzzle,
	}
	gs.Narrative = pack.Messages.FinalOpen
}

// applyAmbientEvent applies a one-shot room event. Heals cap at max
// health; damage floors at zero and ends the game there.
func (gs *GameState) applyAmbientEvent(ev *AmbientEvent, pack *ContentPack) {
	switch ev.Kind {
	case EventHeal:
		gs.Health += ev.Magnitude
		if gs.Health > gs.MaxHealth {
			gs.Health = gs.MaxHealth
		}
	case EventDamage:
		gs.Health -= ev.Magnitude
		if gs.Health < 0 {
			gs.Health = 0
		}
		if gs.Health == 0 {
			gs.Mode = ModeLost
		}
	case EventHint, EventFlavor:
		// narrative only
	}
	gs.Narrative = ev.Message
}
