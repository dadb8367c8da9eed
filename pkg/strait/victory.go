package strait

import "sort"

// VictoryReason names which predicate ended the game.
type VictoryReason int

const (
	VictoryNone VictoryReason = iota
	VictoryTurnLimit
	VictoryCityControl
	VictoryCasualties
)

func (r VictoryReason) String() string {
	switch r {
	case VictoryTurnLimit:
		return "turn_limit"
	case VictoryCityControl:
		return "city_control"
	case VictoryCasualties:
		return "casualties"
	default:
		return "none"
	}
}

// Outcome is the result of the victory predicate. Winner is empty while
// the game runs and on a draw.
type Outcome struct {
	Over   bool          `json:"over"`
	Winner string        `json:"winner,omitempty"`
	Reason VictoryReason `json:"reason"`
}

// evaluateVictory is the single canonical victory predicate. IsOver and
// Winner both read its result, so the two can never disagree.
//
// A faction wins outright by controlling the required fraction of key
// cities. The game also ends the moment any faction has bled past the
// casualty threshold: the winner is the sole faction still under it,
// and a mutual collapse is a draw. City control only counts for
// factions that have captured at least one city during play, so a
// defender's starting ownership does not end the game on turn one.
// Hitting the turn limit ends the game with no winner: time ran out
// before either decisive condition.
func evaluateVictory(cfg GameConfig, store *EntityStore, turn int, casualties, pool, captured map[string]int) Outcome {
	factions := store.Factions()
	keyTotal := 0
	held := make(map[string]int)
	for _, c := range store.Cities() {
		if !c.Key {
			continue
		}
		keyTotal++
		held[c.Faction]++
	}

	if keyTotal > 0 {
		for _, f := range factions {
			if captured[f] == 0 {
				continue
			}
			if float64(held[f])/float64(keyTotal) >= cfg.ControlFraction {
				return Outcome{Over: true, Winner: f, Reason: VictoryCityControl}
			}
		}
	}

	// The casualty leg considers every faction that fielded units, not
	// just those with survivors: a wiped-out faction is still broken.
	participants := make([]string, 0, len(pool))
	for f := range pool {
		participants = append(participants, f)
	}
	sort.Strings(participants)

	broken := func(f string) bool {
		p := pool[f]
		return p > 0 && float64(casualties[f])/float64(p) >= cfg.CasualtyRate
	}
	anyBroken := false
	standing := ""
	standingCount := 0
	for _, f := range participants {
		if broken(f) {
			anyBroken = true
		} else {
			standing = f
			standingCount++
		}
	}
	if anyBroken {
		out := Outcome{Over: true, Reason: VictoryCasualties}
		if standingCount == 1 {
			out.Winner = standing
		}
		return out
	}

	if turn >= cfg.TurnLimit {
		// Time ran out with neither decisive predicate met: a draw.
		return Outcome{Over: true, Reason: VictoryTurnLimit}
	}
	return Outcome{}
}
