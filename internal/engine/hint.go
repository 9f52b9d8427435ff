package engine

import (
	"fmt"
	"strings"

	"github.com/suderio/pilgrim/internal/data"
)

// Hint describes what the current player can do next.
func (e *Engine) Hint(s *GameState) string {
	if s == nil || len(s.Players) == 0 {
		return "No game in progress. Create one with `game create`."
	}
	p := s.Players[s.CurrentPlayer]
	var sb strings.Builder
	if s.Winner != "" {
		if idx, ok := s.FindPlayer(s.Winner); ok {
			sb.WriteString(fmt.Sprintf("%s has already won; play may continue.\n", s.Players[idx].Name))
		}
	}
	switch {
	case s.Pending != nil:
		card, _ := e.catalog.Card(s.Pending.CardID)
		sb.WriteString(fmt.Sprintf("%s must resolve %q: ", p.Name, card.Title))
		switch s.Pending.Kind {
		case data.EffectSteal:
			var others []string
			for _, q := range s.Players {
				if q.ID != s.Pending.PlayerID {
					others = append(others, q.Name)
				}
			}
			sb.WriteString(fmt.Sprintf("`choose target: <player>` (%s)", strings.Join(others, ", ")))
		case data.EffectBoostHelper:
			sb.WriteString("`choose helper: <character>`")
		case data.EffectTeleport:
			var locs []string
			for _, l := range e.board.Locations() {
				locs = append(locs, l.Name)
			}
			sb.WriteString(fmt.Sprintf("`choose location: <place>` (%s)", strings.Join(locs, ", ")))
		case data.EffectExclusive:
			if ex, ok := card.Effect.(data.Exclusive); ok {
				sb.WriteString(fmt.Sprintf("`choose option: a` (%s) or `choose option: b` (%s)", ex.A.Label, ex.B.Label))
			}
		}
		sb.WriteString(", or `cancel`.")
	case s.Rolling:
		sb.WriteString(fmt.Sprintf("%s's die is in the air: `roll` to commit.", p.Name))
	case s.Phase == PhaseAwaitingRoll:
		sb.WriteString(fmt.Sprintf("%s to `roll`.", p.Name))
	default:
		sb.WriteString(e.landingHint(s, p))
	}
	return strings.TrimSpace(sb.String())
}

func (e *Engine) landingHint(s *GameState, p Player) string {
	sp := e.board.Space(p.Position)
	var steps []string
	if s.Attack != nil {
		steps = append(steps, fmt.Sprintf("`attack` to face the %s", s.Attack.Kind))
	}
	if cat, ok := sp.Kind.DrawCategory(); ok {
		steps = append(steps, fmt.Sprintf("`draw %s`", cat))
	}
	if sp.Category == data.SpaceTriviaLocation {
		steps = append(steps, fmt.Sprintf("`ask <character>` at %s (%s)", sp.Name, strings.Join(sp.Characters, ", ")))
	}
	steps = append(steps, "`end` the turn")
	return fmt.Sprintf("%s is at %s: %s.", p.Name, sp.Name, strings.Join(steps, ", then "))
}
