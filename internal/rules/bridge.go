package rules

import (
	"github.com/suderio/pilgrim/internal/engine"
)

// ContextFromPlayer converts a player into a map suitable for CEL evaluation.
func ContextFromPlayer(p *engine.Player) map[string]any {
	if p == nil {
		return map[string]any{}
	}
	helpers := make(map[string]any, len(p.Helpers))
	for name, n := range p.Helpers {
		helpers[name] = int64(n)
	}
	effects := make([]any, 0, len(p.Effects))
	for _, eff := range p.Effects {
		effects = append(effects, string(eff.Kind))
	}
	recruits := make([]any, 0, len(p.Recruits))
	for _, r := range p.Recruits {
		recruits = append(recruits, r)
	}
	return map[string]any{
		"id":             p.ID,
		"name":           p.Name,
		"color":          p.Color,
		"shape":          p.Shape,
		"position":       int64(p.Position),
		"victory_points": int64(p.VictoryPoints),
		"livestock":      int64(p.Livestock),
		"coins":          int64(p.Coins),
		"helpers":        helpers,
		"recruits":       recruits,
		"effects":        effects,
	}
}

// ContextFromState builds the variable bindings declared by NewRegistry.
func ContextFromState(s *engine.GameState) map[string]any {
	res := map[string]any{
		"players":           []any{},
		"current":           map[string]any{},
		"turn":              int64(0),
		"phase":             "",
		"winner":            "",
		"selected_location": "",
		"answered":          []string{},
		"claimed":           []string{},
		"decks":             map[string]map[string]int64{},
	}
	if s == nil {
		return res
	}

	players := make([]any, 0, len(s.Players))
	for i := range s.Players {
		players = append(players, ContextFromPlayer(&s.Players[i]))
	}
	res["players"] = players
	if len(s.Players) > 0 {
		res["current"] = ContextFromPlayer(s.Current())
	}
	res["turn"] = int64(s.Turn)
	res["phase"] = string(s.Phase)
	res["selected_location"] = s.SelectedLocation
	res["answered"] = s.Answered.Items()
	res["claimed"] = s.Claimed.Items()
	if i, ok := s.FindPlayer(s.Winner); ok && s.Winner != "" {
		res["winner"] = s.Players[i].Name
	}

	decks := make(map[string]map[string]int64, len(s.Decks))
	for cat, d := range s.Decks {
		if d == nil {
			continue
		}
		decks[string(cat)] = map[string]int64{
			"draw":    int64(len(d.DrawPile)),
			"discard": int64(len(d.DiscardPile)),
		}
	}
	res["decks"] = decks
	return res
}
