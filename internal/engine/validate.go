package engine

import (
	"fmt"
	"maps"

	"github.com/suderio/pilgrim/internal/data"
)

// Validate checks every structural invariant of a state against this engine's configuration.
// A legal sequence of operations never produces a state that fails.
func (e *Engine) Validate(s *GameState) error {
	if err := e.validate(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	return nil
}

func (e *Engine) validate(s *GameState) error {
	if len(s.Players) < 1 || len(s.Players) > e.rules.MaxPlayers {
		return fmt.Errorf("%d players", len(s.Players))
	}
	if s.CurrentPlayer < 0 || s.CurrentPlayer >= len(s.Players) {
		return fmt.Errorf("current player %d out of range", s.CurrentPlayer)
	}
	if s.Turn < 1 {
		return fmt.Errorf("turn %d", s.Turn)
	}
	if s.Rolling != (s.Phase == PhaseRolling) {
		return fmt.Errorf("rolling flag %v in phase %s", s.Rolling, s.Phase)
	}
	if (s.Pending != nil) != (s.Phase == PhaseAwaitingChoice) {
		return fmt.Errorf("pending choice does not match phase %s", s.Phase)
	}

	ids := make(map[string]bool)
	recruiters := make(map[string]string)
	for _, p := range s.Players {
		if err := e.validatePlayer(p); err != nil {
			return fmt.Errorf("player %s: %w", p.Name, err)
		}
		if ids[p.ID] {
			return fmt.Errorf("duplicate player id %s", p.ID)
		}
		ids[p.ID] = true
		for _, c := range p.Recruits {
			if !s.Claimed.Has(c) {
				return fmt.Errorf("%s recruited %s without a claim", p.Name, c)
			}
			if other, dup := recruiters[c]; dup {
				return fmt.Errorf("%s is claimed by both %s and %s", c, other, p.Name)
			}
			recruiters[c] = p.Name
		}
	}
	for _, c := range s.Claimed.Items() {
		if _, ok := e.board.Character(c); !ok {
			return fmt.Errorf("claimed helper %s is not on the board", c)
		}
	}

	if s.Pending != nil {
		if !ids[s.Pending.PlayerID] {
			return fmt.Errorf("pending choice owner %s", s.Pending.PlayerID)
		}
		card, ok := e.catalog.Card(s.Pending.CardID)
		if !ok || card.Category != s.Pending.Category || card.Effect.Class() != data.ClassChoice {
			return fmt.Errorf("pending card %s", s.Pending.CardID)
		}
	}
	if s.Winner != "" && !ids[s.Winner] {
		return fmt.Errorf("winner %s is not seated", s.Winner)
	}
	if s.Attack != nil {
		if _, ok := AttackResource(s.Attack.Kind); !ok {
			return fmt.Errorf("attack kind %q", s.Attack.Kind)
		}
		if !ids[s.Attack.PlayerID] {
			return fmt.Errorf("attack target %s", s.Attack.PlayerID)
		}
	}
	return e.validateDecks(s)
}

func (e *Engine) validatePlayer(p Player) error {
	if p.Position < 0 || p.Position >= e.board.Size() {
		return fmt.Errorf("position %d off the board", p.Position)
	}
	if p.VictoryPoints < 0 || p.Livestock < 0 || p.Coins < 0 {
		return fmt.Errorf("negative resources %d/%d/%d", p.VictoryPoints, p.Livestock, p.Coins)
	}
	for c, n := range p.Helpers {
		if n < 0 || n > e.rules.HelperCap {
			return fmt.Errorf("helper %s progress %d", c, n)
		}
	}
	for _, eff := range p.Effects {
		if eff.Remaining < 1 && !eff.Permanent() {
			return fmt.Errorf("effect %s with %d uses left", eff.CardID, eff.Remaining)
		}
		if eff.Params == nil || eff.Params.Kind() != eff.Kind {
			return fmt.Errorf("effect %s has no parameters", eff.CardID)
		}
	}
	return nil
}

// validateDecks checks conservation: piles plus the held choice card hold exactly the
// cards the deck was built from.
func (e *Engine) validateDecks(s *GameState) error {
	for _, cat := range data.Categories {
		d, ok := s.Decks[cat]
		if !ok || d == nil {
			return fmt.Errorf("missing %s deck", cat)
		}
		got := make(map[string]int)
		for _, id := range d.DrawPile {
			got[id]++
		}
		for _, id := range d.DiscardPile {
			got[id]++
		}
		if s.Pending != nil && s.Pending.Category == cat {
			got[s.Pending.CardID]++
		}
		if !maps.Equal(got, e.decks[cat]) {
			return fmt.Errorf("%s deck holds %s, want %s", cat, countIDs(got), countIDs(e.decks[cat]))
		}
	}
	return nil
}

func countIDs(m map[string]int) string {
	n := 0
	for _, c := range m {
		n += c
	}
	return fmt.Sprintf("%d cards of %d kinds", n, len(m))
}
