package engine

import (
	"fmt"
	"strings"

	"github.com/suderio/pilgrim/internal/data"
)

// Choice carries the player's decision for a pending choice card. Only the field matching
// the card's effect kind is read.
type Choice struct {
	Target   string `json:"target,omitempty"`
	Helper   string `json:"helper,omitempty"`
	Location string `json:"location,omitempty"`
	Option   string `json:"option,omitempty"`
}

// DrawCard draws from a category and resolves the card for the current player. Choice
// cards leave the game awaiting ResolveChoice or CancelChoice.
func (e *Engine) DrawCard(s *GameState, cat data.Category) (*GameState, []Event, error) {
	return e.transition(s, func(t *txn) error {
		if err := t.guard(); err != nil {
			return err
		}
		card, err := t.draw(cat)
		if err != nil {
			return err
		}
		p := t.s.Current()
		t.emit(&CardDrawnEvent{
			Player:   p.Name,
			Category: card.Category,
			CardID:   card.ID,
			Title:    card.Title,
			Effect:   card.Effect.Describe(),
		})
		t.applyCard(p, card)
		return nil
	})
}

// ResolveChoice applies the pending choice card and discards it.
func (e *Engine) ResolveChoice(s *GameState, c Choice) (*GameState, []Event, error) {
	return e.transition(s, func(t *txn) error {
		pc := t.s.Pending
		if pc == nil {
			return ErrNoPendingChoice
		}
		card, ok := e.catalog.Card(pc.CardID)
		if !ok {
			return fmt.Errorf("%w: pending card %s not in catalog", ErrInvalidState, pc.CardID)
		}
		idx, ok := t.s.FindPlayer(pc.PlayerID)
		if !ok {
			return fmt.Errorf("%w: pending choice owner %s", ErrUnknownPlayer, pc.PlayerID)
		}
		p := &t.s.Players[idx]

		var picked string
		switch eff := card.Effect.(type) {
		case data.Steal:
			ti, ok := t.s.FindPlayer(strings.TrimSpace(c.Target))
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownPlayer, c.Target)
			}
			if ti == idx {
				return fmt.Errorf("%w: cannot steal from yourself", ErrInvalidChoice)
			}
			target := &t.s.Players[ti]
			coins := -t.adjust(target, ResourceCoins, -eff.Coins, card.Title)
			t.adjust(p, ResourceCoins, coins, card.Title)
			sp := -t.adjust(target, ResourceSP, -eff.SP, card.Title)
			t.adjust(p, ResourceSP, sp, card.Title)
			picked = target.Name
		case data.BoostHelper:
			name, ok := e.board.Character(strings.TrimSpace(c.Helper))
			if !ok {
				return fmt.Errorf("%w: character %q", ErrUnknownCharacterOrLocation, c.Helper)
			}
			t.addHelperProgress(p, name, eff.Amount)
			picked = name
		case data.Teleport:
			sp, ok := e.board.Location(strings.TrimSpace(c.Location))
			if !ok {
				return fmt.Errorf("%w: location %q", ErrUnknownCharacterOrLocation, c.Location)
			}
			t.teleport(p, sp.Index)
			picked = sp.Name
		case data.Exclusive:
			opt, ok := pickOption(eff, c.Option)
			if !ok {
				return fmt.Errorf("%w: option %q, want a or b", ErrInvalidChoice, c.Option)
			}
			t.applyDelta(p, opt.Delta, card.Title)
			picked = opt.Label
		default:
			return fmt.Errorf("%w: card %s is not a choice card", ErrInvalidState, card.ID)
		}

		t.s.Pending = nil
		t.s.Phase = pc.Resume
		t.s.Decks[pc.Category].Discard(pc.CardID)
		t.emit(&ChoiceResolvedEvent{Player: p.Name, CardID: card.ID, Choice: picked})
		return nil
	})
}

func pickOption(eff data.Exclusive, choice string) (data.Option, bool) {
	choice = strings.TrimSpace(choice)
	switch {
	case strings.EqualFold(choice, "a") || strings.EqualFold(choice, eff.A.Label):
		return eff.A, true
	case strings.EqualFold(choice, "b") || strings.EqualFold(choice, eff.B.Label):
		return eff.B, true
	}
	return data.Option{}, false
}

// CancelChoice discards the pending choice card without applying it.
func (e *Engine) CancelChoice(s *GameState) (*GameState, []Event, error) {
	return e.transition(s, func(t *txn) error {
		pc := t.s.Pending
		if pc == nil {
			return ErrNoPendingChoice
		}
		t.s.Pending = nil
		t.s.Phase = pc.Resume
		t.s.Decks[pc.Category].Discard(pc.CardID)
		name := pc.PlayerID
		if idx, ok := t.s.FindPlayer(pc.PlayerID); ok {
			name = t.s.Players[idx].Name
		}
		t.emit(&ChoiceCancelledEvent{Player: name, CardID: pc.CardID})
		return nil
	})
}
