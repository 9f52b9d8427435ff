package engine

import (
	"slices"

	"github.com/suderio/pilgrim/internal/data"
)

// attach adds a persistent effect to a player and applies its attach-time delta.
func (t *txn) attach(p *Player, card data.Card, pe data.PersistentEffect) {
	if now := pe.Now(); !now.IsZero() {
		t.applyDelta(p, now, card.Title)
	}
	p.Effects = append(p.Effects, Effect{
		CardID:      card.ID,
		Title:       card.Title,
		Kind:        pe.Kind(),
		Remaining:   pe.Uses(),
		Description: pe.Describe(),
		Params:      pe,
	})
	t.emit(&EffectAttachedEvent{Player: p.Name, CardID: card.ID, Title: card.Title, Remaining: pe.Uses()})
}

// spend takes one use from an effect and reports whether it stays active.
func spend(eff *Effect) bool {
	switch {
	case eff.Permanent():
		return true
	case eff.Remaining <= 1:
		eff.Remaining = 0
		return false
	}
	eff.Remaining--
	return true
}

// consumeEffect uses the first active effect of a kind that satisfies match (nil matches
// all). A counter of 1 removes the effect; Permanent never changes. The returned copy
// carries the remaining count after use, 0 once removed.
func consumeEffect(p *Player, kind data.EffectKind, match func(Effect) bool) (Effect, bool) {
	for i := range p.Effects {
		eff := p.Effects[i]
		if eff.Kind != kind || (match != nil && !match(eff)) {
			continue
		}
		if spend(&eff) {
			p.Effects[i] = eff
		} else {
			p.Effects = slices.Delete(p.Effects, i, i+1)
		}
		return eff, true
	}
	return Effect{}, false
}

func hasEffect(p Player, kind data.EffectKind) bool {
	return slices.ContainsFunc(p.Effects, func(eff Effect) bool { return eff.Kind == kind })
}

func (t *txn) consume(p *Player, kind data.EffectKind, match func(Effect) bool) (Effect, bool) {
	eff, ok := consumeEffect(p, kind, match)
	if ok {
		t.consumed(p, eff)
	}
	return eff, ok
}

func (t *txn) consumed(p *Player, eff Effect) {
	t.emit(&EffectConsumedEvent{Player: p.Name, CardID: eff.CardID, Title: eff.Title, Kind: eff.Kind, Remaining: eff.Remaining})
}

// consumeAll uses every active effect of a kind once.
func (t *txn) consumeAll(p *Player, kind data.EffectKind) []Effect {
	var used []Effect
	kept := make([]Effect, 0, len(p.Effects))
	for _, eff := range p.Effects {
		if eff.Kind != kind {
			kept = append(kept, eff)
			continue
		}
		if spend(&eff) {
			kept = append(kept, eff)
		}
		used = append(used, eff)
		t.consumed(p, eff)
	}
	p.Effects = kept
	return used
}

// applyCard resolves a freshly drawn card for the acting player. Choice cards are parked
// as pending and resolve later.
func (t *txn) applyCard(p *Player, card data.Card) {
	switch eff := card.Effect.(type) {
	case data.Gain:
		t.applyDelta(p, eff.Delta, card.Title)
	case data.AllPlayers:
		for i := range t.s.Players {
			q := &t.s.Players[i]
			if q.ID == p.ID && !eff.IncludeSelf {
				continue
			}
			t.applyDelta(q, eff.Delta, card.Title)
		}
	case data.Tax:
		for i := range t.s.Players {
			q := &t.s.Players[i]
			if q.ID == p.ID {
				continue
			}
			paid := -t.adjust(q, ResourceCoins, -eff.Coins, card.Title)
			t.adjust(p, ResourceCoins, paid, card.Title)
		}
	case data.Advance:
		t.move(p, eff.Spaces)
	case data.TriviaBonus:
		t.attach(p, card, eff)
	case data.AttackShield:
		t.attach(p, card, eff)
	case data.AttackExposure:
		t.attach(p, card, eff)
	case data.RollBonus:
		t.attach(p, card, eff)
	case data.PassStartBonus:
		t.attach(p, card, eff)
	case data.SkipTurn:
		t.attach(p, card, eff)
	case data.Steal, data.BoostHelper, data.Teleport, data.Exclusive:
		t.s.Pending = &PendingChoice{
			CardID:   card.ID,
			Category: card.Category,
			Kind:     eff.Kind(),
			PlayerID: p.ID,
			Resume:   t.s.Phase,
		}
		t.s.Phase = PhaseAwaitingChoice
		t.emit(&ChoicePendingEvent{Player: p.Name, CardID: card.ID, Kind: eff.Kind(), Prompt: eff.Describe()})
		return
	}
	t.s.Decks[card.Category].Discard(card.ID)
}
