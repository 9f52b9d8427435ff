package engine

import (
	"github.com/suderio/pilgrim/internal/data"
)

// Resource names one of the three player counters.
type Resource string

const (
	ResourceSP        Resource = "sp"
	ResourceLivestock Resource = "livestock"
	ResourceCoins     Resource = "coins"
)

func (p *Player) counter(r Resource) *int {
	switch r {
	case ResourceSP:
		return &p.VictoryPoints
	case ResourceLivestock:
		return &p.Livestock
	case ResourceCoins:
		return &p.Coins
	}
	panic("unknown resource " + string(r))
}

// Get returns the current value of a resource.
func (p Player) Get(r Resource) int { return *p.counter(r) }

// adjust adds delta to one counter, flooring at zero. It returns the new value and the
// signed change actually applied, so a loss larger than the balance reports only the balance.
func adjust(p *Player, r Resource, delta int) (newValue, actual int) {
	c := p.counter(r)
	old := *c
	next := old + delta
	if next < 0 {
		next = 0
	}
	*c = next
	return next, next - old
}

// adjust applies and narrates a resource change.
func (t *txn) adjust(p *Player, r Resource, delta int, reason string) int {
	if delta == 0 {
		return 0
	}
	value, actual := adjust(p, r, delta)
	if actual != 0 {
		t.emit(&ResourceChangedEvent{
			Player:    p.Name,
			Resource:  r,
			Requested: delta,
			Actual:    actual,
			Value:     value,
			Reason:    reason,
		})
	}
	return actual
}

// applyDelta applies each component of d and returns what was actually applied.
func (t *txn) applyDelta(p *Player, d data.Delta, reason string) data.Delta {
	return data.Delta{
		SP:        t.adjust(p, ResourceSP, d.SP, reason),
		Livestock: t.adjust(p, ResourceLivestock, d.Livestock, reason),
		Coins:     t.adjust(p, ResourceCoins, d.Coins, reason),
	}
}

// addHelperProgress raises a player's bond with a character up to the cap. Crossing the
// threshold claims the character unless someone already holds it.
func (t *txn) addHelperProgress(p *Player, character string, n int) {
	before := p.Helpers[character]
	after := min(before+n, t.e.rules.HelperCap)
	if after < 0 {
		after = 0
	}
	if after != before {
		p.Helpers[character] = after
		t.emit(&HelperProgressEvent{Player: p.Name, Character: character, Progress: after})
	}
	threshold := t.e.rules.HelperThreshold
	if before < threshold && after >= threshold && t.s.Claimed.add(character) {
		p.Recruits = append(p.Recruits, character)
		t.emit(&HelperClaimedEvent{Player: p.Name, Character: character})
	}
}
