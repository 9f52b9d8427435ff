package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/suderio/pilgrim/internal/data"
)

// AttackDie is the number of faces of the attack die.
const AttackDie = 6

// NoPosition disables the stale-position check of ResolveAttack.
const NoPosition = -1

// AttackResult is the outcome of one attack.
type AttackResult struct {
	Kind     data.AttackKind
	Roll     int
	Resource Resource
	Loss     int
	SPLoss   int
	Shield   string
}

// AttackResource returns the counter an attack kind targets besides SP.
func AttackResource(kind data.AttackKind) (Resource, bool) {
	switch kind {
	case data.AttackWolves:
		return ResourceLivestock, true
	case data.AttackBandits:
		return ResourceCoins, true
	}
	return "", false
}

// applyAttack computes and applies the loss of one attack roll. It never reads or writes
// the player's position.
func (t *txn) applyAttack(p *Player, kind data.AttackKind, roll int) AttackResult {
	res := AttackResult{Kind: kind, Roll: roll}
	res.Resource, _ = AttackResource(kind)
	shield, shielded := t.consume(p, data.EffectAttackShield, func(eff Effect) bool {
		as, ok := eff.Params.(data.AttackShield)
		return ok && (as.Against == kind || as.Against == data.AttackAny)
	})
	if shielded {
		res.Shield = shield.Title
		return res
	}
	amount := roll
	if eff, ok := t.consume(p, data.EffectAttackExposure, nil); ok {
		if ex, ok := eff.Params.(data.AttackExposure); ok {
			amount += ex.Extra
		}
	}
	reason := fmt.Sprintf("%s attack", kind)
	res.Loss = -t.adjust(p, res.Resource, -amount, reason)
	res.SPLoss = -t.adjust(p, ResourceSP, -amount, reason)
	return res
}

// ResolveAttack rolls the attack die against the current player. An empty kind uses the
// open attack session. A stale expected position is logged and the authoritative position
// is used; pass NoPosition to skip the check.
func (e *Engine) ResolveAttack(s *GameState, kind data.AttackKind, expected int) (*GameState, []Event, error) {
	return e.transition(s, func(t *txn) error {
		if err := t.guard(); err != nil {
			return err
		}
		session := t.s.Attack
		if kind == "" {
			if session == nil {
				return ErrNoAttackPending
			}
			kind = session.Kind
		}
		if _, ok := AttackResource(kind); !ok {
			return fmt.Errorf("%w: unknown attack %q", ErrInvalidInput, kind)
		}
		p := t.s.Current()
		if session != nil && session.PlayerID == p.ID && session.Position != p.Position {
			expected = session.Position
		}
		if expected != NoPosition && expected != p.Position {
			e.log.WithError(ErrPositionMismatch).WithFields(logrus.Fields{
				"player":   p.Name,
				"expected": expected,
				"actual":   p.Position,
			}).Warn("attack handler saw a stale position, using the current one")
		}

		res := t.applyAttack(p, kind, e.dice.Roll(AttackDie))
		t.s.Attack = nil
		t.emit(&AttackResolvedEvent{
			Player:   p.Name,
			Kind:     res.Kind,
			Roll:     res.Roll,
			Resource: res.Resource,
			Loss:     res.Loss,
			SPLoss:   res.SPLoss,
			Shielded: res.Shield != "",
			Shield:   res.Shield,
		})
		return nil
	})
}
