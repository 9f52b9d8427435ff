package engine

import (
	"fmt"

	"github.com/suderio/pilgrim/internal/data"
)

// BeginRoll enters the transient rolling state. Nothing else changes until CommitRoll,
// so a UI can animate in between without two rolls ever racing.
func (e *Engine) BeginRoll(s *GameState) (*GameState, []Event, error) {
	return e.transition(s, func(t *txn) error {
		if err := t.guard(); err != nil {
			return err
		}
		if t.s.Phase != PhaseAwaitingRoll {
			return ErrAlreadyRolled
		}
		t.s.Rolling = true
		t.s.Phase = PhaseRolling
		t.emit(&RollStartedEvent{Player: t.s.Current().Name})
		return nil
	})
}

// CommitRoll finishes a roll with a die face, adds one roll bonus if any, and moves.
func (e *Engine) CommitRoll(s *GameState, value int) (*GameState, []Event, error) {
	return e.transition(s, func(t *txn) error {
		if t.s.Pending != nil {
			return ErrChoiceRequired
		}
		if !t.s.Rolling {
			return ErrNoRollInProgress
		}
		if value < 1 || value > e.rules.DieSides {
			return fmt.Errorf("%w: roll %d outside 1..%d", ErrInvalidInput, value, e.rules.DieSides)
		}
		p := t.s.Current()
		bonus := 0
		if eff, ok := t.consume(p, data.EffectRollBonus, nil); ok {
			if rb, ok := eff.Params.(data.RollBonus); ok {
				bonus = rb.Bonus
			}
		}
		t.s.Rolling = false
		t.s.LastRoll = value
		t.s.Phase = PhaseResolving
		t.emit(&DiceRolledEvent{Player: p.Name, Value: value, Bonus: bonus})
		t.move(p, max(value+bonus, 0))
		return nil
	})
}

// Roll is BeginRoll plus CommitRoll with a face from the engine's Roller.
func (e *Engine) Roll(s *GameState) (*GameState, []Event, error) {
	var events []Event
	if s != nil && !s.Rolling {
		next, evs, err := e.BeginRoll(s)
		if err != nil {
			return nil, nil, err
		}
		s, events = next, evs
	}
	next, evs, err := e.CommitRoll(s, e.dice.Roll(e.rules.DieSides))
	if err != nil {
		return nil, nil, err
	}
	return next, append(events, evs...), nil
}

// EndTurn passes play to the next player, skipping anyone who owes a skip effect.
func (e *Engine) EndTurn(s *GameState) (*GameState, []Event, error) {
	return e.transition(s, func(t *txn) error {
		if err := t.guard(); err != nil {
			return err
		}
		t.emit(&TurnEndedEvent{Player: t.s.Current().Name})
		n := len(t.s.Players)
		next := t.s.CurrentPlayer
		// each charge passes over one seat; permanent skips may pass a seat once per round
		budget := n
		for _, p := range t.s.Players {
			for _, eff := range p.Effects {
				switch {
				case eff.Kind != data.EffectSkipTurn:
				case eff.Permanent():
					budget += n
				default:
					budget += eff.Remaining
				}
			}
		}
		for passed := 0; ; passed++ {
			next = (next + 1) % n
			if next == 0 {
				t.s.Turn++
			}
			p := &t.s.Players[next]
			if passed >= budget || !hasEffect(*p, data.EffectSkipTurn) {
				break
			}
			eff, _ := t.consume(p, data.EffectSkipTurn, nil)
			e.log.WithField("player", p.Name).Debug("turn skipped")
			t.emit(&TurnSkippedEvent{Player: p.Name, Title: eff.Title})
		}
		t.startTurn(next)
		return nil
	})
}

// startTurn hands play to a player and clears the previous turn's transient state.
func (t *txn) startTurn(idx int) {
	t.s.CurrentPlayer = idx
	t.s.Phase = PhaseAwaitingRoll
	t.s.Rolling = false
	t.s.Attack = nil
	t.s.Pending = nil
	p := t.s.Current()
	t.selectLocation(t.e.board.Space(p.Position))
	t.emit(&TurnStartedEvent{Player: p.Name, Turn: t.s.Turn})
}
