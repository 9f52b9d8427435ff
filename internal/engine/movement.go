package engine

import (
	"github.com/suderio/pilgrim/internal/data"
)

// MoveResult describes one call of the movement resolver.
type MoveResult struct {
	From        int
	To          int
	PassedStart bool
}

// step computes a move on a cyclic board of the given size. Only forward moves can pass
// start, and at most once per call however far they travel.
func step(from, spaces, size int) MoveResult {
	r := spaces % size
	to := ((from+r)%size + size) % size
	passed := spaces > 0 && (spaces >= size || from+r >= size)
	return MoveResult{From: from, To: to, PassedStart: passed}
}

// move advances a player, pays the pass-start bonus and resolves the landing space.
func (t *txn) move(p *Player, spaces int) MoveResult {
	res := step(p.Position, spaces, t.e.board.Size())
	p.Position = res.To
	t.emit(&MovedEvent{
		Player: p.Name,
		From:   res.From,
		To:     res.To,
		Spaces: spaces,
		Space:  t.e.board.Space(res.To).Name,
	})
	if res.PassedStart {
		bonus := t.e.rules.PassStartBonus
		for _, eff := range t.consumeAll(p, data.EffectPassStartBonus) {
			if pe, ok := eff.Params.(data.PassStartBonus); ok {
				bonus += pe.Extra
			}
		}
		t.adjust(p, ResourceSP, bonus, "passed start")
		t.emit(&PassedStartEvent{Player: p.Name, Bonus: bonus})
	}
	t.land(p)
	return res
}

// teleport places a player without travelling, so start is never passed.
func (t *txn) teleport(p *Player, to int) {
	from := p.Position
	p.Position = to
	t.emit(&MovedEvent{
		Player:   p.Name,
		From:     from,
		To:       to,
		Space:    t.e.board.Space(to).Name,
		Teleport: true,
	})
	t.land(p)
}

// land reacts to the space a player stopped on. Attack spaces open the attack session;
// the loss itself is a separate transition.
func (t *txn) land(p *Player) {
	sp := t.e.board.Space(p.Position)
	t.selectLocation(sp)
	if kind, ok := sp.Kind.AttackKind(); ok {
		if t.s.Attack != nil {
			t.e.log.WithField("player", p.Name).Debug("replacing unresolved attack session")
		}
		t.s.Attack = &AttackSession{Kind: kind, PlayerID: p.ID, Position: p.Position}
		t.emit(&AttackStartedEvent{Player: p.Name, Kind: kind, Position: p.Position})
	}
}

func (t *txn) selectLocation(sp data.BoardSpace) {
	if sp.Category == data.SpaceTriviaLocation {
		t.s.SelectedLocation = sp.Name
		return
	}
	t.s.SelectedLocation = ""
}

// Move moves the current player by a fixed number of spaces without rolling.
func (e *Engine) Move(s *GameState, spaces int) (*GameState, []Event, error) {
	return e.transition(s, func(t *txn) error {
		if err := t.guard(); err != nil {
			return err
		}
		t.move(t.s.Current(), spaces)
		t.s.Phase = PhaseResolving
		return nil
	})
}
