package session

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/suderio/pilgrim/internal/data"
	"github.com/suderio/pilgrim/internal/engine"
	"github.com/suderio/pilgrim/internal/rules"
)

// Autoplayer plays whole games with a fixed policy: roll, face any attack, draw on draw
// spaces, try one question on trivia locations, take the first option of any choice, end.
type Autoplayer struct {
	Engine *engine.Engine
	Trivia data.TriviaBank
	// Dice decides trivia success. Defaults to the engine's roller.
	Dice engine.Roller
	// MaxTurns caps a game that nobody wins.
	MaxTurns int
	// Accuracy is the chance, in percent, of answering a question correctly.
	Accuracy int
	// Stop ends the game early when it evaluates to true after a turn.
	Stop *rules.Query
	Log  logrus.FieldLogger
}

// Result summarizes one simulated game.
type Result struct {
	Winner  string
	Turns   int
	Steps   int
	Stopped bool
	Final   *engine.GameState
}

func (a *Autoplayer) init() {
	if a.Dice == nil {
		a.Dice = a.Engine.Roller()
	}
	if a.Log == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		a.Log = quiet
	}
	if a.MaxTurns <= 0 {
		a.MaxTurns = 200
	}
}

// Play starts a game for the given players and plays it out.
func (a *Autoplayer) Play(players []engine.PlayerData) (Result, error) {
	s, _, err := a.Engine.NewGame(players)
	if err != nil {
		return Result{}, err
	}
	return a.PlayFrom(s)
}

// PlayFrom continues an existing game until someone wins, Stop holds or MaxTurns passes.
func (a *Autoplayer) PlayFrom(s *engine.GameState) (Result, error) {
	a.init()
	res := Result{}
	for s.Turn <= a.MaxTurns {
		next, steps, err := a.playTurn(s)
		res.Steps += steps
		if err != nil {
			return res, fmt.Errorf("turn %d: %w", s.Turn, err)
		}
		s = next
		if s.Winner != "" {
			break
		}
		if a.Stop != nil {
			stop, err := a.Stop.EvalBool(rules.ContextFromState(s))
			if err != nil {
				return res, fmt.Errorf("stop condition: %w", err)
			}
			if stop {
				res.Stopped = true
				break
			}
		}
	}
	if i, ok := s.FindPlayer(s.Winner); ok && s.Winner != "" {
		res.Winner = s.Players[i].Name
	}
	res.Turns = s.Turn
	res.Final = s
	a.Log.WithFields(logrus.Fields{"turns": res.Turns, "winner": res.Winner}).Debug("game finished")
	return res, nil
}

type step func(*engine.GameState) (*engine.GameState, []engine.Event, error)

func (a *Autoplayer) playTurn(s *engine.GameState) (*engine.GameState, int, error) {
	steps := 0
	apply := func(fn step) error {
		next, _, err := fn(s)
		if err != nil {
			return err
		}
		s = next
		steps++
		return nil
	}

	if s.Pending == nil && !s.Rolling && s.Phase == engine.PhaseAwaitingRoll {
		if err := apply(a.Engine.Roll); err != nil {
			return s, steps, err
		}
	}
	if err := a.settle(&s, &steps); err != nil {
		return s, steps, err
	}

	sp := a.Engine.Board().Space(s.Current().Position)
	if cat, ok := sp.Kind.DrawCategory(); ok {
		err := apply(func(st *engine.GameState) (*engine.GameState, []engine.Event, error) {
			return a.Engine.DrawCard(st, cat)
		})
		if err != nil {
			return s, steps, err
		}
		if err := a.settle(&s, &steps); err != nil {
			return s, steps, err
		}
	}
	if err := a.tryTrivia(&s, &steps); err != nil {
		return s, steps, err
	}
	if err := apply(a.Engine.EndTurn); err != nil {
		return s, steps, err
	}
	return s, steps, nil
}

// settle resolves whatever the last move left open: choices first, then attacks.
func (a *Autoplayer) settle(s **engine.GameState, steps *int) error {
	for range 4 {
		st := *s
		switch {
		case st.Pending != nil:
			next, _, err := a.Engine.ResolveChoice(st, a.choose(st))
			if err != nil {
				next, _, err = a.Engine.CancelChoice(st)
				if err != nil {
					return err
				}
			}
			*s = next
		case st.Attack != nil:
			next, _, err := a.Engine.ResolveAttack(st, "", engine.NoPosition)
			if err != nil {
				return err
			}
			*s = next
		default:
			return nil
		}
		*steps++
	}
	return nil
}

// choose takes the first legal-looking option for the pending card.
func (a *Autoplayer) choose(s *engine.GameState) engine.Choice {
	board := a.Engine.Board()
	switch s.Pending.Kind {
	case data.EffectSteal:
		for _, p := range s.Players {
			if p.ID != s.Pending.PlayerID {
				return engine.Choice{Target: p.ID}
			}
		}
	case data.EffectBoostHelper:
		for _, c := range board.Characters() {
			if !s.Claimed.Has(c) {
				return engine.Choice{Helper: c}
			}
		}
	case data.EffectTeleport:
		if locs := board.Locations(); len(locs) > 0 {
			return engine.Choice{Location: locs[0].Name}
		}
	case data.EffectExclusive:
		return engine.Choice{Option: "a"}
	}
	return engine.Choice{}
}

// tryTrivia asks the first character at the selected location with questions left.
func (a *Autoplayer) tryTrivia(s **engine.GameState, steps *int) error {
	st := *s
	if st.SelectedLocation == "" {
		return nil
	}
	loc, ok := a.Engine.Board().Location(st.SelectedLocation)
	if !ok {
		return nil
	}
	answered := func(id string) bool { return st.Answered.Has(engine.NormalizeQuestionID(id)) }
	for _, character := range loc.Characters {
		id, _, ok := a.Trivia.Next(loc.Name, character, answered)
		if !ok {
			continue
		}
		if a.Dice.Intn(100) >= a.Accuracy {
			return nil
		}
		next, _, err := a.Engine.AnswerQuestion(st, character, data.TierFull, id)
		if err != nil {
			return err
		}
		*s = next
		*steps++
		return nil
	}
	return nil
}
