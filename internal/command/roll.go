package command

import (
	"github.com/suderio/pilgrim/internal/engine"
	"github.com/suderio/pilgrim/internal/parser"
)

// ExecuteRoll rolls the engine's die, or commits a value read off a physical die.
func ExecuteRoll(cmd *parser.RollCmd, env *Env, state *engine.GameState) (*engine.GameState, []engine.Event, error) {
	if cmd.Value == nil {
		return env.Engine.Roll(state)
	}

	var events []engine.Event
	if !state.Rolling {
		next, evs, err := env.Engine.BeginRoll(state)
		if err != nil {
			return nil, nil, err
		}
		state, events = next, evs
	}
	next, evs, err := env.Engine.CommitRoll(state, *cmd.Value)
	if err != nil {
		return nil, nil, err
	}
	return next, append(events, evs...), nil
}

// ExecuteMove moves the current player without a die, as a card or house rule would.
func ExecuteMove(cmd *parser.MoveCmd, env *Env, state *engine.GameState) (*engine.GameState, []engine.Event, error) {
	return env.Engine.Move(state, cmd.Spaces)
}
