package command

import (
	"fmt"

	"github.com/suderio/pilgrim/internal/data"
	"github.com/suderio/pilgrim/internal/engine"
	"github.com/suderio/pilgrim/internal/parser"
	"github.com/suderio/pilgrim/internal/rules"
)

// Env carries everything a command needs besides the state it acts on.
type Env struct {
	Engine   *engine.Engine
	Trivia   data.TriviaBank
	Registry *rules.Registry
}

// Execute routes a parsed command to its handler. Read-only commands return the state they
// were given; mutating commands return a new state or an error and no state.
func Execute(cmd *parser.Command, env *Env, state *engine.GameState) (*engine.GameState, []engine.Event, error) {
	switch {
	case cmd.Roll != nil:
		return ExecuteRoll(cmd.Roll, env, state)
	case cmd.Move != nil:
		return ExecuteMove(cmd.Move, env, state)
	case cmd.Draw != nil:
		return ExecuteDraw(cmd.Draw, env, state)
	case cmd.Choose != nil:
		return ExecuteChoose(cmd.Choose, env, state)
	case cmd.Cancel != nil:
		return env.Engine.CancelChoice(state)
	case cmd.Answer != nil:
		return ExecuteAnswer(cmd.Answer, env, state)
	case cmd.Attack != nil:
		return ExecuteAttack(cmd.Attack, env, state)
	case cmd.End != nil:
		return env.Engine.EndTurn(state)
	case cmd.Add != nil:
		return ExecuteAdd(cmd.Add, env, state)
	case cmd.Remove != nil:
		return env.Engine.RemovePlayer(state)
	}

	var (
		events []engine.Event
		err    error
	)
	switch {
	case cmd.Ask != nil:
		events, err = ExecuteAsk(cmd.Ask, env, state)
	case cmd.Query != nil:
		events, err = ExecuteQuery(cmd.Query, env, state)
	case cmd.Status != nil:
		events, err = ExecuteStatus(env, state)
	case cmd.Hint != nil:
		events, err = ExecuteHint(env, state)
	case cmd.Help != nil:
		events, err = ExecuteHelp(cmd.Help)
	default:
		return nil, nil, fmt.Errorf("unsupported command pattern")
	}
	if err != nil {
		return nil, nil, err
	}
	return state, events, nil
}

func hint(format string, args ...any) []engine.Event {
	return []engine.Event{&engine.HintEvent{MessageStr: fmt.Sprintf(format, args...)}}
}
