package command

import (
	"fmt"

	"github.com/suderio/pilgrim/internal/engine"
	"github.com/suderio/pilgrim/internal/parser"
	"github.com/suderio/pilgrim/internal/rules"
)

// ExecuteQuery evaluates a CEL expression over the current state.
func ExecuteQuery(cmd *parser.QueryCmd, env *Env, state *engine.GameState) ([]engine.Event, error) {
	if env.Registry == nil {
		return nil, fmt.Errorf("queries are not available in this session")
	}
	out, err := env.Registry.Eval(cmd.Expression, rules.ContextFromState(state))
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return hint("%v", out), nil
}
