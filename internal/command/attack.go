package command

import (
	"strings"

	"github.com/suderio/pilgrim/internal/data"
	"github.com/suderio/pilgrim/internal/engine"
	"github.com/suderio/pilgrim/internal/parser"
)

// ExecuteAttack resolves the pending attack, or an explicit one when a kind is given.
func ExecuteAttack(cmd *parser.AttackCmd, env *Env, state *engine.GameState) (*engine.GameState, []engine.Event, error) {
	expected := engine.NoPosition
	if cmd.At != nil {
		expected = *cmd.At
	}
	return env.Engine.ResolveAttack(state, data.AttackKind(strings.ToLower(cmd.Kind)), expected)
}
