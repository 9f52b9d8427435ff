package command

import (
	"github.com/suderio/pilgrim/internal/engine"
	"github.com/suderio/pilgrim/internal/parser"
)

// ExecuteAdd handles the `add <Name> [color: C] [shape: S]` syntax
func ExecuteAdd(cmd *parser.AddCmd, env *Env, state *engine.GameState) (*engine.GameState, []engine.Event, error) {
	return env.Engine.AddPlayer(state, engine.PlayerData{
		Name:  cmd.Name,
		Color: cmd.Color,
		Shape: cmd.Shape,
	})
}
