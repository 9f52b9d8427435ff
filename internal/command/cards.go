package command

import (
	"fmt"
	"strings"

	"github.com/suderio/pilgrim/internal/data"
	"github.com/suderio/pilgrim/internal/engine"
	"github.com/suderio/pilgrim/internal/parser"
)

// ExecuteDraw draws from the named deck.
func ExecuteDraw(cmd *parser.DrawCmd, env *Env, state *engine.GameState) (*engine.GameState, []engine.Event, error) {
	return env.Engine.DrawCard(state, data.Category(strings.ToLower(cmd.Category)))
}

// ExecuteChoose answers a pending choice card.
func ExecuteChoose(cmd *parser.ChooseCmd, env *Env, state *engine.GameState) (*engine.GameState, []engine.Event, error) {
	var c engine.Choice
	switch strings.ToLower(cmd.Field) {
	case "target":
		c.Target = cmd.Value
	case "helper":
		c.Helper = cmd.Value
	case "location":
		c.Location = cmd.Value
	case "option":
		c.Option = cmd.Value
	default:
		return nil, nil, fmt.Errorf("%w: unknown choice %q", engine.ErrInvalidInput, cmd.Field)
	}
	return env.Engine.ResolveChoice(state, c)
}
