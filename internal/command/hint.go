package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/suderio/pilgrim/internal/data"
	"github.com/suderio/pilgrim/internal/engine"
)

// ExecuteHint explains what the current player can do next
func ExecuteHint(env *Env, state *engine.GameState) ([]engine.Event, error) {
	return hint("%s", env.Engine.Hint(state)), nil
}

// ExecuteStatus renders the table: every player's position, resources, helpers and effects.
func ExecuteStatus(env *Env, state *engine.GameState) ([]engine.Event, error) {
	if state == nil || len(state.Players) == 0 {
		return hint("No game in progress."), nil
	}
	board := env.Engine.Board()
	rules := env.Engine.Rules()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Turn %d, %s (%s)\n", state.Turn, state.Current().Name, state.Phase))
	for i, p := range state.Players {
		marker := " "
		if i == state.CurrentPlayer {
			marker = ">"
		}
		sb.WriteString(fmt.Sprintf("%s %-12s %-14s SP %3d  livestock %2d  coins %2d\n",
			marker, p.Name, board.Space(p.Position).Name, p.VictoryPoints, p.Livestock, p.Coins))

		if len(p.Helpers) > 0 {
			names := make([]string, 0, len(p.Helpers))
			for name := range p.Helpers {
				names = append(names, name)
			}
			sort.Strings(names)
			parts := make([]string, 0, len(names))
			for _, name := range names {
				tag := ""
				if p.Recruited(name) {
					tag = "*"
				}
				parts = append(parts, fmt.Sprintf("%s%s %d/%d", name, tag, p.Helpers[name], rules.HelperThreshold))
			}
			sb.WriteString(fmt.Sprintf("    helpers: %s\n", strings.Join(parts, ", ")))
		}
		if len(p.Effects) > 0 {
			parts := make([]string, 0, len(p.Effects))
			for _, eff := range p.Effects {
				left := "permanent"
				if !eff.Permanent() {
					left = fmt.Sprintf("%d left", eff.Remaining)
				}
				parts = append(parts, fmt.Sprintf("%s (%s)", eff.Title, left))
			}
			sb.WriteString(fmt.Sprintf("    effects: %s\n", strings.Join(parts, ", ")))
		}
	}
	for _, cat := range data.Categories {
		if d := state.Decks[cat]; d != nil {
			sb.WriteString(fmt.Sprintf("%s deck: %d to draw, %d discarded\n", cat, len(d.DrawPile), len(d.DiscardPile)))
		}
	}
	if idx, ok := state.FindPlayer(state.Winner); ok && state.Winner != "" {
		sb.WriteString(fmt.Sprintf("Winner: %s\n", state.Players[idx].Name))
	}
	return []engine.Event{&engine.HintEvent{MessageStr: strings.TrimRight(sb.String(), "\n")}}, nil
}
