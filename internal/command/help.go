package command

import (
	"fmt"
	"strings"

	"github.com/suderio/pilgrim/internal/engine"
	"github.com/suderio/pilgrim/internal/parser"
)

var summaries = map[string]string{
	"roll":    "Rolls the die and moves. With a value, commits a physical die roll.",
	"move":    "Moves the current player by a signed number of spaces.",
	"draw":    "Draws a blessing or challenge card and applies it.",
	"choose":  "Supplies the target, helper, location or option a drawn card asks for.",
	"cancel":  "Discards a pending choice card without applying it.",
	"answer":  "Scores a correct trivia answer at the given reward tier.",
	"attack":  "Resolves a wolves or bandits attack on the current player.",
	"end":     "Ends the turn and passes the die.",
	"ask":     "Shows the next unanswered question of a character here.",
	"add":     "Seats a new player.",
	"remove":  "Removes the last player in turn order.",
	"query":   "Evaluates an expression over the game state.",
	"status":  "Shows every player's position and resources.",
	"hint":    "Explains what the current player can do next.",
	"history": "Shows the latest entries of the game journal.",
	"help":    "Shows available commands or detailed info on a specific one.",
}

// ExecuteHelp provides guidance on DSL command usage
func ExecuteHelp(cmd *parser.HelpCmd) ([]engine.Event, error) {
	if cmd.Topic != "" && !strings.EqualFold(cmd.Topic, "all") {
		name := strings.ToLower(cmd.Topic)
		usage, ok := parser.Usage[name]
		if !ok {
			return nil, fmt.Errorf("Unknown command: %s", cmd.Topic)
		}
		return hint("Command: %s\nUsage: %s\nSummary: %s", name, usage, summaries[name]), nil
	}

	var sb strings.Builder
	sb.WriteString("Available Commands:\n")
	for _, k := range parser.Commands {
		sb.WriteString(fmt.Sprintf(" - %s: %s\n", parser.Usage[k], summaries[k]))
	}
	sb.WriteString("\nUse 'help <command>' for details, 'hint' for what to do now.")
	return []engine.Event{&engine.HintEvent{MessageStr: sb.String()}}, nil
}
