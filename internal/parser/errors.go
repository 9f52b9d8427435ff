package parser

import (
	"fmt"
	"strings"
)

// Usage lists the syntax of every command, keyed by its keyword.
var Usage = map[string]string{
	"roll":    "roll [value]",
	"move":    "move <spaces>",
	"draw":    "draw <blessing|challenge>",
	"choose":  "choose <target|helper|location|option>: <value>",
	"cancel":  "cancel",
	"answer":  "answer <character> tier: <full|hint|minimal> [question: <id>]",
	"attack":  "attack [wolves|bandits] [at: <space>]",
	"end":     "end",
	"add":     "add <name> [color: <color>] [shape: <shape>]",
	"remove":  "remove",
	"ask":     "ask <character>",
	"query":   "query \"<expression>\"",
	"status":  "status",
	"hint":    "hint",
	"history": "history [count]",
	"help":    "help [command]",
}

// Commands lists the keywords in help order.
var Commands = []string{
	"roll", "move", "draw", "choose", "cancel", "answer", "attack", "end",
	"ask", "add", "remove", "query", "status", "hint", "history", "help",
}

// MapError takes a raw input and a participle error, and returns a human-friendly guidance message.
func MapError(input string, err error) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("I wasn't able to understand your command")
	}

	cmd := strings.ToLower(strings.Fields(input)[0])
	if usage, ok := Usage[cmd]; ok {
		return fmt.Errorf("The command %s must be: %s", cmd, usage)
	}
	return fmt.Errorf("I wasn't able to understand your command, try help")
}
