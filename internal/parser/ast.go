package parser

import (
	"strings"
)

// Command represents a top-level action inputted into the DSL
type Command struct {
	Roll    *RollCmd    `parser:"( @@"`
	Move    *MoveCmd    `parser:"| @@"`
	Draw    *DrawCmd    `parser:"| @@"`
	Choose  *ChooseCmd  `parser:"| @@"`
	Cancel  *CancelCmd  `parser:"| @@"`
	Answer  *AnswerCmd  `parser:"| @@"`
	Attack  *AttackCmd  `parser:"| @@"`
	End     *EndCmd     `parser:"| @@"`
	Add     *AddCmd     `parser:"| @@"`
	Remove  *RemoveCmd  `parser:"| @@"`
	Ask     *AskCmd     `parser:"| @@"`
	Query   *QueryCmd   `parser:"| @@"`
	Status  *StatusCmd  `parser:"| @@"`
	Hint    *HintCmd    `parser:"| @@"`
	History *HistoryCmd `parser:"| @@"`
	Help    *HelpCmd    `parser:"| @@ )"`
}

// RollCmd rolls the die for the current player. A value commits a physical die roll instead.
type RollCmd struct {
	Keyword string `parser:"@\"roll\""`
	Value   *int   `parser:"@Int?"`
}

// MoveCmd moves the current player by a signed number of spaces
type MoveCmd struct {
	Keyword string `parser:"@\"move\""`
	Spaces  int    `parser:"@Int"`
}

// DrawCmd draws the top card of a deck
type DrawCmd struct {
	Keyword  string `parser:"@\"draw\""`
	Category string `parser:"@(\"blessing\"|\"challenge\")"`
}

// ChooseCmd supplies the missing input of a pending choice card
type ChooseCmd struct {
	Keyword string `parser:"@\"choose\""`
	Field   string `parser:"@(\"target\"|\"helper\"|\"location\"|\"option\") \":\""`
	Value   string `parser:"@(Ident|String|Int)"`
}

// CancelCmd discards a pending choice card without applying it
type CancelCmd struct {
	Keyword string `parser:"@\"cancel\""`
}

// AnswerCmd scores a correct trivia answer
type AnswerCmd struct {
	Keyword   string `parser:"@\"answer\""`
	Character string `parser:"@(Ident|String)"`
	Tier      string `parser:"\"tier\" \":\" @(Ident|\"hint\")"`
	Question  string `parser:"( \"question\" \":\" @(Ident|String) )?"`
}

// AttackCmd resolves a wolves or bandits attack on the current player
type AttackCmd struct {
	Keyword string `parser:"@\"attack\""`
	Kind    string `parser:"@(\"wolves\"|\"bandits\")?"`
	At      *int   `parser:"( \"at\" \":\" @Int )?"`
}

// EndCmd passes the turn
type EndCmd struct {
	Keyword string `parser:"@\"end\""`
}

// AddCmd seats a new player
type AddCmd struct {
	Keyword string `parser:"@\"add\""`
	Name    string `parser:"@(Ident|String)"`
	Color   string `parser:"( \"color\" \":\" @(Ident|String) )?"`
	Shape   string `parser:"( \"shape\" \":\" @(Ident|String) )?"`
}

// RemoveCmd drops the last player in turn order
type RemoveCmd struct {
	Keyword string `parser:"@\"remove\""`
}

// AskCmd picks the next unanswered question of a character at the selected location
type AskCmd struct {
	Keyword   string `parser:"@\"ask\""`
	Character string `parser:"@(Ident|String)"`
}

// QueryCmd evaluates a CEL expression over the game state
type QueryCmd struct {
	Keyword    string `parser:"@\"query\""`
	Expression string `parser:"@String"`
}

// StatusCmd prints the table
type StatusCmd struct {
	Keyword string `parser:"@\"status\""`
}

// HintCmd queries the game state to explain what the current player can do
type HintCmd struct {
	Keyword string `parser:"@\"hint\""`
}

// HistoryCmd prints the latest journal entries
type HistoryCmd struct {
	Keyword string `parser:"@\"history\""`
	Last    *int   `parser:"@Int?"`
}

// HelpCmd provides command guidance
type HelpCmd struct {
	Keyword string `parser:"@\"help\""`
	Topic   string `parser:"@(Ident|Keyword)?"`
}

// Name returns the lowercased keyword of whichever command was parsed.
func (c *Command) Name() string {
	var kw string
	switch {
	case c.Roll != nil:
		kw = c.Roll.Keyword
	case c.Move != nil:
		kw = c.Move.Keyword
	case c.Draw != nil:
		kw = c.Draw.Keyword
	case c.Choose != nil:
		kw = c.Choose.Keyword
	case c.Cancel != nil:
		kw = c.Cancel.Keyword
	case c.Answer != nil:
		kw = c.Answer.Keyword
	case c.Attack != nil:
		kw = c.Attack.Keyword
	case c.End != nil:
		kw = c.End.Keyword
	case c.Add != nil:
		kw = c.Add.Keyword
	case c.Remove != nil:
		kw = c.Remove.Keyword
	case c.Ask != nil:
		kw = c.Ask.Keyword
	case c.Query != nil:
		kw = c.Query.Keyword
	case c.Status != nil:
		kw = c.Status.Keyword
	case c.Hint != nil:
		kw = c.Hint.Keyword
	case c.History != nil:
		kw = c.History.Keyword
	case c.Help != nil:
		kw = c.Help.Keyword
	}
	return strings.ToLower(kw)
}

// Mutates reports whether the command changes the game state.
func (c *Command) Mutates() bool {
	switch c.Name() {
	case "roll", "move", "draw", "choose", "cancel", "answer", "attack", "end", "add", "remove":
		return true
	}
	return false
}
