package engine

import (
	"maps"
	"slices"
	"strings"

	"github.com/suderio/pilgrim/internal/data"
)

// Phase is the turn controller state.
type Phase string

const (
	PhaseAwaitingRoll   Phase = "awaiting_roll"
	PhaseRolling        Phase = "rolling"
	PhaseResolving      Phase = "resolving"
	PhaseAwaitingChoice Phase = "awaiting_choice"
)

// GameState is one immutable snapshot of a game session. The engine never mutates a
// state it was handed; every operation returns a fresh copy.
type GameState struct {
	Players          []Player                `json:"players"`
	CurrentPlayer    int                     `json:"current_player"`
	Turn             int                     `json:"turn"`
	LastRoll         int                     `json:"last_roll"`
	Rolling          bool                    `json:"rolling"`
	Phase            Phase                   `json:"phase"`
	Decks            map[data.Category]*Deck `json:"decks"`
	Answered         OrderedSet              `json:"answered_questions"`
	Claimed          OrderedSet              `json:"claimed_helpers"`
	SelectedLocation string                  `json:"selected_location,omitempty"`
	Attack           *AttackSession          `json:"attack,omitempty"`
	Pending          *PendingChoice          `json:"pending_choice,omitempty"`
	Winner           string                  `json:"winner,omitempty"`
}

// Player is one participant. ID, Name, Color and Shape are opaque to the engine.
type Player struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Color         string         `json:"color,omitempty"`
	Shape         string         `json:"shape,omitempty"`
	Position      int            `json:"position"`
	VictoryPoints int            `json:"victory_points"`
	Livestock     int            `json:"livestock"`
	Coins         int            `json:"coins"`
	Helpers       map[string]int `json:"helpers"`
	Recruits      []string       `json:"recruits,omitempty"`
	Effects       []Effect       `json:"effects,omitempty"`
}

// Effect is a persistent card effect attached to a player.
type Effect struct {
	CardID      string                `json:"card_id"`
	Title       string                `json:"title"`
	Kind        data.EffectKind       `json:"kind"`
	Remaining   int                   `json:"remaining"`
	Description string                `json:"description"`
	Params      data.PersistentEffect `json:"-"`
}

// Permanent reports whether the effect never depletes.
func (e Effect) Permanent() bool { return e.Remaining == data.Permanent }

// AttackSession is the single active attack, opened by landing on an attack space.
type AttackSession struct {
	Kind     data.AttackKind `json:"kind"`
	PlayerID string          `json:"player_id"`
	Position int             `json:"position"`
}

// PendingChoice holds a drawn choice card outside both piles until it is resolved or cancelled.
type PendingChoice struct {
	CardID   string          `json:"card_id"`
	Category data.Category   `json:"category"`
	Kind     data.EffectKind `json:"kind"`
	PlayerID string          `json:"player_id"`
	Resume   Phase           `json:"resume"`
}

// PlayerData is the caller-supplied identity of a new player.
type PlayerData struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Shape string `json:"shape,omitempty"`
}

// Current returns the player whose turn it is.
func (s *GameState) Current() *Player {
	return &s.Players[s.CurrentPlayer]
}

// FindPlayer resolves a player by id or case-insensitive name.
func (s *GameState) FindPlayer(ref string) (int, bool) {
	for i, p := range s.Players {
		if p.ID == ref || strings.EqualFold(p.Name, ref) {
			return i, true
		}
	}
	return -1, false
}

// Recruited reports whether the player holds the claim on a character.
func (p Player) Recruited(character string) bool {
	return slices.ContainsFunc(p.Recruits, func(c string) bool { return strings.EqualFold(c, character) })
}

// Clone returns a deep copy of the state.
func (s *GameState) Clone() *GameState {
	c := *s
	c.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		c.Players[i] = p.clone()
	}
	c.Decks = make(map[data.Category]*Deck, len(s.Decks))
	for k, d := range s.Decks {
		c.Decks[k] = d.clone()
	}
	c.Answered = s.Answered.clone()
	c.Claimed = s.Claimed.clone()
	if s.Attack != nil {
		a := *s.Attack
		c.Attack = &a
	}
	if s.Pending != nil {
		pc := *s.Pending
		c.Pending = &pc
	}
	return &c
}

func (p Player) clone() Player {
	c := p
	c.Helpers = maps.Clone(p.Helpers)
	if c.Helpers == nil {
		c.Helpers = make(map[string]int)
	}
	c.Recruits = slices.Clone(p.Recruits)
	c.Effects = slices.Clone(p.Effects)
	return c
}

// Claimable reports whether a character can still be recruited by anyone.
func (s *GameState) Claimable(character string) bool {
	for _, c := range s.Claimed.Items() {
		if strings.EqualFold(c, character) {
			return false
		}
	}
	return true
}
