package data

import (
	"fmt"
	"strings"
)

// Category names a card family. Each category owns its own draw/discard pair.
type Category string

const (
	CategoryBlessing  Category = "blessing"
	CategoryChallenge Category = "challenge"
)

// Categories lists every card category in a stable order.
var Categories = []Category{CategoryBlessing, CategoryChallenge}

// Rarity controls how many copies of a card go into a weighted deck.
type Rarity string

const (
	RarityCommon   Rarity = "common"
	RarityUncommon Rarity = "uncommon"
	RarityRare     Rarity = "rare"
)

// Copies returns the number of deck copies for a rarity. Unknown or empty rarities count as rare.
func (r Rarity) Copies() int {
	switch r {
	case RarityCommon:
		return 3
	case RarityUncommon:
		return 2
	default:
		return 1
	}
}

// SpaceCategory is the coarse classification of a board space.
type SpaceCategory string

const (
	SpaceStart          SpaceCategory = "start"
	SpaceTriviaLocation SpaceCategory = "trivia-location"
	SpaceSpecial        SpaceCategory = "special"
)

// SpaceKind is the sub-kind of a special space.
type SpaceKind string

const (
	KindAttackWolves  SpaceKind = "attack-wolves"
	KindAttackBandits SpaceKind = "attack-bandits"
	KindDrawBlessing  SpaceKind = "draw-blessing"
	KindDrawChallenge SpaceKind = "draw-challenge"
)

// AttackKind identifies a randomized resource-loss event.
type AttackKind string

const (
	AttackWolves  AttackKind = "wolves"
	AttackBandits AttackKind = "bandits"
	// AttackAny only appears in shield effects and matches every attack.
	AttackAny AttackKind = "any"
)

// AttackKind maps an attack space onto its attack, if any.
func (k SpaceKind) AttackKind() (AttackKind, bool) {
	switch k {
	case KindAttackWolves:
		return AttackWolves, true
	case KindAttackBandits:
		return AttackBandits, true
	}
	return "", false
}

// DrawCategory maps a draw space onto its deck, if any.
func (k SpaceKind) DrawCategory() (Category, bool) {
	switch k {
	case KindDrawBlessing:
		return CategoryBlessing, true
	case KindDrawChallenge:
		return CategoryChallenge, true
	}
	return "", false
}

// BoardSpace is one read-only board descriptor. Index is assigned from list order at load time.
type BoardSpace struct {
	Index      int           `json:"index" yaml:"-"`
	Name       string        `json:"name" yaml:"name"`
	Category   SpaceCategory `json:"category" yaml:"category"`
	Kind       SpaceKind     `json:"kind,omitempty" yaml:"kind,omitempty"`
	Characters []string      `json:"characters,omitempty" yaml:"characters,omitempty"`
}

// Board is the ordered cyclic list of spaces.
type Board struct {
	Spaces []BoardSpace `yaml:"spaces"`
}

// Size returns the number of spaces.
func (b Board) Size() int { return len(b.Spaces) }

// Space returns the descriptor at index i.
func (b Board) Space(i int) BoardSpace { return b.Spaces[i] }

// Location finds a trivia location by case-insensitive name.
func (b Board) Location(name string) (BoardSpace, bool) {
	for _, sp := range b.Spaces {
		if sp.Category == SpaceTriviaLocation && strings.EqualFold(sp.Name, name) {
			return sp, true
		}
	}
	return BoardSpace{}, false
}

// LocationOf returns the trivia location that hosts a character.
func (b Board) LocationOf(character string) (BoardSpace, bool) {
	for _, sp := range b.Spaces {
		for _, c := range sp.Characters {
			if strings.EqualFold(c, character) {
				return sp, true
			}
		}
	}
	return BoardSpace{}, false
}

// Character resolves a character name to its canonical spelling.
func (b Board) Character(name string) (string, bool) {
	for _, sp := range b.Spaces {
		for _, c := range sp.Characters {
			if strings.EqualFold(c, name) {
				return c, true
			}
		}
	}
	return "", false
}

// Characters lists every character on the board in board order.
func (b Board) Characters() []string {
	var out []string
	for _, sp := range b.Spaces {
		out = append(out, sp.Characters...)
	}
	return out
}

// Locations lists the trivia locations in board order.
func (b Board) Locations() []BoardSpace {
	var out []BoardSpace
	for _, sp := range b.Spaces {
		if sp.Category == SpaceTriviaLocation {
			out = append(out, sp)
		}
	}
	return out
}

// Delta is a signed change to the three player resources.
type Delta struct {
	SP        int `json:"sp,omitempty" yaml:"sp"`
	Livestock int `json:"livestock,omitempty" yaml:"livestock"`
	Coins     int `json:"coins,omitempty" yaml:"coins"`
}

// IsZero reports whether the delta changes nothing.
func (d Delta) IsZero() bool { return d == Delta{} }

func (d Delta) String() string {
	var parts []string
	add := func(v int, label string) {
		if v != 0 {
			parts = append(parts, fmt.Sprintf("%+d %s", v, label))
		}
	}
	add(d.SP, "SP")
	add(d.Livestock, "livestock")
	add(d.Coins, "coins")
	if len(parts) == 0 {
		return "no change"
	}
	return strings.Join(parts, ", ")
}

// Option is one branch of an exclusive choice card.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Delta `yaml:",inline"`
}

// RewardTier names how much help a player needed to answer a trivia question.
type RewardTier string

const (
	TierFull    RewardTier = "full"
	TierHint    RewardTier = "hint"
	TierMinimal RewardTier = "minimal"
)

// RewardTiers maps each tier onto its victory point award.
type RewardTiers struct {
	Full    int `yaml:"full"`
	Hint    int `yaml:"hint"`
	Minimal int `yaml:"minimal"`
}

// Points returns the award for a tier.
func (t RewardTiers) Points(tier RewardTier) (int, bool) {
	switch RewardTier(strings.ToLower(string(tier))) {
	case TierFull:
		return t.Full, true
	case TierHint:
		return t.Hint, true
	case TierMinimal:
		return t.Minimal, true
	}
	return 0, false
}

// Rules holds the numeric constants of a game session.
type Rules struct {
	WinThreshold      int         `yaml:"win_threshold"`
	PassStartBonus    int         `yaml:"pass_start_bonus"`
	MinPlayers        int         `yaml:"min_players"`
	MaxPlayers        int         `yaml:"max_players"`
	HelperThreshold   int         `yaml:"helper_threshold"`
	HelperCap         int         `yaml:"helper_cap"`
	DieSides          int         `yaml:"die_sides"`
	StartingLivestock int         `yaml:"starting_livestock"`
	StartingCoins     int         `yaml:"starting_coins"`
	WeightedDecks     bool        `yaml:"weighted_decks"`
	RewardTiers       RewardTiers `yaml:"reward_tiers"`
}

// TableSeats is the most players a game can seat.
const TableSeats = 6

// DefaultRules returns the standard rule constants.
func DefaultRules() Rules {
	return Rules{
		WinThreshold:      40,
		PassStartBonus:    5,
		MinPlayers:        1,
		MaxPlayers:        TableSeats,
		HelperThreshold:   3,
		HelperCap:         10,
		DieSides:          6,
		StartingLivestock: 3,
		StartingCoins:     3,
		WeightedDecks:     true,
		RewardTiers:       RewardTiers{Full: 3, Hint: 2, Minimal: 1},
	}
}

// Validate rejects rule sets the engine cannot run with.
func (r Rules) Validate() error {
	switch {
	case r.WinThreshold <= 0:
		return fmt.Errorf("win_threshold must be positive")
	case r.PassStartBonus < 0:
		return fmt.Errorf("pass_start_bonus cannot be negative")
	case r.MinPlayers < 1 || r.MaxPlayers < r.MinPlayers:
		return fmt.Errorf("player bounds %d..%d are invalid", r.MinPlayers, r.MaxPlayers)
	case r.MaxPlayers > TableSeats:
		return fmt.Errorf("max_players %d exceeds the %d seats at the table", r.MaxPlayers, TableSeats)
	case r.HelperThreshold < 1 || r.HelperCap < r.HelperThreshold:
		return fmt.Errorf("helper_threshold %d must be within 1..helper_cap %d", r.HelperThreshold, r.HelperCap)
	case r.DieSides < 1:
		return fmt.Errorf("die_sides must be positive")
	case r.StartingLivestock < 0 || r.StartingCoins < 0:
		return fmt.Errorf("starting resources cannot be negative")
	}
	return nil
}

// Question is one trivia entry. The engine never reads question text.
type Question struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
	Hint     string `yaml:"hint,omitempty"`
}

// TriviaBank maps location name → character name → ordered questions.
type TriviaBank map[string]map[string][]Question

// QuestionID builds the stable identifier of the n-th (1-based) question of a character.
func QuestionID(location, character string, n int) string {
	slug := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
	}
	return fmt.Sprintf("%s/%s/%d", slug(location), slug(character), n)
}

// Questions returns the questions for a character at a location, matching names case-insensitively.
func (t TriviaBank) Questions(location, character string) []Question {
	for loc, chars := range t {
		if !strings.EqualFold(loc, location) {
			continue
		}
		for name, qs := range chars {
			if strings.EqualFold(name, character) {
				return qs
			}
		}
	}
	return nil
}

// Next returns the first question of a character whose id is not yet answered.
func (t TriviaBank) Next(location, character string, answered func(id string) bool) (string, Question, bool) {
	for i, q := range t.Questions(location, character) {
		id := QuestionID(location, character, i+1)
		if !answered(id) {
			return id, q, true
		}
	}
	return "", Question{}, false
}

// GameData bundles everything loaded from the data layer for one session.
type GameData struct {
	Board   Board
	Catalog *Catalog
	Trivia  TriviaBank
	Rules   Rules
}
