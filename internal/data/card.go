package data

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Permanent is the use-counter sentinel of an effect that never depletes.
const Permanent = -1

// EffectKind is the tag of a card effect variant.
type EffectKind string

const (
	EffectGain           EffectKind = "gain"
	EffectAllPlayers     EffectKind = "all_players"
	EffectTax            EffectKind = "tax"
	EffectAdvance        EffectKind = "advance"
	EffectTriviaBonus    EffectKind = "trivia_bonus"
	EffectAttackShield   EffectKind = "attack_shield"
	EffectAttackExposure EffectKind = "attack_exposure"
	EffectRollBonus      EffectKind = "roll_bonus"
	EffectPassStartBonus EffectKind = "pass_start_bonus"
	EffectSkipTurn       EffectKind = "skip_turn"
	EffectSteal          EffectKind = "steal"
	EffectBoostHelper    EffectKind = "boost_helper"
	EffectTeleport       EffectKind = "teleport"
	EffectExclusive      EffectKind = "exclusive"
)

// EffectClass groups effect kinds by how they resolve.
type EffectClass int

const (
	ClassImmediate EffectClass = iota
	ClassPersistent
	ClassChoice
)

func (c EffectClass) String() string {
	switch c {
	case ClassImmediate:
		return "immediate"
	case ClassPersistent:
		return "persistent"
	case ClassChoice:
		return "choice"
	}
	return "unknown"
}

// CardEffect is the closed set of effect variants. Only types in this package implement it.
type CardEffect interface {
	Kind() EffectKind
	Class() EffectClass
	Describe() string
	sealed()
}

// PersistentEffect is implemented by every variant that attaches to a player.
type PersistentEffect interface {
	CardEffect
	// Uses is the initial use counter, or Permanent.
	Uses() int
	// Now is the resource delta applied at attachment time.
	Now() Delta
}

// Gain changes the acting player's resources.
type Gain struct {
	Delta Delta `json:"delta"`
}

// AllPlayers changes every other player's resources, and the acting player's when IncludeSelf is set.
type AllPlayers struct {
	Delta       Delta `json:"delta"`
	IncludeSelf bool  `json:"include_self"`
}

// Tax makes every other player pay up to Coins to the acting player.
type Tax struct {
	Coins int `json:"coins"`
}

// Advance moves the acting player forward.
type Advance struct {
	Spaces int `json:"spaces"`
}

// TriviaBonus grants extra points on the next correct answers.
type TriviaBonus struct {
	Bonus    int   `json:"bonus"`
	UseCount int   `json:"uses"`
	NowDelta Delta `json:"now"`
}

// AttackShield negates the next attacks of a kind.
type AttackShield struct {
	Against  AttackKind `json:"against"`
	UseCount int        `json:"uses"`
	NowDelta Delta      `json:"now"`
}

// AttackExposure adds extra loss to the next attacks.
type AttackExposure struct {
	Extra    int   `json:"extra"`
	UseCount int   `json:"uses"`
	NowDelta Delta `json:"now"`
}

// RollBonus adds spaces to the next rolls.
type RollBonus struct {
	Bonus    int   `json:"bonus"`
	UseCount int   `json:"uses"`
	NowDelta Delta `json:"now"`
}

// PassStartBonus adds points whenever the owner passes start.
type PassStartBonus struct {
	Extra    int   `json:"extra"`
	UseCount int   `json:"uses"`
	NowDelta Delta `json:"now"`
}

// SkipTurn makes the owner lose their next turns.
type SkipTurn struct {
	UseCount int   `json:"uses"`
	NowDelta Delta `json:"now"`
}

// Steal takes up to Coins and SP from a chosen player.
type Steal struct {
	Coins int `json:"coins"`
	SP    int `json:"sp"`
}

// BoostHelper adds progress toward a chosen character.
type BoostHelper struct {
	Amount int `json:"amount"`
}

// Teleport moves the acting player to a chosen trivia location.
type Teleport struct{}

// Exclusive lets the acting player take exactly one of two deltas.
type Exclusive struct {
	A Option `json:"a"`
	B Option `json:"b"`
}

func (Gain) Kind() EffectKind           { return EffectGain }
func (AllPlayers) Kind() EffectKind     { return EffectAllPlayers }
func (Tax) Kind() EffectKind            { return EffectTax }
func (Advance) Kind() EffectKind        { return EffectAdvance }
func (TriviaBonus) Kind() EffectKind    { return EffectTriviaBonus }
func (AttackShield) Kind() EffectKind   { return EffectAttackShield }
func (AttackExposure) Kind() EffectKind { return EffectAttackExposure }
func (RollBonus) Kind() EffectKind      { return EffectRollBonus }
func (PassStartBonus) Kind() EffectKind { return EffectPassStartBonus }
func (SkipTurn) Kind() EffectKind       { return EffectSkipTurn }
func (Steal) Kind() EffectKind          { return EffectSteal }
func (BoostHelper) Kind() EffectKind    { return EffectBoostHelper }
func (Teleport) Kind() EffectKind       { return EffectTeleport }
func (Exclusive) Kind() EffectKind      { return EffectExclusive }

func (Gain) Class() EffectClass           { return ClassImmediate }
func (AllPlayers) Class() EffectClass     { return ClassImmediate }
func (Tax) Class() EffectClass            { return ClassImmediate }
func (Advance) Class() EffectClass        { return ClassImmediate }
func (TriviaBonus) Class() EffectClass    { return ClassPersistent }
func (AttackShield) Class() EffectClass   { return ClassPersistent }
func (AttackExposure) Class() EffectClass { return ClassPersistent }
func (RollBonus) Class() EffectClass      { return ClassPersistent }
func (PassStartBonus) Class() EffectClass { return ClassPersistent }
func (SkipTurn) Class() EffectClass       { return ClassPersistent }
func (Steal) Class() EffectClass          { return ClassChoice }
func (BoostHelper) Class() EffectClass    { return ClassChoice }
func (Teleport) Class() EffectClass       { return ClassChoice }
func (Exclusive) Class() EffectClass      { return ClassChoice }

func (Gain) sealed()           {}
func (AllPlayers) sealed()     {}
func (Tax) sealed()            {}
func (Advance) sealed()        {}
func (TriviaBonus) sealed()    {}
func (AttackShield) sealed()   {}
func (AttackExposure) sealed() {}
func (RollBonus) sealed()      {}
func (PassStartBonus) sealed() {}
func (SkipTurn) sealed()       {}
func (Steal) sealed()          {}
func (BoostHelper) sealed()    {}
func (Teleport) sealed()       {}
func (Exclusive) sealed()      {}

func (e TriviaBonus) Uses() int    { return e.UseCount }
func (e AttackShield) Uses() int   { return e.UseCount }
func (e AttackExposure) Uses() int { return e.UseCount }
func (e RollBonus) Uses() int      { return e.UseCount }
func (e PassStartBonus) Uses() int { return e.UseCount }
func (e SkipTurn) Uses() int       { return e.UseCount }

func (e TriviaBonus) Now() Delta    { return e.NowDelta }
func (e AttackShield) Now() Delta   { return e.NowDelta }
func (e AttackExposure) Now() Delta { return e.NowDelta }
func (e RollBonus) Now() Delta      { return e.NowDelta }
func (e PassStartBonus) Now() Delta { return e.NowDelta }
func (e SkipTurn) Now() Delta       { return e.NowDelta }

func usesLabel(n int) string {
	if n == Permanent {
		return "permanently"
	}
	if n == 1 {
		return "once"
	}
	return fmt.Sprintf("%d times", n)
}

func withNow(desc string, now Delta) string {
	if now.IsZero() {
		return desc
	}
	return fmt.Sprintf("%s now; then %s", now, desc)
}

func (e Gain) Describe() string { return e.Delta.String() }

func (e AllPlayers) Describe() string {
	if e.IncludeSelf {
		return fmt.Sprintf("every player: %s", e.Delta)
	}
	return fmt.Sprintf("every other player: %s", e.Delta)
}

func (e Tax) Describe() string {
	return fmt.Sprintf("every other player pays you up to %d coins", e.Coins)
}

func (e Advance) Describe() string { return fmt.Sprintf("advance %d spaces", e.Spaces) }

func (e TriviaBonus) Describe() string {
	return withNow(fmt.Sprintf("+%d SP on correct answers, %s", e.Bonus, usesLabel(e.UseCount)), e.NowDelta)
}

func (e AttackShield) Describe() string {
	return withNow(fmt.Sprintf("ignore %s attacks, %s", e.Against, usesLabel(e.UseCount)), e.NowDelta)
}

func (e AttackExposure) Describe() string {
	return withNow(fmt.Sprintf("attacks take %d extra, %s", e.Extra, usesLabel(e.UseCount)), e.NowDelta)
}

func (e RollBonus) Describe() string {
	return withNow(fmt.Sprintf("+%d to your roll, %s", e.Bonus, usesLabel(e.UseCount)), e.NowDelta)
}

func (e PassStartBonus) Describe() string {
	return withNow(fmt.Sprintf("+%d SP when passing start, %s", e.Extra, usesLabel(e.UseCount)), e.NowDelta)
}

func (e SkipTurn) Describe() string {
	return withNow(fmt.Sprintf("skip your turn, %s", usesLabel(e.UseCount)), e.NowDelta)
}

func (e Steal) Describe() string {
	var parts []string
	if e.Coins > 0 {
		parts = append(parts, fmt.Sprintf("%d coins", e.Coins))
	}
	if e.SP > 0 {
		parts = append(parts, fmt.Sprintf("%d SP", e.SP))
	}
	return fmt.Sprintf("take up to %s from a player of your choice", strings.Join(parts, " and "))
}

func (e BoostHelper) Describe() string {
	return fmt.Sprintf("+%d progress with a character of your choice", e.Amount)
}

func (Teleport) Describe() string { return "travel to a trivia location of your choice" }

func (e Exclusive) Describe() string {
	return fmt.Sprintf("choose a) %s [%s] or b) %s [%s]", e.A.Label, e.A.Delta, e.B.Label, e.B.Delta)
}

// Card is an immutable catalog template.
type Card struct {
	ID       string     `json:"id"`
	Category Category   `json:"category"`
	Title    string     `json:"title"`
	Flavor   string     `json:"flavor,omitempty"`
	Rarity   Rarity     `json:"rarity,omitempty"`
	Effect   CardEffect `json:"-"`
}

// effectSpec is the flat YAML shape every effect variant is decoded from.
type effectSpec struct {
	Kind        string  `yaml:"kind"`
	SP          int     `yaml:"sp"`
	Livestock   int     `yaml:"livestock"`
	Coins       int     `yaml:"coins"`
	IncludeSelf bool    `yaml:"include_self"`
	Spaces      int     `yaml:"spaces"`
	Bonus       int     `yaml:"bonus"`
	Extra       int     `yaml:"extra"`
	Uses        int     `yaml:"uses"`
	Against     string  `yaml:"against"`
	Amount      int     `yaml:"amount"`
	Now         Delta   `yaml:"now"`
	A           *Option `yaml:"a"`
	B           *Option `yaml:"b"`
}

type cardSpec struct {
	ID     string     `yaml:"id"`
	Title  string     `yaml:"title"`
	Flavor string     `yaml:"flavor"`
	Rarity Rarity     `yaml:"rarity"`
	Effect effectSpec `yaml:"effect"`
}

// UnmarshalYAML decodes a card and builds its effect variant, rejecting malformed parameters.
func (c *Card) UnmarshalYAML(value *yaml.Node) error {
	var spec cardSpec
	if err := value.Decode(&spec); err != nil {
		return err
	}
	eff, err := spec.Effect.build()
	if err != nil {
		return fmt.Errorf("card %q: %w", spec.ID, err)
	}
	*c = Card{
		ID:     spec.ID,
		Title:  spec.Title,
		Flavor: spec.Flavor,
		Rarity: spec.Rarity,
		Effect: eff,
	}
	return nil
}

func (s effectSpec) delta() Delta {
	return Delta{SP: s.SP, Livestock: s.Livestock, Coins: s.Coins}
}

func (s effectSpec) uses() (int, error) {
	if s.Uses == 0 || s.Uses < Permanent {
		return 0, fmt.Errorf("%s effect needs uses >= 1 or %d for permanent, got %d", s.Kind, Permanent, s.Uses)
	}
	return s.Uses, nil
}

func (s effectSpec) build() (CardEffect, error) {
	switch EffectKind(s.Kind) {
	case EffectGain:
		if s.delta().IsZero() {
			return nil, fmt.Errorf("gain effect changes nothing")
		}
		return Gain{Delta: s.delta()}, nil
	case EffectAllPlayers:
		if s.delta().IsZero() {
			return nil, fmt.Errorf("all_players effect changes nothing")
		}
		return AllPlayers{Delta: s.delta(), IncludeSelf: s.IncludeSelf}, nil
	case EffectTax:
		if s.Coins <= 0 {
			return nil, fmt.Errorf("tax effect needs positive coins")
		}
		return Tax{Coins: s.Coins}, nil
	case EffectAdvance:
		if s.Spaces <= 0 {
			return nil, fmt.Errorf("advance effect needs positive spaces")
		}
		return Advance{Spaces: s.Spaces}, nil
	case EffectTriviaBonus:
		n, err := s.uses()
		if err != nil {
			return nil, err
		}
		return TriviaBonus{Bonus: s.Bonus, UseCount: n, NowDelta: s.Now}, nil
	case EffectAttackShield:
		n, err := s.uses()
		if err != nil {
			return nil, err
		}
		against := AttackKind(strings.ToLower(s.Against))
		if against == "" {
			against = AttackAny
		}
		if against != AttackWolves && against != AttackBandits && against != AttackAny {
			return nil, fmt.Errorf("attack_shield against unknown attack %q", s.Against)
		}
		return AttackShield{Against: against, UseCount: n, NowDelta: s.Now}, nil
	case EffectAttackExposure:
		n, err := s.uses()
		if err != nil {
			return nil, err
		}
		if s.Extra <= 0 {
			return nil, fmt.Errorf("attack_exposure needs positive extra")
		}
		return AttackExposure{Extra: s.Extra, UseCount: n, NowDelta: s.Now}, nil
	case EffectRollBonus:
		n, err := s.uses()
		if err != nil {
			return nil, err
		}
		return RollBonus{Bonus: s.Bonus, UseCount: n, NowDelta: s.Now}, nil
	case EffectPassStartBonus:
		n, err := s.uses()
		if err != nil {
			return nil, err
		}
		return PassStartBonus{Extra: s.Extra, UseCount: n, NowDelta: s.Now}, nil
	case EffectSkipTurn:
		n, err := s.uses()
		if err != nil {
			return nil, err
		}
		if n == Permanent {
			return nil, fmt.Errorf("skip_turn cannot be permanent")
		}
		return SkipTurn{UseCount: n, NowDelta: s.Now}, nil
	case EffectSteal:
		if s.Coins <= 0 && s.SP <= 0 {
			return nil, fmt.Errorf("steal effect takes nothing")
		}
		return Steal{Coins: s.Coins, SP: s.SP}, nil
	case EffectBoostHelper:
		if s.Amount <= 0 {
			return nil, fmt.Errorf("boost_helper needs positive amount")
		}
		return BoostHelper{Amount: s.Amount}, nil
	case EffectTeleport:
		return Teleport{}, nil
	case EffectExclusive:
		if s.A == nil || s.B == nil {
			return nil, fmt.Errorf("exclusive effect needs both options a and b")
		}
		return Exclusive{A: *s.A, B: *s.B}, nil
	}
	return nil, fmt.Errorf("unknown effect kind %q", s.Kind)
}

// Catalog is the immutable set of card templates for both categories.
type Catalog struct {
	blessings  []Card
	challenges []Card
	byID       map[string]Card
}

// NewCatalog indexes the given cards, stamping their category and rejecting duplicate ids.
func NewCatalog(blessings, challenges []Card) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]Card)}
	for _, group := range []struct {
		cat   Category
		cards []Card
		dst   *[]Card
	}{
		{CategoryBlessing, blessings, &c.blessings},
		{CategoryChallenge, challenges, &c.challenges},
	} {
		for _, card := range group.cards {
			if strings.TrimSpace(card.ID) == "" {
				return nil, fmt.Errorf("%s card %q has no id", group.cat, card.Title)
			}
			if card.Effect == nil {
				return nil, fmt.Errorf("card %s has no effect", card.ID)
			}
			if _, dup := c.byID[card.ID]; dup {
				return nil, fmt.Errorf("duplicate card id %s", card.ID)
			}
			card.Category = group.cat
			c.byID[card.ID] = card
			*group.dst = append(*group.dst, card)
		}
		if len(*group.dst) == 0 {
			return nil, fmt.Errorf("%s deck has no cards", group.cat)
		}
	}
	return c, nil
}

// Card looks up a template by id.
func (c *Catalog) Card(id string) (Card, bool) {
	card, ok := c.byID[id]
	return card, ok
}

// Cards returns a copy of the templates of one category.
func (c *Catalog) Cards(cat Category) []Card {
	var src []Card
	switch cat {
	case CategoryBlessing:
		src = c.blessings
	case CategoryChallenge:
		src = c.challenges
	}
	out := make([]Card, len(src))
	copy(out, src)
	return out
}
