package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderEmbeddedFallback(t *testing.T) {
	// No external directories: everything comes from the embedded defaults
	l := NewLoader(nil)

	gd, err := l.LoadAll()
	require.NoError(t, err)

	assert.Equal(t, 26, gd.Board.Size())
	assert.Equal(t, SpaceStart, gd.Board.Space(0).Category)
	assert.Equal(t, DefaultRules(), gd.Rules)

	egypt, ok := gd.Board.LocationOf("moses")
	require.True(t, ok)
	assert.Equal(t, "Egypt", egypt.Name)
	assert.Equal(t, 5, egypt.Index)

	assert.NotEmpty(t, gd.Catalog.Cards(CategoryBlessing))
	assert.NotEmpty(t, gd.Catalog.Cards(CategoryChallenge))
	assert.Len(t, gd.Trivia.Questions("egypt", "Moses"), 3)
}

func TestDefaultCatalogCoversEveryEffectKind(t *testing.T) {
	c, err := NewLoader(nil).LoadCatalog()
	require.NoError(t, err)

	seen := make(map[EffectKind]bool)
	for _, cat := range Categories {
		for _, card := range c.Cards(cat) {
			assert.Equal(t, cat, card.Category)
			seen[card.Effect.Kind()] = true
		}
	}
	for _, k := range []EffectKind{
		EffectGain, EffectAllPlayers, EffectTax, EffectAdvance,
		EffectTriviaBonus, EffectAttackShield, EffectAttackExposure, EffectRollBonus,
		EffectPassStartBonus, EffectSkipTurn, EffectSteal, EffectBoostHelper,
		EffectTeleport, EffectExclusive,
	} {
		assert.True(t, seen[k], "no default card with effect %s", k)
	}

	jubilee, ok := c.Card("jubilee")
	require.True(t, ok)
	pe, ok := jubilee.Effect.(PersistentEffect)
	require.True(t, ok)
	assert.Equal(t, Permanent, pe.Uses())
}

func TestLoaderPrefersDataDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, RulesFile), []byte("win_threshold: 12\n"), 0644))

	r, err := NewLoader([]string{dir}).LoadRules()
	require.NoError(t, err)
	assert.Equal(t, 12, r.WinThreshold)
	// Keys not present in the file keep their defaults
	assert.Equal(t, 5, r.PassStartBonus)
	assert.Equal(t, 6, r.MaxPlayers)
}

func TestLoaderRejectsExtraSeats(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, RulesFile), []byte("max_players: 8\n"), 0644))

	_, err := NewLoader([]string{dir}).LoadRules()
	assert.ErrorContains(t, err, "max_players")

	r := DefaultRules()
	r.MaxPlayers = 4
	assert.NoError(t, r.Validate(), "fewer seats is fine")
}

func TestLoaderRejectsMalformedCards(t *testing.T) {
	cases := map[string]string{
		"unknown kind": `
cards:
  - id: x
    title: X
    effect: {kind: smite}
`,
		"zero uses": `
cards:
  - id: x
    title: X
    effect: {kind: roll_bonus, bonus: 1}
`,
		"permanent skip": `
cards:
  - id: x
    title: X
    effect: {kind: skip_turn, uses: -1}
`,
		"shield kind": `
cards:
  - id: x
    title: X
    effect: {kind: attack_shield, against: dragons, uses: 1}
`,
		"exclusive without b": `
cards:
  - id: x
    title: X
    effect:
      kind: exclusive
      a: {label: one, sp: 1}
`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, BlessingsFile), []byte(body), 0644))
			_, err := NewLoader([]string{dir}).LoadCatalog()
			assert.Error(t, err)
		})
	}
}

func TestValidateBoard(t *testing.T) {
	good := Board{Spaces: []BoardSpace{
		{Name: "Start", Category: SpaceStart},
		{Name: "Egypt", Category: SpaceTriviaLocation, Characters: []string{"Moses"}},
		{Name: "Ridge", Category: SpaceSpecial, Kind: KindAttackWolves},
	}}
	assert.NoError(t, ValidateBoard(good))

	noStart := Board{Spaces: good.Spaces[1:]}
	assert.Error(t, ValidateBoard(noStart))

	dupChar := Board{Spaces: append(append([]BoardSpace{}, good.Spaces...),
		BoardSpace{Name: "Sinai", Category: SpaceTriviaLocation, Characters: []string{"moses"}})}
	assert.Error(t, ValidateBoard(dupChar))

	badKind := Board{Spaces: append(append([]BoardSpace{}, good.Spaces...),
		BoardSpace{Name: "Void", Category: SpaceSpecial, Kind: "portal"})}
	assert.Error(t, ValidateBoard(badKind))
}

func TestTriviaNext(t *testing.T) {
	bank := TriviaBank{"Egypt": {"Moses": {
		{Question: "q1", Answer: "a1"},
		{Question: "q2", Answer: "a2"},
	}}}
	answered := map[string]bool{"egypt/moses/1": true}

	id, q, ok := bank.Next("EGYPT", "moses", func(id string) bool { return answered[id] })
	require.True(t, ok)
	assert.Equal(t, "egypt/moses/2", id)
	assert.Equal(t, "q2", q.Question)

	answered[id] = true
	_, _, ok = bank.Next("Egypt", "Moses", func(id string) bool { return answered[id] })
	assert.False(t, ok)
}

func TestWriteDefaults(t *testing.T) {
	dir := t.TempDir()
	for _, f := range Files {
		require.NoError(t, WriteDefaults(dir, f, false))
	}
	assert.Error(t, WriteDefaults(dir, BoardFile, false))
	assert.NoError(t, WriteDefaults(dir, BoardFile, true))

	gd, err := NewLoader([]string{dir}).LoadAll()
	require.NoError(t, err)
	assert.Equal(t, 26, gd.Board.Size())
}
