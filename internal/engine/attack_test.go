package engine

import (
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/pilgrim/internal/data"
)

func TestWolvesAttackScenario(t *testing.T) {
	e, r := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann")
	s.Players[0].Livestock = 2
	s.Players[0].VictoryPoints = 10

	r.Push(4)
	next, evs := c.events(e.ResolveAttack(s, data.AttackWolves, NoPosition))
	assert.Equal(t, 0, next.Players[0].Livestock)
	assert.Equal(t, 6, next.Players[0].VictoryPoints)

	res, ok := findEvent[*AttackResolvedEvent](evs)
	require.True(t, ok)
	assert.Equal(t, 4, res.Roll)
	assert.Equal(t, 2, res.Loss, "loss is what was actually taken, not the roll")
	assert.Equal(t, 4, res.SPLoss)
	assert.Equal(t, ResourceLivestock, res.Resource)
}

func TestBanditsTakeCoins(t *testing.T) {
	e, r := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann")
	s.Players[0].Coins = 5

	r.Push(2)
	s = c.ok(e.ResolveAttack(s, data.AttackBandits, NoPosition))
	assert.Equal(t, 3, s.Players[0].Coins)
	assert.Equal(t, 3, s.Players[0].Livestock)
	assert.Equal(t, 0, s.Players[0].VictoryPoints)
}

func TestAttackNeverMoves(t *testing.T) {
	e, r := newTestEngine(t)
	c := checker{t}
	base := newGame(t, e, "Ann", "Ben")

	for roll := 1; roll <= AttackDie; roll++ {
		for pos := 0; pos < e.Board().Size(); pos += 3 {
			for _, kind := range []data.AttackKind{data.AttackWolves, data.AttackBandits} {
				s := base.Clone()
				s.Players[0].Position = pos
				s.Players[0].VictoryPoints = roll * 2
				r.Push(roll)
				next := c.ok(e.ResolveAttack(s, kind, pos))
				require.Equal(t, pos, next.Players[0].Position)
				require.Equal(t, base.Players[1].Position, next.Players[1].Position)
				p := next.Players[0]
				require.GreaterOrEqual(t, p.Livestock, 0)
				require.GreaterOrEqual(t, p.Coins, 0)
				require.GreaterOrEqual(t, p.VictoryPoints, 0)
			}
		}
	}
}

func TestAttackSessionSuppliesKind(t *testing.T) {
	e, r := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann")

	assert.ErrorIs(t, c.fails(e.ResolveAttack(s, "", NoPosition)), ErrNoAttackPending)
	assert.ErrorIs(t, c.fails(e.ResolveAttack(s, "dragons", NoPosition)), ErrInvalidInput)

	s = c.ok(e.Move(s, 8)) // Robbers' Pass
	require.NotNil(t, s.Attack)
	assert.Equal(t, data.AttackBandits, s.Attack.Kind)

	r.Push(1)
	s = c.ok(e.ResolveAttack(s, "", NoPosition))
	assert.Nil(t, s.Attack)
	assert.Equal(t, 2, s.Players[0].Coins)
	assert.Equal(t, 8, s.Players[0].Position)
}

func TestAttackPositionMismatchWarnsAndProceeds(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	gd := defaultData(t)
	r := NewScriptedRoller()
	e, err := NewFromData(gd, WithRoller(r), WithLogger(logger))
	require.NoError(t, err)
	c := checker{t}
	s := newGame(t, e, "Ann")
	s = c.ok(e.Move(s, 4))

	r.Push(1)
	s = c.ok(e.ResolveAttack(s, "", 7))
	assert.Equal(t, 4, s.Players[0].Position)
	assert.Equal(t, 2, s.Players[0].Livestock)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, ErrPositionMismatch, entry.Data[logrus.ErrorKey])
	assert.Equal(t, 7, entry.Data["expected"])
	assert.Equal(t, 4, entry.Data["actual"])
}

func TestAttackBlockedByPendingChoice(t *testing.T) {
	e, _ := cardEngine(t, data.Card{ID: "tp", Title: "Chariot", Effect: data.Teleport{}})
	c := checker{t}
	s := newGame(t, e, "Ann")
	s = c.ok(e.DrawCard(s, data.CategoryBlessing))

	assert.ErrorIs(t, c.fails(e.ResolveAttack(s, data.AttackWolves, NoPosition)), ErrChoiceRequired)
}
