package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/pilgrim/internal/data"
)

// checker unwraps engine results so tests can chain transitions.
type checker struct {
	t *testing.T
}

func (c checker) ok(s *GameState, _ []Event, err error) *GameState {
	c.t.Helper()
	require.NoError(c.t, err)
	require.NotNil(c.t, s)
	return s
}

func (c checker) events(s *GameState, evs []Event, err error) (*GameState, []Event) {
	c.t.Helper()
	require.NoError(c.t, err)
	require.NotNil(c.t, s)
	return s, evs
}

func (c checker) fails(s *GameState, evs []Event, err error) error {
	c.t.Helper()
	require.Error(c.t, err)
	assert.Nil(c.t, s)
	assert.Nil(c.t, evs)
	return err
}

func defaultData(t *testing.T) *data.GameData {
	t.Helper()
	gd, err := data.NewLoader(nil).LoadAll()
	require.NoError(t, err)
	return gd
}

func newTestEngine(t *testing.T, faces ...int) (*Engine, *ScriptedRoller) {
	t.Helper()
	r := NewScriptedRoller(faces...)
	e, err := NewFromData(defaultData(t), WithRoller(r))
	require.NoError(t, err)
	return e, r
}

// cardEngine builds an engine whose blessing deck holds exactly the given cards, once each.
func cardEngine(t *testing.T, blessings ...data.Card) (*Engine, *ScriptedRoller) {
	t.Helper()
	gd := defaultData(t)
	filler := data.Card{ID: "filler", Title: "Filler", Effect: data.Gain{Delta: data.Delta{SP: 1}}}
	catalog, err := data.NewCatalog(blessings, []data.Card{filler})
	require.NoError(t, err)
	rules := gd.Rules
	rules.WeightedDecks = false
	r := NewScriptedRoller()
	e, err := New(gd.Board, catalog, rules, WithRoller(r))
	require.NoError(t, err)
	return e, r
}

func newGame(t *testing.T, e *Engine, names ...string) *GameState {
	t.Helper()
	var pds []PlayerData
	for _, n := range names {
		pds = append(pds, PlayerData{Name: n})
	}
	s, _, err := e.NewGame(pds)
	require.NoError(t, err)
	return s
}

func findEvent[T Event](evs []Event) (T, bool) {
	for _, ev := range evs {
		if typed, ok := ev.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

func fingerprint(t *testing.T, e *Engine, s *GameState) string {
	t.Helper()
	b, err := e.Marshal(s)
	require.NoError(t, err)
	return string(b)
}

func TestNewGamePlayerCount(t *testing.T) {
	e, _ := newTestEngine(t)

	_, _, err := e.NewGame(nil)
	assert.ErrorIs(t, err, ErrInvalidPlayerCount)

	seven := make([]PlayerData, 7)
	_, _, err = e.NewGame(seven)
	assert.ErrorIs(t, err, ErrInvalidPlayerCount)

	s := newGame(t, e, "Ann", "Ben")
	assert.Equal(t, 1, s.Turn)
	assert.Equal(t, 0, s.CurrentPlayer)
	assert.Equal(t, PhaseAwaitingRoll, s.Phase)
	for _, p := range s.Players {
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, 0, p.Position)
		assert.Equal(t, 3, p.Livestock)
		assert.Equal(t, 3, p.Coins)
	}
	assert.NotEqual(t, s.Players[0].ID, s.Players[1].ID)

	_, _, err = e.NewGame([]PlayerData{{Name: "Ann"}, {Name: "ann"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddRemovePlayer(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann")

	for i := 0; i < 5; i++ {
		s = c.ok(e.AddPlayer(s, PlayerData{}))
	}
	assert.Len(t, s.Players, 6)
	assert.Equal(t, "Player 6", s.Players[5].Name)
	err := c.fails(e.AddPlayer(s, PlayerData{Name: "Zed"}))
	assert.ErrorIs(t, err, ErrInvalidPlayerCount)

	for i := 0; i < 5; i++ {
		s = c.ok(e.RemovePlayer(s))
	}
	assert.Len(t, s.Players, 1)
	assert.Equal(t, "Ann", s.Players[0].Name)
	err = c.fails(e.RemovePlayer(s))
	assert.ErrorIs(t, err, ErrInvalidPlayerCount)
}

func TestRemoveCurrentPlayerWraps(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann", "Ben")
	s = c.ok(e.EndTurn(s))
	require.Equal(t, 1, s.CurrentPlayer)

	s = c.ok(e.RemovePlayer(s))
	assert.Equal(t, 0, s.CurrentPlayer)
	assert.Equal(t, 2, s.Turn)
	assert.Equal(t, PhaseAwaitingRoll, s.Phase)
}

func TestOperationsNeverMutateInput(t *testing.T) {
	e, r := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann", "Ben")
	before := fingerprint(t, e, s)

	r.Push(3)
	next := c.ok(e.Roll(s))
	next = c.ok(e.DrawCard(next, data.CategoryChallenge))
	_ = next

	assert.Equal(t, before, fingerprint(t, e, s))
}

func TestPassStartScenario(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann")
	require.Equal(t, 26, e.Board().Size())
	s.Players[0].Position = 24

	next, evs := c.events(e.Move(s, 5))
	assert.Equal(t, 3, next.Players[0].Position)
	assert.Equal(t, 5, next.Players[0].VictoryPoints)
	assert.Equal(t, "Haran", next.SelectedLocation)
	ps, ok := findEvent[*PassedStartEvent](evs)
	require.True(t, ok)
	assert.Equal(t, 5, ps.Bonus)

	// Same move through the two-step roll protocol
	s = c.ok(e.BeginRoll(s))
	assert.True(t, s.Rolling)
	s = c.ok(e.CommitRoll(s, 5))
	assert.False(t, s.Rolling)
	assert.Equal(t, 5, s.LastRoll)
	assert.Equal(t, 3, s.Players[0].Position)
	assert.Equal(t, 5, s.Players[0].VictoryPoints)
}

func TestPassStartBonusOncePerMove(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann")
	s.Players[0].Position = 20

	s = c.ok(e.Move(s, 60))
	assert.Equal(t, (20+60)%26, s.Players[0].Position)
	assert.Equal(t, 5, s.Players[0].VictoryPoints)

	// Landing exactly on start counts as passing it
	s.Players[0].Position = 21
	s = c.ok(e.Move(s, 5))
	assert.Equal(t, 0, s.Players[0].Position)
	assert.Equal(t, 10, s.Players[0].VictoryPoints)
}

func TestBackwardMoveNeverPaysBonus(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann")
	s.Players[0].Position = 2

	s = c.ok(e.Move(s, -4))
	assert.Equal(t, 24, s.Players[0].Position)
	assert.Equal(t, 0, s.Players[0].VictoryPoints)

	s = c.ok(e.Move(s, 4))
	assert.Equal(t, 2, s.Players[0].Position)
	assert.Equal(t, 5, s.Players[0].VictoryPoints)
}

func TestPositionIsNetDistanceModSize(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann")
	r := NewSeededRoller(42)
	size := e.Board().Size()

	net := 0
	for i := 0; i < 200; i++ {
		spaces := r.Intn(61) - 30
		net += spaces
		s = c.ok(e.Move(s, spaces))
		want := ((net % size) + size) % size
		require.Equal(t, want, s.Players[0].Position, "after %d moves", i+1)
	}
}

func TestStepHugeDistances(t *testing.T) {
	cases := []struct {
		from, spaces int
		to           int
		passed       bool
	}{
		{24, math.MaxInt, 5, true},
		{3, math.MinInt, 21, false},
		{5, 52, 5, true},
		{5, -52, 5, false},
		{25, 1, 0, true},
	}
	for _, tc := range cases {
		res := step(tc.from, tc.spaces, 26)
		assert.Equal(t, tc.to, res.To, "from %d by %d", tc.from, tc.spaces)
		assert.Equal(t, tc.passed, res.PassedStart, "from %d by %d", tc.from, tc.spaces)
	}
}

func TestRollProtocolErrors(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann", "Ben")

	assert.ErrorIs(t, c.fails(e.CommitRoll(s, 3)), ErrNoRollInProgress)

	rolling := c.ok(e.BeginRoll(s))
	assert.Equal(t, PhaseRolling, rolling.Phase)
	assert.ErrorIs(t, c.fails(e.BeginRoll(rolling)), ErrRollInProgress)
	assert.ErrorIs(t, c.fails(e.EndTurn(rolling)), ErrRollInProgress)
	assert.ErrorIs(t, c.fails(e.Move(rolling, 2)), ErrRollInProgress)
	assert.ErrorIs(t, c.fails(e.DrawCard(rolling, data.CategoryBlessing)), ErrRollInProgress)
	assert.ErrorIs(t, c.fails(e.CommitRoll(rolling, 7)), ErrInvalidInput)
	assert.ErrorIs(t, c.fails(e.CommitRoll(rolling, 0)), ErrInvalidInput)

	moved := c.ok(e.CommitRoll(rolling, 2))
	assert.Equal(t, PhaseResolving, moved.Phase)
	assert.ErrorIs(t, c.fails(e.BeginRoll(moved)), ErrAlreadyRolled)
}

func TestRollUsesInjectedDice(t *testing.T) {
	e, r := newTestEngine(t, 4)
	c := checker{t}
	s := newGame(t, e, "Ann")

	s = c.ok(e.Roll(s))
	assert.Equal(t, 4, s.LastRoll)
	assert.Equal(t, 4, s.Players[0].Position)
	require.NotNil(t, s.Attack, "Wolf Ridge opens an attack")
	assert.Equal(t, data.AttackWolves, s.Attack.Kind)
	assert.Equal(t, 0, r.Pending())
}

func TestEndTurnRotation(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann", "Ben")
	s.Players[1].Position = 5

	s = c.ok(e.EndTurn(s))
	assert.Equal(t, 1, s.CurrentPlayer)
	assert.Equal(t, 1, s.Turn)
	assert.Equal(t, "Egypt", s.SelectedLocation)

	s = c.ok(e.EndTurn(s))
	assert.Equal(t, 0, s.CurrentPlayer)
	assert.Equal(t, 2, s.Turn)
	assert.Empty(t, s.SelectedLocation)
}

func TestEndTurnClearsAttackSession(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann", "Ben")

	s = c.ok(e.Move(s, 4))
	require.NotNil(t, s.Attack)
	s = c.ok(e.EndTurn(s))
	assert.Nil(t, s.Attack)
}

func TestWinnerDetectedOnce(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann", "Ben")
	s.Players[0].VictoryPoints = 38
	s.Players[0].Position = 5

	s, evs := c.events(e.AnswerQuestion(s, "Moses", data.TierFull, "egypt/moses/1"))
	w, ok := findEvent[*WinnerEvent](evs)
	require.True(t, ok)
	assert.Equal(t, "Ann", w.Player)
	assert.Equal(t, s.Players[0].ID, s.Winner)

	// Play continues and the winner never changes
	s = c.ok(e.EndTurn(s))
	s.Players[1].VictoryPoints = 45
	s, evs = c.events(e.AnswerQuestion(s, "Aaron", data.TierFull, "egypt/aaron/1"))
	_, again := findEvent[*WinnerEvent](evs)
	assert.False(t, again)
	assert.Equal(t, s.Players[0].ID, s.Winner)
}

func TestRemovedWinnerGivesUpTheWin(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann", "Ben")
	s = c.ok(e.EndTurn(s))
	s.Players[1].VictoryPoints = 38
	s.Players[1].Position = 5
	s = c.ok(e.AnswerQuestion(s, "Moses", data.TierFull, "egypt/moses/1"))
	require.Equal(t, s.Players[1].ID, s.Winner)

	s = c.ok(e.EndTurn(s))
	s = c.ok(e.RemovePlayer(s))
	assert.Empty(t, s.Winner)

	s.Players[0].VictoryPoints = 38
	s.Players[0].Position = 5
	s, evs := c.events(e.AnswerQuestion(s, "Aaron", data.TierFull, "egypt/aaron/1"))
	w, ok := findEvent[*WinnerEvent](evs)
	require.True(t, ok)
	assert.Equal(t, "Ann", w.Player)
	_, found := s.FindPlayer(s.Winner)
	assert.True(t, found)
}

func TestValidateRejectsUnseatedWinner(t *testing.T) {
	e, _ := newTestEngine(t)
	s := newGame(t, e, "Ann")
	s.Winner = "ghost"
	assert.Error(t, e.Validate(s))
}

func TestHintFollowsPhase(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann")

	assert.Contains(t, e.Hint(s), "roll")
	s = c.ok(e.Move(s, 5))
	h := e.Hint(s)
	assert.Contains(t, h, "Egypt")
	assert.Contains(t, h, "Moses")
	assert.Contains(t, h, "end")
}
