package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/pilgrim/internal/command"
	"github.com/suderio/pilgrim/internal/data"
	"github.com/suderio/pilgrim/internal/engine"
	"github.com/suderio/pilgrim/internal/parser"
	"github.com/suderio/pilgrim/internal/rules"
)

type table struct {
	t     *testing.T
	env   *command.Env
	state *engine.GameState
}

func newTable(t *testing.T, faces ...int) *table {
	t.Helper()
	gd, err := data.NewLoader(nil).LoadAll()
	require.NoError(t, err)
	eng, err := engine.NewFromData(gd, engine.WithRoller(engine.NewScriptedRoller(faces...)))
	require.NoError(t, err)
	reg, err := rules.NewRegistry()
	require.NoError(t, err)
	s, _, err := eng.NewGame([]engine.PlayerData{{Name: "Ann"}, {Name: "Ben"}})
	require.NoError(t, err)
	return &table{t: t, env: &command.Env{Engine: eng, Trivia: gd.Trivia, Registry: reg}, state: s}
}

// run parses and executes input, keeping the new state on success.
func (tb *table) run(input string) ([]engine.Event, error) {
	tb.t.Helper()
	cmd, err := parser.Build().ParseString("", input)
	require.NoError(tb.t, err, input)
	next, events, err := command.Execute(cmd, tb.env, tb.state)
	if err != nil {
		return nil, err
	}
	tb.state = next
	return events, nil
}

func (tb *table) ok(input string) []engine.Event {
	tb.t.Helper()
	events, err := tb.run(input)
	require.NoError(tb.t, err, input)
	return events
}

func (tb *table) message(input string) string {
	tb.t.Helper()
	events := tb.ok(input)
	require.Len(tb.t, events, 1)
	return events[0].Message()
}

func TestRollAskAnswer(t *testing.T) {
	tb := newTable(t, 5)

	tb.ok("roll")
	assert.Equal(t, 5, tb.state.Players[0].Position)
	assert.Equal(t, "Egypt", tb.state.SelectedLocation)

	msg := tb.message("ask Moses")
	assert.Contains(t, msg, "[egypt/moses/1]")
	assert.Contains(t, msg, "Answer:")

	_, err := tb.run("ask Ruth")
	assert.ErrorContains(t, err, "not Egypt")

	tb.ok("answer Moses tier: full")
	assert.Equal(t, 3, tb.state.Players[0].VictoryPoints)
	assert.True(t, tb.state.Answered.Has("egypt/moses/1"))

	assert.Contains(t, tb.message("ask moses"), "[egypt/moses/2]")

	tb.ok("answer Aaron tier: hint question: egypt/aaron/2")
	assert.Equal(t, 5, tb.state.Players[0].VictoryPoints)

	_, err = tb.run("answer Aaron tier: hint question: EGYPT/AARON/2")
	assert.ErrorIs(t, err, engine.ErrAlreadyAnswered)
}

func TestAskNeedsLocation(t *testing.T) {
	tb := newTable(t)
	_, err := tb.run("ask Moses")
	assert.ErrorContains(t, err, "no trivia location")
}

func TestPhysicalRollAndAttack(t *testing.T) {
	tb := newTable(t, 5)

	events := tb.ok("roll 4")
	require.NotEmpty(t, events)
	assert.Equal(t, engine.EventRollStarted, events[0].Type())
	assert.Equal(t, 4, tb.state.Players[0].Position)
	require.NotNil(t, tb.state.Attack)

	events = tb.ok("attack at: 4")
	var resolved *engine.AttackResolvedEvent
	for _, evt := range events {
		if r, ok := evt.(*engine.AttackResolvedEvent); ok {
			resolved = r
		}
	}
	require.NotNil(t, resolved)
	assert.Equal(t, 5, resolved.Roll)
	assert.Nil(t, tb.state.Attack)
	assert.Equal(t, 0, tb.state.Players[0].Livestock)
}

func TestRollValueOutOfRange(t *testing.T) {
	tb := newTable(t)
	before := tb.state
	_, err := tb.run("roll 9")
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
	assert.Same(t, before, tb.state)
}

func TestChooseWithoutPending(t *testing.T) {
	tb := newTable(t)
	_, err := tb.run("choose target: Ben")
	assert.ErrorIs(t, err, engine.ErrNoPendingChoice)
}

func TestDrawAndCancel(t *testing.T) {
	tb := newTable(t)
	events := tb.ok("draw challenge")
	assert.Equal(t, engine.EventCardDrawn, events[0].Type())
	if tb.state.Pending != nil {
		_, err := tb.run("end")
		assert.ErrorIs(t, err, engine.ErrChoiceRequired)
		tb.ok("cancel")
	}
	assert.Nil(t, tb.state.Pending)
	tb.ok("end")
	assert.Equal(t, 1, tb.state.CurrentPlayer)
}

func TestAddRemove(t *testing.T) {
	tb := newTable(t)
	tb.ok(`add "Cara Doe" color: red shape: star`)
	require.Len(t, tb.state.Players, 3)
	assert.Equal(t, "red", tb.state.Players[2].Color)

	tb.ok("remove")
	assert.Len(t, tb.state.Players, 2)
}

func TestReadOnlyCommands(t *testing.T) {
	tb := newTable(t)
	before := tb.state

	assert.Equal(t, "Ann", tb.message(`query "current.name"`))
	assert.Equal(t, "true", tb.message(`query "size(players) == 2"`))
	assert.Contains(t, tb.message("status"), "> Ann")
	assert.Contains(t, tb.message("hint"), "Ann to `roll`")
	assert.Contains(t, tb.message("help answer"), parser.Usage["answer"])
	assert.Contains(t, tb.message("help"), "Available Commands")

	_, err := tb.run("help dance")
	assert.Error(t, err)
	_, err = tb.run(`query "players[0]."`)
	assert.ErrorContains(t, err, "query failed")

	assert.Same(t, before, tb.state)
}
