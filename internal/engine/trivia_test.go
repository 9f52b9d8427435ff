package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/pilgrim/internal/data"
)

func TestAnswerQuestionAwardsTier(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann")

	s = c.ok(e.AnswerQuestion(s, "moses", data.TierFull, "egypt/moses/1"))
	assert.Equal(t, 3, s.Players[0].VictoryPoints)
	s = c.ok(e.AnswerQuestion(s, "Moses", data.TierHint, "egypt/moses/2"))
	assert.Equal(t, 5, s.Players[0].VictoryPoints)
	s = c.ok(e.AnswerQuestion(s, "Aaron", "MINIMAL", "egypt/aaron/1"))
	assert.Equal(t, 6, s.Players[0].VictoryPoints)

	assert.Equal(t, 2, s.Players[0].Helpers["Moses"])
	assert.Equal(t, 1, s.Players[0].Helpers["Aaron"])
	assert.Equal(t, []string{"egypt/moses/1", "egypt/moses/2", "egypt/aaron/1"}, s.Answered.Items())

	assert.ErrorIs(t, c.fails(e.AnswerQuestion(s, "Aaron", "perfect", "egypt/aaron/2")), ErrInvalidInput)
	assert.ErrorIs(t, c.fails(e.AnswerQuestion(s, "Aaron", data.TierFull, "  ")), ErrInvalidInput)
}

func TestAnswerQuestionOnlyOnce(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann", "Ben")

	s = c.ok(e.AnswerQuestion(s, "Moses", data.TierFull, "egypt/moses/1"))
	before := fingerprint(t, e, s)

	err := c.fails(e.AnswerQuestion(s, "Moses", data.TierFull, "egypt/moses/1"))
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
	assert.Equal(t, before, fingerprint(t, e, s))

	// The set is global: another player, different casing, same question
	s = c.ok(e.EndTurn(s))
	err = c.fails(e.AnswerQuestion(s, "Moses", data.TierFull, "EGYPT/Moses/1"))
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
}

func TestAnswerUnknownCharacter(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann")

	err := c.fails(e.AnswerQuestion(s, "Goliath", data.TierFull, "x/goliath/1"))
	assert.ErrorIs(t, err, ErrUnknownCharacterOrLocation)
	assert.Zero(t, s.Answered.Len())
}

func TestMosesClaimScenario(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann", "Ben")
	s.Players[0].Helpers["Moses"] = 2
	s.Players[1].Helpers["Moses"] = 2

	s, evs := c.events(e.AnswerQuestion(s, "Moses", data.TierFull, "egypt/moses/1"))
	assert.Equal(t, 3, s.Players[0].Helpers["Moses"])
	assert.True(t, s.Claimed.Has("Moses"))
	assert.True(t, s.Players[0].Recruited("Moses"))
	claim, ok := findEvent[*HelperClaimedEvent](evs)
	require.True(t, ok)
	assert.Equal(t, "Ann", claim.Player)

	// Once Moses is claimed, Ben's progress with him still rises; only the claim is closed.
	s = c.ok(e.EndTurn(s))
	s, evs = c.events(e.AnswerQuestion(s, "Moses", data.TierFull, "egypt/moses/2"))
	assert.Equal(t, 3, s.Players[1].Helpers["Moses"], "progress still counts for the second player")
	assert.False(t, s.Players[1].Recruited("Moses"))
	assert.Equal(t, []string{"Moses"}, s.Claimed.Items())
	_, claimedAgain := findEvent[*HelperClaimedEvent](evs)
	assert.False(t, claimedAgain)
	assert.False(t, s.Claimable("moses"))
}

func TestHelperProgressCapped(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann")
	s.Players[0].Helpers["Peter"] = 10

	s = c.ok(e.AnswerQuestion(s, "Peter", data.TierFull, "galilee/peter/1"))
	assert.Equal(t, 10, s.Players[0].Helpers["Peter"])
	assert.False(t, s.Claimed.Has("Peter"), "no threshold crossing, no claim")
}

func TestAnswerBlockedWhileRolling(t *testing.T) {
	e, _ := newTestEngine(t)
	c := checker{t}
	s := newGame(t, e, "Ann")
	s = c.ok(e.BeginRoll(s))

	assert.ErrorIs(t, c.fails(e.AnswerQuestion(s, "Moses", data.TierFull, "egypt/moses/1")), ErrRollInProgress)
}
