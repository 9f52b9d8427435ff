package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suderio/pilgrim/internal/data"
)

func TestSnapshotRoundTrip(t *testing.T) {
	e, _ := cardEngine(t,
		blessing("wisdom", data.TriviaBonus{Bonus: 2, UseCount: 2}),
		blessing("roads", data.Exclusive{
			A: data.Option{Label: "a", Delta: data.Delta{SP: 1}},
			B: data.Option{Label: "b", Delta: data.Delta{SP: 2}},
		}),
	)
	c := checker{t}
	s := newGame(t, e, "Ann", "Ben")
	s.Players[0].Helpers["Moses"] = 2
	s = c.ok(e.AnswerQuestion(s, "Moses", data.TierFull, "egypt/moses/1"))
	for s.Pending == nil && len(s.Players[0].Effects) == 0 {
		s = c.ok(e.DrawCard(s, data.CategoryBlessing))
	}

	b, err := e.Marshal(s)
	require.NoError(t, err)
	restored, err := e.Unmarshal(b)
	require.NoError(t, err)

	again, err := e.Marshal(restored)
	require.NoError(t, err)
	assert.JSONEq(t, string(b), string(again))
	assert.Equal(t, []string{"Moses"}, restored.Claimed.Items())
	assert.Equal(t, []string{"egypt/moses/1"}, restored.Answered.Items())
	for _, eff := range restored.Players[0].Effects {
		assert.NotNil(t, eff.Params)
	}

	// Sets and piles are plain ordered lists on disk
	var raw struct {
		State map[string]any `json:"state"`
	}
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, []any{"Moses"}, raw.State["claimed_helpers"])
}

func TestUnmarshalRejectsBrokenState(t *testing.T) {
	e, _ := newTestEngine(t)
	s := newGame(t, e, "Ann")

	bad := s.Clone()
	bad.Players[0].Livestock = -1
	b, err := e.Marshal(bad)
	require.NoError(t, err)
	_, err = e.Unmarshal(b)
	assert.ErrorIs(t, err, ErrInvalidState)

	lost := s.Clone()
	lost.Decks[data.CategoryBlessing].DrawPile = lost.Decks[data.CategoryBlessing].DrawPile[1:]
	b, err = e.Marshal(lost)
	require.NoError(t, err)
	_, err = e.Unmarshal(b)
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = e.Unmarshal([]byte(`{"version": 99, "state": {}}`))
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestOrderedSetIsWriteOnce(t *testing.T) {
	var set OrderedSet
	assert.True(t, set.add("b"))
	assert.True(t, set.add("a"))
	assert.False(t, set.add("b"))
	assert.Equal(t, []string{"b", "a"}, set.Items())

	items := set.Items()
	items[0] = "z"
	assert.True(t, set.Has("b"), "Items returns a copy")

	var decoded OrderedSet
	require.NoError(t, json.Unmarshal([]byte(`["x","y","x"]`), &decoded))
	assert.Equal(t, []string{"x", "y"}, decoded.Items())
}
