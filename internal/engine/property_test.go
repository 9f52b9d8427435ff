package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/suderio/pilgrim/internal/data"
)

// TestRandomPlayKeepsInvariants drives whole games with random legal moves and checks the
// state-wide properties after every transition.
func TestRandomPlayKeepsInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			gd := defaultData(t)
			dice := NewSeededRoller(seed)
			e, err := NewFromData(gd, WithRoller(dice))
			require.NoError(t, err)
			c := checker{t}
			s := newGame(t, e, "Ann", "Ben", "Cy")
			pick := NewSeededRoller(seed * 31)
			sizes := map[data.Category]int{}
			for _, cat := range data.Categories {
				sizes[cat] = s.Decks[cat].Size()
			}

			for i := 0; i < 400; i++ {
				s = c.ok(randomStep(e, s, pick, i))
				for _, p := range s.Players {
					require.GreaterOrEqual(t, p.VictoryPoints, 0)
					require.GreaterOrEqual(t, p.Livestock, 0)
					require.GreaterOrEqual(t, p.Coins, 0)
					require.Less(t, p.Position, gd.Board.Size())
					require.GreaterOrEqual(t, p.Position, 0)
				}
				for _, cat := range data.Categories {
					held := 0
					if s.Pending != nil && s.Pending.Category == cat {
						held = 1
					}
					require.Equal(t, sizes[cat], s.Decks[cat].Size()+held)
				}
				require.LessOrEqual(t, len(s.Claimed.Items()), len(gd.Board.Characters()))
			}
		})
	}
}

func randomStep(e *Engine, s *GameState, pick Roller, i int) (*GameState, []Event, error) {
	if s.Pending != nil {
		switch s.Pending.Kind {
		case data.EffectSteal:
			owner, _ := s.FindPlayer(s.Pending.PlayerID)
			return e.ResolveChoice(s, Choice{Target: s.Players[(owner+1)%len(s.Players)].Name})
		case data.EffectBoostHelper:
			chars := e.Board().Characters()
			return e.ResolveChoice(s, Choice{Helper: chars[pick.Intn(len(chars))]})
		case data.EffectTeleport:
			locs := e.Board().Locations()
			return e.ResolveChoice(s, Choice{Location: locs[pick.Intn(len(locs))].Name})
		case data.EffectExclusive:
			return e.ResolveChoice(s, Choice{Option: []string{"a", "b"}[pick.Intn(2)]})
		}
		return e.CancelChoice(s)
	}
	if s.Phase == PhaseAwaitingRoll {
		return e.Roll(s)
	}
	p := s.Current()
	sp := e.Board().Space(p.Position)
	switch pick.Intn(4) {
	case 0:
		if s.Attack != nil {
			return e.ResolveAttack(s, "", p.Position)
		}
	case 1:
		if cat, ok := sp.Kind.DrawCategory(); ok {
			return e.DrawCard(s, cat)
		}
	case 2:
		if len(sp.Characters) > 0 {
			char := sp.Characters[pick.Intn(len(sp.Characters))]
			tier := []data.RewardTier{data.TierFull, data.TierHint, data.TierMinimal}[pick.Intn(3)]
			return e.AnswerQuestion(s, char, tier, fmt.Sprintf("q/%d", i))
		}
	}
	return e.EndTurn(s)
}
