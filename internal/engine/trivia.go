package engine

import (
	"fmt"
	"strings"

	"github.com/suderio/pilgrim/internal/data"
)

// NormalizeQuestionID is the canonical form of a question id in the answered set.
func NormalizeQuestionID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// AnswerQuestion scores a correct answer for the current player. The caller has already
// checked the answer and picked the tier; the engine trusts both.
func (e *Engine) AnswerQuestion(s *GameState, character string, tier data.RewardTier, questionID string) (*GameState, []Event, error) {
	return e.transition(s, func(t *txn) error {
		if err := t.guard(); err != nil {
			return err
		}
		qid := NormalizeQuestionID(questionID)
		if qid == "" {
			return fmt.Errorf("%w: question id is required", ErrInvalidInput)
		}
		if t.s.Answered.Has(qid) {
			return fmt.Errorf("%w: %s", ErrAlreadyAnswered, qid)
		}
		name, ok := e.board.Character(strings.TrimSpace(character))
		if !ok {
			return fmt.Errorf("%w: character %q", ErrUnknownCharacterOrLocation, character)
		}
		points, ok := e.rules.RewardTiers.Points(tier)
		if !ok {
			return fmt.Errorf("%w: reward tier %q", ErrInvalidInput, tier)
		}

		p := t.s.Current()
		t.s.Answered.add(qid)
		bonus := 0
		if eff, ok := t.consume(p, data.EffectTriviaBonus, nil); ok {
			if tb, ok := eff.Params.(data.TriviaBonus); ok {
				bonus = tb.Bonus
			}
		}
		t.emit(&QuestionAnsweredEvent{
			Player:     p.Name,
			Character:  name,
			Tier:       data.RewardTier(strings.ToLower(string(tier))),
			QuestionID: qid,
			Points:     points,
			Bonus:      bonus,
		})
		t.adjust(p, ResourceSP, points+bonus, "trivia")
		t.addHelperProgress(p, name, 1)
		return nil
	})
}
