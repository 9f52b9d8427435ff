package command

import (
	"fmt"
	"strings"

	"github.com/suderio/pilgrim/internal/data"
	"github.com/suderio/pilgrim/internal/engine"
	"github.com/suderio/pilgrim/internal/parser"
)

// nextQuestion finds the first unanswered question of a character wherever they live.
func nextQuestion(env *Env, state *engine.GameState, character string) (data.BoardSpace, string, data.Question, error) {
	loc, ok := env.Engine.Board().LocationOf(character)
	if !ok {
		return data.BoardSpace{}, "", data.Question{}, fmt.Errorf("%w: character %q", engine.ErrUnknownCharacterOrLocation, character)
	}
	answered := func(id string) bool { return state.Answered.Has(engine.NormalizeQuestionID(id)) }
	id, q, ok := env.Trivia.Next(loc.Name, character, answered)
	if !ok {
		return loc, "", data.Question{}, fmt.Errorf("%s has no unanswered questions left", character)
	}
	return loc, id, q, nil
}

// ExecuteAsk presents the next question of a character at the selected location.
// The answer is shown too: the host reads it out and judges the reply.
func ExecuteAsk(cmd *parser.AskCmd, env *Env, state *engine.GameState) ([]engine.Event, error) {
	if state.SelectedLocation == "" {
		return nil, fmt.Errorf("no trivia location selected, land on one first")
	}
	loc, id, q, err := nextQuestion(env, state, cmd.Character)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(loc.Name, state.SelectedLocation) {
		return nil, fmt.Errorf("%s is at %s, not %s", cmd.Character, loc.Name, state.SelectedLocation)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s\n", id, q.Question))
	if q.Hint != "" {
		sb.WriteString(fmt.Sprintf("Hint: %s\n", q.Hint))
	}
	sb.WriteString(fmt.Sprintf("Answer: %s\n", q.Answer))
	sb.WriteString(fmt.Sprintf("Score it with `answer %s tier: <full|hint|minimal> question: %s`.", cmd.Character, id))
	return []engine.Event{&engine.HintEvent{MessageStr: sb.String()}}, nil
}

// ExecuteAnswer scores a correct answer. Without a question id, the character's next
// unanswered question is credited.
func ExecuteAnswer(cmd *parser.AnswerCmd, env *Env, state *engine.GameState) (*engine.GameState, []engine.Event, error) {
	qid := cmd.Question
	if qid == "" {
		_, id, _, err := nextQuestion(env, state, cmd.Character)
		if err != nil {
			return nil, nil, err
		}
		qid = id
	}
	return env.Engine.AnswerQuestion(state, cmd.Character, data.RewardTier(cmd.Tier), qid)
}
