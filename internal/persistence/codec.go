package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/suderio/pilgrim/internal/engine"
)

// EventWrapper facilitates serialization of polymorphic events
type EventWrapper struct {
	Type  engine.EventType `json:"type"`
	Event json.RawMessage  `json:"data"`
}

// EncodeEvent wraps an event with its type discriminator.
func EncodeEvent(evt engine.Event) ([]byte, error) {
	data, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	line, err := json.Marshal(EventWrapper{Type: evt.Type(), Event: data})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wrapper: %w", err)
	}
	return line, nil
}

// DecodeEvent reverses EncodeEvent.
func DecodeEvent(line []byte) (engine.Event, error) {
	var wrapper EventWrapper
	if err := json.Unmarshal(line, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to decode event wrapper: %w", err)
	}
	return unmarshalEvent(wrapper.Type, wrapper.Event)
}

// unmarshalEvent reconstructs a concrete Event from its type discriminator and JSON data.
func unmarshalEvent(typeName engine.EventType, data json.RawMessage) (engine.Event, error) {
	var evt engine.Event

	switch typeName {
	case engine.EventGameStarted:
		evt = &engine.GameStartedEvent{}
	case engine.EventPlayerAdded:
		evt = &engine.PlayerAddedEvent{}
	case engine.EventPlayerRemoved:
		evt = &engine.PlayerRemovedEvent{}
	case engine.EventRollStarted:
		evt = &engine.RollStartedEvent{}
	case engine.EventDiceRolled:
		evt = &engine.DiceRolledEvent{}
	case engine.EventMoved:
		evt = &engine.MovedEvent{}
	case engine.EventPassedStart:
		evt = &engine.PassedStartEvent{}
	case engine.EventResourceChanged:
		evt = &engine.ResourceChangedEvent{}
	case engine.EventCardDrawn:
		evt = &engine.CardDrawnEvent{}
	case engine.EventDeckReshuffled:
		evt = &engine.DeckReshuffledEvent{}
	case engine.EventEffectAttached:
		evt = &engine.EffectAttachedEvent{}
	case engine.EventEffectConsumed:
		evt = &engine.EffectConsumedEvent{}
	case engine.EventChoicePending:
		evt = &engine.ChoicePendingEvent{}
	case engine.EventChoiceResolved:
		evt = &engine.ChoiceResolvedEvent{}
	case engine.EventChoiceCancelled:
		evt = &engine.ChoiceCancelledEvent{}
	case engine.EventQuestionAnswered:
		evt = &engine.QuestionAnsweredEvent{}
	case engine.EventHelperProgress:
		evt = &engine.HelperProgressEvent{}
	case engine.EventHelperClaimed:
		evt = &engine.HelperClaimedEvent{}
	case engine.EventAttackStarted:
		evt = &engine.AttackStartedEvent{}
	case engine.EventAttackResolved:
		evt = &engine.AttackResolvedEvent{}
	case engine.EventTurnEnded:
		evt = &engine.TurnEndedEvent{}
	case engine.EventTurnSkipped:
		evt = &engine.TurnSkippedEvent{}
	case engine.EventTurnStarted:
		evt = &engine.TurnStartedEvent{}
	case engine.EventWinner:
		evt = &engine.WinnerEvent{}
	case engine.EventHint:
		evt = &engine.HintEvent{}
	default:
		return nil, fmt.Errorf("unknown event type in log: %s", typeName)
	}

	if err := json.Unmarshal(data, evt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", typeName, err)
	}
	return evt, nil
}
