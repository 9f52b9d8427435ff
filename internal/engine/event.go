package engine

import (
	"fmt"
	"strings"

	"github.com/suderio/pilgrim/internal/data"
)

type EventType string

const (
	EventGameStarted      EventType = "GameStarted"
	EventPlayerAdded      EventType = "PlayerAdded"
	EventPlayerRemoved    EventType = "PlayerRemoved"
	EventRollStarted      EventType = "RollStarted"
	EventDiceRolled       EventType = "DiceRolled"
	EventMoved            EventType = "Moved"
	EventPassedStart      EventType = "PassedStart"
	EventResourceChanged  EventType = "ResourceChanged"
	EventCardDrawn        EventType = "CardDrawn"
	EventDeckReshuffled   EventType = "DeckReshuffled"
	EventEffectAttached   EventType = "EffectAttached"
	EventEffectConsumed   EventType = "EffectConsumed"
	EventChoicePending    EventType = "ChoicePending"
	EventChoiceResolved   EventType = "ChoiceResolved"
	EventChoiceCancelled  EventType = "ChoiceCancelled"
	EventQuestionAnswered EventType = "QuestionAnswered"
	EventHelperProgress   EventType = "HelperProgress"
	EventHelperClaimed    EventType = "HelperClaimed"
	EventAttackStarted    EventType = "AttackStarted"
	EventAttackResolved   EventType = "AttackResolved"
	EventTurnEnded        EventType = "TurnEnded"
	EventTurnSkipped      EventType = "TurnSkipped"
	EventTurnStarted      EventType = "TurnStarted"
	EventWinner           EventType = "Winner"
	EventHint             EventType = "Hint"
)

// Event narrates one step of a transition. Events never drive state: the returned
// snapshot is authoritative, and events exist for display and the save journal.
type Event interface {
	Type() EventType
	Message() string
}

// GameStartedEvent opens a new session.
type GameStartedEvent struct {
	Players []string
}

func (e *GameStartedEvent) Type() EventType { return EventGameStarted }
func (e *GameStartedEvent) Message() string {
	return fmt.Sprintf("A new pilgrimage begins with %s.", strings.Join(e.Players, ", "))
}

// PlayerAddedEvent joins a player to the table.
type PlayerAddedEvent struct {
	ID   string
	Name string
}

func (e *PlayerAddedEvent) Type() EventType { return EventPlayerAdded }
func (e *PlayerAddedEvent) Message() string { return fmt.Sprintf("%s joined the game.", e.Name) }

// PlayerRemovedEvent drops the last player.
type PlayerRemovedEvent struct {
	ID   string
	Name string
}

func (e *PlayerRemovedEvent) Type() EventType { return EventPlayerRemoved }
func (e *PlayerRemovedEvent) Message() string { return fmt.Sprintf("%s left the game.", e.Name) }

// RollStartedEvent marks the transient rolling state.
type RollStartedEvent struct {
	Player string
}

func (e *RollStartedEvent) Type() EventType { return EventRollStarted }
func (e *RollStartedEvent) Message() string { return fmt.Sprintf("%s is rolling...", e.Player) }

// DiceRolledEvent records a committed roll and any roll bonus added to it.
type DiceRolledEvent struct {
	Player string
	Value  int
	Bonus  int
}

func (e *DiceRolledEvent) Type() EventType { return EventDiceRolled }
func (e *DiceRolledEvent) Message() string {
	if e.Bonus != 0 {
		return fmt.Sprintf("%s rolled %d (%+d bonus).", e.Player, e.Value, e.Bonus)
	}
	return fmt.Sprintf("%s rolled %d.", e.Player, e.Value)
}

// MovedEvent records a change of position.
type MovedEvent struct {
	Player   string
	From     int
	To       int
	Spaces   int
	Space    string
	Teleport bool
}

func (e *MovedEvent) Type() EventType { return EventMoved }
func (e *MovedEvent) Message() string {
	if e.Teleport {
		return fmt.Sprintf("%s travels to %s.", e.Player, e.Space)
	}
	return fmt.Sprintf("%s moves %d spaces to %s (%d).", e.Player, e.Spaces, e.Space, e.To)
}

// PassedStartEvent records a pass-start bonus.
type PassedStartEvent struct {
	Player string
	Bonus  int
}

func (e *PassedStartEvent) Type() EventType { return EventPassedStart }
func (e *PassedStartEvent) Message() string {
	return fmt.Sprintf("%s passed start and earns %d SP.", e.Player, e.Bonus)
}

// ResourceChangedEvent reports the actual change applied, which may be smaller than requested.
type ResourceChangedEvent struct {
	Player    string
	Resource  Resource
	Requested int
	Actual    int
	Value     int
	Reason    string
}

func (e *ResourceChangedEvent) Type() EventType { return EventResourceChanged }
func (e *ResourceChangedEvent) Message() string {
	msg := fmt.Sprintf("%s %+d %s (now %d)", e.Player, e.Actual, e.Resource, e.Value)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// CardDrawnEvent records a drawn card.
type CardDrawnEvent struct {
	Player   string
	Category data.Category
	CardID   string
	Title    string
	Effect   string
}

func (e *CardDrawnEvent) Type() EventType { return EventCardDrawn }
func (e *CardDrawnEvent) Message() string {
	return fmt.Sprintf("%s draws %s %q: %s.", e.Player, e.Category, e.Title, e.Effect)
}

// DeckReshuffledEvent records a discard pile turned into a fresh draw pile.
type DeckReshuffledEvent struct {
	Category data.Category
	Size     int
}

func (e *DeckReshuffledEvent) Type() EventType { return EventDeckReshuffled }
func (e *DeckReshuffledEvent) Message() string {
	return fmt.Sprintf("The %s deck is reshuffled (%d cards).", e.Category, e.Size)
}

// EffectAttachedEvent records a persistent effect joining a player.
type EffectAttachedEvent struct {
	Player    string
	CardID    string
	Title     string
	Remaining int
}

func (e *EffectAttachedEvent) Type() EventType { return EventEffectAttached }
func (e *EffectAttachedEvent) Message() string {
	if e.Remaining == data.Permanent {
		return fmt.Sprintf("%s now carries %q permanently.", e.Player, e.Title)
	}
	return fmt.Sprintf("%s now carries %q (%d uses).", e.Player, e.Title, e.Remaining)
}

// EffectConsumedEvent records one use of a persistent effect. Remaining 0 means it expired.
type EffectConsumedEvent struct {
	Player    string
	CardID    string
	Title     string
	Kind      data.EffectKind
	Remaining int
}

func (e *EffectConsumedEvent) Type() EventType { return EventEffectConsumed }
func (e *EffectConsumedEvent) Message() string {
	switch e.Remaining {
	case 0:
		return fmt.Sprintf("%s used up %q.", e.Player, e.Title)
	case data.Permanent:
		return fmt.Sprintf("%s benefits from %q.", e.Player, e.Title)
	}
	return fmt.Sprintf("%s used %q (%d left).", e.Player, e.Title, e.Remaining)
}

// ChoicePendingEvent asks the acting player for a decision.
type ChoicePendingEvent struct {
	Player string
	CardID string
	Kind   data.EffectKind
	Prompt string
}

func (e *ChoicePendingEvent) Type() EventType { return EventChoicePending }
func (e *ChoicePendingEvent) Message() string {
	return fmt.Sprintf("%s must choose: %s.", e.Player, e.Prompt)
}

// ChoiceResolvedEvent records the decision taken on a choice card.
type ChoiceResolvedEvent struct {
	Player string
	CardID string
	Choice string
}

func (e *ChoiceResolvedEvent) Type() EventType { return EventChoiceResolved }
func (e *ChoiceResolvedEvent) Message() string {
	return fmt.Sprintf("%s chose %s.", e.Player, e.Choice)
}

// ChoiceCancelledEvent records a discarded choice card.
type ChoiceCancelledEvent struct {
	Player string
	CardID string
}

func (e *ChoiceCancelledEvent) Type() EventType { return EventChoiceCancelled }
func (e *ChoiceCancelledEvent) Message() string {
	return fmt.Sprintf("%s set the card aside.", e.Player)
}

// QuestionAnsweredEvent records a scored trivia answer.
type QuestionAnsweredEvent struct {
	Player     string
	Character  string
	Tier       data.RewardTier
	QuestionID string
	Points     int
	Bonus      int
}

func (e *QuestionAnsweredEvent) Type() EventType { return EventQuestionAnswered }
func (e *QuestionAnsweredEvent) Message() string {
	msg := fmt.Sprintf("%s answered %s's question (%s): +%d SP", e.Player, e.Character, e.Tier, e.Points)
	if e.Bonus != 0 {
		msg += fmt.Sprintf(" and %+d bonus", e.Bonus)
	}
	return msg
}

// HelperProgressEvent records progress toward recruiting a character.
type HelperProgressEvent struct {
	Player    string
	Character string
	Progress  int
}

func (e *HelperProgressEvent) Type() EventType { return EventHelperProgress }
func (e *HelperProgressEvent) Message() string {
	return fmt.Sprintf("%s's bond with %s grows to %d.", e.Player, e.Character, e.Progress)
}

// HelperClaimedEvent records an exclusive recruitment.
type HelperClaimedEvent struct {
	Player    string
	Character string
}

func (e *HelperClaimedEvent) Type() EventType { return EventHelperClaimed }
func (e *HelperClaimedEvent) Message() string {
	return fmt.Sprintf("%s recruited %s!", e.Player, e.Character)
}

// AttackStartedEvent opens the attack session.
type AttackStartedEvent struct {
	Player   string
	Kind     data.AttackKind
	Position int
}

func (e *AttackStartedEvent) Type() EventType { return EventAttackStarted }
func (e *AttackStartedEvent) Message() string {
	return fmt.Sprintf("%s is ambushed by %s!", e.Player, e.Kind)
}

// AttackResolvedEvent reports the roll and the actual losses.
type AttackResolvedEvent struct {
	Player   string
	Kind     data.AttackKind
	Roll     int
	Resource Resource
	Loss     int
	SPLoss   int
	Shielded bool
	Shield   string
}

func (e *AttackResolvedEvent) Type() EventType { return EventAttackResolved }
func (e *AttackResolvedEvent) Message() string {
	if e.Shielded {
		return fmt.Sprintf("The %s rolled %d but %q protects %s.", e.Kind, e.Roll, e.Shield, e.Player)
	}
	return fmt.Sprintf("The %s rolled %d: %s loses %d %s and %d SP.", e.Kind, e.Roll, e.Player, e.Loss, e.Resource, e.SPLoss)
}

// TurnEndedEvent closes a player's turn.
type TurnEndedEvent struct {
	Player string
}

func (e *TurnEndedEvent) Type() EventType { return EventTurnEnded }
func (e *TurnEndedEvent) Message() string { return fmt.Sprintf("%s ended their turn.", e.Player) }

// TurnSkippedEvent records a turn lost to a skip effect.
type TurnSkippedEvent struct {
	Player string
	Title  string
}

func (e *TurnSkippedEvent) Type() EventType { return EventTurnSkipped }
func (e *TurnSkippedEvent) Message() string {
	return fmt.Sprintf("%s loses a turn to %q.", e.Player, e.Title)
}

// TurnStartedEvent announces the next player.
type TurnStartedEvent struct {
	Player string
	Turn   int
}

func (e *TurnStartedEvent) Type() EventType { return EventTurnStarted }
func (e *TurnStartedEvent) Message() string {
	return fmt.Sprintf("Turn %d: %s to roll.", e.Turn, e.Player)
}

// WinnerEvent is emitted once, when the first player reaches the win threshold.
type WinnerEvent struct {
	Player string
	Points int
}

func (e *WinnerEvent) Type() EventType { return EventWinner }
func (e *WinnerEvent) Message() string {
	return fmt.Sprintf("%s reaches %d SP and wins the pilgrimage!", e.Player, e.Points)
}

// HintEvent is purely for querying the current state, and typically won't be saved to the store
type HintEvent struct {
	MessageStr string
}

func (e *HintEvent) Type() EventType { return EventHint }
func (e *HintEvent) Message() string { return e.MessageStr }
