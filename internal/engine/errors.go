package engine

import "errors"

var (
	// ErrInvalidPlayerCount is returned when a game would have too few or too many players.
	ErrInvalidPlayerCount = errors.New("invalid player count")
	// ErrDeckExhausted is returned when both piles of a deck are empty.
	ErrDeckExhausted = errors.New("deck exhausted")
	// ErrAlreadyAnswered is returned when a question id is answered a second time.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrUnknownCharacterOrLocation is returned for names the board does not know.
	ErrUnknownCharacterOrLocation = errors.New("unknown character or location")
	// ErrNoPendingChoice is returned when resolving or cancelling with no choice card pending.
	ErrNoPendingChoice = errors.New("no pending choice")
	// ErrChoiceRequired is returned by operations blocked by a pending choice card.
	ErrChoiceRequired = errors.New("a pending choice must be resolved or cancelled first")
	// ErrPositionMismatch is logged, never returned, when a handler sees a stale position.
	ErrPositionMismatch = errors.New("position mismatch")
	ErrRollInProgress   = errors.New("a roll is already in progress")
	ErrNoRollInProgress = errors.New("no roll in progress")
	ErrAlreadyRolled    = errors.New("already moved this turn")
	ErrNoAttackPending  = errors.New("no attack pending")
	ErrInvalidChoice    = errors.New("invalid choice")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnknownPlayer    = errors.New("unknown player")
	// ErrInvalidState means a transition produced a state that fails validation.
	ErrInvalidState = errors.New("invalid game state")
)
