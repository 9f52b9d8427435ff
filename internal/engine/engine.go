package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/suderio/pilgrim/internal/data"
)

// Engine composes the game rules over immutable configuration. It holds no game state:
// every operation takes a snapshot and returns a new validated one, or an error and no state.
type Engine struct {
	board   data.Board
	catalog *data.Catalog
	rules   data.Rules
	dice    Roller
	log     logrus.FieldLogger
	decks   map[data.Category]map[string]int
}

// Option configures an Engine.
type Option func(*Engine)

// WithRoller injects the randomness source.
func WithRoller(r Roller) Option {
	return func(e *Engine) { e.dice = r }
}

// WithLogger routes engine warnings to a logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// New validates the configuration and builds an Engine.
func New(board data.Board, catalog *data.Catalog, rules data.Rules, opts ...Option) (*Engine, error) {
	if err := data.ValidateBoard(board); err != nil {
		return nil, fmt.Errorf("failed to validate board: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate rules: %w", err)
	}
	if catalog == nil {
		return nil, fmt.Errorf("card catalog is required")
	}
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	e := &Engine{
		board:   board,
		catalog: catalog,
		rules:   rules,
		log:     quiet,
		decks:   make(map[data.Category]map[string]int),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.dice == nil {
		e.dice = NewSeededRoller(NewSeed())
	}
	for _, cat := range data.Categories {
		e.decks[cat] = composition(catalog, cat, rules.WeightedDecks)
	}
	return e, nil
}

// NewFromData builds an Engine from a loaded data set.
func NewFromData(gd *data.GameData, opts ...Option) (*Engine, error) {
	return New(gd.Board, gd.Catalog, gd.Rules, opts...)
}

func (e *Engine) Board() data.Board          { return e.board }
func (e *Engine) Catalog() *data.Catalog     { return e.catalog }
func (e *Engine) Rules() data.Rules          { return e.rules }
func (e *Engine) Roller() Roller             { return e.dice }
func (e *Engine) Logger() logrus.FieldLogger { return e.log }

// txn is one in-flight transition over a private copy of the state.
type txn struct {
	e      *Engine
	s      *GameState
	events []Event
}

func (t *txn) emit(evs ...Event) {
	t.events = append(t.events, evs...)
}

// transition runs fn against a copy of s. The copy is only returned if fn succeeds and the
// result validates, so no caller ever sees a half-applied change.
func (e *Engine) transition(s *GameState, fn func(t *txn) error) (*GameState, []Event, error) {
	if s == nil || len(s.Players) == 0 {
		return nil, nil, fmt.Errorf("%w: no game in progress", ErrInvalidState)
	}
	t := &txn{e: e, s: s.Clone()}
	if err := fn(t); err != nil {
		return nil, nil, err
	}
	t.checkWinner()
	if err := e.Validate(t.s); err != nil {
		e.log.WithError(err).Error("transition rejected")
		return nil, nil, err
	}
	return t.s, t.events, nil
}

// guard rejects operations that a pending choice or an uncommitted roll block.
func (t *txn) guard() error {
	if t.s.Pending != nil {
		return ErrChoiceRequired
	}
	if t.s.Rolling {
		return ErrRollInProgress
	}
	return nil
}

// checkWinner records the first player at or over the threshold. Later calls never replace it.
func (t *txn) checkWinner() {
	if t.s.Winner != "" {
		return
	}
	for _, p := range t.s.Players {
		if p.VictoryPoints >= t.e.rules.WinThreshold {
			t.s.Winner = p.ID
			t.emit(&WinnerEvent{Player: p.Name, Points: p.VictoryPoints})
			return
		}
	}
}

func (e *Engine) newPlayer(pd PlayerData, n int) Player {
	id := strings.TrimSpace(pd.ID)
	if id == "" {
		id = uuid.NewString()
	}
	name := strings.TrimSpace(pd.Name)
	if name == "" {
		name = fmt.Sprintf("Player %d", n)
	}
	return Player{
		ID:        id,
		Name:      name,
		Color:     pd.Color,
		Shape:     pd.Shape,
		Livestock: e.rules.StartingLivestock,
		Coins:     e.rules.StartingCoins,
		Helpers:   make(map[string]int),
	}
}

func checkUnique(players []Player, p Player) error {
	for _, q := range players {
		if q.ID == p.ID {
			return fmt.Errorf("%w: duplicate player id %s", ErrInvalidInput, p.ID)
		}
		if strings.EqualFold(q.Name, p.Name) {
			return fmt.Errorf("%w: duplicate player name %s", ErrInvalidInput, p.Name)
		}
	}
	return nil
}

// NewGame starts a session: player 0 to roll on turn 1, decks freshly shuffled.
func (e *Engine) NewGame(players []PlayerData) (*GameState, []Event, error) {
	if len(players) < e.rules.MinPlayers || len(players) > e.rules.MaxPlayers {
		return nil, nil, fmt.Errorf("%w: %d players, need %d..%d", ErrInvalidPlayerCount, len(players), e.rules.MinPlayers, e.rules.MaxPlayers)
	}
	s := &GameState{
		Turn:  1,
		Phase: PhaseAwaitingRoll,
		Decks: make(map[data.Category]*Deck),
	}
	names := make([]string, 0, len(players))
	var events []Event
	for i, pd := range players {
		p := e.newPlayer(pd, i+1)
		if err := checkUnique(s.Players, p); err != nil {
			return nil, nil, err
		}
		s.Players = append(s.Players, p)
		names = append(names, p.Name)
		events = append(events, &PlayerAddedEvent{ID: p.ID, Name: p.Name})
	}
	for _, cat := range data.Categories {
		s.Decks[cat] = newDeck(e.catalog, cat, e.rules.WeightedDecks, e.dice)
	}
	if err := e.Validate(s); err != nil {
		return nil, nil, err
	}
	events = append([]Event{&GameStartedEvent{Players: names}}, events...)
	events = append(events, &TurnStartedEvent{Player: s.Players[0].Name, Turn: 1})
	return s, events, nil
}

// AddPlayer seats a new player at the start space, after everyone else in turn order.
func (e *Engine) AddPlayer(s *GameState, pd PlayerData) (*GameState, []Event, error) {
	return e.transition(s, func(t *txn) error {
		if len(t.s.Players) >= e.rules.MaxPlayers {
			return fmt.Errorf("%w: table is full (%d)", ErrInvalidPlayerCount, e.rules.MaxPlayers)
		}
		p := e.newPlayer(pd, len(t.s.Players)+1)
		if err := checkUnique(t.s.Players, p); err != nil {
			return err
		}
		t.s.Players = append(t.s.Players, p)
		t.emit(&PlayerAddedEvent{ID: p.ID, Name: p.Name})
		return nil
	})
}

// RemovePlayer drops the last player in turn order. Their claims stay claimed; a win they
// held is given up.
func (e *Engine) RemovePlayer(s *GameState) (*GameState, []Event, error) {
	return e.transition(s, func(t *txn) error {
		n := len(t.s.Players)
		if n <= e.rules.MinPlayers {
			return fmt.Errorf("%w: cannot go below %d", ErrInvalidPlayerCount, e.rules.MinPlayers)
		}
		gone := t.s.Players[n-1]
		t.s.Players = t.s.Players[:n-1]
		if pc := t.s.Pending; pc != nil && pc.PlayerID == gone.ID {
			t.s.Decks[pc.Category].Discard(pc.CardID)
			t.s.Pending = nil
			t.s.Phase = pc.Resume
		}
		if t.s.Attack != nil && t.s.Attack.PlayerID == gone.ID {
			t.s.Attack = nil
		}
		t.emit(&PlayerRemovedEvent{ID: gone.ID, Name: gone.Name})
		if t.s.Winner == gone.ID {
			t.s.Winner = ""
			t.checkWinner()
		}
		if t.s.CurrentPlayer >= len(t.s.Players) {
			t.s.Turn++
			t.startTurn(0)
		}
		return nil
	})
}
