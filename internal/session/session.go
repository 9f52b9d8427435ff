package session

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/sirupsen/logrus"

	"github.com/suderio/pilgrim/internal/command"
	"github.com/suderio/pilgrim/internal/data"
	"github.com/suderio/pilgrim/internal/engine"
	"github.com/suderio/pilgrim/internal/parser"
	"github.com/suderio/pilgrim/internal/persistence"
	"github.com/suderio/pilgrim/internal/rules"
)

// ErrNoGame is returned by commands that need a game before one was started.
var ErrNoGame = errors.New("no game in progress")

// DefaultHistory is how many journal entries `history` shows without a count.
const DefaultHistory = 20

// Option configures a Session.
type Option func(*config)

type config struct {
	roller engine.Roller
	log    logrus.FieldLogger
}

// WithRoller injects the dice used by the engine.
func WithRoller(r engine.Roller) Option {
	return func(c *config) { c.roller = r }
}

// WithLogger routes session and engine logs.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) { c.log = l }
}

// Session manages the cohesive loop of taking commands, executing them, persisting the
// resulting snapshot and events, and swapping in the new GameState
type Session struct {
	data   *data.GameData
	engine *engine.Engine
	env    *command.Env
	store  persistence.Store
	state  *engine.GameState
	parser *participle.Parser[parser.Command]
	log    logrus.FieldLogger
}

// New bootstraps a game session over a store, resuming its saved snapshot if it has one.
func New(gd *data.GameData, store persistence.Store, opts ...Option) (*Session, error) {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	cfg := config{log: quiet}
	for _, opt := range opts {
		opt(&cfg)
	}

	engineOpts := []engine.Option{engine.WithLogger(cfg.log)}
	if cfg.roller != nil {
		engineOpts = append(engineOpts, engine.WithRoller(cfg.roller))
	}
	eng, err := engine.NewFromData(gd, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	reg, err := rules.NewRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rules registry: %w", err)
	}

	s := &Session{
		data:   gd,
		engine: eng,
		env:    &command.Env{Engine: eng, Trivia: gd.Trivia, Registry: reg},
		store:  store,
		parser: parser.Build(),
		log:    cfg.log,
	}
	if err := s.restore(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) restore() error {
	snap, err := s.store.Snapshot()
	if errors.Is(err, persistence.ErrNoSnapshot) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	state, err := s.engine.Unmarshal(snap)
	if err != nil {
		return fmt.Errorf("failed to restore game state: %w", err)
	}
	s.state = state
	s.log.WithField("turn", state.Turn).Info("game restored")
	return nil
}

// State returns the current GameState, nil before Start.
func (s *Session) State() *engine.GameState { return s.state }

// Engine returns the rules engine the session drives.
func (s *Session) Engine() *engine.Engine { return s.engine }

// Data returns the loaded game data.
func (s *Session) Data() *data.GameData { return s.data }

// Start begins a new game in this session's store.
func (s *Session) Start(players []engine.PlayerData) ([]engine.Event, error) {
	if s.state != nil {
		return nil, fmt.Errorf("this save already holds a game")
	}
	state, events, err := s.engine.NewGame(players)
	if err != nil {
		return nil, err
	}
	if err := s.commit(state, events); err != nil {
		return nil, err
	}
	return events, nil
}

// Execute takes a raw command string from a UI client, runs it, and persists the result
// before exposing the new state. A failed command leaves state and store untouched.
func (s *Session) Execute(input string) ([]engine.Event, error) {
	input = strings.TrimSpace(input)
	cmd, err := s.parser.ParseString("", input)
	if err != nil {
		return nil, parser.MapError(input, err)
	}

	if cmd.History != nil {
		n := DefaultHistory
		if cmd.History.Last != nil {
			n = *cmd.History.Last
		}
		return s.History(n)
	}
	if cmd.Help == nil && s.state == nil {
		return nil, ErrNoGame
	}

	next, events, err := command.Execute(cmd, s.env, s.state)
	if err != nil {
		s.log.WithError(err).WithField("input", input).Debug("command rejected")
		return nil, err
	}
	if cmd.Mutates() {
		if err := s.commit(next, events); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// BeginRoll puts the current player's die in the air. The following `roll` lands it.
func (s *Session) BeginRoll() ([]engine.Event, error) {
	if s.state == nil {
		return nil, ErrNoGame
	}
	next, events, err := s.engine.BeginRoll(s.state)
	if err != nil {
		return nil, err
	}
	if err := s.commit(next, events); err != nil {
		return nil, err
	}
	return events, nil
}

// History returns the last n journal entries, oldest first.
func (s *Session) History(n int) ([]engine.Event, error) {
	events, err := s.store.Events()
	if err != nil {
		return nil, fmt.Errorf("failed to load event log: %w", err)
	}
	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	return events, nil
}

// Hint describes what the current player can do next.
func (s *Session) Hint() string { return s.engine.Hint(s.state) }

// Close releases the store.
func (s *Session) Close() error { return s.store.Close() }

func (s *Session) commit(next *engine.GameState, events []engine.Event) error {
	snap, err := s.engine.Marshal(next)
	if err != nil {
		return err
	}
	if err := s.store.Commit(snap, events); err != nil {
		return fmt.Errorf("failed to persist game: %w", err)
	}
	s.state = next
	s.log.WithFields(logrus.Fields{"turn": next.Turn, "events": len(events)}).Debug("state committed")
	return nil
}
