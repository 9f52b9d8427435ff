package engine

import (
	"encoding/json"
	"fmt"

	"github.com/suderio/pilgrim/internal/data"
)

// SnapshotVersion is bumped whenever the persisted layout changes incompatibly.
const SnapshotVersion = 1

// Snapshot is the persisted form of a GameState. Sets and piles are ordered lists; effects
// keep only their card id and counter and are rehydrated from the catalog on restore.
type Snapshot struct {
	Version int        `json:"version"`
	State   *GameState `json:"state"`
}

// Marshal encodes a state for saving.
func (e *Engine) Marshal(s *GameState) ([]byte, error) {
	b, err := json.MarshalIndent(Snapshot{Version: SnapshotVersion, State: s}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return b, nil
}

// Unmarshal decodes a saved state, reattaches effect parameters and validates the result.
func (e *Engine) Unmarshal(b []byte) (*GameState, error) {
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("%w: snapshot version %d, want %d", ErrInvalidState, snap.Version, SnapshotVersion)
	}
	s := snap.State
	if s == nil {
		return nil, fmt.Errorf("%w: empty snapshot", ErrInvalidState)
	}
	for i := range s.Players {
		p := &s.Players[i]
		if p.Helpers == nil {
			p.Helpers = make(map[string]int)
		}
		for j := range p.Effects {
			eff := &p.Effects[j]
			card, ok := e.catalog.Card(eff.CardID)
			if !ok {
				return nil, fmt.Errorf("%w: effect card %s not in catalog", ErrInvalidState, eff.CardID)
			}
			pe, ok := card.Effect.(data.PersistentEffect)
			if !ok {
				return nil, fmt.Errorf("%w: card %s is not persistent", ErrInvalidState, eff.CardID)
			}
			eff.Params = pe
		}
	}
	if s.Decks == nil {
		s.Decks = make(map[data.Category]*Deck)
	}
	for _, d := range s.Decks {
		if d == nil {
			continue
		}
		if d.DrawPile == nil {
			d.DrawPile = []string{}
		}
		if d.DiscardPile == nil {
			d.DiscardPile = []string{}
		}
	}
	if err := e.Validate(s); err != nil {
		return nil, err
	}
	return s, nil
}
