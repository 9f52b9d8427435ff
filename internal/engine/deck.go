package engine

import (
	"fmt"
	"slices"

	"github.com/suderio/pilgrim/internal/data"
)

// Deck is the draw/discard pair of one card category. Piles hold card ids; the top of the
// draw pile is its last element.
type Deck struct {
	DrawPile    []string `json:"draw"`
	DiscardPile []string `json:"discard"`
}

// Draw pops the top card. An empty draw pile is first refilled from a shuffled discard pile.
func (d *Deck) Draw(r Roller) (id string, reshuffled bool, err error) {
	if len(d.DrawPile) == 0 {
		if len(d.DiscardPile) == 0 {
			return "", false, ErrDeckExhausted
		}
		d.DrawPile = d.DiscardPile
		d.DiscardPile = []string{}
		shuffle(r, d.DrawPile)
		reshuffled = true
	}
	last := len(d.DrawPile) - 1
	id = d.DrawPile[last]
	d.DrawPile = d.DrawPile[:last]
	return id, reshuffled, nil
}

// Discard puts a resolved card on the discard pile.
func (d *Deck) Discard(id string) {
	d.DiscardPile = append(d.DiscardPile, id)
}

// Size returns the number of cards in both piles.
func (d *Deck) Size() int { return len(d.DrawPile) + len(d.DiscardPile) }

func (d *Deck) clone() *Deck {
	return &Deck{
		DrawPile:    cloneIDs(d.DrawPile),
		DiscardPile: cloneIDs(d.DiscardPile),
	}
}

func cloneIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return slices.Clone(ids)
}

// shuffle is an in-place Fisher–Yates shuffle.
func shuffle(r Roller, ids []string) {
	for i := len(ids) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}

// composition returns the card multiset a fresh deck of the category is built from.
func composition(catalog *data.Catalog, cat data.Category, weighted bool) map[string]int {
	out := make(map[string]int)
	for _, c := range catalog.Cards(cat) {
		n := 1
		if weighted {
			n = c.Rarity.Copies()
		}
		out[c.ID] += n
	}
	return out
}

// newDeck builds and shuffles a deck, repeating each card by its rarity weight when weighted.
func newDeck(catalog *data.Catalog, cat data.Category, weighted bool, r Roller) *Deck {
	var ids []string
	for _, c := range catalog.Cards(cat) {
		n := 1
		if weighted {
			n = c.Rarity.Copies()
		}
		for range n {
			ids = append(ids, c.ID)
		}
	}
	shuffle(r, ids)
	return &Deck{DrawPile: ids, DiscardPile: []string{}}
}

// draw takes the next card of a category and narrates any reshuffle.
func (t *txn) draw(cat data.Category) (data.Card, error) {
	d, ok := t.s.Decks[cat]
	if !ok {
		return data.Card{}, fmt.Errorf("%w: unknown card category %q", ErrInvalidInput, cat)
	}
	id, reshuffled, err := d.Draw(t.e.dice)
	if err != nil {
		return data.Card{}, fmt.Errorf("%w: %s", err, cat)
	}
	if reshuffled {
		t.e.log.WithField("category", cat).Info("reshuffled discard pile into draw pile")
		t.emit(&DeckReshuffledEvent{Category: cat, Size: len(d.DrawPile) + 1})
	}
	card, ok := t.e.catalog.Card(id)
	if !ok {
		return data.Card{}, fmt.Errorf("%w: deck holds unknown card %s", ErrInvalidState, id)
	}
	return card, nil
}
