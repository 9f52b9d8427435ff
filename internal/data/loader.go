package data

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaults embed.FS

// Data file names, relative to a data directory.
const (
	BoardFile      = "board.yaml"
	BlessingsFile  = "blessings.yaml"
	ChallengesFile = "challenges.yaml"
	TriviaFile     = "trivia.yaml"
	RulesFile      = "rules.yaml"
)

// Files lists every data file in load order.
var Files = []string{RulesFile, BoardFile, BlessingsFile, ChallengesFile, TriviaFile}

// Defaults exposes the embedded default data files.
func Defaults() fs.FS {
	sub, err := fs.Sub(defaults, "defaults")
	if err != nil {
		panic(err)
	}
	return sub
}

// Loader handles reading the read-only data layer
type Loader struct {
	dataDirs []string
}

// NewLoader initializes a new Data Loader with the given data directory fallback hierarchy.
// The embedded defaults are always searched last.
func NewLoader(dataDirs []string) *Loader {
	return &Loader{
		dataDirs: dataDirs,
	}
}

type cardFile struct {
	Cards []Card `yaml:"cards"`
}

type triviaFile struct {
	Locations map[string]map[string][]Question `yaml:"locations"`
}

// LoadRules reads rules.yaml on top of DefaultRules, so omitted keys keep their default.
func (l *Loader) LoadRules() (Rules, error) {
	r := DefaultRules()
	if err := l.load(RulesFile, &r); err != nil {
		return Rules{}, err
	}
	if err := r.Validate(); err != nil {
		return Rules{}, fmt.Errorf("invalid %s: %w", RulesFile, err)
	}
	return r, nil
}

// LoadBoard reads and validates board.yaml.
func (l *Loader) LoadBoard() (Board, error) {
	var b Board
	if err := l.load(BoardFile, &b); err != nil {
		return Board{}, err
	}
	for i := range b.Spaces {
		b.Spaces[i].Index = i
	}
	if err := ValidateBoard(b); err != nil {
		return Board{}, fmt.Errorf("invalid %s: %w", BoardFile, err)
	}
	return b, nil
}

// LoadCatalog reads both card files into a Catalog.
func (l *Loader) LoadCatalog() (*Catalog, error) {
	var blessings, challenges cardFile
	if err := l.load(BlessingsFile, &blessings); err != nil {
		return nil, err
	}
	if err := l.load(ChallengesFile, &challenges); err != nil {
		return nil, err
	}
	c, err := NewCatalog(blessings.Cards, challenges.Cards)
	if err != nil {
		return nil, fmt.Errorf("invalid card catalog: %w", err)
	}
	return c, nil
}

// LoadTrivia reads trivia.yaml.
func (l *Loader) LoadTrivia() (TriviaBank, error) {
	var f triviaFile
	if err := l.load(TriviaFile, &f); err != nil {
		return nil, err
	}
	return TriviaBank(f.Locations), nil
}

// LoadAll reads every data file and cross-checks them.
func (l *Loader) LoadAll() (*GameData, error) {
	rules, err := l.LoadRules()
	if err != nil {
		return nil, err
	}
	board, err := l.LoadBoard()
	if err != nil {
		return nil, err
	}
	catalog, err := l.LoadCatalog()
	if err != nil {
		return nil, err
	}
	trivia, err := l.LoadTrivia()
	if err != nil {
		return nil, err
	}
	if err := ValidateTrivia(board, trivia); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", TriviaFile, err)
	}
	return &GameData{Board: board, Catalog: catalog, Trivia: trivia, Rules: rules}, nil
}

// ValidateBoard checks the structural rules every board must satisfy.
func ValidateBoard(b Board) error {
	if len(b.Spaces) < 2 {
		return fmt.Errorf("board needs at least 2 spaces, got %d", len(b.Spaces))
	}
	if b.Spaces[0].Category != SpaceStart {
		return fmt.Errorf("space 0 must be the start space")
	}
	locations := make(map[string]bool)
	characters := make(map[string]bool)
	for i, sp := range b.Spaces {
		if strings.TrimSpace(sp.Name) == "" {
			return fmt.Errorf("space %d has no name", i)
		}
		switch sp.Category {
		case SpaceStart:
			if i != 0 {
				return fmt.Errorf("space %d: only space 0 can be start", i)
			}
		case SpaceTriviaLocation:
			key := strings.ToLower(sp.Name)
			if locations[key] {
				return fmt.Errorf("duplicate trivia location %q", sp.Name)
			}
			locations[key] = true
			if len(sp.Characters) == 0 {
				return fmt.Errorf("trivia location %q has no characters", sp.Name)
			}
			for _, c := range sp.Characters {
				ck := strings.ToLower(c)
				if characters[ck] {
					return fmt.Errorf("character %q appears in more than one location", c)
				}
				characters[ck] = true
			}
		case SpaceSpecial:
			_, attack := sp.Kind.AttackKind()
			_, draw := sp.Kind.DrawCategory()
			if !attack && !draw {
				return fmt.Errorf("special space %d has unknown kind %q", i, sp.Kind)
			}
		default:
			return fmt.Errorf("space %d has unknown category %q", i, sp.Category)
		}
		if sp.Category != SpaceTriviaLocation && len(sp.Characters) > 0 {
			return fmt.Errorf("space %d: only trivia locations host characters", i)
		}
	}
	if len(locations) == 0 {
		return fmt.Errorf("board has no trivia locations")
	}
	return nil
}

// ValidateTrivia checks that every trivia entry points at a real location and character.
func ValidateTrivia(b Board, t TriviaBank) error {
	for loc, chars := range t {
		sp, ok := b.Location(loc)
		if !ok {
			return fmt.Errorf("unknown location %q", loc)
		}
		for name, qs := range chars {
			host, ok := b.LocationOf(name)
			if !ok || host.Index != sp.Index {
				return fmt.Errorf("character %q is not at %q", name, loc)
			}
			for i, q := range qs {
				if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Answer) == "" {
					return fmt.Errorf("%s question %d is incomplete", QuestionID(loc, name, i+1), i+1)
				}
			}
		}
	}
	return nil
}

func (l *Loader) load(ref string, target interface{}) error {
	for _, dir := range l.dataDirs {
		path := filepath.Join(dir, ref)
		f, err := os.Open(path)
		if err == nil {
			defer f.Close()
			return decode(ref, f, target)
		}
	}
	f, err := Defaults().Open(ref)
	if err != nil {
		return fmt.Errorf("could not find or open reference %s in any available data directory", ref)
	}
	defer f.Close()
	return decode(ref, f, target)
}

func decode(ref string, r io.Reader, target interface{}) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("failed to decode yaml reference %s: %w", ref, err)
	}
	return nil
}

// WriteDefaults copies one embedded default file into dir, refusing to overwrite unless force is set.
func WriteDefaults(dir, name string, force bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	dst := filepath.Join(dir, name)
	if _, err := os.Stat(dst); err == nil && !force {
		return fmt.Errorf("%s already exists", dst)
	}
	content, err := fs.ReadFile(Defaults(), name)
	if err != nil {
		return fmt.Errorf("failed to read embedded %s: %w", name, err)
	}
	if err := os.WriteFile(dst, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}
