// Package tui implements the interactive season/bracket picker used by
// dump --interactive.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clweng/arenadump/internal/blizzard"
)

// Selection is the picker's result.
type Selection struct {
	// Seasons is the raw selection string, e.g. "5-11,13".
	Seasons string

	// Brackets are the chosen brackets in display order.
	Brackets []blizzard.Bracket

	// Enrich is the class/race enrichment toggle.
	Enrich bool

	// Accepted is false when the user cancelled.
	Accepted bool
}

// step is the picker's current screen.
type step int

const (
	stepSeasons step = iota
	stepBrackets
	stepEnrich
	stepConfirm
)

// Model is the bubbletea model for the picker
type Model struct {
	step step

	// Season entry
	seasonsInput string
	inputErr     error
	validate     func(string) error

	// Bracket checkboxes
	brackets map[blizzard.Bracket]bool
	cursor   int

	enrich   bool
	accepted bool
	quitting bool
	width    int
}

// NewModel creates a new picker model. validate is called on the season
// selection string before the picker advances past season entry; nil
// accepts anything non-empty.
func NewModel(validate func(string) error) Model {
	if validate == nil {
		validate = func(s string) error {
			if s == "" {
				return fmt.Errorf("enter at least one season")
			}
			return nil
		}
	}

	return Model{
		step:     stepSeasons,
		validate: validate,
		brackets: map[blizzard.Bracket]bool{
			blizzard.Bracket2v2: true,
			blizzard.Bracket3v3: true,
			blizzard.Bracket5v5: true,
			blizzard.BracketRBG: true,
		},
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// selection builds the Selection from the current model state.
func (m Model) selection() Selection {
	var chosen []blizzard.Bracket
	for _, b := range blizzard.AllBrackets() {
		if m.brackets[b] {
			chosen = append(chosen, b)
		}
	}

	return Selection{
		Seasons:  m.seasonsInput,
		Brackets: chosen,
		Enrich:   m.enrich,
		Accepted: m.accepted,
	}
}

// Run opens the picker and blocks until the user accepts or cancels.
func Run(validate func(string) error) (Selection, error) {
	program := tea.NewProgram(NewModel(validate))

	final, err := program.Run()
	if err != nil {
		return Selection{}, fmt.Errorf("run picker: %w", err)
	}

	model, ok := final.(Model)
	if !ok {
		return Selection{}, fmt.Errorf("unexpected final model type %T", final)
	}

	return model.selection(), nil
}
