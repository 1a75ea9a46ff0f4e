package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/clweng/arenadump/internal/blizzard"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if m.step == stepSeasons {
			m.quitting = true
			return m, tea.Quit
		}
		m.step--
		m.inputErr = nil
		return m, nil
	}

	switch m.step {
	case stepSeasons:
		return m.handleSeasonsKey(msg)
	case stepBrackets:
		return m.handleBracketsKey(msg)
	case stepEnrich:
		return m.handleEnrichKey(msg)
	case stepConfirm:
		return m.handleConfirmKey(msg)
	}

	return m, nil
}

// handleSeasonsKey edits the season selection string.
func (m Model) handleSeasonsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		input := strings.TrimSpace(m.seasonsInput)
		if err := m.validate(input); err != nil {
			m.inputErr = err
			return m, nil
		}
		m.seasonsInput = input
		m.inputErr = nil
		m.step = stepBrackets
		return m, nil

	case "backspace":
		if len(m.seasonsInput) > 0 {
			m.seasonsInput = m.seasonsInput[:len(m.seasonsInput)-1]
		}
		return m, nil
	}

	// Season selections are digits, commas and ranges only.
	if len(msg.Runes) == 1 {
		r := msg.Runes[0]
		if (r >= '0' && r <= '9') || r == ',' || r == '-' || r == ' ' {
			m.seasonsInput += string(r)
			m.inputErr = nil
		}
	}

	return m, nil
}

// handleBracketsKey toggles bracket checkboxes.
func (m Model) handleBracketsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	all := blizzard.AllBrackets()

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(all)-1 {
			m.cursor++
		}

	case " ":
		b := all[m.cursor]
		m.brackets[b] = !m.brackets[b]

	case "a":
		for _, b := range all {
			m.brackets[b] = true
		}

	case "r":
		// Arena brackets only.
		for _, b := range all {
			m.brackets[b] = b != blizzard.BracketRBG
		}

	case "enter":
		for _, b := range all {
			if m.brackets[b] {
				m.step = stepEnrich
				return m, nil
			}
		}
	}

	return m, nil
}

// handleEnrichKey toggles the enrichment flag.
func (m Model) handleEnrichKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		m.enrich = true
		m.step = stepConfirm
	case "n":
		m.enrich = false
		m.step = stepConfirm
	case "left", "right", "h", "l", " ":
		m.enrich = !m.enrich
	case "enter":
		m.step = stepConfirm
	}

	return m, nil
}

// handleConfirmKey accepts or cancels the selection.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		m.accepted = true
		m.quitting = true
		return m, tea.Quit

	case "q", "n":
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}
