package tui

import (
	"fmt"
	"strings"

	"github.com/clweng/arenadump/internal/blizzard"
)

// View renders the picker
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("arenadump"))
	b.WriteString("\n\n")

	switch m.step {
	case stepSeasons:
		b.WriteString(m.renderSeasons())
	case stepBrackets:
		b.WriteString(m.renderBrackets())
	case stepEnrich:
		b.WriteString(m.renderEnrich())
	case stepConfirm:
		b.WriteString(m.renderConfirm())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderSeasons renders the season entry screen.
func (m Model) renderSeasons() string {
	var b strings.Builder

	b.WriteString("Seasons to dump (numbers and ranges, e.g. 10 or 5-11):\n\n")
	b.WriteString("  > ")
	b.WriteString(inputStyle.Render(m.seasonsInput + "█"))
	b.WriteString("\n")

	if m.inputErr != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("  %v", m.inputErr)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderBrackets renders the bracket checkbox screen.
func (m Model) renderBrackets() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Seasons: %s\n\n", m.seasonsInput))
	b.WriteString("Brackets to dump:\n\n")

	for i, bracket := range blizzard.AllBrackets() {
		check := "[ ]"
		if m.brackets[bracket] {
			check = "[x]"
		}

		label := string(bracket)
		if bracket == blizzard.BracketRBG {
			label += "  (season 9+ only)"
		}

		line := fmt.Sprintf("  %s %s", check, label)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// renderEnrich renders the enrichment toggle screen.
func (m Model) renderEnrich() string {
	var b strings.Builder

	b.WriteString("Fetch character class and race for every entry?\n\n")
	b.WriteString("This needs one extra profile request per distinct character\n")
	b.WriteString("and makes the dump much slower.\n\n")

	yes, no := "  yes  ", "  no  "
	if m.enrich {
		yes = selectedStyle.Render(yes)
	} else {
		no = selectedStyle.Render(no)
	}
	b.WriteString(fmt.Sprintf("  %s %s\n", yes, no))

	return b.String()
}

// renderConfirm renders the summary screen.
func (m Model) renderConfirm() string {
	sel := m.selection()

	names := make([]string, 0, len(sel.Brackets))
	for _, bracket := range sel.Brackets {
		names = append(names, string(bracket))
	}

	enrich := "off"
	if sel.Enrich {
		enrich = "on"
	}

	var b strings.Builder
	b.WriteString("Ready to dump:\n\n")
	b.WriteString(fmt.Sprintf("  Seasons:    %s\n", sel.Seasons))
	b.WriteString(fmt.Sprintf("  Brackets:   %s\n", strings.Join(names, ", ")))
	b.WriteString(fmt.Sprintf("  Enrichment: %s\n", enrich))

	return b.String()
}

// renderFooter renders the per-step key help.
func (m Model) renderFooter() string {
	var help string

	switch m.step {
	case stepSeasons:
		help = "enter: next • esc: cancel"
	case stepBrackets:
		help = "space: toggle • a: all • r: all but rbg • enter: next • esc: back"
	case stepEnrich:
		help = "y/n: choose • enter: next • esc: back"
	case stepConfirm:
		help = "enter: start dump • esc: back • q: cancel"
	}

	return footerStyle.Render(help)
}
