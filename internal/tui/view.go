package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/verte-zerg/tuikey/internal/callout"
	"github.com/verte-zerg/tuikey/internal/model"
)

var (
	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Align(lipgloss.Center, lipgloss.Center)
	pressedKeyStyle = keyStyle.Copy().
			BorderForeground(lipgloss.Color("#C89A3A"))
	bubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	candidateStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	selectedStyle  = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1A1A")).
			Background(lipgloss.Color("#C89A3A")).
			Bold(true)
	textBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A")).
			Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	pulseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// View implements tea.Model.
func (m *Model) View() string {
	bounds := m.layout.Bounds()
	width := int(bounds.Width)
	if m.width > width {
		width = m.width
	}

	sections := []string{
		m.renderHeader(),
		m.renderTextBox(int(bounds.Width)),
		m.renderCallout(),
		m.renderKeyboard(),
		m.renderFooter(),
	}
	out := strings.Join(sections, "\n")
	if m.errMsg != "" {
		out += "\n" + errorStyle.Render(runewidth.Truncate(m.errMsg, width, "…"))
	}
	return out
}

func (m *Model) renderHeader() string {
	mode := "mouse"
	if !m.config.Mouse {
		mode = "keys: alt+<key>, ←/→, enter"
	}
	return headerStyle.Render(fmt.Sprintf("tuikey · %s · %s", m.config.Lang, mode))
}

// renderTextBox shows the tail of the composed text on a single line.
func (m *Model) renderTextBox(width int) string {
	inner := width - 4
	if inner < 1 {
		inner = 1
	}
	text := strings.ReplaceAll(string(m.text), "\n", "⏎")
	text += "▏"
	for runewidth.StringWidth(text) > inner {
		_, size := utf8.DecodeRuneInString(text)
		text = text[size:]
	}
	return textBoxStyle.Width(inner + 2).Render(text)
}

// renderCallout draws the candidate bubble so the first candidate sits over
// the anchor edge of the pressed key.
func (m *Model) renderCallout() string {
	if !m.ctrl.IsActive() {
		return strings.Repeat("\n", calloutLines-1)
	}
	actions := m.ctrl.Actions()
	anchor := m.ctrl.Anchor()
	cell := int(anchor.Width)
	for _, a := range actions {
		if w := uniseg.StringWidth(a.CalloutText()) + 2; w > cell {
			cell = w
		}
	}
	selected := m.ctrl.SelectedIndex()
	parts := make([]string, 0, len(actions))
	for i, a := range actions {
		label := center(a.CalloutText(), cell)
		if i == selected {
			parts = append(parts, selectedStyle.Render(label))
		} else {
			parts = append(parts, candidateStyle.Render(label))
		}
	}
	bubble := bubbleStyle.Render(strings.Join(parts, ""))
	left := bubbleOffset(anchor, lipgloss.Width(bubble), m.ctrl.Alignment())
	lines := strings.Split(bubble, "\n")
	for i := range lines {
		lines[i] = strings.Repeat(" ", left) + lines[i]
	}
	return strings.Join(lines, "\n")
}

func bubbleOffset(anchor model.Rect, bubbleWidth int, align callout.Alignment) int {
	left := int(anchor.X) - 1
	if align == callout.Trailing {
		left = int(anchor.X+anchor.Width) + 1 - bubbleWidth
	}
	if left < 0 {
		left = 0
	}
	return left
}

func (m *Model) renderKeyboard() string {
	rows := make([]string, 0, len(m.layout.Rows))
	for _, row := range m.layout.Rows {
		if len(row) == 0 {
			continue
		}
		keys := make([]string, 0, len(row))
		for _, k := range row {
			style := keyStyle
			if m.pressing && k.Frame == m.pressed.Frame {
				style = pressedKeyStyle
			}
			w := int(k.Frame.Width) - 2
			h := int(k.Frame.Height) - 2
			if w < 1 {
				w = 1
			}
			if h < 1 {
				h = 1
			}
			label := m.keyAction(k).CalloutText()
			if label == "" {
				label = k.Label
			}
			label = runewidth.Truncate(label, w, "")
			keys = append(keys, style.Width(w).Height(h).Render(label))
		}
		line := lipgloss.JoinHorizontal(lipgloss.Top, keys...)
		pad := int(row[0].Frame.X)
		if pad > 0 {
			parts := strings.Split(line, "\n")
			for i := range parts {
				parts[i] = strings.Repeat(" ", pad) + parts[i]
			}
			line = strings.Join(parts, "\n")
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderFooter() string {
	segments := []string{fmt.Sprintf("Commits %d", len(m.commits))}
	if top := m.topCommits(); len(top) > 0 {
		used := make([]string, 0, len(top))
		for _, agg := range top {
			used = append(used, fmt.Sprintf("%s×%d", agg.Action, agg.Count))
		}
		segments = append(segments, "Top "+strings.Join(used, " "))
	}
	footer := footerStyle.Render(strings.Join(segments, "  "))
	if m.flashing {
		footer += " " + pulseStyle.Render("●")
	}
	return footer
}

// center pads label to width cells, measuring grapheme clusters so emoji
// sequences count once.
func center(label string, width int) string {
	w := uniseg.StringWidth(label)
	if w >= width {
		return label
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + label + strings.Repeat(" ", width-w-left)
}
