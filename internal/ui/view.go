package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/popup-context-menu/internal/format/table"
	"github.com/atomicstack/popup-context-menu/internal/menu"
	"github.com/atomicstack/popup-context-menu/internal/theme"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	backButton       = "‹"
	closeButton      = "✕"
	submenuArrow     = "›"
	itemIndicator    = "▌"
	metadataBarWidth = 12
	minProgressWidth = 8
	footerText       = "↑/↓ move  enter select  alt+← back  esc close"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.menu.Visible {
		return ""
	}
	box := m.renderBox()
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	pos := m.menu.Descriptor.Position
	horizontal := lipgloss.Left
	if pos.Right() {
		horizontal = lipgloss.Right
	}
	vertical := lipgloss.Top
	if !pos.Top() {
		vertical = lipgloss.Bottom
	}
	return lipgloss.Place(m.width, m.height, horizontal, vertical, box)
}

// outerWidth is the width of the framed popup, capped to the terminal.
func (m *Model) outerWidth() int {
	w := m.boxWidth
	if m.width > 0 && w > m.width {
		w = m.width
	}
	return w
}

func (m *Model) innerWidth() int {
	inner := m.outerWidth() - styles.Frame.GetHorizontalFrameSize()
	if inner < 1 {
		return 1
	}
	return inner
}

func (m *Model) renderBox() string {
	inner := m.innerWidth()
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.headerLine(inner), raw: true})

	if len(m.menu.Items) == 0 {
		msg := "(no entries)"
		if m.menu.Search != "" {
			msg = fmt.Sprintf("No matches for %q", m.menu.Search)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	} else {
		m.syncViewport()
		start, end := m.visibleRange()
		for idx := start; idx < end; idx++ {
			lines = append(lines, m.optionLine(m.menu.Items[idx], idx, inner))
		}
	}

	if meta := m.metadataLines(inner); len(meta) > 0 {
		lines = append(lines, styledLine{})
		for _, line := range meta {
			lines = append(lines, styledLine{text: line, raw: true})
		}
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerText, style: styles.Footer})
	}

	if m.height > 0 {
		lines = limitHeight(lines, m.height-styles.Frame.GetVerticalFrameSize(), inner)
	}
	lines = applyWidth(lines, inner)
	frame := styles.Frame.Copy().Width(m.outerWidth() - styles.Frame.GetHorizontalBorderSize())
	return frame.Render(renderLines(lines))
}

func (m *Model) visibleRange() (int, int) {
	total := len(m.menu.Items)
	maxItems := m.maxVisibleItems()
	if maxItems <= 0 || total <= maxItems {
		return 0, total
	}
	start := m.menu.ViewportOffset
	if start < 0 {
		start = 0
	}
	if start+maxItems > total {
		start = total - maxItems
	}
	return start, start + maxItems
}

// headerLine renders the optional back button, the markdown title, and the
// close button pinned to the right edge.
func (m *Model) headerLine(width int) string {
	desc := m.menu.Descriptor
	left := ""
	if desc.HasParent() {
		left = styles.Button.Render(backButton) + " "
	}
	closeStyle := styles.Button
	if !desc.Closable() {
		closeStyle = styles.ButtonDisabled
	}
	right := closeStyle.Render(closeButton)

	room := width - ansi.StringWidth(left) - ansi.StringWidth(right) - 1
	title := m.markdown.Inline(desc.Title)
	if !strings.Contains(title, "\x1b") {
		title = styles.Title.Render(title)
	}
	if room > 0 {
		title = ansi.Truncate(title, room, "…")
	} else {
		title = ""
	}
	left += title
	gap := width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) optionLine(entry menu.Entry, idx, width int) styledLine {
	opt := entry.Option
	selected := idx == m.menu.Cursor
	indicatorStyle := styles.ItemIndicator
	if selected {
		indicatorStyle = styles.SelectedItemIndicator
	}
	indicator := indicatorStyle.Render(itemIndicator) + " "
	body := width - 2

	switch opt.Kind() {
	case menu.KindSearch:
		return styledLine{text: indicator + m.searchLine(), raw: true}
	case menu.KindProgress:
		return styledLine{text: indicator + progressLine(opt, body, m.itemStyle(opt, selected)), raw: true}
	case menu.KindStandard:
		text := itemIndicator + " " + standardLabel(opt, body)
		return styledLine{
			text:          text,
			style:         m.itemStyle(opt, selected),
			prefixStyle:   indicatorStyle,
			highlightFrom: 1,
		}
	}
	return styledLine{}
}

func (m *Model) itemStyle(opt menu.Option, selected bool) *lipgloss.Style {
	switch {
	case opt.Disabled:
		return styles.Disabled
	case selected:
		return styles.SelectedItem
	case opt.ReadOnly:
		return styles.Description
	}
	return styles.Item
}

// standardLabel lays out title, description and submenu arrow within width
// cells, keeping the arrow on the right edge.
func standardLabel(opt menu.Option, width int) string {
	label := opt.Title
	if opt.Description != "" {
		if label != "" {
			label += "  "
		}
		label += opt.Description
	}
	if !opt.HasSubmenu() {
		if pad := width - ansi.StringWidth(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		return label
	}
	room := width - ansi.StringWidth(submenuArrow) - 1
	if room < 1 {
		return submenuArrow
	}
	label = truncateText(label, room)
	return label + strings.Repeat(" ", width-ansi.StringWidth(label)-ansi.StringWidth(submenuArrow)) + submenuArrow
}

func progressLine(opt menu.Option, width int, style *lipgloss.Style) string {
	title := opt.Title
	barWidth := width - ansi.StringWidth(title) - 1
	if barWidth < minProgressWidth {
		barWidth = minProgressWidth
		title = truncateText(title, max(width-barWidth-1, 0))
	}
	bar := progressBar(opt.ColorScheme, barWidth, *opt.Progress)
	if title == "" {
		return bar
	}
	return style.Render(title) + " " + bar
}

// progressBar renders percent (0-100) as a bar in the named colour scheme.
func progressBar(scheme string, width int, percent float64) string {
	bar := progress.New(
		progress.WithSolidFill(string(theme.Scheme(scheme))),
		progress.WithWidth(width),
	)
	return bar.ViewAs(clampPercent(percent) / 100)
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	}
	return p
}

// metadataLines renders the metadata of the entry under the cursor.
func (m *Model) metadataLines(width int) []string {
	entry, ok := m.menu.Current()
	if !ok || len(entry.Option.Metadata) == 0 {
		return nil
	}
	meta := entry.Option.Metadata
	labels := make([]string, len(meta))
	values := make([]string, len(meta))
	for i, item := range meta {
		labels[i] = styles.MetadataLabel.Render(item.Label)
		value := styles.MetadataValue.Render(item.Value)
		if item.Progress != nil {
			bar := progressBar(item.ColorScheme, metadataBarWidth, *item.Progress)
			if item.Value == "" {
				value = bar
			} else {
				value += " " + bar
			}
		}
		values[i] = value
	}
	return table.Pairs(labels, values, width)
}

func (m *Model) metadataHeight() int {
	entry, ok := m.menu.Current()
	if !ok || len(entry.Option.Metadata) == 0 {
		return 0
	}
	return len(entry.Option.Metadata) + 1
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := styles.Frame.GetVerticalFrameSize() + 1 // header
	used += m.metadataHeight()
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		if line.raw {
			if ansi.StringWidth(line.text) > width {
				line.text = ansi.Truncate(line.text, width, "…")
			}
		} else {
			line.text = truncateText(line.text, width)
		}
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}
