package ui

import (
	"sort"
	"strings"
	"time"

	"github.com/atomicstack/popupkit/internal/keys"
	"github.com/atomicstack/popupkit/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := []string{m.renderTrigger()}
	lines = append(lines, m.renderBody(m.computeLayout())...)
	if info := m.currentInfo(); info != "" {
		lines = append(lines, renderLines(applyWidth([]styledLine{{text: info, style: styles.Info}}, m.width)))
	}
	if m.showFooter {
		lines = append(lines, m.renderFooter())
	}
	return strings.Join(lines, "\n")
}

func (m *Model) triggerText() string {
	arrow := "▸"
	if m.tree.IsOpen() {
		arrow = "▾"
	}
	return m.title + " " + arrow
}

func (m *Model) renderTrigger() string {
	style := styles.Trigger
	if m.tree.IsOpen() {
		style = styles.TriggerOpen
	}
	return renderLines(applyWidth([]styledLine{{text: m.triggerText(), style: style}}, m.width))
}

// renderBody draws every box onto the rows below the trigger line.
func (m *Model) renderBody(l layout) []string {
	if len(l.boxes) == 0 {
		return nil
	}
	type segment struct {
		x, width int
		text     string
	}
	rows := map[int][]segment{}
	last := 0
	for _, b := range l.boxes {
		for i, line := range strings.Split(m.renderBox(b), "\n") {
			y := b.y + i
			rows[y] = append(rows[y], segment{x: b.x, width: lipgloss.Width(line), text: line})
			last = max(last, y)
		}
	}
	out := make([]string, 0, last)
	for y := triggerLine + 1; y <= last; y++ {
		segs := rows[y]
		// A segment covered by a later box is dropped.
		kept := make([]segment, 0, len(segs))
		for i, s := range segs {
			hidden := false
			for _, later := range segs[i+1:] {
				if s.x < later.x+later.width && later.x < s.x+s.width {
					hidden = true
					break
				}
			}
			if !hidden {
				kept = append(kept, s)
			}
		}
		sort.Slice(kept, func(i, j int) bool { return kept[i].x < kept[j].x })
		var sb strings.Builder
		col := 0
		for _, s := range kept {
			if s.x > col {
				sb.WriteString(strings.Repeat(" ", s.x-col))
			}
			sb.WriteString(s.text)
			col = s.x + s.width
		}
		line := sb.String()
		if m.width > 0 && col > m.width {
			line = truncate.String(line, uint(m.width))
		}
		out = append(out, line)
	}
	if limit := m.bodyBottom() - (triggerLine + 1); m.height > 0 && len(out) > limit {
		if limit < 0 {
			limit = 0
		}
		out = out[:limit]
	}
	return out
}

func (m *Model) renderBox(b box) string {
	inner := b.width - 2
	lines := make([]styledLine, 0, len(b.rows))
	for _, item := range b.rows {
		lines = append(lines, m.buildItemLine(item, inner))
	}
	body := renderLines(lines)
	return styles.Border.Width(inner).Render(body)
}

// buildItemLine constructs a single styledLine for a menu row padded to
// width so the focused row's background spans the box.
func (m *Model) buildItemLine(item *menu.Item, width int) styledLine {
	if item.Role() == menu.RoleLabel {
		return styledLine{text: padRight("  "+item.Label(), width), style: styles.Label}
	}
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	switch {
	case item.Disabled():
		lineStyle = styles.DisabledItem
	case item.Focused():
		lineStyle = styles.FocusedItem
		indicatorStyle = styles.FocusedItem
	case item.Highlighted():
		lineStyle = styles.HoveredItem
		indicatorStyle = styles.HoveredItem
	case item.State() == "opened":
		lineStyle = styles.TriggerOpen
	case item.State() == "selected":
		lineStyle = styles.Selected
	}
	text := rowPrefix + optionMark(item) + item.Label()
	if item.Submenu() != nil {
		arrow := arrowLTR
		if item.Content().Dir() == menu.RTL {
			arrow = arrowRTL
		}
		text = padRight(text, width-1) + arrow
	}
	return styledLine{
		text:          padRight(text, width),
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

// optionMark renders the indicator of a choice option, "" for other rows.
func optionMark(item *menu.Item) string {
	if item.Role() != menu.RoleOption {
		return ""
	}
	indicator, err := item.Indicator()
	if err != nil {
		return ""
	}
	single := false
	if choice, err := menu.UseChoice(item.Scope()); err == nil {
		single = choice.Mode() == menu.Single
	}
	switch {
	case single && indicator.Selected:
		return "(•) "
	case single:
		return "( ) "
	case indicator.Selected:
		return "[x] "
	default:
		return "[ ] "
	}
}

func (m *Model) renderFooter() string {
	helpKeys := keys.HelpMap{Extra: m.keys.footerKeys(m.tree.IsOpen())}
	if active := m.tree.Active(); m.tree.IsOpen() && active != nil && active.Mounted() {
		helpKeys.Registry = m.tree.Keys()
		helpKeys.Scope = active.KeyScope()
	}
	m.help.Width = m.width
	return m.help.View(helpKeys)
}

// bodyBottom is the first row below the area boxes may use, or 0 when the
// height is unbounded.
func (m *Model) bodyBottom() int {
	if m.height <= 0 {
		return 0
	}
	reserved := 0
	if m.currentInfo() != "" {
		reserved++
	}
	if m.showFooter {
		reserved++
	}
	return m.height - reserved
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func padRight(text string, width int) string {
	if pad := width - lipgloss.Width(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		result[i] = styledLine{
			text:          truncateText(line.text, width),
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
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
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
