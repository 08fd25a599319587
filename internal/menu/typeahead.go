package menu

import (
	"strings"
	"time"
	"unicode"

	"github.com/atomicstack/popupkit/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

type typeAhead struct {
	query   string
	seq     int
	timeout time.Duration
}

type typeAheadExpiredMsg struct {
	tree *Tree
	seq  int
}

func (ta *typeAhead) expire(seq int) {
	if seq == ta.seq {
		ta.query = ""
	}
}

// typeAhead moves focus to the row best matching the runes typed so far.
func (t *Tree) typeAhead(c *Content, msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) == 0 {
		return false, nil
	}
	for _, r := range msg.Runes {
		if !unicode.IsPrint(r) {
			return false, nil
		}
	}
	t.typeahead.query += string(msg.Runes)
	t.typeahead.seq++
	items := c.Focusable()
	if idx := BestMatch(items, t.typeahead.query); idx >= 0 {
		t.Focus(items[idx])
		events.Menu.TypeAhead(c.id, t.typeahead.query, idx)
	}
	expired := typeAheadExpiredMsg{tree: t, seq: t.typeahead.seq}
	return true, tea.Tick(t.typeahead.timeout, func(time.Time) tea.Msg { return expired })
}

// TypeAheadQuery returns the pending type-ahead buffer.
func (t *Tree) TypeAheadQuery() string {
	return t.typeahead.query
}

// BestMatch returns the index of the row best matching query, or -1.
// Exact labels win over prefixes, prefixes over substrings and substrings
// over fuzzy matches.
func BestMatch(items []*Item, query string) int {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" || len(items) == 0 {
		return -1
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.EqualFold(item.label, trimmed) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.label), lower) {
			return i
		}
	}
	for i, item := range items {
		if strings.Contains(strings.ToLower(item.label), lower) {
			return i
		}
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) == 0 {
		return -1
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
