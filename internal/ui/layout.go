package ui

import (
	"github.com/atomicstack/popupkit/internal/menu"
	"github.com/charmbracelet/lipgloss"
)

const (
	rowPrefix   = "▌ "
	arrowLTR    = "›"
	arrowRTL    = "‹"
	triggerLine = 0
)

// box is one content drawn as a bordered column.
type box struct {
	content *menu.Content
	x, y    int
	// width and height include the border.
	width  int
	height int
	rows   []*menu.Item
}

func (b box) contains(x, y int) bool {
	return x >= b.x && x < b.x+b.width && y >= b.y && y < b.y+b.height
}

// layout places the trigger line and every visible content. Submenu
// contents sit to the side of their parent, aligned with the trigger row,
// and flip upwards when they would run past the bottom edge.
type layout struct {
	triggerWidth int
	boxes        []box
}

func (m *Model) computeLayout() layout {
	l := layout{triggerWidth: lipgloss.Width(m.triggerText())}
	bottom := m.bodyBottom()
	placed := make(map[*menu.Content]int)
	for _, c := range m.tree.Visible() {
		items := c.Items()
		shown := len(items)
		if a := animatorFor(c); a != nil {
			shown = a.visibleRows(len(items))
		}
		b := box{
			content: c,
			width:   contentWidth(items) + 2,
			height:  max(shown, 1) + 2,
			rows:    items[:shown],
		}
		parentIdx, nested := -1, false
		if sub := c.Submenu(); sub != nil {
			parentIdx, nested = placed[sub.Parent()]
		}
		if !nested {
			b.x, b.y = 0, triggerLine+1
		} else {
			parent := l.boxes[parentIdx]
			row := rowIndex(parent.content.Items(), c.Submenu().Trigger())
			if row >= len(parent.rows) {
				row = len(parent.rows) - 1
			}
			if row < 0 {
				row = 0
			}
			anchor := parent.y + 1 + row
			b.x = parent.x + parent.width
			b.y = anchor - 1
			if bottom > 0 && b.y+b.height > bottom {
				b.y = anchor - b.height + 2
			}
			if b.y < triggerLine+1 {
				b.y = triggerLine + 1
			}
		}
		placed[c] = len(l.boxes)
		l.boxes = append(l.boxes, b)
	}
	if m.tree.Dir() == menu.RTL {
		l.mirror()
	}
	return l
}

// mirror flips the columns horizontally so submenus open to the left.
func (l *layout) mirror() {
	total := 0
	for _, b := range l.boxes {
		total = max(total, b.x+b.width)
	}
	for i := range l.boxes {
		l.boxes[i].x = total - l.boxes[i].x - l.boxes[i].width
	}
}

// hit resolves what lies at the given cell. Later boxes are drawn on top.
func (l layout) hit(x, y int) menu.Hit {
	h := menu.Hit{X: x, Y: y}
	if y == triggerLine && x >= 0 && x < l.triggerWidth {
		h.Trigger = true
		return h
	}
	for i := len(l.boxes) - 1; i >= 0; i-- {
		b := l.boxes[i]
		if !b.contains(x, y) {
			continue
		}
		h.Content = b.content
		row := y - b.y - 1
		if row >= 0 && row < len(b.rows) && x > b.x && x < b.x+b.width-1 {
			h.Item = b.rows[row]
		}
		return h
	}
	return h
}

// rowIndex is the drawn row of item, counting labels and disabled rows.
func rowIndex(items []*menu.Item, item *menu.Item) int {
	for i, it := range items {
		if it == item {
			return i
		}
	}
	return -1
}

func contentWidth(items []*menu.Item) int {
	width := 1
	for _, item := range items {
		width = max(width, rowWidth(item))
	}
	return width
}

func rowWidth(item *menu.Item) int {
	w := lipgloss.Width(rowPrefix) + lipgloss.Width(item.Label())
	if item.Role() == menu.RoleOption {
		w += lipgloss.Width(optionMark(item))
	}
	if item.Submenu() != nil {
		w += 2
	}
	return w
}
