package app

import (
	"unicode"

	"github.com/lixenwraith/termchat/event"
	"github.com/lixenwraith/termchat/screen"
	"github.com/lixenwraith/termchat/terminal"
)

// isWordChar returns true for word-constituent characters
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// EditResult is what a key did to a text field
type EditResult uint8

const (
	EditIgnored EditResult = iota
	EditChanged
	EditSubmit
	EditCancel
)

// TextField is a single-line editable buffer filled from bus keys
type TextField struct {
	Text   []rune
	Cursor int // Position before which the cursor sits
	Scroll int // First visible rune index
	MaxLen int // 0 = unlimited

	// Value restored on cancel
	saved string
}

// NewTextField creates a field holding initial with the cursor at its end
func NewTextField(initial string, maxLen int) *TextField {
	t := &TextField{MaxLen: maxLen}
	t.SetValue(initial)
	return t
}

// Value returns the current text
func (t *TextField) Value() string {
	return string(t.Text)
}

// Empty reports whether the field holds no text
func (t *TextField) Empty() bool {
	return len(t.Text) == 0
}

// SetValue replaces the text and moves the cursor to the end
func (t *TextField) SetValue(s string) {
	t.Text = []rune(s)
	if t.MaxLen > 0 && len(t.Text) > t.MaxLen {
		t.Text = t.Text[:t.MaxLen]
	}
	t.Cursor = len(t.Text)
	t.Scroll = 0
}

// Clear empties the field
func (t *TextField) Clear() {
	t.Text = nil
	t.Cursor = 0
	t.Scroll = 0
}

// Snapshot remembers the current value for Restore
func (t *TextField) Snapshot() { t.saved = t.Value() }

// Restore returns to the last snapshot
func (t *TextField) Restore() { t.SetValue(t.saved) }

// Insert adds r at the cursor unless the field is full
func (t *TextField) Insert(r rune) bool {
	if t.MaxLen > 0 && len(t.Text) >= t.MaxLen {
		return false
	}
	t.Text = append(t.Text[:t.Cursor], append([]rune{r}, t.Text[t.Cursor:]...)...)
	t.Cursor++
	return true
}

// DeleteBackward removes the rune before the cursor
func (t *TextField) DeleteBackward() bool {
	if t.Cursor == 0 {
		return false
	}
	t.Text = append(t.Text[:t.Cursor-1], t.Text[t.Cursor:]...)
	t.Cursor--
	return true
}

// DeleteWordBackward removes the word before the cursor
func (t *TextField) DeleteWordBackward() bool {
	if t.Cursor == 0 {
		return false
	}
	end := t.Cursor
	for end > 0 && !isWordChar(t.Text[end-1]) {
		end--
	}
	start := end
	for start > 0 && isWordChar(t.Text[start-1]) {
		start--
	}
	t.Text = append(t.Text[:start], t.Text[t.Cursor:]...)
	t.Cursor = start
	return true
}

// DeleteToEnd removes from the cursor to the end
func (t *TextField) DeleteToEnd() bool {
	if t.Cursor >= len(t.Text) {
		return false
	}
	t.Text = t.Text[:t.Cursor]
	return true
}

// DeleteToStart removes from the start to the cursor
func (t *TextField) DeleteToStart() bool {
	if t.Cursor == 0 {
		return false
	}
	t.Text = t.Text[t.Cursor:]
	t.Cursor = 0
	t.Scroll = 0
	return true
}

func (t *TextField) MoveLeft() {
	if t.Cursor > 0 {
		t.Cursor--
	}
}

func (t *TextField) MoveRight() {
	if t.Cursor < len(t.Text) {
		t.Cursor++
	}
}

func (t *TextField) MoveToStart() { t.Cursor = 0 }
func (t *TextField) MoveToEnd()   { t.Cursor = len(t.Text) }

// AdjustScroll keeps the cursor inside a viewport of width cells
func (t *TextField) AdjustScroll(width int) {
	if width <= 0 {
		return
	}
	if t.Cursor < t.Scroll {
		t.Scroll = t.Cursor
	}
	if t.Cursor >= t.Scroll+width {
		t.Scroll = t.Cursor - width + 1
	}
	if t.Scroll < 0 {
		t.Scroll = 0
	}
}

// HandleKey applies one bus key
// Arrow keys are not decoded by the engine, so movement uses emacs chords
func (t *TextField) HandleKey(k event.Key) EditResult {
	switch {
	case k == event.Enter:
		return EditSubmit
	case k == event.Esc:
		return EditCancel
	case k.IsBackspace():
		return changed(t.DeleteBackward())
	case k == event.Ctrl('w'):
		return changed(t.DeleteWordBackward())
	case k == event.Ctrl('u'):
		return changed(t.DeleteToStart())
	case k == event.Ctrl('k'):
		return changed(t.DeleteToEnd())
	case k == event.Ctrl('a'):
		t.MoveToStart()
		return EditChanged
	case k == event.Ctrl('e'):
		t.MoveToEnd()
		return EditChanged
	case k == event.Ctrl('b'):
		t.MoveLeft()
		return EditChanged
	case k == event.Ctrl('f'):
		t.MoveRight()
		return EditChanged
	case k.IsPrintable():
		return changed(t.Insert(k.Char))
	}
	return EditIgnored
}

func changed(ok bool) EditResult {
	if ok {
		return EditChanged
	}
	return EditIgnored
}

// Draw renders the visible window of the field at origin
// A focused field shows its cursor as a reversed cell
func (t *TextField) Draw(buf *screen.Buffer, origin screen.Transform, width int, style terminal.Style, focused bool) {
	if width <= 0 {
		return
	}
	t.AdjustScroll(width)

	end := min(t.Scroll+width, len(t.Text))
	visible := t.Text[t.Scroll:end]
	for i, r := range visible {
		buf.SetCell(origin.X+i, origin.Y, screen.Styled(r, style))
	}
	if !focused {
		return
	}

	cx := t.Cursor - t.Scroll
	r := ' '
	if t.Cursor < len(t.Text) {
		r = t.Text[t.Cursor]
	}
	buf.SetCell(origin.X+cx, origin.Y, screen.Styled(r, style.With(terminal.AttrReverse)))
}
