package app

import (
	"github.com/lixenwraith/termchat/engine"
	"github.com/lixenwraith/termchat/event"
	"github.com/lixenwraith/termchat/screen"
	"github.com/lixenwraith/termchat/terminal"
)

const (
	inputBoxWidth = 30
	inputMaxLen   = 64
)

var styleError = terminal.StyleDefault.Foreground(terminal.ColorRed)

// drawInputBox draws a titled 30x2 box with contents underlined on its second row
// Returns the origin for the next box
func drawInputBox(buf *screen.Buffer, t screen.Transform, title string, field *TextField, selected, editing bool) screen.Transform {
	buf.Box(t, inputBoxWidth, 2, screen.DefaultBoxOptions())

	if selected {
		buf.PrintStyled(t.Move(1, 0), terminal.StyleReverse, "%s", title)
	} else {
		buf.Print(t.Move(1, 0), "%s", title)
	}
	field.Draw(buf, t.Move(1, 1), inputBoxWidth-2, terminal.StyleUnderline, editing)

	return t.Move(0, 3)
}

// drawButton draws label reversed when selected, faint when disabled
func drawButton(buf *screen.Buffer, t screen.Transform, label string, selected, disabled bool) screen.Transform {
	switch {
	case selected:
		buf.PrintStyled(t, terminal.StyleReverse, "%s", label)
	case disabled:
		buf.PrintStyled(t, terminal.StyleDim, "%s", label)
	default:
		buf.Print(t, "%s", label)
	}
	return t.Move(0, 1)
}

type formField struct {
	title string
	field *TextField
}

// form is a column of input boxes followed by a confirm button
// Tab and Shift-Tab cycle, skipping the button while any field is empty
// Enter edits the selected field or confirms
type form struct {
	state  *State
	title  func() string
	fields []formField
	button string

	// submit stores the form; a non-nil error keeps the fields for correction
	submit func() error

	selected  int // len(fields) selects the button
	wantsEdit bool
	err       error
	binds     bindings
}

func newForm(state *State, button string, title func() string, submit func() error, fields ...formField) *form {
	return &form{
		state:  state,
		title:  title,
		fields: fields,
		button: button,
		submit: submit,
		binds:  bindings{state: state},
	}
}

func (f *form) confirmIndex() int { return len(f.fields) }

func (f *form) anyEmpty() bool {
	for _, ff := range f.fields {
		if ff.field.Empty() {
			return true
		}
	}
	return false
}

func (f *form) value(i int) string { return f.fields[i].field.Value() }

func (f *form) selectNext() {
	switch {
	case f.selected < len(f.fields)-1:
		f.selected++
	case f.selected == len(f.fields)-1 && !f.anyEmpty():
		f.selected = f.confirmIndex()
	default:
		f.selected = 0
	}
}

func (f *form) selectPrev() {
	switch {
	case f.selected > 0:
		f.selected--
	case f.anyEmpty():
		f.selected = len(f.fields) - 1
	default:
		f.selected = f.confirmIndex()
	}
}

func (f *form) editingField() *TextField {
	if f.selected < len(f.fields) {
		return f.fields[f.selected].field
	}
	return nil
}

func (f *form) reset() {
	for _, ff := range f.fields {
		ff.field.Clear()
	}
	f.selected = 0
	f.err = nil
}

func (f *form) Update(e *engine.Engine) {
	if !f.wantsEdit {
		return
	}
	f.wantsEdit = false

	if tf := f.editingField(); tf != nil {
		tf.Snapshot()
		f.state.BeginEdit(tf)
		return
	}
	if f.anyEmpty() {
		return
	}
	if f.err = f.submit(); f.err != nil {
		return
	}
	f.reset()
}

func (f *form) handleEdit(k event.Key) {
	tf := f.editingField()
	if !f.state.EditingField(tf) {
		return
	}
	switch tf.HandleKey(k) {
	case EditSubmit:
		f.state.EndEdit(tf)
		f.selectNext()
	case EditCancel:
		tf.Restore()
		f.state.EndEdit(tf)
	}
}

func (f *form) Draw(e *engine.Engine, t screen.Transform, s screen.Size, buf *screen.Buffer) {
	buf.Box(t, s.W, s.H, screen.DefaultBoxOptions())
	buf.Print(t.Move(2, 0), "%s", f.title())
	t = t.Move(2, 1)

	for i, ff := range f.fields {
		t = drawInputBox(buf, t, ff.title, ff.field, i == f.selected, f.state.EditingField(ff.field))
	}
	t = t.Move(0, 1)
	t = drawButton(buf, t, f.button, f.selected == f.confirmIndex(), f.anyEmpty())

	if f.err != nil {
		buf.PrintStyled(t.Move(0, 1), styleError, "%s", screen.TruncateWidth(f.err.Error(), s.W-4))
	}
}

func (f *form) Mount(e *engine.Engine) {
	bus := e.Bus()
	f.binds.on(bus, event.Enter, func() { f.wantsEdit = true })
	f.binds.on(bus, event.Tab, f.selectNext)
	f.binds.on(bus, event.ShiftTab, f.selectPrev)
	f.binds.onAny(bus, f.handleEdit)
}

func (f *form) Unmount(e *engine.Engine) {
	if tf := f.editingField(); tf != nil && f.state.EditingField(tf) {
		tf.Restore()
		f.state.EndEdit(tf)
	}
	f.wantsEdit = false
	f.binds.release(e.Bus())
}
