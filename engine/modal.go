package engine

import "github.com/lixenwraith/termchat/screen"

// ModalState is the visibility of a Modal's nested scene
type ModalState uint8

const (
	ModalHidden ModalState = iota
	ModalShown
)

// Modal draws an optional background and, while shown, a centered modal scene
// Only ShowModal and HideModal mount and unmount the modal scene
type Modal struct {
	background Scene
	modal      Scene

	state        ModalState
	modalMounted bool
}

// NewModal wraps modal over background; background may be nil
func NewModal(modal, background Scene) *Modal {
	return &Modal{modal: modal, background: background}
}

// State returns Hidden or Shown
func (m *Modal) State() ModalState {
	return m.state
}

// Shown reports whether the modal scene is visible
func (m *Modal) Shown() bool {
	return m.state == ModalShown
}

// ShowModal transitions to Shown, mounting the modal scene at most once
func (m *Modal) ShowModal(e *Engine) {
	if !m.modalMounted {
		m.modal.Mount(e)
		m.modalMounted = true
	}
	m.state = ModalShown
}

// HideModal transitions to Hidden, unmounting the modal scene if mounted
func (m *Modal) HideModal(e *Engine) {
	if m.modalMounted {
		m.modal.Unmount(e)
		m.modalMounted = false
	}
	m.state = ModalHidden
}

func (m *Modal) Update(e *Engine) {
	if m.background != nil {
		m.background.Update(e)
	}
	if m.state == ModalShown {
		m.modal.Update(e)
	}
}

// Draw places the modal at (w/3, h/4) with size (w/3, h/2) of the given region
func (m *Modal) Draw(e *Engine, t screen.Transform, s screen.Size, buf *screen.Buffer) {
	if m.background != nil {
		m.background.Draw(e, t, s, buf)
	}
	if m.state != ModalShown {
		return
	}

	third := s.W / 3
	quarter := s.H / 4
	m.modal.Draw(e, t.Move(third, quarter), screen.Size{W: third, H: quarter * 2}, buf)
}

// Mount mounts the background, and the modal scene if it was left shown
func (m *Modal) Mount(e *Engine) {
	if m.background != nil {
		m.background.Mount(e)
	}
	if m.state == ModalShown && !m.modalMounted {
		m.modal.Mount(e)
		m.modalMounted = true
	}
}

// Unmount releases both scenes; the shown state survives for the next Mount
func (m *Modal) Unmount(e *Engine) {
	if m.modalMounted {
		m.modal.Unmount(e)
		m.modalMounted = false
	}
	if m.background != nil {
		m.background.Unmount(e)
	}
}
