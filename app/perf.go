package app

import (
	"fmt"

	"github.com/lixenwraith/termchat/engine"
	"github.com/lixenwraith/termchat/screen"
	"github.com/lixenwraith/termchat/terminal"
)

// Perf shows last frame timings at the top right of its region
type Perf struct{}

func (Perf) Update(*engine.Engine)  {}
func (Perf) Mount(*engine.Engine)   {}
func (Perf) Unmount(*engine.Engine) {}

func (Perf) Draw(e *engine.Engine, t screen.Transform, s screen.Size, buf *screen.Buffer) {
	tm := e.Timing()
	line := fmt.Sprintf("%05d/%05dus (%0.2f%%)", tm.FrameMicros(), tm.PeriodMicros(), tm.BudgetPercent())
	buf.Print(t.Move(s.W-30, 0), "%s", line)

	detail := fmt.Sprintf("u%d d%d c%d", tm.UpdateMicros(), tm.DrawMicros(), tm.CommitMicros())
	buf.PrintStyled(t.Move(s.W-30, 1), terminal.StyleDim, "%s", detail)
}
