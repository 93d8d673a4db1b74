package render

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// DefaultPopupFade is how long a popup keeps fading after focus leaves
// before it becomes hidden and non-interactive.
const DefaultPopupFade = 300 * time.Millisecond

// FrameRate drives the bar grow-in animation.
const FrameRate = 60

// PopupPhase is the visibility of a breakdown popup.
type PopupPhase int

const (
	PopupHidden PopupPhase = iota
	PopupFadingIn
	PopupVisible
	PopupFadingOut
)

type bar struct {
	pos, vel, target float64
}

// Hover is the focus-driven interaction state of one card's breakdown.
// It is created by Registry.Attach and driven by the list shell.
type Hover struct {
	popup  PopupPhase
	scaled bool
	gen    int
	spring harmonica.Spring
	bars   []bar

	enters int
	leaves int
}

func newHover(b *Breakdown) *Hover {
	h := &Hover{
		spring: harmonica.NewSpring(harmonica.FPS(FrameRate), 9.0, 1.0),
		bars:   make([]bar, len(b.Rows)),
	}
	for i, row := range b.Rows {
		h.bars[i] = bar{pos: row.Percent, target: row.Percent}
	}
	return h
}

// Enter handles focus arriving on the card. Bars reset to zero and then
// grow toward their widths on subsequent frames, the badge scales up, and
// the popup starts fading in. Returns the new hover generation.
func (h *Hover) Enter() int {
	h.enters++
	h.gen++
	for i := range h.bars {
		h.bars[i].pos = 0
		h.bars[i].vel = 0
	}
	h.scaled = true
	h.popup = PopupFadingIn
	return h.gen
}

// Leave handles focus leaving the card. The badge resets at once; the popup
// fades out and is hidden by Hide after the fade delay. Returns the new
// hover generation, which the delayed Hide must present.
func (h *Hover) Leave() int {
	h.leaves++
	h.gen++
	h.scaled = false
	if h.popup != PopupHidden {
		h.popup = PopupFadingOut
	}
	return h.gen
}

// Hide completes a fade-out. It is ignored when focus has come back since
// the Leave that scheduled it.
func (h *Hover) Hide(gen int) bool {
	if gen != h.gen || h.popup != PopupFadingOut {
		return false
	}
	h.popup = PopupHidden
	return true
}

// Step advances the animation by one frame and reports whether another
// frame is needed.
func (h *Hover) Step() bool {
	if h.popup == PopupFadingIn {
		h.popup = PopupVisible
	}
	moving := false
	for i := range h.bars {
		b := &h.bars[i]
		if b.pos == b.target && b.vel == 0 {
			continue
		}
		b.pos, b.vel = h.spring.Update(b.pos, b.vel, b.target)
		if math.Abs(b.target-b.pos) < 0.05 && math.Abs(b.vel) < 0.05 {
			b.pos, b.vel = b.target, 0
			continue
		}
		moving = true
	}
	return moving
}

// Settle jumps every bar to its final width.
func (h *Hover) Settle() {
	for i := range h.bars {
		h.bars[i].pos, h.bars[i].vel = h.bars[i].target, 0
	}
	if h.popup == PopupFadingIn {
		h.popup = PopupVisible
	}
}

// Generation returns the current hover generation.
func (h *Hover) Generation() int { return h.gen }

// Popup returns the popup phase.
func (h *Hover) Popup() PopupPhase { return h.popup }

// Interactive reports whether the popup is shown and not on its way out.
func (h *Hover) Interactive() bool {
	return h.popup == PopupFadingIn || h.popup == PopupVisible
}

// BadgeScaled reports whether the badge is in its enlarged state.
func (h *Hover) BadgeScaled() bool { return h.scaled }

// BarWidth returns the current animated width of row i, in percent.
func (h *Hover) BarWidth(i int) float64 {
	if i < 0 || i >= len(h.bars) {
		return 0
	}
	return h.bars[i].pos
}

// Invocations returns how many enter and leave events reached this hover.
func (h *Hover) Invocations() int { return h.enters + h.leaves }
