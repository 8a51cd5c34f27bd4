package game

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultFlashDuration is how long the toggle tint takes to fade, in seconds.
const DefaultFlashDuration = 1.5

// Flash is the background tint shown after each direction flip. It jumps
// to full strength on Trigger and fades to zero over its duration.
type Flash struct {
	tween *gween.Tween
	level float32
	done  bool
}

// NewFlash creates an idle flash that fades over duration seconds.
func NewFlash(duration float32) *Flash {
	if duration <= 0 {
		duration = DefaultFlashDuration
	}
	return &Flash{
		tween: gween.New(1, 0, duration, ease.OutQuad),
		done:  true,
	}
}

// Trigger restarts the fade at full strength.
func (f *Flash) Trigger() {
	f.tween.Reset()
	f.level = 1
	f.done = false
}

// Update advances the fade by dt seconds and returns the new level.
func (f *Flash) Update(dt float32) float32 {
	if f.done {
		return f.level
	}
	f.level, f.done = f.tween.Update(dt)
	if f.done {
		f.level = 0
	}
	return f.level
}

// Level returns the current tint strength in [0, 1].
func (f *Flash) Level() float32 {
	return f.level
}

// Active reports whether the flash is still fading.
func (f *Flash) Active() bool {
	return !f.done
}
