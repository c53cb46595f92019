package tui

import (
	"io"
	"sync"
)

// Haptic backends.
const (
	HapticBell  = "bell"
	HapticFlash = "flash"
	HapticOff   = "off"
)

// haptics stands in for a vibration motor. The bell backend rings the
// terminal bell from a background goroutine; a pulse that arrives while one
// is still queued is dropped. close stops the goroutine; later pulses are
// counted but not rung.
type haptics struct {
	mode   string
	out    io.Writer
	once   sync.Once
	queue  chan struct{}
	done   chan struct{}
	closed bool
	pulses int
	flash  bool
}

func newHaptics(mode string, out io.Writer) *haptics {
	return &haptics{mode: mode, out: out}
}

// SelectionChanged implements callout.HapticNotifier.
func (h *haptics) SelectionChanged() {
	h.pulses++
	switch h.mode {
	case HapticBell:
		h.ring()
	case HapticFlash:
		h.flash = true
	}
}

func (h *haptics) ring() {
	if h.out == nil || h.closed {
		return
	}
	h.once.Do(func() {
		h.queue = make(chan struct{}, 1)
		h.done = make(chan struct{})
		go func() {
			defer close(h.done)
			for range h.queue {
				if _, err := io.WriteString(h.out, "\a"); err != nil {
					// Best-effort bell.
					_ = err
				}
			}
		}()
	})
	select {
	case h.queue <- struct{}{}:
	default:
	}
}

// close stops the bell goroutine, if one was started, and waits for it to
// exit. It is safe to call more than once.
func (h *haptics) close() {
	if h.closed {
		return
	}
	h.closed = true
	if h.queue == nil {
		return
	}
	close(h.queue)
	<-h.done
}

// takeFlash reports and clears a pending flash.
func (h *haptics) takeFlash() bool {
	f := h.flash
	h.flash = false
	return f
}
