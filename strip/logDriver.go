package strip

import (
	"fmt"
	"log"
	"sync"

	"dscheirer.com/segtimer/rgb"
)

// LogDriver stands in for the LEDs when running simulated or under test.  It
// keeps every frame it was given.
type LogDriver struct {
	mu         sync.Mutex
	frames     [][]rgb.Color
	fails      int
	closed     bool
	DisableLog bool
}

// FailNext makes the next n writes return an error.
func (ld *LogDriver) FailNext(n int) {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	ld.fails = n
}

func (ld *LogDriver) Write(frame []rgb.Color) error {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	if ld.fails > 0 {
		ld.fails--
		return fmt.Errorf("simulated write failure (%d left)", ld.fails)
	}
	ld.frames = append(ld.frames, append([]rgb.Color(nil), frame...))
	if !ld.DisableLog {
		log.Printf("[Strip] frame %d: %d lit", len(ld.frames), lit(frame))
	}
	return nil
}

func (ld *LogDriver) Close() error {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	ld.closed = true
	return nil
}

// Frames is how many frames were written.
func (ld *LogDriver) Frames() int {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	return len(ld.frames)
}

// Last is the most recent frame, nil if nothing was written.
func (ld *LogDriver) Last() []rgb.Color {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	if len(ld.frames) == 0 {
		return nil
	}
	return ld.frames[len(ld.frames)-1]
}

// Closed reports whether Close was called.
func (ld *LogDriver) Closed() bool {
	ld.mu.Lock()
	defer ld.mu.Unlock()
	return ld.closed
}

func lit(frame []rgb.Color) int {
	n := 0
	for _, c := range frame {
		if c != rgb.Black {
			n++
		}
	}
	return n
}
