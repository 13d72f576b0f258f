package main

import (
	"time"
)

// how often the status LED is re-evaluated
const dLEDSleep = 10 * time.Millisecond

// LED patterns, named for how much of each second they are off
type ledPattern int

const (
	ledDark ledPattern = iota
	ledSteady
	ledBlink10 // 10% off/sec
	ledBlink50 // 50% cycle/sec
	ledBlink90 // 90% off/sec
)

// onTime is how much of each second the LED is lit
func (p ledPattern) onTime() time.Duration {
	switch p {
	case ledSteady:
		return time.Second
	case ledBlink10:
		return 900 * time.Millisecond
	case ledBlink50:
		return 500 * time.Millisecond
	case ledBlink90:
		return 100 * time.Millisecond
	default:
		return 0
	}
}

func (p ledPattern) litAt(elapsed time.Duration) bool {
	return elapsed%time.Second < p.onTime()
}

// patternFor maps a display mode to the status LED
func patternFor(m Mode) ledPattern {
	switch m {
	case ModeCurrentTime:
		return ledSteady
	case ModeCountdown:
		return ledBlink10
	case ModeExpired:
		return ledBlink50
	case ModeAnimation:
		return ledBlink90
	default:
		return ledDark
	}
}

type ledState struct {
	pattern ledPattern
	since   time.Time // when the pattern started
	lit     bool
	known   bool // false until the pin has been written once
}

// update writes the pin if the pattern says it should change
func (s ledState) update(now time.Time, set func(on bool)) ledState {
	want := s.pattern.litAt(now.Sub(s.since))
	if !s.known || want != s.lit {
		set(want)
		s.lit = want
		s.known = true
	}
	return s
}

// runLEDController shows the controller's mode on the status LED.
func runLEDController(rt runtimeConfig) {
	logger := &ThreadLogger{name: "LEDs"}
	defer func() {
		logger.Println("exiting runLEDController")
	}()

	pin := rt.settings.GetInt(sStatusPin)
	rt.led.init()
	state := ledState{pattern: ledDark, since: rt.clock.Now()}

	for {
		select {
		case <-rt.comms.quit:
			rt.led.off(pin)
			return
		case m := <-rt.comms.modes:
			logger.Printf("mode %s", m)
			// keep the pin state so an unchanged level isn't rewritten
			state.pattern = patternFor(m)
			state.since = rt.clock.Now()
		default:
		}

		state = state.update(rt.clock.Now(), func(on bool) { rt.led.set(pin, on) })

		// 1/100s is plenty for a status light
		rt.clock.Sleep(dLEDSleep)
	}
}
