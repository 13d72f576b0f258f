package main

import (
	"testing"
	"time"

	"gotest.tools/assert"
)

// helper func
func compareTo(step int, duty int) bool {
	return (step % 100) < duty
}

func TestLEDPatterns(t *testing.T) {
	assert.Equal(t, patternFor(ModeOff), ledDark)
	assert.Equal(t, patternFor(ModeCurrentTime), ledSteady)
	assert.Equal(t, patternFor(ModeCountdown), ledBlink10)
	assert.Equal(t, patternFor(ModeExpired), ledBlink50)
	assert.Equal(t, patternFor(ModeAnimation), ledBlink90)

	assert.Assert(t, ledBlink90.litAt(50*time.Millisecond))
	assert.Assert(t, !ledBlink90.litAt(150*time.Millisecond))
	assert.Assert(t, ledBlink10.litAt(1850*time.Millisecond))
	assert.Assert(t, !ledBlink10.litAt(1950*time.Millisecond))
	assert.Assert(t, !ledDark.litAt(0))
}

// run each blinking mode for 2 seconds at 1/100s steps
func TestLEDControllerModes(t *testing.T) {
	for _, tc := range []struct {
		mode Mode
		duty int
	}{
		{ModeOff, 0},
		{ModeCurrentTime, 100},
		{ModeCountdown, 90},
		{ModeExpired, 50},
		{ModeAnimation, 10},
	} {
		t.Run(tc.mode.String(), func(t *testing.T) {
			rt, clock, comms := testRuntime()
			leds := rt.led.(*logLed)
			pin := rt.settings.GetInt(sStatusPin)

			done := goWorker(rt, runLEDController)
			clock.BlockUntil(1)

			comms.modes <- tc.mode
			testBlockDurationCB(clock, dLEDSleep, 2*time.Second, func(i int) {
				assert.Equal(t, leds.get(pin), compareTo(i, tc.duty), "step %d", i)
			})

			testQuit(t, rt, clock, done)
			assert.Equal(t, leds.get(pin), false)
		})
	}
}

func TestLEDControllerSteadyWritesOnce(t *testing.T) {
	rt, clock, comms := testRuntime()
	leds := rt.led.(*logLed)
	pin := rt.settings.GetInt(sStatusPin)

	done := goWorker(rt, runLEDController)
	clock.BlockUntil(1)
	// the first pass writes the pin dark
	assert.Equal(t, len(leds.history()), 1)

	comms.modes <- ModeCurrentTime
	testBlockDuration(clock, dLEDSleep, time.Minute)
	assert.Equal(t, len(leds.history()), 2)
	assert.Equal(t, leds.get(pin), true)

	// back to off
	comms.modes <- ModeOff
	testBlockDuration(clock, dLEDSleep, time.Second)
	assert.Equal(t, len(leds.history()), 3)
	assert.Equal(t, leds.get(pin), false)

	testQuit(t, rt, clock, done)
}
