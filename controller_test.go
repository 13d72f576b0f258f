package main

import (
	"strings"
	"testing"
	"time"

	"dscheirer.com/segtimer/rgb"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/goleak"
	"gotest.tools/assert"
)

func TestCountdownExpires(t *testing.T) {
	r := newRig(t)
	defer r.close(t)
	expired := testutil.ToFloat64(countdownsExpired)

	assert.NilError(t, r.ctl.StartCountdown(0, 0, 3, paintOf(rgb.Red)))
	st, err := r.ctl.Status()
	assert.NilError(t, err)
	assert.Equal(t, st.Mode, ModeCountdown)
	assert.Equal(t, st.Remaining, timeValue{seconds: 3})
	assert.Equal(t, st.Ends, testStart.Add(3*time.Second))

	left, right, div := r.shown()
	assert.Equal(t, left, 0)
	assert.Equal(t, right, 3)
	assert.Assert(t, div)
	assert.Equal(t, r.colorAt(3, 0), rgb.Red)

	for want := 2; want > 0; want-- {
		st = r.step(t, time.Second)
		assert.Equal(t, st.Mode, ModeCountdown)
		_, right, _ = r.shown()
		assert.Equal(t, right, want)
	}

	// zero is never drawn as a countdown, it goes straight to blinking
	st = r.step(t, time.Second)
	assert.Equal(t, st.Mode, ModeExpired)
	assert.DeepEqual(t, r.renders(), []Mode{ModeCountdown, ModeCountdown, ModeCountdown, ModeExpired})
	assert.Equal(t, testutil.ToFloat64(countdownsExpired), expired+1)
	playing, starts, _ := r.alert.counts()
	assert.Assert(t, playing)
	assert.Equal(t, starts, 1)

	left, right, div = r.shown()
	assert.Equal(t, left, 0)
	assert.Equal(t, right, 0)
	assert.Assert(t, div)
	assert.Equal(t, r.colorAt(0, 0), rgb.Red)

	// everything toggles every 750ms, one render each
	for i := 0; i < 4; i++ {
		n := r.renderCount()
		r.step(t, 750*time.Millisecond)
		assert.Equal(t, r.renderCount(), n+1)
		assert.Equal(t, r.blank(), i%2 == 0)
	}
	assert.Equal(t, r.mode(t), ModeExpired)
}

func TestCountdownTicksEverySecond(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	assert.NilError(t, r.ctl.StartCountdown(0, 1, 5, nil))
	left, right, _ := r.shown()
	assert.Equal(t, left, 1)
	assert.Equal(t, right, 5)

	for i := 1; i < 65; i++ {
		st := r.step(t, time.Second)
		assert.Equal(t, st.Mode, ModeCountdown, "tick %d", i)
		assert.Equal(t, st.Remaining.totalSeconds(), 65-i)
	}
	assert.Equal(t, r.renderCount(), 65)
	assert.Equal(t, r.step(t, time.Second).Mode, ModeExpired)
}

func TestCountdownHourBorrow(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	assert.NilError(t, r.ctl.StartCountdown(1, 0, 0, nil))
	left, right, _ := r.shown()
	assert.Equal(t, left, 1)
	assert.Equal(t, right, 0)

	// nothing happens for a minute while hours are showing
	r.step(t, 59*time.Second)
	assert.Equal(t, r.renderCount(), 1)

	st := r.step(t, time.Second)
	assert.Equal(t, st.Remaining, timeValue{minutes: 59})
	left, right, _ = r.shown()
	assert.Equal(t, left, 59)
	assert.Equal(t, right, 0)

	// now it's by the second
	st = r.step(t, time.Second)
	assert.Equal(t, st.Remaining, timeValue{minutes: 58, seconds: 59})
}

func TestZeroCountdownExpiresNow(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	assert.NilError(t, r.ctl.StartCountdown(0, 0, 0, nil))
	assert.Equal(t, r.mode(t), ModeExpired)
	assert.DeepEqual(t, r.renders(), []Mode{ModeExpired})
}

func TestNewModeCancelsOldChain(t *testing.T) {
	r := newRig(t)
	defer r.close(t)
	expired := testutil.ToFloat64(countdownsExpired)

	assert.NilError(t, r.ctl.StartCountdown(0, 0, 2, nil))
	r.step(t, time.Second)
	assert.NilError(t, r.ctl.ShowCurrentTime(nil))
	n := r.renderCount()

	for i := 0; i < 10; i++ {
		r.step(t, 500*time.Millisecond)
	}
	seen := r.renders()
	assert.Equal(t, len(seen), n+10)
	for _, m := range seen[n-1:] {
		assert.Equal(t, m, ModeCurrentTime)
	}
	assert.Equal(t, testutil.ToFloat64(countdownsExpired), expired)
}

func TestCountdownStopsTheClock(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	assert.NilError(t, r.ctl.ShowCurrentTime(paintOf(rgb.Blue)))
	assert.NilError(t, r.ctl.StartCountdown(0, 0, 30, nil))
	seen := r.renders()
	assert.DeepEqual(t, seen, []Mode{ModeCurrentTime, ModeCountdown})

	// the divider timer would have fired on every one of these
	for i := 0; i < 10; i++ {
		r.step(t, 500*time.Millisecond)
	}
	for _, m := range r.renders()[1:] {
		assert.Equal(t, m, ModeCountdown)
	}
	st, err := r.ctl.Status()
	assert.NilError(t, err)
	assert.Equal(t, st.Remaining, timeValue{seconds: 25})
	assert.Equal(t, r.colorAt(3, 0), rgb.Blue)
}

func TestHugeCountdownRejected(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	err := r.ctl.StartCountdown(1<<61, 0, 0, nil)
	assert.Assert(t, isValidation(err))
	assert.Equal(t, r.mode(t), ModeOff)
	assert.Equal(t, r.renderCount(), 0)
}

func TestShowErrorsAreLogged(t *testing.T) {
	r := newRig(t)
	defer r.close(t)
	logs := captureLog(t)

	// more minutes than the panel can show
	err := r.ctl.do(func() error {
		return r.ctl.enter(newCountdownChain(r.ctl, timeValue{minutes: 120}), nil)
	})
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(logs.String(), "countdown show: number 120 out of range [0,99]"), logs.String())
}

func TestShowCurrentTime(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	assert.NilError(t, r.ctl.ShowCurrentTime(nil))
	left, right, div := r.shown()
	assert.Equal(t, left, 9)
	assert.Equal(t, right, 41)
	assert.Assert(t, div)
	// no leading zero on the hours
	assert.Equal(t, digitAt(r.strip.Pixels(), 0), -1)
	assert.Equal(t, r.colorAt(1, 1), rgb.Green)

	r.step(t, 500*time.Millisecond)
	_, _, div = r.shown()
	assert.Assert(t, !div)
	r.step(t, 500*time.Millisecond)
	_, _, div = r.shown()
	assert.Assert(t, div)

	// the minute rolls over on a tick
	for i := 0; i < 118; i++ {
		r.step(t, 500*time.Millisecond)
	}
	_, right, _ = r.shown()
	assert.Equal(t, right, 42)
}

func TestStopBlinkCurrentTime(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	assert.NilError(t, r.ctl.ShowCurrentTime(paintOf(rgb.Blue)))
	r.step(t, 500*time.Millisecond)
	assert.NilError(t, r.ctl.StopBlink())
	for i := 0; i < 4; i++ {
		r.step(t, 500*time.Millisecond)
		_, _, div := r.shown()
		assert.Assert(t, div)
	}
	assert.Equal(t, r.mode(t), ModeCurrentTime)
}

func TestStopBlinkExpired(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	assert.NilError(t, r.ctl.StartCountdown(0, 0, 0, nil))
	r.step(t, 750*time.Millisecond)
	assert.Assert(t, r.blank())

	assert.NilError(t, r.ctl.StopBlink())
	n := r.renderCount()
	r.step(t, 3*time.Second)
	assert.Equal(t, r.renderCount(), n)
	left, right, div := r.shown()
	assert.Equal(t, left, 0)
	assert.Equal(t, right, 0)
	assert.Assert(t, div)

	playing, _, stops := r.alert.counts()
	assert.Assert(t, !playing)
	assert.Equal(t, stops, 1)
	assert.Equal(t, r.mode(t), ModeExpired)

	// stopping again is a no-op
	assert.NilError(t, r.ctl.StopBlink())
	assert.NilError(t, r.ctl.Off())
	_, _, stops = r.alert.counts()
	assert.Equal(t, stops, 1)
}

func TestCancelCountdown(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	// nothing to cancel
	assert.NilError(t, r.ctl.CancelCountdown())
	assert.Equal(t, r.renderCount(), 0)

	assert.NilError(t, r.ctl.StartCountdown(0, 0, 1, nil))
	r.step(t, time.Second)
	assert.Equal(t, r.mode(t), ModeExpired)
	assert.NilError(t, r.ctl.CancelCountdown())
	assert.Equal(t, r.mode(t), ModeOff)
	assert.Assert(t, r.blank())
	playing, _, stops := r.alert.counts()
	assert.Assert(t, !playing)
	assert.Equal(t, stops, 1)

	// leaves other modes alone
	assert.NilError(t, r.ctl.ShowCurrentTime(nil))
	assert.NilError(t, r.ctl.CancelCountdown())
	assert.Equal(t, r.mode(t), ModeCurrentTime)
}

func TestOffIsIdempotent(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	assert.NilError(t, r.ctl.ShowCurrentTime(nil))
	assert.NilError(t, r.ctl.Off())
	assert.NilError(t, r.ctl.Off())
	assert.Equal(t, r.mode(t), ModeOff)
	assert.Assert(t, r.blank())

	// no ticks once off
	n := r.renderCount()
	r.step(t, 5*time.Second)
	assert.Equal(t, r.renderCount(), n)
}

func TestValidationChangesNothing(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	assert.NilError(t, r.ctl.ShowCurrentTime(nil))
	n := r.renderCount()

	err := r.ctl.StartCountdown(0, -1, 0, nil)
	assert.Assert(t, isValidation(err))
	err = r.ctl.SetColors(nil)
	assert.Assert(t, isValidation(err))
	err = r.ctl.StartAnimation(AnimationSpec{Kind: "sparkle"})
	assert.Assert(t, isValidation(err))
	err = r.ctl.StartAnimation(AnimationSpec{Kind: animSmooth})
	assert.Assert(t, isValidation(err))

	assert.Equal(t, r.mode(t), ModeCurrentTime)
	assert.Equal(t, r.renderCount(), n)
}

func TestSetColor(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	// off: remembered, nothing drawn
	assert.NilError(t, r.ctl.SetColor(rgb.Red))
	assert.Equal(t, r.renderCount(), 0)
	assert.Assert(t, r.blank())

	assert.NilError(t, r.ctl.ShowCurrentTime(nil))
	assert.Equal(t, r.colorAt(1, 0), rgb.Red)

	assert.NilError(t, r.ctl.SetColor(rgb.Blue))
	assert.Equal(t, r.colorAt(1, 0), rgb.Blue)
	assert.DeepEqual(t, r.renders(), []Mode{ModeCurrentTime, ModeCurrentTime})

	st, err := r.ctl.Status()
	assert.NilError(t, err)
	assert.Equal(t, st.Mode, ModeCurrentTime)
	assert.DeepEqual(t, st.Paint.Colors(), []rgb.Color{rgb.Blue})
}

func TestSetColorsBySegment(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	assert.NilError(t, r.ctl.ShowCurrentTime(nil))
	assert.NilError(t, r.ctl.SetColors([]rgb.Color{rgb.Red, rgb.Blue}))
	// "9" lights a, b and c
	assert.Equal(t, r.colorAt(1, 0), rgb.Red)
	assert.Equal(t, r.colorAt(1, 1), rgb.Blue)
	assert.Equal(t, r.colorAt(1, 2), rgb.Red)

	// the paint carries into the next mode
	assert.NilError(t, r.ctl.StartCountdown(0, 0, 8, nil))
	assert.Equal(t, r.colorAt(3, 1), rgb.Blue)
}

func TestSmoothAnimation(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	assert.NilError(t, r.ctl.StartAnimation(AnimationSpec{Kind: animSmooth, Colors: []rgb.Color{rgb.Blue}}))
	assert.Equal(t, r.mode(t), ModeAnimation)
	left, right, div := r.shown()
	assert.Equal(t, left, 88)
	assert.Equal(t, right, 88)
	assert.Assert(t, div)
	assert.Equal(t, r.colorAt(0, 0), rgb.Green)

	steps := rgb.Steps(rgb.Green, rgb.Blue, 5)
	for i := 1; i <= steps; i++ {
		r.step(t, 50*time.Millisecond)
		assert.Equal(t, rgb.Distance(r.colorAt(0, 0), rgb.Blue), 255-5*i)
	}
	assert.Equal(t, r.colorAt(2, 6), rgb.Blue)

	// dwelling on the only waypoint draws nothing
	n := r.renderCount()
	r.step(t, 2*time.Second)
	r.step(t, 2*time.Second)
	assert.Equal(t, r.renderCount(), n)

	// stopping turns off and keeps the last color
	assert.NilError(t, r.ctl.StopAnimation())
	st, err := r.ctl.Status()
	assert.NilError(t, err)
	assert.Equal(t, st.Mode, ModeOff)
	assert.DeepEqual(t, st.Paint.Colors(), []rgb.Color{rgb.Blue})
	assert.Assert(t, r.blank())

	// not animating, nothing to stop
	assert.NilError(t, r.ctl.ShowCurrentTime(nil))
	assert.NilError(t, r.ctl.StopAnimation())
	assert.Equal(t, r.mode(t), ModeCurrentTime)
}

func TestRandomAnimation(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	assert.NilError(t, r.ctl.StartAnimation(AnimationSpec{Kind: animRandom}))
	for i := 0; i < 200; i++ {
		r.step(t, 50*time.Millisecond)
	}
	assert.Equal(t, r.mode(t), ModeAnimation)
	left, right, _ := r.shown()
	assert.Equal(t, left, 88)
	assert.Equal(t, right, 88)
}

func TestRenderFailure(t *testing.T) {
	r := newRig(t)
	defer r.close(t)
	failed := testutil.ToFloat64(renderErrors.WithLabelValues(ModeCurrentTime.String()))

	r.driver.FailNext(1)
	err := r.ctl.ShowCurrentTime(nil)
	assert.Assert(t, isSurface(err))
	assert.Equal(t, r.mode(t), ModeCurrentTime)
	assert.Equal(t, testutil.ToFloat64(renderErrors.WithLabelValues(ModeCurrentTime.String())), failed+1)

	// the chain carries on
	frames := r.driver.Frames()
	r.step(t, 500*time.Millisecond)
	assert.Equal(t, r.driver.Frames(), frames+1)
}

func TestTransitionDuringTeardown(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	err := r.ctl.do(func() error {
		r.ctl.tearingDown = true
		defer func() { r.ctl.tearingDown = false }()
		return r.ctl.enter(nil, nil)
	})
	assert.Equal(t, err, ErrTransitionRace)
}

func TestButtonPress(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	assert.NilError(t, r.ctl.ButtonPress())
	assert.Equal(t, r.mode(t), ModeCurrentTime)
	assert.NilError(t, r.ctl.ButtonPress())
	assert.Equal(t, r.mode(t), ModeOff)

	assert.NilError(t, r.ctl.StartCountdown(0, 5, 0, nil))
	assert.NilError(t, r.ctl.ButtonPress())
	assert.Equal(t, r.mode(t), ModeOff)
}

func TestModeChangesReachTheLED(t *testing.T) {
	r := newRig(t)
	defer r.close(t)

	assert.NilError(t, r.ctl.ShowCurrentTime(nil))
	assert.NilError(t, r.ctl.StartCountdown(0, 1, 0, nil))
	// only the latest is kept
	assert.Equal(t, <-r.rt.comms.modes, ModeCountdown)
	select {
	case m := <-r.rt.comms.modes:
		t.Fatalf("unexpected mode %s", m)
	default:
	}
}

func TestCloseStopsEverything(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	r := newRig(t)

	assert.NilError(t, r.ctl.StartCountdown(0, 0, 0, nil))
	assert.NilError(t, r.ctl.Close())
	assert.Assert(t, r.blank())
	playing, _, _ := r.alert.counts()
	assert.Assert(t, !playing)

	assert.Equal(t, r.ctl.Off(), ErrClosed)
	_, err := r.ctl.Status()
	assert.Equal(t, err, ErrClosed)
	// twice is fine
	assert.NilError(t, r.ctl.Close())
}
