package main

import (
	"time"

	"dscheirer.com/segtimer/display"
	"golang.org/x/net/trace"
)

// every chain gets an event log at /debug/events for as long as it runs
func newChainLog(m Mode) trace.EventLog {
	return trace.NewEventLog("segtimer.chain", m.String())
}

// timeChain shows hours:minutes and blinks the divider.
type timeChain struct {
	c     *controller
	blink bool
	ev    trace.EventLog
}

func newTimeChain(c *controller) *timeChain {
	return &timeChain{c: c, blink: true}
}

func (t *timeChain) mode() Mode { return ModeCurrentTime }

func (t *timeChain) show(now time.Time) {
	p := t.c.panel
	t.c.showFailed(p.Left.Show(now.Hour()))
	t.c.showFailed(p.Right.Show(now.Minute()))
}

func (t *timeChain) start(now time.Time) (time.Duration, error) {
	t.ev = newChainLog(t.mode())
	t.c.panel.Left.SetLeadingZero(false)
	t.show(now)
	t.c.panel.Divider.On()
	t.ev.Printf("showing %s", now.Format("15:04"))
	return t.c.cfg.colonBlink, t.c.render(t.mode())
}

func (t *timeChain) tick(now time.Time) (time.Duration, chain, error) {
	t.show(now)
	if t.blink {
		t.c.panel.Divider.Toggle()
	}
	return t.c.cfg.colonBlink, nil, t.c.render(t.mode())
}

func (t *timeChain) stopBlink() (time.Duration, error) {
	t.blink = false
	t.c.panel.Divider.On()
	t.ev.Printf("blink stopped")
	return t.c.cfg.colonBlink, t.c.render(t.mode())
}

func (t *timeChain) stop() {
	t.c.panel.Divider.Off()
	t.c.panel.Left.SetLeadingZero(true)
	t.ev.Finish()
}

// countdownChain ticks a timeValue down to zero, then hands off to
// expiredChain.
type countdownChain struct {
	c         *controller
	remaining timeValue
	ends      time.Time
	ev        trace.EventLog
}

func newCountdownChain(c *controller, tv timeValue) *countdownChain {
	return &countdownChain{c: c, remaining: tv}
}

func (cd *countdownChain) mode() Mode { return ModeCountdown }

func (cd *countdownChain) show() {
	l, r := cd.remaining.shown()
	cd.c.showFailed(cd.c.panel.Show(l, r))
}

func (cd *countdownChain) start(now time.Time) (time.Duration, error) {
	cd.ev = newChainLog(cd.mode())
	cd.ends = endTime(now, cd.remaining)
	cd.ev.Printf("counting down %s, ends %s", cd.remaining, cd.ends.Format(time.RFC3339))
	cd.show()
	return cd.remaining.period(), cd.c.render(cd.mode())
}

func (cd *countdownChain) tick(now time.Time) (time.Duration, chain, error) {
	next, expired, delay := countdownStep(cd.remaining)
	cd.remaining = next
	if expired {
		countdownsExpired.Inc()
		cd.ev.Printf("expired")
		return -1, newExpiredChain(cd.c), nil
	}
	cd.show()
	return delay, nil, cd.c.render(cd.mode())
}

func (cd *countdownChain) stop() {
	cd.ev.Finish()
}

// expiredChain blinks 00:00 and sounds the alert.
type expiredChain struct {
	c        *controller
	blinker  *display.Blinker
	alerting bool
	ev       trace.EventLog
}

func newExpiredChain(c *controller) *expiredChain {
	return &expiredChain{c: c}
}

func (e *expiredChain) mode() Mode { return ModeExpired }

func (e *expiredChain) start(now time.Time) (time.Duration, error) {
	e.ev = newChainLog(e.mode())
	e.c.showFailed(e.c.panel.Show(0, 0))
	e.blinker = e.c.panel.Blinker()
	e.blinker.Start(e.c.cfg.expiredBlink)
	e.c.alert.start()
	e.alerting = true
	return e.blinker.Interval(), e.c.render(e.mode())
}

func (e *expiredChain) tick(now time.Time) (time.Duration, chain, error) {
	e.blinker.Step()
	return e.blinker.Interval(), nil, e.c.render(e.mode())
}

func (e *expiredChain) silence() {
	if e.alerting {
		e.c.alert.stop()
		e.alerting = false
	}
}

func (e *expiredChain) stopBlink() (time.Duration, error) {
	e.blinker.Stop()
	e.silence()
	e.ev.Printf("blink stopped")
	return -1, e.c.render(e.mode())
}

func (e *expiredChain) stop() {
	e.silence()
	e.ev.Finish()
}

// animationChain lights every segment and fades through colors.
type animationChain struct {
	c     *controller
	spec  AnimationSpec
	fader *fader
	ev    trace.EventLog
}

func newAnimationChain(c *controller, spec AnimationSpec) *animationChain {
	return &animationChain{c: c, spec: spec}
}

func (a *animationChain) mode() Mode { return ModeAnimation }

func (a *animationChain) start(now time.Time) (time.Duration, error) {
	a.ev = newChainLog(a.mode())
	cfg := a.c.cfg
	from := a.c.paint.Primary()
	switch a.spec.Kind {
	case animRandom:
		n := cfg.randomColors
		if n < 1 {
			n = 1
		}
		refill := randomWaypoints(a.c.rng)
		a.fader = newFader(from, refill(n), cfg.animationDelta, cfg.animationStep, cfg.animationDwell)
		a.fader.refill = refill
	default:
		a.fader = newFader(from, a.spec.Colors, cfg.animationDelta, cfg.animationStep, cfg.animationDwell)
	}
	a.ev.Printf("%s through %d colors from %s", a.spec.Kind, len(a.fader.waypoints), from)

	a.c.panel.SetColor(from)
	a.c.showFailed(a.c.panel.Show(88, 88))
	return a.fader.begin(), a.c.render(a.mode())
}

func (a *animationChain) tick(now time.Time) (time.Duration, chain, error) {
	col, changed, delay := a.fader.advance()
	if !changed {
		return delay, nil, nil
	}
	a.c.panel.SetColor(col)
	return delay, nil, a.c.render(a.mode())
}

func (a *animationChain) stop() {
	// the last color shown becomes the committed one
	a.c.paint = display.Single(a.fader.current)
	a.ev.Finish()
}
