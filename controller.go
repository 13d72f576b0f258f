package main

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"dscheirer.com/segtimer/display"
	"dscheirer.com/segtimer/rgb"
	"github.com/jonboulle/clockwork"
)

// Mode is what the panel is showing.  Exactly one is active.
type Mode int

const (
	ModeOff Mode = iota
	ModeCurrentTime
	ModeCountdown
	ModeExpired
	ModeAnimation
)

var modeNames = [...]string{"off", "current-time", "countdown", "expired", "animation"}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// chain is one mode's run of timed ticks.  A negative delay means don't
// tick again; a non-nil next hands the panel to another chain.
type chain interface {
	mode() Mode
	start(now time.Time) (time.Duration, error)
	tick(now time.Time) (delay time.Duration, next chain, err error)
	stop()
}

// chains that blink can be told to stop blinking without leaving their mode
type blinkStopper interface {
	stopBlink() (time.Duration, error)
}

type controllerConfig struct {
	colonBlink     time.Duration
	expiredBlink   time.Duration
	animationStep  time.Duration
	animationDwell time.Duration
	animationDelta int
	randomColors   int
}

func controllerConfigFrom(s *settings) controllerConfig {
	return controllerConfig{
		colonBlink:     s.GetDuration(sColonBlink),
		expiredBlink:   s.GetDuration(sExpiredBlink),
		animationStep:  s.GetDuration(sAnimationStep),
		animationDwell: s.GetDuration(sAnimationDwell),
		animationDelta: s.GetInt(sAnimationDelta),
		randomColors:   s.GetInt(sRandomColors),
	}
}

type command struct {
	fn    func() error
	reply chan error
}

// status is a snapshot for the API.
type status struct {
	Mode      Mode
	Paint     display.Paint
	Remaining timeValue
	Ends      time.Time
}

// controller owns the panel.  All state below the channels belongs to the
// run goroutine; the exported methods hand it closures and wait.
type controller struct {
	clock  clockwork.Clock
	panel  *display.Panel
	alert  alerter
	cfg    controllerConfig
	logger flogger
	modes  chan Mode
	tap    func(Mode) // sees every render, before it happens
	rng    *rand.Rand

	cmds      chan command
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	mode        Mode
	paint       display.Paint
	active      chain
	timer       clockwork.Timer
	due         time.Time
	tearingDown bool
}

func newController(rt runtimeConfig, panel *display.Panel, alert alerter) *controller {
	c := &controller{
		clock:  rt.clock,
		panel:  panel,
		alert:  alert,
		cfg:    controllerConfigFrom(rt.settings),
		logger: &ThreadLogger{name: "Controller"},
		modes:  rt.comms.modes,
		rng:    rand.New(rand.NewSource(rt.clock.Now().UnixNano())),
		cmds:   make(chan command),
		quit:   make(chan struct{}),
		done:   make(chan struct{}),
		mode:   ModeOff,
		paint:  display.Single(rt.settings.GetColor(sDefaultColor)),
	}
	panel.SetPaint(c.paint)
	return c
}

// start runs the event loop
func (c *controller) start() {
	go c.run()
}

func (c *controller) run() {
	defer close(c.done)
	for {
		select {
		case <-c.quit:
			c.shutdown()
			return
		case cmd := <-c.cmds:
			// a tick that is already due goes first
			c.drainWake()
			cmd.reply <- cmd.fn()
		case <-c.wake():
			c.onWake()
		}
	}
}

// do runs fn on the loop and returns its error
func (c *controller) do(fn func() error) error {
	reply := make(chan error, 1)
	select {
	case c.cmds <- command{fn: fn, reply: reply}:
	case <-c.done:
		return ErrClosed
	}
	return <-reply
}

// Close stops the active chain, blanks the panel and ends the loop.
func (c *controller) Close() error {
	c.closeOnce.Do(func() { close(c.quit) })
	<-c.done
	return nil
}

func (c *controller) wake() <-chan time.Time {
	if c.timer == nil {
		return nil
	}
	return c.timer.Chan()
}

func (c *controller) drainWake() {
	if ch := c.wake(); ch != nil {
		select {
		case <-ch:
			c.onWake()
		default:
		}
	}
}

func (c *controller) onWake() {
	c.timer = nil
	now := c.clock.Now()
	tickDelay.Observe(now.Sub(c.due).Seconds())
	if c.active == nil {
		return
	}

	delay, next, err := c.active.tick(now)
	if err != nil {
		c.logger.Printf("%s tick: %v", c.mode, err)
	}
	if next != nil {
		from := c.mode
		c.teardown()
		c.active = next
		c.setMode(from, next.mode())
		if err := c.begin(next); err != nil {
			c.logger.Printf("%s start: %v", next.mode(), err)
		}
		return
	}
	c.schedule(delay)
}

func (c *controller) schedule(d time.Duration) {
	c.stopTimer()
	if d < 0 {
		return
	}
	c.due = c.clock.Now().Add(d)
	c.timer = c.clock.NewTimer(d)
}

func (c *controller) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

// teardown cancels the pending tick and stops the active chain.  Once it
// returns nothing from the old chain can render.
func (c *controller) teardown() {
	c.tearingDown = true
	defer func() { c.tearingDown = false }()
	c.stopTimer()
	if c.active != nil {
		c.active.stop()
		c.active = nil
	}
}

// enter switches to next (nil is Off), taking p as the new paint if given
func (c *controller) enter(next chain, p *display.Paint) error {
	if c.tearingDown {
		return ErrTransitionRace
	}
	from := c.mode
	c.teardown()

	if p != nil {
		c.paint = *p
	}
	c.panel.Clear()
	c.panel.SetPaint(c.paint)

	if next == nil {
		c.setMode(from, ModeOff)
		return c.render(ModeOff)
	}
	c.active = next
	c.setMode(from, next.mode())
	return c.begin(next)
}

func (c *controller) begin(next chain) error {
	delay, err := next.start(c.clock.Now())
	c.schedule(delay)
	return err
}

func (c *controller) setMode(from, to Mode) {
	c.mode = to
	if from == to {
		return
	}
	transitions.WithLabelValues(from.String(), to.String()).Inc()
	c.logger.Printf("mode %s -> %s", from, to)
	if c.modes == nil {
		return
	}
	// the LED only cares about the latest mode
	select {
	case c.modes <- to:
	default:
		select {
		case <-c.modes:
		default:
		}
		select {
		case c.modes <- to:
		default:
		}
	}
}

func (c *controller) render(m Mode) error {
	if c.tap != nil {
		c.tap(m)
	}
	renders.WithLabelValues(m.String()).Inc()
	if err := c.panel.Render(); err != nil {
		renderErrors.WithLabelValues(m.String()).Inc()
		return &SurfaceError{Op: m.String(), Err: err}
	}
	return nil
}

// showFailed logs a number the panel refused
func (c *controller) showFailed(err error) {
	if err != nil {
		c.logger.Printf("%s show: %v", c.mode, err)
	}
}

func (c *controller) shutdown() {
	from := c.mode
	c.teardown()
	c.panel.Clear()
	c.setMode(from, ModeOff)
	if err := c.render(ModeOff); err != nil {
		c.logger.Printf("blank on shutdown: %v", err)
	}
	c.logger.Println("controller stopped")
}

// recolor changes the paint of whatever is up and renders it once
func (c *controller) recolor(p display.Paint) error {
	c.paint = p
	c.panel.SetPaint(p)
	if a, ok := c.active.(*animationChain); ok && a.fader != nil {
		a.fader.current = p.Primary()
	}
	if c.mode == ModeOff {
		return nil
	}
	return c.render(c.mode)
}

// Off stops whatever is running and blanks the panel.
func (c *controller) Off() error {
	return c.do(func() error {
		return c.enter(nil, nil)
	})
}

// ShowCurrentTime shows hours:minutes with a blinking divider.  A nil paint
// keeps the current one.
func (c *controller) ShowCurrentTime(p *display.Paint) error {
	return c.do(func() error {
		return c.enter(newTimeChain(c), p)
	})
}

// StartCountdown counts down from h:m:s and blinks 00:00 when done.
func (c *controller) StartCountdown(h, m, s int, p *display.Paint) error {
	tv, err := newTimeValue(h, m, s)
	if err != nil {
		return err
	}
	return c.do(func() error {
		if tv.zero() {
			countdownsExpired.Inc()
			return c.enter(newExpiredChain(c), p)
		}
		return c.enter(newCountdownChain(c, tv), p)
	})
}

// CancelCountdown turns the panel off if a countdown is running or expired.
func (c *controller) CancelCountdown() error {
	return c.do(func() error {
		if c.mode != ModeCountdown && c.mode != ModeExpired {
			return nil
		}
		return c.enter(nil, nil)
	})
}

// SetColor repaints in one color without changing the mode.
func (c *controller) SetColor(col rgb.Color) error {
	return c.do(func() error {
		return c.recolor(display.Single(col))
	})
}

// SetColors repaints segment by segment without changing the mode.
func (c *controller) SetColors(cs []rgb.Color) error {
	if len(cs) == 0 {
		return invalid("colors", "need at least one color")
	}
	p := display.PerSegment(cs)
	return c.do(func() error {
		return c.recolor(p)
	})
}

// StartAnimation lights every segment and runs the animation until stopped.
func (c *controller) StartAnimation(spec AnimationSpec) error {
	if err := spec.validate(); err != nil {
		return err
	}
	return c.do(func() error {
		return c.enter(newAnimationChain(c, spec), nil)
	})
}

// StopAnimation turns the panel off if an animation is running.
func (c *controller) StopAnimation() error {
	return c.do(func() error {
		if c.mode != ModeAnimation {
			return nil
		}
		return c.enter(nil, nil)
	})
}

// StopBlink holds the panel steady in the current mode.
func (c *controller) StopBlink() error {
	return c.do(func() error {
		b, ok := c.active.(blinkStopper)
		if !ok {
			return nil
		}
		c.stopTimer()
		delay, err := b.stopBlink()
		c.schedule(delay)
		return err
	})
}

// ButtonPress is the hardware button: cancel a countdown, otherwise toggle
// between off and the clock.
func (c *controller) ButtonPress() error {
	return c.do(func() error {
		switch c.mode {
		case ModeOff:
			return c.enter(newTimeChain(c), nil)
		default:
			return c.enter(nil, nil)
		}
	})
}

// Status reports the mode, paint and any countdown in progress.
func (c *controller) Status() (status, error) {
	var st status
	err := c.do(func() error {
		st = status{Mode: c.mode, Paint: c.paint}
		if cd, ok := c.active.(*countdownChain); ok {
			st.Remaining = cd.remaining
			st.Ends = cd.ends
		}
		return nil
	})
	return st, err
}
