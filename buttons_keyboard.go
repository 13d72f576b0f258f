package main

import (
	"time"

	// keyboard for sim mode
	"github.com/nsf/termbox-go"
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

// simButtons is the button on a keyboard key: each keypress reads as one
// poll with the button down.
type simButtons struct {
	cfg buttonConfig
}

func (sb *simButtons) initButtons(settings *settings) error {
	if err := termbox.Init(); err != nil {
		return err
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.Flush()
	return nil
}

func (sb *simButtons) setupButton(cfg buttonConfig, rt runtimeConfig) error {
	sb.cfg = cfg
	return nil
}

func (sb *simButtons) readButton(rt runtimeConfig) (rpio.State, error) {
	up := rpio.High
	if !sb.cfg.pullup {
		up = rpio.Low
	}

	// poll with a quick timeout, no key means "not pressed"
	go func() {
		rt.clock.Sleep(100 * time.Millisecond)
		termbox.Interrupt()
	}()

	var ev termbox.Event
	for waiting := true; waiting; {
		evTemp := termbox.PollEvent()
		switch evTemp.Type {
		case termbox.EventKey:
			// add an exit key
			if evTemp.Key == termbox.KeyCtrlC {
				return up, errors.New("exit termbox loop")
			}
			ev = evTemp
		default:
			// the interrupt fired
			waiting = false
		}
	}

	if sb.cfg.key != 0 && byte(ev.Ch) == sb.cfg.key {
		return sb.cfg.pressedLevel(), nil
	}
	return up, nil
}

func (sb *simButtons) closeButtons() {
	termbox.Close()
}
