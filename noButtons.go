package main

import (
	"sync"

	"github.com/stianeikeland/go-rpio"
)

// noButtons is a button nobody can press, unless a test does
type noButtons struct {
	mu    sync.Mutex
	cfg   buttonConfig
	state rpio.State
}

func (nb *noButtons) initButtons(settings *settings) error {
	return nil
}

func (nb *noButtons) setupButton(cfg buttonConfig, rt runtimeConfig) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.cfg = cfg
	nb.state = rpio.High
	if !cfg.pullup {
		nb.state = rpio.Low
	}
	return nil
}

func (nb *noButtons) readButton(rt runtimeConfig) (rpio.State, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.state, nil
}

func (nb *noButtons) closeButtons() {
}

// press holds the button down (or lets it go)
func (nb *noButtons) press(down bool) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	if down {
		nb.state = nb.cfg.pressedLevel()
	} else if nb.cfg.pullup {
		nb.state = rpio.High
	} else {
		nb.state = rpio.Low
	}
}
