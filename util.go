// runtime plumbing shared by the workers
package main

import (
	"sync"

	"github.com/jonboulle/clockwork"
)

type commChannels struct {
	quit     chan struct{}
	quitOnce *sync.Once
	modes    chan Mode // controller -> status LED
}

// stop closes quit once, whoever gets there first
func (c commChannels) stop() {
	c.quitOnce.Do(func() { close(c.quit) })
}

type runtimeConfig struct {
	settings *settings
	clock    clockwork.Clock
	comms    commChannels
	led      led
	buttons  buttons
}

func initCommChannels() commChannels {
	return commChannels{
		quit:     make(chan struct{}),
		quitOnce: &sync.Once{},
		modes:    make(chan Mode, 1),
	}
}

func initRuntime(s *settings) runtimeConfig {
	rt := runtimeConfig{
		settings: s,
		clock:    clockwork.NewRealClock(),
		comms:    initCommChannels(),
	}

	if s.GetBool(sSimulated) {
		rt.led = &logLed{}
	} else {
		rt.led = &rpioLed{}
	}

	if s.GetBool(sButtonSimulated) {
		rt.buttons = &simButtons{}
	} else if s.GetBool(sSimulated) {
		rt.buttons = &noButtons{}
	} else {
		rt.buttons = &rpioButtons{}
	}

	return rt
}

// launch runs a worker under the global wait group
func launch(rt runtimeConfig, worker func(rt runtimeConfig)) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker(rt)
	}()
}
