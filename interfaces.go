package main

import (
	"github.com/stianeikeland/go-rpio"
)

// alerter makes noise while a countdown is expired.  start and stop may be
// called more than once.
type alerter interface {
	start()
	stop()
}

type buttons interface {
	initButtons(settings *settings) error
	setupButton(cfg buttonConfig, rt runtimeConfig) error
	readButton(rt runtimeConfig) (rpio.State, error)
	closeButtons()
}

type led interface {
	init()
	set(pin int, on bool)
	on(pin int)
	off(pin int)
}
