package main

import (
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

// rpioButtons reads the button from a GPIO pin
type rpioButtons struct {
	pin rpio.Pin
}

func (rb *rpioButtons) initButtons(settings *settings) error {
	return errors.Wrap(rpio.Open(), "open gpio")
}

func (rb *rpioButtons) setupButton(cfg buttonConfig, rt runtimeConfig) error {
	rb.pin = rpio.Pin(cfg.pin)
	rb.pin.Input()
	if cfg.pullup {
		rb.pin.PullUp() // GND => button press
	} else {
		rb.pin.PullDown()
	}
	return nil
}

func (rb *rpioButtons) readButton(rt runtimeConfig) (rpio.State, error) {
	return rb.pin.Read(), nil
}

func (rb *rpioButtons) closeButtons() {
	rpio.Close()
}
