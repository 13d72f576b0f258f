package main

import (
	"log"

	"github.com/stianeikeland/go-rpio"
)

// rpioLed drives LEDs on GPIO pins
type rpioLed struct {
	opened bool
}

func (rpi *rpioLed) init() {
	if err := rpio.Open(); err != nil {
		log.Fatalf("open gpio for the status led: %v", err)
	}
	rpi.opened = true
}

func (rpi *rpioLed) set(pinNum int, on bool) {
	if !rpi.opened {
		return
	}
	pin := rpio.Pin(pinNum)
	pin.Output()
	if on {
		pin.High()
	} else {
		pin.Low()
	}
}

func (rpi *rpioLed) on(pin int) {
	rpi.set(pin, true)
}

func (rpi *rpioLed) off(pin int) {
	rpi.set(pin, false)
}
