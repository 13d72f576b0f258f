package main

import (
	"fmt"
	"sync"
)

// logLed records LED changes instead of driving a pin
type logLed struct {
	mu         sync.Mutex
	leds       map[int]bool
	audit      []string
	disableLog bool
	logger     flogger
}

func (ll *logLed) init() {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.leds = make(map[int]bool)
	ll.audit = make([]string, 0)
	ll.logger = &ThreadLogger{name: "LEDs"}
}

func (ll *logLed) set(pinNum int, on bool) {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	ll.leds[pinNum] = on
	msg := fmt.Sprintf("Set LED %v to %v", pinNum, on)
	if !ll.disableLog {
		ll.logger.Println(msg)
	}
	ll.audit = append(ll.audit, msg)
}

func (ll *logLed) on(pinNum int) {
	ll.set(pinNum, true)
}

func (ll *logLed) off(pinNum int) {
	ll.set(pinNum, false)
}

// get reports the last level written to pinNum
func (ll *logLed) get(pinNum int) bool {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	return ll.leds[pinNum]
}

func (ll *logLed) history() []string {
	ll.mu.Lock()
	defer ll.mu.Unlock()
	return append([]string(nil), ll.audit...)
}
