package main

import (
	"time"

	"github.com/stianeikeland/go-rpio"
)

// how often the button is polled
const dButtonSleep = 10 * time.Millisecond

type buttonConfig struct {
	pin    int
	pullup bool // pulled up means the press grounds the pin
	key    byte // for the keyboard simulation
}

func buttonConfigFrom(s *settings) buttonConfig {
	cfg := buttonConfig{
		pin:    s.GetInt(sButtonPin),
		pullup: s.GetBool(sButtonPullup),
	}
	if k := s.GetString(sButtonKey); k != "" {
		cfg.key = k[0]
	}
	return cfg
}

// check the press state, and return the press state
type pressState struct {
	pressed bool      // is it pressed?
	start   time.Time // when did this state start?
	changed bool      // did it change on the last read?
}

// pressedLevel is the pin level that means "pressed"
func (cfg buttonConfig) pressedLevel() rpio.State {
	if cfg.pullup {
		return rpio.Low
	}
	return rpio.High
}

func checkButton(rt runtimeConfig, cfg buttonConfig, prev pressState) (pressState, error) {
	res, err := rt.buttons.readButton(rt)
	if err != nil {
		return prev, err
	}

	down := res == cfg.pressedLevel()
	if down == prev.pressed {
		prev.changed = false
		return prev, nil
	}
	return pressState{pressed: down, start: rt.clock.Now(), changed: true}, nil
}

// runWatchButtons polls the button and calls pressed on every press.
func runWatchButtons(rt runtimeConfig, pressed func() error) {
	logger := &ThreadLogger{name: "Buttons"}
	defer func() {
		logger.Println("exiting runWatchButtons")
	}()

	cfg := buttonConfigFrom(rt.settings)
	if err := rt.buttons.initButtons(rt.settings); err != nil {
		logger.Println(err.Error())
		return
	}
	defer rt.buttons.closeButtons()

	if err := rt.buttons.setupButton(cfg, rt); err != nil {
		logger.Println(err.Error())
		return
	}

	state := pressState{start: rt.clock.Now()}
	for {
		select {
		case <-rt.comms.quit:
			return
		default:
		}

		next, err := checkButton(rt, cfg, state)
		if err != nil {
			// the keyboard sim quits this way, take everything down
			logger.Printf("quit from runWatchButtons: %v", err)
			rt.comms.stop()
			return
		}
		if next.changed {
			if next.pressed {
				logger.Println("button pressed")
				if err := pressed(); err != nil {
					logger.Printf("button action: %v", err)
				}
			} else {
				logger.Printf("button released after %v", next.start.Sub(state.start))
			}
		}
		state = next

		rt.clock.Sleep(dButtonSleep)
	}
}
