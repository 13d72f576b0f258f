package main

import (
	"dscheirer.com/segtimer/rgb"
	"dscheirer.com/segtimer/strip"
)

const bootDelta = 5

// bootFrames is the startup sweep: red up, red into green, green into blue,
// blue into red.
func bootFrames() []rgb.Color {
	steps := 255 / bootDelta
	frames := make([]rgb.Color, 0, 4*steps)
	var ch [3]int
	for phase := 0; phase < 4; phase++ {
		for i := 0; i < steps; i++ {
			if phase < 3 {
				if phase > 0 {
					ch[phase-1] -= bootDelta
				}
				ch[phase] += bootDelta
			} else {
				ch[0] += bootDelta
				ch[2] -= bootDelta
			}
			frames = append(frames, rgb.Color{R: uint8(ch[0]), G: uint8(ch[1]), B: uint8(ch[2])})
		}
	}
	return frames
}

// runBoot plays the sweep over the whole strip and blanks it.  It has to
// finish before the controller starts drawing.
func runBoot(rt runtimeConfig, s strip.Surface) {
	logger := &ThreadLogger{name: "Boot"}
	if rt.settings.GetBool(sSkipBoot) {
		logger.Println("skipping boot animation")
		return
	}

	step := rt.settings.GetDuration(sBootStep)
	for _, c := range bootFrames() {
		select {
		case <-rt.comms.quit:
			s.ClearRegion(0, s.Len())
			if err := s.Render(); err != nil {
				logger.Printf("boot clear: %v", err)
			}
			return
		default:
		}
		s.SetRegion(0, s.Len(), c)
		if err := s.Render(); err != nil {
			logger.Printf("boot frame: %v", err)
		}
		rt.clock.Sleep(step)
	}

	rt.clock.Sleep(rt.settings.GetDuration(sBootDwell))
	s.ClearRegion(0, s.Len())
	if err := s.Render(); err != nil {
		logger.Printf("boot clear: %v", err)
	}
	logger.Println("boot animation done")
}
