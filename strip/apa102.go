package strip

import (
	"image/color"

	"dscheirer.com/segtimer/rgb"
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/apa102"
	"periph.io/x/host/v3"
)

// APA102 drives a strand of APA102 LEDs over SPI.
type APA102 struct {
	port spi.PortCloser
	leds *apa102.Dev
	buf  []color.NRGBA
}

// OpenAPA102 initializes periph.io and opens the strand on the named SPI port
// ("" picks the first one registered).
func OpenAPA102(port string, numPixels int, intensity uint8) (*APA102, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "init periph.io")
	}
	p, err := spireg.Open(port)
	if err != nil {
		return nil, errors.Wrapf(err, "open spi port %q", port)
	}
	opts := &apa102.Opts{
		NumPixels:        numPixels,
		Intensity:        intensity,
		Temperature:      apa102.NeutralTemp,
		DisableGlobalPWM: true,
	}
	leds, err := apa102.New(p, opts)
	if err != nil {
		p.Close()
		return nil, errors.Wrap(err, "init apa102")
	}
	return &APA102{port: p, leds: leds, buf: make([]color.NRGBA, numPixels)}, nil
}

// Write sends one frame down the strand.
func (a *APA102) Write(frame []rgb.Color) error {
	for i := range a.buf {
		if i < len(frame) {
			a.buf[i] = frame[i].NRGBA()
		} else {
			a.buf[i] = rgb.Black.NRGBA()
		}
	}
	if _, err := a.leds.Write(apa102.ToRGB(a.buf)); err != nil {
		return errors.Wrap(err, "write to apa102 strand")
	}
	return nil
}

// Close turns the strand off and releases the port.
func (a *APA102) Close() error {
	if err := a.leds.Halt(); err != nil {
		a.port.Close()
		return errors.Wrap(err, "halt apa102")
	}
	return a.port.Close()
}
