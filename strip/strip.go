// Package strip buffers colors for an addressable LED strand and flushes them
// to a Driver on Render.  The last rendered frame is kept for the web preview,
// so the daemon can be debugged without the hardware attached.
package strip

import (
	"image"
	"image/color"
	"image/png"
	"log"
	"net/http"
	"sync"

	"dscheirer.com/segtimer/rgb"
	"github.com/pkg/errors"
)

const (
	previewScale  = 16 // size of one LED in the preview
	previewBorder = 4  // gap between LEDs
)

// Surface is what the display units draw on.  SetRegion and ClearRegion only
// touch the buffer; nothing is visible until Render.
type Surface interface {
	Len() int
	SetRegion(start, count int, c rgb.Color)
	ClearRegion(start, count int)
	Render() error
}

// Driver pushes a whole frame to the LEDs.
type Driver interface {
	Write(frame []rgb.Color) error
	Close() error
}

// Strip is a Surface backed by a Driver.
type Strip struct {
	driver Driver

	mu     sync.Mutex
	pixels []rgb.Color // must hold mu

	previewMu sync.Mutex
	preview   *image.NRGBA // must hold previewMu
}

// New returns a blank strip of n LEDs.
func New(n int, d Driver) *Strip {
	s := &Strip{
		driver:  d,
		pixels:  make([]rgb.Color, n),
		preview: image.NewNRGBA(image.Rect(0, 0, n*(previewScale+previewBorder), previewScale+previewBorder)),
	}
	s.updatePreview(s.pixels)
	return s
}

// Len is the number of LEDs on the strip.
func (s *Strip) Len() int {
	return len(s.pixels)
}

// clip returns the part of [start, start+count) that is on the strip
func (s *Strip) clip(start, count int) (int, int) {
	end := start + count
	if start < 0 {
		start = 0
	}
	if end > len(s.pixels) {
		end = len(s.pixels)
	}
	return start, end
}

// SetRegion sets count LEDs from start to c.
func (s *Strip) SetRegion(start, count int, c rgb.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	from, to := s.clip(start, count)
	for i := from; i < to; i++ {
		s.pixels[i] = c
	}
}

// ClearRegion turns count LEDs from start off.
func (s *Strip) ClearRegion(start, count int) {
	s.SetRegion(start, count, rgb.Black)
}

// Pixels returns a copy of the buffered (not necessarily rendered) frame.
func (s *Strip) Pixels() []rgb.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]rgb.Color(nil), s.pixels...)
}

// Render flushes the buffer to the driver.
func (s *Strip) Render() error {
	frame := s.Pixels()
	if err := s.driver.Write(frame); err != nil {
		return errors.Wrap(err, "write frame")
	}
	s.updatePreview(frame)
	return nil
}

// Close blanks the LEDs and releases the driver.
func (s *Strip) Close() error {
	s.ClearRegion(0, s.Len())
	if err := s.Render(); err != nil {
		log.Printf("blank on close: %v", err)
	}
	return s.driver.Close()
}

func (s *Strip) updatePreview(frame []rgb.Color) {
	s.previewMu.Lock()
	defer s.previewMu.Unlock()
	bounds := s.preview.Bounds()
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			s.preview.SetNRGBA(x, y, color.NRGBA{A: 0xff})
		}
	}
	for i, c := range frame {
		x0 := i * (previewScale + previewBorder)
		for x := x0; x < x0+previewScale; x++ {
			for y := 0; y < previewScale; y++ {
				s.preview.SetNRGBA(x, y, c.NRGBA())
			}
		}
	}
}

// ServeHTTP serves the last rendered frame as a PNG.
func (s *Strip) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	w.Header().Add("content-type", "image/png")
	w.WriteHeader(http.StatusOK)
	s.previewMu.Lock()
	defer s.previewMu.Unlock()
	if err := png.Encode(w, s.preview); err != nil {
		log.Printf("encoding preview: %v", err)
	}
}
