package strip

import (
	"bytes"
	"image/png"
	"net/http/httptest"
	"testing"

	"dscheirer.com/segtimer/rgb"
	"gotest.tools/assert"
)

func TestRegionsBufferUntilRender(t *testing.T) {
	ld := &LogDriver{DisableLog: true}
	s := New(10, ld)

	s.SetRegion(2, 3, rgb.Red)
	assert.Equal(t, ld.Frames(), 0)
	assert.Equal(t, s.Pixels()[3], rgb.Red)

	assert.NilError(t, s.Render())
	assert.Equal(t, ld.Frames(), 1)
	frame := ld.Last()
	assert.Equal(t, frame[1], rgb.Black)
	assert.Equal(t, frame[2], rgb.Red)
	assert.Equal(t, frame[4], rgb.Red)
	assert.Equal(t, frame[5], rgb.Black)

	s.ClearRegion(3, 1)
	assert.NilError(t, s.Render())
	assert.Equal(t, ld.Last()[3], rgb.Black)
	assert.Equal(t, ld.Last()[4], rgb.Red)
}

func TestRegionsClip(t *testing.T) {
	s := New(4, &LogDriver{DisableLog: true})
	s.SetRegion(-2, 3, rgb.Blue)
	s.SetRegion(3, 10, rgb.Green)
	assert.DeepEqual(t, s.Pixels(), []rgb.Color{rgb.Blue, rgb.Black, rgb.Black, rgb.Green})
}

func TestRenderError(t *testing.T) {
	ld := &LogDriver{DisableLog: true}
	s := New(4, ld)
	ld.FailNext(1)
	s.SetRegion(0, 4, rgb.White)
	assert.ErrorContains(t, s.Render(), "write frame")
	assert.Equal(t, ld.Frames(), 0)
	// the buffer survives, the next render sends it
	assert.NilError(t, s.Render())
	assert.Equal(t, ld.Last()[0], rgb.White)
}

func TestCloseBlanks(t *testing.T) {
	ld := &LogDriver{DisableLog: true}
	s := New(3, ld)
	s.SetRegion(0, 3, rgb.White)
	assert.NilError(t, s.Render())
	assert.NilError(t, s.Close())
	assert.DeepEqual(t, ld.Last(), []rgb.Color{rgb.Black, rgb.Black, rgb.Black})
	assert.Assert(t, ld.Closed())
}

func TestPreview(t *testing.T) {
	s := New(3, &LogDriver{DisableLog: true})
	s.SetRegion(1, 1, rgb.Red)
	assert.NilError(t, s.Render())

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest("GET", "/display.png", nil))
	assert.Equal(t, rec.Code, 200)
	assert.Equal(t, rec.Header().Get("content-type"), "image/png")

	img, err := png.Decode(bytes.NewReader(rec.Body.Bytes()))
	assert.NilError(t, err)
	r, g, b, _ := img.At(previewScale+previewBorder+1, 1).RGBA()
	assert.Equal(t, r>>8, uint32(255))
	assert.Equal(t, g, uint32(0))
	assert.Equal(t, b, uint32(0))
	r, _, _, _ = img.At(1, 1).RGBA()
	assert.Equal(t, r, uint32(0))
}
