package sink

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nes-emu/palette"
)

func TestPNG(t *testing.T) {
	p := NewPNG()
	p.SetPixel(10, 20, 0x16)
	p.SetPixel(255, 239, 0x2A)
	p.SetPixel(256, 0, 0x30)
	p.SetPixel(-1, 0, 0x30)

	// nothing is saved until the frame is complete
	img := p.Image()
	assert.Equal(t, palette.Colour(0), color.RGBAModel.Convert(img.At(10, 20)))

	p.EndFrame()
	assert.Equal(t, 1, p.Frames())

	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, p.Save(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err = png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
	assert.Equal(t, palette.Colour(0x16), color.RGBAModel.Convert(img.At(10, 20)))
	assert.Equal(t, palette.Colour(0x2A), color.RGBAModel.Convert(img.At(255, 239)))
	assert.Equal(t, palette.Colour(0), color.RGBAModel.Convert(img.At(0, 0)))
}

func TestWAV(t *testing.T) {
	w := NewWAV(8000)
	for _, v := range []float32{0, 0.5, -0.5, 2, -2} {
		w.Sample(v)
	}
	assert.Equal(t, 5, w.Len())

	path := filepath.Join(t.TempDir(), "out.wav")
	require.NoError(t, w.Save(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)

	assert.Equal(t, uint32(8000), dec.SampleRate)
	assert.Equal(t, uint16(1), dec.NumChans)
	assert.Equal(t, uint16(16), dec.BitDepth)
	assert.Equal(t, []int{0, 16383, -16383, 32767, -32767}, buf.Data)
}
