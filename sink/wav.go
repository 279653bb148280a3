package sink

import (
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const bitDepth = 16

// WAV buffers mono samples in memory until saved.
type WAV struct {
	sampleRate int
	samples    []int
}

func NewWAV(sampleRate int) *WAV {
	return &WAV{sampleRate: sampleRate}
}

// Sample takes a value in [-1, 1]; anything outside is clipped.
func (w *WAV) Sample(v float32) {
	switch {
	case v > 1:
		v = 1
	case v < -1:
		v = -1
	}
	w.samples = append(w.samples, int(v*32767))
}

func (w *WAV) Len() int {
	return len(w.samples)
}

// Encode writes the buffered samples as 16 bit PCM.
func (w *WAV) Encode(ws io.WriteSeeker) error {
	enc := wav.NewEncoder(ws, w.sampleRate, bitDepth, 1, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  w.sampleRate,
		},
		Data:           w.samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

func (w *WAV) Save(path string) (rerr error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()
	return w.Encode(f)
}
