package console

import (
	"fmt"

	"nes-emu/backup"
	"nes-emu/joypad"
)

// Option configures a Console at construction.
type Option func(c *Console) error

func (c *Console) setOptions(options ...Option) error {
	for i, option := range options {
		if err := option(c); err != nil {
			return fmt.Errorf("console: option %d: %w", i, err)
		}
	}
	return nil
}

// WithDisplay sends every visible pixel to d.
func WithDisplay(d Display) Option {
	return func(c *Console) error {
		c.display = d
		return nil
	}
}

// WithAudio sends samples to a at the configured sample rate.
func WithAudio(a Audio) Option {
	return func(c *Console) error {
		c.audio = a
		return nil
	}
}

// WithController connects src to joypad port 0 or 1.
func WithController(port int, src joypad.Source) Option {
	return func(c *Console) error {
		if port != 0 && port != 1 {
			return fmt.Errorf("no controller port %d", port)
		}
		c.joypad.Connect(port, src)
		return nil
	}
}

// WithBackup keeps battery ram in store.
func WithBackup(store backup.Store) Option {
	return func(c *Console) error {
		c.store = store
		return nil
	}
}

// WithSampleRate sets the audio sample rate in Hz.
func WithSampleRate(hz int) Option {
	return func(c *Console) error {
		if hz <= 0 {
			return fmt.Errorf("invalid sample rate %d", hz)
		}
		c.sampleRate = hz
		return nil
	}
}

// WithTiming overrides the TV system from the image header.
func WithTiming(t Timing) Option {
	return func(c *Console) error {
		c.timing = t
		return nil
	}
}
