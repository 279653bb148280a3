// Package console wires the processor, picture unit, cartridge and
// controllers together and runs them in lockstep.
package console

import (
	"fmt"

	"nes-emu/backup"
	"nes-emu/cpu"
	"nes-emu/joypad"
	"nes-emu/logger"
	"nes-emu/mapper"
	"nes-emu/ppu"
	"nes-emu/rational"
	"nes-emu/rom"
)

const (
	DefaultSampleRate = 44100

	dmaCycles = 513
)

// Display receives the palette index of every visible pixel. EndFrame is
// called when the picture unit enters vertical blank.
type Display interface {
	SetPixel(x, y int, index uint8)
	EndFrame()
}

// Audio receives samples at the configured sample rate.
type Audio interface {
	Sample(v float32)
}

type Console struct {
	image *rom.Image
	cart  *mapper.Cartridge

	cpu    *cpu.CPU
	ppu    *ppu.PPU
	joypad *joypad.Joypad
	bus    *Bus

	timing     Timing
	display    Display
	audio      Audio
	store      backup.Store
	sampleRate int

	dotsPerCycle    rational.Rational
	cyclesPerSample rational.Rational
	dots            rational.Rational
	samples         rational.Rational
	frame           uint64
}

// New builds a console around img. The TV system comes from the image
// header unless WithTiming overrides it.
func New(img *rom.Image, options ...Option) (*Console, error) {
	cart, err := mapper.New(img)
	if err != nil {
		return nil, fmt.Errorf("console: %w", err)
	}

	c := &Console{
		image:      img,
		cart:       cart,
		joypad:     joypad.New(),
		timing:     timingFor(img.TV),
		sampleRate: DefaultSampleRate,
	}
	if err := c.setOptions(options...); err != nil {
		return nil, err
	}

	c.ppu = ppu.New(c.timing.Video)
	c.ppu.ConnectCartridge(cart)
	c.bus = newBus(c.ppu, c.joypad, cart.Prg())
	c.cpu = cpu.New(c.bus, lines{c})

	c.dotsPerCycle = c.timing.DotsPerCycle()
	c.cyclesPerSample = c.timing.CyclesPerSample(c.sampleRate)

	logger.Logf("console", "mapper %d, %s, %s", cart.ID(), cart.Mirroring(), c.timing)

	if ram := cart.PersistentRam(); ram != nil && c.store != nil {
		if err := backup.Restore(c.store, c.backupKey(), ram); err != nil {
			return nil, fmt.Errorf("console: %w", err)
		}
	}

	return c, nil
}

// lines presents the interrupt outputs of the picture unit and cartridge
// to the processor.
type lines struct {
	c *Console
}

func (l lines) NMI() bool {
	return l.c.ppu.NMI()
}

func (l lines) IRQ() bool {
	return l.c.cart.IRQ()
}

func (c *Console) backupKey() string {
	return backup.Key(c.image.Prg, c.image.Chr)
}

// Reset is the console's reset button. Work ram, cartridge ram and video
// ram keep their contents.
func (c *Console) Reset() {
	c.cart.Reset()
	c.ppu.Reset()
	c.joypad.Reset()
	c.cpu.Reset()
	c.dots = rational.Rational{}
	c.samples = rational.Rational{}
	logger.Log("console", "reset")
}

// Step runs one processor instruction, or one interrupt entry, and the
// picture unit dots that elapse during it. It returns the CPU cycles
// consumed, including any OAM DMA the instruction started.
func (c *Console) Step() (int, error) {
	cycles, err := c.cpu.Step()
	if err != nil {
		return 0, err
	}

	if c.bus.takeDMA() {
		stall := dmaCycles
		if c.cpu.Cycles()%2 == 1 {
			stall++
		}
		c.cpu.Stall(stall)
		cycles += stall
	}

	c.clock(cycles)
	return cycles, nil
}

func (c *Console) clock(cycles int) {
	elapsed := rational.Int(int64(cycles))

	c.dots = c.dots.Add(c.dotsPerCycle.Mul(elapsed))
	n := c.dots.Floor()
	c.dots = c.dots.Sub(rational.Int(n))
	for ; n > 0; n-- {
		px := c.ppu.Tick()
		if c.display == nil {
			continue
		}
		if px.Visible {
			c.display.SetPixel(px.X, px.Y, px.Index)
		}
		if f := c.ppu.Frame(); f != c.frame {
			c.frame = f
			c.display.EndFrame()
		}
	}

	if c.audio == nil {
		return
	}
	c.samples = c.samples.Add(elapsed)
	for c.samples.Cmp(c.cyclesPerSample) >= 0 {
		c.samples = c.samples.Sub(c.cyclesPerSample)
		c.audio.Sample(0)
	}
}

// RunFrame steps until the picture unit next enters vertical blank.
func (c *Console) RunFrame() error {
	start := c.ppu.Frame()
	for c.ppu.Frame() == start {
		if _, err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// SaveBackup writes battery ram to the backup store. It does nothing for
// cartridges without a battery or consoles without a store.
func (c *Console) SaveBackup() error {
	ram := c.cart.PersistentRam()
	if ram == nil || c.store == nil {
		return nil
	}
	if err := backup.Persist(c.store, c.backupKey(), ram); err != nil {
		return fmt.Errorf("console: %w", err)
	}
	return nil
}

// Frame is the number of completed frames.
func (c *Console) Frame() uint64 {
	return c.ppu.Frame()
}

// Cycles is the number of CPU cycles since power on.
func (c *Console) Cycles() uint64 {
	return c.cpu.Cycles()
}

func (c *Console) CPU() *cpu.CPU {
	return c.cpu
}

func (c *Console) PPU() *ppu.PPU {
	return c.ppu
}

func (c *Console) Bus() *Bus {
	return c.bus
}

func (c *Console) Mapper() mapper.Mapper {
	return c.cart
}

func (c *Console) Joypad() *joypad.Joypad {
	return c.joypad
}

func (c *Console) Timing() Timing {
	return c.timing
}

func (c *Console) Image() *rom.Image {
	return c.image
}
