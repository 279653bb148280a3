package console

import (
	"nes-emu/ppu"
	"nes-emu/rational"
	"nes-emu/rom"
)

// Timing is the clock tree of a TV system. Frequencies are in Hz.
type Timing struct {
	Name   string
	Master rational.Rational
	CPU    rational.Rational
	PPU    rational.Rational
	Video  ppu.Timing
}

var (
	NTSC = newTiming("NTSC", rational.New(236250000, 11), 12, 4, ppu.NTSC)
	PAL  = newTiming("PAL", rational.New(53203425, 2), 16, 5, ppu.PAL)
)

func newTiming(name string, master rational.Rational, cpuDiv, ppuDiv int64, video ppu.Timing) Timing {
	return Timing{
		Name:   name,
		Master: master,
		CPU:    master.Div(rational.Int(cpuDiv)),
		PPU:    master.Div(rational.Int(ppuDiv)),
		Video:  video,
	}
}

// DotsPerCycle is the number of picture unit dots per CPU cycle.
func (t Timing) DotsPerCycle() rational.Rational {
	return t.PPU.Div(t.CPU)
}

// CyclesPerSample is the number of CPU cycles between audio samples.
func (t Timing) CyclesPerSample(sampleRate int) rational.Rational {
	return t.CPU.Div(rational.Int(int64(sampleRate)))
}

func (t Timing) String() string {
	return t.Name
}

func timingFor(tv rom.TVSystem) Timing {
	if tv == rom.PAL {
		return PAL
	}
	return NTSC
}
