// Package joypad implements the two controller ports at $4016/$4017.
//
// https://wiki.nesdev.org/w/index.php?title=Standard_controller
package joypad

import "strings"

// Button is a bit position in a controller snapshot.
type Button uint8

const (
	A Button = iota
	B
	Select
	Start
	Up
	Down
	Left
	Right
)

var buttonNames = [...]string{"A", "B", "Select", "Start", "Up", "Down", "Left", "Right"}

func (b Button) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "?"
}

// Mask is the snapshot bit for b.
func (b Button) Mask() uint8 {
	return 1 << b
}

const (
	// openBus is the pattern of the undriven upper bits of a port read
	openBus = 0x40

	// Exhausted is returned once all eight buttons have been shifted out.
	Exhausted = openBus | 0x01
)

// Source supplies the live state of a controller, one bit per Button.
type Source interface {
	Buttons() uint8
}

// State is a Source holding a fixed snapshot.
type State uint8

func (s State) Buttons() uint8 {
	return uint8(s)
}

// Press returns s with the given buttons held.
func (s State) Press(buttons ...Button) State {
	for _, b := range buttons {
		s |= State(b.Mask())
	}
	return s
}

func (s State) String() string {
	var held []string
	for b := A; b <= Right; b++ {
		if uint8(s)&b.Mask() != 0 {
			held = append(held, b.String())
		}
	}
	if len(held) == 0 {
		return "none"
	}
	return strings.Join(held, "+")
}

type port struct {
	source Source
	shift  uint8
	count  uint8
}

func (p *port) latch() {
	p.shift = 0
	if p.source != nil {
		p.shift = p.source.Buttons()
	}
	p.count = 0
}

func (p *port) read(strobe bool) uint8 {
	if strobe {
		p.latch()
		return openBus | p.shift&0x01
	}
	if p.count >= 8 {
		return Exhausted
	}
	data := openBus | (p.shift>>p.count)&0x01
	p.count++
	return data
}

// Joypad is the pair of controller ports sharing one strobe line.
type Joypad struct {
	ports  [2]port
	strobe bool
}

func New() *Joypad {
	return &Joypad{}
}

// Connect attaches src to port 0 or 1. A nil source reads as no buttons.
func (j *Joypad) Connect(portIndex int, src Source) {
	j.ports[portIndex&1].source = src
}

// Write drives the strobe line from bit 0. While it is high both shift
// registers continuously reload from their sources.
func (j *Joypad) Write(data uint8) {
	j.strobe = data&0x01 != 0
	if j.strobe {
		j.ports[0].latch()
		j.ports[1].latch()
	}
}

func (j *Joypad) Read1() uint8 {
	return j.ports[0].read(j.strobe)
}

func (j *Joypad) Read2() uint8 {
	return j.ports[1].read(j.strobe)
}

// Reset drops the strobe and empties both shift registers.
func (j *Joypad) Reset() {
	j.strobe = false
	for i := range j.ports {
		j.ports[i].shift = 0
		j.ports[i].count = 8
	}
}
