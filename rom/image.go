// Package rom reads iNES and NES 2.0 cartridge images into the fields the
// mapper is built from.
package rom

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	ErrBadMagic  = errors.New("rom: not an iNES image")
	ErrTruncated = errors.New("rom: image truncated")
	ErrBadSize   = errors.New("rom: bad rom size")
)

// maxRomSize bounds a single prg or chr rom declared by a header.
const maxRomSize = 64 << 20

// Magic is "NES" followed by MS-DOS end-of-file.
var Magic = [4]byte{'N', 'E', 'S', 0x1A}

const (
	PrgBankSize = 0x4000
	ChrBankSize = 0x2000
	TrainerSize = 512
)

type Mirroring uint8

const (
	Horizontal Mirroring = iota
	Vertical
	FourScreen
)

func (m Mirroring) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case FourScreen:
		return "four-screen"
	}
	return fmt.Sprintf("mirroring(%d)", uint8(m))
}

type TVSystem uint8

const (
	NTSC TVSystem = iota
	PAL
	Dual
	Dendy
)

func (tv TVSystem) String() string {
	switch tv {
	case NTSC:
		return "NTSC"
	case PAL:
		return "PAL"
	case Dual:
		return "dual"
	case Dendy:
		return "Dendy"
	}
	return fmt.Sprintf("tv(%d)", uint8(tv))
}

// Header is the 16 byte block at the start of every image.
type Header struct {
	Name         [4]byte
	PrgRomChunks uint8
	ChrRomChunks uint8
	Mapper1      uint8
	Mapper2      uint8
	Mapper3      uint8
	RomSizeHi    uint8
	PrgRamSize   uint8
	ChrRamSize   uint8
	TvSystem     uint8
	Unused       [3]byte
}

func (h *Header) nes2() bool {
	return h.Mapper2&0x0C == 0x08
}

// archaic images carry garbage ("DiskDude!") in bytes 7-15
func (h *Header) archaic() bool {
	switch h.Mapper2 & 0x0C {
	case 0x08:
		return false
	case 0x00:
		return h.TvSystem != 0 || h.Unused != [3]byte{}
	}
	return true
}

// Image is a parsed cartridge. Prg and Chr are never resized after parsing;
// an empty Chr means the board carries CHR RAM.
type Image struct {
	Magic     [4]byte
	Prg       []byte
	Chr       []byte
	Trainer   []byte
	Battery   bool
	Mapper    uint16
	Submapper uint8
	Mirroring Mirroring
	NES2      bool
	TV        TVSystem
}

// Parse reads an image from r.
func Parse(r io.Reader) (*Image, error) {
	header := Header{}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrTruncated, err)
	}
	if header.Name != Magic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadMagic, header.Name[:])
	}

	img := &Image{
		Magic:   header.Name,
		Battery: header.Mapper1&0x02 != 0,
		NES2:    header.nes2(),
	}

	img.Mirroring = Horizontal
	if header.Mapper1&0x01 != 0 {
		img.Mirroring = Vertical
	}
	if header.Mapper1&0x08 != 0 {
		img.Mirroring = FourScreen
	}

	prgSize := int(header.PrgRomChunks) * PrgBankSize
	chrSize := int(header.ChrRomChunks) * ChrBankSize

	switch {
	case img.NES2:
		img.Mapper = uint16(header.Mapper1>>4) | uint16(header.Mapper2&0xF0) | uint16(header.Mapper3&0x0F)<<8
		img.Submapper = header.Mapper3 >> 4
		prgSize = nes2RomSize(header.PrgRomChunks, header.RomSizeHi&0x0F, PrgBankSize)
		chrSize = nes2RomSize(header.ChrRomChunks, header.RomSizeHi>>4, ChrBankSize)
		switch header.TvSystem & 0x03 {
		case 0:
			img.TV = NTSC
		case 1:
			img.TV = PAL
		case 2:
			img.TV = Dual
		case 3:
			img.TV = Dendy
		}
	case header.archaic():
		img.Mapper = uint16(header.Mapper1 >> 4)
	default:
		img.Mapper = uint16(header.Mapper1>>4) | uint16(header.Mapper2&0xF0)
		// iNES 1.0 keeps the tv system in byte 9
		if header.RomSizeHi&0x01 != 0 {
			img.TV = PAL
		}
	}

	if prgSize < 0 || prgSize > maxRomSize || chrSize < 0 || chrSize > maxRomSize {
		return nil, fmt.Errorf("%w: prg %d chr %d", ErrBadSize, prgSize, chrSize)
	}

	if header.Mapper1&0x04 != 0 {
		img.Trainer = make([]byte, TrainerSize)
		if _, err := io.ReadFull(r, img.Trainer); err != nil {
			return nil, fmt.Errorf("%w: trainer: %v", ErrTruncated, err)
		}
	}

	img.Prg = make([]byte, prgSize)
	if _, err := io.ReadFull(r, img.Prg); err != nil {
		return nil, fmt.Errorf("%w: prg rom: %v", ErrTruncated, err)
	}

	img.Chr = make([]byte, chrSize)
	if _, err := io.ReadFull(r, img.Chr); err != nil {
		return nil, fmt.Errorf("%w: chr rom: %v", ErrTruncated, err)
	}

	return img, nil
}

// NES 2.0 sizes: an msb nibble of 0xF selects the exponent-multiplier form.
// An exponent past maxRomSize yields -1.
func nes2RomSize(lsb uint8, msb uint8, unit int) int {
	if msb == 0x0F {
		exponent := uint(lsb >> 2)
		if exponent > 26 {
			return -1
		}
		multiplier := int(lsb&0x03)*2 + 1
		return (1 << exponent) * multiplier
	}
	return (int(msb)<<8 | int(lsb)) * unit
}

// Load parses the image in the named file.
func Load(filename string) (*Image, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("rom: %w", err)
	}
	img, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return img, nil
}
