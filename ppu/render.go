package ppu

// Tick renders one dot and advances the dot and scanline counters.
func (p *PPU) Tick() Pixel {
	visibleLine := p.scanline < Height
	preRender := p.scanline == p.preLine

	if visibleLine || preRender {
		if preRender && p.dot == 1 {
			p.status.SetFlag(StatusVerticalBlank, false)
			p.status.SetFlag(StatusSpriteZeroHit, false)
			p.status.SetFlag(StatusSpriteOverflow, false)
			p.spriteCount = 0
			for i := 0; i < 8; i++ {
				p.spriteShifterPatternLo[i] = 0
				p.spriteShifterPatternHi[i] = 0
			}
		}

		if (p.dot >= 2 && p.dot < 258) || (p.dot >= 321 && p.dot < 338) {
			p.updateShifters()
			switch (p.dot - 1) % 8 {
			case 0:
				p.loadBackgroundShifters()
				p.bgNextTileID = p.read(0x2000 | uint16(p.vramAddr)&0x0FFF)
			case 2:
				v := p.vramAddr
				p.bgNextTileAttrib = p.read(0x23C0 |
					v.Get(LoopyNametableY)<<11 |
					v.Get(LoopyNametableX)<<10 |
					(v.Get(LoopyCoarseY)>>2)<<3 |
					v.Get(LoopyCoarseX)>>2)
				if v.Get(LoopyCoarseY)&0x02 != 0 {
					p.bgNextTileAttrib >>= 4
				}
				if v.Get(LoopyCoarseX)&0x02 != 0 {
					p.bgNextTileAttrib >>= 2
				}
				p.bgNextTileAttrib &= 0x03
			case 4:
				p.bgNextTileLsb = p.read(p.backgroundRow())
			case 6:
				p.bgNextTileMsb = p.read(p.backgroundRow() + 8)
			case 7:
				p.incrementScrollX()
			}
		}
		if p.dot == 256 {
			p.incrementScrollY()
		}
		if p.dot == 257 {
			p.loadBackgroundShifters()
			p.transferAddressX()
		}
		if p.dot == 338 || p.dot == 340 {
			p.bgNextTileID = p.read(0x2000 | uint16(p.vramAddr)&0x0FFF)
		}
		if preRender && p.dot >= 280 && p.dot < 305 {
			p.transferAddressY()
		}

		if visibleLine && p.dot == 257 {
			p.evaluateSprites()
		}
		if visibleLine && p.dot == 340 {
			p.fetchSprites()
		}

		if p.dot == scanlineClockDot && p.rendering() && p.cart != nil {
			p.cart.Scanline()
		}
	}

	if p.scanline == vblankLine && p.dot == 1 {
		p.status.SetFlag(StatusVerticalBlank, true)
		p.frame++
	}

	pixel := Pixel{X: p.dot - 1, Y: p.scanline}
	if visibleLine && p.dot >= 1 && p.dot <= Width {
		pixel.Index = p.compose(pixel.X)
		pixel.Visible = true
	}

	p.advance(preRender)
	return pixel
}

func (p *PPU) advance(preRender bool) {
	p.dot++
	if preRender && p.dot == DotsPerLine-1 && p.odd && p.timing.OddFrameSkip && p.rendering() {
		p.dot = DotsPerLine
	}
	if p.dot >= DotsPerLine {
		p.dot = 0
		p.scanline++
		if p.scanline > p.preLine {
			p.scanline = 0
			p.odd = !p.odd
		}
	}
}

func (p *PPU) backgroundRow() uint16 {
	return p.control.Get(CtrlPatternBg)<<12 + uint16(p.bgNextTileID)<<4 + p.vramAddr.Get(LoopyFineY)
}

func (p *PPU) incrementScrollX() {
	if !p.rendering() {
		return
	}
	if p.vramAddr.Get(LoopyCoarseX) == 31 {
		p.vramAddr.Set(LoopyCoarseX, 0)
		p.vramAddr.Set(LoopyNametableX, ^p.vramAddr.Get(LoopyNametableX))
		return
	}
	p.vramAddr.Set(LoopyCoarseX, p.vramAddr.Get(LoopyCoarseX)+1)
}

func (p *PPU) incrementScrollY() {
	if !p.rendering() {
		return
	}
	if p.vramAddr.Get(LoopyFineY) < 7 {
		p.vramAddr.Set(LoopyFineY, p.vramAddr.Get(LoopyFineY)+1)
		return
	}
	p.vramAddr.Set(LoopyFineY, 0)

	switch p.vramAddr.Get(LoopyCoarseY) {
	case 29:
		p.vramAddr.Set(LoopyCoarseY, 0)
		p.vramAddr.Set(LoopyNametableY, ^p.vramAddr.Get(LoopyNametableY))
	case 31:
		// pointer was in attribute memory, wrap within the nametable
		p.vramAddr.Set(LoopyCoarseY, 0)
	default:
		p.vramAddr.Set(LoopyCoarseY, p.vramAddr.Get(LoopyCoarseY)+1)
	}
}

func (p *PPU) transferAddressX() {
	if !p.rendering() {
		return
	}
	p.vramAddr.Set(LoopyNametableX, p.tramAddr.Get(LoopyNametableX))
	p.vramAddr.Set(LoopyCoarseX, p.tramAddr.Get(LoopyCoarseX))
}

func (p *PPU) transferAddressY() {
	if !p.rendering() {
		return
	}
	p.vramAddr.Set(LoopyFineY, p.tramAddr.Get(LoopyFineY))
	p.vramAddr.Set(LoopyNametableY, p.tramAddr.Get(LoopyNametableY))
	p.vramAddr.Set(LoopyCoarseY, p.tramAddr.Get(LoopyCoarseY))
}

func (p *PPU) loadBackgroundShifters() {
	p.bgShifterPatternLo = (p.bgShifterPatternLo & 0xFF00) | uint16(p.bgNextTileLsb)
	p.bgShifterPatternHi = (p.bgShifterPatternHi & 0xFF00) | uint16(p.bgNextTileMsb)

	acc := uint16(0x00)
	if p.bgNextTileAttrib&0b01 != 0 {
		acc = 0xFF
	}
	p.bgShifterAttribLo = (p.bgShifterAttribLo & 0xFF00) | acc
	acc = 0x00
	if p.bgNextTileAttrib&0b10 != 0 {
		acc = 0xFF
	}
	p.bgShifterAttribHi = (p.bgShifterAttribHi & 0xFF00) | acc
}

func (p *PPU) updateShifters() {
	if p.mask.Flag(MaskBackground) {
		p.bgShifterPatternLo <<= 1
		p.bgShifterPatternHi <<= 1
		p.bgShifterAttribLo <<= 1
		p.bgShifterAttribHi <<= 1
	}

	if p.mask.Flag(MaskSprites) && p.dot >= 1 && p.dot < 258 {
		for i := 0; i < p.spriteCount; i++ {
			if p.spriteScanline[i].x > 0 {
				p.spriteScanline[i].x--
			} else {
				p.spriteShifterPatternLo[i] <<= 1
				p.spriteShifterPatternHi[i] <<= 1
			}
		}
	}
}

func (p *PPU) spriteHeight() int {
	if p.control.Flag(CtrlSpriteSize) {
		return 16
	}
	return 8
}

// evaluateSprites selects the first eight sprites on the next scanline.
func (p *PPU) evaluateSprites() {
	for i := range p.spriteScanline {
		p.spriteScanline[i] = spriteEntry{0xFF, 0xFF, 0xFF, 0xFF}
		p.spriteShifterPatternLo[i] = 0
		p.spriteShifterPatternHi[i] = 0
	}
	p.spriteCount = 0
	p.spriteZeroHitPossible = false

	height := p.spriteHeight()
	found := 0
	for entry := 0; entry < 64; entry++ {
		s := spriteEntry{
			y:         p.oam[entry*4],
			id:        p.oam[entry*4+1],
			attribute: p.oam[entry*4+2],
			x:         p.oam[entry*4+3],
		}
		diff := p.scanline - int(s.y)
		if diff < 0 || diff >= height {
			continue
		}
		found++
		if p.spriteCount < 8 {
			if entry == 0 {
				p.spriteZeroHitPossible = true
			}
			p.spriteScanline[p.spriteCount] = s
			p.spriteCount++
		}
	}
	if found > 8 {
		p.status.SetFlag(StatusSpriteOverflow, true)
	}
}

func (p *PPU) fetchSprites() {
	for i := 0; i < p.spriteCount; i++ {
		s := p.spriteScanline[i]
		row := uint16(p.scanline - int(s.y))

		var addr uint16
		if p.spriteHeight() == 8 {
			if s.attribute&0x80 != 0 {
				row = 7 - row
			}
			addr = p.control.Get(CtrlPatternSprite)<<12 | uint16(s.id)<<4 | row
		} else {
			if s.attribute&0x80 != 0 {
				row = 15 - row
			}
			tile := uint16(s.id & 0xFE)
			if row >= 8 {
				tile++
				row -= 8
			}
			addr = uint16(s.id&0x01)<<12 | tile<<4 | row
		}

		lo := p.read(addr)
		hi := p.read(addr + 8)
		if s.attribute&0x40 != 0 {
			lo = flipByte(lo)
			hi = flipByte(hi)
		}
		p.spriteShifterPatternLo[i] = lo
		p.spriteShifterPatternHi[i] = hi
	}
}

func flipByte(b uint8) uint8 {
	b = ((b & 0xF0) >> 4) | ((b & 0x0F) << 4)
	b = ((b & 0xCC) >> 2) | ((b & 0x33) << 2)
	b = ((b & 0xAA) >> 1) | ((b & 0x55) << 1)
	return b
}

// compose mixes the background and sprite pixels at column x and returns
// the resulting colour index.
func (p *PPU) compose(x int) uint8 {
	bgPixel := uint8(0)
	bgPalette := uint8(0)
	if p.mask.Flag(MaskBackground) && (x >= 8 || p.mask.Flag(MaskBgLeft)) {
		bitMux := uint16(0x8000) >> p.fineX
		var p0, p1, pal0, pal1 uint8
		if p.bgShifterPatternLo&bitMux != 0 {
			p0 = 1
		}
		if p.bgShifterPatternHi&bitMux != 0 {
			p1 = 1
		}
		if p.bgShifterAttribLo&bitMux != 0 {
			pal0 = 1
		}
		if p.bgShifterAttribHi&bitMux != 0 {
			pal1 = 1
		}
		bgPixel = p1<<1 | p0
		bgPalette = pal1<<1 | pal0
	}

	fgPixel := uint8(0)
	fgPalette := uint8(0)
	fgPriority := false
	p.spriteZeroBeingRendered = false
	if p.mask.Flag(MaskSprites) && (x >= 8 || p.mask.Flag(MaskSpritesLeft)) {
		for i := 0; i < p.spriteCount; i++ {
			s := p.spriteScanline[i]
			if s.x != 0 {
				continue
			}
			var lo, hi uint8
			if p.spriteShifterPatternLo[i]&0x80 != 0 {
				lo = 1
			}
			if p.spriteShifterPatternHi[i]&0x80 != 0 {
				hi = 1
			}
			fgPixel = hi<<1 | lo
			fgPalette = (s.attribute & 0x03) + 0x04
			fgPriority = s.attribute&0x20 == 0
			if fgPixel != 0 {
				if i == 0 {
					p.spriteZeroBeingRendered = true
				}
				break
			}
		}
	}

	pixel, palette := uint8(0), uint8(0)
	switch {
	case bgPixel == 0 && fgPixel == 0:
	case bgPixel == 0:
		pixel, palette = fgPixel, fgPalette
	case fgPixel == 0:
		pixel, palette = bgPixel, bgPalette
	default:
		if fgPriority {
			pixel, palette = fgPixel, fgPalette
		} else {
			pixel, palette = bgPixel, bgPalette
		}
		if p.spriteZeroHitPossible && p.spriteZeroBeingRendered && x != 255 {
			p.status.SetFlag(StatusSpriteZeroHit, true)
		}
	}
	return p.colourIndex(palette, pixel)
}
