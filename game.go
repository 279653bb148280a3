package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"nes-emu/console"
	"nes-emu/cpu"
	"nes-emu/joypad"
	"nes-emu/logger"
	"nes-emu/palette"
	"nes-emu/ppu"
)

const (
	overlayWidth  = 400
	overlayHeight = 720
	lineSize      = 24
	codeLines     = 15
	patternSize   = 128
)

var (
	WHITE = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	GREEN = color.RGBA{G: 0xFF, A: 0xFF}
	RED   = color.RGBA{R: 0xFF, A: 0xFF}
	CYAN  = color.RGBA{G: 0xFF, B: 0xFF, A: 0xFF}
)

var controllerKeys = map[ebiten.Key]joypad.Button{
	ebiten.KeyX:     joypad.A,
	ebiten.KeyZ:     joypad.B,
	ebiten.KeyA:     joypad.Select,
	ebiten.KeyS:     joypad.Start,
	ebiten.KeyUp:    joypad.Up,
	ebiten.KeyDown:  joypad.Down,
	ebiten.KeyLeft:  joypad.Left,
	ebiten.KeyRight: joypad.Right,
}

// keyboard is the controller in port 1.
type keyboard struct {
	state joypad.State
}

func (k *keyboard) Buttons() uint8 {
	return k.state.Buttons()
}

// frameBuffer converts palette indices to RGBA as pixels arrive.
type frameBuffer struct {
	pixels []byte
}

func newFrameBuffer() *frameBuffer {
	return &frameBuffer{pixels: make([]byte, ppu.Width*ppu.Height*4)}
}

func (f *frameBuffer) SetPixel(x, y int, index uint8) {
	c := palette.Colour(index)
	i := (y*ppu.Width + x) * 4
	f.pixels[i] = c.R
	f.pixels[i+1] = c.G
	f.pixels[i+2] = c.B
	f.pixels[i+3] = c.A
}

func (f *frameBuffer) EndFrame() {}

type Game struct {
	nes             *console.Console
	keyboard        *keyboard
	frame           *frameBuffer
	scale           int
	overlay         bool
	defaultFont     font.Face
	emulationRun    bool
	selectedPalette uint8
	gameScreen      *ebiten.Image
	patterns        [2]*ebiten.Image
}

func (g *Game) Update() error {
	state := joypad.State(0)
	for _, p := range inpututil.AppendPressedKeys(nil) {
		if b, ok := controllerKeys[p]; ok {
			state = state.Press(b)
		}
	}
	g.keyboard.state = state

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.emulationRun = !g.emulationRun
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.nes.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.selectedPalette = (g.selectedPalette + 1) & 0x07
	}

	switch {
	case g.emulationRun:
		return g.nes.RunFrame()
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		return g.nes.RunFrame()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		_, err := g.nes.Step()
		return err
	}
	return nil
}

func (g *Game) getDefaultFont() font.Face {
	if g.defaultFont != nil {
		return g.defaultFont
	}
	tt, err := opentype.Parse(fonts.MPlus1pRegular_ttf)
	exitOnError(err)
	const dpi = 72 * 2
	face, err := opentype.NewFace(tt, &opentype.FaceOptions{
		Size:    8,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
	exitOnError(err)
	g.defaultFont = face
	return g.defaultFont
}

func (g *Game) DrawString(screen *ebiten.Image, x int, y int, str string, clr color.Color) {
	text.Draw(screen, str, g.getDefaultFont(), x, y, clr)
}

func (g *Game) DrawCpu(screen *ebiten.Image, x int, y int) {
	c := g.nes.CPU()
	g.DrawString(screen, x, y, "STATUS:", WHITE)
	flags := []struct {
		name string
		flag cpu.Flags
	}{
		{"N", cpu.N}, {"V", cpu.V}, {"U", cpu.U}, {"B", cpu.B},
		{"D", cpu.D}, {"I", cpu.I}, {"Z", cpu.Z}, {"C", cpu.C},
	}
	for i, f := range flags {
		clr := RED
		if c.P.Has(f.flag) {
			clr = GREEN
		}
		g.DrawString(screen, x+90+i*14, y, f.name, clr)
	}

	scanline, dot := g.nes.PPU().Position()
	g.DrawString(screen, x, y+lineSize, fmt.Sprintf("PC: $%04X", c.PC), WHITE)
	g.DrawString(screen, x, y+lineSize*2, fmt.Sprintf("A: $%02X  X: $%02X  Y: $%02X", c.A, c.X, c.Y), WHITE)
	g.DrawString(screen, x, y+lineSize*3, fmt.Sprintf("Stack P: $%02X", c.S), WHITE)
	g.DrawString(screen, x, y+lineSize*4, fmt.Sprintf("Cycles: %d", c.Cycles()), WHITE)
	g.DrawString(screen, x, y+lineSize*5, fmt.Sprintf("Scanline: %d  Dot: %d", scanline, dot), WHITE)
}

func (g *Game) DrawCode(screen *ebiten.Image, x int, y int, nLines int) {
	lines := cpu.Disassemble(g.nes.Bus().Inspect(), g.nes.CPU().PC, nLines)
	for i, line := range lines {
		clr := WHITE
		if i == 0 {
			clr = CYAN
		}
		g.DrawString(screen, x, y+i*lineSize, line.String(), clr)
	}
}

func (g *Game) DrawPatternTables(screen *ebiten.Image, x, y float64) {
	buf := make([]byte, patternSize*patternSize*4)
	for i := range g.patterns {
		for j, index := range g.nes.PPU().PatternTable(i, g.selectedPalette) {
			c := palette.Colour(index)
			buf[j*4], buf[j*4+1], buf[j*4+2], buf[j*4+3] = c.R, c.G, c.B, c.A
		}
		g.patterns[i].WritePixels(buf)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x+float64(i*(patternSize+8)), y)
		screen.DrawImage(g.patterns[i], op)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.gameScreen.WritePixels(g.frame.pixels)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.gameScreen, op)

	if !g.overlay {
		return
	}
	x := ppu.Width*g.scale + 10
	g.DrawCpu(screen, x, 30)
	g.DrawCode(screen, x, 30+lineSize*7, codeLines)
	g.DrawPatternTables(screen, float64(x), float64(30+lineSize*(8+codeLines)))
}

func (g *Game) Layout(outsideWidth int, outsideHeight int) (int, int) {
	width, height := ppu.Width*g.scale, ppu.Height*g.scale
	if g.overlay {
		width += overlayWidth
		if height < overlayHeight {
			height = overlayHeight
		}
	}
	return width, height
}

func runWindow(a *app, path string) error {
	kb := &keyboard{}
	frame := newFrameBuffer()
	nes, err := a.load(path,
		console.WithDisplay(frame),
		console.WithController(0, kb),
		console.WithSampleRate(a.settings.SampleRate),
	)
	if err != nil {
		return err
	}

	g := &Game{
		nes:          nes,
		keyboard:     kb,
		frame:        frame,
		scale:        a.settings.Scale,
		overlay:      a.settings.Overlay,
		emulationRun: true,
		gameScreen:   ebiten.NewImage(ppu.Width, ppu.Height),
		patterns: [2]*ebiten.Image{
			ebiten.NewImage(patternSize, patternSize),
			ebiten.NewImage(patternSize, patternSize),
		},
	}
	if g.scale < 1 {
		g.scale = 1
	}

	ebiten.SetWindowSize(g.Layout(0, 0))
	ebiten.SetWindowTitle(fmt.Sprintf("nes-emu - %s", path))
	ebiten.SetTPS(ebiten.DefaultTPS)
	logger.Logf("window", "running %s at scale %d", path, g.scale)

	runErr := ebiten.RunGame(g)
	if err := nes.SaveBackup(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
