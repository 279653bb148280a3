package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/cmd"

	"nes-emu/backup"
	"nes-emu/config"
	"nes-emu/console"
	"nes-emu/cpu"
	"nes-emu/logger"
	"nes-emu/memory"
	"nes-emu/rom"
	"nes-emu/sink"
)

const disasmLines = 20

type command struct {
	name        string
	brief       string
	usage       string
	description string
	run         func(a *app, args []string) error
}

type app struct {
	settings *config.Settings
	commands []*command
	tree     *cmd.Tree
}

func newApp(settings *config.Settings) *app {
	a := &app{settings: settings}
	a.commands = []*command{
		{
			name:        "help",
			brief:       "Display help for a command",
			usage:       "help [<command>]",
			description: "List the commands, or describe one of them.",
			run:         (*app).cmdHelp,
		},
		{
			name:        "info",
			brief:       "Print cartridge information",
			usage:       "info <rom>",
			description: "Print the header fields of a cartridge image and the SHA-1 of its PRG and CHR data.",
			run:         (*app).cmdInfo,
		},
		{
			name:        "disasm",
			brief:       "Disassemble program rom",
			usage:       "disasm <rom> [<address> [<count>]]",
			description: "Disassemble count instructions starting at a hexadecimal address, or at the reset vector.",
			run:         (*app).cmdDisasm,
		},
		{
			name:        "record",
			brief:       "Run headless and save the output",
			usage:       "record <rom> <image.png> [<audio.wav>]",
			description: "Run for the configured number of frames, then save the last frame as a PNG and the audio as a WAV.",
			run:         (*app).cmdRecord,
		},
		{
			name:        "run",
			brief:       "Run in a window",
			usage:       "run <rom>",
			description: "Open a window and run the cartridge. Space pauses, R resets, F steps a frame while paused, C steps an instruction while paused and P cycles the overlay palette.",
			run:         (*app).cmdRun,
		},
		{
			name:        "settings",
			brief:       "Display settings",
			usage:       "settings",
			description: "Display the current value of every setting. Change them with -set key=value.",
			run:         (*app).cmdSettings,
		},
	}

	a.tree = cmd.NewTree(cmd.TreeDescriptor{Name: "nes-emu"})
	for _, c := range a.commands {
		a.tree.AddCommand(cmd.CommandDescriptor{
			Name:        c.name,
			Brief:       c.brief,
			Description: c.description,
			Usage:       c.usage,
			Data:        c,
		})
	}
	return a
}

func (a *app) lookup(name string) (*command, error) {
	sel, err := a.tree.Lookup(name)
	switch {
	case err == cmd.ErrNotFound:
		return nil, fmt.Errorf("command not found: %s", name)
	case err == cmd.ErrAmbiguous:
		return nil, fmt.Errorf("command is ambiguous: %s", name)
	case err != nil:
		return nil, err
	}
	return sel.Command.Data.(*command), nil
}

func (a *app) execute(args []string) error {
	c, err := a.lookup(args[0])
	if err != nil {
		return err
	}
	return c.run(a, args[1:])
}

func (a *app) usage(name string) error {
	for _, c := range a.commands {
		if c.name == name {
			return fmt.Errorf("usage: %s", c.usage)
		}
	}
	return fmt.Errorf("usage: %s", name)
}

func (a *app) cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: nes-emu [-set key=value ...] <command> [<args>]")
		fmt.Println("Commands:")
		for _, c := range a.commands {
			fmt.Printf("    %-10s  %s\n", c.name, c.brief)
		}
		return nil
	}

	c, err := a.lookup(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Syntax: %s\n\n", c.usage)
	fmt.Printf("Description:\n   %s\n", c.description)
	return nil
}

func (a *app) cmdInfo(args []string) error {
	if len(args) != 1 {
		return a.usage("info")
	}
	img, err := rom.Load(args[0])
	if err != nil {
		return err
	}
	return rom.PrintInfo(os.Stdout, img)
}

func parseAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "$"), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return uint16(v), nil
}

func (a *app) cmdDisasm(args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return a.usage("disasm")
	}
	nes, err := a.load(args[0])
	if err != nil {
		return err
	}

	m := nes.Bus().Inspect()
	addr := memory.ReadWord(m, 0xFFFC)
	if len(args) > 1 {
		if addr, err = parseAddr(args[1]); err != nil {
			return err
		}
	}
	count := disasmLines
	if len(args) > 2 {
		if count, err = strconv.Atoi(args[2]); err != nil || count <= 0 {
			return fmt.Errorf("invalid count %q", args[2])
		}
	}

	for _, line := range cpu.Disassemble(m, addr, count) {
		fmt.Println(line)
	}
	return nil
}

func (a *app) cmdRecord(args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return a.usage("record")
	}

	frames := sink.NewPNG()
	samples := sink.NewWAV(a.settings.SampleRate)
	nes, err := a.load(args[0],
		console.WithDisplay(frames),
		console.WithAudio(samples),
		console.WithSampleRate(a.settings.SampleRate),
	)
	if err != nil {
		return err
	}

	for i := 0; i < a.settings.Frames; i++ {
		if err := nes.RunFrame(); err != nil {
			return err
		}
	}
	logger.Logf("record", "%d frames, %d cycles", nes.Frame(), nes.Cycles())

	if err := frames.Save(args[1]); err != nil {
		return err
	}
	if len(args) > 2 {
		if err := samples.Save(args[2]); err != nil {
			return err
		}
	}
	return nes.SaveBackup()
}

func (a *app) cmdRun(args []string) error {
	if len(args) != 1 {
		return a.usage("run")
	}
	return runWindow(a, args[0])
}

func (a *app) cmdSettings(args []string) error {
	a.settings.Display(os.Stdout)
	return nil
}

// load builds a console for the image at path with battery backups kept
// in the configured directory.
func (a *app) load(path string, options ...console.Option) (*console.Console, error) {
	img, err := rom.Load(path)
	if err != nil {
		return nil, err
	}
	options = append(options, console.WithBackup(backup.Dir{Path: a.settings.BackupDir}))
	return console.New(img, options...)
}

func exitOnError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
	os.Exit(1)
}

func main() {
	var pairs config.Pairs
	flag.Var(&pairs, "set", "change a setting, as key=value (repeatable)")
	flag.CommandLine.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: nes-emu [-set key=value ...] <command> [<args>]\nOptions:")
		flag.PrintDefaults()
	}
	flag.Parse()

	settings := config.New()
	for _, p := range pairs {
		exitOnError(settings.SetPair(p))
	}
	if settings.Verbose {
		logger.SetEcho(os.Stderr)
	}

	a := newApp(settings)
	args := flag.Args()
	if len(args) == 0 {
		args = []string{"help"}
	}
	exitOnError(a.execute(args))
}
