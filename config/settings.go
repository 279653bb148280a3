// Package config holds the user adjustable settings of the front end.
// Settings are addressed by any unique prefix of their lowercase name.
package config

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/beevik/prefixtree/v2"
)

var (
	ErrUnknownSetting   = errors.New("config: unknown setting")
	ErrAmbiguousSetting = errors.New("config: ambiguous setting")
	ErrInvalidValue     = errors.New("config: invalid value")
)

type Settings struct {
	Scale      int    `doc:"window scale factor"`
	SampleRate int    `doc:"audio sample rate in Hz"`
	BackupDir  string `doc:"directory for battery backed ram"`
	Verbose    bool   `doc:"echo the log to stderr"`
	Overlay    bool   `doc:"show the cpu and pattern table overlay"`
	Frames     int    `doc:"frames to run when recording"`
}

func New() *Settings {
	return &Settings{
		Scale:      3,
		SampleRate: 44100,
		BackupDir:  "saves",
		Verbose:    false,
		Overlay:    false,
		Frames:     60,
	}
}

type settingsField struct {
	name  string
	index int
	kind  reflect.Kind
	doc   string
}

var (
	settingsTree   = prefixtree.New[*settingsField]()
	settingsFields []settingsField
)

func init() {
	settingsType := reflect.TypeOf(Settings{})
	settingsFields = make([]settingsField, settingsType.NumField())
	for i := range settingsFields {
		f := settingsType.Field(i)
		doc, _ := f.Tag.Lookup("doc")
		settingsFields[i] = settingsField{
			name:  f.Name,
			index: i,
			kind:  f.Type.Kind(),
			doc:   doc,
		}
		settingsTree.Add(strings.ToLower(f.Name), &settingsFields[i])
	}
}

func lookup(key string) (*settingsField, error) {
	f, err := settingsTree.FindValue(strings.ToLower(key))
	switch {
	case err == prefixtree.ErrPrefixNotFound:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	case err == prefixtree.ErrPrefixAmbiguous:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousSetting, key)
	case err != nil:
		return nil, err
	}
	return f, nil
}

// Name returns the full name of the setting key resolves to.
func Name(key string) (string, error) {
	f, err := lookup(key)
	if err != nil {
		return "", err
	}
	return f.name, nil
}

// Set parses value according to the type of the setting named by key.
func (s *Settings) Set(key, value string) error {
	f, err := lookup(key)
	if err != nil {
		return err
	}

	v := reflect.ValueOf(s).Elem().Field(f.index)
	switch f.kind {
	case reflect.String:
		v.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w for %s: %q", ErrInvalidValue, f.name, value)
		}
		v.SetBool(b)
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w for %s: %q", ErrInvalidValue, f.name, value)
		}
		v.SetInt(int64(n))
	}
	return nil
}

// SetPair applies a "key=value" assignment.
func (s *Settings) SetPair(pair string) error {
	key, value, ok := strings.Cut(pair, "=")
	if !ok {
		return fmt.Errorf("%w: expected key=value, got %q", ErrInvalidValue, pair)
	}
	return s.Set(strings.TrimSpace(key), strings.TrimSpace(value))
}

func (s *Settings) Display(w io.Writer) {
	value := reflect.ValueOf(s).Elem()
	for i, f := range settingsFields {
		v := value.Field(i)
		var line string
		switch f.kind {
		case reflect.String:
			line = fmt.Sprintf("    %-12s \"%s\"", f.name, v.String())
		default:
			line = fmt.Sprintf("    %-12s %v", f.name, v)
		}
		fmt.Fprintf(w, "%-32s (%s)\n", line, f.doc)
	}
}

// Pairs collects repeated -set flags.
type Pairs []string

func (p *Pairs) String() string {
	return strings.Join(*p, ",")
}

func (p *Pairs) Set(value string) error {
	*p = append(*p, value)
	return nil
}
