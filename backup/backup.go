// Package backup keeps battery-backed cartridge RAM between runs.
package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"nes-emu/logger"
	"nes-emu/memory"
	"nes-emu/rom"
)

var (
	// ErrNotFound is returned by a Store that holds nothing for a key.
	ErrNotFound = errors.New("backup: not found")

	// ErrSizeMismatch is returned when a stored backup does not fit the
	// cartridge RAM.
	ErrSizeMismatch = errors.New("backup: size mismatch")
)

// Store is where backups live.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// Key identifies a cartridge by the SHA-1 of its PRG and CHR contents.
func Key(prg, chr []byte) string {
	return rom.Digest(prg, chr)
}

// Restore copies the stored backup for key into ram. A missing backup
// leaves ram untouched and is not an error.
func Restore(store Store, key string, ram *memory.Ram) error {
	data, err := store.Load(key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) != ram.Len() {
		return fmt.Errorf("%w: %d bytes stored for %d byte ram", ErrSizeMismatch, len(data), ram.Len())
	}
	if err := ram.Load(data); err != nil {
		return err
	}
	logger.Logf("backup", "restored %d bytes for %s", len(data), key)
	return nil
}

// Persist writes the contents of ram for key, whether or not they changed.
func Persist(store Store, key string, ram *memory.Ram) error {
	data := make([]byte, ram.Len())
	copy(data, ram.Bytes())
	if err := store.Save(key, data); err != nil {
		return err
	}
	logger.Logf("backup", "saved %d bytes for %s", len(data), key)
	return nil
}

// Dir stores each backup as a file named after its key.
type Dir struct {
	Path string
}

func (d Dir) filename(key string) string {
	return filepath.Join(d.Path, key+".sav")
}

func (d Dir) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(d.filename(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("backup: %w", err)
	}
	return data, nil
}

func (d Dir) Save(key string, data []byte) error {
	if err := os.MkdirAll(d.Path, 0o700); err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	if err := os.WriteFile(d.filename(key), data, 0o600); err != nil {
		return fmt.Errorf("backup: %w", err)
	}
	return nil
}

// Memory is a Store that keeps backups in process.
type Memory struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *Memory) Save(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), data...)
	return nil
}
