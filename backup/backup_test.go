package backup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nes-emu/memory"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d", Key([]byte("ab"), []byte("c")))
	assert.Equal(t, Key([]byte("abc"), nil), Key([]byte("ab"), []byte("c")))
}

func TestRoundTrip(t *testing.T) {
	stores := map[string]Store{
		"dir":    Dir{Path: filepath.Join(t.TempDir(), "saves")},
		"memory": NewMemory(),
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ram := memory.NewRam(0x2000)
			for i := 0; i < ram.Len(); i++ {
				ram.Write(uint16(i), uint8(i*7))
			}
			require.NoError(t, Persist(store, "cart", ram))

			restored := memory.NewRam(0x2000)
			require.NoError(t, Restore(store, "cart", restored))
			assert.Equal(t, ram.Bytes(), restored.Bytes())
		})
	}
}

func TestRestoreMissing(t *testing.T) {
	ram := memory.NewRam(16)
	ram.Write(0, 0xAA)

	require.NoError(t, Restore(Dir{Path: t.TempDir()}, "nothing", ram))
	require.NoError(t, Restore(NewMemory(), "nothing", ram))
	assert.Equal(t, uint8(0xAA), ram.Read(0))
}

func TestRestoreSizeMismatch(t *testing.T) {
	store := NewMemory()
	require.NoError(t, store.Save("cart", make([]byte, 10)))

	ram := memory.NewRam(16)
	ram.Write(3, 0x55)
	err := Restore(store, "cart", ram)
	assert.ErrorIs(t, err, ErrSizeMismatch)
	assert.Equal(t, uint8(0x55), ram.Read(3))
}

func TestDirFiles(t *testing.T) {
	dir := Dir{Path: filepath.Join(t.TempDir(), "nested", "saves")}
	require.NoError(t, dir.Save("abc", []byte{1, 2, 3}))

	data, err := os.ReadFile(filepath.Join(dir.Path, "abc.sav"))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	_, err = dir.Load("other")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryCopies(t *testing.T) {
	store := NewMemory()
	data := []byte{1, 2}
	require.NoError(t, store.Save("k", data))
	data[0] = 9

	got, err := store.Load("k")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, got)
}
