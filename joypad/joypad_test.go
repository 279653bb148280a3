package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadSequence(t *testing.T) {
	j := New()
	j.Connect(0, State(0).Press(A))

	j.Write(1)
	j.Write(0)

	expected := []uint8{1, 0, 0, 0, 0, 0, 0, 0}
	for i, bit := range expected {
		v := j.Read1()
		assert.Equal(t, bit, v&0x01, "read %d", i)
		assert.Equal(t, uint8(0x40), v&0xFE, "read %d", i)
	}
	assert.Equal(t, uint8(Exhausted), j.Read1())
	assert.Equal(t, uint8(Exhausted), j.Read1())
}

func TestButtonOrder(t *testing.T) {
	j := New()
	j.Connect(1, State(0).Press(Start, Right))

	j.Write(1)
	j.Write(0)

	var got []uint8
	for i := 0; i < 8; i++ {
		got = append(got, j.Read2()&0x01)
	}
	assert.Equal(t, []uint8{0, 0, 0, 1, 0, 0, 0, 1}, got)
}

func TestStrobeHighReadsA(t *testing.T) {
	j := New()
	s := State(0).Press(A, B)
	j.Connect(0, &s)

	j.Write(1)
	assert.Equal(t, uint8(0x41), j.Read1())
	assert.Equal(t, uint8(0x41), j.Read1())

	// live source is sampled again on every read while strobe is high
	s = State(0).Press(B)
	assert.Equal(t, uint8(0x40), j.Read1())
}

func TestLatchIsSnapshot(t *testing.T) {
	j := New()
	s := State(0).Press(A)
	j.Connect(0, &s)

	j.Write(1)
	j.Write(0)
	s = 0

	assert.Equal(t, uint8(1), j.Read1()&0x01)
}

func TestUnconnectedPort(t *testing.T) {
	j := New()
	j.Write(1)
	j.Write(0)
	for i := 0; i < 8; i++ {
		assert.Equal(t, uint8(0x40), j.Read2())
	}
	assert.Equal(t, uint8(Exhausted), j.Read2())
}

func TestReset(t *testing.T) {
	j := New()
	j.Connect(0, State(0xFF))
	j.Write(1)
	j.Reset()
	assert.Equal(t, uint8(Exhausted), j.Read1())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "none", State(0).String())
	assert.Equal(t, "A+Start+Left", State(0).Press(A, Start, Left).String())
	assert.Equal(t, "Select", Select.String())
}
