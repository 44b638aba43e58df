package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramLookup(t *testing.T) {
	tb := Default()

	assert := assert.New(t)
	assert.Equal(0, tb.Program("piano"))
	assert.Equal(33, tb.Program("bass"))
	assert.Equal(ProgramDrums, tb.Program("drums"))
	// unknown instruments land on the piano
	assert.Equal(0, tb.Program("theremin"))
}

func TestIsDrumInstrument(t *testing.T) {
	tb := Default()

	assert := assert.New(t)
	assert.True(tb.IsDrumInstrument("drums"))
	assert.True(tb.IsDrumInstrument("perc"))
	assert.False(tb.IsDrumInstrument("piano"))
	assert.False(tb.IsDrumInstrument("theremin"))
}

func TestSemitoneLookup(t *testing.T) {
	tb := Default()

	assert := assert.New(t)
	assert.Equal(0, tb.Semitone("C"))
	assert.Equal(1, tb.Semitone("C#"))
	assert.Equal(1, tb.Semitone("Db"))
	assert.Equal(11, tb.Semitone("B"))
	assert.Equal(0, tb.Semitone("H"))
}

func TestIntervalsFallBackToMajor(t *testing.T) {
	tb := Default()

	assert.Equal(t, []int{0, 3, 7}, tb.Intervals("m"))
	assert.Equal(t, []int{0, 4, 7}, tb.Intervals(""))
	assert.Equal(t, []int{0, 4, 7}, tb.Intervals("whatever"))
}

func TestDrumPitchFallsBackToKick(t *testing.T) {
	tb := Default()

	assert.Equal(t, 38, tb.DrumPitch("snare"))
	assert.Equal(t, 42, tb.DrumPitch("hat"))
	assert.Equal(t, 36, tb.DrumPitch("vuvuzela"))
}
