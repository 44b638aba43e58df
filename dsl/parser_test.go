package dsl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/texmexdex/motherchord/tables"
)

const miniSong = `SONG: Test
TEMPO: 120
KEY: C
SECTION: A [1 bars]
  PIANO: C4(q) Am(q) |
`

func TestParseMiniSong(t *testing.T) {
	song, res := Parse(miniSong)

	assert := assert.New(t)
	assert.Empty(res.Errors)
	assert.Equal("Test", song.Title)
	assert.Equal(120, song.Tempo)
	assert.Equal("C", song.Key)

	assert.Len(song.Sections, 1)
	section := song.Sections[0]
	assert.Equal("A", section.Name)
	assert.Equal(1, section.Bars)
	assert.Equal(0, section.StartBar)

	assert.Len(section.Tracks, 1)
	track := section.Tracks[0]
	assert.Equal("Piano", track.Name)
	assert.Equal("piano", track.Instrument)

	assert.Len(track.Notes, 1)
	assert.Equal(60, track.Notes[0].Pitch)
	assert.Equal(0.0, track.Notes[0].Start)
	assert.Equal(1.0, track.Notes[0].Duration)
	assert.Equal(0.7, track.Notes[0].Velocity)

	assert.Len(track.Chords, 1)
	assert.Equal("A", track.Chords[0].Root)
	assert.Equal("m", track.Chords[0].Quality)
	assert.Equal(4, track.Chords[0].Octave)
	assert.Equal(1.0, track.Chords[0].Start)
	assert.Equal(1.0, track.Chords[0].Duration)
}

func TestParseNoSectionMarker(t *testing.T) {
	song, res := Parse("just some rambling text\nwith no structure at all")

	assert := assert.New(t)
	assert.NotNil(song)
	assert.Empty(res.Errors)
	assert.Empty(song.Sections)
}

func TestParseEmptyInputIsFatal(t *testing.T) {
	for _, in := range []string{"", "   \n\n  ", "```\n```", "# only comments\n// here"} {
		song, res := Parse(in)
		assert.Nil(t, song, "input: %q", in)
		assert.Len(t, res.Errors, 1, "input: %q", in)
	}
}

func TestParseHeaderDefaults(t *testing.T) {
	song, res := Parse("SECTION: Solo [2 bars]\nGUITAR: E3(w)")

	assert := assert.New(t)
	assert.Empty(res.Errors)
	assert.Equal("Untitled", song.Title)
	assert.Equal(120, song.Tempo)
	assert.Equal("C", song.Key)
}

func TestParseHeaderFieldsInAnyOrder(t *testing.T) {
	song, _ := Parse("KEY: F#m\nSECTION: A [1 bars]\nPIANO: C4(q)\nTEMPO: 93\nSONG: Shuffled")

	assert := assert.New(t)
	assert.Equal("Shuffled", song.Title)
	assert.Equal(93, song.Tempo)
	assert.Equal("F#m", song.Key)
}

func TestParseCumulativeStartBars(t *testing.T) {
	song, _ := Parse(`SONG: X
SECTION: Intro [4 bars]
PIANO: C(w)
SECTION: Verse [8 bars]
PIANO: F(w)
SECTION: Chorus
PIANO: G(w)
SECTION: Outro [2 bars]
PIANO: C(w)
`)

	assert := assert.New(t)
	assert.Len(song.Sections, 4)
	bars := []int{4, 8, 8, 2} // third section falls back to 8
	starts := []int{0, 4, 12, 20}
	for i, s := range song.Sections {
		assert.Equal(bars[i], s.Bars)
		assert.Equal(starts[i], s.StartBar)
	}
	assert.Equal(22, song.TotalBars())
}

func TestParseRestSlotsAdvanceCursor(t *testing.T) {
	song, _ := Parse("SECTION: A [4 bars]\nBASS: C2(w) | _ |  | G2(h)")

	track := song.Sections[0].Tracks[0]
	assert.Len(t, track.Notes, 2)
	assert.Equal(t, 0.0, track.Notes[0].Start)
	assert.Equal(t, 12.0, track.Notes[1].Start)
}

func TestParseSlotEntriesAreLaidOutBackToBack(t *testing.T) {
	song, _ := Parse("SECTION: A [1 bars]\nPIANO: C4(e) D4(e,mf) E4(q) F4(s)")

	notes := song.Sections[0].Tracks[0].Notes
	assert := assert.New(t)
	assert.Len(notes, 4)
	assert.Equal(0.0, notes[0].Start)
	assert.Equal(0.5, notes[1].Start)
	assert.Equal(1.0, notes[2].Start)
	assert.Equal(2.0, notes[3].Start)
	assert.Equal(0.25, notes[3].Duration)
}

func TestParseParamsDurationsAndDynamics(t *testing.T) {
	song, _ := Parse("SECTION: A [1 bars]\nPIANO: C4(h,ff) D4(bogus) E4(pp)")

	notes := song.Sections[0].Tracks[0].Notes
	assert := assert.New(t)
	assert.Equal(2.0, notes[0].Duration)
	assert.Equal(0.95, notes[0].Velocity)
	// unknown params are ignored, defaults stand
	assert.Equal(1.0, notes[1].Duration)
	assert.Equal(0.7, notes[1].Velocity)
	assert.Equal(0.25, notes[2].Velocity)
}

func TestParseNoteVersusChordClassification(t *testing.T) {
	song, _ := Parse("SECTION: A [2 bars]\nPIANO: C4(q) F#3(q) Cmaj7(q) G(q)")

	track := song.Sections[0].Tracks[0]
	assert := assert.New(t)
	assert.Len(track.Notes, 2)
	assert.Equal(60, track.Notes[0].Pitch)
	assert.Equal(54, track.Notes[1].Pitch) // F#3
	assert.Len(track.Chords, 2)
	assert.Equal("C", track.Chords[0].Root)
	assert.Equal("maj7", track.Chords[0].Quality)
	assert.Equal("G", track.Chords[1].Root)
	assert.Equal("", track.Chords[1].Quality)
}

func TestParseMalformedLinesAreSkipped(t *testing.T) {
	song, res := Parse(`SECTION: A [1 bars]
this line is ornamental prose
PIANO: C4(q)
!!!???
`)

	assert := assert.New(t)
	assert.Empty(res.Errors)
	assert.Len(song.Sections[0].Tracks, 1)
}

func TestParsePercussionInstrumentLineIsDropped(t *testing.T) {
	song, _ := Parse("SECTION: A [1 bars]\nPERC: C4(q)\nPIANO: C4(q)")

	section := song.Sections[0]
	assert.Len(t, section.Tracks, 1)
	assert.Equal(t, "Piano", section.Tracks[0].Name)
}

func TestParseDrumsEighths(t *testing.T) {
	song, _ := Parse("SECTION: A [1 bars]\nDRUMS: hat(8ths)")

	drums := song.Sections[0].Drums
	assert := assert.New(t)
	assert.NotNil(drums)
	assert.Len(drums.Hits, 8)
	for i, hit := range drums.Hits {
		assert.Equal("hat", hit.Drum)
		assert.Equal(float64(i)*0.5, hit.Start)
		assert.Equal(0.7, hit.Velocity)
	}
}

func TestParseDrumsSixteenths(t *testing.T) {
	song, _ := Parse("SECTION: A [1 bars]\nDRUMS: hat(16ths)")

	drums := song.Sections[0].Drums
	assert.Len(t, drums.Hits, 16)
	assert.Equal(t, 0.25, drums.Hits[1].Start)
	assert.Equal(t, 0.6, drums.Hits[1].Velocity)
}

func TestParseDrumsBeatListAndSlotIndexing(t *testing.T) {
	song, _ := Parse("SECTION: A [4 bars]\nDRUMS: kick(1,3) snare(2,4) | _ | kick(1)")

	drums := song.Sections[0].Drums
	assert := assert.New(t)
	assert.Len(drums.Hits, 5)
	assert.Equal(0.0, drums.Hits[0].Start)
	assert.Equal(2.0, drums.Hits[1].Start)
	assert.Equal(1.0, drums.Hits[2].Start)
	assert.Equal(3.0, drums.Hits[3].Start)
	assert.Equal(0.8, drums.Hits[0].Velocity)
	// empty slots are skipped, the third slot keeps its literal index
	assert.Equal(8.0, drums.Hits[4].Start)
}

func TestParseDrumsBadBeatListDiscarded(t *testing.T) {
	song, _ := Parse("SECTION: A [1 bars]\nDRUMS: kick(1,x,3) snare(nope)")

	drums := song.Sections[0].Drums
	// the hit before the bad token survives, the rest is dropped
	assert.Len(t, drums.Hits, 1)
	assert.Equal(t, 0.0, drums.Hits[0].Start)
}

func TestParseSectionTempoKeyCopies(t *testing.T) {
	song, _ := Parse("SONG: X\nTEMPO: 77\nKEY: Eb\nSECTION: A [1 bars]\nPIANO: C4(q)")

	section := song.Sections[0]
	assert := assert.New(t)
	assert.NotNil(section.Tempo)
	assert.Equal(77, *section.Tempo)
	assert.NotNil(section.Key)
	assert.Equal("Eb", *section.Key)
}

func TestParseOneLineInputEndToEnd(t *testing.T) {
	oneLine := strings.ReplaceAll(miniSong, "\n", " ")
	song, res := Parse(oneLine)

	assert := assert.New(t)
	assert.Empty(res.Errors)
	assert.Equal("Test", song.Title)
	assert.Len(song.Sections, 1)
	assert.Len(song.Sections[0].Tracks, 1)
}

func TestParserIsReentrant(t *testing.T) {
	p := NewParser(tables.Default())

	_, bad := p.Parse("")
	song, good := p.Parse(miniSong)

	assert := assert.New(t)
	assert.Len(bad.Errors, 1)
	assert.Empty(good.Errors)
	assert.NotNil(song)
}

func TestParseWithCustomTables(t *testing.T) {
	custom := tables.Default()
	custom.Durations = map[string]float64{"q": 2.0}

	song, _ := NewParser(custom).Parse("SECTION: A [1 bars]\nPIANO: C4(q)")
	assert.Equal(t, 2.0, song.Sections[0].Tracks[0].Notes[0].Duration)
}
