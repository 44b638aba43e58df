package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleSong() *Song {
	key := "Am"
	tempo := 90
	return &Song{
		Title:         "Round Trip",
		Tempo:         140,
		Key:           "G",
		TimeSignature: "4/4",
		Sections: []Section{
			{
				Name:     "Verse",
				Bars:     4,
				StartBar: 0,
				Key:      &key,
				Tempo:    &tempo,
				Tracks: []InstrumentTrack{
					{
						Name:       "Piano",
						Instrument: "piano",
						Notes:      []Note{{Pitch: 60, Start: 0, Duration: 1, Velocity: 0.7}},
						Chords:     []Chord{{Root: "A", Quality: "m", Octave: 4, Start: 1, Duration: 2, Velocity: 0.8}},
						Volume:     0.9,
						Pan:        0.25,
					},
				},
				Drums: &DrumTrack{
					Name:   "Drums",
					Hits:   []DrumHit{{Drum: "kick", Start: 0, Velocity: 0.8}},
					Volume: 0.8,
				},
			},
			{Name: "Outro", Bars: 2, StartBar: 4},
		},
	}
}

func TestSongJSONRoundTrip(t *testing.T) {
	song := sampleSong()

	data, err := song.ToJSON()
	assert.Nil(t, err)

	got, err := FromJSON(data)
	assert.Nil(t, err)
	assert.Equal(t, song, got)
}

func TestFromJSONAppliesDefaults(t *testing.T) {
	got, err := FromJSON([]byte(`{"sections": [{"name": "A", "bars": 2, "tracks": [{"name": "Piano", "instrument": "piano", "notes": [{"pitch": 64}], "chords": [{"root": "C"}]}]}]}`))

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal("Untitled", got.Title)
	assert.Equal(120, got.Tempo)
	assert.Equal("C", got.Key)
	assert.Equal("4/4", got.TimeSignature)

	track := got.Sections[0].Tracks[0]
	assert.Equal(0.8, track.Volume)
	assert.Equal(0.5, track.Pan)
	assert.Equal(0.7, track.Notes[0].Velocity)
	assert.Equal(4, track.Chords[0].Octave)
	assert.Equal(0.7, track.Chords[0].Velocity)
}

func TestFromJSONAbsentOptionalsStayAbsent(t *testing.T) {
	got, err := FromJSON([]byte(`{"title": "X", "sections": [{"name": "A", "bars": 4}]}`))

	assert := assert.New(t)
	assert.Nil(err)
	section := got.Sections[0]
	assert.Nil(section.Key)
	assert.Nil(section.Tempo)
	assert.Nil(section.Drums)
}

func TestFromJSONExplicitZeroesSurvive(t *testing.T) {
	got, err := FromJSON([]byte(`{"tempo": 120, "sections": [{"name": "A", "bars": 1, "tracks": [{"name": "P", "instrument": "piano", "volume": 0, "pan": 0, "notes": [{"pitch": 60, "velocity": 0}]}]}]}`))

	assert := assert.New(t)
	assert.Nil(err)
	track := got.Sections[0].Tracks[0]
	assert.Equal(0.0, track.Volume)
	assert.Equal(0.0, track.Pan)
	assert.Equal(0.0, track.Notes[0].Velocity)
}

func TestFromJSONDrumTrackDefaults(t *testing.T) {
	got, err := FromJSON([]byte(`{"sections": [{"name": "A", "bars": 1, "drums": {"hits": [{"drum": "kick", "start": 0}]}}]}`))

	assert := assert.New(t)
	assert.Nil(err)
	drums := got.Sections[0].Drums
	assert.Equal("Drums", drums.Name)
	assert.Equal(0.8, drums.Volume)
	assert.Equal(0.8, drums.Hits[0].Velocity)
}

func TestFromJSONRejectsMalformedInput(t *testing.T) {
	got, err := FromJSON([]byte(`{"tempo": "fast"}`))
	assert.Nil(t, got)
	assert.NotNil(t, err)
}

func TestDerivedDurations(t *testing.T) {
	song := sampleSong()

	assert := assert.New(t)
	assert.Equal(6, song.TotalBars())
	assert.Equal(24.0, song.TotalBeats())
	// 24 beats at 140 bpm
	assert.InDelta(10.2857, song.DurationSeconds(), 0.001)
	assert.Equal(16.0, song.Sections[0].DurationBeats())
}

func TestDurationSecondsZeroTempo(t *testing.T) {
	song := &Song{Tempo: 0, Sections: []Section{{Bars: 4}}}
	assert.Equal(t, 0.0, song.DurationSeconds())
}
