// Package midigen writes a Song to a standard MIDI file: one tempo-only
// track, one track per distinct instrument name (sorted for determinism)
// and a trailing drums track when the song has any hits.
package midigen

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/texmexdex/motherchord/model"
	"github.com/texmexdex/motherchord/tables"
	"github.com/texmexdex/motherchord/util"
)

const drumChannel = 9

// drumHitBeats is how long a written percussion note lasts.
const drumHitBeats = 0.25

type Generator struct {
	tables tables.Tables
	ticks  smf.MetricTicks
}

func NewGenerator(t tables.Tables) *Generator {
	return &Generator{tables: t, ticks: smf.MetricTicks(960)}
}

// timedMsg is a message at an absolute tick; note-offs sort before
// note-ons at the same tick so zero-length collisions close cleanly.
type timedMsg struct {
	tick uint32
	off  bool
	msg  midi.Message
}

// Generate builds the SMF document.
//
// Channels are numbered from the sorted track index (clamped to 0..15,
// 9 remapped to 10 for melodic tracks). This intentionally differs from
// live playback, which assigns channels in first-seen order.
func (g *Generator) Generate(song *model.Song) (*smf.SMF, error) {
	if song == nil || len(song.Sections) == 0 {
		return nil, fmt.Errorf("song has no sections to generate")
	}

	trackInstrument := make(map[string]string)
	hasDrums := false
	for i := range song.Sections {
		section := &song.Sections[i]
		for j := range section.Tracks {
			t := &section.Tracks[j]
			if _, ok := trackInstrument[t.Name]; !ok {
				trackInstrument[t.Name] = t.Instrument
			}
		}
		if section.Drums != nil && len(section.Drums.Hits) > 0 {
			hasDrums = true
		}
	}

	names := util.SortedKeys(trackInstrument)

	s := smf.New()
	s.TimeFormat = g.ticks

	var tempo smf.Track
	tempo.Add(0, smf.MetaTempo(float64(song.Tempo)))
	tempo.Close(0)
	s.Add(tempo)

	for i, name := range names {
		channel := util.Min(uint8(i), 15)
		if channel == drumChannel {
			channel = 10
		}

		var msgs []timedMsg
		program := g.tables.Program(strings.ToLower(trackInstrument[name]))
		if program != tables.ProgramDrums {
			msgs = append(msgs, timedMsg{msg: midi.ProgramChange(channel, uint8(program))})
		}

		for si := range song.Sections {
			section := &song.Sections[si]
			sectionStart := float64(section.StartBar) * 4
			for ti := range section.Tracks {
				track := &section.Tracks[ti]
				if track.Name != name {
					continue
				}
				for _, note := range track.Notes {
					msgs = g.addNote(msgs, channel, note.Pitch, sectionStart+note.Start, note.Duration, note.Velocity)
				}
				for _, chord := range track.Chords {
					root := g.tables.Semitone(chord.Root) + (chord.Octave+1)*12
					for _, interval := range g.chordIntervals(chord.Quality) {
						msgs = g.addNote(msgs, channel, root+interval, sectionStart+chord.Start, chord.Duration, chord.Velocity)
					}
				}
			}
		}

		s.Add(g.buildTrack(name, msgs))
	}

	if hasDrums {
		var msgs []timedMsg
		for si := range song.Sections {
			section := &song.Sections[si]
			if section.Drums == nil {
				continue
			}
			sectionStart := float64(section.StartBar) * 4
			for _, hit := range section.Drums.Hits {
				pitch := g.tables.DrumPitch(strings.ToLower(hit.Drum))
				msgs = g.addNote(msgs, drumChannel, pitch, sectionStart+hit.Start, drumHitBeats, hit.Velocity)
			}
		}
		s.Add(g.buildTrack("Drums", msgs))
	}

	return s, nil
}

// Save writes the song to a .mid file on disk.
func (g *Generator) Save(song *model.Song, path string) error {
	s, err := g.Generate(song)
	if err != nil {
		return err
	}
	return s.WriteFile(path)
}

func (g *Generator) addNote(msgs []timedMsg, channel uint8, pitch int, startBeats, durationBeats, velocity float64) []timedMsg {
	key := uint8(util.Clamp(pitch, 0, 127))
	vel := uint8(util.Clamp(int(velocity*127), 1, 127))
	dur := math.Max(0.1, durationBeats)

	return append(msgs,
		timedMsg{tick: g.beatTicks(startBeats), msg: midi.NoteOn(channel, key, vel)},
		timedMsg{tick: g.beatTicks(startBeats + dur), off: true, msg: midi.NoteOff(channel, key)},
	)
}

func (g *Generator) beatTicks(beats float64) uint32 {
	return uint32(math.Round(beats * float64(g.ticks.Ticks4th())))
}

func (g *Generator) buildTrack(name string, msgs []timedMsg) smf.Track {
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].off && !msgs[j].off
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName(name))
	var prev uint32
	for _, m := range msgs {
		tr.Add(m.tick-prev, m.msg)
		prev = m.tick
	}
	tr.Close(0)
	return tr
}

// chordIntervals resolves a quality to intervals, trying the table first
// and then loose suffix matching before giving up and going major.
func (g *Generator) chordIntervals(quality string) []int {
	q := strings.ToLower(quality)
	if iv, ok := g.tables.ChordIntervals[q]; ok {
		return iv
	}
	switch {
	case strings.Contains(q, "maj7"):
		return []int{0, 4, 7, 11}
	case strings.Contains(q, "maj"):
		return []int{0, 4, 7}
	case strings.Contains(q, "m7"), strings.Contains(q, "min7"):
		return []int{0, 3, 7, 10}
	case strings.HasPrefix(q, "m"), strings.Contains(q, "min"):
		return []int{0, 3, 7}
	case strings.Contains(q, "sus4"):
		return []int{0, 5, 7}
	case strings.Contains(q, "sus2"):
		return []int{0, 2, 7}
	case strings.Contains(q, "dim7"):
		return []int{0, 3, 6, 9}
	case strings.Contains(q, "dim"):
		return []int{0, 3, 6}
	case strings.Contains(q, "aug"):
		return []int{0, 4, 8}
	case strings.Contains(q, "7"):
		return []int{0, 4, 7, 10}
	}
	return []int{0, 4, 7}
}
