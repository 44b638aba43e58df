// Package sequence flattens a Song into an absolute-time event list for
// realtime playback. The compiler is a pure read of the score: the
// returned slice is fully materialized and never mutated afterwards, so
// consumers may iterate it from any goroutine.
package sequence

import (
	"sort"
	"strings"

	"github.com/texmexdex/motherchord/model"
	"github.com/texmexdex/motherchord/tables"
	"github.com/texmexdex/motherchord/util"
)

// DrumChannel is reserved for percussion (MIDI channel 10).
const DrumChannel = 9

// drumHitLength is the fixed note-off offset for percussion, in seconds.
const drumHitLength = 0.1

type Kind uint8

const (
	NoteOn Kind = iota
	NoteOff
)

// Event is a single scheduled note edge. Time is absolute seconds from
// the start of the song.
type Event struct {
	Time     float64
	Kind     Kind
	Channel  uint8
	Pitch    uint8
	Velocity uint8
}

type Compiler struct {
	tables tables.Tables
}

func NewCompiler(t tables.Tables) *Compiler {
	return &Compiler{tables: t}
}

// Channels assigns a channel to every distinct track name in first-seen
// order across sections, skipping the reserved drum channel. When any
// section carries drum hits, a synthesized "Drums" entry is pinned to it.
// Note this differs from the MIDI file exporter, which numbers channels
// from sorted track names; callers must not assume parity.
func (c *Compiler) Channels(song *model.Song) map[string]uint8 {
	channels := make(map[string]uint8)
	next := uint8(0)
	hasDrums := false

	for i := range song.Sections {
		section := &song.Sections[i]
		for j := range section.Tracks {
			name := section.Tracks[j].Name
			if _, ok := channels[name]; ok {
				continue
			}
			if next == DrumChannel {
				next++
			}
			channels[name] = next
			next++
		}
		if section.Drums != nil {
			hasDrums = true
		}
	}

	if hasDrums {
		channels["Drums"] = DrumChannel
	}
	return channels
}

// Compile produces the song's events ordered by non-decreasing time.
// Ties keep score enumeration order. It is total over structurally valid
// songs: lookup misses fall back to documented defaults and never fail.
func (c *Compiler) Compile(song *model.Song) []Event {
	var events []Event
	channels := c.Channels(song)
	bps := float64(song.Tempo) / 60.0

	for i := range song.Sections {
		section := &song.Sections[i]
		sectionStart := float64(section.StartBar) * 4 / bps

		for j := range section.Tracks {
			track := &section.Tracks[j]
			channel, ok := channels[track.Name]
			if !ok {
				continue
			}

			for _, note := range track.Notes {
				start := sectionStart + note.Start/bps
				end := start + note.Duration/bps
				events = append(events,
					Event{Time: start, Kind: NoteOn, Channel: channel, Pitch: clampPitch(note.Pitch), Velocity: toVelocity(note.Velocity)},
					Event{Time: end, Kind: NoteOff, Channel: channel, Pitch: clampPitch(note.Pitch)},
				)
			}

			for _, chord := range track.Chords {
				start := sectionStart + chord.Start/bps
				end := start + chord.Duration/bps
				vel := toVelocity(chord.Velocity)
				root := c.tables.Semitone(chord.Root) + (chord.Octave+1)*12
				for _, interval := range c.tables.Intervals(strings.ToLower(chord.Quality)) {
					pitch := clampPitch(root + interval)
					events = append(events,
						Event{Time: start, Kind: NoteOn, Channel: channel, Pitch: pitch, Velocity: vel},
						Event{Time: end, Kind: NoteOff, Channel: channel, Pitch: pitch},
					)
				}
			}
		}

		if section.Drums != nil {
			for _, hit := range section.Drums.Hits {
				start := sectionStart + hit.Start/bps
				pitch := clampPitch(c.tables.DrumPitch(strings.ToLower(hit.Drum)))
				events = append(events,
					Event{Time: start, Kind: NoteOn, Channel: DrumChannel, Pitch: pitch, Velocity: toVelocity(hit.Velocity)},
					Event{Time: start + drumHitLength, Kind: NoteOff, Channel: DrumChannel, Pitch: pitch},
				)
			}
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Time < events[j].Time
	})
	return events
}

func clampPitch(pitch int) uint8 {
	return uint8(util.Clamp(pitch, 0, 127))
}

func toVelocity(v float64) uint8 {
	return uint8(util.Clamp(int(v*127), 0, 127))
}
