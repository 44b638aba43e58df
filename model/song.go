// Package model holds the in-memory score: a Song is an ordered list of
// Sections, each carrying instrument tracks and an optional drum track.
// Times are in beats; a bar is always 4 beats regardless of the declared
// time signature.
package model

import "encoding/json"

// Note is a single pitched note, timed relative to its section start.
type Note struct {
	Pitch    int     `json:"pitch"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Velocity float64 `json:"velocity"`
}

// Chord keeps its symbolic identity (root/quality/octave); interval
// expansion happens only at compile or export time.
type Chord struct {
	Root     string  `json:"root"`
	Quality  string  `json:"quality"`
	Octave   int     `json:"octave"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Velocity float64 `json:"velocity"`
}

// DrumHit is a single percussion strike; hits are not sustained.
type DrumHit struct {
	Drum     string  `json:"drum"`
	Start    float64 `json:"start"`
	Velocity float64 `json:"velocity"`
}

// InstrumentTrack is owned by its Section. Instrument is the lowercase
// key into the GM program table; Name is the display name.
type InstrumentTrack struct {
	Name       string  `json:"name"`
	Instrument string  `json:"instrument"`
	Notes      []Note  `json:"notes"`
	Chords     []Chord `json:"chords"`
	Volume     float64 `json:"volume"`
	Pan        float64 `json:"pan"`
}

type DrumTrack struct {
	Name   string    `json:"name"`
	Hits   []DrumHit `json:"hits"`
	Volume float64   `json:"volume"`
}

// Section is a named span of bars. StartBar is assigned by the parser as
// the running total of preceding sections, never declared in the source.
// Key and Tempo overrides are informational; timing always uses the song
// tempo.
type Section struct {
	Name     string            `json:"name"`
	Bars     int               `json:"bars"`
	StartBar int               `json:"start_bar"`
	Key      *string           `json:"key,omitempty"`
	Tempo    *int              `json:"tempo,omitempty"`
	Tracks   []InstrumentTrack `json:"tracks"`
	Drums    *DrumTrack        `json:"drums,omitempty"`
}

// DurationBeats returns the section length in beats.
func (s *Section) DurationBeats() float64 {
	return float64(s.Bars) * 4
}

// Song is the complete score.
type Song struct {
	Title         string    `json:"title"`
	Tempo         int       `json:"tempo"`
	Key           string    `json:"key"`
	TimeSignature string    `json:"time_signature"`
	Sections      []Section `json:"sections"`
}

// NewSong returns a Song with the standard defaults.
func NewSong() *Song {
	return &Song{
		Title:         "Untitled",
		Tempo:         120,
		Key:           "C",
		TimeSignature: "4/4",
	}
}

func (s *Song) TotalBars() int {
	total := 0
	for i := range s.Sections {
		total += s.Sections[i].Bars
	}
	return total
}

func (s *Song) TotalBeats() float64 {
	return float64(s.TotalBars()) * 4
}

func (s *Song) DurationSeconds() float64 {
	if s.Tempo == 0 {
		return 0
	}
	return s.TotalBeats() / float64(s.Tempo) * 60
}

// ToJSON serializes the song to its interchange document.
func (s *Song) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// FromJSON deserializes an interchange document. Absent optional fields
// take their defaults; absent drums stay absent.
func FromJSON(data []byte) (*Song, error) {
	song := NewSong()
	if err := json.Unmarshal(data, song); err != nil {
		return nil, err
	}
	return song, nil
}

// The unmarshalers below pre-seed defaults so that a document written by
// hand (or by an older build) that omits optional fields still loads with
// the documented values, while explicit zeroes survive untouched.

func (n *Note) UnmarshalJSON(data []byte) error {
	type plain Note
	v := plain{Velocity: 0.7}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Note(v)
	return nil
}

func (c *Chord) UnmarshalJSON(data []byte) error {
	type plain Chord
	v := plain{Octave: 4, Velocity: 0.7}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*c = Chord(v)
	return nil
}

func (h *DrumHit) UnmarshalJSON(data []byte) error {
	type plain DrumHit
	v := plain{Velocity: 0.8}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*h = DrumHit(v)
	return nil
}

func (t *InstrumentTrack) UnmarshalJSON(data []byte) error {
	type plain InstrumentTrack
	v := plain{Volume: 0.8, Pan: 0.5}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*t = InstrumentTrack(v)
	return nil
}

func (d *DrumTrack) UnmarshalJSON(data []byte) error {
	type plain DrumTrack
	v := plain{Name: "Drums", Volume: 0.8}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = DrumTrack(v)
	return nil
}

func (s *Song) UnmarshalJSON(data []byte) error {
	type plain Song
	v := plain{Title: "Untitled", Tempo: 120, Key: "C", TimeSignature: "4/4"}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Song(v)
	return nil
}
