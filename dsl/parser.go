// Package dsl turns AI-generated song text into a model.Song. The parser
// is deliberately tolerant: lines, slots and tokens it cannot make sense
// of are skipped, never fatal. The only fatal case is input with no usable
// content at all.
package dsl

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/texmexdex/motherchord/model"
	"github.com/texmexdex/motherchord/tables"
)

var (
	rxTitle         = regexp.MustCompile(`(?i)SONG:\s*(.+?)(?:\n|$)`)
	rxTempo         = regexp.MustCompile(`(?i)TEMPO:\s*(\d+)`)
	rxKey           = regexp.MustCompile(`(?i)KEY:\s*([A-Ga-g][#b]?m?)`)
	rxSectionMarker = regexp.MustCompile(`(?i)SECTION:`)
	rxSectionName   = regexp.MustCompile(`(?i)SECTION:\s*(.+?)(?:\s*[\[\(]|$)`)
	rxSectionBars   = regexp.MustCompile(`(?i)(\d+)\s*bars?`)
	rxTrackLine     = regexp.MustCompile(`^(\w+)\s*:\s*(.+)`)
	rxPatternItem   = regexp.MustCompile(`([A-Ga-g][#b]?\w*)\s*\(([^)]+)\)`)
	rxDrumItem      = regexp.MustCompile(`(\w+)\s*\(([^)]+)\)`)
	rxOctaveNote    = regexp.MustCompile(`^([A-Ga-g][#b]?)(\d)$`)
	rxChordToken    = regexp.MustCompile(`^([A-Ga-g][#b]?)(\w*)(\d)?$`)
)

// Result carries the diagnostics of a single Parse call. A non-empty
// Errors list means no usable score was produced.
type Result struct {
	Errors   []string
	Warnings []string
}

type Parser struct {
	tables tables.Tables
}

func NewParser(t tables.Tables) *Parser {
	return &Parser{tables: t}
}

// Parse is a convenience wrapper using the default tables.
func Parse(text string) (*model.Song, Result) {
	return NewParser(tables.Default()).Parse(text)
}

// Parse converts DSL text into a Song. It is reentrant: all per-call
// state lives in the returned Result.
func (p *Parser) Parse(text string) (*model.Song, Result) {
	var res Result

	cleaned := Clean(Normalize(text))
	if strings.TrimSpace(cleaned) == "" {
		res.Errors = append(res.Errors, "no DSL content found")
		return nil, res
	}

	song := model.NewSong()

	// Header fields are independent searches over the whole text, so
	// they may appear in any order or be interleaved with sections.
	if m := rxTitle.FindStringSubmatch(cleaned); m != nil {
		song.Title = strings.TrimSpace(m[1])
	}
	if m := rxTempo.FindStringSubmatch(cleaned); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			song.Tempo = v
		}
	}
	if m := rxKey.FindStringSubmatch(cleaned); m != nil {
		song.Key = m[1]
	}

	bar := 0
	for _, block := range splitSections(cleaned) {
		if !rxSectionMarker.MatchString(block) {
			// text before the first section marker
			continue
		}
		section := p.parseSection(block, song)
		if section == nil {
			continue
		}
		section.StartBar = bar
		bar += section.Bars
		song.Sections = append(song.Sections, *section)
	}

	return song, res
}

// splitSections splits at every section marker without consuming it, so
// marker lines become block boundaries.
func splitSections(s string) []string {
	var blocks []string
	start := 0
	for _, loc := range rxSectionMarker.FindAllStringIndex(s, -1) {
		if block := strings.TrimSpace(s[start:loc[0]]); block != "" {
			blocks = append(blocks, block)
		}
		start = loc[0]
	}
	if block := strings.TrimSpace(s[start:]); block != "" {
		blocks = append(blocks, block)
	}
	return blocks
}

type lineKind int

const (
	lineInstrument lineKind = iota
	lineDrums
)

func classifyLine(word string) lineKind {
	if strings.EqualFold(word, "DRUMS") {
		return lineDrums
	}
	return lineInstrument
}

func (p *Parser) parseSection(block string, song *model.Song) *model.Section {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	if len(lines) == 0 {
		return nil
	}

	header := lines[0]
	name := "Section"
	if m := rxSectionName.FindStringSubmatch(header); m != nil {
		name = strings.TrimSpace(m[1])
	}
	bars := 8
	if m := rxSectionBars.FindStringSubmatch(header); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 {
			bars = v
		}
	}

	key := song.Key
	tempo := song.Tempo
	section := &model.Section{Name: name, Bars: bars, Key: &key, Tempo: &tempo}

	for _, line := range lines[1:] {
		s := strings.TrimSpace(line)
		if s == "" {
			continue
		}
		m := rxTrackLine.FindStringSubmatch(s)
		if m == nil {
			// ornamental or malformed line; not an error
			continue
		}
		switch classifyLine(m[1]) {
		case lineDrums:
			section.Drums = p.parseDrums(m[2])
		case lineInstrument:
			if track := p.parseTrack(m[1], m[2]); track != nil {
				section.Tracks = append(section.Tracks, *track)
			}
		}
	}

	return section
}

// parseTrack reads an instrument pattern. Slots advance a running cursor
// by exactly 4 beats each; entries within a slot are laid out back to
// back from the slot's start.
func (p *Parser) parseTrack(instName, pattern string) *model.InstrumentTrack {
	instLower := strings.ToLower(instName)
	if p.tables.IsDrumInstrument(instLower) {
		// percussion spelled as an instrument line belongs on DRUMS:
		return nil
	}

	track := &model.InstrumentTrack{
		Name:       strings.Title(instLower),
		Instrument: instLower,
		Volume:     0.8,
		Pan:        0.5,
	}

	beat := 0.0
	for _, slot := range strings.Split(pattern, "|") {
		slot = strings.TrimSpace(slot)
		if slot == "" || slot == "_" {
			beat += 4.0
			continue
		}

		barStart := beat
		barBeat := 0.0
		for _, item := range rxPatternItem.FindAllStringSubmatch(slot, -1) {
			token, params := item[1], item[2]
			dur, vel := p.parseParams(params)

			if m := rxOctaveNote.FindStringSubmatch(token); m != nil {
				octave, _ := strconv.Atoi(m[2])
				pitch := p.tables.Semitone(strings.ToUpper(m[1])) + (octave+1)*12
				track.Notes = append(track.Notes, model.Note{
					Pitch:    pitch,
					Start:    barStart + barBeat,
					Duration: dur,
					Velocity: vel,
				})
			} else {
				root, quality, octave := parseChordToken(token)
				track.Chords = append(track.Chords, model.Chord{
					Root:     root,
					Quality:  quality,
					Octave:   octave,
					Start:    barStart + barBeat,
					Duration: dur,
					Velocity: vel,
				})
			}
			barBeat += dur
		}
		beat += 4.0
	}

	return track
}

// parseDrums reads a drum pattern. Unlike instrument slots, the slot
// index fixes the bar start directly, so gaps need no placeholder.
func (p *Parser) parseDrums(pattern string) *model.DrumTrack {
	drums := &model.DrumTrack{Name: "Drums", Volume: 0.8}

	for barIdx, slot := range strings.Split(pattern, "|") {
		slot = strings.TrimSpace(slot)
		if slot == "" || slot == "_" {
			continue
		}
		barStart := float64(barIdx) * 4.0

		for _, item := range rxDrumItem.FindAllStringSubmatch(slot, -1) {
			drum := strings.ToLower(item[1])
			switch item[2] {
			case "8ths", "eighths":
				for i := 0; i < 8; i++ {
					drums.Hits = append(drums.Hits, model.DrumHit{
						Drum: drum, Start: barStart + float64(i)*0.5, Velocity: 0.7,
					})
				}
			case "16ths", "sixteenths":
				for i := 0; i < 16; i++ {
					drums.Hits = append(drums.Hits, model.DrumHit{
						Drum: drum, Start: barStart + float64(i)*0.25, Velocity: 0.6,
					})
				}
			default:
				for _, b := range strings.Split(item[2], ",") {
					b = strings.TrimSpace(b)
					if b == "" {
						continue
					}
					v, err := strconv.ParseFloat(b, 64)
					if err != nil {
						// hits parsed so far stay; the rest is dropped
						break
					}
					drums.Hits = append(drums.Hits, model.DrumHit{
						Drum: drum, Start: barStart + v - 1, Velocity: 0.8,
					})
				}
			}
		}
	}

	return drums
}

// parseParams reads the comma-separated tokens inside the parentheses.
// Each token is independently a duration code or a dynamics code;
// anything else is ignored.
func (p *Parser) parseParams(params string) (dur, vel float64) {
	dur, vel = 1.0, 0.7
	for _, tok := range strings.Split(params, ",") {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if d, ok := p.tables.Durations[tok]; ok {
			dur = d
		} else if v, ok := p.tables.Dynamics[tok]; ok {
			vel = v
		}
	}
	return dur, vel
}

func parseChordToken(token string) (root, quality string, octave int) {
	m := rxChordToken.FindStringSubmatch(token)
	if m == nil {
		return "C", "", 4
	}
	root = strings.ToUpper(m[1])
	quality = m[2]
	octave = 4
	if m[3] != "" {
		if v, err := strconv.Atoi(m[3]); err == nil {
			octave = v
		}
	}
	return root, quality, octave
}
