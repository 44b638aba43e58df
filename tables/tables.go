// Package tables holds the fixed musical lookup data the parser, compiler
// and exporters are constructed with. Callers normally use Default(); tests
// can substitute their own tables.
package tables

// ProgramDrums marks an instrument name that routes to the percussion
// channel instead of a melodic GM program.
const ProgramDrums = -1

type Tables struct {
	// Duration codes to beats (q=1.0, e=0.5, ...).
	Durations map[string]float64
	// Dynamics codes to normalized velocity (ppp..fff).
	Dynamics map[string]float64
	// Note letter (+accidental) to semitone offset from C.
	NoteSemitones map[string]int
	// Chord quality suffix to semitone intervals from the root.
	ChordIntervals map[string][]int
	// Lowercase instrument name to GM program, or ProgramDrums.
	GMPrograms map[string]int
	// Lowercase drum name to GM percussion pitch.
	DrumPitches map[string]int
}

// Program resolves an instrument name to a GM program number.
// Unknown names fall back to 0 (acoustic grand).
func (t Tables) Program(instrument string) int {
	if p, ok := t.GMPrograms[instrument]; ok {
		return p
	}
	return 0
}

// IsDrumInstrument reports whether an instrument name routes to percussion.
func (t Tables) IsDrumInstrument(instrument string) bool {
	return t.GMPrograms[instrument] == ProgramDrums
}

// Semitone resolves a note letter to its offset from C, 0 if unknown.
func (t Tables) Semitone(note string) int {
	return t.NoteSemitones[note]
}

// Intervals resolves a chord quality to its interval set.
// Unknown qualities fall back to a major triad.
func (t Tables) Intervals(quality string) []int {
	if iv, ok := t.ChordIntervals[quality]; ok {
		return iv
	}
	return []int{0, 4, 7}
}

// DrumPitch resolves a drum name to its GM percussion pitch, 36 (kick)
// if unknown.
func (t Tables) DrumPitch(drum string) int {
	if p, ok := t.DrumPitches[drum]; ok {
		return p
	}
	return 36
}

// Default returns the standard table set.
func Default() Tables {
	return Tables{
		Durations: map[string]float64{
			"w":  4.0,   // whole
			"h":  2.0,   // half
			"dh": 3.0,   // dotted half
			"q":  1.0,   // quarter
			"dq": 1.5,   // dotted quarter
			"e":  0.5,   // eighth
			"de": 0.75,  // dotted eighth
			"s":  0.25,  // sixteenth
			"t":  0.333, // triplet eighth
		},
		Dynamics: map[string]float64{
			"ppp": 0.15,
			"pp":  0.25,
			"p":   0.4,
			"mp":  0.55,
			"mf":  0.7,
			"f":   0.85,
			"ff":  0.95,
			"fff": 1.0,
		},
		NoteSemitones: map[string]int{
			"C": 0, "C#": 1, "Db": 1, "D": 2, "D#": 3, "Eb": 3,
			"E": 4, "F": 5, "F#": 6, "Gb": 6, "G": 7, "G#": 8,
			"Ab": 8, "A": 9, "A#": 10, "Bb": 10, "B": 11,
		},
		ChordIntervals: map[string][]int{
			"":     {0, 4, 7},        // major
			"m":    {0, 3, 7},        // minor
			"7":    {0, 4, 7, 10},    // dominant 7
			"maj7": {0, 4, 7, 11},    // major 7
			"m7":   {0, 3, 7, 10},    // minor 7
			"dim":  {0, 3, 6},        // diminished
			"dim7": {0, 3, 6, 9},     // diminished 7
			"aug":  {0, 4, 8},        // augmented
			"sus2": {0, 2, 7},        // suspended 2
			"sus4": {0, 5, 7},        // suspended 4
			"add9": {0, 4, 7, 14},    // add 9
			"9":    {0, 4, 7, 10, 14}, // dominant 9
		},
		GMPrograms: map[string]int{
			// piano
			"piano":          0,
			"bright_piano":   1,
			"electric_piano": 4,
			"honkytonk":      3,

			// chromatic percussion
			"celesta":      8,
			"glockenspiel": 9,
			"music_box":    10,
			"vibraphone":   11,
			"marimba":      12,
			"xylophone":    13,

			// organ
			"organ":        19,
			"church_organ": 19,
			"rock_organ":   18,

			// guitar
			"acoustic_guitar":   24,
			"electric_guitar":   27,
			"clean_guitar":      27,
			"distortion_guitar": 30,

			// bass
			"bass":          33,
			"acoustic_bass": 32,
			"electric_bass": 33,
			"slap_bass":     36,
			"synth_bass":    38,

			// strings
			"strings":         48,
			"violin":          40,
			"viola":           41,
			"cello":           42,
			"contrabass":      43,
			"tremolo_strings": 44,
			"pizzicato":       45,
			"harp":            46,

			// ensemble
			"string_ensemble": 48,
			"synth_strings":   50,
			"choir":           52,
			"voice":           54,

			// brass
			"trumpet":     56,
			"trombone":    57,
			"tuba":        58,
			"french_horn": 60,
			"brass":       61,
			"synth_brass": 62,

			// reed
			"saxophone": 65,
			"alto_sax":  65,
			"tenor_sax": 66,
			"oboe":      68,
			"clarinet":  71,

			// pipe
			"flute":     73,
			"recorder":  74,
			"pan_flute": 75,

			// synth lead
			"lead":        80,
			"square_lead": 80,
			"saw_lead":    81,
			"synth_lead":  81,
			"synth":       81,

			// synth pad
			"pad":         88,
			"pads":        88,
			"new_age_pad": 88,
			"warm_pad":    89,
			"polysynth":   90,
			"space_pad":   91,
			"atmosphere":  99,
			"ambient":     88,

			// effects
			"fx":         96,
			"rain":       96,
			"soundtrack": 97,
			"crystal":    98,

			// common track name variations
			"guitar":    25,
			"gtr":       25,
			"keys":      0,
			"keyboard":  0,
			"synths":    81,
			"vox":       54,
			"vocals":    54,
			"horns":     61,
			"woodwinds": 73,
			"perc":      ProgramDrums,

			// drums route to channel 10
			"drums":      ProgramDrums,
			"percussion": ProgramDrums,
			"drum":       ProgramDrums,
			"kit":        ProgramDrums,
		},
		DrumPitches: map[string]int{
			"kick":       36,
			"bass":       36,
			"bd":         36,
			"snare":      38,
			"sd":         38,
			"rimshot":    37,
			"clap":       39,
			"hat":        42,
			"hh":         42,
			"closed_hat": 42,
			"open_hat":   46,
			"oh":         46,
			"tom_low":    45,
			"tom_mid":    47,
			"tom_high":   50,
			"crash":      49,
			"ride":       51,
			"china":      52,
			"bell":       53,
			"tambourine": 54,
			"cowbell":    56,
		},
	}
}
