package dsl

import (
	"regexp"
	"strings"
)

// Structural keywords and common instrument names used to recover line
// structure when a model emits the whole song on one line.
var structuralKeywords = []string{"SONG:", "TEMPO:", "KEY:", "SECTION:"}

var instrumentNames = []string{
	"GUITAR", "PIANO", "BASS", "DRUMS", "STRINGS", "PAD", "LEAD",
	"SYNTH", "ORGAN", "BRASS", "CHOIR", "FLUTE", "VIOLIN", "CELLO",
}

type lineFix struct {
	rx   *regexp.Regexp
	repl string
}

var oneLineFixes = buildOneLineFixes()

func buildOneLineFixes() []lineFix {
	var fixes []lineFix
	for _, kw := range structuralKeywords {
		fixes = append(fixes, lineFix{
			rx:   regexp.MustCompile(`(?i)\s+(` + kw + `)`),
			repl: "\n$1",
		})
	}
	for _, inst := range instrumentNames {
		fixes = append(fixes, lineFix{
			rx:   regexp.MustCompile(`(?i)\s+(` + inst + `):`),
			repl: "\n  $1:",
		})
	}
	return fixes
}

// Normalize repairs the one-line failure mode: if the text has almost no
// newlines but clearly contains a section marker, a newline is inserted
// before each structural keyword and instrument label. Matching a run of
// whitespace (rather than a single character) keeps the repair idempotent.
// Best effort only; content is never deleted.
func Normalize(text string) string {
	if strings.Count(text, "\n") < 5 && strings.Contains(strings.ToUpper(text), "SECTION:") {
		for _, fix := range oneLineFixes {
			text = fix.rx.ReplaceAllString(text, fix.repl)
		}
	}
	return text
}

// Clean strips the noise LLM responses wrap around the actual DSL: blank
// lines, code fences and comment lines. A commented-out line that still
// mentions SECTION is kept, since it usually carries real structure.
// Inline // comments are truncated.
func Clean(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		s := strings.TrimSpace(line)
		if s == "" || strings.HasPrefix(s, "```") {
			continue
		}
		if isCommentLine(s) && !strings.Contains(strings.ToUpper(s), "SECTION") {
			continue
		}
		if i := strings.Index(s, "//"); i >= 0 {
			s = strings.TrimSpace(s[:i])
		}
		if s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}

func isCommentLine(s string) bool {
	return strings.HasPrefix(s, "#") ||
		strings.HasPrefix(s, "//") ||
		strings.HasPrefix(s, "*")
}
