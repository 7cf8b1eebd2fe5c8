// Package textproc cleans up raw OCR output.
//
// All transformations are pure and idempotent: running the pipeline a
// second time over its own output is a no-op.
package textproc

import (
	"regexp"
	"strings"
)

// Options selects which cleanup passes run.
type Options struct {
	// RemoveNewlines deletes every newline from the text. A newline is
	// replaced with nothing, not a space; spaces that end up adjacent
	// because of the removal are collapsed to a single space.
	RemoveNewlines bool

	// ForceBrackets replaces full-width/CJK punctuation with the ASCII
	// equivalents from the fixed substitution table.
	ForceBrackets bool
}

// fullWidthTable maps full-width and CJK punctuation code points to
// their ASCII counterparts. Each source rune maps to exactly one target
// and the mapping is applied once, never recursively.
var fullWidthTable = map[rune]rune{
	'（': '(',  // U+FF08 fullwidth left parenthesis
	'）': ')',  // U+FF09 fullwidth right parenthesis
	'【': '[',  // U+3010 left black lenticular bracket
	'】': ']',  // U+3011 right black lenticular bracket
	'［': '[',  // U+FF3B fullwidth left square bracket
	'］': ']',  // U+FF3D fullwidth right square bracket
	'｛': '{',  // U+FF5B fullwidth left curly bracket
	'｝': '}',  // U+FF5D fullwidth right curly bracket
	'，': ',',  // U+FF0C fullwidth comma
	'、': ',',  // U+3001 ideographic comma
	'。': '.',  // U+3002 ideographic full stop
	'．': '.',  // U+FF0E fullwidth full stop
	'：': ':',  // U+FF1A fullwidth colon
	'；': ';',  // U+FF1B fullwidth semicolon
	'！': '!',  // U+FF01 fullwidth exclamation mark
	'？': '?',  // U+FF1F fullwidth question mark
	'＜': '<',  // U+FF1C fullwidth less-than sign
	'＞': '>',  // U+FF1E fullwidth greater-than sign
	'＝': '=',  // U+FF1D fullwidth equals sign
	'＋': '+',  // U+FF0B fullwidth plus sign
	'－': '-',  // U+FF0D fullwidth hyphen-minus
	'％': '%',  // U+FF05 fullwidth percent sign
	'＃': '#',  // U+FF03 fullwidth number sign
	'＆': '&',  // U+FF06 fullwidth ampersand
	'＊': '*',  // U+FF0A fullwidth asterisk
	'／': '/',  // U+FF0F fullwidth solidus
	'＼': '\\', // U+FF3C fullwidth reverse solidus
	'｜': '|',  // U+FF5C fullwidth vertical line
	'～': '~',  // U+FF5E fullwidth tilde
	'＂': '"',  // U+FF02 fullwidth quotation mark
	'＇': '\'', // U+FF07 fullwidth apostrophe
	'｀': '`',  // U+FF40 fullwidth grave accent
	'＠': '@',  // U+FF20 fullwidth commercial at
	'＄': '$',  // U+FF04 fullwidth dollar sign
	'＾': '^',  // U+FF3E fullwidth circumflex accent
	'＿': '_',  // U+FF3F fullwidth low line
}

// newlineRun matches a run of newlines together with any horizontal
// whitespace touching it.
var newlineRun = regexp.MustCompile(`[ \t]*[\r\n][ \t\r\n]*`)

// Process applies the enabled cleanup passes to raw OCR output.
// The two passes operate on disjoint character classes, so their order
// does not matter.
func Process(raw string, opts Options) string {
	text := raw
	if opts.RemoveNewlines {
		text = stripNewlines(text)
	}
	if opts.ForceBrackets {
		text = normalizePunctuation(text)
	}
	return text
}

// stripNewlines removes every newline. When the surrounding text had
// horizontal whitespace next to the newline, a single space is kept so
// that words joined across lines do not end up with doubled spaces.
func stripNewlines(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return newlineRun.ReplaceAllStringFunc(s, func(run string) string {
		if strings.ContainsAny(run, " \t") {
			return " "
		}
		return ""
	})
}

func normalizePunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if ascii, ok := fullWidthTable[r]; ok {
			return ascii
		}
		return r
	}, s)
}
