package loader

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Candidate is one encoding/delimiter combination tried by the loader.
type Candidate struct {
	Encoding  string
	Delimiter rune

	enc encoding.Encoding
}

// String renders the candidate the way it shows up in logs and metrics.
func (c Candidate) String() string {
	return fmt.Sprintf("%s/%s", c.Encoding, DelimiterName(c.Delimiter))
}

// encodings lists the supported encodings in the order they are tried.
// cp949 and euc-kr share a decoder: x/text implements EUC-KR as the cp949
// superset, so the second entry only matters for reporting.
var encodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"utf-8-sig", unicode.UTF8BOM},
	{"cp949", korean.EUCKR},
	{"euc-kr", korean.EUCKR},
}

var delimiters = []rune{',', ';', '\t'}

// Candidates returns the fixed, ordered list of combinations: every
// delimiter for the first encoding, then every delimiter for the next one.
func Candidates() []Candidate {
	out := make([]Candidate, 0, len(encodings)*len(delimiters))
	for _, e := range encodings {
		for _, d := range delimiters {
			out = append(out, Candidate{Encoding: e.name, Delimiter: d, enc: e.enc})
		}
	}
	return out
}

// DelimiterName returns a printable name for a delimiter rune.
func DelimiterName(d rune) string {
	switch d {
	case '\t':
		return "tab"
	case ',':
		return "comma"
	case ';':
		return "semicolon"
	default:
		return string(d)
	}
}

// ParseDelimiter maps a user supplied delimiter name back to its rune.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	}
	return 0, fmt.Errorf("unsupported delimiter: %q (use ','|';'|'tab')", s)
}

// decode converts raw bytes to text. Invalid sequences are dropped rather
// than reported.
func (c Candidate) decode(data []byte) (string, error) {
	enc := c.enc
	if enc == nil {
		enc = encoding.Nop
	}
	t := transform.Chain(
		enc.NewDecoder(),
		runes.ReplaceIllFormed(),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError })),
	)
	out, _, err := transform.Bytes(t, data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", c.Encoding, err)
	}
	return string(out), nil
}
