//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/bassosimone/flagparser/blob/main/config.go
//

package adaptiveparser

import (
	"strings"
	"unicode/utf8"
)

// prefixClass distinguishes short from long option prefixes.
type prefixClass int

const (
	prefixClassShort = prefixClass(iota + 1)
	prefixClassLong
)

// prefixEntry describes a configured prefix spelling.
type prefixEntry struct {
	// canonical is the canonical spelling of the prefix.
	canonical string

	// class tells whether the prefix introduces short or long options.
	class prefixClass
}

// Settings enumerates the prefixes, value delimiters, and option-stop
// sequences recognized when tokenizing, plus the abbreviation policy.
//
// Each prefix, delimiter, and stop sequence may have equivalent
// spellings: interchangeable on the command line, canonicalized
// internally so that tokens and error messages use one spelling.
//
// Construct with [NewSettings] or [CommonUnixSettings] and configure
// before creating a [*Tokenizer] or a [*Parser]; the mutators are NOT
// SAFE to call concurrently and have no effect on already-created
// tokenizers.
type Settings struct {
	// abbreviation enables unambiguous prefix matching of long options.
	abbreviation bool

	// delimiters maps a delimiter spelling to its canonical spelling.
	delimiters map[rune]rune

	// prefixes maps a prefix spelling to its description.
	prefixes map[string]prefixEntry

	// stops maps a stop-sequence spelling to its canonical spelling.
	stops map[string]string
}

// NewSettings creates empty [*Settings] with abbreviation enabled.
func NewSettings() *Settings {
	return &Settings{
		abbreviation: true,
		delimiters:   map[rune]rune{},
		prefixes:     map[string]prefixEntry{},
		stops:        map[string]string{},
	}
}

// CommonUnixSettings creates [*Settings] following the common Unix
// conventions: `-` introduces short options, `--` introduces long
// options, `=` separates inline values, `--` stops option parsing,
// and abbreviation is enabled.
func CommonUnixSettings() *Settings {
	return NewSettings().
		AddShortPrefix("-").
		AddLongPrefix("--").
		AddValueDelimiter('=').
		AddOptionStopSequence("--")
}

// AddShortPrefix adds a short-option prefix along with equivalent
// spellings. Each spelling must be a single character.
//
// This method PANICS with a [*SpecError] on empty, multi-character,
// or already-configured spellings.
func (sx *Settings) AddShortPrefix(canonical string, equivalents ...string) *Settings {
	for _, spelling := range prepend(canonical, equivalents) {
		if !isSingleRune(spelling) {
			panic(specErrorf("short prefix %q must be a single character", spelling))
		}
		sx.addPrefix(spelling, prefixEntry{canonical: canonical, class: prefixClassShort})
	}
	return sx
}

// AddLongPrefix adds a long-option prefix along with equivalent spellings.
//
// This method PANICS with a [*SpecError] on empty or already-configured
// spellings.
func (sx *Settings) AddLongPrefix(canonical string, equivalents ...string) *Settings {
	for _, spelling := range prepend(canonical, equivalents) {
		if spelling == "" {
			panic(specErrorf("long prefix cannot be empty"))
		}
		sx.addPrefix(spelling, prefixEntry{canonical: canonical, class: prefixClassLong})
	}
	return sx
}

func (sx *Settings) addPrefix(spelling string, entry prefixEntry) {
	if _, found := sx.prefixes[spelling]; found {
		panic(specErrorf("prefix %q is already configured", spelling))
	}
	sx.prefixes[spelling] = entry
}

// AddValueDelimiter adds a `name=value` delimiter along with
// equivalent spellings.
//
// This method PANICS with a [*SpecError] on already-configured spellings.
func (sx *Settings) AddValueDelimiter(canonical rune, equivalents ...rune) *Settings {
	for _, spelling := range prepend(canonical, equivalents) {
		if _, found := sx.delimiters[spelling]; found {
			panic(specErrorf("value delimiter %q is already configured", string(spelling)))
		}
		sx.delimiters[spelling] = canonical
	}
	return sx
}

// AddOptionStopSequence adds a literal token that stops option parsing
// along with equivalent spellings.
//
// This method PANICS with a [*SpecError] on empty or already-configured
// spellings.
func (sx *Settings) AddOptionStopSequence(canonical string, equivalents ...string) *Settings {
	for _, spelling := range prepend(canonical, equivalents) {
		if spelling == "" {
			panic(specErrorf("option stop sequence cannot be empty"))
		}
		if _, found := sx.stops[spelling]; found {
			panic(specErrorf("option stop sequence %q is already configured", spelling))
		}
		sx.stops[spelling] = canonical
	}
	return sx
}

// AllowAbbreviation enables or disables unambiguous prefix matching
// for long (and multi-character short) option names.
func (sx *Settings) AllowAbbreviation(value bool) *Settings {
	sx.abbreviation = value
	return sx
}

// prefixSpellings returns every configured prefix spelling.
func (sx *Settings) prefixSpellings() []string {
	output := make([]string, 0, len(sx.prefixes))
	for spelling := range sx.prefixes {
		output = append(output, spelling)
	}
	return output
}

// splitPrefix splits the given specifier into a prefix description and
// a body, choosing the longest matching prefix spelling. The body may
// be empty when the specifier is a bare prefix.
func (sx *Settings) splitPrefix(specifier string) (entry prefixEntry, body string, found bool) {
	best := ""
	for spelling, candidate := range sx.prefixes {
		if len(spelling) > len(best) && strings.HasPrefix(specifier, spelling) {
			best, entry, found = spelling, candidate, true
		}
	}
	if found {
		body = specifier[len(best):]
	}
	return
}

// stopSequence returns the canonical spelling of the stop sequence
// matching the given raw argument, if any.
func (sx *Settings) stopSequence(arg string) (string, bool) {
	canonical, found := sx.stops[arg]
	return canonical, found
}

// splitDelimiter splits a name body on the first value delimiter. A
// delimiter in the leading position does not split, so that bodies
// like `=foo` stay whole.
func (sx *Settings) splitDelimiter(body string) (name, arg string, hasArg bool) {
	for pos, r := range body {
		if _, found := sx.delimiters[r]; !found {
			continue
		}
		if pos == 0 {
			break
		}
		return body[:pos], body[pos+utf8.RuneLen(r):], true
	}
	return body, "", false
}

// prepend returns a slice with the canonical spelling followed by the
// equivalent spellings.
func prepend[T any](canonical T, equivalents []T) []T {
	return append([]T{canonical}, equivalents...)
}
