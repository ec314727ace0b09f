//
// SPDX-License-Identifier: GPL-3.0-or-later
//

package adaptiveparser

import (
	"fmt"
	"maps"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bassosimone/flagscanner"
	"github.com/bassosimone/runtimex"
)

// TokenizeResult is the value a tokenize handler returns to either
// continue or stop the tokenization.
type TokenizeResult int

const (
	// TokenizeContinue continues tokenizing.
	TokenizeContinue = TokenizeResult(iota)

	// TokenizeStop stops tokenizing; [*Tokenizer.Tokenize] returns
	// the unconsumed tail of the argument vector.
	TokenizeStop
)

// singleShortEntry maps a bundleable short-option rune to an option.
type singleShortEntry struct {
	key    rune
	prefix string
	index  int
}

// namedEntry maps a multi-character short or long body to an option.
type namedEntry struct {
	key    string
	prefix string
	index  int
}

// Tokenizer classifies an argument vector into a stream of [Token]
// under the policy of a [*Settings].
//
// Construct with [NewTokenizer] after the settings are fully
// configured, then register option names with [*Tokenizer.Add].
type Tokenizer struct {
	// settings is the tokenization policy.
	settings *Settings

	// scanner performs the raw prefix classification.
	scanner *flagscanner.Scanner

	// kinds records the argument kind of each registered option.
	kinds []OptionArgumentKind

	// singleShorts, multiShorts, and longs are the three ordered
	// dictionaries mapping option forms to option indexes.
	singleShorts []singleShortEntry
	multiShorts  []namedEntry
	longs        []namedEntry
}

// negativeNumberPattern matches entries shaped like negative numbers,
// which fall back to positional arguments when they resolve to no
// registered option.
var negativeNumberPattern = regexp.MustCompile(`^-\d+$|^-\d*\.\d+$`)

// NewTokenizer creates a [*Tokenizer] using the given settings.
//
// Settings mutations after this call have no effect on the tokenizer.
func NewTokenizer(settings *Settings) *Tokenizer {
	// Keep a private copy so that later mutations do not leak in.
	settings = &Settings{
		abbreviation: settings.abbreviation,
		delimiters:   maps.Clone(settings.delimiters),
		prefixes:     maps.Clone(settings.prefixes),
		stops:        maps.Clone(settings.stops),
	}
	return &Tokenizer{
		settings: settings,
		scanner: &flagscanner.Scanner{
			Prefixes:  settings.prefixSpellings(),
			Separator: "",
		},
	}
}

// Add registers the forms of the given [*OptionName] along with the
// argument kind of the option and returns the option index that
// [OptionToken] values will carry.
//
// This method MUTATES [*Tokenizer] and is NOT SAFE to call concurrently.
//
// This method PANICS with a [*SpecError] when a form duplicates an
// already-registered form.
func (tx *Tokenizer) Add(name *OptionName, kind OptionArgumentKind) int {
	index := len(tx.kinds)
	for _, form := range name.shorts {
		if isSingleRune(form.body) {
			r, _ := utf8.DecodeRuneInString(form.body)
			tx.singleShorts = insertSingleShort(tx.singleShorts, singleShortEntry{
				key:    r,
				prefix: form.prefix,
				index:  index,
			})
			continue
		}
		tx.multiShorts = insertNamed(tx.multiShorts, namedEntry{
			key:    form.body,
			prefix: form.prefix,
			index:  index,
		})
	}
	for _, form := range name.longs {
		tx.longs = insertNamed(tx.longs, namedEntry{
			key:    form.body,
			prefix: form.prefix,
			index:  index,
		})
	}
	tx.kinds = append(tx.kinds, kind)
	return index
}

// Tokenize streams the argument vector to the handler as [Token]
// values. The entry at index 0 is the program name and is skipped.
//
// The handler returns [TokenizeContinue] to keep going or
// [TokenizeStop] to halt. On halt, Tokenize returns the unconsumed
// tail of the argument vector; a partially consumed short bundle is
// reassembled under its prefix so that re-feeding the tail is
// lossless. The returned tail is empty when the whole vector has
// been consumed.
//
// This method does not mutate [*Tokenizer] and is safe to call
// concurrently as long as the handler is.
func (tx *Tokenizer) Tokenize(argv []string, handler func(Token) TokenizeResult) []string {
	var args []string
	if len(argv) > 0 {
		args = argv[1:]
	}

	// Classify each entry by prefix. The scanner emits exactly one
	// token per entry since it has no separator configured.
	scanned := tx.scanner.Scan(args)
	runtimex.Assert(len(scanned) == len(args))

	noMoreOptions := false
	for cursor := 0; cursor < len(args); cursor++ {
		argIdx := cursor + 1
		raw := args[cursor]

		// Once the options are stopped, everything is an argument.
		if noMoreOptions {
			if handler(ArgumentToken{Idx: argIdx, Value: raw}) == TokenizeStop {
				return tail(argv, argIdx+1, "")
			}
			continue
		}

		// Check for stop sequences before interpreting prefixes: a
		// stop sequence may well be option shaped.
		if canonical, found := tx.settings.stopSequence(raw); found {
			noMoreOptions = true
			if handler(OptionStopToken{Idx: argIdx, Sequence: canonical}) == TokenizeStop {
				return tail(argv, argIdx+1, "")
			}
			continue
		}

		// Dispatch depending on the raw classification. Lone
		// prefixes and empty entries scan as positional arguments.
		switch scanToken := scanned[cursor].(type) {
		case flagscanner.OptionToken:
			entry, found := tx.settings.prefixes[scanToken.Prefix]
			runtimex.Assert(found)
			var (
				result TokenizeResult
				rest   string
			)
			switch entry.class {
			case prefixClassLong:
				result = tx.handleLongOption(argIdx, entry.canonical, scanToken.Name, handler)
			case prefixClassShort:
				result, rest = tx.handleShortOption(argIdx, entry.canonical, scanToken.Name, raw, handler)
			default:
				panic(fmt.Sprintf("unhandled prefix class: %d", entry.class))
			}
			if result == TokenizeStop {
				return tail(argv, argIdx+1, rest)
			}

		default:
			if handler(ArgumentToken{Idx: argIdx, Value: raw}) == TokenizeStop {
				return tail(argv, argIdx+1, "")
			}
		}
	}
	return []string{}
}

// tail assembles the unconsumed tail of the argument vector, possibly
// prepending the reassembled remainder of a short bundle.
func tail(argv []string, next int, bundleRest string) []string {
	output := []string{}
	if bundleRest != "" {
		output = append(output, bundleRest)
	}
	for ; next < len(argv); next++ {
		output = append(output, argv[next])
	}
	return output
}

// handleLongOption resolves the body of a long-prefixed entry.
func (tx *Tokenizer) handleLongOption(
	argIdx int, prefix, body string, handler func(Token) TokenizeResult) TokenizeResult {
	// Split `name=value` on the first delimiter, then resolve the name.
	name, arg, hasArg := tx.settings.splitDelimiter(body)
	used := prefix + name

	// The exact match always wins, even over abbreviations.
	if entry, found := findNamed(tx.longs, name); found {
		return handler(OptionToken{
			Idx: argIdx, Option: entry.index, Name: used, Argument: arg, HasArgument: hasArg})
	}

	// Otherwise try the unambiguous-abbreviation route.
	if tx.settings.abbreviation {
		matches := findByPrefix(tx.longs, name)
		switch {
		case len(matches) == 1:
			return handler(OptionToken{
				Idx: argIdx, Option: matches[0].index, Name: used, Argument: arg, HasArgument: hasArg})
		case len(matches) > 1:
			return handler(AmbiguousOptionToken{
				Idx: argIdx, Name: used, Candidates: candidateSpellings(nil, matches)})
		}
	}

	return handler(UnknownOptionToken{Idx: argIdx, Name: used})
}

// handleShortOption resolves the body of a short-prefixed entry. The
// second return value is the reassembled bundle remainder when the
// handler stopped the tokenization mid bundle.
func (tx *Tokenizer) handleShortOption(
	argIdx int, prefix, body, raw string, handler func(Token) TokenizeResult) (TokenizeResult, string) {
	// An exact multi-character short match consumes the whole body.
	if entry, found := findNamed(tx.multiShorts, body); found {
		return handler(OptionToken{Idx: argIdx, Option: entry.index, Name: prefix + body}), ""
	}

	// So does an exact single-character match.
	if isSingleRune(body) {
		r, _ := utf8.DecodeRuneInString(body)
		if entry, found := findSingleShort(tx.singleShorts, r); found {
			return handler(OptionToken{Idx: argIdx, Option: entry.index, Name: prefix + body}), ""
		}
	}

	// Split `name=value` and retry the multi-character shorts: this
	// is how `-foo=a` resolves when `-foo` is registered.
	name, arg, hasArg := tx.settings.splitDelimiter(body)
	if hasArg {
		if entry, found := findNamed(tx.multiShorts, name); found {
			return handler(OptionToken{
				Idx: argIdx, Option: entry.index, Name: prefix + name, Argument: arg, HasArgument: hasArg}), ""
		}
	}

	// Collect the possible interpretations: abbreviations of the
	// multi-character shorts plus, when the first rune is a
	// registered single short, the bundle interpretation.
	var abbreviations []namedEntry
	if tx.settings.abbreviation {
		abbreviations = findByPrefix(tx.multiShorts, name)
	}
	firstRune, _ := utf8.DecodeRuneInString(body)
	bundleEntry, bundleOK := findSingleShort(tx.singleShorts, firstRune)

	total := len(abbreviations)
	if bundleOK {
		total++
	}
	switch {
	// More than one interpretation: report the ambiguity along with
	// the sorted candidate spellings.
	case total > 1:
		var bundled []singleShortEntry
		if bundleOK {
			bundled = append(bundled, bundleEntry)
		}
		return handler(AmbiguousOptionToken{
			Idx:        argIdx,
			Name:       prefix + name,
			Candidates: candidateSpellings(bundled, abbreviations),
		}), ""

	// A unique abbreviation resolves like a long option, including
	// the inline `=value` syntax.
	case len(abbreviations) == 1:
		return handler(OptionToken{
			Idx:      argIdx,
			Option:   abbreviations[0].index,
			Name:     prefix + name,
			Argument: arg, HasArgument: hasArg,
		}), ""

	// Only the bundle interpretation: peel single shorts one by one.
	case bundleOK:
		return tx.peelBundle(argIdx, prefix, body, handler)

	// Entries shaped like negative numbers are positional arguments
	// rather than unrecognized options.
	case negativeNumberPattern.MatchString(raw):
		return handler(ArgumentToken{Idx: argIdx, Value: raw}), ""

	default:
		return handler(UnknownOptionToken{Idx: argIdx, Name: prefix + name}), ""
	}
}

// peelBundle walks a short bundle rune by rune. The caller guarantees
// that the first rune is a registered single short.
//
// The last matched option is held back one step: when the walk hits an
// unregistered rune, the remainder starting at that rune becomes the
// held option's inline argument, and the parser decides whether that
// is an extraneous argument.
func (tx *Tokenizer) peelBundle(
	argIdx int, prefix, body string, handler func(Token) TokenizeResult) (TokenizeResult, string) {
	var (
		held     singleShortEntry
		heldName string
		haveHeld bool
	)
	for pos := 0; pos < len(body); {
		r, size := utf8.DecodeRuneInString(body[pos:])
		entry, known := findSingleShort(tx.singleShorts, r)

		// Attach the remainder to the held option on unknown runes.
		if !known {
			runtimex.Assert(haveHeld)
			return handler(OptionToken{
				Idx: argIdx, Option: held.index, Name: heldName,
				Argument: body[pos:], HasArgument: true,
			}), ""
		}

		// Emit the previously held option before the current one.
		if haveHeld {
			if handler(OptionToken{Idx: argIdx, Option: held.index, Name: heldName}) == TokenizeStop {
				return TokenizeStop, prefix + body[pos:]
			}
			haveHeld = false
		}

		rest := body[pos+size:]
		name := prefix + string(r)
		kind := tx.kinds[entry.index]
		switch {
		// A required argument takes the raw remainder verbatim.
		case kind == OptionArgumentRequired && rest != "":
			return handler(OptionToken{
				Idx: argIdx, Option: entry.index, Name: name,
				Argument: rest, HasArgument: true,
			}), ""

		// An optional argument takes the remainder only when it
		// cannot continue the bundle (e.g., `-w42` but not `-ww`).
		case kind == OptionArgumentOptional && rest != "" && !tx.isSingleShort(rest):
			return handler(OptionToken{
				Idx: argIdx, Option: entry.index, Name: name,
				Argument: rest, HasArgument: true,
			}), ""

		default:
			held, heldName, haveHeld = entry, name, true
		}
		pos += size
	}
	if haveHeld {
		return handler(OptionToken{Idx: argIdx, Option: held.index, Name: heldName}), ""
	}
	return TokenizeContinue, ""
}

// isSingleShort tells whether the first rune of the given string is a
// registered single short.
func (tx *Tokenizer) isSingleShort(value string) bool {
	r, _ := utf8.DecodeRuneInString(value)
	_, found := findSingleShort(tx.singleShorts, r)
	return found
}

// insertSingleShort inserts into the sorted single-shorts dictionary,
// panicking with a [*SpecError] on duplicates.
func insertSingleShort(entries []singleShortEntry, entry singleShortEntry) []singleShortEntry {
	pos := sort.Search(len(entries), func(idx int) bool {
		return entries[idx].key >= entry.key
	})
	if pos < len(entries) && entries[pos].key == entry.key {
		panic(specErrorf("duplicate option specifier: %s", entry.prefix+string(entry.key)))
	}
	entries = append(entries, singleShortEntry{})
	copy(entries[pos+1:], entries[pos:])
	entries[pos] = entry
	return entries
}

// insertNamed inserts into a sorted named dictionary, panicking with a
// [*SpecError] on duplicates.
func insertNamed(entries []namedEntry, entry namedEntry) []namedEntry {
	pos := sort.Search(len(entries), func(idx int) bool {
		return entries[idx].key >= entry.key
	})
	if pos < len(entries) && entries[pos].key == entry.key {
		panic(specErrorf("duplicate option specifier: %s", entry.prefix+entry.key))
	}
	entries = append(entries, namedEntry{})
	copy(entries[pos+1:], entries[pos:])
	entries[pos] = entry
	return entries
}

// findSingleShort finds a rune in the sorted single-shorts dictionary.
func findSingleShort(entries []singleShortEntry, key rune) (singleShortEntry, bool) {
	pos := sort.Search(len(entries), func(idx int) bool {
		return entries[idx].key >= key
	})
	if pos < len(entries) && entries[pos].key == key {
		return entries[pos], true
	}
	return singleShortEntry{}, false
}

// findNamed finds an exact key in a sorted named dictionary.
func findNamed(entries []namedEntry, key string) (namedEntry, bool) {
	pos := sort.Search(len(entries), func(idx int) bool {
		return entries[idx].key >= key
	})
	if pos < len(entries) && entries[pos].key == key {
		return entries[pos], true
	}
	return namedEntry{}, false
}

// findByPrefix finds the entries whose key has the given query as a
// proper prefix, in key order.
func findByPrefix(entries []namedEntry, query string) []namedEntry {
	pos := sort.Search(len(entries), func(idx int) bool {
		return entries[idx].key >= query
	})
	var output []namedEntry
	for ; pos < len(entries) && strings.HasPrefix(entries[pos].key, query); pos++ {
		if entries[pos].key != query {
			output = append(output, entries[pos])
		}
	}
	return output
}

// candidateSpellings renders the prefixed spellings of the given
// entries, sorted lexicographically.
func candidateSpellings(bundled []singleShortEntry, named []namedEntry) []string {
	output := make([]string, 0, len(bundled)+len(named))
	for _, entry := range bundled {
		output = append(output, entry.prefix+string(entry.key))
	}
	for _, entry := range named {
		output = append(output, entry.prefix+entry.key)
	}
	sort.Strings(output)
	return output
}
