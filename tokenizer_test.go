//
// SPDX-License-Identifier: GPL-3.0-or-later
//

package adaptiveparser

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// collectTokens tokenizes the given argument vector and returns all
// the emitted tokens.
func collectTokens(tx *Tokenizer, argv []string) []Token {
	var tokens []Token
	rest := tx.Tokenize(argv, func(token Token) TokenizeResult {
		tokens = append(tokens, token)
		return TokenizeContinue
	})
	if len(rest) > 0 {
		panic("unexpected rest")
	}
	return tokens
}

func TestTokenizer_Tokenize(t *testing.T) {
	// Define the test case structure
	type testcase struct {
		name     string                // test name
		settings func() *Settings      // settings factory, nil means common Unix
		register func(tx *Tokenizer)   // option registration
		args     []string              // argument vector minus the program name
		expect   []Token               // expected tokens
	}

	// registerUnix registers -x (none), -yyy (none), -z (required),
	// and -w (optional) mirroring common bundle scenarios.
	registerUnix := func(tx *Tokenizer) {
		settings := CommonUnixSettings()
		tx.Add(NewOptionName(settings, "-x"), OptionArgumentNone)
		tx.Add(NewOptionName(settings, "-yyy"), OptionArgumentNone)
		tx.Add(NewOptionName(settings, "-z"), OptionArgumentRequired)
		tx.Add(NewOptionName(settings, "-w"), OptionArgumentOptional)
	}

	cases := []testcase{
		{
			name:     "bundle with trailing required argument",
			register: registerUnix,
			args:     []string{"-xza"},
			expect: []Token{
				OptionToken{Idx: 1, Option: 0, Name: "-x"},
				OptionToken{Idx: 1, Option: 2, Name: "-z", Argument: "a", HasArgument: true},
			},
		},

		{
			name:     "required short takes the remainder verbatim",
			register: registerUnix,
			args:     []string{"-z=a"},
			expect: []Token{
				OptionToken{Idx: 1, Option: 2, Name: "-z", Argument: "=a", HasArgument: true},
			},
		},

		{
			name:     "unknown rune attaches the remainder to the held option",
			register: registerUnix,
			args:     []string{"-xa"},
			expect: []Token{
				OptionToken{Idx: 1, Option: 0, Name: "-x", Argument: "a", HasArgument: true},
			},
		},

		{
			name:     "unknown leading rune rejects the whole bundle",
			register: registerUnix,
			args:     []string{"-yx"},
			expect: []Token{
				UnknownOptionToken{Idx: 1, Name: "-yx"},
			},
		},

		{
			name:     "exact multi short wins",
			register: registerUnix,
			args:     []string{"-yyy"},
			expect: []Token{
				OptionToken{Idx: 1, Option: 1, Name: "-yyy"},
			},
		},

		{
			name:     "optional short bundles with itself",
			register: registerUnix,
			args:     []string{"-ww", "42"},
			expect: []Token{
				OptionToken{Idx: 1, Option: 3, Name: "-w"},
				OptionToken{Idx: 1, Option: 3, Name: "-w"},
				ArgumentToken{Idx: 2, Value: "42"},
			},
		},

		{
			name:     "optional short takes a non-bundleable remainder",
			register: registerUnix,
			args:     []string{"-w42"},
			expect: []Token{
				OptionToken{Idx: 1, Option: 3, Name: "-w", Argument: "42", HasArgument: true},
			},
		},

		{
			name:     "negative numbers fall back to arguments",
			register: registerUnix,
			args:     []string{"-2", "-315", "-2.5"},
			expect: []Token{
				ArgumentToken{Idx: 1, Value: "-2"},
				ArgumentToken{Idx: 2, Value: "-315"},
				ArgumentToken{Idx: 3, Value: "-2.5"},
			},
		},

		{
			name:     "non-numeric unknown shorts stay unknown",
			register: registerUnix,
			args:     []string{"-q"},
			expect: []Token{
				UnknownOptionToken{Idx: 1, Name: "-q"},
			},
		},

		{
			name:     "lone prefixes and empty entries are arguments",
			register: registerUnix,
			args:     []string{"-", ""},
			expect: []Token{
				ArgumentToken{Idx: 1, Value: "-"},
				ArgumentToken{Idx: 2, Value: ""},
			},
		},

		{
			name:     "stop sequence downgrades everything",
			register: registerUnix,
			args:     []string{"--", "-x", "-2"},
			expect: []Token{
				OptionStopToken{Idx: 1, Sequence: "--"},
				ArgumentToken{Idx: 2, Value: "-x"},
				ArgumentToken{Idx: 3, Value: "-2"},
			},
		},

		{
			name: "multi short with inline and abbreviated values",
			register: func(tx *Tokenizer) {
				settings := CommonUnixSettings()
				tx.Add(NewOptionName(settings, "-foo"), OptionArgumentRequired)
			},
			args: []string{"-foo=a", "-fo", "-f=a", "-fooa"},
			expect: []Token{
				OptionToken{Idx: 1, Option: 0, Name: "-foo", Argument: "a", HasArgument: true},
				OptionToken{Idx: 2, Option: 0, Name: "-fo"},
				OptionToken{Idx: 3, Option: 0, Name: "-f", Argument: "a", HasArgument: true},
				UnknownOptionToken{Idx: 4, Name: "-fooa"},
			},
		},

		{
			name: "bundle interpretation competes with abbreviations",
			register: func(tx *Tokenizer) {
				settings := CommonUnixSettings()
				tx.Add(NewOptionName(settings, "-f"), OptionArgumentRequired)
				tx.Add(NewOptionName(settings, "-foobar"), OptionArgumentRequired)
				tx.Add(NewOptionName(settings, "-foorab"), OptionArgumentRequired)
			},
			args: []string{"-fo"},
			expect: []Token{
				AmbiguousOptionToken{
					Idx:        1,
					Name:       "-fo",
					Candidates: []string{"-f", "-foobar", "-foorab"},
				},
			},
		},

		{
			name: "unique bundle interpretation wins over no abbreviation",
			register: func(tx *Tokenizer) {
				settings := CommonUnixSettings()
				tx.Add(NewOptionName(settings, "-f"), OptionArgumentRequired)
				tx.Add(NewOptionName(settings, "-foobar"), OptionArgumentRequired)
				tx.Add(NewOptionName(settings, "-foorab"), OptionArgumentRequired)
			},
			args: []string{"-foa"},
			expect: []Token{
				OptionToken{Idx: 1, Option: 0, Name: "-f", Argument: "oa", HasArgument: true},
			},
		},

		{
			name: "exact single short wins over abbreviations",
			register: func(tx *Tokenizer) {
				settings := CommonUnixSettings()
				tx.Add(NewOptionName(settings, "-f"), OptionArgumentRequired)
				tx.Add(NewOptionName(settings, "-foobar"), OptionArgumentRequired)
			},
			args: []string{"-f"},
			expect: []Token{
				OptionToken{Idx: 1, Option: 0, Name: "-f"},
			},
		},

		{
			name: "long options with abbreviation",
			register: func(tx *Tokenizer) {
				settings := CommonUnixSettings()
				tx.Add(NewOptionName(settings, "--badger"), OptionArgumentNone)
				tx.Add(NewOptionName(settings, "--bat"), OptionArgumentRequired)
			},
			args: []string{"--bad", "--bat=X", "--b", "--bar", "--ba=4"},
			expect: []Token{
				OptionToken{Idx: 1, Option: 0, Name: "--bad"},
				OptionToken{Idx: 2, Option: 1, Name: "--bat", Argument: "X", HasArgument: true},
				AmbiguousOptionToken{Idx: 3, Name: "--b", Candidates: []string{"--badger", "--bat"}},
				UnknownOptionToken{Idx: 4, Name: "--bar"},
				AmbiguousOptionToken{Idx: 5, Name: "--ba", Candidates: []string{"--badger", "--bat"}},
			},
		},

		{
			name: "exact long match wins over abbreviations",
			register: func(tx *Tokenizer) {
				settings := CommonUnixSettings()
				tx.Add(NewOptionName(settings, "--badger"), OptionArgumentNone)
				tx.Add(NewOptionName(settings, "--ba"), OptionArgumentRequired)
			},
			args: []string{"--ba", "--b", "--bad"},
			expect: []Token{
				OptionToken{Idx: 1, Option: 1, Name: "--ba"},
				AmbiguousOptionToken{Idx: 2, Name: "--b", Candidates: []string{"--ba", "--badger"}},
				OptionToken{Idx: 3, Option: 0, Name: "--bad"},
			},
		},

		{
			name: "disallowing abbreviation",
			settings: func() *Settings {
				return CommonUnixSettings().AllowAbbreviation(false)
			},
			register: func(tx *Tokenizer) {
				settings := CommonUnixSettings()
				tx.Add(NewOptionName(settings, "--foonly", "-foonly"), OptionArgumentRequired)
			},
			args: []string{"--foon", "-foon", "--foonly=3"},
			expect: []Token{
				UnknownOptionToken{Idx: 1, Name: "--foon"},
				UnknownOptionToken{Idx: 2, Name: "-foon"},
				OptionToken{Idx: 3, Option: 0, Name: "--foonly", Argument: "3", HasArgument: true},
			},
		},

		{
			name: "custom equivalent prefixes canonicalize",
			settings: func() *Settings {
				return NewSettings().
					AddShortPrefix("+", "_").
					AddShortPrefix("/", "&").
					AddLongPrefix("::", ":").
					AddValueDelimiter('|', '*').
					AddOptionStopSequence("^^", "%%")
			},
			register: func(tx *Tokenizer) {
				settings := NewSettings().
					AddShortPrefix("+").
					AddShortPrefix("/").
					AddLongPrefix("::")
				tx.Add(NewOptionName(settings, "+f"), OptionArgumentNone)
				tx.Add(NewOptionName(settings, "::bar"), OptionArgumentRequired)
				tx.Add(NewOptionName(settings, "/baz"), OptionArgumentNone)
			},
			args: []string{"_f", ":ba|B", "::ba*A|B", "&b", "--bar", "%%", "+f"},
			expect: []Token{
				OptionToken{Idx: 1, Option: 0, Name: "+f"},
				OptionToken{Idx: 2, Option: 1, Name: "::ba", Argument: "B", HasArgument: true},
				OptionToken{Idx: 3, Option: 1, Name: "::ba", Argument: "A|B", HasArgument: true},
				OptionToken{Idx: 4, Option: 2, Name: "/b"},
				ArgumentToken{Idx: 5, Value: "--bar"},
				OptionStopToken{Idx: 6, Sequence: "^^"},
				ArgumentToken{Idx: 7, Value: "+f"},
			},
		},

		{
			name: "short prefix bodies may contain prefix characters",
			settings: func() *Settings {
				return CommonUnixSettings().AddShortPrefix("+")
			},
			register: func(tx *Tokenizer) {
				settings := CommonUnixSettings().AddShortPrefix("+")
				tx.Add(NewOptionName(settings, "-+-"), OptionArgumentNone)
			},
			args: []string{"-+-", "-", "+"},
			expect: []Token{
				OptionToken{Idx: 1, Option: 0, Name: "-+-"},
				ArgumentToken{Idx: 2, Value: "-"},
				ArgumentToken{Idx: 3, Value: "+"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			settings := CommonUnixSettings()
			if tc.settings != nil {
				settings = tc.settings()
			}
			tx := NewTokenizer(settings)
			if tc.register != nil {
				tc.register(tx)
			}
			argv := append([]string{"prog"}, tc.args...)
			got := collectTokens(tx, argv)
			var expect []Token
			expect = append(expect, tc.expect...)
			if diff := cmp.Diff(expect, got); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestTokenizer_AddRejectsDuplicates(t *testing.T) {
	settings := CommonUnixSettings()
	tx := NewTokenizer(settings)
	tx.Add(NewOptionName(settings, "-v", "--verbose"), OptionArgumentNone)
	assert.PanicsWithError(t, "duplicate option specifier: -v", func() {
		tx.Add(NewOptionName(settings, "-v"), OptionArgumentNone)
	})
	assert.PanicsWithError(t, "duplicate option specifier: --verbose", func() {
		tx.Add(NewOptionName(settings, "--verbose"), OptionArgumentRequired)
	})
	assert.PanicsWithError(t, "duplicate option specifier: -foo", func() {
		tx.Add(NewOptionName(settings, "-foo"), OptionArgumentNone)
		tx.Add(NewOptionName(settings, "-foo"), OptionArgumentNone)
	})
}

// Stopping mid bundle must return a tail that can be fed back to the
// tokenizer to observe exactly the remaining tokens.
func TestTokenizer_StopReturnsLosslessTail(t *testing.T) {
	settings := CommonUnixSettings()
	tx := NewTokenizer(settings)
	tx.Add(NewOptionName(settings, "-x"), OptionArgumentNone)
	tx.Add(NewOptionName(settings, "-v"), OptionArgumentNone)
	tx.Add(NewOptionName(settings, "-z"), OptionArgumentRequired)

	argv := []string{"prog", "-xvza", "file.txt"}

	// Stop right after the first token of the bundle.
	var seen []Token
	rest := tx.Tokenize(argv, func(token Token) TokenizeResult {
		seen = append(seen, token)
		return TokenizeStop
	})
	assert.Equal(t, []Token{OptionToken{Idx: 1, Option: 0, Name: "-x"}}, seen)
	assert.Equal(t, []string{"-vza", "file.txt"}, rest)

	// Re-feeding the tail yields the remaining tokens.
	refeed := append([]string{"prog"}, rest...)
	got := collectTokens(tx, refeed)
	expect := []Token{
		OptionToken{Idx: 1, Option: 1, Name: "-v"},
		OptionToken{Idx: 1, Option: 2, Name: "-z", Argument: "a", HasArgument: true},
		ArgumentToken{Idx: 2, Value: "file.txt"},
	}
	if diff := cmp.Diff(expect, got); diff != "" {
		t.Fatal(diff)
	}

	// The full concatenated trace matches tokenizing in one go.
	var full []Token
	fullTrace := collectTokens(tx, argv)
	full = append(full, seen...)
	full = append(full, got...)
	assert.Equal(t, len(fullTrace), len(full))
	for idx := range fullTrace {
		assert.Equal(t, fullTrace[idx].String(), full[idx].String())
	}
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "-x", OptionToken{Idx: 1, Name: "-x"}.String())
	assert.Equal(t, "--foo=bar", OptionToken{
		Idx: 1, Name: "--foo", Argument: "bar", HasArgument: true}.String())
	assert.Equal(t, "value", ArgumentToken{Idx: 1, Value: "value"}.String())
	assert.Equal(t, "--", OptionStopToken{Idx: 1, Sequence: "--"}.String())
	assert.Equal(t, "-q", UnknownOptionToken{Idx: 1, Name: "-q"}.String())
	token := AmbiguousOptionToken{Idx: 1, Name: "--b", Candidates: []string{"--ba", "--bb"}}
	assert.Equal(t, "--b", token.String())
	assert.Equal(t, 1, token.Index())
	assert.True(t, strings.HasPrefix(token.Candidates[0], "--"))
}
