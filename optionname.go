//
// SPDX-License-Identifier: GPL-3.0-or-later
//

package adaptiveparser

import (
	"fmt"
	"unicode/utf8"
)

// SpecError is a programming error detected while registering options,
// positional slots, validators, or settings. Registration fails fast:
// the offending call PANICS with a *SpecError rather than deferring the
// problem to parse time, keeping the programming-error channel distinct
// from the parse-error channel.
type SpecError struct {
	// Message describes the programming error.
	Message string
}

var _ error = &SpecError{}

// Error returns a string representation of this error.
func (err *SpecError) Error() string {
	return err.Message
}

// specErrorf formats a [*SpecError] suitable for panicking.
func specErrorf(format string, v ...any) *SpecError {
	return &SpecError{Message: fmt.Sprintf(format, v...)}
}

// nameForm is a single parsed option specifier.
type nameForm struct {
	// prefix is the canonical prefix spelling.
	prefix string

	// body is the specifier without its prefix.
	body string
}

// spelling returns the canonical prefixed spelling of the form.
func (form nameForm) spelling() string {
	return form.prefix + form.body
}

// OptionName is the immutable name of an option, built from one or
// more specifiers (e.g., `-v`, `--verbose`). Construct with
// [NewOptionName] or [*Parser.NewOptionName].
type OptionName struct {
	// display is the canonical display name.
	display string

	// shorts contains the short forms in registration order.
	shorts []nameForm

	// longs contains the long forms in registration order.
	longs []nameForm
}

// NewOptionName parses the given specifiers against the settings
// prefixes and returns the resulting [*OptionName].
//
// Each specifier must begin with a configured prefix (the longest
// matching spelling wins) and must have a nonempty body. A long prefix
// yields a long form. A short prefix yields a short form: single-rune
// bodies can be bundled by the tokenizer, longer bodies match exactly
// or by abbreviation.
//
// The canonical display name is the first long form, if any, and the
// lexicographically first short form otherwise.
//
// This function PANICS with a [*SpecError] when a specifier does not
// start with a configured prefix or is a bare prefix.
func NewOptionName(settings *Settings, specifiers ...string) *OptionName {
	if len(specifiers) <= 0 {
		panic(specErrorf("option name requires at least one specifier"))
	}
	name := &OptionName{}
	for _, specifier := range specifiers {
		entry, body, found := settings.splitPrefix(specifier)
		if !found {
			panic(specErrorf("option specifier %q does not start with a configured prefix", specifier))
		}
		if body == "" {
			panic(specErrorf("option specifier %q is a bare prefix", specifier))
		}
		form := nameForm{prefix: entry.canonical, body: body}
		switch entry.class {
		case prefixClassLong:
			name.longs = append(name.longs, form)
		case prefixClassShort:
			name.shorts = append(name.shorts, form)
		default:
			panic(specErrorf("unhandled prefix class: %d", entry.class))
		}
	}
	name.display = name.selectDisplayName()
	return name
}

// selectDisplayName implements the canonical-name selection policy.
func (name *OptionName) selectDisplayName() string {
	if len(name.longs) > 0 {
		return name.longs[0].spelling()
	}
	display := name.shorts[0].spelling()
	for _, form := range name.shorts[1:] {
		if spelling := form.spelling(); spelling < display {
			display = spelling
		}
	}
	return display
}

// Name returns the canonical display name, including its prefix.
func (name *OptionName) Name() string {
	return name.display
}

// ShortForms returns the short forms with their canonical prefixes,
// in registration order.
func (name *OptionName) ShortForms() []string {
	return name.spellings(name.shorts)
}

// LongForms returns the long forms with their canonical prefixes,
// in registration order.
func (name *OptionName) LongForms() []string {
	return name.spellings(name.longs)
}

func (name *OptionName) spellings(forms []nameForm) []string {
	output := make([]string, 0, len(forms))
	for _, form := range forms {
		output = append(output, form.spelling())
	}
	return output
}

// isSingleRune returns true when the string contains exactly one rune.
func isSingleRune(value string) bool {
	_, size := utf8.DecodeRuneInString(value)
	return size > 0 && size == len(value)
}
