//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/bassosimone/flagparser/blob/main/early.go
//

package adaptiveparser

// earlyOption is an option intercepted ahead of actual parsing.
type earlyOption struct {
	// forms contains the canonical prefixed spellings to match.
	forms []string

	// handler runs when any of the forms matches.
	handler func() error
}

// AddEarlyOption registers an "early" option taking no argument.
//
// You typically use early options to register `-h` and `--help` such
// that, when the user passes those flags, regardless of whether the
// rest of the command line is correct, they see the help text in the
// output rather than parsing errors.
//
// The preflight scan compares argument-vector entries exactly against
// the option forms spelled with their canonical prefixes (an equivalent
// prefix spelling does not match) and stops at the first option-stop
// sequence. When
// a match occurs, [*Parser.Parse] invokes only the early handler and
// returns its error without tokenizing, partitioning, or validating.
//
// This method MUTATES [*Parser] and is NOT SAFE to call concurrently.
//
// This method PANICS with a [*SpecError] on a nil name or handler.
func (px *Parser) AddEarlyOption(name *OptionName, handler func() error) {
	if name == nil {
		panic(specErrorf("early option requires a name"))
	}
	if handler == nil {
		panic(specErrorf("early option %s requires a handler", name.Name()))
	}
	forms := append(name.ShortForms(), name.LongForms()...)
	px.earlyOptions = append(px.earlyOptions, earlyOption{forms: forms, handler: handler})
}

// earlyParse scans for early options ahead of parsing. The first
// return value tells whether an early option was intercepted.
func (px *Parser) earlyParse(argv []string) (bool, error) {
	if len(px.earlyOptions) <= 0 || len(argv) <= 0 {
		return false, nil
	}
	for _, arg := range argv[1:] {
		if _, found := px.settings.stopSequence(arg); found {
			return false, nil
		}
		for _, early := range px.earlyOptions {
			for _, form := range early.forms {
				if arg == form {
					return true, early.handler()
				}
			}
		}
	}
	return false, nil
}
