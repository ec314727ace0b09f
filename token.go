//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/bassosimone/flagparser/blob/main/value.go
//

package adaptiveparser

// Token is a token produced by [*Tokenizer.Tokenize].
type Token interface {
	// Index returns the index of the argument-vector entry that
	// contains the token. A bundled entry such as `-xvz` yields
	// several tokens sharing the same index.
	Index() int

	// String returns a diagnostic representation of the token.
	String() string
}

// OptionToken is a [Token] containing a recognized option.
type OptionToken struct {
	// Idx is the index of the containing argument-vector entry.
	Idx int

	// Option is the index assigned to the option by [*Tokenizer.Add].
	Option int

	// Name is the specific spelling used on the command line, with
	// its canonical prefix (e.g., `-f`, `--fo` for an abbreviation).
	Name string

	// Argument is the inline argument, when HasArgument is true.
	Argument string

	// HasArgument tells whether an inline argument was present. Note
	// that an empty inline argument (e.g., `--foo=`) is present.
	HasArgument bool
}

var _ Token = OptionToken{}

// Index implements [Token].
func (tk OptionToken) Index() int {
	return tk.Idx
}

// String implements [Token].
func (tk OptionToken) String() string {
	if tk.HasArgument {
		return tk.Name + "=" + tk.Argument
	}
	return tk.Name
}

// ArgumentToken is a [Token] containing a positional argument.
type ArgumentToken struct {
	// Idx is the index of the containing argument-vector entry.
	Idx int

	// Value is the argument text, possibly empty.
	Value string
}

var _ Token = ArgumentToken{}

// Index implements [Token].
func (tk ArgumentToken) Index() int {
	return tk.Idx
}

// String implements [Token].
func (tk ArgumentToken) String() string {
	return tk.Value
}

// OptionStopToken is a [Token] containing an option-stop sequence:
// every subsequent entry is an [ArgumentToken].
type OptionStopToken struct {
	// Idx is the index of the containing argument-vector entry.
	Idx int

	// Sequence is the canonical spelling of the stop sequence.
	Sequence string
}

var _ Token = OptionStopToken{}

// Index implements [Token].
func (tk OptionStopToken) Index() int {
	return tk.Idx
}

// String implements [Token].
func (tk OptionStopToken) String() string {
	return tk.Sequence
}

// UnknownOptionToken is a [Token] containing an option-shaped entry
// that does not resolve to any registered option.
type UnknownOptionToken struct {
	// Idx is the index of the containing argument-vector entry.
	Idx int

	// Name is the unrecognized spelling, with its canonical prefix.
	Name string
}

var _ Token = UnknownOptionToken{}

// Index implements [Token].
func (tk UnknownOptionToken) Index() int {
	return tk.Idx
}

// String implements [Token].
func (tk UnknownOptionToken) String() string {
	return tk.Name
}

// AmbiguousOptionToken is a [Token] containing an abbreviated option
// that resolves to more than one registered option.
type AmbiguousOptionToken struct {
	// Idx is the index of the containing argument-vector entry.
	Idx int

	// Name is the ambiguous spelling, with its canonical prefix.
	Name string

	// Candidates contains the matching specifiers, with their
	// canonical prefixes, sorted lexicographically.
	Candidates []string
}

var _ Token = AmbiguousOptionToken{}

// Index implements [Token].
func (tk AmbiguousOptionToken) Index() int {
	return tk.Idx
}

// String implements [Token].
func (tk AmbiguousOptionToken) String() string {
	return tk.Name
}
