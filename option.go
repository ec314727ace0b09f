//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/bassosimone/flagparser/blob/main/option.go
//

package adaptiveparser

// OptionArgumentKind tells whether an option takes an argument.
type OptionArgumentKind int

// These constants define the allowed [OptionArgumentKind] values.
const (
	// OptionArgumentNone indicates an option taking no argument.
	OptionArgumentNone = OptionArgumentKind(iota)

	// OptionArgumentOptional indicates an option taking an optional argument.
	OptionArgumentOptional

	// OptionArgumentRequired indicates an option requiring an argument.
	OptionArgumentRequired
)

// OptionHandler is the sum type over the three handler shapes. The
// concrete type you choose selects the [OptionArgumentKind] of the
// option: [NoArgumentHandler], [OptionalArgumentHandler], or
// [RequiredArgumentHandler].
type OptionHandler interface {
	argumentKind() OptionArgumentKind
}

// NoArgumentHandler handles an option taking no argument.
//
// Returning a nonzero error aborts parsing immediately.
type NoArgumentHandler func() error

var _ OptionHandler = NoArgumentHandler(nil)

func (NoArgumentHandler) argumentKind() OptionArgumentKind {
	return OptionArgumentNone
}

// OptionalArgumentHandler handles an option taking an optional
// argument. When the option occurs without an argument, the handler
// receives an empty value and false.
//
// Returning a nonzero error aborts parsing immediately.
type OptionalArgumentHandler func(value string, have bool) error

var _ OptionHandler = OptionalArgumentHandler(nil)

func (OptionalArgumentHandler) argumentKind() OptionArgumentKind {
	return OptionArgumentOptional
}

// RequiredArgumentHandler handles an option requiring an argument.
//
// Returning a nonzero error aborts parsing immediately.
type RequiredArgumentHandler func(value string) error

var _ OptionHandler = RequiredArgumentHandler(nil)

func (RequiredArgumentHandler) argumentKind() OptionArgumentKind {
	return OptionArgumentRequired
}

// OptionSpec describes an option to register with [*Parser.AddOption].
type OptionSpec struct {
	// Name is the mandatory option name.
	Name *OptionName

	// Handler is the mandatory handler; its concrete type selects
	// the argument kind of the option.
	Handler OptionHandler

	// Occurs bounds how many times the option may occur. The zero
	// value means [ZeroOrMoreTimes].
	Occurs Quantifier

	// AllowOptionLikeValue permits a pending occurrence of this
	// option to consume an unrecognized-option token as its argument
	// (e.g., `-x --bogus` passing `--bogus` to `-x`). By default, the
	// pending option is flushed, which fails with
	// [ErrMissingOptionArgument] when the option requires an argument,
	// and otherwise the unknown token fails with [ErrUnrecognizedOption].
	AllowOptionLikeValue bool
}

// NewOption creates an [*OptionSpec] with the given name and handler.
// Adjust the remaining fields directly before registration.
func NewOption(name *OptionName, handler OptionHandler) *OptionSpec {
	return &OptionSpec{Name: name, Handler: handler}
}

// PositionalSpec describes a positional slot to register with
// [*Parser.AddPositional].
type PositionalSpec struct {
	// Name is the mandatory display name of the slot.
	Name string

	// Handler receives each value assigned to the slot along with a
	// slot-local zero-based index. Returning a nonzero error aborts
	// parsing immediately.
	Handler func(index int, value string) error

	// Occurs bounds how many values the slot consumes. The zero
	// value means [Once].
	Occurs Quantifier
}

// NewPositional creates a [*PositionalSpec] with the given name and
// handler. Adjust the remaining fields directly before registration.
func NewPositional(name string, handler func(index int, value string) error) *PositionalSpec {
	return &PositionalSpec{Name: name, Handler: handler}
}
