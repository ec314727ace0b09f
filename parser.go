//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/bassosimone/flagparser/blob/main/parser.go
// Adapted from: https://github.com/bassosimone/flagparser/blob/main/doparse.go
//

package adaptiveparser

import (
	"fmt"
	"io"
	"strings"

	"github.com/bassosimone/runtimex"
	"github.com/kballard/go-shellquote"
)

// ErrUnrecognizedOption is returned when an option-shaped entry does
// not resolve to any registered option.
type ErrUnrecognizedOption struct {
	// Name is the unrecognized spelling, with its canonical prefix.
	Name string
}

var _ error = ErrUnrecognizedOption{}

// Error returns a string representation of this error.
func (err ErrUnrecognizedOption) Error() string {
	return fmt.Sprintf("unrecognized option: %s", err.Name)
}

// ErrAmbiguousOption is returned when an abbreviated option resolves
// to more than one registered option.
type ErrAmbiguousOption struct {
	// Name is the ambiguous spelling, with its canonical prefix.
	Name string

	// Candidates contains the matching specifiers, sorted lexicographically.
	Candidates []string
}

var _ error = ErrAmbiguousOption{}

// Error returns a string representation of this error.
func (err ErrAmbiguousOption) Error() string {
	return fmt.Sprintf("ambiguous option: %s (could be %s)",
		err.Name, strings.Join(err.Candidates, ", "))
}

// ErrMissingOptionArgument is returned when an option requiring an
// argument terminates without one.
type ErrMissingOptionArgument struct {
	// Name is the option spelling used on the command line.
	Name string
}

var _ error = ErrMissingOptionArgument{}

// Error returns a string representation of this error.
func (err ErrMissingOptionArgument) Error() string {
	return fmt.Sprintf("argument required for option: %s", err.Name)
}

// ErrExtraOptionArgument is returned when an inline argument is
// supplied to an option taking no argument.
type ErrExtraOptionArgument struct {
	// Name is the option spelling used on the command line.
	Name string
}

var _ error = ErrExtraOptionArgument{}

// Error returns a string representation of this error.
func (err ErrExtraOptionArgument) Error() string {
	return fmt.Sprintf("extraneous argument for option: %s", err.Name)
}

// ErrExtraPositional is returned when there are more positional
// arguments than the positional slots accept at their maximum.
type ErrExtraPositional struct {
	// Value is the first positional argument that does not fit.
	Value string
}

var _ error = ErrExtraPositional{}

// Error returns a string representation of this error.
func (err ErrExtraPositional) Error() string {
	return fmt.Sprintf("unexpected argument: %s", err.Value)
}

// ErrValidation is returned when an occurrence bound is unmet or a
// registered validator evaluates to false.
type ErrValidation struct {
	// Description describes the violated constraint.
	Description string
}

var _ error = ErrValidation{}

// Error returns a string representation of this error.
func (err ErrValidation) Error() string {
	return fmt.Sprintf("invalid arguments: %s", err.Description)
}

// parserValidator pairs a predicate with its description.
type parserValidator struct {
	check       func(ValidationData) bool
	description string
}

// Parser is an adaptive command line parser: options dispatch to their
// handlers in argument-vector order while positional arguments are
// buffered and distributed across the positional slots at the end.
//
// Construct with [NewParser] for common Unix conventions or with
// [NewParserWithSettings] for custom conventions, then register
// options, positional slots, and validators. Registration methods
// MUTATE the parser, are NOT SAFE to call concurrently, and PANIC
// with a [*SpecError] on programming errors.
type Parser struct {
	// settings is the tokenization policy.
	settings *Settings

	// tokenizer turns the argument vector into tokens.
	tokenizer *Tokenizer

	// partitioner distributes positionals across the slots.
	partitioner *Partitioner

	// options lists the registered options in registration order.
	options []*OptionSpec

	// positionals lists the registered slots in registration order.
	positionals []*PositionalSpec

	// earlyOptions lists the registered early options.
	earlyOptions []earlyOption

	// validators lists the validators in registration order,
	// including the ones derived from occurrence quantifiers.
	validators []parserValidator
}

// parseDebugWriter is only used by tests to surface parsing steps.
var parseDebugWriter = io.Discard

// NewParser creates a [*Parser] using [CommonUnixSettings].
func NewParser() *Parser {
	return NewParserWithSettings(CommonUnixSettings())
}

// NewParserWithSettings creates a [*Parser] using the given settings,
// which MUST be fully configured: later settings mutations have no
// effect on the parser.
func NewParserWithSettings(settings *Settings) *Parser {
	tokenizer := NewTokenizer(settings)
	return &Parser{
		settings:    tokenizer.settings,
		tokenizer:   tokenizer,
		partitioner: &Partitioner{},
	}
}

// NewOptionName is a convenience calling [NewOptionName] with the
// parser settings.
func (px *Parser) NewOptionName(specifiers ...string) *OptionName {
	return NewOptionName(px.settings, specifiers...)
}

// AddOption registers an option. The concrete type of the handler
// selects the argument kind. The occurrence quantifier, defaulting to
// [ZeroOrMoreTimes], registers derived validators enforcing its bounds.
//
// This method MUTATES [*Parser] and is NOT SAFE to call concurrently.
//
// This method PANICS with a [*SpecError] on a nil name or handler and
// on duplicate option specifiers.
func (px *Parser) AddOption(spec *OptionSpec) {
	if spec == nil || spec.Name == nil {
		panic(specErrorf("option spec requires a name"))
	}
	if spec.Handler == nil {
		panic(specErrorf("option %s requires a handler", spec.Name.Name()))
	}
	px.tokenizer.Add(spec.Name, spec.Handler.argumentKind())
	px.options = append(px.options, spec)
	occurs := quantifierOrDefault(spec.Occurs, ZeroOrMoreTimes)
	occurs = NewQuantifier(occurs.Min, occurs.Max) // reject invalid bounds
	if occurs.Min > 0 {
		px.appendValidator(newOccursAtLeast("option", spec.Name.Name(), occurs.Min))
	}
	if occurs.Max != Unlimited {
		px.appendValidator(newOccursAtMost("option", spec.Name.Name(), occurs.Max))
	}
}

// AddPositional registers a positional slot. The occurrence
// quantifier, defaulting to [Once], feeds the positional partitioner.
//
// This method MUTATES [*Parser] and is NOT SAFE to call concurrently.
//
// This method PANICS with a [*SpecError] on an empty name, a nil
// handler, or an invalid quantifier.
func (px *Parser) AddPositional(spec *PositionalSpec) {
	if spec == nil || spec.Name == "" {
		panic(specErrorf("positional spec requires a name"))
	}
	if spec.Handler == nil {
		panic(specErrorf("positional %s requires a handler", spec.Name))
	}
	px.positionals = append(px.positionals, spec)
	px.partitioner.AddRange(quantifierOrDefault(spec.Occurs, Once))
}

// AddValidator registers a validator; its description derives from
// [Validator.Describe].
//
// This method MUTATES [*Parser] and is NOT SAFE to call concurrently.
func (px *Parser) AddValidator(validator Validator) {
	if validator == nil {
		panic(specErrorf("validator cannot be nil"))
	}
	px.appendValidator(validator)
}

// AddValidatorFunc registers a plain predicate along with the
// description to use when it fails.
//
// This method MUTATES [*Parser] and is NOT SAFE to call concurrently.
func (px *Parser) AddValidatorFunc(check func(ValidationData) bool, description string) {
	if check == nil {
		panic(specErrorf("validator cannot be nil"))
	}
	px.validators = append(px.validators, parserValidator{check: check, description: description})
}

func (px *Parser) appendValidator(validator Validator) {
	px.validators = append(px.validators, parserValidator{
		check:       validator.Evaluate,
		description: validator.Describe(0),
	})
}

// pendingOption tracks an option awaiting its argument: the parser's
// one-token lookahead state.
type pendingOption struct {
	// spec is the option awaiting completion.
	spec *OptionSpec

	// name is the spelling used on the command line.
	name string
}

// parseState is the per-call mutable state of [*Parser.Parse].
type parseState struct {
	parser      *Parser
	validation  ValidationData
	positionals []string
	pending     *pendingOption
	err         error
}

// Parse parses the given argument vector. The entry at index 0 is the
// program name and is skipped.
//
// Option handlers run in argument-vector order, including within short
// bundles. Positional handlers run after the whole vector has been
// tokenized and partitioned, in argument-vector order with
// monotonically increasing slot-local indices. Validators run last, in
// registration order. The first error aborts parsing.
//
// This method does not mutate [*Parser] and is safe to call
// concurrently as long as the registered handlers are.
func (px *Parser) Parse(argv []string) error {
	// Intercept early options ahead of actual parsing.
	if handled, err := px.earlyParse(argv); handled {
		return err
	}

	// Tokenize, dispatching option handlers on the fly and buffering
	// positional arguments. The first error stops the tokenization;
	// the unconsumed tail is irrelevant since we abort.
	state := &parseState{parser: px, validation: ValidationData{}}
	px.tokenizer.Tokenize(argv, state.handleToken)
	if state.err != nil {
		return state.err
	}
	if err := state.flushPending(); err != nil {
		return err
	}

	// Distribute the buffered positionals across the slots and
	// dispatch the positional handlers.
	if err := px.dispatchPositionals(state); err != nil {
		return err
	}

	// Run the validators over the observed occurrence counts.
	for _, validator := range px.validators {
		if !validator.check(state.validation) {
			return ErrValidation{Description: validator.description}
		}
	}
	return nil
}

// ParseString splits a shell-quoted command line and parses it. As
// with [*Parser.Parse], the first word is the program name.
func (px *Parser) ParseString(command string) error {
	argv, err := shellquote.Split(command)
	if err != nil {
		return err
	}
	return px.Parse(argv)
}

// handleToken is the tokenize handler driving the parse.
func (state *parseState) handleToken(token Token) TokenizeResult {
	fmt.Fprintf(parseDebugWriter, "processing token: %+v\n", token)
	switch token := token.(type) {

	case OptionToken:
		if err := state.flushPending(); err != nil {
			return state.stop(err)
		}
		spec := state.parser.options[token.Option]
		if err := state.processOption(spec, token); err != nil {
			return state.stop(err)
		}
		return TokenizeContinue

	case ArgumentToken:
		if state.pending != nil {
			return state.resume(state.completePending(token.Value))
		}
		state.positionals = append(state.positionals, token.Value)
		return TokenizeContinue

	case UnknownOptionToken:
		// A pending option explicitly permitting option-like values
		// consumes the unknown spelling as its argument.
		if state.pending != nil && state.pending.spec.AllowOptionLikeValue {
			return state.resume(state.completePending(token.Name))
		}
		if err := state.flushPending(); err != nil {
			return state.stop(err)
		}
		return state.stop(ErrUnrecognizedOption{Name: token.Name})

	case AmbiguousOptionToken:
		if err := state.flushPending(); err != nil {
			return state.stop(err)
		}
		return state.stop(ErrAmbiguousOption{Name: token.Name, Candidates: token.Candidates})

	case OptionStopToken:
		return state.resume(state.flushPending())

	default:
		panic(fmt.Sprintf("unhandled token type: %T", token))
	}
}

// stop records the error and halts the tokenization.
func (state *parseState) stop(err error) TokenizeResult {
	state.err = err
	return TokenizeStop
}

// resume continues unless the given error is nonzero.
func (state *parseState) resume(err error) TokenizeResult {
	if err != nil {
		return state.stop(err)
	}
	return TokenizeContinue
}

// processOption dispatches a recognized option: it either invokes the
// handler right away or parks the option awaiting its argument.
func (state *parseState) processOption(spec *OptionSpec, token OptionToken) error {
	switch handler := spec.Handler.(type) {

	case NoArgumentHandler:
		if token.HasArgument {
			return ErrExtraOptionArgument{Name: token.Name}
		}
		if err := handler(); err != nil {
			return err
		}
		state.count(spec)
		return nil

	case OptionalArgumentHandler:
		if token.HasArgument {
			if err := handler(token.Argument, true); err != nil {
				return err
			}
			state.count(spec)
			return nil
		}
		state.pending = &pendingOption{spec: spec, name: token.Name}
		return nil

	case RequiredArgumentHandler:
		if token.HasArgument {
			if err := handler(token.Argument); err != nil {
				return err
			}
			state.count(spec)
			return nil
		}
		state.pending = &pendingOption{spec: spec, name: token.Name}
		return nil

	default:
		panic(fmt.Sprintf("unhandled option handler type: %T", spec.Handler))
	}
}

// completePending feeds the given value to the pending option.
func (state *parseState) completePending(value string) error {
	pending := state.pending
	state.pending = nil
	switch handler := pending.spec.Handler.(type) {
	case OptionalArgumentHandler:
		if err := handler(value, true); err != nil {
			return err
		}
	case RequiredArgumentHandler:
		if err := handler(value); err != nil {
			return err
		}
	default:
		panic(fmt.Sprintf("unhandled pending handler type: %T", pending.spec.Handler))
	}
	state.count(pending.spec)
	return nil
}

// flushPending completes the pending option without an argument: an
// optional-argument option runs with no value, while an option
// requiring an argument fails.
func (state *parseState) flushPending() error {
	if state.pending == nil {
		return nil
	}
	pending := state.pending
	state.pending = nil
	switch handler := pending.spec.Handler.(type) {
	case OptionalArgumentHandler:
		if err := handler("", false); err != nil {
			return err
		}
	case RequiredArgumentHandler:
		return ErrMissingOptionArgument{Name: pending.name}
	default:
		panic(fmt.Sprintf("unhandled pending handler type: %T", pending.spec.Handler))
	}
	state.count(pending.spec)
	return nil
}

// count records an occurrence under the option's canonical name.
func (state *parseState) count(spec *OptionSpec) {
	state.validation[spec.Name.Name()]++
}

// dispatchPositionals partitions the buffered positional arguments
// across the slots and invokes the positional handlers.
func (px *Parser) dispatchPositionals(state *parseState) error {
	counts, feasible := px.partitioner.Partition(len(state.positionals))
	if !feasible {
		return px.positionalsError(state)
	}

	cursor := 0
	for idx, spec := range px.positionals {
		for local := 0; local < counts[idx]; local++ {
			value := state.positionals[cursor]
			cursor++
			fmt.Fprintf(parseDebugWriter, "positional %s[%d] = %q\n", spec.Name, local, value)
			if err := spec.Handler(local, value); err != nil {
				return err
			}
			state.validation[spec.Name]++
		}
	}
	runtimex.Assert(cursor == len(state.positionals))
	return nil
}

// positionalsError maps an infeasible partition to the structured
// error describing it.
func (px *Parser) positionalsError(state *parseState) error {
	// Too many positionals: report the first one that does not fit.
	maxSize := px.partitioner.MaximumSequenceSize()
	if maxSize != Unlimited && len(state.positionals) > maxSize {
		return ErrExtraPositional{Value: state.positionals[maxSize]}
	}

	// Otherwise identify the first slot whose minimum is unmet after
	// serving the minimum of each slot left to right.
	remaining := len(state.positionals)
	for _, spec := range px.positionals {
		occurs := quantifierOrDefault(spec.Occurs, Once)
		if remaining < occurs.Min {
			description := newOccursAtLeast("positional argument", spec.Name, occurs.Min).Describe(0)
			return ErrValidation{Description: description}
		}
		remaining -= occurs.Min
	}
	panic("partition infeasible with satisfiable bounds")
}
