//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: https://github.com/bassosimone/flagparser/blob/main/doc.go
//

/*
Package adaptiveparser implements an adaptive command line parser.

Unlike a getopt-style parser, which returns the parsed values, this parser
dispatches each option to a handler as soon as it is recognized, buffers
positional arguments, and distributes them across the registered positional
slots once the whole command line has been tokenized. Each option and each
positional slot carries a [Quantifier] bounding how many times it may occur.

To parse arguments, you need to:

 1. Create a [*Parser] instance (typically using the [NewParser] factory,
    which configures common Unix conventions, or [NewParserWithSettings]
    when you need custom prefixes).

 2. Register options with [*Parser.AddOption], positional slots with
    [*Parser.AddPositional], and, optionally, cross-cutting constraints
    with [*Parser.AddValidator].

 3. Invoke [*Parser.Parse] passing it `os.Args`.

The first element of the argument vector is the program name and is
always skipped, mirroring the C `argv` convention.

# Option Names

Each option is named by one or more specifiers (e.g., `-v`, `--verbose`).
A specifier starts with a configured prefix. Short specifiers with a
single-character body can be bundled (`-xvz`); longer short bodies
(e.g., `-foo`) match exactly or by abbreviation. Long specifiers support
`name=value` syntax and unambiguous abbreviation, unless disabled
through [*Settings.AllowAbbreviation].

# Argument Kinds

The handler you attach to an [OptionSpec] selects the argument kind:

 1. [NoArgumentHandler]: the option takes no argument (e.g., `--verbose`).

 2. [OptionalArgumentHandler]: the option takes an optional argument
    (e.g., `--work` or `--work=2`).

 3. [RequiredArgumentHandler]: the option requires an argument, either
    inline (`--output=FILE`, `-oFILE`) or as the next token.

# Positional Slots

Positional arguments are buffered during parsing and assigned to slots
at the end, using a left-greedy partition that reserves enough arguments
for the minimum of every later slot. For example, with slots `foo`
occurring one or more times and `bar` occurring once, the command line
`a b c` assigns `a b` to `foo` and `c` to `bar`.

# Validators

After all handlers have run, validators inspect the per-name occurrence
counts. The [OptionRequired] and [OptionAbsent] leaves combine through
[AllOf], [AnyOf], [OneOf], [AllOrNone], and [Not], which applies De
Morgan's laws eagerly so that the resulting tree still describes itself
in error messages.

# Errors

Parsing returns structured errors ([ErrUnrecognizedOption],
[ErrAmbiguousOption], [ErrMissingOptionArgument],
[ErrExtraOptionArgument], [ErrExtraPositional], [ErrValidation]).
Registration mistakes (duplicate specifiers, invalid quantifiers, bare
prefixes) are programming errors and panic with a [*SpecError] value.

# Divergences From Other Parsers

Two behaviors deliberately differ from getopt- and argparse-style
parsers:

 1. A numeric-looking argument such as `-2` is an option only when
    registered; otherwise it is a positional argument, even when other
    numeric options exist.

 2. Inline `=value` syntax is accepted for abbreviated and multi-character
    short options (e.g., `-fo=a` for `-foo`), while a bundled
    single-character short takes the remainder verbatim (`-z=a` passes
    `=a` to `-z`).
*/
package adaptiveparser
