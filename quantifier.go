//
// SPDX-License-Identifier: GPL-3.0-or-later
//

package adaptiveparser

import "math"

// Unlimited is the [Quantifier] upper bound meaning "no upper bound".
const Unlimited = math.MaxInt

// Quantifier bounds how many times an option or a positional slot
// may occur. The invariant is `0 <= Min <= Max`.
//
// The zero value is special: specs treat it as "use the default
// occurrence" ([Once] for positionals, [ZeroOrMoreTimes] for options).
type Quantifier struct {
	// Min is the minimum number of occurrences.
	Min int

	// Max is the maximum number of occurrences, possibly [Unlimited].
	Max int
}

// Common quantifier values.
var (
	// Once requires exactly one occurrence.
	Once = Quantifier{Min: 1, Max: 1}

	// NeverOrOnce allows zero or one occurrence.
	NeverOrOnce = Quantifier{Min: 0, Max: 1}

	// ZeroOrMoreTimes allows any number of occurrences.
	ZeroOrMoreTimes = Quantifier{Min: 0, Max: Unlimited}

	// OneOrMoreTimes requires at least one occurrence.
	OneOrMoreTimes = Quantifier{Min: 1, Max: Unlimited}
)

// NewQuantifier creates a [Quantifier] with the given bounds.
//
// This function PANICS with a [*SpecError] when min is negative or
// greater than max, since an invalid quantifier is a programming error.
func NewQuantifier(minOccurs, maxOccurs int) Quantifier {
	if minOccurs < 0 || maxOccurs < 0 || minOccurs > maxOccurs {
		panic(specErrorf("invalid quantifier: min=%d max=%d", minOccurs, maxOccurs))
	}
	return Quantifier{Min: minOccurs, Max: maxOccurs}
}

// Add sums two quantifiers component-wise, where [Unlimited] absorbs.
func (q Quantifier) Add(other Quantifier) Quantifier {
	return Quantifier{
		Min: saturatingAdd(q.Min, other.Min),
		Max: saturatingAdd(q.Max, other.Max),
	}
}

// Satisfies returns true when count falls within the bounds.
func (q Quantifier) Satisfies(count int) bool {
	return count >= q.Min && count <= q.Max
}

// Remaining returns how many more occurrences are allowed after
// observing count of them. The result saturates at zero and is
// [Unlimited] when the quantifier is unbounded.
func (q Quantifier) Remaining(count int) int {
	if q.Max == Unlimited {
		return Unlimited
	}
	if count >= q.Max {
		return 0
	}
	return q.Max - count
}

// IsUnlimited returns true when there is no upper bound.
func (q Quantifier) IsUnlimited() bool {
	return q.Max == Unlimited
}

// saturatingAdd sums two non-negative counts saturating at [Unlimited].
func saturatingAdd(left, right int) int {
	if left == Unlimited || right == Unlimited || left > Unlimited-right {
		return Unlimited
	}
	return left + right
}

// quantifierOrDefault maps the zero value to the given default.
func quantifierOrDefault(q, defaults Quantifier) Quantifier {
	if q == (Quantifier{}) {
		return defaults
	}
	return q
}
