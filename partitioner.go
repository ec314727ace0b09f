//
// SPDX-License-Identifier: GPL-3.0-or-later
//

package adaptiveparser

import "github.com/bassosimone/runtimex"

// Partitioner distributes a sequence of items across ordered slots,
// each bounded by a [Quantifier]. The [*Parser] uses it to decide how
// many positional arguments each positional slot consumes.
//
// The zero value is a valid partitioner with no slots.
type Partitioner struct {
	// quantifiers contains the bounds of each slot in order.
	quantifiers []Quantifier
}

// AddRange appends a slot with the given bounds.
//
// This method MUTATES [*Partitioner] and is NOT SAFE to call concurrently.
//
// This method PANICS with a [*SpecError] when the quantifier is invalid.
func (px *Partitioner) AddRange(q Quantifier) {
	px.quantifiers = append(px.quantifiers, NewQuantifier(q.Min, q.Max))
}

// PartitionsCount returns the number of slots added so far.
func (px *Partitioner) PartitionsCount() int {
	return len(px.quantifiers)
}

// MinimumSequenceSize returns the sum of the slot minimums.
func (px *Partitioner) MinimumSequenceSize() int {
	total := 0
	for _, q := range px.quantifiers {
		total = saturatingAdd(total, q.Min)
	}
	return total
}

// MaximumSequenceSize returns the sum of the slot maximums, where
// [Unlimited] absorbs.
func (px *Partitioner) MaximumSequenceSize() int {
	total := 0
	for _, q := range px.quantifiers {
		total = saturatingAdd(total, q.Max)
	}
	return total
}

// Partition computes how many items each slot consumes such that the
// counts sum to the given total and each count falls within its slot
// bounds. The second return value is false when no such assignment
// exists, which happens exactly when the total is below
// [Partitioner.MinimumSequenceSize] or above
// [Partitioner.MaximumSequenceSize].
//
// When more than one assignment exists, the tie break is left greedy
// with mandatory reservation: each slot takes as many items as possible
// after reserving enough items to satisfy the minimum of every later
// slot. An unbounded slot therefore absorbs the slack, preferring the
// leftmost unbounded slot.
//
// This method does not mutate [*Partitioner] and is safe to call concurrently.
func (px *Partitioner) Partition(count int) ([]int, bool) {
	if count < 0 {
		return nil, false
	}

	// Precompute the suffix sums of the minimums and maximums so that,
	// while walking the slots, we know how many items we must reserve
	// for later slots and how many they could still absorb.
	numSlots := len(px.quantifiers)
	reserved := make([]int, numSlots+1)
	capacity := make([]int, numSlots+1)
	for idx := numSlots - 1; idx >= 0; idx-- {
		reserved[idx] = saturatingAdd(reserved[idx+1], px.quantifiers[idx].Min)
		capacity[idx] = saturatingAdd(capacity[idx+1], px.quantifiers[idx].Max)
	}

	// Walk the slots left to right assigning the upper bound of the
	// feasible interval to each of them.
	remaining := count
	counts := make([]int, numSlots)
	for idx, q := range px.quantifiers {
		lower := q.Min
		if capacity[idx+1] != Unlimited && remaining-capacity[idx+1] > lower {
			lower = remaining - capacity[idx+1]
		}
		upper := q.Max
		if avail := remaining - reserved[idx+1]; upper == Unlimited || avail < upper {
			upper = avail
		}
		if lower > upper {
			return nil, false
		}
		counts[idx] = upper
		remaining -= upper
	}

	// The last slot must have consumed everything. This check only
	// fires for a partitioner with no slots and a nonzero count.
	if remaining != 0 {
		return nil, false
	}

	// Ensure the assignment actually covers all the items.
	total := 0
	for _, value := range counts {
		total += value
	}
	runtimex.Assert(total == count)
	return counts, true
}
