//
// SPDX-License-Identifier: GPL-3.0-or-later
//

package adaptiveparser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantifierConstants(t *testing.T) {
	assert.Equal(t, Quantifier{Min: 1, Max: 1}, Once)
	assert.Equal(t, Quantifier{Min: 0, Max: 1}, NeverOrOnce)
	assert.Equal(t, Quantifier{Min: 0, Max: Unlimited}, ZeroOrMoreTimes)
	assert.Equal(t, Quantifier{Min: 1, Max: Unlimited}, OneOrMoreTimes)
}

func TestNewQuantifier(t *testing.T) {
	assert.Equal(t, Quantifier{Min: 2, Max: 3}, NewQuantifier(2, 3))
	assert.PanicsWithError(t, "invalid quantifier: min=3 max=2", func() {
		NewQuantifier(3, 2)
	})
	assert.PanicsWithError(t, "invalid quantifier: min=-1 max=2", func() {
		NewQuantifier(-1, 2)
	})
}

func TestQuantifier_Add(t *testing.T) {
	assert.Equal(t, Quantifier{Min: 3, Max: 4}, Once.Add(Quantifier{Min: 2, Max: 3}))
	assert.Equal(t, Quantifier{Min: 1, Max: Unlimited}, Once.Add(ZeroOrMoreTimes))
	assert.Equal(t, Quantifier{Min: 2, Max: Unlimited}, OneOrMoreTimes.Add(OneOrMoreTimes))
}

func TestQuantifier_Satisfies(t *testing.T) {
	q := NewQuantifier(2, 3)
	assert.False(t, q.Satisfies(1))
	assert.True(t, q.Satisfies(2))
	assert.True(t, q.Satisfies(3))
	assert.False(t, q.Satisfies(4))
	assert.True(t, ZeroOrMoreTimes.Satisfies(1<<20))
}

func TestQuantifier_Remaining(t *testing.T) {
	q := NewQuantifier(0, 3)
	assert.Equal(t, 3, q.Remaining(0))
	assert.Equal(t, 1, q.Remaining(2))
	assert.Equal(t, 0, q.Remaining(3))
	assert.Equal(t, 0, q.Remaining(5))
	assert.Equal(t, Unlimited, ZeroOrMoreTimes.Remaining(1<<20))
}

func TestQuantifier_IsUnlimited(t *testing.T) {
	assert.False(t, Once.IsUnlimited())
	assert.True(t, OneOrMoreTimes.IsUnlimited())
}

func TestQuantifierOrDefault(t *testing.T) {
	assert.Equal(t, Once, quantifierOrDefault(Quantifier{}, Once))
	assert.Equal(t, NeverOrOnce, quantifierOrDefault(NeverOrOnce, Once))
}
