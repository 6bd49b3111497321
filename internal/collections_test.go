package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSetAdd tests adding items to a set
func TestSetAdd(t *testing.T) {
	set := NewSet[int]()
	set.Add(1)
	set.Add(2)
	set.Add(3)

	assert.True(t, set.Contains(1))
	assert.True(t, set.Contains(2))
	assert.True(t, set.Contains(3))
	assert.False(t, set.Contains(4))
}

// TestSetAddDuplicate tests that adding duplicate items doesn't affect membership
func TestSetAddDuplicate(t *testing.T) {
	set := NewSet[string]()
	set.Add("apple")
	set.Add("apple")
	set.Add("apple")

	assert.True(t, set.Contains("apple"))
}

// TestSetContains tests checking if items exist in the set
func TestSetContains(t *testing.T) {
	set := NewSet[string]()
	set.Add("hello")

	assert.True(t, set.Contains("hello"))
	assert.False(t, set.Contains("world"))
}

// TestSetWithStringType tests Set with string type
func TestSetWithStringType(t *testing.T) {
	set := NewSet[string]()
	set.Add("apple")
	set.Add("banana")
	set.Add("cherry")

	assert.True(t, set.Contains("apple"))
	assert.True(t, set.Contains("banana"))
	assert.True(t, set.Contains("cherry"))
	assert.False(t, set.Contains("grape"))
}
