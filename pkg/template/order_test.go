//go:build unit

package template

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNaturalLess(t *testing.T) {
	names := []string{
		"milestone-10",
		"milestone-2",
		"README.md",
		"milestone-1",
		"issue-1.10.md",
		"issue-1.2.md",
		"issue-1.1.md",
		"alpha",
		"milestone-02",
	}

	sort.Slice(names, func(i, j int) bool {
		return naturalLess(names[i], names[j])
	})

	assert.Equal(t, []string{
		"README.md",
		"alpha",
		"issue-1.1.md",
		"issue-1.2.md",
		"issue-1.10.md",
		"milestone-1",
		"milestone-02",
		"milestone-2",
		"milestone-10",
	}, names)
}

func TestNaturalLess_TotalOrder(t *testing.T) {
	assert.False(t, naturalLess("a", "a"))
	assert.True(t, naturalLess("a1", "a1b"))
	assert.False(t, naturalLess("a1b", "a1"))
	assert.True(t, naturalLess("a01", "a1"))
	assert.False(t, naturalLess("a1", "a01"))
}
