package color

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestForKey(t *testing.T) {
	assert.Same(t, ForKey("user-1"), ForKey("user-1"))

	seen := map[*color.Color]bool{}
	for _, id := range []string{"user-1", "user-2", "user-3", "user-4", "user-5", "user-6", "user-7", "user-8"} {
		seen[ForKey(id)] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestName(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	assert.Equal(t, "Emma Wilson", Name("user-1", "Emma Wilson"))
}
