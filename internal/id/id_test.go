package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNext_UsesClock(t *testing.T) {
	now := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)
	g := NewGenerator(fixed(now))
	assert.Equal(t, Format(now.UnixMilli()), g.Next())
}

func TestNext_Monotonic(t *testing.T) {
	now := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)
	g := NewGenerator(fixed(now))

	var prev int64
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		s := g.Next()
		ms, err := Parse(s)
		require.NoError(t, err)
		assert.Greater(t, ms, prev)
		assert.False(t, seen[s])
		seen[s] = true
		prev = ms
	}
}

func TestNext_ClockStepsBack(t *testing.T) {
	times := []time.Time{
		time.Date(2024, 3, 13, 12, 0, 1, 0, time.UTC),
		time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC),
	}
	i := 0
	g := NewGenerator(func() time.Time { t := times[i]; i++; return t })

	first, _ := Parse(g.Next())
	second, _ := Parse(g.Next())
	assert.Equal(t, first+1, second)
}

func TestSeed(t *testing.T) {
	now := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)
	g := NewGenerator(fixed(now))
	future := Format(now.UnixMilli() + 5000)
	g.Seed("bogus", future, "1")

	got, err := Parse(g.Next())
	require.NoError(t, err)
	assert.Equal(t, now.UnixMilli()+5001, got)
}

func TestParse_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"not-valid",
		"-5",
		"12a",
	}
	for _, input := range badInputs {
		_, err := Parse(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}
