package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hel…", Truncate("hello", 4))
	assert.Equal(t, "", Truncate("hello", 0))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "Casual chic", FirstLine("\n  Casual chic\nmore"))
	assert.Equal(t, "", FirstLine("  \n"))
}

func TestTags(t *testing.T) {
	assert.Equal(t, "#street #denim", FormatTags([]string{"street", " #denim", ""}))
	assert.Equal(t, []string{"street", "denim", "summer"}, ParseTags("#street, denim summer"))
	assert.Empty(t, ParseTags(" , "))
}

func TestAgo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "just now", Ago(now.Add(-10*time.Second), now))
	assert.Equal(t, "5m ago", Ago(now.Add(-5*time.Minute), now))
	assert.Equal(t, "3h ago", Ago(now.Add(-3*time.Hour), now))
	assert.Equal(t, "2d ago", Ago(now.Add(-49*time.Hour), now))
	assert.Equal(t, "Jan 2, 2026", Ago(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "", Ago(time.Time{}, now))
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "8/10", FormatScore(8))
	assert.Equal(t, "7.5/10", FormatScore(7.5))
}
