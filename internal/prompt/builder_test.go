package prompt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestBuildSystemPromptInjectsToday(t *testing.T) {
	b := NewBuilder("UTC")
	b.Now = fixedClock(time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC))

	got := b.BuildSystemPrompt()

	assert.Contains(t, got, "CalBot")
	assert.Contains(t, got, "Today's date is Friday, March 14, 2025 (2025-03-14).")
	assert.Contains(t, got, "YYYY-MM-DD")
	assert.Contains(t, got, "HH:MM 24-hour")
	assert.Contains(t, got, "assume 30 minutes")
}

func TestBuildSystemPromptResolvesTimezone(t *testing.T) {
	// 20:00 UTC on March 14 is already March 15 in Kolkata (UTC+5:30).
	b := NewBuilder("Asia/Kolkata")
	b.Now = fixedClock(time.Date(2025, 3, 14, 20, 0, 0, 0, time.UTC))

	assert.Equal(t, "2025-03-15", b.Today())
	assert.Contains(t, b.BuildSystemPrompt(), "(2025-03-15)")
}

func TestBuildSystemPromptUnknownZoneFallsBack(t *testing.T) {
	b := NewBuilder("Not/AZone")
	b.Now = fixedClock(time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, "2025-03-14", b.Today())
}
