package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:05", 545, false},
		{"14:30", 870, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9:5", 0, true},
		{"2pm", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ClockMinutes(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "23:59", FormatClock(1439))
}

func TestClock12(t *testing.T) {
	assert.Equal(t, "10:00 AM", Clock12("10:00"))
	assert.Equal(t, "02:30 PM", Clock12("14:30"))
	assert.Equal(t, "12:00 AM", Clock12("00:00"))
	// Invalid input passes through untouched.
	assert.Equal(t, "2pm", Clock12("2pm"))
}

func TestDurationMinutes(t *testing.T) {
	ev := Event{StartTime: "14:00", EndTime: "15:30"}
	assert.Equal(t, 90, ev.DurationMinutes())

	broken := Event{StartTime: "bad", EndTime: "15:30"}
	assert.Equal(t, 0, broken.DurationMinutes())
}

func TestParseDate(t *testing.T) {
	_, err := ParseDate("2025-03-14")
	assert.NoError(t, err)

	for _, bad := range []string{"14-03-2025", "2025/03/14", "tomorrow", ""} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}
