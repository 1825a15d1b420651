package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid", input: "10-09-2026"},
		{name: "padded", input: "  10-09-2026  "},
		{name: "unicode dashes", input: "10–09–2026"},
		{name: "leading byte order mark", input: "\uFEFF10-09-2026"},
		{name: "iso order rejected", input: "2026-09-10", wantErr: true},
		{name: "day out of range", input: "32-01-2026", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "10-09-2026", FormatDate(got))
		})
	}
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", FormatTime(got))

	got, err = ParseTime("09:30:45")
	require.NoError(t, err)
	assert.Equal(t, "09:30:45", FormatTimeSeconds(got))

	_, err = ParseTime("25:00")
	require.Error(t, err)
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("10-09-2026 09:30")
	require.NoError(t, err)
	assert.Equal(t, "10-09-2026 09:30", FormatDateTime(got))

	got, err = ParseDateTime("10-09-2026 09:30:45")
	require.NoError(t, err)
	assert.Equal(t, "10-09-2026 09:30:45", FormatDateTimeSeconds(got))

	// NBSP between date and time
	got, err = ParseDateTime("10-09-2026 09:30")
	require.NoError(t, err)
	assert.Equal(t, "10-09-2026 09:30", FormatDateTime(got))

	_, err = ParseDateTime("garbage")
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	date, err := NormalizeDate(" 10-09-2026 ")
	require.NoError(t, err)
	assert.Equal(t, "10-09-2026", date)

	tm, err := NormalizeTime("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", tm)

	dt, err := NormalizeDateTime("10-09-2026   09:30:45")
	require.NoError(t, err)
	assert.Equal(t, "10-09-2026 09:30:45", dt)
}

func TestCombine(t *testing.T) {
	got, err := Combine("10-09-2026", "09:30")
	require.NoError(t, err)
	assert.Equal(t, "10-09-2026 09:30", FormatDateTime(got))

	_, err = Combine("bad", "09:30")
	require.Error(t, err)
	_, err = Combine("10-09-2026", "bad")
	require.Error(t, err)
}

func TestParseDurationToMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "00:30", want: 30},
		{input: "01:30", want: 90},
		{input: "00:00", want: 0},
		{input: "00:30:00", wantErr: true},
		{input: "", wantErr: true},
		{input: "90", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDurationToMinutes(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDurationFromMinutes(t *testing.T) {
	got, err := FormatDurationFromMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "01:30", got)

	_, err = FormatDurationFromMinutes(-1)
	require.Error(t, err)
}

func TestComputeEndAndDurationMinutes(t *testing.T) {
	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)

	end, err := ComputeEnd(start, 45)
	require.NoError(t, err)
	assert.Equal(t, start.Add(45*time.Minute), end)

	_, err = ComputeEnd(start, 0)
	require.Error(t, err)

	minutes, err := DurationMinutes(start, end)
	require.NoError(t, err)
	assert.Equal(t, 45, minutes)

	_, err = DurationMinutes(end, start)
	require.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2026, 9, 10, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{name: "overlapping", aStart: at(9, 0), aEnd: at(10, 0), bStart: at(9, 30), bEnd: at(10, 30), want: true},
		{name: "contained", aStart: at(9, 0), aEnd: at(11, 0), bStart: at(9, 30), bEnd: at(10, 0), want: true},
		{name: "back to back", aStart: at(9, 0), aEnd: at(10, 0), bStart: at(10, 0), bEnd: at(11, 0), want: false},
		{name: "disjoint", aStart: at(9, 0), aEnd: at(10, 0), bStart: at(12, 0), bEnd: at(13, 0), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Overlaps(at(10, 0), at(9, 0), at(9, 0), at(10, 0))
	require.Error(t, err)
}
