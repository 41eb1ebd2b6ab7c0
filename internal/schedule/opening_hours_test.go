package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayFor(t *testing.T) {
	hours := OpeningHours{
		{DayOfWeek: 1, IsOpen: true, Slots: []TimeRange{{Start: "09:00", End: "18:00"}}},
	}

	monday := hours.DayFor(time.Monday)
	assert.True(t, monday.IsOpen)
	assert.Len(t, monday.Slots, 1)

	// dia ausente lê como fechado
	sunday := hours.DayFor(time.Sunday)
	assert.False(t, sunday.IsOpen)
	assert.Empty(t, sunday.Slots)
}

func TestAt(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	date := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)

	got, ok := At(date, "09:30")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 2, 9, 30, 0, 0, loc), got)

	_, ok = At(date, "25:00")
	assert.False(t, ok)

	_, ok = At(date, "9h30")
	assert.False(t, ok)
}

func TestParseRange(t *testing.T) {
	ok, usable := TimeRange{Start: "09:00", End: "12:00"}.ParseRange()
	assert.True(t, ok)
	assert.True(t, usable)

	// end <= start: válido sintaticamente, mas não gera candidatos
	ok, usable = TimeRange{Start: "12:00", End: "12:00"}.ParseRange()
	assert.True(t, ok)
	assert.False(t, usable)

	ok, usable = TimeRange{Start: "14:00", End: "10:00"}.ParseRange()
	assert.True(t, ok)
	assert.False(t, usable)

	ok, _ = TimeRange{Start: "abc", End: "10:00"}.ParseRange()
	assert.False(t, ok)
}

func TestDefaultOpeningHours(t *testing.T) {
	hours := DefaultOpeningHours()
	require.Len(t, hours, 7)

	assert.False(t, hours.DayFor(time.Sunday).IsOpen)

	for wd := time.Monday; wd <= time.Saturday; wd++ {
		day := hours.DayFor(wd)
		assert.True(t, day.IsOpen)
		require.Len(t, day.Slots, 1)
		assert.Equal(t, "09:00", day.Slots[0].Start)
		assert.Equal(t, "18:00", day.Slots[0].End)
	}
}

func TestOpeningHoursScanRoundTrip(t *testing.T) {
	orig := DefaultOpeningHours()

	raw, err := orig.Value()
	require.NoError(t, err)

	var decoded OpeningHours
	require.NoError(t, decoded.Scan(raw))
	assert.Equal(t, orig, decoded)

	// coluna nula
	var fromNil OpeningHours
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)

	assert.Error(t, decoded.Scan(42))
}
