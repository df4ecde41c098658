package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Mar 1, 2024", FormatDate(MustParseDate("2024-03-01")))
	assert.Equal(t, "Dec 25, 2023", FormatDate(MustParseDate("2023-12-25")))
	assert.Equal(t, "", FormatDate(Date{}))
}

func TestFormatTime(t *testing.T) {
	cases := map[string]string{
		"00:05": "12:05 AM",
		"08:00": "8:00 AM",
		"12:00": "12:00 PM",
		"18:30": "6:30 PM",
		"bad":   "bad",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatTime(in), in)
	}
}

func TestRelativeDay(t *testing.T) {
	today := MustParseDate("2024-03-01") // Friday
	assert.Equal(t, "Today", RelativeDay(today, today))
	assert.Equal(t, "Tomorrow", RelativeDay(today.AddDays(1), today))
	assert.Equal(t, "Tuesday", RelativeDay(today.AddDays(4), today))
	assert.Equal(t, "Wednesday", RelativeDay(today.AddDays(-2), today))
	assert.Equal(t, "Mar 11, 2024", RelativeDay(today.AddDays(10), today))
}

func TestInitialsAndIcons(t *testing.T) {
	assert.Equal(t, "PO", Initials("pet owner"))
	assert.Equal(t, "MS", Initials("Mister Sir Whiskers"))
	assert.Equal(t, "B", Initials("Buddy"))
	assert.Equal(t, "", Initials("  "))

	assert.Equal(t, "🐕", SpeciesIcon(SpeciesDog))
	assert.Equal(t, "🐾", SpeciesIcon(SpeciesOther))
	assert.Equal(t, "💊", CategoryIcon(CategoryMedication))
	assert.Equal(t, "📝", CategoryIcon("unknown"))
}
