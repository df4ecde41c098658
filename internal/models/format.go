package models

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// FormatDate renders d as "Mar 1, 2024".
func FormatDate(d Date) string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s %d, %d", d.Month.String()[:3], d.Day, d.Year)
}

// FormatTime turns "HH:MM" into "8:00 AM". Malformed input is returned as is.
func FormatTime(hhmm string) string {
	if !IsClockTime(hhmm) {
		return hhmm
	}
	h, _ := strconv.Atoi(hhmm[:2])
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%s %s", h, hhmm[3:], ampm)
}

func DayName(d Date) string {
	return d.Weekday().String()
}

// RelativeDay labels d relative to today: "Today", "Tomorrow", the weekday
// name within a week either way, otherwise the formatted date.
func RelativeDay(d, today Date) string {
	diff := today.DaysUntil(d)
	switch {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Tomorrow"
	case diff > -7 && diff < 7:
		return DayName(d)
	}
	return FormatDate(d)
}

// Initials returns up to two upper-cased initials of name.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, word := range strings.Fields(name) {
		r := []rune(word)[0]
		b.WriteRune(unicode.ToUpper(r))
		if n++; n == 2 {
			break
		}
	}
	return b.String()
}

func SpeciesIcon(s Species) string {
	switch Species(strings.ToLower(string(s))) {
	case SpeciesDog:
		return "🐕"
	case SpeciesCat:
		return "🐈"
	case SpeciesBird:
		return "🦜"
	case SpeciesRabbit:
		return "🐇"
	case SpeciesFish:
		return "🐠"
	case SpeciesReptile:
		return "🦎"
	}
	return "🐾"
}

func CategoryIcon(c Category) string {
	switch Category(strings.ToLower(string(c))) {
	case CategoryFeeding:
		return "🍽️"
	case CategoryWalking:
		return "🚶"
	case CategoryGrooming:
		return "✂️"
	case CategoryMedication:
		return "💊"
	case CategoryVet:
		return "🩺"
	case CategoryTraining:
		return "🏆"
	case CategoryPlay:
		return "🎾"
	case CategoryCleaning:
		return "🧹"
	}
	return "📝"
}
