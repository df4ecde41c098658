package models

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/gookit/validate"
)

var clockTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// IsClockTime reports whether s is a 24h HH:MM time.
func IsClockTime(s string) bool {
	return clockTimeRe.MatchString(s)
}

func enumRule[T ~string](values ...T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return "in:" + strings.Join(parts, ",")
}

// collector gathers field errors from gookit and the hand-written checks
// into a single ValidationError.
type collector struct {
	errs []FieldError
}

func (c *collector) add(field, format string, args ...any) {
	c.errs = append(c.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

func (c *collector) run(data map[string]any, rules validate.MS) {
	v := validate.Map(data)
	v.StopOnError = false
	v.AddValidator("clockTime", func(val any) bool {
		s, ok := val.(string)
		return ok && IsClockTime(s)
	})
	v.AddMessages(map[string]string{
		"clockTime": "{field} must be a HH:MM time",
	})
	v.StringRules(rules)
	if v.Validate() {
		return
	}
	for field, msgs := range v.Errors.All() {
		keys := make([]string, 0, len(msgs))
		for k := range msgs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			c.add(field, "%s", msgs[k])
		}
	}
}

func (c *collector) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	sort.SliceStable(c.errs, func(i, j int) bool { return c.errs[i].Field < c.errs[j].Field })
	return &ValidationError{Errors: c.errs}
}

func (c *collector) uniqueIDs(field string, ids []string) {
	seen := make(map[string]struct{}, len(ids))
	for i, id := range ids {
		if strings.TrimSpace(id) == "" {
			c.add(fmt.Sprintf("%s[%d].id", field, i), "id is required")
			continue
		}
		if _, dup := seen[id]; dup {
			c.add(fmt.Sprintf("%s[%d].id", field, i), "duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

// ValidatePet checks a complete pet record.
func ValidatePet(p Pet) error {
	c := &collector{}
	data := map[string]any{
		"id":         p.ID,
		"name":       strings.TrimSpace(p.Name),
		"species":    string(p.Species),
		"gender":     string(p.Gender),
		"weightUnit": string(p.WeightUnit),
	}
	c.run(data, validate.MS{
		"id":         "required",
		"name":       "required",
		"species":    "required|" + enumRule(SpeciesDog, SpeciesCat, SpeciesBird, SpeciesRabbit, SpeciesFish, SpeciesReptile, SpeciesOther),
		"gender":     enumRule(GenderMale, GenderFemale, GenderUnknown),
		"weightUnit": enumRule(WeightKg, WeightLb),
	})
	if p.Age != nil && *p.Age < 0 {
		c.add("age", "age must not be negative")
	}
	if p.Weight != nil && *p.Weight < 0 {
		c.add("weight", "weight must not be negative")
	}

	ids := make([]string, len(p.Vaccinations))
	for i, v := range p.Vaccinations {
		ids[i] = v.ID
		if strings.TrimSpace(v.Name) == "" {
			c.add(fmt.Sprintf("vaccinations[%d].name", i), "name is required")
		}
	}
	c.uniqueIDs("vaccinations", ids)

	ids = make([]string, len(p.MedicalRecords))
	for i, r := range p.MedicalRecords {
		ids[i] = r.ID
		switch r.Type {
		case RecordCheckup, RecordTreatment, RecordSurgery, RecordOther:
		default:
			c.add(fmt.Sprintf("medicalRecords[%d].type", i), "unknown record type %q", r.Type)
		}
	}
	c.uniqueIDs("medicalRecords", ids)

	ids = make([]string, len(p.FeedingSchedules))
	for i, f := range p.FeedingSchedules {
		ids[i] = f.ID
		if f.Time != "" && !IsClockTime(f.Time) {
			c.add(fmt.Sprintf("feedingSchedules[%d].time", i), "time must be a HH:MM time")
		}
	}
	c.uniqueIDs("feedingSchedules", ids)

	ids = make([]string, len(p.Contacts))
	for i, ct := range p.Contacts {
		ids[i] = ct.ID
		switch ct.Role {
		case ContactVet, ContactEmergency, ContactSitter, ContactOther:
		default:
			c.add(fmt.Sprintf("contacts[%d].role", i), "unknown contact role %q", ct.Role)
		}
	}
	c.uniqueIDs("contacts", ids)

	return c.err()
}

// ValidateTask checks a complete task record.
func ValidateTask(t Task) error {
	c := &collector{}
	data := map[string]any{
		"id":        t.ID,
		"petId":     t.PetID,
		"title":     strings.TrimSpace(t.Title),
		"category":  string(t.Category),
		"frequency": string(t.Frequency),
		"time":      t.Time,
	}
	c.run(data, validate.MS{
		"id":    "required",
		"petId": "required",
		"title": "required",
		"category": "required|" + enumRule(CategoryFeeding, CategoryWalking, CategoryGrooming, CategoryMedication,
			CategoryVet, CategoryTraining, CategoryPlay, CategoryCleaning, CategoryOther),
		"frequency": "required|" + enumRule(FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyCustom),
		"time":      "clockTime",
	})
	if t.Date.IsZero() {
		c.add("date", "date is required")
	}
	if t.NotifyBefore != nil && *t.NotifyBefore < 0 {
		c.add("notifyBefore", "notifyBefore must not be negative")
	}
	for i, d := range t.RepeatDays {
		if d < 0 || d > 6 {
			c.add(fmt.Sprintf("repeatDays[%d]", i), "day must be between 0 and 6")
		}
	}
	if t.RepeatMonthDay != nil && (*t.RepeatMonthDay < 1 || *t.RepeatMonthDay > 31) {
		c.add("repeatMonthDay", "day of month must be between 1 and 31")
	}
	if ci := t.CustomInterval; ci != nil {
		if ci.Value < 1 {
			c.add("customInterval.value", "interval must be at least 1")
		}
		switch ci.Unit {
		case UnitDay, UnitWeek, UnitMonth:
		default:
			c.add("customInterval.unit", "unknown interval unit %q", ci.Unit)
		}
	}
	return c.err()
}

// ValidateUser checks a complete user profile.
func ValidateUser(u User) error {
	c := &collector{}
	data := map[string]any{
		"id":    u.ID,
		"name":  strings.TrimSpace(u.Name),
		"email": u.Email,
		"theme": string(u.Preferences.Theme),
	}
	c.run(data, validate.MS{
		"id":    "required",
		"name":  "required",
		"email": "email",
		"theme": enumRule(ThemeLight, ThemeDark, ThemeSystem),
	})
	if u.AIScansRemaining < 0 {
		c.add("aiScansRemaining", "scan count must not be negative")
	}
	if u.Preferences.ReminderTime < 0 {
		c.add("preferences.reminderTime", "reminder time must not be negative")
	}
	return c.err()
}
