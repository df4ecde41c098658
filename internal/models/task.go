package models

type Category string

const (
	CategoryFeeding    Category = "feeding"
	CategoryWalking    Category = "walking"
	CategoryGrooming   Category = "grooming"
	CategoryMedication Category = "medication"
	CategoryVet        Category = "vet"
	CategoryTraining   Category = "training"
	CategoryPlay       Category = "play"
	CategoryCleaning   Category = "cleaning"
	CategoryOther      Category = "other"
)

type Frequency string

const (
	FrequencyOnce    Frequency = "once"
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyCustom  Frequency = "custom"
)

type IntervalUnit string

const (
	UnitDay   IntervalUnit = "day"
	UnitWeek  IntervalUnit = "week"
	UnitMonth IntervalUnit = "month"
)

type CustomInterval struct {
	Value int          `json:"value"`
	Unit  IntervalUnit `json:"unit"`
}

// Task is a scheduled care item. Recurrence fields are descriptive; nothing
// expands them into occurrences.
type Task struct {
	ID             string          `json:"id"`
	PetID          string          `json:"petId"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Category       Category        `json:"category"`
	Date           Date            `json:"date"`
	Time           string          `json:"time,omitempty"`
	Frequency      Frequency       `json:"frequency"`
	Completed      bool            `json:"completed"`
	NotifyBefore   *int            `json:"notifyBefore,omitempty"`
	RepeatDays     []int           `json:"repeatDays,omitempty"`
	RepeatMonthDay *int            `json:"repeatMonthDay,omitempty"`
	CustomInterval *CustomInterval `json:"customInterval,omitempty"`
}

func (t Task) Clone() Task {
	c := t
	c.RepeatDays = cloneSlice(t.RepeatDays)
	if t.NotifyBefore != nil {
		n := *t.NotifyBefore
		c.NotifyBefore = &n
	}
	if t.RepeatMonthDay != nil {
		d := *t.RepeatMonthDay
		c.RepeatMonthDay = &d
	}
	if t.CustomInterval != nil {
		ci := *t.CustomInterval
		c.CustomInterval = &ci
	}
	return c
}

type TaskPatch struct {
	PetID          *string         `json:"petId,omitempty"`
	Title          *string         `json:"title,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Category       *Category       `json:"category,omitempty"`
	Date           *Date           `json:"date,omitempty"`
	Time           *string         `json:"time,omitempty"`
	Frequency      *Frequency      `json:"frequency,omitempty"`
	Completed      *bool           `json:"completed,omitempty"`
	NotifyBefore   *int            `json:"notifyBefore,omitempty"`
	RepeatDays     *[]int          `json:"repeatDays,omitempty"`
	RepeatMonthDay *int            `json:"repeatMonthDay,omitempty"`
	CustomInterval *CustomInterval `json:"customInterval,omitempty"`
}

func (tp TaskPatch) Apply(t Task) Task {
	out := t.Clone()
	setIf(&out.PetID, tp.PetID)
	setIf(&out.Title, tp.Title)
	setIf(&out.Description, tp.Description)
	setIf(&out.Category, tp.Category)
	setIf(&out.Date, tp.Date)
	setIf(&out.Time, tp.Time)
	setIf(&out.Frequency, tp.Frequency)
	setIf(&out.Completed, tp.Completed)
	if tp.NotifyBefore != nil {
		n := *tp.NotifyBefore
		out.NotifyBefore = &n
	}
	if tp.RepeatDays != nil {
		out.RepeatDays = cloneSlice(*tp.RepeatDays)
	}
	if tp.RepeatMonthDay != nil {
		d := *tp.RepeatMonthDay
		out.RepeatMonthDay = &d
	}
	if tp.CustomInterval != nil {
		ci := *tp.CustomInterval
		out.CustomInterval = &ci
	}
	return out
}
