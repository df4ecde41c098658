package services

import (
	"petcare/internal/models"
	"sort"
)

const (
	upcomingLimit      = 5
	scheduleDaysBefore = 3
	scheduleDaysAfter  = 10
)

// TaskView is a task decorated for display.
type TaskView struct {
	models.Task
	PetName     string `json:"petName"`
	Icon        string `json:"icon"`
	DisplayTime string `json:"displayTime,omitempty"`
	DisplayDate string `json:"displayDate"`
	RelativeDay string `json:"relativeDay"`
}

type Dashboard struct {
	Today          models.Date `json:"today"`
	PetCount       int         `json:"petCount"`
	PendingCount   int         `json:"pendingCount"`
	Pending        []TaskView  `json:"pending"`
	Completed      []TaskView  `json:"completed"`
	Premium        bool        `json:"premium"`
	ScansRemaining int         `json:"scansRemaining"`
	ScanLocked     bool        `json:"scanLocked"`
}

type ScheduleSlot struct {
	Date      models.Date `json:"date"`
	DayName   string      `json:"dayName"`
	Day       int         `json:"day"`
	IsToday   bool        `json:"isToday"`
	Selected  bool        `json:"selected"`
	TaskCount int         `json:"taskCount"`
}

type ScheduleDay struct {
	Date      models.Date    `json:"date"`
	Label     string         `json:"label"`
	Window    []ScheduleSlot `json:"window"`
	Pending   []TaskView     `json:"pending"`
	Completed []TaskView     `json:"completed"`
}

type ViewServiceInterface interface {
	Dashboard() Dashboard
	UpcomingForPet(petID string) []TaskView
	Schedule(date models.Date) ScheduleDay
}

// ViewService recomputes every view from the full collections on each call.
type ViewService struct {
	pets  PetStoreInterface
	tasks TaskStoreInterface
	users UserStoreInterface
}

func NewViewService(pets PetStoreInterface, tasks TaskStoreInterface, users UserStoreInterface) ViewServiceInterface {
	return &ViewService{pets: pets, tasks: tasks, users: users}
}

// Partition splits tasks into pending and completed, keeping their order.
func Partition(tasks []models.Task) (pending, completed []models.Task) {
	pending = make([]models.Task, 0, len(tasks))
	completed = make([]models.Task, 0)
	for _, t := range tasks {
		if t.Completed {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed
}

// SortByDateTime orders tasks by calendar date, then by time of day.
func SortByDateTime(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if c := tasks[i].Date.Compare(tasks[j].Date); c != 0 {
			return c < 0
		}
		return tasks[i].Time < tasks[j].Time
	})
}

// ScheduleWindow lists the dates offered around today: three days back and
// ten ahead.
func ScheduleWindow(today models.Date) []models.Date {
	out := make([]models.Date, 0, scheduleDaysBefore+scheduleDaysAfter+1)
	for i := -scheduleDaysBefore; i <= scheduleDaysAfter; i++ {
		out = append(out, today.AddDays(i))
	}
	return out
}

func (v *ViewService) petNames() map[string]string {
	names := make(map[string]string)
	for _, p := range v.pets.List() {
		names[p.ID] = p.Name
	}
	return names
}

func (v *ViewService) decorate(tasks []models.Task, names map[string]string, today models.Date) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		view := TaskView{
			Task:        t,
			PetName:     names[t.PetID],
			Icon:        models.CategoryIcon(t.Category),
			DisplayDate: models.FormatDate(t.Date),
			RelativeDay: models.RelativeDay(t.Date, today),
		}
		if t.Time != "" {
			view.DisplayTime = models.FormatTime(t.Time)
		}
		out = append(out, view)
	}
	return out
}

func (v *ViewService) Dashboard() Dashboard {
	today := v.tasks.Today()
	names := v.petNames()
	pending, completed := Partition(v.tasks.ForToday())

	d := Dashboard{
		Today:        today,
		PetCount:     len(names),
		PendingCount: len(pending),
		Pending:      v.decorate(pending, names, today),
		Completed:    v.decorate(completed, names, today),
		Premium:      v.users.IsPremiumActive(),
	}
	if u, ok := v.users.Current(); ok {
		d.ScansRemaining = u.AIScansRemaining
	}
	d.ScanLocked = !d.Premium && d.ScansRemaining <= 0
	return d
}

// UpcomingForPet returns at most five pending tasks of the pet, earliest
// first.
func (v *ViewService) UpcomingForPet(petID string) []TaskView {
	pending, _ := Partition(v.tasks.ForPet(petID))
	SortByDateTime(pending)
	if len(pending) > upcomingLimit {
		pending = pending[:upcomingLimit]
	}
	return v.decorate(pending, v.petNames(), v.tasks.Today())
}

func (v *ViewService) Schedule(date models.Date) ScheduleDay {
	today := v.tasks.Today()
	if date.IsZero() {
		date = today
	}
	names := v.petNames()

	counts := make(map[models.Date]int)
	for _, t := range v.tasks.List() {
		counts[t.Date]++
	}
	window := ScheduleWindow(today)
	slots := make([]ScheduleSlot, 0, len(window))
	for _, d := range window {
		slots = append(slots, ScheduleSlot{
			Date:      d,
			DayName:   models.DayName(d)[:3],
			Day:       d.Day,
			IsToday:   d == today,
			Selected:  d == date,
			TaskCount: counts[d],
		})
	}

	pending, completed := Partition(v.tasks.ForDate(date))
	return ScheduleDay{
		Date:      date,
		Label:     models.FormatDate(date),
		Window:    slots,
		Pending:   v.decorate(pending, names, today),
		Completed: v.decorate(completed, names, today),
	}
}
