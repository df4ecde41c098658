package models

import "time"

type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

type Preferences struct {
	Notifications bool  `json:"notifications"`
	Theme         Theme `json:"theme"`
	ReminderTime  int   `json:"reminderTime"`
}

type User struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Email            string      `json:"email"`
	IsPremium        bool        `json:"isPremium"`
	PremiumUntil     *time.Time  `json:"premiumUntil,omitempty"`
	AIScansRemaining int         `json:"aiScansRemaining"`
	Preferences      Preferences `json:"preferences"`
}

const (
	DefaultUserID       = "1"
	DefaultUserName     = "Pet Owner"
	DefaultUserEmail    = "pet.owner@example.com"
	DefaultReminderTime = 30
)

// DefaultUser is the profile created on first start.
func DefaultUser(freeScans int) User {
	return User{
		ID:               DefaultUserID,
		Name:             DefaultUserName,
		Email:            DefaultUserEmail,
		AIScansRemaining: freeScans,
		Preferences: Preferences{
			Notifications: true,
			Theme:         ThemeLight,
			ReminderTime:  DefaultReminderTime,
		},
	}
}

// PremiumActiveAt reports whether the premium entitlement is in effect at
// now. The flag alone is not enough: the expiry must be strictly later.
func (u User) PremiumActiveAt(now time.Time) bool {
	return u.IsPremium && u.PremiumUntil != nil && u.PremiumUntil.After(now)
}

func (u User) Clone() User {
	c := u
	if u.PremiumUntil != nil {
		t := *u.PremiumUntil
		c.PremiumUntil = &t
	}
	return c
}

type PreferencesPatch struct {
	Notifications *bool  `json:"notifications,omitempty"`
	Theme         *Theme `json:"theme,omitempty"`
	ReminderTime  *int   `json:"reminderTime,omitempty"`
}

type UserPatch struct {
	Name             *string           `json:"name,omitempty"`
	Email            *string           `json:"email,omitempty"`
	IsPremium        *bool             `json:"isPremium,omitempty"`
	PremiumUntil     *time.Time        `json:"premiumUntil,omitempty"`
	AIScansRemaining *int              `json:"aiScansRemaining,omitempty"`
	Preferences      *PreferencesPatch `json:"preferences,omitempty"`
}

func (up UserPatch) Apply(u User) User {
	out := u.Clone()
	setIf(&out.Name, up.Name)
	setIf(&out.Email, up.Email)
	setIf(&out.IsPremium, up.IsPremium)
	if up.PremiumUntil != nil {
		t := *up.PremiumUntil
		out.PremiumUntil = &t
	}
	setIf(&out.AIScansRemaining, up.AIScansRemaining)
	if p := up.Preferences; p != nil {
		setIf(&out.Preferences.Notifications, p.Notifications)
		setIf(&out.Preferences.Theme, p.Theme)
		setIf(&out.Preferences.ReminderTime, p.ReminderTime)
	}
	return out
}
