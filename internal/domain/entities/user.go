package entities

import "time"

// User represents bot user.
type User struct {
	ID                     int64     `json:"id"` // Telegram user ID
	ChatID                 int64     `json:"chat_id"`
	Username               string    `json:"username,omitempty"`
	FirstName              string    `json:"first_name,omitempty"`
	LastName               string    `json:"last_name,omitempty"`
	FullName               string    `json:"full_name,omitempty"`
	Email                  string    `json:"email,omitempty"`
	InterfaceLanguage      string    `json:"interface_language,omitempty"`
	IsRegistrationComplete bool      `json:"is_registration_complete"`
	ReminderTimes          []string  `json:"reminder_times,omitempty"` // sorted HH:MM in the user's timezone
	Timezone               string    `json:"timezone,omitempty"`
	IsActive               bool      `json:"is_active"`
	CreatedAt              time.Time `json:"created_at"`
	LastActiveAt           time.Time `json:"last_active_at"`
}

// NewUser creates an active user that still has to go through registration.
func NewUser(id, chatID int64, now time.Time) *User {
	return &User{
		ID:           id,
		ChatID:       chatID,
		Timezone:     "UTC",
		IsActive:     true,
		CreatedAt:    now,
		LastActiveAt: now,
	}
}

// DisplayName returns the best available name for greetings.
func (u *User) DisplayName() string {
	switch {
	case u.FullName != "":
		return u.FullName
	case u.FirstName != "":
		return u.FirstName
	case u.Username != "":
		return "@" + u.Username
	}
	return "friend"
}

// CompleteRegistration stores the answers collected by the registration flow.
func (u *User) CompleteRegistration(fullName, email, language string) {
	u.FullName = fullName
	u.Email = email
	u.InterfaceLanguage = language
	u.IsRegistrationComplete = true
}

// Location returns the user's timezone, falling back to UTC for unknown values.
func (u *User) Location() *time.Location {
	loc, err := ParseTimezone(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// HasReminderAt reports whether one of the reminder times matches now in the user's timezone.
func (u *User) HasReminderAt(now time.Time) bool {
	hhmm := now.In(u.Location()).Format(ReminderTimeLayout)
	for _, t := range u.ReminderTimes {
		if t == hhmm {
			return true
		}
	}
	return false
}
