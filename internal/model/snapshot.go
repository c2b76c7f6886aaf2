package model

import "time"

// View name constants for the persisted navigation state.
const (
	ViewCategories = "categories"
	ViewToday      = "today"
	ViewCalendar   = "calendar"
)

// Snapshot is the whole application state serialized as one blob.
// It is written wholesale after every mutation and loaded at startup;
// the session never performs partial updates against it.
type Snapshot struct {
	User        *User      `json:"current_user,omitempty"`
	Categories  []Category `json:"categories"`
	Tasks       []Task     `json:"tasks"`
	CurrentView string     `json:"current_view"`

	// CurrentMonth is the first day of the month the calendar shows.
	CurrentMonth time.Time `json:"current_month"`

	// SelectedDate is the calendar day whose panel is open, if any.
	SelectedDate *time.Time `json:"selected_date,omitempty"`
}
