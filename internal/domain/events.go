package domain

import "time"

const (
	EventLoginSucceeded = "login.succeeded"
	EventLoginFailed    = "login.failed"
	EventMealDeleted    = "meal.deleted"
)

type Event struct {
	Type   string    `json:"type"`
	Login  string    `json:"login,omitempty"`
	MealID uint      `json:"meal_id,omitempty"`
	At     time.Time `json:"at"`
}

func NewEvent(eventType string) Event {
	return Event{Type: eventType, At: time.Now().UTC()}
}
