package domain

import "time"

// DateLayout is the calendar-date format events are created and rendered with.
const DateLayout = "2006-01-02"

// Event is a school event in the catalog.
type Event struct {
	ID          string    `json:"id" bson:"_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Date        time.Time `json:"date" bson:"date"`
	Location    string    `json:"location" bson:"location"`
	IsOpen      bool      `json:"is_open" bson:"is_open"`
	CreatedBy   string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// ParseEventDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseEventDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// EventParticipation is one analytics row: an event and how many students joined it.
type EventParticipation struct {
	EventID      string    `json:"event_id"`
	Title        string    `json:"title"`
	Date         time.Time `json:"date"`
	Participants int64     `json:"participants"`
}
