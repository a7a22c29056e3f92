package domain

import (
	"fmt"
	"strings"
	"time"
)

// LocalDateTimeLayout is the wall-clock format reminders are entered and displayed in.
const LocalDateTimeLayout = "2006-01-02T15:04"

const localDateTimeWithSeconds = "2006-01-02T15:04:05"

// Reminder is a per-user scheduled note. RemindAt is always stored in UTC.
type Reminder struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"user_id"`
	Title     string    `json:"title" bson:"title"`
	Note      string    `json:"note,omitempty" bson:"note,omitempty"`
	RemindAt  time.Time `json:"remind_at" bson:"remind_at"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// ParseLocalDateTime interprets a wall-clock value in loc and returns the
// absolute instant in UTC. Seconds are optional.
func ParseLocalDateTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{LocalDateTimeLayout, localDateTimeWithSeconds} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: remind_at must be formatted as %s", ErrValidation, LocalDateTimeLayout)
}

// FormatLocalDateTime renders t as a wall-clock value in loc. Seconds are
// only shown when set, so a parsed value formats back to its input.
func FormatLocalDateTime(t time.Time, loc *time.Location) string {
	local := t.In(loc)
	if local.Second() != 0 {
		return local.Format(localDateTimeWithSeconds)
	}
	return local.Format(LocalDateTimeLayout)
}
