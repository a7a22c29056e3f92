package domain

import "time"

// Registration links a student to an event. At most one exists per pair.
type Registration struct {
	ID        string    `json:"id" bson:"_id"`
	StudentID string    `json:"student_id" bson:"student_id"`
	EventID   string    `json:"event_id" bson:"event_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
