package domain

import "time"

// NotificationLevel is the outcome a notification reports.
type NotificationLevel string

const (
	LevelSuccess NotificationLevel = "success"
	LevelFailure NotificationLevel = "failure"
)

// Notification is a user-visible outcome of a mutation.
type Notification struct {
	ID       string            `json:"id" bson:"_id"`
	Level    NotificationLevel `json:"level" bson:"level"`
	Resource string            `json:"resource" bson:"resource"`
	Message  string            `json:"message" bson:"message"`
	At       time.Time         `json:"at" bson:"at"`
}
