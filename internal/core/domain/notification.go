package domain

import "time"

// NotificationKind names an event fact handed to the notification collaborator.
type NotificationKind string

const (
	NotifyTaskDueTomorrow NotificationKind = "TASK_DUE_TOMORROW"
	NotifyLeaveEscalated  NotificationKind = "LEAVE_ESCALATED"
	NotifyLeaveDecided    NotificationKind = "LEAVE_DECIDED"
)

// Notification is a fire-and-forget fact for downstream delivery.
type Notification struct {
	Kind        NotificationKind  `json:"kind"`
	BoutiqueID  string            `json:"boutiqueId"`
	RecipientID string            `json:"recipientId"`
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
	OccurredAt  time.Time         `json:"occurredAt"`
}
