package domain

import "time"

type NotificationType string

const (
	NotificationReminder   NotificationType = "reminder"
	NotificationEscalation NotificationType = "escalation"
	NotificationWarning    NotificationType = "warning"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationReminder, NotificationEscalation, NotificationWarning:
		return true
	}
	return false
}

// NotificationRecord is append-only; only IsRead ever changes.
type NotificationRecord struct {
	ID         string           `json:"id"`
	TaskID     string           `json:"taskId"`
	InstanceID string           `json:"instanceId,omitempty"`
	Type       NotificationType `json:"type"`
	Message    string           `json:"message"`
	SentTo     PositionLevel    `json:"sentTo"`
	SentTime   time.Time        `json:"sentTime"`
	IsRead     bool             `json:"isRead"`
}
