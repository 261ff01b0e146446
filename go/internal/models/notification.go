package models

import "time"

type NotificationType string

const (
	NotificationInfo    NotificationType = "INFO"
	NotificationSuccess NotificationType = "SUCCESS"
	NotificationWarning NotificationType = "WARNING"
	NotificationAlert   NotificationType = "ALERT"
)

// Notification is addressed either to a single user or to a role,
// optionally restricted to one municipality.
type Notification struct {
	ID                   string           `json:"id"`
	TargetUserID         string           `json:"target_user_id,omitempty"`
	TargetRole           Role             `json:"target_role,omitempty"`
	TargetMunicipalityID string           `json:"target_municipality_id,omitempty"`
	Message              string           `json:"message"`
	Type                 NotificationType `json:"type"`
	Timestamp            time.Time        `json:"timestamp"`
	Read                 bool             `json:"read"`
}

// VisibleTo reports whether u may see the notification
func (n Notification) VisibleTo(u User) bool {
	if n.TargetUserID != "" && n.TargetUserID == u.ID {
		return true
	}
	if n.TargetRole == "" || n.TargetRole != u.Role {
		return false
	}
	return n.TargetMunicipalityID == "" || n.TargetMunicipalityID == u.MunicipalityID
}
