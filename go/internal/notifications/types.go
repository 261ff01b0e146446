package notifications

import "github.com/pgdem/desporto/go/internal/models"

// MaxEntries caps the notifications collection; the oldest are evicted first
const MaxEntries = 1000

// SendRequest is a broadcast composed by a user. Either TargetUserID or
// TargetRole must be set.
type SendRequest struct {
	TargetUserID         string                  `json:"target_user_id"`
	TargetRole           models.Role             `json:"target_role"`
	TargetMunicipalityID string                  `json:"target_municipality_id"`
	Message              string                  `json:"message"`
	Type                 models.NotificationType `json:"type"`
}
