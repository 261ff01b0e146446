package models

import "time"

// OriginProvincial marks audit entries produced by province-level actors
const OriginProvincial = "PROVINCIAL"

// AuditLog is an append-only accountability record
type AuditLog struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	ActorID     string    `json:"actor_id"`
	ActorName   string    `json:"actor_name"`
	Action      string    `json:"action"`
	Detail      string    `json:"detail"`
	Environment string    `json:"environment"`
	Origin      string    `json:"origin"`
}
