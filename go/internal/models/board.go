package models

import "time"

// Announcement is a notice published by the provincial office
type Announcement struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	MunicipalityID string    `json:"municipality_id,omitempty"`
	AuthorID       string    `json:"author_id"`
	PublishedAt    time.Time `json:"published_at"`
}

// Infrastructure is a sports facility (pitch, court, hall) in a municipality
type Infrastructure struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	MunicipalityID string `json:"municipality_id"`
	SchoolID       string `json:"school_id,omitempty"`
	Condition      string `json:"condition"`
}
