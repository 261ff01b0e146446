package audit

// Action names recorded in the audit trail
const (
	ActionLogin               = "LOGIN"
	ActionGameScheduled       = "GAME_SCHEDULED"
	ActionGameResultSubmitted = "GAME_RESULT_SUBMITTED"
	ActionGameValidated       = "GAME_VALIDATED"
	ActionGameRejected        = "GAME_REJECTED"
	ActionAthleteRegistered   = "ATHLETE_REGISTERED"
	ActionAthleteUpdated      = "ATHLETE_UPDATED"
	ActionAthleteDeleted      = "ATHLETE_DELETED"
	ActionSchoolCreated       = "SCHOOL_CREATED"
	ActionUserCreated         = "USER_CREATED"
	ActionUserRegistered      = "USER_REGISTERED"
	ActionUserUpdated         = "USER_UPDATED"
	ActionUserDeleted         = "USER_DELETED"
	ActionNotificationSent    = "NOTIFICATION_SENT"
)

// MaxEntries is how many of the most recent entries the trail keeps
const MaxEntries = 5000

// ListFilter narrows List results. Zero values match everything.
type ListFilter struct {
	ActorID string
	Action  string
	Origin  string
	Limit   int
}
