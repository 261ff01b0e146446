// Package authz maps (role, action, target municipality) to allow/deny.
// Every privileged write in the application goes through Check.
package authz

import (
	"fmt"

	"github.com/pgdem/desporto/go/internal/models"
)

type Action string

const (
	ActionScheduleGame     Action = "SCHEDULE_GAME"
	ActionSubmitResult     Action = "SUBMIT_RESULT"
	ActionValidateGame     Action = "VALIDATE_GAME"
	ActionManageAthletes   Action = "MANAGE_ATHLETES"
	ActionManageSchools    Action = "MANAGE_SCHOOLS"
	ActionManageCatalog    Action = "MANAGE_CATALOG"
	ActionManageUsers      Action = "MANAGE_USERS"
	ActionViewAudit        Action = "VIEW_AUDIT"
	ActionSendNotification Action = "SEND_NOTIFICATION"
)

// municipal lists what each municipality-scoped role may do inside its own municipality
var municipal = map[models.Role]map[Action]bool{
	models.RoleCoordinator: {
		ActionScheduleGame:     true,
		ActionSubmitResult:     true,
		ActionValidateGame:     true,
		ActionManageAthletes:   true,
		ActionManageSchools:    true,
		ActionSendNotification: true,
	},
	models.RoleSchool: {
		ActionSubmitResult:   true,
		ActionManageAthletes: true,
	},
}

// Allow reports whether u may perform action on data of targetMunicipality.
// An empty target means province-wide data.
func Allow(u models.User, action Action, targetMunicipality string) bool {
	switch u.Role {
	case models.RoleSuperAdmin:
		return true
	case models.RoleProvincialAdmin:
		return action != ActionManageUsers
	}

	if !municipal[u.Role][action] {
		return false
	}
	return u.MunicipalityID != "" && targetMunicipality == u.MunicipalityID
}

// Check is Allow returning a human-readable ErrPermissionDenied
func Check(u models.User, action Action, targetMunicipality string) error {
	if Allow(u, action, targetMunicipality) {
		return nil
	}
	if targetMunicipality == "" {
		return fmt.Errorf("%w: %s (%s) cannot perform %s", models.ErrPermissionDenied, u.Name, u.Role, action)
	}
	return fmt.Errorf("%w: %s (%s) cannot perform %s in %s",
		models.ErrPermissionDenied, u.Name, u.Role, action, targetMunicipality)
}

// Origin returns the audit origin tag for u
func Origin(u models.User) string {
	if u.Role.IsElevated() || u.MunicipalityID == "" {
		return models.OriginProvincial
	}
	return u.MunicipalityID
}
