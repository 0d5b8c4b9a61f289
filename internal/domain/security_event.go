package domain

import "time"

// SecurityAction enumerates auditable actions recorded in the event log.
type SecurityAction string

const (
	ActionCreateUser     SecurityAction = "CREATE_USER"
	ActionChangePassword SecurityAction = "CHANGE_PASSWORD"
	ActionAccessDenied   SecurityAction = "ACCESS_DENIED"
	ActionLoginFailed    SecurityAction = "LOGIN_FAILED"
	ActionGrantRole      SecurityAction = "GRANT_ROLE"
	ActionRemoveRole     SecurityAction = "REMOVE_ROLE"
	ActionLockUser       SecurityAction = "LOCK_USER"
	ActionUnlockUser     SecurityAction = "UNLOCK_USER"
	ActionDeleteUser     SecurityAction = "DELETE_USER"
	ActionBruteForce     SecurityAction = "BRUTE_FORCE"
)

// SecurityEvent is one persisted audit-log row. Subject is the acting
// principal ("Anonymous" when unauthenticated), Object the affected entity.
type SecurityEvent struct {
	ID       int64
	Occurred time.Time
	Action   SecurityAction
	Subject  string
	Object   string
	Path     string
}
