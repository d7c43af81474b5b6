package models

import "time"

// ActionType enumerates the administrative actions recorded in the audit
// log.
type ActionType string

const (
	ActionLogin             ActionType = "LOGIN"
	ActionLogout            ActionType = "LOGOUT"
	ActionRepairOrder       ActionType = "REPAIR_ORDER"
	ActionDeleteCase        ActionType = "DELETE_CASE"
	ActionTrafficAlert      ActionType = "TRAFFIC_ALERT"
	ActionConstableDispatch ActionType = "CONSTABLE_DISPATCH"
	ActionContractorAssign  ActionType = "CONTRACTOR_ASSIGN"
	ActionAnnouncement      ActionType = "ANNOUNCEMENT"
	ActionWorkComplete      ActionType = "WORK_COMPLETE"
)

// AdminLog is one append-only audit ledger entry. Entries are never
// edited or removed after creation.
type AdminLog struct {
	ID        string     `bson:"_id" json:"id"`
	Action    ActionType `bson:"action" json:"action"`
	Role      UserRole   `bson:"role" json:"role"`
	Timestamp time.Time  `bson:"timestamp" json:"timestamp"`
	Details   string     `bson:"details" json:"details"`
}
