package workflow

import "rastha-be/models"

// Operation tags for capability checks.
type Operation string

const (
	OpReport             Operation = "report"
	OpApprove            Operation = "approve"
	OpIgnore             Operation = "ignore"
	OpAssignDepartment   Operation = "assign_department"
	OpAssignContractor   Operation = "assign_contractor"
	OpDispatchResponder  Operation = "dispatch_responder"
	OpCompleteWork       Operation = "complete_work"
	OpMarkRepaired       Operation = "mark_repaired"
	OpSetTrafficAlert    Operation = "set_traffic_alert"
	OpDeleteComplaint    Operation = "delete_complaint"
	OpToggleConcern      Operation = "toggle_concern"
	OpFlag               Operation = "flag"
	OpAddComment         Operation = "add_comment"
	OpCreateAnnouncement Operation = "create_announcement"
	OpReadAuditLog       Operation = "read_audit_log"
)

// community ops are open to every authenticated role.
var community = []Operation{OpToggleConcern, OpFlag, OpAddComment}

// capabilities is the single authorization table: role to the set of
// operations it may invoke. Checked once at each engine entry point.
var capabilities = map[models.UserRole]map[Operation]bool{
	models.RoleCitizen: opSet(OpReport),
	models.RoleSuperAdmin: opSet(
		OpReport, OpApprove, OpIgnore, OpAssignDepartment, OpAssignContractor,
		OpDispatchResponder, OpMarkRepaired, OpSetTrafficAlert,
		OpDeleteComplaint, OpCreateAnnouncement, OpReadAuditLog,
	),
	models.RoleEngineering: opSet(
		OpIgnore, OpAssignDepartment, OpAssignContractor, OpMarkRepaired,
		OpSetTrafficAlert, OpDeleteComplaint, OpReadAuditLog,
	),
	models.RoleWard: opSet(
		OpIgnore, OpAssignDepartment, OpAssignContractor, OpMarkRepaired,
		OpSetTrafficAlert, OpDeleteComplaint, OpReadAuditLog,
	),
	models.RoleWater: opSet(
		OpIgnore, OpAssignDepartment, OpAssignContractor, OpMarkRepaired,
		OpSetTrafficAlert, OpDeleteComplaint, OpReadAuditLog,
	),
	models.RoleTraffic: opSet(
		OpIgnore, OpAssignDepartment, OpDispatchResponder, OpMarkRepaired,
		OpSetTrafficAlert, OpDeleteComplaint, OpReadAuditLog,
	),
	models.RoleContractor: opSet(OpCompleteWork),
}

func opSet(ops ...Operation) map[Operation]bool {
	s := make(map[Operation]bool, len(ops)+len(community))
	for _, op := range ops {
		s[op] = true
	}
	for _, op := range community {
		s[op] = true
	}
	return s
}

func allowed(role models.UserRole, op Operation) bool {
	return capabilities[role][op]
}
