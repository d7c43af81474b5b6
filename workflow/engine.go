// Package workflow implements the complaint lifecycle engine: the status
// state machine, role-gated operations, audit logging and contractor
// bookkeeping. Every mutation is a single critical section over the
// entity store and flushes a snapshot before returning.
package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rastha-be/classifier"
	"rastha-be/models"
	"rastha-be/store"

	"github.com/google/uuid"
)

// Actor identifies who is invoking an operation. ContractorID is set only
// for contractor accounts and names their vendor record, which is a
// separate identity from the login account.
type Actor struct {
	UserID       string
	Name         string
	Role         models.UserRole
	ContractorID string
}

// Config carries the engine's tunables.
type Config struct {
	// DefaultLat/DefaultLng locate the configured city centre used when a
	// report arrives without GPS coordinates.
	DefaultLat float64
	DefaultLng float64

	// ClassifyTimeout bounds each classifier pass during report intake.
	ClassifyTimeout time.Duration

	// MediaDir is where uploaded report and evidence images are written.
	MediaDir string
}

// Engine exposes all state-changing operations of the portal.
type Engine struct {
	store    *store.Store
	detector classifier.Client
	cfg      Config
}

func NewEngine(s *store.Store, det classifier.Client, cfg Config) *Engine {
	if cfg.ClassifyTimeout <= 0 {
		cfg.ClassifyTimeout = 20 * time.Second
	}
	if cfg.DefaultLat == 0 && cfg.DefaultLng == 0 {
		cfg.DefaultLat = 17.3850
		cfg.DefaultLng = 78.4867
	}
	return &Engine{store: s, detector: det, cfg: cfg}
}

func authorize(actor Actor, op Operation) error {
	if !allowed(actor.Role, op) {
		return fmt.Errorf("role %s may not perform %s: %w", actor.Role, op, ErrUnauthorized)
	}
	return nil
}

func getComplaint(d *store.Data, id string) (*models.Complaint, error) {
	c, ok := d.Complaints[id]
	if !ok {
		return nil, fmt.Errorf("complaint %s: %w", id, ErrNotFound)
	}
	return c, nil
}

// Approve moves a waiting-list complaint to Verified.
func (e *Engine) Approve(ctx context.Context, actor Actor, id string) (*models.Complaint, error) {
	if err := authorize(actor, OpApprove); err != nil {
		return nil, err
	}
	var out *models.Complaint
	err := e.store.Update(ctx, func(d *store.Data) error {
		c, err := getComplaint(d, id)
		if err != nil {
			return err
		}
		if c.Status != models.StatusWaitingList {
			return fmt.Errorf("cannot approve ticket in status %q: %w", c.Status, ErrInvalidState)
		}
		c.Status = models.StatusVerified
		d.AppendLog(actor.Role, models.ActionRepairOrder,
			fmt.Sprintf("%s verified and approved ticket %s", actor.Role, id))
		out = c.Clone()
		return nil
	})
	return out, err
}

// Ignore rejects a complaint still in triage. Once a ticket is assigned
// it carries contractor bookkeeping and must be closed through the
// repair path instead.
func (e *Engine) Ignore(ctx context.Context, actor Actor, id string) (*models.Complaint, error) {
	if err := authorize(actor, OpIgnore); err != nil {
		return nil, err
	}
	var out *models.Complaint
	err := e.store.Update(ctx, func(d *store.Data) error {
		c, err := getComplaint(d, id)
		if err != nil {
			return err
		}
		if c.Status != models.StatusWaitingList && c.Status != models.StatusVerified {
			return fmt.Errorf("cannot ignore ticket in status %q: %w", c.Status, ErrInvalidState)
		}
		c.Status = models.StatusIgnored
		d.AppendLog(actor.Role, models.ActionRepairOrder,
			fmt.Sprintf("%s marked ticket %s as ignored", actor.Role, id))
		out = c.Clone()
		return nil
	})
	return out, err
}

// AssignDepartment routes a verified complaint to a department and
// optionally raises a traffic alert alongside.
func (e *Engine) AssignDepartment(ctx context.Context, actor Actor, id string, dept models.DepartmentType, notifyTraffic bool) (*models.Complaint, error) {
	if err := authorize(actor, OpAssignDepartment); err != nil {
		return nil, err
	}
	if !models.ValidDepartment(dept) {
		return nil, fmt.Errorf("unknown department %q: %w", dept, ErrValidation)
	}
	var out *models.Complaint
	err := e.store.Update(ctx, func(d *store.Data) error {
		c, err := getComplaint(d, id)
		if err != nil {
			return err
		}
		if c.Status != models.StatusVerified {
			return fmt.Errorf("cannot assign department to ticket in status %q: %w", c.Status, ErrInvalidState)
		}
		c.Status = models.StatusAssigned
		c.Departments = []models.DepartmentType{dept}
		d.AppendLog(actor.Role, models.ActionRepairOrder,
			fmt.Sprintf("%s assigned ticket %s to %s department", actor.Role, id, dept))
		if notifyTraffic {
			c.TrafficAlert = true
			d.AppendLog(actor.Role, models.ActionTrafficAlert,
				fmt.Sprintf("%s raised traffic alert for ticket %s", actor.Role, id))
		}
		out = c.Clone()
		return nil
	})
	return out, err
}

// AssignContractor dispatches a repair vendor to a complaint and updates
// the vendor's capacity stats and work history in the same critical
// section.
func (e *Engine) AssignContractor(ctx context.Context, actor Actor, id, contractorID string) (*models.Complaint, error) {
	if err := authorize(actor, OpAssignContractor); err != nil {
		return nil, err
	}
	var out *models.Complaint
	err := e.store.Update(ctx, func(d *store.Data) error {
		c, err := getComplaint(d, id)
		if err != nil {
			return err
		}
		ct, ok := d.Contractors[contractorID]
		if !ok {
			return fmt.Errorf("contractor %s: %w", contractorID, ErrNotFound)
		}
		switch c.Status {
		case models.StatusWaitingList, models.StatusVerified, models.StatusAssigned:
		default:
			return fmt.Errorf("cannot assign contractor to ticket in status %q: %w", c.Status, ErrInvalidState)
		}
		if c.AssignedContractorID != "" {
			return fmt.Errorf("ticket %s already has contractor %s: %w", id, c.AssignedContractorID, ErrInvalidState)
		}

		now := time.Now()
		c.Status = models.StatusAssigned
		c.AssignedContractorID = contractorID
		c.ContractorAssignedDate = &now
		ct.ActiveProjects++
		ct.WorkHistory = append(ct.WorkHistory, models.WorkHistoryEntry{
			ComplaintID: id,
			Date:        now,
			Status:      models.WorkInProgress,
		})
		d.AppendLog(actor.Role, models.ActionContractorAssign,
			fmt.Sprintf("%s assigned contractor %s (%s) to ticket %s", actor.Role, contractorID, ct.CompanyName, id))
		out = c.Clone()
		return nil
	})
	return out, err
}

// DispatchResponder annotates a complaint with a traffic responder
// snapshot. This is a side channel: complaint status is untouched.
func (e *Engine) DispatchResponder(ctx context.Context, actor Actor, id, personnelID string) (*models.Complaint, error) {
	if err := authorize(actor, OpDispatchResponder); err != nil {
		return nil, err
	}
	var out *models.Complaint
	err := e.store.Update(ctx, func(d *store.Data) error {
		c, err := getComplaint(d, id)
		if err != nil {
			return err
		}
		p, ok := d.Personnel[personnelID]
		if !ok {
			return fmt.Errorf("traffic personnel %s: %w", personnelID, ErrNotFound)
		}
		now := time.Now()
		c.AssignedConstable = p.Snapshot(now)
		c.TrafficAlert = true
		p.LastActive = now
		d.AppendLog(actor.Role, models.ActionConstableDispatch,
			fmt.Sprintf("%s dispatched %s (%s) to ticket %s", actor.Role, p.Name, p.Badge, id))
		out = c.Clone()
		return nil
	})
	return out, err
}

// finishRepair applies the Assigned -> Repaired transition plus the
// contractor bookkeeping shared by CompleteWork and MarkRepaired.
func finishRepair(d *store.Data, c *models.Complaint, evidenceURL string) {
	now := time.Now()
	c.Status = models.StatusRepaired
	c.RepairedDate = &now
	if evidenceURL != "" {
		c.RepairEvidenceURL = evidenceURL
	}
	if c.AssignedContractorID == "" {
		return
	}
	ct, ok := d.Contractors[c.AssignedContractorID]
	if !ok {
		return
	}
	if ct.ActiveProjects > 0 {
		ct.ActiveProjects--
	}
	ct.CompletedProjects++
	for i := len(ct.WorkHistory) - 1; i >= 0; i-- {
		if ct.WorkHistory[i].ComplaintID == c.ID {
			ct.WorkHistory[i].Status = models.WorkCompleted
			break
		}
	}
}

// CompleteWork lets the assigned contractor close a ticket with proof of
// repair.
func (e *Engine) CompleteWork(ctx context.Context, actor Actor, id, evidenceURL string) (*models.Complaint, error) {
	if err := authorize(actor, OpCompleteWork); err != nil {
		return nil, err
	}
	if evidenceURL == "" {
		return nil, fmt.Errorf("repair evidence image is required: %w", ErrMissingEvidence)
	}
	var out *models.Complaint
	err := e.store.Update(ctx, func(d *store.Data) error {
		c, err := getComplaint(d, id)
		if err != nil {
			return err
		}
		if c.Status != models.StatusAssigned {
			return fmt.Errorf("cannot complete work on ticket in status %q: %w", c.Status, ErrInvalidState)
		}
		if c.AssignedContractorID != actor.ContractorID {
			return fmt.Errorf("ticket %s is not assigned to contractor %s: %w", id, actor.ContractorID, ErrUnauthorized)
		}
		finishRepair(d, c, evidenceURL)
		d.AppendLog(actor.Role, models.ActionWorkComplete,
			fmt.Sprintf("contractor %s completed work order for ticket %s", actor.ContractorID, id))
		out = c.Clone()
		return nil
	})
	return out, err
}

// MarkRepaired is the official override: closes an assigned ticket
// without requiring evidence.
func (e *Engine) MarkRepaired(ctx context.Context, actor Actor, id string) (*models.Complaint, error) {
	if err := authorize(actor, OpMarkRepaired); err != nil {
		return nil, err
	}
	var out *models.Complaint
	err := e.store.Update(ctx, func(d *store.Data) error {
		c, err := getComplaint(d, id)
		if err != nil {
			return err
		}
		if c.Status != models.StatusAssigned {
			return fmt.Errorf("cannot mark ticket in status %q as repaired: %w", c.Status, ErrInvalidState)
		}
		finishRepair(d, c, "")
		d.AppendLog(actor.Role, models.ActionRepairOrder,
			fmt.Sprintf("%s closed ticket %s as repaired", actor.Role, id))
		out = c.Clone()
		return nil
	})
	return out, err
}

// SetTrafficAlert flips the hazard flag. Idempotent; no status change and
// no audit entry, the flag is cosmetic.
func (e *Engine) SetTrafficAlert(ctx context.Context, actor Actor, id string, on bool) (*models.Complaint, error) {
	if err := authorize(actor, OpSetTrafficAlert); err != nil {
		return nil, err
	}
	var out *models.Complaint
	err := e.store.Update(ctx, func(d *store.Data) error {
		c, err := getComplaint(d, id)
		if err != nil {
			return err
		}
		c.TrafficAlert = on
		out = c.Clone()
		return nil
	})
	return out, err
}

// DeleteComplaint removes a ticket. Tickets under repair are locked for
// everyone; department officials may only delete tickets carrying their
// own department tag.
func (e *Engine) DeleteComplaint(ctx context.Context, actor Actor, id string) error {
	if err := authorize(actor, OpDeleteComplaint); err != nil {
		return err
	}
	return e.store.Update(ctx, func(d *store.Data) error {
		c, err := getComplaint(d, id)
		if err != nil {
			return err
		}
		if c.Locked() {
			return fmt.Errorf("ticket %s is %s and cannot be deleted: %w", id, c.Status, ErrLocked)
		}
		if dept, ok := actor.Role.Department(); ok {
			if !hasDepartment(c, dept) {
				return fmt.Errorf("ticket %s does not belong to %s department: %w", id, dept, ErrUnauthorized)
			}
		}
		d.AppendLog(actor.Role, models.ActionDeleteCase,
			fmt.Sprintf("%s deleted ticket %s", actor.Role, id))
		delete(d.Complaints, id)
		delete(d.ConcernVoters, id)
		return nil
	})
}

func hasDepartment(c *models.Complaint, dept models.DepartmentType) bool {
	for _, d := range c.Departments {
		if d == dept {
			return true
		}
	}
	return false
}

// ToggleConcern flips the caller's concern vote on a complaint and
// returns the new aggregate count plus whether the caller's vote now
// stands.
func (e *Engine) ToggleConcern(ctx context.Context, actor Actor, id string) (int, bool, error) {
	if err := authorize(actor, OpToggleConcern); err != nil {
		return 0, false, err
	}
	var count int
	var raised bool
	err := e.store.Update(ctx, func(d *store.Data) error {
		c, err := getComplaint(d, id)
		if err != nil {
			return err
		}
		voters := d.ConcernVoters[id]
		if voters == nil {
			voters = map[string]bool{}
			d.ConcernVoters[id] = voters
		}
		if voters[actor.UserID] {
			delete(voters, actor.UserID)
			if c.ConcernCount > 0 {
				c.ConcernCount--
			}
			raised = false
		} else {
			voters[actor.UserID] = true
			c.ConcernCount++
			raised = true
		}
		count = c.ConcernCount
		return nil
	})
	return count, raised, err
}

// Flag records a negative community report against a ticket. Tallies are
// raw counts with no per-actor deduplication.
func (e *Engine) Flag(ctx context.Context, actor Actor, id string, reason models.FlagReason) (*models.ReportStats, error) {
	if err := authorize(actor, OpFlag); err != nil {
		return nil, err
	}
	var out models.ReportStats
	err := e.store.Update(ctx, func(d *store.Data) error {
		c, err := getComplaint(d, id)
		if err != nil {
			return err
		}
		switch reason {
		case models.FlagDuplicate:
			c.ReportStats.Duplicate++
		case models.FlagFake:
			c.ReportStats.Fake++
		case models.FlagFixed:
			c.ReportStats.Fixed++
		case models.FlagWrongLocation:
			c.ReportStats.WrongLocation++
		default:
			return fmt.Errorf("unknown flag reason %q: %w", reason, ErrValidation)
		}
		out = c.ReportStats
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// AddComment appends to a complaint's discussion thread.
func (e *Engine) AddComment(ctx context.Context, actor Actor, id, text string) (*models.Comment, error) {
	if err := authorize(actor, OpAddComment); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("comment text is empty: %w", ErrValidation)
	}
	var out models.Comment
	err := e.store.Update(ctx, func(d *store.Data) error {
		c, err := getComplaint(d, id)
		if err != nil {
			return err
		}
		out = models.Comment{
			ID:         uuid.NewString(),
			AuthorID:   actor.UserID,
			AuthorName: actor.Name,
			Text:       text,
			Timestamp:  time.Now(),
		}
		c.Comments = append(c.Comments, out)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RecordLogin writes a console-access audit entry for officials. Citizen
// logins are not privileged actions and are not logged.
func (e *Engine) RecordLogin(ctx context.Context, actor Actor) error {
	if !actor.Role.IsOfficial() {
		return nil
	}
	return e.store.Update(ctx, func(d *store.Data) error {
		d.AppendLog(actor.Role, models.ActionLogin,
			fmt.Sprintf("%s console access by %s", actor.Role, actor.Name))
		return nil
	})
}

// RecordLogout mirrors RecordLogin.
func (e *Engine) RecordLogout(ctx context.Context, actor Actor) error {
	if !actor.Role.IsOfficial() {
		return nil
	}
	return e.store.Update(ctx, func(d *store.Data) error {
		d.AppendLog(actor.Role, models.ActionLogout,
			fmt.Sprintf("%s console logout by %s", actor.Role, actor.Name))
		return nil
	})
}
