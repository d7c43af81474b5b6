package models

import (
	"time"
)

// ComplaintStatus enum
type ComplaintStatus string

const (
	StatusSubmitted   ComplaintStatus = "Submitted"
	StatusWaitingList ComplaintStatus = "Waiting List"
	StatusVerified    ComplaintStatus = "Verified"
	StatusAssigned    ComplaintStatus = "Assigned"
	StatusRepaired    ComplaintStatus = "Repaired"
	StatusIgnored     ComplaintStatus = "Ignored"
)

// Severity enum
type Severity string

const (
	SeverityHigh   Severity = "High"
	SeverityMedium Severity = "Medium"
	SeverityLow    Severity = "Low"
)

// DepartmentType enum
type DepartmentType string

const (
	DeptEngineering DepartmentType = "Engineering"
	DeptWard        DepartmentType = "Ward"
	DeptWater       DepartmentType = "Water"
	DeptTraffic     DepartmentType = "Traffic"
)

// ValidDepartment reports whether d names a known municipal department.
func ValidDepartment(d DepartmentType) bool {
	switch d {
	case DeptEngineering, DeptWard, DeptWater, DeptTraffic:
		return true
	}
	return false
}

// FlagReason enum for negative community reports against a ticket.
type FlagReason string

const (
	FlagDuplicate     FlagReason = "Duplicate"
	FlagFake          FlagReason = "Fake"
	FlagFixed         FlagReason = "Fixed"
	FlagWrongLocation FlagReason = "WrongLocation"
)

// ReportStats holds the per-reason flag tallies for a complaint.
type ReportStats struct {
	Duplicate     int `bson:"duplicate" json:"duplicate"`
	Fake          int `bson:"fake" json:"fake"`
	Fixed         int `bson:"fixed" json:"fixed"`
	WrongLocation int `bson:"wrongLocation" json:"wrongLocation"`
}

// Comment is one entry in a complaint's append-only discussion thread.
type Comment struct {
	ID         string    `bson:"id" json:"id"`
	AuthorID   string    `bson:"authorId" json:"authorId"`
	AuthorName string    `bson:"authorName" json:"authorName"`
	Text       string    `bson:"text" json:"text"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}

// ConstableSnapshot is a value-copy of the traffic responder taken at
// dispatch time. It is not a live reference; later edits to the personnel
// roster do not propagate here.
type ConstableSnapshot struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Rank         string    `bson:"rank" json:"rank"`
	Badge        string    `bson:"badge" json:"badge"`
	Phone        string    `bson:"phone" json:"phone"`
	DispatchedAt time.Time `bson:"dispatchedAt" json:"dispatchedAt"`
}

// Complaint is a single reported road-damage case.
type Complaint struct {
	ID                     string             `bson:"_id" json:"id"`
	UserID                 string             `bson:"userId" json:"userId"`
	ImageURL               string             `bson:"imageUrl" json:"imageUrl"`
	Description            string             `bson:"description" json:"description"`
	Address                string             `bson:"address" json:"address"`
	Latitude               float64            `bson:"latitude" json:"latitude"`
	Longitude              float64            `bson:"longitude" json:"longitude"`
	Status                 ComplaintStatus    `bson:"status" json:"status"`
	Severity               Severity           `bson:"severity" json:"severity"`
	SeverityScore          float64            `bson:"severityScore" json:"severityScore"`
	Departments            []DepartmentType   `bson:"departments" json:"departments"`
	AssignedContractorID   string             `bson:"assignedContractorId,omitempty" json:"assignedContractorId,omitempty"`
	ContractorAssignedDate *time.Time         `bson:"contractorAssignedDate,omitempty" json:"contractorAssignedDate,omitempty"`
	AssignedConstable      *ConstableSnapshot `bson:"assignedConstable,omitempty" json:"assignedConstable,omitempty"`
	RepairEvidenceURL      string             `bson:"repairEvidenceUrl,omitempty" json:"repairEvidenceUrl,omitempty"`
	RepairedDate           *time.Time         `bson:"repairedDate,omitempty" json:"repairedDate,omitempty"`
	TrafficAlert           bool               `bson:"trafficAlert" json:"trafficAlert"`
	ConcernCount           int                `bson:"concernCount" json:"concernCount"`
	ReportStats            ReportStats        `bson:"reportStats" json:"reportStats"`
	Comments               []Comment          `bson:"comments" json:"comments"`
	Timestamp              time.Time          `bson:"timestamp" json:"timestamp"`
}

// Locked reports whether the complaint may no longer be deleted.
func (c *Complaint) Locked() bool {
	return c.Status == StatusAssigned || c.Status == StatusRepaired
}

// Clone returns a deep copy safe to hand out after the store lock is
// released. Empty slices stay non-nil so round-tripped records are not
// mistaken for legacy ones missing the field.
func (c *Complaint) Clone() *Complaint {
	cp := *c
	if c.Departments != nil {
		cp.Departments = append(make([]DepartmentType, 0, len(c.Departments)), c.Departments...)
	}
	if c.Comments != nil {
		cp.Comments = append(make([]Comment, 0, len(c.Comments)), c.Comments...)
	}
	if c.ContractorAssignedDate != nil {
		d := *c.ContractorAssignedDate
		cp.ContractorAssignedDate = &d
	}
	if c.RepairedDate != nil {
		d := *c.RepairedDate
		cp.RepairedDate = &d
	}
	if c.AssignedConstable != nil {
		s := *c.AssignedConstable
		cp.AssignedConstable = &s
	}
	return &cp
}
