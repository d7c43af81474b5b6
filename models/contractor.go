package models

import "time"

// ContractorStatus enum
type ContractorStatus string

const (
	ContractorVerified  ContractorStatus = "Verified"
	ContractorProbation ContractorStatus = "Probation"
	ContractorInactive  ContractorStatus = "Inactive"
)

// WorkHistoryStatus enum
type WorkHistoryStatus string

const (
	WorkInProgress WorkHistoryStatus = "In Progress"
	WorkCompleted  WorkHistoryStatus = "Completed"
)

// WorkHistoryEntry records one assignment handed to a contractor.
type WorkHistoryEntry struct {
	ComplaintID string            `bson:"complaintId" json:"complaintId"`
	Date        time.Time         `bson:"date" json:"date"`
	Status      WorkHistoryStatus `bson:"status" json:"status"`
}

// Contractor is an external repair vendor tracked with capacity stats.
type Contractor struct {
	ID                string             `bson:"_id" json:"id"`
	CompanyName       string             `bson:"companyName" json:"companyName"`
	ContactName       string             `bson:"contactName" json:"contactName"`
	Phone             string             `bson:"phone" json:"phone"`
	Specialization    string             `bson:"specialization" json:"specialization"`
	Rating            float64            `bson:"rating" json:"rating"`
	ActiveProjects    int                `bson:"activeProjects" json:"activeProjects"`
	CompletedProjects int                `bson:"completedProjects" json:"completedProjects"`
	Status            ContractorStatus   `bson:"status" json:"status"`
	WorkHistory       []WorkHistoryEntry `bson:"workHistory" json:"workHistory"`
}

// Clone returns a deep copy of the contractor. An empty work history
// stays non-nil.
func (ct *Contractor) Clone() *Contractor {
	cp := *ct
	if ct.WorkHistory != nil {
		cp.WorkHistory = append(make([]WorkHistoryEntry, 0, len(ct.WorkHistory)), ct.WorkHistory...)
	}
	return &cp
}
