package models

import "time"

// PersonnelStatus enum
type PersonnelStatus string

const (
	PersonnelAvailable PersonnelStatus = "Available"
	PersonnelBusy      PersonnelStatus = "Busy"
	PersonnelOffDuty   PersonnelStatus = "Off Duty"
)

// TrafficPersonnel is a traffic constable or volunteer available for
// dispatch to a damage site. Read-mostly reference data; complaints copy
// a snapshot of this record at dispatch time.
type TrafficPersonnel struct {
	ID              string          `bson:"_id" json:"id"`
	Name            string          `bson:"name" json:"name"`
	Rank            string          `bson:"rank" json:"rank"`
	Badge           string          `bson:"badge" json:"badge"`
	Phone           string          `bson:"phone" json:"phone"`
	Status          PersonnelStatus `bson:"status" json:"status"`
	CurrentLocation string          `bson:"currentLocation" json:"currentLocation"`
	LastActive      time.Time       `bson:"lastActive" json:"lastActive"`
}

// Snapshot copies the dispatch-relevant fields into a complaint-embedded
// value.
func (p *TrafficPersonnel) Snapshot(at time.Time) *ConstableSnapshot {
	return &ConstableSnapshot{
		ID:           p.ID,
		Name:         p.Name,
		Rank:         p.Rank,
		Badge:        p.Badge,
		Phone:        p.Phone,
		DispatchedAt: at,
	}
}
