package store

import (
	"sort"
	"time"

	"rastha-be/models"
)

// Snapshot is the persisted form of the whole store: one document,
// replaced atomically on every flush.
type Snapshot struct {
	ID            string                    `bson:"_id"`
	Complaints    []models.Complaint        `bson:"complaints"`
	Contractors   []models.Contractor       `bson:"contractors"`
	Personnel     []models.TrafficPersonnel `bson:"personnel"`
	Logs          []models.AdminLog         `bson:"logs"`
	Announcements []models.Announcement     `bson:"announcements"`
	ConcernVoters map[string][]string       `bson:"concernVoters"`
	NextToken     int                       `bson:"nextToken"`
	SavedAt       time.Time                 `bson:"savedAt"`
}

const snapshotID = "store"

func snapshotData(d *Data) *Snapshot {
	snap := &Snapshot{
		ID:            snapshotID,
		Complaints:    make([]models.Complaint, 0, len(d.Complaints)),
		Contractors:   make([]models.Contractor, 0, len(d.Contractors)),
		Personnel:     make([]models.TrafficPersonnel, 0, len(d.Personnel)),
		Logs:          append([]models.AdminLog(nil), d.Logs...),
		Announcements: append([]models.Announcement(nil), d.Announcements...),
		ConcernVoters: make(map[string][]string, len(d.ConcernVoters)),
		NextToken:     d.NextToken,
		SavedAt:       time.Now(),
	}
	for _, c := range d.Complaints {
		snap.Complaints = append(snap.Complaints, *c.Clone())
	}
	for _, ct := range d.Contractors {
		snap.Contractors = append(snap.Contractors, *ct.Clone())
	}
	for _, p := range d.Personnel {
		snap.Personnel = append(snap.Personnel, *p)
	}
	for id, voters := range d.ConcernVoters {
		ids := make([]string, 0, len(voters))
		for uid := range voters {
			ids = append(ids, uid)
		}
		sort.Strings(ids)
		snap.ConcernVoters[id] = ids
	}
	sort.Slice(snap.Complaints, func(i, j int) bool { return snap.Complaints[i].ID < snap.Complaints[j].ID })
	sort.Slice(snap.Contractors, func(i, j int) bool { return snap.Contractors[i].ID < snap.Contractors[j].ID })
	sort.Slice(snap.Personnel, func(i, j int) bool { return snap.Personnel[i].ID < snap.Personnel[j].ID })
	return snap
}

// restore rebuilds the in-memory maps from a snapshot, back-filling
// fields absent on records written by older builds.
func (snap *Snapshot) restore() *Data {
	d := &Data{
		Complaints:    make(map[string]*models.Complaint, len(snap.Complaints)),
		Contractors:   make(map[string]*models.Contractor, len(snap.Contractors)),
		Personnel:     make(map[string]*models.TrafficPersonnel, len(snap.Personnel)),
		Logs:          append([]models.AdminLog(nil), snap.Logs...),
		Announcements: append([]models.Announcement(nil), snap.Announcements...),
		ConcernVoters: make(map[string]map[string]bool, len(snap.ConcernVoters)),
		NextToken:     snap.NextToken,
	}
	for i := range snap.Complaints {
		c := snap.Complaints[i]
		normalizeComplaint(&c)
		d.Complaints[c.ID] = &c
	}
	for i := range snap.Contractors {
		ct := snap.Contractors[i]
		if ct.WorkHistory == nil {
			ct.WorkHistory = []models.WorkHistoryEntry{}
		}
		d.Contractors[ct.ID] = &ct
	}
	for i := range snap.Personnel {
		p := snap.Personnel[i]
		d.Personnel[p.ID] = &p
	}
	for id, ids := range snap.ConcernVoters {
		set := make(map[string]bool, len(ids))
		for _, uid := range ids {
			set[uid] = true
		}
		d.ConcernVoters[id] = set
	}
	if d.NextToken < 1000 {
		d.NextToken = 1000
	}
	return d
}

// normalizeComplaint back-fills defaults for records persisted before the
// corresponding fields existed. ReportStats is a value struct, so absent
// counters already decode to zero.
func normalizeComplaint(c *models.Complaint) {
	if c.Departments == nil {
		c.Departments = []models.DepartmentType{models.DeptEngineering}
	}
	if c.Comments == nil {
		c.Comments = []models.Comment{}
	}
	if c.Severity == "" {
		c.Severity = models.SeverityLow
	}
	if c.Status == "" {
		c.Status = models.StatusWaitingList
	}
	if c.ConcernCount < 0 {
		c.ConcernCount = 0
	}
}
