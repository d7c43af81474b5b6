package workflow

import (
	"sort"
	"strings"

	"rastha-be/models"
	"rastha-be/store"
)

// ComplaintFilter narrows a complaint listing. Zero values match
// everything.
type ComplaintFilter struct {
	Status     models.ComplaintStatus
	Department models.DepartmentType
	UserID     string
}

// Complaint returns a single ticket plus whether the viewer currently has
// a concern raised on it.
func (e *Engine) Complaint(id, viewerID string) (*models.Complaint, bool, error) {
	var out *models.Complaint
	var raised bool
	e.store.View(func(d *store.Data) {
		if c, ok := d.Complaints[id]; ok {
			out = c.Clone()
			raised = d.ConcernVoters[id][viewerID]
		}
	})
	if out == nil {
		return nil, false, ErrNotFound
	}
	return out, raised, nil
}

// Complaints lists tickets matching the filter, newest first.
func (e *Engine) Complaints(f ComplaintFilter) []*models.Complaint {
	var out []*models.Complaint
	e.store.View(func(d *store.Data) {
		for _, c := range d.Complaints {
			if f.Status != "" && c.Status != f.Status {
				continue
			}
			if f.UserID != "" && c.UserID != f.UserID {
				continue
			}
			if f.Department != "" && !hasDepartment(c, f.Department) {
				continue
			}
			out = append(out, c.Clone())
		}
	})
	sortNewest(out)
	return out
}

// RecentComplaints returns the latest geotagged tickets for the map view.
func (e *Engine) RecentComplaints(limit int) []*models.Complaint {
	out := e.Complaints(ComplaintFilter{})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ContractorTasks lists the tickets currently or previously assigned to a
// contractor.
func (e *Engine) ContractorTasks(contractorID string) []*models.Complaint {
	var out []*models.Complaint
	e.store.View(func(d *store.Data) {
		for _, c := range d.Complaints {
			if c.AssignedContractorID == contractorID {
				out = append(out, c.Clone())
			}
		}
	})
	sortNewest(out)
	return out
}

// Contractors lists the vendor registry, by id.
func (e *Engine) Contractors() []*models.Contractor {
	var out []*models.Contractor
	e.store.View(func(d *store.Data) {
		for _, ct := range d.Contractors {
			out = append(out, ct.Clone())
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Contractor returns one vendor record.
func (e *Engine) Contractor(id string) (*models.Contractor, error) {
	var out *models.Contractor
	e.store.View(func(d *store.Data) {
		if ct, ok := d.Contractors[id]; ok {
			out = ct.Clone()
		}
	})
	if out == nil {
		return nil, ErrNotFound
	}
	return out, nil
}

// Personnel lists the traffic responder roster, by id.
func (e *Engine) Personnel() []*models.TrafficPersonnel {
	var out []*models.TrafficPersonnel
	e.store.View(func(d *store.Data) {
		for _, p := range d.Personnel {
			cp := *p
			out = append(out, &cp)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AdminStats summarizes ticket load for the dashboards.
type AdminStats struct {
	Total        int                           `json:"total"`
	Waiting      int                           `json:"waiting"`
	Verified     int                           `json:"verified"`
	Assigned     int                           `json:"assigned"`
	Repaired     int                           `json:"repaired"`
	Ignored      int                           `json:"ignored"`
	ByDepartment map[models.DepartmentType]int `json:"byDepartment"`
}

// Stats computes the dashboard counters.
func (e *Engine) Stats() AdminStats {
	stats := AdminStats{ByDepartment: map[models.DepartmentType]int{}}
	e.store.View(func(d *store.Data) {
		for _, c := range d.Complaints {
			stats.Total++
			switch c.Status {
			case models.StatusWaitingList:
				stats.Waiting++
			case models.StatusVerified:
				stats.Verified++
			case models.StatusAssigned:
				stats.Assigned++
				for _, dept := range c.Departments {
					stats.ByDepartment[dept]++
				}
			case models.StatusRepaired:
				stats.Repaired++
			case models.StatusIgnored:
				stats.Ignored++
			}
		}
	})
	return stats
}

// AuditLog returns ledger entries, newest first, optionally filtered by a
// case-insensitive substring match on the detail text.
func (e *Engine) AuditLog(actor Actor, query string) ([]models.AdminLog, error) {
	if err := authorize(actor, OpReadAuditLog); err != nil {
		return nil, err
	}
	query = strings.ToLower(strings.TrimSpace(query))
	var out []models.AdminLog
	e.store.View(func(d *store.Data) {
		for _, entry := range d.Logs {
			if query != "" && !strings.Contains(strings.ToLower(entry.Details), query) {
				continue
			}
			out = append(out, entry)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out, nil
}

func sortNewest(cs []*models.Complaint) {
	sort.Slice(cs, func(i, j int) bool { return cs[i].Timestamp.After(cs[j].Timestamp) })
}
