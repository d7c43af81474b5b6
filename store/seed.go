package store

import (
	"time"

	"rastha-be/models"
)

// seedData builds the initial state for a fresh deployment: empty
// complaint and ledger collections plus the reference contractor and
// traffic personnel rosters.
func seedData() *Data {
	now := time.Now()
	d := &Data{
		Complaints:    map[string]*models.Complaint{},
		Contractors:   map[string]*models.Contractor{},
		Personnel:     map[string]*models.TrafficPersonnel{},
		Logs:          []models.AdminLog{},
		Announcements: []models.Announcement{},
		ConcernVoters: map[string]map[string]bool{},
		NextToken:     1000,
	}

	contractors := []*models.Contractor{
		{
			ID:             "CON-101",
			CompanyName:    "Deccan Road Works Pvt Ltd",
			ContactName:    "S. Venkatesh",
			Phone:          "+91 98480 11223",
			Specialization: "Road patching & resurfacing",
			Rating:         4.6,
			Status:         models.ContractorVerified,
			WorkHistory:    []models.WorkHistoryEntry{},
		},
		{
			ID:             "CON-102",
			CompanyName:    "Musi Valley Drainage Co",
			ContactName:    "Farhan Ali",
			Phone:          "+91 90001 42310",
			Specialization: "Drainage & pipeline repair",
			Rating:         4.2,
			Status:         models.ContractorVerified,
			WorkHistory:    []models.WorkHistoryEntry{},
		},
		{
			ID:             "CON-103",
			CompanyName:    "GreenWard Sanitation Services",
			ContactName:    "Lakshmi Prasanna",
			Phone:          "+91 99590 77001",
			Specialization: "Debris removal & street cleaning",
			Rating:         3.9,
			Status:         models.ContractorProbation,
			WorkHistory:    []models.WorkHistoryEntry{},
		},
	}
	for _, ct := range contractors {
		d.Contractors[ct.ID] = ct
	}

	personnel := []*models.TrafficPersonnel{
		{
			ID:              "TP-01",
			Name:            "Inspector K. Rajeshwar",
			Rank:            "Traffic Inspector",
			Badge:           "HYD-TI-204",
			Phone:           "+91 94910 20304",
			Status:          models.PersonnelAvailable,
			CurrentLocation: "Charminar Circle",
			LastActive:      now,
		},
		{
			ID:              "TP-02",
			Name:            "Constable P. Swapna",
			Rank:            "Head Constable",
			Badge:           "HYD-HC-517",
			Phone:           "+91 96520 88441",
			Status:          models.PersonnelAvailable,
			CurrentLocation: "Gachibowli Flyover",
			LastActive:      now,
		},
		{
			ID:              "TP-03",
			Name:            "Mohd. Irfan",
			Rank:            "Traffic Volunteer",
			Badge:           "HYD-TV-032",
			Phone:           "+91 81210 45567",
			Status:          models.PersonnelOffDuty,
			CurrentLocation: "Tarnaka Junction",
			LastActive:      now.Add(-6 * time.Hour),
		},
	}
	for _, p := range personnel {
		d.Personnel[p.ID] = p
	}

	return d
}
