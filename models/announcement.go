package models

import "time"

// AnnouncementType enum
type AnnouncementType string

const (
	AnnounceInfo     AnnouncementType = "Info"
	AnnounceWarning  AnnouncementType = "Warning"
	AnnounceCritical AnnouncementType = "Critical"
)

// Audience enum
type Audience string

const (
	AudienceAll       Audience = "All"
	AudienceCitizens  Audience = "Citizens"
	AudienceOfficials Audience = "Officials"
)

// Announcement is a targeted broadcast message. Announcements are
// deactivated rather than removed.
type Announcement struct {
	ID        string           `bson:"_id" json:"id"`
	Message   string           `bson:"message" json:"message"`
	Type      AnnouncementType `bson:"type" json:"type"`
	Target    Audience         `bson:"target" json:"target"`
	Timestamp time.Time        `bson:"timestamp" json:"timestamp"`
	Active    bool             `bson:"active" json:"active"`
	CreatedBy string           `bson:"createdBy" json:"createdBy"`
}

// VisibleTo reports whether the announcement should be shown to a reader
// of the given role class.
func (a *Announcement) VisibleTo(role UserRole) bool {
	if !a.Active {
		return false
	}
	if role == RoleSuperAdmin {
		return true
	}
	switch a.Target {
	case AudienceAll:
		return true
	case AudienceCitizens:
		return role == RoleCitizen
	case AudienceOfficials:
		return role.IsOfficial() || role == RoleContractor
	}
	return false
}
