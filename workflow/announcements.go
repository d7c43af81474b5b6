package workflow

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"rastha-be/models"
	"rastha-be/store"

	"github.com/google/uuid"
)

// CreateAnnouncement appends an active broadcast record.
func (e *Engine) CreateAnnouncement(ctx context.Context, actor Actor, message string, typ models.AnnouncementType, target models.Audience) (*models.Announcement, error) {
	if err := authorize(actor, OpCreateAnnouncement); err != nil {
		return nil, err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("announcement message is empty: %w", ErrValidation)
	}
	switch typ {
	case models.AnnounceInfo, models.AnnounceWarning, models.AnnounceCritical:
	default:
		return nil, fmt.Errorf("unknown announcement type %q: %w", typ, ErrValidation)
	}
	switch target {
	case models.AudienceAll, models.AudienceCitizens, models.AudienceOfficials:
	default:
		return nil, fmt.Errorf("unknown target audience %q: %w", target, ErrValidation)
	}

	var out models.Announcement
	err := e.store.Update(ctx, func(d *store.Data) error {
		out = models.Announcement{
			ID:        uuid.NewString(),
			Message:   message,
			Type:      typ,
			Target:    target,
			Timestamp: time.Now(),
			Active:    true,
			CreatedBy: actor.UserID,
		}
		d.Announcements = append(d.Announcements, out)
		d.AppendLog(actor.Role, models.ActionAnnouncement,
			fmt.Sprintf("%s broadcast %s announcement to %s", actor.Role, typ, target))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeactivateAnnouncement soft-deletes a broadcast record.
func (e *Engine) DeactivateAnnouncement(ctx context.Context, actor Actor, id string) error {
	if err := authorize(actor, OpCreateAnnouncement); err != nil {
		return err
	}
	return e.store.Update(ctx, func(d *store.Data) error {
		for i := range d.Announcements {
			if d.Announcements[i].ID == id {
				d.Announcements[i].Active = false
				d.AppendLog(actor.Role, models.ActionAnnouncement,
					fmt.Sprintf("%s deactivated announcement %s", actor.Role, id))
				return nil
			}
		}
		return fmt.Errorf("announcement %s: %w", id, ErrNotFound)
	})
}

// Announcements lists active broadcasts visible to the caller's role
// class, newest first.
func (e *Engine) Announcements(actor Actor) []models.Announcement {
	var out []models.Announcement
	e.store.View(func(d *store.Data) {
		for _, a := range d.Announcements {
			if a.VisibleTo(actor.Role) {
				out = append(out, a)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}
