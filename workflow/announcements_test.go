package workflow

import (
	"context"
	"testing"

	"rastha-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnouncementLifecycle(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	ctx := context.Background()

	a, err := e.CreateAnnouncement(ctx, admin, "Road closure on NH-65 tonight",
		models.AnnounceWarning, models.AudienceAll)
	require.NoError(t, err)
	assert.True(t, a.Active)
	assert.Equal(t, admin.UserID, a.CreatedBy)

	visible := e.Announcements(citizen)
	require.Len(t, visible, 1)

	require.NoError(t, e.DeactivateAnnouncement(ctx, admin, a.ID))
	assert.Empty(t, e.Announcements(citizen))

	err = e.DeactivateAnnouncement(ctx, admin, "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAnnouncementValidation(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	ctx := context.Background()

	_, err := e.CreateAnnouncement(ctx, admin, "  ", models.AnnounceInfo, models.AudienceAll)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.CreateAnnouncement(ctx, admin, "hello", "Urgent", models.AudienceAll)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.CreateAnnouncement(ctx, admin, "hello", models.AnnounceInfo, "Everyone")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = e.CreateAnnouncement(ctx, citizen, "hello", models.AnnounceInfo, models.AudienceAll)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAnnouncementAudienceTargeting(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	ctx := context.Background()

	_, err := e.CreateAnnouncement(ctx, admin, "for citizens",
		models.AnnounceInfo, models.AudienceCitizens)
	require.NoError(t, err)
	_, err = e.CreateAnnouncement(ctx, admin, "for officials",
		models.AnnounceCritical, models.AudienceOfficials)
	require.NoError(t, err)

	citizenView := e.Announcements(citizen)
	require.Len(t, citizenView, 1)
	assert.Equal(t, "for citizens", citizenView[0].Message)

	engineerView := e.Announcements(engineer)
	require.Len(t, engineerView, 1)
	assert.Equal(t, "for officials", engineerView[0].Message)

	// contractors count as the official side for targeting
	contractorView := e.Announcements(contractor)
	require.Len(t, contractorView, 1)
	assert.Equal(t, "for officials", contractorView[0].Message)

	assert.Len(t, e.Announcements(admin), 2, "super admin sees everything active")
}
