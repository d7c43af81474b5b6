package workflow

import (
	"context"
	"errors"
	"testing"

	"rastha-be/classifier"
	"rastha-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportPotholeDetected(t *testing.T) {
	e, _ := newTestEngine(t, &stubDetector{
		pothole: classifier.Detection{Detected: true, Confidence: 0.87, Label: "pothole"},
	})

	c, err := e.Report(context.Background(), citizen, ReportInput{
		Image:    []byte("jpeg-bytes"),
		Filename: "road.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, "TKN-1000", c.ID)
	assert.Equal(t, models.StatusVerified, c.Status)
	assert.Equal(t, models.SeverityHigh, c.Severity)
	assert.InDelta(t, 8.7, c.SeverityScore, 0.001)
	assert.Equal(t, "Heavy damage detected.", c.Description)
	assert.Equal(t, "u-1", c.UserID)
	assert.NotEmpty(t, c.ImageURL)
	assert.NotNil(t, c.Departments)
	assert.NotNil(t, c.Comments)
}

func TestReportGeneralDamageFallsBackToSecondModel(t *testing.T) {
	e, _ := newTestEngine(t, &stubDetector{
		pothole: classifier.Detection{Detected: false},
		general: classifier.Detection{Detected: true, Confidence: 0.62, Label: "crack"},
	})

	c, err := e.Report(context.Background(), citizen, ReportInput{
		Image:    []byte("jpeg-bytes"),
		Filename: "road.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusVerified, c.Status)
	assert.Equal(t, models.SeverityMedium, c.Severity)
	assert.InDelta(t, 6.2, c.SeverityScore, 0.001)
	assert.Equal(t, "Road crack/uneven surface detected.", c.Description)
}

func TestReportBothModelsNegative(t *testing.T) {
	e, _ := newTestEngine(t, &stubDetector{})

	c, err := e.Report(context.Background(), citizen, ReportInput{
		Image:    []byte("jpeg-bytes"),
		Filename: "road.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusWaitingList, c.Status)
	assert.Equal(t, models.SeverityLow, c.Severity)
	assert.InDelta(t, 0.5, c.SeverityScore, 0.001)
	assert.Equal(t, pendingReviewText, c.Description)
}

func TestReportClassifierFailureNeverBlocksIntake(t *testing.T) {
	e, _ := newTestEngine(t, &stubDetector{
		potholeErr: errors.New("connection refused"),
	})

	c, err := e.Report(context.Background(), citizen, ReportInput{
		Image:       []byte("jpeg-bytes"),
		Filename:    "road.jpg",
		Description: "huge crater near the bus stop",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusWaitingList, c.Status)
	assert.Equal(t, "huge crater near the bus stop", c.Description,
		"user text wins over the fallback verdict")
}

func TestReportLocationDefaults(t *testing.T) {
	e, _ := newTestEngine(t, &stubDetector{})

	c, err := e.Report(context.Background(), citizen, ReportInput{
		Image:    []byte("jpeg-bytes"),
		Filename: "road.jpg",
	})
	require.NoError(t, err)

	// jittered around the Hyderabad city centre
	assert.InDelta(t, 17.3850, c.Latitude, 0.011)
	assert.InDelta(t, 78.4867, c.Longitude, 0.011)
	assert.NotEmpty(t, c.Address, "address falls back to coordinates")

	lat, lng := 17.4401, 78.3489
	c, err = e.Report(context.Background(), citizen, ReportInput{
		Image:     []byte("jpeg-bytes"),
		Filename:  "road.jpg",
		Latitude:  &lat,
		Longitude: &lng,
		Address:   "Hitec City flyover",
	})
	require.NoError(t, err)
	assert.Equal(t, lat, c.Latitude)
	assert.Equal(t, lng, c.Longitude)
	assert.Equal(t, "Hitec City flyover", c.Address)
}

func TestReportRequiresImage(t *testing.T) {
	e, _ := newTestEngine(t, &stubDetector{})

	_, err := e.Report(context.Background(), citizen, ReportInput{Filename: "road.jpg"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReportTokensAreSequential(t *testing.T) {
	e, _ := newTestEngine(t, &stubDetector{})

	first, err := e.Report(context.Background(), citizen, ReportInput{
		Image: []byte("a"), Filename: "a.jpg",
	})
	require.NoError(t, err)
	second, err := e.Report(context.Background(), citizen, ReportInput{
		Image: []byte("b"), Filename: "b.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, "TKN-1000", first.ID)
	assert.Equal(t, "TKN-1001", second.ID)
}

func TestConfidenceScore(t *testing.T) {
	tests := []struct {
		conf float64
		want float64
	}{
		{0.0, 0.0},
		{0.5, 5.0},
		{0.87, 8.7},
		{0.876, 8.8},
		{1.0, 10.0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, confidenceScore(tt.conf), 0.001)
	}
}
