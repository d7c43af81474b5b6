package workflow

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"rastha-be/classifier"
	"rastha-be/models"
	"rastha-be/store"

	"github.com/google/uuid"
)

// ReportInput is the raw material of a new complaint.
type ReportInput struct {
	Image       []byte
	Filename    string
	Latitude    *float64
	Longitude   *float64
	Address     string
	Description string
}

// verdict is the outcome of the classification pipeline.
type verdict struct {
	status      models.ComplaintStatus
	severity    models.Severity
	score       float64
	description string
}

const pendingReviewText = "No clear damage detected. Pending manual review."

// Report runs the two-pass classifier over the submitted image and
// creates the complaint. Classifier failure or timeout never blocks
// intake: the ticket lands on the waiting list for manual review.
func (e *Engine) Report(ctx context.Context, actor Actor, in ReportInput) (*models.Complaint, error) {
	if err := authorize(actor, OpReport); err != nil {
		return nil, err
	}
	if len(in.Image) == 0 {
		return nil, fmt.Errorf("report image is required: %w", ErrValidation)
	}

	v := e.classify(ctx, in.Image, in.Filename)

	lat, lng := e.resolveLocation(in.Latitude, in.Longitude)
	address := strings.TrimSpace(in.Address)
	if address == "" {
		address = fmt.Sprintf("%.4f, %.4f", lat, lng)
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = v.description
	}

	imageURL, err := e.saveMedia("reports", in.Filename, in.Image)
	if err != nil {
		return nil, fmt.Errorf("storing report image: %w", err)
	}

	var out *models.Complaint
	err = e.store.Update(ctx, func(d *store.Data) error {
		c := &models.Complaint{
			ID:            d.NewToken(),
			UserID:        actor.UserID,
			ImageURL:      imageURL,
			Description:   description,
			Address:       address,
			Latitude:      lat,
			Longitude:     lng,
			Status:        v.status,
			Severity:      v.severity,
			SeverityScore: v.score,
			Departments:   []models.DepartmentType{},
			Comments:      []models.Comment{},
			Timestamp:     time.Now(),
		}
		d.Complaints[c.ID] = c
		out = c.Clone()
		return nil
	})
	return out, err
}

// classify runs the pothole expert first and the general-damage model as
// fallback; the first positive verdict wins.
func (e *Engine) classify(ctx context.Context, image []byte, filename string) verdict {
	fallback := verdict{
		status:      models.StatusWaitingList,
		severity:    models.SeverityLow,
		score:       0.5,
		description: pendingReviewText,
	}

	det, err := e.detectWithTimeout(ctx, image, filename, true)
	if err != nil {
		log.Printf("pothole detection failed, queueing for manual review: %v", err)
		return fallback
	}
	if det.Detected {
		return verdict{
			status:      models.StatusVerified,
			severity:    models.SeverityHigh,
			score:       confidenceScore(det.Confidence),
			description: "Heavy damage detected.",
		}
	}

	det, err = e.detectWithTimeout(ctx, image, filename, false)
	if err != nil {
		log.Printf("general damage detection failed, queueing for manual review: %v", err)
		return fallback
	}
	if det.Detected {
		return verdict{
			status:      models.StatusVerified,
			severity:    models.SeverityMedium,
			score:       confidenceScore(det.Confidence),
			description: "Road crack/uneven surface detected.",
		}
	}
	return fallback
}

func (e *Engine) detectWithTimeout(ctx context.Context, image []byte, filename string, pothole bool) (classifier.Detection, error) {
	cctx, cancel := context.WithTimeout(ctx, e.cfg.ClassifyTimeout)
	defer cancel()
	if pothole {
		return e.detector.DetectPotholes(cctx, image, filename)
	}
	return e.detector.DetectGeneralDamage(cctx, image, filename)
}

// confidenceScore maps classifier confidence (0..1) onto the 0..10
// severity scale used by the map markers.
func confidenceScore(conf float64) float64 {
	return math.Round(conf*100) / 10
}

// resolveLocation falls back to a jittered point near the configured city
// centre when a report arrives without GPS coordinates.
func (e *Engine) resolveLocation(lat, lng *float64) (float64, float64) {
	if lat != nil && lng != nil {
		return *lat, *lng
	}
	jitter := func() float64 { return (rand.Float64() - 0.5) * 0.02 }
	return e.cfg.DefaultLat + jitter(), e.cfg.DefaultLng + jitter()
}

// StoreEvidenceImage persists a proof-of-repair upload and returns its
// reference for CompleteWork.
func (e *Engine) StoreEvidenceImage(filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("evidence image is empty: %w", ErrMissingEvidence)
	}
	return e.saveMedia("evidence", filename, data)
}

// saveMedia writes the upload under the media dir and returns its public
// reference. With no media dir configured, only the reference is kept.
func (e *Engine) saveMedia(kind, filename string, data []byte) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	name := uuid.NewString() + ext
	ref := "/media/" + kind + "/" + name

	if e.cfg.MediaDir == "" {
		return ref, nil
	}
	dir := filepath.Join(e.cfg.MediaDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", err
	}
	return ref, nil
}
