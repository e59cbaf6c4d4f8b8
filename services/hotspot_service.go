package services

import (
	"context"
	"fmt"
	"math"

	"github.com/ecosnap/ecosnap/db"
	errs "github.com/ecosnap/ecosnap/errors"
	"github.com/ecosnap/ecosnap/models"
	"github.com/ecosnap/ecosnap/services/detection"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// VerificationBonus is credited once, atomically with the
	// pending -> verified flip.
	VerificationBonus = 100

	// RejectionReasonNoPollution is recorded when the detection service
	// returns zero detections for a pending hotspot.
	RejectionReasonNoPollution = "no pollution detected"
)

type HotspotService interface {
	SubmitHotspot(userID uint, params *SubmitHotspotParams) (*models.Hotspot, error)
	GetHotspots(filter models.HotspotFilter) ([]models.Hotspot, error)
	GetHotspot(id uuid.UUID) (*models.Hotspot, error)
	VerifyHotspot(ctx context.Context, id uuid.UUID) (*models.VerificationOutcome, error)
	MarkHotspotCleaned(id uuid.UUID) error
	GetUserStats(userID uint) (*models.UserStats, error)
}

// SubmitHotspotParams carries everything the handler extracted from the
// multipart form. The image is already in object storage by the time the
// service sees it.
type SubmitHotspotParams struct {
	Latitude  float64
	Longitude float64
	Address   string
	State     string
	District  string
	City      string
	Taluka    string
	Village   string
	ImageURL  string
	ImageHash string
}

type hotspotService struct {
	hotspotRepo db.HotspotRepository
	garbageRepo db.GarbageRequestRepository
	gateway     detection.Gateway
	media       MediaService
}

func NewHotspotService(hotspotRepo db.HotspotRepository, garbageRepo db.GarbageRequestRepository, gateway detection.Gateway, media MediaService) HotspotService {
	return &hotspotService{
		hotspotRepo: hotspotRepo,
		garbageRepo: garbageRepo,
		gateway:     gateway,
		media:       media,
	}
}

// ValidateCoordinates rejects out-of-range and non-finite coordinates.
// There is no snapping or clamping; a bad location is a hard failure.
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return errs.ErrInvalidLocation
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return errs.ErrInvalidLocation
	}
	return nil
}

func (s *hotspotService) SubmitHotspot(userID uint, params *SubmitHotspotParams) (*models.Hotspot, error) {
	if err := ValidateCoordinates(params.Latitude, params.Longitude); err != nil {
		return nil, err
	}
	if params.ImageURL == "" {
		return nil, errs.New("image is required", 400)
	}

	// A repeated image hash flags a likely resubmission. The hotspot is
	// still accepted; the flag is a signal for the verifier, not a gate.
	isDuplicate := false
	if params.ImageHash != "" {
		seen, err := s.hotspotRepo.ExistsByImageHash(params.ImageHash)
		if err != nil {
			return nil, err
		}
		isDuplicate = seen
	}

	hotspot := &models.Hotspot{
		UserID:      userID,
		Latitude:    params.Latitude,
		Longitude:   params.Longitude,
		Address:     params.Address,
		State:       params.State,
		District:    params.District,
		City:        params.City,
		Taluka:      params.Taluka,
		Village:     params.Village,
		ImageURL:    params.ImageURL,
		ImageHash:   params.ImageHash,
		IsDuplicate: isDuplicate,
		Status:      models.HotspotStatusPending,
	}
	return s.hotspotRepo.SaveHotspot(hotspot)
}

func (s *hotspotService) GetHotspots(filter models.HotspotFilter) ([]models.Hotspot, error) {
	return s.hotspotRepo.GetHotspots(filter)
}

func (s *hotspotService) GetHotspot(id uuid.UUID) (*models.Hotspot, error) {
	return s.hotspotRepo.GetHotspotByID(id)
}

// VerifyHotspot runs the verification workflow for a pending hotspot:
// fetch the photo, ask the detection service, then either verify and pay
// the bonus or reject with a reason. A gateway failure leaves the hotspot
// pending so the verifier can retry later.
func (s *hotspotService) VerifyHotspot(ctx context.Context, id uuid.UUID) (*models.VerificationOutcome, error) {
	hotspot, err := s.hotspotRepo.GetHotspotByID(id)
	if err != nil {
		return nil, err
	}
	if hotspot.Status != models.HotspotStatusPending {
		return nil, errs.ErrInvalidTransition
	}

	image, err := s.media.FetchImage(ctx, hotspot.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: could not fetch image: %v", errs.ErrDetectionFailed, err)
	}

	resp, err := s.gateway.Detect(ctx, image, hotspot.Latitude, hotspot.Longitude)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDetectionFailed, err)
	}

	if len(resp.Detections) == 0 {
		if err := s.hotspotRepo.RejectHotspot(id, RejectionReasonNoPollution); err != nil {
			return nil, err
		}
		rejected, err := s.hotspotRepo.GetHotspotByID(id)
		if err != nil {
			return nil, err
		}
		return &models.VerificationOutcome{
			Hotspot:    rejected,
			Detections: resp.Detections,
			Message:    "hotspot rejected: " + RejectionReasonNoPollution,
		}, nil
	}

	// Detections arrive ordered by the model's priority; the first one
	// classifies the hotspot.
	top := resp.Detections[0]
	result := models.DetectionResult{
		PollutantType: top.Label,
		Confidence:    top.Confidence,
		Severity:      severityFromConfidence(top.Confidence),
	}
	if err := s.hotspotRepo.VerifyHotspot(id, hotspot.UserID, result, VerificationBonus); err != nil {
		return nil, err
	}

	verified, err := s.hotspotRepo.GetHotspotByID(id)
	if err != nil {
		return nil, err
	}
	return &models.VerificationOutcome{
		Hotspot:    verified,
		Detections: resp.Detections,
		Message:    fmt.Sprintf("hotspot verified as %s, %d points awarded", result.PollutantType, VerificationBonus),
	}, nil
}

func (s *hotspotService) MarkHotspotCleaned(id uuid.UUID) error {
	_, err := s.hotspotRepo.GetHotspotByID(id)
	if err != nil {
		return err
	}
	return s.hotspotRepo.MarkHotspotCleaned(id)
}

func (s *hotspotService) GetUserStats(userID uint) (*models.UserStats, error) {
	stats := &models.UserStats{}
	var err error
	if stats.Hotspots, err = s.hotspotRepo.CountHotspotsByUser(userID); err != nil {
		return nil, errors.Wrap(err, "could not count hotspots")
	}
	if stats.Verified, err = s.hotspotRepo.CountHotspotsByUserAndStatus(userID, models.HotspotStatusVerified); err != nil {
		return nil, errors.Wrap(err, "could not count verified hotspots")
	}
	if stats.Cleaned, err = s.hotspotRepo.CountHotspotsByUserAndStatus(userID, models.HotspotStatusCleaned); err != nil {
		return nil, errors.Wrap(err, "could not count cleaned hotspots")
	}
	if stats.Requests, err = s.garbageRepo.CountGarbageRequestsByUser(userID); err != nil {
		return nil, errors.Wrap(err, "could not count garbage requests")
	}
	return stats, nil
}

func severityFromConfidence(confidence float64) string {
	switch {
	case confidence > 0.7:
		return models.SeverityHigh
	case confidence > 0.4:
		return models.SeverityMedium
	default:
		return models.SeverityLow
	}
}
