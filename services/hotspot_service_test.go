package services

import (
	"context"
	"math"
	"testing"

	errs "github.com/ecosnap/ecosnap/errors"
	"github.com/ecosnap/ecosnap/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func pendingHotspot(id uuid.UUID) *models.Hotspot {
	return &models.Hotspot{
		ID:        id,
		UserID:    7,
		Latitude:  18.52,
		Longitude: 73.85,
		City:      "Pune",
		ImageURL:  "https://bucket.s3.ap-south-1.amazonaws.com/hotspots/7_x.jpg",
		Status:    models.HotspotStatusPending,
	}
}

func TestVerifyHotspotAwardsBonusOnDetection(t *testing.T) {
	id := uuid.New()
	hotspot := pendingHotspot(id)

	var gotResult models.DetectionResult
	var gotBonus int
	hotspotRepo := &fakeHotspotRepo{
		getByIDFn: func(uuid.UUID) (*models.Hotspot, error) { return hotspot, nil },
		verifyFn: func(_ uuid.UUID, ownerID uint, result models.DetectionResult, bonus int) error {
			require.Equal(t, uint(7), ownerID)
			gotResult = result
			gotBonus = bonus
			hotspot.Status = models.HotspotStatusVerified
			hotspot.PollutantType = result.PollutantType
			hotspot.Confidence = result.Confidence
			hotspot.Severity = result.Severity
			hotspot.RewardAwarded = true
			return nil
		},
	}
	gateway := &fakeGateway{
		detectFn: func(_ context.Context, image []byte, lat, lon float64) (*models.DetectionResponse, error) {
			require.Equal(t, []byte("jpeg-bytes"), image)
			require.Equal(t, 18.52, lat)
			require.Equal(t, 73.85, lon)
			return &models.DetectionResponse{Detections: []models.Detection{
				{Label: "garbage", Confidence: 0.85},
				{Label: "plastic", Confidence: 0.6},
			}}, nil
		},
	}
	media := &fakeMediaService{
		fetchFn: func(_ context.Context, imageURL string) ([]byte, error) {
			require.Equal(t, hotspot.ImageURL, imageURL)
			return []byte("jpeg-bytes"), nil
		},
	}

	svc := NewHotspotService(hotspotRepo, &fakeGarbageRepo{}, gateway, media)
	outcome, err := svc.VerifyHotspot(context.Background(), id)
	require.NoError(t, err)

	require.Equal(t, VerificationBonus, gotBonus)
	require.Equal(t, "garbage", gotResult.PollutantType)
	require.Equal(t, 0.85, gotResult.Confidence)
	require.Equal(t, models.SeverityHigh, gotResult.Severity)

	require.Equal(t, models.HotspotStatusVerified, outcome.Hotspot.Status)
	require.True(t, outcome.Hotspot.RewardAwarded)
	require.Len(t, outcome.Detections, 2)
}

func TestVerifyHotspotRejectsWhenNothingDetected(t *testing.T) {
	id := uuid.New()
	hotspot := pendingHotspot(id)

	hotspotRepo := &fakeHotspotRepo{
		getByIDFn: func(uuid.UUID) (*models.Hotspot, error) { return hotspot, nil },
		rejectFn: func(_ uuid.UUID, reason string) error {
			require.Equal(t, RejectionReasonNoPollution, reason)
			hotspot.Status = models.HotspotStatusRejected
			hotspot.RejectionReason = reason
			return nil
		},
	}
	gateway := &fakeGateway{
		detectFn: func(context.Context, []byte, float64, float64) (*models.DetectionResponse, error) {
			return &models.DetectionResponse{Detections: []models.Detection{}}, nil
		},
	}
	media := &fakeMediaService{
		fetchFn: func(context.Context, string) ([]byte, error) { return []byte("jpeg-bytes"), nil },
	}

	svc := NewHotspotService(hotspotRepo, &fakeGarbageRepo{}, gateway, media)
	outcome, err := svc.VerifyHotspot(context.Background(), id)
	require.NoError(t, err)

	require.Equal(t, models.HotspotStatusRejected, outcome.Hotspot.Status)
	require.Equal(t, RejectionReasonNoPollution, outcome.Hotspot.RejectionReason)
	require.False(t, outcome.Hotspot.RewardAwarded)
	require.Empty(t, outcome.Detections)
}

func TestVerifyHotspotGatewayFailureLeavesPending(t *testing.T) {
	id := uuid.New()
	hotspot := pendingHotspot(id)

	// Neither rejectFn nor verifyFn is set: any write would panic.
	hotspotRepo := &fakeHotspotRepo{
		getByIDFn: func(uuid.UUID) (*models.Hotspot, error) { return hotspot, nil },
	}
	gateway := &fakeGateway{
		detectFn: func(context.Context, []byte, float64, float64) (*models.DetectionResponse, error) {
			return nil, errs.ErrServiceUnavailable
		},
	}
	media := &fakeMediaService{
		fetchFn: func(context.Context, string) ([]byte, error) { return []byte("jpeg-bytes"), nil },
	}

	svc := NewHotspotService(hotspotRepo, &fakeGarbageRepo{}, gateway, media)
	_, err := svc.VerifyHotspot(context.Background(), id)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrDetectionFailed))
	require.Equal(t, models.HotspotStatusPending, hotspot.Status)
}

func TestVerifyHotspotRejectsNonPending(t *testing.T) {
	id := uuid.New()
	hotspot := pendingHotspot(id)
	hotspot.Status = models.HotspotStatusVerified

	hotspotRepo := &fakeHotspotRepo{
		getByIDFn: func(uuid.UUID) (*models.Hotspot, error) { return hotspot, nil },
	}

	svc := NewHotspotService(hotspotRepo, &fakeGarbageRepo{}, &fakeGateway{}, &fakeMediaService{})
	_, err := svc.VerifyHotspot(context.Background(), id)
	require.True(t, errors.Is(err, errs.ErrInvalidTransition))
}

func TestVerifyHotspotUnknownID(t *testing.T) {
	hotspotRepo := &fakeHotspotRepo{
		getByIDFn: func(uuid.UUID) (*models.Hotspot, error) { return nil, errs.ErrNotFound },
	}

	svc := NewHotspotService(hotspotRepo, &fakeGarbageRepo{}, &fakeGateway{}, &fakeMediaService{})
	_, err := svc.VerifyHotspot(context.Background(), uuid.New())
	require.True(t, errors.Is(err, errs.ErrNotFound))
}

func TestSeverityFromConfidence(t *testing.T) {
	cases := []struct {
		confidence float64
		want       string
	}{
		{0.95, models.SeverityHigh},
		{0.71, models.SeverityHigh},
		{0.7, models.SeverityMedium},
		{0.41, models.SeverityMedium},
		{0.4, models.SeverityLow},
		{0.1, models.SeverityLow},
		{0, models.SeverityLow},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, severityFromConfidence(tc.confidence), "confidence %v", tc.confidence)
	}
}

func TestSubmitHotspotValidatesLocation(t *testing.T) {
	svc := NewHotspotService(&fakeHotspotRepo{}, &fakeGarbageRepo{}, &fakeGateway{}, &fakeMediaService{})

	cases := []struct {
		name     string
		lat, lon float64
	}{
		{"latitude too high", 90.5, 73.85},
		{"latitude too low", -91, 73.85},
		{"longitude too high", 18.52, 180.5},
		{"longitude too low", 18.52, -181},
		{"latitude NaN", math.NaN(), 73.85},
		{"longitude infinite", 18.52, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SubmitHotspot(7, &SubmitHotspotParams{
				Latitude:  tc.lat,
				Longitude: tc.lon,
				ImageURL:  "https://example.com/x.jpg",
			})
			require.True(t, errors.Is(err, errs.ErrInvalidLocation))
		})
	}
}

func TestSubmitHotspotRequiresImage(t *testing.T) {
	svc := NewHotspotService(&fakeHotspotRepo{}, &fakeGarbageRepo{}, &fakeGateway{}, &fakeMediaService{})
	_, err := svc.SubmitHotspot(7, &SubmitHotspotParams{Latitude: 18.52, Longitude: 73.85})
	require.Error(t, err)
}

func TestSubmitHotspotSavesPending(t *testing.T) {
	var saved *models.Hotspot
	hotspotRepo := &fakeHotspotRepo{
		saveFn: func(h *models.Hotspot) (*models.Hotspot, error) {
			saved = h
			return h, nil
		},
	}

	svc := NewHotspotService(hotspotRepo, &fakeGarbageRepo{}, &fakeGateway{}, &fakeMediaService{})
	hotspot, err := svc.SubmitHotspot(7, &SubmitHotspotParams{
		Latitude:  18.52,
		Longitude: 73.85,
		City:      "Pune",
		ImageURL:  "https://example.com/x.jpg",
		ImageHash: "abc123",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Equal(t, models.HotspotStatusPending, hotspot.Status)
	require.Equal(t, uint(7), hotspot.UserID)
	require.Equal(t, "abc123", hotspot.ImageHash)
	require.False(t, hotspot.RewardAwarded)
}

func TestSubmitHotspotFlagsDuplicateImage(t *testing.T) {
	hotspotRepo := &fakeHotspotRepo{
		existsByHashFn: func(hash string) (bool, error) {
			require.Equal(t, "abc123", hash)
			return true, nil
		},
		saveFn: func(h *models.Hotspot) (*models.Hotspot, error) { return h, nil },
	}

	svc := NewHotspotService(hotspotRepo, &fakeGarbageRepo{}, &fakeGateway{}, &fakeMediaService{})
	hotspot, err := svc.SubmitHotspot(7, &SubmitHotspotParams{
		Latitude:  18.52,
		Longitude: 73.85,
		ImageURL:  "https://example.com/x.jpg",
		ImageHash: "abc123",
	})
	require.NoError(t, err)
	require.True(t, hotspot.IsDuplicate)
	require.Equal(t, models.HotspotStatusPending, hotspot.Status)
}

func TestGetUserStats(t *testing.T) {
	hotspotRepo := &fakeHotspotRepo{
		countFn: func(userID uint) (int64, error) {
			require.Equal(t, uint(7), userID)
			return 12, nil
		},
		countByStatusFn: func(_ uint, status string) (int64, error) {
			switch status {
			case models.HotspotStatusVerified:
				return 5, nil
			case models.HotspotStatusCleaned:
				return 2, nil
			}
			return 0, nil
		},
	}
	garbageRepo := &fakeGarbageRepo{
		countFn: func(uint) (int64, error) { return 3, nil },
	}

	svc := NewHotspotService(hotspotRepo, garbageRepo, &fakeGateway{}, &fakeMediaService{})
	stats, err := svc.GetUserStats(7)
	require.NoError(t, err)
	require.Equal(t, int64(12), stats.Hotspots)
	require.Equal(t, int64(5), stats.Verified)
	require.Equal(t, int64(2), stats.Cleaned)
	require.Equal(t, int64(3), stats.Requests)
}
