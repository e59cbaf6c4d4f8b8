package services

import (
	"github.com/ecosnap/ecosnap/db"
	errs "github.com/ecosnap/ecosnap/errors"
	"github.com/ecosnap/ecosnap/models"
)

// GarbageRequestBonus is credited in the same transaction that creates
// the request. Collection requests skip verification on purpose: they
// announce an event rather than claim pollution exists.
const GarbageRequestBonus = 30

type GarbageRequestService interface {
	SubmitGarbageRequest(userID uint, params *SubmitGarbageRequestParams) (*models.GarbageRequest, error)
	GetGarbageRequests(filter models.GarbageRequestFilter) ([]models.GarbageRequest, error)
}

type SubmitGarbageRequestParams struct {
	EventType   string  `json:"event_type" binding:"required"`
	Description string  `json:"description"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	District    string  `json:"district"`
}

type garbageRequestService struct {
	garbageRepo db.GarbageRequestRepository
}

func NewGarbageRequestService(garbageRepo db.GarbageRequestRepository) GarbageRequestService {
	return &garbageRequestService{garbageRepo: garbageRepo}
}

func (s *garbageRequestService) SubmitGarbageRequest(userID uint, params *SubmitGarbageRequestParams) (*models.GarbageRequest, error) {
	if params.EventType == "" {
		return nil, errs.New("event_type is required", 400)
	}
	if err := ValidateCoordinates(params.Latitude, params.Longitude); err != nil {
		return nil, err
	}

	request := &models.GarbageRequest{
		UserID:      userID,
		EventType:   params.EventType,
		Description: params.Description,
		Latitude:    params.Latitude,
		Longitude:   params.Longitude,
		Address:     params.Address,
		City:        params.City,
		State:       params.State,
		District:    params.District,
	}
	return s.garbageRepo.SaveGarbageRequest(request, GarbageRequestBonus)
}

func (s *garbageRequestService) GetGarbageRequests(filter models.GarbageRequestFilter) ([]models.GarbageRequest, error) {
	return s.garbageRepo.GetGarbageRequests(filter)
}
