package db

import (
	errs "github.com/ecosnap/ecosnap/errors"
	"github.com/ecosnap/ecosnap/models"
	"gorm.io/gorm"
)

type GarbageRequestRepository interface {
	SaveGarbageRequest(request *models.GarbageRequest, bonus int) (*models.GarbageRequest, error)
	GetGarbageRequests(filter models.GarbageRequestFilter) ([]models.GarbageRequest, error)
	CountGarbageRequestsByUser(userID uint) (int64, error)
}

type garbageRequestRepo struct {
	DB *gorm.DB
}

func NewGarbageRequestRepo(db *GormDB) GarbageRequestRepository {
	return &garbageRequestRepo{db.DB}
}

// SaveGarbageRequest creates the request and credits the submission bonus
// in the same transaction. Collection requests are not pollution claims,
// so there is no verification gate before the credit.
func (r *garbageRequestRepo) SaveGarbageRequest(request *models.GarbageRequest, bonus int) (*models.GarbageRequest, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		request.Status = models.GarbageRequestStatusPending
		request.RewardAwarded = true
		if err := tx.Create(request).Error; err != nil {
			return err
		}

		credit := tx.Model(&models.User{}).
			Where("id = ?", request.UserID).
			Update("reward_points", gorm.Expr("reward_points + ?", bonus))
		if credit.Error != nil {
			return credit.Error
		}
		if credit.RowsAffected == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (r *garbageRequestRepo) GetGarbageRequests(filter models.GarbageRequestFilter) ([]models.GarbageRequest, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := r.DB.Model(&models.GarbageRequest{})
	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}

	var requests []models.GarbageRequest
	if err := query.Order("created_at DESC").Limit(limit).Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *garbageRequestRepo) CountGarbageRequestsByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.GarbageRequest{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
