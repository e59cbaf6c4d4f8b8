package db

import (
	errs "github.com/ecosnap/ecosnap/errors"
	"github.com/ecosnap/ecosnap/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const defaultListLimit = 50

type HotspotRepository interface {
	SaveHotspot(hotspot *models.Hotspot) (*models.Hotspot, error)
	GetHotspotByID(id uuid.UUID) (*models.Hotspot, error)
	GetHotspots(filter models.HotspotFilter) ([]models.Hotspot, error)
	ExistsByImageHash(hash string) (bool, error)
	RejectHotspot(id uuid.UUID, reason string) error
	VerifyHotspot(id uuid.UUID, ownerID uint, result models.DetectionResult, bonus int) error
	MarkHotspotCleaned(id uuid.UUID) error
	CountHotspotsByUser(userID uint) (int64, error)
	CountHotspotsByUserAndStatus(userID uint, status string) (int64, error)
}

type hotspotRepo struct {
	DB *gorm.DB
}

func NewHotspotRepo(db *GormDB) HotspotRepository {
	return &hotspotRepo{db.DB}
}

func (r *hotspotRepo) SaveHotspot(hotspot *models.Hotspot) (*models.Hotspot, error) {
	if err := r.DB.Create(hotspot).Error; err != nil {
		return nil, errors.Wrap(err, "could not save hotspot")
	}
	return hotspot, nil
}

func (r *hotspotRepo) GetHotspotByID(id uuid.UUID) (*models.Hotspot, error) {
	var hotspot models.Hotspot
	err := r.DB.Where("id = ?", id).First(&hotspot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "could not find hotspot")
	}
	return &hotspot, nil
}

func (r *hotspotRepo) ExistsByImageHash(hash string) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Hotspot{}).Where("image_hash = ?", hash).Count(&count).Error
	return count > 0, err
}

// GetHotspots is a pure query: newest first, bounded, no cursor state.
func (r *hotspotRepo) GetHotspots(filter models.HotspotFilter) ([]models.Hotspot, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := r.DB.Model(&models.Hotspot{})
	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}

	var hotspots []models.Hotspot
	if err := query.Order("created_at DESC").Limit(limit).Find(&hotspots).Error; err != nil {
		return nil, err
	}
	return hotspots, nil
}

// RejectHotspot flips pending -> rejected. The status guard in the WHERE
// clause makes the edge single-shot: a racer that lost sees zero rows and
// gets ErrInvalidTransition.
func (r *hotspotRepo) RejectHotspot(id uuid.UUID, reason string) error {
	res := r.DB.Model(&models.Hotspot{}).
		Where("id = ? AND status = ?", id, models.HotspotStatusPending).
		Updates(map[string]interface{}{
			"status":           models.HotspotStatusRejected,
			"rejection_reason": reason,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrInvalidTransition
	}
	return nil
}

// VerifyHotspot flips pending -> verified and credits the owner in one
// transaction. Either both land or neither does, and the status guard
// means the bonus can be paid at most once per hotspot.
func (r *hotspotRepo) VerifyHotspot(id uuid.UUID, ownerID uint, result models.DetectionResult, bonus int) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Hotspot{}).
			Where("id = ? AND status = ?", id, models.HotspotStatusPending).
			Updates(map[string]interface{}{
				"status":         models.HotspotStatusVerified,
				"pollutant_type": result.PollutantType,
				"confidence":     result.Confidence,
				"severity":       result.Severity,
				"reward_awarded": true,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.ErrInvalidTransition
		}

		credit := tx.Model(&models.User{}).
			Where("id = ?", ownerID).
			Update("reward_points", gorm.Expr("reward_points + ?", bonus))
		if credit.Error != nil {
			return credit.Error
		}
		if credit.RowsAffected == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
}

// MarkHotspotCleaned records a clean-up by the collection crews. Only a
// verified hotspot can be closed out this way.
func (r *hotspotRepo) MarkHotspotCleaned(id uuid.UUID) error {
	res := r.DB.Model(&models.Hotspot{}).
		Where("id = ? AND status = ?", id, models.HotspotStatusVerified).
		Update("status", models.HotspotStatusCleaned)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrInvalidTransition
	}
	return nil
}

func (r *hotspotRepo) CountHotspotsByUser(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Hotspot{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *hotspotRepo) CountHotspotsByUserAndStatus(userID uint, status string) (int64, error) {
	var count int64
	err := r.DB.Model(&models.Hotspot{}).Where("user_id = ? AND status = ?", userID, status).Count(&count).Error
	return count, err
}
