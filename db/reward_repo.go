package db

import (
	errs "github.com/ecosnap/ecosnap/errors"
	"github.com/ecosnap/ecosnap/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type RewardRepository interface {
	CreateReward(reward *models.Reward) error
	GetActiveRewards() ([]models.Reward, error)
	GetRewardByID(id uint) (*models.Reward, error)
	RedeemReward(userID uint, rewardID uint) (*models.Redemption, error)
	GetRedemptionsByUserID(userID uint) ([]models.Redemption, error)
}

type rewardRepo struct {
	DB *gorm.DB
}

func NewRewardRepo(db *GormDB) RewardRepository {
	return &rewardRepo{db.DB}
}

func (r *rewardRepo) CreateReward(reward *models.Reward) error {
	return r.DB.Create(reward).Error
}

func (r *rewardRepo) GetActiveRewards() ([]models.Reward, error) {
	var rewards []models.Reward
	err := r.DB.Where("is_active = ?", true).Order("created_at DESC").Find(&rewards).Error
	if err != nil {
		return nil, err
	}
	return rewards, nil
}

func (r *rewardRepo) GetRewardByID(id uint) (*models.Reward, error) {
	var reward models.Reward
	err := r.DB.First(&reward, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errors.Wrap(err, "could not find reward")
	}
	return &reward, nil
}

// RedeemReward debits the user, decrements stock and records the
// redemption as one unit. The guarded updates keep two concurrent redeems
// from both passing the balance or stock check; the loser rolls back with
// a typed failure and nothing is half-applied.
func (r *rewardRepo) RedeemReward(userID uint, rewardID uint) (*models.Redemption, error) {
	var redemption *models.Redemption
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.First(&reward, rewardID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.ErrNotFound
			}
			return err
		}

		debit := tx.Model(&models.User{}).
			Where("id = ? AND reward_points >= ?", userID, reward.PointsRequired).
			Update("reward_points", gorm.Expr("reward_points - ?", reward.PointsRequired))
		if debit.Error != nil {
			return debit.Error
		}
		if debit.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return errs.ErrNotFound
			}
			return errs.ErrInsufficientBalance
		}

		stock := tx.Model(&models.Reward{}).
			Where("id = ? AND stock > 0 AND is_active = ?", rewardID, true).
			Update("stock", gorm.Expr("stock - 1"))
		if stock.Error != nil {
			return stock.Error
		}
		if stock.RowsAffected == 0 {
			return errs.ErrOutOfStock
		}

		redemption = &models.Redemption{
			UserID:      userID,
			RewardID:    rewardID,
			PointsSpent: reward.PointsRequired,
			Status:      models.RedemptionStatusPending,
		}
		return tx.Create(redemption).Error
	})
	if err != nil {
		return nil, err
	}
	return redemption, nil
}

func (r *rewardRepo) GetRedemptionsByUserID(userID uint) ([]models.Redemption, error) {
	var redemptions []models.Redemption
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&redemptions).Error
	if err != nil {
		return nil, err
	}
	return redemptions, nil
}
