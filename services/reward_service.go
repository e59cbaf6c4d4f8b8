package services

import (
	"context"
	"log"

	"github.com/ecosnap/ecosnap/db"
	"github.com/ecosnap/ecosnap/models"
)

// RedemptionMailer sends the post-redemption confirmation. Mail failures
// never unwind a committed redemption.
type RedemptionMailer interface {
	SendRedemptionMail(ctx context.Context, to, rewardName string, pointsSpent int) error
}

type RewardService interface {
	GetActiveRewards() ([]models.Reward, error)
	CreateReward(req *models.CreateRewardRequest) (*models.Reward, error)
	RedeemReward(userID, rewardID uint) (*models.Redemption, int, error)
	GetUserRedemptions(userID uint) ([]models.Redemption, error)
}

type rewardService struct {
	rewardRepo db.RewardRepository
	userRepo   db.UserRepository
	mailer     RedemptionMailer
}

func NewRewardService(rewardRepo db.RewardRepository, userRepo db.UserRepository, mailer RedemptionMailer) RewardService {
	return &rewardService{
		rewardRepo: rewardRepo,
		userRepo:   userRepo,
		mailer:     mailer,
	}
}

func (s *rewardService) GetActiveRewards() ([]models.Reward, error) {
	return s.rewardRepo.GetActiveRewards()
}

func (s *rewardService) CreateReward(req *models.CreateRewardRequest) (*models.Reward, error) {
	category := req.Category
	if category == "" {
		category = "general"
	}
	reward := &models.Reward{
		Name:           req.Name,
		Description:    req.Description,
		PointsRequired: req.PointsRequired,
		Stock:          req.Stock,
		ImageURL:       req.ImageURL,
		Category:       category,
		IsActive:       true,
	}
	if err := s.rewardRepo.CreateReward(reward); err != nil {
		return nil, err
	}
	return reward, nil
}

// RedeemReward exchanges points for a reward and returns the redemption
// plus the user's remaining balance. The repository transaction is the
// authority on balance and stock; this layer only resolves entities and
// sends the confirmation mail.
func (s *rewardService) RedeemReward(userID, rewardID uint) (*models.Redemption, int, error) {
	user, err := s.userRepo.FindUserByID(userID)
	if err != nil {
		return nil, 0, err
	}
	reward, err := s.rewardRepo.GetRewardByID(rewardID)
	if err != nil {
		return nil, 0, err
	}

	redemption, err := s.rewardRepo.RedeemReward(userID, rewardID)
	if err != nil {
		return nil, 0, err
	}

	remaining := user.RewardPoints - redemption.PointsSpent
	if fresh, err := s.userRepo.FindUserByID(userID); err == nil {
		remaining = fresh.RewardPoints
	}

	if s.mailer != nil && user.Email != "" {
		if err := s.mailer.SendRedemptionMail(context.Background(), user.Email, reward.Name, redemption.PointsSpent); err != nil {
			log.Printf("redemption mail to %s failed: %v", user.Email, err)
		}
	}
	return redemption, remaining, nil
}

func (s *rewardService) GetUserRedemptions(userID uint) ([]models.Redemption, error) {
	return s.rewardRepo.GetRedemptionsByUserID(userID)
}
