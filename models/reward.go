package models

const (
	RedemptionStatusPending   = "pending"
	RedemptionStatusApproved  = "approved"
	RedemptionStatusDelivered = "delivered"
	RedemptionStatusCancelled = "cancelled"
)

// Reward is a catalog item users spend points on.
type Reward struct {
	Model
	Name           string `json:"name" gorm:"not null"`
	Description    string `json:"description"`
	PointsRequired int    `json:"points_required" gorm:"not null"`
	Stock          int    `json:"stock" gorm:"not null"`
	ImageURL       string `json:"image_url"`
	Category       string `json:"category" gorm:"default:general"`
	IsActive       bool   `json:"is_active" gorm:"default:true"`
}

// Redemption records a committed exchange of points for a reward. It is
// created in the same transaction that debits the user and decrements
// stock.
type Redemption struct {
	Model
	UserID      uint   `json:"user_id" gorm:"not null;index"`
	RewardID    uint   `json:"reward_id" gorm:"not null"`
	PointsSpent int    `json:"points_spent"`
	Status      string `json:"status" gorm:"default:pending"`
}

type CreateRewardRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	PointsRequired int    `json:"points_required" binding:"required,gt=0"`
	Stock          int    `json:"stock" binding:"gte=0"`
	ImageURL       string `json:"image_url"`
	Category       string `json:"category"`
}

type RedeemRequest struct {
	RewardID uint `json:"reward_id" binding:"required"`
}
