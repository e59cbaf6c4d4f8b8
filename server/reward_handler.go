package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	errs "github.com/ecosnap/ecosnap/errors"
	"github.com/ecosnap/ecosnap/models"
	"github.com/ecosnap/ecosnap/server/response"
)

func (s *Server) handleGetRewards() gin.HandlerFunc {
	return func(c *gin.Context) {
		rewards, err := s.RewardService.GetActiveRewards()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, rewards, nil)
	}
}

func (s *Server) handleCreateReward() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateRewardRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}
		reward, err := s.RewardService.CreateReward(&req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "reward created", http.StatusCreated, reward, nil)
	}
}

func (s *Server) handleRedeemReward() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var req models.RedeemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		redemption, remaining, err := s.RewardService.RedeemReward(userID, req.RewardID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "reward redeemed", http.StatusOK, gin.H{
			"redemption":       redemption,
			"remaining_points": remaining,
		}, nil)
	}
}

func (s *Server) handleGetRedemptions() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		redemptions, err := s.RewardService.GetUserRedemptions(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, redemptions, nil)
	}
}
