package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "github.com/ecosnap/ecosnap/errors"
	"github.com/ecosnap/ecosnap/models"
	"github.com/ecosnap/ecosnap/server/response"
)

func (s *Server) handleSignup() gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := c.ShouldBindJSON(&user); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}
		created, err := s.AuthService.SignupUser(&user)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "signup successful", http.StatusCreated, created, nil)
	}
}

func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}
		resp, err := s.AuthService.LoginUser(&req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, resp, nil)
	}
}

func (s *Server) handleGovernmentLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.GovLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}
		resp, err := s.AuthService.LoginGovernment(&req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, resp, nil)
	}
}

func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetString("access_token")
		if err := s.AuthService.Logout(token); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "logout successful", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleGetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		user, err := s.AuthService.GetUser(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, models.UserResponse{
			ID:           user.ID,
			Fullname:     user.Fullname,
			Email:        user.Email,
			Role:         user.Role,
			RewardPoints: user.RewardPoints,
		}, nil)
	}
}

func (s *Server) handleCreateGovernmentBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.CreateGovRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}
		gov, err := s.AuthService.CreateGovernmentBody(&req)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "government body created", http.StatusCreated, gov, nil)
	}
}

func (s *Server) handleListGovernmentBodies() gin.HandlerFunc {
	return func(c *gin.Context) {
		bodies, err := s.AuthService.ListGovernmentBodies()
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, bodies, nil)
	}
}

func (s *Server) handleAdjustUserPoints() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid id", http.StatusBadRequest))
			return
		}
		var req struct {
			Delta int `json:"delta" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}
		if err := s.AuthService.AdjustUserPoints(uint(id), req.Delta); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "points adjusted", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleDeleteGovernmentBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid id", http.StatusBadRequest))
			return
		}
		if err := s.AuthService.DeleteGovernmentBody(uint(id)); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "government body deleted", http.StatusOK, nil, nil)
	}
}
