package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "github.com/ecosnap/ecosnap/errors"
	"github.com/ecosnap/ecosnap/models"
	"github.com/ecosnap/ecosnap/server/response"
	"github.com/ecosnap/ecosnap/services"
)

func (s *Server) handleCreateGarbageRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		var params services.SubmitGarbageRequestParams
		if err := c.ShouldBindJSON(&params); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		request, err := s.GarbageRequestService.SubmitGarbageRequest(userID, &params)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "garbage collection requested", http.StatusCreated, request, nil)
	}
}

func (s *Server) handleGetGarbageRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		filter := models.GarbageRequestFilter{
			Status: c.Query("status"),
			City:   c.Query("city"),
			Limit:  limit,
		}
		requests, err := s.GarbageRequestService.GetGarbageRequests(filter)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, requests, nil)
	}
}
