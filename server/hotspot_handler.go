package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	errs "github.com/ecosnap/ecosnap/errors"
	"github.com/ecosnap/ecosnap/models"
	"github.com/ecosnap/ecosnap/server/response"
	"github.com/ecosnap/ecosnap/services"
)

// handleCreateHotspot accepts a multipart form: an image plus location
// fields. The image goes to object storage first; the hotspot row only
// exists if the upload succeeded.
func (s *Server) handleCreateHotspot() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		lat, err := strconv.ParseFloat(c.PostForm("latitude"), 64)
		if err != nil {
			response.HandleErrors(c, errs.ErrInvalidLocation)
			return
		}
		lon, err := strconv.ParseFloat(c.PostForm("longitude"), 64)
		if err != nil {
			response.HandleErrors(c, errs.ErrInvalidLocation)
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("image is required", http.StatusBadRequest))
			return
		}
		upload, err := s.MediaService.UploadImage(fileHeader, userID)
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New(err.Error(), http.StatusBadRequest))
			return
		}

		hotspot, err := s.HotspotService.SubmitHotspot(userID, &services.SubmitHotspotParams{
			Latitude:  lat,
			Longitude: lon,
			Address:   c.PostForm("address"),
			State:     c.PostForm("state"),
			District:  c.PostForm("district"),
			City:      c.PostForm("city"),
			Taluka:    c.PostForm("taluka"),
			Village:   c.PostForm("village"),
			ImageURL:  upload.ImageURL,
			ImageHash: upload.ImageHash,
		})
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "hotspot reported", http.StatusCreated, hotspot, nil)
	}
}

func (s *Server) handleGetHotspots() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		filter := models.HotspotFilter{
			Status: c.Query("status"),
			City:   c.Query("city"),
			Limit:  limit,
		}
		hotspots, err := s.HotspotService.GetHotspots(filter)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, hotspots, nil)
	}
}

func (s *Server) handleGetHotspot() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid hotspot id", http.StatusBadRequest))
			return
		}
		hotspot, err := s.HotspotService.GetHotspot(id)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, hotspot, nil)
	}
}

// handleVerifyHotspot triggers the detection workflow for a pending
// hotspot. A detection-service outage returns 502 and leaves the hotspot
// pending for a later retry.
func (s *Server) handleVerifyHotspot() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid hotspot id", http.StatusBadRequest))
			return
		}
		outcome, err := s.HotspotService.VerifyHotspot(c.Request.Context(), id)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, outcome.Message, http.StatusOK, outcome, nil)
	}
}

func (s *Server) handleMarkHotspotCleaned() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, errs.New("invalid hotspot id", http.StatusBadRequest))
			return
		}
		if err := s.HotspotService.MarkHotspotCleaned(id); err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "hotspot marked cleaned", http.StatusOK, nil, nil)
	}
}

func (s *Server) handleGetUserStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			response.JSON(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}
		stats, err := s.HotspotService.GetUserStats(userID)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "", http.StatusOK, stats, nil)
	}
}
