package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	errs "github.com/ecosnap/ecosnap/errors"
	"github.com/ecosnap/ecosnap/server/response"
	"github.com/ecosnap/ecosnap/services"
)

func (s *Server) handleGetWeather() gin.HandlerFunc {
	return func(c *gin.Context) {
		lat, err := strconv.ParseFloat(c.Query("lat"), 64)
		if err != nil {
			response.HandleErrors(c, errs.ErrInvalidLocation)
			return
		}
		lon, err := strconv.ParseFloat(c.Query("lon"), 64)
		if err != nil {
			response.HandleErrors(c, errs.ErrInvalidLocation)
			return
		}
		if err := services.ValidateCoordinates(lat, lon); err != nil {
			response.HandleErrors(c, err)
			return
		}

		report, err := s.WeatherClient.Get(c.Request.Context(), lat, lon)
		if err != nil {
			response.JSON(c, "", http.StatusBadGateway, nil, errs.New("weather service unavailable", http.StatusBadGateway))
			return
		}
		response.JSON(c, "", http.StatusOK, report, nil)
	}
}
