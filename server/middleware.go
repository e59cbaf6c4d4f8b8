package server

import (
	"net/http"
	"strconv"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"

	errs "github.com/ecosnap/ecosnap/errors"
	"github.com/ecosnap/ecosnap/models"
	"github.com/ecosnap/ecosnap/server/response"
	"github.com/ecosnap/ecosnap/services/jwt"
)

// Authorize validates the bearer token, rejects blacklisted tokens and
// loads the caller into the context. Government tokens carry accounts
// from a different table, so only citizen tokens resolve a User row.
func (s *Server) Authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := getTokenFromHeader(c)
		if accessToken == "" {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		if s.UserRepository.IsTokenInBlacklist(accessToken) {
			respondAndAbort(c, "access token is revoked", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		accessClaims, err := jwt.ValidateAndGetClaims(accessToken, s.Config.JWTSecret)
		if err != nil {
			respondAndAbort(c, "", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
			return
		}

		idClaim, ok := accessClaims["id"].(float64)
		if !ok {
			respondAndAbort(c, "", http.StatusBadRequest, nil, errs.New("invalid userID format", http.StatusBadRequest))
			return
		}
		userID := uint(idClaim)
		role, _ := accessClaims["role"].(string)

		if role != models.RoleGovernment {
			user, err := s.UserRepository.FindUserByID(userID)
			if err != nil {
				respondAndAbort(c, "user not found", http.StatusUnauthorized, nil, errs.New("Unauthorized", http.StatusUnauthorized))
				return
			}
			if user.IsBlocked {
				respondAndAbort(c, "inactive user", http.StatusUnauthorized, nil, errs.InActiveUserError)
				return
			}
			c.Set("user", user)
		}

		c.Set("userID", userID)
		c.Set("role", role)
		c.Set("access_token", accessToken)
		c.Next()
	}
}

// GovernmentOnly gates the verification and admin surface.
func (s *Server) GovernmentOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != models.RoleGovernment {
			respondAndAbort(c, "government access required", http.StatusForbidden, nil, errs.New("Forbidden", http.StatusForbidden))
			return
		}
		c.Next()
	}
}

// limitSubmissions throttles write endpoints per caller. Submissions are
// user actions, not machine traffic, so 10 per minute is generous.
func limitSubmissions(store ratelimit.Store) gin.HandlerFunc {
	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler:   errs.ErrorHandler,
		KeyFunc:        submissionKeyFunc,
		BeforeResponse: nil,
	})
}

func newSubmissionStore() ratelimit.Store {
	return ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 10,
	})
}

func submissionKeyFunc(c *gin.Context) string {
	if userID, ok := c.Get("userID"); ok {
		if id, ok := userID.(uint); ok {
			return "user:" + strconv.FormatUint(uint64(id), 10)
		}
	}
	return c.ClientIP()
}

// respondAndAbort calls response.JSON and aborts the Context
func respondAndAbort(c *gin.Context, message string, status int, data interface{}, e *errs.Error) {
	response.JSON(c, message, status, data, e)
	c.Abort()
}

// getTokenFromHeader returns the token string in the authorization header
func getTokenFromHeader(c *gin.Context) string {
	authHeader := c.Request.Header.Get("Authorization")
	if len(authHeader) > 8 {
		return authHeader[7:]
	}
	return ""
}

func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
