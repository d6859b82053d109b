package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pbis-gateway/internal/middleware"
	"github.com/noah-isme/pbis-gateway/internal/models"
	appErrors "github.com/noah-isme/pbis-gateway/pkg/errors"
	"github.com/noah-isme/pbis-gateway/pkg/response"
)

// sessionFromContext returns the gated session or writes 401.
func sessionFromContext(c *gin.Context) (*models.Session, bool) {
	session := middleware.CurrentSession(c)
	if session == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return nil, false
	}
	return session, true
}

// dateRangeQuery reads startDate/endDate, accepting snake case as well.
func dateRangeQuery(c *gin.Context) models.DateRange {
	start := c.Query("startDate")
	if start == "" {
		start = c.Query("start_date")
	}
	end := c.Query("endDate")
	if end == "" {
		end = c.Query("end_date")
	}
	return models.DateRange{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)}
}

// monthQuery parses the month query parameter; zero when absent.
func monthQuery(c *gin.Context) (int, bool) {
	raw := strings.TrimSpace(c.Query("month"))
	if raw == "" {
		return 0, true
	}
	month, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "month must be a number"))
		return 0, false
	}
	return month, true
}

func bindJSON(c *gin.Context, dest interface{}, message string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message))
		return false
	}
	return true
}

func requestMeta(c *gin.Context) models.LoginRequest {
	return models.LoginRequest{IP: c.ClientIP(), UserAgent: c.GetHeader("User-Agent")}
}
