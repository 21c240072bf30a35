package projection

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	httperr "github.com/aevon-lab/aevon-rules/internal/core/errors"
	"github.com/aevon-lab/aevon-rules/internal/core/rule"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/v1/rules", s.HandleListRules)
	r.GET("/v1/devices/:device_id/conditions", s.HandleQueryConditions)
}

// HandleListRules handles GET /v1/rules
// Query parameters: trigger (optional)
func (s *Service) HandleListRules(c *gin.Context) {
	rules, err := s.ListRules(c.Request.Context(), c.Query("trigger"))
	if err != nil {
		slog.Error("Failed to list rules", "error", err)
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   "Failed to list rules",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// HandleQueryConditions handles GET /v1/devices/:device_id/conditions
// Query parameters: rule, at (optional, RFC3339)
func (s *Service) HandleQueryConditions(c *gin.Context) {
	var uri struct {
		DeviceID string `uri:"device_id" binding:"required"`
	}
	var query struct {
		Rule string    `form:"rule" binding:"required"`
		At   time.Time `form:"at" time_format:"2006-01-02T15:04:05Z07:00"`
	}

	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid path parameters",
			Details:   err.Error(),
		})
		return
	}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	req := ConditionStateRequest{
		DeviceID: uri.DeviceID,
		Rule:     query.Rule,
		At:       query.At,
	}

	resp, err := s.QueryConditions(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, rule.ErrRuleNotFound):
			c.JSON(http.StatusNotFound, httperr.ErrorResponse{
				ErrorType: httperr.HttpNotFoundError,
				Message:   "Rule not found",
				Details:   req.Rule,
			})
		case errors.Is(err, ErrInvalidQuery):
			c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
				ErrorType: httperr.HttpInvalidJsonError,
				Message:   "Invalid condition state query",
				Details:   err.Error(),
			})
		default:
			slog.Error("Failed to query conditions", "error", err, "device_id", req.DeviceID, "rule", req.Rule)
			c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
				ErrorType: httperr.HttpInternalError,
				Message:   "Failed to query conditions",
				Details:   err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
