package server

import (
	"net/http"
	"strings"

	maintenancedomain "github.com/civicgrid/waterworks/internal/maintenance/domain"
	"github.com/gin-gonic/gin"
)

type createMaintenanceRequest struct {
	AssetID      string `json:"asset_id"`
	Description  string `json:"description"`
	ScheduledFor string `json:"scheduled_for"`
}

func (s *Server) CreateMaintenance(c *gin.Context) {
	var raw createMaintenanceRequest
	if err := c.ShouldBindJSON(&raw); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	scheduledFor, err := parseDate(raw.ScheduledFor)
	if err != nil {
		AbortWithError(c, newValidationError("scheduled_for", "invalid_schedule", "expected YYYY-MM-DD"))
		return
	}

	resp, err := s.maintenanceSvc.Create(c.Request.Context(), maintenancedomain.CreateRequest{
		AssetID:      raw.AssetID,
		Description:  raw.Description,
		ScheduledFor: scheduledFor,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListMaintenance(c *gin.Context) {
	resp, err := s.maintenanceSvc.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListMaintenanceByAsset(c *gin.Context) {
	resp, err := s.maintenanceSvc.ListByAsset(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMaintenanceByID(c *gin.Context) {
	resp, err := s.maintenanceSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateMaintenanceStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) UpdateMaintenanceStatus(c *gin.Context) {
	var raw updateMaintenanceStatusRequest
	if err := c.ShouldBindJSON(&raw); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if strings.TrimSpace(raw.Status) == "" {
		AbortWithError(c, maintenancedomain.ErrInvalidStatus)
		return
	}

	resp, err := s.maintenanceSvc.UpdateStatus(c.Request.Context(), c.Param("id"), raw.Status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteMaintenance(c *gin.Context) {
	if err := s.maintenanceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
