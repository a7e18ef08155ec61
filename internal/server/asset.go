package server

import (
	"net/http"
	"strings"

	assetdomain "github.com/civicgrid/waterworks/internal/asset/domain"
	"github.com/gin-gonic/gin"
)

type assetRequest struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	Location       string `json:"location"`
	Status         string `json:"status"`
	CommissionedAt string `json:"commissioned_at"`
}

func (r assetRequest) toDomain() (assetdomain.Request, error) {
	req := assetdomain.Request{
		Name:     r.Name,
		Type:     r.Type,
		Location: r.Location,
		Status:   r.Status,
	}
	if raw := strings.TrimSpace(r.CommissionedAt); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return assetdomain.Request{}, newValidationError("commissioned_at", "invalid_commissioned_at", "expected YYYY-MM-DD")
		}
		req.CommissionedAt = parsed
	}
	return req, nil
}

func (s *Server) CreateAsset(c *gin.Context) {
	var raw assetRequest
	if err := c.ShouldBindJSON(&raw); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req, err := raw.toDomain()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.assetSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListAssets(c *gin.Context) {
	resp, err := s.assetSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetAssetByID(c *gin.Context) {
	resp, err := s.assetSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateAsset(c *gin.Context) {
	var raw assetRequest
	if err := c.ShouldBindJSON(&raw); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	req, err := raw.toDomain()
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.assetSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteAsset(c *gin.Context) {
	if err := s.assetSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
