package server

import (
	"net/http"
	"strings"
	"time"

	tariffdomain "github.com/civicgrid/waterworks/internal/tariff/domain"
	"github.com/gin-gonic/gin"
)

type createTariffRequest struct {
	Category      string                    `json:"category"`
	Name          string                    `json:"name"`
	EffectiveFrom string                    `json:"effective_from"`
	Slabs         []tariffdomain.SlabRequest `json:"slabs"`
	Metadata      map[string]any            `json:"metadata"`
}

func (s *Server) CreateTariff(c *gin.Context) {
	var req createTariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	effectiveFrom, err := parseDate(req.EffectiveFrom)
	if err != nil {
		AbortWithError(c, newValidationError("effective_from", "invalid_effective_from", "expected YYYY-MM-DD"))
		return
	}

	resp, err := s.tariffSvc.Create(c.Request.Context(), tariffdomain.CreateRequest{
		Category:      req.Category,
		Name:          req.Name,
		EffectiveFrom: effectiveFrom,
		Slabs:         req.Slabs,
		Metadata:      req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTariffs(c *gin.Context) {
	resp, err := s.tariffSvc.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTariffByID(c *gin.Context) {
	resp, err := s.tariffSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeactivateTariff(c *gin.Context) {
	resp, err := s.tariffSvc.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ResolveTariff(c *gin.Context) {
	category := tariffdomain.Category(strings.ToUpper(strings.TrimSpace(c.Query("category"))))
	if !category.Valid() {
		AbortWithError(c, tariffdomain.ErrInvalidCategory)
		return
	}

	asOf := time.Now().UTC()
	if raw := strings.TrimSpace(c.Query("as_of")); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			AbortWithError(c, newValidationError("as_of", "invalid_as_of", "expected YYYY-MM-DD"))
			return
		}
		asOf = parsed
	}

	resp, err := s.tariffSvc.Resolve(c.Request.Context(), category, asOf)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func parseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(value))
}
