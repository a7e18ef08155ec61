package server

import (
	"net/http"

	consumerdomain "github.com/civicgrid/waterworks/internal/consumer/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) CreateConsumer(c *gin.Context) {
	var req consumerdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.consumerSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListConsumers(c *gin.Context) {
	resp, err := s.consumerSvc.List(c.Request.Context(), consumerdomain.ListFilter{
		Category: c.Query("category"),
		Status:   c.Query("status"),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetConsumerByID(c *gin.Context) {
	resp, err := s.consumerSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateConsumer(c *gin.Context) {
	var req consumerdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.consumerSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
