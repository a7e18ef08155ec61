package server

import (
	"net/http"

	paymentdomain "github.com/civicgrid/waterworks/internal/payment/domain"
	"github.com/gin-gonic/gin"
)

func (s *Server) ApplyPayment(c *gin.Context) {
	var req paymentdomain.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.Apply(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPaymentByID(c *gin.Context) {
	resp, err := s.paymentSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPaymentsByBill(c *gin.Context) {
	resp, err := s.paymentSvc.ListByBill(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPaymentsByConsumer(c *gin.Context) {
	resp, err := s.paymentSvc.ListByConsumer(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
