package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	billingdomain "github.com/civicgrid/waterworks/internal/billing/domain"
	"github.com/civicgrid/waterworks/internal/providers/pdf"
	tariffdomain "github.com/civicgrid/waterworks/internal/tariff/domain"
	"github.com/gin-gonic/gin"
)

type createBillRequest struct {
	ConsumerID      string `json:"consumer_id"`
	ConnectionID    string `json:"connection_id"`
	BillMonth       string `json:"bill_month"`
	BillDate        string `json:"bill_date"`
	DueDate         string `json:"due_date"`
	PreviousReading int64  `json:"previous_reading"`
	CurrentReading  int64  `json:"current_reading"`
}

func (s *Server) CreateBill(c *gin.Context) {
	var req createBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	billDate, err := parseDate(req.BillDate)
	if err != nil {
		AbortWithError(c, newValidationError("bill_date", "invalid_bill_date", "expected YYYY-MM-DD"))
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		AbortWithError(c, newValidationError("due_date", "invalid_due_date", "expected YYYY-MM-DD"))
		return
	}

	resp, err := s.billingSvc.Create(c.Request.Context(), billingdomain.CreateRequest{
		ConsumerID:      req.ConsumerID,
		ConnectionID:    req.ConnectionID,
		BillMonth:       req.BillMonth,
		BillDate:        billDate,
		DueDate:         dueDate,
		PreviousReading: req.PreviousReading,
		CurrentReading:  req.CurrentReading,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type previewBillRequest struct {
	Category          string `json:"category"`
	ConsumptionLiters int64  `json:"consumption_liters"`
	AsOf              string `json:"as_of"`
}

func (s *Server) PreviewBill(c *gin.Context) {
	var req previewBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var asOf time.Time
	if raw := strings.TrimSpace(req.AsOf); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			AbortWithError(c, newValidationError("as_of", "invalid_as_of", "expected YYYY-MM-DD"))
			return
		}
		asOf = parsed
	}

	resp, err := s.billingSvc.Preview(c.Request.Context(), billingdomain.PreviewRequest{
		Category:          req.Category,
		ConsumptionLiters: req.ConsumptionLiters,
		AsOf:              asOf,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBillByID(c *gin.Context) {
	resp, err := s.billingSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBillsByConsumer(c *gin.Context) {
	resp, err := s.billingSvc.ListByConsumer(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListBillsByConnection(c *gin.Context) {
	resp, err := s.billingSvc.ListByConnection(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetBillPDF(c *gin.Context) {
	ctx := c.Request.Context()

	bill, err := s.billingSvc.Get(ctx, c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	consumer, err := s.consumerSvc.Get(ctx, bill.ConsumerID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	connection, err := s.connectionSvc.Get(ctx, bill.ConnectionID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	tariff, err := s.tariffSvc.Get(ctx, bill.TariffID.String())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc := pdf.BillDocument{
		UtilityName:    s.cfg.AppName,
		UtilityAddress: "Municipal Water Supply Department",

		BillNumber: bill.ID.String(),
		BillMonth:  bill.BillMonth,
		BillDate:   bill.BillDate.Format("2006-01-02"),
		DueDate:    bill.DueDate.Format("2006-01-02"),
		Status:     string(bill.Status),

		ConsumerName:    consumer.Name,
		ConsumerAddress: consumer.Address,
		Category:        string(consumer.Category),
		MeterSerial:     connection.MeterSerial,

		PreviousReading:   bill.PreviousReading,
		CurrentReading:    bill.CurrentReading,
		ConsumptionLiters: bill.ConsumptionLiters,

		Lines: billLines(bill.ConsumptionLiters, tariff.Slabs),

		Total:       pdf.FormatINR(bill.AmountPaise),
		Paid:        pdf.FormatINR(bill.PaidPaise),
		Outstanding: pdf.FormatINR(bill.AmountPaise - bill.PaidPaise),
	}

	reader, err := s.pdfProvider.GenerateBill(ctx, doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=bill-%s.pdf", bill.ID.String()))
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}

// billLines breaks the billed consumption into per-slab display rows. The
// authoritative amount is the stored one; per-line amounts are rounded for
// display only.
func billLines(consumptionLiters int64, slabs []tariffdomain.SlabResponse) []pdf.BillLine {
	lines := make([]pdf.BillLine, 0, len(slabs))
	for _, slab := range slabs {
		upper := consumptionLiters
		if slab.EndLiters != nil && *slab.EndLiters < upper {
			upper = *slab.EndLiters
		}
		lower := slab.StartLiters
		if lower < 1 {
			lower = 1
		}
		billed := upper - lower + 1
		if billed <= 0 {
			continue
		}

		rangeLabel := fmt.Sprintf("%d+ L", slab.StartLiters)
		if slab.EndLiters != nil {
			rangeLabel = fmt.Sprintf("%d - %d L", slab.StartLiters, *slab.EndLiters)
		}

		lines = append(lines, pdf.BillLine{
			Description: rangeLabel,
			Liters:      billed,
			Rate:        pdf.FormatINR(slab.RatePerKLPaise),
			Amount:      pdf.FormatINR((billed*slab.RatePerKLPaise + 500) / 1000),
		})
	}
	return lines
}
