package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type BillDocument struct {
	UtilityName    string
	UtilityAddress string

	BillNumber string
	BillMonth  string
	BillDate   string
	DueDate    string
	Status     string

	ConsumerName    string
	ConsumerAddress string
	Category        string
	MeterSerial     string

	PreviousReading   int64
	CurrentReading    int64
	ConsumptionLiters int64

	Lines []BillLine

	Total       string
	Paid        string
	Outstanding string
}

// BillLine is one slab's share of the charge.
type BillLine struct {
	Description string
	Liters      int64
	Rate        string
	Amount      string
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateBill(ctx context.Context, data BillDocument) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, data.UtilityName, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)
	m.AddRow(8,
		text.NewCol(12, data.UtilityAddress, props.Text{Size: 9}),
	)

	m.AddRow(10,
		text.NewCol(12, "Water Bill", props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Bill number: "+data.BillNumber, props.Text{Top: 0}),
			text.New("Billing month: "+data.BillMonth, props.Text{Top: 4}),
			text.New("Bill date: "+data.BillDate, props.Text{Top: 8}),
			text.New("Due date: "+data.DueDate, props.Text{Top: 12}),
		),
		col.New(6).Add(
			text.New("Status: "+data.Status, props.Text{Top: 0, Style: fontstyle.Bold}),
			text.New("Category: "+data.Category, props.Text{Top: 4}),
			text.New("Meter: "+data.MeterSerial, props.Text{Top: 8}),
		),
	)

	m.AddRow(25,
		col.New(6).Add(
			text.New("Billed to", props.Text{Style: fontstyle.Bold}),
			text.New(data.ConsumerName, props.Text{Top: 5}),
			text.New(data.ConsumerAddress, props.Text{Top: 9}),
		),
		col.New(6).Add(
			text.New("Meter readings", props.Text{Style: fontstyle.Bold}),
			text.New(fmt.Sprintf("Previous: %d L", data.PreviousReading), props.Text{Top: 5}),
			text.New(fmt.Sprintf("Current: %d L", data.CurrentReading), props.Text{Top: 9}),
			text.New(fmt.Sprintf("Consumption: %d L", data.ConsumptionLiters), props.Text{Top: 13}),
		),
	)

	m.AddRow(10,
		text.NewCol(6, "Slab", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Liters", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Rate / KL", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, line := range data.Lines {
		m.AddRow(8,
			text.NewCol(6, line.Description, props.Text{Size: 9}),
			text.NewCol(2, fmt.Sprintf("%d", line.Liters), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.Rate, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Size: 9}),
		text.NewCol(2, data.Total, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Paid", props.Text{Size: 9}),
		text.NewCol(2, data.Paid, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Outstanding", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, data.Outstanding, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}

	return bytes.NewReader(doc.GetBytes()), nil
}
