package pdf

import (
	"context"
	"fmt"
	"io"
)

type Provider interface {
	GenerateBill(ctx context.Context, data BillDocument) (io.Reader, error)
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateBill(ctx context.Context, data BillDocument) (io.Reader, error) {
	return nil, nil
}

// FormatINR renders paise as rupees. The default PDF fonts lack the rupee
// glyph, so the prefix is spelled out.
func FormatINR(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%sRs %d.%02d", sign, paise/100, paise%100)
}
