package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	before := due.Add(-24 * time.Hour)
	after := due.Add(24 * time.Hour)

	tests := []struct {
		name   string
		paid   int64
		amount int64
		now    time.Time
		want   Status
	}{
		{"unpaid before due", 0, 12500, before, StatusPending},
		{"unpaid at due date", 0, 12500, due, StatusPending},
		{"unpaid past due", 0, 12500, after, StatusOverdue},
		{"partial before due", 6000, 12500, before, StatusPartiallyPaid},
		{"partial past due", 6000, 12500, after, StatusOverdue},
		{"fully paid before due", 12500, 12500, before, StatusPaid},
		{"fully paid past due stays paid", 12500, 12500, after, StatusPaid},
		{"zero amount bill never overdue", 0, 0, after, StatusPending},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusFor(tc.paid, tc.amount, due, tc.now))
		})
	}
}
