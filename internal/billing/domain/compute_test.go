package domain

import (
	"testing"

	tariffdomain "github.com/civicgrid/waterworks/internal/tariff/domain"
	"github.com/stretchr/testify/assert"
)

func domesticSlabs() []tariffdomain.TariffSlab {
	end1 := int64(15000)
	end2 := int64(30000)
	return []tariffdomain.TariffSlab{
		{StartLiters: 0, EndLiters: &end1, RatePerKLPaise: 500},
		{StartLiters: 15001, EndLiters: &end2, RatePerKLPaise: 1000},
		{StartLiters: 30001, EndLiters: nil, RatePerKLPaise: 2000},
	}
}

func TestComputeAmountPaise_ZeroConsumption(t *testing.T) {
	assert.Equal(t, int64(0), ComputeAmountPaise(0, domesticSlabs()))
	assert.Equal(t, int64(0), ComputeAmountPaise(-500, domesticSlabs()))
}

func TestComputeAmountPaise_SingleSlab(t *testing.T) {
	// 10000 L entirely in the first slab: 10000 * 500 / 1000 = 5000 paise.
	assert.Equal(t, int64(5000), ComputeAmountPaise(10000, domesticSlabs()))
}

func TestComputeAmountPaise_CrossesSlabBoundary(t *testing.T) {
	// 20000 L: 15000 L at 500 paise/KL plus 5000 L at 1000 paise/KL
	// = 7500 + 5000 = 12500 paise (Rs 125).
	assert.Equal(t, int64(12500), ComputeAmountPaise(20000, domesticSlabs()))
}

func TestComputeAmountPaise_TerminalUnboundedSlab(t *testing.T) {
	// 40000 L: 7500 + 15000 + 10000*2000/1000 = 42500 paise.
	assert.Equal(t, int64(42500), ComputeAmountPaise(40000, domesticSlabs()))
}

func TestComputeAmountPaise_ExactBoundary(t *testing.T) {
	// Consumption exactly at a slab edge bills nothing from the next slab.
	assert.Equal(t, int64(7500), ComputeAmountPaise(15000, domesticSlabs()))
	// One more liter starts accruing at the second slab's rate.
	assert.Equal(t, int64(7501), ComputeAmountPaise(15001, domesticSlabs()))
}

func TestComputeAmountPaise_RoundsHalfUpOnce(t *testing.T) {
	// 1 L at 500 paise/KL is 0.5 paise, rounded half-up to 1.
	assert.Equal(t, int64(1), ComputeAmountPaise(1, domesticSlabs()))
	// 3 L at 500 paise/KL is 1.5 paise, rounded to 2; never 3 separate
	// roundings of 0.5.
	assert.Equal(t, int64(2), ComputeAmountPaise(3, domesticSlabs()))
}

func TestComputeAmountPaise_Monotonic(t *testing.T) {
	slabs := domesticSlabs()
	prev := int64(0)
	for c := int64(0); c <= 35000; c += 250 {
		got := ComputeAmountPaise(c, slabs)
		assert.GreaterOrEqual(t, got, prev, "amount decreased at %d liters", c)
		prev = got
	}
}

func TestComputeAmountPaise_SplitBillingIsNotAdditive(t *testing.T) {
	slabs := domesticSlabs()
	// Splitting 20000 L into two 10000 L bills keeps both inside the cheap
	// slab, so the split total undercuts the single-bill amount. Slab
	// progression only sees per-bill consumption.
	whole := ComputeAmountPaise(20000, slabs)
	split := ComputeAmountPaise(10000, slabs) + ComputeAmountPaise(10000, slabs)
	assert.Equal(t, int64(12500), whole)
	assert.Equal(t, int64(10000), split)
	assert.Less(t, split, whole)
}
