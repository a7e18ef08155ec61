package domain

import (
	tariffdomain "github.com/civicgrid/waterworks/internal/tariff/domain"
)

// ComputeAmountPaise prices a consumption volume against an ordered slab
// schedule. Each slab bills the liters falling inside its range at
// rate_per_kl/1000 per liter; liter zero itself is free, so a slab starting
// at zero bills min(consumption, end) liters. The per-slab products are
// accumulated in liter-paise and rounded half-up to whole paise once at the
// end, never per slab.
//
// Slabs must already be validated (see tariffdomain.ValidateSlabs); this
// walk assumes contiguity and an unbounded terminal slab.
func ComputeAmountPaise(consumptionLiters int64, slabs []tariffdomain.TariffSlab) int64 {
	if consumptionLiters <= 0 {
		return 0
	}

	var literPaise int64
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
		literPaise += billed * slab.RatePerKLPaise
	}

	// Round half-up from liter-paise (thousandths of a paisa per KL rate).
	return (literPaise + 500) / 1000
}
