package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Category classifies a consumer for tariff resolution.
type Category string

const (
	CategoryDomestic      Category = "DOMESTIC"
	CategoryCommercial    Category = "COMMERCIAL"
	CategoryIndustrial    Category = "INDUSTRIAL"
	CategoryInstitutional Category = "INSTITUTIONAL"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryDomestic, CategoryCommercial, CategoryIndustrial, CategoryInstitutional:
		return true
	default:
		return false
	}
}

// Tariff is a progressive-rate schedule for one consumer category. A newer
// effective-dated tariff supersedes but never deletes the prior one, so bills
// issued under the old schedule keep a valid reference.
type Tariff struct {
	ID            snowflake.ID      `json:"id" gorm:"primaryKey"`
	Category      Category          `json:"category" gorm:"type:text;not null;index"`
	Name          string            `json:"name" gorm:"not null"`
	EffectiveFrom time.Time         `json:"effective_from" gorm:"not null;index"`
	Active        bool              `json:"active" gorm:"not null;default:true"`
	Metadata      datatypes.JSONMap `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt     time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	// Slabs are loaded explicitly by the repository, never via association.
	Slabs []TariffSlab `json:"slabs,omitempty" gorm:"-"`
}

func (Tariff) TableName() string { return "tariffs" }

// TariffSlab is one consumption tier. EndLiters nil marks the terminal
// unbounded slab.
type TariffSlab struct {
	ID             snowflake.ID `json:"id" gorm:"primaryKey"`
	TariffID       snowflake.ID `json:"tariff_id" gorm:"not null;index"`
	StartLiters    int64        `json:"start_liters" gorm:"not null"`
	EndLiters      *int64       `json:"end_liters,omitempty"`
	RatePerKLPaise int64        `json:"rate_per_kl_paise" gorm:"not null"`
	CreatedAt      time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (TariffSlab) TableName() string { return "tariff_slabs" }

// ValidateSlabs checks that slabs are ordered, contiguous from zero,
// non-overlapping, non-negatively priced and terminated by exactly one
// unbounded slab.
func ValidateSlabs(slabs []TariffSlab) error {
	if len(slabs) == 0 {
		return ErrInvalidSlabs
	}
	if slabs[0].StartLiters != 0 {
		return ErrInvalidSlabs
	}
	for i, slab := range slabs {
		if slab.RatePerKLPaise < 0 {
			return ErrInvalidSlabRate
		}
		last := i == len(slabs)-1
		if last {
			if slab.EndLiters != nil {
				return ErrInvalidSlabs
			}
			continue
		}
		if slab.EndLiters == nil {
			return ErrInvalidSlabs
		}
		if *slab.EndLiters < slab.StartLiters {
			return ErrInvalidSlabRange
		}
		if slabs[i+1].StartLiters != *slab.EndLiters+1 {
			return ErrInvalidSlabs
		}
	}
	return nil
}
