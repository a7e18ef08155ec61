package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// SourceType classifies where raw water is drawn from.
type SourceType string

const (
	SourceRiver    SourceType = "RIVER"
	SourceBorewell SourceType = "BOREWELL"
	SourceDam      SourceType = "DAM"
	SourceLake     SourceType = "LAKE"
)

func (t SourceType) Valid() bool {
	switch t {
	case SourceRiver, SourceBorewell, SourceDam, SourceLake:
		return true
	default:
		return false
	}
}

// ReservoirType distinguishes clear-water, overhead, ground and elevated
// storage.
type ReservoirType string

const (
	ReservoirCWR ReservoirType = "CWR"
	ReservoirOHT ReservoirType = "OHT"
	ReservoirGSR ReservoirType = "GSR"
	ReservoirESR ReservoirType = "ESR"
)

func (t ReservoirType) Valid() bool {
	switch t {
	case ReservoirCWR, ReservoirOHT, ReservoirGSR, ReservoirESR:
		return true
	default:
		return false
	}
}

type ValveStatus string

const (
	ValveOpen   ValveStatus = "OPEN"
	ValveClosed ValveStatus = "CLOSED"
)

func (s ValveStatus) Valid() bool {
	switch s {
	case ValveOpen, ValveClosed:
		return true
	default:
		return false
	}
}

type Source struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"not null"`
	Type        SourceType   `json:"type" gorm:"type:text;not null"`
	CapacityMLD float64      `json:"capacity_mld" gorm:"not null"`
	Location    string       `json:"location"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Source) TableName() string { return "sources" }

type TreatmentPlant struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"not null"`
	SourceID    snowflake.ID `json:"source_id" gorm:"not null;index"`
	CapacityMLD float64      `json:"capacity_mld" gorm:"not null"`
	Location    string       `json:"location"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (TreatmentPlant) TableName() string { return "treatment_plants" }

type Reservoir struct {
	ID             snowflake.ID  `json:"id" gorm:"primaryKey"`
	Name           string        `json:"name" gorm:"not null"`
	Type           ReservoirType `json:"type" gorm:"type:text;not null"`
	CapacityLiters int64         `json:"capacity_liters" gorm:"not null"`
	Location       string        `json:"location"`
	CreatedAt      time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Reservoir) TableName() string { return "reservoirs" }

type Pipeline struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	Name         string       `json:"name" gorm:"not null"`
	DiameterMM   int64        `json:"diameter_mm" gorm:"not null"`
	LengthMeters float64      `json:"length_meters" gorm:"not null"`
	Material     string       `json:"material"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Pipeline) TableName() string { return "pipelines" }

type Valve struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name" gorm:"not null"`
	Type      string       `json:"type"`
	Status    ValveStatus  `json:"status" gorm:"type:text;not null"`
	Location  string       `json:"location"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Valve) TableName() string { return "valves" }
