package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/plan"
)

// Plan lifecycle states
const (
	StatusActive    = "Active"
	StatusCompleted = "Completed"
	StatusPaused    = "Paused"
	StatusCancelled = "Cancelled"
)

// PlanStatuses lists every accepted status value
var PlanStatuses = []string{StatusActive, StatusCompleted, StatusPaused, StatusCancelled}

// ValidStatus reports whether s is a known plan status
func ValidStatus(s string) bool {
	for _, v := range PlanStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// PlanMetadata is the generation context kept alongside a stored plan.
type PlanMetadata struct {
	engine.Metadata
	AveragePerDay    engine.Nutrition `json:"average_per_day"`
	Targets          engine.Targets   `json:"targets"`
	Vegetarian       bool             `json:"vegetarian"`
	Allergies        []string         `json:"allergies,omitempty"`
	HealthConditions []string         `json:"health_conditions,omitempty"`
	GeneratedAt      time.Time        `json:"generated_at"`
}

type DietPlan struct {
	ID             uuid.UUID                            `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt      time.Time                            `json:"created_at"`
	UpdatedAt      time.Time                            `json:"updated_at"`
	DeletedAt      gorm.DeletedAt                       `gorm:"index" json:"-"`
	PractitionerID uuid.UUID                            `gorm:"type:varchar(36);not null;index" json:"practitioner_id"`
	PatientID      *uuid.UUID                           `gorm:"type:varchar(36);index" json:"patient_id,omitempty"`
	Name           string                               `gorm:"size:255;not null" json:"name"`
	Dosha          string                               `gorm:"size:32;not null" json:"dosha"`
	Season         string                               `gorm:"size:32" json:"season"`
	Region         string                               `gorm:"size:32" json:"region"`
	Duration       int                                  `gorm:"not null;default:7" json:"duration"`
	Fast           bool                                 `gorm:"not null;default:false" json:"fast"`
	Status         string                               `gorm:"size:20;not null;default:'Active';index" json:"status"`
	Goals          datatypes.JSONSlice[string]          `json:"goals"`
	Restrictions   datatypes.JSONSlice[string]          `json:"restrictions"`
	Tags           datatypes.JSONSlice[string]          `json:"tags"`
	Meals          datatypes.JSONSlice[plan.MealRecord] `json:"meals"`
	Metadata       datatypes.JSONType[PlanMetadata]     `json:"metadata"`
	Notes          string                               `gorm:"type:text" json:"notes"`
	Version        int                                  `gorm:"not null;default:1" json:"version"`
}

// BeforeCreate assigns an ID and normalizes empty collections
func (p *DietPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if p.Version == 0 {
		p.Version = 1
	}
	if p.Goals == nil {
		p.Goals = datatypes.JSONSlice[string]{}
	}
	if p.Restrictions == nil {
		p.Restrictions = datatypes.JSONSlice[string]{}
	}
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
	if p.Meals == nil {
		p.Meals = datatypes.JSONSlice[plan.MealRecord]{}
	}
	return nil
}

// Days regroups the stored meals by day.
func (p *DietPlan) Days() []engine.DayPlan {
	return plan.Expand(p.Meals)
}

// NewDietPlan builds the storage row for a generated plan.
func NewDietPlan(practitionerID uuid.UUID, patientID *uuid.UUID, wp *engine.WeeklyPlan, vegetarian bool, conditions []string) *DietPlan {
	return &DietPlan{
		PractitionerID: practitionerID,
		PatientID:      patientID,
		Name:           wp.Name,
		Dosha:          string(wp.Dosha),
		Season:         string(wp.Season),
		Region:         string(wp.Region),
		Duration:       wp.Duration,
		Fast:           wp.Fast,
		Status:         StatusActive,
		Goals:          append(datatypes.JSONSlice[string]{}, wp.Goals...),
		Restrictions:   append(datatypes.JSONSlice[string]{}, wp.Restrictions...),
		Tags:           datatypes.JSONSlice[string]{string(wp.Dosha), string(wp.Season), string(wp.Region)},
		Meals:          datatypes.JSONSlice[plan.MealRecord](plan.Flatten(wp)),
		Metadata: datatypes.NewJSONType(PlanMetadata{
			Metadata:         wp.Metadata,
			AveragePerDay:    wp.AveragePerDay,
			Targets:          wp.Targets,
			Vegetarian:       vegetarian,
			Allergies:        wp.Allergies,
			HealthConditions: conditions,
			GeneratedAt:      wp.GeneratedAt,
		}),
		Version: 1,
	}
}
