package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Patient is a person a practitioner generates plans for
type Patient struct {
	ID               uuid.UUID                   `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
	DeletedAt        gorm.DeletedAt              `gorm:"index" json:"-"`
	PractitionerID   uuid.UUID                   `gorm:"type:varchar(36);not null;index" json:"practitioner_id"`
	Name             string                      `gorm:"size:255;not null" json:"name"`
	Email            string                      `gorm:"size:255" json:"email"`
	Prakriti         string                      `gorm:"size:32" json:"prakriti"`
	Allergies        datatypes.JSONSlice[string] `json:"allergies"`
	HealthConditions datatypes.JSONSlice[string] `json:"healthConditions"`
	DietPreferences  datatypes.JSONSlice[string] `json:"dietPreferences"`
}

func (p *Patient) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Allergies == nil {
		p.Allergies = datatypes.JSONSlice[string]{}
	}
	if p.HealthConditions == nil {
		p.HealthConditions = datatypes.JSONSlice[string]{}
	}
	if p.DietPreferences == nil {
		p.DietPreferences = datatypes.JSONSlice[string]{}
	}
	return nil
}

// IsVegetarian reports whether any diet preference asks for vegetarian food
func (p *Patient) IsVegetarian() bool {
	for _, pref := range p.DietPreferences {
		if strings.EqualFold(strings.TrimSpace(pref), "vegetarian") {
			return true
		}
	}
	return false
}
