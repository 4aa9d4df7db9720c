package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/models"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/types"
)

// PatientService handles patient records
type PatientService struct {
	db *gorm.DB
}

// NewPatientService creates a new PatientService instance
func NewPatientService(db *gorm.DB) *PatientService {
	return &PatientService{db: db}
}

// Create registers a patient for the practitioner
func (s *PatientService) Create(ctx context.Context, practitionerID uuid.UUID, req *types.CreatePatientRequest) (*models.Patient, error) {
	patient := &models.Patient{
		PractitionerID:   practitionerID,
		Name:             strings.TrimSpace(req.Name),
		Email:            strings.TrimSpace(req.Email),
		Allergies:        datatypes.JSONSlice[string](cleanList(req.Allergies)),
		HealthConditions: datatypes.JSONSlice[string](cleanList(req.HealthConditions)),
		DietPreferences:  datatypes.JSONSlice[string](cleanList(req.DietPreferences)),
	}
	if strings.TrimSpace(req.Prakriti) != "" {
		d, err := engine.ParseDosha(req.Prakriti)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPrakriti, err)
		}
		patient.Prakriti = string(d)
	}
	if err := s.db.WithContext(ctx).Create(patient).Error; err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

// Get retrieves a patient by ID
func (s *PatientService) Get(ctx context.Context, practitionerID, id uuid.UUID) (*models.Patient, error) {
	var patient models.Patient
	err := s.db.WithContext(ctx).First(&patient, "id = ? AND practitioner_id = ?", id, practitionerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

// List returns the practitioner's patients by name
func (s *PatientService) List(ctx context.Context, practitionerID uuid.UUID) ([]*models.Patient, error) {
	var patients []*models.Patient
	if err := s.db.WithContext(ctx).Where("practitioner_id = ?", practitionerID).Order("name").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func cleanList(in []string) []string {
	out := []string{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
