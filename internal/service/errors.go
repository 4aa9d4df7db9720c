package service

import (
	"errors"
	"fmt"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/plan"
)

var (
	ErrPlanNotFound     = errors.New("diet plan not found")
	ErrPatientNotFound  = errors.New("patient not found")
	ErrDraftNotFound    = errors.New("draft not found")
	ErrVersionConflict  = errors.New("diet plan was modified by another request")
	ErrEmptyPlan        = errors.New("no meals could be generated for this input")
	ErrArchiveDisabled  = errors.New("plan archive is not configured")
	ErrInvalidUpdate    = errors.New("invalid update")
	ErrInvalidPrakriti  = errors.New("invalid prakriti")
	ErrMissingDosha     = errors.New("dosha is required")
	ErrInvalidToken     = errors.New("invalid token")
	ErrUnexpectedSigner = errors.New("unexpected signing method")
)

// PersistError is returned when a plan was generated but could not be saved.
// The plan is kept as a draft under DraftID when the draft store accepted it.
type PersistError struct {
	Plan    *engine.WeeklyPlan
	DraftID string
	Err     error
}

func (e *PersistError) Error() string {
	if e.DraftID == "" {
		return fmt.Sprintf("failed to save diet plan: %v", e.Err)
	}
	return fmt.Sprintf("failed to save diet plan (draft %s): %v", e.DraftID, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err was caused by bad client input
func IsValidation(err error) bool {
	for _, target := range []error{
		engine.ErrInvalidDosha,
		engine.ErrInvalidSeason,
		engine.ErrInvalidRegion,
		engine.ErrInvalidMealType,
		engine.ErrInvalidTargets,
		plan.ErrInvalidFood,
		plan.ErrInvalidMeal,
		ErrInvalidUpdate,
		ErrInvalidPrakriti,
		ErrMissingDosha,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err names a missing resource or index
func IsNotFound(err error) bool {
	for _, target := range []error{
		ErrPlanNotFound,
		ErrPatientNotFound,
		ErrDraftNotFound,
		plan.ErrMealNotFound,
		plan.ErrFoodNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
