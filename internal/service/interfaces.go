package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/models"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/types"
)

// DraftStore keeps generated plans that could not be persisted
type DraftStore interface {
	Save(ctx context.Context, draft *PlanDraft) (string, error)
	Get(ctx context.Context, id string) (*PlanDraft, error)
	Delete(ctx context.Context, id string) error
}

// PlanArchive stores a JSON snapshot of every saved plan
type PlanArchive interface {
	Put(ctx context.Context, plan *models.DietPlan) error
	PresignURL(ctx context.Context, plan *models.DietPlan, expiration time.Duration) (string, error)
}

// IDietPlanService defines the interface for diet plan operations
type IDietPlanService interface {
	Generate(ctx context.Context, practitionerID uuid.UUID, req *types.GeneratePlanRequest) (*models.DietPlan, error)
	SaveDraft(ctx context.Context, practitionerID uuid.UUID, draftID string) (*models.DietPlan, error)
	GetDraft(ctx context.Context, practitionerID uuid.UUID, draftID string) (*PlanDraft, error)
	List(ctx context.Context, practitionerID uuid.UUID, q *types.ListPlansQuery) ([]*models.DietPlan, int64, error)
	Get(ctx context.Context, practitionerID, id uuid.UUID) (*models.DietPlan, error)
	Update(ctx context.Context, practitionerID, id uuid.UUID, req *types.UpdatePlanRequest) (*models.DietPlan, error)
	Delete(ctx context.Context, practitionerID, id uuid.UUID) error
	AddMeal(ctx context.Context, practitionerID, id uuid.UUID, req *types.AddMealRequest) (*models.DietPlan, error)
	AddFood(ctx context.Context, practitionerID, id uuid.UUID, mealIndex int, req *types.AddFoodRequest) (*models.DietPlan, error)
	RemoveFood(ctx context.Context, practitionerID, id uuid.UUID, mealIndex, foodIndex int, version *int) (*models.DietPlan, engine.FoodEntry, error)
	ExportURL(ctx context.Context, practitionerID, id uuid.UUID) (string, error)
}

// IPatientService defines the interface for patient operations
type IPatientService interface {
	Create(ctx context.Context, practitionerID uuid.UUID, req *types.CreatePatientRequest) (*models.Patient, error)
	Get(ctx context.Context, practitionerID, id uuid.UUID) (*models.Patient, error)
	List(ctx context.Context, practitionerID uuid.UUID) ([]*models.Patient, error)
}
