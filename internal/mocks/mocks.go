package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/models"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/service"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/types"
)

// MockDraftStore is a mock implementation of service.DraftStore
type MockDraftStore struct {
	mock.Mock
}

// Save mocks the Save method
func (m *MockDraftStore) Save(ctx context.Context, draft *service.PlanDraft) (string, error) {
	args := m.Called(ctx, draft)
	return args.String(0), args.Error(1)
}

// Get mocks the Get method
func (m *MockDraftStore) Get(ctx context.Context, id string) (*service.PlanDraft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PlanDraft), args.Error(1)
}

// Delete mocks the Delete method
func (m *MockDraftStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPlanArchive is a mock implementation of service.PlanArchive
type MockPlanArchive struct {
	mock.Mock
}

// Put mocks the Put method
func (m *MockPlanArchive) Put(ctx context.Context, plan *models.DietPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

// PresignURL mocks the PresignURL method
func (m *MockPlanArchive) PresignURL(ctx context.Context, plan *models.DietPlan, expiration time.Duration) (string, error) {
	args := m.Called(ctx, plan, expiration)
	return args.String(0), args.Error(1)
}

// MockDietPlanService is a mock implementation of service.IDietPlanService
type MockDietPlanService struct {
	mock.Mock
}

func planResult(args mock.Arguments) (*models.DietPlan, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DietPlan), args.Error(1)
}

// Generate mocks the Generate method
func (m *MockDietPlanService) Generate(ctx context.Context, practitionerID uuid.UUID, req *types.GeneratePlanRequest) (*models.DietPlan, error) {
	return planResult(m.Called(ctx, practitionerID, req))
}

// SaveDraft mocks the SaveDraft method
func (m *MockDietPlanService) SaveDraft(ctx context.Context, practitionerID uuid.UUID, draftID string) (*models.DietPlan, error) {
	return planResult(m.Called(ctx, practitionerID, draftID))
}

// GetDraft mocks the GetDraft method
func (m *MockDietPlanService) GetDraft(ctx context.Context, practitionerID uuid.UUID, draftID string) (*service.PlanDraft, error) {
	args := m.Called(ctx, practitionerID, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.PlanDraft), args.Error(1)
}

// List mocks the List method
func (m *MockDietPlanService) List(ctx context.Context, practitionerID uuid.UUID, q *types.ListPlansQuery) ([]*models.DietPlan, int64, error) {
	args := m.Called(ctx, practitionerID, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.DietPlan), args.Get(1).(int64), args.Error(2)
}

// Get mocks the Get method
func (m *MockDietPlanService) Get(ctx context.Context, practitionerID, id uuid.UUID) (*models.DietPlan, error) {
	return planResult(m.Called(ctx, practitionerID, id))
}

// Update mocks the Update method
func (m *MockDietPlanService) Update(ctx context.Context, practitionerID, id uuid.UUID, req *types.UpdatePlanRequest) (*models.DietPlan, error) {
	return planResult(m.Called(ctx, practitionerID, id, req))
}

// Delete mocks the Delete method
func (m *MockDietPlanService) Delete(ctx context.Context, practitionerID, id uuid.UUID) error {
	args := m.Called(ctx, practitionerID, id)
	return args.Error(0)
}

// AddMeal mocks the AddMeal method
func (m *MockDietPlanService) AddMeal(ctx context.Context, practitionerID, id uuid.UUID, req *types.AddMealRequest) (*models.DietPlan, error) {
	return planResult(m.Called(ctx, practitionerID, id, req))
}

// AddFood mocks the AddFood method
func (m *MockDietPlanService) AddFood(ctx context.Context, practitionerID, id uuid.UUID, mealIndex int, req *types.AddFoodRequest) (*models.DietPlan, error) {
	return planResult(m.Called(ctx, practitionerID, id, mealIndex, req))
}

// RemoveFood mocks the RemoveFood method
func (m *MockDietPlanService) RemoveFood(ctx context.Context, practitionerID, id uuid.UUID, mealIndex, foodIndex int, version *int) (*models.DietPlan, engine.FoodEntry, error) {
	args := m.Called(ctx, practitionerID, id, mealIndex, foodIndex, version)
	if args.Get(0) == nil {
		return nil, engine.FoodEntry{}, args.Error(2)
	}
	return args.Get(0).(*models.DietPlan), args.Get(1).(engine.FoodEntry), args.Error(2)
}

// ExportURL mocks the ExportURL method
func (m *MockDietPlanService) ExportURL(ctx context.Context, practitionerID, id uuid.UUID) (string, error) {
	args := m.Called(ctx, practitionerID, id)
	return args.String(0), args.Error(1)
}

// MockPatientService is a mock implementation of service.IPatientService
type MockPatientService struct {
	mock.Mock
}

// Create mocks the Create method
func (m *MockPatientService) Create(ctx context.Context, practitionerID uuid.UUID, req *types.CreatePatientRequest) (*models.Patient, error) {
	args := m.Called(ctx, practitionerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patient), args.Error(1)
}

// Get mocks the Get method
func (m *MockPatientService) Get(ctx context.Context, practitionerID, id uuid.UUID) (*models.Patient, error) {
	args := m.Called(ctx, practitionerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patient), args.Error(1)
}

// List mocks the List method
func (m *MockPatientService) List(ctx context.Context, practitionerID uuid.UUID) ([]*models.Patient, error) {
	args := m.Called(ctx, practitionerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Patient), args.Error(1)
}

// MockTokenValidator is a mock implementation of middleware.TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

// ValidateToken mocks the ValidateToken method
func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

var (
	_ service.DraftStore       = (*MockDraftStore)(nil)
	_ service.PlanArchive      = (*MockPlanArchive)(nil)
	_ service.IDietPlanService = (*MockDietPlanService)(nil)
	_ service.IPatientService  = (*MockPatientService)(nil)
)
