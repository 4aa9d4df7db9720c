package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/mocks"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/models"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/plan"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/service"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/types"
)

func TestGeneratePlan(t *testing.T) {
	practitioner := uuid.New()
	stored := &models.DietPlan{ID: uuid.New(), Name: "Pitta Summer South Plan - 2026-02-10", Dosha: "Pitta", Version: 1}

	tests := []struct {
		name   string
		body   interface{}
		err    error
		status int
		check  func(t *testing.T, body map[string]interface{})
	}{
		{
			name:   "created",
			body:   map[string]interface{}{"dosha": "Pitta", "season": "Summer", "region": "South"},
			status: http.StatusCreated,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "Pitta Summer South Plan - 2026-02-10", body["name"])
			},
		},
		{
			name:   "invalid dosha",
			body:   map[string]interface{}{"dosha": "Agni"},
			err:    fmt.Errorf("parse request: %w", engine.ErrInvalidDosha),
			status: http.StatusBadRequest,
		},
		{
			name:   "empty plan",
			body:   map[string]interface{}{"dosha": "Vata"},
			err:    service.ErrEmptyPlan,
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "save failed",
			body:   map[string]interface{}{"dosha": "Kapha"},
			err:    &service.PersistError{DraftID: "01J0000000000000000000000A", Plan: &engine.WeeklyPlan{Name: "Kapha Plan - 2026-02-10"}, Err: errors.New("db down")},
			status: http.StatusServiceUnavailable,
			check: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "01J0000000000000000000000A", body["draft_id"])
				require.IsType(t, map[string]interface{}{}, body["plan"])
				assert.Equal(t, "Kapha Plan - 2026-02-10", body["plan"].(map[string]interface{})["name"])
			},
		},
		{
			name:   "unexpected",
			body:   map[string]interface{}{"dosha": "Kapha"},
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockDietPlanService)
			if tt.err != nil {
				svc.On("Generate", mock.Anything, practitioner, mock.AnythingOfType("*types.GeneratePlanRequest")).Return(nil, tt.err)
			} else {
				svc.On("Generate", mock.Anything, practitioner, mock.MatchedBy(func(r *types.GeneratePlanRequest) bool {
					return r.Dosha == "Pitta" && r.Season == "Summer" && r.Region == "South"
				})).Return(stored, nil)
			}
			r := newTestRouter(practitioner, NewDietPlanHandler(svc), nil, nil)

			w := doJSON(r, http.MethodPost, "/api/v1/diet-plans/generate", tt.body)
			assert.Equal(t, tt.status, w.Code)
			if tt.check != nil {
				tt.check(t, decode(t, w))
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestGeneratePlanRequiresBodyAndAuth(t *testing.T) {
	svc := new(mocks.MockDietPlanService)

	r := newTestRouter(uuid.New(), NewDietPlanHandler(svc), nil, nil)
	w := doJSON(r, http.MethodPost, "/api/v1/diet-plans/generate", map[string]interface{}{"dosha": "Vata", "duration": 90})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	anon := newTestRouter(uuid.Nil, NewDietPlanHandler(svc), nil, nil)
	w = doJSON(anon, http.MethodPost, "/api/v1/diet-plans/generate", map[string]interface{}{"dosha": "Vata"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestListPlans(t *testing.T) {
	practitioner := uuid.New()
	svc := new(mocks.MockDietPlanService)
	rows := []*models.DietPlan{{ID: uuid.New(), Name: "Vata Plan - 2026-01-01"}}
	svc.On("List", mock.Anything, practitioner, &types.ListPlansQuery{Page: 2, Status: "Active"}).Return(rows, int64(21), nil)
	r := newTestRouter(practitioner, NewDietPlanHandler(svc), nil, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/diet-plans?page=2&status=Active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["plans"], 1)
	assert.Equal(t, map[string]interface{}{"page": float64(2), "limit": float64(20), "total": float64(21)}, body["pagination"])

	w = doJSON(r, http.MethodGet, "/api/v1/diet-plans?status=Unknown", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAndDeletePlan(t *testing.T) {
	practitioner := uuid.New()
	id := uuid.New()
	svc := new(mocks.MockDietPlanService)
	svc.On("Get", mock.Anything, practitioner, id).Return(nil, service.ErrPlanNotFound)
	svc.On("Delete", mock.Anything, practitioner, id).Return(nil)
	r := newTestRouter(practitioner, NewDietPlanHandler(svc), nil, nil)

	assert.Equal(t, http.StatusNotFound, doJSON(r, http.MethodGet, "/api/v1/diet-plans/"+id.String(), nil).Code)
	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/api/v1/diet-plans/not-a-uuid", nil).Code)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodDelete, "/api/v1/diet-plans/"+id.String(), nil).Code)
}

func TestUpdatePlanVersion(t *testing.T) {
	practitioner := uuid.New()
	id := uuid.New()
	svc := new(mocks.MockDietPlanService)
	svc.On("Update", mock.Anything, practitioner, id, mock.MatchedBy(func(r *types.UpdatePlanRequest) bool {
		return r.Version != nil && *r.Version == 1
	})).Return(nil, service.ErrVersionConflict)
	svc.On("Update", mock.Anything, practitioner, id, mock.MatchedBy(func(r *types.UpdatePlanRequest) bool {
		return r.Version != nil && *r.Version == 4
	})).Return(&models.DietPlan{ID: id, Name: "Renamed", Version: 5}, nil)
	r := newTestRouter(practitioner, NewDietPlanHandler(svc), nil, nil)

	w := doJSON(r, http.MethodPut, "/api/v1/diet-plans/"+id.String(), map[string]interface{}{"name": "Renamed", "version": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPut, "/api/v1/diet-plans/"+id.String()+"?version=4", map[string]interface{}{"name": "Renamed"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(5), decode(t, w)["version"])

	w = doJSON(r, http.MethodPut, "/api/v1/diet-plans/"+id.String(), map[string]interface{}{"status": "Archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/api/v1/diet-plans/"+id.String()+"?version=abc", map[string]interface{}{"name": "Renamed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditPlanCellEndpoints(t *testing.T) {
	practitioner := uuid.New()
	id := uuid.New()
	updated := &models.DietPlan{ID: id, Version: 2}
	svc := new(mocks.MockDietPlanService)
	svc.On("AddFood", mock.Anything, practitioner, id, 3, mock.MatchedBy(func(r *types.AddFoodRequest) bool {
		return r.Name == "Buttermilk" && r.Version != nil && *r.Version == 1
	})).Return(updated, nil)
	svc.On("AddFood", mock.Anything, practitioner, id, 99, mock.Anything).Return(nil, fmt.Errorf("add food: %w", plan.ErrMealNotFound))
	svc.On("RemoveFood", mock.Anything, practitioner, id, 3, 0, (*int)(nil)).
		Return(updated, engine.FoodEntry{Name: "Buttermilk", Quantity: "1 cup", Calories: 60}, nil)
	r := newTestRouter(practitioner, NewDietPlanHandler(svc), nil, nil)
	base := "/api/v1/diet-plans/" + id.String() + "/meals/"

	w := doJSON(r, http.MethodPost, base+"3/foods?version=1", map[string]interface{}{"name": "Buttermilk"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, base+"3/foods", map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, base+"99/foods", map[string]interface{}{"name": "Buttermilk"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPost, base+"-1/foods", map[string]interface{}{"name": "Buttermilk"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodDelete, base+"3/foods/0", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Buttermilk", body["removed"].(map[string]interface{})["name"])

	svc.AssertExpectations(t)
}

func TestAddMealEndpoint(t *testing.T) {
	practitioner := uuid.New()
	id := uuid.New()
	svc := new(mocks.MockDietPlanService)
	svc.On("AddMeal", mock.Anything, practitioner, id, mock.MatchedBy(func(r *types.AddMealRequest) bool {
		return r.MealType == "Brunch"
	})).Return(nil, fmt.Errorf("add meal: %w", engine.ErrInvalidMealType))
	svc.On("AddMeal", mock.Anything, practitioner, id, mock.MatchedBy(func(r *types.AddMealRequest) bool {
		return r.MealType == "Dinner" && len(r.Foods) == 1
	})).Return(&models.DietPlan{ID: id}, nil)
	r := newTestRouter(practitioner, NewDietPlanHandler(svc), nil, nil)
	path := "/api/v1/diet-plans/" + id.String() + "/meals"

	w := doJSON(r, http.MethodPost, path, map[string]interface{}{"day": "Monday", "mealType": "Brunch"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, path, map[string]interface{}{
		"day": "Monday", "mealType": "Dinner",
		"foods": []map[string]interface{}{{"name": "Moong Dal Khichdi", "calories": 320}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, path, map[string]interface{}{"mealType": "Dinner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportAndDrafts(t *testing.T) {
	practitioner := uuid.New()
	id := uuid.New()
	svc := new(mocks.MockDietPlanService)
	svc.On("ExportURL", mock.Anything, practitioner, id).Return("https://plans.example/x.json", nil).Once()
	svc.On("ExportURL", mock.Anything, practitioner, id).Return("", service.ErrArchiveDisabled).Once()
	svc.On("GetDraft", mock.Anything, practitioner, "01J0000000000000000000000A").
		Return(&service.PlanDraft{ID: "01J0000000000000000000000A", PractitionerID: practitioner}, nil)
	svc.On("SaveDraft", mock.Anything, practitioner, "01J0000000000000000000000A").Return(&models.DietPlan{ID: id}, nil)
	r := newTestRouter(practitioner, NewDietPlanHandler(svc), nil, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/diet-plans/"+id.String()+"/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "https://plans.example/x.json", body["url"])
	assert.Equal(t, float64(900), body["expires_in"])

	w = doJSON(r, http.MethodGet, "/api/v1/diet-plans/"+id.String()+"/export", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/diet-plans/drafts/01J0000000000000000000000A", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/diet-plans/drafts/01J0000000000000000000000A/save", nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}
