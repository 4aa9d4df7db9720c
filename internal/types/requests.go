package types

import (
	"github.com/google/uuid"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/plan"
)

// TargetsRequest carries the daily nutrition goals of a generation
type TargetsRequest struct {
	Calories int     `json:"calories" binding:"omitempty,min=0"`
	Protein  float64 `json:"protein" binding:"omitempty,min=0"`
	Carbs    float64 `json:"carbs" binding:"omitempty,min=0"`
	Fat      float64 `json:"fat" binding:"omitempty,min=0"`
}

// GeneratePlanRequest represents the request body for generating a diet plan
type GeneratePlanRequest struct {
	PatientID        *uuid.UUID      `json:"patient_id"`
	Dosha            string          `json:"dosha"`
	Season           string          `json:"season"`
	Region           string          `json:"region"`
	HealthConditions []string        `json:"healthConditions"`
	Allergies        []string        `json:"allergies"`
	Goals            []string        `json:"goals"`
	Duration         int             `json:"duration" binding:"omitempty,min=1,max=28"`
	Fast             bool            `json:"fast"`
	Vegetarian       bool            `json:"vegetarian"`
	Targets          *TargetsRequest `json:"targets"`
}

// Raw converts the body into engine input without validating it
func (r GeneratePlanRequest) Raw() engine.RawRequest {
	raw := engine.RawRequest{
		Dosha:            r.Dosha,
		Season:           r.Season,
		Region:           r.Region,
		HealthConditions: r.HealthConditions,
		Allergies:        r.Allergies,
		Goals:            r.Goals,
		Duration:         r.Duration,
		Fast:             r.Fast,
		Vegetarian:       r.Vegetarian,
	}
	if r.Targets != nil {
		raw.Targets = engine.Targets{
			Calories: r.Targets.Calories,
			Protein:  r.Targets.Protein,
			Carbs:    r.Targets.Carbs,
			Fat:      r.Targets.Fat,
		}
	}
	return raw
}

// UpdatePlanRequest represents the request body for updating plan metadata.
// Nil fields are left untouched.
type UpdatePlanRequest struct {
	Name         *string   `json:"name" binding:"omitempty,min=2,max=255"`
	Status       *string   `json:"status" binding:"omitempty,oneof=Active Completed Paused Cancelled"`
	Goals        *[]string `json:"goals"`
	Restrictions *[]string `json:"restrictions"`
	Notes        *string   `json:"notes"`
	Tags         *[]string `json:"tags"`
	Version      *int      `json:"version"`
}

// AddFoodRequest represents the request body for adding a food to a meal
type AddFoodRequest struct {
	Name     string   `json:"name" binding:"required,min=2"`
	Quantity string   `json:"quantity"`
	Calories *int     `json:"calories" binding:"omitempty,min=0"`
	Protein  *float64 `json:"protein" binding:"omitempty,min=0"`
	Carbs    *float64 `json:"carbs" binding:"omitempty,min=0"`
	Fat      *float64 `json:"fat" binding:"omitempty,min=0"`
	Fiber    *float64 `json:"fiber" binding:"omitempty,min=0"`
	Notes    string   `json:"notes"`
	Version  *int     `json:"version"`
}

// Input converts the body into a plan edit
func (r AddFoodRequest) Input() plan.FoodInput {
	return plan.FoodInput{
		Name:     r.Name,
		Quantity: r.Quantity,
		Calories: r.Calories,
		Protein:  r.Protein,
		Carbs:    r.Carbs,
		Fat:      r.Fat,
		Fiber:    r.Fiber,
		Notes:    r.Notes,
	}
}

// AddMealRequest represents the request body for appending a meal to a plan
type AddMealRequest struct {
	Day      string           `json:"day" binding:"required"`
	MealType string           `json:"mealType" binding:"required"`
	Foods    []AddFoodRequest `json:"foods" binding:"dive"`
	Notes    []string         `json:"notes"`
	Version  *int             `json:"version"`
}

// Input converts the body into a plan edit
func (r AddMealRequest) Input() plan.MealInput {
	in := plan.MealInput{Day: r.Day, MealType: r.MealType, Notes: r.Notes}
	for _, f := range r.Foods {
		in.Foods = append(in.Foods, f.Input())
	}
	return in
}

// ListPlansQuery holds the list filters
type ListPlansQuery struct {
	Page      int    `form:"page" binding:"omitempty,min=1"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Status    string `form:"status" binding:"omitempty,oneof=Active Completed Paused Cancelled"`
	PatientID string `form:"patient_id" binding:"omitempty,uuid"`
}

// CreatePatientRequest represents the request body for registering a patient
type CreatePatientRequest struct {
	Name             string   `json:"name" binding:"required,min=2,max=255"`
	Email            string   `json:"email" binding:"omitempty,email"`
	Prakriti         string   `json:"prakriti"`
	Allergies        []string `json:"allergies"`
	HealthConditions []string `json:"healthConditions"`
	DietPreferences  []string `json:"dietPreferences"`
}

// CatalogQuery holds the ranking context for catalog browsing
type CatalogQuery struct {
	Dosha     string   `form:"dosha"`
	Season    string   `form:"season"`
	Region    string   `form:"region"`
	MealType  string   `form:"meal_type"`
	Allergies []string `form:"allergies"`
}

// Pagination describes one page of a list response
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}
