package plan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
)

var (
	ErrMealNotFound = errors.New("meal not found")
	ErrFoodNotFound = errors.New("food not found")
	ErrInvalidFood  = errors.New("invalid food")
	ErrInvalidMeal  = errors.New("invalid meal")
)

const (
	DefaultQuantity = "1 serving"
	DefaultCalories = 150
	minNameLength   = 2
)

// FoodInput is a user-supplied food entry; zero values take defaults.
type FoodInput struct {
	Name     string   `json:"name"`
	Quantity string   `json:"quantity"`
	Calories *int     `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
	Fiber    *float64 `json:"fiber"`
	Notes    string   `json:"notes"`
}

// Entry validates the input and applies defaults.
func (in FoodInput) Entry() (engine.FoodEntry, error) {
	name := strings.TrimSpace(in.Name)
	if len([]rune(name)) < minNameLength {
		return engine.FoodEntry{}, fmt.Errorf("%w: name must be at least %d characters", ErrInvalidFood, minNameLength)
	}
	e := engine.FoodEntry{
		Name:     name,
		Quantity: strings.TrimSpace(in.Quantity),
		Calories: DefaultCalories,
		Notes:    strings.TrimSpace(in.Notes),
	}
	if e.Quantity == "" {
		e.Quantity = DefaultQuantity
	}
	if in.Calories != nil {
		if *in.Calories < 0 {
			return engine.FoodEntry{}, fmt.Errorf("%w: calories must not be negative", ErrInvalidFood)
		}
		e.Calories = *in.Calories
	}
	for _, v := range []struct {
		src *float64
		dst *float64
	}{{in.Protein, &e.Protein}, {in.Carbs, &e.Carbs}, {in.Fat, &e.Fat}, {in.Fiber, &e.Fiber}} {
		if v.src == nil {
			continue
		}
		if *v.src < 0 {
			return engine.FoodEntry{}, fmt.Errorf("%w: macros must not be negative", ErrInvalidFood)
		}
		*v.dst = *v.src
	}
	return e, nil
}

// AddFood appends a food to meals[mealIndex] and returns its index.
func AddFood(meals []MealRecord, mealIndex int, in FoodInput) (int, error) {
	if mealIndex < 0 || mealIndex >= len(meals) {
		return 0, fmt.Errorf("%w: index %d of %d", ErrMealNotFound, mealIndex, len(meals))
	}
	e, err := in.Entry()
	if err != nil {
		return 0, err
	}
	m := &meals[mealIndex]
	m.Foods = append(m.Foods, e)
	m.Recalculate()
	return len(m.Foods) - 1, nil
}

// RemoveFood deletes meals[mealIndex].Foods[foodIndex] and returns it.
func RemoveFood(meals []MealRecord, mealIndex, foodIndex int) (engine.FoodEntry, error) {
	if mealIndex < 0 || mealIndex >= len(meals) {
		return engine.FoodEntry{}, fmt.Errorf("%w: index %d of %d", ErrMealNotFound, mealIndex, len(meals))
	}
	m := &meals[mealIndex]
	if foodIndex < 0 || foodIndex >= len(m.Foods) {
		return engine.FoodEntry{}, fmt.Errorf("%w: index %d of %d", ErrFoodNotFound, foodIndex, len(m.Foods))
	}
	removed := m.Foods[foodIndex]
	m.Foods = append(m.Foods[:foodIndex:foodIndex], m.Foods[foodIndex+1:]...)
	m.Recalculate()
	return removed, nil
}

// MealInput is a whole meal added to a stored plan.
type MealInput struct {
	Day      string      `json:"day"`
	MealType string      `json:"mealType"`
	Foods    []FoodInput `json:"foods"`
	Notes    []string    `json:"notes"`
}

// NewMeal validates the day label and meal type and builds the record.
func NewMeal(in MealInput) (MealRecord, error) {
	day := strings.TrimSpace(in.Day)
	if !validDay(day) {
		return MealRecord{}, fmt.Errorf("%w: unknown day %q", ErrInvalidMeal, in.Day)
	}
	mt, err := engine.ParseMealType(in.MealType)
	if err != nil {
		return MealRecord{}, fmt.Errorf("%w: %v", ErrInvalidMeal, err)
	}
	rec := MealRecord{Day: day, MealType: mt, Foods: []engine.FoodEntry{}, Notes: []string{}}
	for _, f := range in.Foods {
		e, err := f.Entry()
		if err != nil {
			return MealRecord{}, err
		}
		rec.Foods = append(rec.Foods, e)
	}
	for _, n := range in.Notes {
		if n = strings.TrimSpace(n); n != "" {
			rec.Notes = append(rec.Notes, n)
		}
	}
	rec.Recalculate()
	return rec, nil
}

func validDay(day string) bool {
	for _, d := range engine.WeekDays {
		if d == day {
			return true
		}
	}
	for _, d := range engine.FastDays {
		if d == day {
			return true
		}
	}
	return false
}
