package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
)

func generated(t *testing.T) *engine.WeeklyPlan {
	t.Helper()
	req, err := engine.ParseRequest(engine.RawRequest{Dosha: "Vata", Season: "Winter", Region: "North"})
	require.NoError(t, err)
	p := engine.NewPlanner(engine.DefaultCatalog(), engine.WithSeed(1), engine.WithClock(func() time.Time {
		return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	})).Generate(req)
	require.False(t, p.IsEmpty())
	return p
}

func TestFlattenExpandRoundTrip(t *testing.T) {
	p := generated(t)
	records := Flatten(p)
	require.Len(t, records, 35)
	assert.Equal(t, "Monday", records[0].Day)
	assert.Equal(t, engine.Breakfast, records[0].MealType)
	assert.Equal(t, engine.Dinner, records[34].MealType)

	days := Expand(records)
	require.Len(t, days, len(p.Days))
	for i, d := range days {
		assert.Equal(t, p.Days[i].Day, d.Day)
		assert.Equal(t, p.Days[i].Totals, d.Totals)
		require.Len(t, d.Meals, len(p.Days[i].Meals))
		for j, m := range d.Meals {
			assert.Equal(t, p.Days[i].Meals[j].Foods, m.Foods)
			assert.Equal(t, p.Days[i].Meals[j].TotalCalories, m.TotalCalories)
		}
	}
	assert.Equal(t, p.Metadata.Duplicates, Duplicates(records))
}

func TestFlattenNil(t *testing.T) {
	assert.Empty(t, Flatten(nil))
	assert.NotNil(t, Flatten(nil))
}

func TestAddThenRemoveRestoresMeal(t *testing.T) {
	records := Flatten(generated(t))
	before := append([]engine.FoodEntry{}, records[2].Foods...)
	beforeCalories := records[2].TotalCalories

	idx, err := AddFood(records, 2, FoodInput{Name: "Ghee Roasted Makhana"})
	require.NoError(t, err)
	assert.Equal(t, len(before), idx)
	assert.Equal(t, beforeCalories+DefaultCalories, records[2].TotalCalories)

	removed, err := RemoveFood(records, 2, idx)
	require.NoError(t, err)
	assert.Equal(t, "Ghee Roasted Makhana", removed.Name)
	assert.Equal(t, before, records[2].Foods)
	assert.Equal(t, beforeCalories, records[2].TotalCalories)
}

func TestAddFoodDefaults(t *testing.T) {
	records := []MealRecord{{Day: "Monday", MealType: engine.Lunch}}
	_, err := AddFood(records, 0, FoodInput{Name: "  Khichdi  ", Notes: "extra ghee"})
	require.NoError(t, err)

	f := records[0].Foods[0]
	assert.Equal(t, "Khichdi", f.Name)
	assert.Equal(t, DefaultQuantity, f.Quantity)
	assert.Equal(t, DefaultCalories, f.Calories)
	assert.Equal(t, "extra ghee", f.Notes)

	zero := 0
	protein := 4.5
	_, err = AddFood(records, 0, FoodInput{Name: "Water", Calories: &zero, Protein: &protein, Quantity: "1 glass"})
	require.NoError(t, err)
	assert.Equal(t, 0, records[0].Foods[1].Calories)
	assert.Equal(t, 4.5, records[0].Foods[1].Protein)
	assert.Equal(t, "1 glass", records[0].Foods[1].Quantity)
	assert.Equal(t, DefaultCalories, records[0].TotalCalories)
}

func TestEditBounds(t *testing.T) {
	records := []MealRecord{{Day: "Monday", MealType: engine.Lunch, Foods: []engine.FoodEntry{{Name: "Dal Rice", Calories: 380}}}}

	_, err := AddFood(records, 1, FoodInput{Name: "Kootu"})
	assert.ErrorIs(t, err, ErrMealNotFound)
	_, err = AddFood(records, -1, FoodInput{Name: "Kootu"})
	assert.ErrorIs(t, err, ErrMealNotFound)
	_, err = AddFood(records, 0, FoodInput{Name: "K"})
	assert.ErrorIs(t, err, ErrInvalidFood)
	neg := -10
	_, err = AddFood(records, 0, FoodInput{Name: "Kootu", Calories: &neg})
	assert.ErrorIs(t, err, ErrInvalidFood)

	_, err = RemoveFood(records, 3, 0)
	assert.ErrorIs(t, err, ErrMealNotFound)
	_, err = RemoveFood(records, 0, 1)
	assert.ErrorIs(t, err, ErrFoodNotFound)
	assert.Len(t, records[0].Foods, 1)
}

func TestNewMeal(t *testing.T) {
	rec, err := NewMeal(MealInput{
		Day:      "Day 2",
		MealType: "dinner",
		Foods:    []FoodInput{{Name: "Moong Dal Soup"}, {Name: "Phulka"}},
		Notes:    []string{"light", " "},
	})
	require.NoError(t, err)
	assert.Equal(t, engine.Dinner, rec.MealType)
	assert.Equal(t, 2*DefaultCalories, rec.TotalCalories)
	assert.Equal(t, []string{"light"}, rec.Notes)

	_, err = NewMeal(MealInput{Day: "Someday", MealType: "Lunch"})
	assert.ErrorIs(t, err, ErrInvalidMeal)
	_, err = NewMeal(MealInput{Day: "Monday", MealType: "Brunch"})
	assert.ErrorIs(t, err, ErrInvalidMeal)
	_, err = NewMeal(MealInput{Day: "Monday", MealType: "Lunch", Foods: []FoodInput{{Name: ""}}})
	assert.ErrorIs(t, err, ErrInvalidFood)
}
