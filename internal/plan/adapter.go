// Package plan converts generated weekly plans to and from the stored flat
// meal list and applies incremental edits to it.
package plan

import (
	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
)

// MealRecord is the storage shape of one (day, meal type) cell.
type MealRecord struct {
	Day           string             `json:"day"`
	MealType      engine.MealType    `json:"mealType"`
	Foods         []engine.FoodEntry `json:"foods"`
	Notes         []string           `json:"notes"`
	TotalCalories int                `json:"totalCalories"`
}

// Recalculate sets TotalCalories to the sum of the foods.
func (r *MealRecord) Recalculate() {
	total := 0
	for _, f := range r.Foods {
		total += f.Calories
	}
	r.TotalCalories = total
}

// Flatten lists the plan's meals in day then slot order.
func Flatten(p *engine.WeeklyPlan) []MealRecord {
	if p == nil {
		return []MealRecord{}
	}
	out := make([]MealRecord, 0, len(p.Meals()))
	for _, m := range p.Meals() {
		rec := MealRecord{
			Day:      m.Day,
			MealType: m.MealType,
			Foods:    append([]engine.FoodEntry{}, m.Foods...),
			Notes:    append([]string{}, m.Notes...),
		}
		rec.Recalculate()
		out = append(out, rec)
	}
	return out
}

// Expand groups flat records back into days, keeping the order in which each
// day first appears. Day totals are recomputed from the foods.
func Expand(records []MealRecord) []engine.DayPlan {
	var days []engine.DayPlan
	index := map[string]int{}
	for _, r := range records {
		i, ok := index[r.Day]
		if !ok {
			i = len(days)
			index[r.Day] = i
			days = append(days, engine.DayPlan{Day: r.Day})
		}
		meal := &engine.Meal{
			Day:      r.Day,
			MealType: r.MealType,
			Foods:    append([]engine.FoodEntry{}, r.Foods...),
			Notes:    append([]string{}, r.Notes...),
		}
		meal.Recalculate()
		for _, f := range meal.Foods {
			days[i].Totals.Add(f)
		}
		days[i].Meals = append(days[i].Meals, meal)
	}
	return days
}

// Duplicates reports the food names that appear more than once across records.
func Duplicates(records []MealRecord) []string {
	meals := make([]*engine.Meal, 0, len(records))
	for i := range records {
		meals = append(meals, &engine.Meal{Foods: records[i].Foods})
	}
	return engine.FindDuplicates(meals)
}
