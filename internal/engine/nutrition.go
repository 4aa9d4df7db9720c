package engine

import (
	"fmt"
	"math"
	"strings"
)

// FoodEntry is one dish placed in a meal.
type FoodEntry struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
	Notes    string  `json:"notes,omitempty"`
}

// Nutrition is a macro rollup.
type Nutrition struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

func (n *Nutrition) Add(e FoodEntry) {
	n.Calories += e.Calories
	n.Protein += e.Protein
	n.Carbs += e.Carbs
	n.Fat += e.Fat
	n.Fiber += e.Fiber
}

func (n *Nutrition) Merge(o Nutrition) {
	n.Calories += o.Calories
	n.Protein += o.Protein
	n.Carbs += o.Carbs
	n.Fat += o.Fat
	n.Fiber += o.Fiber
}

// macroRatio is the share of calories each macro contributes for a category.
type macroRatio struct {
	protein, carbs, fat, fiber float64
}

var categoryRatios = map[Category]macroRatio{
	CategoryGrain:     {0.08, 0.75, 0.05, 0.12},
	CategoryBread:     {0.08, 0.75, 0.05, 0.12},
	CategoryLegume:    {0.25, 0.60, 0.05, 0.10},
	CategoryDairy:     {0.20, 0.30, 0.50, 0},
	CategoryNut:       {0.15, 0.15, 0.70, 0.10},
	CategoryFruit:     {0.05, 0.90, 0.05, 0.15},
	CategoryVegetable: {0.10, 0.70, 0.10, 0.20},
	CategorySoup:      {0.10, 0.70, 0.10, 0.20},
}

var defaultRatio = macroRatio{0.15, 0.60, 0.25, 0.10}

// EstimateMacros derives grams of protein, carbs, fat and fiber from calories
// using category ratios (4 kcal/g, 9 kcal/g for fat).
func EstimateMacros(c Category, calories int) Nutrition {
	r, ok := categoryRatios[c]
	if !ok {
		r = defaultRatio
	}
	kcal := float64(calories)
	return Nutrition{
		Calories: calories,
		Protein:  math.Max(1, math.Round(kcal*r.protein/4)),
		Carbs:    math.Max(1, math.Round(kcal*r.carbs/4)),
		Fat:      math.Max(1, math.Round(kcal*r.fat/9)),
		Fiber:    math.Max(0, math.Round(kcal*r.fiber/4)),
	}
}

var servingKeywords = []struct {
	keyword string
	size    string
}{
	{"rice", "1/2 cup cooked"},
	{"chapati", "1 medium"},
	{"roti", "2 medium"},
	{"oats", "1/2 cup"},
	{"quinoa", "1/3 cup cooked"},
	{"curry", "1/2 cup"},
	{"soup", "1 bowl"},
	{"salad", "1 cup"},
	{"milk", "1 cup"},
	{"tea", "1 cup"},
	{"water", "1 glass"},
	{"juice", "1/2 cup"},
	{"nuts", "1 handful"},
	{"seeds", "1 tbsp"},
	{"dal", "1/2 cup"},
}

var slotServing = map[MealType]string{
	Breakfast:       "1 serving",
	MidMorningSnack: "1 small serving",
	Lunch:           "1 generous serving",
	EveningSnack:    "1 small serving",
	Dinner:          "1 moderate serving",
}

// ServingSize picks the catalog quantity, else a name keyword size, else the slot default.
func ServingSize(f *Food, m MealType) string {
	if f.Quantity != "" {
		return f.Quantity
	}
	name := strings.ToLower(f.Name)
	for _, s := range servingKeywords {
		if strings.Contains(name, s.keyword) {
			return s.size
		}
	}
	if s, ok := slotServing[m]; ok {
		return s
	}
	return "1 serving"
}

var viryaLabel = map[Virya]string{
	Heating: "Heating",
	Cooling: "Cooling",
	Neutral: "Neutral",
}

var digestLabel = map[Digestibility]string{
	DigestEasy:     "easy to digest",
	DigestModerate: "moderate digestion",
	DigestHeavy:    "heavy to digest",
}

func entryNotes(f *Food) string {
	tastes := make([]string, 0, len(f.Tastes))
	for _, t := range f.Tastes {
		tastes = append(tastes, string(t))
	}
	return fmt.Sprintf("%s virya; %s; %s taste", viryaLabel[f.Virya], digestLabel[f.Digestibility], strings.Join(tastes, ", "))
}

// NewEntry converts a catalog food into a meal entry for slot m.
func NewEntry(f *Food, m MealType) FoodEntry {
	e := FoodEntry{
		Name:     f.Name,
		Quantity: ServingSize(f, m),
		Calories: f.Calories,
		Protein:  f.Protein,
		Carbs:    f.Carbs,
		Fat:      f.Fat,
		Fiber:    f.Fiber,
		Notes:    entryNotes(f),
	}
	if e.Protein == 0 && e.Carbs == 0 && e.Fat == 0 {
		est := EstimateMacros(f.Category, f.Calories)
		e.Protein, e.Carbs, e.Fat = est.Protein, est.Carbs, est.Fat
	}
	if e.Fiber == 0 {
		e.Fiber = EstimateMacros(f.Category, f.Calories).Fiber
	}
	return e
}
