package engine

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, time.January, 15, 9, 30, 0, 0, time.UTC)

func newTestPlanner(seed int64) *Planner {
	return NewPlanner(DefaultCatalog(), WithSeed(seed), WithClock(func() time.Time { return fixedNow }))
}

func validRequest(t *testing.T, req Request) Request {
	t.Helper()
	require.NoError(t, req.Validate())
	return req
}

func TestRequestValidateDefaults(t *testing.T) {
	req := Request{Dosha: Vata}
	require.NoError(t, req.Validate())
	assert.Equal(t, AllSeason, req.Season)
	assert.Equal(t, PanIndia, req.Region)
	assert.Equal(t, DefaultCalories, req.Targets.Calories)
	assert.Equal(t, DefaultDuration, req.Duration)

	fast := Request{Dosha: Kapha, Fast: true, Duration: 7}
	require.NoError(t, fast.Validate())
	assert.Equal(t, FastDuration, fast.Duration)
}

func TestRequestValidateErrors(t *testing.T) {
	cases := []struct {
		req  Request
		want error
	}{
		{Request{Dosha: "Tridosha"}, ErrInvalidDosha},
		{Request{Dosha: Vata, Season: "Rainy"}, ErrInvalidSeason},
		{Request{Dosha: Vata, Region: "Central"}, ErrInvalidRegion},
		{Request{Dosha: Vata, Targets: Targets{Calories: -1}}, ErrInvalidTargets},
		{Request{Dosha: Vata, Duration: -3}, ErrInvalidTargets},
	}
	for _, tc := range cases {
		assert.ErrorIs(t, tc.req.Validate(), tc.want)
	}
}

func TestGeneratePittaSummerSouthWeek(t *testing.T) {
	req := validRequest(t, Request{Dosha: Pitta, Season: Summer, Region: South, Targets: Targets{Calories: 1800}})
	plan := newTestPlanner(42).Generate(req)

	require.False(t, plan.IsEmpty())
	assert.Equal(t, "Pitta Summer South Plan - 2026-01-15", plan.Name)
	require.Len(t, plan.Days, 7)
	for i, d := range plan.Days {
		assert.Equal(t, WeekDays[i], d.Day)
		require.Len(t, d.Meals, 5)
		for j, m := range d.Meals {
			assert.Equal(t, FullDaySlots[j], m.MealType)
			assert.NotEmpty(t, m.Foods)
		}
	}
	assert.Len(t, plan.Meals(), 35)
	assert.Empty(t, plan.Metadata.Duplicates)
	assert.Equal(t, plan.Metadata.TotalRecipes, plan.Metadata.UniqueRecipes)
	assert.Empty(t, plan.Metadata.RelaxedSlots)

	// Lunch and dinner should lean on cooling or South Indian dishes.
	cat := DefaultCatalog()
	south := regionProfiles[South]
	favored := 0
	for _, m := range plan.Meals() {
		if m.MealType != Lunch && m.MealType != Dinner {
			continue
		}
		for _, e := range m.Foods {
			f, ok := cat.Lookup(e.Name)
			if ok && (f.Virya == Cooling || f.InRegion(South) || south.sharesIngredient(f)) {
				favored++
				break
			}
		}
	}
	assert.Greater(t, favored, 7)
}

func TestGenerateCalorieConsistency(t *testing.T) {
	req := validRequest(t, Request{Dosha: VataKapha, Season: Monsoon, Region: East})
	plan := newTestPlanner(7).Generate(req)
	require.False(t, plan.IsEmpty())

	weekly := 0
	for _, d := range plan.Days {
		daily := 0
		for _, m := range d.Meals {
			sum := 0
			for _, f := range m.Foods {
				sum += f.Calories
			}
			assert.Equal(t, sum, m.TotalCalories, "%s %s", d.Day, m.MealType)
			daily += sum
		}
		assert.Equal(t, daily, d.Totals.Calories)
		weekly += daily
	}
	assert.InDelta(t, float64(weekly)/7, float64(plan.AveragePerDay.Calories), 1)
}

func TestGenerateKaphaWinterNorthExcludesDairy(t *testing.T) {
	req := validRequest(t, Request{Dosha: Kapha, Season: Winter, Region: North, Allergies: []string{"dairy"}})
	plan := newTestPlanner(11).Generate(req)
	require.False(t, plan.IsEmpty())

	cat := DefaultCatalog()
	for _, m := range plan.Meals() {
		for _, e := range m.Foods {
			if f, ok := cat.Lookup(e.Name); ok {
				assert.NotContains(t, f.Allergens, "dairy", e.Name)
			}
		}
		assert.Contains(t, m.Notes, "Avoid allergens: dairy")
	}
}

func TestGenerateNeverServesAllergens(t *testing.T) {
	allergies := []string{"nuts", "dairy", "gluten"}
	cat := DefaultCatalog()
	for _, d := range AllDoshas {
		req := validRequest(t, Request{Dosha: d, Season: Winter, Region: West, Allergies: allergies, Vegetarian: true})
		plan := newTestPlanner(3).Generate(req)
		require.False(t, plan.IsEmpty())
		for _, m := range plan.Meals() {
			for _, e := range m.Foods {
				for _, a := range allergies {
					assert.NotContains(t, strings.ToLower(e.Name), a)
				}
				if f, ok := cat.Lookup(e.Name); ok {
					assert.True(t, f.Vegetarian, e.Name)
					for _, a := range allergies {
						assert.False(t, f.ContainsAllergen(a), "%s contains %s", e.Name, a)
					}
				}
			}
		}
	}
}

func TestGenerateVetoesPartialAllergenTags(t *testing.T) {
	cat := DefaultCatalog()
	for seed := int64(1); seed <= 5; seed++ {
		req := validRequest(t, Request{Dosha: Vata, Season: Winter, Region: PanIndia, Allergies: []string{"nut"}})
		plan := newTestPlanner(seed).Generate(req)
		require.False(t, plan.IsEmpty())
		for _, m := range plan.Meals() {
			for _, e := range m.Foods {
				f, ok := cat.Lookup(e.Name)
				if !ok {
					continue
				}
				for _, tag := range f.Allergens {
					assert.NotContains(t, strings.ToLower(tag), "nut", "seed %d served %s", seed, e.Name)
				}
			}
		}
	}
}

func TestGenerateFastMode(t *testing.T) {
	req := validRequest(t, Request{Dosha: PittaKapha, Fast: true})
	plan := newTestPlanner(5).Generate(req)

	assert.Equal(t, FastDuration, plan.Duration)
	require.Len(t, plan.Days, 3)
	for i, d := range plan.Days {
		assert.Equal(t, FastDays[i], d.Day)
		require.Len(t, d.Meals, 3)
		for j, m := range d.Meals {
			assert.Equal(t, FastSlots[j], m.MealType)
		}
	}
	assert.Len(t, plan.Meals(), 9)
	_, ok := plan.Meal("Day 2", Lunch)
	assert.True(t, ok)
	_, ok = plan.Meal("Day 2", EveningSnack)
	assert.False(t, ok)
}

func TestGenerateInvalidDoshaIsEmpty(t *testing.T) {
	plan := newTestPlanner(1).Generate(Request{Dosha: "Tridosha"})
	assert.True(t, plan.IsEmpty())
	assert.Empty(t, plan.Days)
	assert.NotNil(t, plan.Metadata.Duplicates)
	assert.NotNil(t, plan.Goals)
}

func TestGenerateIsReproducibleWithSeed(t *testing.T) {
	req := validRequest(t, Request{Dosha: Vata, Season: Autumn})
	names := func(p *WeeklyPlan) []string {
		var out []string
		for _, m := range p.Meals() {
			for _, f := range m.Foods {
				out = append(out, f.Name)
			}
		}
		return out
	}
	assert.Equal(t, names(newTestPlanner(99).Generate(req)), names(newTestPlanner(99).Generate(req)))
}

func TestShrunkCatalogReportsDuplicates(t *testing.T) {
	keep := map[string]bool{
		"Poha":                 true,
		"Tender Coconut Water": true,
		"Sambar Rice":          true,
		"Rasam Rice":           true,
		"Kootu":                true,
	}
	small := DefaultCatalog().Subset(func(f *Food) bool { return keep[f.Name] })
	require.Equal(t, 5, small.Len())

	req := validRequest(t, Request{Dosha: Pitta, Season: Summer, Region: South})
	plan := NewPlanner(small, WithSeed(8)).Generate(req)
	require.False(t, plan.IsEmpty())

	counts := map[string]int{}
	for _, m := range plan.Meals() {
		assert.NotEmpty(t, m.Foods)
		for _, f := range m.Foods {
			counts[f.Name]++
		}
	}
	var want []string
	for name, n := range counts {
		if n > 1 {
			want = append(want, name)
		}
	}
	assert.NotEmpty(t, want)
	assert.ElementsMatch(t, want, plan.Metadata.Duplicates)
	assert.NotEmpty(t, plan.Metadata.RelaxedSlots)
	assert.Less(t, plan.Metadata.UniqueRecipes, plan.Metadata.TotalRecipes)
}

func TestFillSlotStateMachine(t *testing.T) {
	foods := []*Food{plainFood("Jeera Rice", 300, Lunch), plainFood("Dal Rice", 380, Lunch), plainFood("Lemon Rice", 330, Lunch)}
	c := NewComposer(newTestCatalog(t, foods, nil), rand.New(rand.NewSource(2)))
	used := NewUsedSet()

	res := fillSlot(c, lunchRequest(), used)
	assert.Equal(t, 1, res.attempts)
	assert.False(t, res.relaxed)
	assert.Len(t, res.comp.Foods, 2)

	// One fresh dish left for a two-dish slot: both retries fail, then the
	// relaxed attempt repeats a dish.
	res = fillSlot(c, lunchRequest(), used)
	assert.Equal(t, maxSlotRetries+1, res.attempts)
	assert.True(t, res.relaxed)
	require.Len(t, res.comp.Foods, 2)
	assert.Len(t, res.comp.Repeated, 1)
	assert.Equal(t, 3, used.Len())
}

func TestFindDuplicates(t *testing.T) {
	meals := []*Meal{
		{Foods: []FoodEntry{{Name: "Kootu"}, {Name: "Avial"}}},
		{Foods: []FoodEntry{{Name: "Avial"}}},
		{Foods: []FoodEntry{{Name: "Kootu"}, {Name: "Curd Rice"}}},
	}
	assert.Equal(t, []string{"Avial", "Kootu"}, FindDuplicates(meals))
	assert.Equal(t, []string{}, FindDuplicates(nil))
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest(RawRequest{
		Dosha:     "kapha-pitta",
		Season:    "winter",
		Allergies: []string{" dairy ", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, PittaKapha, req.Dosha)
	assert.Equal(t, Winter, req.Season)
	assert.Equal(t, PanIndia, req.Region)
	assert.Equal(t, []string{"dairy"}, req.Allergies)
	assert.Equal(t, DefaultCalories, req.Targets.Calories)

	_, err = ParseRequest(RawRequest{Dosha: "Tridosha"})
	assert.ErrorIs(t, err, ErrInvalidDosha)

	_, err = ParseRequest(RawRequest{Dosha: "Vata", Region: "Central"})
	assert.ErrorIs(t, err, ErrInvalidRegion)
}
