package engine

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

const (
	minSampleBand  = 10
	calorieSlack   = 150
	syntheticParts = 3
)

// UsedSet is the per-run arena of dish names already placed in a plan. It is
// never shared between generations.
type UsedSet struct {
	names map[string]struct{}
}

func NewUsedSet() *UsedSet {
	return &UsedSet{names: make(map[string]struct{})}
}

func (u *UsedSet) Has(name string) bool {
	_, ok := u.names[strings.ToLower(name)]
	return ok
}

func (u *UsedSet) Add(name string) {
	u.names[strings.ToLower(name)] = struct{}{}
}

func (u *UsedSet) Len() int {
	return len(u.names)
}

// MealRequest is the input of one composition.
type MealRequest struct {
	Dosha         Dosha
	Season        Season
	Region        Region
	MealType      MealType
	Allergies     []string
	Vegetarian    bool
	ItemCount     int
	CalorieTarget int
	AllowRepeats  bool
}

func (r MealRequest) context() Context {
	return Context{Dosha: r.Dosha, Season: r.Season, Region: r.Region, MealType: r.MealType, Allergies: r.Allergies}
}

// Composition is the result of composing one meal slot.
type Composition struct {
	Foods       []FoodEntry
	Notes       []string
	HadToRepeat bool
	Synthetic   bool
	Repeated    []string
}

// Calories sums the entries.
func (c Composition) Calories() int {
	total := 0
	for _, f := range c.Foods {
		total += f.Calories
	}
	return total
}

// ScoredFood pairs a candidate with its score.
type ScoredFood struct {
	Food  *Food
	Score int
}

// Composer picks dishes for one slot from a catalog.
type Composer struct {
	catalog *Catalog
	rng     *rand.Rand
}

func NewComposer(catalog *Catalog, rng *rand.Rand) *Composer {
	return &Composer{catalog: catalog, rng: rng}
}

// Candidates builds the scored, allergen-free pool for req, best first.
func (c *Composer) Candidates(req MealRequest) []ScoredFood {
	guide := GuideFor(req.Dosha)
	ctx := req.context()
	var pool []ScoredFood
	for _, f := range c.catalog.Foods() {
		if !f.SuitsMeal(req.MealType) {
			continue
		}
		if req.Vegetarian && !f.Vegetarian {
			continue
		}
		if !hasCompatibleTaste(f, guide) && !f.InSeason(req.Season) && !f.InRegion(req.Region) && !f.Staple {
			continue
		}
		s := Score(f, ctx)
		if s <= 0 {
			continue
		}
		pool = append(pool, ScoredFood{Food: f, Score: s})
	}
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].Score != pool[j].Score {
			return pool[i].Score > pool[j].Score
		}
		return pool[i].Food.Name < pool[j].Food.Name
	})
	return pool
}

func hasCompatibleTaste(f *Food, g RasaGuide) bool {
	for _, t := range f.Tastes {
		if !g.Avoids(t) {
			return true
		}
	}
	return false
}

// Compose selects foods for one slot. Names are marked in used only when the
// result is final: either no repeat was needed or repeats were allowed.
func (c *Composer) Compose(req MealRequest, used *UsedSet) Composition {
	itemCount := req.ItemCount
	if itemCount <= 0 {
		itemCount = 1
	}
	pool := c.Candidates(req)
	if len(pool) == 0 {
		return c.synthesize(req, used)
	}

	var fresh, stale []ScoredFood
	for _, sf := range pool {
		if used.Has(sf.Food.Name) {
			stale = append(stale, sf)
		} else {
			fresh = append(fresh, sf)
		}
	}

	var comp Composition
	selected := c.sampleTopBand(fresh, itemCount)
	if len(selected) < itemCount {
		comp.HadToRepeat = true
		if !req.AllowRepeats {
			comp.Foods = entries(selected, req.MealType)
			return comp
		}
		for _, sf := range stale {
			if len(selected) >= itemCount {
				break
			}
			selected = append(selected, sf)
			comp.Repeated = append(comp.Repeated, sf.Food.Name)
		}
	}

	if total := sumCalories(selected); total < req.CalorieTarget-calorieSlack && len(selected) < itemCount+1 {
		if extra, ok := nextUnused(fresh, selected); ok {
			selected = append(selected, extra)
		}
	}

	comp.Foods = entries(selected, req.MealType)
	for _, sf := range selected {
		if !containsFold(comp.Repeated, sf.Food.Name) {
			used.Add(sf.Food.Name)
		}
	}
	if len(comp.Repeated) > 0 {
		comp.Notes = append(comp.Notes, "Repeated from earlier in the plan: "+strings.Join(comp.Repeated, ", "))
	}
	return comp
}

// sampleTopBand draws n distinct foods at random from the top half of ranked
// (at least minSampleBand when available).
func (c *Composer) sampleTopBand(ranked []ScoredFood, n int) []ScoredFood {
	band := len(ranked) / 2
	if band < minSampleBand {
		band = minSampleBand
	}
	if band > len(ranked) {
		band = len(ranked)
	}
	idx := c.rng.Perm(band)
	if n > band {
		n = band
	}
	out := make([]ScoredFood, 0, n)
	for _, i := range idx[:n] {
		out = append(out, ranked[i])
	}
	return out
}

func nextUnused(ranked, selected []ScoredFood) (ScoredFood, bool) {
	for _, sf := range ranked {
		taken := false
		for _, s := range selected {
			if s.Food == sf.Food {
				taken = true
				break
			}
		}
		if !taken {
			return sf, true
		}
	}
	return ScoredFood{}, false
}

// synthesize builds "<MealType> Bowl" from up to three permitted base ingredients.
func (c *Composer) synthesize(req MealRequest, used *UsedSet) Composition {
	var parts []BaseIngredient
	for _, b := range c.catalog.BaseIngredients() {
		if len(parts) == syntheticParts {
			break
		}
		if req.Vegetarian && !b.Vegetarian {
			continue
		}
		if baseHasAllergen(b, req.Allergies) {
			continue
		}
		parts = append(parts, b)
	}

	name := fmt.Sprintf("%s Bowl", req.MealType)
	e := FoodEntry{Name: name, Quantity: "1 bowl"}
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		e.Calories += p.Calories
		e.Protein += p.Protein
		e.Carbs += p.Carbs
		e.Fat += p.Fat
		names = append(names, p.Name)
	}
	if len(parts) == 0 {
		e.Calories = req.CalorieTarget
		est := EstimateMacros("", e.Calories)
		e.Protein, e.Carbs, e.Fat, e.Fiber = est.Protein, est.Carbs, est.Fat, est.Fiber
		e.Notes = "Simple balanced bowl"
	} else {
		e.Notes = "Made with " + strings.Join(names, ", ")
	}
	used.Add(name)
	return Composition{
		Foods:     []FoodEntry{e},
		Notes:     []string{"No catalog dish fits this slot; composed from base ingredients"},
		Synthetic: true,
	}
}

func baseHasAllergen(b BaseIngredient, allergies []string) bool {
	for _, a := range allergies {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if strings.Contains(strings.ToLower(b.Name), a) || anyContains(b.Allergens, a) {
			return true
		}
	}
	return false
}

func entries(selected []ScoredFood, m MealType) []FoodEntry {
	out := make([]FoodEntry, 0, len(selected))
	for _, sf := range selected {
		out = append(out, NewEntry(sf.Food, m))
	}
	return out
}

func sumCalories(selected []ScoredFood) int {
	total := 0
	for _, sf := range selected {
		total += sf.Food.Calories
	}
	return total
}
