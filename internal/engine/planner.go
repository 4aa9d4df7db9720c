package engine

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"
)

const (
	DefaultCalories = 2000
	DefaultDuration = 7
	FastDuration    = 3
	maxSlotRetries  = 2
)

// Targets are the daily nutrition goals.
type Targets struct {
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein,omitempty"`
	Carbs    float64 `json:"carbs,omitempty"`
	Fat      float64 `json:"fat,omitempty"`
}

// Request is the validated input of one plan generation.
type Request struct {
	Dosha            Dosha    `json:"dosha"`
	Season           Season   `json:"season"`
	Region           Region   `json:"region"`
	HealthConditions []string `json:"health_conditions,omitempty"`
	Allergies        []string `json:"allergies,omitempty"`
	Goals            []string `json:"goals,omitempty"`
	Duration         int      `json:"duration"`
	Fast             bool     `json:"fast"`
	Vegetarian       bool     `json:"vegetarian"`
	Targets          Targets  `json:"targets"`
}

// Validate rejects unknown enums and impossible targets, and fills defaults.
func (r *Request) Validate() error {
	if !r.Dosha.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidDosha, r.Dosha)
	}
	season, err := ParseSeason(string(r.Season))
	if err != nil {
		return err
	}
	r.Season = season
	region, err := ParseRegion(string(r.Region))
	if err != nil {
		return err
	}
	r.Region = region
	if r.Targets.Calories < 0 || r.Targets.Protein < 0 || r.Targets.Carbs < 0 || r.Targets.Fat < 0 {
		return fmt.Errorf("%w: values must not be negative", ErrInvalidTargets)
	}
	if r.Targets.Calories == 0 {
		r.Targets.Calories = DefaultCalories
	}
	if r.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", ErrInvalidTargets)
	}
	if r.Duration == 0 {
		r.Duration = DefaultDuration
	}
	if r.Fast {
		r.Duration = FastDuration
	}
	return nil
}

// RawRequest is a Request as it arrives from a client, with enums still as strings.
type RawRequest struct {
	Dosha            string
	Season           string
	Region           string
	HealthConditions []string
	Allergies        []string
	Goals            []string
	Duration         int
	Fast             bool
	Vegetarian       bool
	Targets          Targets
}

// ParseRequest converts raw client input into a validated Request.
func ParseRequest(raw RawRequest) (Request, error) {
	dosha, err := ParseDosha(raw.Dosha)
	if err != nil {
		return Request{}, err
	}
	req := Request{
		Dosha:            dosha,
		Season:           Season(raw.Season),
		Region:           Region(raw.Region),
		HealthConditions: nonEmpty(raw.HealthConditions),
		Allergies:        nonEmpty(raw.Allergies),
		Goals:            nonEmpty(raw.Goals),
		Duration:         raw.Duration,
		Fast:             raw.Fast,
		Vegetarian:       raw.Vegetarian,
		Targets:          raw.Targets,
	}
	if err := req.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Meal is one generated (day, slot) cell.
type Meal struct {
	Day           string      `json:"day"`
	MealType      MealType    `json:"meal_type"`
	Foods         []FoodEntry `json:"foods"`
	Notes         []string    `json:"notes"`
	TotalCalories int         `json:"total_calories"`
	CalorieTarget int         `json:"calorie_target"`
	Relaxed       bool        `json:"relaxed,omitempty"`
	Synthetic     bool        `json:"synthetic,omitempty"`
}

// Recalculate sets TotalCalories to the sum of the foods.
func (m *Meal) Recalculate() {
	total := 0
	for _, f := range m.Foods {
		total += f.Calories
	}
	m.TotalCalories = total
}

// DayPlan holds a day's meals in slot order.
type DayPlan struct {
	Day    string    `json:"day"`
	Meals  []*Meal   `json:"meals"`
	Totals Nutrition `json:"totals"`
}

// Metadata is diagnostic information about a generated plan.
type Metadata struct {
	TotalRecipes   int      `json:"total_recipes"`
	UniqueRecipes  int      `json:"unique_recipes"`
	Duplicates     []string `json:"duplicates"`
	RelaxedSlots   []string `json:"relaxed_slots,omitempty"`
	SyntheticSlots int      `json:"synthetic_slots"`
	Attempts       int      `json:"attempts"`
}

// WeeklyPlan is an ordered day -> slot -> meal structure.
type WeeklyPlan struct {
	Name          string    `json:"name"`
	Dosha         Dosha     `json:"dosha"`
	Season        Season    `json:"season"`
	Region        Region    `json:"region"`
	Duration      int       `json:"duration"`
	Fast          bool      `json:"fast"`
	Goals         []string  `json:"goals"`
	Restrictions  []string  `json:"restrictions"`
	Allergies     []string  `json:"allergies,omitempty"`
	Guide         RasaGuide `json:"guide"`
	Days          []DayPlan `json:"days"`
	AveragePerDay Nutrition `json:"average_per_day"`
	Metadata      Metadata  `json:"metadata"`
	GeneratedAt   time.Time `json:"generated_at"`
	Targets       Targets   `json:"targets"`
}

// IsEmpty reports the sentinel plan returned for unusable input.
func (p *WeeklyPlan) IsEmpty() bool {
	if p == nil {
		return true
	}
	for _, d := range p.Days {
		if len(d.Meals) > 0 {
			return false
		}
	}
	return true
}

// Meals returns every meal in day then slot order.
func (p *WeeklyPlan) Meals() []*Meal {
	var out []*Meal
	for _, d := range p.Days {
		out = append(out, d.Meals...)
	}
	return out
}

// Meal finds the cell for (day, slot).
func (p *WeeklyPlan) Meal(day string, m MealType) (*Meal, bool) {
	for _, d := range p.Days {
		if d.Day != day {
			continue
		}
		for _, meal := range d.Meals {
			if meal.MealType == m {
				return meal, true
			}
		}
	}
	return nil, false
}

// FindDuplicates scans every meal and returns the sorted names that appear more than once.
func FindDuplicates(meals []*Meal) []string {
	counts := map[string]int{}
	for _, m := range meals {
		for _, f := range m.Foods {
			counts[f.Name]++
		}
	}
	dups := []string{}
	for name, n := range counts {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)
	return dups
}

// Option configures a Planner.
type Option func(*Planner)

// WithSeed makes sampling reproducible.
func WithSeed(seed int64) Option {
	return func(p *Planner) { p.seed = &seed }
}

// WithClock overrides the time used for plan names.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// Planner generates weekly plans. It is safe for concurrent use: each call
// owns its random source and used-name arena.
type Planner struct {
	catalog *Catalog
	seed    *int64
	now     func() time.Time
}

func NewPlanner(catalog *Catalog, opts ...Option) *Planner {
	p := &Planner{catalog: catalog, now: time.Now}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Planner) Catalog() *Catalog {
	return p.catalog
}

func (p *Planner) newRand() *rand.Rand {
	if p.seed != nil {
		return rand.New(rand.NewSource(*p.seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Generate builds a plan for req. Input that cannot yield any meal (an
// unrecognized dosha) produces an empty plan; check IsEmpty.
func (p *Planner) Generate(req Request) *WeeklyPlan {
	plan := &WeeklyPlan{
		Dosha:        req.Dosha,
		Season:       req.Season,
		Region:       req.Region,
		Duration:     req.Duration,
		Fast:         req.Fast,
		Goals:        nonNil(req.Goals),
		Restrictions: nonNil(nonEmpty(req.HealthConditions)),
		Allergies:    nonEmpty(req.Allergies),
		GeneratedAt:  p.now(),
		Targets:      req.Targets,
		Metadata:     Metadata{Duplicates: []string{}},
	}
	if !req.Dosha.Valid() || p.catalog == nil || p.catalog.Len() == 0 {
		return plan
	}
	if plan.Season == "" {
		plan.Season = AllSeason
	}
	if plan.Region == "" {
		plan.Region = PanIndia
	}
	if plan.Targets.Calories <= 0 {
		plan.Targets.Calories = DefaultCalories
	}
	plan.Name = PlanName(plan.Dosha, plan.Season, plan.Region, plan.GeneratedAt)
	plan.Guide = GuideFor(req.Dosha)

	days, slots := WeekDays, FullDaySlots
	if req.Fast {
		days, slots = FastDays, FastSlots
		plan.Duration = FastDuration
	}
	if plan.Duration <= 0 {
		plan.Duration = DefaultDuration
	}

	composer := NewComposer(p.catalog, p.newRand())
	used := NewUsedSet()
	for _, day := range days {
		dp := DayPlan{Day: day}
		for _, slot := range slots {
			mreq := MealRequest{
				Dosha:         req.Dosha,
				Season:        plan.Season,
				Region:        plan.Region,
				MealType:      slot,
				Allergies:     plan.Allergies,
				Vegetarian:    req.Vegetarian,
				ItemCount:     ItemCount[slot],
				CalorieTarget: int(math.Round(float64(plan.Targets.Calories) * CalorieShare[slot])),
			}
			res := fillSlot(composer, mreq, used)
			meal := &Meal{
				Day:           day,
				MealType:      slot,
				Foods:         res.comp.Foods,
				Notes:         append(GuidanceNotes(req.Dosha, slot, plan.Guide, plan.Restrictions, plan.Allergies), res.comp.Notes...),
				CalorieTarget: mreq.CalorieTarget,
				Relaxed:       res.relaxed,
				Synthetic:     res.comp.Synthetic,
			}
			meal.Recalculate()
			for _, f := range meal.Foods {
				dp.Totals.Add(f)
			}
			plan.Metadata.Attempts += res.attempts
			if res.relaxed {
				plan.Metadata.RelaxedSlots = append(plan.Metadata.RelaxedSlots, day+" "+string(slot))
			}
			if meal.Synthetic {
				plan.Metadata.SyntheticSlots++
			}
			dp.Meals = append(dp.Meals, meal)
		}
		plan.Days = append(plan.Days, dp)
	}
	if plan.IsEmpty() {
		plan.Days = nil
		return plan
	}
	finalize(plan)
	return plan
}

// finalize runs the authoritative whole-plan duplicate scan and the rollups.
func finalize(plan *WeeklyPlan) {
	meals := plan.Meals()
	names := map[string]struct{}{}
	total := 0
	for _, m := range meals {
		for _, f := range m.Foods {
			names[f.Name] = struct{}{}
			total++
		}
	}
	plan.Metadata.TotalRecipes = total
	plan.Metadata.UniqueRecipes = len(names)
	plan.Metadata.Duplicates = FindDuplicates(meals)

	var sum Nutrition
	for _, d := range plan.Days {
		sum.Merge(d.Totals)
	}
	n := float64(len(plan.Days))
	plan.AveragePerDay = Nutrition{
		Calories: int(math.Round(float64(sum.Calories) / n)),
		Protein:  math.Round(sum.Protein / n),
		Carbs:    math.Round(sum.Carbs / n),
		Fat:      math.Round(sum.Fat / n),
		Fiber:    math.Round(sum.Fiber / n),
	}
}

type slotState int

const (
	stateSelect slotState = iota
	stateVerify
	stateRetry
	stateAccept
	stateRelax
)

type slotResult struct {
	comp     Composition
	attempts int
	relaxed  bool
}

// fillSlot runs select -> verify-unique -> accept | retry | relax-and-accept.
// Repeats are allowed only on the last retry.
func fillSlot(c *Composer, req MealRequest, used *UsedSet) slotResult {
	var (
		comp    Composition
		attempt int
		state   = stateSelect
	)
	for {
		switch state {
		case stateSelect:
			req.AllowRepeats = attempt == maxSlotRetries
			comp = c.Compose(req, used)
			state = stateVerify
		case stateVerify:
			switch {
			case !comp.HadToRepeat && distinctNames(comp.Foods):
				state = stateAccept
			case attempt < maxSlotRetries:
				state = stateRetry
			default:
				state = stateRelax
			}
		case stateRetry:
			attempt++
			state = stateSelect
		case stateAccept:
			return slotResult{comp: comp, attempts: attempt + 1}
		case stateRelax:
			return slotResult{comp: comp, attempts: attempt + 1, relaxed: true}
		}
	}
}

func distinctNames(foods []FoodEntry) bool {
	seen := make(map[string]struct{}, len(foods))
	for _, f := range foods {
		if _, ok := seen[f.Name]; ok {
			return false
		}
		seen[f.Name] = struct{}{}
	}
	return len(foods) > 0
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
