package engine

const baseScore = 40

// Context is the plan-level input a food is scored against.
type Context struct {
	Dosha     Dosha    `json:"dosha"`
	Season    Season   `json:"season"`
	Region    Region   `json:"region"`
	MealType  MealType `json:"meal_type,omitempty"`
	Allergies []string `json:"allergies,omitempty"`
}

// Breakdown is the per-factor decomposition of a score.
type Breakdown struct {
	Base          int  `json:"base"`
	Dosha         int  `json:"dosha"`
	Season        int  `json:"season"`
	Region        int  `json:"region"`
	Timing        int  `json:"timing"`
	Nutrition     int  `json:"nutrition"`
	Digestibility int  `json:"digestibility"`
	Ayurvedic     int  `json:"ayurvedic"`
	Combination   int  `json:"combination"`
	Vetoed        bool `json:"vetoed"`
	Total         int  `json:"total"`
}

// Score rates a food in [0,100] for the given context. Any matching allergen forces 0.
func Score(f *Food, ctx Context) int {
	return Explain(f, ctx).Total
}

// Explain returns the full breakdown behind Score.
func Explain(f *Food, ctx Context) Breakdown {
	b := Breakdown{
		Base:          baseScore,
		Dosha:         doshaBonus(f, ctx.Dosha),
		Season:        seasonBonus(f, ctx.Season),
		Region:        regionBonus(f, ctx.Region),
		Timing:        timingBonus(f, ctx.MealType),
		Nutrition:     nutritionBonus(f),
		Digestibility: digestibilityBonus(f, ctx.Dosha),
		Ayurvedic:     ayurvedicBonus(f, ctx.Dosha, ctx.Season),
		Combination:   combinationBonus(f, ctx.Season, ctx.Region),
	}
	for _, a := range ctx.Allergies {
		if f.ContainsAllergen(a) {
			b.Vetoed = true
			return b
		}
	}
	sum := b.Base + b.Dosha + b.Season + b.Region + b.Timing + b.Nutrition + b.Digestibility + b.Ayurvedic + b.Combination
	b.Total = clamp(sum, 0, 100)
	return b
}

// doshaBonus sums the rule of every primary in d, so a pair can earn both halves.
func doshaBonus(f *Food, d Dosha) int {
	bonus := 0
	for _, p := range d.Primaries() {
		rule := doshaRules[p]
		switch {
		case rule.High.Matches(f):
			bonus += doshaHighBonus
		case rule.Moderate.Matches(f):
			bonus += doshaModerateBonus
		case rule.Mild.Matches(f):
			bonus += doshaMildBonus
		}
		if rule.Harmful.Matches(f) {
			bonus -= doshaHarmPenalty
		}
	}
	return clamp(bonus, -15, 35)
}

func seasonBonus(f *Food, s Season) int {
	if s == AllSeason {
		return allSeasonFlatBonus
	}
	rule := seasonRules[s]
	bonus := 0
	switch {
	case rule.Best.Matches(f):
		bonus += seasonBestBonus
	case rule.Good.Matches(f) || f.InSeason(s):
		bonus += seasonGoodBonus
	}
	if rule.Penalty > 0 && rule.Opposite.Matches(f) {
		bonus -= rule.Penalty
	}
	return clamp(bonus, -10, 25)
}

func regionBonus(f *Food, r Region) int {
	if r == PanIndia {
		return panIndiaFlatBonus
	}
	p, ok := regionProfiles[r]
	if !ok {
		return 0
	}
	switch {
	case p.isSpecialty(f.Name):
		return regionSpecialtyBonus
	case p.isStaple(f.Name):
		return regionStapleBonus
	case f.InRegion(r) || p.sharesIngredient(f):
		return regionIngredientBonus
	}
	return 0
}

func timingBonus(f *Food, m MealType) int {
	rule, ok := timingRules[m]
	if !ok {
		return 0
	}
	bonus := 0
	switch {
	case rule.BestBonus > 0 && rule.Best.Matches(f):
		bonus += rule.BestBonus
	case rule.GoodBonus > 0 && rule.Good.Matches(f):
		bonus += rule.GoodBonus
	}
	if rule.Penalty > 0 && rule.Avoid.Matches(f) {
		bonus -= rule.Penalty
	}
	return clamp(bonus, 0, 20)
}

func nutritionBonus(f *Food) int {
	bonus := 0
	if f.HasNutrient(NutrientProtein) {
		bonus += 3
	}
	if f.HasNutrient(NutrientFiber) {
		bonus += 3
	}
	if f.HasNutrient(NutrientProbiotic) {
		bonus += 2
	}
	if f.HasNutrient(NutrientHealthyFat) {
		bonus += 2
	}
	return clamp(bonus, 0, 10)
}

func digestibilityBonus(f *Food, d Dosha) int {
	bonus := 0
	switch f.Digestibility {
	case DigestEasy:
		bonus += 8
	case DigestModerate:
		bonus += 5
	}
	if d.Has(Vata) && (f.HasQuality(Warm) || f.HasQuality(Oily) || f.HasIngredient("ghee")) {
		bonus += 2
	}
	if d.Has(Kapha) {
		if f.HasQuality(Light) || f.HasQuality(Spicy) || f.HasTaste(Bitter) {
			bonus += 2
		}
		if f.HasQuality(Heavy) || f.HasQuality(Oily) || f.HasTaste(Sweet) {
			bonus -= 3
		}
	}
	return clamp(bonus, -3, 10)
}

func ayurvedicBonus(f *Food, d Dosha, s Season) int {
	bonus := 0
	for _, p := range d.Primaries() {
		guide := primaryRasaGuide[p]
		for _, t := range f.Tastes {
			if guide.Prefers(t) {
				bonus += 5
				break
			}
		}
	}
	if (s == Summer && f.Virya == Cooling) || (s == Winter && f.Virya == Heating) {
		bonus += 5
	}
	for _, i := range specialIngredients {
		if f.HasIngredient(i) {
			bonus += 5
			break
		}
	}
	return clamp(bonus, 0, 15)
}

func combinationBonus(f *Food, s Season, r Region) int {
	bonus := 0
	for _, rule := range combinationRules {
		if rule.Season != s || (rule.Region != "" && rule.Region != r) {
			continue
		}
		if rule.Match.Matches(f) {
			bonus += rule.Bonus
		}
	}
	return clamp(bonus, 0, 5)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
