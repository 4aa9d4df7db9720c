package engine

import "strings"

// Match is a rule bucket over structured food tags. A food matches when any
// listed tag is present.
type Match struct {
	Ingredients []string
	Qualities   []Quality
	Tastes      []Rasa
	Categories  []Category
	Nutrients   []Nutrient
	Virya       Virya
}

func (m Match) Matches(f *Food) bool {
	if m.Virya != "" && f.Virya == m.Virya {
		return true
	}
	for _, i := range m.Ingredients {
		if f.HasIngredient(i) {
			return true
		}
	}
	for _, q := range m.Qualities {
		if f.HasQuality(q) {
			return true
		}
	}
	for _, t := range m.Tastes {
		if f.HasTaste(t) {
			return true
		}
	}
	for _, c := range m.Categories {
		if f.Category == c {
			return true
		}
	}
	for _, n := range m.Nutrients {
		if f.HasNutrient(n) {
			return true
		}
	}
	return false
}

// DoshaRule holds the tiered buckets that balance one primary dosha.
type DoshaRule struct {
	High     Match
	Moderate Match
	Mild     Match
	Harmful  Match
}

const (
	doshaHighBonus     = 25
	doshaModerateBonus = 18
	doshaMildBonus     = 12
	doshaHarmPenalty   = 12
)

var doshaRules = map[Dosha]DoshaRule{
	Vata: {
		High: Match{
			Ingredients: []string{"ghee", "milk", "dates", "sweet-potato", "oats"},
			Qualities:   []Quality{Grounding},
		},
		Moderate: Match{Qualities: []Quality{Warm, Oily, Cooked, Steamed, Liquid}},
		Mild: Match{
			Ingredients: []string{"banana", "rice", "almonds", "cashews", "peanuts"},
			Categories:  []Category{CategoryNut},
		},
		Harmful: Match{Qualities: []Quality{Raw, Cold, Dry}, Tastes: []Rasa{Bitter}},
	},
	Pitta: {
		High: Match{
			Ingredients: []string{"cucumber", "coconut", "mint", "coriander", "fennel"},
			Virya:       Cooling,
		},
		Moderate: Match{Ingredients: []string{"milk", "ghee", "rice", "melon", "grapes", "watermelon"}},
		Mild: Match{
			Ingredients: []string{"spinach", "fenugreek", "mustard-greens", "bottle-gourd"},
			Tastes:      []Rasa{Bitter},
		},
		Harmful: Match{
			Ingredients: []string{"green-chili", "red-chili", "garlic", "tamarind"},
			Qualities:   []Quality{Spicy, Fermented},
			Tastes:      []Rasa{Sour},
		},
	},
	Kapha: {
		High: Match{
			Ingredients: []string{"ginger", "black-pepper", "turmeric"},
			Qualities:   []Quality{Spicy, Light},
			Tastes:      []Rasa{Bitter},
		},
		Moderate: Match{
			Ingredients: []string{"barley", "millet", "honey", "ragi", "bajra"},
			Qualities:   []Quality{Warm, Steamed},
		},
		Mild: Match{
			Categories: []Category{CategoryVegetable, CategoryLegume},
			Tastes:     []Rasa{Astringent},
		},
		Harmful: Match{
			Qualities:  []Quality{Heavy, Oily, Cold},
			Tastes:     []Rasa{Sweet},
			Categories: []Category{CategoryDairy},
		},
	},
}

// SeasonRule holds the best/good/opposite buckets for one season. Good also
// matches any food tagged with the season.
type SeasonRule struct {
	Best     Match
	Good     Match
	Opposite Match
	Penalty  int
}

const (
	seasonBestBonus    = 25
	seasonGoodBonus    = 18
	allSeasonFlatBonus = 8
)

var seasonRules = map[Season]SeasonRule{
	Summer: {
		Best: Match{
			Ingredients: []string{"cucumber", "watermelon", "coconut", "mint", "buttermilk", "curd"},
			Virya:       Cooling,
		},
		Good:     Match{Ingredients: []string{"melon"}, Qualities: []Quality{Cold, Raw, Liquid}},
		Opposite: Match{Ingredients: []string{"ginger", "black-pepper", "green-chili", "red-chili"}, Qualities: []Quality{Spicy}, Virya: Heating},
		Penalty:  8,
	},
	Winter: {
		Best: Match{
			Ingredients: []string{"ginger", "cinnamon", "ghee", "jaggery"},
			Virya:       Heating,
		},
		Good:     Match{Qualities: []Quality{Warm, Cooked, Steamed, Spicy}},
		Opposite: Match{Ingredients: []string{"cucumber"}, Qualities: []Quality{Cold, Raw}, Virya: Cooling},
		Penalty:  8,
	},
	Monsoon: {
		Best: Match{
			Ingredients: []string{"ginger", "turmeric"},
			Qualities:   []Quality{Light, Steamed},
		},
		Good:     Match{Qualities: []Quality{Cooked, Warm, Spicy}},
		Opposite: Match{Qualities: []Quality{Heavy, Oily, Fried, Raw}},
		Penalty:  10,
	},
	Spring: {
		Good: Match{Qualities: []Quality{Light}},
	},
	Autumn: {
		Good: Match{Virya: Cooling},
	},
}

// RegionProfile lists a region's specialty and staple dishes plus its signature ingredients.
type RegionProfile struct {
	Specialties []string
	Staples     []string
	Ingredients []string
}

const (
	regionSpecialtyBonus  = 20
	regionStapleBonus     = 15
	regionIngredientBonus = 10
	panIndiaFlatBonus     = 5
)

var regionProfiles = map[Region]RegionProfile{
	North: {
		Specialties: []string{"Makki di Roti", "Sarson ka Saag", "Aloo Paratha", "Paneer Tikka", "Kadhi Pakora", "Rajma Chawal", "Gajar ka Halwa", "Chole with Phulka"},
		Staples:     []string{"Phulka with Ghee", "Dal Makhani", "Methi Paratha", "Jeera Rice", "Matar Paneer", "Masala Chai", "Sweet Lassi", "Bajra Roti"},
		Ingredients: []string{"wheat", "mustard-greens", "maize", "paneer", "rajma", "chickpeas", "fenugreek", "jaggery", "garam-masala"},
	},
	South: {
		Specialties: []string{"Sambar Rice", "Rasam Rice", "Lemon Rice", "Tamarind Rice", "Curd Rice", "Bisi Bele Bath", "Ven Pongal", "Avial", "Kootu", "Neer Mor"},
		Staples:     []string{"Idli with Sambar", "Plain Dosa", "Appam with Stew", "Coconut Rice", "Tender Coconut Water", "Spiced Buttermilk", "Lemon Coconut Poha", "Ragi Porridge"},
		Ingredients: []string{"coconut", "curry-leaves", "tamarind", "mustard-seeds", "urad-dal", "rice", "drumstick", "buttermilk"},
	},
	East: {
		Specialties: []string{"Bengali Khichuri", "Shukto", "Aloo Posto", "Cholar Dal", "Moong Dal Khichdi", "Payesh", "Dalia Khichuri"},
		Staples:     []string{"Dal Bhaat", "Begun Bharta", "Jaggery Tea", "Pumpkin Chorchori"},
		Ingredients: []string{"mustard-oil", "panch-phoron", "poppy-seeds", "nigella", "pumpkin", "eggplant", "rice"},
	},
	West: {
		Specialties: []string{"Dhokla", "Handvo", "Thepla", "Khichdi Kadhi", "Undhiyu", "Khandvi", "Puran Poli", "Kokum Sherbet"},
		Staples:     []string{"Bajra Roti", "Jowar Bhakri", "Gujarati Kadhi", "Dal Rice", "Masala Chaas", "Aam Panna"},
		Ingredients: []string{"besan", "kokum", "jowar", "bajra", "asafoetida", "okra", "peanuts"},
	},
}

func (p RegionProfile) isSpecialty(name string) bool { return containsFold(p.Specialties, name) }
func (p RegionProfile) isStaple(name string) bool    { return containsFold(p.Staples, name) }

func (p RegionProfile) sharesIngredient(f *Food) bool {
	for _, i := range p.Ingredients {
		if f.HasIngredient(i) {
			return true
		}
	}
	return false
}

// RasaGuide is the taste preference of a constitution.
type RasaGuide struct {
	Prefer []Rasa `json:"prefer"`
	Avoid  []Rasa `json:"avoid"`
}

var primaryRasaGuide = map[Dosha]RasaGuide{
	Vata:  {Prefer: []Rasa{Sweet, Sour, Salty}, Avoid: []Rasa{Bitter, Pungent, Astringent}},
	Pitta: {Prefer: []Rasa{Sweet, Bitter, Astringent}, Avoid: []Rasa{Sour, Pungent, Salty}},
	Kapha: {Prefer: []Rasa{Pungent, Bitter, Astringent}, Avoid: []Rasa{Sweet, Sour, Salty}},
}

// GuideFor unions the guides of d's primaries; a taste both preferred and
// avoided stays preferred.
func GuideFor(d Dosha) RasaGuide {
	var g RasaGuide
	seenPrefer := map[Rasa]bool{}
	for _, p := range d.Primaries() {
		for _, r := range primaryRasaGuide[p].Prefer {
			if !seenPrefer[r] {
				seenPrefer[r] = true
				g.Prefer = append(g.Prefer, r)
			}
		}
	}
	seenAvoid := map[Rasa]bool{}
	for _, p := range d.Primaries() {
		for _, r := range primaryRasaGuide[p].Avoid {
			if !seenPrefer[r] && !seenAvoid[r] {
				seenAvoid[r] = true
				g.Avoid = append(g.Avoid, r)
			}
		}
	}
	return g
}

func (g RasaGuide) Prefers(r Rasa) bool { return containsRasa(g.Prefer, r) }
func (g RasaGuide) Avoids(r Rasa) bool  { return containsRasa(g.Avoid, r) }

// specialIngredients carry a prabhava bonus regardless of context.
var specialIngredients = []string{"turmeric", "ginger", "ghee", "honey"}

// combinationRule is a traditional season x region pairing.
type combinationRule struct {
	Season Season
	Region Region // empty matches any region
	Match  Match
	Bonus  int
}

var combinationRules = []combinationRule{
	{Season: Summer, Region: South, Match: Match{Ingredients: []string{"coconut", "curry-leaves", "buttermilk"}}, Bonus: 5},
	{Season: Winter, Region: North, Match: Match{Ingredients: []string{"mustard-greens", "maize", "jaggery"}}, Bonus: 5},
	{Season: Monsoon, Match: Match{Ingredients: []string{"ginger", "turmeric"}, Qualities: []Quality{Warm}}, Bonus: 3},
}

// timingRule favors foods for a slot; snacks share one rule.
type timingRule struct {
	Best      Match
	BestBonus int
	Good      Match
	GoodBonus int
	Avoid     Match
	Penalty   int
}

var timingRules = map[MealType]timingRule{
	Breakfast: {
		Best:      Match{Categories: []Category{CategoryFruit, CategoryNut}, Ingredients: []string{"oats", "milk", "honey"}},
		BestBonus: 15,
		Good:      Match{Qualities: []Quality{Light, Warm}},
		GoodBonus: 10,
	},
	Lunch: {
		Best:      Match{Categories: []Category{CategoryLegume, CategoryGrain, CategoryBread}, Ingredients: []string{"rice", "toor-dal", "moong-dal"}},
		BestBonus: 15,
		Good:      Match{Qualities: []Quality{Cooked, Substantial}},
		GoodBonus: 10,
	},
	Dinner: {
		Best:      Match{Categories: []Category{CategorySoup}, Qualities: []Quality{Light, Steamed}, Ingredients: []string{"khichdi"}},
		BestBonus: 15,
		Good:      Match{Qualities: []Quality{Warm, Cooked}},
		GoodBonus: 10,
		Avoid:     Match{Qualities: []Quality{Fried, Heavy}, Ingredients: []string{"paneer", "curd", "cheese"}},
		Penalty:   10,
	},
	MidMorningSnack: snackTiming,
	EveningSnack:    snackTiming,
}

var snackTiming = timingRule{
	Best:      Match{Categories: []Category{CategoryFruit, CategoryNut, CategoryBeverage}, Ingredients: []string{"pumpkin-seeds", "sunflower-seeds", "tulsi"}},
	BestBonus: 10,
	Good:      Match{Qualities: []Quality{Light}, Nutrients: []Nutrient{NutrientProtein, NutrientFiber}},
	GoodBonus: 6,
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func containsRasa(list []Rasa, r Rasa) bool {
	for _, v := range list {
		if v == r {
			return true
		}
	}
	return false
}
