package engine

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

var ErrInvalidCatalog = errors.New("invalid catalog")

type Category string

const (
	CategoryGrain     Category = "grain"
	CategoryLegume    Category = "legume"
	CategoryDairy     Category = "dairy"
	CategoryNut       Category = "nut"
	CategoryFruit     Category = "fruit"
	CategoryVegetable Category = "vegetable"
	CategoryBeverage  Category = "beverage"
	CategorySoup      Category = "soup"
	CategorySweet     Category = "sweet"
	CategorySnack     Category = "snack"
	CategoryBread     Category = "bread"
)

var allCategories = []Category{
	CategoryGrain, CategoryLegume, CategoryDairy, CategoryNut, CategoryFruit, CategoryVegetable,
	CategoryBeverage, CategorySoup, CategorySweet, CategorySnack, CategoryBread,
}

// Virya is the heating or cooling potency of a food.
type Virya string

const (
	Heating Virya = "heating"
	Cooling Virya = "cooling"
	Neutral Virya = "neutral"
)

type Digestibility string

const (
	DigestEasy     Digestibility = "easy"
	DigestModerate Digestibility = "moderate"
	DigestHeavy    Digestibility = "heavy"
)

// Quality is a physical attribute used by the rules (guna-like).
type Quality string

const (
	Warm        Quality = "warm"
	Cold        Quality = "cold"
	Oily        Quality = "oily"
	Dry         Quality = "dry"
	Light       Quality = "light"
	Heavy       Quality = "heavy"
	Cooked      Quality = "cooked"
	Raw         Quality = "raw"
	Steamed     Quality = "steamed"
	Spicy       Quality = "spicy"
	Fried       Quality = "fried"
	Fermented   Quality = "fermented"
	Liquid      Quality = "liquid"
	Grounding   Quality = "grounding"
	Substantial Quality = "substantial"
)

var allQualities = []Quality{
	Warm, Cold, Oily, Dry, Light, Heavy, Cooked, Raw, Steamed, Spicy, Fried, Fermented, Liquid,
	Grounding, Substantial,
}

type Nutrient string

const (
	NutrientProtein    Nutrient = "protein"
	NutrientFiber      Nutrient = "fiber"
	NutrientProbiotic  Nutrient = "probiotic"
	NutrientHealthyFat Nutrient = "healthy-fat"
)

// Food is one catalog candidate with its structured tags and nominal macros.
type Food struct {
	Name          string        `yaml:"name" json:"name"`
	Category      Category      `yaml:"category" json:"category"`
	Tastes        []Rasa        `yaml:"tastes" json:"tastes"`
	Virya         Virya         `yaml:"virya" json:"virya"`
	Digestibility Digestibility `yaml:"digestibility" json:"digestibility"`
	Qualities     []Quality     `yaml:"qualities" json:"qualities,omitempty"`
	Nutrients     []Nutrient    `yaml:"nutrients" json:"nutrients,omitempty"`
	Ingredients   []string      `yaml:"ingredients" json:"ingredients,omitempty"`
	Allergens     []string      `yaml:"allergens" json:"allergens,omitempty"`
	Seasons       []Season      `yaml:"seasons" json:"seasons,omitempty"`
	Regions       []Region      `yaml:"regions" json:"regions,omitempty"`
	Meals         []MealType    `yaml:"meals" json:"meals"`
	Staple        bool          `yaml:"staple" json:"staple,omitempty"`
	Vegetarian    bool          `yaml:"vegetarian" json:"vegetarian"`
	Quantity      string        `yaml:"quantity" json:"quantity,omitempty"`
	Calories      int           `yaml:"calories" json:"calories"`
	Protein       float64       `yaml:"protein" json:"protein"`
	Carbs         float64       `yaml:"carbs" json:"carbs"`
	Fat           float64       `yaml:"fat" json:"fat"`
	Fiber         float64       `yaml:"fiber" json:"fiber,omitempty"`
}

func (f *Food) HasQuality(q Quality) bool {
	for _, v := range f.Qualities {
		if v == q {
			return true
		}
	}
	return false
}

func (f *Food) HasTaste(r Rasa) bool {
	for _, v := range f.Tastes {
		if v == r {
			return true
		}
	}
	return false
}

func (f *Food) HasNutrient(n Nutrient) bool {
	for _, v := range f.Nutrients {
		if v == n {
			return true
		}
	}
	return false
}

func (f *Food) HasIngredient(key string) bool {
	for _, v := range f.Ingredients {
		if v == key {
			return true
		}
	}
	return false
}

func (f *Food) InSeason(s Season) bool {
	for _, v := range f.Seasons {
		if v == s {
			return true
		}
	}
	return false
}

func (f *Food) InRegion(r Region) bool {
	for _, v := range f.Regions {
		if v == r {
			return true
		}
	}
	return false
}

func (f *Food) SuitsMeal(m MealType) bool {
	for _, v := range f.Meals {
		if v == m {
			return true
		}
	}
	return false
}

// ContainsAllergen matches an allergy as a case-insensitive substring of the
// allergen tags, the ingredient keys and the dish name.
func (f *Food) ContainsAllergen(allergy string) bool {
	a := strings.ToLower(strings.TrimSpace(allergy))
	if a == "" {
		return false
	}
	return anyContains(f.Allergens, a) || anyContains(f.Ingredients, a) || strings.Contains(strings.ToLower(f.Name), a)
}

// anyContains reports whether lowered is a substring of any value, ignoring case.
func anyContains(values []string, lowered string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), lowered) {
			return true
		}
	}
	return false
}

// Catalog is an immutable set of foods plus the base ingredients used for synthetic meals.
type Catalog struct {
	foods  []*Food
	byName map[string]*Food
	base   []BaseIngredient
}

// BaseIngredient feeds the synthetic "<MealType> Bowl" fallback.
type BaseIngredient struct {
	Name       string   `yaml:"name" json:"name"`
	Calories   int      `yaml:"calories" json:"calories"`
	Protein    float64  `yaml:"protein" json:"protein"`
	Carbs      float64  `yaml:"carbs" json:"carbs"`
	Fat        float64  `yaml:"fat" json:"fat"`
	Allergens  []string `yaml:"allergens" json:"allergens,omitempty"`
	Vegetarian bool     `yaml:"vegetarian" json:"vegetarian"`
}

type catalogFile struct {
	Foods []*Food          `yaml:"foods"`
	Base  []BaseIngredient `yaml:"base_ingredients"`
}

// DefaultCatalog returns the embedded catalog, decoded once. It panics on a
// malformed embed since that can only be a build defect.
var DefaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := LoadCatalog(bytes.NewReader(defaultCatalogYAML))
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
})

// LoadCatalogFile reads a catalog from a YAML file on disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// LoadCatalog decodes and validates a YAML catalog.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return NewCatalog(file.Foods, file.Base)
}

// NewCatalog validates foods and builds the lookup index.
func NewCatalog(foods []*Food, base []BaseIngredient) (*Catalog, error) {
	c := &Catalog{byName: make(map[string]*Food, len(foods)), base: base}
	for i, f := range foods {
		if err := validateFood(f); err != nil {
			return nil, fmt.Errorf("%w: food %d: %v", ErrInvalidCatalog, i, err)
		}
		key := strings.ToLower(f.Name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("%w: duplicate food %q", ErrInvalidCatalog, f.Name)
		}
		c.byName[key] = f
		c.foods = append(c.foods, f)
	}
	return c, nil
}

func validateFood(f *Food) error {
	if strings.TrimSpace(f.Name) == "" {
		return errors.New("name is required")
	}
	if f.Calories <= 0 {
		return fmt.Errorf("%s: calories must be positive", f.Name)
	}
	if len(f.Tastes) == 0 {
		return fmt.Errorf("%s: at least one taste is required", f.Name)
	}
	for _, t := range f.Tastes {
		if !t.Valid() {
			return fmt.Errorf("%s: unknown taste %q", f.Name, t)
		}
	}
	if !containsCategory(f.Category) {
		return fmt.Errorf("%s: unknown category %q", f.Name, f.Category)
	}
	switch f.Virya {
	case Heating, Cooling, Neutral:
	default:
		return fmt.Errorf("%s: unknown virya %q", f.Name, f.Virya)
	}
	switch f.Digestibility {
	case DigestEasy, DigestModerate, DigestHeavy:
	default:
		return fmt.Errorf("%s: unknown digestibility %q", f.Name, f.Digestibility)
	}
	for _, q := range f.Qualities {
		if !containsQuality(q) {
			return fmt.Errorf("%s: unknown quality %q", f.Name, q)
		}
	}
	for _, n := range f.Nutrients {
		switch n {
		case NutrientProtein, NutrientFiber, NutrientProbiotic, NutrientHealthyFat:
		default:
			return fmt.Errorf("%s: unknown nutrient %q", f.Name, n)
		}
	}
	for _, s := range f.Seasons {
		if _, err := ParseSeason(string(s)); err != nil || s == "" {
			return fmt.Errorf("%s: unknown season %q", f.Name, s)
		}
	}
	for _, r := range f.Regions {
		if _, err := ParseRegion(string(r)); err != nil || r == "" {
			return fmt.Errorf("%s: unknown region %q", f.Name, r)
		}
	}
	if len(f.Meals) == 0 {
		return fmt.Errorf("%s: at least one meal type is required", f.Name)
	}
	for _, m := range f.Meals {
		if _, err := ParseMealType(string(m)); err != nil {
			return fmt.Errorf("%s: %v", f.Name, err)
		}
	}
	return nil
}

func containsCategory(c Category) bool {
	for _, v := range allCategories {
		if v == c {
			return true
		}
	}
	return false
}

func containsQuality(q Quality) bool {
	for _, v := range allQualities {
		if v == q {
			return true
		}
	}
	return false
}

// Foods returns the catalog in file order.
func (c *Catalog) Foods() []*Food {
	return c.foods
}

// Lookup finds a food by case-insensitive name.
func (c *Catalog) Lookup(name string) (*Food, bool) {
	f, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

func (c *Catalog) BaseIngredients() []BaseIngredient {
	return c.base
}

func (c *Catalog) Len() int {
	return len(c.foods)
}

// Subset returns a catalog holding only the foods keep accepts.
func (c *Catalog) Subset(keep func(*Food) bool) *Catalog {
	out := &Catalog{byName: make(map[string]*Food), base: c.base}
	for _, f := range c.foods {
		if keep(f) {
			out.foods = append(out.foods, f)
			out.byName[strings.ToLower(f.Name)] = f
		}
	}
	return out
}

// ByTaste groups food names by each of their tastes.
func (c *Catalog) ByTaste() map[Rasa][]string {
	out := make(map[Rasa][]string, len(AllRasas))
	for _, f := range c.foods {
		for _, t := range f.Tastes {
			out[t] = append(out[t], f.Name)
		}
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out
}
