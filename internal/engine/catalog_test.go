package engine

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c := DefaultCatalog()
	assert.Greater(t, c.Len(), 100)
	assert.NotEmpty(t, c.BaseIngredients())

	f, ok := c.Lookup("  curd rice ")
	require.True(t, ok)
	assert.Equal(t, "Curd Rice", f.Name)
	assert.Contains(t, f.Allergens, "dairy")

	_, ok = c.Lookup("Pizza")
	assert.False(t, ok)
}

func TestDefaultCatalogCoversEverySlot(t *testing.T) {
	c := DefaultCatalog()
	for _, m := range FullDaySlots {
		n := 0
		for _, f := range c.Foods() {
			if f.SuitsMeal(m) {
				n++
			}
		}
		assert.GreaterOrEqual(t, n, 20, "slot %s", m)
	}
}

func TestRegionDishesExistInCatalog(t *testing.T) {
	c := DefaultCatalog()
	for region, p := range regionProfiles {
		for _, name := range append(append([]string{}, p.Specialties...), p.Staples...) {
			_, ok := c.Lookup(name)
			assert.True(t, ok, "%s dish %q is not in the catalog", region, name)
		}
	}
}

func TestLoadCatalogRejectsBadInput(t *testing.T) {
	cases := map[string]string{
		"unknown field": `
foods:
  - name: Tea
    colour: brown
`,
		"bad taste": `
foods:
  - name: Tea
    category: beverage
    tastes: [Umami]
    virya: heating
    digestibility: easy
    meals: [Breakfast]
    calories: 40
`,
		"no meals": `
foods:
  - name: Tea
    category: beverage
    tastes: [Bitter]
    virya: heating
    digestibility: easy
    calories: 40
`,
		"duplicate": `
foods:
  - {name: Tea, category: beverage, tastes: [Bitter], virya: heating, digestibility: easy, meals: [Breakfast], calories: 40}
  - {name: tea, category: beverage, tastes: [Bitter], virya: heating, digestibility: easy, meals: [Breakfast], calories: 40}
`,
		"zero calories": `
foods:
  - {name: Tea, category: beverage, tastes: [Bitter], virya: heating, digestibility: easy, meals: [Breakfast], calories: 0}
`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadCatalog(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foods.yaml")
	doc := `
foods:
  - {name: Ginger Tea, category: beverage, tastes: [Pungent], virya: heating, digestibility: easy, meals: [Evening Snack], calories: 30, vegetarian: true}
base_ingredients:
  - {name: Cooked Rice, calories: 130, vegetarian: true}
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	c, err := LoadCatalogFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
	assert.Len(t, c.BaseIngredients(), 1)

	_, err = LoadCatalogFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestContainsAllergen(t *testing.T) {
	f, ok := DefaultCatalog().Lookup("Poha")
	require.True(t, ok)

	assert.True(t, f.ContainsAllergen("Nuts"))
	assert.True(t, f.ContainsAllergen("peanut"))
	assert.True(t, f.ContainsAllergen("poha"))
	assert.False(t, f.ContainsAllergen("dairy"))
	assert.False(t, f.ContainsAllergen("  "))

	// only the allergen tag mentions nuts
	almonds, ok := DefaultCatalog().Lookup("Soaked Almonds")
	require.True(t, ok)
	assert.True(t, almonds.ContainsAllergen("nut"))
	assert.True(t, almonds.ContainsAllergen(" NUT "))
	assert.False(t, almonds.ContainsAllergen("gluten"))
	assert.Equal(t, 0, Score(almonds, Context{Dosha: Vata, Season: Winter, Region: PanIndia, MealType: MidMorningSnack, Allergies: []string{"nut"}}))
}

func TestSubsetAndByTaste(t *testing.T) {
	c := DefaultCatalog()
	sub := c.Subset(func(f *Food) bool { return f.Category == CategorySoup })
	require.Greater(t, sub.Len(), 0)
	for _, f := range sub.Foods() {
		assert.Equal(t, CategorySoup, f.Category)
	}
	_, ok := sub.Lookup("Curd Rice")
	assert.False(t, ok)

	byTaste := c.ByTaste()
	for _, names := range byTaste {
		assert.True(t, sort.StringsAreSorted(names))
	}
	assert.Contains(t, byTaste[Bitter], "Shukto")
}
