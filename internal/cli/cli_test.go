package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateJSON(t *testing.T) {
	out, err := execute(t, "generate", "--dosha", "Pitta", "--season", "Summer", "--region", "South",
		"--allergy", "nuts", "--fast", "--calories", "1800", "--seed", "7", "--json")
	require.NoError(t, err)

	var wp engine.WeeklyPlan
	require.NoError(t, json.Unmarshal([]byte(out), &wp))
	assert.Equal(t, engine.Pitta, wp.Dosha)
	assert.Equal(t, 3, wp.Duration)
	assert.Len(t, wp.Days, 3)
	assert.Len(t, wp.Meals(), 9)
	assert.Equal(t, 1800, wp.Targets.Calories)

	catalog := engine.DefaultCatalog()
	for _, m := range wp.Meals() {
		for _, f := range m.Foods {
			if food, ok := catalog.Lookup(f.Name); ok {
				assert.False(t, food.ContainsAllergen("nuts"), f.Name)
			}
		}
	}
}

func TestGenerateVariantsAreReproducible(t *testing.T) {
	args := []string{"generate", "--dosha", "Kapha", "--variants", "3", "--seed", "42", "--json"}
	first, err := execute(t, args...)
	require.NoError(t, err)
	second, err := execute(t, args...)
	require.NoError(t, err)

	var a, b []*engine.WeeklyPlan
	require.NoError(t, json.Unmarshal([]byte(first), &a))
	require.NoError(t, json.Unmarshal([]byte(second), &b))
	require.Len(t, a, 3)
	require.Len(t, b, 3)
	for i := range a {
		assert.Equal(t, a[i].Days, b[i].Days, "variant %d", i+1)
		assert.Len(t, a[i].Meals(), 35)
	}
}

func TestGenerateText(t *testing.T) {
	out, err := execute(t, "generate", "--dosha", "vata", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Vata Plan - ")
	assert.Contains(t, out, "Monday (")
	assert.Contains(t, out, "Mid-Morning Snack:")
	assert.Contains(t, out, "Average per day:")
}

func TestGenerateErrors(t *testing.T) {
	_, err := execute(t, "generate")
	assert.Error(t, err)

	_, err = execute(t, "generate", "--dosha", "Agni")
	assert.ErrorIs(t, err, engine.ErrInvalidDosha)

	_, err = execute(t, "generate", "--dosha", "Vata", "--season", "Harvest")
	assert.ErrorIs(t, err, engine.ErrInvalidSeason)

	_, err = execute(t, "generate", "--dosha", "Vata", "--variants", "0")
	assert.ErrorContains(t, err, "--variants")
}

func TestScore(t *testing.T) {
	out, err := execute(t, "score", "--food", "coconut rice", "--dosha", "Pitta", "--season", "Summer", "--region", "South", "--meal", "Lunch", "--json")
	require.NoError(t, err)

	var res ScoreResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "Coconut Rice", res.Food)
	assert.False(t, res.Breakdown.Vetoed)
	assert.Greater(t, res.Breakdown.Total, 40)
	assert.Greater(t, res.Breakdown.Season, 0)

	out, err = execute(t, "score", "--food", "Coconut Rice", "--dosha", "Pitta", "--allergy", "nuts")
	require.NoError(t, err)
	assert.Contains(t, out, "vetoed")

	_, err = execute(t, "score", "--food", "Pizza", "--dosha", "Pitta")
	assert.ErrorContains(t, err, "not in the catalog")
}

func TestCatalogCommand(t *testing.T) {
	out, err := execute(t, "catalog", "--meal", "lunch", "--vegetarian", "--json")
	require.NoError(t, err)

	var foods []*engine.Food
	require.NoError(t, json.Unmarshal([]byte(out), &foods))
	require.NotEmpty(t, foods)
	for _, f := range foods {
		assert.True(t, f.Vegetarian, f.Name)
		assert.True(t, f.SuitsMeal(engine.Lunch), f.Name)
	}

	_, err = execute(t, "catalog", "--taste", "umami")
	assert.ErrorContains(t, err, "unknown taste")
}

func TestCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`foods:
- name: Jeera Rice
  category: grain
  tastes: [Sweet]
  virya: neutral
  digestibility: easy
  meals: [Lunch, Dinner]
  vegetarian: true
  calories: 250
- name: Masala Chaas
  category: dairy
  tastes: [Sour, Astringent]
  virya: cooling
  digestibility: easy
  meals: [Lunch]
  vegetarian: true
  calories: 60
`), 0o600))

	out, err := execute(t, "--catalog", path, "catalog")
	require.NoError(t, err)
	assert.Contains(t, out, "Jeera Rice")
	assert.Contains(t, out, "2 foods")

	_, err = execute(t, "--catalog", filepath.Join(t.TempDir(), "missing.yaml"), "catalog")
	assert.Error(t, err)
}
