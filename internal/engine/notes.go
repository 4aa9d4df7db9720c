package engine

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var doshaNotes = map[Dosha][]string{
	Vata:  {"Warm, cooked foods are recommended", "Include healthy fats like ghee"},
	Pitta: {"Cooling foods and drinks", "Avoid spicy and sour foods"},
	Kapha: {"Light, warm, and dry foods", "Include pungent spices"},
}

var slotNotes = map[MealType]string{
	Breakfast: "Start day gently; favor easy-to-digest foods",
	Lunch:     "Main meal of the day; digestion strongest",
	Dinner:    "Keep it lighter and earlier",
}

var conditionNotes = []struct {
	pattern *regexp.Regexp
	notes   []string
}{
	{regexp.MustCompile(`(?i)diabet|blood sugar`), []string{"Monitor carbohydrate intake", "Moderate sweet taste; focus on complex carbs and fiber"}},
	{regexp.MustCompile(`(?i)digest|ibs|acidity|bloat|constipation`), []string{"Include digestive spices like ginger and cumin"}},
	{regexp.MustCompile(`(?i)hypertension|blood pressure`), []string{"Limit salty foods"}},
}

// GuidanceNotes returns the templated advice attached to every meal of a slot.
func GuidanceNotes(d Dosha, m MealType, guide RasaGuide, conditions, allergies []string) []string {
	notes := []string{fmt.Sprintf("Focus: %s tastes", joinRasas(guide.Prefer))}
	if len(guide.Avoid) > 0 {
		notes = append(notes, "Avoid: "+joinRasas(guide.Avoid))
	}
	for _, p := range d.Primaries() {
		notes = append(notes, doshaNotes[p]...)
	}
	if n, ok := slotNotes[m]; ok {
		notes = append(notes, n)
	}
	for _, c := range conditionNotes {
		for _, cond := range conditions {
			if c.pattern.MatchString(cond) {
				notes = append(notes, c.notes...)
				break
			}
		}
	}
	if clean := nonEmpty(allergies); len(clean) > 0 {
		notes = append(notes, "Avoid allergens: "+strings.Join(clean, ", "))
	}
	return notes
}

// PlanName formats "<dosha> [season] [region] Plan - <date>", omitting the defaults.
func PlanName(d Dosha, s Season, r Region, at time.Time) string {
	parts := []string{string(d)}
	if s != AllSeason && s != "" {
		parts = append(parts, string(s))
	}
	if r != PanIndia && r != "" {
		parts = append(parts, string(r))
	}
	return fmt.Sprintf("%s Plan - %s", strings.Join(parts, " "), at.Format("2006-01-02"))
}

func joinRasas(rs []Rasa) string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return strings.Join(out, ", ")
}

func nonEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
