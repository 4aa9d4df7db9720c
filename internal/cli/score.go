package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
)

func newScoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "score",
		Short:   "Explain how a catalog food scores for a context",
		Example: `  dietplan score --food "Coconut Rice" --dosha Pitta --season Summer --region South --meal Lunch`,
		RunE:    runScore,
	}

	cmd.Flags().String("food", "", "Catalog food name (required)")
	cmd.Flags().String("dosha", "", "Dosha (required)")
	cmd.Flags().String("season", "", "Season (default All-Season)")
	cmd.Flags().String("region", "", "Region (default Pan-India)")
	cmd.Flags().String("meal", "", "Meal type")
	cmd.Flags().StringSlice("allergy", nil, "Allergen (repeatable)")
	_ = cmd.MarkFlagRequired("food")
	_ = cmd.MarkFlagRequired("dosha")

	return cmd
}

// ScoreResult is the output of the score command.
type ScoreResult struct {
	Food      string           `json:"food"`
	Context   engine.Context   `json:"context"`
	Breakdown engine.Breakdown `json:"breakdown"`
}

func runScore(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	name, _ := f.GetString("food")
	dosha, _ := f.GetString("dosha")
	season, _ := f.GetString("season")
	region, _ := f.GetString("region")
	meal, _ := f.GetString("meal")
	allergies, _ := f.GetStringSlice("allergy")

	catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}
	food, ok := catalog.Lookup(name)
	if !ok {
		return fmt.Errorf("food %q is not in the catalog", name)
	}

	ctx := engine.Context{Allergies: allergies}
	if ctx.Dosha, err = engine.ParseDosha(dosha); err != nil {
		return err
	}
	if ctx.Season, err = engine.ParseSeason(season); err != nil {
		return err
	}
	if ctx.Region, err = engine.ParseRegion(region); err != nil {
		return err
	}
	if meal != "" {
		if ctx.MealType, err = engine.ParseMealType(meal); err != nil {
			return err
		}
	}

	res := ScoreResult{Food: food.Name, Context: ctx, Breakdown: engine.Explain(food, ctx)}
	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		return writeJSON(out, res)
	}

	b := res.Breakdown
	fmt.Fprintf(out, "%s for %s", food.Name, ctx.Dosha)
	if ctx.MealType != "" {
		fmt.Fprintf(out, " at %s", ctx.MealType)
	}
	fmt.Fprintf(out, " (%s, %s)\n", ctx.Season, ctx.Region)
	if b.Vetoed {
		fmt.Fprintln(out, "  vetoed: contains an allergen")
		fmt.Fprintf(out, "  total:          %d\n", b.Total)
		return nil
	}
	rows := []struct {
		label string
		value int
	}{
		{"base", b.Base},
		{"dosha", b.Dosha},
		{"season", b.Season},
		{"region", b.Region},
		{"timing", b.Timing},
		{"nutrition", b.Nutrition},
		{"digestibility", b.Digestibility},
		{"ayurvedic", b.Ayurvedic},
		{"combination", b.Combination},
	}
	for _, r := range rows {
		fmt.Fprintf(out, "  %-15s %+d\n", r.label+":", r.value)
	}
	fmt.Fprintf(out, "  %-15s %d\n", "total:", b.Total)
	return nil
}
