package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalog foods",
		RunE:  runCatalog,
	}
	cmd.Flags().String("meal", "", "Only foods suited to this meal type")
	cmd.Flags().String("taste", "", "Only foods with this rasa")
	cmd.Flags().Bool("vegetarian", false, "Only vegetarian foods")
	return cmd
}

func runCatalog(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	meal, _ := f.GetString("meal")
	taste, _ := f.GetString("taste")
	vegetarian, _ := f.GetBool("vegetarian")

	catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	var mealType engine.MealType
	if meal != "" {
		if mealType, err = engine.ParseMealType(meal); err != nil {
			return err
		}
	}
	var rasa engine.Rasa
	if taste != "" {
		for _, r := range engine.AllRasas {
			if strings.EqualFold(taste, string(r)) {
				rasa = r
			}
		}
		if rasa == "" {
			return fmt.Errorf("unknown taste %q", taste)
		}
	}

	foods := catalog.Subset(func(food *engine.Food) bool {
		if mealType != "" && !food.SuitsMeal(mealType) {
			return false
		}
		if rasa != "" && !food.HasTaste(rasa) {
			return false
		}
		return !vegetarian || food.Vegetarian
	}).Foods()

	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		return writeJSON(out, foods)
	}
	for _, food := range foods {
		tastes := make([]string, len(food.Tastes))
		for i, t := range food.Tastes {
			tastes[i] = string(t)
		}
		fmt.Fprintf(out, "%-32s %4d kcal  %-10s %s\n", food.Name, food.Calories, food.Category, strings.Join(tastes, ", "))
	}
	fmt.Fprintf(out, "%d foods\n", len(foods))
	return nil
}
