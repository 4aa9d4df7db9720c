package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
)

const maxVariants = 10

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a diet plan",
		Example: `  dietplan generate --dosha Pitta --season Summer --region South --allergy nuts --calories 1800
  dietplan generate --dosha Vata-Kapha --fast --variants 3 --json`,
		RunE: runGenerate,
	}

	cmd.Flags().String("dosha", "", "Dosha, e.g. Vata or Pitta-Kapha (required)")
	cmd.Flags().String("season", "", "Season (default All-Season)")
	cmd.Flags().String("region", "", "Region (default Pan-India)")
	cmd.Flags().StringSlice("allergy", nil, "Allergen to exclude (repeatable)")
	cmd.Flags().StringSlice("condition", nil, "Health condition (repeatable)")
	cmd.Flags().StringSlice("goal", nil, "Plan goal (repeatable)")
	cmd.Flags().Int("calories", 0, "Daily calorie target")
	cmd.Flags().Int("duration", 0, "Plan duration in days")
	cmd.Flags().Bool("fast", false, "Three-day, three-meal fast plan")
	cmd.Flags().Bool("vegetarian", false, "Exclude non-vegetarian dishes")
	cmd.Flags().Int("variants", 1, "Number of independent plans to generate")
	cmd.Flags().Int64("seed", 0, "Random seed; variant i uses seed+i (0 = random)")
	_ = cmd.MarkFlagRequired("dosha")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	dosha, _ := f.GetString("dosha")
	season, _ := f.GetString("season")
	region, _ := f.GetString("region")
	allergies, _ := f.GetStringSlice("allergy")
	conditions, _ := f.GetStringSlice("condition")
	goals, _ := f.GetStringSlice("goal")
	calories, _ := f.GetInt("calories")
	duration, _ := f.GetInt("duration")
	fast, _ := f.GetBool("fast")
	vegetarian, _ := f.GetBool("vegetarian")
	variants, _ := f.GetInt("variants")
	seed, _ := f.GetInt64("seed")

	if variants < 1 || variants > maxVariants {
		return fmt.Errorf("--variants must be between 1 and %d", maxVariants)
	}

	req, err := engine.ParseRequest(engine.RawRequest{
		Dosha:            dosha,
		Season:           season,
		Region:           region,
		HealthConditions: conditions,
		Allergies:        allergies,
		Goals:            goals,
		Duration:         duration,
		Fast:             fast,
		Vegetarian:       vegetarian,
		Targets:          engine.Targets{Calories: calories},
	})
	if err != nil {
		return err
	}
	catalog, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	plans, err := generateVariants(cmd, catalog, req, variants, seed)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		if len(plans) == 1 {
			return writeJSON(out, plans[0])
		}
		return writeJSON(out, plans)
	}
	for i, p := range plans {
		if len(plans) > 1 {
			fmt.Fprintf(out, "=== Variant %d ===\n", i+1)
		}
		printPlan(out, p)
	}
	return nil
}

// generateVariants runs n independent generations concurrently. Each variant
// gets its own planner so seeded runs stay reproducible.
func generateVariants(cmd *cobra.Command, catalog *engine.Catalog, req engine.Request, n int, seed int64) ([]*engine.WeeklyPlan, error) {
	plans := make([]*engine.WeeklyPlan, n)
	g, ctx := errgroup.WithContext(cmd.Context())
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			var opts []engine.Option
			if seed != 0 {
				opts = append(opts, engine.WithSeed(seed+int64(i)))
			}
			wp := engine.NewPlanner(catalog, opts...).Generate(req)
			if wp.IsEmpty() {
				return fmt.Errorf("variant %d: catalog produced an empty plan", i+1)
			}
			plans[i] = wp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}

func printPlan(w io.Writer, p *engine.WeeklyPlan) {
	fmt.Fprintf(w, "%s\n", p.Name)
	fmt.Fprintf(w, "Target: %d kcal/day, %d days\n", p.Targets.Calories, p.Duration)
	if len(p.Guide.Prefer) > 0 {
		fmt.Fprintf(w, "Favor: %s\n", rasaList(p.Guide.Prefer))
	}
	for _, d := range p.Days {
		fmt.Fprintf(w, "\n%s (%d kcal)\n", d.Day, d.Totals.Calories)
		for _, m := range d.Meals {
			names := make([]string, 0, len(m.Foods))
			for _, f := range m.Foods {
				names = append(names, fmt.Sprintf("%s (%s, %d kcal)", f.Name, f.Quantity, f.Calories))
			}
			fmt.Fprintf(w, "  %-18s %s\n", m.MealType+":", strings.Join(names, "; "))
		}
	}
	fmt.Fprintf(w, "\nAverage per day: %d kcal, protein %.0fg, carbs %.0fg, fat %.0fg, fiber %.0fg\n",
		p.AveragePerDay.Calories, p.AveragePerDay.Protein, p.AveragePerDay.Carbs, p.AveragePerDay.Fat, p.AveragePerDay.Fiber)
	if len(p.Metadata.Duplicates) > 0 {
		fmt.Fprintf(w, "Repeated dishes: %s\n", strings.Join(p.Metadata.Duplicates, ", "))
	}
	fmt.Fprintln(w)
}

func rasaList(rs []engine.Rasa) string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return strings.Join(out, ", ")
}
