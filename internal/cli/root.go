// Package cli implements the dietplan command line, an offline front end to the planner.
package cli

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
)

// NewRootCmd builds the dietplan command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dietplan",
		Short:         "Ayurvedic diet plans from the command line",
		Long:          "Generate dosha-aware diet plans, score foods and browse the catalog without running the API.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("catalog", "", "Catalog YAML file (default: built-in catalog)")
	root.PersistentFlags().Bool("json", false, "Print JSON instead of text")

	root.AddCommand(newGenerateCmd(), newScoreCmd(), newCatalogCmd())
	return root
}

func loadCatalog(cmd *cobra.Command) (*engine.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		return engine.DefaultCatalog(), nil
	}
	return engine.LoadCatalogFile(path)
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
