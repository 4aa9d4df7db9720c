package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/types"
)

// CatalogHandler exposes the food catalog ranked for a context
type CatalogHandler struct {
	catalog *engine.Catalog
}

func NewCatalogHandler(catalog *engine.Catalog) *CatalogHandler {
	if catalog == nil {
		catalog = engine.DefaultCatalog()
	}
	return &CatalogHandler{catalog: catalog}
}

// RankedFood is one catalog entry with its score for the requested context
type RankedFood struct {
	*engine.Food
	Score     int              `json:"score"`
	Breakdown engine.Breakdown `json:"breakdown"`
}

// Foods ranks catalog items by score. Vetoed items sort last with score 0.
func (h *CatalogHandler) Foods(c *gin.Context) {
	var q types.CatalogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, err := scoringContext(q)
	if err != nil {
		respondError(c, err)
		return
	}

	ranked := make([]RankedFood, 0, h.catalog.Len())
	for _, f := range h.catalog.Foods() {
		if ctx.MealType != "" && !f.SuitsMeal(ctx.MealType) {
			continue
		}
		b := engine.Explain(f, ctx)
		ranked = append(ranked, RankedFood{Food: f, Score: b.Total, Breakdown: b})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Name < ranked[j].Name
	})

	c.JSON(http.StatusOK, gin.H{
		"context": gin.H{
			"dosha":     ctx.Dosha,
			"season":    ctx.Season,
			"region":    ctx.Region,
			"meal_type": ctx.MealType,
			"allergies": ctx.Allergies,
		},
		"foods": ranked,
		"total": len(ranked),
	})
}

// Tastes lists catalog foods grouped by rasa, plus the guide for ?dosha=
func (h *CatalogHandler) Tastes(c *gin.Context) {
	resp := gin.H{"tastes": h.catalog.ByTaste()}
	if raw := c.Query("dosha"); raw != "" {
		d, err := engine.ParseDosha(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		resp["dosha"] = d
		resp["guide"] = engine.GuideFor(d)
	}
	c.JSON(http.StatusOK, resp)
}

func scoringContext(q types.CatalogQuery) (engine.Context, error) {
	var ctx engine.Context
	var err error
	if strings.TrimSpace(q.Dosha) != "" {
		if ctx.Dosha, err = engine.ParseDosha(q.Dosha); err != nil {
			return ctx, err
		}
	}
	if ctx.Season, err = engine.ParseSeason(q.Season); err != nil {
		return ctx, err
	}
	if ctx.Region, err = engine.ParseRegion(q.Region); err != nil {
		return ctx, err
	}
	if strings.TrimSpace(q.MealType) != "" {
		if ctx.MealType, err = engine.ParseMealType(q.MealType); err != nil {
			return ctx, err
		}
	}
	for _, raw := range q.Allergies {
		for _, a := range strings.Split(raw, ",") {
			if a = strings.TrimSpace(a); a != "" {
				ctx.Allergies = append(ctx.Allergies, a)
			}
		}
	}
	return ctx, nil
}
