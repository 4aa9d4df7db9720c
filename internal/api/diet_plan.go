package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/service"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/types"
)

const defaultPageSize = 20

// DietPlanHandler serves the diet plan endpoints
type DietPlanHandler struct {
	plans service.IDietPlanService
}

func NewDietPlanHandler(plans service.IDietPlanService) *DietPlanHandler {
	return &DietPlanHandler{plans: plans}
}

// Generate runs the planner and stores the result
func (h *DietPlanHandler) Generate(c *gin.Context) {
	pid, ok := practitionerID(c)
	if !ok {
		return
	}
	var req types.GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	row, err := h.plans.Generate(c.Request.Context(), pid, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

func (h *DietPlanHandler) List(c *gin.Context) {
	pid, ok := practitionerID(c)
	if !ok {
		return
	}
	var q types.ListPlansQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, total, err := h.plans.List(c.Request.Context(), pid, &q)
	if err != nil {
		respondError(c, err)
		return
	}
	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	c.JSON(http.StatusOK, gin.H{
		"plans":      rows,
		"pagination": types.Pagination{Page: page, Limit: limit, Total: total},
	})
}

func (h *DietPlanHandler) Get(c *gin.Context) {
	pid, ok := practitionerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	row, err := h.plans.Get(c.Request.Context(), pid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *DietPlanHandler) Update(c *gin.Context) {
	pid, ok := practitionerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req types.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Version == nil {
		if req.Version, ok = versionQuery(c); !ok {
			return
		}
	}

	row, err := h.plans.Update(c.Request.Context(), pid, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, row)
}

func (h *DietPlanHandler) Delete(c *gin.Context) {
	pid, ok := practitionerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.plans.Delete(c.Request.Context(), pid, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "diet plan deleted successfully"})
}

// AddMeal appends a meal to a stored plan
func (h *DietPlanHandler) AddMeal(c *gin.Context) {
	pid, ok := practitionerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req types.AddMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Version == nil {
		if req.Version, ok = versionQuery(c); !ok {
			return
		}
	}

	row, err := h.plans.AddMeal(c.Request.Context(), pid, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

// AddFood appends a food to one meal of a stored plan
func (h *DietPlanHandler) AddFood(c *gin.Context) {
	pid, ok := practitionerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	mealIndex, ok := indexParam(c, "mealIndex")
	if !ok {
		return
	}
	var req types.AddFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Version == nil {
		if req.Version, ok = versionQuery(c); !ok {
			return
		}
	}

	row, err := h.plans.AddFood(c.Request.Context(), pid, id, mealIndex, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}

// RemoveFood drops one food from one meal of a stored plan
func (h *DietPlanHandler) RemoveFood(c *gin.Context) {
	pid, ok := practitionerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	mealIndex, ok := indexParam(c, "mealIndex")
	if !ok {
		return
	}
	foodIndex, ok := indexParam(c, "foodIndex")
	if !ok {
		return
	}
	version, ok := versionQuery(c)
	if !ok {
		return
	}

	row, removed, err := h.plans.RemoveFood(c.Request.Context(), pid, id, mealIndex, foodIndex, version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": row, "removed": removed})
}

// Export returns a short-lived download link for the archived plan
func (h *DietPlanHandler) Export(c *gin.Context) {
	pid, ok := practitionerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	url, err := h.plans.ExportURL(c.Request.Context(), pid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":        url,
		"expires_in": int(service.DefaultExportExpiry.Seconds()),
	})
}

func (h *DietPlanHandler) GetDraft(c *gin.Context) {
	pid, ok := practitionerID(c)
	if !ok {
		return
	}
	draft, err := h.plans.GetDraft(c.Request.Context(), pid, c.Param("draftId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SaveDraft retries persistence of a cached generation
func (h *DietPlanHandler) SaveDraft(c *gin.Context) {
	pid, ok := practitionerID(c)
	if !ok {
		return
	}
	row, err := h.plans.SaveDraft(c.Request.Context(), pid, c.Param("draftId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, row)
}
