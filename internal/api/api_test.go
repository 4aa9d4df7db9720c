package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/middleware"
)

// newTestRouter mounts the handlers behind a stub that authenticates as practitioner.
func newTestRouter(practitioner uuid.UUID, plans *DietPlanHandler, patients *PatientHandler, catalog *CatalogHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := func(c *gin.Context) {
		if practitioner != uuid.Nil {
			c.Set(middleware.UserIDKey, practitioner)
		}
		c.Next()
	}
	v1 := r.Group("/api/v1", auth)
	if plans != nil {
		v1.POST("/diet-plans/generate", plans.Generate)
		v1.GET("/diet-plans", plans.List)
		v1.GET("/diet-plans/drafts/:draftId", plans.GetDraft)
		v1.POST("/diet-plans/drafts/:draftId/save", plans.SaveDraft)
		v1.GET("/diet-plans/:id", plans.Get)
		v1.PUT("/diet-plans/:id", plans.Update)
		v1.DELETE("/diet-plans/:id", plans.Delete)
		v1.GET("/diet-plans/:id/export", plans.Export)
		v1.POST("/diet-plans/:id/meals", plans.AddMeal)
		v1.POST("/diet-plans/:id/meals/:mealIndex/foods", plans.AddFood)
		v1.DELETE("/diet-plans/:id/meals/:mealIndex/foods/:foodIndex", plans.RemoveFood)
	}
	if patients != nil {
		v1.POST("/patients", patients.Create)
		v1.GET("/patients", patients.List)
		v1.GET("/patients/:id", patients.Get)
	}
	if catalog != nil {
		v1.GET("/catalog/foods", catalog.Foods)
		v1.GET("/catalog/tastes", catalog.Tastes)
	}
	return r
}

func doJSON(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	return out
}
