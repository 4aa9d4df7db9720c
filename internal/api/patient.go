package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/service"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/types"
)

// PatientHandler serves the practitioner's patient records
type PatientHandler struct {
	patients service.IPatientService
}

func NewPatientHandler(patients service.IPatientService) *PatientHandler {
	return &PatientHandler{patients: patients}
}

func (h *PatientHandler) Create(c *gin.Context) {
	pid, ok := practitionerID(c)
	if !ok {
		return
	}
	var req types.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patient, err := h.patients.Create(c.Request.Context(), pid, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, patient)
}

func (h *PatientHandler) List(c *gin.Context) {
	pid, ok := practitionerID(c)
	if !ok {
		return
	}
	patients, err := h.patients.List(c.Request.Context(), pid)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

func (h *PatientHandler) Get(c *gin.Context) {
	pid, ok := practitionerID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	patient, err := h.patients.Get(c.Request.Context(), pid, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}
