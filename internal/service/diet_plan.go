package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/atharva12306/ai-ayurvedic-diet/internal/engine"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/models"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/plan"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/platform/logger"
	"github.com/atharva12306/ai-ayurvedic-diet/internal/types"
)

const (
	defaultPageSize  = 20
	maxWriteAttempts = 3
)

// DietPlanService handles diet plan generation and storage
type DietPlanService struct {
	db       *gorm.DB
	planner  *engine.Planner
	patients IPatientService
	drafts   DraftStore
	archive  PlanArchive
	log      *logger.Logger
	calories int
}

// DietPlanOption configures optional collaborators
type DietPlanOption func(*DietPlanService)

// WithDrafts keeps plans that fail to save
func WithDrafts(d DraftStore) DietPlanOption {
	return func(s *DietPlanService) { s.drafts = d }
}

// WithArchive snapshots saved plans
func WithArchive(a PlanArchive) DietPlanOption {
	return func(s *DietPlanService) { s.archive = a }
}

// WithLogger sets the service logger
func WithLogger(l *logger.Logger) DietPlanOption {
	return func(s *DietPlanService) { s.log = l }
}

// WithDefaultCalories sets the daily target used when a request has none
func WithDefaultCalories(kcal int) DietPlanOption {
	return func(s *DietPlanService) { s.calories = kcal }
}

// NewDietPlanService creates a new DietPlanService instance
func NewDietPlanService(db *gorm.DB, planner *engine.Planner, patients IPatientService, opts ...DietPlanOption) *DietPlanService {
	s := &DietPlanService{
		db:       db,
		planner:  planner,
		patients: patients,
		log:      logger.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Generate builds a plan for the request and stores it
func (s *DietPlanService) Generate(ctx context.Context, practitionerID uuid.UUID, req *types.GeneratePlanRequest) (*models.DietPlan, error) {
	raw := req.Raw()
	if req.PatientID != nil {
		patient, err := s.patients.Get(ctx, practitionerID, *req.PatientID)
		if err != nil {
			return nil, err
		}
		applyPatientDefaults(&raw, patient)
	}
	if strings.TrimSpace(raw.Dosha) == "" {
		return nil, ErrMissingDosha
	}
	if raw.Targets.Calories == 0 && s.calories > 0 {
		raw.Targets.Calories = s.calories
	}
	parsed, err := engine.ParseRequest(raw)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	wp := s.planner.Generate(parsed)
	if wp.IsEmpty() {
		return nil, ErrEmptyPlan
	}
	s.log.Info("diet plan generated",
		"dosha", wp.Dosha,
		"season", wp.Season,
		"region", wp.Region,
		"meals", len(wp.Meals()),
		"duplicates", len(wp.Metadata.Duplicates),
		"relaxed_slots", len(wp.Metadata.RelaxedSlots),
		"elapsed", time.Since(start),
	)

	draft := &PlanDraft{
		PractitionerID:   practitionerID,
		PatientID:        req.PatientID,
		Vegetarian:       parsed.Vegetarian,
		HealthConditions: parsed.HealthConditions,
		Plan:             wp,
	}
	return s.persist(ctx, draft)
}

// applyPatientDefaults fills fields the request left empty from the patient record
func applyPatientDefaults(raw *engine.RawRequest, p *models.Patient) {
	if strings.TrimSpace(raw.Dosha) == "" {
		raw.Dosha = p.Prakriti
	}
	if len(raw.Allergies) == 0 {
		raw.Allergies = append([]string{}, p.Allergies...)
	}
	if len(raw.HealthConditions) == 0 {
		raw.HealthConditions = append([]string{}, p.HealthConditions...)
	}
	if p.IsVegetarian() {
		raw.Vegetarian = true
	}
}

func (s *DietPlanService) persist(ctx context.Context, draft *PlanDraft) (*models.DietPlan, error) {
	row := models.NewDietPlan(draft.PractitionerID, draft.PatientID, draft.Plan, draft.Vegetarian, draft.HealthConditions)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		perr := &PersistError{Plan: draft.Plan, Err: err}
		if s.drafts != nil {
			id, derr := s.drafts.Save(ctx, draft)
			if derr != nil {
				s.log.Error("failed to cache draft", "error", derr)
			} else {
				perr.DraftID = id
			}
		}
		s.log.Error("failed to save diet plan", "error", err, "draft_id", perr.DraftID)
		return nil, perr
	}
	s.afterSave(ctx, row, draft.ID)
	return row, nil
}

// afterSave archives the plan and clears its draft concurrently. Failures are
// logged only.
func (s *DietPlanService) afterSave(ctx context.Context, row *models.DietPlan, draftID string) {
	g, gctx := errgroup.WithContext(ctx)
	if s.archive != nil {
		g.Go(func() error {
			if err := s.archive.Put(gctx, row); err != nil {
				return fmt.Errorf("archive: %w", err)
			}
			return nil
		})
	}
	if s.drafts != nil && draftID != "" {
		g.Go(func() error {
			if err := s.drafts.Delete(gctx, draftID); err != nil {
				return fmt.Errorf("draft cleanup: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Warn("post-save step failed", "plan_id", row.ID, "error", err)
	}
}

// GetDraft retrieves a cached draft owned by the practitioner
func (s *DietPlanService) GetDraft(ctx context.Context, practitionerID uuid.UUID, draftID string) (*PlanDraft, error) {
	if s.drafts == nil {
		return nil, ErrDraftNotFound
	}
	draft, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.PractitionerID != practitionerID || draft.Plan == nil {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

// SaveDraft persists a cached draft without regenerating it
func (s *DietPlanService) SaveDraft(ctx context.Context, practitionerID uuid.UUID, draftID string) (*models.DietPlan, error) {
	draft, err := s.GetDraft(ctx, practitionerID, draftID)
	if err != nil {
		return nil, err
	}
	return s.persist(ctx, draft)
}

// List returns one page of the practitioner's plans, newest first
func (s *DietPlanService) List(ctx context.Context, practitionerID uuid.UUID, q *types.ListPlansQuery) ([]*models.DietPlan, int64, error) {
	page, limit := 1, defaultPageSize
	query := s.db.WithContext(ctx).Model(&models.DietPlan{}).Where("practitioner_id = ?", practitionerID)
	if q != nil {
		if q.Page > 0 {
			page = q.Page
		}
		if q.Limit > 0 {
			limit = q.Limit
		}
		if q.Status != "" {
			query = query.Where("status = ?", q.Status)
		}
		if q.PatientID != "" {
			patientID, err := uuid.Parse(q.PatientID)
			if err != nil {
				return nil, 0, fmt.Errorf("%w: patient_id", ErrInvalidUpdate)
			}
			query = query.Where("patient_id = ?", patientID)
		}
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count diet plans: %w", err)
	}
	var plans []*models.DietPlan
	if err := query.Order("created_at DESC").Offset((page - 1) * limit).Limit(limit).Find(&plans).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list diet plans: %w", err)
	}
	return plans, total, nil
}

// Get retrieves a plan by ID
func (s *DietPlanService) Get(ctx context.Context, practitionerID, id uuid.UUID) (*models.DietPlan, error) {
	var row models.DietPlan
	err := s.db.WithContext(ctx).First(&row, "id = ? AND practitioner_id = ?", id, practitionerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get diet plan: %w", err)
	}
	return &row, nil
}

// Update changes plan metadata
func (s *DietPlanService) Update(ctx context.Context, practitionerID, id uuid.UUID, req *types.UpdatePlanRequest) (*models.DietPlan, error) {
	return s.mutate(ctx, practitionerID, id, req.Version, func(row *models.DietPlan) error {
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if len([]rune(name)) < 2 {
				return fmt.Errorf("%w: name must be at least 2 characters", ErrInvalidUpdate)
			}
			row.Name = name
		}
		if req.Status != nil {
			if !models.ValidStatus(*req.Status) {
				return fmt.Errorf("%w: unknown status %q", ErrInvalidUpdate, *req.Status)
			}
			row.Status = *req.Status
		}
		if req.Goals != nil {
			row.Goals = append(datatypes.JSONSlice[string]{}, *req.Goals...)
		}
		if req.Restrictions != nil {
			row.Restrictions = append(datatypes.JSONSlice[string]{}, *req.Restrictions...)
		}
		if req.Tags != nil {
			row.Tags = append(datatypes.JSONSlice[string]{}, *req.Tags...)
		}
		if req.Notes != nil {
			row.Notes = *req.Notes
		}
		return nil
	})
}

// Delete soft-deletes a plan
func (s *DietPlanService) Delete(ctx context.Context, practitionerID, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Where("id = ? AND practitioner_id = ?", id, practitionerID).Delete(&models.DietPlan{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete diet plan: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// AddMeal appends a meal to a stored plan
func (s *DietPlanService) AddMeal(ctx context.Context, practitionerID, id uuid.UUID, req *types.AddMealRequest) (*models.DietPlan, error) {
	rec, err := plan.NewMeal(req.Input())
	if err != nil {
		return nil, err
	}
	return s.mutate(ctx, practitionerID, id, req.Version, func(row *models.DietPlan) error {
		row.Meals = append(row.Meals, rec)
		return nil
	})
}

// AddFood appends a food to meals[mealIndex]
func (s *DietPlanService) AddFood(ctx context.Context, practitionerID, id uuid.UUID, mealIndex int, req *types.AddFoodRequest) (*models.DietPlan, error) {
	return s.mutate(ctx, practitionerID, id, req.Version, func(row *models.DietPlan) error {
		_, err := plan.AddFood(row.Meals, mealIndex, req.Input())
		return err
	})
}

// RemoveFood deletes meals[mealIndex].foods[foodIndex]
func (s *DietPlanService) RemoveFood(ctx context.Context, practitionerID, id uuid.UUID, mealIndex, foodIndex int, version *int) (*models.DietPlan, engine.FoodEntry, error) {
	var removed engine.FoodEntry
	row, err := s.mutate(ctx, practitionerID, id, version, func(row *models.DietPlan) error {
		var err error
		removed, err = plan.RemoveFood(row.Meals, mealIndex, foodIndex)
		return err
	})
	if err != nil {
		return nil, engine.FoodEntry{}, err
	}
	return row, removed, nil
}

// mutate loads the plan, applies fn and writes it back guarded by the stored
// version. Without an expected version a lost race is retried on fresh data.
func (s *DietPlanService) mutate(ctx context.Context, practitionerID, id uuid.UUID, expected *int, fn func(*models.DietPlan) error) (*models.DietPlan, error) {
	for attempt := 0; attempt < maxWriteAttempts; attempt++ {
		row, err := s.Get(ctx, practitionerID, id)
		if err != nil {
			return nil, err
		}
		if expected != nil && *expected != row.Version {
			return nil, ErrVersionConflict
		}
		if err := fn(row); err != nil {
			return nil, err
		}

		current := row.Version
		row.Version = current + 1
		res := s.db.WithContext(ctx).Model(&models.DietPlan{}).
			Where("id = ? AND version = ?", row.ID, current).
			Updates(map[string]interface{}{
				"name":         row.Name,
				"status":       row.Status,
				"goals":        row.Goals,
				"restrictions": row.Restrictions,
				"tags":         row.Tags,
				"notes":        row.Notes,
				"meals":        row.Meals,
				"version":      row.Version,
			})
		if res.Error != nil {
			return nil, fmt.Errorf("failed to update diet plan: %w", res.Error)
		}
		if res.RowsAffected == 1 {
			s.afterSave(ctx, row, "")
			return row, nil
		}
		if expected != nil {
			return nil, ErrVersionConflict
		}
		s.log.Debug("diet plan write lost a race, retrying", "plan_id", id, "attempt", attempt+1)
	}
	return nil, ErrVersionConflict
}

// ExportURL returns a presigned link to the plan's archived snapshot
func (s *DietPlanService) ExportURL(ctx context.Context, practitionerID, id uuid.UUID) (string, error) {
	if s.archive == nil {
		return "", ErrArchiveDisabled
	}
	row, err := s.Get(ctx, practitionerID, id)
	if err != nil {
		return "", err
	}
	return s.archive.PresignURL(ctx, row, DefaultExportExpiry)
}
