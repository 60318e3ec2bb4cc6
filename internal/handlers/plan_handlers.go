package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"gymdesk_echo/internal/models"
	"gymdesk_echo/internal/services"
)

type PlanHandler struct {
	db *gorm.DB
}

func NewPlanHandler(db *gorm.DB) *PlanHandler {
	return &PlanHandler{db: db}
}

type planInput struct {
	Name           string  `json:"name"`
	DurationMonths int     `json:"duration_months"`
	Amount         float64 `json:"amount"`
	Description    string  `json:"description"`
	IsActive       *bool   `json:"is_active"`
}

func (in planInput) validate() error {
	if in.Name == "" {
		return &services.ValidationError{Field: "name", Reason: "required"}
	}
	if in.DurationMonths <= 0 {
		return &services.ValidationError{Field: "duration_months", Reason: "must be positive"}
	}
	if in.Amount < 0 {
		return &services.ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	return nil
}

// ListPlans returns all membership plans
func (h *PlanHandler) ListPlans(c echo.Context) error {
	var plans []models.MembershipPlan
	if err := h.db.Order("duration_months").Find(&plans).Error; err != nil {
		return &services.StoreError{Op: "list plans", Err: err}
	}
	return c.JSON(http.StatusOK, plans)
}

// GetPlan returns a single plan by id
func (h *PlanHandler) GetPlan(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var plan models.MembershipPlan
	if err := h.db.First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &services.NotFoundError{Resource: "membership plan", ID: id}
		}
		return &services.StoreError{Op: "fetch plan", Err: err}
	}
	return c.JSON(http.StatusOK, plan)
}

// CreatePlan creates a new membership plan
func (h *PlanHandler) CreatePlan(c echo.Context) error {
	var input planInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := input.validate(); err != nil {
		return err
	}

	plan := models.MembershipPlan{
		Name:           input.Name,
		DurationMonths: input.DurationMonths,
		Amount:         input.Amount,
		Description:    input.Description,
		IsActive:       true,
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := h.db.Create(&plan).Error; err != nil {
		return &services.StoreError{Op: "create plan", Err: err}
	}
	return c.JSON(http.StatusCreated, plan)
}

// UpdatePlan edits a plan. Members keep the end dates already derived from
// the old duration; the change only affects future derivations.
func (h *PlanHandler) UpdatePlan(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var plan models.MembershipPlan
	if err := h.db.First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &services.NotFoundError{Resource: "membership plan", ID: id}
		}
		return &services.StoreError{Op: "fetch plan", Err: err}
	}

	var input planInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := input.validate(); err != nil {
		return err
	}

	plan.Name = input.Name
	plan.DurationMonths = input.DurationMonths
	plan.Amount = input.Amount
	plan.Description = input.Description
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := h.db.Save(&plan).Error; err != nil {
		return &services.StoreError{Op: "update plan", Err: err}
	}
	return c.JSON(http.StatusOK, plan)
}

// DeletePlan removes a plan that no member references
func (h *PlanHandler) DeletePlan(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var plan models.MembershipPlan
	if err := h.db.First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &services.NotFoundError{Resource: "membership plan", ID: id}
		}
		return &services.StoreError{Op: "fetch plan", Err: err}
	}

	var memberCount int64
	if err := h.db.Model(&models.Member{}).Where("membership_plan_id = ?", id).Count(&memberCount).Error; err != nil {
		return &services.StoreError{Op: "count plan members", Err: err}
	}
	if memberCount > 0 {
		return &services.ValidationError{Field: "id", Reason: "plan is referenced by existing members"}
	}

	if err := h.db.Delete(&plan).Error; err != nil {
		return &services.StoreError{Op: "delete plan", Err: err}
	}
	return c.NoContent(http.StatusNoContent)
}

// parseID reads the :id path param as a uint
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}
