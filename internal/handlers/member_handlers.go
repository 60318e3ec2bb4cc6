package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"gymdesk_echo/internal/models"
	"gymdesk_echo/internal/services"
)

type MemberHandler struct {
	db      *gorm.DB
	members *services.MemberService
}

func NewMemberHandler(db *gorm.DB, members *services.MemberService) *MemberHandler {
	return &MemberHandler{db: db, members: members}
}

// ListMembers returns all members with their plans. An optional status
// query param filters by stored lifecycle status.
func (h *MemberHandler) ListMembers(c echo.Context) error {
	query := h.db.Preload("MembershipPlan").Order("id")

	if status := c.QueryParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var members []models.Member
	if err := query.Find(&members).Error; err != nil {
		return &services.StoreError{Op: "list members", Err: err}
	}
	return c.JSON(http.StatusOK, members)
}

// GetMember returns one member with plan and full payment history
func (h *MemberHandler) GetMember(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var member models.Member
	err = h.db.Preload("MembershipPlan").
		Preload("Payments", func(tx *gorm.DB) *gorm.DB { return tx.Order("payments.id") }).
		First(&member, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &services.NotFoundError{Resource: "member", ID: id}
		}
		return &services.StoreError{Op: "fetch member", Err: err}
	}
	return c.JSON(http.StatusOK, member)
}

// RegisterMember creates a member together with its initial payment
func (h *MemberHandler) RegisterMember(c echo.Context) error {
	var input services.NewMemberInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	member, err := h.members.AddMember(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, member)
}

// UpdateMember edits a member's contact and profile fields
func (h *MemberHandler) UpdateMember(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var input services.UpdateMemberInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	member, err := h.members.UpdateMember(c.Request().Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, member)
}

// DeleteMember removes a member and its payment history
func (h *MemberHandler) DeleteMember(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.members.DeleteMember(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
