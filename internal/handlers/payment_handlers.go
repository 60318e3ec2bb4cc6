package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"gymdesk_echo/internal/models"
	"gymdesk_echo/internal/services"
)

type PaymentHandler struct {
	db      *gorm.DB
	members *services.MemberService
}

func NewPaymentHandler(db *gorm.DB, members *services.MemberService) *PaymentHandler {
	return &PaymentHandler{db: db, members: members}
}

// PostPayment records a payment and returns the member with its re-derived
// subscription end date and status.
func (h *PaymentHandler) PostPayment(c echo.Context) error {
	var input services.PaymentInput
	if err := c.Bind(&input); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	member, err := h.members.PostPayment(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, member)
}

// ListMemberPayments returns a member's payment history. Stored order is
// insertion order; recency sorting here is a display concern.
func (h *PaymentHandler) ListMemberPayments(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var count int64
	if err := h.db.Model(&models.Member{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return &services.StoreError{Op: "fetch member", Err: err}
	}
	if count == 0 {
		return &services.NotFoundError{Resource: "member", ID: id}
	}

	query := h.db.Where("member_id = ?", id)
	if c.QueryParam("sort") == "recent" {
		query = query.Order("date desc, id desc")
	} else {
		query = query.Order("id")
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		return &services.StoreError{Op: "list payments", Err: err}
	}
	return c.JSON(http.StatusOK, payments)
}

// ListPayments returns payments across all members, optionally restricted
// to a single month (month=2024-06).
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	query := h.db.Preload("Member").Order("date desc, id desc")

	if monthStr := c.QueryParam("month"); monthStr != "" {
		month, err := time.Parse("2006-01", monthStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid month, expected YYYY-MM")
		}
		start := month
		end := start.AddDate(0, 1, 0)
		query = query.Where("date >= ? AND date < ?", start, end)
	}

	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		return &services.StoreError{Op: "list payments", Err: err}
	}
	return c.JSON(http.StatusOK, payments)
}
