package tasks

import (
	"context"
	"fmt"
	"time"

	"gymdesk_echo/internal/models"
)

// RefreshStatusesTaskDef reclassifies every member's stored status from its
// stored end date. Scheduled as a recurring daily task so stored statuses
// never drift more than a day from the date-derived truth.
type RefreshStatusesTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *RefreshStatusesTaskDef) TaskID() string {
	return "refresh_member_statuses"
}

// CreateTask builds a daily recurring ScheduledTask record for this task
func (t *RefreshStatusesTaskDef) CreateTask(due time.Time) (*models.ScheduledTask, error) {
	daily := "FREQ=DAILY"
	return BuildScheduledTask(t.TaskID(), map[string]interface{}{}, due, &daily, models.ScheduledTaskTypeRecurring, 3)
}

// HandleExecution runs the refresh pass
func (t *RefreshStatusesTaskDef) HandleExecution(ctx context.Context, deps Deps, task models.ScheduledTask) (map[string]interface{}, error) {
	if deps.Members == nil {
		return nil, fmt.Errorf("member service not configured")
	}

	updated, err := deps.Members.RefreshStatuses(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"status":  "success",
		"updated": updated,
	}, nil
}

// RefreshStatusesTask is the singleton instance of RefreshStatusesTaskDef
var RefreshStatusesTask = &RefreshStatusesTaskDef{}
