package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"gymdesk_echo/internal/models"
	"gymdesk_echo/internal/services"
	"gymdesk_echo/internal/subscription"
)

// SendRenewalRemindersArgs defines the arguments for a reminder batch
type SendRenewalRemindersArgs struct {
	WindowDays int `json:"window_days"`
}

// SendRenewalRemindersTaskDef emails every member whose subscription ends
// within the lookahead window. Delivery is best effort; per-member failures
// are recorded in the task history, not retried individually.
type SendRenewalRemindersTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *SendRenewalRemindersTaskDef) TaskID() string {
	return "send_renewal_reminders"
}

// CreateTask builds a recurring ScheduledTask record for this task
func (t *SendRenewalRemindersTaskDef) CreateTask(args SendRenewalRemindersArgs, due time.Time, recurringInterval *string) (*models.ScheduledTask, error) {
	taskType := models.ScheduledTaskTypeOneTime
	if recurringInterval != nil {
		taskType = models.ScheduledTaskTypeRecurring
	}
	return BuildScheduledTask(t.TaskID(), args, due, recurringInterval, taskType, 3)
}

// HandleExecution sends the reminder batch
func (t *SendRenewalRemindersTaskDef) HandleExecution(ctx context.Context, deps Deps, task models.ScheduledTask) (map[string]interface{}, error) {
	if deps.Email == nil {
		return nil, fmt.Errorf("email service not configured")
	}

	windowDays := 7
	if val, ok := task.Arguments["window_days"].(float64); ok && val > 0 {
		windowDays = int(val)
	}

	members, err := services.LoadSnapshot(deps.DB)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	due := subscription.UpcomingRenewals(members, windowDays, now)

	sent := 0
	var failures []string
	for _, m := range due {
		if m.Email == "" {
			continue
		}

		daysLeft := int(m.SubscriptionEndDate.Sub(now).Hours() / 24)
		subject := fmt.Sprintf("Your %s membership renews soon", m.MembershipPlan.Name)
		body := fmt.Sprintf(
			"Hi %s,\n\nYour gym membership ends on %s (%d day(s) from now). "+
				"Renew at the front desk or reply to this email to keep your access uninterrupted.\n\nThanks!",
			m.Name, m.SubscriptionEndDate.Format("02 Jan 2006"), daysLeft,
		)

		if err := deps.Email.SendEmail([]string{m.Email}, subject, body); err != nil {
			log.Printf("[Task: send_renewal_reminders] failed for %s: %v", m.Email, err)
			failures = append(failures, m.Email)
			continue
		}
		sent++
	}

	result := map[string]interface{}{
		"status":      "success",
		"window_days": windowDays,
		"candidates":  len(due),
		"sent":        sent,
		"failed":      len(failures),
	}
	if len(failures) > 0 {
		result["failed_recipients"] = failures
	}
	return result, nil
}

// SendRenewalRemindersTask is the singleton instance of SendRenewalRemindersTaskDef
var SendRenewalRemindersTask = &SendRenewalRemindersTaskDef{}
