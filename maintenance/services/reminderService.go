package services

import (
	"fmt"
	"time"

	"facility-backend/db/models"
	"facility-backend/maintenance/repositories"
	"facility-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// reminderWindowDays is how far ahead the daily job looks for upcoming tasks.
const reminderWindowDays = 7

// EmailSender is the slice of the mailer the reminder job needs.
type EmailSender interface {
	IsConfigured() bool
	Send(to, subject, message, attachmentPath string) error
}

// EmailLogStore records reminder emails that went out.
type EmailLogStore interface {
	LogEmailsSent(logs []models.EmailLog) error
}

// ReminderService emails assignees about maintenance tasks due soon and
// flips past-due tasks to overdue. It is driven by the cron scheduler.
type ReminderService struct {
	repo      repositories.MaintenanceRepository
	mailer    EmailSender
	emailLogs EmailLogStore
	logger    *zap.Logger
}

func NewReminderService(repo repositories.MaintenanceRepository, mailer EmailSender, emailLogs EmailLogStore, logger *zap.Logger) *ReminderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderService{
		repo:      repo,
		mailer:    mailer,
		emailLogs: emailLogs,
		logger:    logger,
	}
}

// SendDueReminders emails the assignee of every open task scheduled within
// the reminder window that has not been reminded yet. A send failure skips
// the task so the next run retries it; it never stops the sweep.
func (s *ReminderService) SendDueReminders() {
	tasks, err := s.repo.GetTasksDueWithin(reminderWindowDays)
	if err != nil {
		s.logger.Error("Failed to load tasks due for reminders", zap.Error(err))
		return
	}
	if len(tasks) == 0 {
		return
	}

	if s.mailer == nil || !s.mailer.IsConfigured() {
		s.logger.Warn("Email provider not configured, skipping maintenance reminders", zap.Int("due_tasks", len(tasks)))
		return
	}

	var sent []models.EmailLog
	for _, task := range tasks {
		if task.AssignedTo == nil || task.AssignedTo.Email == "" {
			continue
		}

		subject, message := s.buildReminder(task)
		if err := s.mailer.Send(task.AssignedTo.Email, subject, message, ""); err != nil {
			s.logger.Warn("Failed to send maintenance reminder",
				zap.Error(err),
				zap.String("task_id", task.ID.String()),
				zap.String("recipient", task.AssignedTo.Email),
			)
			continue
		}

		now := time.Now()
		if err := s.repo.MarkReminderSent(task.ID, now); err != nil {
			s.logger.Warn("Failed to record reminder timestamp", zap.Error(err), zap.String("task_id", task.ID.String()))
		}
		sent = append(sent, models.EmailLog{
			ID:        uuid.New(),
			Recipient: task.AssignedTo.Email,
			Subject:   subject,
			SentAt:    now,
		})
	}

	if len(sent) > 0 && s.emailLogs != nil {
		if err := s.emailLogs.LogEmailsSent(sent); err != nil {
			s.logger.Warn("Failed to log reminder emails", zap.Error(err))
		}
	}

	s.logger.Info("Maintenance reminder sweep finished",
		zap.Int("due_tasks", len(tasks)),
		zap.Int("reminders_sent", len(sent)),
	)
}

// MarkOverdue flips open tasks whose scheduled date has passed.
func (s *ReminderService) MarkOverdue() {
	updated, err := s.repo.MarkOverdueTasks(time.Now())
	if err != nil {
		s.logger.Error("Failed to mark overdue maintenance tasks", zap.Error(err))
		return
	}
	if updated > 0 {
		s.logger.Info("Marked maintenance tasks overdue", zap.Int64("count", updated))
	}
}

func (s *ReminderService) buildReminder(task models.MaintenanceTask) (string, string) {
	assetName := "an asset"
	if task.Asset != nil {
		assetName = task.Asset.Name
	}

	days := utils.DaysUntil(task.ScheduledDate)
	due := fmt.Sprintf("in %d days", days)
	switch {
	case days <= 0:
		due = "today"
	case days == 1:
		due = "tomorrow"
	}

	subject := fmt.Sprintf("Maintenance reminder: %s", task.Title)
	message := fmt.Sprintf(
		"Hello %s,\n\nThe maintenance task \"%s\" for %s is due %s (%s).\nPriority: %s.\n\nPlease plan accordingly.",
		task.AssignedTo.FullName,
		task.Title,
		assetName,
		due,
		task.ScheduledDate.Format("2006-01-02"),
		task.Priority,
	)
	return subject, message
}
