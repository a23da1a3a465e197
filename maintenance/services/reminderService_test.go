package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"facility-backend/db/models"

	"github.com/google/uuid"
)

type fakeMaintenanceRepo struct {
	due         []models.MaintenanceTask
	remindedIDs []uuid.UUID
	overdueHits int64
}

func (f *fakeMaintenanceRepo) CreateTask(task *models.MaintenanceTask) (*models.MaintenanceTask, error) {
	return task, nil
}

func (f *fakeMaintenanceRepo) GetTaskByID(id string) (*models.MaintenanceTask, error) {
	return nil, fmt.Errorf("not found")
}

func (f *fakeMaintenanceRepo) UpdateTask(task *models.MaintenanceTask) (*models.MaintenanceTask, error) {
	return task, nil
}

func (f *fakeMaintenanceRepo) DeleteTask(id string) error { return nil }

func (f *fakeMaintenanceRepo) GetFilteredTasks(organizationID uuid.UUID, pageSize int, offset int, filters map[string]string) ([]models.MaintenanceTask, int64, error) {
	return nil, 0, nil
}

func (f *fakeMaintenanceRepo) GetTasksDueWithin(days int) ([]models.MaintenanceTask, error) {
	return f.due, nil
}

func (f *fakeMaintenanceRepo) MarkReminderSent(taskID uuid.UUID, sentAt time.Time) error {
	f.remindedIDs = append(f.remindedIDs, taskID)
	return nil
}

func (f *fakeMaintenanceRepo) MarkOverdueTasks(now time.Time) (int64, error) {
	return f.overdueHits, nil
}

type fakeReminderMailer struct {
	configured bool
	failFor    map[string]bool
	sent       []string
	subjects   []string
	bodies     []string
}

func (f *fakeReminderMailer) IsConfigured() bool { return f.configured }

func (f *fakeReminderMailer) Send(to, subject, message, attachmentPath string) error {
	if f.failFor[to] {
		return fmt.Errorf("smtp rejected %s", to)
	}
	f.sent = append(f.sent, to)
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, message)
	return nil
}

type fakeEmailLogStore struct {
	logs []models.EmailLog
}

func (f *fakeEmailLogStore) LogEmailsSent(logs []models.EmailLog) error {
	f.logs = append(f.logs, logs...)
	return nil
}

func dueTask(title, assignee string) models.MaintenanceTask {
	return models.MaintenanceTask{
		ID:            uuid.New(),
		Title:         title,
		Status:        models.PendingMaintenanceStatus,
		Priority:      models.HighMaintenancePriority,
		ScheduledDate: time.Now().AddDate(0, 0, 3),
		Asset:         &models.Asset{Name: "Generator"},
		AssignedTo:    &models.User{FullName: "Alex", Email: assignee},
	}
}

func TestSendDueRemindersEmailsAssignees(t *testing.T) {
	repo := &fakeMaintenanceRepo{due: []models.MaintenanceTask{
		dueTask("Oil change", "alex@x.com"),
		dueTask("Filter swap", "sam@x.com"),
	}}
	mailer := &fakeReminderMailer{configured: true}
	logs := &fakeEmailLogStore{}

	NewReminderService(repo, mailer, logs, nil).SendDueReminders()

	if len(mailer.sent) != 2 {
		t.Fatalf("sent %d reminders, want 2", len(mailer.sent))
	}
	if !strings.Contains(mailer.subjects[0], "Oil change") {
		t.Errorf("subject missing task title: %q", mailer.subjects[0])
	}
	if !strings.Contains(mailer.bodies[0], "Generator") {
		t.Errorf("body missing asset name: %q", mailer.bodies[0])
	}
	if len(repo.remindedIDs) != 2 {
		t.Errorf("marked %d tasks reminded, want 2", len(repo.remindedIDs))
	}
	if len(logs.logs) != 2 {
		t.Errorf("logged %d emails, want 2", len(logs.logs))
	}
}

func TestSendDueRemindersContinuesPastFailures(t *testing.T) {
	repo := &fakeMaintenanceRepo{due: []models.MaintenanceTask{
		dueTask("First", "fail@x.com"),
		dueTask("Second", "ok@x.com"),
	}}
	mailer := &fakeReminderMailer{configured: true, failFor: map[string]bool{"fail@x.com": true}}

	NewReminderService(repo, mailer, &fakeEmailLogStore{}, nil).SendDueReminders()

	if len(mailer.sent) != 1 || mailer.sent[0] != "ok@x.com" {
		t.Errorf("sent = %v, want only ok@x.com", mailer.sent)
	}
	// The failed task stays unreminded so the next run retries it.
	if len(repo.remindedIDs) != 1 {
		t.Errorf("marked %d tasks reminded, want 1", len(repo.remindedIDs))
	}
}

func TestSendDueRemindersUnconfiguredMailer(t *testing.T) {
	repo := &fakeMaintenanceRepo{due: []models.MaintenanceTask{dueTask("Task", "alex@x.com")}}
	mailer := &fakeReminderMailer{configured: false}

	NewReminderService(repo, mailer, &fakeEmailLogStore{}, nil).SendDueReminders()

	if len(mailer.sent) != 0 {
		t.Errorf("reminders sent despite unconfigured mailer: %v", mailer.sent)
	}
	if len(repo.remindedIDs) != 0 {
		t.Error("tasks marked reminded despite unconfigured mailer")
	}
}

func TestSendDueRemindersSkipsUnassigned(t *testing.T) {
	task := dueTask("Task", "alex@x.com")
	task.AssignedTo = nil
	repo := &fakeMaintenanceRepo{due: []models.MaintenanceTask{task}}
	mailer := &fakeReminderMailer{configured: true}

	NewReminderService(repo, mailer, &fakeEmailLogStore{}, nil).SendDueReminders()

	if len(mailer.sent) != 0 {
		t.Errorf("reminder sent for unassigned task: %v", mailer.sent)
	}
}
